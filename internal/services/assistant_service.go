package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/serwaa467/ElderCare_Manager/internal/models"
	"github.com/serwaa467/ElderCare_Manager/internal/repository"
)

// Roles the assistant accepts.
const (
	RoleResident  = "resident"
	RoleCaregiver = "caregiver"
)

// assistantRule maps trigger keywords to a scripted reply. There is no NLU
// here; the assistant is a fixed lookup by design.
type assistantRule struct {
	keywords []string
	reply    string
}

var assistantRules = []assistantRule{
	{
		keywords: []string{"pain", "hurt"},
		reply:    "I understand you feel pain. I will notify a caregiver and suggest a gentle turn to the left with pillow support.",
	},
	{
		keywords: []string{"water", "drink"},
		reply:    "I can request water for you. A caregiver will bring it shortly.",
	},
	{
		keywords: []string{"cold"},
		reply:    "I will request a blanket and check room temperature settings.",
	},
	{
		keywords: []string{"dizzy", "dizziness"},
		reply:    "Please sit or lie down. I will alert staff to check vitals and ensure safety.",
	},
}

// AssistantService produces scripted replies and keeps the transcript.
type AssistantService struct {
	repo *repository.ConversationRepository
}

// NewAssistantService creates a new instance of AssistantService.
func NewAssistantService(repo *repository.ConversationRepository) *AssistantService {
	return &AssistantService{repo: repo}
}

// Reply returns the scripted reply for a message without persisting anything.
func (s *AssistantService) Reply(text, role string) string {
	t := strings.ToLower(text)
	for _, rule := range assistantRules {
		for _, kw := range rule.keywords {
			if strings.Contains(t, kw) {
				return rule.reply
			}
		}
	}
	if role == RoleResident {
		return "Thank you. I will inform staff and log your request."
	}
	return "Acknowledged. I will log the note for this resident."
}

// Send produces a reply for a message and stores the exchange.
func (s *AssistantService) Send(ctx context.Context, text, role string) (*models.Conversation, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("message text is required")
	}
	if role != RoleResident && role != RoleCaregiver {
		role = RoleResident
	}

	conv := &models.Conversation{
		Role:  role,
		Text:  text,
		Reply: s.Reply(text, role),
	}
	if err := s.repo.CreateConversation(ctx, conv); err != nil {
		return nil, fmt.Errorf("failed to store conversation: %v", err)
	}
	return conv, nil
}

// Transcript returns the stored exchanges, newest first.
func (s *AssistantService) Transcript(ctx context.Context) ([]models.Conversation, error) {
	return s.repo.GetTranscript(ctx)
}

// ClearTranscript deletes the stored exchanges.
func (s *AssistantService) ClearTranscript(ctx context.Context) error {
	return s.repo.ClearTranscript(ctx)
}
