package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssistantReplyKeywords(t *testing.T) {
	s := NewAssistantService(nil)

	tests := []struct {
		message string
		want    string
	}{
		{"I feel pain in my shoulder", "I understand you feel pain. I will notify a caregiver and suggest a gentle turn to the left with pillow support."},
		{"My back HURTS", "I understand you feel pain. I will notify a caregiver and suggest a gentle turn to the left with pillow support."},
		{"Could I get some water please", "I can request water for you. A caregiver will bring it shortly."},
		{"I need a drink", "I can request water for you. A caregiver will bring it shortly."},
		{"I am cold", "I will request a blanket and check room temperature settings."},
		{"feeling dizzy again", "Please sit or lie down. I will alert staff to check vitals and ensure safety."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, s.Reply(tt.message, RoleResident), "message %q", tt.message)
	}
}

func TestAssistantReplyFallbackDependsOnRole(t *testing.T) {
	s := NewAssistantService(nil)

	assert.Equal(t, "Thank you. I will inform staff and log your request.", s.Reply("hello there", RoleResident))
	assert.Equal(t, "Acknowledged. I will log the note for this resident.", s.Reply("hello there", RoleCaregiver))
}

func TestAssistantKeywordBeatsRoleFallback(t *testing.T) {
	s := NewAssistantService(nil)

	// A caregiver note mentioning pain still gets the pain reply.
	reply := s.Reply("resident reports pain after lunch", RoleCaregiver)
	assert.Contains(t, reply, "I understand you feel pain")
}
