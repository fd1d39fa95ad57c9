package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/serwaa467/ElderCare_Manager/internal/services"
	"github.com/serwaa467/ElderCare_Manager/pkg/logger"
	"github.com/gorilla/websocket"
)

// AssistantMessage is the wire shape for both the REST and socket endpoints.
type AssistantMessage struct {
	Type  string `json:"type,omitempty"` // "chunk" or "done" on socket replies
	Role  string `json:"role,omitempty"`
	Text  string `json:"text,omitempty"`
	Reply string `json:"reply,omitempty"`
}

type AssistantHandler struct {
	Service *services.AssistantService
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewAssistantHandler(service *services.AssistantService) *AssistantHandler {
	return &AssistantHandler{Service: service}
}

// SendMessageHandler answers a single assistant message over plain HTTP.
func (h *AssistantHandler) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	var msg AssistantMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(msg.Text) == "" {
		http.Error(w, "Text is required", http.StatusBadRequest)
		return
	}

	conv, err := h.Service.Send(r.Context(), msg.Text, msg.Role)
	if err != nil {
		http.Error(w, "Failed to process message", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(conv)
}

// AssistantWebSocketHandler streams assistant replies word by word so the UI
// can render them as they arrive. Each incoming message produces a sequence
// of "chunk" frames followed by a "done" frame carrying the full reply.
func (h *AssistantHandler) AssistantWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Error("Assistant WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	for {
		var msg AssistantMessage
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}
		if strings.TrimSpace(msg.Text) == "" {
			continue
		}

		conv, err := h.Service.Send(r.Context(), msg.Text, msg.Role)
		if err != nil {
			logger.Log.WithError(err).Error("Failed to process assistant message")
			conn.WriteJSON(AssistantMessage{Type: "done", Reply: "Sorry, something went wrong."})
			continue
		}

		for _, word := range strings.Fields(conv.Reply) {
			if err := conn.WriteJSON(AssistantMessage{Type: "chunk", Text: word}); err != nil {
				return
			}
			time.Sleep(40 * time.Millisecond)
		}
		if err := conn.WriteJSON(AssistantMessage{Type: "done", Reply: conv.Reply}); err != nil {
			return
		}
	}
}

// TranscriptHandler returns the stored conversation history.
func (h *AssistantHandler) TranscriptHandler(w http.ResponseWriter, r *http.Request) {
	transcript, err := h.Service.Transcript(r.Context())
	if err != nil {
		http.Error(w, "Failed to fetch transcript", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(transcript)
}

// ClearTranscriptHandler deletes the stored conversation history.
func (h *AssistantHandler) ClearTranscriptHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.ClearTranscript(r.Context()); err != nil {
		http.Error(w, "Failed to clear transcript", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
