// Package handlers provides HTTP handlers for the Card Advisor API.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hdbank-ai/card-advisor/internal/advisor"
	"github.com/hdbank-ai/card-advisor/internal/dialogue"
	"github.com/hdbank-ai/card-advisor/internal/observability"
)

// ChatHandler answers user messages.
type ChatHandler struct {
	logger   *observability.Logger
	engine   *advisor.Engine
	sessions *dialogue.Manager
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(logger *observability.Logger, engine *advisor.Engine, sessions *dialogue.Manager) *ChatHandler {
	return &ChatHandler{logger: logger, engine: engine, sessions: sessions}
}

// ChatRequestDTO represents the API request for a chat turn.
type ChatRequestDTO struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
}

// ChatResponseDTO represents the API response.
type ChatResponseDTO struct {
	Response  string `json:"response"`
	SessionID string `json:"sessionId"`
	Intent    string `json:"intent,omitempty"`
	Card      string `json:"card,omitempty"`
}

// ErrorDTO represents an API error payload.
type ErrorDTO struct {
	Error string `json:"error"`
}

// Chat handles POST /chat. One turn per call; turns for the same session
// are serialized on the session lock.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var reqDTO ChatRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		h.logger.Error().Err(err).Msg("Invalid request: not JSON")
		h.writeError(w, http.StatusBadRequest, "Invalid request. JSON required.")
		return
	}

	message := strings.TrimSpace(reqDTO.Message)
	if message == "" {
		h.logger.Warn().Msg("No message provided")
		h.writeError(w, http.StatusBadRequest, "No message provided")
		return
	}

	session := h.sessions.Get(reqDTO.SessionID)
	session.Lock()
	defer session.Unlock()

	log := h.logger.WithSession(session.ID)
	log.Info().Str("message", message).Msg("Received input")

	response := h.engine.Answer(ctx, session.State, message)

	log.Info().Str("response", response).Msg("Sent response")

	h.writeJSON(w, http.StatusOK, ChatResponseDTO{
		Response:  response,
		SessionID: session.ID,
		Intent:    string(session.State.LastIntent),
		Card:      session.State.CurrentCard,
	})
}

func (h *ChatHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *ChatHandler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, ErrorDTO{Error: msg})
}
