package api

import (
	"log/slog"
	"net/http"

	"github.com/kerouma/rouma/internal/logger"
	"github.com/kerouma/rouma/internal/services/ai"
	"github.com/kerouma/rouma/internal/validation"
)

// fallbackProvider is reported when no provider could answer a chat message.
const fallbackProvider = "fallback"

type ChatRequest struct {
	Message           string `json:"message"`
	UserID            string `json:"user_id,omitempty"`
	PreferredProvider string `json:"preferred_provider" validate:"provider_name"`
}

type ChatResponse struct {
	Response       string  `json:"response"`
	ProviderUsed   string  `json:"provider_used"`
	GenerationTime float64 `json:"generation_time"`
	FallbackUsed   bool    `json:"fallback_used"`
}

func (s *Server) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := validation.Struct(req); err != nil {
		writeError(w, err)
		return
	}
	msg, err := validation.ValidateChatMessage(req.Message)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.recipes.Chat(r.Context(), ai.BuildChatPrompt(msg), req.PreferredProvider)
	if err != nil {
		slog.Error("Chat failed", "error", err, logger.WithTraceContext(r.Context()))
		writeJSON(w, http.StatusOK, ChatResponse{
			Response:     ai.ChatApology,
			ProviderUsed: fallbackProvider,
			FallbackUsed: true,
		})
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{
		Response:       res.Response,
		ProviderUsed:   string(res.ProviderUsed),
		GenerationTime: res.GenerationTime.Seconds(),
		FallbackUsed:   res.FallbackUsed,
	})
}

type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

func (s *Server) HandleChatSuggestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, SuggestionsResponse{Suggestions: ai.ChatSuggestions()})
}

type ChatFeedbackRequest struct {
	MessageID string `json:"message_id"`
	Rating    int    `json:"rating" validate:"min=0,max=5"`
	Comment   string `json:"comment" validate:"max=1000"`
}

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HandleChatFeedback only logs the feedback; nothing is stored.
func (s *Server) HandleChatFeedback(w http.ResponseWriter, r *http.Request) {
	var req ChatFeedbackRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := validation.Struct(req); err != nil {
		writeError(w, err)
		return
	}

	slog.Info("Chat feedback received",
		"message_id", req.MessageID,
		"rating", req.Rating,
		"comment", req.Comment,
		logger.WithTraceContext(r.Context()))

	writeJSON(w, http.StatusOK, StatusResponse{Status: "success", Message: "Thank you for your feedback!"})
}
