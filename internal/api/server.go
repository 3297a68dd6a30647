package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/kerouma/rouma/internal/errors"
	"github.com/kerouma/rouma/internal/services/kitchen"
	"github.com/kerouma/rouma/internal/services/recipe"
)

type Server struct {
	recipes *recipe.Service
	kitchen *kitchen.Kitchen
}

func NewServer(recipes *recipe.Service, k *kitchen.Kitchen) *Server {
	if k == nil {
		k = kitchen.New()
	}
	return &Server{
		recipes: recipes,
		kitchen: k,
	}
}

// RegisterRoutes mounts every API endpoint on r.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Route("/api/recipes", func(r chi.Router) {
		r.Post("/generate", s.HandleGenerateRecipes)
		r.Get("/providers/status", s.HandleProviderStatus)
		r.Get("/providers/available", s.HandleAvailableProviders)
	})

	r.Route("/api/chat", func(r chi.Router) {
		r.Post("/send", s.HandleChat)
		r.Get("/suggestions", s.HandleChatSuggestions)
		r.Post("/feedback", s.HandleChatFeedback)
	})

	r.Route("/api/kitchen", func(r chi.Router) {
		r.Post("/start-cooking", s.HandleStartCooking)
		r.Post("/next-step", s.HandleNextStep)
		r.Post("/set-timer", s.HandleSetTimer)
		r.Post("/voice-command", s.HandleVoiceCommand)
		r.Post("/nutrition-info", s.HandleNutritionInfo)
	})
}

type errorResponse struct {
	Error              string `json:"error"`
	Code               string `json:"code,omitempty"`
	RecoverySuggestion string `json:"recovery_suggestion,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Failed to encode response", "error", err)
	}
}

// writeError renders AppErrors with their own status; anything else is a 500.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		msg := appErr.Message
		if !appErr.IsOperational {
			msg = "internal server error"
		}
		writeJSON(w, appErr.StatusCode, errorResponse{
			Error:              msg,
			Code:               appErr.Code(),
			RecoverySuggestion: appErr.RecoverySuggestion(),
		})
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewValidationError("invalid request body", "INVALID_BODY", "Send a JSON object.")
	}
	return nil
}
