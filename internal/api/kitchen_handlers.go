package api

import (
	"fmt"
	"net/http"

	"github.com/kerouma/rouma/internal/services/kitchen"
	"github.com/kerouma/rouma/internal/validation"
)

type StartCookingRequest struct {
	Recipe *kitchen.Recipe `json:"recipe_data" validate:"required"`
	UserID string          `json:"user_id,omitempty"`
}

type StartCookingResponse struct {
	Success bool            `json:"success"`
	Session kitchen.Session `json:"session"`
	Message string          `json:"message"`
}

func (s *Server) HandleStartCooking(w http.ResponseWriter, r *http.Request) {
	var req StartCookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := validation.Struct(req); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, StartCookingResponse{
		Success: true,
		Session: s.kitchen.StartSession(*req.Recipe),
		Message: "Cooking session started! Follow the step-by-step guidance.",
	})
}

type NextStepRequest struct {
	SessionID   string `json:"session_id" validate:"required"`
	CurrentStep int    `json:"current_step" validate:"min=0,max=1000"`
}

type NextStepResponse struct {
	Success  bool             `json:"success"`
	NextStep kitchen.Guidance `json:"next_step"`
}

func (s *Server) HandleNextStep(w http.ResponseWriter, r *http.Request) {
	var req NextStepRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := validation.Struct(req); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, NextStepResponse{Success: true, NextStep: s.kitchen.NextStep(req.CurrentStep)})
}

type SetTimerRequest struct {
	Duration int    `json:"duration" validate:"min=0,max=720"`
	Label    string `json:"label" validate:"max=100"`
}

type SetTimerResponse struct {
	Success bool          `json:"success"`
	Timer   kitchen.Timer `json:"timer"`
	Message string        `json:"message"`
}

func (s *Server) HandleSetTimer(w http.ResponseWriter, r *http.Request) {
	var req SetTimerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := validation.Struct(req); err != nil {
		writeError(w, err)
		return
	}

	timer := s.kitchen.NewTimer(req.Duration, req.Label)
	writeJSON(w, http.StatusOK, SetTimerResponse{
		Success: true,
		Timer:   timer,
		Message: fmt.Sprintf("Timer set for %d minutes", timer.Duration),
	})
}

type VoiceCommandRequest struct {
	Command string `json:"command" validate:"required,max=500"`
}

type VoiceCommandResponse struct {
	Success bool `json:"success"`
	kitchen.VoiceReply
}

func (s *Server) HandleVoiceCommand(w http.ResponseWriter, r *http.Request) {
	var req VoiceCommandRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := validation.Struct(req); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, VoiceCommandResponse{Success: true, VoiceReply: kitchen.InterpretVoiceCommand(req.Command)})
}

type NutritionInfoResponse struct {
	Success   bool                      `json:"success"`
	Nutrition kitchen.NutritionEstimate `json:"nutrition"`
}

func (s *Server) HandleNutritionInfo(w http.ResponseWriter, r *http.Request) {
	var req kitchen.Recipe
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, NutritionInfoResponse{Success: true, Nutrition: kitchen.EstimateNutrition(req)})
}
