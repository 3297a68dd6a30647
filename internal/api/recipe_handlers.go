package api

import (
	"net/http"

	"github.com/kerouma/rouma/internal/services/recipe"
	"github.com/kerouma/rouma/internal/validation"
)

type GenerateRecipesRequest struct {
	PantryIngredients []string            `json:"pantry_ingredients" validate:"required,min=1,max=30,dive,ingredient"`
	HealthGoals       []string            `json:"health_goals" validate:"max=10,dive,max=100"`
	IsPremium         bool                `json:"is_premium"`
	PreferredProvider string              `json:"preferred_provider" validate:"provider_name"`
	UserContext       *recipe.UserContext `json:"user_context"`
}

type GenerateRecipesResponse struct {
	Recipes        []recipe.Recipe `json:"recipes"`
	GenerationTime float64         `json:"generation_time"`
	IsPremiumUser  bool            `json:"is_premium_user"`
	GenerationInfo *recipe.Outcome `json:"generation_info"`
}

func (s *Server) HandleGenerateRecipes(w http.ResponseWriter, r *http.Request) {
	var req GenerateRecipesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := validation.Struct(req); err != nil {
		writeError(w, err)
		return
	}

	recipes, outcome, err := s.recipes.GenerateRecipes(r.Context(), recipe.GenerationRequest{
		Ingredients:       req.PantryIngredients,
		HealthGoals:       req.HealthGoals,
		Premium:           req.IsPremium,
		PreferredProvider: req.PreferredProvider,
		User:              req.UserContext,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, GenerateRecipesResponse{
		Recipes:        recipes,
		GenerationTime: outcome.GenerationTime.Seconds(),
		IsPremiumUser:  req.IsPremium,
		GenerationInfo: outcome,
	})
}

// HandleProviderStatus probes every provider before reporting.
func (s *Server) HandleProviderStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.recipes.CheckAllProviders(r.Context()))
}

type AvailableProvidersResponse struct {
	Providers []recipe.ProviderType `json:"providers"`
}

func (s *Server) HandleAvailableProviders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, AvailableProvidersResponse{Providers: s.recipes.AvailableProviders()})
}
