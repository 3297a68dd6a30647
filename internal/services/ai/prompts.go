package ai

import (
	"fmt"
	"strings"
)

// UserPreferences is the optional personalisation attached to a request.
type UserPreferences struct {
	SavedRecipeCount int      `json:"saved_recipe_count"`
	HealthGoals      []string `json:"health_goals"`
	Pantry           []string `json:"pantry"`
}

// PromptInput carries everything the recipe prompt depends on.
type PromptInput struct {
	Ingredients []string
	HealthGoals []string
	Premium     bool
	User        *UserPreferences
}

const premiumTemplate = `You are a culinary expert specializing in authentic African cuisine. Generate 3 detailed, traditional African recipes using these available ingredients: %s%s.%s

Focus on:
- Traditional African cooking methods and flavors
- Nutritional benefits of indigenous ingredients
- Cultural significance of the dishes
- Seasonal and locally available ingredients
- Personalization based on user's preferences and history

For each recipe, provide:
Recipe Name: [Traditional African dish name]
Origin: [Country/region of origin]
Ingredients: [Complete list with quantities, emphasizing African staples]
Instructions: [Detailed step-by-step cooking method]
Health Benefits: [Specific nutritional advantages and medicinal properties]
Cultural Context: [Brief history or cultural significance]
Cooking Time: [Prep and total cooking time]
Nutrition Info: [Estimated calories, protein, fiber, key vitamins]

Format each recipe clearly and separate with "---".`

const standardTemplate = `Generate 3 simple, authentic African recipes using these ingredients: %s%s.%s

Focus on traditional African dishes that are:
- Easy to prepare
- Use common African ingredients and cooking methods
- Nutritious and satisfying
- Personalized to user's preferences when possible

For each recipe, provide:
Recipe Name: [African dish name]
Origin: [Country/region]
Ingredients: [List with basic quantities]
Instructions: [Simple cooking steps]
Health Benefits: [Key nutritional benefits]
Cultural Context: [Brief cultural note]
Cooking Time: [Total time]

Separate each recipe with "---".`

const shortTemplate = "Create 3 African recipes using %s.%s Include name, origin, ingredients, instructions, and cooking time for each. Separate with ---."

// BuildRecipePrompt renders the recipe request for a provider.
// When maxLength is positive and the full prompt is longer, the short form
// is returned instead; it keeps the ingredients and at most two user goals.
func BuildRecipePrompt(in PromptInput, maxLength int) string {
	ingredientList := strings.Join(in.Ingredients, ", ")

	healthContext := ""
	if len(in.HealthGoals) > 0 {
		healthContext = " with focus on " + strings.Join(in.HealthGoals, ", ")
	}

	tmpl := standardTemplate
	if in.Premium {
		tmpl = premiumTemplate
	}
	prompt := fmt.Sprintf(tmpl, ingredientList, healthContext, userContextBlock(in.User))

	if maxLength > 0 && len(prompt) > maxLength {
		return shortPrompt(ingredientList, in.User)
	}
	return prompt
}

func userContextBlock(u *UserPreferences) string {
	if u == nil {
		return ""
	}

	var parts []string
	if u.SavedRecipeCount > 0 {
		parts = append(parts, fmt.Sprintf("User has previously saved %d recipes, suggesting they enjoy diverse African cuisine", u.SavedRecipeCount))
	}
	if len(u.HealthGoals) > 0 {
		parts = append(parts, "User's health goals include: "+strings.Join(u.HealthGoals, ", "))
	}
	if len(u.Pantry) > 0 {
		parts = append(parts, "User typically has these ingredients available: "+strings.Join(u.Pantry, ", "))
	}
	if len(parts) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\nUser Preferences:")
	for _, p := range parts {
		b.WriteString("\n- ")
		b.WriteString(p)
	}
	return b.String()
}

func shortPrompt(ingredientList string, u *UserPreferences) string {
	prefs := ""
	if u != nil && len(u.HealthGoals) > 0 {
		goals := u.HealthGoals
		if len(goals) > 2 {
			goals = goals[:2]
		}
		prefs = " User prefers: " + strings.Join(goals, ", ")
	}
	return fmt.Sprintf(shortTemplate, ingredientList, prefs)
}
