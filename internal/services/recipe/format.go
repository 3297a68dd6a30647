package recipe

import (
	"fmt"
	"strings"
)

// FormatRecipes renders recipes in the labelled text format providers are
// asked to produce, so the output reads back through ParseRecipes.
func FormatRecipes(recipes []Recipe) string {
	sections := make([]string, 0, len(recipes))
	for _, r := range recipes {
		var b strings.Builder
		fmt.Fprintf(&b, "Recipe Name: %s\n", r.Name)
		fmt.Fprintf(&b, "Origin: %s\n", r.Origin)
		b.WriteString("Ingredients:\n")
		for _, ing := range r.Ingredients {
			fmt.Fprintf(&b, "• %s\n", ing)
		}
		b.WriteString("Instructions:\n")
		for i, step := range r.Instructions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, step)
		}
		fmt.Fprintf(&b, "Health Benefits: %s\n", r.HealthBenefits)
		fmt.Fprintf(&b, "Cultural Context: %s\n", r.CulturalContext)
		fmt.Fprintf(&b, "Cooking Time: %s\n", r.CookingTime)
		if n := r.Nutrition; n != nil {
			var parts []string
			if n.Calories != nil {
				parts = append(parts, fmt.Sprintf("%d calories", *n.Calories))
			}
			if n.Protein != "" {
				parts = append(parts, n.Protein+" protein")
			}
			if n.Fiber != "" {
				parts = append(parts, n.Fiber+" fiber")
			}
			fmt.Fprintf(&b, "Nutrition Info: %s\n", strings.Join(parts, ", "))
		}
		sections = append(sections, b.String())
	}
	return strings.Join(sections, "\n---\n")
}
