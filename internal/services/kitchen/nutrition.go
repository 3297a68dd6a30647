package kitchen

// NutritionEstimate is a per-serving summary shown in cooking mode.
type NutritionEstimate struct {
	CaloriesPerServing int      `json:"calories_per_serving"`
	Protein            string   `json:"protein"`
	Carbohydrates      string   `json:"carbohydrates"`
	Fat                string   `json:"fat"`
	Fiber              string   `json:"fiber"`
	Sodium             string   `json:"sodium"`
	HealthScore        float64  `json:"health_score"`
	DietaryInfo        []string `json:"dietary_info"`
}

// EstimateNutrition returns a typical serving of a legume-and-grain dish.
// TODO: derive the estimate from the recipe's ingredient list once a food composition table is available.
func EstimateNutrition(Recipe) NutritionEstimate {
	return NutritionEstimate{
		CaloriesPerServing: 320,
		Protein:            "18g",
		Carbohydrates:      "45g",
		Fat:                "12g",
		Fiber:              "8g",
		Sodium:             "680mg",
		HealthScore:        8.5,
		DietaryInfo:        []string{"High in fiber", "Good source of protein", "Contains iron"},
	}
}
