package recipe

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kerouma/rouma/internal/services/ai"
)

type dish struct {
	style       string
	origin      string
	staples     []string
	steps       []string
	benefits    string
	culture     string
	cookingTime string
	tag         string
	calories    int
	protein     int
	fiber       int
}

var mockDishes = []dish{
	{
		style:   "Jollof",
		origin:  "Nigeria",
		staples: []string{"tomato paste", "scotch bonnet pepper", "thyme"},
		steps: []string{
			"Blend tomatoes, peppers and onion into a smooth base",
			"Fry the base in oil until it darkens and the oil separates",
			"Stir in {main} with stock and simmer covered until tender",
			"Rest for five minutes and fluff before serving",
		},
		benefits:    "Tomatoes supply lycopene and vitamin C",
		culture:     "Jollof is the centrepiece of West African celebrations",
		cookingTime: "45 minutes",
		tag:         "west-african",
		calories:    420, protein: 12, fiber: 6,
	},
	{
		style:   "Groundnut Stew",
		origin:  "Ghana",
		staples: []string{"peanut butter", "ginger", "garlic"},
		steps: []string{
			"Sauté onion, ginger and garlic until fragrant",
			"Add {main} and cook for a few minutes",
			"Whisk in peanut butter loosened with warm stock",
			"Simmer gently until thick and serve with rice or fufu",
		},
		benefits:    "Groundnuts add plant protein and healthy fats",
		culture:     "Known as nkatenkwan, a Sunday favourite across Ghana",
		cookingTime: "50 minutes",
		tag:         "west-african",
		calories:    480, protein: 22, fiber: 7,
	},
	{
		style:   "Sukuma Stir-Fry",
		origin:  "Kenya",
		staples: []string{"collard greens", "onion", "tomato"},
		steps: []string{
			"Slice the greens thinly",
			"Fry onion and tomato until soft",
			"Add {main} and the greens and toss over high heat",
			"Season with salt and serve alongside ugali",
		},
		benefits:    "Leafy greens provide iron, calcium and fibre",
		culture:     "Sukuma wiki means stretch the week in Swahili",
		cookingTime: "20 minutes",
		tag:         "east-african",
		calories:    210, protein: 8, fiber: 9,
	},
	{
		style:   "Wat",
		origin:  "Ethiopia",
		staples: []string{"berbere", "niter kibbeh", "red onion"},
		steps: []string{
			"Cook finely chopped red onion slowly without oil until dry",
			"Add niter kibbeh and berbere and fry until deep red",
			"Add {main} with water and simmer until rich",
			"Serve on injera",
		},
		benefits:    "Berbere spices are rich in antioxidants",
		culture:     "Wat is shared from a single platter of injera",
		cookingTime: "60 minutes",
		tag:         "east-african",
		calories:    390, protein: 18, fiber: 11,
	},
	{
		style:   "Chakalaka",
		origin:  "South Africa",
		staples: []string{"carrots", "bell pepper", "curry powder"},
		steps: []string{
			"Fry onion, peppers and curry powder together",
			"Add grated carrots and {main}",
			"Simmer with tomato until the relish thickens",
			"Serve warm or cold with pap",
		},
		benefits:    "Carrots and peppers are high in vitamin A",
		culture:     "A township relish served at every braai",
		cookingTime: "35 minutes",
		tag:         "southern-african",
		calories:    260, protein: 9, fiber: 8,
	},
	{
		style:   "Pepper Soup",
		origin:  "Cameroon",
		staples: []string{"calabash nutmeg", "uziza seeds", "scent leaves"},
		steps: []string{
			"Toast and grind the pepper soup spices",
			"Bring water to a boil with the spice blend",
			"Add {main} and cook until done",
			"Finish with scent leaves and serve hot",
		},
		benefits:    "Warming spices that aid digestion",
		culture:     "Served to new mothers and on cold evenings",
		cookingTime: "40 minutes",
		tag:         "central-african",
		calories:    300, protein: 25, fiber: 4,
	},
}

var mockChatReplies = []string{
	"That's a great question about African cuisine! I'd recommend trying jollof rice - it's a beloved West African dish that's both flavorful and nutritious.",
	"For authentic African cooking, I suggest exploring traditional spices like berbere from Ethiopia or harissa from North Africa. They add incredible depth to dishes!",
	"Have you tried making ugali? It's a staple food in East Africa that pairs wonderfully with stews and vegetables.",
	"African cuisine offers so many healthy options! Consider dishes with leafy greens like sukuma wiki or moringa leaves - they're packed with nutrients.",
	"For a quick African-inspired meal, try making a simple groundnut stew with peanut butter, vegetables, and your choice of protein.",
	"Traditional African fermented foods like injera bread or fermented porridge are great for gut health and have unique flavors!",
}

var titleCaser = cases.Title(language.English)

// MockProvider is the built-in generator. It makes no external call and
// never fails, so it terminates every fallback chain.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Name() ProviderType {
	return ProviderMock
}

func (p *MockProvider) Probe(ctx context.Context) error {
	return nil
}

// Generate returns a canned chat reply, or recipe text in the labelled format.
func (p *MockProvider) Generate(ctx context.Context, prompt Prompt) (string, error) {
	if prompt.Kind == PromptChat {
		return mockChatReplies[hashString(prompt.Text)%uint32(len(mockChatReplies))], nil
	}

	var in ai.PromptInput
	if prompt.Input != nil {
		in = *prompt.Input
	}
	return FormatRecipes(mockRecipes(in)), nil
}

// WriteRecipes builds recipes straight from the request.
func (p *MockProvider) WriteRecipes(ctx context.Context, in ai.PromptInput) ([]Recipe, error) {
	return mockRecipes(in), nil
}

// mockRecipes is deterministic: the same input always selects the same dishes.
// Premium requests get three recipes with nutrition, standard requests two.
func mockRecipes(in ai.PromptInput) []Recipe {
	pantry := in.Ingredients
	if len(pantry) == 0 {
		pantry = []string{"seasonal vegetables"}
	}
	if len(pantry) > 5 {
		pantry = pantry[:5]
	}

	count := 2
	if in.Premium {
		count = maxRecipes
	}

	start := int(hashString(strings.ToLower(strings.Join(pantry, ","))) % uint32(len(mockDishes)))
	mainIngredients := strings.Join(pantry[:min(3, len(pantry))], ", ")
	lead := titleCaser.String(strings.Join(pantry[:min(2, len(pantry))], " & "))

	recipes := make([]Recipe, 0, count)
	for i := 0; i < count; i++ {
		d := mockDishes[(start+i)%len(mockDishes)]

		steps := make([]string, len(d.steps))
		for j, s := range d.steps {
			steps[j] = strings.ReplaceAll(s, "{main}", mainIngredients)
		}

		benefits := d.benefits
		if len(in.HealthGoals) > 0 {
			benefits = fmt.Sprintf("%s. A good fit for %s", benefits, strings.Join(in.HealthGoals, ", "))
		}

		r := Recipe{
			Name:            fmt.Sprintf("%s %s", lead, d.style),
			Origin:          d.origin,
			Ingredients:     append(append([]string{}, pantry...), d.staples...),
			Instructions:    steps,
			HealthBenefits:  benefits,
			CulturalContext: d.culture,
			CookingTime:     d.cookingTime,
			Tags:            []string{"african", "traditional", d.tag},
		}
		if in.Premium {
			calories := d.calories
			r.Nutrition = &Nutrition{
				Calories: &calories,
				Protein:  fmt.Sprintf("%dg", d.protein),
				Fiber:    fmt.Sprintf("%dg", d.fiber),
			}
		}
		recipes = append(recipes, r)
	}
	return recipes
}

func hashString(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}
