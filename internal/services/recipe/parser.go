package recipe

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kerouma/rouma/internal/validation"
)

const (
	recipeDelimiter = "---"
	maxRecipes      = 3

	defaultName            = "African Recipe"
	defaultOrigin          = "Africa"
	defaultHealthBenefits  = "Nutritious and delicious"
	defaultCulturalContext = "Traditional African cuisine"
	defaultCookingTime     = "30 minutes"
)

type field int

const (
	fieldName field = iota
	fieldOrigin
	fieldIngredients
	fieldInstructions
	fieldHealth
	fieldCulture
	fieldCookingTime
	fieldNutrition
)

var (
	labelPattern = regexp.MustCompile(`(?i)\b(recipe name|name|origin|ingredients?|instructions?|health benefits?|cultural context|cooking time|nutrition info)\**\s*:`)

	ingredientSplit  = regexp.MustCompile(`[-•\n]`)
	instructionSplit = regexp.MustCompile(`[-•\n]|\d+\.`)

	caloriesPattern = regexp.MustCompile(`(?i)(\d+)\s*calories?`)
	proteinPattern  = regexp.MustCompile(`(?i)(\d+)g?\s*protein`)
	fiberPattern    = regexp.MustCompile(`(?i)(\d+)g?\s*fiber`)
)

func labelField(label string) field {
	l := strings.ToLower(label)
	switch {
	case strings.HasSuffix(l, "name"):
		return fieldName
	case l == "origin":
		return fieldOrigin
	case strings.HasPrefix(l, "ingredient"):
		return fieldIngredients
	case strings.HasPrefix(l, "instruction"):
		return fieldInstructions
	case strings.HasPrefix(l, "health"):
		return fieldHealth
	case l == "cultural context":
		return fieldCulture
	case l == "cooking time":
		return fieldCookingTime
	default:
		return fieldNutrition
	}
}

// ParseRecipes turns delimited provider text into at most three recipes.
// Every non-blank segment yields a recipe; labels missing from a segment
// take their default values. Nutrition is only read when premium is set.
func ParseRecipes(text string, premium bool) []Recipe {
	recipes, _ := parseRecipes(text, premium)
	return recipes
}

// parseRecipes also reports how many segments carried at least one label.
func parseRecipes(text string, premium bool) ([]Recipe, int) {
	var (
		recipes  []Recipe
		labelled int
	)
	for _, segment := range strings.Split(text, recipeDelimiter) {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		r, found := parseSegment(segment, premium)
		recipes = append(recipes, r)
		if found {
			labelled++
		}
		if len(recipes) == maxRecipes {
			break
		}
	}
	return recipes, labelled
}

func parseSegment(segment string, premium bool) (Recipe, bool) {
	fields := extractFields(segment)

	r := Recipe{
		Name:            defaultName,
		Origin:          defaultOrigin,
		Ingredients:     []string{},
		Instructions:    []string{},
		HealthBenefits:  defaultHealthBenefits,
		CulturalContext: defaultCulturalContext,
		CookingTime:     defaultCookingTime,
		Tags:            []string{},
	}

	if v := firstLine(fields[fieldName]); v != "" {
		r.Name = v
	}
	if v := firstLine(fields[fieldOrigin]); v != "" {
		r.Origin = v
	}
	if v := fields[fieldIngredients]; v != "" {
		r.Ingredients = splitItems(ingredientSplit, v)
	}
	if v := fields[fieldInstructions]; v != "" {
		r.Instructions = splitItems(instructionSplit, v)
	}
	if v := fields[fieldHealth]; v != "" {
		r.HealthBenefits = v
	}
	if v := fields[fieldCulture]; v != "" {
		r.CulturalContext = v
	}
	if v := firstLine(fields[fieldCookingTime]); v != "" {
		r.CookingTime = v
	}
	if premium {
		if v := fields[fieldNutrition]; v != "" {
			r.Nutrition = parseNutrition(v)
		}
	}

	return r, len(fields) > 0
}

// extractFields maps each recognised label to the text up to the next label.
// The first occurrence of a label wins. Template slots echoed back by the
// model count as the label being present with no value.
func extractFields(segment string) map[field]string {
	matches := labelPattern.FindAllStringSubmatchIndex(segment, -1)
	fields := make(map[field]string, len(matches))
	for i, m := range matches {
		end := len(segment)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		f := labelField(segment[m[2]:m[3]])
		if _, seen := fields[f]; seen {
			continue
		}
		v := cleanValue(segment[m[1]:end])
		if validation.IsPlaceholder(v) {
			v = ""
		}
		fields[f] = v
	}
	return fields
}

func cleanValue(s string) string {
	return strings.Trim(s, " \t\r\n*#")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return cleanValue(s)
}

func splitItems(re *regexp.Regexp, s string) []string {
	parts := re.Split(s, -1)
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.Trim(p, " \t\r*"); !validation.IsPlaceholder(p) {
			items = append(items, p)
		}
	}
	return items
}

// parseNutrition extracts calories, protein and fiber independently.
// It returns nil when none of them is present.
func parseNutrition(text string) *Nutrition {
	var n Nutrition
	found := false

	if m := caloriesPattern.FindStringSubmatch(text); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			n.Calories = &v
			found = true
		}
	}
	if m := proteinPattern.FindStringSubmatch(text); m != nil {
		n.Protein = m[1] + "g"
		found = true
	}
	if m := fiberPattern.FindStringSubmatch(text); m != nil {
		n.Fiber = m[1] + "g"
		found = true
	}

	if !found {
		return nil
	}
	return &n
}
