package catalog

import "strings"

// RecipeImage picks an illustration for a recipe from keywords in its
// name. It returns "" when nothing matches.
func RecipeImage(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "coffee"):
		return "/static/images/recipe-coffee.jpg"
	case strings.Contains(lower, "oat"), strings.Contains(lower, "honey"):
		return "/static/images/recipe-oatmeal.jpg"
	case strings.Contains(lower, "aloe"):
		return "/static/images/recipe-aloe.jpg"
	case strings.Contains(lower, "lavender"):
		return "/static/images/recipe-lavender.jpg"
	case strings.Contains(lower, "charcoal"), strings.Contains(lower, "black"):
		return "/static/images/recipe-charcoal.jpg"
	}
	return ""
}

// InstructionImage picks an illustration for one instruction paragraph.
func InstructionImage(text string) string {
	lower := strings.ToLower(text)
	has := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(lower, w) {
				return true
			}
		}
		return false
	}

	switch {
	case has("mix") && has("oil", "butter"):
		return "/static/images/step-mixing-oils.jpg"
	case has("stick blend", "trace", "emulsify"):
		return "/static/images/step-stick-blending.jpg"
	case has("pour") && has("mold"):
		return "/static/images/step-pouring-mold.jpg"
	case has("cut", "slice", "bar"):
		return "/static/images/step-cutting-bars.jpg"
	case has("lye", "sodium hydroxide", "safety"):
		return "/static/images/step-measuring-lye.jpg"
	}
	return ""
}

// ProcessStage is one card of the visual process guide.
type ProcessStage struct {
	Title string
	Image string
}

// ProcessGuide is shown beside every recipe's instructions.
var ProcessGuide = []ProcessStage{
	{Title: "Safety First", Image: "/static/images/step-safety.jpg"},
	{Title: "Trace", Image: "/static/images/step-trace.jpg"},
	{Title: "Gel Phase", Image: "/static/images/step-gel-phase.jpg"},
	{Title: "Curing", Image: "/static/images/step-curing.jpg"},
}
