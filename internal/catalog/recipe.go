package catalog

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Recipe is one entry of the static recipe catalog.
type Recipe struct {
	Slug                  string         `json:"slug"`
	Name                  string         `json:"name"`
	Group                 string         `json:"group"`
	Type                  string         `json:"type"`
	Ingredients           IngredientList `json:"ingredients"`
	StructuredIngredients []Ingredient   `json:"structured_ingredients,omitempty"`
	Instructions          string         `json:"instructions"`
	SourceURL             string         `json:"source_url"`
	Benefits              string         `json:"benefits,omitempty"`
}

// IsHotProcess reports whether the recipe is cooked after trace.
func (r Recipe) IsHotProcess() bool {
	return r.Type == "Hot Process"
}

// Ingredient is a structured ingredient line. Percentage-based lines carry
// IsPercentage; the rest carry an amount and unit.
type Ingredient struct {
	Amount       float64 `json:"amount,omitempty"`
	Unit         string  `json:"unit,omitempty"`
	Name         string  `json:"name,omitempty"`
	Original     string  `json:"original,omitempty"`
	Percentage   float64 `json:"percentage,omitempty"`
	IsPercentage bool    `json:"is_percentage,omitempty"`
}

// Scaled formats the ingredient quantity for a batch scale. Percentages
// are never scaled. ok is false when the line has no usable quantity.
func (i Ingredient) Scaled(scale float64) (string, bool) {
	if i.IsPercentage {
		return strconv.FormatFloat(i.Percentage, 'f', -1, 64) + "%", true
	}
	if i.Amount == 0 {
		return "", false
	}
	rounded := math.Round(i.Amount*scale*100) / 100
	return strings.TrimSpace(strconv.FormatFloat(rounded, 'f', -1, 64) + " " + i.Unit), true
}

// Display is the text shown for the ingredient at the given scale, falling
// back to the original line.
func (i Ingredient) Display(scale float64) string {
	qty, ok := i.Scaled(scale)
	if !ok {
		if i.Original != "" {
			return i.Original
		}
		return i.Name
	}
	if i.Name == "" {
		return qty
	}
	return qty + " " + i.Name
}

// IngredientList holds ingredients as either an ordered list or a single
// delimited string, matching both shapes found in the catalog data.
type IngredientList struct {
	Items []string
	Text  string
}

// UnmarshalJSON accepts a JSON array of strings or a single string.
func (l *IngredientList) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		l.Items, l.Text = items, ""
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("ingredients must be a string or a list of strings: %w", err)
	}
	l.Items, l.Text = nil, text
	return nil
}

// MarshalJSON writes the list back in the shape it was read in.
func (l IngredientList) MarshalJSON() ([]byte, error) {
	if l.Items == nil {
		return json.Marshal(l.Text)
	}
	return json.Marshal(l.Items)
}

var ingredientSplit = regexp.MustCompile(`,|\n`)

// Lines returns one string per ingredient. Delimited strings are split on
// commas and newlines.
func (l IngredientList) Lines() []string {
	if l.Items != nil {
		return l.Items
	}
	if strings.TrimSpace(l.Text) == "" {
		return nil
	}
	parts := ingredientSplit.Split(l.Text, -1)
	lines := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			lines = append(lines, p)
		}
	}
	return lines
}

// Preview returns at most n lines and how many were left out.
func (l IngredientList) Preview(n int) ([]string, int) {
	lines := l.Lines()
	if len(lines) <= n {
		return lines, 0
	}
	return lines[:n], len(lines) - n
}

// Step is one paragraph of a recipe's instructions.
type Step struct {
	Number int
	Text   string
	Image  string
}

// IsStep reports whether the paragraph was a numbered step.
func (s Step) IsStep() bool {
	return s.Number > 0
}

var stepPrefix = regexp.MustCompile(`^(\d+)\.`)

// Steps splits the instructions into paragraphs. Lines starting with
// "N." become numbered steps with the marker stripped.
func (r Recipe) Steps() []Step {
	var steps []Step
	for _, paragraph := range strings.Split(r.Instructions, "\n") {
		if strings.TrimSpace(paragraph) == "" {
			continue
		}
		step := Step{Text: paragraph, Image: InstructionImage(paragraph)}
		if m := stepPrefix.FindStringSubmatch(paragraph); m != nil {
			step.Number, _ = strconv.Atoi(m[1])
			step.Text = strings.TrimSpace(paragraph[strings.Index(paragraph, ".")+1:])
		}
		steps = append(steps, step)
	}
	return steps
}

// Batch scale slider bounds.
const (
	MinScale     = 0.5
	MaxScale     = 3.0
	ScaleStep    = 0.1
	DefaultScale = 1.0
)

// ClampScale snaps a requested batch scale to the slider range and step.
func ClampScale(scale float64) float64 {
	if math.IsNaN(scale) || math.IsInf(scale, 0) {
		return DefaultScale
	}
	scale = math.Round(scale/ScaleStep) * ScaleStep
	scale = math.Round(scale*10) / 10
	return math.Min(MaxScale, math.Max(MinScale, scale))
}

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a recipe name.
func Slugify(name string) string {
	return strings.Trim(slugInvalid.ReplaceAllString(strings.ToLower(name), "-"), "-")
}
