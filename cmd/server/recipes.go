package main

import (
	"bytes"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/soapworks/internal/catalog"
	"github.com/Simplici0/soapworks/internal/export"
)

const previewIngredients = 5

type recipeCard struct {
	Recipe  catalog.Recipe
	Preview []string
	More    int
	Summary string
}

type homeViewData struct {
	baseViewData
	Cards    []recipeCard
	JumpList []catalog.Recipe
}

type recipeViewData struct {
	baseViewData
	Recipe       catalog.Recipe
	BackTab      string
	Image        string
	Scale        float64
	ScalePercent int
	MinScale     float64
	MaxScale     float64
	ScaleStep    float64
	Ingredients  []string
	Steps        []catalog.Step
	Guide        []catalog.ProcessStage
}

func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	tab := catalog.TabByID(r.URL.Query().Get("tab"))
	if tab.ID == catalog.CalculatorTab {
		http.Redirect(w, r, "/calculator", http.StatusSeeOther)
		return
	}

	recipes := s.catalog.Filter(tab)
	cards := make([]recipeCard, 0, len(recipes))
	for _, recipe := range recipes {
		preview, more := recipe.Ingredients.Preview(previewIngredients)
		cards = append(cards, recipeCard{
			Recipe:  recipe,
			Preview: preview,
			More:    more,
			Summary: summarize(recipe),
		})
	}

	s.renderTemplate(w, http.StatusOK, "home.html", homeViewData{
		baseViewData: newBaseViewData(tab),
		Cards:        cards,
		JumpList:     s.catalog.JumpList(),
	})
}

// handleRecipeJump serves the jump picker when scripts are disabled.
func (s *server) handleRecipeJump(w http.ResponseWriter, r *http.Request) {
	recipe, ok := s.catalog.Recipe(r.URL.Query().Get("slug"))
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/recipes/"+url.PathEscape(recipe.Slug), http.StatusSeeOther)
}

func (s *server) handleRecipeDetail(w http.ResponseWriter, r *http.Request) {
	recipe, ok := s.catalog.Recipe(chi.URLParam(r, "slug"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	scale := parseScale(r.URL.Query().Get("scale"))
	tab := tabForRecipe(recipe)
	base := newBaseViewData(tab)
	base.PageTitle = recipe.Name

	s.renderTemplate(w, http.StatusOK, "recipe.html", recipeViewData{
		baseViewData: base,
		Recipe:       recipe,
		BackTab:      tab.ID,
		Image:        catalog.RecipeImage(recipe.Name),
		Scale:        scale,
		ScalePercent: int(math.Round(scale * 100)),
		MinScale:     catalog.MinScale,
		MaxScale:     catalog.MaxScale,
		ScaleStep:    catalog.ScaleStep,
		Ingredients:  ingredientLines(recipe, scale),
		Steps:        recipe.Steps(),
		Guide:        catalog.ProcessGuide,
	})
}

func (s *server) handleRecipePDF(w http.ResponseWriter, r *http.Request) {
	recipe, ok := s.catalog.Recipe(chi.URLParam(r, "slug"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	var buf bytes.Buffer
	if err := export.RecipePDF(&buf, recipe, parseScale(r.URL.Query().Get("scale"))); err != nil {
		log.Printf("render recipe pdf %s: %v", recipe.Slug, err)
		http.Error(w, "failed to render pdf", http.StatusInternalServerError)
		return
	}

	s.metrics.ObserveExport("recipe-pdf")
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", recipe.Slug+".pdf"))
	_, _ = buf.WriteTo(w)
}

// ingredientLines prefers the structured ingredients, which can be scaled,
// over the free-form list.
func ingredientLines(recipe catalog.Recipe, scale float64) []string {
	if len(recipe.StructuredIngredients) == 0 {
		return recipe.Ingredients.Lines()
	}
	lines := make([]string, 0, len(recipe.StructuredIngredients))
	for _, ing := range recipe.StructuredIngredients {
		lines = append(lines, ing.Display(scale))
	}
	return lines
}

// parseScale reads the batch scale, falling back to the default on bad input.
func parseScale(raw string) float64 {
	if raw == "" {
		return catalog.DefaultScale
	}
	scale, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return catalog.DefaultScale
	}
	return catalog.ClampScale(scale)
}

func tabForRecipe(recipe catalog.Recipe) catalog.Tab {
	for _, tab := range catalog.Tabs {
		if tab.Type != "" && tab.Type == recipe.Type {
			return tab
		}
	}
	return catalog.Tabs[0]
}

func summarize(recipe catalog.Recipe) string {
	const limit = 140
	text := recipe.Benefits
	if text == "" {
		text = recipe.Instructions
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
