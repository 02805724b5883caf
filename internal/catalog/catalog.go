// Package catalog holds the read-only oil table and recipe collection.
package catalog

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Simplici0/soapworks/internal/formulation"
)

//go:embed data/oils.json data/recipes.json
var dataFS embed.FS

// Catalog is the immutable oil table and recipe collection. It is safe
// for concurrent reads.
type Catalog struct {
	oils    []formulation.Oil
	oilByID formulation.OilMap
	recipes []Recipe
	bySlug  map[string]int
}

// New validates and indexes the given oils and recipes. Recipes without a
// slug get one derived from their name.
func New(oils []formulation.Oil, recipes []Recipe) (*Catalog, error) {
	c := &Catalog{
		oils:    make([]formulation.Oil, 0, len(oils)),
		oilByID: make(formulation.OilMap, len(oils)),
		recipes: make([]Recipe, 0, len(recipes)),
		bySlug:  make(map[string]int, len(recipes)),
	}

	var errs []error
	for _, o := range oils {
		if _, dup := c.oilByID[o.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate oil id %d", o.ID))
			continue
		}
		if o.Sap <= 0 {
			errs = append(errs, fmt.Errorf("oil %d (%s): sap must be greater than 0", o.ID, o.Name))
			continue
		}
		c.oilByID[o.ID] = o
		c.oils = append(c.oils, o)
	}
	sort.SliceStable(c.oils, func(i, j int) bool {
		return strings.ToLower(c.oils[i].Name) < strings.ToLower(c.oils[j].Name)
	})

	for _, r := range recipes {
		if r.Slug == "" {
			r.Slug = Slugify(r.Name)
		}
		if _, dup := c.bySlug[r.Slug]; dup {
			errs = append(errs, fmt.Errorf("duplicate recipe slug %q", r.Slug))
			continue
		}
		c.bySlug[r.Slug] = len(c.recipes)
		c.recipes = append(c.recipes, r)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	return c, nil
}

// LoadEmbedded builds the catalog shipped with the binary.
func LoadEmbedded() (*Catalog, error) {
	oilsJSON, err := dataFS.ReadFile("data/oils.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded oils: %w", err)
	}
	recipesJSON, err := dataFS.ReadFile("data/recipes.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded recipes: %w", err)
	}
	return Parse(oilsJSON, recipesJSON)
}

// Parse builds a catalog from an oil array and a recipe object keyed by
// group name.
func Parse(oilsJSON, recipesJSON []byte) (*Catalog, error) {
	var oils []formulation.Oil
	if err := json.Unmarshal(oilsJSON, &oils); err != nil {
		return nil, fmt.Errorf("decode oils: %w", err)
	}

	var groups map[string][]Recipe
	if err := json.Unmarshal(recipesJSON, &groups); err != nil {
		return nil, fmt.Errorf("decode recipes: %w", err)
	}

	var recipes []Recipe
	for _, name := range groupNames(groups) {
		for _, r := range groups[name] {
			r.Group = name
			recipes = append(recipes, r)
		}
	}

	return New(oils, recipes)
}

// groupNames returns the known groups in display order followed by any
// others alphabetically.
func groupNames(groups map[string][]Recipe) []string {
	names := make([]string, 0, len(groups))
	known := make(map[string]bool, len(groupOrder))
	for _, g := range groupOrder {
		known[g] = true
		if _, ok := groups[g]; ok {
			names = append(names, g)
		}
	}
	var extra []string
	for g := range groups {
		if !known[g] {
			extra = append(extra, g)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

// Oil implements formulation.OilSource.
func (c *Catalog) Oil(id int) (formulation.Oil, bool) {
	return c.oilByID.Oil(id)
}

// Oils returns the oil table sorted by name.
func (c *Catalog) Oils() []formulation.Oil {
	out := make([]formulation.Oil, len(c.oils))
	copy(out, c.oils)
	return out
}

// Recipes returns every recipe in group order.
func (c *Catalog) Recipes() []Recipe {
	out := make([]Recipe, len(c.recipes))
	copy(out, c.recipes)
	return out
}

// Recipe looks a recipe up by slug.
func (c *Catalog) Recipe(slug string) (Recipe, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return Recipe{}, false
	}
	return c.recipes[i], true
}

// Filter returns the recipes shown under a tab.
func (c *Catalog) Filter(tab Tab) []Recipe {
	out := make([]Recipe, 0, len(c.recipes))
	for _, r := range c.recipes {
		if tab.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// JumpList returns every recipe sorted by name for the quick jump picker.
func (c *Catalog) JumpList() []Recipe {
	out := c.Recipes()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
