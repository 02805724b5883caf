package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Simplici0/soapworks/internal/formulation"
)

// LoadDB reads the seeded catalog tables back into a Catalog.
func LoadDB(ctx context.Context, db *sql.DB) (*Catalog, error) {
	oils, err := queryOils(ctx, db)
	if err != nil {
		return nil, err
	}
	recipes, err := queryRecipes(ctx, db)
	if err != nil {
		return nil, err
	}
	return New(oils, recipes)
}

func queryOils(ctx context.Context, db *sql.DB) ([]formulation.Oil, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, name, sap, iodine, ins,
			lauric, myristic, palmitic, stearic,
			ricinoleic, oleic, linoleic, linolenic
		FROM oils
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query oils: %w", err)
	}
	defer rows.Close()

	oils := make([]formulation.Oil, 0)
	for rows.Next() {
		var o formulation.Oil
		if err := rows.Scan(
			&o.ID, &o.Name, &o.Sap, &o.Iodine, &o.INS,
			&o.Lauric, &o.Myristic, &o.Palmitic, &o.Stearic,
			&o.Ricinoleic, &o.Oleic, &o.Linoleic, &o.Linolenic,
		); err != nil {
			return nil, fmt.Errorf("scan oil: %w", err)
		}
		oils = append(oils, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate oils: %w", err)
	}

	return oils, nil
}

func queryRecipes(ctx context.Context, db *sql.DB) ([]Recipe, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, slug, name, group_name, type, ingredients_json,
			instructions, source_url, COALESCE(benefits, '')
		FROM recipes
		ORDER BY position, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query recipes: %w", err)
	}
	defer rows.Close()

	recipes := make([]Recipe, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		var (
			r               Recipe
			id              int64
			ingredientsJSON string
		)
		if err := rows.Scan(&id, &r.Slug, &r.Name, &r.Group, &r.Type, &ingredientsJSON,
			&r.Instructions, &r.SourceURL, &r.Benefits); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		if err := json.Unmarshal([]byte(ingredientsJSON), &r.Ingredients); err != nil {
			return nil, fmt.Errorf("decode ingredients of %q: %w", r.Slug, err)
		}
		recipes = append(recipes, r)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipes: %w", err)
	}
	rows.Close()

	for i, id := range ids {
		structured, err := queryIngredients(ctx, db, id)
		if err != nil {
			return nil, err
		}
		recipes[i].StructuredIngredients = structured
	}

	return recipes, nil
}

func queryIngredients(ctx context.Context, db *sql.DB, recipeID int64) ([]Ingredient, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT amount, unit, name, original, percentage, is_percentage
		FROM recipe_ingredients
		WHERE recipe_id = ?
		ORDER BY position
	`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("query recipe ingredients: %w", err)
	}
	defer rows.Close()

	var out []Ingredient
	for rows.Next() {
		var ing Ingredient
		if err := rows.Scan(&ing.Amount, &ing.Unit, &ing.Name, &ing.Original, &ing.Percentage, &ing.IsPercentage); err != nil {
			return nil, fmt.Errorf("scan recipe ingredient: %w", err)
		}
		out = append(out, ing)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipe ingredients: %w", err)
	}

	return out, nil
}
