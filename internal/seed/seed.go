package seed

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Simplici0/soapworks/internal/catalog"
	"github.com/Simplici0/soapworks/internal/formulation"
)

// Stats contains seed operation counters.
type Stats struct {
	Oils    int
	Recipes int
	Updated int
	Removed int
}

// Inserts is the total number of new catalog rows written.
func (s Stats) Inserts() int {
	return s.Oils + s.Recipes
}

// Run syncs the database with the catalog in one transaction. Oils are
// matched by id and recipes by slug; existing rows are overwritten and rows
// missing from the catalog are deleted, so the catalog is the source of truth.
func Run(ctx context.Context, db *sql.DB, cat *catalog.Catalog) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := prune(ctx, tx, cat, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	for _, oil := range cat.Oils() {
		if err := upsertOil(ctx, tx, oil, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}
	for i, recipe := range cat.Recipes() {
		if err := upsertRecipe(ctx, tx, recipe, i, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

// prune deletes oils and recipes the catalog no longer carries. Ingredients
// are deleted explicitly since foreign keys may be off on the connection.
func prune(ctx context.Context, tx *sql.Tx, cat *catalog.Catalog, stats *Stats) error {
	oilIDs := make(map[int]bool, len(cat.Oils()))
	for _, o := range cat.Oils() {
		oilIDs[o.ID] = true
	}
	staleOils, err := queryInts(ctx, tx, `SELECT id FROM oils`)
	if err != nil {
		return fmt.Errorf("list seeded oils: %w", err)
	}
	for _, id := range staleOils {
		if oilIDs[id] {
			continue
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM oils WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete oil %d: %w", id, err)
		}
		stats.Removed++
	}

	rows, err := tx.QueryContext(ctx, `SELECT id, slug FROM recipes`)
	if err != nil {
		return fmt.Errorf("list seeded recipes: %w", err)
	}
	var staleRecipes []int64
	for rows.Next() {
		var id int64
		var slug string
		if err := rows.Scan(&id, &slug); err != nil {
			rows.Close()
			return fmt.Errorf("scan seeded recipe: %w", err)
		}
		if _, ok := cat.Recipe(slug); !ok {
			staleRecipes = append(staleRecipes, id)
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("list seeded recipes: %w", err)
	}
	rows.Close()
	for _, id := range staleRecipes {
		if err := deleteIngredients(ctx, tx, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete recipe %d: %w", id, err)
		}
		stats.Removed++
	}
	return nil
}

func upsertOil(ctx context.Context, tx *sql.Tx, oil formulation.Oil, stats *Stats) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM oils WHERE id = ?)`, oil.ID).Scan(&exists); err != nil {
		return fmt.Errorf("check oil %d existence: %w", oil.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO oils (
			id, name, sap, iodine, ins,
			lauric, myristic, palmitic, stearic,
			ricinoleic, oleic, linoleic, linolenic
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			sap = excluded.sap,
			iodine = excluded.iodine,
			ins = excluded.ins,
			lauric = excluded.lauric,
			myristic = excluded.myristic,
			palmitic = excluded.palmitic,
			stearic = excluded.stearic,
			ricinoleic = excluded.ricinoleic,
			oleic = excluded.oleic,
			linoleic = excluded.linoleic,
			linolenic = excluded.linolenic
	`,
		oil.ID, oil.Name, oil.Sap, oil.Iodine, oil.INS,
		oil.Lauric, oil.Myristic, oil.Palmitic, oil.Stearic,
		oil.Ricinoleic, oil.Oleic, oil.Linoleic, oil.Linolenic,
	); err != nil {
		return fmt.Errorf("upsert oil %q: %w", oil.Name, err)
	}

	if exists {
		stats.Updated++
	} else {
		stats.Oils++
	}
	return nil
}

func upsertRecipe(ctx context.Context, tx *sql.Tx, recipe catalog.Recipe, position int, stats *Stats) error {
	ingredientsJSON, err := json.Marshal(recipe.Ingredients)
	if err != nil {
		return fmt.Errorf("encode ingredients of %q: %w", recipe.Slug, err)
	}

	var benefits any
	if recipe.Benefits != "" {
		benefits = recipe.Benefits
	}

	var recipeID int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM recipes WHERE slug = ?`, recipe.Slug).Scan(&recipeID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		result, err := tx.ExecContext(ctx, `
			INSERT INTO recipes (slug, name, group_name, type, ingredients_json, instructions, source_url, benefits, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, recipe.Slug, recipe.Name, recipe.Group, recipe.Type, string(ingredientsJSON),
			recipe.Instructions, recipe.SourceURL, benefits, position)
		if err != nil {
			return fmt.Errorf("insert recipe %q: %w", recipe.Slug, err)
		}
		if recipeID, err = result.LastInsertId(); err != nil {
			return fmt.Errorf("read id of recipe %q: %w", recipe.Slug, err)
		}
		stats.Recipes++
	case err != nil:
		return fmt.Errorf("look up recipe %q: %w", recipe.Slug, err)
	default:
		if _, err := tx.ExecContext(ctx, `
			UPDATE recipes
			SET name = ?, group_name = ?, type = ?, ingredients_json = ?,
				instructions = ?, source_url = ?, benefits = ?, position = ?
			WHERE id = ?
		`, recipe.Name, recipe.Group, recipe.Type, string(ingredientsJSON),
			recipe.Instructions, recipe.SourceURL, benefits, position, recipeID); err != nil {
			return fmt.Errorf("update recipe %q: %w", recipe.Slug, err)
		}
		if err := deleteIngredients(ctx, tx, recipeID); err != nil {
			return err
		}
		stats.Updated++
	}

	for i, ing := range recipe.StructuredIngredients {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO recipe_ingredients (recipe_id, position, amount, unit, name, original, percentage, is_percentage)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, recipeID, i, ing.Amount, ing.Unit, ing.Name, ing.Original, ing.Percentage, ing.IsPercentage); err != nil {
			return fmt.Errorf("insert ingredient %d of %q: %w", i, recipe.Slug, err)
		}
	}
	return nil
}

func deleteIngredients(ctx context.Context, tx *sql.Tx, recipeID int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = ?`, recipeID); err != nil {
		return fmt.Errorf("delete ingredients of recipe %d: %w", recipeID, err)
	}
	return nil
}

func queryInts(ctx context.Context, tx *sql.Tx, query string) ([]int, error) {
	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
