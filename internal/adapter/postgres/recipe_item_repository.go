package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/YelzhanWeb/recipes/internal/domain"
	"github.com/YelzhanWeb/recipes/internal/interfaces"

	"github.com/jackc/pgx/v5"
)

type recipeItemRepository struct {
	db DB
}

func NewRecipeItemRepository(db DB) interfaces.RecipeItemRepository {
	return &recipeItemRepository{db: db}
}

func (r *recipeItemRepository) ListByRecipe(ctx context.Context, recipeID int) ([]domain.RecipeItemWithDetails, error) {
	query := `
		SELECT ri.id, ri.recipe_id, ri.inventory_id, ri.quantity_required, ri.unit,
		       i.id, i.item_name, i.unit_of_measurement, i.box_or_package_qty, i.unit_price, i.total_price,
		       i.ideal_qty, i.current_qty, i.shelf_life_days, i.last_updated, i.category
		FROM recipe_items ri
		JOIN inventory_items i ON i.id = ri.inventory_id
		WHERE ri.recipe_id = $1
		ORDER BY ri.id
	`
	rows, err := r.db.Query(ctx, query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipe items: %w", err)
	}
	defer rows.Close()

	items := []domain.RecipeItemWithDetails{}
	for rows.Next() {
		var it domain.RecipeItemWithDetails
		inv := &it.InventoryItem
		if err := rows.Scan(
			&it.ID, &it.RecipeID, &it.InventoryID, &it.QuantityRequired, &it.Unit,
			&inv.ID, &inv.ItemName, &inv.UnitOfMeasurement, &inv.BoxOrPackageQty, &inv.UnitPrice, &inv.TotalPrice,
			&inv.IdealQty, &inv.CurrentQty, &inv.ShelfLifeDays, &inv.LastUpdated, &inv.Category,
		); err != nil {
			return nil, fmt.Errorf("failed to scan recipe item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list recipe items: %w", err)
	}

	return items, nil
}

// Create links an inventory item to a recipe. Both rows are locked for the
// duration of the insert so neither can be deleted underneath it.
func (r *recipeItemRepository) Create(ctx context.Context, item *domain.RecipeItem) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists int
	err = tx.QueryRow(ctx, `SELECT 1 FROM recipes WHERE id = $1 FOR SHARE`, item.RecipeID).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("recipe %d: %w", item.RecipeID, domain.ErrNotFound)
		}
		return fmt.Errorf("failed to lock recipe: %w", err)
	}

	err = tx.QueryRow(ctx, `SELECT 1 FROM inventory_items WHERE id = $1 FOR SHARE`, item.InventoryID).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("inventory item %d: %w", item.InventoryID, domain.ErrUnknownInventoryItem)
		}
		return fmt.Errorf("failed to lock inventory item: %w", err)
	}

	query := `
		INSERT INTO recipe_items (recipe_id, inventory_id, quantity_required, unit)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err = tx.QueryRow(ctx, query, item.RecipeID, item.InventoryID, item.QuantityRequired, item.Unit).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("failed to insert recipe item: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *recipeItemRepository) Delete(ctx context.Context, recipeID, itemID int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM recipe_items WHERE id = $1 AND recipe_id = $2`, itemID, recipeID)
	if err != nil {
		return fmt.Errorf("failed to delete recipe item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
