package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/YelzhanWeb/recipes/internal/domain"
	"github.com/YelzhanWeb/recipes/internal/forms"
	"github.com/YelzhanWeb/recipes/internal/interfaces"
)

const recipeColumns = `id, dish_name, order_type, description, selling_price, category, is_active, created_at, updated_at`

type recipeRepository struct {
	db DB
}

func NewRecipeRepository(db DB) interfaces.RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) List(ctx context.Context) ([]domain.Recipe, error) {
	rows, err := r.db.Query(ctx, `SELECT `+recipeColumns+` FROM recipes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	recipes := []domain.Recipe{}
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, *recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	return recipes, nil
}

func (r *recipeRepository) FindByID(ctx context.Context, id int) (*domain.Recipe, error) {
	row := r.db.QueryRow(ctx, `SELECT `+recipeColumns+` FROM recipes WHERE id = $1`, id)
	recipe, err := scanRecipe(row)
	if err != nil {
		return nil, notFound(err)
	}
	return recipe, nil
}

func (r *recipeRepository) Create(ctx context.Context, recipe *domain.Recipe) error {
	query := `
		INSERT INTO recipes (dish_name, order_type, description, selling_price, category, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		recipe.DishName, recipe.OrderType, recipe.Description, recipe.SellingPrice, recipe.Category,
		recipe.IsActive, recipe.CreatedAt, recipe.UpdatedAt,
	).Scan(&recipe.ID)
	if err != nil {
		return fmt.Errorf("failed to insert recipe: %w", err)
	}
	return nil
}

// Update writes only the fields present in the patch
func (r *recipeRepository) Update(ctx context.Context, id int, patch forms.RecipePatch) (*domain.Recipe, error) {
	sets := []string{}
	args := []any{}
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.DishName != nil {
		set("dish_name", *patch.DishName)
	}
	if patch.OrderType != nil {
		set("order_type", *patch.OrderType)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.SellingPrice != nil {
		set("selling_price", *patch.SellingPrice)
	}
	if patch.Category != nil {
		set("category", *patch.Category)
	}
	if patch.IsActive != nil {
		set("is_active", *patch.IsActive)
	}
	set("updated_at", time.Now().UTC())

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE recipes SET %s WHERE id = $%d RETURNING `+recipeColumns,
		strings.Join(sets, ", "), len(args))

	recipe, err := scanRecipe(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, notFound(err)
	}
	return recipe, nil
}

func (r *recipeRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanRecipe(row Row) (*domain.Recipe, error) {
	var recipe domain.Recipe
	err := row.Scan(
		&recipe.ID, &recipe.DishName, &recipe.OrderType, &recipe.Description, &recipe.SellingPrice,
		&recipe.Category, &recipe.IsActive, &recipe.CreatedAt, &recipe.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}
