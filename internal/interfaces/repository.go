package interfaces

import (
	"context"

	"github.com/YelzhanWeb/recipes/internal/domain"
	"github.com/YelzhanWeb/recipes/internal/forms"
)

// Repository ports (Adapter/Postgres)
type RecipeRepository interface {
	List(ctx context.Context) ([]domain.Recipe, error)
	FindByID(ctx context.Context, id int) (*domain.Recipe, error)
	Create(ctx context.Context, recipe *domain.Recipe) error
	Update(ctx context.Context, id int, patch forms.RecipePatch) (*domain.Recipe, error)
	Delete(ctx context.Context, id int) error
}

type InventoryRepository interface {
	List(ctx context.Context) ([]domain.InventoryItem, error)
	FindByID(ctx context.Context, id int) (*domain.InventoryItem, error)
	Create(ctx context.Context, item *domain.InventoryItem) error
}

type RecipeItemRepository interface {
	ListByRecipe(ctx context.Context, recipeID int) ([]domain.RecipeItemWithDetails, error)
	Create(ctx context.Context, item *domain.RecipeItem) error
	Delete(ctx context.Context, recipeID, itemID int) error
}
