package interfaces

import (
	"context"

	"github.com/YelzhanWeb/recipes/internal/domain"
	"github.com/YelzhanWeb/recipes/internal/forms"
)

// CatalogService is the business logic behind the recipe data API
type CatalogService interface {
	ListRecipes(ctx context.Context) ([]domain.Recipe, error)
	GetRecipe(ctx context.Context, id int) (*domain.Recipe, error)
	CreateRecipe(ctx context.Context, form forms.RecipeForm) (*domain.Recipe, error)
	UpdateRecipe(ctx context.Context, id int, patch forms.RecipePatch) (*domain.Recipe, error)
	DeleteRecipe(ctx context.Context, id int) error

	ListInventory(ctx context.Context) ([]domain.InventoryItem, error)
	CreateInventoryItem(ctx context.Context, cmd CreateInventoryItemCommand) (*domain.InventoryItem, error)

	ListRecipeItems(ctx context.Context, recipeID int) ([]domain.RecipeItemWithDetails, error)
	AddRecipeItem(ctx context.Context, recipeID int, form forms.IngredientForm) (*domain.RecipeItem, error)
	RemoveRecipeItem(ctx context.Context, recipeID, itemID int) error
}

// RecipeAPI is the client side of the recipe data API consumed by the console
type RecipeAPI interface {
	ListRecipes(ctx context.Context) ([]domain.Recipe, error)
	CreateRecipe(ctx context.Context, input forms.RecipeInput) (*domain.Recipe, error)
	UpdateRecipe(ctx context.Context, id int, patch forms.RecipePatch) (*domain.Recipe, error)
	ListInventory(ctx context.Context) ([]domain.InventoryItem, error)
	ListRecipeItems(ctx context.Context, recipeID int) ([]domain.RecipeItemWithDetails, error)
	AddRecipeItem(ctx context.Context, recipeID int, input forms.IngredientInput) (*domain.RecipeItem, error)
	RemoveRecipeItem(ctx context.Context, recipeID, itemID int) error
}

// Commands
type CreateInventoryItemCommand struct {
	ItemName          string  `json:"itemName"`
	UnitOfMeasurement string  `json:"unitOfMeasurement"`
	BoxOrPackageQty   int     `json:"boxOrPackageQty"`
	UnitPrice         string  `json:"unitPrice"`
	IdealQty          float64 `json:"idealQty"`
	CurrentQty        float64 `json:"currentQty"`
	ShelfLifeDays     *int    `json:"shelfLifeDays"`
	Category          *string `json:"category"`
}
