package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/YelzhanWeb/recipes/internal/adapter/logger"
	"github.com/YelzhanWeb/recipes/internal/domain"
	"github.com/YelzhanWeb/recipes/internal/forms"
	"github.com/YelzhanWeb/recipes/internal/interfaces"
)

// ErrInvalidInput marks a request rejected by business rules
var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	recipes   interfaces.RecipeRepository
	inventory interfaces.InventoryRepository
	items     interfaces.RecipeItemRepository
	logger    logger.Logger
}

func NewService(recipes interfaces.RecipeRepository, inventory interfaces.InventoryRepository, items interfaces.RecipeItemRepository, logger logger.Logger) *Service {
	return &Service{
		recipes:   recipes,
		inventory: inventory,
		items:     items,
		logger:    logger,
	}
}

func (s *Service) ListRecipes(ctx context.Context) ([]domain.Recipe, error) {
	return s.recipes.List(ctx)
}

func (s *Service) GetRecipe(ctx context.Context, id int) (*domain.Recipe, error) {
	return s.recipes.FindByID(ctx, id)
}

func (s *Service) CreateRecipe(ctx context.Context, form forms.RecipeForm) (*domain.Recipe, error) {
	// 1. Form rules, same as the console applies before calling us
	input, errs := forms.ValidateRecipe(form)
	if len(errs) > 0 {
		return nil, errs
	}

	// 2. Stored-record rules (order type must be one of the known values)
	recipe, err := domain.NewRecipe(input.DishName, input.OrderType, input.Description, input.SellingPrice, input.Category, input.IsActive)
	if err != nil {
		s.logger.Error("validation_failed", "Recipe validation failed", "", nil, err)
		return nil, recipeFieldError(err)
	}

	if err := s.recipes.Create(ctx, recipe); err != nil {
		s.logger.Error("db_insert_failed", "Failed to create recipe", "", nil, err)
		return nil, err
	}

	s.logger.Debug("recipe_created", "Recipe created in DB", "", map[string]interface{}{
		"recipe_id": recipe.ID,
		"dish_name": recipe.DishName,
	})
	return recipe, nil
}

func (s *Service) UpdateRecipe(ctx context.Context, id int, patch forms.RecipePatch) (*domain.Recipe, error) {
	if errs := forms.ValidateRecipePatch(patch); len(errs) > 0 {
		return nil, errs
	}
	if patch.OrderType != nil && !patch.OrderType.Valid() {
		return nil, recipeFieldError(domain.ErrInvalidOrderType)
	}

	recipe, err := s.recipes.Update(ctx, id, patch)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("db_update_failed", "Failed to update recipe", "", map[string]interface{}{"recipe_id": id}, err)
		}
		return nil, err
	}

	s.logger.Debug("recipe_updated", "Recipe updated in DB", "", map[string]interface{}{"recipe_id": id})
	return recipe, nil
}

func (s *Service) DeleteRecipe(ctx context.Context, id int) error {
	if err := s.recipes.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Debug("recipe_deleted", "Recipe deleted", "", map[string]interface{}{"recipe_id": id})
	return nil
}

func (s *Service) ListInventory(ctx context.Context) ([]domain.InventoryItem, error) {
	return s.inventory.List(ctx)
}

func (s *Service) CreateInventoryItem(ctx context.Context, cmd interfaces.CreateInventoryItemCommand) (*domain.InventoryItem, error) {
	item, err := domain.NewInventoryItem(cmd.ItemName, cmd.UnitOfMeasurement, cmd.BoxOrPackageQty, cmd.UnitPrice,
		cmd.IdealQty, cmd.CurrentQty, cmd.ShelfLifeDays, cmd.Category)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.inventory.Create(ctx, item); err != nil {
		s.logger.Error("db_insert_failed", "Failed to create inventory item", "", nil, err)
		return nil, err
	}
	return item, nil
}

func (s *Service) ListRecipeItems(ctx context.Context, recipeID int) ([]domain.RecipeItemWithDetails, error) {
	if _, err := s.recipes.FindByID(ctx, recipeID); err != nil {
		return nil, err
	}
	return s.items.ListByRecipe(ctx, recipeID)
}

func (s *Service) AddRecipeItem(ctx context.Context, recipeID int, form forms.IngredientForm) (*domain.RecipeItem, error) {
	input, errs := forms.ValidateIngredient(form)
	if len(errs) > 0 {
		return nil, errs
	}

	item := &domain.RecipeItem{
		RecipeID:         recipeID,
		InventoryID:      input.InventoryID,
		QuantityRequired: input.QuantityRequired,
		Unit:             input.Unit,
	}
	if err := s.items.Create(ctx, item); err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownInventoryItem):
			return nil, forms.FieldErrors{{Field: forms.FieldInventoryID, Message: "Unknown inventory item"}}
		case errors.Is(err, domain.ErrNotFound):
			return nil, err
		}
		s.logger.Error("db_insert_failed", "Failed to add recipe item", "", map[string]interface{}{"recipe_id": recipeID}, err)
		return nil, err
	}

	s.logger.Debug("recipe_item_added", "Ingredient added to recipe", "", map[string]interface{}{
		"recipe_id":    recipeID,
		"inventory_id": input.InventoryID,
	})
	return item, nil
}

func (s *Service) RemoveRecipeItem(ctx context.Context, recipeID, itemID int) error {
	if err := s.items.Delete(ctx, recipeID, itemID); err != nil {
		return err
	}
	s.logger.Debug("recipe_item_removed", "Ingredient removed from recipe", "", map[string]interface{}{
		"recipe_id": recipeID,
		"item_id":   itemID,
	})
	return nil
}

func recipeFieldError(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidOrderType):
		return forms.FieldErrors{{Field: forms.FieldOrderType, Message: "Order type must be one of: dine_in, takeaway, both"}}
	case errors.Is(err, domain.ErrDishNameTooShort):
		return forms.FieldErrors{{Field: forms.FieldDishName, Message: "Dish name must be at least 2 characters"}}
	}
	return err
}
