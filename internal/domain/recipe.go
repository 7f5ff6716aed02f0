package domain

import (
	"errors"
	"time"
	"unicode/utf8"
)

// Recipe represents a dish on the restaurant menu
type Recipe struct {
	ID           int       `json:"id"`
	DishName     string    `json:"dishName"`
	OrderType    OrderType `json:"orderType"`
	Description  *string   `json:"description"`
	SellingPrice *string   `json:"sellingPrice"`
	Category     *string   `json:"category"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// RecipeItem links a recipe to one inventory ingredient
type RecipeItem struct {
	ID               int    `json:"id"`
	RecipeID         int    `json:"recipeId"`
	InventoryID      int    `json:"inventoryId"`
	QuantityRequired string `json:"quantityRequired"`
	Unit             string `json:"unit"`
}

// RecipeItemWithDetails is a recipe item joined with its inventory item
type RecipeItemWithDetails struct {
	RecipeItem
	InventoryItem InventoryItem `json:"inventoryItem"`
}

// NewRecipe creates a recipe with business rules applied
func NewRecipe(dishName string, orderType OrderType, description, sellingPrice, category *string, isActive bool) (*Recipe, error) {
	now := time.Now().UTC()
	recipe := &Recipe{
		DishName:     dishName,
		OrderType:    orderType,
		Description:  description,
		SellingPrice: sellingPrice,
		Category:     category,
		IsActive:     isActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := recipe.Validate(); err != nil {
		return nil, err
	}
	return recipe, nil
}

// Validate applies the stored-record invariants
func (r *Recipe) Validate() error {
	if utf8.RuneCountInString(r.DishName) < 2 {
		return ErrDishNameTooShort
	}
	if !r.OrderType.Valid() {
		return ErrInvalidOrderType
	}
	return nil
}

// HasOrderType reports whether the recipe is shown under the given order type
func (r *Recipe) HasOrderType(t OrderType) bool {
	return r.OrderType == t
}

var (
	ErrNotFound         = errors.New("not found")
	ErrDishNameTooShort = errors.New("dish name must be at least 2 characters")
	ErrInvalidOrderType = errors.New("invalid order type")

	ErrUnknownInventoryItem = errors.New("unknown inventory item")
)
