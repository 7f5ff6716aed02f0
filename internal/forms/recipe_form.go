package forms

import (
	"unicode/utf8"

	"github.com/YelzhanWeb/recipes/internal/domain"
)

const (
	FieldDishName     = "dishName"
	FieldOrderType    = "orderType"
	FieldDescription  = "description"
	FieldSellingPrice = "sellingPrice"
	FieldCategory     = "category"
	FieldIsActive     = "isActive"
)

// OrderTypes are the values offered by the order type select
var OrderTypes = []domain.OrderType{
	domain.OrderTypeDineIn,
	domain.OrderTypeTakeaway,
	domain.OrderTypeBoth,
}

// Categories are the menu sections offered by the category select
var Categories = []string{"antipasti", "pasta", "pizza", "risotto", "secondi", "dolci"}

// RecipeForm is the raw state of the add and edit recipe dialogs
type RecipeForm struct {
	DishName     string  `json:"dishName"`
	OrderType    string  `json:"orderType"`
	Description  *string `json:"description,omitempty"`
	SellingPrice *string `json:"sellingPrice,omitempty"`
	Category     *string `json:"category,omitempty"`
	IsActive     *bool   `json:"isActive,omitempty"`
}

// RecipeInput is a recipe form that passed validation
type RecipeInput struct {
	DishName     string           `json:"dishName"`
	OrderType    domain.OrderType `json:"orderType"`
	Description  *string          `json:"description"`
	SellingPrice *string          `json:"sellingPrice"`
	Category     *string          `json:"category"`
	IsActive     bool             `json:"isActive"`
}

// RecipePatch carries only the recipe fields being changed
type RecipePatch struct {
	DishName     *string           `json:"dishName,omitempty"`
	OrderType    *domain.OrderType `json:"orderType,omitempty"`
	Description  *string           `json:"description,omitempty"`
	SellingPrice *string           `json:"sellingPrice,omitempty"`
	Category     *string           `json:"category,omitempty"`
	IsActive     *bool             `json:"isActive,omitempty"`
}

// NewRecipeForm returns the defaults of the add recipe dialog
func NewRecipeForm() RecipeForm {
	return RecipeForm{
		OrderType:    string(domain.OrderTypeDineIn),
		Description:  ptr(""),
		SellingPrice: ptr(""),
		Category:     ptr(""),
		IsActive:     ptr(true),
	}
}

// RecipeFormFrom seeds the edit dialog from a stored recipe. Missing optional
// values become empty strings so inputs never hold nil.
func RecipeFormFrom(r domain.Recipe) RecipeForm {
	return RecipeForm{
		DishName:     r.DishName,
		OrderType:    string(r.OrderType),
		Description:  ptr(orEmpty(r.Description)),
		SellingPrice: ptr(orEmpty(r.SellingPrice)),
		Category:     ptr(orEmpty(r.Category)),
		IsActive:     ptr(r.IsActive),
	}
}

// ValidateRecipe checks the recipe form. Order type is only required to be
// non-empty; the dialog offers just the three known values.
func ValidateRecipe(f RecipeForm) (RecipeInput, FieldErrors) {
	var errs FieldErrors

	if utf8.RuneCountInString(f.DishName) < 2 {
		errs.add(FieldDishName, "Dish name must be at least 2 characters")
	}
	if utf8.RuneCountInString(f.OrderType) < 1 {
		errs.add(FieldOrderType, "Order type is required")
	}
	if len(errs) > 0 {
		return RecipeInput{}, errs
	}

	input := RecipeInput{
		DishName:     f.DishName,
		OrderType:    domain.OrderType(f.OrderType),
		Description:  f.Description,
		SellingPrice: f.SellingPrice,
		Category:     f.Category,
		IsActive:     true,
	}
	if f.IsActive != nil {
		input.IsActive = *f.IsActive
	}
	return input, nil
}

// ValidateRecipePatch applies the recipe rules to the fields present in a patch
func ValidateRecipePatch(p RecipePatch) FieldErrors {
	var errs FieldErrors

	if p.DishName != nil && utf8.RuneCountInString(*p.DishName) < 2 {
		errs.add(FieldDishName, "Dish name must be at least 2 characters")
	}
	if p.OrderType != nil && *p.OrderType == "" {
		errs.add(FieldOrderType, "Order type is required")
	}
	return errs
}

// Patch turns a validated input into a full update of every field
func (in RecipeInput) Patch() RecipePatch {
	return RecipePatch{
		DishName:     ptr(in.DishName),
		OrderType:    ptr(in.OrderType),
		Description:  in.Description,
		SellingPrice: in.SellingPrice,
		Category:     in.Category,
		IsActive:     ptr(in.IsActive),
	}
}

func ptr[T any](v T) *T {
	return &v
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
