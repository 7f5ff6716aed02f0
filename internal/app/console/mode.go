package console

import "fmt"

type ModeKind string

const (
	ModeKindIdle             ModeKind = "idle"
	ModeKindAddingRecipe     ModeKind = "adding_recipe"
	ModeKindEditingRecipe    ModeKind = "editing_recipe"
	ModeKindAddingIngredient ModeKind = "adding_ingredient"
)

// Mode is the single open dialog, if any. RecipeID is set only for the
// editing and adding-ingredient kinds.
type Mode struct {
	Kind     ModeKind `json:"kind"`
	RecipeID int      `json:"recipeId,omitempty"`
}

func ModeIdle() Mode         { return Mode{Kind: ModeKindIdle} }
func ModeAddingRecipe() Mode { return Mode{Kind: ModeKindAddingRecipe} }

func ModeEditingRecipe(recipeID int) Mode {
	return Mode{Kind: ModeKindEditingRecipe, RecipeID: recipeID}
}

func ModeAddingIngredient(recipeID int) Mode {
	return Mode{Kind: ModeKindAddingIngredient, RecipeID: recipeID}
}

// boundTo reports whether the open dialog belongs to the given recipe
func (m Mode) boundTo(recipeID int) bool {
	return m.RecipeID != 0 && m.RecipeID == recipeID
}

type FilterTab string

const (
	FilterAll    FilterTab = "all"
	FilterDineIn FilterTab = "dine_in"
	FilterBoth   FilterTab = "both"
)

func ParseFilterTab(s string) (FilterTab, error) {
	switch tab := FilterTab(s); tab {
	case FilterAll, FilterDineIn, FilterBoth:
		return tab, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFilter, s)
}
