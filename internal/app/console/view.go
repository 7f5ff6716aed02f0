package console

import (
	"sort"
	"time"

	"github.com/YelzhanWeb/recipes/internal/domain"
	"github.com/YelzhanWeb/recipes/internal/forms"
)

// IngredientRow is one line of the selected recipe's ingredient table
type IngredientRow struct {
	domain.RecipeItemWithDetails
	StockStatus domain.StockStatus `json:"stockStatus"`
	StockLabel  string             `json:"stockLabel"`
}

type CostView struct {
	Total   string `json:"total"`
	Counted int    `json:"counted"`
	Skipped int    `json:"skipped"`
}

type QueryState struct {
	Status    Status     `json:"status"`
	Error     string     `json:"error,omitempty"`
	FetchedAt *time.Time `json:"fetchedAt,omitempty"`
}

// View is a read-only snapshot of everything the console renders
type View struct {
	Filter          FilterTab              `json:"filter"`
	Recipes         []domain.Recipe        `json:"recipes"`
	SelectedRecipe  *domain.Recipe         `json:"selectedRecipe"`
	Ingredients     []IngredientRow        `json:"ingredients"`
	CostEstimate    *CostView              `json:"costEstimate,omitempty"`
	Inventory       []domain.InventoryItem `json:"inventory"`
	Mode            Mode                   `json:"mode"`
	RecipeDraft     *forms.RecipeForm      `json:"recipeDraft,omitempty"`
	IngredientDraft *forms.IngredientForm  `json:"ingredientDraft,omitempty"`
	FieldErrors     forms.FieldErrors      `json:"fieldErrors,omitempty"`
	Pending         []Action               `json:"pending"`
	RecipesQuery    QueryState             `json:"recipesQuery"`
	InventoryQuery  QueryState             `json:"inventoryQuery"`
	ItemsQuery      *QueryState            `json:"itemsQuery,omitempty"`
	PageError       string                 `json:"pageError,omitempty"`
}

func (c *Coordinator) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	recipesEntry, _ := c.cache.Get(RecipesKey())
	inventoryEntry, _ := c.cache.Get(InventoryKey())
	recipes, _ := recipesEntry.Data.([]domain.Recipe)
	inventory, _ := inventoryEntry.Data.([]domain.InventoryItem)

	v := View{
		Filter:         c.filter,
		Recipes:        FilterRecipes(recipes, c.filter),
		Ingredients:    []IngredientRow{},
		Inventory:      inventory,
		Mode:           c.mode,
		FieldErrors:    c.fieldErrors,
		Pending:        make([]Action, 0, len(c.pending)),
		RecipesQuery:   queryState(recipesEntry),
		InventoryQuery: queryState(inventoryEntry),
	}
	if v.Inventory == nil {
		v.Inventory = []domain.InventoryItem{}
	}
	if recipesEntry.Status == StatusError && recipesEntry.Err != nil {
		v.PageError = recipesEntry.Err.Error()
	}

	if c.selected != nil {
		selected := *c.selected
		v.SelectedRecipe = &selected

		itemsEntry, _ := c.cache.Get(RecipeItemsKey(selected.ID))
		state := queryState(itemsEntry)
		v.ItemsQuery = &state

		items, _ := itemsEntry.Data.([]domain.RecipeItemWithDetails)
		v.Ingredients = ingredientRows(items)
		if len(items) > 0 {
			est := domain.EstimateCost(items)
			v.CostEstimate = &CostView{Total: est.Formatted(), Counted: est.Counted, Skipped: est.Skipped}
		}
	}

	switch c.mode.Kind {
	case ModeKindAddingRecipe, ModeKindEditingRecipe:
		draft := c.recipeDraft
		v.RecipeDraft = &draft
	case ModeKindAddingIngredient:
		draft := c.ingredientDraft
		v.IngredientDraft = &draft
	}

	for action := range c.pending {
		v.Pending = append(v.Pending, action)
	}
	sort.Slice(v.Pending, func(i, j int) bool { return v.Pending[i] < v.Pending[j] })

	return v
}

// FilterRecipes applies a filter tab. Tabs other than all match the order
// type exactly.
func FilterRecipes(recipes []domain.Recipe, tab FilterTab) []domain.Recipe {
	out := make([]domain.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if tab == FilterAll || r.HasOrderType(domain.OrderType(tab)) {
			out = append(out, r)
		}
	}
	return out
}

func ingredientRows(items []domain.RecipeItemWithDetails) []IngredientRow {
	rows := make([]IngredientRow, 0, len(items))
	for _, it := range items {
		status := it.InventoryItem.StockStatus()
		rows = append(rows, IngredientRow{
			RecipeItemWithDetails: it,
			StockStatus:           status,
			StockLabel:            status.Label(),
		})
	}
	return rows
}

func queryState(e Entry) QueryState {
	s := QueryState{Status: e.Status}
	if e.Err != nil && e.Status == StatusError {
		s.Error = e.Err.Error()
	}
	if !e.FetchedAt.IsZero() {
		fetched := e.FetchedAt
		s.FetchedAt = &fetched
	}
	return s
}
