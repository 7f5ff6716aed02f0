package console

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/YelzhanWeb/recipes/internal/adapter/logger"
	"github.com/YelzhanWeb/recipes/internal/domain"
	"github.com/YelzhanWeb/recipes/internal/forms"
	"github.com/YelzhanWeb/recipes/internal/interfaces"

	"golang.org/x/sync/errgroup"
)

var (
	ErrActionPending = errors.New("action already in progress")
	ErrNoSelection   = errors.New("no recipe selected")
	ErrNotEditing    = errors.New("edit dialog is not open")
	ErrDialogClosed  = errors.New("dialog is not open")
	ErrUnknownFilter = errors.New("unknown filter tab")
)

// Action names a mutation trigger; each may have one call in flight
type Action string

const (
	ActionCreateRecipe  Action = "create-recipe"
	ActionUpdateRecipe  Action = "update-recipe"
	ActionAddIngredient Action = "add-ingredient"
)

func removeAction(itemID int) Action {
	return Action(fmt.Sprintf("remove-ingredient:%d", itemID))
}

// Coordinator owns the console state of one admin session: selection, open
// dialog, drafts, filter and the keyed query cache.
type Coordinator struct {
	api      interfaces.RecipeAPI
	notifier interfaces.Notifier
	logger   logger.Logger
	cache    *QueryCache

	mu              sync.Mutex
	selected        *domain.Recipe
	mode            Mode
	filter          FilterTab
	recipeDraft     forms.RecipeForm
	ingredientDraft forms.IngredientForm
	fieldErrors     forms.FieldErrors
	pending         map[Action]bool
}

func NewCoordinator(api interfaces.RecipeAPI, notifier interfaces.Notifier, logger logger.Logger) *Coordinator {
	return &Coordinator{
		api:             api,
		notifier:        notifier,
		logger:          logger,
		cache:           NewQueryCache(),
		mode:            ModeIdle(),
		filter:          FilterAll,
		recipeDraft:     forms.NewRecipeForm(),
		ingredientDraft: forms.NewIngredientForm(),
		pending:         make(map[Action]bool),
	}
}

// Load fetches recipes, inventory and the selected recipe's items in parallel.
// The fetches are independent: one failing does not cancel the others.
func (c *Coordinator) Load(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return c.fetchRecipes(ctx, c.cache.Begin(RecipesKey())) })
	g.Go(func() error { return c.fetchInventory(ctx) })
	if id, ok := c.selectedID(); ok {
		g.Go(func() error { return ignoreNotFound(c.fetchItems(ctx, id)) })
	}
	return g.Wait()
}

// Retry re-issues every fetch that is failed, stale or never ran
func (c *Coordinator) Retry(ctx context.Context) error {
	var g errgroup.Group
	if c.needsFetch(RecipesKey()) {
		g.Go(func() error { return c.fetchRecipes(ctx, c.cache.Begin(RecipesKey())) })
	}
	if c.needsFetch(InventoryKey()) {
		g.Go(func() error { return c.fetchInventory(ctx) })
	}
	if id, ok := c.selectedID(); ok && c.needsFetch(RecipeItemsKey(id)) {
		g.Go(func() error { return ignoreNotFound(c.fetchItems(ctx, id)) })
	}
	return g.Wait()
}

// SelectRecipe selects a recipe from the loaded list and fetches its items.
// Selecting the already selected recipe with fresh items does nothing.
func (c *Coordinator) SelectRecipe(ctx context.Context, id int) error {
	c.mu.Lock()
	recipe, ok := c.findRecipeLocked(id)
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("recipe %d: %w", id, domain.ErrNotFound)
	}
	same := c.selected != nil && c.selected.ID == id
	c.selected = &recipe
	c.mu.Unlock()

	if same {
		if e, _ := c.cache.Get(RecipeItemsKey(id)); e.Fresh() || e.Status == StatusLoading {
			return nil
		}
	}
	return c.fetchItems(ctx, id)
}

func (c *Coordinator) SetFilterTab(tab FilterTab) error {
	if _, err := ParseFilterTab(string(tab)); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = tab
	return nil
}

func (c *Coordinator) OpenAddRecipe() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = ModeAddingRecipe()
	c.recipeDraft = forms.NewRecipeForm()
	c.fieldErrors = nil
}

// OpenEditRecipe opens the edit dialog seeded from the recipe's current values
func (c *Coordinator) OpenEditRecipe(id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	recipe, ok := c.findRecipeLocked(id)
	if !ok {
		return fmt.Errorf("recipe %d: %w", id, domain.ErrNotFound)
	}
	c.mode = ModeEditingRecipe(id)
	c.recipeDraft = forms.RecipeFormFrom(recipe)
	c.fieldErrors = nil
	return nil
}

func (c *Coordinator) OpenAddIngredient() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.selected == nil {
		return ErrNoSelection
	}
	c.mode = ModeAddingIngredient(c.selected.ID)
	c.ingredientDraft = forms.NewIngredientForm()
	c.fieldErrors = nil
	return nil
}

func (c *Coordinator) CloseDialog() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = ModeIdle()
	c.fieldErrors = nil
}

func (c *Coordinator) SubmitCreateRecipe(ctx context.Context, form forms.RecipeForm) error {
	c.mu.Lock()
	if c.pending[ActionCreateRecipe] {
		c.mu.Unlock()
		return ErrActionPending
	}
	if c.mode.Kind != ModeKindAddingRecipe {
		c.mu.Unlock()
		return ErrDialogClosed
	}
	c.recipeDraft = form
	input, errs := forms.ValidateRecipe(form)
	if len(errs) > 0 {
		c.fieldErrors = errs
		c.mu.Unlock()
		return errs
	}
	c.fieldErrors = nil
	c.pending[ActionCreateRecipe] = true
	c.mu.Unlock()

	created, err := c.api.CreateRecipe(ctx, input)
	if err != nil {
		c.finish(ActionCreateRecipe)
		c.notify(ctx, "Failed to create recipe", err.Error(), domain.VariantDestructive)
		return fmt.Errorf("failed to create recipe: %w", err)
	}

	c.cache.Invalidate(RecipesKey())
	ticket := c.cache.Begin(RecipesKey())

	c.mu.Lock()
	delete(c.pending, ActionCreateRecipe)
	if c.mode.Kind == ModeKindAddingRecipe {
		c.mode = ModeIdle()
		c.recipeDraft = forms.NewRecipeForm()
	}
	c.selected = created
	c.mu.Unlock()

	c.logger.Info("recipe_created", "Recipe created from console", "", map[string]interface{}{
		"recipe_id": created.ID,
		"dish_name": created.DishName,
	})
	c.notify(ctx, "Recipe created", "Recipe has been created successfully.", domain.VariantDefault)

	c.refetch(ctx,
		func() error { return c.fetchRecipes(ctx, ticket) },
		func() error { return c.fetchItems(ctx, created.ID) },
	)
	return nil
}

// SubmitUpdateRecipe saves the edit dialog. The whole validated form is sent
// as the patch.
func (c *Coordinator) SubmitUpdateRecipe(ctx context.Context, form forms.RecipeForm) error {
	c.mu.Lock()
	if c.pending[ActionUpdateRecipe] {
		c.mu.Unlock()
		return ErrActionPending
	}
	if c.mode.Kind != ModeKindEditingRecipe {
		c.mu.Unlock()
		return ErrNotEditing
	}
	id := c.mode.RecipeID
	c.recipeDraft = form
	input, errs := forms.ValidateRecipe(form)
	if len(errs) > 0 {
		c.fieldErrors = errs
		c.mu.Unlock()
		return errs
	}
	c.fieldErrors = nil
	c.pending[ActionUpdateRecipe] = true
	c.mu.Unlock()

	updated, err := c.api.UpdateRecipe(ctx, id, input.Patch())
	if err != nil {
		c.finish(ActionUpdateRecipe)
		c.notify(ctx, "Failed to update recipe", err.Error(), domain.VariantDestructive)
		if errors.Is(err, domain.ErrNotFound) {
			c.recipeGone(id)
		}
		return fmt.Errorf("failed to update recipe: %w", err)
	}

	c.cache.Invalidate(RecipesKey())
	ticket := c.cache.Begin(RecipesKey())

	c.mu.Lock()
	delete(c.pending, ActionUpdateRecipe)
	if c.mode == ModeEditingRecipe(id) {
		c.mode = ModeIdle()
	}
	if c.selected != nil && c.selected.ID == updated.ID {
		c.selected = updated
	}
	c.mu.Unlock()

	c.notify(ctx, "Recipe updated", "Recipe has been updated successfully.", domain.VariantDefault)
	c.refetch(ctx, func() error { return c.fetchRecipes(ctx, ticket) })
	return nil
}

// SubmitAddIngredient adds an item to the recipe the dialog was opened for and
// refetches only that recipe's items.
func (c *Coordinator) SubmitAddIngredient(ctx context.Context, form forms.IngredientForm) error {
	c.mu.Lock()
	if c.pending[ActionAddIngredient] {
		c.mu.Unlock()
		return ErrActionPending
	}
	if c.mode.Kind != ModeKindAddingIngredient {
		c.mu.Unlock()
		return ErrDialogClosed
	}
	recipeID := c.mode.RecipeID
	c.ingredientDraft = form
	input, errs := forms.ValidateIngredient(form)
	if len(errs) > 0 {
		c.fieldErrors = errs
		c.mu.Unlock()
		return errs
	}
	c.fieldErrors = nil
	c.pending[ActionAddIngredient] = true
	c.mu.Unlock()

	if _, err := c.api.AddRecipeItem(ctx, recipeID, input); err != nil {
		c.finish(ActionAddIngredient)
		c.notify(ctx, "Failed to add ingredient", err.Error(), domain.VariantDestructive)
		if errors.Is(err, domain.ErrNotFound) {
			c.recipeGone(recipeID)
		}
		return fmt.Errorf("failed to add ingredient: %w", err)
	}

	c.cache.Invalidate(RecipeItemsKey(recipeID))

	c.mu.Lock()
	delete(c.pending, ActionAddIngredient)
	if c.mode == ModeAddingIngredient(recipeID) {
		c.mode = ModeIdle()
		c.ingredientDraft = forms.NewIngredientForm()
	}
	c.mu.Unlock()

	c.notify(ctx, "Ingredient added", "Ingredient has been added to the recipe successfully.", domain.VariantDefault)
	c.refetch(ctx, func() error { return c.fetchItems(ctx, recipeID) })
	return nil
}

func (c *Coordinator) RemoveIngredient(ctx context.Context, itemID int) error {
	action := removeAction(itemID)

	c.mu.Lock()
	if c.selected == nil {
		c.mu.Unlock()
		return ErrNoSelection
	}
	if c.pending[action] {
		c.mu.Unlock()
		return ErrActionPending
	}
	recipeID := c.selected.ID
	c.pending[action] = true
	c.mu.Unlock()

	err := c.api.RemoveRecipeItem(ctx, recipeID, itemID)
	c.finish(action)
	if err != nil {
		c.notify(ctx, "Error", "Failed to remove ingredient.", domain.VariantDestructive)
		if errors.Is(err, domain.ErrNotFound) {
			// the item or the whole recipe is gone; an items refetch tells
			// which and clears the selection in the second case
			c.cache.Invalidate(RecipeItemsKey(recipeID))
			c.refetch(ctx, func() error { return c.fetchItems(ctx, recipeID) })
		}
		return fmt.Errorf("failed to remove ingredient: %w", err)
	}

	c.cache.Invalidate(RecipeItemsKey(recipeID))
	c.notify(ctx, "Ingredient removed", "Ingredient has been removed from the recipe.", domain.VariantDefault)
	c.refetch(ctx, func() error { return c.fetchItems(ctx, recipeID) })
	return nil
}

func (c *Coordinator) fetchRecipes(ctx context.Context, t Ticket) error {
	recipes, err := c.api.ListRecipes(ctx)
	if err != nil {
		c.cache.Fail(t, err)
		return fmt.Errorf("failed to fetch recipes: %w", err)
	}
	if c.cache.Resolve(t, recipes) {
		c.reconcileSelection(recipes)
	}
	return nil
}

func (c *Coordinator) fetchInventory(ctx context.Context) error {
	t := c.cache.Begin(InventoryKey())
	items, err := c.api.ListInventory(ctx)
	if err != nil {
		c.cache.Fail(t, err)
		return fmt.Errorf("failed to fetch inventory: %w", err)
	}
	c.cache.Resolve(t, items)
	return nil
}

// fetchItems stores the result under the recipe id used for the request, so a
// late answer for a previous selection never shows under the current one.
func (c *Coordinator) fetchItems(ctx context.Context, recipeID int) error {
	t := c.cache.Begin(RecipeItemsKey(recipeID))
	items, err := c.api.ListRecipeItems(ctx, recipeID)
	if err != nil {
		if !c.cache.Fail(t, err) {
			return nil
		}
		if errors.Is(err, domain.ErrNotFound) {
			c.recipeGone(recipeID)
		}
		return fmt.Errorf("failed to fetch items of recipe %d: %w", recipeID, err)
	}
	c.cache.Resolve(t, items)
	return nil
}

// reconcileSelection refreshes the selected recipe from a new list and
// clears it when the recipe is no longer there
func (c *Coordinator) reconcileSelection(recipes []domain.Recipe) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.selected == nil {
		return
	}
	for i := range recipes {
		if recipes[i].ID == c.selected.ID {
			r := recipes[i]
			c.selected = &r
			return
		}
	}
	c.clearSelectionLocked()
}

// recipeGone applies the deleted-recipe policy after the API answered 404
func (c *Coordinator) recipeGone(recipeID int) {
	c.cache.Invalidate(RecipesKey())

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.selected != nil && c.selected.ID == recipeID {
		c.clearSelectionLocked()
		return
	}
	if c.mode.boundTo(recipeID) {
		c.mode = ModeIdle()
		c.fieldErrors = nil
	}
	c.cache.Drop(RecipeItemsKey(recipeID))
}

func (c *Coordinator) clearSelectionLocked() {
	id := c.selected.ID
	c.selected = nil
	if c.mode.boundTo(id) {
		c.mode = ModeIdle()
		c.fieldErrors = nil
	}
	c.cache.Drop(RecipeItemsKey(id))
	c.logger.Info("selection_cleared", "Selected recipe no longer exists", "", map[string]interface{}{
		"recipe_id": id,
	})
}

func (c *Coordinator) findRecipeLocked(id int) (domain.Recipe, bool) {
	e, _ := c.cache.Get(RecipesKey())
	recipes, _ := e.Data.([]domain.Recipe)
	for _, r := range recipes {
		if r.ID == id {
			return r, true
		}
	}
	if c.selected != nil && c.selected.ID == id {
		return *c.selected, true
	}
	return domain.Recipe{}, false
}

func (c *Coordinator) selectedID() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		return 0, false
	}
	return c.selected.ID, true
}

func (c *Coordinator) needsFetch(key Key) bool {
	e, _ := c.cache.Get(key)
	return !e.Fresh() && e.Status != StatusLoading
}

// ignoreNotFound drops a 404 that already cleared the selection
func ignoreNotFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return err
}

func (c *Coordinator) finish(action Action) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, action)
}

// refetch runs follow-up fetches after a successful mutation. Their failures
// show up as query errors in the view, not as a failed mutation.
func (c *Coordinator) refetch(ctx context.Context, fetches ...func() error) {
	var g errgroup.Group
	for _, f := range fetches {
		g.Go(f)
	}
	if err := g.Wait(); err != nil {
		c.logger.Error("refetch_failed", "Refetch after mutation failed", "", nil, err)
	}
}

func (c *Coordinator) notify(ctx context.Context, title, description string, variant domain.NotificationVariant) {
	if c.notifier == nil {
		return
	}
	n := domain.NewNotification(title, description, variant)
	if err := c.notifier.Notify(ctx, n); err != nil {
		c.logger.Error("notification_failed", "Failed to publish notification", "", map[string]interface{}{
			"title": title,
		}, err)
	}
}
