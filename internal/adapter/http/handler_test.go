package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/YelzhanWeb/recipes/internal/adapter/logger"
	"github.com/YelzhanWeb/recipes/internal/app/catalog"
	"github.com/YelzhanWeb/recipes/internal/app/console"
	"github.com/YelzhanWeb/recipes/internal/domain"
	"github.com/YelzhanWeb/recipes/internal/forms"
	"github.com/YelzhanWeb/recipes/internal/interfaces"
)

type fakeCatalog struct {
	recipes   map[int]domain.Recipe
	lastForm  forms.IngredientForm
	lastPatch forms.RecipePatch
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{recipes: map[int]domain.Recipe{
		3: {ID: 3, DishName: "Carbonara", OrderType: domain.OrderTypeDineIn, IsActive: true},
	}}
}

func (f *fakeCatalog) ListRecipes(ctx context.Context) ([]domain.Recipe, error) {
	return []domain.Recipe{f.recipes[3]}, nil
}

func (f *fakeCatalog) GetRecipe(ctx context.Context, id int) (*domain.Recipe, error) {
	r, ok := f.recipes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &r, nil
}

func (f *fakeCatalog) CreateRecipe(ctx context.Context, form forms.RecipeForm) (*domain.Recipe, error) {
	input, errs := forms.ValidateRecipe(form)
	if len(errs) > 0 {
		return nil, errs
	}
	return &domain.Recipe{ID: 4, DishName: input.DishName, OrderType: input.OrderType, IsActive: input.IsActive}, nil
}

func (f *fakeCatalog) UpdateRecipe(ctx context.Context, id int, patch forms.RecipePatch) (*domain.Recipe, error) {
	f.lastPatch = patch
	r, ok := f.recipes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.DishName != nil {
		r.DishName = *patch.DishName
	}
	return &r, nil
}

func (f *fakeCatalog) DeleteRecipe(ctx context.Context, id int) error { return nil }

func (f *fakeCatalog) ListInventory(ctx context.Context) ([]domain.InventoryItem, error) {
	return nil, errors.New("connection refused")
}

func (f *fakeCatalog) CreateInventoryItem(ctx context.Context, cmd interfaces.CreateInventoryItemCommand) (*domain.InventoryItem, error) {
	if cmd.ItemName == "" {
		return nil, fmt.Errorf("%w: item name is required", catalog.ErrInvalidInput)
	}
	return &domain.InventoryItem{ID: 1, ItemName: cmd.ItemName, TotalPrice: "12.00"}, nil
}

func (f *fakeCatalog) ListRecipeItems(ctx context.Context, recipeID int) ([]domain.RecipeItemWithDetails, error) {
	return []domain.RecipeItemWithDetails{}, nil
}

func (f *fakeCatalog) AddRecipeItem(ctx context.Context, recipeID int, form forms.IngredientForm) (*domain.RecipeItem, error) {
	f.lastForm = form
	input, errs := forms.ValidateIngredient(form)
	if len(errs) > 0 {
		return nil, errs
	}
	return &domain.RecipeItem{ID: 11, RecipeID: recipeID, InventoryID: input.InventoryID}, nil
}

func (f *fakeCatalog) RemoveRecipeItem(ctx context.Context, recipeID, itemID int) error {
	if itemID != 11 {
		return domain.ErrNotFound
	}
	return nil
}

func newRecipeServer(svc interfaces.CatalogService) http.Handler {
	return NewRouter(logger.Nop(), []string{"*"}, NewRecipeHandler(svc, logger.Nop()))
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRecipeRoutes(t *testing.T) {
	h := newRecipeServer(newFakeCatalog())

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"list recipes", http.MethodGet, "/api/recipes", "", http.StatusOK},
		{"get recipe", http.MethodGet, "/api/recipes/3", "", http.StatusOK},
		{"get missing recipe", http.MethodGet, "/api/recipes/9", "", http.StatusNotFound},
		{"bad id", http.MethodGet, "/api/recipes/abc", "", http.StatusBadRequest},
		{"create recipe", http.MethodPost, "/api/recipes", `{"dishName":"Ravioli","orderType":"dine_in"}`, http.StatusCreated},
		{"create invalid body", http.MethodPost, "/api/recipes", `{`, http.StatusBadRequest},
		{"patch recipe", http.MethodPatch, "/api/recipes/3", `{"dishName":"Carbonara romana"}`, http.StatusOK},
		{"patch missing recipe", http.MethodPatch, "/api/recipes/9", `{"dishName":"Carbonara"}`, http.StatusNotFound},
		{"delete recipe", http.MethodDelete, "/api/recipes/3", "", http.StatusNoContent},
		{"list items", http.MethodGet, "/api/recipes/3/items", "", http.StatusOK},
		{"add item", http.MethodPost, "/api/recipes/3/items", `{"inventoryId":7,"quantityRequired":"0.2","unit":"kg"}`, http.StatusCreated},
		{"remove item", http.MethodDelete, "/api/recipes/3/items/11", "", http.StatusNoContent},
		{"remove missing item", http.MethodDelete, "/api/recipes/3/items/12", "", http.StatusNotFound},
		{"inventory failure", http.MethodGet, "/api/inventory", "", http.StatusInternalServerError},
		{"create inventory", http.MethodPost, "/api/inventory", `{"itemName":"Flour","unitPrice":"1.20"}`, http.StatusCreated},
		{"create invalid inventory", http.MethodPost, "/api/inventory", `{"unitPrice":"1.20"}`, http.StatusBadRequest},
		{"health", http.MethodGet, "/health", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, tt.body)
			if rec.Code != tt.status {
				t.Fatalf("expected status %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCreateRecipeValidationErrors(t *testing.T) {
	h := newRecipeServer(newFakeCatalog())

	rec := do(t, h, http.MethodPost, "/api/recipes", `{"dishName":"A","orderType":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error != "Validation failed" || len(resp.Errors) != 2 {
		t.Fatalf("expected two field errors, got %+v", resp)
	}
	if resp.Errors[0].Field != forms.FieldDishName || resp.Errors[1].Field != forms.FieldOrderType {
		t.Fatalf("unexpected fields %+v", resp.Errors)
	}
}

func TestAddRecipeItemAcceptsStringInventoryID(t *testing.T) {
	svc := newFakeCatalog()
	h := newRecipeServer(svc)

	rec := do(t, h, http.MethodPost, "/api/recipes/3/items", `{"inventoryId":"7","quantityRequired":"2","unit":"g"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastForm.InventoryID != "7" {
		t.Fatalf("expected inventory id 7, got %q", svc.lastForm.InventoryID)
	}

	rec = do(t, h, http.MethodPost, "/api/recipes/3/items", `{"inventoryId":0,"quantityRequired":"2","unit":"g"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unselected ingredient, got %d", rec.Code)
	}
}

func TestPatchSendsOnlyProvidedFields(t *testing.T) {
	svc := newFakeCatalog()
	h := newRecipeServer(svc)

	rec := do(t, h, http.MethodPatch, "/api/recipes/3", `{"isActive":false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastPatch.IsActive == nil || *svc.lastPatch.IsActive || svc.lastPatch.DishName != nil {
		t.Fatalf("unexpected patch %+v", svc.lastPatch)
	}
}

func TestLoggingMiddlewareSetsRequestID(t *testing.T) {
	h := newRecipeServer(newFakeCatalog())

	rec := do(t, h, http.MethodGet, "/health", "")
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Fatal("expected generated request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "req-42" {
		t.Fatalf("expected propagated request id, got %q", got)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	h := RecoveryMiddleware(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

type fakeConsole struct {
	err      error
	lastTab  console.FilterTab
	selected int
	removed  int
	form     forms.RecipeForm
}

func (f *fakeConsole) View() console.View {
	return console.View{Filter: f.lastTab, Mode: console.ModeIdle()}
}
func (f *fakeConsole) Retry(ctx context.Context) error { return f.err }
func (f *fakeConsole) SelectRecipe(ctx context.Context, id int) error {
	f.selected = id
	return f.err
}
func (f *fakeConsole) SetFilterTab(tab console.FilterTab) error {
	if _, err := console.ParseFilterTab(string(tab)); err != nil {
		return err
	}
	f.lastTab = tab
	return nil
}
func (f *fakeConsole) OpenAddRecipe() {}
func (f *fakeConsole) OpenEditRecipe(id int) error { return f.err }
func (f *fakeConsole) OpenAddIngredient() error { return f.err }
func (f *fakeConsole) CloseDialog() {}
func (f *fakeConsole) SubmitCreateRecipe(ctx context.Context, form forms.RecipeForm) error {
	f.form = form
	if _, errs := forms.ValidateRecipe(form); len(errs) > 0 {
		return errs
	}
	return f.err
}
func (f *fakeConsole) SubmitUpdateRecipe(ctx context.Context, form forms.RecipeForm) error {
	return f.err
}
func (f *fakeConsole) SubmitAddIngredient(ctx context.Context, form forms.IngredientForm) error {
	return f.err
}
func (f *fakeConsole) RemoveIngredient(ctx context.Context, itemID int) error {
	f.removed = itemID
	return f.err
}

func newConsoleServer(c Console) http.Handler {
	return NewRouter(logger.Nop(), []string{"*"}, NewConsoleHandler(c, logger.Nop()))
}

func TestConsoleStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"ok", nil, http.StatusOK},
		{"pending", console.ErrActionPending, http.StatusConflict},
		{"no selection", console.ErrNoSelection, http.StatusConflict},
		{"dialog closed", console.ErrDialogClosed, http.StatusConflict},
		{"not found", fmt.Errorf("recipe 9: %w", domain.ErrNotFound), http.StatusNotFound},
		{"upstream", errors.New("POST /api/recipes returned 500"), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeConsole{err: tt.err}
			rec := do(t, newConsoleServer(fc), http.MethodDelete, "/console/ingredients/50", "")
			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rec.Code)
			}
			if fc.removed != 50 {
				t.Fatalf("expected item 50 removed, got %d", fc.removed)
			}

			var resp ConsoleResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatal(err)
			}
			if resp.View.Mode != console.ModeIdle() {
				t.Fatalf("expected view in response, got %+v", resp.View)
			}
			if (tt.err == nil) != (resp.Error == "") {
				t.Fatalf("unexpected error field %q", resp.Error)
			}
		})
	}
}

func TestConsoleCreateRecipeValidation(t *testing.T) {
	fc := &fakeConsole{}
	rec := do(t, newConsoleServer(fc), http.MethodPost, "/console/recipes", `{"dishName":"A","orderType":"dine_in"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	var resp ConsoleResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Errors) != 1 || resp.Errors[0].Message != "Dish name must be at least 2 characters" {
		t.Fatalf("unexpected field errors %+v", resp.Errors)
	}
	if fc.form.DishName != "A" {
		t.Fatalf("expected form forwarded, got %+v", fc.form)
	}
}

func TestConsoleFilterAndSelection(t *testing.T) {
	fc := &fakeConsole{}
	h := newConsoleServer(fc)

	if rec := do(t, h, http.MethodPut, "/console/filter", `{"tab":"both"}`); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if fc.lastTab != console.FilterBoth {
		t.Fatalf("expected filter both, got %q", fc.lastTab)
	}
	if rec := do(t, h, http.MethodPut, "/console/filter", `{"tab":"takeaway"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown tab, got %d", rec.Code)
	}

	if rec := do(t, h, http.MethodPost, "/console/selection/5", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if fc.selected != 5 {
		t.Fatalf("expected recipe 5 selected, got %d", fc.selected)
	}

	if rec := do(t, h, http.MethodGet, "/console/view", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
