package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/YelzhanWeb/recipes/internal/config"
	"github.com/YelzhanWeb/recipes/internal/domain"
	"github.com/YelzhanWeb/recipes/internal/forms"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(config.APIConfig{BaseURL: srv.URL + "/", Timeout: 2 * time.Second, FetchRetries: 1})
}

func TestListRecipeItemsDecodesWireFormat(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/recipes/3/items" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":9,"recipeId":3,"inventoryId":7,"quantityRequired":"0.2","unit":"kg",
			"inventoryItem":{"id":7,"itemName":"Guanciale","unitOfMeasurement":"kg","unitPrice":"$18.00",
			"totalPrice":"36.00","idealQty":10,"currentQty":2}}]`))
	})

	items, err := c.ListRecipeItems(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	it := items[0]
	if it.RecipeID != 3 || it.InventoryID != 7 || it.InventoryItem.ItemName != "Guanciale" || it.InventoryItem.CurrentQty != 2 {
		t.Fatalf("unexpected item: %+v", it)
	}
}

func TestCreateRecipeSendsValidatedInput(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/recipes" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("bad body: %v", err)
		}
		if body["dishName"] != "Carbonara" || body["orderType"] != "both" || body["isActive"] != true {
			t.Errorf("unexpected body: %v", body)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":12,"dishName":"Carbonara","orderType":"both","isActive":true}`))
	})

	recipe, err := c.CreateRecipe(context.Background(), forms.RecipeInput{
		DishName: "Carbonara", OrderType: domain.OrderTypeBoth, IsActive: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recipe.ID != 12 {
		t.Fatalf("expected id 12, got %d", recipe.ID)
	}
}

func TestNotFoundMatchesDomainError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"recipe not found"}`, http.StatusNotFound)
	})

	_, err := c.ListRecipeItems(context.Background(), 42)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusNotFound {
		t.Fatalf("expected APIError with 404, got %v", err)
	}
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`[{"id":1,"itemName":"Flour 00"}]`))
	})

	items, err := c.ListInventory(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("expected success on second attempt, got %d items after %d calls", len(items), calls)
	}
}

func TestMutationsAreNotRetried(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := c.RemoveRecipeItem(context.Background(), 3, 9)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusInternalServerError {
		t.Fatalf("expected 500 APIError, got %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("expected a single attempt, got %d", n)
	}
}

func TestClientErrorsAreNotRetried(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	})

	if _, err := c.ListRecipes(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("expected a single attempt, got %d", n)
	}
}

func TestRemoveRecipeItemAcceptsEmptyBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/recipes/3/items/9" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	if err := c.RemoveRecipeItem(context.Background(), 3, 9); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMutationWithEmptyBodyFails(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusCreated)
	})
	ctx := context.Background()

	recipe, err := c.CreateRecipe(ctx, forms.RecipeInput{DishName: "Carbonara", OrderType: domain.OrderTypeBoth, IsActive: true})
	if !errors.Is(err, ErrEmptyResponse) || recipe != nil {
		t.Fatalf("expected ErrEmptyResponse and no recipe, got %+v, %v", recipe, err)
	}
	if _, err := c.UpdateRecipe(ctx, 3, forms.RecipePatch{}); !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse on update, got %v", err)
	}
	if _, err := c.AddRecipeItem(ctx, 3, forms.IngredientInput{InventoryID: 7, QuantityRequired: "1", Unit: "kg"}); !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse on add item, got %v", err)
	}
	if _, err := c.ListRecipes(ctx); !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse on list, got %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 4 {
		t.Fatalf("expected one attempt per call, got %d", n)
	}
}
