package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/YelzhanWeb/recipes/internal/adapter/logger"
	"github.com/YelzhanWeb/recipes/internal/app/catalog"
	"github.com/YelzhanWeb/recipes/internal/domain"
	"github.com/YelzhanWeb/recipes/internal/forms"
	"github.com/YelzhanWeb/recipes/internal/interfaces"

	"github.com/go-chi/chi/v5"
)

type RecipeHandler struct {
	service interfaces.CatalogService
	logger  logger.Logger
}

func NewRecipeHandler(service interfaces.CatalogService, logger logger.Logger) *RecipeHandler {
	return &RecipeHandler{
		service: service,
		logger:  logger,
	}
}

type ErrorResponse struct {
	Error  string            `json:"error"`
	Errors []forms.FieldError `json:"errors,omitempty"`
}

// Routes mounts the recipe data API
func (h *RecipeHandler) Routes(r chi.Router) {
	r.Route("/api/recipes", func(r chi.Router) {
		r.Get("/", h.ListRecipes)
		r.Post("/", h.CreateRecipe)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetRecipe)
			r.Patch("/", h.UpdateRecipe)
			r.Delete("/", h.DeleteRecipe)
			r.Get("/items", h.ListRecipeItems)
			r.Post("/items", h.AddRecipeItem)
			r.Delete("/items/{itemId}", h.RemoveRecipeItem)
		})
	})
	r.Get("/api/inventory", h.ListInventory)
	r.Post("/api/inventory", h.CreateInventoryItem)
}

func (h *RecipeHandler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.service.ListRecipes(r.Context())
	if err != nil {
		h.fail(w, r, "recipes_list_failed", err)
		return
	}
	respondJSON(w, http.StatusOK, recipes)
}

func (h *RecipeHandler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	recipe, err := h.service.GetRecipe(r.Context(), id)
	if err != nil {
		h.fail(w, r, "recipe_get_failed", err)
		return
	}
	respondJSON(w, http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	var form forms.RecipeForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	recipe, err := h.service.CreateRecipe(r.Context(), form)
	if err != nil {
		h.fail(w, r, "recipe_creation_failed", err)
		return
	}
	respondJSON(w, http.StatusCreated, recipe)
}

func (h *RecipeHandler) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var patch forms.RecipePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	recipe, err := h.service.UpdateRecipe(r.Context(), id, patch)
	if err != nil {
		h.fail(w, r, "recipe_update_failed", err)
		return
	}
	respondJSON(w, http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteRecipe(r.Context(), id); err != nil {
		h.fail(w, r, "recipe_delete_failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RecipeHandler) ListInventory(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListInventory(r.Context())
	if err != nil {
		h.fail(w, r, "inventory_list_failed", err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *RecipeHandler) CreateInventoryItem(w http.ResponseWriter, r *http.Request) {
	var cmd interfaces.CreateInventoryItemCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	item, err := h.service.CreateInventoryItem(r.Context(), cmd)
	if err != nil {
		h.fail(w, r, "inventory_creation_failed", err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

func (h *RecipeHandler) ListRecipeItems(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	items, err := h.service.ListRecipeItems(r.Context(), id)
	if err != nil {
		h.fail(w, r, "recipe_items_list_failed", err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *RecipeHandler) AddRecipeItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var form forms.IngredientForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	item, err := h.service.AddRecipeItem(r.Context(), id, form)
	if err != nil {
		h.fail(w, r, "recipe_item_creation_failed", err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

func (h *RecipeHandler) RemoveRecipeItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "itemId")
	if !ok {
		return
	}
	if err := h.service.RemoveRecipeItem(r.Context(), id, itemID); err != nil {
		h.fail(w, r, "recipe_item_delete_failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// fail maps service errors onto status codes
func (h *RecipeHandler) fail(w http.ResponseWriter, r *http.Request, action string, err error) {
	var fieldErrs forms.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		respondError(w, "Validation failed", http.StatusBadRequest, fieldErrs)
	case errors.Is(err, catalog.ErrInvalidInput):
		respondError(w, err.Error(), http.StatusBadRequest, nil)
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, "Not found", http.StatusNotFound, nil)
	default:
		h.logger.Error(action, "Request failed", RequestID(r.Context()), map[string]interface{}{
			"path": r.URL.Path,
		}, err)
		respondError(w, "Internal server error", http.StatusInternalServerError, nil)
	}
}

func pathID(w http.ResponseWriter, r *http.Request, param string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, param))
	if err != nil || id < 1 {
		respondError(w, "Invalid "+param, http.StatusBadRequest, nil)
		return 0, false
	}
	return id, true
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, message string, statusCode int, fieldErrors []forms.FieldError) {
	respondJSON(w, statusCode, ErrorResponse{
		Error:  message,
		Errors: fieldErrors,
	})
}
