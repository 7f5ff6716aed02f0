package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/YelzhanWeb/recipes/internal/adapter/logger"
	"github.com/YelzhanWeb/recipes/internal/app/console"
	"github.com/YelzhanWeb/recipes/internal/domain"
	"github.com/YelzhanWeb/recipes/internal/forms"

	"github.com/go-chi/chi/v5"
)

// Console is the view-state coordinator driven by the console endpoints
type Console interface {
	View() console.View
	Retry(ctx context.Context) error
	SelectRecipe(ctx context.Context, id int) error
	SetFilterTab(tab console.FilterTab) error
	OpenAddRecipe()
	OpenEditRecipe(id int) error
	OpenAddIngredient() error
	CloseDialog()
	SubmitCreateRecipe(ctx context.Context, form forms.RecipeForm) error
	SubmitUpdateRecipe(ctx context.Context, form forms.RecipeForm) error
	SubmitAddIngredient(ctx context.Context, form forms.IngredientForm) error
	RemoveIngredient(ctx context.Context, itemID int) error
}

type ConsoleHandler struct {
	console Console
	logger  logger.Logger
}

func NewConsoleHandler(c Console, logger logger.Logger) *ConsoleHandler {
	return &ConsoleHandler{
		console: c,
		logger:  logger,
	}
}

// ConsoleResponse always carries the view as it stands after the action
type ConsoleResponse struct {
	View   console.View      `json:"view"`
	Error  string            `json:"error,omitempty"`
	Errors []forms.FieldError `json:"errors,omitempty"`
}

type filterRequest struct {
	Tab string `json:"tab"`
}

func (h *ConsoleHandler) Routes(r chi.Router) {
	r.Route("/console", func(r chi.Router) {
		r.Get("/view", h.GetView)
		r.Post("/retry", h.Retry)
		r.Put("/filter", h.SetFilter)
		r.Post("/selection/{id}", h.Select)
		r.Post("/dialogs/add-recipe", h.OpenAddRecipe)
		r.Post("/dialogs/edit-recipe/{id}", h.OpenEditRecipe)
		r.Post("/dialogs/add-ingredient", h.OpenAddIngredient)
		r.Delete("/dialogs", h.CloseDialog)
		r.Post("/recipes", h.CreateRecipe)
		r.Patch("/recipes", h.UpdateRecipe)
		r.Post("/ingredients", h.AddIngredient)
		r.Delete("/ingredients/{itemId}", h.RemoveIngredient)
	})
}

func (h *ConsoleHandler) GetView(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, nil)
}

func (h *ConsoleHandler) Retry(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.console.Retry(r.Context()))
}

func (h *ConsoleHandler) SetFilter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w)
		return
	}
	h.respond(w, r, h.console.SetFilterTab(console.FilterTab(req.Tab)))
}

func (h *ConsoleHandler) Select(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	h.respond(w, r, h.console.SelectRecipe(r.Context(), id))
}

func (h *ConsoleHandler) OpenAddRecipe(w http.ResponseWriter, r *http.Request) {
	h.console.OpenAddRecipe()
	h.respond(w, r, nil)
}

func (h *ConsoleHandler) OpenEditRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	h.respond(w, r, h.console.OpenEditRecipe(id))
}

func (h *ConsoleHandler) OpenAddIngredient(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.console.OpenAddIngredient())
}

func (h *ConsoleHandler) CloseDialog(w http.ResponseWriter, r *http.Request) {
	h.console.CloseDialog()
	h.respond(w, r, nil)
}

func (h *ConsoleHandler) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	var form forms.RecipeForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		h.badRequest(w)
		return
	}
	h.respond(w, r, h.console.SubmitCreateRecipe(r.Context(), form))
}

func (h *ConsoleHandler) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	var form forms.RecipeForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		h.badRequest(w)
		return
	}
	h.respond(w, r, h.console.SubmitUpdateRecipe(r.Context(), form))
}

func (h *ConsoleHandler) AddIngredient(w http.ResponseWriter, r *http.Request) {
	var form forms.IngredientForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		h.badRequest(w)
		return
	}
	h.respond(w, r, h.console.SubmitAddIngredient(r.Context(), form))
}

func (h *ConsoleHandler) RemoveIngredient(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(w, r, "itemId")
	if !ok {
		return
	}
	h.respond(w, r, h.console.RemoveIngredient(r.Context(), itemID))
}

func (h *ConsoleHandler) badRequest(w http.ResponseWriter) {
	respondJSON(w, http.StatusBadRequest, ConsoleResponse{View: h.console.View(), Error: "Invalid request body"})
}

func (h *ConsoleHandler) respond(w http.ResponseWriter, r *http.Request, err error) {
	resp := ConsoleResponse{View: h.console.View()}
	if err == nil {
		respondJSON(w, http.StatusOK, resp)
		return
	}

	resp.Error = err.Error()
	status := http.StatusBadGateway

	var fieldErrs forms.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		status = http.StatusUnprocessableEntity
		resp.Error = "Validation failed"
		resp.Errors = fieldErrs
	case errors.Is(err, console.ErrActionPending),
		errors.Is(err, console.ErrNoSelection),
		errors.Is(err, console.ErrNotEditing),
		errors.Is(err, console.ErrDialogClosed):
		status = http.StatusConflict
	case errors.Is(err, console.ErrUnknownFilter):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	default:
		h.logger.Error("console_action_failed", "Console action failed", RequestID(r.Context()), map[string]interface{}{
			"method": r.Method,
			"path":   r.URL.Path,
		}, err)
	}

	respondJSON(w, status, resp)
}
