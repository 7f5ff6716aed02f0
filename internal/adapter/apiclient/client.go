package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/YelzhanWeb/recipes/internal/config"
	"github.com/YelzhanWeb/recipes/internal/domain"
	"github.com/YelzhanWeb/recipes/internal/forms"
	"github.com/YelzhanWeb/recipes/internal/interfaces"
)

// ErrEmptyResponse is returned when a call that expects a JSON body gets none
var ErrEmptyResponse = errors.New("empty response body")

// APIError is a non-2xx answer from the recipe data API
type APIError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	msg := strings.TrimSpace(e.Body)
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("%s %s returned %d: %s", e.Method, e.Path, e.Status, msg)
}

// Is lets a 404 match domain.ErrNotFound
func (e *APIError) Is(target error) bool {
	return target == domain.ErrNotFound && e.Status == http.StatusNotFound
}

type Client struct {
	baseURL string
	http    *http.Client
	retries int
}

func New(cfg config.APIConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		retries: cfg.FetchRetries,
	}
}

var _ interfaces.RecipeAPI = (*Client)(nil)

func (c *Client) ListRecipes(ctx context.Context) ([]domain.Recipe, error) {
	var recipes []domain.Recipe
	if err := c.fetch(ctx, "/api/recipes", &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (c *Client) CreateRecipe(ctx context.Context, input forms.RecipeInput) (*domain.Recipe, error) {
	var recipe domain.Recipe
	if err := c.do(ctx, http.MethodPost, "/api/recipes", input, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (c *Client) UpdateRecipe(ctx context.Context, id int, patch forms.RecipePatch) (*domain.Recipe, error) {
	var recipe domain.Recipe
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/recipes/%d", id), patch, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (c *Client) ListInventory(ctx context.Context) ([]domain.InventoryItem, error) {
	var items []domain.InventoryItem
	if err := c.fetch(ctx, "/api/inventory", &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) ListRecipeItems(ctx context.Context, recipeID int) ([]domain.RecipeItemWithDetails, error) {
	var items []domain.RecipeItemWithDetails
	if err := c.fetch(ctx, fmt.Sprintf("/api/recipes/%d/items", recipeID), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) AddRecipeItem(ctx context.Context, recipeID int, input forms.IngredientInput) (*domain.RecipeItem, error) {
	var item domain.RecipeItem
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/recipes/%d/items", recipeID), input, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) RemoveRecipeItem(ctx context.Context, recipeID, itemID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/recipes/%d/items/%d", recipeID, itemID), nil, nil)
}

// fetch issues a GET, retrying transport errors and 5xx answers
func (c *Client) fetch(ctx context.Context, path string, out any) error {
	var err error
	for attempt := 0; attempt <= c.retries; attempt++ {
		err = c.do(ctx, http.MethodGet, path, nil, out)
		if err == nil || !retryable(err) || ctx.Err() != nil {
			return err
		}
	}
	return err
}

func retryable(err error) bool {
	if errors.Is(err, ErrEmptyResponse) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= http.StatusInternalServerError
	}
	return true
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Method: method, Path: path, Status: resp.StatusCode, Body: string(data)}
	}

	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("%s %s returned %d with an empty body: %w", method, path, resp.StatusCode, ErrEmptyResponse)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response from %s %s: %w", method, path, err)
	}
	return nil
}
