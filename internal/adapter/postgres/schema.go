package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/YelzhanWeb/recipes/internal/domain"

	"github.com/jackc/pgx/v5"
)

// Prices and required quantities are stored as text; the console interprets them.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS recipes (
		id            SERIAL PRIMARY KEY,
		dish_name     TEXT NOT NULL CHECK (char_length(dish_name) >= 2),
		order_type    TEXT NOT NULL CHECK (order_type IN ('dine_in', 'takeaway', 'both')),
		description   TEXT,
		selling_price TEXT,
		category      TEXT,
		is_active     BOOLEAN NOT NULL DEFAULT TRUE,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS inventory_items (
		id                  SERIAL PRIMARY KEY,
		item_name           TEXT NOT NULL,
		unit_of_measurement TEXT NOT NULL,
		box_or_package_qty  INTEGER NOT NULL DEFAULT 0 CHECK (box_or_package_qty >= 0),
		unit_price          TEXT NOT NULL,
		total_price         TEXT NOT NULL,
		ideal_qty           DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (ideal_qty >= 0),
		current_qty         DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (current_qty >= 0),
		shelf_life_days     INTEGER,
		last_updated        TIMESTAMPTZ NOT NULL DEFAULT now(),
		category            TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS recipe_items (
		id                SERIAL PRIMARY KEY,
		recipe_id         INTEGER NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
		inventory_id      INTEGER NOT NULL REFERENCES inventory_items(id),
		quantity_required TEXT NOT NULL,
		unit              TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS recipe_items_recipe_id_idx ON recipe_items (recipe_id)`,
}

// EnsureSchema creates the recipe tables when they are missing
func EnsureSchema(ctx context.Context, db DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// notFound maps the driver's empty-result error to the domain one
func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}
