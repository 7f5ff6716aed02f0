package postgres

import (
	"context"
	"fmt"

	"github.com/YelzhanWeb/recipes/internal/domain"
	"github.com/YelzhanWeb/recipes/internal/interfaces"
)

const inventoryColumns = `id, item_name, unit_of_measurement, box_or_package_qty, unit_price, total_price,
	ideal_qty, current_qty, shelf_life_days, last_updated, category`

type inventoryRepository struct {
	db DB
}

func NewInventoryRepository(db DB) interfaces.InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) List(ctx context.Context) ([]domain.InventoryItem, error) {
	rows, err := r.db.Query(ctx, `SELECT `+inventoryColumns+` FROM inventory_items ORDER BY item_name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	defer rows.Close()

	items := []domain.InventoryItem{}
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}

	return items, nil
}

func (r *inventoryRepository) FindByID(ctx context.Context, id int) (*domain.InventoryItem, error) {
	item, err := scanInventoryItem(r.db.QueryRow(ctx, `SELECT `+inventoryColumns+` FROM inventory_items WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return item, nil
}

func (r *inventoryRepository) Create(ctx context.Context, item *domain.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (item_name, unit_of_measurement, box_or_package_qty, unit_price, total_price,
		                             ideal_qty, current_qty, shelf_life_days, last_updated, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		item.ItemName, item.UnitOfMeasurement, item.BoxOrPackageQty, item.UnitPrice, item.TotalPrice,
		item.IdealQty, item.CurrentQty, item.ShelfLifeDays, item.LastUpdated, item.Category,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("failed to insert inventory item: %w", err)
	}
	return nil
}

func scanInventoryItem(row Row) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	err := row.Scan(
		&item.ID, &item.ItemName, &item.UnitOfMeasurement, &item.BoxOrPackageQty, &item.UnitPrice, &item.TotalPrice,
		&item.IdealQty, &item.CurrentQty, &item.ShelfLifeDays, &item.LastUpdated, &item.Category,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
