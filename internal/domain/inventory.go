package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem represents an ingredient stocked by the kitchen
type InventoryItem struct {
	ID                int       `json:"id"`
	ItemName          string    `json:"itemName"`
	UnitOfMeasurement string    `json:"unitOfMeasurement"`
	BoxOrPackageQty   int       `json:"boxOrPackageQty"`
	UnitPrice         string    `json:"unitPrice"`
	TotalPrice        string    `json:"totalPrice"`
	IdealQty          float64   `json:"idealQty"`
	CurrentQty        float64   `json:"currentQty"`
	ShelfLifeDays     *int      `json:"shelfLifeDays"`
	LastUpdated       time.Time `json:"lastUpdated"`
	Category          *string   `json:"category"`
}

// NewInventoryItem creates an inventory item and derives its total price
func NewInventoryItem(name, unit string, packageQty int, unitPrice string, idealQty, currentQty float64, shelfLifeDays *int, category *string) (*InventoryItem, error) {
	item := &InventoryItem{
		ItemName:          strings.TrimSpace(name),
		UnitOfMeasurement: strings.TrimSpace(unit),
		BoxOrPackageQty:   packageQty,
		UnitPrice:         strings.TrimSpace(unitPrice),
		IdealQty:          idealQty,
		CurrentQty:        currentQty,
		ShelfLifeDays:     shelfLifeDays,
		LastUpdated:       time.Now().UTC(),
		Category:          category,
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}
	item.CalculateTotalPrice()
	return item, nil
}

// Validate applies business validation rules
func (i *InventoryItem) Validate() error {
	if i.ItemName == "" {
		return errors.New("item name is required")
	}
	if i.UnitOfMeasurement == "" {
		return errors.New("unit of measurement is required")
	}
	if i.BoxOrPackageQty < 0 {
		return errors.New("package quantity must not be negative")
	}
	if i.IdealQty < 0 || i.CurrentQty < 0 {
		return errors.New("quantities must not be negative")
	}
	if i.ShelfLifeDays != nil && *i.ShelfLifeDays < 0 {
		return errors.New("shelf life must not be negative")
	}
	if _, ok := ParsePrice(i.UnitPrice); !ok {
		return errors.New("unit price must contain a number")
	}
	return nil
}

// CalculateTotalPrice sets the package price from the unit price
func (i *InventoryItem) CalculateTotalPrice() {
	price, ok := ParsePrice(i.UnitPrice)
	if !ok {
		i.TotalPrice = "0.00"
		return
	}
	total := decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(i.BoxOrPackageQty)))
	i.TotalPrice = total.StringFixed(2)
}

// StockStatus classifies the current stock against the ideal level
func (i *InventoryItem) StockStatus() StockStatus {
	return ClassifyStock(i.CurrentQty, i.IdealQty)
}
