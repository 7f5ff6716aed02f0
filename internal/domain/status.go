package domain

import "time"

type OrderType string

const (
	OrderTypeDineIn   OrderType = "dine_in"
	OrderTypeTakeaway OrderType = "takeaway"
	OrderTypeBoth     OrderType = "both"
)

func (t OrderType) Valid() bool {
	switch t {
	case OrderTypeDineIn, OrderTypeTakeaway, OrderTypeBoth:
		return true
	}
	return false
}

type StockStatus string

const (
	StockCritical StockStatus = "critical"
	StockLow      StockStatus = "low"
	StockGood     StockStatus = "good"
	StockUnknown  StockStatus = "unknown"
)

// Label is the badge text shown next to an ingredient
func (s StockStatus) Label() string {
	switch s {
	case StockCritical:
		return "Critical"
	case StockLow:
		return "Low"
	case StockGood:
		return "Good"
	default:
		return "Unknown"
	}
}

type NotificationVariant string

const (
	VariantDefault     NotificationVariant = "default"
	VariantDestructive NotificationVariant = "destructive"
)

// Notification is a transient toast raised by a console action
type Notification struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Variant     NotificationVariant `json:"variant"`
	CreatedAt   time.Time           `json:"created_at"`
}

func NewNotification(title, description string, variant NotificationVariant) Notification {
	return Notification{
		Title:       title,
		Description: description,
		Variant:     variant,
		CreatedAt:   time.Now().UTC(),
	}
}
