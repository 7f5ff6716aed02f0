package forms

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const (
	FieldInventoryID      = "inventoryId"
	FieldQuantityRequired = "quantityRequired"
	FieldUnit             = "unit"
)

// Units are the values offered by the unit select
var Units = []string{"kg", "g", "liter", "ml", "bunch", "piece", "unit"}

// InventoryRef is the raw value of the ingredient select. It accepts a JSON
// number or string and is coerced to an id during validation.
type InventoryRef string

func (r *InventoryRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = InventoryRef(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*r = InventoryRef(n.String())
	return nil
}

// IngredientForm is the raw state of the add ingredient dialog
type IngredientForm struct {
	InventoryID      InventoryRef `json:"inventoryId"`
	QuantityRequired string       `json:"quantityRequired"`
	Unit             string       `json:"unit"`
}

// IngredientInput is an ingredient form that passed validation
type IngredientInput struct {
	InventoryID      int    `json:"inventoryId"`
	QuantityRequired string `json:"quantityRequired"`
	Unit             string `json:"unit"`
}

// NewIngredientForm returns the defaults of the add ingredient dialog
func NewIngredientForm() IngredientForm {
	return IngredientForm{InventoryID: "0"}
}

// ValidateIngredient checks the ingredient form. The quantity stays text;
// only the cost estimate interprets it as a number.
func ValidateIngredient(f IngredientForm) (IngredientInput, FieldErrors) {
	var errs FieldErrors

	id, ok := coerceID(string(f.InventoryID))
	if !ok || id < 1 {
		errs.add(FieldInventoryID, "You must select an ingredient")
	}
	if f.QuantityRequired == "" {
		errs.add(FieldQuantityRequired, "Quantity is required")
	}
	if f.Unit == "" {
		errs.add(FieldUnit, "Unit is required")
	}
	if len(errs) > 0 {
		return IngredientInput{}, errs
	}

	return IngredientInput{
		InventoryID:      id,
		QuantityRequired: f.QuantityRequired,
		Unit:             f.Unit,
	}, nil
}

// coerceID converts select text to an id; blank text counts as zero
func coerceID(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, false
	}
	if v > math.MaxInt32 {
		return 0, false
	}
	return int(v), true
}
