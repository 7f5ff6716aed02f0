package domain

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// CostEstimate is the ingredient cost of one recipe at current inventory prices
type CostEstimate struct {
	Total   float64 `json:"total"`
	Counted int     `json:"counted"`
	Skipped int     `json:"skipped"`
}

// Formatted renders the total with two fractional digits
func (c CostEstimate) Formatted() string {
	return decimal.NewFromFloat(c.Total).StringFixed(2)
}

var (
	nonPriceChars  = regexp.MustCompile(`[^0-9.]`)
	leadingDecimal = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)
)

// EstimateCost sums unit price times required quantity over the items.
// Items whose price or quantity is not a number contribute nothing.
func EstimateCost(items []RecipeItemWithDetails) CostEstimate {
	var estimate CostEstimate
	for _, item := range items {
		price, ok := ParsePrice(item.InventoryItem.UnitPrice)
		if !ok {
			estimate.Skipped++
			continue
		}
		qty, ok := ParseQuantity(item.QuantityRequired)
		if !ok {
			estimate.Skipped++
			continue
		}

		line := price * qty
		if math.IsNaN(line) {
			estimate.Skipped++
			continue
		}
		estimate.Total += line
		estimate.Counted++
	}
	return estimate
}

// ParsePrice drops every character except digits and dots, then reads the
// leading number. "$12.50" is 12.5, "abc" is not a number.
func ParsePrice(raw string) (float64, bool) {
	return parseLeadingFloat(nonPriceChars.ReplaceAllString(raw, ""))
}

// ParseQuantity reads the leading number of a quantity, so "2 kg" is 2.
func ParseQuantity(raw string) (float64, bool) {
	return parseLeadingFloat(strings.TrimLeftFunc(raw, unicode.IsSpace))
}

func parseLeadingFloat(s string) (float64, bool) {
	match := leadingDecimal.FindString(s)
	if match == "" {
		return 0, false
	}

	sign := 1.0
	body := match
	switch body[0] {
	case '-':
		sign = -1
		body = body[1:]
	case '+':
		body = body[1:]
	}
	if body == "Infinity" {
		return math.Inf(int(sign)), true
	}

	// "5." and "5.e2" are valid prefixes but not valid ParseFloat input
	body = strings.Replace(body, ".e", "e", 1)
	body = strings.Replace(body, ".E", "E", 1)
	body = strings.TrimSuffix(body, ".")

	v, err := strconv.ParseFloat(body, 64)
	if err != nil {
		// out of range values saturate the same way the browser does
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return sign * v, true
		}
		return 0, false
	}
	return sign * v, true
}
