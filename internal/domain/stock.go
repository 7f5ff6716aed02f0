package domain

const (
	criticalStockRatio = 0.25
	lowStockRatio      = 0.5
)

// ClassifyStock derives the stock health badge from current and ideal quantity.
// Each band includes its upper bound: exactly 25% is critical, exactly 50% is low.
func ClassifyStock(current, ideal float64) StockStatus {
	if ideal <= 0 {
		return StockUnknown
	}

	ratio := current / ideal
	switch {
	case ratio <= criticalStockRatio:
		return StockCritical
	case ratio <= lowStockRatio:
		return StockLow
	default:
		return StockGood
	}
}
