package domain

import "testing"

func TestClassifyStock(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		ideal   float64
		want    StockStatus
	}{
		{"empty", 0, 100, StockCritical},
		{"quarter is critical", 25, 100, StockCritical},
		{"just above quarter", 26, 100, StockLow},
		{"half is low", 50, 100, StockLow},
		{"just above half", 51, 100, StockGood},
		{"full", 100, 100, StockGood},
		{"overstocked", 250, 100, StockGood},
		{"fractional", 0.5, 2, StockCritical},
		{"zero ideal", 10, 0, StockUnknown},
		{"negative ideal", 10, -5, StockUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyStock(tt.current, tt.ideal); got != tt.want {
				t.Fatalf("expected %s for (%v, %v), got %s", tt.want, tt.current, tt.ideal, got)
			}
		})
	}
}

func TestClassifyStockBands(t *testing.T) {
	for current := 0; current <= 200; current++ {
		ratio := float64(current) / 100
		got := ClassifyStock(float64(current), 100)

		var want StockStatus
		switch {
		case ratio <= 0.25:
			want = StockCritical
		case ratio <= 0.5:
			want = StockLow
		default:
			want = StockGood
		}
		if got != want {
			t.Fatalf("current=%d: expected %s, got %s", current, want, got)
		}
	}
}

func TestInventoryItemStockStatus(t *testing.T) {
	item := InventoryItem{CurrentQty: 3, IdealQty: 10}
	if got := item.StockStatus(); got != StockLow {
		t.Fatalf("expected low, got %s", got)
	}
	if got := item.StockStatus().Label(); got != "Low" {
		t.Fatalf("expected label Low, got %s", got)
	}
}
