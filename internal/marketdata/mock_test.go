package marketdata

import (
	"context"
	"reflect"
	"testing"
)

func TestMockProviderDeterministicPerSymbol(t *testing.T) {
	ctx := context.Background()

	first, err := NewMockProvider(7, 100).FetchBars(ctx, "AAPL", "day")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, err := NewMockProvider(7, 100).FetchBars(ctx, "AAPL", "day")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(first) != 100 {
		t.Fatalf("Expected 100 bars, got %d", len(first))
	}
	for i := range first {
		if first[i].Close != second[i].Close || first[i].Volume != second[i].Volume {
			t.Fatalf("Expected identical bars for the same seed, diverged at %d", i)
		}
	}
}

func TestMockProviderSymbolsDiffer(t *testing.T) {
	ctx := context.Background()
	provider := NewMockProvider(7, 50)

	a, _ := provider.FetchBars(ctx, "AAPL", "day")
	b, _ := provider.FetchBars(ctx, "MSFT", "day")

	if reflect.DeepEqual(a, b) {
		t.Error("Expected different series for different symbols")
	}
}

func TestMockProviderBarsWellFormed(t *testing.T) {
	bars, err := NewMockProvider(1, 200).FetchBars(context.Background(), "NVDA", "day")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for i, b := range bars {
		if b.High < b.Open || b.High < b.Close {
			t.Fatalf("Bar %d: high %f below body", i, b.High)
		}
		if b.Low > b.Open || b.Low > b.Close {
			t.Fatalf("Bar %d: low %f above body", i, b.Low)
		}
		if b.Volume <= 0 {
			t.Fatalf("Bar %d: non-positive volume %f", i, b.Volume)
		}
		if i > 0 && !bars[i-1].Date.Before(b.Date) {
			t.Fatalf("Bar %d: dates not strictly increasing", i)
		}
		if i > 0 && b.Open != bars[i-1].Close {
			t.Fatalf("Bar %d: open %f does not continue previous close %f", i, b.Open, bars[i-1].Close)
		}
	}
}

func TestMockProviderDefaultBarCount(t *testing.T) {
	bars, _ := NewMockProvider(1, 0).FetchBars(context.Background(), "X", "day")
	if len(bars) != 300 {
		t.Errorf("Expected default 300 bars, got %d", len(bars))
	}
}

func TestKiteProviderRequiresToken(t *testing.T) {
	provider := NewKiteProvider("key", "token", map[string]int{}, 100)

	_, err := provider.FetchBars(context.Background(), "UNKNOWN", "day")
	if err == nil {
		t.Fatal("Expected error for unmapped symbol")
	}
}
