package engine

import (
	"testing"

	"github.com/shopspring/decimal"

	"fundarb/internal/market"
)

func TestExecutionPrice(t *testing.T) {
	book := market.TopOfBook{
		Venue: "helix",
		Bid:   decimal.RequireFromString("100"),
		Ask:   decimal.RequireFromString("100.5"),
	}
	if px := ExecutionPrice(book, market.Short); !px.Equal(book.Bid) {
		t.Fatalf("expected short to price at bid, got %s", px)
	}
	if px := ExecutionPrice(book, market.Long); !px.Equal(book.Ask) {
		t.Fatalf("expected long to price at ask, got %s", px)
	}
}
