package ledger

import (
	"context"
	"strings"
	"testing"

	solana "github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"fundarb/internal/market"
)

func TestSubmitRejectsUnknownVenue(t *testing.T) {
	owner := solana.NewWallet().PrivateKey
	sub := NewSubmitter("http://127.0.0.1:1", owner, map[string]OrderBuilder{}, 0, "confirmed", zerolog.Nop())

	_, err := sub.Submit(context.Background(), []market.OrderInstruction{
		{
			Venue: "unknown",
			Side:  market.Long,
			Price: decimal.RequireFromString("100"),
			Size:  decimal.RequireFromString("0.2"),
		},
	})
	if err == nil {
		t.Fatalf("expected error for unmapped venue")
	}
	if !strings.Contains(err.Error(), "no order builder") {
		t.Fatalf("unexpected error %v", err)
	}
}
