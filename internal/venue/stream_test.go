package venue

import (
	"context"
	"testing"
	"time"

	solana "github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"fundarb/internal/market"
)

type staticAdapter struct {
	name string
	book market.TopOfBook
}

func (s *staticAdapter) Name() string { return s.name }

func (s *staticAdapter) FundingRate(context.Context, string) (market.FundingRate, error) {
	return market.FundingRate{Venue: s.name}, nil
}

func (s *staticAdapter) TopOfBook(context.Context, string) (market.TopOfBook, error) {
	return s.book, nil
}

func (s *staticAdapter) Position(context.Context, string) (market.Position, error) {
	return market.Position{Venue: s.name}, nil
}

func (s *staticAdapter) BuildOrder(context.Context, market.OrderInstruction) (solana.Instruction, error) {
	return nil, nil
}

func TestStreamQuotesServesFreshQuote(t *testing.T) {
	inner := &staticAdapter{name: "helix", book: market.TopOfBook{Venue: "helix", Bid: decimal.NewFromInt(90), Ask: decimal.NewFromInt(91)}}
	stream := NewStreamQuotes(inner, "wss://unused", time.Second, zerolog.Nop())

	stream.apply(bookFrame{Market: "SOL-PERP", Bid: decimal.NewFromInt(100), Ask: decimal.NewFromInt(101)}, time.Now())

	book, err := stream.TopOfBook(context.Background(), "SOL-PERP")
	if err != nil {
		t.Fatalf("TopOfBook returned error: %v", err)
	}
	if !book.Bid.Equal(decimal.NewFromInt(100)) || !book.Ask.Equal(decimal.NewFromInt(101)) {
		t.Fatalf("expected streamed quote, got %s/%s", book.Bid, book.Ask)
	}
}

func TestStreamQuotesFallsBackWhenStale(t *testing.T) {
	inner := &staticAdapter{name: "helix", book: market.TopOfBook{Venue: "helix", Bid: decimal.NewFromInt(90), Ask: decimal.NewFromInt(91)}}
	stream := NewStreamQuotes(inner, "wss://unused", time.Second, zerolog.Nop())

	stream.apply(bookFrame{Market: "SOL-PERP", Bid: decimal.NewFromInt(100), Ask: decimal.NewFromInt(101)}, time.Now().Add(-2*time.Second))

	book, err := stream.TopOfBook(context.Background(), "SOL-PERP")
	if err != nil {
		t.Fatalf("TopOfBook returned error: %v", err)
	}
	if !book.Bid.Equal(inner.book.Bid) {
		t.Fatalf("expected fallback to inner adapter, got %s", book.Bid)
	}
}

func TestStreamQuotesFallsBackForUnknownMarket(t *testing.T) {
	inner := &staticAdapter{name: "helix", book: market.TopOfBook{Venue: "helix", Bid: decimal.NewFromInt(90), Ask: decimal.NewFromInt(91)}}
	stream := NewStreamQuotes(inner, "wss://unused", time.Second, zerolog.Nop())

	book, err := stream.TopOfBook(context.Background(), "BTC-PERP")
	if err != nil {
		t.Fatalf("TopOfBook returned error: %v", err)
	}
	if !book.Ask.Equal(inner.book.Ask) {
		t.Fatalf("expected fallback to inner adapter, got %s", book.Ask)
	}
}
