package engine

import (
	"testing"

	"github.com/shopspring/decimal"

	"fundarb/internal/market"
)

func TestBuildInstructionLong(t *testing.T) {
	book := market.TopOfBook{Venue: "helix", Bid: decimal.RequireFromString("99.5"), Ask: decimal.RequireFromString("100.5")}
	delta := decimal.RequireFromString("0.25")

	ins := BuildInstruction("helix", "SOL-PERP", delta, book, market.KindMarket)
	if ins.Side != market.Long {
		t.Fatalf("expected long, got %s", ins.Side)
	}
	if !ins.Price.Equal(book.Ask) {
		t.Fatalf("expected buy priced at ask, got %s", ins.Price)
	}
	if !ins.Size.Equal(delta) {
		t.Fatalf("expected size %s, got %s", delta, ins.Size)
	}
	if ins.Kind != market.KindMarket {
		t.Fatalf("expected market kind, got %s", ins.Kind)
	}
}

func TestBuildInstructionShort(t *testing.T) {
	book := market.TopOfBook{Venue: "meridian", Bid: decimal.RequireFromString("99.5"), Ask: decimal.RequireFromString("100.5")}
	delta := decimal.RequireFromString("-0.25")

	ins := BuildInstruction("meridian", "SOL-PERP", delta, book, market.KindFillOrKill)
	if ins.Side != market.Short {
		t.Fatalf("expected short, got %s", ins.Side)
	}
	if !ins.Price.Equal(book.Bid) {
		t.Fatalf("expected sell priced at bid, got %s", ins.Price)
	}
	if !ins.Size.Equal(delta.Abs()) {
		t.Fatalf("expected size %s, got %s", delta.Abs(), ins.Size)
	}
	if !ins.Notional().Equal(decimal.RequireFromString("24.875")) {
		t.Fatalf("unexpected notional %s", ins.Notional())
	}
}
