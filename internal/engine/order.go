package engine

import (
	"github.com/shopspring/decimal"

	"fundarb/internal/market"
)

// BuildInstruction turns a nonzero position delta into a corrective order.
// The limit price comes from a fresh book read rather than the sizing-time
// quote: buying crosses the ask, selling crosses the bid, so the order clears
// immediately against the opposing side. Kind is the venue's configured
// execution semantics.
func BuildInstruction(venue, instrument string, delta decimal.Decimal, book market.TopOfBook, kind market.OrderKind) market.OrderInstruction {
	side := market.Long
	price := book.Ask
	if delta.IsNegative() {
		side = market.Short
		price = book.Bid
	}
	return market.OrderInstruction{
		Venue:  venue,
		Market: instrument,
		Side:   side,
		Price:  price,
		Size:   delta.Abs(),
		Kind:   kind,
	}
}
