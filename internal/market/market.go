// Package market standardizes payloads shared between venue adapters and the engine.
package market

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrMissingRateData marks a venue that cannot supply a funding rate for the
// requested instrument. A cycle that hits it aborts without instructions.
var ErrMissingRateData = errors.New("missing funding rate data")

// Side expresses the intended exposure on a venue, distinct from any
// venue-specific bid/ask or buy/sell vocabulary.
type Side string

const (
	Long  Side = "LONG"
	Short Side = "SHORT"
)

// Opposite returns the hedging side.
func (s Side) Opposite() Side {
	if s == Long {
		return Short
	}
	return Long
}

// OrderKind selects venue-specific execution semantics. It is configured per
// venue, never decided by the engine.
type OrderKind string

const (
	KindMarket            OrderKind = "market"
	KindLimit             OrderKind = "limit"
	KindImmediateOrCancel OrderKind = "ioc"
	KindFillOrKill        OrderKind = "fok"
)

// FundingRate is one venue's hourly funding rate. Sign indicates who pays
// whom: positive means longs pay shorts.
type FundingRate struct {
	Venue  string
	Hourly decimal.Decimal
}

// TopOfBook carries the best quotes on one venue. Bid <= Ask is assumed from
// the feed, not validated here.
type TopOfBook struct {
	Venue string
	Bid   decimal.Decimal
	Ask   decimal.Decimal
}

// Position is the live signed base-asset position held on a venue.
// Positive is long, negative is short.
type Position struct {
	Venue string
	Size  decimal.Decimal
}

// OrderInstruction describes one corrective order for one venue. Size is
// absolute; Price is a marketable limit read from the book at build time.
type OrderInstruction struct {
	Venue  string
	Market string
	Side   Side
	Price  decimal.Decimal
	Size   decimal.Decimal
	Kind   OrderKind
}

// Notional returns the USD value of the instruction at its limit price.
func (oi OrderInstruction) Notional() decimal.Decimal {
	return oi.Size.Mul(oi.Price)
}
