package risk

import "github.com/shopspring/decimal"

// Limits guards how much notional a single corrective leg may take on. A
// direction flip can produce a delta near twice the cycle budget, so the cap
// is configured separately from it. Zero disables the guard.
type Limits struct {
	MaxNotionalPerLeg decimal.Decimal
}

func (l Limits) Allow(notional decimal.Decimal) bool {
	if l.MaxNotionalPerLeg.IsZero() {
		return true
	}
	return notional.LessThanOrEqual(l.MaxNotionalPerLeg)
}
