package engine

import "github.com/shopspring/decimal"

// DefaultDustThreshold is the minimum absolute delta, in base-asset units,
// worth correcting. Anything at or below it is price noise between cycles.
var DefaultDustThreshold = decimal.RequireFromString("0.1")

// Delta is the correction needed to move the live position to the target.
func Delta(target, live decimal.Decimal) decimal.Decimal {
	return target.Sub(live)
}

// Actionable reports whether a delta clears the dust filter. The boundary is
// exclusive: a delta of exactly the threshold does not trade.
func Actionable(delta, dust decimal.Decimal) bool {
	return delta.Abs().GreaterThan(dust)
}
