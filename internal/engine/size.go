package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"fundarb/internal/market"
)

// TargetSize converts the fixed USD budget into a signed base-asset target at
// the given execution price. Positive is long, negative is short. All
// arithmetic stays in decimals; rounding happens only in log output.
func TargetSize(budgetUSD, price decimal.Decimal, side market.Side) (decimal.Decimal, error) {
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("non-positive execution price %s", price)
	}
	size := budgetUSD.Div(price)
	if side == market.Short {
		size = size.Neg()
	}
	return size, nil
}
