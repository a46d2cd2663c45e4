// Package engine implements the per-cycle decision and reconciliation logic:
// rate comparison, direction resolution, sizing, delta filtering, and order
// construction.
package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"fundarb/internal/market"
)

var (
	hoursPerYear = decimal.NewFromInt(8760)
	one          = decimal.NewFromInt(1)
)

// YieldPolicy selects how the hourly rate delta is projected to a yearly
// figure for display. Both projections are in use; neither changes trading
// behavior.
type YieldPolicy string

const (
	// YieldSimple reports delta * 8760 (APR).
	YieldSimple YieldPolicy = "simple"
	// YieldCompounding reports (1+delta)^8760 - 1 (APY).
	YieldCompounding YieldPolicy = "compounding"
)

// ParseYieldPolicy validates a configured policy string, defaulting the empty
// string to simple.
func ParseYieldPolicy(s string) (YieldPolicy, error) {
	switch YieldPolicy(s) {
	case "":
		return YieldSimple, nil
	case YieldSimple, YieldCompounding:
		return YieldPolicy(s), nil
	}
	return "", fmt.Errorf("unknown yield policy %q", s)
}

// Comparison is the outcome of weighing two venues' hourly funding rates.
type Comparison struct {
	// Dominant names the venue whose rate has the larger absolute value.
	Dominant string
	// Positive is the sign of the dominant venue's rate.
	Positive bool
	// Delta is |rateA - rateB|, the per-hour edge of the hedged pair.
	Delta decimal.Decimal
}

// Compare weighs two same-period funding rates. The first venue dominates
// only when its absolute rate is strictly larger; ties go to the second.
func Compare(a, b market.FundingRate) Comparison {
	cmp := Comparison{Delta: a.Hourly.Sub(b.Hourly).Abs()}
	if a.Hourly.Abs().GreaterThan(b.Hourly.Abs()) {
		cmp.Dominant = a.Venue
		cmp.Positive = a.Hourly.IsPositive()
	} else {
		cmp.Dominant = b.Venue
		cmp.Positive = b.Hourly.IsPositive()
	}
	return cmp
}

// AnnualizedYield projects an hourly rate delta to a yearly figure under the
// given policy.
func AnnualizedYield(delta decimal.Decimal, policy YieldPolicy) decimal.Decimal {
	if policy == YieldCompounding {
		return one.Add(delta).Pow(hoursPerYear).Sub(one)
	}
	return delta.Mul(hoursPerYear)
}
