package engine

import "fundarb/internal/market"

// Sides maps the dominant venue's rate sign to a side per leg. The dominant
// leg goes short when its rate is positive (longs pay shorts, so the short
// collects) and long when negative; the hedge leg always takes the opposite
// side. Deriving both legs from the dominant sign means a hedge leg whose own
// rate has the opposite sign collects funding too.
func Sides(dominantPositive bool) (dominant, hedge market.Side) {
	if dominantPositive {
		return market.Short, market.Long
	}
	return market.Long, market.Short
}
