package risk

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAllow(t *testing.T) {
	limits := Limits{MaxNotionalPerLeg: decimal.NewFromInt(50)}
	if !limits.Allow(decimal.RequireFromString("49.9")) {
		t.Fatalf("expected notional under limit to pass")
	}
	if limits.Allow(decimal.RequireFromString("50.1")) {
		t.Fatalf("expected notional above limit to fail")
	}
}

func TestAllowUnsetLimit(t *testing.T) {
	var limits Limits
	if !limits.Allow(decimal.NewFromInt(1_000_000)) {
		t.Fatalf("expected zero limit to disable the guard")
	}
}
