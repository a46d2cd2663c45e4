package engine

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestDelta(t *testing.T) {
	target := decimal.RequireFromString("-0.2")
	live := decimal.RequireFromString("0.05")
	if got := Delta(target, live); !got.Equal(decimal.RequireFromString("-0.25")) {
		t.Fatalf("expected -0.25, got %s", got)
	}
}

func TestActionableBoundaryIsExclusive(t *testing.T) {
	dust := DefaultDustThreshold
	if Actionable(decimal.RequireFromString("0.1"), dust) {
		t.Fatalf("delta exactly at threshold must not trade")
	}
	if Actionable(decimal.RequireFromString("-0.1"), dust) {
		t.Fatalf("negative delta exactly at threshold must not trade")
	}
	if !Actionable(decimal.RequireFromString("0.100000001"), dust) {
		t.Fatalf("delta above threshold must trade")
	}
	if !Actionable(decimal.RequireFromString("-0.11"), dust) {
		t.Fatalf("negative delta above threshold must trade")
	}
	if Actionable(decimal.Zero, dust) {
		t.Fatalf("zero delta must not trade")
	}
}
