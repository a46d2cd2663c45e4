// Package venue hosts adapters for the two perpetual-futures venues. Each
// adapter exposes the capability set the engine consumes plus order building
// for the ledger submitter.
package venue

import (
	"context"

	solana "github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"

	"fundarb/internal/market"
)

// Adapter is the full per-venue capability set: market data and position
// reads for the engine, order building for submission.
type Adapter interface {
	Name() string
	FundingRate(ctx context.Context, instrument string) (market.FundingRate, error)
	TopOfBook(ctx context.Context, instrument string) (market.TopOfBook, error)
	Position(ctx context.Context, instrument string) (market.Position, error)
	BuildOrder(ctx context.Context, ins market.OrderInstruction) (solana.Instruction, error)
}

// Provisioner covers the one-time account bootstrap surface. Steady-state
// code never touches it.
type Provisioner interface {
	Name() string
	Active(ctx context.Context) (bool, error)
	Activate(ctx context.Context) error
	HasOpenOrders(ctx context.Context, instrument string) (bool, error)
	CreateOpenOrders(ctx context.Context, instrument string) error
	Deposit(ctx context.Context, amountUSD decimal.Decimal) error
}
