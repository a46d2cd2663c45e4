// Package bootstrap runs the one-time account provisioning that must hold
// before the loop starts: each venue sub-account active, open-orders present
// for the traded market, collateral deposited. Every step is a
// precondition-and-repair check, safe to re-run.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"fundarb/internal/venue"
)

// VenueSetup describes what one venue needs provisioned.
type VenueSetup struct {
	Venue      venue.Provisioner
	Market     string
	DepositUSD decimal.Decimal
}

// Run provisions every venue in order. Any failure is returned as-is; callers
// treat bootstrap errors as fatal.
func Run(ctx context.Context, setups []VenueSetup, log zerolog.Logger) error {
	for _, s := range setups {
		if err := provision(ctx, s, log); err != nil {
			return fmt.Errorf("provision %s: %w", s.Venue.Name(), err)
		}
	}
	return nil
}

func provision(ctx context.Context, s VenueSetup, log zerolog.Logger) error {
	name := s.Venue.Name()

	active, err := s.Venue.Active(ctx)
	if err != nil {
		return fmt.Errorf("check active: %w", err)
	}
	if !active {
		log.Info().Str("venue", name).Msg("activating sub-account")
		if err := s.Venue.Activate(ctx); err != nil {
			return fmt.Errorf("activate: %w", err)
		}
	}

	exists, err := s.Venue.HasOpenOrders(ctx, s.Market)
	if err != nil {
		return fmt.Errorf("check open orders: %w", err)
	}
	if !exists {
		log.Info().Str("venue", name).Str("market", s.Market).Msg("creating open-orders account")
		if err := s.Venue.CreateOpenOrders(ctx, s.Market); err != nil {
			return fmt.Errorf("create open orders: %w", err)
		}
	}

	if s.DepositUSD.IsPositive() {
		log.Info().Str("venue", name).Str("amount_usd", s.DepositUSD.String()).Msg("depositing collateral")
		if err := s.Venue.Deposit(ctx, s.DepositUSD); err != nil {
			return fmt.Errorf("deposit: %w", err)
		}
	}

	log.Info().Str("venue", name).Msg("venue provisioned")
	return nil
}
