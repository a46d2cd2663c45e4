// Binary setup provisions a brand new arb account: activates each venue
// sub-account, ensures an open-orders account for the traded market, and
// deposits half the cycle budget on each side. Safe to re-run; failures here
// are fatal by design.
package main

import (
	"context"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"fundarb/internal/bootstrap"
	"fundarb/internal/config"
	"fundarb/internal/util"
	"fundarb/internal/venue"
)

func main() {
	cfg, err := config.Load(getEnv("ARB_CONFIG", "internal/config/config.yaml"))
	if err != nil {
		bootLog := util.NewLogger("info")
		bootLog.Fatal().Err(err).Msg("load config")
	}

	log := util.NewLogger(cfg.App.LogLevel)
	account := getEnv("ARB_ACCOUNT", cfg.Ledger.Account)

	log.Info().
		Str("instrument", cfg.Strategy.Instrument).
		Str("account", account).
		Msg("setting up funding rate arb account")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// Each venue leg carries half the budget as collateral.
	half := decimal.NewFromFloat(cfg.Strategy.BudgetUSD).Div(decimal.NewFromInt(2))

	setups := []bootstrap.VenueSetup{
		{
			Venue:      venue.NewRestClient(cfg.Venues.First.Name, cfg.Venues.First.BaseURL, account, util.Component(log, cfg.Venues.First.Name)),
			Market:     cfg.Venues.First.Market,
			DepositUSD: half,
		},
		{
			Venue:      venue.NewRestClient(cfg.Venues.Second.Name, cfg.Venues.Second.BaseURL, account, util.Component(log, cfg.Venues.Second.Name)),
			Market:     cfg.Venues.Second.Market,
			DepositUSD: half,
		},
	}

	if err := bootstrap.Run(ctx, setups, log); err != nil {
		log.Fatal().Err(err).Msg("bootstrap failed")
	}
	log.Info().Str("account", account).Msg("done")
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
