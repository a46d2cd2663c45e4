// Binary arb runs the steady-state funding-rate arbitrage loop.
package main

import (
	"context"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"fundarb/internal/config"
	"fundarb/internal/engine"
	"fundarb/internal/journal"
	"fundarb/internal/ledger"
	"fundarb/internal/market"
	"fundarb/internal/metrics"
	"fundarb/internal/risk"
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
	rpcURL := getEnv("ARB_RPC_URL", cfg.Ledger.RpcURL)
	dryRun := cfg.Strategy.DryRun || os.Getenv("ARB_DRY_RUN") == "true"

	yield, err := engine.ParseYieldPolicy(cfg.Strategy.YieldPolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("yield policy")
	}

	log.Info().
		Str("instrument", cfg.Strategy.Instrument).
		Str("account", account).
		Float64("budget_usd", cfg.Strategy.BudgetUSD).
		Int("interval_ms", cfg.Strategy.IntervalMs).
		Bool("dry_run", dryRun).
		Msg("starting funding rate arb")

	_ = metrics.Serve(cfg.App.MetricsAddr)
	log.Info().Str("addr", cfg.App.MetricsAddr).Msg("metrics up")

	ctx, cancel := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	first := buildAdapter(ctx, cfg.Venues.First, account, log)
	second := buildAdapter(ctx, cfg.Venues.Second, account, log)

	var submitter engine.Submitter
	if dryRun {
		log.Info().Msg("dry run enabled")
		submitter = ledger.NewLogSubmitter(util.Component(log, "dryrun"))
	} else {
		key, err := ledger.LoadPrivateKeyFromEnv()
		if err != nil {
			log.Fatal().Err(err).Msg("wallet")
		}
		builders := map[string]ledger.OrderBuilder{
			cfg.Venues.First.Name:  first,
			cfg.Venues.Second.Name: second,
		}
		submitter = ledger.NewSubmitter(rpcURL, key, builders, cfg.Ledger.ComputeUnitLimit, cfg.Ledger.Commitment, util.Component(log, "ledger"))
	}

	var recorder engine.Recorder
	if cfg.Journal.Enabled {
		store, err := journal.Open(cfg.Journal.Path)
		if err != nil {
			log.Fatal().Err(err).Msg("open journal")
		}
		defer store.Close()
		recorder = store
	}

	orch := engine.NewOrchestrator(engine.Params{
		First:     engine.Leg{Venue: first, Market: cfg.Venues.First.Market, Kind: market.OrderKind(cfg.Venues.First.OrderKind)},
		Second:    engine.Leg{Venue: second, Market: cfg.Venues.Second.Market, Kind: market.OrderKind(cfg.Venues.Second.OrderKind)},
		BudgetUSD: decimal.NewFromFloat(cfg.Strategy.BudgetUSD),
		Dust:      decimal.NewFromFloat(cfg.Strategy.DustThreshold),
		Yield:     yield,
		Limits:    risk.Limits{MaxNotionalPerLeg: decimal.NewFromFloat(cfg.Strategy.MaxLegNotionalUSD)},
		Submitter: submitter,
		Recorder:  recorder,
	}, util.Component(log, "cycle"))

	sched := engine.NewScheduler(orch,
		time.Duration(cfg.Strategy.IntervalMs)*time.Millisecond,
		time.Duration(cfg.Strategy.CycleTimeoutMs)*time.Millisecond,
		util.Component(log, "scheduler"))

	if err := sched.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal().Err(err).Msg("scheduler stopped")
	}
	log.Info().Msg("shutting down")
}

func buildAdapter(ctx context.Context, vc config.Venue, account string, log zerolog.Logger) venue.Adapter {
	rest := venue.NewRestClient(vc.Name, vc.BaseURL, account, util.Component(log, vc.Name))
	if vc.WsURL == "" {
		return rest
	}
	stream := venue.NewStreamQuotes(rest, vc.WsURL, time.Duration(vc.QuoteMaxAgeMs)*time.Millisecond, util.Component(log, vc.Name))
	go func() {
		if err := stream.Run(ctx); err != nil && ctx.Err() == nil {
			log.Warn().Err(err).Str("venue", vc.Name).Msg("quote stream stopped")
		}
	}()
	return stream
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
