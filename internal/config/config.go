// Package config exposes strongly typed application configuration structs loaded from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// App captures process-wide runtime settings such as name, environment, metrics, and logging levels.
type App struct {
	Name        string `yaml:"name"`
	Env         string `yaml:"env"`
	MetricsAddr string `yaml:"metrics_addr"`
	LogLevel    string `yaml:"log_level"`
}

// Strategy groups the knobs of the reconciliation loop itself.
type Strategy struct {
	// Instrument is the underlying asset being arbitraged, e.g. "SOL".
	Instrument string `yaml:"instrument"`
	// BudgetUSD is the fixed notional each venue leg is sized to per cycle.
	BudgetUSD float64 `yaml:"budget_usd"`
	// IntervalMs is the delay between cycle completions, not a wall-clock grid.
	IntervalMs int `yaml:"interval_ms"`
	// CycleTimeoutMs bounds every suspension point within one cycle.
	CycleTimeoutMs int `yaml:"cycle_timeout_ms"`
	// DustThreshold is the minimum absolute delta worth trading; 0 keeps the default.
	DustThreshold float64 `yaml:"dust_threshold"`
	// YieldPolicy is "simple" (APR) or "compounding" (APY); presentational only.
	YieldPolicy string `yaml:"yield_policy"`
	// MaxLegNotionalUSD caps a single corrective leg; 0 disables the guard.
	MaxLegNotionalUSD float64 `yaml:"max_leg_notional_usd"`
	DryRun            bool    `yaml:"dry_run"`
}

// Venue describes one perp venue gateway.
type Venue struct {
	Name    string `yaml:"name"`
	BaseURL string `yaml:"base_url"`
	// WsURL enables the streaming quote overlay when non-empty.
	WsURL string `yaml:"ws_url"`
	// Market is the venue's symbol for the instrument, e.g. "SOL-PERP".
	Market string `yaml:"market"`
	// OrderKind selects the venue's execution semantics (market/limit/ioc/fok).
	OrderKind string `yaml:"order_kind"`
	// QuoteMaxAgeMs bounds how old a streamed quote may be before falling back to REST.
	QuoteMaxAgeMs int `yaml:"quote_max_age_ms"`
}

// Venues holds the two legs. The engine is two-venue by design.
type Venues struct {
	First  Venue `yaml:"first"`
	Second Venue `yaml:"second"`
}

// Ledger configures transaction submission.
type Ledger struct {
	RpcURL           string `yaml:"rpc_url"`
	Commitment       string `yaml:"commitment"`
	ComputeUnitLimit uint32 `yaml:"compute_unit_limit"`
	// Account is the funded arb account submitting orders on both venues.
	Account string `yaml:"account"`
}

// Journal configures the optional SQLite cycle journal.
type Journal struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Config collects every configuration leaf for easy marshaling from YAML.
type Config struct {
	App      App      `yaml:"app"`
	Strategy Strategy `yaml:"strategy"`
	Venues   Venues   `yaml:"venues"`
	Ledger   Ledger   `yaml:"ledger"`
	Journal  Journal  `yaml:"journal"`
}

// Load reads a YAML file from disk and hydrates a Config struct.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var config Config
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return &config, nil
}

// Save persists a Config struct to disk as YAML.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
