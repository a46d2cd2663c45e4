package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"fundarb/internal/metrics"
)

const (
	defaultInterval     = time.Minute
	defaultCycleTimeout = 30 * time.Second
)

// Scheduler drives the orchestrator on a fixed delay measured from the
// completion of the previous cycle, so slow cycles shift future firings and
// two cycles can never overlap.
type Scheduler struct {
	orch     *Orchestrator
	interval time.Duration
	timeout  time.Duration
	log      zerolog.Logger
}

func NewScheduler(orch *Orchestrator, interval, cycleTimeout time.Duration, log zerolog.Logger) *Scheduler {
	if interval <= 0 {
		interval = defaultInterval
	}
	if cycleTimeout <= 0 {
		cycleTimeout = defaultCycleTimeout
	}
	return &Scheduler{orch: orch, interval: interval, timeout: cycleTimeout, log: log}
}

// Run loops until the context is canceled. Nothing a cycle does escapes the
// per-cycle guard; the scheduler itself only exits on cancellation.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.RunOnce(ctx)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.interval):
		}
	}
}

// RunOnce executes a single guarded cycle: bounded by the cycle timeout and
// shielded against panics, which become aborted outcomes.
func (s *Scheduler) RunOnce(parent context.Context) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Msg("cycle panicked")
			metrics.CyclesTotal.WithLabelValues(string(OutcomeAborted)).Inc()
			out = Outcome{Kind: OutcomeAborted, Reason: fmt.Sprintf("panic: %v", r)}
		}
	}()

	ctx, cancel := context.WithTimeout(parent, s.timeout)
	defer cancel()
	return s.orch.RunCycle(ctx)
}
