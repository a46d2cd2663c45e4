package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestRunOnceRecoversPanic(t *testing.T) {
	helix, meridian := newTestVenues()
	helix.panicOnRate = true
	orch := newTestOrchestrator(helix, meridian, "20", &fakeSubmitter{sig: "SIG"}, nil)
	sched := NewScheduler(orch, time.Minute, time.Second, zerolog.Nop())

	out := sched.RunOnce(context.Background())
	if out.Kind != OutcomeAborted {
		t.Fatalf("expected abort after panic, got %s", out.Kind)
	}
	if !strings.Contains(out.Reason, "panic") {
		t.Fatalf("unexpected reason %q", out.Reason)
	}
}

func TestSchedulerReschedulesAfterFailedCycle(t *testing.T) {
	helix, meridian := newTestVenues()
	helix.rateErr = errors.New("feed down")
	orch := newTestOrchestrator(helix, meridian, "20", &fakeSubmitter{sig: "SIG"}, nil)
	sched := NewScheduler(orch, 5*time.Millisecond, time.Second, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	err := sched.Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if helix.rateCalls < 2 {
		t.Fatalf("expected loop to keep cycling after aborts, got %d cycles", helix.rateCalls)
	}
}

func TestSchedulerStopsOnCancel(t *testing.T) {
	helix, meridian := newTestVenues()
	orch := newTestOrchestrator(helix, meridian, "10", &fakeSubmitter{sig: "SIG"}, nil)
	sched := NewScheduler(orch, time.Hour, time.Second, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sched.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("scheduler did not stop on cancel")
	}
}
