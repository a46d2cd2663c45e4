package engine

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"fundarb/internal/market"
	"fundarb/internal/metrics"
	"fundarb/internal/risk"
)

// Venue is the read-side capability set the orchestrator needs per leg.
// Order building and submission live behind Submitter.
type Venue interface {
	Name() string
	FundingRate(ctx context.Context, instrument string) (market.FundingRate, error)
	TopOfBook(ctx context.Context, instrument string) (market.TopOfBook, error)
	Position(ctx context.Context, instrument string) (market.Position, error)
}

// Submitter hands a cycle's instruction set to the execution substrate,
// expected to attempt all legs as one atomic unit where the substrate allows.
type Submitter interface {
	Submit(ctx context.Context, instructions []market.OrderInstruction) (signature string, err error)
}

// Recorder persists per-cycle records. Implementations must not influence
// control flow; recording failures are logged and ignored.
type Recorder interface {
	Record(ctx context.Context, rec CycleRecord) error
}

// Leg binds one venue adapter to its market symbol and execution semantics.
type Leg struct {
	Venue  Venue
	Market string
	Kind   market.OrderKind
}

// OutcomeKind classifies how a cycle ended.
type OutcomeKind string

const (
	OutcomeNoAction OutcomeKind = "no_action"
	OutcomePartial  OutcomeKind = "partial"
	OutcomeFull     OutcomeKind = "full"
	OutcomeAborted  OutcomeKind = "aborted"
)

// Outcome is the terminal result of one cycle.
type Outcome struct {
	Kind         OutcomeKind
	Reason       string
	Signature    string
	Instructions int
}

// CycleRecord is the journaled summary of one cycle.
type CycleRecord struct {
	At           time.Time
	Outcome      OutcomeKind
	Reason       string
	Dominant     string
	RateDelta    decimal.Decimal
	Yield        decimal.Decimal
	Instructions int
	Signature    string
}

// Params collects orchestrator construction inputs. Everything is fixed at
// startup; the orchestrator holds no mutable state across cycles.
type Params struct {
	First     Leg
	Second    Leg
	BudgetUSD decimal.Decimal
	Dust      decimal.Decimal // zero selects DefaultDustThreshold
	Yield     YieldPolicy
	Limits    risk.Limits
	Submitter Submitter
	Recorder  Recorder // optional
}

// Orchestrator runs the decision-and-reconciliation sequence once per tick.
type Orchestrator struct {
	first     Leg
	second    Leg
	budget    decimal.Decimal
	dust      decimal.Decimal
	yield     YieldPolicy
	limits    risk.Limits
	submitter Submitter
	recorder  Recorder
	log       zerolog.Logger
}

func NewOrchestrator(p Params, log zerolog.Logger) *Orchestrator {
	dust := p.Dust
	if dust.IsZero() {
		dust = DefaultDustThreshold
	}
	yield := p.Yield
	if yield == "" {
		yield = YieldSimple
	}
	return &Orchestrator{
		first:     p.First,
		second:    p.Second,
		budget:    p.BudgetUSD,
		dust:      dust,
		yield:     yield,
		limits:    p.Limits,
		submitter: p.Submitter,
		recorder:  p.Recorder,
		log:       log,
	}
}

// RunCycle executes one full pass: compare rates, resolve directions, size
// targets, diff against live positions, build instructions, submit. Every
// intermediate value is logged; nothing here mutates state that outlives the
// cycle.
func (o *Orchestrator) RunCycle(ctx context.Context) Outcome {
	started := time.Now()
	rec := CycleRecord{At: started}
	out := o.runCycle(ctx, &rec)

	rec.Outcome = out.Kind
	rec.Reason = out.Reason
	rec.Signature = out.Signature
	rec.Instructions = out.Instructions
	metrics.CyclesTotal.WithLabelValues(string(out.Kind)).Inc()
	if o.recorder != nil {
		if err := o.recorder.Record(ctx, rec); err != nil {
			o.log.Warn().Err(err).Msg("journal write failed")
		}
	}
	o.log.Info().
		Str("outcome", string(out.Kind)).
		Str("reason", out.Reason).
		Int("instructions", out.Instructions).
		Dur("took", time.Since(started)).
		Msg("cycle finished")
	return out
}

func (o *Orchestrator) runCycle(ctx context.Context, rec *CycleRecord) Outcome {
	rateA, err := o.first.Venue.FundingRate(ctx, o.first.Market)
	if err != nil {
		return o.abort("funding rate", o.first.Venue.Name(), err)
	}
	rateB, err := o.second.Venue.FundingRate(ctx, o.second.Market)
	if err != nil {
		return o.abort("funding rate", o.second.Venue.Name(), err)
	}

	cmp := Compare(rateA, rateB)
	yield := AnnualizedYield(cmp.Delta, o.yield)
	rec.Dominant = cmp.Dominant
	rec.RateDelta = cmp.Delta
	rec.Yield = yield

	metrics.FundingRate.WithLabelValues(rateA.Venue).Set(rateA.Hourly.InexactFloat64())
	metrics.FundingRate.WithLabelValues(rateB.Venue).Set(rateB.Hourly.InexactFloat64())
	metrics.RateDelta.Set(cmp.Delta.InexactFloat64())

	o.log.Info().
		Str("rate_"+rateA.Venue, rateA.Hourly.String()).
		Str("rate_"+rateB.Venue, rateB.Hourly.String()).
		Str("dominant", cmp.Dominant).
		Str("delta", cmp.Delta.String()).
		Str("hourly_usd", cmp.Delta.Mul(o.budget).StringFixed(6)).
		Str("yield_"+string(o.yield), yield.String()).
		Msg("funding rates")

	domSide, hedgeSide := Sides(cmp.Positive)
	sideA, sideB := domSide, hedgeSide
	if cmp.Dominant != o.first.Venue.Name() {
		sideA, sideB = hedgeSide, domSide
	}

	bookA, err := o.first.Venue.TopOfBook(ctx, o.first.Market)
	if err != nil {
		return o.abort("top of book", o.first.Venue.Name(), err)
	}
	bookB, err := o.second.Venue.TopOfBook(ctx, o.second.Market)
	if err != nil {
		return o.abort("top of book", o.second.Venue.Name(), err)
	}
	o.log.Info().
		Str("bid_"+bookA.Venue, bookA.Bid.String()).
		Str("ask_"+bookA.Venue, bookA.Ask.String()).
		Str("bid_"+bookB.Venue, bookB.Bid.String()).
		Str("ask_"+bookB.Venue, bookB.Ask.String()).
		Msg("top of book")

	pxA := ExecutionPrice(bookA, sideA)
	pxB := ExecutionPrice(bookB, sideB)
	targetA, err := TargetSize(o.budget, pxA, sideA)
	if err != nil {
		return o.abort("sizing", o.first.Venue.Name(), err)
	}
	targetB, err := TargetSize(o.budget, pxB, sideB)
	if err != nil {
		return o.abort("sizing", o.second.Venue.Name(), err)
	}

	posA, err := o.first.Venue.Position(ctx, o.first.Market)
	if err != nil {
		return o.abort("position", o.first.Venue.Name(), err)
	}
	posB, err := o.second.Venue.Position(ctx, o.second.Market)
	if err != nil {
		return o.abort("position", o.second.Venue.Name(), err)
	}

	deltaA := Delta(targetA, posA.Size)
	deltaB := Delta(targetB, posB.Size)
	o.log.Info().
		Str("target_"+o.first.Venue.Name(), targetA.StringFixed(4)).
		Str("target_"+o.second.Venue.Name(), targetB.StringFixed(4)).
		Str("live_"+o.first.Venue.Name(), posA.Size.String()).
		Str("live_"+o.second.Venue.Name(), posB.Size.String()).
		Str("delta_"+o.first.Venue.Name(), deltaA.StringFixed(4)).
		Str("delta_"+o.second.Venue.Name(), deltaB.StringFixed(4)).
		Msg("positions")

	var instructions []market.OrderInstruction
	for _, c := range []struct {
		leg   Leg
		delta decimal.Decimal
	}{
		{o.first, deltaA},
		{o.second, deltaB},
	} {
		if !Actionable(c.delta, o.dust) {
			continue
		}
		// Re-read the book so the marketable limit reflects the freshest
		// opposing quote, not the sizing-time sample.
		fresh, err := c.leg.Venue.TopOfBook(ctx, c.leg.Market)
		if err != nil {
			return o.abort("order book refresh", c.leg.Venue.Name(), err)
		}
		ins := BuildInstruction(c.leg.Venue.Name(), c.leg.Market, c.delta, fresh, c.leg.Kind)
		if !o.limits.Allow(ins.Notional()) {
			o.log.Warn().
				Str("venue", ins.Venue).
				Str("notional", ins.Notional().StringFixed(2)).
				Msg("leg notional over limit, skipping")
			continue
		}
		o.log.Info().
			Str("venue", ins.Venue).
			Str("side", string(ins.Side)).
			Str("size", ins.Size.StringFixed(4)).
			Str("price", ins.Price.String()).
			Str("notional", ins.Notional().StringFixed(4)).
			Str("kind", string(ins.Kind)).
			Msg("corrective order")
		metrics.InstructionsTotal.WithLabelValues(ins.Venue, string(ins.Side)).Inc()
		instructions = append(instructions, ins)
	}

	if len(instructions) == 0 {
		return Outcome{Kind: OutcomeNoAction}
	}

	sig, err := o.submitter.Submit(ctx, instructions)
	if err != nil {
		metrics.SubmitFailures.Inc()
		o.log.Warn().Err(err).Msg("position adjustment failed")
		// The imbalance self-corrects: next cycle's delta computation sees
		// whatever actually filled.
		return Outcome{Kind: OutcomeAborted, Reason: "submission failed: " + err.Error(), Instructions: len(instructions)}
	}
	if sig != "" {
		o.log.Info().Str("signature", sig).Msg("instructions submitted")
	}

	kind := OutcomeFull
	if len(instructions) == 1 {
		kind = OutcomePartial
	}
	return Outcome{Kind: kind, Signature: sig, Instructions: len(instructions)}
}

func (o *Orchestrator) abort(stage, venue string, err error) Outcome {
	if errors.Is(err, market.ErrMissingRateData) {
		o.log.Warn().Str("venue", venue).Msg("funding rate unavailable")
		return Outcome{Kind: OutcomeAborted, Reason: "missing rate data: " + venue}
	}
	o.log.Error().Err(err).Str("venue", venue).Str("stage", stage).Msg("cycle aborted")
	return Outcome{Kind: OutcomeAborted, Reason: stage + " " + venue + ": " + err.Error()}
}
