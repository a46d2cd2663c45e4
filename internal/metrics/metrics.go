package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CyclesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "arb_cycles_total", Help: "Reconciliation cycles by outcome"},
		[]string{"outcome"},
	)
	InstructionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "arb_instructions_total", Help: "Order instructions built"},
		[]string{"venue", "side"},
	)
	FundingRate = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "arb_funding_rate_hourly", Help: "Last observed hourly funding rate"},
		[]string{"venue"},
	)
	RateDelta = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "arb_rate_delta_hourly", Help: "Absolute hourly funding rate differential"},
	)
	SubmitFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "arb_submit_failures_total", Help: "Instruction bundle submissions that failed"},
	)
)

func init() {
	prometheus.MustRegister(CyclesTotal, InstructionsTotal, FundingRate, RateDelta, SubmitFailures)
}

func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
