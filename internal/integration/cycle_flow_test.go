package integration

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"fundarb/internal/engine"
	"fundarb/internal/ledger"
	"fundarb/internal/market"
	"fundarb/internal/venue"
)

func gatewayServer(t *testing.T, funding, bid, ask string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/funding":
			w.Write([]byte(`{"market":"SOL-PERP","hourly":"` + funding + `"}`))
		case "/v1/book":
			w.Write([]byte(`{"bid":"` + bid + `","ask":"` + ask + `"}`))
		case "/v1/position":
			w.Write([]byte(`{"size":"0"}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
}

func TestDryRunCycleAgainstGateways(t *testing.T) {
	helixSrv := gatewayServer(t, "0.002", "100", "100.5")
	defer helixSrv.Close()
	meridianSrv := gatewayServer(t, "-0.0005", "100.5", "101")
	defer meridianSrv.Close()

	helix := venue.NewRestClient("helix", helixSrv.URL, "acct", zerolog.Nop())
	meridian := venue.NewRestClient("meridian", meridianSrv.URL, "acct", zerolog.Nop())

	var buf bytes.Buffer
	submitter := ledger.NewLogSubmitter(zerolog.New(&buf))

	orch := engine.NewOrchestrator(engine.Params{
		First:     engine.Leg{Venue: helix, Market: "SOL-PERP", Kind: market.KindMarket},
		Second:    engine.Leg{Venue: meridian, Market: "SOL-PERP", Kind: market.KindLimit},
		BudgetUSD: decimal.NewFromInt(20),
		Submitter: submitter,
	}, zerolog.Nop())

	out := orch.RunCycle(context.Background())
	if out.Kind != engine.OutcomeFull {
		t.Fatalf("expected full instructions, got %s (%s)", out.Kind, out.Reason)
	}
	if out.Instructions != 2 {
		t.Fatalf("expected two legs, got %d", out.Instructions)
	}

	logged := buf.String()
	if strings.Count(logged, "dry run") != 2 {
		t.Fatalf("expected two dry run lines, got %s", logged)
	}
	if !strings.Contains(logged, "helix") || !strings.Contains(logged, "meridian") {
		t.Fatalf("expected both venues logged, got %s", logged)
	}
}
