package execution

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/xBwomp/Sentinel-Alpha-P/internal/signal"
)

type captureRecorder struct {
	intents []Intent
}

func (c *captureRecorder) Record(i Intent) { c.intents = append(c.intents, i) }

type scriptedTrader struct {
	tx  string
	err error
}

func (s *scriptedTrader) Trade(context.Context, string, signal.Side, float64) (string, error) {
	return s.tx, s.err
}

func sellSignal() *signal.Signal {
	return &signal.Signal{Pair: "BTC-USD", Side: signal.Sell, Score: 2.5, Ts: time.Now()}
}

func TestExecuteSizing(t *testing.T) {
	rec := &captureRecorder{}
	exec := NewExecutor(zerolog.Nop(), nil, rec, true, 0.02)

	intent := exec.Execute(context.Background(), sellSignal(), 50000, 10000)
	if intent.NotionalUSD != 200 {
		t.Fatalf("expected notional 200, got %v", intent.NotionalUSD)
	}
	if intent.SizeAsset != 0.004 {
		t.Fatalf("expected size 0.004, got %v", intent.SizeAsset)
	}
	if intent.Mode != ModeShadow {
		t.Fatalf("dry run must stay in shadow mode, got %s", intent.Mode)
	}
	if len(rec.intents) != 1 {
		t.Fatalf("expected exactly one recorded intent, got %d", len(rec.intents))
	}
}

func TestExecuteRoundsToEightDecimals(t *testing.T) {
	exec := NewExecutor(zerolog.Nop(), nil, nil, true, 0.02)
	intent := exec.Execute(context.Background(), sellSignal(), 30000.77, 9999.99)
	want := math.Round(9999.99*0.02/30000.77*1e8) / 1e8
	if intent.SizeAsset != want {
		t.Fatalf("expected size %v, got %v", want, intent.SizeAsset)
	}
}

func TestExecuteLiveSuccess(t *testing.T) {
	rec := &captureRecorder{}
	trader := &scriptedTrader{tx: "abc123"}
	exec := NewExecutor(zerolog.Nop(), trader, rec, false, 0.02)

	intent := exec.Execute(context.Background(), sellSignal(), 50000, 10000)
	if intent.Mode != ModeLive {
		t.Fatalf("expected live mode, got %s", intent.Mode)
	}
	if intent.TxID != "abc123" {
		t.Fatalf("expected tx id recorded, got %q", intent.TxID)
	}
	if intent.Fallback {
		t.Fatalf("successful live trade must not be tagged fallback")
	}
}

func TestExecuteLiveFailureFallsBackToShadow(t *testing.T) {
	rec := &captureRecorder{}
	trader := &scriptedTrader{err: errors.New("venue down")}
	var buf bytes.Buffer
	exec := NewExecutor(zerolog.New(&buf), trader, rec, false, 0.02)

	intent := exec.Execute(context.Background(), sellSignal(), 50000, 10000)
	if intent.Mode != ModeShadow {
		t.Fatalf("failed live trade must degrade to shadow, got %s", intent.Mode)
	}
	if !intent.Fallback {
		t.Fatalf("fallback intent must be tagged so operators can tell it apart")
	}
	if len(rec.intents) != 1 {
		t.Fatalf("expected exactly one intent record, got %d", len(rec.intents))
	}
	if !strings.Contains(buf.String(), "fallback") {
		t.Fatalf("expected fallback in log output: %s", buf.String())
	}
}

func TestExecuteNilTraderInLiveMode(t *testing.T) {
	rec := &captureRecorder{}
	exec := NewExecutor(zerolog.Nop(), nil, rec, false, 0.02)

	intent := exec.Execute(context.Background(), sellSignal(), 50000, 10000)
	if intent.Mode != ModeShadow {
		t.Fatalf("absent trade capability must behave like shadow, got %s", intent.Mode)
	}
	if len(rec.intents) != 1 {
		t.Fatalf("expected exactly one intent record, got %d", len(rec.intents))
	}
}
