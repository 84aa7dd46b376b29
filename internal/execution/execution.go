// Package execution turns signals into trade intents and dispatches them shadow or live.
package execution

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/xBwomp/Sentinel-Alpha-P/internal/metrics"
	"github.com/xBwomp/Sentinel-Alpha-P/internal/signal"
)

// Mode tags how an intent was (or would have been) dispatched.
type Mode string

const (
	// ModeShadow marks a logged-only trade: dry-run, or no live capability.
	ModeShadow Mode = "shadow"
	// ModeLive marks a trade submitted to the live collaborator.
	ModeLive Mode = "live"
)

// Intent is the full record of one qualifying tick's trade decision. It is
// ephemeral: logged and recorded, never stored.
type Intent struct {
	Signal      signal.Side `json:"signal"`
	Pair        string      `json:"pair"`
	Price       float64     `json:"price"`
	NotionalUSD float64     `json:"notional_usd"`
	SizeAsset   float64     `json:"size_asset"`
	Mode        Mode        `json:"mode"`
	Fallback    bool        `json:"fallback,omitempty"` // live attempt degraded to shadow
	Error       string      `json:"error,omitempty"`
	TxID        string      `json:"tx,omitempty"`
	Ts          time.Time   `json:"ts"`
}

// Trader is the live execution capability. It may be entirely absent (nil),
// which dispatch treats the same as a failed attempt.
type Trader interface {
	Trade(ctx context.Context, pair string, side signal.Side, size float64) (string, error)
}

// Recorder captures emitted intents for later inspection.
type Recorder interface {
	Record(Intent)
}

// Executor computes position size and dispatches either a shadow or live trade.
type Executor struct {
	log         zerolog.Logger
	trader      Trader
	recorder    Recorder
	dryRun      bool
	maxFraction float64
}

// NewExecutor wires the executor. trader and recorder may both be nil.
func NewExecutor(log zerolog.Logger, trader Trader, recorder Recorder, dryRun bool, maxTradeFraction float64) *Executor {
	return &Executor{
		log:         log,
		trader:      trader,
		recorder:    recorder,
		dryRun:      dryRun,
		maxFraction: maxTradeFraction,
	}
}

// Execute sizes and dispatches one trade. Every call produces exactly one
// logged intent record: shadow when dry-run or no trader, live on success,
// and shadow tagged as fallback when a live attempt fails. A failed live
// attempt is never silently dropped.
func (e *Executor) Execute(ctx context.Context, sig *signal.Signal, price, portfolioUSD float64) Intent {
	notional := portfolioUSD * e.maxFraction
	intent := Intent{
		Signal:      sig.Side,
		Pair:        sig.Pair,
		Price:       price,
		NotionalUSD: notional,
		SizeAsset:   roundAsset(notional / price),
		Mode:        ModeShadow,
		Ts:          sig.Ts,
	}

	if e.dryRun || e.trader == nil {
		e.emit(intent, "shadow trade")
		return intent
	}

	tx, err := e.trader.Trade(ctx, intent.Pair, intent.Signal, intent.SizeAsset)
	if err != nil {
		intent.Fallback = true
		intent.Error = err.Error()
		e.log.Error().Err(err).Str("pair", intent.Pair).Msg("trade execution failed, shadow fallback")
		e.emit(intent, "shadow trade (fallback)")
		return intent
	}

	intent.Mode = ModeLive
	intent.TxID = tx
	e.emit(intent, "live trade")
	return intent
}

func (e *Executor) emit(intent Intent, msg string) {
	metrics.TradesTotal.WithLabelValues(intent.Pair, string(intent.Signal), string(intent.Mode)).Inc()
	if e.recorder != nil {
		e.recorder.Record(intent)
	}
	e.log.Info().
		Str("signal", string(intent.Signal)).
		Str("pair", intent.Pair).
		Float64("price", intent.Price).
		Float64("notional_usd", intent.NotionalUSD).
		Float64("size_asset", intent.SizeAsset).
		Str("mode", string(intent.Mode)).
		Bool("fallback", intent.Fallback).
		Str("tx", intent.TxID).
		Msg(msg)
}

// roundAsset rounds an asset quantity to 8 decimal places.
func roundAsset(qty float64) float64 {
	return math.Round(qty*1e8) / 1e8
}
