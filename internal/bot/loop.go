// Package bot owns the poll → risk → signal → execute control loop.
package bot

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/xBwomp/Sentinel-Alpha-P/internal/execution"
	"github.com/xBwomp/Sentinel-Alpha-P/internal/feed"
	"github.com/xBwomp/Sentinel-Alpha-P/internal/metrics"
	"github.com/xBwomp/Sentinel-Alpha-P/internal/risk"
	"github.com/xBwomp/Sentinel-Alpha-P/internal/signal"
	"github.com/xBwomp/Sentinel-Alpha-P/internal/strategy"
	"github.com/xBwomp/Sentinel-Alpha-P/internal/wallet"
)

// ErrHalted is returned by Run when the daily stop loss fires. The halt is
// terminal for the process; a restart begins a fresh drawdown window.
var ErrHalted = errors.New("daily stop loss halt")

// State reflects where the loop is in its lifecycle.
type State int32

const (
	// Running is the normal ticking state.
	Running State = iota
	// Halting means a drawdown breach was observed and the loop is winding down.
	Halting
	// Stopped means the loop has exited.
	Stopped
)

// Bot sequences one tick at a time: fetch price, fetch portfolio value,
// evaluate the guard, update the window, derive a signal, execute, wait.
// There is exactly one mutator of the window and the drawdown record, so no
// locking is needed; shutdown is cooperative through ctx.
type Bot struct {
	log      zerolog.Logger
	pair     string
	interval time.Duration
	callTTL  time.Duration

	feed   feed.PriceFeed
	wallet wallet.Provider
	strat  strategy.Strategy
	guard  *risk.DrawdownGuard
	exec   *execution.Executor

	state atomic.Int32
}

// New assembles the loop from its collaborators.
func New(log zerolog.Logger, pair string, interval time.Duration, priceFeed feed.PriceFeed, portfolio wallet.Provider, strat strategy.Strategy, guard *risk.DrawdownGuard, exec *execution.Executor) *Bot {
	if interval <= 0 {
		interval = time.Minute
	}
	callTTL := interval
	if callTTL > 15*time.Second {
		callTTL = 15 * time.Second
	}
	return &Bot{
		log:      log,
		pair:     pair,
		interval: interval,
		callTTL:  callTTL,
		feed:     priceFeed,
		wallet:   portfolio,
		strat:    strat,
		guard:    guard,
		exec:     exec,
	}
}

// State returns the loop's current lifecycle state.
func (b *Bot) State() State { return State(b.state.Load()) }

// Run executes ticks until ctx is canceled or the stop loss halts the run.
// It returns nil on a clean shutdown and ErrHalted on a drawdown breach.
func (b *Bot) Run(ctx context.Context) error {
	b.state.Store(int32(Running))
	defer b.state.Store(int32(Stopped))

	b.log.Info().
		Str("pair", b.pair).
		Dur("interval", b.interval).
		Str("strategy", b.strat.Name()).
		Msg("starting loop")

	for {
		if ctx.Err() != nil {
			b.log.Info().Msg("shutting down")
			return nil
		}
		halted, err := b.tick(ctx)
		if halted {
			return ErrHalted
		}
		if err != nil && ctx.Err() != nil {
			b.log.Info().Msg("shutting down")
			return nil
		}
		if !b.wait(ctx) {
			b.log.Info().Msg("shutting down")
			return nil
		}
	}
}

// tick runs one pass of the sequence. It reports whether the stop loss fired
// and any fetch error (already logged; the caller only cares about ctx state).
func (b *Bot) tick(ctx context.Context) (bool, error) {
	now := time.Now().UTC()

	price, err := b.fetchPrice(ctx)
	if err != nil {
		b.log.Error().Err(err).Str("pair", b.pair).Msg("price fetch failed")
		metrics.FetchErrorsTotal.WithLabelValues("price").Inc()
		return false, err
	}
	tick := signal.Tick{Pair: b.pair, Price: price, Ts: now}

	value, err := b.fetchValue(ctx)
	if err != nil {
		// Price and portfolio feeds are independent: the observation still
		// counts toward the window, but no drawdown record and no trade.
		b.log.Error().Err(err).Msg("portfolio valuation failed, skipping tick")
		metrics.FetchErrorsTotal.WithLabelValues("portfolio").Inc()
		eval := b.strat.OnTick(tick)
		b.logTick(tick, eval, 0, false)
		return false, err
	}

	b.guard.Record(risk.Snapshot{Ts: now, ValueUSD: value})
	verdict := b.guard.Evaluate()
	metrics.Drawdown.Set(verdict.Drawdown)
	if verdict.Halt {
		b.state.Store(int32(Halting))
		metrics.StopLossHalt.Set(1)
		b.log.WithLevel(zerolog.FatalLevel).
			Float64("drawdown_pct", verdict.Drawdown*100).
			Float64("threshold_pct", b.guard.StopLossFraction()*100).
			Float64("day_start_usd", verdict.DayStart).
			Float64("value_usd", value).
			Msg("daily stop loss triggered, halting")
		return true, nil
	}

	eval := b.strat.OnTick(tick)
	b.logTick(tick, eval, value, true)

	if eval.Signal != nil {
		b.exec.Execute(ctx, eval.Signal, price, value)
	}

	metrics.TicksTotal.WithLabelValues(b.pair).Inc()
	return false, nil
}

func (b *Bot) fetchPrice(ctx context.Context) (float64, error) {
	cctx, cancel := context.WithTimeout(ctx, b.callTTL)
	defer cancel()
	return b.feed.Fetch(cctx, b.pair)
}

func (b *Bot) fetchValue(ctx context.Context) (float64, error) {
	cctx, cancel := context.WithTimeout(ctx, b.callTTL)
	defer cancel()
	return b.wallet.Value(cctx)
}

// logTick emits the per-tick audit line unconditionally.
func (b *Bot) logTick(tick signal.Tick, eval strategy.Evaluation, value float64, haveValue bool) {
	ev := b.log.Info().
		Str("pair", tick.Pair).
		Float64("price", tick.Price)
	if eval.Warmup {
		ev = ev.Str("z_score", "warmup")
	} else {
		ev = ev.Float64("z_score", eval.Z)
	}
	side := signal.None
	if eval.Signal != nil {
		side = eval.Signal.Side
	}
	ev = ev.Str("signal", string(side))
	if haveValue {
		ev = ev.Float64("wallet_usd", value)
	} else {
		ev = ev.Str("wallet_usd", "unavailable")
	}
	ev.Msg("tick")
}

// wait sleeps for the poll interval, returning early (false) on shutdown.
func (b *Bot) wait(ctx context.Context) bool {
	timer := time.NewTimer(b.interval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
