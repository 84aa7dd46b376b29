// Package strategy contains trading signal generation logic wired into price ticks.
package strategy

import (
	"fmt"
	"sync"

	"github.com/xBwomp/Sentinel-Alpha-P/internal/signal"
	"github.com/xBwomp/Sentinel-Alpha-P/internal/window"
)

// Thresholds bounds the z-score band outside of which a signal fires.
type Thresholds struct {
	BuyZ      float64 // negative; z below this triggers a contrarian buy
	SellZ     float64 // positive; z above this triggers a sell
	MinPoints int     // warm-up guard: no signal until the window holds this many points
}

// Classify maps a z-score onto a trade side. Comparison is strict, so a score
// sitting exactly on a threshold does not trigger.
func (t Thresholds) Classify(z float64) signal.Side {
	switch {
	case z < t.BuyZ:
		return signal.Buy
	case z > t.SellZ:
		return signal.Sell
	default:
		return signal.None
	}
}

// Evaluation is produced for every tick and logged unconditionally by the loop.
type Evaluation struct {
	Z      float64
	Warmup bool // true while the window is still below MinPoints
	Signal *signal.Signal
}

// MeanReversion derives a standardized deviation from a rolling price window
// and emits contrarian signals when it leaves the configured band.
type MeanReversion struct {
	thresholds Thresholds
	mu         sync.Mutex
	win        *window.Rolling
}

// NewMeanReversion builds the strategy around a count-bounded window.
func NewMeanReversion(windowPoints int, thresholds Thresholds) *MeanReversion {
	if windowPoints <= 0 {
		windowPoints = 24
	}
	if thresholds.MinPoints <= 0 {
		thresholds.MinPoints = windowPoints
	}
	return &MeanReversion{
		thresholds: thresholds,
		win:        window.NewCounted(windowPoints),
	}
}

// Name returns the identifier used in logs.
func (m *MeanReversion) Name() string { return "MeanReversion" }

// WindowSize reports how many observations the rolling window currently holds.
func (m *MeanReversion) WindowSize() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.win.Size()
}

// OnTick inserts the observation, computes the z-score, and classifies it.
func (m *MeanReversion) OnTick(t signal.Tick) Evaluation {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.win.Insert(window.Observation{Ts: t.Ts, Price: t.Price})

	if m.win.Size() < m.thresholds.MinPoints {
		return Evaluation{Warmup: true}
	}

	mean, err := m.win.Mean()
	if err != nil {
		return Evaluation{Warmup: true}
	}
	std, err := m.win.StdDev()
	if err != nil {
		return Evaluation{Warmup: true}
	}

	// A flat window reads as neutral, not as a divide-by-zero.
	z := 0.0
	if std > 0 {
		z = (t.Price - mean) / std
	}

	eval := Evaluation{Z: z}
	if side := m.thresholds.Classify(z); side != signal.None {
		eval.Signal = &signal.Signal{
			Pair:   t.Pair,
			Side:   side,
			Score:  z,
			Reason: fmt.Sprintf("z=%.4f mean=%.2f std=%.4f", z, mean, std),
			Ts:     t.Ts,
		}
	}
	return eval
}
