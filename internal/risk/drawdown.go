package risk

import "time"

// Snapshot is one portfolio valuation taken at the top of a tick.
type Snapshot struct {
	Ts       time.Time
	ValueUSD float64
}

// Verdict is the outcome of a drawdown evaluation.
type Verdict struct {
	Halt     bool
	Drawdown float64 // fraction lost from the day-start value, 0 when not computable
	DayStart float64 // oldest surviving snapshot value
}

// DrawdownGuard keeps a sliding record of portfolio valuations and halts the
// run when the decline from the oldest surviving value breaches the stop-loss.
// The baseline is a rolling 24h-old proxy, not a calendar-midnight anchor:
// the reference value itself slides forward as old snapshots are evicted.
type DrawdownGuard struct {
	span     time.Duration
	stopLoss float64
	snaps    []Snapshot
}

// NewDrawdownGuard builds a guard over the trailing span (normally 24h).
func NewDrawdownGuard(span time.Duration, stopLossFraction float64) *DrawdownGuard {
	if span <= 0 {
		span = 24 * time.Hour
	}
	return &DrawdownGuard{span: span, stopLoss: stopLossFraction}
}

// Record appends a snapshot and evicts entries older than the span, measured
// from the snapshot just recorded. Snapshots arrive in timestamp order, so a
// prefix eviction is sufficient.
func (g *DrawdownGuard) Record(s Snapshot) {
	g.snaps = append(g.snaps, s)
	cutoff := s.Ts.Add(-g.span)
	idx := 0
	for idx < len(g.snaps) && g.snaps[idx].Ts.Before(cutoff) {
		idx++
	}
	if idx > 0 {
		g.snaps = g.snaps[idx:]
	}
}

// Size reports how many snapshots survive in the window.
func (g *DrawdownGuard) Size() int { return len(g.snaps) }

// StopLossFraction returns the configured halt threshold.
func (g *DrawdownGuard) StopLossFraction() float64 { return g.stopLoss }

// Oldest returns the current day-start snapshot.
func (g *DrawdownGuard) Oldest() (Snapshot, bool) {
	if len(g.snaps) == 0 {
		return Snapshot{}, false
	}
	return g.snaps[0], true
}

// Evaluate computes the drawdown from the oldest surviving snapshot to the
// latest one. A halt verdict is terminal: the loop must stop, not skip a tick.
// An empty record or a non-positive baseline cannot yield a meaningful ratio
// and reads as continue.
func (g *DrawdownGuard) Evaluate() Verdict {
	if len(g.snaps) == 0 {
		return Verdict{}
	}
	dayStart := g.snaps[0].ValueUSD
	if dayStart <= 0 {
		return Verdict{DayStart: dayStart}
	}
	current := g.snaps[len(g.snaps)-1].ValueUSD
	drawdown := (dayStart - current) / dayStart
	return Verdict{
		Halt:     drawdown >= g.stopLoss,
		Drawdown: drawdown,
		DayStart: dayStart,
	}
}
