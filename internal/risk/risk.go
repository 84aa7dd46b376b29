// Package risk encodes guard-rails for position sizing and the daily stop-loss.
package risk

// Limits defines static sizing configuration applied per trade.
type Limits struct {
	MaxTradeFraction float64 // fraction of portfolio value committed per trade
	StopLossFraction float64 // trailing 24h drawdown that halts the run
}

// Allow reports whether a notional is within the per-trade cap for the given
// portfolio value.
func (l Limits) Allow(notionalUSD, portfolioUSD float64) bool {
	return notionalUSD <= portfolioUSD*l.MaxTradeFraction+1e-9
}
