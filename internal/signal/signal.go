// Package signal standardizes payloads shared between the price feed, strategy, and execution layers.
package signal

import "time"

// Side enumerates the trade directions a strategy can emit.
type Side string

const (
	// Buy indicates a contrarian long entry (price abnormally low).
	Buy Side = "BUY"
	// Sell indicates an exit or short entry (price abnormally high).
	Sell Side = "SELL"
	// None indicates no actionable bias this tick.
	None Side = "NONE"
)

// Tick models a single spot-price observation consumed by strategies.
type Tick struct {
	Pair  string
	Price float64
	Ts    time.Time
}

// Signal expresses a trading bias produced by a strategy implementation.
type Signal struct {
	Pair   string
	Side   Side
	Score  float64 // standardized deviation backing the call
	Reason string
	Ts     time.Time
}
