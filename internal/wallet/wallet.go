// Package wallet abstracts portfolio valuation and live trade capabilities
// behind uniform interfaces so simulated and on-chain backends interchange.
package wallet

import "context"

// Provider values the portfolio in USD. Implementations may fail; the loop
// treats a failure as skip-and-retry, never as a stale reading.
type Provider interface {
	Value(ctx context.Context) (float64, error)
}

// Simulated returns a fixed configured balance and never fails.
type Simulated struct {
	USD float64
}

// NewSimulated builds the simulated backend.
func NewSimulated(usd float64) *Simulated { return &Simulated{USD: usd} }

// Value returns the configured constant.
func (s *Simulated) Value(context.Context) (float64, error) { return s.USD, nil }
