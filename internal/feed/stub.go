package feed

import (
	"context"
	"fmt"
)

// Stub replays a scripted price sequence, holding the last value once the
// script runs out. An empty script always errors, which exercises the loop's
// fetch-failure path.
type Stub struct {
	prices []float64
	idx    int
}

// NewStub builds a stub feed from the given price sequence.
func NewStub(prices ...float64) *Stub {
	return &Stub{prices: prices}
}

// Fetch returns the next scripted price.
func (s *Stub) Fetch(_ context.Context, _ string) (float64, error) {
	if len(s.prices) == 0 {
		return 0, fmt.Errorf("stub feed has no prices")
	}
	if s.idx >= len(s.prices) {
		return s.prices[len(s.prices)-1], nil
	}
	px := s.prices[s.idx]
	s.idx++
	return px, nil
}
