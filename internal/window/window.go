// Package window provides a bounded rolling series of price observations with on-demand statistics.
package window

import (
	"errors"
	"math"
	"time"
)

// ErrEmpty is returned when statistics are requested from a window with no observations.
var ErrEmpty = errors.New("window is empty")

// Observation is a single immutable price point.
type Observation struct {
	Ts    time.Time
	Price float64
}

// Rolling keeps the most recent observations, bounded either by a point count
// or by a trailing time span. Exactly one bound is active per instance.
type Rolling struct {
	maxPoints int
	span      time.Duration
	obs       []Observation
}

// NewCounted builds a window bounded to the n most recent points.
func NewCounted(n int) *Rolling {
	if n < 1 {
		n = 1
	}
	return &Rolling{maxPoints: n, obs: make([]Observation, 0, n)}
}

// NewSpanned builds a window bounded to observations within the trailing span.
func NewSpanned(span time.Duration) *Rolling {
	if span <= 0 {
		span = 24 * time.Hour
	}
	return &Rolling{span: span}
}

// Insert appends an observation and evicts from the front until the bound holds.
// Observations are assumed to arrive in timestamp order.
func (r *Rolling) Insert(o Observation) {
	r.obs = append(r.obs, o)
	if r.maxPoints > 0 {
		if excess := len(r.obs) - r.maxPoints; excess > 0 {
			r.obs = r.obs[excess:]
		}
		return
	}
	cutoff := o.Ts.Add(-r.span)
	idx := 0
	for idx < len(r.obs) && r.obs[idx].Ts.Before(cutoff) {
		idx++
	}
	if idx > 0 {
		r.obs = r.obs[idx:]
	}
}

// Size reports the number of retained observations.
func (r *Rolling) Size() int { return len(r.obs) }

// Latest returns the most recently inserted observation.
func (r *Rolling) Latest() (Observation, bool) {
	if len(r.obs) == 0 {
		return Observation{}, false
	}
	return r.obs[len(r.obs)-1], true
}

// Mean returns the arithmetic mean of retained prices.
func (r *Rolling) Mean() (float64, error) {
	if len(r.obs) == 0 {
		return 0, ErrEmpty
	}
	var sum float64
	for _, o := range r.obs {
		sum += o.Price
	}
	return sum / float64(len(r.obs)), nil
}

// StdDev returns the population standard deviation (divide by N, not N-1),
// so a single-point window yields a defined zero spread.
func (r *Rolling) StdDev() (float64, error) {
	mean, err := r.Mean()
	if err != nil {
		return 0, err
	}
	var sq float64
	for _, o := range r.obs {
		d := o.Price - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(r.obs))), nil
}
