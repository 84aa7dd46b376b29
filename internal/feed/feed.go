// Package feed hosts spot-price sources behind a single pull interface.
package feed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// ProviderHTTP polls a REST spot-price endpoint (Coinbase-style payloads).
	ProviderHTTP = "http"
	// ProviderBinance samples live trades from Binance public websockets.
	ProviderBinance = "binance"
	// ProviderStub replays scripted prices (useful for tests/offline work).
	ProviderStub = "stub"
)

// PriceFeed returns the current spot price for a pair or an error. A hung or
// malformed remote must surface as an error, never a crash or a stall beyond
// the call timeout.
type PriceFeed interface {
	Fetch(ctx context.Context, pair string) (float64, error)
}

// Options carries provider construction parameters.
type Options struct {
	URLTemplate string
	APIKey      string
	Timeout     time.Duration
}

// New constructs a feed backed by the requested provider. The binance feed
// starts its sampling goroutine bound to ctx.
func New(ctx context.Context, provider string, pair string, opts Options, log zerolog.Logger) (PriceFeed, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", ProviderHTTP:
		return NewHTTPFeed(opts.URLTemplate, opts.APIKey, opts.Timeout), nil
	case ProviderBinance:
		f := NewBinanceFeed(pair, log)
		f.Start(ctx)
		return f, nil
	case ProviderStub:
		return NewStub(100), nil
	default:
		return nil, fmt.Errorf("unknown price feed provider %q", provider)
	}
}
