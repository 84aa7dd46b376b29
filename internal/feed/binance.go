package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

type binanceEnvelope struct {
	Stream string       `json:"stream"`
	Data   binanceTrade `json:"data"`
}

type binanceTrade struct {
	Price     string `json:"p"`
	TradeTime int64  `json:"T"`
}

// BinanceFeed keeps a websocket trade stream open in the background and
// serves the most recent traded price on demand. A Fetch before the first
// trade arrives, or after the cached price has gone stale, is an error so the
// loop treats it like any other fetch failure.
type BinanceFeed struct {
	symbol   string
	log      zerolog.Logger
	maxAge   time.Duration
	mu       sync.RWMutex
	last     float64
	lastSeen time.Time
}

// NewBinanceFeed maps the trading pair onto a Binance stream symbol
// (BTC-USD -> BTCUSDT) and prepares the sampler.
func NewBinanceFeed(pair string, log zerolog.Logger) *BinanceFeed {
	return &BinanceFeed{
		symbol: toBinanceSymbol(pair),
		log:    log,
		maxAge: 2 * time.Minute,
	}
}

func toBinanceSymbol(pair string) string {
	sym := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(pair), "-", ""))
	if strings.HasSuffix(sym, "USD") {
		sym += "T"
	}
	return sym
}

// Start launches the stream consumer; it reconnects with backoff until ctx
// is canceled.
func (f *BinanceFeed) Start(ctx context.Context) {
	go f.run(ctx)
}

// Fetch returns the latest sampled price.
func (f *BinanceFeed) Fetch(_ context.Context, _ string) (float64, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.last <= 0 {
		return 0, fmt.Errorf("no trade seen yet for %s", f.symbol)
	}
	if time.Since(f.lastSeen) > f.maxAge {
		return 0, fmt.Errorf("last %s trade is stale (%s old)", f.symbol, time.Since(f.lastSeen).Round(time.Second))
	}
	return f.last, nil
}

func (f *BinanceFeed) run(ctx context.Context) {
	url := fmt.Sprintf("wss://stream.binance.com:9443/stream?streams=%s@trade", strings.ToLower(f.symbol))
	backoff := time.Second
	const maxBackoff = 30 * time.Second

	for {
		if ctx.Err() != nil {
			return
		}
		if err := f.consume(ctx, url); err != nil {
			if ctx.Err() != nil {
				return
			}
			f.log.Warn().Err(err).Msg("binance feed disconnected, retrying")
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return
			}
			backoff = time.Duration(math.Min(float64(maxBackoff), float64(backoff)*1.8))
			continue
		}
		return
	}
}

func (f *BinanceFeed) consume(ctx context.Context, url string) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	f.log.Info().Str("symbol", f.symbol).Msg("connected binance trade stream")

	conn.SetReadLimit(1 << 20)
	conn.SetReadDeadline(time.Now().Add(30 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(30 * time.Second))
		return nil
	})

	pingCtx, pingCancel := context.WithCancel(ctx)
	defer pingCancel()
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					f.log.Warn().Err(err).Msg("binance ping failed")
					return
				}
			case <-pingCtx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		_, message, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var env binanceEnvelope
		if err := json.Unmarshal(message, &env); err != nil {
			f.log.Warn().Err(err).Msg("failed to decode binance message")
			continue
		}
		px, err := strconv.ParseFloat(env.Data.Price, 64)
		if err != nil || px <= 0 {
			f.log.Warn().Str("raw", env.Data.Price).Msg("invalid price from binance")
			continue
		}

		f.mu.Lock()
		f.last = px
		f.lastSeen = time.UnixMilli(env.Data.TradeTime)
		if f.lastSeen.After(time.Now()) || env.Data.TradeTime == 0 {
			f.lastSeen = time.Now()
		}
		f.mu.Unlock()
	}
}
