package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

// HTTPFeed polls a REST endpoint whose URL embeds the pair via a {pair}
// placeholder, e.g. https://api.coinbase.com/v2/prices/{pair}/spot.
type HTTPFeed struct {
	urlTemplate string
	apiKey      string
	client      *http.Client
}

// spotPayload accepts both the Coinbase envelope ({"data":{"amount":"..."}})
// and a flat {"price": ...} shape.
type spotPayload struct {
	Data struct {
		Amount string `json:"amount"`
	} `json:"data"`
	Price json.Number `json:"price"`
}

// NewHTTPFeed builds the poller with a bounded-timeout client.
func NewHTTPFeed(urlTemplate, apiKey string, timeout time.Duration) *HTTPFeed {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPFeed{
		urlTemplate: urlTemplate,
		apiKey:      apiKey,
		client:      &http.Client{Timeout: timeout},
	}
}

// Fetch performs one GET and extracts the spot price. Malformed bodies are
// reported as errors, identical in handling to transport failures.
func (f *HTTPFeed) Fetch(ctx context.Context, pair string) (float64, error) {
	url := strings.ReplaceAll(f.urlTemplate, "{pair}", pair)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	if f.apiKey != "" {
		req.Header.Set("X-API-Key", f.apiKey)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var payload spotPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}
	return extractPrice(payload)
}

func extractPrice(p spotPayload) (float64, error) {
	if p.Data.Amount != "" {
		px, err := strconv.ParseFloat(p.Data.Amount, 64)
		if err != nil {
			return 0, fmt.Errorf("parse amount %q: %w", p.Data.Amount, err)
		}
		if px <= 0 {
			return 0, fmt.Errorf("non-positive price %v", px)
		}
		return px, nil
	}
	if p.Price != "" {
		px, err := p.Price.Float64()
		if err != nil {
			return 0, fmt.Errorf("parse price %q: %w", p.Price, err)
		}
		if px <= 0 {
			return 0, fmt.Errorf("non-positive price %v", px)
		}
		return px, nil
	}
	return 0, fmt.Errorf("payload missing price")
}
