package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchCoinbaseEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/prices/BTC-USD/spot" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("X-API-Key") != "secret" {
			t.Fatalf("expected api key header")
		}
		w.Write([]byte(`{"data":{"base":"BTC","currency":"USD","amount":"65000.12"}}`))
	}))
	defer server.Close()

	f := NewHTTPFeed(server.URL+"/prices/{pair}/spot", "secret", 5*time.Second)
	px, err := f.Fetch(context.Background(), "BTC-USD")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if px != 65000.12 {
		t.Fatalf("expected 65000.12, got %v", px)
	}
}

func TestFetchFlatPricePayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"price": 123.45}`))
	}))
	defer server.Close()

	f := NewHTTPFeed(server.URL+"/{pair}", "", 5*time.Second)
	px, err := f.Fetch(context.Background(), "ETH-USD")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if px != 123.45 {
		t.Fatalf("expected 123.45, got %v", px)
	}
}

func TestFetchMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))
	defer server.Close()

	f := NewHTTPFeed(server.URL+"/{pair}", "", 5*time.Second)
	if _, err := f.Fetch(context.Background(), "BTC-USD"); err == nil {
		t.Fatalf("expected error for malformed body")
	}
}

func TestFetchMissingPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"base":"BTC"}}`))
	}))
	defer server.Close()

	f := NewHTTPFeed(server.URL+"/{pair}", "", 5*time.Second)
	if _, err := f.Fetch(context.Background(), "BTC-USD"); err == nil {
		t.Fatalf("expected error when payload has no price")
	}
}

func TestFetchNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	f := NewHTTPFeed(server.URL+"/{pair}", "", 5*time.Second)
	if _, err := f.Fetch(context.Background(), "BTC-USD"); err == nil {
		t.Fatalf("expected error for non-200 status")
	}
}
