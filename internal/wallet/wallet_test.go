package wallet

import (
	"context"
	"os"
	"testing"

	solana "github.com/gagliardetto/solana-go"
)

func TestSimulatedValue(t *testing.T) {
	p := NewSimulated(10000)
	v, err := p.Value(context.Background())
	if err != nil {
		t.Fatalf("Value returned error: %v", err)
	}
	if v != 10000 {
		t.Fatalf("expected 10000, got %v", v)
	}
}

func TestLoadPrivateKeyFromEnv(t *testing.T) {
	w := solana.NewWallet()
	os.Setenv("SOLANA_PRIVATE_KEY_BASE58", w.PrivateKey.String())
	defer os.Unsetenv("SOLANA_PRIVATE_KEY_BASE58")

	key, err := LoadPrivateKeyFromEnv()
	if err != nil {
		t.Fatalf("expected key, got error: %v", err)
	}
	if !key.PublicKey().Equals(w.PublicKey()) {
		t.Fatalf("expected public key %s, got %s", w.PublicKey(), key.PublicKey())
	}
}

func TestLoadPrivateKeyFromEnvMissing(t *testing.T) {
	os.Unsetenv("SOLANA_PRIVATE_KEY_BASE58")
	if _, err := LoadPrivateKeyFromEnv(); err == nil {
		t.Fatalf("expected error when env missing")
	}
}

func TestPrivateKeyFromPrefersExplicitKey(t *testing.T) {
	os.Unsetenv("SOLANA_PRIVATE_KEY_BASE58")
	w := solana.NewWallet()
	key, err := PrivateKeyFrom(w.PrivateKey.String())
	if err != nil {
		t.Fatalf("expected key, got error: %v", err)
	}
	if !key.PublicKey().Equals(w.PublicKey()) {
		t.Fatalf("wrong key parsed")
	}
	if _, err := PrivateKeyFrom(""); err == nil {
		t.Fatalf("expected error with no key anywhere")
	}
}
