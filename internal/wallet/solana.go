package wallet

import (
	"context"
	"errors"
	"fmt"
	"os"

	solana "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/joho/godotenv"

	"github.com/xBwomp/Sentinel-Alpha-P/internal/feed"
)

// LoadPrivateKeyFromEnv reads the signing key from the environment.
func LoadPrivateKeyFromEnv() (solana.PrivateKey, error) {
	_ = godotenv.Load() // best-effort
	b58 := os.Getenv("SOLANA_PRIVATE_KEY_BASE58")
	if b58 == "" {
		return nil, errors.New("SOLANA_PRIVATE_KEY_BASE58 not set")
	}
	return solana.PrivateKeyFromBase58(b58)
}

// PrivateKeyFrom parses a base58 key, falling back to the environment when empty.
func PrivateKeyFrom(b58 string) (solana.PrivateKey, error) {
	if b58 != "" {
		return solana.PrivateKeyFromBase58(b58)
	}
	return LoadPrivateKeyFromEnv()
}

func parseCommitment(commit string) rpc.CommitmentType {
	switch commit {
	case "processed":
		return rpc.CommitmentProcessed
	case "finalized":
		return rpc.CommitmentFinalized
	default:
		return rpc.CommitmentConfirmed
	}
}

// SolanaProvider values an on-chain account: native balance via RPC, converted
// to USD at the current feed price for the configured conversion pair.
type SolanaProvider struct {
	rpc     *rpc.Client
	account solana.PublicKey
	commit  rpc.CommitmentType
	prices  feed.PriceFeed
	pair    string // e.g. SOL-USD
}

// NewSolanaProvider wires the RPC client and the price feed used for USD conversion.
func NewSolanaProvider(rpcURL, account, commit string, prices feed.PriceFeed, conversionPair string) (*SolanaProvider, error) {
	pub, err := solana.PublicKeyFromBase58(account)
	if err != nil {
		return nil, fmt.Errorf("parse account: %w", err)
	}
	return &SolanaProvider{
		rpc:     rpc.New(rpcURL),
		account: pub,
		commit:  parseCommitment(commit),
		prices:  prices,
		pair:    conversionPair,
	}, nil
}

// Value fetches the lamport balance and marks it to USD.
func (p *SolanaProvider) Value(ctx context.Context) (float64, error) {
	out, err := p.rpc.GetBalance(ctx, p.account, p.commit)
	if err != nil {
		return 0, fmt.Errorf("get balance: %w", err)
	}
	px, err := p.prices.Fetch(ctx, p.pair)
	if err != nil {
		return 0, fmt.Errorf("conversion price: %w", err)
	}
	sol := float64(out.Value) / float64(solana.LAMPORTS_PER_SOL)
	return sol * px, nil
}
