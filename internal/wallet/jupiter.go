package wallet

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	bin "github.com/gagliardetto/binary"
	solana "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/xBwomp/Sentinel-Alpha-P/internal/signal"
)

// JupiterTrader executes swaps through the Jupiter aggregator: quote, build,
// sign locally, submit via RPC. It implements execution.Trader.
type JupiterTrader struct {
	Base         string
	RPC          *rpc.Client
	Owner        solana.PrivateKey
	Commit       rpc.CommitmentType
	Http         *http.Client
	BaseMint     string
	QuoteMint    string
	BaseDecimals int
	SlippageBps  int
}

// Quote is the subset of the Jupiter v6 quote response the trader needs.
type Quote struct {
	InputMint      string  `json:"inputMint"`
	OutputMint     string  `json:"outputMint"`
	InAmount       string  `json:"inAmount"`
	OutAmount      string  `json:"outAmount"`
	OtherAmount    string  `json:"otherAmountThreshold"`
	SlippageBps    int     `json:"slippageBps"`
	SwapMode       string  `json:"swapMode"`
	RoutePlan      any     `json:"routePlan"`
	PriceImpactPct float64 `json:"priceImpactPct"`
}

// NewJupiterTrader wires the swap client for one base/quote mint pair.
func NewJupiterTrader(rpcURL, base string, owner solana.PrivateKey, commit, baseMint, quoteMint string, baseDecimals, slippageBps int) *JupiterTrader {
	if baseDecimals <= 0 {
		baseDecimals = 9
	}
	if slippageBps <= 0 {
		slippageBps = 150
	}
	return &JupiterTrader{
		Base:         base,
		RPC:          rpc.New(rpcURL),
		Owner:        owner,
		Commit:       parseCommitment(commit),
		Http:         &http.Client{Timeout: 8 * time.Second},
		BaseMint:     baseMint,
		QuoteMint:    quoteMint,
		BaseDecimals: baseDecimals,
		SlippageBps:  slippageBps,
	}
}

// Trade swaps between the configured mints. size is the base-asset quantity:
// a buy acquires exactly that many base units (ExactOut, paying quote), a
// sell disposes of them (ExactIn).
func (j *JupiterTrader) Trade(ctx context.Context, _ string, side signal.Side, size float64) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("size must be positive, got %v", size)
	}
	units := uint64(math.Round(size * math.Pow10(j.BaseDecimals)))
	if units == 0 {
		return "", fmt.Errorf("size %v rounds to zero base units", size)
	}

	var input, output, mode string
	switch side {
	case signal.Buy:
		input, output, mode = j.QuoteMint, j.BaseMint, "ExactOut"
	case signal.Sell:
		input, output, mode = j.BaseMint, j.QuoteMint, "ExactIn"
	default:
		return "", fmt.Errorf("unsupported side %q", side)
	}

	quote, err := j.GetQuote(ctx, input, output, units, mode)
	if err != nil {
		return "", err
	}
	sig, err := j.BuildAndSendSwap(ctx, quote)
	if err != nil {
		return "", err
	}
	return sig.String(), nil
}

// GetQuote asks Jupiter for a route. amount is in smallest units of the
// base asset regardless of swap mode.
func (j *JupiterTrader) GetQuote(ctx context.Context, inputMint, outputMint string, amount uint64, swapMode string) (*Quote, error) {
	q := url.Values{}
	q.Set("inputMint", inputMint)
	q.Set("outputMint", outputMint)
	q.Set("amount", fmt.Sprintf("%d", amount))
	q.Set("slippageBps", fmt.Sprintf("%d", j.SlippageBps))
	q.Set("swapMode", swapMode)
	q.Set("onlyDirectRoutes", "false")
	u := j.Base + "/v6/quote?" + q.Encode()

	req, _ := http.NewRequestWithContext(ctx, "GET", u, nil)
	resp, err := j.Http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("jupiter quote status %d", resp.StatusCode)
	}
	var out Quote
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BuildAndSendSwap asks Jupiter for a ready-to-sign transaction, signs it locally, then submits via RPC.
func (j *JupiterTrader) BuildAndSendSwap(ctx context.Context, quote *Quote) (sig solana.Signature, err error) {
	payload := map[string]any{
		"userPublicKey":             j.Owner.PublicKey().String(),
		"wrapAndUnwrapSol":          true,
		"asLegacyTransaction":       false,
		"useTokenLedger":            false,
		"prioritizationFeeLamports": 0,
		"quoteResponse":             quote,
	}
	body, _ := json.Marshal(payload)

	req, _ := http.NewRequestWithContext(ctx, "POST", j.Base+"/v6/swap", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := j.Http.Do(req)
	if err != nil {
		return sig, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return sig, fmt.Errorf("jupiter swap status %d", resp.StatusCode)
	}
	var sr struct {
		SwapTransaction string `json:"swapTransaction"` // base64-encoded tx (unsigned)
	}
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return sig, err
	}

	raw, err := base64.StdEncoding.DecodeString(sr.SwapTransaction)
	if err != nil {
		return sig, fmt.Errorf("decode tx: %w", err)
	}

	tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(raw))
	if err != nil {
		return sig, fmt.Errorf("unmarshal tx: %w", err)
	}

	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(j.Owner.PublicKey()) {
			return &j.Owner
		}
		return nil
	})
	if err != nil {
		return sig, fmt.Errorf("sign: %w", err)
	}

	sig, err = j.RPC.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       false,
		PreflightCommitment: j.Commit,
	})
	return sig, err
}
