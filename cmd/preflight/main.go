// Binary preflight performs a one-shot connectivity check: fetch one spot
// price and one portfolio valuation, then exit. Useful before leaving the bot
// unattended.
package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/xBwomp/Sentinel-Alpha-P/internal/config"
	"github.com/xBwomp/Sentinel-Alpha-P/internal/feed"
	"github.com/xBwomp/Sentinel-Alpha-P/internal/util"
	"github.com/xBwomp/Sentinel-Alpha-P/internal/wallet"
)

func main() {
	_ = godotenv.Load()
	log := util.NewLogger("info")

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	priceFeed, err := feed.New(ctx, cfg.Feed.Provider, cfg.Trading.Pair, feed.Options{
		URLTemplate: cfg.Feed.URLTemplate,
		APIKey:      cfg.Feed.APIKey,
		Timeout:     time.Duration(cfg.Feed.TimeoutSeconds) * time.Second,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("build price feed")
	}

	price, err := priceFeed.Fetch(ctx, cfg.Trading.Pair)
	if err != nil {
		log.Fatal().Err(err).Str("pair", cfg.Trading.Pair).Msg("price fetch failed")
	}
	log.Info().Str("pair", cfg.Trading.Pair).Float64("price", price).Msg("price feed ok")

	var portfolio wallet.Provider = wallet.NewSimulated(cfg.Wallet.SimulatedUSD)
	if cfg.Wallet.Backend == "solana" {
		p, err := wallet.NewSolanaProvider(cfg.Wallet.RPCURL, cfg.Wallet.Account, cfg.Wallet.Commitment, priceFeed, "SOL-USD")
		if err != nil {
			log.Fatal().Err(err).Msg("solana wallet")
		}
		portfolio = p
	}
	value, err := portfolio.Value(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("portfolio valuation failed")
	}
	log.Info().Float64("wallet_usd", value).Str("backend", cfg.Wallet.Backend).Msg("wallet ok")
}
