package main

import (
	"context"
	"errors"
	"os"
	ossignal "os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/xBwomp/Sentinel-Alpha-P/internal/audit"
	"github.com/xBwomp/Sentinel-Alpha-P/internal/bot"
	"github.com/xBwomp/Sentinel-Alpha-P/internal/config"
	"github.com/xBwomp/Sentinel-Alpha-P/internal/execution"
	"github.com/xBwomp/Sentinel-Alpha-P/internal/feed"
	"github.com/xBwomp/Sentinel-Alpha-P/internal/metrics"
	"github.com/xBwomp/Sentinel-Alpha-P/internal/risk"
	"github.com/xBwomp/Sentinel-Alpha-P/internal/strategy"
	"github.com/xBwomp/Sentinel-Alpha-P/internal/util"
	"github.com/xBwomp/Sentinel-Alpha-P/internal/wallet"
)

func main() {
	_ = godotenv.Load() // best-effort, env may come from the process

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	bootLog := util.NewLogger("info")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		bootLog.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		bootLog.Fatal().Err(err).Msg("invalid config")
	}

	log, closer, err := util.NewAuditLogger(cfg.App.LogLevel, cfg.App.LogDir, cfg.App.LogFile)
	if err != nil {
		bootLog.Fatal().Err(err).Msg("open audit log")
	}
	defer closer.Close()

	_ = metrics.Serve(cfg.App.MetricsAddr)
	log.Info().Str("addr", cfg.App.MetricsAddr).Msg("metrics up")

	ctx, cancel := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	priceFeed, err := feed.New(ctx, cfg.Feed.Provider, cfg.Trading.Pair, feed.Options{
		URLTemplate: cfg.Feed.URLTemplate,
		APIKey:      cfg.Feed.APIKey,
		Timeout:     time.Duration(cfg.Feed.TimeoutSeconds) * time.Second,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("build price feed")
	}

	portfolio, trader := buildWallet(cfg, priceFeed, log)

	recorder, err := audit.NewJSONLRecorder(filepath.Join(cfg.App.LogDir, "intents.jsonl"))
	if err != nil {
		log.Fatal().Err(err).Msg("open intent recorder")
	}
	defer recorder.Close()

	strat := strategy.Build(cfg.Strategy.Mode, strategy.Params{
		WindowPoints: cfg.Strategy.WindowPoints,
		BuyZ:         cfg.Strategy.BuyZ,
		SellZ:        cfg.Strategy.SellZ,
		MinPoints:    cfg.Strategy.MinPoints,
	})
	limits := risk.Limits{
		MaxTradeFraction: cfg.Trading.MaxTradeFraction,
		StopLossFraction: cfg.Risk.DailyStopLossFraction,
	}
	guard := risk.NewDrawdownGuard(time.Duration(cfg.Risk.WindowHours)*time.Hour, limits.StopLossFraction)
	exec := execution.NewExecutor(log, trader, recorder, cfg.Trading.DryRun, limits.MaxTradeFraction)

	b := bot.New(log, cfg.Trading.Pair, time.Duration(cfg.Trading.PollSeconds)*time.Second, priceFeed, portfolio, strat, guard, exec)

	if err := b.Run(ctx); errors.Is(err, bot.ErrHalted) {
		log.Error().Msg("run halted by daily stop loss")
		closer.Close()
		recorder.Close()
		os.Exit(1)
	}
}

// buildWallet picks the portfolio backend. The trade capability stays nil for
// the simulated backend or when no signing key is available, which keeps all
// trades in shadow mode rather than failing startup.
func buildWallet(cfg *config.Config, prices feed.PriceFeed, log zerolog.Logger) (wallet.Provider, execution.Trader) {
	if cfg.Wallet.Backend != "solana" {
		return wallet.NewSimulated(cfg.Wallet.SimulatedUSD), nil
	}

	provider, err := wallet.NewSolanaProvider(cfg.Wallet.RPCURL, cfg.Wallet.Account, cfg.Wallet.Commitment, prices, "SOL-USD")
	if err != nil {
		log.Warn().Err(err).Msg("solana wallet unavailable, using simulated balance")
		return wallet.NewSimulated(cfg.Wallet.SimulatedUSD), nil
	}

	key, err := wallet.PrivateKeyFrom(cfg.Wallet.PrivateKeyBase58)
	if err != nil {
		log.Warn().Err(err).Msg("no signing key, trades stay in shadow mode")
		return provider, nil
	}
	trader := wallet.NewJupiterTrader(
		cfg.Wallet.RPCURL, cfg.Wallet.JupiterBase, key, cfg.Wallet.Commitment,
		cfg.Wallet.BaseMint, cfg.Wallet.QuoteMint, cfg.Wallet.BaseDecimals, cfg.Wallet.SlippageBps,
	)
	return provider, trader
}
