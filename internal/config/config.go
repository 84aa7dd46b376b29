// Package config exposes strongly typed application configuration loaded from YAML with environment overrides.
package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// App captures process-wide runtime settings such as name, metrics address, and logging.
type App struct {
	Name        string `yaml:"name"`
	MetricsAddr string `yaml:"metrics_addr"`
	LogLevel    string `yaml:"log_level"`
	LogDir      string `yaml:"log_dir"`
	LogFile     string `yaml:"log_file"`
}

// Trading groups the knobs controlling the polling loop and order sizing.
type Trading struct {
	Pair             string  `yaml:"pair"`
	PollSeconds      int     `yaml:"poll_seconds"`
	DryRun           bool    `yaml:"dry_run"`
	MaxTradeFraction float64 `yaml:"max_trade_fraction"`
}

// Strategy specifies which strategy is active along with its parameter bundle.
type Strategy struct {
	Mode         string  `yaml:"mode"`
	WindowPoints int     `yaml:"window_points"`
	BuyZ         float64 `yaml:"buy_z"`
	SellZ        float64 `yaml:"sell_z"`
	MinPoints    int     `yaml:"min_points"`
}

// Risk configures the daily stop-loss guard.
type Risk struct {
	DailyStopLossFraction float64 `yaml:"daily_stop_loss_fraction"`
	WindowHours           int     `yaml:"window_hours"`
}

// Feed describes where spot prices come from.
type Feed struct {
	Provider       string `yaml:"provider"` // http|binance|stub
	URLTemplate    string `yaml:"url_template"`
	APIKey         string `yaml:"api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Wallet selects the portfolio valuation and trade execution backend.
type Wallet struct {
	Backend          string  `yaml:"backend"` // simulated|solana
	SimulatedUSD     float64 `yaml:"simulated_usd"`
	RPCURL           string  `yaml:"rpc_url"`
	Commitment       string  `yaml:"commitment"` // processed|confirmed|finalized
	JupiterBase      string  `yaml:"jupiter_base"`
	Account          string  `yaml:"account"`
	PrivateKeyBase58 string  `yaml:"private_key_base58"`
	BaseMint         string  `yaml:"base_mint"`
	QuoteMint        string  `yaml:"quote_mint"`
	BaseDecimals     int     `yaml:"base_decimals"`
	SlippageBps      int     `yaml:"slippage_bps"`
}

// Config collects every configuration leaf for easy marshaling from YAML.
type Config struct {
	App      App      `yaml:"app"`
	Trading  Trading  `yaml:"trading"`
	Strategy Strategy `yaml:"strategy"`
	Risk     Risk     `yaml:"risk"`
	Feed     Feed     `yaml:"feed"`
	Wallet   Wallet   `yaml:"wallet"`
}

// Defaults mirrors the values the bot falls back to when neither file nor
// environment provides a setting.
func Defaults() *Config {
	return &Config{
		App: App{
			Name:        "sentinel-alpha",
			MetricsAddr: ":9109",
			LogLevel:    "info",
			LogDir:      "logs",
			LogFile:     "trading_log.jsonl",
		},
		Trading: Trading{
			Pair:             "BTC-USD",
			PollSeconds:      60,
			DryRun:           true,
			MaxTradeFraction: 0.02,
		},
		Strategy: Strategy{
			Mode:         "zscore",
			WindowPoints: 24,
			BuyZ:         -2.0,
			SellZ:        2.0,
		},
		Risk: Risk{
			DailyStopLossFraction: 0.05,
			WindowHours:           24,
		},
		Feed: Feed{
			Provider:       "http",
			URLTemplate:    "https://api.coinbase.com/v2/prices/{pair}/spot",
			TimeoutSeconds: 15,
		},
		Wallet: Wallet{
			Backend:      "simulated",
			SimulatedUSD: 10000,
			Commitment:   "confirmed",
			JupiterBase:  "https://quote-api.jup.ag",
			BaseDecimals: 9,
			SlippageBps:  150,
		},
	}
}

// Load reads a YAML file from disk (a missing file is not an error; the bot
// can run entirely from environment variables), then applies env overrides.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	setStr(&c.Trading.Pair, "TRADING_PAIR")
	setInt(&c.Trading.PollSeconds, "PRICE_POLL_SECONDS")
	setBool(&c.Trading.DryRun, "DRY_RUN")
	setFloat(&c.Trading.MaxTradeFraction, "MAX_TRADE_FRACTION")

	setInt(&c.Strategy.WindowPoints, "Z_WINDOW_POINTS")
	setFloat(&c.Strategy.BuyZ, "Z_BUY_THRESHOLD")
	setFloat(&c.Strategy.SellZ, "Z_SELL_THRESHOLD")
	setInt(&c.Strategy.MinPoints, "Z_MIN_POINTS")

	setFloat(&c.Risk.DailyStopLossFraction, "DAILY_STOP_LOSS_FRACTION")

	setStr(&c.Feed.Provider, "PRICE_FEED_PROVIDER")
	setStr(&c.Feed.URLTemplate, "PRICE_API_URL_TEMPLATE")
	setStr(&c.Feed.APIKey, "PRICE_API_KEY")

	setStr(&c.Wallet.Backend, "WALLET_BACKEND")
	setFloat(&c.Wallet.SimulatedUSD, "SIMULATED_WALLET_USD")
	setStr(&c.Wallet.RPCURL, "SOLANA_RPC_URL")
	setStr(&c.Wallet.Commitment, "SOLANA_COMMITMENT")
	setStr(&c.Wallet.JupiterBase, "JUPITER_BASE_URL")
	setStr(&c.Wallet.Account, "SOLANA_ACCOUNT")
	setStr(&c.Wallet.PrivateKeyBase58, "SOLANA_PRIVATE_KEY_BASE58")

	setStr(&c.App.LogLevel, "LOG_LEVEL")
	setStr(&c.App.LogDir, "LOG_DIR")
	setStr(&c.App.LogFile, "LOG_FILE")
	setStr(&c.App.MetricsAddr, "METRICS_ADDR")
}

// Validate enforces the startup invariants: numeric settings must be finite
// and, where semantically required, positive. Violations are fatal before the
// loop starts, never runtime fallbacks.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Trading.Pair) == "" {
		return fmt.Errorf("trading pair must not be empty")
	}
	if c.Trading.PollSeconds <= 0 {
		return fmt.Errorf("poll_seconds must be positive, got %d", c.Trading.PollSeconds)
	}
	if c.Strategy.WindowPoints <= 0 {
		return fmt.Errorf("window_points must be positive, got %d", c.Strategy.WindowPoints)
	}
	if c.Strategy.MinPoints < 0 {
		return fmt.Errorf("min_points must not be negative, got %d", c.Strategy.MinPoints)
	}
	if err := finite("buy_z", c.Strategy.BuyZ); err != nil {
		return err
	}
	if err := finite("sell_z", c.Strategy.SellZ); err != nil {
		return err
	}
	if err := finite("max_trade_fraction", c.Trading.MaxTradeFraction); err != nil {
		return err
	}
	if c.Trading.MaxTradeFraction <= 0 {
		return fmt.Errorf("max_trade_fraction must be positive, got %v", c.Trading.MaxTradeFraction)
	}
	if err := finite("daily_stop_loss_fraction", c.Risk.DailyStopLossFraction); err != nil {
		return err
	}
	if c.Risk.DailyStopLossFraction <= 0 {
		return fmt.Errorf("daily_stop_loss_fraction must be positive, got %v", c.Risk.DailyStopLossFraction)
	}
	if c.Risk.WindowHours <= 0 {
		return fmt.Errorf("risk window_hours must be positive, got %d", c.Risk.WindowHours)
	}
	if !c.Trading.DryRun && c.Wallet.Backend == "solana" && c.Wallet.PrivateKeyBase58 == "" {
		return fmt.Errorf("live trading on solana requires a private key")
	}
	return nil
}

func finite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s must be finite, got %v", name, v)
	}
	return nil
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = strings.EqualFold(v, "true") || v == "1"
	}
}
