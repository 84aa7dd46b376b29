package strategy

import (
	"strings"

	sig "github.com/xBwomp/Sentinel-Alpha-P/internal/signal"
)

// Strategy defines behaviour shared by strategy implementations used by the bot.
type Strategy interface {
	OnTick(t sig.Tick) Evaluation
	Name() string
}

// Params expresses tunable knobs required by strategy constructors.
type Params struct {
	WindowPoints int
	BuyZ         float64
	SellZ        float64
	MinPoints    int
}

// Build returns a strategy implementation matching the configured mode.
func Build(mode string, params Params) Strategy {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "zscore", "mean_reversion", "meanrev":
		return NewMeanReversion(params.WindowPoints, Thresholds{
			BuyZ:      params.BuyZ,
			SellZ:     params.SellZ,
			MinPoints: params.MinPoints,
		})
	default:
		return NewMeanReversion(params.WindowPoints, Thresholds{
			BuyZ:      params.BuyZ,
			SellZ:     params.SellZ,
			MinPoints: params.MinPoints,
		})
	}
}
