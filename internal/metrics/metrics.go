package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	TicksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "ticks_total", Help: "Count of completed price ticks"},
		[]string{"pair"},
	)
	TradesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "trades_total", Help: "Trade intents emitted"},
		[]string{"pair", "side", "mode"},
	)
	FetchErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "fetch_errors_total", Help: "External call failures by source"},
		[]string{"source"},
	)
	Drawdown = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "portfolio_drawdown", Help: "Current trailing-24h drawdown fraction"},
	)
	StopLossHalt = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "stop_loss_halt", Help: "1 once the daily stop loss has fired"},
	)
)

func init() {
	prometheus.MustRegister(TicksTotal, TradesTotal, FetchErrorsTotal, Drawdown, StopLossHalt)
}

func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
