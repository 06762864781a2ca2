package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	instrumentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backtest_instruments_total",
			Help: "Instruments simulated to completion",
		},
		[]string{"symbol"},
	)

	tradesSimulated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backtest_trades_simulated_total",
			Help: "Closed trades produced by simulation",
		},
		[]string{"symbol"},
	)

	sweepsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "backtest_sweeps_total",
			Help: "Multi-instrument sweeps completed",
		},
	)

	lastExpectancy = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "backtest_last_expectancy_r",
			Help: "Expectancy in R of the most recent sweep",
		},
	)
)

func init() {
	prometheus.MustRegister(instrumentsTotal)
	prometheus.MustRegister(tradesSimulated)
	prometheus.MustRegister(sweepsTotal)
	prometheus.MustRegister(lastExpectancy)
}

// RecordInstrument counts one finished instrument simulation.
func RecordInstrument(symbol string) {
	instrumentsTotal.WithLabelValues(symbol).Inc()
}

// RecordTrades counts the closed trades an instrument produced.
func RecordTrades(symbol string, n int) {
	tradesSimulated.WithLabelValues(symbol).Add(float64(n))
}

// RecordSweep counts one completed sweep.
func RecordSweep() {
	sweepsTotal.Inc()
}

// SetLastExpectancy publishes the expectancy of the most recent sweep.
func SetLastExpectancy(r float64) {
	lastExpectancy.Set(r)
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Serve exposes /metrics on addr. Blocks; run it on its own goroutine.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	return http.ListenAndServe(addr, mux)
}
