package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rickgao/kalshi-signals/internal/model"
)

const namespace = "kalshi_signals"

// Recorder records dashboard metrics.
type Recorder struct {
	registry *prometheus.Registry

	fetchErrors   *prometheus.CounterVec
	cacheLookups  *prometheus.CounterVec
	refreshTime   prometheus.Histogram
	marketPct     *prometheus.GaugeVec
	fairPct       *prometheus.GaugeVec
	edge          *prometheus.GaugeVec
	signalsTotal  *prometheus.CounterVec
	lastRefreshAt prometheus.Gauge
}

// New creates a Recorder on its own registry, with Go runtime collectors.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		fetchErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fetch_errors_total",
				Help:      "Upstream fetches that failed, by source.",
			},
			[]string{"source"},
		),
		cacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Cache lookups by operation and result.",
			},
			[]string{"op", "result"},
		),
		refreshTime: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "refresh_duration_seconds",
				Help:      "Duration of a full refresh cycle.",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
			},
		),
		marketPct: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "market_price_percent",
				Help:      "Selected market-implied probability.",
			},
			[]string{"market"},
		),
		fairPct: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "fair_value_percent",
				Help:      "Model fair value.",
			},
			[]string{"market"},
		),
		edge: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "edge_points",
				Help:      "Market price minus fair value.",
			},
			[]string{"market"},
		),
		signalsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "signals_total",
				Help:      "Signals emitted, by market and recommendation.",
			},
			[]string{"market", "recommendation"},
		),
		lastRefreshAt: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_refresh_timestamp_seconds",
				Help:      "Unix time of the last completed refresh.",
			},
		),
	}
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// CacheHit implements cache.Observer.
func (r *Recorder) CacheHit(op string) {
	r.cacheLookups.WithLabelValues(op, "hit").Inc()
}

// CacheMiss implements cache.Observer.
func (r *Recorder) CacheMiss(op string) {
	r.cacheLookups.WithLabelValues(op, "miss").Inc()
}

// FetchError counts a failed upstream call.
func (r *Recorder) FetchError(source string) {
	r.fetchErrors.WithLabelValues(source).Inc()
}

// ObserveRefresh records one completed cycle.
func (r *Recorder) ObserveRefresh(d time.Duration, at time.Time) {
	r.refreshTime.Observe(d.Seconds())
	r.lastRefreshAt.Set(float64(at.Unix()))
}

// RecordSignal updates the per-market gauges and counts the recommendation.
func (r *Recorder) RecordSignal(s model.Signal) {
	r.marketPct.WithLabelValues(s.Market).Set(s.MarketPct)
	r.fairPct.WithLabelValues(s.Market).Set(s.FairPct)
	r.edge.WithLabelValues(s.Market).Set(s.Edge)
	r.signalsTotal.WithLabelValues(s.Market, s.Recommendation).Inc()
}
