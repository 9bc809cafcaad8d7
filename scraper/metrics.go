package scraper

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the traversal engine. All
// record methods are nil-safe so callers that don't care about metrics
// can pass a nil *Metrics.
type Metrics struct {
	Registry        *prometheus.Registry
	PagesTotal      prometheus.Counter
	ItemsTotal      prometheus.Counter
	AdvanceDuration prometheus.Histogram
	StrategyTotal   *prometheus.CounterVec
	TraversalsTotal *prometheus.CounterVec
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	pages := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bidwatch_pages_traversed_total",
		Help: "Total logical pages materialized across all traversals.",
	})
	items := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bidwatch_items_emitted_total",
		Help: "Total unique item records emitted.",
	})
	advance := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "bidwatch_advance_duration_seconds",
		Help:    "Duration of one pagination advance attempt.",
		Buckets: prometheus.DefBuckets,
	})
	strategy := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bidwatch_advance_strategy_total",
			Help: "Pagination advances by winning strategy.",
		},
		[]string{"strategy"},
	)
	traversals := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bidwatch_traversals_total",
			Help: "Completed traversals by outcome.",
		},
		[]string{"outcome"},
	)

	registry.MustRegister(pages, items, advance, strategy, traversals)

	return &Metrics{
		Registry:        registry,
		PagesTotal:      pages,
		ItemsTotal:      items,
		AdvanceDuration: advance,
		StrategyTotal:   strategy,
		TraversalsTotal: traversals,
	}
}

// IncPage counts one materialized page.
func (m *Metrics) IncPage() {
	if m == nil {
		return
	}
	m.PagesTotal.Inc()
}

// AddItems counts emitted records.
func (m *Metrics) AddItems(n int) {
	if m == nil {
		return
	}
	m.ItemsTotal.Add(float64(n))
}

// ObserveAdvance records one advance attempt's duration and outcome.
func (m *Metrics) ObserveAdvance(d time.Duration, s Strategy) {
	if m == nil {
		return
	}
	m.AdvanceDuration.Observe(d.Seconds())
	label := string(s)
	if label == "" {
		label = "none"
	}
	m.StrategyTotal.WithLabelValues(label).Inc()
}

// IncTraversal counts one finished traversal by outcome
// ("ok" or "error").
func (m *Metrics) IncTraversal(outcome string) {
	if m == nil {
		return
	}
	m.TraversalsTotal.WithLabelValues(outcome).Inc()
}
