package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exposes the pipeline's Prometheus metrics.
type Recorder struct {
	fetchesTotal       *prometheus.CounterVec
	articlesAggregated prometheus.Counter
	aggregateDuration  prometheus.Histogram
	cacheLookups       *prometheus.CounterVec
}

func New() *Recorder {
	return &Recorder{
		fetchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketnews_feed_fetches_total",
				Help: "Feed fetch outcomes per source",
			},
			[]string{"source", "outcome"},
		),
		articlesAggregated: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "marketnews_articles_aggregated_total",
				Help: "Total articles produced by aggregation runs",
			},
		),
		aggregateDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "marketnews_aggregate_duration_seconds",
				Help:    "Duration of one aggregation run in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		cacheLookups: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketnews_cache_lookups_total",
				Help: "Result cache lookups by outcome (fresh, stale, miss)",
			},
			[]string{"outcome"},
		),
	}
}

func (r *Recorder) RecordFetch(source, outcome string) {
	r.fetchesTotal.WithLabelValues(source, outcome).Inc()
}

func (r *Recorder) RecordArticles(count int) {
	r.articlesAggregated.Add(float64(count))
}

func (r *Recorder) RecordAggregateDuration(seconds float64) {
	r.aggregateDuration.Observe(seconds)
}

func (r *Recorder) RecordCacheLookup(outcome string) {
	r.cacheLookups.WithLabelValues(outcome).Inc()
}
