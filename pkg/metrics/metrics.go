package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_requests_total",
		Help: "Total number of requests issued to the market data provider",
	}, []string{"endpoint", "status"})

	UpstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_request_duration_seconds",
		Help:    "Duration of provider requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total number of cache hits",
	}, []string{"layer"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total number of cache misses",
	}, []string{"layer"})

	RecordsFiltered = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "records_filtered_per_request",
		Help:    "Number of records surviving the time-window filter",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
	})

	ScrapeRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scrape_requests_total",
		Help: "Total number of HTML scrape fetches",
	}, []string{"target", "status"})

	FeedFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rss_feed_fetches_total",
		Help: "Total number of RSS feed fetches",
	}, []string{"category", "status"})
)

func RecordUpstreamRequest(endpoint, status string, duration float64) {
	UpstreamRequests.WithLabelValues(endpoint, status).Inc()
	UpstreamRequestDuration.WithLabelValues(endpoint).Observe(duration)
}

func RecordCacheHit(layer string) {
	CacheHits.WithLabelValues(layer).Inc()
}

func RecordCacheMiss(layer string) {
	CacheMisses.WithLabelValues(layer).Inc()
}

type Timer struct {
	start time.Time
}

func NewTimer() *Timer {
	return &Timer{
		start: time.Now(),
	}
}

func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}
