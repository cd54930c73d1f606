package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/sma-schedule-editor/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation and provides lightweight snapshots for API consumption.
type MetricsService struct {
	registry         *prometheus.Registry
	handler          http.Handler
	requestDuration  *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	cacheLatency     prometheus.Observer
	cacheWrite       prometheus.Observer
	cacheHitRatio    prometheus.Gauge
	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter
	dbQueryDuration  *prometheus.HistogramVec
	dropOutcomes     *prometheus.CounterVec
	historyOps       *prometheus.CounterVec
	reconcileRemoved prometheus.Counter
	persistFailures  prometheus.Counter
	pendingDecisions prometheus.Gauge

	cacheHitCount        uint64
	cacheMissCount       uint64
	requestCount         uint64
	requestDurationTotal uint64
	dropCount            uint64
	conflictCount        uint64
	trimmedCount         uint64
	persistFailureCount  uint64
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_latency_seconds",
		Help:    "Latency for cache operations",
		Buckets: prometheus.DefBuckets,
	})

	cacheWrite := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_write_seconds",
		Help:    "Latency for cache set operations",
		Buckets: prometheus.DefBuckets,
	})

	cacheHitRatio := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cache_hit_ratio",
		Help: "Ratio of cache hits to total cache lookups",
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total cache misses",
	})

	dbQueryDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries",
		Buckets: prometheus.DefBuckets,
	}, []string{"query"})

	dropOutcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_drops_total",
		Help: "Drop gestures by transition type and outcome",
	}, []string{"type", "outcome"})

	historyOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_history_operations_total",
		Help: "History operations by scope and operation",
	}, []string{"scope", "operation"})

	reconcileRemoved := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schedule_reconcile_removed_lessons_total",
		Help: "Lessons trimmed by plan reconciliation",
	})

	persistFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schedule_persist_failures_total",
		Help: "Schedule record saves that exhausted their retries",
	})

	pendingDecisions := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "schedule_pending_confirmations",
		Help: "Drop confirmations awaiting a decision",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(
		requestDuration, requestTotal, cacheLatency, cacheWrite, cacheHitRatio, cacheHits, cacheMisses,
		dbQueryDuration, dropOutcomes, historyOps, reconcileRemoved, persistFailures, pendingDecisions, goroutines,
	)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:         registry,
		handler:          handler,
		requestDuration:  requestDuration,
		requestTotal:     requestTotal,
		cacheLatency:     cacheLatency,
		cacheWrite:       cacheWrite,
		cacheHitRatio:    cacheHitRatio,
		cacheHits:        cacheHits,
		cacheMisses:      cacheMisses,
		dbQueryDuration:  dbQueryDuration,
		dropOutcomes:     dropOutcomes,
		historyOps:       historyOps,
		reconcileRemoved: reconcileRemoved,
		persistFailures:  persistFailures,
		pendingDecisions: pendingDecisions,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics and aggregates simple stats for snapshots.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// RecordCacheOperation records cache hit/miss metrics and updates hit ratio.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	if m.cacheLatency != nil {
		m.cacheLatency.Observe(duration.Seconds())
	}
	if hit {
		m.cacheHits.Inc()
		atomic.AddUint64(&m.cacheHitCount, 1)
	} else {
		m.cacheMisses.Inc()
		atomic.AddUint64(&m.cacheMissCount, 1)
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	total := hits + misses
	if total > 0 {
		m.cacheHitRatio.Set(float64(hits) / float64(total))
	}
}

// ObserveCacheWrite tracks the duration for cache write operations.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil || m.cacheWrite == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// ObserveDBQuery records database query timing.
func (m *MetricsService) ObserveDBQuery(label string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(label).Observe(duration.Seconds())
}

// RecordDrop counts a resolved drop gesture. Conflicting confirmations are tallied separately.
func (m *MetricsService) RecordDrop(kind models.TransitionType, outcome string, conflicts int) {
	if m == nil {
		return
	}
	label := string(kind)
	if label == "" {
		label = "none"
	}
	m.dropOutcomes.WithLabelValues(label, outcome).Inc()
	atomic.AddUint64(&m.dropCount, 1)
	if conflicts > 0 {
		atomic.AddUint64(&m.conflictCount, 1)
	}
}

// RecordHistory counts a history operation on a scope.
func (m *MetricsService) RecordHistory(scope models.EditScope, operation string) {
	if m == nil {
		return
	}
	m.historyOps.WithLabelValues(string(scope), operation).Inc()
}

// RecordReconcile adds the number of lessons trimmed by reconciliation.
func (m *MetricsService) RecordReconcile(removed int) {
	if m == nil || removed <= 0 {
		return
	}
	m.reconcileRemoved.Add(float64(removed))
	atomic.AddUint64(&m.trimmedCount, uint64(removed))
}

// RecordPersistFailure counts a save that was given up on.
func (m *MetricsService) RecordPersistFailure() {
	if m == nil {
		return
	}
	m.persistFailures.Inc()
	atomic.AddUint64(&m.persistFailureCount, 1)
}

// SetPendingConfirmations reports the size of the confirmation store.
func (m *MetricsService) SetPendingConfirmations(n int) {
	if m == nil {
		return
	}
	m.pendingDecisions.Set(float64(n))
}

// Snapshot returns aggregated counters suitable for the health summary.
func (m *MetricsService) Snapshot() models.SystemMetrics {
	if m == nil {
		return models.SystemMetrics{}
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)

	var cacheRatio float64
	if total := hits + misses; total > 0 {
		cacheRatio = float64(hits) / float64(total)
	}

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}

	return models.SystemMetrics{
		CacheHitRatio:            cacheRatio,
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		DropsTotal:               atomic.LoadUint64(&m.dropCount),
		ConflictingDrops:         atomic.LoadUint64(&m.conflictCount),
		LessonsTrimmed:           atomic.LoadUint64(&m.trimmedCount),
		PersistFailures:          atomic.LoadUint64(&m.persistFailureCount),
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}
