// Package metrics provides Prometheus metrics for the ring ledger service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the ring ledger service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Replay Metrics - Event log replay into title lines
	replayCount       prometheus.Counter
	replayDuration    prometheus.Histogram
	titleChanges      prometheus.Counter
	titleDefenses     prometheus.Counter
	vacanciesApplied  prometheus.Counter
	vacanciesDropped  prometheus.Counter
	unclassifiedTitle prometheus.Counter

	// Scoring and Ranking Metrics
	scoringLatency       prometheus.Histogram
	rankingBuildDuration prometheus.Histogram
	rankingErrors        prometheus.Counter

	// Ledger Scale Metrics
	totalWrestlers prometheus.Gauge
	totalReigns    prometheus.Gauge
	workerCount    prometheus.Gauge

	// Snapshot Metrics - Repository snapshot timings
	snapshotRebuildDuration prometheus.Histogram
	snapshotLastUnix        prometheus.Gauge
	snapshotCount           prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Ingest Quality Metrics
	ingestErrors  prometheus.Counter
	ingestSkipped prometheus.Counter
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "ringledger",
		subsystem:        "ledger",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	// Replay Metrics
	m.replayCount = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "replay_total",
		Help:      "Total number of full event log replays",
	})

	m.replayDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "replay_duration_milliseconds",
		Help:      "Event log replay duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.titleChanges = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "title_changes_total",
		Help:      "Total number of title changes recorded during replay",
	})

	m.titleDefenses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "title_defenses_total",
		Help:      "Total number of successful title defenses recorded during replay",
	})

	m.vacanciesApplied = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "vacancies_applied_total",
		Help:      "Total number of vacancy records applied to open reigns",
	})

	m.vacanciesDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "vacancies_dropped_total",
		Help:      "Total number of vacancy records dropped for champion mismatch (data quality)",
	})

	m.unclassifiedTitle = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "unclassified_title_matches_total",
		Help:      "Total number of title matches degraded to non-title for missing weight class",
	})

	// Scoring and Ranking Metrics
	m.scoringLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_latency_milliseconds",
		Help:      "Histogram of per-wrestler scoring latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.rankingBuildDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ranking_build_duration_milliseconds",
		Help:      "Full ranking table build duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.rankingErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ranking_errors_total",
		Help:      "Total number of ranking build errors",
	})

	// Ledger Scale Metrics
	m.totalWrestlers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "total_wrestlers",
		Help:      "Total number of wrestlers in the ledger",
	})

	m.totalReigns = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "total_reigns",
		Help:      "Total number of title reigns across all lines",
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_count",
		Help:      "Number of scoring workers in the ranking builder pool",
	})

	// Snapshot Metrics
	m.snapshotRebuildDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_rebuild_duration_milliseconds",
		Help:      "Repository snapshot rebuild duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.snapshotLastUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_last_unix",
		Help:      "Unix timestamp of the last repository snapshot publish",
	})

	m.snapshotCount = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_count_total",
		Help:      "Total number of repository snapshots published",
	})

	// HTTP Performance Metrics
	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	// Ingest Quality Metrics
	m.ingestErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ingest_errors_total",
		Help:      "Total number of ingest parse errors",
	})

	m.ingestSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ingest_skipped_total",
		Help:      "Total number of ingest records skipped for bad dates or fields",
	})
}

// IncrementReplayCount increments the replay counter.
func IncrementReplayCount() {
	globalManager.replayCount.Inc()
}

// RecordReplayDuration records a full replay duration in milliseconds.
func RecordReplayDuration(durationMs float64) {
	globalManager.replayDuration.Observe(durationMs)
}

// RecordTitleChange increments the title changes counter.
func RecordTitleChange() {
	globalManager.titleChanges.Inc()
}

// RecordTitleDefense increments the title defenses counter.
func RecordTitleDefense() {
	globalManager.titleDefenses.Inc()
}

// RecordVacancyApplied increments the applied vacancies counter.
func RecordVacancyApplied() {
	globalManager.vacanciesApplied.Inc()
}

// RecordVacancyDropped increments the dropped vacancies counter.
func RecordVacancyDropped() {
	globalManager.vacanciesDropped.Inc()
}

// RecordUnclassifiedTitleMatch increments the degraded title match counter.
func RecordUnclassifiedTitleMatch() {
	globalManager.unclassifiedTitle.Inc()
}

// RecordScoringLatency records per-wrestler scoring latency in milliseconds.
func RecordScoringLatency(latencyMs float64) {
	globalManager.scoringLatency.Observe(latencyMs)
}

// RecordRankingBuildDuration records a ranking table build duration in milliseconds.
func RecordRankingBuildDuration(durationMs float64) {
	globalManager.rankingBuildDuration.Observe(durationMs)
}

// RecordRankingError increments the ranking errors counter.
func RecordRankingError() {
	globalManager.rankingErrors.Inc()
}

// UpdateTotalWrestlers sets the total wrestlers gauge.
func UpdateTotalWrestlers(count int) {
	globalManager.totalWrestlers.Set(float64(count))
}

// UpdateTotalReigns sets the total reigns gauge.
func UpdateTotalReigns(count int) {
	globalManager.totalReigns.Set(float64(count))
}

// UpdateWorkerCount sets the scoring worker pool size.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// RecordSnapshotRebuildDuration records a snapshot rebuild duration in milliseconds.
func RecordSnapshotRebuildDuration(durationMs float64) {
	globalManager.snapshotRebuildDuration.Observe(durationMs)
}

// RecordSnapshotPublished records a snapshot publish with its timestamp.
func RecordSnapshotPublished(at time.Time) {
	globalManager.snapshotCount.Inc()
	globalManager.snapshotLastUnix.Set(float64(at.Unix()))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordIngestError increments the ingest errors counter.
func RecordIngestError() {
	globalManager.ingestErrors.Inc()
}

// RecordIngestSkipped increments the skipped ingest records counter.
func RecordIngestSkipped() {
	globalManager.ingestSkipped.Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
