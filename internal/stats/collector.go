// Package stats provides a unified interface for collecting metrics.
package stats

// Metric names used throughout the service.
const (
	// Query metrics.
	MetricQueries          = "enginemetrics_queries_total"
	MetricQueryFailures    = "enginemetrics_query_failures_total"
	MetricQueryDuration    = "enginemetrics_query_duration_seconds"
	MetricQueryLogFailures = "enginemetrics_query_log_failures_total"

	// Ingestion metrics.
	MetricIngestions        = "enginemetrics_ingestions_total"
	MetricIngestionFailures = "enginemetrics_ingestion_failures_total"
	MetricGamesIngested     = "enginemetrics_games_ingested_total"
	MetricGamesSkipped      = "enginemetrics_games_skipped_total"

	// Storage metrics.
	MetricBlobReads  = "enginemetrics_blob_reads_total"
	MetricBlobWrites = "enginemetrics_blob_writes_total"

	// Cache metrics.
	MetricCacheHits   = "enginemetrics_cache_hits_total"
	MetricCacheMisses = "enginemetrics_cache_misses_total"
	MetricCacheSize   = "enginemetrics_cache_size"
)

var help = map[string]string{
	MetricQueries:           "Natural-language queries answered.",
	MetricQueryFailures:     "Queries whose data retrieval failed.",
	MetricQueryDuration:     "Time spent answering a query, in seconds.",
	MetricQueryLogFailures:  "Queries whose log entry could not be stored.",
	MetricIngestions:        "Documents ingested into the knowledge base.",
	MetricIngestionFailures: "Ingestion requests that failed.",
	MetricGamesIngested:     "PGN games aggregated into performance snapshots.",
	MetricGamesSkipped:      "PGN games that could not be decoded.",
	MetricBlobReads:         "Objects read from the blob store.",
	MetricBlobWrites:        "Objects written to the blob store.",
	MetricCacheHits:         "Blob read cache hits.",
	MetricCacheMisses:       "Blob read cache misses.",
	MetricCacheSize:         "Entries held in the blob read cache.",
}

// Help returns a description of the named metric, or the name itself for
// metrics not declared in this package.
func Help(name string) string {
	if h, ok := help[name]; ok {
		return h
	}
	return name
}

// Collector defines the interface for collecting metrics.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64)
}
