// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

package metrics

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for a batch run:
// - Database statement performance (DuckDB)
// - Ingestion throughput (files, rows, batches)
// - Report query latency

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets, // 0.005s, 0.01s, 0.025s, 0.05s, 0.1s, 0.25s, 0.5s, 1s, 2.5s, 5s, 10s
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	// Ingest Metrics
	IngestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "geolife_ingest_duration_seconds",
			Help:    "Duration of a full dataset ingestion in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1200, 3600},
		},
	)

	IngestFilesParsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geolife_ingest_files_total",
			Help: "Dataset files visited during parsing",
		},
		[]string{"source"}, // "labels", "plot", "ignored"
	)

	IngestRecordsInserted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geolife_ingest_records_inserted_total",
			Help: "Records written to the store",
		},
		[]string{"collection"}, // "User", "Activity", "TrackPoint"
	)

	IngestBatches = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "geolife_ingest_trackpoint_batches_total",
			Help: "Trackpoint insert batches committed",
		},
	)

	IngestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geolife_ingest_errors_total",
			Help: "Ingestion runs that failed, by stage",
		},
		[]string{"stage"}, // "parse", "clear", "insert", "ledger"
	)

	IngestLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "geolife_ingest_last_success_timestamp",
			Help: "Unix timestamp of the last successful ingestion",
		},
	)

	// Report Metrics
	ReportQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "geolife_report_query_duration_seconds",
			Help:    "Duration of report queries in seconds",
			Buckets: []float64{.01, .05, .1, .5, 1, 5, 10, 30, 60, 300},
		},
		[]string{"query"},
	)

	ReportQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geolife_report_query_errors_total",
			Help: "Report queries that returned an error",
		},
		[]string{"query", "error_type"},
	)

	// Application Info
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "geolife_app_info",
			Help: "Application version information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		// Truncate long error messages
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordFileParsed counts one dataset file by source ("labels", "plot", "ignored").
func RecordFileParsed(source string) {
	IngestFilesParsed.WithLabelValues(source).Inc()
}

// RecordInserted adds n records written to collection.
func RecordInserted(collection string, n int) {
	IngestRecordsInserted.WithLabelValues(collection).Add(float64(n))
}

// RecordBatch counts one committed trackpoint batch.
func RecordBatch() {
	IngestBatches.Inc()
}

// RecordIngest records the outcome of an ingestion run. stage names the
// step that failed and is ignored when err is nil.
func RecordIngest(duration time.Duration, stage string, err error) {
	IngestDuration.Observe(duration.Seconds())
	if err != nil {
		if stage == "" {
			stage = "other"
		}
		IngestErrors.WithLabelValues(stage).Inc()
		return
	}
	IngestLastSuccess.Set(float64(time.Now().Unix()))
}

// ObserveReportQuery records the latency and outcome of one report query.
func ObserveReportQuery(query string, duration time.Duration, err error) {
	ReportQueryDuration.WithLabelValues(query).Observe(duration.Seconds())
	if err != nil {
		ReportQueryErrors.WithLabelValues(query, classifyError(err)).Inc()
	}
}

// SetAppInfo publishes the running version.
func SetAppInfo(version string) {
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
}

// WriteTextfile writes every registered metric to path in the Prometheus
// text format, for the node_exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

// classifyError maps an error to a low-cardinality label value.
func classifyError(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "no data"):
		return "no_data"
	case strings.Contains(msg, "context deadline exceeded"):
		return "timeout"
	case strings.Contains(msg, "context canceled"):
		return "canceled"
	default:
		return "other"
	}
}
