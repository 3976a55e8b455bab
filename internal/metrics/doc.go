// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

/*
Package metrics provides Prometheus metrics for the ingestion and report
phases.

The process is a batch job, so nothing is scraped over HTTP. When
metrics.textfile_path is configured the CLI calls WriteTextfile at exit and
node_exporter's textfile collector picks the file up.

# Available Metrics

Database Metrics:
  - duckdb_query_duration_seconds: statement time (histogram)
    Labels: operation, table
  - duckdb_query_errors_total: failed statements (counter)
    Labels: operation, table, error_type

Ingest Metrics:
  - geolife_ingest_duration_seconds: full run time (histogram)
  - geolife_ingest_files_total: files visited (counter), label: source
  - geolife_ingest_records_inserted_total: rows written (counter), label: collection
  - geolife_ingest_trackpoint_batches_total: committed batches (counter)
  - geolife_ingest_errors_total: failed runs (counter), label: stage
  - geolife_ingest_last_success_timestamp: unix time (gauge)

Report Metrics:
  - geolife_report_query_duration_seconds: per query (histogram), label: query
  - geolife_report_query_errors_total: per query (counter), labels: query, error_type

# Usage

	start := time.Now()
	rows, err := db.TopActiveUsers(ctx, 20)
	metrics.ObserveReportQuery("top_active_users", time.Since(start), err)

	if err := metrics.WriteTextfile("/var/lib/node_exporter/geolife.prom"); err != nil {
	    logging.Warn().Err(err).Msg("Failed to write metrics")
	}
*/
package metrics
