// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

// Package database stores the Geolife collections in DuckDB and runs the
// trajectory reports against them.
//
// # Architecture
//
//   - database.go: connection lifecycle (open, initialize, checkpoint, close)
//   - database_schema.go: User, Activity and TrackPoint tables and indexes
//   - database_connection.go: connection pool configuration
//   - database_utils.go: context timeouts and checkpointing
//   - crud_trajectory.go: delete-all and transactional bulk inserts
//   - analytics_trajectory.go: the eleven report queries
//
// Aggregations that DuckDB expresses directly (counts, averages, group-by
// rankings, bounding-box filters) run as SQL. Aggregations over consecutive
// trackpoints fetch rows in insertion order and hand them to the analytics
// package.
//
// # Usage
//
//	db, err := database.New(&cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	totals, err := db.Totals(ctx)
//
// # Errors
//
// Aggregations over an empty table return ErrNoData; callers check it with
// errors.Is.
//
// # Testing
//
// Tests use an in-memory database:
//
//	db, err := database.New(&config.DatabaseConfig{
//	    Path:        ":memory:",
//	    MaxMemory:   "512MB",
//	    SkipIndexes: true,
//	})
package database
