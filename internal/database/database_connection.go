// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

package database

import (
	"runtime"
	"time"
)

// configureConnectionPool sets connection pool parameters.
//
// The run is sequential, so the pool stays small:
//   - max_open: NumCPU() caps concurrent statements
//   - max_idle: 2 for connection reuse between queries
//   - max_lifetime: 1h, longer than any single ingest
func (db *DB) configureConnectionPool() error {
	db.conn.SetMaxOpenConns(runtime.NumCPU())
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
	return nil
}
