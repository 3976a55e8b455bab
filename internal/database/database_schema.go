// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

/*
database_schema.go - Database Schema Management

Tables:
  - "User": one row per dataset user folder
  - "Activity": trip segments from labels.txt rows or plot file spans
  - "TrackPoint": GPS fixes, each owned by one activity

Table names are quoted everywhere: USER is a reserved word in DuckDB's
grammar.

Index Strategy:
Secondary indexes cover the two joins the reports use, Activity(user_id)
and TrackPoint(activity_id). Tests skip them with SkipIndexes.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/geolife/internal/models"
)

// Quoted table names.
const (
	tableUser       = `"` + models.CollectionUser + `"`
	tableActivity   = `"` + models.CollectionActivity + `"`
	tableTrackPoint = `"` + models.CollectionTrackPoint + `"`
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the core database tables
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range getTableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}

	return nil
}

// getTableCreationQueries returns the table creation SQL statements
func getTableCreationQueries() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS ` + tableUser + ` (
			id TEXT PRIMARY KEY,
			has_labels BOOLEAN NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tableActivity + ` (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			transportation_mode TEXT NOT NULL DEFAULT '',
			start_date_time TIMESTAMP NOT NULL,
			end_date_time TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tableTrackPoint + ` (
			id TEXT PRIMARY KEY,
			activity_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			lat DOUBLE NOT NULL,
			lon DOUBLE NOT NULL,
			altitude DOUBLE,
			date_days TEXT NOT NULL,
			date_time TIMESTAMP NOT NULL
		)`,
	}
}

// createIndexes creates secondary indexes unless the configuration skips them.
func (db *DB) createIndexes() error {
	if db.cfg != nil && db.cfg.SkipIndexes {
		return nil
	}

	return db.CreateIndexes()
}

// CreateIndexes creates all database indexes.
// This is exposed for tests that specifically need indexes.
// Most tests should use SkipIndexes: true for fast setup.
func (db *DB) CreateIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range getIndexQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute index query: %s: %w", query, err)
		}
	}

	return nil
}

func getIndexQueries() []string {
	return []string{
		`CREATE INDEX IF NOT EXISTS idx_activity_user_id ON ` + tableActivity + ` (user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_trackpoint_activity_id ON ` + tableTrackPoint + ` (activity_id)`,
	}
}
