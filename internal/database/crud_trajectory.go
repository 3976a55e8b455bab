// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

package database

import (
	"context"
	"fmt"

	"github.com/tomtom215/geolife/internal/logging"
	"github.com/tomtom215/geolife/internal/models"
)

// ClearAll deletes every row from the three tables. The tables themselves
// are kept.
func (db *DB) ClearAll(ctx context.Context) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.Error().Err(rbErr).AnErr("original_error", err).Msg("Transaction rollback failed")
			}
		}
	}()

	for _, table := range []string{tableTrackPoint, tableActivity, tableUser} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit clear: %w", err)
	}
	return nil
}

// InsertUsers writes users in a single transaction.
func (db *DB) InsertUsers(ctx context.Context, users []models.User) (int, error) {
	query := `INSERT INTO ` + tableUser + ` (id, has_labels) VALUES (?, ?)`
	return db.insertBatch(ctx, query, len(users), func(i int) []any {
		u := &users[i]
		return []any{u.ID, u.HasLabels}
	})
}

// InsertActivities writes activities in a single transaction.
func (db *DB) InsertActivities(ctx context.Context, activities []models.Activity) (int, error) {
	query := `INSERT INTO ` + tableActivity + ` (
		id, user_id, transportation_mode, start_date_time, end_date_time
	) VALUES (?, ?, ?, ?, ?)`
	return db.insertBatch(ctx, query, len(activities), func(i int) []any {
		a := &activities[i]
		return []any{a.ID, a.UserID, a.TransportationMode, a.StartDateTime, a.EndDateTime}
	})
}

// InsertTrackPointsBatch writes one batch of trackpoints in a single
// transaction. A nil altitude is stored as NULL.
func (db *DB) InsertTrackPointsBatch(ctx context.Context, points []models.TrackPoint) (int, error) {
	query := `INSERT INTO ` + tableTrackPoint + ` (
		id, activity_id, user_id, lat, lon, altitude, date_days, date_time
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	return db.insertBatch(ctx, query, len(points), func(i int) []any {
		tp := &points[i]
		return []any{tp.ID, tp.ActivityID, tp.UserID, tp.Lat, tp.Lon, nullableFloat(tp.Altitude), tp.DateDays, tp.DateTime}
	})
}

// insertBatch executes query once per row inside one transaction using a
// prepared statement.
func (db *DB) insertBatch(ctx context.Context, query string, n int, args func(i int) []any) (inserted int, err error) {
	if n == 0 {
		return 0, nil
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.Error().
					Err(rbErr).
					AnErr("original_error", err).
					Msg("Transaction rollback failed")
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer closeWithLog(stmt, "prepared statement")

	for i := 0; i < n; i++ {
		if _, err = stmt.ExecContext(ctx, args(i)...); err != nil {
			return 0, fmt.Errorf("failed to insert row %d: %w", i, err)
		}
		inserted++
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return inserted, nil
}

// nullableFloat unwraps v for binding; nil binds as NULL.
func nullableFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
