// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/paulmach/orb"

	"github.com/tomtom215/geolife/internal/analytics"
	"github.com/tomtom215/geolife/internal/models"
)

// TaxiMode is the transportation mode label for taxi rides.
const TaxiMode = "taxi"

// DistanceQuery selects the activities summed by DistanceWalked.
type DistanceQuery struct {
	UserID string
	Year   int
	Mode   string
}

// Totals returns the number of users, activities and trackpoints.
func (db *DB) Totals(ctx context.Context) (*models.Totals, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var t models.Totals
	counts := []struct {
		table string
		dest  *int64
	}{
		{tableUser, &t.Users},
		{tableActivity, &t.Activities},
		{tableTrackPoint, &t.TrackPoints},
	}
	for _, c := range counts {
		if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+c.table).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", c.table, err)
		}
	}
	return &t, nil
}

// AverageActivitiesPerUser returns the mean number of activities per user
// that owns at least one activity. It returns ErrNoData when the Activity
// table is empty.
func (db *DB) AverageActivitiesPerUser(ctx context.Context) (float64, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `SELECT AVG(activities) FROM (
		SELECT user_id, COUNT(*) AS activities
		FROM ` + tableActivity + `
		GROUP BY user_id
	)`

	var avg sql.NullFloat64
	if err := db.conn.QueryRowContext(ctx, query).Scan(&avg); err != nil {
		return 0, fmt.Errorf("failed to average activities per user: %w", err)
	}
	if !avg.Valid {
		return 0, ErrNoData
	}
	return avg.Float64, nil
}

// TopActiveUsers ranks users by activity count, highest first. Ties are
// broken by user id. Rank starts at 1.
func (db *DB) TopActiveUsers(ctx context.Context, limit int) ([]models.UserActivityCount, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `SELECT user_id, COUNT(*) AS activities
		FROM ` + tableActivity + `
		GROUP BY user_id
		ORDER BY activities DESC, user_id
		LIMIT ?`

	rows, err := db.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top active users: %w", err)
	}
	defer closeWithLog(rows, "rows")

	var result []models.UserActivityCount
	for rows.Next() {
		row := models.UserActivityCount{Rank: len(result) + 1}
		if err := rows.Scan(&row.UserID, &row.Activities); err != nil {
			return nil, fmt.Errorf("failed to scan top active user: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating top active users: %w", err)
	}
	return result, nil
}

// TaxiUsers returns the users with at least one taxi activity, ascending.
func (db *DB) TaxiUsers(ctx context.Context) ([]string, error) {
	return db.UsersWithMode(ctx, TaxiMode)
}

// UsersWithMode returns the distinct users with at least one activity of
// mode, ascending.
func (db *DB) UsersWithMode(ctx context.Context, mode string) ([]string, error) {
	query := `SELECT DISTINCT user_id FROM ` + tableActivity + `
		WHERE transportation_mode = ?
		ORDER BY user_id`
	return db.queryStrings(ctx, query, mode)
}

// TransportModeCounts counts activities per non-empty transportation mode,
// most frequent first.
func (db *DB) TransportModeCounts(ctx context.Context) ([]models.ModeCount, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `SELECT transportation_mode, COUNT(*) AS activities
		FROM ` + tableActivity + `
		WHERE transportation_mode <> ''
		GROUP BY transportation_mode
		ORDER BY activities DESC, transportation_mode`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transport modes: %w", err)
	}
	defer closeWithLog(rows, "rows")

	var result []models.ModeCount
	for rows.Next() {
		var mc models.ModeCount
		if err := rows.Scan(&mc.Mode, &mc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan transport mode: %w", err)
		}
		result = append(result, mc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transport modes: %w", err)
	}
	return result, nil
}

// BusiestYear finds the year with the most activities and the hoursLimit
// years with the most recorded hours. Years are taken from the activity
// start. It returns ErrNoData when the Activity table is empty.
func (db *DB) BusiestYear(ctx context.Context, hoursLimit int) (*models.BusiestYear, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var result models.BusiestYear

	countQuery := `SELECT CAST(year(start_date_time) AS INTEGER) AS y, COUNT(*) AS activities
		FROM ` + tableActivity + `
		GROUP BY y
		ORDER BY activities DESC, y
		LIMIT 1`
	err := db.conn.QueryRowContext(ctx, countQuery).Scan(&result.MostActivities.Year, &result.MostActivities.Count)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query year with most activities: %w", err)
	}

	hoursQuery := `SELECT CAST(year(start_date_time) AS INTEGER) AS y,
			CAST(SUM(date_diff('second', start_date_time, end_date_time)) AS DOUBLE) / 3600.0 AS hours
		FROM ` + tableActivity + `
		GROUP BY y
		ORDER BY hours DESC, y
		LIMIT ?`

	rows, err := db.conn.QueryContext(ctx, hoursQuery, hoursLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to query hours per year: %w", err)
	}
	defer closeWithLog(rows, "rows")

	for rows.Next() {
		var yh models.YearHours
		if err := rows.Scan(&yh.Year, &yh.Hours); err != nil {
			return nil, fmt.Errorf("failed to scan hours per year: %w", err)
		}
		result.MostHours = append(result.MostHours, yh)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hours per year: %w", err)
	}
	return &result, nil
}

// DistanceWalked sums the haversine distance in kilometers between
// consecutive trackpoints of the activities matching q.
func (db *DB) DistanceWalked(ctx context.Context, q DistanceQuery, pairing analytics.Pairing) (float64, error) {
	query := `SELECT tp.id, tp.activity_id, tp.user_id, tp.lat, tp.lon, tp.altitude, tp.date_days, tp.date_time
		FROM ` + tableTrackPoint + ` tp
		JOIN ` + tableActivity + ` a ON a.id = tp.activity_id
		WHERE a.user_id = ?
			AND a.transportation_mode = ?
			AND year(a.start_date_time) = ?
		ORDER BY tp.rowid`

	points, err := db.fetchTrackPoints(ctx, query, q.UserID, q.Mode, q.Year)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch trackpoints for distance: %w", err)
	}
	return analytics.TotalDistanceKm(points, pairing), nil
}

// TopAltitudeGain ranks users by summed altitude gain over consecutive
// trackpoints of the same activity, highest first.
func (db *DB) TopAltitudeGain(ctx context.Context, limit int, pairing analytics.Pairing) ([]models.UserAltitudeGain, error) {
	points, err := db.allTrackPoints(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trackpoints for altitude gain: %w", err)
	}
	return analytics.TopAltitudeGain(analytics.AltitudeGainByUser(points, pairing), limit), nil
}

// InvalidActivitiesPerUser counts, per user, the activities with two
// consecutive trackpoints more than threshold apart.
func (db *DB) InvalidActivitiesPerUser(ctx context.Context, pairing analytics.Pairing, threshold time.Duration) ([]models.UserInvalidActivities, error) {
	points, err := db.allTrackPoints(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trackpoints for gap detection: %w", err)
	}
	return analytics.InvalidActivitiesByUser(points, pairing, threshold), nil
}

// ForbiddenCityVisitors returns the users with a trackpoint inside the
// Forbidden City, ascending.
func (db *DB) ForbiddenCityVisitors(ctx context.Context) ([]string, error) {
	return db.UsersWithin(ctx, analytics.ForbiddenCity)
}

// UsersWithin returns the distinct users with a trackpoint inside bound
// (inclusive), ascending. DuckDB narrows the rows to the padded envelope
// and the bound itself decides membership.
func (db *DB) UsersWithin(ctx context.Context, bound orb.Bound) ([]string, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	envelope := bound.Pad(analytics.PrefilterPad)
	query := `SELECT DISTINCT user_id, lat, lon FROM ` + tableTrackPoint + `
		WHERE lat BETWEEN ? AND ?
			AND lon BETWEEN ? AND ?`

	rows, err := db.conn.QueryContext(ctx, query,
		envelope.Min.Lat(), envelope.Max.Lat(), envelope.Min.Lon(), envelope.Max.Lon())
	if err != nil {
		return nil, fmt.Errorf("failed to query trackpoints in bound: %w", err)
	}
	defer closeWithLog(rows, "rows")

	var candidates []models.TrackPoint
	for rows.Next() {
		var tp models.TrackPoint
		if err := rows.Scan(&tp.UserID, &tp.Lat, &tp.Lon); err != nil {
			return nil, fmt.Errorf("failed to scan trackpoint in bound: %w", err)
		}
		candidates = append(candidates, tp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trackpoints in bound: %w", err)
	}
	return analytics.UsersWithin(bound, candidates), nil
}

// DominantModePerUser returns each user's most frequent non-empty
// transportation mode, sorted by user id.
func (db *DB) DominantModePerUser(ctx context.Context) ([]models.UserDominantMode, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `SELECT user_id, transportation_mode
		FROM ` + tableActivity + `
		WHERE transportation_mode <> ''
		ORDER BY rowid`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query labeled activities: %w", err)
	}
	defer closeWithLog(rows, "rows")

	var acts []models.Activity
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.UserID, &a.TransportationMode); err != nil {
			return nil, fmt.Errorf("failed to scan labeled activity: %w", err)
		}
		acts = append(acts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating labeled activities: %w", err)
	}
	return analytics.DominantModes(acts), nil
}

// allTrackPoints returns every trackpoint in insertion order.
func (db *DB) allTrackPoints(ctx context.Context) ([]models.TrackPoint, error) {
	query := `SELECT id, activity_id, user_id, lat, lon, altitude, date_days, date_time
		FROM ` + tableTrackPoint + `
		ORDER BY rowid`
	return db.fetchTrackPoints(ctx, query)
}

// fetchTrackPoints runs query, which must select the eight TrackPoint
// columns in schema order.
func (db *DB) fetchTrackPoints(ctx context.Context, query string, args ...any) ([]models.TrackPoint, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer closeWithLog(rows, "rows")

	var points []models.TrackPoint
	for rows.Next() {
		var tp models.TrackPoint
		var altitude sql.NullFloat64
		if err := rows.Scan(&tp.ID, &tp.ActivityID, &tp.UserID, &tp.Lat, &tp.Lon, &altitude, &tp.DateDays, &tp.DateTime); err != nil {
			return nil, fmt.Errorf("failed to scan trackpoint: %w", err)
		}
		if altitude.Valid {
			v := altitude.Float64
			tp.Altitude = &v
		}
		points = append(points, tp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trackpoints: %w", err)
	}
	return points, nil
}

// queryStrings runs a single-column string query.
func (db *DB) queryStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer closeWithLog(rows, "rows")

	var result []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return result, nil
}
