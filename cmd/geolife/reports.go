// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/geolife/internal/analytics"
	"github.com/tomtom215/geolife/internal/config"
	"github.com/tomtom215/geolife/internal/database"
	"github.com/tomtom215/geolife/internal/logging"
	"github.com/tomtom215/geolife/internal/metrics"
	"github.com/tomtom215/geolife/internal/report"
)

// busiestYearHoursLimit is the number of years listed in the hours ranking.
const busiestYearHoursLimit = 5

// reportQuery is one numbered section of the report.
type reportQuery struct {
	name string
	run  func(ctx context.Context) error
}

// reportRunner prints the fixed query sequence.
type reportRunner struct {
	db  *database.DB
	out *report.Printer
	cfg *config.AnalyticsConfig
}

func newReportRunner(db *database.DB, out *report.Printer, cfg *config.AnalyticsConfig) *reportRunner {
	return &reportRunner{db: db, out: out, cfg: cfg}
}

// Run executes every query in order. A query without data prints a notice
// and the sequence continues; any other error stops it.
func (r *reportRunner) Run(ctx context.Context) error {
	pairing, err := analytics.ParsePairing(r.cfg.Pairing)
	if err != nil {
		return err
	}

	for i, q := range r.queries(pairing) {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.out.Heading(i + 1)

		start := time.Now()
		err := q.run(ctx)
		metrics.ObserveReportQuery(q.name, time.Since(start), err)

		switch {
		case errors.Is(err, database.ErrNoData):
			r.out.NoData()
		case err != nil:
			return fmt.Errorf("query %d (%s): %w", i+1, q.name, err)
		default:
			logging.Ctx(ctx).Debug().Str("query", q.name).Dur("duration", time.Since(start)).Msg("Query completed")
		}
	}
	return nil
}

func (r *reportRunner) queries(pairing analytics.Pairing) []reportQuery {
	return []reportQuery{
		{name: "totals", run: func(ctx context.Context) error {
			totals, err := r.db.Totals(ctx)
			if err != nil {
				return err
			}
			r.out.Totals(totals)
			return nil
		}},
		{name: "average_activities", run: func(ctx context.Context) error {
			avg, err := r.db.AverageActivitiesPerUser(ctx)
			if err != nil {
				return err
			}
			r.out.AverageActivities(avg)
			return nil
		}},
		{name: "top_active_users", run: func(ctx context.Context) error {
			rows, err := r.db.TopActiveUsers(ctx, r.cfg.TopN)
			if err != nil {
				return err
			}
			r.out.TopActiveUsers(rows)
			return nil
		}},
		{name: "taxi_users", run: func(ctx context.Context) error {
			ids, err := r.db.TaxiUsers(ctx)
			if err != nil {
				return err
			}
			r.out.TaxiUsers(ids)
			return nil
		}},
		{name: "transport_modes", run: func(ctx context.Context) error {
			rows, err := r.db.TransportModeCounts(ctx)
			if err != nil {
				return err
			}
			r.out.ModeCounts(rows)
			return nil
		}},
		{name: "busiest_year", run: func(ctx context.Context) error {
			b, err := r.db.BusiestYear(ctx, busiestYearHoursLimit)
			if err != nil {
				return err
			}
			r.out.BusiestYear(b)
			return nil
		}},
		{name: "distance", run: func(ctx context.Context) error {
			q := database.DistanceQuery{UserID: r.cfg.DistanceUser, Year: r.cfg.DistanceYear, Mode: r.cfg.DistanceMode}
			km, err := r.db.DistanceWalked(ctx, q, pairing)
			if err != nil {
				return err
			}
			r.out.Distance(q.UserID, q.Year, q.Mode, km)
			return nil
		}},
		{name: "altitude_gain", run: func(ctx context.Context) error {
			rows, err := r.db.TopAltitudeGain(ctx, r.cfg.TopN, pairing)
			if err != nil {
				return err
			}
			r.out.AltitudeGain(rows)
			return nil
		}},
		{name: "invalid_activities", run: func(ctx context.Context) error {
			rows, err := r.db.InvalidActivitiesPerUser(ctx, pairing, r.cfg.GapThreshold)
			if err != nil {
				return err
			}
			r.out.InvalidActivities(rows)
			return nil
		}},
		{name: "forbidden_city", run: func(ctx context.Context) error {
			ids, err := r.db.ForbiddenCityVisitors(ctx)
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				return database.ErrNoData
			}
			r.out.ForbiddenCityVisitors(ids)
			return nil
		}},
		{name: "dominant_mode", run: func(ctx context.Context) error {
			rows, err := r.db.DominantModePerUser(ctx)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				return database.ErrNoData
			}
			r.out.DominantModes(rows)
			return nil
		}},
	}
}
