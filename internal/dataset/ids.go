// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

package dataset

import (
	"path/filepath"
	"strings"
	"time"
)

const (
	// labelTimeLayout is the timestamp format used in labels.txt.
	labelTimeLayout = "2006/01/02 15:04:05"

	// plotDateLayout and plotTimeLayout are the date and time columns of a .plt row.
	plotDateLayout = "2006-01-02"
	plotTimeLayout = "15:04:05"

	compactLayout = "20060102150405"
)

// compactStamp renders t as YYYYMMDDHHMMSS.
func compactStamp(t time.Time) string {
	return t.Format(compactLayout)
}

// ActivityID returns the id of the activity of userID starting at start.
func ActivityID(userID string, start time.Time) string {
	return userID + "_" + compactStamp(start)
}

// PlotActivityID returns the activity id for a plot file. Geolife names plot
// files after their compact start timestamp, so the stem is used as is.
func PlotActivityID(userID, plotPath string) string {
	base := filepath.Base(plotPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return userID + "_" + stem
}

// TrackPointID returns the id of the point of activityID recorded at t.
func TrackPointID(activityID string, t time.Time) string {
	return activityID + "_" + compactStamp(t)
}

// DateDays returns the compact YYYYMMDD date of t.
func DateDays(t time.Time) string {
	return t.Format("20060102")
}
