// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

package models

// Totals is the row count of each stored collection.
type Totals struct {
	Users       int64 `json:"users"`
	Activities  int64 `json:"activities"`
	TrackPoints int64 `json:"trackpoints"`
}

// UserActivityCount is one row of the most-active-users ranking.
type UserActivityCount struct {
	Rank       int    `json:"rank"`
	UserID     string `json:"user_id"`
	Activities int64  `json:"activities"`
}

// ModeCount is the number of activities tagged with a transportation mode.
type ModeCount struct {
	Mode  string `json:"mode"`
	Count int64  `json:"count"`
}

// YearCount is the number of activities starting in a year.
type YearCount struct {
	Year  int   `json:"year"`
	Count int64 `json:"count"`
}

// YearHours is the total recorded hours of activities starting in a year.
type YearHours struct {
	Year  int     `json:"year"`
	Hours float64 `json:"hours"`
}

// BusiestYear compares the year with most activities against the years
// with most recorded hours.
type BusiestYear struct {
	MostActivities YearCount   `json:"most_activities"`
	MostHours      []YearHours `json:"most_hours"`
}

// SameYear reports whether the year with most activities is also the year
// with most recorded hours.
func (b BusiestYear) SameYear() bool {
	return len(b.MostHours) > 0 && b.MostHours[0].Year == b.MostActivities.Year
}

// UserAltitudeGain is one row of the altitude-gain ranking.
type UserAltitudeGain struct {
	Rank   int     `json:"rank"`
	UserID string  `json:"user_id"`
	Meters float64 `json:"meters"`
}

// UserInvalidActivities counts activities with a gap between consecutive points.
type UserInvalidActivities struct {
	UserID            string `json:"user_id"`
	InvalidActivities int    `json:"invalid_activities"`
}

// UserDominantMode is the most used transportation mode of one user.
type UserDominantMode struct {
	UserID string `json:"user_id"`
	Mode   string `json:"mode"`
	Count  int    `json:"count"`
}
