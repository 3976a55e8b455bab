// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

package models

import "time"

// InvalidAltitude is the Geolife sentinel for a missing altitude reading.
const InvalidAltitude = -777

// Collection names, used as table names and metric labels.
const (
	CollectionUser       = "User"
	CollectionActivity   = "Activity"
	CollectionTrackPoint = "TrackPoint"
)

// User is one dataset user folder.
type User struct {
	ID        string `json:"id"`
	HasLabels bool   `json:"has_labels"`
}

// Activity is a contiguous trip segment of one user.
//
// Activities come either from a labels.txt row (TransportationMode set) or
// from the span of a plot file (TransportationMode empty).
type Activity struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"user_id"`
	TransportationMode string    `json:"transportation_mode"`
	StartDateTime      time.Time `json:"start_date_time"`
	EndDateTime        time.Time `json:"end_date_time"`
}

// TrackPoint is one GPS fix belonging to exactly one activity.
//
// Altitude is nil when the raw value was the -777 sentinel.
type TrackPoint struct {
	ID         string    `json:"id"`
	ActivityID string    `json:"activity_id"`
	UserID     string    `json:"user_id"`
	Lat        float64   `json:"lat"`
	Lon        float64   `json:"lon"`
	Altitude   *float64  `json:"altitude,omitempty"`
	DateDays   string    `json:"date_days"`
	DateTime   time.Time `json:"date_time"`
}

// HasValidAltitude reports whether the point carries a usable altitude.
// Zero readings count as missing.
func (tp TrackPoint) HasValidAltitude() bool {
	return tp.Altitude != nil && *tp.Altitude != 0
}
