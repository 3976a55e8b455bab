// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

package analytics

import (
	"sort"
	"time"

	"github.com/tomtom215/geolife/internal/models"
)

// DefaultGapThreshold is the largest allowed time between two consecutive
// points of a valid activity.
const DefaultGapThreshold = 5 * time.Minute

// InvalidActivitiesByUser flags an activity invalid when two of its
// consecutive points are more than threshold apart, and returns the number
// of distinct invalid activities per user sorted by user id. Users without
// an invalid activity are omitted.
func InvalidActivitiesByUser(points []models.TrackPoint, pairing Pairing, threshold time.Duration) []models.UserInvalidActivities {
	if threshold <= 0 {
		threshold = DefaultGapThreshold
	}

	invalid := make(map[string]map[string]struct{})
	ForEachPair(points, pairing, func(prev, next *models.TrackPoint) {
		if next.DateTime.Sub(prev.DateTime) <= threshold {
			return
		}
		set, ok := invalid[prev.UserID]
		if !ok {
			set = make(map[string]struct{})
			invalid[prev.UserID] = set
		}
		set[prev.ActivityID] = struct{}{}
	})

	rows := make([]models.UserInvalidActivities, 0, len(invalid))
	for user, set := range invalid {
		rows = append(rows, models.UserInvalidActivities{UserID: user, InvalidActivities: len(set)})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].UserID < rows[j].UserID })
	return rows
}
