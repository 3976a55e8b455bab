// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

package analytics

import (
	"math"

	"github.com/tomtom215/geolife/internal/models"
)

// AltitudeGainByUser sums next-prev altitude over consecutive pairs of the
// same activity, per user. Pairs where either altitude is missing or zero
// contribute nothing but still register the user with a zero total.
//
// The sum is signed: descents reduce the total.
func AltitudeGainByUser(points []models.TrackPoint, pairing Pairing) map[string]float64 {
	gains := make(map[string]float64)
	ForEachPair(points, pairing, func(prev, next *models.TrackPoint) {
		if _, ok := gains[prev.UserID]; !ok {
			gains[prev.UserID] = 0
		}
		if !prev.HasValidAltitude() || !next.HasValidAltitude() {
			return
		}
		gains[prev.UserID] += *next.Altitude - *prev.Altitude
	})
	return gains
}

// TopAltitudeGain ranks users by gain, highest first, and keeps at most
// limit rows. Gains are rounded half to even.
func TopAltitudeGain(gains map[string]float64, limit int) []models.UserAltitudeGain {
	rows := make([]models.UserAltitudeGain, 0, len(gains))
	for user, gain := range gains {
		rows = append(rows, models.UserAltitudeGain{UserID: user, Meters: gain})
	}

	rows = RankTop(rows, limit, func(a, b models.UserAltitudeGain) bool {
		if a.Meters != b.Meters {
			return a.Meters > b.Meters
		}
		return a.UserID < b.UserID
	})

	for i := range rows {
		rows[i].Rank = i + 1
		rows[i].Meters = math.RoundToEven(rows[i].Meters)
	}
	return rows
}
