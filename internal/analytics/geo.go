// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

package analytics

import (
	"math"
	"sort"

	"github.com/paulmach/orb"

	"github.com/tomtom215/geolife/internal/models"
)

// EarthRadiusKm is the mean Earth radius (IUGG) used for great-circle distance.
const EarthRadiusKm = 6371.0088

// ForbiddenCity is the bounding box of the Forbidden City in Beijing.
// Bounds are inclusive on every side.
var ForbiddenCity = orb.Bound{
	Min: orb.Point{116.397, 39.916},
	Max: orb.Point{116.398, 39.917},
}

// PointOf returns the trackpoint position as an orb point (lon, lat).
func PointOf(tp *models.TrackPoint) orb.Point {
	return orb.Point{tp.Lon, tp.Lat}
}

// Haversine returns the great-circle distance between a and b in kilometers.
func Haversine(a, b orb.Point) float64 {
	lat1 := a.Lat() * math.Pi / 180.0
	lat2 := b.Lat() * math.Pi / 180.0
	dLat := lat2 - lat1
	dLon := (b.Lon() - a.Lon()) * math.Pi / 180.0

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

// TotalDistanceKm sums the haversine distance over every consecutive pair
// of the same activity.
func TotalDistanceKm(points []models.TrackPoint, pairing Pairing) float64 {
	total := 0.0
	ForEachPair(points, pairing, func(prev, next *models.TrackPoint) {
		total += Haversine(PointOf(prev), PointOf(next))
	})
	return total
}

// Within reports whether tp lies inside bound.
func Within(bound orb.Bound, tp *models.TrackPoint) bool {
	return bound.Contains(PointOf(tp))
}

// PrefilterPad is the margin added to a bound for a coarse store-side filter.
// Membership is decided by Within.
const PrefilterPad = 1e-9

// UsersWithin returns the distinct users owning a point inside bound,
// ascending.
func UsersWithin(bound orb.Bound, points []models.TrackPoint) []string {
	seen := make(map[string]struct{})
	for i := range points {
		if Within(bound, &points[i]) {
			seen[points[i].UserID] = struct{}{}
		}
	}

	users := make([]string, 0, len(seen))
	for user := range seen {
		users = append(users, user)
	}
	sort.Strings(users)
	return users
}
