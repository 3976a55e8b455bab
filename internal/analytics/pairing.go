// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

package analytics

import (
	"fmt"
	"sort"

	"github.com/tomtom215/geolife/internal/models"
)

// Pairing selects how consecutive trackpoints are matched up.
type Pairing string

const (
	// PairingGrouped pairs points within each activity ordered by date_time.
	PairingGrouped Pairing = "grouped"

	// PairingPositional pairs neighbours in fetched order and skips pairs
	// whose activity ids differ.
	PairingPositional Pairing = "positional"
)

// ParsePairing converts a configuration value into a Pairing.
func ParsePairing(s string) (Pairing, error) {
	switch Pairing(s) {
	case PairingGrouped, PairingPositional:
		return Pairing(s), nil
	case "":
		return PairingGrouped, nil
	default:
		return "", fmt.Errorf("unknown pairing strategy %q", s)
	}
}

// ForEachPair calls fn for every pair of consecutive points belonging to the
// same activity. points is not modified.
func ForEachPair(points []models.TrackPoint, pairing Pairing, fn func(prev, next *models.TrackPoint)) {
	if pairing == PairingPositional {
		for i := 0; i+1 < len(points); i++ {
			if points[i].ActivityID != points[i+1].ActivityID {
				continue
			}
			fn(&points[i], &points[i+1])
		}
		return
	}

	for _, group := range groupByActivity(points) {
		for i := 0; i+1 < len(group); i++ {
			fn(group[i], group[i+1])
		}
	}
}

// groupByActivity returns one time-ordered group per activity, in order of
// the activity's first appearance.
func groupByActivity(points []models.TrackPoint) [][]*models.TrackPoint {
	index := make(map[string]int)
	var groups [][]*models.TrackPoint

	for i := range points {
		id := points[i].ActivityID
		g, ok := index[id]
		if !ok {
			g = len(groups)
			index[id] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], &points[i])
	}

	for _, group := range groups {
		sort.SliceStable(group, func(a, b int) bool {
			return group[a].DateTime.Before(group[b].DateTime)
		})
	}
	return groups
}
