// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

package analytics

import (
	"sort"

	"github.com/tomtom215/geolife/internal/models"
)

// modeTally counts modes for one user, remembering first-seen order.
type modeTally struct {
	order  []string
	counts map[string]int
}

// DominantModes returns, per user, the most frequent non-empty
// transportation mode and its count, sorted by user id. When two modes tie,
// the one seen first in activities wins.
func DominantModes(activities []models.Activity) []models.UserDominantMode {
	tallies := make(map[string]*modeTally)
	for i := range activities {
		a := &activities[i]
		if a.TransportationMode == "" {
			continue
		}
		t, ok := tallies[a.UserID]
		if !ok {
			t = &modeTally{counts: make(map[string]int)}
			tallies[a.UserID] = t
		}
		if _, seen := t.counts[a.TransportationMode]; !seen {
			t.order = append(t.order, a.TransportationMode)
		}
		t.counts[a.TransportationMode]++
	}

	rows := make([]models.UserDominantMode, 0, len(tallies))
	for user, t := range tallies {
		best := t.order[0]
		for _, mode := range t.order[1:] {
			if t.counts[mode] > t.counts[best] {
				best = mode
			}
		}
		rows = append(rows, models.UserDominantMode{UserID: user, Mode: best, Count: t.counts[best]})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].UserID < rows[j].UserID })
	return rows
}
