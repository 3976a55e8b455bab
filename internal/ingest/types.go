// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

package ingest

import "time"

// Stats holds statistics about an ingestion run.
type Stats struct {
	// RunID identifies the run in logs and in the ledger.
	RunID string `json:"run_id"`

	// DatasetRoot is the dataset directory that was loaded.
	DatasetRoot string `json:"dataset_root"`

	// Files is the number of files visited, including ignored ones.
	Files int `json:"files"`

	Users       int `json:"users"`
	Activities  int `json:"activities"`
	TrackPoints int `json:"trackpoints"`

	// Batches is the number of trackpoint batches committed.
	Batches int `json:"batches"`

	// StartTime is when the run started.
	StartTime time.Time `json:"start_time"`

	// EndTime is when the run completed (zero if still running).
	EndTime time.Time `json:"end_time"`
}

// Duration returns the duration of the run.
func (s *Stats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// Records returns the total number of rows written.
func (s *Stats) Records() int {
	return s.Users + s.Activities + s.TrackPoints
}

// RecordsPerSecond returns the write rate.
func (s *Stats) RecordsPerSecond() float64 {
	duration := s.Duration().Seconds()
	if duration == 0 {
		return 0
	}
	return float64(s.Records()) / duration
}
