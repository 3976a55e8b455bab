// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

package dataset

import (
	"testing"
	"time"
)

func TestIDs(t *testing.T) {
	at := time.Date(2008, 10, 23, 2, 53, 4, 0, time.UTC)

	if got := ActivityID("010", at); got != "010_20081023025304" {
		t.Errorf("ActivityID = %q", got)
	}
	if got := PlotActivityID("010", "/data/Data/010/Trajectory/20081023025304.plt"); got != "010_20081023025304" {
		t.Errorf("PlotActivityID = %q", got)
	}
	if got := TrackPointID("010_20081023025304", at.Add(6*time.Second)); got != "010_20081023025304_20081023025310" {
		t.Errorf("TrackPointID = %q", got)
	}
	if got := DateDays(at); got != "20081023" {
		t.Errorf("DateDays = %q", got)
	}

	// Same inputs, same ids.
	if ActivityID("010", at) != ActivityID("010", at) {
		t.Error("ActivityID is not deterministic")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want RecordSource
	}{
		{"Data/010/labels.txt", SourceLabels},
		{"Data/010/Trajectory/20081023025304.plt", SourcePlot},
		{"Data/010/Trajectory/20081023025304.PLT", SourcePlot},
		{"Data/010/Trajectory/.DS_Store", SourceIgnored},
		{"Data/010/notes.txt", SourceIgnored},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := Classify(tt.path); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
