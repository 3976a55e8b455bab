// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

package dataset

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/geolife/internal/models"
)

func parseOrFatal(t *testing.T, opts Options) *Collections {
	t.Helper()
	cols, err := Parse(context.Background(), opts)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return cols
}

func TestParse_UsersAndLabeledFlag(t *testing.T) {
	f := newFixture(t, "010")
	f.plot("000", "20081023025304", plotRowAt(39.984702, 116.318417, 492, "02:53:04"))
	f.labels("010", "2008/10/23 02:53:04\t2008/10/23 03:10:00\tbus")

	cols := parseOrFatal(t, f.options())

	want := []models.User{
		{ID: "000", HasLabels: false},
		{ID: "010", HasLabels: true},
	}
	if !reflect.DeepEqual(cols.Users, want) {
		t.Errorf("Users = %+v, want %+v", cols.Users, want)
	}
}

func TestParse_PlotCreatesActivity(t *testing.T) {
	f := newFixture(t)
	f.plot("000", "20081023025304",
		plotRowAt(39.984702, 116.318417, 492, "02:53:04"),
		plotRowAt(39.984683, 116.318450, 491, "02:53:10"),
		plotRowAt(39.984686, 116.318417, 490, "02:53:15"),
	)

	cols := parseOrFatal(t, f.options())

	if len(cols.Activities) != 1 {
		t.Fatalf("Activities = %d, want 1", len(cols.Activities))
	}
	act := cols.Activities[0]
	if act.ID != "000_20081023025304" || act.UserID != "000" || act.TransportationMode != "" {
		t.Errorf("activity = %+v", act)
	}
	if !act.StartDateTime.Equal(time.Date(2008, 10, 23, 2, 53, 4, 0, time.UTC)) {
		t.Errorf("StartDateTime = %v", act.StartDateTime)
	}
	if !act.EndDateTime.Equal(time.Date(2008, 10, 23, 2, 53, 15, 0, time.UTC)) {
		t.Errorf("EndDateTime = %v", act.EndDateTime)
	}

	if len(cols.TrackPoints) != 3 {
		t.Fatalf("TrackPoints = %d, want 3", len(cols.TrackPoints))
	}
	tp := cols.TrackPoints[1]
	if tp.ID != "000_20081023025304_20081023025310" {
		t.Errorf("ID = %q", tp.ID)
	}
	if tp.ActivityID != act.ID || tp.UserID != "000" || tp.DateDays != "20081023" {
		t.Errorf("trackpoint = %+v", tp)
	}
	if math.Abs(tp.Lat-39.984683) > 1e-9 || math.Abs(tp.Lon-116.318450) > 1e-9 {
		t.Errorf("position = %f,%f", tp.Lat, tp.Lon)
	}
	if tp.Altitude == nil || math.Abs(*tp.Altitude-491) > 1e-9 {
		t.Errorf("Altitude = %v, want 491", tp.Altitude)
	}
}

func TestParse_AltitudeSentinel(t *testing.T) {
	f := newFixture(t)
	f.plot("000", "20081023025304",
		plotRowAt(39.9847, 116.3184, -777, "02:53:04"),
		plotRowAt(39.9848, 116.3185, 0, "02:53:10"),
	)

	cols := parseOrFatal(t, f.options())
	if len(cols.TrackPoints) != 2 {
		t.Fatalf("TrackPoints = %d, want 2", len(cols.TrackPoints))
	}

	if cols.TrackPoints[0].Altitude != nil || cols.TrackPoints[0].HasValidAltitude() {
		t.Errorf("sentinel altitude = %v, want nil", cols.TrackPoints[0].Altitude)
	}
	if cols.TrackPoints[1].Altitude == nil {
		t.Error("zero altitude stored as nil")
	}
	if cols.TrackPoints[1].HasValidAltitude() {
		t.Error("zero altitude reported as valid")
	}
}

func TestParse_LabelModeWinsOverPlotDefault(t *testing.T) {
	f := newFixture(t, "010")
	f.labels("010",
		"2008/10/23 02:53:04\t2008/10/23 03:10:00\tbus",
		"2008/10/24 08:00:00\t2008/10/24 08:30:00\twalk",
	)
	f.plot("010", "20081023025304",
		plotRowAt(39.9847, 116.3184, 100, "02:53:04"),
		plotRowAt(39.9848, 116.3185, 101, "02:55:00"),
	)

	cols := parseOrFatal(t, f.options())
	if len(cols.Activities) != 2 {
		t.Fatalf("Activities = %+v, want 2", cols.Activities)
	}

	byID := make(map[string]models.Activity)
	for _, a := range cols.Activities {
		byID[a.ID] = a
	}

	bus, ok := byID["010_20081023025304"]
	if !ok {
		t.Fatal("bus activity missing")
	}
	if bus.TransportationMode != "bus" {
		t.Errorf("bus mode = %q", bus.TransportationMode)
	}
	if !bus.EndDateTime.Equal(time.Date(2008, 10, 23, 3, 10, 0, 0, time.UTC)) {
		t.Errorf("bus EndDateTime = %v, want label end", bus.EndDateTime)
	}

	if walk := byID["010_20081024080000"]; walk.TransportationMode != "walk" {
		t.Errorf("walk activity = %+v", walk)
	}

	for _, tp := range cols.TrackPoints {
		if tp.ActivityID != "010_20081023025304" {
			t.Errorf("trackpoint %s in activity %s", tp.ID, tp.ActivityID)
		}
	}
}

func TestParse_OversizedPlotDiscarded(t *testing.T) {
	tests := []struct {
		name       string
		rows       int
		wantPoints int
		wantActs   int
	}{
		{name: "at cap", rows: 3, wantPoints: 3, wantActs: 1},
		{name: "over cap", rows: 4, wantPoints: 0, wantActs: 0},
	}

	clocks := []string{"02:53:04", "02:53:10", "02:53:15", "02:53:20"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			rows := make([]string, 0, tt.rows)
			for i := 0; i < tt.rows; i++ {
				rows = append(rows, plotRowAt(39.98, 116.31, 100, clocks[i]))
			}
			f.plot("000", "20081023025304", rows...)

			opts := f.options()
			opts.MaxPlotRows = 3
			cols := parseOrFatal(t, opts)

			if len(cols.TrackPoints) != tt.wantPoints {
				t.Errorf("TrackPoints = %d, want %d", len(cols.TrackPoints), tt.wantPoints)
			}
			if len(cols.Activities) != tt.wantActs {
				t.Errorf("Activities = %d, want %d", len(cols.Activities), tt.wantActs)
			}
			if len(cols.Users) != 1 {
				t.Errorf("Users = %d, want 1", len(cols.Users))
			}
		})
	}
}

func TestParse_Deterministic(t *testing.T) {
	f := newFixture(t, "001")
	f.plot("000", "20081023025304", plotRowAt(39.98, 116.31, 100, "02:53:04"), plotRowAt(39.99, 116.32, 120, "02:53:10"))
	f.plot("000", "20081024100000", plotRowAt(39.90, 116.40, 80, "10:00:00"))
	f.plot("001", "20081101120000", plotRowAt(40.00, 116.30, -777, "12:00:00"))
	f.labels("001", "2008/11/01 12:00:00\t2008/11/01 12:30:00\ttaxi")

	first := parseOrFatal(t, f.options())
	second := parseOrFatal(t, f.options())

	if !reflect.DeepEqual(first.Users, second.Users) {
		t.Errorf("Users differ: %+v vs %+v", first.Users, second.Users)
	}
	if !reflect.DeepEqual(first.Activities, second.Activities) {
		t.Errorf("Activities differ: %+v vs %+v", first.Activities, second.Activities)
	}
	if !reflect.DeepEqual(first.TrackPoints, second.TrackPoints) {
		t.Errorf("TrackPoints differ: %+v vs %+v", first.TrackPoints, second.TrackPoints)
	}
}

func TestParse_MalformedRowAborts(t *testing.T) {
	f := newFixture(t)
	f.plot("000", "20081023025304",
		plotRowAt(39.98, 116.31, 100, "02:53:04"),
		"39.98,116.31,0,100,39744.12,2008-10-23,not-a-time",
	)

	_, err := Parse(context.Background(), f.options())
	if err == nil || !strings.Contains(err.Error(), "20081023025304.plt:8") {
		t.Errorf("Parse() error = %v, want file and line 8", err)
	}
}

func TestParse_MalformedLabelAborts(t *testing.T) {
	f := newFixture(t, "010")
	f.labels("010", "2008-10-23 02:53:04\t2008/10/23 03:10:00\tbus")

	_, err := Parse(context.Background(), f.options())
	if err == nil || !strings.Contains(err.Error(), "labels.txt:2") {
		t.Errorf("Parse() error = %v, want labels.txt:2", err)
	}
}

func TestParse_MissingDataDir(t *testing.T) {
	opts := Options{
		DataDir:        filepath.Join(t.TempDir(), "missing"),
		LabeledIDsPath: filepath.Join(t.TempDir(), "labeled_ids.txt"),
	}

	if _, err := Parse(context.Background(), opts); !errors.Is(err, ErrDatasetNotFound) {
		t.Errorf("Parse() error = %v, want ErrDatasetNotFound", err)
	}
}

func TestParse_MissingManifest(t *testing.T) {
	f := newFixture(t)
	opts := f.options()
	opts.LabeledIDsPath = filepath.Join(f.root, "nope.txt")

	_, err := Parse(context.Background(), opts)
	if err == nil {
		t.Fatal("Parse() error = nil, want missing manifest failure")
	}
	if errors.Is(err, ErrDatasetNotFound) {
		t.Errorf("Parse() error = %v, must not be ErrDatasetNotFound", err)
	}
}

func TestParse_SkipsStrayFiles(t *testing.T) {
	f := newFixture(t)
	f.write(filepath.Join("Data", "000", "Trajectory", ".DS_Store"), "junk")
	f.write(filepath.Join("Data", "README"), "notes")
	f.plot("000", "20081023025304", plotRowAt(39.98, 116.31, 100, "02:53:04"))

	var seen []RecordSource
	opts := f.options()
	opts.OnFile = func(_ string, source RecordSource) {
		seen = append(seen, source)
	}

	cols := parseOrFatal(t, opts)

	if cols.Files != 3 || len(seen) != 3 {
		t.Errorf("Files = %d, OnFile calls = %d; want 3, 3", cols.Files, len(seen))
	}
	if len(cols.TrackPoints) != 1 {
		t.Errorf("TrackPoints = %d, want 1", len(cols.TrackPoints))
	}

	n, err := CountFiles(opts.DataDir)
	if err != nil {
		t.Fatalf("CountFiles() error = %v", err)
	}
	if n != cols.Files {
		t.Errorf("CountFiles() = %d, want %d", n, cols.Files)
	}
}

func TestParse_ContextCanceled(t *testing.T) {
	f := newFixture(t)
	f.plot("000", "20081023025304", plotRowAt(39.98, 116.31, 100, "02:53:04"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Parse(ctx, f.options()); !errors.Is(err, context.Canceled) {
		t.Errorf("Parse() error = %v, want context.Canceled", err)
	}
}
