// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/geolife/internal/ingest"
	"github.com/tomtom215/geolife/internal/models"
)

func TestGroup(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{16048, "16 048"},
		{9681756, "9 681 756"},
	}
	for _, tt := range tests {
		if got := group(tt.in); got != tt.want {
			t.Errorf("group(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPrinter_Lines(t *testing.T) {
	tests := []struct {
		name  string
		print func(p *Printer)
		want  string
	}{
		{
			name:  "heading",
			print: func(p *Printer) { p.Heading(3) },
			want:  "\n-------- Query 3 ----------\n",
		},
		{
			name:  "totals",
			print: func(p *Printer) { p.Totals(&models.Totals{Users: 182, Activities: 16048, TrackPoints: 9681756}) },
			want:  "There are 182 users, 16 048 activities and 9 681 756 trackpoints in the dataset\n",
		},
		{
			name:  "average",
			print: func(p *Printer) { p.AverageActivities(7.0 / 3.0) },
			want:  "The average number of activities per user is 2.33\n",
		},
		{
			name:  "distance",
			print: func(p *Printer) { p.Distance("112", 2008, "walk", 1.23456) },
			want:  "The total distance (walk) in 2008 by user 112 is 1.23 km\n",
		},
		{
			name:  "forbidden city",
			print: func(p *Printer) { p.ForbiddenCityVisitors([]string{"004", "018"}) },
			want:  "User 004 has trackpoints in the forbidden city\nUser 018 has trackpoints in the forbidden city\n",
		},
		{
			name:  "forbidden city empty",
			print: func(p *Printer) { p.ForbiddenCityVisitors(nil) },
			want:  "",
		},
		{
			name:  "no data",
			print: func(p *Printer) { p.NoData() },
			want:  NoDataMessage + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.print(New(&buf))
			if got := buf.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrinter_BusiestYear(t *testing.T) {
	tests := []struct {
		name     string
		in       *models.BusiestYear
		contains []string
	}{
		{
			name: "same year",
			in: &models.BusiestYear{
				MostActivities: models.YearCount{Year: 2008, Count: 5895},
				MostHours:      []models.YearHours{{Year: 2008, Hours: 9200.4}, {Year: 2009, Hours: 1200.6}},
			},
			contains: []string{
				"The year 2008 has the most activities with 5 895 activities",
				"The year 2008 has the most recorded hours with 9 200 hours",
				"Yes, this is also the year with most recorded hours!",
				"1201",
			},
		},
		{
			name: "different year",
			in: &models.BusiestYear{
				MostActivities: models.YearCount{Year: 2008, Count: 5},
				MostHours:      []models.YearHours{{Year: 2007, Hours: 5}},
			},
			contains: []string{
				"The year 2007 has the most recorded hours with 5 hours",
				"No, this is not the year with most recorded hours",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			New(&buf).BusiestYear(tt.in)
			out := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestPrinter_Tables(t *testing.T) {
	tests := []struct {
		name     string
		print    func(p *Printer)
		header   []string
		contains []string
		rows     int
	}{
		{
			name: "top active users",
			print: func(p *Printer) {
				p.TopActiveUsers([]models.UserActivityCount{
					{Rank: 1, UserID: "128", Activities: 2102},
					{Rank: 2, UserID: "153", Activities: 1793},
				})
			},
			header:   []string{"nr.", "user id", "activities"},
			contains: []string{"128", "2102", "153", "1793"},
			rows:     2,
		},
		{
			name:     "taxi users",
			print:    func(p *Printer) { p.TaxiUsers([]string{"010", "058"}) },
			header:   []string{"user id"},
			contains: []string{"Users who have taken a taxi", "010", "058"},
			rows:     2,
		},
		{
			name: "mode counts",
			print: func(p *Printer) {
				p.ModeCounts([]models.ModeCount{{Mode: "walk", Count: 480}, {Mode: "bus", Count: 199}})
			},
			header:   []string{"mode", "count"},
			contains: []string{"walk", "480", "bus", "199"},
			rows:     2,
		},
		{
			name: "altitude gain",
			print: func(p *Printer) {
				p.AltitudeGain([]models.UserAltitudeGain{{Rank: 1, UserID: "128", Meters: 2135}})
			},
			header:   []string{"nr.", "user id", "altitude"},
			contains: []string{"128", "2135"},
			rows:     1,
		},
		{
			name: "invalid activities",
			print: func(p *Printer) {
				p.InvalidActivities([]models.UserInvalidActivities{{UserID: "020", InvalidActivities: 1}})
			},
			header:   []string{"user_id", "invalid_activities"},
			contains: []string{"020"},
			rows:     1,
		},
		{
			name: "dominant modes",
			print: func(p *Printer) {
				p.DominantModes([]models.UserDominantMode{
					{UserID: "010", Mode: "taxi", Count: 2},
					{UserID: "112", Mode: "walk", Count: 2},
				})
			},
			header:   []string{"user id", "transportation mode", "count"},
			contains: []string{"010", "taxi", "112", "walk"},
			rows:     2,
		},
		{
			name:   "empty table keeps header",
			print:  func(p *Printer) { p.TopActiveUsers(nil) },
			header: []string{"nr.", "user id", "activities"},
			rows:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.print(New(&buf))
			out := buf.String()

			for _, h := range tt.header {
				if !strings.Contains(out, h) {
					t.Errorf("output missing header %q:\n%s", h, out)
				}
			}
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}

			// Header, separator, then one line per row.
			var tableLines int
			for _, line := range strings.Split(out, "\n") {
				if strings.HasPrefix(line, "|") {
					tableLines++
				}
			}
			if want := tt.rows + 2; tableLines != want {
				t.Errorf("table lines = %d, want %d:\n%s", tableLines, want, out)
			}
		})
	}
}

func TestPrinter_IngestSummary(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	stats := &ingest.Stats{
		Users:       182,
		Activities:  16048,
		TrackPoints: 9681756,
		Batches:     9682,
		StartTime:   start,
		EndTime:     start.Add(90 * time.Second),
	}

	var buf bytes.Buffer
	New(&buf).IngestSummary(stats)
	out := buf.String()

	for _, want := range []string{
		"Started: 2026-03-01 10:00:00",
		"Finished: 2026-03-01 10:01:30",
		"Total: 1m30s",
		"Inserted 182 users, 16 048 activities and 9 681 756 trackpoints in 9 682 batches",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
