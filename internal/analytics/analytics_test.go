// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

package analytics

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/paulmach/orb"

	"github.com/tomtom215/geolife/internal/models"
)

var base = time.Date(2008, 10, 23, 2, 53, 4, 0, time.UTC)

func alt(v float64) *float64 { return &v }

func point(user, activity string, lat, lon float64, at time.Duration, altitude *float64) models.TrackPoint {
	t := base.Add(at)
	return models.TrackPoint{
		ID:         fmt.Sprintf("%s_%s", activity, t.Format("20060102150405")),
		ActivityID: activity,
		UserID:     user,
		Lat:        lat,
		Lon:        lon,
		Altitude:   altitude,
		DateTime:   t,
	}
}

var pairings = []Pairing{PairingGrouped, PairingPositional}

func TestHaversine(t *testing.T) {
	oneDegree := EarthRadiusKm * math.Pi / 180

	tests := []struct {
		name string
		a, b orb.Point
		want float64
	}{
		{"same point", orb.Point{116.3, 39.9}, orb.Point{116.3, 39.9}, 0},
		{"one degree of latitude", orb.Point{116.3, 39.0}, orb.Point{116.3, 40.0}, oneDegree},
		{"one degree of longitude on the equator", orb.Point{0, 0}, orb.Point{1, 0}, oneDegree},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Haversine(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("Haversine() = %f, want %f", got, tt.want)
			}
			if back := Haversine(tt.b, tt.a); math.Abs(back-got) > 1e-9 {
				t.Errorf("Haversine not symmetric: %f vs %f", got, back)
			}
		})
	}
}

func TestTotalDistanceKm_SkipsActivityBoundary(t *testing.T) {
	a := point("112", "112_a", 39.9000, 116.3000, 0, nil)
	b := point("112", "112_a", 39.9100, 116.3100, time.Minute, nil)
	c := point("112", "112_b", 40.5000, 117.0000, 2*time.Minute, nil)
	points := []models.TrackPoint{a, b, c}

	want := Haversine(PointOf(&a), PointOf(&b))
	for _, p := range pairings {
		t.Run(string(p), func(t *testing.T) {
			got := TotalDistanceKm(points, p)
			if math.Abs(got-want) > 1e-9 {
				t.Errorf("TotalDistanceKm() = %f, want %f", got, want)
			}
		})
	}
}

func TestForEachPair_InterleavedActivities(t *testing.T) {
	points := []models.TrackPoint{
		point("1", "x", 0, 0, 0, nil),
		point("1", "y", 0, 0, time.Second, nil),
		point("1", "x", 0, 0, 2*time.Second, nil),
		point("1", "y", 0, 0, 3*time.Second, nil),
	}

	count := func(p Pairing) int {
		n := 0
		ForEachPair(points, p, func(prev, next *models.TrackPoint) {
			if prev.ActivityID != next.ActivityID {
				t.Errorf("%s paired across activities", p)
			}
			n++
		})
		return n
	}

	if got := count(PairingGrouped); got != 2 {
		t.Errorf("grouped pairs = %d, want 2", got)
	}
	if got := count(PairingPositional); got != 0 {
		t.Errorf("positional pairs = %d, want 0", got)
	}
}

func TestForEachPair_GroupedOrdersByTime(t *testing.T) {
	points := []models.TrackPoint{
		point("1", "x", 0, 0, 2*time.Second, nil),
		point("1", "x", 0, 0, 0, nil),
		point("1", "x", 0, 0, time.Second, nil),
	}

	var gaps []time.Duration
	ForEachPair(points, PairingGrouped, func(prev, next *models.TrackPoint) {
		gaps = append(gaps, next.DateTime.Sub(prev.DateTime))
	})

	if len(gaps) != 2 || gaps[0] != time.Second || gaps[1] != time.Second {
		t.Errorf("gaps = %v, want [1s 1s]", gaps)
	}
	if !points[0].DateTime.Equal(base.Add(2 * time.Second)) {
		t.Error("input slice was reordered")
	}
}

func TestParsePairing(t *testing.T) {
	tests := []struct {
		in      string
		want    Pairing
		wantErr bool
	}{
		{"grouped", PairingGrouped, false},
		{"positional", PairingPositional, false},
		{"", PairingGrouped, false},
		{"sideways", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePairing(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePairing(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParsePairing(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAltitudeGainByUser(t *testing.T) {
	points := []models.TrackPoint{
		point("1", "1_a", 0, 0, 0, alt(100)),
		point("1", "1_a", 0, 0, time.Second, alt(150)),
		point("1", "1_a", 0, 0, 2*time.Second, alt(130)),
		point("1", "1_a", 0, 0, 3*time.Second, nil),
		point("1", "1_a", 0, 0, 4*time.Second, alt(500)),
		point("2", "2_a", 0, 0, 0, alt(0)),
		point("2", "2_a", 0, 0, time.Second, alt(40)),
		point("3", "3_a", 0, 0, 0, alt(10)),
	}

	for _, p := range pairings {
		t.Run(string(p), func(t *testing.T) {
			gains := AltitudeGainByUser(points, p)

			if got := gains["1"]; got != 30 {
				t.Errorf("user 1 gain = %f, want 30", got)
			}
			if got, ok := gains["2"]; !ok || got != 0 {
				t.Errorf("user 2 gain = %f (present %v), want 0 and present", got, ok)
			}
			if _, ok := gains["3"]; ok {
				t.Error("user 3 has no pair and should be absent")
			}
		})
	}
}

func TestTopAltitudeGain_Shape(t *testing.T) {
	gains := make(map[string]float64)
	for i := 0; i < 25; i++ {
		gains[fmt.Sprintf("%03d", i)] = float64(i*10) + 0.4
	}

	rows := TopAltitudeGain(gains, 20)
	if len(rows) != 20 {
		t.Fatalf("len = %d, want 20", len(rows))
	}
	for i, row := range rows {
		if row.Rank != i+1 {
			t.Errorf("row %d rank = %d", i, row.Rank)
		}
		if i > 0 && row.Meters >= rows[i-1].Meters {
			t.Errorf("row %d not strictly descending: %f after %f", i, row.Meters, rows[i-1].Meters)
		}
	}
	if rows[0].UserID != "024" || rows[0].Meters != 240 {
		t.Errorf("top row = %+v, want user 024 with 240", rows[0])
	}
}

func TestInvalidActivitiesByUser(t *testing.T) {
	points := []models.TrackPoint{
		// 6 minute gap: invalid.
		point("1", "1_a", 0, 0, 0, nil),
		point("1", "1_a", 0, 0, 6*time.Minute, nil),
		point("1", "1_a", 0, 0, 20*time.Minute, nil),
		// 4 minute gap: valid.
		point("2", "2_a", 0, 0, 0, nil),
		point("2", "2_a", 0, 0, 4*time.Minute, nil),
		// Gap across activities is ignored.
		point("3", "3_a", 0, 0, 0, nil),
		point("3", "3_b", 0, 0, time.Hour, nil),
		point("1", "1_b", 0, 0, 0, nil),
		point("1", "1_b", 0, 0, 10*time.Minute, nil),
	}

	for _, p := range pairings {
		t.Run(string(p), func(t *testing.T) {
			got := InvalidActivitiesByUser(points, p, 5*time.Minute)
			want := []models.UserInvalidActivities{{UserID: "1", InvalidActivities: 2}}
			if len(got) != len(want) || got[0] != want[0] {
				t.Errorf("InvalidActivitiesByUser() = %+v, want %+v", got, want)
			}
		})
	}
}

func TestInvalidActivitiesByUser_ExactThreshold(t *testing.T) {
	points := []models.TrackPoint{
		point("1", "1_a", 0, 0, 0, nil),
		point("1", "1_a", 0, 0, 5*time.Minute, nil),
		point("1", "1_a", 0, 0, 10*time.Minute, nil),
		point("2", "2_a", 0, 0, 0, nil),
		point("2", "2_a", 0, 0, 5*time.Minute+time.Second, nil),
	}

	for _, p := range pairings {
		t.Run(string(p), func(t *testing.T) {
			got := InvalidActivitiesByUser(points, p, 5*time.Minute)
			if len(got) != 1 || got[0].UserID != "2" || got[0].InvalidActivities != 1 {
				t.Errorf("InvalidActivitiesByUser() = %+v, want only user 2 with 1 invalid activity", got)
			}
		})
	}

	if got := InvalidActivitiesByUser(points[:3], PairingGrouped, 0); len(got) != 0 {
		t.Errorf("default threshold flagged a gap of exactly %v: %+v", DefaultGapThreshold, got)
	}
}

func TestDominantModes(t *testing.T) {
	acts := []models.Activity{
		{UserID: "2", TransportationMode: "bus"},
		{UserID: "1", TransportationMode: "walk"},
		{UserID: "1", TransportationMode: "bike"},
		{UserID: "1", TransportationMode: "bike"},
		{UserID: "1", TransportationMode: ""},
		{UserID: "1", TransportationMode: ""},
		{UserID: "1", TransportationMode: ""},
		{UserID: "2", TransportationMode: "taxi"},
		{UserID: "3", TransportationMode: ""},
	}

	got := DominantModes(acts)
	want := []models.UserDominantMode{
		{UserID: "1", Mode: "bike", Count: 2},
		{UserID: "2", Mode: "bus", Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("DominantModes() = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestWithinForbiddenCity(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		want     bool
	}{
		{"center", 39.9165, 116.3975, true},
		{"min corner", 39.916, 116.397, true},
		{"max corner", 39.917, 116.398, true},
		{"north of box", 39.9171, 116.3975, false},
		{"west of box", 39.9165, 116.3969, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tp := point("1", "1_a", tt.lat, tt.lon, 0, nil)
			if got := Within(ForbiddenCity, &tp); got != tt.want {
				t.Errorf("Within() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUsersWithin(t *testing.T) {
	points := []models.TrackPoint{
		point("9", "9_a", 39.9165, 116.3975, 0, nil),
		point("9", "9_a", 39.9166, 116.3976, time.Second, nil),
		point("3", "3_a", 39.917, 116.398, 0, nil),
		point("1", "1_a", 39.916, 116.397, 0, nil),
		point("4", "4_a", 39.9171, 116.3975, 0, nil),
		point("5", "5_a", 39.9165, 116.3969, 0, nil),
	}

	got := UsersWithin(ForbiddenCity, points)
	want := []string{"1", "3", "9"}
	if len(got) != len(want) {
		t.Fatalf("UsersWithin() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("UsersWithin()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if got := UsersWithin(ForbiddenCity, nil); len(got) != 0 {
		t.Errorf("UsersWithin(nil) = %v, want empty", got)
	}
}

func TestPrefilterPadKeepsEdges(t *testing.T) {
	envelope := ForbiddenCity.Pad(PrefilterPad)
	for _, p := range []orb.Point{ForbiddenCity.Min, ForbiddenCity.Max} {
		if !envelope.Contains(p) {
			t.Errorf("padded envelope %v does not contain corner %v", envelope, p)
		}
	}
	if envelope.Contains(orb.Point{116.3969, 39.9165}) {
		t.Error("padded envelope contains a point 1e-4 outside the bound")
	}
}

func TestRankTop(t *testing.T) {
	items := []int{3, 1, 2, 5, 4}
	got := RankTop(items, 3, func(a, b int) bool { return a > b })
	if len(got) != 3 || got[0] != 5 || got[1] != 4 || got[2] != 3 {
		t.Errorf("RankTop() = %v", got)
	}
	if all := RankTop([]int{2, 1}, 0, func(a, b int) bool { return a < b }); len(all) != 2 {
		t.Errorf("RankTop with no limit = %v", all)
	}
}
