// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const plotHeader = "Geolife trajectory\nWGS 84\nAltitude is in Feet\nReserved 3\n0,2,255,My Track,0,0,2,8421376\n0\n"

// fixture builds a dataset tree under t.TempDir and returns Options for it.
type fixture struct {
	t    *testing.T
	root string
}

func newFixture(t *testing.T, labeled ...string) *fixture {
	t.Helper()
	root := t.TempDir()
	f := &fixture{t: t, root: root}
	f.write("labeled_ids.txt", strings.Join(labeled, "\n")+"\n")
	if err := os.MkdirAll(filepath.Join(root, "Data"), 0o750); err != nil {
		t.Fatal(err)
	}
	return f
}

func (f *fixture) write(rel, content string) {
	f.t.Helper()
	path := filepath.Join(f.root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		f.t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		f.t.Fatal(err)
	}
}

// plot writes Data/<user>/Trajectory/<stem>.plt with the given rows.
func (f *fixture) plot(user, stem string, rows ...string) {
	f.t.Helper()
	f.write(filepath.Join("Data", user, "Trajectory", stem+".plt"), plotHeader+strings.Join(rows, "\n")+"\n")
}

// labels writes Data/<user>/labels.txt with the given rows.
func (f *fixture) labels(user string, rows ...string) {
	f.t.Helper()
	f.write(filepath.Join("Data", user, "labels.txt"), "Start Time\tEnd Time\tTransportation Mode\n"+strings.Join(rows, "\n")+"\n")
}

func (f *fixture) options() Options {
	return Options{
		DataDir:          filepath.Join(f.root, "Data"),
		LabeledIDsPath:   filepath.Join(f.root, "labeled_ids.txt"),
		MaxPlotRows:      DefaultMaxPlotRows,
		PlotHeaderLines:  6,
		LabelHeaderLines: 1,
	}
}

// plotRowAt formats a .plt row at the given clock time on 2008-10-23.
func plotRowAt(lat, lon float64, altitude int, clock string) string {
	return fmt.Sprintf("%.6f,%.6f,0,%d,39744.1201851852,2008-10-23,%s", lat, lon, altitude, clock)
}
