// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/geolife/internal/models"
)

// Column positions in a .plt row: lat, lon, unused, altitude, days, date, time.
const (
	colLat      = 0
	colLon      = 1
	colAltitude = 3
	colDate     = 5
	colTime     = 6
	plotColumns = 7
)

// plotRow is one GPS fix of a plot file.
type plotRow struct {
	Lat      float64
	Lon      float64
	Altitude *float64
	At       time.Time
}

// readPlotFile reads a .plt file. Files with more than maxRows data rows
// return no rows and no error.
func readPlotFile(path string, headerLines, maxRows int) ([]plotRow, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the dataset walk
	if err != nil {
		return nil, fmt.Errorf("open plot %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	br := bufio.NewReader(f)
	for i := 0; i < headerLines; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, nil
			}
			return nil, fmt.Errorf("read plot header %s: %w", path, err)
		}
	}

	r := csv.NewReader(br)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read plot %s: %w", path, err)
	}
	if len(records) > maxRows {
		return nil, nil
	}

	rows := make([]plotRow, 0, len(records))
	for i, rec := range records {
		row, err := parsePlotRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, headerLines+i+1, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parsePlotRecord(rec []string) (plotRow, error) {
	if len(rec) < plotColumns {
		return plotRow{}, fmt.Errorf("expected %d fields, got %d", plotColumns, len(rec))
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(rec[colLat]), 64)
	if err != nil {
		return plotRow{}, fmt.Errorf("latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(rec[colLon]), 64)
	if err != nil {
		return plotRow{}, fmt.Errorf("longitude: %w", err)
	}
	alt, err := strconv.ParseFloat(strings.TrimSpace(rec[colAltitude]), 64)
	if err != nil {
		return plotRow{}, fmt.Errorf("altitude: %w", err)
	}

	stamp := strings.TrimSpace(rec[colDate]) + " " + strings.TrimSpace(rec[colTime])
	at, err := time.Parse(plotDateLayout+" "+plotTimeLayout, stamp)
	if err != nil {
		return plotRow{}, fmt.Errorf("timestamp: %w", err)
	}

	row := plotRow{Lat: lat, Lon: lon, At: at}
	if alt != models.InvalidAltitude {
		row.Altitude = &alt
	}
	return row, nil
}
