// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

package dataset

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"
)

// labelRow is one line of labels.txt.
type labelRow struct {
	Start time.Time
	End   time.Time
	Mode  string
}

// readLabelsFile reads a tab-separated labels.txt after skipping headerLines.
func readLabelsFile(path string, headerLines int) ([]labelRow, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the dataset walk
	if err != nil {
		return nil, fmt.Errorf("open labels %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var rows []labelRow
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		if line <= headerLines {
			continue
		}
		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}

		row, err := parseLabelLine(text)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read labels %s: %w", path, err)
	}
	return rows, nil
}

func parseLabelLine(text string) (labelRow, error) {
	fields := strings.Split(text, "\t")
	if len(fields) < 3 {
		return labelRow{}, fmt.Errorf("expected 3 tab-separated fields, got %d", len(fields))
	}

	start, err := time.Parse(labelTimeLayout, strings.TrimSpace(fields[0]))
	if err != nil {
		return labelRow{}, fmt.Errorf("start time: %w", err)
	}
	end, err := time.Parse(labelTimeLayout, strings.TrimSpace(fields[1]))
	if err != nil {
		return labelRow{}, fmt.Errorf("end time: %w", err)
	}

	return labelRow{Start: start, End: end, Mode: strings.TrimSpace(fields[2])}, nil
}
