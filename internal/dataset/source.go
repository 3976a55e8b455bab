// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

package dataset

import (
	"path/filepath"
	"strings"
)

// RecordSource identifies which reader handles a dataset file.
type RecordSource int

const (
	// SourceIgnored is any file the parser does not understand.
	SourceIgnored RecordSource = iota
	// SourceLabels is a per-user labels.txt.
	SourceLabels
	// SourcePlot is a .plt trajectory file.
	SourcePlot
)

const labelsFileName = "labels.txt"

// String returns the source name used in logs.
func (s RecordSource) String() string {
	switch s {
	case SourceLabels:
		return "labels"
	case SourcePlot:
		return "plot"
	default:
		return "ignored"
	}
}

// Classify returns the source of the file at path.
func Classify(path string) RecordSource {
	name := filepath.Base(path)
	switch {
	case name == labelsFileName:
		return SourceLabels
	case strings.EqualFold(filepath.Ext(name), ".plt"):
		return SourcePlot
	default:
		return SourceIgnored
	}
}
