// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

package config

import (
	"path/filepath"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Dataset   DatasetConfig   `koanf:"dataset"`
	Database  DatabaseConfig  `koanf:"database"`
	Ingest    IngestConfig    `koanf:"ingest"`
	Analytics AnalyticsConfig `koanf:"analytics"`
	Logging   LoggingConfig   `koanf:"logging"`
	Metrics   MetricsConfig   `koanf:"metrics"`
}

// DatasetConfig describes the on-disk Geolife layout.
type DatasetConfig struct {
	// Root contains Data/ and labeled_ids.txt.
	Root string `koanf:"root" validate:"required"`

	// MaxPlotRows discards plot files with more data rows than this.
	MaxPlotRows int `koanf:"max_plot_rows" validate:"min=1"`

	PlotHeaderLines  int `koanf:"plot_header_lines" validate:"min=0"`
	LabelHeaderLines int `koanf:"label_header_lines" validate:"min=0"`
}

// DataDir returns the directory holding one folder per user.
func (d DatasetConfig) DataDir() string {
	return filepath.Join(d.Root, "Data")
}

// LabeledIDsPath returns the path of the labeled user manifest.
func (d DatasetConfig) LabeledIDsPath() string {
	return filepath.Join(d.Root, "labeled_ids.txt")
}

// DatabaseConfig holds DuckDB settings
type DatabaseConfig struct {
	Path                   string `koanf:"path" validate:"required"`
	MaxMemory              string `koanf:"max_memory" validate:"required"`
	Threads                int    `koanf:"threads" validate:"min=0"` // 0 = use NumCPU
	PreserveInsertionOrder bool   `koanf:"preserve_insertion_order"`
	SkipIndexes            bool   `koanf:"skip_indexes"` // tests skip index creation

	// QueryTimeout bounds every statement issued without its own deadline.
	QueryTimeout time.Duration `koanf:"query_timeout" validate:"gte=0"`
}

// IngestConfig controls the load phase.
type IngestConfig struct {
	// BatchSize is the number of trackpoints written per insert batch.
	BatchSize int `koanf:"batch_size" validate:"min=1,max=100000"`

	// Progress renders a progress bar on stderr while parsing files.
	Progress bool `koanf:"progress"`

	// LedgerPath is the BadgerDB directory holding the last run summary.
	// Empty keeps the summary in memory only.
	LedgerPath string `koanf:"ledger_path"`
}

// AnalyticsConfig parameterises the query phase.
type AnalyticsConfig struct {
	// Pairing selects how consecutive trackpoints are paired: "grouped"
	// pairs within each activity ordered by time, "positional" pairs over
	// the fetched row order and skips activity boundaries.
	Pairing string `koanf:"pairing" validate:"oneof=grouped positional"`

	// GapThreshold marks an activity invalid when two consecutive points
	// are further apart than this.
	GapThreshold time.Duration `koanf:"gap_threshold" validate:"gt=0"`

	TopN int `koanf:"top_n" validate:"min=1,max=1000"`

	DistanceUser string `koanf:"distance_user" validate:"required"`
	DistanceYear int    `koanf:"distance_year" validate:"min=1900,max=2100"`
	DistanceMode string `koanf:"distance_mode" validate:"required"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// MetricsConfig controls Prometheus export for batch runs.
type MetricsConfig struct {
	// TextfilePath receives the metrics in Prometheus text format at exit,
	// for the node_exporter textfile collector. Empty disables export.
	TextfilePath string `koanf:"textfile_path"`
}

// Load loads configuration from defaults, config file and environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
