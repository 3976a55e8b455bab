// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config file locations searched in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/geolife/config.yaml",
	"/etc/geolife/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Root:             "../dataset",
			MaxPlotRows:      2500,
			PlotHeaderLines:  6,
			LabelHeaderLines: 1,
		},
		Database: DatabaseConfig{
			Path:                   "./data/geolife.duckdb",
			MaxMemory:              "2GB",
			Threads:                0,
			PreserveInsertionOrder: true, // positional pairing depends on it
			QueryTimeout:           5 * time.Minute,
		},
		Ingest: IngestConfig{
			BatchSize:  1000,
			Progress:   true,
			LedgerPath: "",
		},
		Analytics: AnalyticsConfig{
			Pairing:      "grouped",
			GapThreshold: 5 * time.Minute,
			TopN:         20,
			DistanceUser: "112",
			DistanceYear: 2008,
			DistanceMode: "walk",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration with precedence ENV > File > Defaults
// and validates the result.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envMappings is the allow-list of environment variables and their koanf paths.
var envMappings = map[string]string{
	"geolife_dataset":         "dataset.root",
	"geolife_max_plot_rows":   "dataset.max_plot_rows",
	"duckdb_path":             "database.path",
	"duckdb_max_memory":       "database.max_memory",
	"duckdb_threads":          "database.threads",
	"duckdb_skip_indexes":     "database.skip_indexes",
	"duckdb_query_timeout":    "database.query_timeout",
	"ingest_batch_size":       "ingest.batch_size",
	"ingest_progress":         "ingest.progress",
	"ingest_ledger_path":      "ingest.ledger_path",
	"analytics_pairing":       "analytics.pairing",
	"analytics_gap_threshold": "analytics.gap_threshold",
	"analytics_top_n":         "analytics.top_n",
	"analytics_distance_user": "analytics.distance_user",
	"analytics_distance_year": "analytics.distance_year",
	"analytics_distance_mode": "analytics.distance_mode",
	"log_level":               "logging.level",
	"log_format":              "logging.format",
	"log_caller":              "logging.caller",
	"metrics_textfile":        "metrics.textfile_path",
}

// envTransformFunc maps an environment variable name to its koanf path.
// Unmapped variables return "" and are ignored.
//
// Examples:
//   - DUCKDB_PATH -> database.path
//   - INGEST_BATCH_SIZE -> ingest.batch_size
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
