// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared by the process. Field names in error
// messages are taken from the `koanf` struct tag when present, so a failing
// configuration reads the same way it is written in config.yaml:
//
//	type IngestConfig struct {
//	    BatchSize int `koanf:"batch_size" validate:"min=1,max=100000"`
//	}
//
//	if err := validation.ValidateStruct(&cfg.Ingest); err != nil {
//	    return fmt.Errorf("invalid ingest config: %w", err)
//	}
//	// invalid ingest config: batch_size must be at least 1
package validation
