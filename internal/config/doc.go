// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

/*
Package config loads Geolife configuration with Koanf v2.

Sources are layered, highest priority last:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML file: $CONFIG_PATH, ./config.yaml, ./config.yml, /etc/geolife/config.yaml
 3. Environment variables (explicit allow-list in envTransformFunc)

Example config.yaml:

	dataset:
	  root: ../dataset
	database:
	  path: ./data/geolife.duckdb
	ingest:
	  batch_size: 1000
	  ledger_path: ./data/ledger
	analytics:
	  pairing: grouped
	  gap_threshold: 5m
	logging:
	  level: info
	  format: console

Environment variables:

	GEOLIFE_DATASET          dataset.root
	DUCKDB_PATH              database.path
	DUCKDB_MAX_MEMORY        database.max_memory
	INGEST_BATCH_SIZE        ingest.batch_size
	INGEST_PROGRESS          ingest.progress
	INGEST_LEDGER_PATH       ingest.ledger_path
	ANALYTICS_PAIRING        analytics.pairing
	ANALYTICS_GAP_THRESHOLD  analytics.gap_threshold
	LOG_LEVEL / LOG_FORMAT / LOG_CALLER
	METRICS_TEXTFILE         metrics.textfile_path
*/
package config
