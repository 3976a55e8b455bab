// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

// Package logging provides centralized zerolog-based structured logging for Geolife.
//
// The CLI prints query results on stdout; everything else (ingestion progress,
// timings, warnings) goes through this package to stderr so the two streams
// never interleave.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "console",
//	})
//
//	logging.Info().Int("users", n).Msg("Users inserted")
//	logging.Error().Err(err).Str("file", path).Msg("Parse failed")
//
//	// Run-scoped logging
//	ctx = logging.ContextWithRunID(ctx, stats.RunID)
//	logging.Ctx(ctx).Info().Msg("Clearing collections")
//
// # Configuration
//
// Environment Variables:
//
//	LOG_LEVEL   - Minimum log level: trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - Output format: json, console (default: console)
//	LOG_CALLER  - Include caller file:line: true, false (default: false)
//
// Always terminate log chains with .Msg() or .Send(); an unterminated event is
// never written.
package logging
