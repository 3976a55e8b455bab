// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

// Package analytics holds the in-memory aggregations behind the trajectory
// reports: haversine distance, altitude gain, gap detection, dominant
// transportation mode and top-N ranking.
//
// Every function is pure. Accumulators are local and returned to the caller,
// so the same input always produces the same result.
//
// Consecutive trackpoints are paired according to a Pairing strategy.
// PairingGrouped groups points by activity and orders each group by time.
// PairingPositional walks the slice in the order it was fetched and skips
// pairs that straddle two activities.
package analytics
