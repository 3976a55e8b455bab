// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

/*
Package models defines the Geolife collections and the report row types.

Collections:

  - User: one per dataset user folder, flagged when listed in labeled_ids.txt
  - Activity: a trip segment from a labels.txt row or a plot file span
  - TrackPoint: one GPS fix, owned by exactly one activity

Identifiers are synthesized from the user id and compact timestamps (see
package dataset), so re-parsing the same tree yields the same ids.

Report rows (Totals, UserActivityCount, BusiestYear, ...) carry JSON tags
so they can be logged as structured fields.
*/
package models
