// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

/*
Package ingest loads the Geolife dataset into the store.

A run parses the dataset, clears the User, Activity and TrackPoint tables,
then writes users and activities in one transaction each and trackpoints in
batches of ingest.batch_size. Each batch commits on its own, so a failure
mid-run leaves partial data behind; running again is safe because every run
starts by clearing the tables.

The summary of the last successful run (Stats) is kept by a ProgressTracker:

  - BadgerProgress persists it in a BadgerDB directory (ingest.ledger_path)
  - InMemoryProgress keeps it for the life of the process

Example:

	loader := ingest.NewLoader(cfg, db, ingest.NewInMemoryProgress(), os.Stderr)
	stats, err := loader.Run(ctx)
	if err != nil {
	    return err
	}
	logging.Info().Int("trackpoints", stats.TrackPoints).Msg("Loaded")
*/
package ingest
