// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

/*
Package dataset reads the Geolife trajectory dataset from disk.

The expected layout is:

	<root>/labeled_ids.txt
	<root>/Data/<user>/labels.txt              (optional)
	<root>/Data/<user>/Trajectory/<stamp>.plt

Parse walks the tree in lexical order and returns the users, activities and
trackpoints found, in first-insertion order. Identifiers are synthesized from
the user folder and timestamps, so parsing the same tree twice yields the same
collections.

Label rows always define their activity. A plot file only creates an
activity when no label row produced one with the same id, so the
transportation mode from labels.txt survives the empty plot default.

Plot files with more data rows than Options.MaxPlotRows are treated as
empty: they contribute neither trackpoints nor an activity.

Example:

	cols, err := dataset.Parse(ctx, dataset.Options{
		DataDir:        "dataset/Data",
		LabeledIDsPath: "dataset/labeled_ids.txt",
		MaxPlotRows:    2500,
	})
*/
package dataset
