// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

package dataset

import (
	"fmt"
	"os"
	"strings"
)

// readLabeledIDs loads the whitespace-separated list of user ids that ship a
// labels.txt.
func readLabeledIDs(path string) (map[string]struct{}, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("read labeled ids %s: %w", path, err)
	}

	ids := make(map[string]struct{})
	for _, id := range strings.Fields(string(data)) {
		ids[id] = struct{}{}
	}
	return ids, nil
}
