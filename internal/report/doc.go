// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

/*
Package report renders query results for the terminal.

Tables use the GitHub markdown layout so the output can be pasted into
issues and READMEs unchanged:

	| nr. | user id | activities |
	|-----|---------|------------|
	|   1 | 128     |       2102 |

Large counts are grouped in thousands with a space separator
("9 681 756"). Every method writes to the io.Writer given to New and
never returns an error; write failures on stdout are not actionable for a
batch run.
*/
package report
