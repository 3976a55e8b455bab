// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

package dataset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tomtom215/geolife/internal/config"
	"github.com/tomtom215/geolife/internal/logging"
	"github.com/tomtom215/geolife/internal/models"
)

// DefaultMaxPlotRows is the row cap applied when Options.MaxPlotRows is unset.
const DefaultMaxPlotRows = 2500

// trajectoryDirName is the per-user folder holding plot files.
const trajectoryDirName = "Trajectory"

// ErrDatasetNotFound is returned when the data directory does not exist.
var ErrDatasetNotFound = errors.New("dataset not found")

// Options configures a Parse run.
type Options struct {
	// DataDir holds one folder per user.
	DataDir string

	// LabeledIDsPath is the whitespace-separated manifest of users with labels.
	LabeledIDsPath string

	// MaxPlotRows discards plot files with more data rows than this.
	MaxPlotRows int

	PlotHeaderLines  int
	LabelHeaderLines int

	// OnFile is called once per regular file before it is read.
	OnFile func(path string, source RecordSource)
}

// OptionsFromConfig builds Options from the dataset configuration section.
func OptionsFromConfig(cfg *config.DatasetConfig) Options {
	return Options{
		DataDir:          cfg.DataDir(),
		LabeledIDsPath:   cfg.LabeledIDsPath(),
		MaxPlotRows:      cfg.MaxPlotRows,
		PlotHeaderLines:  cfg.PlotHeaderLines,
		LabelHeaderLines: cfg.LabelHeaderLines,
	}
}

// Collections is the parsed dataset. Slices keep first-insertion order.
type Collections struct {
	Users       []models.User
	Activities  []models.Activity
	TrackPoints []models.TrackPoint

	// Files counts regular files visited, including ignored ones.
	Files int

	activityIndex   map[string]int
	trackPointIndex map[string]int
}

func newCollections() *Collections {
	return &Collections{
		activityIndex:   make(map[string]int),
		trackPointIndex: make(map[string]int),
	}
}

// HasActivity reports whether an activity with id has been recorded.
func (c *Collections) HasActivity(id string) bool {
	_, ok := c.activityIndex[id]
	return ok
}

// putActivity inserts a or overwrites the existing activity with the same id.
func (c *Collections) putActivity(a models.Activity) {
	if i, ok := c.activityIndex[a.ID]; ok {
		c.Activities[i] = a
		return
	}
	c.activityIndex[a.ID] = len(c.Activities)
	c.Activities = append(c.Activities, a)
}

func (c *Collections) putTrackPoint(tp models.TrackPoint) {
	if i, ok := c.trackPointIndex[tp.ID]; ok {
		c.TrackPoints[i] = tp
		return
	}
	c.trackPointIndex[tp.ID] = len(c.TrackPoints)
	c.TrackPoints = append(c.TrackPoints, tp)
}

// Parse walks opts.DataDir and returns every user, activity and trackpoint.
//
// Any unreadable file or malformed row aborts the run. The context is checked
// between files.
func Parse(ctx context.Context, opts Options) (*Collections, error) {
	if opts.MaxPlotRows <= 0 {
		opts.MaxPlotRows = DefaultMaxPlotRows
	}

	info, err := os.Stat(opts.DataDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, opts.DataDir)
		}
		return nil, fmt.Errorf("stat data dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrDatasetNotFound, opts.DataDir)
	}

	labeled, err := readLabeledIDs(opts.LabeledIDsPath)
	if err != nil {
		return nil, err
	}

	p := &parser{opts: opts, labeled: labeled, out: newCollections()}
	if err := filepath.WalkDir(opts.DataDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		return p.visit(ctx, path, d)
	}); err != nil {
		return nil, err
	}

	return p.out, nil
}

type parser struct {
	opts    Options
	labeled map[string]struct{}
	out     *Collections
}

func (p *parser) visit(ctx context.Context, path string, d fs.DirEntry) error {
	rel, err := filepath.Rel(p.opts.DataDir, path)
	if err != nil {
		return fmt.Errorf("relative path %s: %w", path, err)
	}
	if rel == "." {
		return nil
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")

	if d.IsDir() {
		if len(parts) == 1 && d.Name() != trajectoryDirName {
			_, hasLabels := p.labeled[d.Name()]
			p.out.Users = append(p.out.Users, models.User{ID: d.Name(), HasLabels: hasLabels})
		}
		return nil
	}
	if !d.Type().IsRegular() {
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	p.out.Files++
	source := Classify(path)
	if p.opts.OnFile != nil {
		p.opts.OnFile(path, source)
	}

	if len(parts) < 2 {
		logging.Debug().Str("path", path).Msg("Skipping file outside user folders")
		return nil
	}
	userID := parts[0]

	switch source {
	case SourceLabels:
		return p.addLabels(path, userID)
	case SourcePlot:
		return p.addPlot(path, userID)
	default:
		logging.Debug().Str("path", path).Msg("Skipping unrecognized dataset file")
		return nil
	}
}

func (p *parser) addLabels(path, userID string) error {
	rows, err := readLabelsFile(path, p.opts.LabelHeaderLines)
	if err != nil {
		return err
	}
	for _, row := range rows {
		p.out.putActivity(models.Activity{
			ID:                 ActivityID(userID, row.Start),
			UserID:             userID,
			TransportationMode: row.Mode,
			StartDateTime:      row.Start,
			EndDateTime:        row.End,
		})
	}
	return nil
}

func (p *parser) addPlot(path, userID string) error {
	rows, err := readPlotFile(path, p.opts.PlotHeaderLines, p.opts.MaxPlotRows)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	activityID := PlotActivityID(userID, path)
	if !p.out.HasActivity(activityID) {
		p.out.putActivity(models.Activity{
			ID:            activityID,
			UserID:        userID,
			StartDateTime: rows[0].At,
			EndDateTime:   rows[len(rows)-1].At,
		})
	}

	for _, row := range rows {
		p.out.putTrackPoint(models.TrackPoint{
			ID:         TrackPointID(activityID, row.At),
			ActivityID: activityID,
			UserID:     userID,
			Lat:        row.Lat,
			Lon:        row.Lon,
			Altitude:   row.Altitude,
			DateDays:   DateDays(row.At),
			DateTime:   row.At,
		})
	}
	return nil
}

// CountFiles returns the number of regular files under dataDir. It sizes the
// ingest progress bar before Parse runs.
func CountFiles(dataDir string) (int, error) {
	n := 0
	err := filepath.WalkDir(dataDir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			n++
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("%w: %s", ErrDatasetNotFound, dataDir)
		}
		return 0, fmt.Errorf("count dataset files: %w", err)
	}
	return n, nil
}
