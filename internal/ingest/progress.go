// Geolife - GPS Trajectory Ingestion and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/geolife

package ingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

const (
	// lastRunKey is the BadgerDB key for the last successful run.
	lastRunKey = "ingest:geolife:last_run"
)

// ProgressTracker stores the summary of the last successful run.
type ProgressTracker interface {
	// Save persists the run summary.
	Save(ctx context.Context, stats *Stats) error

	// Load retrieves the last saved summary, or nil if there is none.
	Load(ctx context.Context) (*Stats, error)

	// Clear removes the saved summary.
	Clear(ctx context.Context) error
}

// BadgerProgress implements ProgressTracker using BadgerDB for persistence.
type BadgerProgress struct {
	db    *badger.DB
	owned bool
}

// NewBadgerProgress creates a tracker on an already open BadgerDB instance.
func NewBadgerProgress(db *badger.DB) *BadgerProgress {
	return &BadgerProgress{db: db}
}

// OpenBadgerProgress opens (or creates) a BadgerDB directory at path.
// Close releases it.
func OpenBadgerProgress(path string) (*BadgerProgress, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger ledger %s: %w", path, err)
	}
	p := NewBadgerProgress(db)
	p.owned = true
	return p, nil
}

// Close closes the database if it was opened by OpenBadgerProgress.
func (p *BadgerProgress) Close() error {
	if !p.owned {
		return nil
	}
	return p.db.Close()
}

// Save persists the run summary to BadgerDB.
func (p *BadgerProgress) Save(_ context.Context, stats *Stats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}

	return p.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(lastRunKey), data)
	})
}

// Load retrieves the last saved run summary from BadgerDB.
// Returns nil, nil if nothing has been saved.
func (p *BadgerProgress) Load(_ context.Context) (*Stats, error) {
	var stats Stats

	err := p.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(lastRunKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &stats)
		})
	})

	if err != nil {
		return nil, fmt.Errorf("load last run: %w", err)
	}

	if stats.StartTime.IsZero() {
		return nil, nil
	}

	return &stats, nil
}

// Clear removes the saved summary from BadgerDB.
func (p *BadgerProgress) Clear(_ context.Context) error {
	return p.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(lastRunKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil // Already cleared
		}
		return err
	})
}

// InMemoryProgress implements ProgressTracker using in-memory storage.
type InMemoryProgress struct {
	stats *Stats
}

// NewInMemoryProgress creates a new in-memory progress tracker.
func NewInMemoryProgress() *InMemoryProgress {
	return &InMemoryProgress{}
}

// Save stores a copy of stats.
func (p *InMemoryProgress) Save(_ context.Context, stats *Stats) error {
	statsCopy := *stats
	p.stats = &statsCopy
	return nil
}

// Load returns a copy of the stored stats.
func (p *InMemoryProgress) Load(_ context.Context) (*Stats, error) {
	if p.stats == nil {
		return nil, nil
	}
	statsCopy := *p.stats
	return &statsCopy, nil
}

// Clear removes the stored stats.
func (p *InMemoryProgress) Clear(_ context.Context) error {
	p.stats = nil
	return nil
}
