// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

// Package journal provides durable persistence for the feedback log.
//
// Feedback entries are written to BadgerDB (ACID, fsync) behind an
// asynchronous watermill pipeline so the recording path never blocks on
// disk. On startup the journal is replayed into the in-memory store, which
// re-derives every aggregate; the journal plus replay is the crash-recovery
// story for all learning state.
package journal

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/gmaxing/engine/internal/models"
)

// entryPrefix keys feedback entries; the zero-padded sequence number keeps
// badger's lexicographic iteration in append order.
const entryPrefix = "fb/"

// Journal persists feedback entries durably and replays them on startup.
type Journal interface {
	// Append durably writes one entry.
	Append(ctx context.Context, fb models.UserFeedback) error

	// Replay invokes fn for every stored entry in append order.
	// Stops at the first error.
	Replay(ctx context.Context, fn func(models.UserFeedback) error) error

	// Close releases the underlying storage.
	Close() error
}

// Badger implements Journal on BadgerDB.
type Badger struct {
	db     *badger.DB
	seq    *badger.Sequence
	logger zerolog.Logger
}

// OpenBadger opens (or creates) a badger-backed journal at path.
func OpenBadger(path string, logger zerolog.Logger) (*Badger, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithSyncWrites(true)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	seq, err := db.GetSequence([]byte("journal-seq"), 128)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open journal sequence: %w", err)
	}

	return &Badger{
		db:     db,
		seq:    seq,
		logger: logger.With().Str("component", "journal").Logger(),
	}, nil
}

// Append durably writes one entry.
func (b *Badger) Append(ctx context.Context, fb models.UserFeedback) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	id, err := b.seq.Next()
	if err != nil {
		return fmt.Errorf("next journal sequence: %w", err)
	}
	data, err := json.Marshal(fb)
	if err != nil {
		return fmt.Errorf("marshal feedback: %w", err)
	}

	key := []byte(fmt.Sprintf("%s%020d", entryPrefix, id))
	err = b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
	if err != nil {
		return fmt.Errorf("write journal entry: %w", err)
	}
	return nil
}

// Replay invokes fn for every stored entry in append order.
func (b *Badger) Replay(ctx context.Context, fn func(models.UserFeedback) error) error {
	return b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(entryPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var fb models.UserFeedback
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &fb)
			})
			if err != nil {
				// A corrupt entry is logged and skipped; losing one
				// entry beats refusing to start.
				b.logger.Warn().Err(err).Msg("skipping unreadable journal entry")
				continue
			}
			if err := fn(fb); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close releases the sequence and closes the database.
func (b *Badger) Close() error {
	if err := b.seq.Release(); err != nil {
		b.logger.Warn().Err(err).Msg("releasing journal sequence")
	}
	return b.db.Close()
}

// Nop is a no-op journal used when durable persistence is disabled.
type Nop struct{}

// Append discards the entry.
func (Nop) Append(context.Context, models.UserFeedback) error { return nil }

// Replay is a no-op.
func (Nop) Replay(context.Context, func(models.UserFeedback) error) error { return nil }

// Close is a no-op.
func (Nop) Close() error { return nil }
