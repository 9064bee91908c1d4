// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync/atomic"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-hds-keeper/internal/logger"
	"github.com/MKhiriev/go-hds-keeper/models"
)

const (
	createQueueTable = `CREATE TABLE IF NOT EXISTS audit_queue (
		seq   INTEGER PRIMARY KEY AUTOINCREMENT,
		event TEXT NOT NULL
	)`
	pushQueuedEvent   = `INSERT INTO audit_queue (event) VALUES (?)`
	trimQueue         = `DELETE FROM audit_queue WHERE seq NOT IN (SELECT seq FROM audit_queue ORDER BY seq DESC LIMIT ?)`
	peekQueuedEvents  = `SELECT seq, event FROM audit_queue ORDER BY seq`
	discardQueued     = `DELETE FROM audit_queue WHERE seq <= ?`
	countQueuedEvents = `SELECT COUNT(*) FROM audit_queue`
)

// SQLiteQueue is a [LocalQueue] persisted in a SQLite file, so queued events
// survive a restart.
// After Close every method returns [ErrQueueClosed].
type SQLiteQueue struct {
	db       *sql.DB
	capacity int
	closed   atomic.Bool
	logger   *logger.Logger
}

// NewSQLiteQueue opens (creating if needed) the queue database at path.
func NewSQLiteQueue(ctx context.Context, path string, capacity int, log *logger.Logger) (*SQLiteQueue, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		log.Err(err).Str("func", "NewSQLiteQueue").Msg("error opening audit queue database")
		return nil, fmt.Errorf("open audit queue: %w", err)
	}

	q, err := newSQLiteQueue(ctx, db, capacity, log)
	if err != nil {
		db.Close()
		return nil, err
	}

	log.Debug().Str("func", "NewSQLiteQueue").Str("path", path).Msg("audit queue opened")
	return q, nil
}

func newSQLiteQueue(ctx context.Context, db *sql.DB, capacity int, log *logger.Logger) (*SQLiteQueue, error) {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}

	// a single writer keeps seq allocation and trimming consistent
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, createQueueTable); err != nil {
		log.Err(err).Str("func", "newSQLiteQueue").Msg("error creating audit queue table")
		return nil, fmt.Errorf("create audit queue table: %w", err)
	}

	return &SQLiteQueue{
		db:       db,
		capacity: capacity,
		logger:   log,
	}, nil
}

func (q *SQLiteQueue) Push(ctx context.Context, event models.AuditEvent) error {
	if q.closed.Load() {
		return ErrQueueClosed
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode queued audit event: %w", err)
	}

	tx, err := q.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin audit queue push: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, pushQueuedEvent, string(payload)); err != nil {
		return fmt.Errorf("insert queued audit event: %w", err)
	}
	if _, err = tx.ExecContext(ctx, trimQueue, q.capacity); err != nil {
		return fmt.Errorf("trim audit queue: %w", err)
	}

	return tx.Commit()
}

func (q *SQLiteQueue) Peek(ctx context.Context) ([]models.QueuedAuditEvent, error) {
	if q.closed.Load() {
		return nil, ErrQueueClosed
	}

	rows, err := q.db.QueryContext(ctx, peekQueuedEvents)
	if err != nil {
		return nil, fmt.Errorf("query audit queue: %w", err)
	}
	defer rows.Close()

	var out []models.QueuedAuditEvent
	for rows.Next() {
		var (
			item    models.QueuedAuditEvent
			payload string
		)
		if err = rows.Scan(&item.Seq, &payload); err != nil {
			return nil, fmt.Errorf("scan queued audit event: %w", err)
		}
		if err = json.Unmarshal([]byte(payload), &item.Event); err != nil {
			q.logger.Err(err).
				Str("func", "SQLiteQueue.Peek").
				Int64("seq", item.Seq).
				Msg("skipping undecodable queued audit event")
			continue
		}
		out = append(out, item)
	}

	return out, rows.Err()
}

func (q *SQLiteQueue) DiscardThrough(ctx context.Context, seq int64) error {
	if q.closed.Load() {
		return ErrQueueClosed
	}
	if _, err := q.db.ExecContext(ctx, discardQueued, seq); err != nil {
		return fmt.Errorf("discard queued audit events: %w", err)
	}
	return nil
}

func (q *SQLiteQueue) Len(ctx context.Context) (int, error) {
	if q.closed.Load() {
		return 0, ErrQueueClosed
	}

	var n int
	if err := q.db.QueryRowContext(ctx, countQueuedEvents).Scan(&n); err != nil {
		return 0, fmt.Errorf("count queued audit events: %w", err)
	}
	return n, nil
}

// Close closes the queue database. Closing twice is a no-op.
func (q *SQLiteQueue) Close() error {
	if !q.closed.CompareAndSwap(false, true) {
		return nil
	}
	return q.db.Close()
}
