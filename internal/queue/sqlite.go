// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Veritas Contributors

package queue

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/mattn/go-sqlite3"

	verr "github.com/seetsele/vrsystems-sub001/pkg/errors"
	"github.com/seetsele/vrsystems-sub001/pkg/types"
)

// SQLiteStore persists the queue in a single-file SQLite database so
// queued actions survive a process restart.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (or creates) the queue database at dbPath and
// initialises the actions table.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, verr.Wrap(err, verr.CodeQueueStoreFailure, "opening queue db")
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, verr.Wrap(err, verr.CodeQueueStoreFailure, "pinging queue db")
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, verr.Wrap(err, verr.CodeQueueStoreFailure, "migrating queue db")
	}

	return &SQLiteStore{db: db}, nil
}

func migrate(db *sql.DB) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS queued_actions (
	position    INTEGER PRIMARY KEY,
	id          TEXT NOT NULL,
	type        TEXT NOT NULL,
	payload     TEXT NOT NULL DEFAULT '',
	enqueued_at TEXT NOT NULL
);`
	_, err := db.Exec(ddl)
	return err
}

func (s *SQLiteStore) Load(ctx context.Context) ([]types.QueuedAction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, type, payload, enqueued_at FROM queued_actions ORDER BY position`)
	if err != nil {
		return nil, verr.Wrap(err, verr.CodeQueueStoreFailure, "loading queued actions")
	}
	defer rows.Close()

	var actions []types.QueuedAction
	for rows.Next() {
		var (
			a          types.QueuedAction
			payload    string
			enqueuedAt string
		)
		if err := rows.Scan(&a.ID, &a.Type, &payload, &enqueuedAt); err != nil {
			return nil, verr.Wrap(err, verr.CodeQueueStoreFailure, "scanning queued action")
		}
		a.Payload = json.RawMessage(payload)
		a.EnqueuedAt, err = time.Parse(time.RFC3339Nano, enqueuedAt)
		if err != nil {
			return nil, verr.Wrap(err, verr.CodeQueueStoreFailure, "parsing enqueue timestamp")
		}
		actions = append(actions, a)
	}
	if err := rows.Err(); err != nil {
		return nil, verr.Wrap(err, verr.CodeQueueStoreFailure, "iterating queued actions")
	}
	return actions, nil
}

// Save replaces the persisted sequence in one transaction, keeping the
// on-disk order identical to the in-memory order.
func (s *SQLiteStore) Save(ctx context.Context, actions []types.QueuedAction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return verr.Wrap(err, verr.CodeQueueStoreFailure, "beginning queue save")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM queued_actions`); err != nil {
		return verr.Wrap(err, verr.CodeQueueStoreFailure, "clearing queued actions")
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO queued_actions (position, id, type, payload, enqueued_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return verr.Wrap(err, verr.CodeQueueStoreFailure, "preparing queue insert")
	}
	defer stmt.Close()

	for i, a := range actions {
		if _, err := stmt.ExecContext(ctx, i, a.ID, a.Type, string(a.Payload),
			a.EnqueuedAt.UTC().Format(time.RFC3339Nano)); err != nil {
			return verr.Wrap(err, verr.CodeQueueStoreFailure, "inserting queued action",
				verr.FieldAction(a.Type))
		}
	}

	if err := tx.Commit(); err != nil {
		return verr.Wrap(err, verr.CodeQueueStoreFailure, "committing queue save")
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
