// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package runlog tracks which spill files a processing run has already
// consumed, so interrupted runs can resume without re-tabulating files.
// The log stores file paths and modification times only, never spill
// rows.
package runlog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Log is the SQLite-backed processed-file record.
type Log struct {
	db *sql.DB
}

// Open opens or creates the run log database at path.
func Open(path string) (*Log, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS processed_files (
		path TEXT PRIMARY KEY,
		file_mod_time TEXT NOT NULL,
		spills INTEGER NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating run log schema: %w", err)
	}
	return &Log{db: db}, nil
}

// Close releases the database connection.
func (l *Log) Close() error {
	return l.db.Close()
}

// Seen reports whether the file was already processed at this exact
// modification time. A file recorded with an older mod time counts as
// unseen and will be reprocessed.
func (l *Log) Seen(ctx context.Context, path string, modTime time.Time) (bool, error) {
	var stored string
	err := l.db.QueryRowContext(ctx,
		`SELECT file_mod_time FROM processed_files WHERE path = ?`, path,
	).Scan(&stored)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("querying run log: %w", err)
	}
	return stored == modTime.UTC().Format(time.RFC3339Nano), nil
}

// Record marks the file as processed, replacing any earlier entry.
func (l *Log) Record(ctx context.Context, path string, modTime time.Time, spills int) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO processed_files (path, file_mod_time, spills) VALUES (?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET file_mod_time = excluded.file_mod_time,
		                                 spills = excluded.spills`,
		path, modTime.UTC().Format(time.RFC3339Nano), spills)
	if err != nil {
		return fmt.Errorf("recording processed file: %w", err)
	}
	return nil
}
