// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application and seeds the
// poll state row. Safe to call multiple times - uses IF NOT EXISTS.
// dbType selects the sequence column syntax; everything else is shared by
// PostgreSQL and SQLite.
func CreateSchema(ctx context.Context, db *sql.DB, dbType string) error {
	seq := "seq BIGSERIAL PRIMARY KEY"
	if dbType == DriverSQLite {
		seq = "seq INTEGER PRIMARY KEY AUTOINCREMENT"
	}

	stmts := append([]string{}, schema...)
	stmts = append(stmts, fmt.Sprintf(voteTable, seq))

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

var schema = []string{
	// Poll state: a single row, active until the poll is ended
	`CREATE TABLE IF NOT EXISTS poll_state (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    active BOOLEAN NOT NULL
)`,
	`INSERT INTO poll_state (id, active) VALUES (1, TRUE)
ON CONFLICT (id) DO NOTHING`,
}

// Votes; seq is assigned by the database on insert and gives the order
// votes were recorded in, across all server instances
const voteTable = `CREATE TABLE IF NOT EXISTS vote (
    %s,
    id TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    rankings TEXT NOT NULL,
    submitted_at BIGINT NOT NULL
)`
