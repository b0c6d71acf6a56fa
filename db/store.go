// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/danielhkuo/rank-poll/models"
	"github.com/danielhkuo/rank-poll/poll"
)

// Driver names registered by lib/pq and modernc.org/sqlite
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Store keeps the poll in a SQL database shared by all server instances
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open connects to the database, verifies the connection and creates the
// schema. dbType is "postgres" or "sqlite".
func Open(ctx context.Context, dbType, url string) (*sql.DB, error) {
	conn, err := sql.Open(dbType, url)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if dbType == DriverSQLite {
		// SQLite allows a single writer
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if err := CreateSchema(ctx, conn, dbType); err != nil {
		conn.Close()
		return nil, err
	}

	return conn, nil
}

func (s *Store) Append(ctx context.Context, vote models.Vote) error {
	rankings, err := json.Marshal(vote.Rankings)
	if err != nil {
		return fmt.Errorf("failed to encode rankings: %w", err)
	}

	// Insert only while the poll is active, in one statement
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO vote (id, name, rankings, submitted_at)
		SELECT $1, $2, $3, CAST($4 AS BIGINT)
		WHERE EXISTS (SELECT 1 FROM poll_state WHERE id = 1 AND active)
	`, vote.ID, vote.Name, string(rankings), vote.SubmittedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to insert vote: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to insert vote: %w", err)
	}
	if n == 0 {
		return poll.ErrPollClosed
	}
	return nil
}

func (s *Store) End(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `UPDATE poll_state SET active = FALSE WHERE id = 1`)
	if err != nil {
		return fmt.Errorf("failed to end poll: %w", err)
	}
	return nil
}

func (s *Store) Snapshot(ctx context.Context) (poll.State, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return poll.State{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var state poll.State
	err = tx.QueryRowContext(ctx, `SELECT active FROM poll_state WHERE id = 1`).Scan(&state.Active)
	if err == sql.ErrNoRows {
		state.Active = true
	} else if err != nil {
		return poll.State{}, fmt.Errorf("failed to query poll state: %w", err)
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT id, name, rankings, submitted_at
		FROM vote
		ORDER BY seq
	`)
	if err != nil {
		return poll.State{}, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	state.Votes = []models.Vote{}
	for rows.Next() {
		var v models.Vote
		var rankings string
		var submittedAt int64
		if err := rows.Scan(&v.ID, &v.Name, &rankings, &submittedAt); err != nil {
			return poll.State{}, fmt.Errorf("failed to scan vote: %w", err)
		}
		if err := json.Unmarshal([]byte(rankings), &v.Rankings); err != nil {
			return poll.State{}, fmt.Errorf("failed to decode rankings for vote %s: %w", v.ID, err)
		}
		v.SubmittedAt = time.Unix(0, submittedAt)
		state.Votes = append(state.Votes, v)
	}
	if err := rows.Err(); err != nil {
		return poll.State{}, fmt.Errorf("failed to read votes: %w", err)
	}

	return state, nil
}

// Reset deletes all votes and reopens the poll
func (s *Store) Reset(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM vote`); err != nil {
		return fmt.Errorf("failed to delete votes: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE poll_state SET active = TRUE WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to reopen poll: %w", err)
	}

	return tx.Commit()
}
