// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db provides a SQL-backed poll store for running several server
instances against one poll.

# Opening a Database

Open connects, pings, and creates the schema:

	conn, err := db.Open(ctx, db.DriverPostgres, cfg.DatabaseURL)
	store := db.NewStore(conn)

Drivers are registered by blank imports in main: lib/pq for "postgres"
and modernc.org/sqlite for "sqlite".

# Schema Creation

CreateSchema is safe to call multiple times - uses IF NOT EXISTS for all
tables and indexes, and seeds the poll state row only once.

# Tables

  - poll_state: single row holding the active flag
  - vote: one row per submission, rankings stored as JSON text. The seq
    column is assigned by the database and orders votes as they were
    recorded, whichever instance recorded them.

# Atomic Submission

Votes are inserted with INSERT ... SELECT ... WHERE EXISTS on an active
poll_state row, so a vote can never be recorded after the poll ended.
*/
package db
