// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

// Portable across sqlite and postgres: times are unix milliseconds.
var schema = []string{
	// Event log, one row per committed state change
	`CREATE TABLE IF NOT EXISTS round_event (
    id TEXT PRIMARY KEY,
    seq BIGINT NOT NULL,
    kind TEXT NOT NULL,
    iteration BIGINT NOT NULL,
    round_no BIGINT NOT NULL,
    actor TEXT,
    subject TEXT,
    entity TEXT,
    project TEXT,
    previous TEXT,
    token BIGINT,
    mode TEXT,
    version TEXT,
    occurred_at BIGINT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_round_event_round ON round_event(round_no, seq)`,
	`CREATE INDEX IF NOT EXISTS idx_round_event_kind ON round_event(kind)`,

	// Registry state
	`CREATE TABLE IF NOT EXISTS adapter_binding (
    version TEXT PRIMARY KEY,
    set_by TEXT NOT NULL,
    set_at BIGINT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS round_binding (
    round_no BIGINT PRIMARY KEY,
    version TEXT NOT NULL,
    bound_at BIGINT NOT NULL
)`,

	// Frozen results of locked rounds
	`CREATE TABLE IF NOT EXISTS result_snapshot (
    id TEXT PRIMARY KEY,
    iteration BIGINT NOT NULL,
    round_no BIGINT NOT NULL UNIQUE,
    mode TEXT NOT NULL,
    winner TEXT,
    has_winner BOOLEAN NOT NULL,
    payload TEXT NOT NULL,
    computed_at BIGINT NOT NULL
)`,
}
