// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db persists the event log that indexers read.

Rounds live in memory; the database is downstream of them. Every committed
state change is appended to the log, and a failed write never rolls back
a vote.

# Connecting

Open selects the driver from the database type:

	conn, err := db.Open(db.TypeSQLite, "file:roundvote.db")
	conn, err := db.Open(db.TypePostgres, os.Getenv("DATABASE_URL"))

sqlite uses modernc.org/sqlite (no cgo); postgres uses lib/pq.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The SQL is portable between both databases; timestamps are unix
milliseconds.

# Tables

  - round_event: one row per event, ordered by seq
  - adapter_binding: version tags registered with the adapter registry
  - round_binding: round → version tag
  - result_snapshot: the frozen winner and weighted scores of a locked round

# Store

Store implements voting.Notifier:

	store, err := db.NewStore(conn)
	ctrl := voting.NewController(voting.Config{Notifier: store, ...})

Registry events update the binding tables and lock events write a
result_snapshot, in the same transaction as the event row.
*/
package db
