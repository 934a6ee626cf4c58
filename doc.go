// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the roundvote API server.

roundvote runs multi-round governance votes. Each round has a set of
projects and three voting entities: a steering pool, an oversight pool and
community ballot holders. A round picks its winner by consensus (majority
of entity majorities) or by weighted scores, and is locked for history once
voting ends. Rounds deployed in different shapes are read and written
through one adapter registry.

# Starting the Server

The server reads a .env file when present, then flags and environment:

	CALLER_KEY_SALT=... REGISTRY_OWNER=0x... go run .

Or with flags:

	go run . -p 3318 -d roundvote.db -t sqlite -caller-salt s -registry-owner 0x...

# Configuration

Required settings:

  - CALLER_KEY_SALT (-caller-salt): Secret for caller key HMAC
  - REGISTRY_OWNER (-registry-owner): Admin address of the adapter registry

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_URL (-d): Enables the event log and result snapshots
  - DATABASE_TYPE (-t): sqlite (default) or postgres

# Architecture

  - voting: Round engine (pools, lifecycle, winner algorithms, events)
  - legacy: Single-seat round shape
  - adapter: Uniform Round interface over both shapes
  - registry: Version and round bindings, fails closed
  - ballots: Community ballot book
  - handlers, router, middleware: HTTP surface
  - db: Event log and snapshot store
  - auth, cliparse, models: Caller keys, configuration, wire types

See package documentation for each component.
*/
package main
