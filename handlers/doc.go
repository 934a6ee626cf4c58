// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the roundvote API.

# Handler Types

Each handler is a struct over the shared Deployments and Config:

  - RoundHandler: Deploy, lifecycle and version binding
  - RoleHandler: Projects and entity voters
  - VotingHandler: Entity votes, community ballots and community votes
  - ResultsHandler: Winners, scores, aggregates, event log and snapshots
  - AdapterHandler: Adapter registry administration

Handlers are created via constructor functions:

	d := handlers.NewDeployments(reg, store)
	roundHandler := handlers.NewRoundHandler(d, cfg)

Every read and write on a round goes through the registry, so pooled and
single-seat rounds are served by the same code.

# Round Lifecycle

	POST /rounds                 → CreateRound (registry owner only)
	POST /rounds/{id}/projects   → RegisterProject (before activation)
	POST /rounds/{id}/entities/{entity}/voters → AddVoter
	POST /rounds/{id}/activate   → Activate (opens a 48 hour window)
	POST /rounds/{id}/close      → CloseVoting
	POST /rounds/{id}/lock       → Lock (freezes the final winner)

# Caller Identity

Writes require the X-Caller-Address and X-Caller-Key headers, where the
key is the HMAC of the address under the server's caller salt. Engine
errors are mapped to status codes by middleware.Error.

# Pooled-only Operations

Removing a project, changing the voting mode, shortening the window and
transferring ownership reach the controller directly and answer 400 on
rounds whose shape lacks them.
*/
package handlers
