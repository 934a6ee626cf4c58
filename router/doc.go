// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the roundvote API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(deployments, cfg)

# Endpoints

Health:

	GET /health

Round lifecycle (writes require X-Caller-Address and X-Caller-Key):

	POST /rounds                 - Deploy and bind a round (registry owner)
	GET  /rounds                 - List round ids
	GET  /rounds/{id}            - Lifecycle and state flags
	GET  /rounds/{id}/config     - Bound version and capabilities
	PUT  /rounds/{id}/version    - Rebind to another version
	PUT  /rounds/{id}/mode       - Consensus or weighted (pooled only)
	PUT  /rounds/{id}/owner      - Transfer ownership (pooled only)
	POST /rounds/{id}/activate   - Open the voting window
	POST /rounds/{id}/close      - End or shorten the window
	POST /rounds/{id}/lock       - Freeze the final result

Roles:

	GET/POST /rounds/{id}/projects
	DELETE   /rounds/{id}/projects/{address}
	GET      /rounds/{id}/entities/{entity}
	GET/POST /rounds/{id}/entities/{entity}/voters
	DELETE   /rounds/{id}/entities/{entity}/voters/{address}

{entity} is "steering", "oversight", 0 or 1.

Voting:

	POST /rounds/{id}/entities/{entity}/votes
	POST /rounds/{id}/ballots                  - Mint a ballot (round owner)
	POST /rounds/{id}/ballots/{token}/transfer - Move a ballot (holder)
	GET  /rounds/{id}/community
	GET  /rounds/{id}/community/{token}
	POST /rounds/{id}/community/votes

Results:

	GET /rounds/{id}/results
	GET /rounds/{id}/scores
	GET /rounds/{id}/participation
	GET /rounds/{id}/projects/{address}/breakdown
	GET /rounds/{id}/events   - Event log (needs a database)
	GET /rounds/{id}/snapshot - Locked result (needs a database)

Adapter registry:

	GET  /adapters
	POST /adapters - Register or replace a version (registry owner)
*/
package router
