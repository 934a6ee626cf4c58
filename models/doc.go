// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateRoundRequest: version, iteration, mode, owner
  - SetRoundVersionRequest: version
  - AddressRequest: address (projects and entity voters)
  - EntityVoteRequest: project
  - CommunityVoteRequest: token, project
  - MintBallotRequest: to, role
  - TransferBallotRequest: to
  - SetAdapterRequest: version, shape, replace

# Response Types

Types for JSON responses:

  - CreateRoundResponse: round, iteration, version, owner
  - RoundResponse: lifecycle and state flags
  - ConfigResponse: version and capabilities of a round's adapter
  - EntityResponse: voters with their choices, and the entity majority
  - ResultsResponse: dispatched, consensus, weighted and final winners
  - ScoresResponse: per-project weighted scores
  - EventsResponse: the persisted event log of a round
  - ErrorResponse: error, message

# Domain Types

  - Outcome: winner address and whether one exists
  - ProjectScore: fixed-point score with a display share
  - AdapterInfo: version tag and capability names
  - Event: one persisted state change

Addresses are 0x-prefixed lowercase hex strings. Weighted scores use a
fixed-point unit where total_possible (10^18) is 1.0.
*/
package models
