// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package adapter presents one Round interface over every deployed round shape.

# Adapters

An Adapter is stateless and shared by every round of its shape. Bind wraps a
concrete controller in a Round view:

	view, err := adapter.Pooled{}.Bind(ctrl)
	addrs := view.ProjectAddresses()

Two shapes exist:

	VersionPooled     "v2"  *voting.Controller, steering modeled as a pool
	VersionSingleSeat "v1"  *legacy.Round, one steering account

# Capabilities

Each version declares up front which operations its controllers provide
natively (see Table). When a capability is missing the adapter either
recomputes the value from other reads (the project list from ProjectCount
and ProjectAt) or returns the defined zero value (no weighted winner, zero
scores, zero community participation). Missing read capabilities are never
reported as errors.

Administrative writes (RemoveProject, ShortenVoting, SetVotingMode,
TransferOwnership) cannot be recomputed. A shape without the matching
capability rejects them with ErrUnsupported, a configuration error.

# Entities

Entity-generic reads take a voting.EntityID: 0 for steering, 1 for
oversight. Any other id fails with voting.ErrInvalidEntity on every shape.
*/
package adapter
