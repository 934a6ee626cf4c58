// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"fmt"
	"strings"
)

// Role is the single role an address may hold within a round.
type Role uint8

const (
	RoleNone Role = iota
	RoleProject
	RoleSteering
	RoleOversight
	RoleCommunity
)

func (r Role) String() string {
	switch r {
	case RoleProject:
		return "project"
	case RoleSteering:
		return "steering"
	case RoleOversight:
		return "oversight"
	case RoleCommunity:
		return "community"
	default:
		return "none"
	}
}

// CommunityRole is the role tag a ballot must carry to vote.
const CommunityRole = "Community"

// EntityID selects one of the two pooled entities.
type EntityID uint8

const (
	EntitySteering  EntityID = 0
	EntityOversight EntityID = 1
)

// Valid reports whether id names a pooled entity.
func (id EntityID) Valid() bool {
	return id == EntitySteering || id == EntityOversight
}

func (id EntityID) String() string {
	switch id {
	case EntitySteering:
		return "steering"
	case EntityOversight:
		return "oversight"
	default:
		return fmt.Sprintf("entity(%d)", uint8(id))
	}
}

// Role returns the role held by members of the entity.
func (id EntityID) Role() Role {
	switch id {
	case EntitySteering:
		return RoleSteering
	case EntityOversight:
		return RoleOversight
	default:
		return RoleNone
	}
}

// ParseEntityID accepts the numeric id or the entity name.
func ParseEntityID(s string) (EntityID, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "0", "steering":
		return EntitySteering, nil
	case "1", "oversight":
		return EntityOversight, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidEntity, s)
	}
}

// Mode selects the winner algorithm.
type Mode uint8

const (
	ModeConsensus Mode = iota
	ModeWeighted
)

func (m Mode) String() string {
	if m == ModeWeighted {
		return "weighted"
	}
	return "consensus"
}

// ParseMode parses "consensus" or "weighted". The empty string is consensus.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "consensus":
		return ModeConsensus, nil
	case "weighted":
		return ModeWeighted, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// Phase is the position of a round in its lifecycle.
type Phase uint8

const (
	PhaseUnconfigured Phase = iota
	PhaseConfigured
	PhaseVotingOpen
	PhaseVotingEnded
	PhaseLocked
)

func (p Phase) String() string {
	switch p {
	case PhaseConfigured:
		return "configured"
	case PhaseVotingOpen:
		return "voting_open"
	case PhaseVotingEnded:
		return "voting_ended"
	case PhaseLocked:
		return "locked"
	default:
		return "unconfigured"
	}
}
