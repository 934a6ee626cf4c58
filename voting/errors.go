// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package wraps exactly one of them.
var (
	ErrConfiguration   = errors.New("configuration error")
	ErrLifecycle       = errors.New("lifecycle error")
	ErrRoleConflict    = errors.New("role conflict")
	ErrDuplicateVote   = errors.New("duplicate vote")
	ErrAuthorization   = errors.New("not authorized")
	ErrResolution      = errors.New("unresolved")
	ErrInvalidArgument = errors.New("invalid argument")
)

var (
	ErrNoSteeringVoters  = fmt.Errorf("%w: at least one steering voter required", ErrConfiguration)
	ErrNoOversightVoters = fmt.Errorf("%w: at least one oversight voter required", ErrConfiguration)
	ErrNoProjects        = fmt.Errorf("%w: at least one project required", ErrConfiguration)
	ErrAlreadyProject    = fmt.Errorf("%w: address is already a project", ErrConfiguration)
	ErrAlreadyMember     = fmt.Errorf("%w: address is already in this pool", ErrConfiguration)
	ErrNotMember         = fmt.Errorf("%w: address is not in this pool", ErrConfiguration)
	ErrSeatsFull         = fmt.Errorf("%w: steering seats are all assigned", ErrConfiguration)
	ErrUnknownProject    = fmt.Errorf("%w: project is not registered", ErrInvalidArgument)
	ErrInvalidEntity     = fmt.Errorf("%w: entity id must be 0 (steering) or 1 (oversight)", ErrInvalidArgument)
	ErrInvalidAddress    = fmt.Errorf("%w: malformed address", ErrInvalidArgument)
	ErrInvalidMode       = fmt.Errorf("%w: unknown voting mode", ErrInvalidArgument)

	ErrAlreadyActivated = fmt.Errorf("%w: round already activated", ErrLifecycle)
	ErrNotActivated     = fmt.Errorf("%w: round not activated", ErrLifecycle)
	ErrProjectsLocked   = fmt.Errorf("%w: project list is locked", ErrLifecycle)
	ErrVotingClosed     = fmt.Errorf("%w: voting is not open", ErrLifecycle)
	ErrVotingNotEnded   = fmt.Errorf("%w: voting has not ended", ErrLifecycle)
	ErrVotingEnded      = fmt.Errorf("%w: voting has ended", ErrLifecycle)
	ErrLocked           = fmt.Errorf("%w: round is locked for history", ErrLifecycle)
	ErrCannotExtend     = fmt.Errorf("%w: voting window can only be shortened", ErrLifecycle)

	ErrSelfVote = fmt.Errorf("%w: projects cannot vote", ErrRoleConflict)

	ErrAccountAlreadyVoted = fmt.Errorf("%w: account already voted with another ballot", ErrDuplicateVote)

	ErrNotOwner           = fmt.Errorf("%w: caller is not the round owner", ErrAuthorization)
	ErrNotPoolMember      = fmt.Errorf("%w: caller is not a voter of this entity", ErrAuthorization)
	ErrNotBallotOwner     = fmt.Errorf("%w: caller does not own this ballot", ErrAuthorization)
	ErrNotCommunityBallot = fmt.Errorf("%w: ballot is not a community ballot", ErrAuthorization)
)

func roleConflict(addr Address, held Role) error {
	return fmt.Errorf("%w: %s already holds role %s", ErrRoleConflict, addr, held)
}
