// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package adapter

import (
	"fmt"
	"time"

	"github.com/danielhkuo/roundvote/voting"
)

// ErrShapeMismatch is returned by Bind when the controller is not of the
// adapter's shape.
var ErrShapeMismatch = fmt.Errorf("%w: controller does not match adapter shape", voting.ErrResolution)

// Round is the uniform read/write surface of a round, whatever its shape.
type Round interface {
	// Lifecycle
	Iteration() uint64
	StartTime() time.Time
	EndTime() time.Time
	IsActive() bool
	HasVotingEnded() bool
	VotingEnded() bool
	Phase() voting.Phase

	// State
	IsLocked() bool
	ProjectsLocked() bool
	VotingMode() voting.Mode
	Owner() voting.Address

	// Projects
	ProjectAddresses() []voting.Address
	IsRegisteredProject(addr voting.Address) bool

	// Entity-generic
	EntityVoters(id voting.EntityID) ([]voting.Address, error)
	EntityVoteOf(id voting.EntityID, voter voting.Address) (voting.Address, error)
	EntityHasVoted(id voting.EntityID, voter voting.Address) (bool, error)
	IsEntityVoter(id voting.EntityID, addr voting.Address) (bool, error)
	EntityVote(id voting.EntityID) (voting.Outcome, error)

	// Community
	CommunityVoteOf(token voting.TokenID) voting.Address
	CommunityHasVoted(token voting.TokenID) bool
	CommunityVote() voting.Outcome

	// Aggregates
	VoteParticipationCounts() voting.Participation
	ProjectVoteBreakdown(project voting.Address) voting.Breakdown

	// Results
	Winner() voting.Outcome
	WinnerConsensus() voting.Outcome
	WinnerWeighted() voting.Outcome
	WinnerWithScores() voting.ScoreSheet

	// Role management
	RegisterProject(caller, project voting.Address) error
	AddEntityVoter(caller voting.Address, id voting.EntityID, voter voting.Address) error
	RemoveEntityVoter(caller voting.Address, id voting.EntityID, voter voting.Address) error
	Activate(caller voting.Address) error
	CloseVoting(caller voting.Address) error
	LockForHistory(caller voting.Address) error

	// Voting
	VoteEntity(caller voting.Address, id voting.EntityID, project voting.Address) error
	VoteCommunity(caller voting.Address, token voting.TokenID, project voting.Address) error

	// Administration. Shapes without the matching capability return
	// ErrUnsupported.
	RemoveProject(caller, project voting.Address) error
	ShortenVoting(caller voting.Address, end time.Time) error
	SetVotingMode(caller voting.Address, mode voting.Mode) error
	TransferOwnership(caller, newOwner voting.Address) error

	// FinalWinner is the outcome frozen at lock; ok is false until then.
	FinalWinner() (out voting.Outcome, ok bool)
}

// Adapter binds controllers of one shape to the Round interface.
type Adapter interface {
	Version() string
	Capabilities() Capabilities
	Bind(controller any) (Round, error)
}

// Builtin returns the adapter registered for a version tag.
func Builtin(version string) (Adapter, bool) {
	switch version {
	case VersionPooled:
		return Pooled{}, true
	case VersionSingleSeat:
		return SingleSeat{}, true
	default:
		return nil, false
	}
}
