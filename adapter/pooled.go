// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package adapter

import (
	"time"

	"github.com/danielhkuo/roundvote/voting"
)

// PooledController is the shape of the current controller.
type PooledController interface {
	Iteration() uint64
	StartTime() time.Time
	EndTime() time.Time
	IsActive() bool
	HasVotingEnded() bool
	VotingEnded() bool
	Phase() voting.Phase
	IsLocked() bool
	ProjectsLocked() bool
	VotingMode() voting.Mode
	Owner() voting.Address
	ProjectAddresses() []voting.Address
	IsRegisteredProject(addr voting.Address) bool
	EntityVoters(id voting.EntityID) ([]voting.Address, error)
	EntityVoteOf(id voting.EntityID, voter voting.Address) (voting.Address, error)
	EntityHasVoted(id voting.EntityID, voter voting.Address) (bool, error)
	IsEntityVoter(id voting.EntityID, addr voting.Address) (bool, error)
	EntityVote(id voting.EntityID) (voting.Outcome, error)
	CommunityVoteOf(token voting.TokenID) voting.Address
	CommunityHasVoted(token voting.TokenID) bool
	CommunityVote() voting.Outcome
	VoteParticipationCounts() voting.Participation
	ProjectVoteBreakdown(project voting.Address) voting.Breakdown
	Winner() voting.Outcome
	WinnerConsensus() voting.Outcome
	WinnerWeighted() voting.Outcome
	WinnerWithScores() voting.ScoreSheet
	RegisterProject(caller, project voting.Address) error
	AddEntityVoter(caller voting.Address, id voting.EntityID, voter voting.Address) error
	RemoveEntityVoter(caller voting.Address, id voting.EntityID, voter voting.Address) error
	Activate(caller voting.Address) error
	CloseVoting(caller voting.Address) error
	LockForHistory(caller voting.Address) error
	VoteEntity(caller voting.Address, id voting.EntityID, project voting.Address) error
	VoteCommunity(caller voting.Address, token voting.TokenID, project voting.Address) error
	RemoveProject(caller, project voting.Address) error
	ShortenVoting(caller voting.Address, end time.Time) error
	SetVotingMode(caller voting.Address, mode voting.Mode) error
	TransferOwnership(caller, newOwner voting.Address) error
	FinalWinner() (voting.Outcome, bool)
}

var _ PooledController = (*voting.Controller)(nil)

// Pooled adapts PooledController. Every operation is a passthrough.
type Pooled struct{}

func (Pooled) Version() string { return VersionPooled }

func (Pooled) Capabilities() Capabilities { return Table[VersionPooled] }

func (Pooled) Bind(controller any) (Round, error) {
	c, ok := controller.(PooledController)
	if !ok {
		return nil, ErrShapeMismatch
	}
	return pooledRound{c}, nil
}

// pooledRound embeds the controller, whose method set is the Round
// interface.
type pooledRound struct {
	PooledController
}
