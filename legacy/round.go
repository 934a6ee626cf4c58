// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package legacy

import (
	"time"

	"github.com/danielhkuo/roundvote/voting"
)

// Round is a single-seat round. Voting always uses consensus mode.
type Round struct {
	inner *voting.Controller
}

// New deploys a single-seat round. cfg.Mode and cfg.SteeringSeats are
// ignored.
func New(cfg voting.Config) *Round {
	cfg.Mode = voting.ModeConsensus
	cfg.SteeringSeats = 1
	return &Round{inner: voting.NewController(cfg)}
}

// AdmitCommunity lets a ballot book gate issuance on this round's roles.
func (r *Round) AdmitCommunity(addr voting.Address, admit func() error) error {
	return r.inner.AdmitCommunity(addr, admit)
}

func (r *Round) SetBallots(b voting.BallotSource) { r.inner.SetBallots(b) }

func (r *Round) Iteration() uint64             { return r.inner.Iteration() }
func (r *Round) StartTime() time.Time          { return r.inner.StartTime() }
func (r *Round) EndTime() time.Time            { return r.inner.EndTime() }
func (r *Round) IsActive() bool                { return r.inner.IsActive() }
func (r *Round) HasVotingEnded() bool          { return r.inner.HasVotingEnded() }
func (r *Round) Locked() bool                  { return r.inner.IsLocked() }
func (r *Round) Owner() voting.Address         { return r.inner.Owner() }
func (r *Round) ProjectCount() int             { return r.inner.ProjectCount() }
func (r *Round) Phase() voting.Phase           { return r.inner.Phase() }
func (r *Round) Winner() voting.Outcome        { return r.inner.WinnerConsensus() }
func (r *Round) CommunityVote() voting.Outcome { return r.inner.CommunityVote() }

// ProjectAt returns the project at a 1-based index, or the empty Address.
func (r *Round) ProjectAt(index int) voting.Address {
	addr, _ := r.inner.ProjectAt(index)
	return addr
}

func (r *Round) IsRegisteredProject(addr voting.Address) bool {
	return r.inner.IsRegisteredProject(addr)
}

// SteeringAccount returns the seat holder, or the empty Address.
func (r *Round) SteeringAccount() voting.Address {
	voters, _ := r.inner.EntityVoters(voting.EntitySteering)
	if len(voters) == 0 {
		return ""
	}
	return voters[0]
}

// SteeringVote returns the seat holder's choice, or the empty Address.
func (r *Round) SteeringVote() voting.Address {
	account := r.SteeringAccount()
	if account.IsZero() {
		return ""
	}
	vote, _ := r.inner.EntityVoteOf(voting.EntitySteering, account)
	return vote
}

func (r *Round) SteeringHasVoted() bool {
	account := r.SteeringAccount()
	if account.IsZero() {
		return false
	}
	voted, _ := r.inner.EntityHasVoted(voting.EntitySteering, account)
	return voted
}

func (r *Round) OversightVoters() []voting.Address {
	voters, _ := r.inner.EntityVoters(voting.EntityOversight)
	return voters
}

func (r *Round) OversightVoteOf(voter voting.Address) voting.Address {
	vote, _ := r.inner.EntityVoteOf(voting.EntityOversight, voter)
	return vote
}

func (r *Round) OversightHasVoted(voter voting.Address) bool {
	voted, _ := r.inner.EntityHasVoted(voting.EntityOversight, voter)
	return voted
}

func (r *Round) IsOversightVoter(addr voting.Address) bool {
	ok, _ := r.inner.IsEntityVoter(voting.EntityOversight, addr)
	return ok
}

func (r *Round) OversightVote() voting.Outcome {
	out, _ := r.inner.EntityVote(voting.EntityOversight)
	return out
}

func (r *Round) CommunityVoteOf(token voting.TokenID) voting.Address {
	return r.inner.CommunityVoteOf(token)
}

func (r *Round) CommunityHasVoted(token voting.TokenID) bool {
	return r.inner.CommunityHasVoted(token)
}

// Writes.

func (r *Round) RegisterProject(caller, addr voting.Address) error {
	return r.inner.RegisterProject(caller, addr)
}

// SetSteeringAccount fills the empty steering seat.
func (r *Round) SetSteeringAccount(caller, account voting.Address) error {
	return r.inner.AddEntityVoter(caller, voting.EntitySteering, account)
}

// ClearSteeringAccount empties the steering seat and discards its vote.
func (r *Round) ClearSteeringAccount(caller voting.Address) error {
	account := r.SteeringAccount()
	if account.IsZero() {
		return voting.ErrNotMember
	}
	return r.inner.RemoveEntityVoter(caller, voting.EntitySteering, account)
}

func (r *Round) AddOversightVoter(caller, voter voting.Address) error {
	return r.inner.AddEntityVoter(caller, voting.EntityOversight, voter)
}

func (r *Round) RemoveOversightVoter(caller, voter voting.Address) error {
	return r.inner.RemoveEntityVoter(caller, voting.EntityOversight, voter)
}

func (r *Round) Activate(caller voting.Address) error { return r.inner.Activate(caller) }

func (r *Round) CloseVoting(caller voting.Address) error { return r.inner.CloseVoting(caller) }

func (r *Round) LockForHistory(caller voting.Address) error { return r.inner.LockForHistory(caller) }

func (r *Round) VoteSteering(caller, project voting.Address) error {
	return r.inner.VoteEntity(caller, voting.EntitySteering, project)
}

func (r *Round) VoteOversight(caller, project voting.Address) error {
	return r.inner.VoteEntity(caller, voting.EntityOversight, project)
}

func (r *Round) VoteCommunity(caller voting.Address, token voting.TokenID, project voting.Address) error {
	return r.inner.VoteCommunity(caller, token, project)
}
