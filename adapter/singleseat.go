// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package adapter

import (
	"time"

	"github.com/danielhkuo/roundvote/legacy"
	"github.com/danielhkuo/roundvote/voting"
)

// SingleSeatController is the shape of the first deployed controller: one
// steering account and no bulk project list.
type SingleSeatController interface {
	Iteration() uint64
	StartTime() time.Time
	EndTime() time.Time
	IsActive() bool
	HasVotingEnded() bool
	Locked() bool
	Owner() voting.Address
	Phase() voting.Phase
	ProjectCount() int
	ProjectAt(index int) voting.Address
	IsRegisteredProject(addr voting.Address) bool
	SteeringAccount() voting.Address
	SteeringVote() voting.Address
	SteeringHasVoted() bool
	OversightVoters() []voting.Address
	OversightVoteOf(voter voting.Address) voting.Address
	OversightHasVoted(voter voting.Address) bool
	IsOversightVoter(addr voting.Address) bool
	OversightVote() voting.Outcome
	CommunityVoteOf(token voting.TokenID) voting.Address
	CommunityHasVoted(token voting.TokenID) bool
	CommunityVote() voting.Outcome
	Winner() voting.Outcome
	RegisterProject(caller, addr voting.Address) error
	SetSteeringAccount(caller, account voting.Address) error
	ClearSteeringAccount(caller voting.Address) error
	AddOversightVoter(caller, voter voting.Address) error
	RemoveOversightVoter(caller, voter voting.Address) error
	Activate(caller voting.Address) error
	CloseVoting(caller voting.Address) error
	LockForHistory(caller voting.Address) error
	VoteSteering(caller, project voting.Address) error
	VoteOversight(caller, project voting.Address) error
	VoteCommunity(caller voting.Address, token voting.TokenID, project voting.Address) error
}

// SingleSeat adapts SingleSeatController, recomputing what the shape does
// not expose.
type SingleSeat struct{}

func (SingleSeat) Version() string { return VersionSingleSeat }

func (SingleSeat) Capabilities() Capabilities { return Table[VersionSingleSeat] }

func (SingleSeat) Bind(controller any) (Round, error) {
	r, ok := controller.(SingleSeatController)
	if !ok {
		return nil, ErrShapeMismatch
	}
	return &singleSeatRound{r: r}, nil
}

type singleSeatRound struct {
	r SingleSeatController
}

func (s *singleSeatRound) Iteration() uint64      { return s.r.Iteration() }
func (s *singleSeatRound) StartTime() time.Time   { return s.r.StartTime() }
func (s *singleSeatRound) EndTime() time.Time     { return s.r.EndTime() }
func (s *singleSeatRound) IsActive() bool         { return s.r.IsActive() }
func (s *singleSeatRound) HasVotingEnded() bool   { return s.r.HasVotingEnded() }
func (s *singleSeatRound) Phase() voting.Phase    { return s.r.Phase() }
func (s *singleSeatRound) IsLocked() bool         { return s.r.Locked() }
func (s *singleSeatRound) Owner() voting.Address  { return s.r.Owner() }
func (s *singleSeatRound) Winner() voting.Outcome { return s.r.Winner() }

// VotingEnded falls back to the window and lock state.
func (s *singleSeatRound) VotingEnded() bool {
	absent(VersionSingleSeat, CapVotingEndedFlag, "VotingEnded")
	return s.r.HasVotingEnded() || s.r.Locked()
}

// ProjectsLocked is true once the round has been activated.
func (s *singleSeatRound) ProjectsLocked() bool {
	absent(VersionSingleSeat, CapProjectsLockedFlag, "ProjectsLocked")
	return !s.r.StartTime().IsZero()
}

func (s *singleSeatRound) VotingMode() voting.Mode {
	absent(VersionSingleSeat, CapVotingMode, "VotingMode")
	return voting.ModeConsensus
}

func (s *singleSeatRound) ProjectAddresses() []voting.Address {
	absent(VersionSingleSeat, CapProjectList, "ProjectAddresses")
	n := s.r.ProjectCount()
	addrs := make([]voting.Address, 0, n)
	for i := 1; i <= n; i++ {
		addrs = append(addrs, s.r.ProjectAt(i))
	}
	return addrs
}

func (s *singleSeatRound) IsRegisteredProject(addr voting.Address) bool {
	return s.r.IsRegisteredProject(addr)
}

func (s *singleSeatRound) EntityVoters(id voting.EntityID) ([]voting.Address, error) {
	switch id {
	case voting.EntitySteering:
		if account := s.r.SteeringAccount(); !account.IsZero() {
			return []voting.Address{account}, nil
		}
		return []voting.Address{}, nil
	case voting.EntityOversight:
		return s.r.OversightVoters(), nil
	default:
		return nil, voting.ErrInvalidEntity
	}
}

func (s *singleSeatRound) isSeat(addr voting.Address) bool {
	return !addr.IsZero() && addr == s.r.SteeringAccount()
}

func (s *singleSeatRound) EntityVoteOf(id voting.EntityID, voter voting.Address) (voting.Address, error) {
	switch id {
	case voting.EntitySteering:
		if !s.isSeat(voter) {
			return "", nil
		}
		return s.r.SteeringVote(), nil
	case voting.EntityOversight:
		return s.r.OversightVoteOf(voter), nil
	default:
		return "", voting.ErrInvalidEntity
	}
}

func (s *singleSeatRound) EntityHasVoted(id voting.EntityID, voter voting.Address) (bool, error) {
	switch id {
	case voting.EntitySteering:
		return s.isSeat(voter) && s.r.SteeringHasVoted(), nil
	case voting.EntityOversight:
		return s.r.OversightHasVoted(voter), nil
	default:
		return false, voting.ErrInvalidEntity
	}
}

func (s *singleSeatRound) IsEntityVoter(id voting.EntityID, addr voting.Address) (bool, error) {
	switch id {
	case voting.EntitySteering:
		return s.isSeat(addr), nil
	case voting.EntityOversight:
		return s.r.IsOversightVoter(addr), nil
	default:
		return false, voting.ErrInvalidEntity
	}
}

// EntityVote treats the steering seat as a pool of one.
func (s *singleSeatRound) EntityVote(id voting.EntityID) (voting.Outcome, error) {
	switch id {
	case voting.EntitySteering:
		if !s.r.SteeringHasVoted() {
			return voting.Outcome{}, nil
		}
		return voting.Outcome{Winner: s.r.SteeringVote(), HasWinner: true}, nil
	case voting.EntityOversight:
		return s.r.OversightVote(), nil
	default:
		return voting.Outcome{}, voting.ErrInvalidEntity
	}
}

func (s *singleSeatRound) CommunityVoteOf(token voting.TokenID) voting.Address {
	return s.r.CommunityVoteOf(token)
}

func (s *singleSeatRound) CommunityHasVoted(token voting.TokenID) bool {
	return s.r.CommunityHasVoted(token)
}

func (s *singleSeatRound) CommunityVote() voting.Outcome { return s.r.CommunityVote() }

// VoteParticipationCounts recomputes steering and oversight counts from the
// per-voter flags. Community participation is not tracked by this shape and
// reads as zero.
func (s *singleSeatRound) VoteParticipationCounts() voting.Participation {
	absent(VersionSingleSeat, CapParticipation, "VoteParticipationCounts")
	var p voting.Participation
	if s.r.SteeringHasVoted() {
		p.Steering = 1
	}
	for _, v := range s.r.OversightVoters() {
		if s.r.OversightHasVoted(v) {
			p.Oversight++
		}
	}
	return p
}

// ProjectVoteBreakdown recomputes steering and oversight counts. Community
// counts read as zero.
func (s *singleSeatRound) ProjectVoteBreakdown(project voting.Address) voting.Breakdown {
	absent(VersionSingleSeat, CapBreakdown, "ProjectVoteBreakdown")
	var b voting.Breakdown
	if project.IsZero() || !s.r.IsRegisteredProject(project) {
		return b
	}
	if s.r.SteeringHasVoted() && s.r.SteeringVote() == project {
		b.Steering = 1
	}
	for _, v := range s.r.OversightVoters() {
		if s.r.OversightVoteOf(v) == project {
			b.Oversight++
		}
	}
	return b
}

func (s *singleSeatRound) WinnerConsensus() voting.Outcome { return s.r.Winner() }

func (s *singleSeatRound) WinnerWeighted() voting.Outcome {
	absent(VersionSingleSeat, CapWeighted, "WinnerWeighted")
	return voting.Outcome{}
}

func (s *singleSeatRound) WinnerWithScores() voting.ScoreSheet {
	absent(VersionSingleSeat, CapWeighted, "WinnerWithScores")
	return voting.ScoreSheet{}
}

func (s *singleSeatRound) RegisterProject(caller, project voting.Address) error {
	return s.r.RegisterProject(caller, project)
}

func (s *singleSeatRound) AddEntityVoter(caller voting.Address, id voting.EntityID, voter voting.Address) error {
	switch id {
	case voting.EntitySteering:
		return s.r.SetSteeringAccount(caller, voter)
	case voting.EntityOversight:
		return s.r.AddOversightVoter(caller, voter)
	default:
		return voting.ErrInvalidEntity
	}
}

func (s *singleSeatRound) RemoveEntityVoter(caller voting.Address, id voting.EntityID, voter voting.Address) error {
	switch id {
	case voting.EntitySteering:
		if caller != s.r.Owner() {
			return voting.ErrNotOwner
		}
		if !s.isSeat(voter) {
			return voting.ErrNotMember
		}
		return s.r.ClearSteeringAccount(caller)
	case voting.EntityOversight:
		return s.r.RemoveOversightVoter(caller, voter)
	default:
		return voting.ErrInvalidEntity
	}
}

func (s *singleSeatRound) Activate(caller voting.Address) error { return s.r.Activate(caller) }

func (s *singleSeatRound) CloseVoting(caller voting.Address) error { return s.r.CloseVoting(caller) }

func (s *singleSeatRound) LockForHistory(caller voting.Address) error {
	return s.r.LockForHistory(caller)
}

func (s *singleSeatRound) VoteEntity(caller voting.Address, id voting.EntityID, project voting.Address) error {
	switch id {
	case voting.EntitySteering:
		return s.r.VoteSteering(caller, project)
	case voting.EntityOversight:
		return s.r.VoteOversight(caller, project)
	default:
		return voting.ErrInvalidEntity
	}
}

func (s *singleSeatRound) VoteCommunity(caller voting.Address, token voting.TokenID, project voting.Address) error {
	return s.r.VoteCommunity(caller, token, project)
}

func (s *singleSeatRound) RemoveProject(caller, project voting.Address) error {
	return unsupported(VersionSingleSeat, CapRemoveProject, "RemoveProject")
}

func (s *singleSeatRound) ShortenVoting(caller voting.Address, end time.Time) error {
	return unsupported(VersionSingleSeat, CapShortenVoting, "ShortenVoting")
}

func (s *singleSeatRound) SetVotingMode(caller voting.Address, mode voting.Mode) error {
	return unsupported(VersionSingleSeat, CapSetVotingMode, "SetVotingMode")
}

func (s *singleSeatRound) TransferOwnership(caller, newOwner voting.Address) error {
	return unsupported(VersionSingleSeat, CapTransferOwnership, "TransferOwnership")
}

// FinalWinner recomputes the consensus winner once locked. Nothing mutates
// a locked round, so the recomputation is the frozen outcome.
func (s *singleSeatRound) FinalWinner() (voting.Outcome, bool) {
	if !s.r.Locked() {
		return voting.Outcome{}, false
	}
	return s.r.Winner(), true
}

var _ SingleSeatController = (*legacy.Round)(nil)
