// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package legacy_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/roundvote/legacy"
	"github.com/danielhkuo/roundvote/testutil"
	"github.com/danielhkuo/roundvote/voting"
)

func TestSteeringSeat(t *testing.T) {
	r, _ := testutil.NewSingleSeatRound(t)
	require.True(t, r.SteeringAccount().IsZero())
	require.False(t, r.SteeringHasVoted())
	require.ErrorIs(t, r.ClearSteeringAccount(testutil.Owner), voting.ErrNotMember)

	require.NoError(t, r.SetSteeringAccount(testutil.Owner, testutil.Steering(1)))
	require.Equal(t, testutil.Steering(1), r.SteeringAccount())
	require.ErrorIs(t, r.SetSteeringAccount(testutil.Owner, testutil.Steering(2)), voting.ErrSeatsFull)
	require.ErrorIs(t, r.SetSteeringAccount(testutil.Steering(1), testutil.Steering(2)), voting.ErrNotOwner)

	require.NoError(t, r.ClearSteeringAccount(testutil.Owner))
	require.True(t, r.SteeringAccount().IsZero())
	require.NoError(t, r.SetSteeringAccount(testutil.Owner, testutil.Steering(2)))
}

func TestSingleSeatRoundPlays(t *testing.T) {
	r, env := testutil.NewSingleSeatRound(t)
	require.NoError(t, r.RegisterProject(testutil.Owner, testutil.Project(1)))
	require.NoError(t, r.RegisterProject(testutil.Owner, testutil.Project(2)))
	require.NoError(t, r.SetSteeringAccount(testutil.Owner, testutil.Steering(1)))
	require.NoError(t, r.AddOversightVoter(testutil.Owner, testutil.Oversight(1)))
	require.NoError(t, r.AddOversightVoter(testutil.Owner, testutil.Oversight(2)))
	require.NoError(t, r.RemoveOversightVoter(testutil.Owner, testutil.Oversight(2)))
	tokens := testutil.Mint(t, env.Book, testutil.Community(1))

	require.Equal(t, 2, r.ProjectCount())
	require.Equal(t, testutil.Project(2), r.ProjectAt(2))
	require.True(t, r.ProjectAt(3).IsZero())
	require.Equal(t, []voting.Address{testutil.Oversight(1)}, r.OversightVoters())
	require.True(t, r.IsOversightVoter(testutil.Oversight(1)))

	require.NoError(t, r.Activate(testutil.Owner))
	require.True(t, r.IsActive())
	require.Equal(t, voting.PhaseVotingOpen, r.Phase())

	require.NoError(t, r.VoteSteering(testutil.Steering(1), testutil.Project(2)))
	require.NoError(t, r.VoteOversight(testutil.Oversight(1), testutil.Project(1)))
	require.NoError(t, r.VoteCommunity(testutil.Community(1), tokens[0], testutil.Project(2)))
	require.ErrorIs(t, r.VoteSteering(testutil.Oversight(1), testutil.Project(2)), voting.ErrNotPoolMember)

	require.Equal(t, testutil.Project(2), r.SteeringVote())
	require.True(t, r.SteeringHasVoted())
	require.Equal(t, testutil.Project(1), r.OversightVoteOf(testutil.Oversight(1)))
	require.True(t, r.OversightHasVoted(testutil.Oversight(1)))
	require.Equal(t, testutil.Project(1), r.OversightVote().Winner)
	require.Equal(t, testutil.Project(2), r.CommunityVoteOf(tokens[0]))
	require.True(t, r.CommunityHasVoted(tokens[0]))
	require.Equal(t, voting.Outcome{Winner: testutil.Project(2), HasWinner: true}, r.Winner())

	require.NoError(t, r.CloseVoting(testutil.Owner))
	require.True(t, r.HasVotingEnded())
	require.NoError(t, r.LockForHistory(testutil.Owner))
	require.True(t, r.Locked())
	require.Equal(t, testutil.Owner, r.Owner())
	require.Equal(t, uint64(testutil.TestIteration), r.Iteration())
	require.False(t, r.StartTime().IsZero())
	require.True(t, r.EndTime().Equal(env.Clock.Now()))
}

func TestNewForcesOneSeat(t *testing.T) {
	cfg := voting.Config{Owner: testutil.Owner, Mode: voting.ModeWeighted, SteeringSeats: 5}
	r := legacy.New(cfg)
	require.NoError(t, r.SetSteeringAccount(testutil.Owner, testutil.Steering(1)))
	require.ErrorIs(t, r.SetSteeringAccount(testutil.Owner, testutil.Steering(2)), voting.ErrSeatsFull)
}
