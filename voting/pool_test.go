// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func requireTallyIntegrity(t *testing.T, tl tallier, projects int) {
	t.Helper()
	var sum uint64
	for i := 1; i <= projects; i++ {
		sum += tl.Tally(i)
	}
	require.Equal(t, tl.VotesCast(), sum, "sum of tallies must equal votes cast")
}

func TestEntityPoolMembership(t *testing.T) {
	p := NewEntityPool(EntityOversight)
	require.Equal(t, EntityOversight, p.Entity())

	require.NoError(t, p.Add(addr(1)))
	require.NoError(t, p.Add(addr(2)))
	require.ErrorIs(t, p.Add(addr(1)), ErrAlreadyMember)
	require.Equal(t, []Address{addr(1), addr(2)}, p.Members())

	members := p.Members()
	members[0] = addr(99)
	require.Equal(t, addr(1), p.Members()[0], "Members returns a copy")

	require.ErrorIs(t, p.Remove(addr(3)), ErrNotMember)
	require.NoError(t, p.Remove(addr(1)))
	require.False(t, p.IsMember(addr(1)))
	require.Equal(t, 1, p.Len())
}

func TestEntityPoolVoteMutability(t *testing.T) {
	p := NewEntityPool(EntitySteering)
	require.NoError(t, p.Add(addr(1)))
	require.NoError(t, p.Add(addr(2)))

	_, err := p.Vote(addr(9), 1)
	require.ErrorIs(t, err, ErrNotPoolMember)

	prev, err := p.Vote(addr(1), 1)
	require.NoError(t, err)
	require.Zero(t, prev)
	requireTallyIntegrity(t, p, 3)

	prev, err = p.Vote(addr(1), 3)
	require.NoError(t, err)
	require.Equal(t, 1, prev)
	require.Zero(t, p.Tally(1))
	require.Equal(t, uint64(1), p.Tally(3))
	require.Equal(t, uint64(1), p.VotesCast())
	requireTallyIntegrity(t, p, 3)

	_, err = p.Vote(addr(2), 3)
	require.NoError(t, err)
	project, ok := p.ResolveMajority(3)
	require.True(t, ok)
	require.Equal(t, 3, project)
	requireTallyIntegrity(t, p, 3)
}

func TestEntityPoolRemoveRollsBackVote(t *testing.T) {
	p := NewEntityPool(EntityOversight)
	require.NoError(t, p.Add(addr(1)))
	require.NoError(t, p.Add(addr(2)))
	_, err := p.Vote(addr(1), 2)
	require.NoError(t, err)
	_, err = p.Vote(addr(2), 2)
	require.NoError(t, err)

	require.NoError(t, p.Remove(addr(1)))
	require.Equal(t, uint64(1), p.Tally(2))
	require.Equal(t, uint64(1), p.VotesCast())
	require.False(t, p.HasVoted(addr(1)))
	_, ok := p.VoteOf(addr(1))
	require.False(t, ok)
	requireTallyIntegrity(t, p, 2)

	// Re-admitted members start fresh.
	require.NoError(t, p.Add(addr(1)))
	require.False(t, p.HasVoted(addr(1)))
}

func TestEntityPoolSingleChoice(t *testing.T) {
	p := NewEntityPool(EntitySteering)
	_, _, single := p.singleChoice()
	require.False(t, single)

	require.NoError(t, p.Add(addr(1)))
	project, voted, single := p.singleChoice()
	require.True(t, single)
	require.False(t, voted)
	require.Zero(t, project)

	_, err := p.Vote(addr(1), 2)
	require.NoError(t, err)
	project, voted, _ = p.singleChoice()
	require.True(t, voted)
	require.Equal(t, 2, project)

	require.NoError(t, p.Add(addr(2)))
	_, _, single = p.singleChoice()
	require.False(t, single)
}

func TestCommunityPoolOneVotePerTokenAndAccount(t *testing.T) {
	c := NewCommunityPool()

	_, err := c.Vote(1, addr(1), 1)
	require.NoError(t, err)
	require.True(t, c.HasVoted(1))
	require.True(t, c.AccountHasVoted(addr(1)))

	// Same account, second token.
	_, err = c.Vote(2, addr(1), 1)
	require.ErrorIs(t, err, ErrAccountAlreadyVoted)
	require.ErrorIs(t, err, ErrDuplicateVote)
	require.False(t, c.HasVoted(2))

	// Same token, same account: change of mind.
	prev, err := c.Vote(1, addr(1), 2)
	require.NoError(t, err)
	require.Equal(t, 1, prev)
	require.Equal(t, uint64(1), c.VotesCast())
	require.Equal(t, uint64(1), c.Tally(2))
	requireTallyIntegrity(t, c, 2)
}

func TestCommunityPoolTransferredToken(t *testing.T) {
	c := NewCommunityPool()
	_, err := c.Vote(1, addr(1), 1)
	require.NoError(t, err)
	_, err = c.Vote(2, addr(2), 2)
	require.NoError(t, err)

	// Token 1 moves to addr(2), who already voted with token 2.
	_, err = c.Vote(1, addr(2), 2)
	require.ErrorIs(t, err, ErrAccountAlreadyVoted)
	v, _ := c.VoterOf(1)
	require.Equal(t, addr(1), v)

	// Token 1 moves to a fresh account, which may change its vote.
	prev, err := c.Vote(1, addr(3), 2)
	require.NoError(t, err)
	require.Equal(t, 1, prev)
	v, _ = c.VoterOf(1)
	require.Equal(t, addr(3), v)
	require.Equal(t, uint64(2), c.VotesCast())
	requireTallyIntegrity(t, c, 2)

	// The original account stays marked and cannot vote with a new token.
	require.True(t, c.AccountHasVoted(addr(1)))
	_, err = c.Vote(3, addr(1), 1)
	require.ErrorIs(t, err, ErrAccountAlreadyVoted)

	project, ok := c.ResolveMajority(2)
	require.True(t, ok)
	require.Equal(t, 2, project)
}

func TestProjectRegistry(t *testing.T) {
	r := NewProjectRegistry()
	for i := 1; i <= 3; i++ {
		idx, err := r.Add(addr(i))
		require.NoError(t, err)
		require.Equal(t, i, idx)
	}
	_, err := r.Add(addr(2))
	require.ErrorIs(t, err, ErrAlreadyProject)

	a, ok := r.At(2)
	require.True(t, ok)
	require.Equal(t, addr(2), a)
	_, ok = r.At(0)
	require.False(t, ok)
	_, ok = r.At(4)
	require.False(t, ok)

	require.NoError(t, r.Remove(addr(1)))
	require.ErrorIs(t, r.Remove(addr(1)), ErrUnknownProject)
	require.Equal(t, []Address{addr(2), addr(3)}, r.Addresses())
	idx, ok := r.IndexOf(addr(3))
	require.True(t, ok)
	require.Equal(t, 2, idx)

	r.Lock()
	require.True(t, r.Locked())
	_, err = r.Add(addr(9))
	require.ErrorIs(t, err, ErrProjectsLocked)
	require.ErrorIs(t, r.Remove(addr(2)), ErrProjectsLocked)
	require.Equal(t, 2, r.Len())
	require.True(t, r.Contains(addr(2)))
}

func TestParseAddress(t *testing.T) {
	tests := []struct {
		in      string
		want    Address
		wantErr bool
	}{
		{"0x00000000000000000000000000000000000000Ab", "0x00000000000000000000000000000000000000ab", false},
		{"  0X1111111111111111111111111111111111111111 ", "0x1111111111111111111111111111111111111111", false},
		{"0x123", "", true},
		{"1111111111111111111111111111111111111111", "", true},
		{"0xzz11111111111111111111111111111111111111", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAddress(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidAddress)
				require.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
	require.Panics(t, func() { MustParseAddress("nope") })
}

func TestParseEntityAndMode(t *testing.T) {
	for in, want := range map[string]EntityID{"0": EntitySteering, "Steering": EntitySteering, "1": EntityOversight, "oversight": EntityOversight} {
		got, err := ParseEntityID(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got)
	}
	for _, in := range []string{"2", "community", "-1", ""} {
		_, err := ParseEntityID(in)
		require.ErrorIs(t, err, ErrInvalidEntity, in)
	}

	m, err := ParseMode("Weighted")
	require.NoError(t, err)
	require.Equal(t, ModeWeighted, m)
	_, err = ParseMode("ranked")
	require.ErrorIs(t, err, ErrInvalidMode)

	require.Equal(t, "entity(5)", EntityID(5).String())
	require.False(t, EntityID(2).Valid())
	require.Equal(t, RoleNone, EntityID(2).Role())
	require.Equal(t, "voting_open", PhaseVotingOpen.String())
}
