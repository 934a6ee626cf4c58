// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

// CommunityPool holds one vote slot per ballot token. An account may vote
// with only one token; once a (token, account) pair is established the
// account may change that token's vote freely.
type CommunityPool struct {
	voteOf   map[TokenID]int
	voter    map[TokenID]Address
	accounts map[Address]TokenID
	tally    map[int]uint64
	cast     uint64
}

func NewCommunityPool() *CommunityPool {
	return &CommunityPool{
		voteOf:   make(map[TokenID]int),
		voter:    make(map[TokenID]Address),
		accounts: make(map[Address]TokenID),
		tally:    make(map[int]uint64),
	}
}

// Vote records the token's choice on behalf of account and returns the
// previous choice (0 if none). Ownership and role checks are the caller's.
func (c *CommunityPool) Vote(token TokenID, account Address, project int) (int, error) {
	previous, voted := c.voteOf[token]
	if !voted || c.voter[token] != account {
		// First vote by this token, or by a new holder of an already used one.
		if other, ok := c.accounts[account]; ok && other != token {
			return 0, ErrAccountAlreadyVoted
		}
	}

	if voted {
		c.tally[previous]--
	} else {
		c.cast++
	}
	c.voter[token] = account
	c.accounts[account] = token
	c.voteOf[token] = project
	c.tally[project]++
	return previous, nil
}

func (c *CommunityPool) VoteOf(token TokenID) (int, bool) {
	project, ok := c.voteOf[token]
	return project, ok
}

func (c *CommunityPool) HasVoted(token TokenID) bool {
	_, ok := c.voteOf[token]
	return ok
}

// VoterOf returns the account that last voted with token.
func (c *CommunityPool) VoterOf(token TokenID) (Address, bool) {
	a, ok := c.voter[token]
	return a, ok
}

// AccountHasVoted reports whether account has voted with any token.
func (c *CommunityPool) AccountHasVoted(account Address) bool {
	_, ok := c.accounts[account]
	return ok
}

func (c *CommunityPool) Tally(project int) uint64 { return c.tally[project] }

func (c *CommunityPool) VotesCast() uint64 { return c.cast }

func (c *CommunityPool) ResolveMajority(projectCount int) (int, bool) {
	return resolveMajority(projectCount, c.Tally)
}
