// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

// VoteEntity casts or changes caller's vote in the steering or oversight pool.
func (c *Controller) VoteEntity(caller Address, id EntityID, project Address) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, err := c.pool(id)
	if err != nil {
		return err
	}
	if !c.votingOpen() {
		return ErrVotingClosed
	}
	if !p.IsMember(caller) {
		return ErrNotPoolMember
	}
	if c.projects.Contains(caller) {
		return ErrSelfVote
	}
	index, ok := c.projects.IndexOf(project)
	if !ok {
		return ErrUnknownProject
	}
	previous, err := p.Vote(caller, index)
	if err != nil {
		return err
	}
	prevAddr, _ := c.projects.At(previous)
	c.emit(Event{Kind: EventEntityVoteCast, Actor: caller, Entity: id, Project: project, Previous: prevAddr})
	return nil
}

// VoteCommunity casts or changes the vote of a community ballot held by
// caller.
func (c *Controller) VoteCommunity(caller Address, token TokenID, project Address) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.votingOpen() {
		return ErrVotingClosed
	}
	if c.ballots == nil {
		return ErrNotBallotOwner
	}
	if owner, ok := c.ballots.OwnerOf(token); !ok || owner != caller {
		return ErrNotBallotOwner
	}
	if c.ballots.RoleOf(token) != CommunityRole {
		return ErrNotCommunityBallot
	}
	if c.projects.Contains(caller) {
		return ErrSelfVote
	}
	index, ok := c.projects.IndexOf(project)
	if !ok {
		return ErrUnknownProject
	}
	previous, err := c.community.Vote(token, caller, index)
	if err != nil {
		return err
	}
	prevAddr, _ := c.projects.At(previous)
	c.emit(Event{Kind: EventCommunityVoteCast, Actor: caller, Token: token, Project: project, Previous: prevAddr})
	return nil
}
