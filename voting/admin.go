// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"fmt"
	"time"
)

// roleOf is the single role lookup used by every admission point. An
// address that has received a ballot or voted with one stays community for
// the rest of the round, even after the ballot moves on.
func (c *Controller) roleOf(addr Address) Role {
	if r, ok := c.roles[addr]; ok {
		return r
	}
	if c.community.AccountHasVoted(addr) {
		return RoleCommunity
	}
	if c.ballots != nil && c.ballots.HoldsBallot(addr) {
		return RoleCommunity
	}
	return RoleNone
}

// RoleOf returns the role addr holds in this round.
func (c *Controller) RoleOf(addr Address) Role {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.roleOf(addr)
}

// AdmitCommunity runs admit while holding the round's write lock, after
// checking that addr may hold a community ballot. Ballot books call it on
// mint and transfer so the role check and the issuance commit together.
func (c *Controller) AdmitCommunity(addr Address, admit func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.locked {
		return ErrLocked
	}
	if r := c.roleOf(addr); r != RoleNone && r != RoleCommunity {
		return roleConflict(addr, r)
	}
	if err := admit(); err != nil {
		return err
	}
	c.roles[addr] = RoleCommunity
	return nil
}

func (c *Controller) RegisterProject(caller, addr Address) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.requireOwner(caller); err != nil {
		return err
	}
	if addr.IsZero() {
		return ErrInvalidAddress
	}
	if c.locked {
		return ErrLocked
	}
	if c.activated {
		return ErrProjectsLocked
	}
	switch r := c.roleOf(addr); r {
	case RoleNone:
	case RoleProject:
		return ErrAlreadyProject
	default:
		return roleConflict(addr, r)
	}
	if _, err := c.projects.Add(addr); err != nil {
		return err
	}
	c.roles[addr] = RoleProject
	c.emit(Event{Kind: EventProjectRegistered, Actor: caller, Project: addr})
	return nil
}

// RemoveProject drops a project before activation; later indices shift down.
func (c *Controller) RemoveProject(caller, addr Address) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.requireOwner(caller); err != nil {
		return err
	}
	if c.locked {
		return ErrLocked
	}
	if c.activated {
		return ErrProjectsLocked
	}
	if err := c.projects.Remove(addr); err != nil {
		return err
	}
	delete(c.roles, addr)
	c.emit(Event{Kind: EventProjectRemoved, Actor: caller, Project: addr})
	return nil
}

func (c *Controller) AddEntityVoter(caller Address, id EntityID, voter Address) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, err := c.pool(id)
	if err != nil {
		return err
	}
	if err := c.requireOwner(caller); err != nil {
		return err
	}
	if voter.IsZero() {
		return ErrInvalidAddress
	}
	if err := c.requireMutableRoles(); err != nil {
		return err
	}
	switch r := c.roleOf(voter); r {
	case RoleNone:
	case id.Role():
		return ErrAlreadyMember
	default:
		return roleConflict(voter, r)
	}
	if id == EntitySteering && c.seats > 0 && p.Len() >= c.seats {
		return ErrSeatsFull
	}
	if err := p.Add(voter); err != nil {
		return err
	}
	c.roles[voter] = id.Role()
	c.emit(Event{Kind: EventVoterAdded, Actor: caller, Subject: voter, Entity: id})
	return nil
}

// RemoveEntityVoter drops voter and rolls back their vote.
func (c *Controller) RemoveEntityVoter(caller Address, id EntityID, voter Address) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, err := c.pool(id)
	if err != nil {
		return err
	}
	if err := c.requireOwner(caller); err != nil {
		return err
	}
	if err := c.requireMutableRoles(); err != nil {
		return err
	}
	if err := p.Remove(voter); err != nil {
		return err
	}
	delete(c.roles, voter)
	c.emit(Event{Kind: EventVoterRemoved, Actor: caller, Subject: voter, Entity: id})
	return nil
}

func (c *Controller) requireMutableRoles() error {
	if c.locked {
		return ErrLocked
	}
	if c.hasVotingEnded() {
		return ErrVotingEnded
	}
	return nil
}

// SetVotingMode changes the winner algorithm before activation.
func (c *Controller) SetVotingMode(caller Address, mode Mode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.requireOwner(caller); err != nil {
		return err
	}
	if mode != ModeConsensus && mode != ModeWeighted {
		return ErrInvalidMode
	}
	if c.locked {
		return ErrLocked
	}
	if c.activated {
		return ErrAlreadyActivated
	}
	c.mode = mode
	c.emit(Event{Kind: EventModeChanged, Actor: caller, Mode: mode})
	return nil
}

// Activate locks the project list and opens the voting window.
func (c *Controller) Activate(caller Address) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.requireOwner(caller); err != nil {
		return err
	}
	if c.activated {
		return ErrAlreadyActivated
	}
	switch {
	case c.steering.Len() == 0:
		return ErrNoSteeringVoters
	case c.oversight.Len() == 0:
		return ErrNoOversightVoters
	case c.projects.Len() == 0:
		return ErrNoProjects
	}
	c.activated = true
	c.startTime = c.now()
	c.endTime = c.startTime.Add(VotingPeriod)
	c.projects.Lock()
	c.emit(Event{Kind: EventActivated, Actor: caller})
	return nil
}

// CloseVoting ends the voting window now.
func (c *Controller) CloseVoting(caller Address) error {
	return c.ShortenVoting(caller, time.Time{})
}

// ShortenVoting moves the end of the window to end, which must not be later
// than the current end. Times in the past, and the zero time, mean now.
func (c *Controller) ShortenVoting(caller Address, end time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.requireOwner(caller); err != nil {
		return err
	}
	if !c.activated {
		return ErrNotActivated
	}
	if c.locked {
		return ErrLocked
	}
	if c.hasVotingEnded() {
		return ErrVotingEnded
	}
	now := c.now()
	if end.IsZero() || end.Before(now) {
		end = now
	}
	if end.After(c.endTime) {
		return fmt.Errorf("%w: requested %s, window ends %s", ErrCannotExtend,
			end.UTC().Format(time.RFC3339), c.endTime.UTC().Format(time.RFC3339))
	}
	c.endTime = end
	if !end.After(now) {
		c.votingClosed = true
	}
	c.emit(Event{Kind: EventVotingClosed, Actor: caller})
	return nil
}

// LockForHistory freezes the round after voting has ended.
func (c *Controller) LockForHistory(caller Address) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.requireOwner(caller); err != nil {
		return err
	}
	if c.locked {
		return ErrLocked
	}
	if !c.activated {
		return ErrNotActivated
	}
	if !c.hasVotingEnded() {
		return ErrVotingNotEnded
	}
	sheet := c.weightedSheet()
	c.final = c.winner()
	c.locked = true
	c.votingClosed = true
	c.emit(Event{Kind: EventLocked, Actor: caller, Mode: c.mode, Outcome: c.final, Scores: &sheet})
	return nil
}

// TransferOwnership hands the admin role to newOwner. Locked rounds are
// immutable and cannot change hands.
func (c *Controller) TransferOwnership(caller, newOwner Address) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.requireOwner(caller); err != nil {
		return err
	}
	if newOwner.IsZero() {
		return ErrInvalidAddress
	}
	if c.locked {
		return ErrLocked
	}
	c.owner = newOwner
	c.emit(Event{Kind: EventOwnershipTransferred, Actor: caller, Subject: newOwner})
	return nil
}
