// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

// EntityPool is a named set of voters with their choices and per-project
// tallies. Choices are project indices.
type EntityPool struct {
	entity   EntityID
	members  []Address
	voteOf   map[Address]int
	hasVoted map[Address]bool
	isMember map[Address]bool
	tally    map[int]uint64
	cast     uint64
}

func NewEntityPool(entity EntityID) *EntityPool {
	return &EntityPool{
		entity:   entity,
		voteOf:   make(map[Address]int),
		hasVoted: make(map[Address]bool),
		isMember: make(map[Address]bool),
		tally:    make(map[int]uint64),
	}
}

func (p *EntityPool) Entity() EntityID { return p.entity }

func (p *EntityPool) Add(addr Address) error {
	if p.isMember[addr] {
		return ErrAlreadyMember
	}
	p.isMember[addr] = true
	p.members = append(p.members, addr)
	return nil
}

// Remove drops addr from the pool and rolls back its vote, if any.
func (p *EntityPool) Remove(addr Address) error {
	if !p.isMember[addr] {
		return ErrNotMember
	}
	if p.hasVoted[addr] {
		p.tally[p.voteOf[addr]]--
		p.cast--
	}
	delete(p.isMember, addr)
	delete(p.voteOf, addr)
	delete(p.hasVoted, addr)
	for i, m := range p.members {
		if m == addr {
			p.members = append(p.members[:i], p.members[i+1:]...)
			break
		}
	}
	return nil
}

func (p *EntityPool) IsMember(addr Address) bool { return p.isMember[addr] }

// Members returns a copy of the member list in admission order.
func (p *EntityPool) Members() []Address {
	out := make([]Address, len(p.members))
	copy(out, p.members)
	return out
}

func (p *EntityPool) Len() int { return len(p.members) }

// Vote records addr's choice and returns the previous one (0 if none).
func (p *EntityPool) Vote(addr Address, project int) (int, error) {
	if !p.isMember[addr] {
		return 0, ErrNotPoolMember
	}
	previous := 0
	if p.hasVoted[addr] {
		previous = p.voteOf[addr]
		p.tally[previous]--
	} else {
		p.hasVoted[addr] = true
		p.cast++
	}
	p.voteOf[addr] = project
	p.tally[project]++
	return previous, nil
}

func (p *EntityPool) VoteOf(addr Address) (int, bool) {
	if !p.hasVoted[addr] {
		return 0, false
	}
	return p.voteOf[addr], true
}

func (p *EntityPool) HasVoted(addr Address) bool { return p.hasVoted[addr] }

func (p *EntityPool) Tally(project int) uint64 { return p.tally[project] }

func (p *EntityPool) VotesCast() uint64 { return p.cast }

func (p *EntityPool) ResolveMajority(projectCount int) (int, bool) {
	return resolveMajority(projectCount, p.Tally)
}

func (p *EntityPool) singleChoice() (int, bool, bool) {
	if len(p.members) != 1 {
		return 0, false, false
	}
	project, voted := p.VoteOf(p.members[0])
	return project, voted, true
}
