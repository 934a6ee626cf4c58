// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package ballots keeps community ballot tokens for a round: who owns each
// token and which role tag it carries. Issuance is gated by the round so an
// address that already holds another role cannot receive a ballot.
package ballots

import (
	"errors"
	"fmt"
	"time"

	"github.com/algorand/go-deadlock"

	"github.com/danielhkuo/roundvote/voting"
)

var (
	ErrBallotHeld   = fmt.Errorf("%w: account already holds a ballot", voting.ErrConfiguration)
	ErrUnknownToken = fmt.Errorf("%w: unknown ballot token", voting.ErrInvalidArgument)
	ErrEmptyRole    = fmt.Errorf("%w: role tag required", voting.ErrInvalidArgument)
)

// Guard admits addresses into the community role. *voting.Controller
// implements it.
type Guard interface {
	AdmitCommunity(addr voting.Address, admit func() error) error
}

// Config identifies the round a book belongs to.
type Config struct {
	Iteration uint64
	Round     uint64
	Admin     voting.Address
	Notifier  voting.Notifier
}

// Book is an in-memory ballot ledger.
type Book struct {
	mu     deadlock.RWMutex
	cfg    Config
	guard  Guard
	next   voting.TokenID
	owner  map[voting.TokenID]voting.Address
	role   map[voting.TokenID]string
	holder map[voting.Address]voting.TokenID
}

func NewBook(cfg Config) *Book {
	return &Book{
		cfg:    cfg,
		next:   1,
		owner:  make(map[voting.TokenID]voting.Address),
		role:   make(map[voting.TokenID]string),
		holder: make(map[voting.Address]voting.TokenID),
	}
}

// SetGuard installs the round admission check. Mint and Transfer fail
// until a guard is set.
func (b *Book) SetGuard(g Guard) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.guard = g
}

// SetAdmin hands ballot issuance to a new round owner.
func (b *Book) SetAdmin(addr voting.Address) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cfg.Admin = addr
}

func (b *Book) admin() voting.Address {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cfg.Admin
}

func (b *Book) currentGuard() Guard {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.guard
}

// Mint issues a new ballot to `to` with the given role tag.
func (b *Book) Mint(caller, to voting.Address, role string) (voting.TokenID, error) {
	if caller != b.admin() {
		return 0, voting.ErrNotOwner
	}
	if to.IsZero() {
		return 0, voting.ErrInvalidAddress
	}
	if role == "" {
		return 0, ErrEmptyRole
	}
	guard := b.currentGuard()
	if guard == nil {
		return 0, errors.New("ballot book has no round guard")
	}

	var token voting.TokenID
	err := guard.AdmitCommunity(to, func() error {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, held := b.holder[to]; held {
			return ErrBallotHeld
		}
		token = b.next
		b.next++
		b.owner[token] = to
		b.role[token] = role
		b.holder[to] = token
		return nil
	})
	if err != nil {
		return 0, err
	}
	b.notify(voting.Event{Kind: voting.EventBallotMinted, Actor: caller, Subject: to, Token: token})
	return token, nil
}

// Transfer moves a ballot from its owner to another account. The recipient
// must be admissible to the community role and hold no other ballot.
func (b *Book) Transfer(caller, to voting.Address, token voting.TokenID) error {
	if to.IsZero() {
		return voting.ErrInvalidAddress
	}
	guard := b.currentGuard()
	if guard == nil {
		return errors.New("ballot book has no round guard")
	}
	err := guard.AdmitCommunity(to, func() error {
		b.mu.Lock()
		defer b.mu.Unlock()
		owner, ok := b.owner[token]
		if !ok {
			return ErrUnknownToken
		}
		if owner != caller {
			return voting.ErrNotBallotOwner
		}
		if _, held := b.holder[to]; held {
			return ErrBallotHeld
		}
		delete(b.holder, owner)
		b.owner[token] = to
		b.holder[to] = token
		return nil
	})
	if err != nil {
		return err
	}
	b.notify(voting.Event{Kind: voting.EventBallotTransferred, Actor: caller, Subject: to, Token: token})
	return nil
}

func (b *Book) notify(ev voting.Event) {
	if b.cfg.Notifier == nil {
		return
	}
	ev.Iteration = b.cfg.Iteration
	ev.Round = b.cfg.Round
	ev.At = time.Now()
	b.cfg.Notifier.Notify(ev)
}

func (b *Book) OwnerOf(token voting.TokenID) (voting.Address, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	a, ok := b.owner[token]
	return a, ok
}

func (b *Book) RoleOf(token voting.TokenID) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.role[token]
}

func (b *Book) HoldsBallot(addr voting.Address) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.holder[addr]
	return ok
}

// TokenOf returns the ballot addr currently holds.
func (b *Book) TokenOf(addr voting.Address) (voting.TokenID, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	t, ok := b.holder[addr]
	return t, ok
}
