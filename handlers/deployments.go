// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"sync"

	"github.com/danielhkuo/roundvote/adapter"
	"github.com/danielhkuo/roundvote/ballots"
	"github.com/danielhkuo/roundvote/db"
	"github.com/danielhkuo/roundvote/legacy"
	"github.com/danielhkuo/roundvote/registry"
	"github.com/danielhkuo/roundvote/voting"
)

// Deployments owns the rounds served by this process and their ballot
// books. Reads and writes on a round go through the registry.
type Deployments struct {
	reg      *registry.Registry
	store    *db.Store
	notifier voting.Notifier

	mu    sync.RWMutex
	books map[uint64]*ballots.Book
	next  uint64
}

// Notifier is the event sink shared by rounds, books and the registry:
// slog always, the store when one is configured.
func Notifier(store *db.Store) voting.Notifier {
	ns := voting.Notifiers{voting.LogNotifier{}}
	if store != nil {
		ns = append(ns, store)
	}
	return ns
}

// NewDeployments serves rounds bound in reg. store may be nil; when set,
// round numbers continue after the highest one it has recorded.
func NewDeployments(reg *registry.Registry, store *db.Store) *Deployments {
	next := uint64(1)
	if store != nil {
		next = store.LastRound() + 1
	}
	for _, id := range reg.Rounds() {
		if id >= next {
			next = id + 1
		}
	}
	return &Deployments{
		reg:      reg,
		store:    store,
		notifier: Notifier(store),
		books:    make(map[uint64]*ballots.Book),
		next:     next,
	}
}

func (d *Deployments) Registry() *registry.Registry { return d.reg }

// Deploy creates a round of the shape registered for version, binds it and
// returns its id. Only the registry owner may deploy.
func (d *Deployments) Deploy(caller voting.Address, version string, iteration uint64, mode voting.Mode, owner voting.Address) (uint64, error) {
	if caller != d.reg.Owner() {
		return 0, voting.ErrNotOwner
	}
	a, ok := d.reg.Adapter(version)
	if !ok {
		return 0, fmt.Errorf("%w: %s", registry.ErrUnknownVersion, version)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	id := d.next
	book := ballots.NewBook(ballots.Config{
		Iteration: iteration,
		Round:     id,
		Admin:     owner,
		Notifier:  d.notifier,
	})
	cfg := voting.Config{
		Iteration: iteration,
		Round:     id,
		Owner:     owner,
		Mode:      mode,
		Ballots:   book,
		Notifier:  d.notifier,
	}

	var controller any
	switch a.Version() {
	case adapter.VersionSingleSeat:
		r := legacy.New(cfg)
		book.SetGuard(r)
		controller = r
	default:
		c := voting.NewController(cfg)
		book.SetGuard(c)
		controller = c
	}

	if err := d.reg.RegisterRound(caller, id, controller); err != nil {
		return 0, err
	}
	d.next++
	d.books[id] = book
	if err := d.reg.SetRoundVersion(caller, id, version); err != nil {
		return 0, err
	}
	return id, nil
}

// Book returns the ballot book of round.
func (d *Deployments) Book(round uint64) (*ballots.Book, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	b, ok := d.books[round]
	if !ok {
		return nil, fmt.Errorf("%w: %d", registry.ErrUnknownRound, round)
	}
	return b, nil
}
