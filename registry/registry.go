// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package registry maps version tags to adapters and rounds to their
// controllers, so callers can resolve any round to a uniform view without
// knowing its shape. Every lookup fails closed.
package registry

import (
	"fmt"
	"sort"
	"sync"
	"time"

	orderedmap "github.com/wk8/go-ordered-map"

	"github.com/danielhkuo/roundvote/adapter"
	"github.com/danielhkuo/roundvote/voting"
)

var (
	ErrUnknownRound   = fmt.Errorf("%w: round is not registered", voting.ErrResolution)
	ErrUnbound        = fmt.Errorf("%w: round has no version binding", voting.ErrResolution)
	ErrUnknownVersion = fmt.Errorf("%w: no adapter registered for version", voting.ErrResolution)
	ErrAdapterExists  = fmt.Errorf("%w: adapter already registered for version", voting.ErrConfiguration)
	ErrRoundExists    = fmt.Errorf("%w: round already registered", voting.ErrConfiguration)
	ErrNilController  = fmt.Errorf("%w: controller required", voting.ErrInvalidArgument)
	ErrEmptyVersion   = fmt.Errorf("%w: version tag required", voting.ErrInvalidArgument)
	ErrNilAdapter     = fmt.Errorf("%w: adapter required", voting.ErrInvalidArgument)
)

// Binding is what GetConfig returns for a round.
type Binding struct {
	Round      uint64
	Controller any
	Version    string
	Adapter    adapter.Adapter
}

// AdapterInfo describes a registered adapter.
type AdapterInfo struct {
	Version      string
	Capabilities adapter.Capabilities
}

type roundEntry struct {
	controller any
	version    string
}

// Registry is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	owner    voting.Address
	adapters *orderedmap.OrderedMap // version -> adapter.Adapter
	rounds   map[uint64]*roundEntry
	notifier voting.Notifier
}

func New(owner voting.Address, notifier voting.Notifier) *Registry {
	return &Registry{
		owner:    owner,
		adapters: orderedmap.New(),
		rounds:   make(map[uint64]*roundEntry),
		notifier: notifier,
	}
}

func (r *Registry) Owner() voting.Address { return r.owner }

func (r *Registry) emit(ev voting.Event) {
	if r.notifier == nil {
		return
	}
	ev.At = time.Now()
	r.notifier.Notify(ev)
}

func (r *Registry) requireOwner(caller voting.Address) error {
	if caller != r.owner {
		return voting.ErrNotOwner
	}
	return nil
}

func (r *Registry) adapterFor(version string) (adapter.Adapter, bool) {
	v, ok := r.adapters.Get(version)
	if !ok {
		return nil, false
	}
	return v.(adapter.Adapter), true
}

// Adapter returns the adapter registered for version.
func (r *Registry) Adapter(version string) (adapter.Adapter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.adapterFor(version)
}

// SetAdapter registers a for version. A version's adapter is immutable
// once set; use ReplaceAdapter to change it.
func (r *Registry) SetAdapter(caller voting.Address, version string, a adapter.Adapter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.requireOwner(caller); err != nil {
		return err
	}
	if version == "" {
		return ErrEmptyVersion
	}
	if a == nil {
		return ErrNilAdapter
	}
	if _, ok := r.adapterFor(version); ok {
		return fmt.Errorf("%w: %s", ErrAdapterExists, version)
	}
	r.adapters.Set(version, a)
	r.emit(voting.Event{Kind: voting.EventAdapterSet, Actor: caller, Version: version})
	return nil
}

// ReplaceAdapter swaps the adapter of an existing version. Every round
// bound to version must bind to the new adapter, or nothing changes.
func (r *Registry) ReplaceAdapter(caller voting.Address, version string, a adapter.Adapter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.requireOwner(caller); err != nil {
		return err
	}
	if a == nil {
		return ErrNilAdapter
	}
	if _, ok := r.adapterFor(version); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownVersion, version)
	}
	for id, e := range r.rounds {
		if e.version != version {
			continue
		}
		if _, err := a.Bind(e.controller); err != nil {
			return fmt.Errorf("round %d: %w", id, err)
		}
	}
	r.adapters.Set(version, a)
	r.emit(voting.Event{Kind: voting.EventAdapterSet, Actor: caller, Version: version})
	return nil
}

// RegisterRound records a deployed controller under round. The round has
// no version until SetRoundVersion is called.
func (r *Registry) RegisterRound(caller voting.Address, round uint64, controller any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.requireOwner(caller); err != nil {
		return err
	}
	if controller == nil {
		return ErrNilController
	}
	if _, ok := r.rounds[round]; ok {
		return fmt.Errorf("%w: %d", ErrRoundExists, round)
	}
	r.rounds[round] = &roundEntry{controller: controller}
	return nil
}

// SetRoundVersion binds round to version. The round's controller must
// bind to that version's adapter.
func (r *Registry) SetRoundVersion(caller voting.Address, round uint64, version string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.requireOwner(caller); err != nil {
		return err
	}
	e, ok := r.rounds[round]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownRound, round)
	}
	a, ok := r.adapterFor(version)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownVersion, version)
	}
	if _, err := a.Bind(e.controller); err != nil {
		return err
	}
	e.version = version
	r.emit(voting.Event{Kind: voting.EventRoundBound, Actor: caller, Round: round, Version: version})
	return nil
}

// GetConfig returns the controller and adapter of round.
func (r *Registry) GetConfig(round uint64) (Binding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.rounds[round]
	if !ok {
		return Binding{}, fmt.Errorf("%w: %d", ErrUnknownRound, round)
	}
	if e.version == "" {
		return Binding{}, fmt.Errorf("%w: %d", ErrUnbound, round)
	}
	a, ok := r.adapterFor(e.version)
	if !ok {
		return Binding{}, fmt.Errorf("%w: %d", ErrUnbound, round)
	}
	return Binding{Round: round, Controller: e.controller, Version: e.version, Adapter: a}, nil
}

// Resolve returns the uniform view of round.
func (r *Registry) Resolve(round uint64) (adapter.Round, error) {
	b, err := r.GetConfig(round)
	if err != nil {
		return nil, err
	}
	return b.Adapter.Bind(b.Controller)
}

// Adapters lists registered adapters in registration order.
func (r *Registry) Adapters() []AdapterInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]AdapterInfo, 0, r.adapters.Len())
	for pair := r.adapters.Oldest(); pair != nil; pair = pair.Next() {
		a := pair.Value.(adapter.Adapter)
		out = append(out, AdapterInfo{Version: pair.Key.(string), Capabilities: a.Capabilities()})
	}
	return out
}

// Rounds lists registered round ids in ascending order.
func (r *Registry) Rounds() []uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]uint64, 0, len(r.rounds))
	for id := range r.rounds {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// RegisterBuiltins installs the adapters shipped with this module.
func (r *Registry) RegisterBuiltins(caller voting.Address) error {
	for _, version := range []string{adapter.VersionSingleSeat, adapter.VersionPooled} {
		a, _ := adapter.Builtin(version)
		if err := r.SetAdapter(caller, version, a); err != nil {
			return err
		}
	}
	return nil
}
