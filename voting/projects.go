// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	orderedmap "github.com/wk8/go-ordered-map"
)

// ProjectRegistry is the ordered candidate list of a round. Indices are
// 1-based and dense; removing a project before the list is locked compacts
// the indices of later projects.
type ProjectRegistry struct {
	entries *orderedmap.OrderedMap // Address -> int index
	locked  bool
}

func NewProjectRegistry() *ProjectRegistry {
	return &ProjectRegistry{entries: orderedmap.New()}
}

// Add appends addr and returns its index.
func (r *ProjectRegistry) Add(addr Address) (int, error) {
	if r.locked {
		return 0, ErrProjectsLocked
	}
	if _, ok := r.entries.Get(addr); ok {
		return 0, ErrAlreadyProject
	}
	index := r.entries.Len() + 1
	r.entries.Set(addr, index)
	return index, nil
}

// Remove drops addr and renumbers the projects registered after it.
func (r *ProjectRegistry) Remove(addr Address) error {
	if r.locked {
		return ErrProjectsLocked
	}
	if _, ok := r.entries.Delete(addr); !ok {
		return ErrUnknownProject
	}
	index := 1
	for pair := r.entries.Oldest(); pair != nil; pair = pair.Next() {
		pair.Value = index
		index++
	}
	return nil
}

func (r *ProjectRegistry) IndexOf(addr Address) (int, bool) {
	v, ok := r.entries.Get(addr)
	if !ok {
		return 0, false
	}
	return v.(int), true
}

// At returns the project at a 1-based index.
func (r *ProjectRegistry) At(index int) (Address, bool) {
	if index < 1 || index > r.entries.Len() {
		return "", false
	}
	for pair := r.entries.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.(int) == index {
			return pair.Key.(Address), true
		}
	}
	return "", false
}

func (r *ProjectRegistry) Contains(addr Address) bool {
	_, ok := r.entries.Get(addr)
	return ok
}

// Addresses returns the projects in index order.
func (r *ProjectRegistry) Addresses() []Address {
	out := make([]Address, 0, r.entries.Len())
	for pair := r.entries.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key.(Address))
	}
	return out
}

func (r *ProjectRegistry) Len() int { return r.entries.Len() }

// Lock makes the list immutable. It cannot be undone.
func (r *ProjectRegistry) Lock() { r.locked = true }

func (r *ProjectRegistry) Locked() bool { return r.locked }
