package core

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Identifier hands out the lowest free slot index to an owner and takes it
// back on release. A zero limit means unbounded.
type Identifier[ID constraints.Unsigned, T comparable] struct {
	owners []T
	used   []bool
	limit  int
}

func NewIdentifier[ID constraints.Unsigned, T comparable](limit int) *Identifier[ID, T] {
	return &Identifier[ID, T]{limit: limit}
}

func (i *Identifier[ID, T]) AquireNewID(owner T) (ID, error) {
	for id := range i.used {
		// Existing free spot. Take it.
		if !i.used[id] {
			i.owners[id] = owner
			i.used[id] = true
			return ID(id), nil
		}
	}
	if i.limit > 0 && len(i.used) >= i.limit {
		return 0, fmt.Errorf("identifier: all %d slots in use: %w", i.limit, ErrPoolExhausted)
	}
	i.owners = append(i.owners, owner)
	i.used = append(i.used, true)
	return ID(len(i.used) - 1), nil
}

func (i *Identifier[ID, T]) ReleaseID(id ID) error {
	if int(id) >= len(i.used) {
		return fmt.Errorf("identifier: id '%d' out of range (max=%d): %w", id, len(i.used), ErrOutOfRange)
	}
	var zero T
	i.owners[id] = zero
	i.used[id] = false
	return nil
}

// Owner returns the owner registered for id.
func (i *Identifier[ID, T]) Owner(id ID) (T, bool) {
	var zero T
	if int(id) >= len(i.used) || !i.used[id] {
		return zero, false
	}
	return i.owners[id], true
}

// InUse reports how many slots are currently held.
func (i *Identifier[ID, T]) InUse() int {
	n := 0
	for _, u := range i.used {
		if u {
			n++
		}
	}
	return n
}
