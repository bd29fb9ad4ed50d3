// SPDX-License-Identifier: Unlicense OR MIT

/*
Package registry maintains the ordered sequence of reorderable items of a
container.

Items are identified by opaque IDs. A Registry rescans its Container on
Refresh and keeps the children accepted by the configured Selector, in
container order. The configured Filter partitions the sequence into movable
and fixed items.
*/
package registry

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ID identifies an item. IDs are compared by value and must stay
// stable for the lifetime of the item they name.
type ID string

// Sequence is an ordered list of item IDs, in visual order.
type Sequence []ID

// Container is the host of a set of items, such as a widget laying them
// out. Children returns the IDs in the current visual order.
type Container interface {
	Children() []ID
}

// Selector reports whether a child of the container is an item.
type Selector func(id ID) bool

// Filter reports whether an item is movable. Items rejected by the
// filter are fixed.
type Filter func(id ID) bool

// Config configures a Registry. Both fields are required.
type Config struct {
	// Selector identifies candidate items within the container.
	Selector Selector
	// Filter distinguishes movable from fixed items.
	Filter Filter
}

var (
	ErrNoContainer = errors.New("registry: nil container")
	ErrNoSelector  = errors.New("registry: missing item selector")
	ErrNoFilter    = errors.New("registry: missing item filter")
)

// Registry tracks the items of one container.
type Registry struct {
	container Container
	cfg       Config
	seq       Sequence
}

// NewID returns a new random ID.
func NewID() ID {
	return ID(uuid.NewString())
}

// Validate reports whether all required fields of c are set.
func (c Config) Validate() error {
	if c.Selector == nil {
		return ErrNoSelector
	}
	if c.Filter == nil {
		return ErrNoFilter
	}
	return nil
}

// New returns a registry for the items of c, populated by an initial
// Refresh.
func New(c Container, cfg Config) (*Registry, error) {
	if c == nil {
		return nil, ErrNoContainer
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("registry: invalid config: %w", err)
	}
	r := &Registry{container: c, cfg: cfg}
	r.Refresh()
	return r, nil
}

// Refresh rebuilds the sequence from the container and returns it.
// Sequences returned by earlier calls are not updated.
func (r *Registry) Refresh() Sequence {
	children := r.container.Children()
	seq := make(Sequence, 0, len(children))
	seen := make(map[ID]struct{}, len(children))
	for _, id := range children {
		if _, dup := seen[id]; dup || !r.cfg.Selector(id) {
			continue
		}
		seen[id] = struct{}{}
		seq = append(seq, id)
	}
	r.seq = seq
	return seq
}

// Sequence returns the sequence built by the last Refresh.
func (r *Registry) Sequence() Sequence {
	return r.seq
}

// Contains reports whether id is an item of the current sequence.
func (r *Registry) Contains(id ID) bool {
	_, ok := r.seq.IndexOf(id)
	return ok
}

// Movable reports whether id is an item that satisfies the filter.
func (r *Registry) Movable(id ID) bool {
	return r.Contains(id) && r.cfg.Filter(id)
}

// Filter returns the configured movable predicate.
func (r *Registry) Filter() Filter {
	return r.cfg.Filter
}

// MovableSubsequence returns the movable items of the current sequence.
func (r *Registry) MovableSubsequence() Sequence {
	return r.seq.Movable(r.cfg.Filter)
}

// Movable returns the items of s for which f holds, in order.
func (s Sequence) Movable(f Filter) Sequence {
	sub := make(Sequence, 0, len(s))
	for _, id := range s {
		if f(id) {
			sub = append(sub, id)
		}
	}
	return sub
}

// IndexOf returns the position of id in s.
func (s Sequence) IndexOf(id ID) (int, bool) {
	for i, it := range s {
		if it == id {
			return i, true
		}
	}
	return -1, false
}

// Clone returns a copy of s.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	c := make(Sequence, len(s))
	copy(c, s)
	return c
}

// Equal reports whether s and o hold the same IDs in the same order.
func (s Sequence) Equal(o Sequence) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

// Any is a Selector that accepts every child.
func Any(ID) bool { return true }
