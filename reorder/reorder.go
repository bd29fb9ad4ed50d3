// SPDX-License-Identifier: Unlicense OR MIT

/*
Package reorder implements the reordering algorithm behind drag and drop
sorting.

Rectangles of the movable items are captured once when a drag starts and
form the reference frame for every hover test of that drag. While dragging,
Preview computes the translation that moves a contiguous block of items one
slot towards the dragged item's origin. On release, Commit computes the
structural reorder, keeping fixed items in their slots.
*/
package reorder

import (
	"fmt"
	"time"

	"gioui.org/f32"
	"gioui.org/x/sortable/registry"
)

// TransitionDuration is the duration of every preview translation.
const TransitionDuration = 300 * time.Millisecond

// Rect is a rectangle in viewport coordinates.
type Rect struct {
	Left, Top, Width, Height float32
}

// Frame maps items to their rectangles at the start of a drag.
type Frame map[registry.ID]Rect

// Shift is the preview translation of a movable item.
type Shift struct {
	ID       registry.ID
	DX, DY   float32
	Duration time.Duration
}

// Placement is the side of a reference item an item is moved to.
type Placement uint8

// Relocation moves Item to the Placement side of Ref.
type Relocation struct {
	Item      registry.ID
	Ref       registry.ID
	Placement Placement
}

// Plan describes a committed reorder.
type Plan struct {
	// From and To are the indices of the dragged and the hovered item
	// in the original sequence.
	From, To int
	// Relocations are the structural moves, in application order.
	Relocations []Relocation
	// Order is the sequence after applying Relocations.
	Order registry.Sequence
}

const (
	// After places an item immediately after its reference.
	After Placement = iota
	// Before places an item immediately before its reference.
	Before
)

// Min returns the top-left corner of r.
func (r Rect) Min() f32.Point {
	return f32.Pt(r.Left, r.Top)
}

// Add returns r translated by p.
func (r Rect) Add(p f32.Point) Rect {
	r.Left += p.X
	r.Top += p.Y
	return r
}

// Hovers reports whether the top-left corner of r lies strictly
// within half the size of item around item's top-left corner.
func (r Rect) Hovers(item Rect) bool {
	hw, hh := item.Width/2, item.Height/2
	return r.Left > item.Left-hw && r.Left < item.Left+hw &&
		r.Top > item.Top-hh && r.Top < item.Top+hh
}

// Hover returns the index in seq of the movable item hovered by proxy,
// or -1. When several items match, the last one wins. Items missing from
// frame are never hovered.
func Hover(seq registry.Sequence, movable registry.Filter, frame Frame, proxy Rect) int {
	hovered := -1
	for i, id := range seq {
		if !movable(id) {
			continue
		}
		r, ok := frame[id]
		if !ok {
			continue
		}
		if proxy.Hovers(r) {
			hovered = i
		}
	}
	return hovered
}

// Preview returns the translation of every item of the movable
// subsequence while active is dragged with its proxy at proxy. Items are
// reset to zero translation when nothing is hovered.
func Preview(movable registry.Sequence, active registry.ID, frame Frame, proxy Rect) []Shift {
	shifts := make([]Shift, len(movable))
	for i, id := range movable {
		shifts[i] = Shift{ID: id, Duration: TransitionDuration}
	}
	initial, ok := movable.IndexOf(active)
	if !ok {
		return shifts
	}
	hovered := Hover(movable, all, frame, proxy)
	if hovered == -1 {
		return shifts
	}
	delta, low, high := span(initial, hovered)
	for i := range movable {
		if delta > 0 && i > low && i <= high || delta < 0 && i >= low && i < high {
			from, to := frame[movable[i]], frame[movable[i-delta]]
			shifts[i].DX = to.Left - from.Left
			shifts[i].DY = to.Top - from.Top
		}
	}
	return shifts
}

// Commit computes the reorder of seq when active is released with its
// proxy at proxy. It returns false if nothing is hovered or the hovered
// item is active itself. Commit panics if active is not in seq.
func Commit(seq registry.Sequence, movable registry.Filter, active registry.ID, frame Frame, proxy Rect) (Plan, bool) {
	if active == "" {
		return Plan{}, false
	}
	initial, ok := seq.IndexOf(active)
	if !ok {
		panic(fmt.Sprintf("reorder: active item %q is not in the sequence", active))
	}
	hovered := Hover(seq, movable, frame, proxy)
	if hovered == -1 || hovered == initial {
		return Plan{}, false
	}
	relocs := relocations(seq, movable, initial, hovered)
	return Plan{
		From:        initial,
		To:          hovered,
		Relocations: relocs,
		Order:       Apply(seq, relocs),
	}, true
}

// relocations moves the active item next to the hovered one, then walks
// the crossed span and moves every fixed item one slot back against the
// drag direction. items is the bookkeeping order of the walk: it tracks
// the fixed item moves but not the move of the active item.
func relocations(seq registry.Sequence, movable registry.Filter, initial, hovered int) []Relocation {
	items := seq.Clone()
	if hovered > initial {
		relocs := []Relocation{{Item: seq[initial], Ref: seq[hovered], Placement: After}}
		for i := hovered; i > initial; i-- {
			if movable(items[i]) || i+1 >= len(items) {
				continue
			}
			relocs = append(relocs, Relocation{Item: items[i], Ref: items[i+1], Placement: After})
			items[i], items[i+1] = items[i+1], items[i]
		}
		return relocs
	}
	relocs := []Relocation{{Item: seq[initial], Ref: seq[hovered], Placement: Before}}
	for i := hovered; i < initial; i++ {
		if movable(items[i]) || i == 0 {
			continue
		}
		relocs = append(relocs, Relocation{Item: items[i], Ref: items[i-1], Placement: Before})
		items[i-1], items[i] = items[i], items[i-1]
	}
	return relocs
}

// Apply returns a copy of seq with relocs applied in order. Relocations
// naming unknown items are skipped.
func Apply(seq registry.Sequence, relocs []Relocation) registry.Sequence {
	order := seq.Clone()
	for _, r := range relocs {
		order = apply(order, r)
	}
	return order
}

func apply(order registry.Sequence, r Relocation) registry.Sequence {
	if r.Item == r.Ref {
		return order
	}
	from, ok := order.IndexOf(r.Item)
	if !ok {
		return order
	}
	if _, ok := order.IndexOf(r.Ref); !ok {
		return order
	}
	order = append(order[:from], order[from+1:]...)
	at, _ := order.IndexOf(r.Ref)
	if r.Placement == After {
		at++
	}
	order = append(order, "")
	copy(order[at+1:], order[at:])
	order[at] = r.Item
	return order
}

func span(initial, hovered int) (delta, low, high int) {
	if hovered > initial {
		return 1, initial, hovered
	}
	return -1, hovered, initial
}

func all(registry.ID) bool { return true }

func (p Placement) String() string {
	switch p {
	case After:
		return "After"
	case Before:
		return "Before"
	default:
		panic("invalid Placement")
	}
}
