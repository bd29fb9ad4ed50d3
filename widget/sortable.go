// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"image"
	"time"

	"github.com/charmbracelet/log"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/x/sortable/gesture"
	"gioui.org/x/sortable/registry"
	"gioui.org/x/sortable/reorder"
)

// Sortable lays out a list of items that can be reordered by dragging
// them with the pointer.
type Sortable struct {
	// Axis is the direction items are laid out in. The zero value is
	// layout.Horizontal; vertical lists set layout.Vertical.
	Axis layout.Axis
	// Selector selects the items among the IDs passed to Layout. A nil
	// Selector selects every ID.
	Selector registry.Selector
	// Filter reports whether an item is movable. A nil Filter makes
	// every item movable.
	Filter registry.Filter
	// Logger receives debug output of the drag gesture.
	Logger *log.Logger

	gesture *gesture.Reorder
	reg     *registry.Registry
	order   registry.Sequence
	items   map[registry.ID]*item
	proxy   proxy
	now     time.Time
	pid     pointer.ID
	grabbed bool
}

// ItemWidget lays out the item identified by id.
type ItemWidget func(gtx layout.Context, id registry.ID) layout.Dimensions

// Reorder describes a reorder committed by a drag.
type Reorder struct {
	// Item is the dragged item.
	Item registry.ID
	// From and To are the indices of the dragged and the hovered
	// item before the reorder.
	From, To int
	// Order is the new order of the items.
	Order registry.Sequence
}

type item struct {
	// bounds is the laid out rectangle, before any offset.
	bounds image.Rectangle
	offset transition
	// dur is the duration of the next offset change.
	dur    time.Duration
	hidden bool
}

// transition is a linear animation between two offsets.
type transition struct {
	from, to f32.Point
	start    time.Time
	dur      time.Duration
}

type proxy struct {
	id     registry.ID
	src    registry.ID
	offset f32.Point
}

// surface adapts a Sortable to the interfaces of the drag gesture.
type surface struct {
	s *Sortable
}

// inf is an infinite main axis constraint.
const inf = 1e6

func (s *Sortable) init() {
	if s.gesture != nil {
		return
	}
	s.items = make(map[registry.ID]*item)
	reg, err := registry.New(surface{s}, registry.Config{
		Selector: s.selects,
		Filter:   s.movable,
	})
	if err != nil {
		panic(err)
	}
	s.reg = reg
	s.gesture = gesture.New(reg, surface{s}, surface{s}, gesture.WithLogger(s.Logger))
}

func (s *Sortable) selects(id registry.ID) bool {
	return s.Selector == nil || s.Selector(id)
}

func (s *Sortable) movable(id registry.ID) bool {
	return s.Filter == nil || s.Filter(id)
}

// Dragging reports whether an item is being dragged.
func (s *Sortable) Dragging() bool {
	return s.gesture != nil && s.gesture.State() == gesture.StateDragging
}

// Active returns the item being pressed or dragged, if any.
func (s *Sortable) Active() (registry.ID, bool) {
	if s.gesture == nil {
		return "", false
	}
	return s.gesture.Active()
}

// Update processes pointer events and reports the next committed
// reorder, if any.
func (s *Sortable) Update(gtx layout.Context) (Reorder, bool) {
	s.init()
	s.now = gtx.Now
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: s,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		var ge gesture.Event
		switch e.Kind {
		case pointer.Press:
			if e.Source == pointer.Mouse && !e.Buttons.Contain(pointer.ButtonPrimary) {
				continue
			}
			if s.gesture.State() != gesture.StateIdle {
				continue
			}
			s.pid = e.PointerID
			ge = gesture.Event{Kind: gesture.Press, Targets: s.hit(e.Position), Position: e.Position}
		case pointer.Drag:
			if e.PointerID != s.pid {
				continue
			}
			if !s.grabbed && s.gesture.State() != gesture.StateIdle {
				gtx.Execute(pointer.GrabCmd{Tag: s, ID: e.PointerID})
				s.grabbed = true
			}
			ge = gesture.Event{Kind: gesture.Move, Position: e.Position}
		case pointer.Release:
			if e.PointerID != s.pid {
				continue
			}
			s.grabbed = false
			ge = gesture.Event{Kind: gesture.End, Position: e.Position}
		case pointer.Cancel:
			// Cancel carries no pointer ID.
			s.grabbed = false
			ge = gesture.Event{Kind: gesture.End}
		default:
			continue
		}
		active, _ := s.gesture.Active()
		if res, ok := s.gesture.Handle(ge); ok {
			return Reorder{Item: active, From: res.From, To: res.To, Order: res.Order}, true
		}
	}
	return Reorder{}, false
}

// hit returns the item under pos.
func (s *Sortable) hit(pos f32.Point) []registry.ID {
	p := pos.Round()
	for _, id := range s.order {
		if it, ok := s.items[id]; ok && p.In(it.bounds) {
			return []registry.ID{id}
		}
	}
	return nil
}

// Layout the items identified by ids. The order of ids is ignored
// during a drag.
func (s *Sortable) Layout(gtx layout.Context, ids []registry.ID, w ItemWidget) layout.Dimensions {
	for {
		if _, ok := s.Update(gtx); !ok {
			break
		}
	}
	if s.gesture.State() == gesture.StateIdle {
		s.setOrder(ids)
	}

	animating := false
	cs := gtx.Constraints
	if s.Axis == layout.Horizontal {
		cs.Min.X, cs.Max.X = 0, inf
	} else {
		cs.Min.Y, cs.Max.Y = 0, inf
	}
	macro := op.Record(gtx.Ops)
	var pos, cross int
	for _, id := range s.order {
		it := s.item(id)
		cgtx := gtx
		cgtx.Constraints = cs
		m := op.Record(gtx.Ops)
		dims := w(cgtx, id)
		call := m.Stop()
		main, c := s.split(dims.Size)
		off := s.point(pos, 0)
		it.bounds = image.Rectangle{Min: off, Max: off.Add(dims.Size)}
		if !it.hidden {
			t := op.Offset(off.Add(it.offset.at(s.now).Round())).Push(gtx.Ops)
			call.Add(gtx.Ops)
			t.Pop()
		}
		animating = animating || it.offset.running(s.now)
		pos += main
		if c > cross {
			cross = c
		}
	}
	children := macro.Stop()

	size := gtx.Constraints.Constrain(s.point(pos, cross))
	area := clip.Rect{Max: size}.Push(gtx.Ops)
	event.Op(gtx.Ops, s)
	children.Add(gtx.Ops)
	area.Pop()

	s.layoutProxy(gtx, w)
	if animating {
		gtx.Execute(op.InvalidateCmd{})
	}
	return layout.Dimensions{Size: size}
}

// layoutProxy draws the dragged item on top of everything else.
func (s *Sortable) layoutProxy(gtx layout.Context, w ItemWidget) {
	if s.proxy.id == "" {
		return
	}
	src, ok := s.items[s.proxy.src]
	if !ok {
		return
	}
	cgtx := gtx
	cgtx.Constraints = layout.Exact(src.bounds.Size())
	rec := op.Record(gtx.Ops)
	op.Offset(src.bounds.Min.Add(s.proxy.offset.Round())).Add(gtx.Ops)
	w(cgtx, s.proxy.src)
	op.Defer(gtx.Ops, rec.Stop())
}

func (s *Sortable) setOrder(ids []registry.ID) {
	s.order = append(s.order[:0], ids...)
	present := make(map[registry.ID]bool, len(ids))
	for _, id := range ids {
		present[id] = true
	}
	for id := range s.items {
		if !present[id] {
			delete(s.items, id)
		}
	}
	s.reg.Refresh()
}

func (s *Sortable) item(id registry.ID) *item {
	it, ok := s.items[id]
	if !ok {
		it = new(item)
		s.items[id] = it
	}
	return it
}

func (s *Sortable) point(main, cross int) image.Point {
	if s.Axis == layout.Horizontal {
		return image.Pt(main, cross)
	}
	return image.Pt(cross, main)
}

func (s *Sortable) split(p image.Point) (main, cross int) {
	if s.Axis == layout.Horizontal {
		return p.X, p.Y
	}
	return p.Y, p.X
}

func (t transition) at(now time.Time) f32.Point {
	if !t.running(now) {
		return t.to
	}
	if now.Before(t.start) {
		return t.from
	}
	p := float32(now.Sub(t.start)) / float32(t.dur)
	return t.from.Add(t.to.Sub(t.from).Mul(p))
}

func (t transition) running(now time.Time) bool {
	return t.dur > 0 && now.Before(t.start.Add(t.dur))
}

func (a surface) Children() []registry.ID {
	return a.s.order
}

func (a surface) Bounds(id registry.ID) reorder.Rect {
	s := a.s
	if id == s.proxy.id && id != "" {
		r := a.Bounds(s.proxy.src)
		return r.Add(s.proxy.offset)
	}
	it, ok := s.items[id]
	if !ok {
		return reorder.Rect{}
	}
	b := it.bounds
	return reorder.Rect{
		Left:   float32(b.Min.X),
		Top:    float32(b.Min.Y),
		Width:  float32(b.Dx()),
		Height: float32(b.Dy()),
	}
}

func (a surface) SetTransform(id registry.ID, dx, dy float32) {
	s := a.s
	to := f32.Pt(dx, dy)
	if id == s.proxy.id {
		s.proxy.offset = to
		return
	}
	it, ok := s.items[id]
	if !ok {
		return
	}
	// An unchanged target keeps the running transition.
	if it.offset.to == to && it.offset.dur == it.dur {
		return
	}
	it.offset = transition{
		from:  it.offset.at(s.now),
		to:    to,
		start: s.now,
		dur:   it.dur,
	}
}

func (a surface) SetTransitionDuration(id registry.ID, d time.Duration) {
	if it, ok := a.s.items[id]; ok {
		it.dur = d
	}
}

func (a surface) CreateProxy(id registry.ID) registry.ID {
	a.s.proxy = proxy{id: registry.NewID(), src: id}
	return a.s.proxy.id
}

func (a surface) DestroyProxy(p registry.ID) {
	if a.s.proxy.id == p {
		a.s.proxy = proxy{}
	}
}

func (a surface) SetVisible(id registry.ID, visible bool) {
	if it, ok := a.s.items[id]; ok {
		it.hidden = !visible
	}
}

func (a surface) Move(id, ref registry.ID, p reorder.Placement) {
	s := a.s
	s.order = reorder.Apply(s.order, []reorder.Relocation{{Item: id, Ref: ref, Placement: p}})
}
