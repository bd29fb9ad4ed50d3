// SPDX-License-Identifier: Unlicense OR MIT

/*
Package gesture implements the drag gesture of sortable containers.

A Reorder consumes unified pointer events, already reduced from mouse and
touch input to Press, Move and End, and drives a Presenter through a drag:
a press on a movable item snapshots the item rectangles, the first move
replaces the item with a floating proxy, further moves preview the reorder
and the release commits it.
*/
package gesture

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"gioui.org/f32"
	"gioui.org/x/sortable/registry"
	"gioui.org/x/sortable/reorder"
)

// Reorder is the drag and drop state machine of one container.
type Reorder struct {
	reg    *registry.Registry
	geom   Geometry
	pres   Presenter
	logger *log.Logger

	state State
	// session is valid while state is not StateIdle.
	session session
}

type session struct {
	active registry.ID
	proxy  registry.ID
	// origin is the pointer position of the first move.
	origin  f32.Point
	frame   reorder.Frame
	movable registry.Sequence
	isMov   map[registry.ID]bool
}

// State is the state of a Reorder.
type State uint8

// EventKind is the kind of a pointer Event.
type EventKind uint8

// Event is a pointer event reduced to what the gesture needs.
type Event struct {
	Kind EventKind
	// Targets lists the item under the pointer followed by its
	// ancestors, innermost first. Only Press events use Targets.
	Targets []registry.ID
	// Position is the pointer position in viewport coordinates.
	Position f32.Point
}

// Result describes a committed reorder.
type Result struct {
	// From and To are the indices of the dragged and the hovered item
	// before the reorder.
	From, To int
	// Order is the refreshed item sequence.
	Order registry.Sequence
}

// Geometry reports item rectangles in viewport coordinates.
type Geometry interface {
	// Bounds returns the current rectangle of an item or proxy.
	Bounds(id registry.ID) reorder.Rect
}

// Presenter applies the visual effects of a drag.
type Presenter interface {
	// SetTransform translates an item or proxy from its laid out
	// position.
	SetTransform(id registry.ID, dx, dy float32)
	// SetTransitionDuration sets the duration of subsequent
	// transform changes of an item.
	SetTransitionDuration(id registry.ID, d time.Duration)
	// CreateProxy creates a floating copy exactly covering an item
	// and returns its ID.
	CreateProxy(id registry.ID) registry.ID
	DestroyProxy(proxy registry.ID)
	SetVisible(id registry.ID, visible bool)
	// Move relocates an item next to ref in the container order.
	Move(id, ref registry.ID, p reorder.Placement)
}

// Option configures a Reorder.
type Option func(r *Reorder)

const (
	// StateIdle is the default state.
	StateIdle State = iota
	// StatePressed is reported after a press on a movable item.
	StatePressed
	// StateDragging is reported while the proxy follows the pointer.
	StateDragging
)

const (
	// Press of a pointer.
	Press EventKind = iota
	// Move of a pointer.
	Move
	// End of a pointer gesture: release, cancel or leave.
	End
)

// WithLogger sets the logger for gesture transitions.
func WithLogger(l *log.Logger) Option {
	return func(r *Reorder) {
		if l != nil {
			r.logger = l
		}
	}
}

// New returns an idle Reorder for the items of reg.
func New(reg *registry.Registry, geom Geometry, pres Presenter, opts ...Option) *Reorder {
	r := &Reorder{
		reg:    reg,
		geom:   geom,
		pres:   pres,
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// State reports the gesture state.
func (r *Reorder) State() State {
	return r.state
}

// Active returns the item being pressed or dragged, if any.
func (r *Reorder) Active() (registry.ID, bool) {
	if r.state == StateIdle {
		return "", false
	}
	return r.session.active, true
}

// Handle advances the gesture with e. It reports the reorder committed
// by an End event, if any. Malformed or unexpected events are ignored.
func (r *Reorder) Handle(e Event) (Result, bool) {
	switch e.Kind {
	case Press:
		r.press(e)
	case Move:
		r.move(e)
	case End:
		return r.end()
	}
	return Result{}, false
}

func (r *Reorder) press(e Event) {
	if r.state != StateIdle {
		r.logger.Debug("ignoring press during drag", "active", r.session.active)
		return
	}
	id, ok := r.closest(e.Targets)
	if !ok {
		return
	}
	movable := r.reg.MovableSubsequence()
	s := session{
		active:  id,
		frame:   make(reorder.Frame, len(movable)),
		movable: movable,
		isMov:   make(map[registry.ID]bool, len(movable)),
	}
	for _, m := range movable {
		s.frame[m] = r.geom.Bounds(m)
		s.isMov[m] = true
	}
	r.session = s
	r.state = StatePressed
	r.logger.Debug("pressed", "item", id, "movable", len(movable))
}

// closest returns the first target that is a movable item.
func (r *Reorder) closest(targets []registry.ID) (registry.ID, bool) {
	for _, id := range targets {
		if r.reg.Movable(id) {
			return id, true
		}
	}
	return "", false
}

func (r *Reorder) move(e Event) {
	s := &r.session
	switch r.state {
	case StateIdle:
		return
	case StatePressed:
		s.proxy = r.pres.CreateProxy(s.active)
		r.pres.SetVisible(s.active, false)
		s.origin = e.Position
		r.state = StateDragging
		r.logger.Debug("drag started", "item", s.active, "proxy", s.proxy)
	}
	d := e.Position.Sub(s.origin)
	r.pres.SetTransform(s.proxy, d.X, d.Y)
	proxy := r.geom.Bounds(s.proxy)
	for _, sh := range reorder.Preview(s.movable, s.active, s.frame, proxy) {
		r.pres.SetTransitionDuration(sh.ID, sh.Duration)
		r.pres.SetTransform(sh.ID, sh.DX, sh.DY)
	}
}

func (r *Reorder) end() (Result, bool) {
	s := r.session
	switch r.state {
	case StateIdle:
		return Result{}, false
	case StatePressed:
		r.pres.SetVisible(s.active, true)
		r.reset()
		return Result{}, false
	}
	seq := r.reg.Sequence()
	plan, ok := reorder.Commit(seq, r.movable, s.active, s.frame, r.geom.Bounds(s.proxy))
	if ok {
		for _, rel := range plan.Relocations {
			r.pres.Move(rel.Item, rel.Ref, rel.Placement)
		}
	}
	r.pres.DestroyProxy(s.proxy)
	r.pres.SetVisible(s.active, true)
	for _, id := range seq {
		r.pres.SetTransitionDuration(id, 0)
		r.pres.SetTransform(id, 0, 0)
	}
	r.reset()
	if !ok {
		r.logger.Debug("drag dropped without reorder", "item", s.active)
		return Result{}, false
	}
	order := r.reg.Refresh()
	r.logger.Debug("reordered", "item", s.active, "from", plan.From, "to", plan.To)
	return Result{From: plan.From, To: plan.To, Order: order}, true
}

// movable reports whether id was movable when the gesture started.
func (r *Reorder) movable(id registry.ID) bool {
	return r.session.isMov[id]
}

func (r *Reorder) reset() {
	r.state = StateIdle
	r.session = session{}
}

func (s State) String() string {
	switch s {
	case StateIdle:
		return "StateIdle"
	case StatePressed:
		return "StatePressed"
	case StateDragging:
		return "StateDragging"
	default:
		panic("invalid State")
	}
}

func (k EventKind) String() string {
	switch k {
	case Press:
		return "Press"
	case Move:
		return "Move"
	case End:
		return "End"
	default:
		panic("invalid EventKind")
	}
}
