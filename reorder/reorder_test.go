// SPDX-License-Identifier: Unlicense OR MIT

package reorder

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"gioui.org/f32"
	"gioui.org/x/sortable/registry"
)

const (
	itemWidth  = 100
	itemHeight = 20
)

// column returns the frame of seq laid out top to bottom.
func column(seq registry.Sequence) Frame {
	f := make(Frame)
	for i, id := range seq {
		f[id] = Rect{Top: float32(i * itemHeight), Width: itemWidth, Height: itemHeight}
	}
	return f
}

func fixed(ids ...registry.ID) registry.Filter {
	return func(id registry.ID) bool {
		for _, f := range ids {
			if f == id {
				return false
			}
		}
		return true
	}
}

func seqOf(s string) registry.Sequence {
	seq := make(registry.Sequence, len(s))
	for i, r := range s {
		seq[i] = registry.ID(r)
	}
	return seq
}

func TestHovers(t *testing.T) {
	item := Rect{Left: 100, Top: 100, Width: 40, Height: 20}
	for _, tc := range []struct {
		name  string
		proxy f32.Point
		want  bool
	}{
		{"top-left corner", f32.Pt(100, 100), true},
		{"upper-left quadrant", f32.Pt(81, 91), true},
		{"inner bound", f32.Pt(119, 109), true},
		{"left edge", f32.Pt(80, 100), false},
		{"right edge", f32.Pt(120, 100), false},
		{"top edge", f32.Pt(100, 90), false},
		{"bottom edge", f32.Pt(100, 110), false},
		{"center", f32.Pt(120, 110), false},
		{"far away", f32.Pt(-500, 300), false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			proxy := Rect{Width: 40, Height: 20}.Add(tc.proxy)
			if got := proxy.Hovers(item); got != tc.want {
				t.Errorf("Hovers = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestHover(t *testing.T) {
	seq := seqOf("ABCD")
	frame := column(seq)
	if got := Hover(seq, fixed(), frame, frame["C"]); got != 2 {
		t.Errorf("hovered %d, want 2", got)
	}
	if got := Hover(seq, fixed("C"), frame, frame["C"]); got != -1 {
		t.Errorf("hovered fixed item %d", got)
	}
	if got := Hover(seq, fixed(), frame, Rect{Left: 500, Top: 500}); got != -1 {
		t.Errorf("hovered %d outside every item", got)
	}
	// Overlapping items: the last match wins.
	frame["D"] = frame["B"]
	if got := Hover(seq, fixed(), frame, frame["B"]); got != 3 {
		t.Errorf("hovered %d, want the last match 3", got)
	}
	delete(frame, "D")
	if got := Hover(seq, fixed(), frame, frame["B"]); got != 1 {
		t.Errorf("hovered %d, want 1 without D in frame", got)
	}
}

func TestPreview(t *testing.T) {
	for _, tc := range []struct {
		name   string
		seq    string
		active registry.ID
		over   registry.ID
		want   []float32 // vertical shift per item
	}{
		{"backward", "ABCD", "D", "A", []float32{20, 20, 20, 0}},
		{"forward", "ABCD", "A", "C", []float32{0, -20, -20, 0}},
		{"adjacent", "ABCD", "B", "C", []float32{0, 0, -20, 0}},
		{"own slot", "ABCD", "B", "B", []float32{0, 0, 0, 0}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			seq := seqOf(tc.seq)
			frame := column(seq)
			shifts := Preview(seq, tc.active, frame, frame[tc.over])
			var got []float32
			for i, s := range shifts {
				if s.ID != seq[i] {
					t.Errorf("shift %d is for %s, want %s", i, s.ID, seq[i])
				}
				if s.DX != 0 {
					t.Errorf("shift %d has horizontal offset %v", i, s.DX)
				}
				if s.Duration != TransitionDuration {
					t.Errorf("shift %d duration %v", i, s.Duration)
				}
				got = append(got, s.DY)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("shifts mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPreviewSkipsFixed(t *testing.T) {
	seq := seqOf("ABCDE")
	frame := column(seq)
	movable := seq.Movable(fixed("C", "D"))
	shifts := Preview(movable, "A", frame, frame["E"])
	// B moves to A's slot, E moves to B's slot.
	want := []Shift{
		{ID: "A", Duration: TransitionDuration},
		{ID: "B", DY: -20, Duration: TransitionDuration},
		{ID: "E", DY: -60, Duration: TransitionDuration},
	}
	if diff := cmp.Diff(want, shifts); diff != "" {
		t.Errorf("shifts mismatch (-want +got):\n%s", diff)
	}
}

func TestPreviewResetsWithoutHover(t *testing.T) {
	seq := seqOf("ABC")
	frame := column(seq)
	for _, s := range Preview(seq, "A", frame, Rect{Left: 1000, Top: 1000}) {
		if s.DX != 0 || s.DY != 0 {
			t.Errorf("item %s not reset: %+v", s.ID, s)
		}
	}
}

func TestPreviewIsPure(t *testing.T) {
	seq := seqOf("ABCDE")
	frame := column(seq)
	before := seq.Clone()
	first := Preview(seq, "E", frame, frame["B"])
	second := Preview(seq, "E", frame, frame["B"])
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated previews differ (-first +second):\n%s", diff)
	}
	if !seq.Equal(before) {
		t.Errorf("preview mutated the sequence: %v", seq)
	}
	if diff := cmp.Diff(column(before), frame); diff != "" {
		t.Errorf("preview mutated the frame (-want +got):\n%s", diff)
	}
}

func TestCommit(t *testing.T) {
	for _, tc := range []struct {
		name   string
		seq    string
		fixed  string
		active registry.ID
		over   registry.ID
		want   string
	}{
		{"backward", "ABCD", "", "D", "A", "DABC"},
		{"forward", "ABCD", "", "A", "D", "BCDA"},
		{"forward middle", "ABCDE", "", "B", "D", "ACDBE"},
		{"fixed span forward", "ABCDE", "CD", "A", "E", "BECDA"},
		{"fixed span backward", "ABCDE", "CD", "E", "A", "EACDB"},
		{"fixed between", "ABCDE", "BD", "A", "E", "CBEDA"},
		{"fixed neighbour", "ABC", "B", "C", "A", "CBA"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			seq := seqOf(tc.seq)
			frame := column(seq)
			filter := fixed(seqOf(tc.fixed)...)
			plan, ok := Commit(seq, filter, tc.active, frame, frame[tc.over])
			if !ok {
				t.Fatal("commit was a no-op")
			}
			if diff := cmp.Diff(seqOf(tc.want), plan.Order); diff != "" {
				t.Errorf("order mismatch (-want +got):\n%s", diff)
			}
			if got, want := plan.Order, Apply(seq, plan.Relocations); !got.Equal(want) {
				t.Errorf("Order %v does not match applied relocations %v", got, want)
			}
			if !seq.Equal(seqOf(tc.seq)) {
				t.Errorf("commit mutated its input: %v", seq)
			}
		})
	}
}

func TestCommitNoop(t *testing.T) {
	seq := seqOf("ABCD")
	frame := column(seq)
	for _, tc := range []struct {
		name   string
		active registry.ID
		proxy  Rect
	}{
		{"own footprint", "B", frame["B"]},
		{"nothing hovered", "B", Rect{Left: -1000}},
		{"no active item", "", frame["C"]},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if plan, ok := Commit(seq, fixed(), tc.active, frame, tc.proxy); ok {
				t.Errorf("unexpected commit: %+v", plan)
			}
		})
	}
}

func TestCommitUnknownActive(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for an active item outside the sequence")
		}
	}()
	seq := seqOf("AB")
	frame := column(seq)
	Commit(seq, fixed(), "Z", frame, frame["A"])
}

func TestCommitRelocations(t *testing.T) {
	seq := seqOf("ABCDE")
	frame := column(seq)
	plan, _ := Commit(seq, fixed("C", "D"), "A", frame, frame["E"])
	want := []Relocation{
		{Item: "A", Ref: "E", Placement: After},
		{Item: "D", Ref: "E", Placement: After},
		{Item: "C", Ref: "E", Placement: After},
	}
	if diff := cmp.Diff(want, plan.Relocations); diff != "" {
		t.Errorf("relocations mismatch (-want +got):\n%s", diff)
	}
	if plan.From != 0 || plan.To != 4 {
		t.Errorf("plan moves %d to %d", plan.From, plan.To)
	}
}

// TestCommitProperties checks chains of random drags against the
// reference reorder: fixed items keep their indices and movable items
// undergo a single element move within their subsequence.
func TestCommitProperties(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for n := 0; n < 500; n++ {
		size := 1 + rnd.Intn(9)
		orig := make(registry.Sequence, size)
		var fixedIDs []registry.ID
		for i := range orig {
			orig[i] = registry.ID(fmt.Sprintf("i%d", i))
			if rnd.Intn(3) == 0 {
				fixedIDs = append(fixedIDs, orig[i])
			}
		}
		filter := fixed(fixedIDs...)
		if len(orig.Movable(filter)) == 0 {
			continue
		}
		seq := orig
		for step := 0; step < 5; step++ {
			movable := seq.Movable(filter)
			active := movable[rnd.Intn(len(movable))]
			target := movable[rnd.Intn(len(movable))]
			frame := column(seq)
			plan, ok := Commit(seq, filter, active, frame, frame[target])
			if active == target {
				if ok {
					t.Fatalf("%v: drag of %s onto itself committed", seq, active)
				}
				continue
			}
			if !ok {
				t.Fatalf("%v: drag of %s onto %s did not commit", seq, active, target)
			}
			want := reference(seq, filter, active, target)
			if diff := cmp.Diff(want, plan.Order); diff != "" {
				t.Fatalf("%v fixed %v: drag %s onto %s (-want +got):\n%s", seq, fixedIDs, active, target, diff)
			}
			for i, id := range orig {
				if !filter(id) && plan.Order[i] != id {
					t.Fatalf("step %d: fixed item %s left index %d: %v", step, id, i, plan.Order)
				}
			}
			seq = plan.Order
		}
	}
}

func reference(seq registry.Sequence, filter registry.Filter, active, target registry.ID) registry.Sequence {
	movable := seq.Movable(filter)
	from, _ := movable.IndexOf(active)
	to, _ := movable.IndexOf(target)
	moved := append(movable[:from:from], movable[from+1:]...)
	moved = append(moved[:to], append(registry.Sequence{active}, moved[to:]...)...)
	out := make(registry.Sequence, len(seq))
	j := 0
	for i, id := range seq {
		if !filter(id) {
			out[i] = id
			continue
		}
		out[i] = moved[j]
		j++
	}
	return out
}

func TestApply(t *testing.T) {
	seq := seqOf("ABC")
	got := Apply(seq, []Relocation{
		{Item: "A", Ref: "C", Placement: After},
		{Item: "B", Ref: "C", Placement: After},
		{Item: "Z", Ref: "A", Placement: Before},
		{Item: "A", Ref: "Z", Placement: Before},
		{Item: "C", Ref: "C", Placement: Before},
	})
	if diff := cmp.Diff(seqOf("CBA"), got); diff != "" {
		t.Errorf("Apply mismatch (-want +got):\n%s", diff)
	}
	if !seq.Equal(seqOf("ABC")) {
		t.Errorf("Apply mutated its input: %v", seq)
	}
}
