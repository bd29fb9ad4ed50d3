// SPDX-License-Identifier: Unlicense OR MIT

package reorder_test

import (
	"fmt"

	"gioui.org/x/sortable/registry"
	"gioui.org/x/sortable/reorder"
)

func ExampleCommit() {
	seq := registry.Sequence{"A", "B", "C", "D", "E"}
	// C and D are fixed.
	movable := func(id registry.ID) bool { return id != "C" && id != "D" }
	frame := make(reorder.Frame)
	for i, id := range seq {
		frame[id] = reorder.Rect{Top: float32(i) * 50, Width: 200, Height: 50}
	}
	// Drag A and release it over E.
	plan, ok := reorder.Commit(seq, movable, "A", frame, frame["E"])
	fmt.Println(ok, plan.Order)
	for _, r := range plan.Relocations {
		fmt.Println(r.Item, r.Placement, r.Ref)
	}

	// Output:
	// true [B E C D A]
	// A After E
	// D After E
	// C After E
}
