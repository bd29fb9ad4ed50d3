// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"gioui.org/layout"
)

func TestNewDeck(t *testing.T) {
	d, err := newDeck(5, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(d.order); got != 5 {
		t.Fatalf("deck has %d cards", got)
	}
	var fixed []string
	for _, id := range d.order {
		if !d.movable(id) {
			fixed = append(fixed, d.title(id))
		}
	}
	if got, want := strings.Join(fixed, ","), "Card 2 (fixed),Card 4 (fixed)"; got != want {
		t.Errorf("fixed cards %q, want %q", got, want)
	}
	if d.movable("unknown") {
		t.Error("unknown card reported movable")
	}
}

func TestNewDeckWithoutFixed(t *testing.T) {
	d, err := newDeck(3, 0)
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range d.order {
		if !d.movable(id) {
			t.Errorf("card %s is fixed", d.title(id))
		}
	}
}

func TestRootCmdValidatesFlags(t *testing.T) {
	for _, args := range [][]string{
		{"--items", "0"},
		{"--fixed-every", "-1"},
	} {
		cmd := newRootCmd()
		cmd.SetArgs(args)
		cmd.SetOut(io.Discard)
		cmd.SetErr(io.Discard)
		if err := cmd.Execute(); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestNewUIAxis(t *testing.T) {
	logger := log.New(io.Discard)
	for _, tc := range []struct {
		horizontal bool
		want       layout.Axis
	}{
		{false, layout.Vertical},
		{true, layout.Horizontal},
	} {
		a, err := newUI(options{items: 3, horizontal: tc.horizontal}, logger)
		if err != nil {
			t.Fatal(err)
		}
		if got := a.list.Axis; got != tc.want {
			t.Errorf("horizontal=%v: axis %v, want %v", tc.horizontal, got, tc.want)
		}
	}
}
