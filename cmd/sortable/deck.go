// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/exp/shiny/materialdesign/icons"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	gwidget "gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/sortable/registry"
	sortable "gioui.org/x/sortable/widget"
)

type card struct {
	title string
	fixed bool
}

// deck is the model of the demo: a list of cards, some of which are
// fixed in place.
type deck struct {
	order registry.Sequence
	cards map[registry.ID]card

	handle *gwidget.Icon
	lock   *gwidget.Icon
}

var (
	cardColor  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	fixedColor = color.NRGBA{R: 0xdd, G: 0xdd, B: 0xe4, A: 0xff}
	iconColor  = color.NRGBA{R: 0x60, G: 0x60, B: 0x70, A: 0xff}
)

func newDeck(n, fixedEvery int) (*deck, error) {
	handle, err := gwidget.NewIcon(icons.NavigationMenu)
	if err != nil {
		return nil, err
	}
	lock, err := gwidget.NewIcon(icons.ActionLock)
	if err != nil {
		return nil, err
	}
	d := &deck{
		cards:  make(map[registry.ID]card, n),
		handle: handle,
		lock:   lock,
	}
	for i := 1; i <= n; i++ {
		id := registry.NewID()
		c := card{title: fmt.Sprintf("Card %d", i)}
		if fixedEvery > 0 && i%fixedEvery == 0 {
			c.fixed = true
			c.title += " (fixed)"
		}
		d.order = append(d.order, id)
		d.cards[id] = c
	}
	return d, nil
}

func (d *deck) movable(id registry.ID) bool {
	c, ok := d.cards[id]
	return ok && !c.fixed
}

func (d *deck) title(id registry.ID) string {
	return d.cards[id].title
}

// card returns the widget drawing a card with its drag handle or lock
// icon.
func (d *deck) card(th *material.Theme) sortable.ItemWidget {
	return func(gtx layout.Context, id registry.ID) layout.Dimensions {
		c := d.cards[id]
		bg, icon := cardColor, d.handle
		if c.fixed {
			bg, icon = fixedColor, d.lock
		}
		return layout.UniformInset(unit.Dp(4)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return layout.Background{}.Layout(gtx,
				func(gtx layout.Context) layout.Dimensions {
					rr := gtx.Dp(unit.Dp(6))
					defer clip.UniformRRect(image.Rectangle{Max: gtx.Constraints.Min}, rr).Push(gtx.Ops).Pop()
					paint.Fill(gtx.Ops, bg)
					return layout.Dimensions{Size: gtx.Constraints.Min}
				},
				func(gtx layout.Context) layout.Dimensions {
					return layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
							layout.Rigid(func(gtx layout.Context) layout.Dimensions {
								gtx.Constraints.Min = image.Point{}
								gtx.Constraints.Max = image.Pt(gtx.Dp(unit.Dp(20)), gtx.Dp(unit.Dp(20)))
								return icon.Layout(gtx, iconColor)
							}),
							layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
							layout.Rigid(material.Body1(th, c.title).Layout),
						)
					})
				},
			)
		})
	}
}
