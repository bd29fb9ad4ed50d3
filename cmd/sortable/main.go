// SPDX-License-Identifier: Unlicense OR MIT

package main

// A Gio program that demonstrates drag and drop sorting.

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/gpu/headless"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"gioui.org/x/sortable/widget"
)

type options struct {
	items      int
	fixedEvery int
	horizontal bool
	verbose    bool
	screenshot string
}

var background = color.NRGBA{R: 0xee, G: 0xee, B: 0xf2, A: 0xff}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "sortable",
		Short:         "Reorder a deck of cards by dragging them",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.items < 1 {
				return fmt.Errorf("--items must be positive, got %d", opts.items)
			}
			if opts.fixedEvery < 0 {
				return fmt.Errorf("--fixed-every must not be negative, got %d", opts.fixedEvery)
			}
			level := log.InfoLevel
			if opts.verbose {
				level = log.DebugLevel
			}
			logger := newLogger(cmd.ErrOrStderr(), level)
			if opts.screenshot != "" {
				if err := saveScreenshot(opts, logger); err != nil {
					logger.Error("screenshot failed", "err", err)
					return err
				}
				return nil
			}
			go func() {
				var w app.Window
				w.Option(app.Title("Sortable"), app.Size(unit.Dp(420), unit.Dp(720)))
				if err := loop(&w, opts, logger); err != nil {
					logger.Fatal("window closed", "err", err)
				}
				os.Exit(0)
			}()
			app.Main()
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&opts.items, "items", 12, "number of cards")
	f.IntVar(&opts.fixedEvery, "fixed-every", 4, "make every nth card fixed; 0 disables fixed cards")
	f.BoolVar(&opts.horizontal, "horizontal", false, "lay cards out horizontally")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log drag gestures")
	f.StringVar(&opts.screenshot, "screenshot", "", "save a screenshot to a file and exit")
	return cmd
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          "sortable",
	})
}

type ui struct {
	th   *material.Theme
	deck *deck
	list *widget.Sortable
	log  *log.Logger
}

func newUI(opts options, logger *log.Logger) (*ui, error) {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
	d, err := newDeck(opts.items, opts.fixedEvery)
	if err != nil {
		return nil, err
	}
	list := &widget.Sortable{
		Axis:   layout.Vertical,
		Filter: d.movable,
		Logger: logger,
	}
	if opts.horizontal {
		list.Axis = layout.Horizontal
	}
	return &ui{th: th, deck: d, list: list, log: logger}, nil
}

func (a *ui) Layout(gtx layout.Context) layout.Dimensions {
	if r, ok := a.list.Update(gtx); ok {
		a.deck.order = r.Order
		a.log.Info("card moved", "card", a.deck.title(r.Item), "from", r.From, "to", r.To)
	}
	paint.Fill(gtx.Ops, background)
	return layout.UniformInset(unit.Dp(16)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return a.list.Layout(gtx, a.deck.order, a.deck.card(a.th))
	})
}

func loop(w *app.Window, opts options, logger *log.Logger) error {
	a, err := newUI(opts, logger)
	if err != nil {
		return err
	}
	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			a.Layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

func saveScreenshot(opts options, logger *log.Logger) error {
	const scale = 1.5
	sz := image.Point{X: 420 * scale, Y: 720 * scale}
	w, err := headless.NewWindow(sz.X, sz.Y)
	if err != nil {
		return err
	}
	defer w.Release()
	a, err := newUI(opts, logger)
	if err != nil {
		return err
	}
	gtx := layout.Context{
		Ops:         new(op.Ops),
		Metric:      unit.Metric{PxPerDp: scale, PxPerSp: scale},
		Constraints: layout.Exact(sz),
		Now:         time.Now(),
	}
	a.Layout(gtx)
	if err := w.Frame(gtx.Ops); err != nil {
		return err
	}
	img := image.NewRGBA(image.Rectangle{Max: sz})
	if err := w.Screenshot(img); err != nil {
		return err
	}
	f, err := os.Create(opts.screenshot)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Info("saved screenshot", "path", opts.screenshot)
	return nil
}
