//go:build linux

// Package app implements the App capability interface, the paint pipeline
// (diff → ANSI → stdout), and the event-loop wiring that ties the input
// broadcast to an application's render/handle cycle (spec.md §4, §6.1).
//
// Grounded on the teacher's top-level tui.go/app.go run-loop shape
// (init → loop{handle event, render, paint} → shutdown), generalized from
// the teacher's own declarative widget tree to an application-supplied
// RenderPipeline.
package app

import (
	"os"

	"github.com/kungfusheep/bezel/buffer"
	"github.com/kungfusheep/bezel/geometry"
	"github.com/kungfusheep/bezel/input"
	"github.com/kungfusheep/bezel/term"
)

// EventPropagation tells the run loop whether an App consumed an event or
// wants it to continue propagating. Run ends when HandleSignal returns
// PropagationStop, or when HandleInputEvent returns PropagationStop for a
// Ctrl+C key event; any other result just leads to a repaint.
type EventPropagation int

const (
	PropagationStop EventPropagation = iota
	PropagationContinue
)

// Signal is a non-input lifecycle notification delivered to
// app_handle_signal (currently just resize; room for future OS signals).
type Signal struct {
	Kind SignalKind
	Size geometry.Size
}

type SignalKind int

const (
	SignalResize SignalKind = iota
)

// Global is whatever process-wide, app-defined state an App wants passed
// through every callback; Run treats it as an opaque pointer.
type Global = any

// App is the capability interface spec.md §6.1 describes: applications
// implement these four operations and Run drives them.
type App interface {
	Init(reg *Registry, focus *FocusManager)
	HandleInputEvent(ev input.InputEvent, global Global, reg *Registry, focus *FocusManager) EventPropagation
	Render(global Global, reg *Registry, focus *FocusManager) *buffer.RenderPipeline
	HandleSignal(sig Signal, global Global, reg *Registry, focus *FocusManager) EventPropagation
}

// PaintMode selects whether Run takes over the alternate screen (a
// full-screen App) or paints inline within normal scrollback (the mode the
// async line editor and spinner require, since they must coexist with
// scrollback history). Both share the same OffscreenBuffer/diff engine —
// see SPEC_FULL's "Alternate-screen + inline-mode toggle".
type PaintMode int

const (
	PaintAltScreen PaintMode = iota
	PaintInline
)

const (
	seqEnterAltScreen        = "\x1b[?1049h"
	seqExitAltScreen         = "\x1b[?1049l"
	seqEnableBracketedPaste  = "\x1b[?2004h"
	seqDisableBracketedPaste = "\x1b[?2004l"
)

// Run wires an App to the input broadcast and the paint pipeline: it owns
// raw mode, the poller subscription, and the diff/paint loop (spec.md §5's
// event-loop control flow: "awaits input events, mutates state, produces
// a new render pipeline, runs the diff, and paints"). redraw is optional
// (nil is fine) — a background task (e.g. a ticker) can send on it to
// request a repaint without a corresponding input event.
func Run(a App, global Global, mode PaintMode, redraw <-chan struct{}) error {
	if !term.IsTTY() {
		a.Init(NewRegistry(), NewFocusManager(nil))
		return nil
	}

	raw, err := input.EnableRawMode(int(os.Stdin.Fd()))
	if err != nil {
		return err
	}
	defer raw.Disable()

	if mode == PaintAltScreen {
		os.Stdout.WriteString(seqEnterAltScreen)
		defer os.Stdout.WriteString(seqExitAltScreen)
	}
	os.Stdout.WriteString(seqEnableBracketedPaste)
	defer os.Stdout.WriteString(seqDisableBracketedPaste)

	sub, err := input.Allocate(pollerFactory)
	if err != nil {
		return err
	}
	defer sub.Release()

	size, err := term.Size()
	if err != nil {
		size = geometry.Size{ColWidth: 80, RowHeight: 24}
	}

	reg := NewRegistry()
	focus := NewFocusManager(nil)
	a.Init(reg, focus)

	prev := buffer.NewEmpty(size)
	paintFrame(a, global, reg, focus, size, prev)

	for {
		select {
		case ev, ok := <-sub.Events:
			if !ok {
				return nil
			}
			switch ev.Kind {
			case input.PollerSignalResize:
				size = ev.Size
				prop := a.HandleSignal(Signal{Kind: SignalResize, Size: size}, global, reg, focus)
				if prop == PropagationStop {
					return nil
				}
				prev = buffer.NewEmpty(size)
				paintFrame(a, global, reg, focus, size, prev)
			case input.PollerStdinInput:
				if prop := a.HandleInputEvent(ev.Event, global, reg, focus); prop == PropagationStop {
					if isQuitEvent(ev.Event) {
						return nil
					}
				}
				paintFrame(a, global, reg, focus, size, prev)
			case input.PollerStdinEOF:
				return nil
			case input.PollerStdinError:
				return ev.Err
			}
		case _, ok := <-redraw:
			if !ok {
				redraw = nil
				continue
			}
			paintFrame(a, global, reg, focus, size, prev)
		}
	}
}

// isQuitEvent is the default policy when an App returns PropagationStop
// for Ctrl+C: treat it as "quit", since no App-specific quit semantics are
// specified.
func isQuitEvent(ev input.InputEvent) bool {
	return ev.Kind == input.EventKeyboard && ev.Key.Key == input.KeyCtrlC
}

// paintFrame renders a into a fresh buffer, diffs it against prev, and
// writes the minimal patch to stdout — the "runs the diff, and paints"
// half of spec.md §5's control-flow sentence.
func paintFrame(a App, global Global, reg *Registry, focus *FocusManager, size geometry.Size, prev *buffer.OffscreenBuffer) {
	next := buffer.NewEmpty(size)
	pipeline := a.Render(global, reg, focus)
	if pipeline != nil {
		pipeline.Execute(next)
	}
	chunks := buffer.Diff(prev, next)
	os.Stdout.Write(buffer.PaintDiff(chunks))
	*prev = *next
}

func pollerFactory(emit func(input.PollerEvent)) (func(func(input.PollerEvent)), *input.Waker, func(), error) {
	poller, waker, err := input.NewPoller(int(os.Stdin.Fd()), term.Size, input.ReceiverCount)
	if err != nil {
		return nil, nil, nil, err
	}
	stopSignal := poller.WatchResizeSignal()
	return func(e func(input.PollerEvent)) { poller.Run(e) },
		waker,
		func() { stopSignal(); poller.Close() },
		nil
}
