//go:build linux

package readline

import (
	"fmt"
	"os"

	"github.com/kungfusheep/bezel/gc"
	"github.com/kungfusheep/bezel/input"
	"github.com/kungfusheep/bezel/term"
)

// ReadlineAsyncContext owns the running line editor: its LineState, its
// subscription to the shared input broadcast, its SharedWriter control
// channel, raw mode, and the event loop tying them together (spec.md
// §4.3, §5's "editor loop" async-zone task).
type ReadlineAsyncContext struct {
	ls       *LineState
	sub      *input.SubscriberGuard
	raw      *input.RawModeGuard
	writer   *SharedWriter
	ctrlCh   <-chan ControlSignal
	out      OutputDevice
	pauseBuf *PauseBuffer

	spinnerShutdown chan struct{}
}

// TryNew returns None (ok=false) if stdin/stdout are not a TTY, per
// spec.md §6.1. Otherwise it enables raw mode, subscribes to the process
// input broadcast, and returns a ready-to-run context.
func TryNew(prompt string, capacity ChannelCapacity) (ctx *ReadlineAsyncContext, ok bool) {
	if !term.IsTTY() {
		return nil, false
	}
	raw, err := input.EnableRawMode(int(os.Stdin.Fd()))
	if err != nil {
		return nil, false
	}
	sub, err := input.Allocate(defaultPollerFactory)
	if err != nil {
		raw.Disable()
		return nil, false
	}
	if capacity == 0 {
		capacity = VeryLarge
	}
	writer, ctrlCh := NewSharedWriter(capacity)
	return &ReadlineAsyncContext{
		ls:       NewLineState(prompt),
		sub:      sub,
		raw:      raw,
		writer:   writer,
		ctrlCh:   ctrlCh,
		out:      os.Stdout,
		pauseBuf: NewPauseBuffer(),
	}, true
}

// defaultPollerFactory wires input.Allocate's slow path to a real
// epoll-based stdin poller, per spec.md §4.2.1/§4.2.2.
func defaultPollerFactory(emit func(input.PollerEvent)) (func(func(input.PollerEvent)), *input.Waker, func(), error) {
	p, waker, err := input.NewPoller(int(os.Stdin.Fd()), term.Size, input.ReceiverCount)
	if err != nil {
		return nil, nil, nil, err
	}
	stopSignal := p.WatchResizeSignal()
	run := func(e func(input.PollerEvent)) { p.Run(e) }
	stop := func() {
		stopSignal()
		p.Close()
	}
	return run, waker, stop, nil
}

// Writer returns a SharedWriter clone for background tasks to print
// through.
func (c *ReadlineAsyncContext) Writer() *SharedWriter { return c.writer.Clone() }

// Close releases the input subscription and restores the terminal mode.
func (c *ReadlineAsyncContext) Close() {
	c.sub.Release()
	c.raw.Disable()
}

// ReadLine blocks (by draining both the input broadcast and the shared
// writer's control channel) until the user submits a line, is interrupted,
// or signals EOF. It implements the "editor loop" described in spec.md
// §4.3.3 and §4.3.5: foreign output is cleared-around so the prompt always
// reappears below it, and Pause/Resume/Spinner signals are honored.
func (c *ReadlineAsyncContext) ReadLine() LineEventResult {
	c.ls.ClearAndRender(c.out)
	for {
		select {
		case ev, ok := <-c.sub.Events:
			if !ok {
				return LineEventResult{Kind: ResultEof}
			}
			if ev.Kind != input.PollerStdinInput {
				continue
			}
			if res := c.handleInput(ev.Event); res.Kind != ResultContinue {
				return res
			}
		case sig, ok := <-c.ctrlCh:
			if !ok {
				return LineEventResult{Kind: ResultEof}
			}
			c.handleControlSignal(sig)
		}
	}
}

func (c *ReadlineAsyncContext) handleInput(ev input.InputEvent) LineEventResult {
	if c.spinnerShutdown != nil && ev.Kind == input.EventKeyboard &&
		(ev.Key.Key == input.KeyCtrlC || ev.Key.Key == input.KeyCtrlD) {
		select {
		case c.spinnerShutdown <- struct{}{}:
		default:
		}
		return LineEventResult{Kind: ResultContinue}
	}

	if ev.Kind == input.EventKeyboard && ev.Key.Key == input.KeyRune &&
		ev.Key.Modified && ev.Key.Modifiers&input.ModCtrl != 0 && ev.Key.Char == 'l' {
		c.ls.HandleEvent(ev)
		c.ls.ClearAndRender(c.out)
		return LineEventResult{Kind: ResultContinue}
	}
	if ev.Kind == input.EventResize {
		res := c.ls.HandleEvent(ev)
		c.ls.ClearAndRender(c.out)
		return res
	}

	res := c.ls.HandleEvent(ev)
	switch res.Kind {
	case ResultLine:
		if c.ls.ShouldPrintOnEnter() {
			c.out.Write([]byte(c.ls.prompt + res.Line + "\r\n"))
		}
	case ResultInterrupted:
		if c.ls.ShouldPrintOnCtrlC() {
			c.out.Write([]byte("^C\r\n"))
		}
	default:
		c.ls.ClearAndRender(c.out)
	}
	return res
}

func (c *ReadlineAsyncContext) handleControlSignal(sig ControlSignal) {
	switch sig.Kind {
	case SigPause:
		c.ls.SetPaused(true)
	case SigResume:
		c.ls.SetPaused(false)
		for _, line := range c.pauseBuf.Drain() {
			c.writeForeign([]byte(line))
		}
	case SigSpinnerActive:
		c.spinnerShutdown = sig.ShutdownTx
	case SigSpinnerInactive:
		c.spinnerShutdown = nil
	case SigLine:
		if c.ls.IsPaused() {
			c.pauseBuf.Push(string(sig.Line))
			return
		}
		c.writeForeign(sig.Line)
	case SigFlush:
		// no partial line carried at this layer; nothing to do beyond
		// the redraw below.
		c.ls.ClearAndRender(c.out)
	}
}

// writeForeign implements spec.md §4.3.3's foreign-output path: clear the
// prompt, write the bytes (converting trailing newlines to CRLF since raw
// mode disables OPOST), then redraw the prompt.
//
// When the previous foreign write left a partial line (no trailing \n),
// the prompt was redrawn directly after it rather than on its own line;
// a plain Clear here (column-1 + erase) would wipe that partial text out
// from under it. Instead, step 3's "restore the cursor" behavior moves
// back only over the prompt redraw — left by the prompt+line's own
// display width — and erases from there, leaving the partial foreign text
// intact so this write's bytes continue it on the same row.
func (c *ReadlineAsyncContext) writeForeign(line []byte) {
	s := string(line)
	completed := len(s) > 0 && s[len(s)-1] == '\n'

	if c.ls.LastLineCompleted() {
		c.ls.Clear(c.out)
	} else {
		fmt.Fprintf(c.out, "\x1b[%dD\x1b[K", int(c.ls.CurrentColumn()))
	}

	if completed {
		s = s[:len(s)-1] + "\r\n"
	}
	c.out.Write([]byte(s))
	c.ls.Render(c.out)

	if completed {
		c.ls.RecordForeignWrite(0, true)
	} else {
		c.ls.RecordForeignWrite(int(gc.Segment(s).DisplayWidth()), false)
	}
}
