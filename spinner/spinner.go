// Package spinner implements the terminal status-line spinner: a ticking
// frame sequence that owns the terminal while it runs, coordinating with
// the line editor via the shared writer's SpinnerActive/SpinnerInactive
// control signals (spec.md §4.3.5, §6.1).
package spinner

import (
	"fmt"
	"time"

	"github.com/kungfusheep/bezel/readline"
	"github.com/kungfusheep/bezel/style"
	"github.com/kungfusheep/bezel/term"
)

// Frames is the default braille-dot spinner sequence.
var Frames = []rune{'⠋', '⠙', '⠹', '⠸', '⠼', '⠴', '⠦', '⠧', '⠇', '⠏'}

// Spinner ticks a frame sequence alongside an interval message, replacing
// it with a final message once stopped.
type Spinner struct {
	intervalMsg string
	finalMsg    string
	tick        time.Duration
	style       style.TuiStyle
	out         readline.OutputDevice
	writer      *readline.SharedWriter

	shutdownTx chan struct{}
	doneCh     chan struct{}
}

// TryStart returns nil (None) on a non-TTY per spec.md §6.1; otherwise it
// starts the ticking goroutine and, if a SharedWriter is supplied, tells
// the editor loop to route Ctrl+C/Ctrl+D to this spinner's shutdown
// channel instead of itself.
func TryStart(intervalMsg, finalMsg string, tick time.Duration, sty style.TuiStyle, out readline.OutputDevice, writer *readline.SharedWriter) *Spinner {
	if !term.IsTTY() {
		return nil
	}
	s := &Spinner{
		intervalMsg: intervalMsg, finalMsg: finalMsg, tick: tick, style: sty,
		out: out, writer: writer,
		shutdownTx: make(chan struct{}, 1),
		doneCh:     make(chan struct{}),
	}
	if writer != nil {
		writer.SpinnerActive(s.shutdownTx)
	}
	go s.run()
	return s
}

func (s *Spinner) run() {
	defer close(s.doneCh)
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()
	i := 0
	for {
		select {
		case <-s.shutdownTx:
			s.renderFinal()
			if s.writer != nil {
				s.writer.SpinnerInactive()
			}
			return
		case <-ticker.C:
			s.renderFrame(Frames[i%len(Frames)])
			i++
		}
	}
}

func (s *Spinner) renderFrame(frame rune) {
	fmt.Fprintf(s.out, "\r%c %s", frame, s.intervalMsg)
}

func (s *Spinner) renderFinal() {
	fmt.Fprintf(s.out, "\r%s\n", s.finalMsg)
}

// RequestShutdown asks the spinner to stop; it does not block.
func (s *Spinner) RequestShutdown() {
	select {
	case s.shutdownTx <- struct{}{}:
	default:
	}
}

// AwaitShutdown blocks until the spinner's goroutine has finished
// rendering its final message.
func (s *Spinner) AwaitShutdown() {
	<-s.doneCh
}
