//go:build linux

package input

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// rawModeMu guards the process-global saved termios so repeated
// Enable/Disable pairs are idempotent (spec.md §4.2.4, grounded on the
// teacher's Screen.EnterRawMode/ExitRawMode in screen.go, adapted from
// TIOCGETA/TIOCSETA to Linux's TCGETS/TCSETS ioctls).
var (
	rawModeMu   sync.Mutex
	savedTermio *unix.Termios
	enableCount int
)

// RawModeGuard is an RAII-style handle: construct it with EnableRawMode,
// and call Disable (or Close) to restore the terminal's prior mode. Nested
// guards on the same fd are reference-counted so only the outermost
// Disable call actually restores termios.
type RawModeGuard struct {
	fd     int
	closed bool
}

// EnableRawMode saves the current termios for fd (once, across nested
// guards) and applies the flags spec.md §4.2.4 requires: clears ICANON,
// ECHO, ISIG, IEXTEN, IXON, ICRNL, BRKINT, INLCR, IGNCR, PARMRK, ISTRIP,
// IGNBRK, OPOST; sets CS8; VMIN=1, VTIME=0.
func EnableRawMode(fd int) (*RawModeGuard, error) {
	rawModeMu.Lock()
	defer rawModeMu.Unlock()

	if savedTermio == nil {
		t, err := unix.IoctlGetTermios(fd, unix.TCGETS)
		if err != nil {
			return nil, fmt.Errorf("input: get termios: %w", err)
		}
		savedTermio = t

		raw := *t
		raw.Iflag &^= unix.IXON | unix.ICRNL | unix.BRKINT | unix.INLCR | unix.IGNCR | unix.PARMRK | unix.ISTRIP | unix.IGNBRK
		raw.Oflag &^= unix.OPOST
		raw.Lflag &^= unix.ICANON | unix.ECHO | unix.ISIG | unix.IEXTEN
		raw.Cflag |= unix.CS8
		raw.Cc[unix.VMIN] = 1
		raw.Cc[unix.VTIME] = 0

		if err := unix.IoctlSetTermios(fd, unix.TCSETS, &raw); err != nil {
			savedTermio = nil
			return nil, fmt.Errorf("input: set termios: %w", err)
		}
	}
	enableCount++
	return &RawModeGuard{fd: fd}, nil
}

// Disable restores the saved termios once the outermost guard releases it.
// Safe to call more than once; subsequent calls are no-ops.
func (g *RawModeGuard) Disable() error {
	rawModeMu.Lock()
	defer rawModeMu.Unlock()
	if g.closed {
		return nil
	}
	g.closed = true
	enableCount--
	if enableCount > 0 || savedTermio == nil {
		return nil
	}
	err := unix.IoctlSetTermios(g.fd, unix.TCSETS, savedTermio)
	savedTermio = nil
	if err != nil {
		return fmt.Errorf("input: restore termios: %w", err)
	}
	return nil
}

// Close is an alias for Disable, letting RawModeGuard satisfy io.Closer.
func (g *RawModeGuard) Close() error { return g.Disable() }
