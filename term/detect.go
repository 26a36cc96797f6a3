// Package term detects TTY-ness and terminal geometry, and resolves the
// process-wide color-support policy. Grounded on the teacher's
// screen.go (isatty checks, ioctl winsize query) and go.mod's
// golang.org/x/term + github.com/mattn/go-isatty stack.
package term

import (
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/sys/unix"
	xterm "golang.org/x/term"

	"github.com/kungfusheep/bezel/geometry"
	"github.com/kungfusheep/bezel/style"
)

// IsTTY reports whether both stdin and stdout are attached to a real
// terminal — the gate spec.md §6.1 requires ReadlineAsyncContext::try_new
// and Spinner::try_start to check before doing anything.
func IsTTY() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

// Size queries the current terminal dimensions via TIOCGWINSZ.
func Size() (geometry.Size, error) {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return geometry.Size{}, err
	}
	return geometry.Size{
		ColWidth:  geometry.ColWidth(ws.Col),
		RowHeight: geometry.RowHeight(ws.Row),
	}, nil
}

// FallbackSize calls golang.org/x/term.GetSize, used when the raw ioctl
// path isn't available (e.g. under certain pty emulations in tests).
func FallbackSize(fd int) (geometry.Size, error) {
	w, h, err := xterm.GetSize(fd)
	if err != nil {
		return geometry.Size{}, err
	}
	return geometry.Size{ColWidth: geometry.ColWidth(w), RowHeight: geometry.RowHeight(h)}, nil
}

// ColorSupport resolves the process's detected-or-overridden color
// support, delegating to the style package's detector.
func ColorSupport() style.ColorSupport {
	return style.Current()
}
