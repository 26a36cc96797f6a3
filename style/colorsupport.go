package style

import (
	"os"
	"sync"

	"github.com/charmbracelet/colorprofile"
)

// ColorSupport is the process-wide degradation target for color output.
type ColorSupport int

const (
	Truecolor ColorSupport = iota
	Ansi256
	Grayscale
	NoColor
)

func (c ColorSupport) String() string {
	switch c {
	case Truecolor:
		return "truecolor"
	case Ansi256:
		return "ansi256"
	case Grayscale:
		return "grayscale"
	default:
		return "nocolor"
	}
}

// colorSupportGlobal follows the "mutex around Option[T]" pattern spec.md
// §9 prescribes for shared process-global state: nil means "not yet
// detected / no override", so rebuilding is just replacing the pointer.
var (
	colorSupportMu       sync.Mutex
	colorSupportOverride *ColorSupport
	colorSupportDetected *ColorSupport
)

// SetOverride pins the process-wide color support, bypassing detection.
// Intended for tests that need deterministic degradation behavior.
func SetOverride(cs ColorSupport) {
	colorSupportMu.Lock()
	defer colorSupportMu.Unlock()
	v := cs
	colorSupportOverride = &v
}

// ClearOverride removes a previously-set override, reverting to detection.
func ClearOverride() {
	colorSupportMu.Lock()
	defer colorSupportMu.Unlock()
	colorSupportOverride = nil
}

// Current returns the active ColorSupport: the override if one is set,
// otherwise the once-detected value, detecting lazily on first use.
func Current() ColorSupport {
	colorSupportMu.Lock()
	defer colorSupportMu.Unlock()
	if colorSupportOverride != nil {
		return *colorSupportOverride
	}
	if colorSupportDetected == nil {
		v := detectLocked()
		colorSupportDetected = &v
	}
	return *colorSupportDetected
}

// detectLocked implements spec.md §6.4's precedence: explicit override
// (handled by the caller, Current), then COLORTERM, then TERM substring
// match, then NoColor — delegated to charmbracelet/colorprofile, which
// already encodes that exact precedence against os.Environ().
func detectLocked() ColorSupport {
	profile := colorprofile.Detect(os.Stdout, os.Environ())
	switch profile {
	case colorprofile.TrueColor:
		return Truecolor
	case colorprofile.ANSI256:
		return Ansi256
	case colorprofile.ANSI:
		return Ansi256
	case colorprofile.Ascii, colorprofile.NoTTY:
		return NoColor
	default:
		return NoColor
	}
}
