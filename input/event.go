// Package input implements the ANSI/VT100 input pipeline: event types, the
// byte-level parser state machine, bracketed-paste collection, POSIX raw
// mode, the epoll-based poller thread, and the resilient broadcast reactor
// that fans poller events out to async consumers (spec.md §3.6, §4.2).
package input

import "github.com/kungfusheep/bezel/geometry"

// Key names a logical key, independent of which modifiers are held.
type Key int

const (
	KeyNone Key = iota
	KeyRune // Char carries the actual rune
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyInsert
	KeyDelete
	KeyPageUp
	KeyPageDown
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyEnter
	KeyTab
	KeyBackspace
	KeyEscape
	KeyCtrlC
	KeyCtrlD
)

// ModMask is a bitset of held modifiers.
type ModMask uint8

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModAlt
	ModCtrl
)

// KeyPress is either a bare key (Plain) or one with modifiers
// (WithModifiers) — spec.md §3.6.
type KeyPress struct {
	Key       Key
	Char      rune // valid when Key == KeyRune
	Modified  bool // true selects the WithModifiers variant
	Modifiers ModMask
}

// MouseButton names which mouse button (or wheel direction) an event
// reports.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// MouseEvent is a single mouse report.
type MouseEvent struct {
	Button    MouseButton
	Modifiers ModMask
	Pos       geometry.Pos
}

// FocusState distinguishes terminal focus gained/lost events.
type FocusState int

const (
	FocusGained FocusState = iota
	FocusLost
)

// ProgressState mirrors OSC 9;4's state codes.
type ProgressState int

const (
	ProgressClear ProgressState = iota
	ProgressActive
	ProgressError
	ProgressIndeterminate
)

// ProgressEvent carries an OSC 9;4 progress indicator update.
type ProgressEvent struct {
	State    ProgressState
	Progress int // 0-100, meaningful only when State == ProgressActive/Error
}

// HyperlinkEvent carries an OSC 8 hyperlink (URI + the text it wraps).
type HyperlinkEvent struct {
	URI  string
	Text string
}

// InputEventKind tags which InputEvent variant is held.
type InputEventKind int

const (
	EventKeyboard InputEventKind = iota
	EventMouse
	EventResize
	EventPaste
	EventFocus
	EventProgress
	EventHyperlink

	// pasteBeginMarker/pasteEndMarker are internal-only tags the parser
	// uses to signal the bracketed-paste collector; they never escape the
	// input package — the collector turns them into a single EventPaste.
	pasteBeginMarker
	pasteEndMarker
)

// InputEvent is the tagged union spec.md §3.6 describes.
type InputEvent struct {
	Kind      InputEventKind
	Key       KeyPress
	Mouse     MouseEvent
	Size      geometry.Size
	Paste     string
	Focus     FocusState
	Progress  ProgressEvent
	Hyperlink HyperlinkEvent
}

// PollerEventKind tags which PollerEvent variant is held.
type PollerEventKind int

const (
	PollerStdinInput PollerEventKind = iota
	PollerStdinEOF
	PollerStdinError
	PollerSignalResize
)

// PollerEvent is the upstream form broadcast by the input thread.
type PollerEvent struct {
	Kind  PollerEventKind
	Event InputEvent // valid when Kind == PollerStdinInput
	Err   error      // valid when Kind == PollerStdinError
	Size  geometry.Size // valid when Kind == PollerSignalResize
}
