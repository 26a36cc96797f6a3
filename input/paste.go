package input

import "strings"

// pasteCollector implements the bracketed-paste collection state machine
// (spec.md §4.2.3): once CSI 200~ is seen, every byte — including control
// bytes that would otherwise produce their own events — is appended
// verbatim to an internal buffer until CSI 201~ terminates it, at which
// point a single Paste event is emitted. Nested begin markers are not
// expected; the end marker always terminates collection.
//
// The raw bytes themselves are written into buf directly by the parser's
// Ground/Escape/CSI handling in vt100.go while active is true, bypassing
// keyboard-event classification entirely so control bytes inside the
// pasted text (a literal newline or tab) survive untouched rather than
// being reconstructed from a classified KeyPress.
type pasteCollector struct {
	active bool
	buf    strings.Builder
}

func (c *pasteCollector) begin() {
	c.active = true
	c.buf.Reset()
}

// observe is called with every event the parser produced, in order. The
// begin marker is swallowed (collection already started via begin()); the
// end marker emits the accumulated text as a single EventPaste; anything
// else seen while active is swallowed (content bytes never reach this
// point as classified events — they're captured directly into buf).
func (c *pasteCollector) observe(e InputEvent) (InputEvent, bool) {
	switch {
	case e.Kind == pasteBeginMarker:
		return InputEvent{}, false
	case e.Kind == pasteEndMarker:
		text := c.buf.String()
		c.active = false
		c.buf.Reset()
		return InputEvent{Kind: EventPaste, Paste: text}, true
	case c.active:
		return InputEvent{}, false
	default:
		return e, true
	}
}
