package input

import (
	"strconv"
	"strings"

	"github.com/kungfusheep/bezel/geometry"
)

// parserState names the VT100Parser's current state (spec.md §4.2.3).
type parserState int

const (
	stateGround parserState = iota
	stateEscape
	stateCSI
	stateOSC
	stateSS3
	stateUtf8Cont
)

// VT100Parser is a byte-stream state machine that accumulates bytes across
// calls to Feed and yields a stream of parsed InputEvent values. Grounded on
// sparques-fansiterm's consumeEscSequence/HandleEscSequence dispatch tables
// and on danielgatis-go-headless-term's separation of a byte scanner from an
// event-producing layer.
type VT100Parser struct {
	state parserState

	csiParams   strings.Builder
	oscParams   strings.Builder
	utf8Pending []byte
	utf8Want    int

	paste pasteCollector
	// pasteEscBuf accumulates the raw bytes of an in-progress escape
	// sequence seen while paste.active, so that if it turns out not to be
	// the CSI 201~ terminator it can be flushed back into the paste
	// buffer verbatim instead of being lost to classification (spec.md
	// §4.2.3: "all bytes ... are appended verbatim").
	pasteEscBuf []byte
}

// flushPasteEsc writes the pending raw escape-sequence bytes into the
// paste buffer untouched and resets the scratch buffer.
func (p *VT100Parser) flushPasteEsc() {
	p.paste.buf.Write(p.pasteEscBuf)
	p.pasteEscBuf = p.pasteEscBuf[:0]
}

// isPasteEndSeq reports whether a completed CSI sequence is the bracketed
// paste terminator (CSI 201 ~) — the only escape sequence recognized while
// collecting a paste.
func isPasteEndSeq(params string, final byte) bool {
	return final == '~' && params == "201"
}

// NewVT100Parser returns a parser starting in Ground state.
func NewVT100Parser() *VT100Parser { return &VT100Parser{} }

// Feed consumes data (one poller read's worth of bytes) and returns every
// InputEvent the bytes produced. more is the "more data is likely pending"
// hint (true when the caller's read filled its buffer exactly): it resolves
// the lone-ESC ambiguity described in spec.md §4.2.3. Feed should be called
// again with the next read's bytes; a sequence split across two reads is
// reassembled transparently because parser state survives between calls.
func (p *VT100Parser) Feed(data []byte, more bool) []InputEvent {
	var events []InputEvent
	i := 0
	for i < len(data) {
		b := data[i]
		switch p.state {
		case stateGround:
			i += p.feedGround(data[i:], &events)
		case stateEscape:
			i += p.feedEscape(data[i:], more, &events)
		case stateCSI:
			i += p.feedCSI(data[i:], &events)
		case stateOSC:
			i += p.feedOSC(data[i:], &events)
		case stateSS3:
			i += p.feedSS3(data[i:], &events)
		case stateUtf8Cont:
			i += p.feedUtf8Cont(data[i:], &events)
		default:
			_ = b
			i++
		}
	}
	// End of this read with a bare trailing ESC and no follow-up: if the
	// caller doesn't expect more data, resolve it as the ESC key now.
	if p.state == stateEscape && !more {
		events = append(events, InputEvent{Kind: EventKeyboard, Key: KeyPress{Key: KeyEscape}})
		p.state = stateGround
	}
	return p.dispatchThroughPaste(events)
}

// dispatchThroughPaste routes every event through the bracketed-paste
// collector (spec.md §4.2.3's "Begin/End bracketed paste" rows): while
// collecting, raw text-producing events are buffered instead of emitted,
// and the collector itself injects the single Paste event on End.
func (p *VT100Parser) dispatchThroughPaste(events []InputEvent) []InputEvent {
	if !p.paste.active && !containsPasteMarker(events) {
		return events
	}
	var out []InputEvent
	for _, e := range events {
		if res, emit := p.paste.observe(e); emit {
			out = append(out, res)
		}
	}
	return out
}

func containsPasteMarker(events []InputEvent) bool {
	for _, e := range events {
		if e.Kind == pasteBeginMarker || e.Kind == pasteEndMarker {
			return true
		}
	}
	return false
}

func (p *VT100Parser) feedGround(data []byte, events *[]InputEvent) int {
	b := data[0]
	if p.paste.active {
		// While collecting a bracketed paste, every byte is appended to
		// the paste buffer verbatim instead of being classified into a
		// keyboard event (spec.md §4.2.3) — only a leading ESC needs
		// further inspection, since it might begin the CSI 201~
		// terminator.
		if b != 0x1b {
			p.paste.buf.WriteByte(b)
			return 1
		}
		p.pasteEscBuf = append(p.pasteEscBuf[:0], b)
		p.state = stateEscape
		return 1
	}
	switch {
	case b == 0x1b:
		p.state = stateEscape
		return 1
	case b < 0x20 || b == 0x7f:
		*events = append(*events, controlByteEvent(b))
		return 1
	case b < 0x80:
		*events = append(*events, InputEvent{Kind: EventKeyboard, Key: KeyPress{Key: KeyRune, Char: rune(b)}})
		return 1
	default:
		// Leading byte of a multi-byte UTF-8 sequence.
		want := utf8SeqLen(b)
		if want <= 1 {
			*events = append(*events, InputEvent{Kind: EventKeyboard, Key: KeyPress{Key: KeyRune, Char: rune(b)}})
			return 1
		}
		p.utf8Pending = append(p.utf8Pending[:0], b)
		p.utf8Want = want
		p.state = stateUtf8Cont
		return 1
	}
}

func (p *VT100Parser) feedUtf8Cont(data []byte, events *[]InputEvent) int {
	n := 0
	for n < len(data) && len(p.utf8Pending) < p.utf8Want {
		p.utf8Pending = append(p.utf8Pending, data[n])
		n++
	}
	if len(p.utf8Pending) == p.utf8Want {
		r := decodeUtf8(p.utf8Pending)
		*events = append(*events, InputEvent{Kind: EventKeyboard, Key: KeyPress{Key: KeyRune, Char: r}})
		p.state = stateGround
	}
	if n == 0 {
		return 1
	}
	return n
}

func (p *VT100Parser) feedEscape(data []byte, more bool, events *[]InputEvent) int {
	b := data[0]
	if p.paste.active {
		p.pasteEscBuf = append(p.pasteEscBuf, b)
		if b == '[' {
			p.csiParams.Reset()
			p.state = stateCSI
			return 1
		}
		// Anything other than CSI can't be the 201~ terminator; nested
		// paste markers aren't expected, so treat the whole sequence as
		// raw pasted bytes and flush it back verbatim.
		p.flushPasteEsc()
		p.state = stateGround
		return 1
	}
	switch b {
	case '[':
		p.csiParams.Reset()
		p.state = stateCSI
		return 1
	case 'O':
		p.state = stateSS3
		return 1
	case ']':
		p.oscParams.Reset()
		p.state = stateOSC
		return 1
	default:
		// Unrecognized escape introducer: drop back to ground, discard byte.
		p.state = stateGround
		return 1
	}
}

func (p *VT100Parser) feedCSI(data []byte, events *[]InputEvent) int {
	b := data[0]
	if p.paste.active {
		p.pasteEscBuf = append(p.pasteEscBuf, b)
	}
	if b >= 0x40 && b <= 0x7e {
		if p.paste.active {
			if isPasteEndSeq(p.csiParams.String(), b) {
				p.handleCSIFinal(b, p.csiParams.String(), events)
			} else {
				// Not the terminator: whatever this CSI sequence was,
				// it's pasted content that happened to look like one —
				// flush its raw bytes back instead of dispatching it.
				p.flushPasteEsc()
			}
		} else {
			p.handleCSIFinal(b, p.csiParams.String(), events)
		}
		p.state = stateGround
		return 1
	}
	p.csiParams.WriteByte(b)
	return 1
}

func (p *VT100Parser) feedSS3(data []byte, events *[]InputEvent) int {
	b := data[0]
	p.state = stateGround
	switch b {
	case 'P':
		*events = append(*events, keyEvent(KeyF1))
	case 'Q':
		*events = append(*events, keyEvent(KeyF2))
	case 'R':
		*events = append(*events, keyEvent(KeyF3))
	case 'S':
		*events = append(*events, keyEvent(KeyF4))
	}
	return 1
}

func (p *VT100Parser) feedOSC(data []byte, events *[]InputEvent) int {
	b := data[0]
	// Terminated by BEL (0x07) or ST (ESC \); we only scan for BEL inline
	// since ESC would re-enter Escape state byte by byte — handle both by
	// checking for BEL here and treating a fresh ESC as the start of ST.
	if b == 0x07 {
		p.handleOSC(p.oscParams.String(), events)
		p.state = stateGround
		return 1
	}
	if b == 0x1b {
		// Possible ST: peek is not available across call boundaries, so
		// treat ESC while in OSC as terminating — matches common terminal
		// behavior of accepting OSC ... ESC \. The parser moves to Escape
		// state, where the following backslash is an unrecognized
		// introducer and is discarded.
		p.handleOSC(p.oscParams.String(), events)
		p.state = stateEscape
		return 1
	}
	p.oscParams.WriteByte(b)
	return 1
}

func keyEvent(k Key) InputEvent {
	return InputEvent{Kind: EventKeyboard, Key: KeyPress{Key: k}}
}

func controlByteEvent(b byte) InputEvent {
	switch b {
	case 0x0d:
		return keyEvent(KeyEnter)
	case 0x09:
		return keyEvent(KeyTab)
	case 0x7f:
		return keyEvent(KeyBackspace)
	case 0x03:
		return keyEvent(KeyCtrlC)
	case 0x04:
		return keyEvent(KeyCtrlD)
	case 0x1b:
		return keyEvent(KeyEscape)
	default:
		// Ctrl+letter: 0x01 == Ctrl+A, etc.
		return InputEvent{Kind: EventKeyboard, Key: KeyPress{
			Key: KeyRune, Char: rune('a' + int(b) - 1), Modified: true, Modifiers: ModCtrl,
		}}
	}
}

// handleCSIFinal maps one complete CSI sequence (params + final byte) to
// zero or more InputEvents, per spec.md §4.2.3's mapping table.
func (p *VT100Parser) handleCSIFinal(final byte, params string, events *[]InputEvent) {
	args := parseCSIArgs(params)
	switch final {
	case 'A', 'B', 'C', 'D':
		dir := map[byte]Key{'A': KeyUp, 'B': KeyDown, 'C': KeyRight, 'D': KeyLeft}[final]
		if mod := modifierFromArgs(args); mod != ModNone {
			*events = append(*events, InputEvent{Kind: EventKeyboard, Key: KeyPress{Key: dir, Modified: true, Modifiers: mod}})
		} else {
			*events = append(*events, keyEvent(dir))
		}
	case 'H':
		*events = append(*events, keyEvent(KeyHome))
	case 'F':
		*events = append(*events, keyEvent(KeyEnd))
	case '~':
		p.handleTildeSeq(args, events)
	case 'm', 'M':
		// SGR mouse reporting (CSI < b ; x ; y M/m) — not in spec's core
		// event vocabulary beyond basic button/position; decode best-effort.
		if me, ok := decodeSGRMouse(params, final); ok {
			*events = append(*events, InputEvent{Kind: EventMouse, Mouse: me})
		}
	case 'I':
		*events = append(*events, InputEvent{Kind: EventFocus, Focus: FocusGained})
	case 'O':
		*events = append(*events, InputEvent{Kind: EventFocus, Focus: FocusLost})
	}
}

func (p *VT100Parser) handleTildeSeq(args []int, events *[]InputEvent) {
	if len(args) == 0 {
		return
	}
	switch args[0] {
	case 2:
		*events = append(*events, keyEvent(KeyInsert))
	case 3:
		*events = append(*events, keyEvent(KeyDelete))
	case 5:
		*events = append(*events, keyEvent(KeyPageUp))
	case 6:
		*events = append(*events, keyEvent(KeyPageDown))
	case 15:
		*events = append(*events, keyEvent(KeyF5))
	case 200:
		p.paste.begin()
		*events = append(*events, InputEvent{Kind: pasteBeginMarker})
	case 201:
		// Deactivate collection immediately (not deferred to the
		// post-loop dispatch pass) so any bytes following the terminator
		// within this same Feed call are classified normally rather than
		// swallowed as paste content; observe() still extracts the
		// buffered text for the pasteEndMarker event below.
		p.paste.active = false
		*events = append(*events, InputEvent{Kind: pasteEndMarker})
	}
}

// handleOSC maps a complete OSC payload to progress or hyperlink events.
func (p *VT100Parser) handleOSC(payload string, events *[]InputEvent) {
	switch {
	case strings.HasPrefix(payload, "9;4;"):
		parts := strings.SplitN(payload[len("9;4;"):], ";", 2)
		state, _ := strconv.Atoi(parts[0])
		progress := 0
		if len(parts) > 1 {
			progress, _ = strconv.Atoi(parts[1])
		}
		*events = append(*events, InputEvent{Kind: EventProgress, Progress: ProgressEvent{
			State: ProgressState(state), Progress: progress,
		}})
	case strings.HasPrefix(payload, "8;;"):
		uri := payload[len("8;;"):]
		*events = append(*events, InputEvent{Kind: EventHyperlink, Hyperlink: HyperlinkEvent{URI: uri}})
	}
}

func modifierFromArgs(args []int) ModMask {
	if len(args) < 2 {
		return ModNone
	}
	n := args[1] - 1
	var m ModMask
	if n&1 != 0 {
		m |= ModShift
	}
	if n&2 != 0 {
		m |= ModAlt
	}
	if n&4 != 0 {
		m |= ModCtrl
	}
	return m
}

func parseCSIArgs(params string) []int {
	if params == "" {
		return nil
	}
	parts := strings.Split(params, ";")
	args := make([]int, len(parts))
	for i, s := range parts {
		n, err := strconv.Atoi(s)
		if err != nil {
			n = 0
		}
		args[i] = n
	}
	return args
}

func utf8SeqLen(b byte) int {
	switch {
	case b&0x80 == 0:
		return 1
	case b&0xe0 == 0xc0:
		return 2
	case b&0xf0 == 0xe0:
		return 3
	case b&0xf8 == 0xf0:
		return 4
	default:
		return 1
	}
}

func decodeUtf8(b []byte) rune {
	r := []rune(string(b))
	if len(r) == 0 {
		return 0xfffd
	}
	return r[0]
}

// decodeSGRMouse parses "CSI < b ; x ; y M/m" mouse reports.
func decodeSGRMouse(params string, final byte) (MouseEvent, bool) {
	params = strings.TrimPrefix(params, "<")
	parts := strings.Split(params, ";")
	if len(parts) != 3 {
		return MouseEvent{}, false
	}
	b, err1 := strconv.Atoi(parts[0])
	x, err2 := strconv.Atoi(parts[1])
	y, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return MouseEvent{}, false
	}
	btn := MouseNone
	switch b & 0x43 {
	case 0:
		btn = MouseLeft
	case 1:
		btn = MouseMiddle
	case 2:
		btn = MouseRight
	case 0x40:
		btn = MouseWheelUp
	case 0x41:
		btn = MouseWheelDown
	}
	_ = final // 'M' press, 'm' release — button identity is unaffected
	return MouseEvent{Button: btn, Pos: posFromXY(x, y)}, true
}

// posFromXY converts SGR mouse reporting's 1-based x;y into a 0-based Pos,
// saturating at zero (a malformed report should never produce a negative
// index).
func posFromXY(x, y int) geometry.Pos {
	col, row := x-1, y-1
	if col < 0 {
		col = 0
	}
	if row < 0 {
		row = 0
	}
	return geometry.Pos{Col: geometry.ColIndex(col), Row: geometry.RowIndex(row)}
}
