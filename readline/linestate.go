// Package readline implements the async single-line editor: grapheme-
// cluster-safe line editing, a shared-writer protocol that lets background
// tasks print above an always-visible prompt, pause/resume and spinner
// coordination, and a capped history ring buffer (spec.md §4.3).
//
// Grounded on the teacher's LineState-equivalent editing surface (the
// text/cursor handling in textview.go and text.go) generalized from
// multi-line buffer editing to a single-line prompt, and on fansiterm's
// cursor-movement escape sequences for render()/clear().
package readline

import (
	"github.com/kungfusheep/bezel/gc"
	"github.com/kungfusheep/bezel/geometry"
	"github.com/kungfusheep/bezel/input"
)

// LineEventResultKind tags what handling one input event produced.
type LineEventResultKind int

const (
	ResultContinue LineEventResultKind = iota
	ResultLine
	ResultInterrupted
	ResultEof
)

// LineEventResult is returned by LineState.HandleEvent.
type LineEventResult struct {
	Kind LineEventResultKind
	Line string // valid when Kind == ResultLine
}

// LineState is a single-line editor with a prompt (spec.md §4.3.1).
type LineState struct {
	line                string
	lineCursorGrapheme  geometry.SegIndex
	clusterBuffer       string
	prompt              string
	shouldPrintOnEnter  bool
	shouldPrintOnCtrlC  bool
	lastLineLength      int
	lastLineCompleted   bool
	termSize            geometry.Size
	isPaused            bool

	history       *History
	historyCursor int // -1 == not currently browsing history
	savedLine     string
}

// NewLineState returns a LineState with the given prompt.
func NewLineState(prompt string) *LineState {
	return &LineState{
		prompt:             prompt,
		shouldPrintOnEnter: true,
		shouldPrintOnCtrlC: true,
		lastLineCompleted:  true,
		historyCursor:      -1,
		history:            NewHistory(),
	}
}

// SetTermSize updates the cached terminal dimensions (driven by EventResize).
func (ls *LineState) SetTermSize(size geometry.Size) { ls.termSize = size }

// RecordForeignWrite tracks whether the most recent foreign-output write
// (spec.md §4.3.3) ended in a newline, and if not, how many display
// columns of partial line it left behind — the "save the partial-line
// length so the next write can restore the cursor" step. completed==true
// resets the tracked length, since a newline-terminated write leaves the
// cursor at column 1 and nothing needs restoring.
func (ls *LineState) RecordForeignWrite(partialWidth int, completed bool) {
	ls.lastLineCompleted = completed
	if completed {
		ls.lastLineLength = 0
		return
	}
	ls.lastLineLength = partialWidth
}

// LastLineCompleted reports whether the most recent foreign write ended in
// a newline.
func (ls *LineState) LastLineCompleted() bool { return ls.lastLineCompleted }

// LastLineLength returns the display width of the trailing partial foreign
// line left behind by the most recent write, valid when
// !LastLineCompleted().
func (ls *LineState) LastLineLength() int { return ls.lastLineLength }

// Line returns the current (uncommitted) line contents.
func (ls *LineState) Line() string { return ls.line }

// CurrentColumn returns the display column of the cursor, prompt included.
func (ls *LineState) CurrentColumn() geometry.ColWidth {
	promptWidth := gc.Segment(ls.prompt).DisplayWidth()
	text := gc.Segment(ls.line)
	col := geometry.ColWidth(0)
	for _, seg := range text.Segments() {
		if seg.LogicalIndex >= geometry.SegIndex(ls.lineCursorGrapheme) {
			break
		}
		col += seg.DisplayWidth
	}
	return promptWidth + col
}

// HandleEvent applies one InputEvent per spec.md §4.3.2's key-binding
// table and returns what happened.
func (ls *LineState) HandleEvent(ev input.InputEvent) LineEventResult {
	if ev.Kind == input.EventResize {
		ls.SetTermSize(ev.Size)
		return LineEventResult{Kind: ResultContinue}
	}
	if ev.Kind != input.EventKeyboard {
		return LineEventResult{Kind: ResultContinue}
	}
	key := ev.Key

	if ls.isPaused && key.Key != input.KeyCtrlC && key.Key != input.KeyCtrlD {
		return LineEventResult{Kind: ResultContinue}
	}

	switch {
	case key.Key == input.KeyRune && !key.Modified:
		ls.insertRune(key.Char)
	case key.Key == input.KeyBackspace:
		ls.deleteBefore()
	case key.Key == input.KeyDelete:
		ls.deleteAt()
	case key.Key == input.KeyLeft && key.Modified && key.Modifiers&input.ModCtrl != 0:
		ls.moveWordLeft()
	case key.Key == input.KeyRight && key.Modified && key.Modifiers&input.ModCtrl != 0:
		ls.moveWordRight()
	case key.Key == input.KeyLeft:
		ls.moveLeft()
	case key.Key == input.KeyRight:
		ls.moveRight()
	case key.Key == input.KeyHome:
		ls.moveHome()
	case key.Key == input.KeyEnd:
		ls.moveEnd()
	case key.Key == input.KeyUp:
		ls.historyPrev()
	case key.Key == input.KeyDown:
		ls.historyNext()
	case key.Key == input.KeyEnter:
		return ls.handleEnter()
	case key.Key == input.KeyCtrlC:
		return ls.handleCtrlC()
	case key.Key == input.KeyCtrlD:
		return LineEventResult{Kind: ResultEof}
	case key.Key == input.KeyRune && key.Modified && key.Modifiers&input.ModCtrl != 0:
		ls.handleCtrlRune(key.Char)
	}
	return LineEventResult{Kind: ResultContinue}
}

// handleCtrlRune dispatches Ctrl+<letter> bindings that arrive as a
// modified KeyRune (Ctrl+L, Ctrl+U, Ctrl+W, Ctrl+A, Ctrl+E).
func (ls *LineState) handleCtrlRune(c rune) {
	switch c {
	case 'l':
		// Clear + re-render is a rendering-layer concern; LineState changes
		// nothing here, and ReadlineAsyncContext.handleInput calls
		// ClearAndRender itself after a Ctrl+L.
	case 'u':
		ls.deleteFromStartToCursor()
	case 'w':
		ls.deletePreviousWord()
	case 'a':
		ls.moveHome()
	case 'e':
		ls.moveEnd()
	}
}

// insertRune implements spec.md §4.3.2's Char(c) binding: append to
// cluster_buffer and insert c into line at the cursor. If the cluster
// count of cluster_buffer advanced, c started a new grapheme: the cursor
// moves forward by one and only that newest cluster stays buffered. If it
// did not (c extends the previous cluster, e.g. a combining mark), the
// cursor stays where it is.
func (ls *LineState) insertRune(c rune) {
	prevLen := gc.Segment(ls.clusterBuffer).Len()
	ls.clusterBuffer += string(c)
	text := gc.Segment(ls.clusterBuffer)

	before, _, after := ls.split()
	ls.line = before + string(c) + after

	if text.Len() != prevLen {
		ls.lineCursorGrapheme++
		if prevLen > 0 {
			last := text.Segments()[text.Len()-1]
			ls.clusterBuffer = ls.clusterBuffer[last.StartByte:]
		}
	}
}

func (ls *LineState) insertAtCursor(s string) {
	before, at, after := ls.split()
	ls.line = before + s + at + after
	n := gc.Segment(s).Len()
	ls.lineCursorGrapheme += geometry.SegIndex(n)
}

// split divides the line into (text before cursor, nothing — single-point
// cursor, text from cursor to end); kept as (before, "", after) shape so
// insertAtCursor/deleteAt read uniformly.
func (ls *LineState) split() (before, at, after string) {
	text := gc.Segment(ls.line)
	segs := text.Segments()
	idx := int(ls.lineCursorGrapheme)
	if idx <= 0 {
		return "", "", ls.line
	}
	if idx >= len(segs) {
		return ls.line, "", ""
	}
	cut := segs[idx].StartByte
	return ls.line[:cut], "", ls.line[cut:]
}

func (ls *LineState) deleteBefore() {
	if ls.lineCursorGrapheme == 0 {
		return
	}
	text := gc.Segment(ls.line)
	segs := text.Segments()
	prev := segs[ls.lineCursorGrapheme-1]
	ls.line = ls.line[:prev.StartByte] + ls.line[prev.EndByte:]
	ls.lineCursorGrapheme--
}

func (ls *LineState) deleteAt() {
	text := gc.Segment(ls.line)
	segs := text.Segments()
	if int(ls.lineCursorGrapheme) >= len(segs) {
		return
	}
	cur := segs[ls.lineCursorGrapheme]
	ls.line = ls.line[:cur.StartByte] + ls.line[cur.EndByte:]
}

func (ls *LineState) moveLeft() {
	if ls.lineCursorGrapheme > 0 {
		ls.lineCursorGrapheme--
	}
}

func (ls *LineState) moveRight() {
	n := geometry.SegIndex(gc.Segment(ls.line).Len())
	if ls.lineCursorGrapheme < n {
		ls.lineCursorGrapheme++
	}
}

func (ls *LineState) moveHome() { ls.lineCursorGrapheme = 0 }
func (ls *LineState) moveEnd() {
	ls.lineCursorGrapheme = geometry.SegIndex(gc.Segment(ls.line).Len())
}

func (ls *LineState) moveWordLeft() {
	segs := gc.Segment(ls.line).Segments()
	i := int(ls.lineCursorGrapheme)
	i = skipSpacesLeft(ls.line, segs, i)
	i = skipWordLeft(ls.line, segs, i)
	ls.lineCursorGrapheme = geometry.SegIndex(i)
}

func (ls *LineState) moveWordRight() {
	segs := gc.Segment(ls.line).Segments()
	i := int(ls.lineCursorGrapheme)
	i = skipSpacesRight(ls.line, segs, i)
	i = skipWordRight(ls.line, segs, i)
	ls.lineCursorGrapheme = geometry.SegIndex(i)
}

func (ls *LineState) deleteFromStartToCursor() {
	text := gc.Segment(ls.line)
	segs := text.Segments()
	idx := int(ls.lineCursorGrapheme)
	if idx <= 0 || idx > len(segs) {
		return
	}
	cut := ls.line[:segs[idx-1].EndByte]
	ls.line = ls.line[len(cut):]
	ls.lineCursorGrapheme = 0
}

// deletePreviousWord implements Ctrl+W: skip trailing spaces, then delete
// to the preceding space (spec.md §4.3.2).
func (ls *LineState) deletePreviousWord() {
	segs := gc.Segment(ls.line).Segments()
	i := int(ls.lineCursorGrapheme)
	i = skipSpacesLeft(ls.line, segs, i)
	start := skipWordLeft(ls.line, segs, i)

	startByte := byteOffsetOf(segs, start)
	endByte := byteOffsetOf(segs, int(ls.lineCursorGrapheme))
	ls.line = ls.line[:startByte] + ls.line[endByte:]
	ls.lineCursorGrapheme = geometry.SegIndex(start)
}

func byteOffsetOf(segs []gc.Cluster, idx int) geometry.ByteIndex {
	if idx >= len(segs) {
		if len(segs) == 0 {
			return 0
		}
		return segs[len(segs)-1].EndByte
	}
	return segs[idx].StartByte
}

func skipSpacesLeft(line string, segs []gc.Cluster, i int) int {
	for i > 0 && isSpaceSeg(line, segs[i-1]) {
		i--
	}
	return i
}
func skipWordLeft(line string, segs []gc.Cluster, i int) int {
	for i > 0 && !isSpaceSeg(line, segs[i-1]) {
		i--
	}
	return i
}
func skipSpacesRight(line string, segs []gc.Cluster, i int) int {
	for i < len(segs) && isSpaceSeg(line, segs[i]) {
		i++
	}
	return i
}
func skipWordRight(line string, segs []gc.Cluster, i int) int {
	for i < len(segs) && !isSpaceSeg(line, segs[i]) {
		i++
	}
	return i
}
func isSpaceSeg(line string, s gc.Cluster) bool {
	return line[s.StartByte:s.EndByte] == " "
}

func (ls *LineState) handleEnter() LineEventResult {
	line := ls.line
	ls.resetLine()
	if line != "" {
		ls.history.Push(line)
	}
	return LineEventResult{Kind: ResultLine, Line: line}
}

func (ls *LineState) handleCtrlC() LineEventResult {
	ls.resetLine()
	return LineEventResult{Kind: ResultInterrupted}
}

func (ls *LineState) resetLine() {
	ls.line = ""
	ls.clusterBuffer = ""
	ls.lineCursorGrapheme = 0
	ls.historyCursor = -1
}

// ShouldPrintOnEnter / ShouldPrintOnCtrlC report whether the caller should
// echo the finished line before clearing it.
func (ls *LineState) ShouldPrintOnEnter() bool { return ls.shouldPrintOnEnter }
func (ls *LineState) ShouldPrintOnCtrlC() bool { return ls.shouldPrintOnCtrlC }

// SetPaused toggles whether non-Ctrl+C/Ctrl+D keys are ignored.
func (ls *LineState) SetPaused(p bool) { ls.isPaused = p }
func (ls *LineState) IsPaused() bool   { return ls.isPaused }

func (ls *LineState) historyPrev() {
	entry, ok := ls.history.SearchPrevious(&ls.historyCursor)
	if !ok {
		return
	}
	if ls.historyCursor == 0 {
		ls.savedLine = ls.line
	}
	ls.line = entry
	ls.lineCursorGrapheme = geometry.SegIndex(gc.Segment(ls.line).Len())
}

func (ls *LineState) historyNext() {
	entry, ok := ls.history.SearchNext(&ls.historyCursor)
	if !ok {
		ls.line = ls.savedLine
		ls.lineCursorGrapheme = geometry.SegIndex(gc.Segment(ls.line).Len())
		return
	}
	ls.line = entry
	ls.lineCursorGrapheme = geometry.SegIndex(gc.Segment(ls.line).Len())
}
