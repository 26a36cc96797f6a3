package readline

import (
	"testing"

	"github.com/kungfusheep/bezel/input"
)

func charEvent(c rune) input.InputEvent {
	return input.InputEvent{Kind: input.EventKeyboard, Key: input.KeyPress{Key: input.KeyRune, Char: c}}
}

func keyEvent(k input.Key) input.InputEvent {
	return input.InputEvent{Kind: input.EventKeyboard, Key: input.KeyPress{Key: k}}
}

func TestLineStateInsertAndBackspace(t *testing.T) {
	ls := NewLineState("> ")
	for _, c := range "hi" {
		ls.HandleEvent(charEvent(c))
	}
	if ls.Line() != "hi" {
		t.Fatalf("line = %q, want %q", ls.Line(), "hi")
	}
	ls.HandleEvent(keyEvent(input.KeyBackspace))
	if ls.Line() != "h" {
		t.Fatalf("line after backspace = %q, want %q", ls.Line(), "h")
	}
}

func TestLineStateEnterReturnsLineAndResets(t *testing.T) {
	ls := NewLineState("> ")
	for _, c := range "go" {
		ls.HandleEvent(charEvent(c))
	}
	res := ls.HandleEvent(keyEvent(input.KeyEnter))
	if res.Kind != ResultLine || res.Line != "go" {
		t.Fatalf("got %+v, want Line(\"go\")", res)
	}
	if ls.Line() != "" {
		t.Fatalf("expected line reset, got %q", ls.Line())
	}
}

func TestLineStateCtrlCInterrupts(t *testing.T) {
	ls := NewLineState("> ")
	ls.HandleEvent(charEvent('x'))
	res := ls.HandleEvent(keyEvent(input.KeyCtrlC))
	if res.Kind != ResultInterrupted {
		t.Fatalf("got %+v, want Interrupted", res)
	}
	if ls.Line() != "" {
		t.Fatalf("expected line cleared, got %q", ls.Line())
	}
}

func TestLineStateCtrlDReturnsEof(t *testing.T) {
	ls := NewLineState("> ")
	res := ls.HandleEvent(keyEvent(input.KeyCtrlD))
	if res.Kind != ResultEof {
		t.Fatalf("got %+v, want Eof", res)
	}
}

func TestLineStatePauseIgnoresKeysExceptCtrlCD(t *testing.T) {
	ls := NewLineState("> ")
	ls.SetPaused(true)
	ls.HandleEvent(charEvent('x'))
	if ls.Line() != "" {
		t.Fatalf("expected input ignored while paused, got %q", ls.Line())
	}
	res := ls.HandleEvent(keyEvent(input.KeyCtrlD))
	if res.Kind != ResultEof {
		t.Fatalf("expected Ctrl+D to still work while paused, got %+v", res)
	}
}

func TestLineStateHistoryPrevRestoresSavedLine(t *testing.T) {
	ls := NewLineState("> ")
	for _, c := range "first" {
		ls.HandleEvent(charEvent(c))
	}
	ls.HandleEvent(keyEvent(input.KeyEnter))
	for _, c := range "draft" {
		ls.HandleEvent(charEvent(c))
	}
	ls.HandleEvent(keyEvent(input.KeyUp))
	if ls.Line() != "first" {
		t.Fatalf("history prev = %q, want %q", ls.Line(), "first")
	}
	ls.HandleEvent(keyEvent(input.KeyDown))
	if ls.Line() != "draft" {
		t.Fatalf("history next should restore draft, got %q", ls.Line())
	}
}

func TestLineStateWordMotionAndCtrlW(t *testing.T) {
	ls := NewLineState("> ")
	for _, c := range "foo bar" {
		ls.HandleEvent(charEvent(c))
	}
	ctrlW := input.InputEvent{Kind: input.EventKeyboard, Key: input.KeyPress{
		Key: input.KeyRune, Char: 'w', Modified: true, Modifiers: input.ModCtrl,
	}}
	ls.HandleEvent(ctrlW)
	if ls.Line() != "foo " {
		t.Fatalf("ctrl+w = %q, want %q", ls.Line(), "foo ")
	}
}
