package buffer

import (
	"testing"

	"github.com/kungfusheep/bezel/geometry"
	"github.com/kungfusheep/bezel/style"
)

func sz(w, h int) geometry.Size {
	return geometry.Size{ColWidth: geometry.ColWidth(w), RowHeight: geometry.RowHeight(h)}
}

func TestWideGraphemeLayout(t *testing.T) {
	buf := NewEmpty(sz(5, 1))
	p := NewPipeline()
	p.Push(Normal, MoveCursorPositionAbs(geometry.Pos{Col: 0, Row: 0}))
	p.Push(Normal, PaintTextWithAttributes("a\U0001F600b", style.TuiStyle{}))
	p.Execute(buf)

	want := []PixelCharKind{PlainText, PlainText, Void, PlainText, Spacer}
	for i, k := range want {
		got := buf.Get(geometry.ColIndex(i), 0)
		if got.Kind != k {
			t.Errorf("cell %d: kind = %v, want %v", i, got.Kind, k)
		}
	}
	if buf.Get(1, 0).Char != '\U0001F600' {
		t.Errorf("expected emoji at col 1, got %q", buf.Get(1, 0).Char)
	}
}

func TestWideGraphemeAtLastColumnIsClippedNotSplit(t *testing.T) {
	buf := NewEmpty(sz(3, 1))
	p := NewPipeline()
	p.Push(Normal, MoveCursorPositionAbs(geometry.Pos{Col: 2, Row: 0}))
	p.Push(Normal, PaintTextWithAttributes("\U0001F600", style.TuiStyle{}))
	p.Execute(buf)

	if buf.Get(2, 0).Kind != Spacer {
		t.Errorf("expected last column untouched (clipped), got kind %v", buf.Get(2, 0).Kind)
	}
}

func TestCursorClampsOnOutOfRangeMove(t *testing.T) {
	buf := NewEmpty(sz(10, 10))
	p := NewPipeline()
	p.Push(Normal, MoveCursorPositionAbs(geometry.Pos{Col: 100, Row: 100}))
	p.Execute(buf)
	if buf.Cursor() != (geometry.Pos{Col: 9, Row: 9}) {
		t.Errorf("expected cursor clamped to (9,9), got %+v", buf.Cursor())
	}
}

func TestDiffThenPaintReproducesNext(t *testing.T) {
	prev := NewEmpty(sz(10, 3))
	next := NewEmpty(sz(10, 3))

	p := NewPipeline()
	p.Push(Normal, MoveCursorPositionAbs(geometry.Pos{Col: 2, Row: 1}))
	p.Push(Normal, PaintTextWithAttributes("hi", style.TuiStyle{Attr: style.AttrBold}))
	p.Execute(next)

	chunks := Diff(prev, next)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 changed cells, got %d", len(chunks))
	}
	out := PaintDiff(chunks)
	if len(out) == 0 {
		t.Fatal("expected non-empty paint output")
	}

	replayed := NewEmpty(sz(10, 3))
	ApplyAnsiBytes(replayed, out)
	for row := geometry.RowIndex(0); row < 3; row++ {
		for col := geometry.ColIndex(0); col < 10; col++ {
			a, b := replayed.Get(col, row), next.Get(col, row)
			if a.Kind == PlainText && b.Kind == PlainText && a.Char != b.Char {
				t.Errorf("(%d,%d): replayed %q, want %q", col, row, a.Char, b.Char)
			}
		}
	}
}

func TestPaintDiffIdempotent(t *testing.T) {
	prev := NewEmpty(sz(5, 1))
	next := NewEmpty(sz(5, 1))
	p := NewPipeline()
	p.Push(Normal, PaintTextWithAttributes("ab", style.TuiStyle{FG: style.Rgb(1, 2, 3)}))
	p.Execute(next)
	chunks := Diff(prev, next)
	out1 := PaintDiff(chunks)
	out2 := PaintDiff(chunks)
	if string(out1) != string(out2) {
		t.Errorf("expected idempotent output, got %q then %q", out1, out2)
	}
}

func TestStyleTransitionEmitsExpectedCodes(t *testing.T) {
	style.SetOverride(style.Truecolor)
	defer style.ClearOverride()

	r := NewPixelCharRenderer()
	r.RenderRow([]PixelChar{
		NewPlainText('H', 1, style.TuiStyle{Attr: style.AttrBold}),
		NewPlainText('i', 1, style.TuiStyle{}),
	})
	got := string(r.Bytes())
	want := "\x1b[1mH\x1b[0mi"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
