// Package span implements styled text: spans (style + grapheme-counted
// text), lines (ordered spans), and documents (ordered lines), plus the
// viewport-clipping operation the renderer needs to scroll long lines.
package span

import (
	"github.com/kungfusheep/bezel/gc"
	"github.com/kungfusheep/bezel/geometry"
	"github.com/kungfusheep/bezel/style"
)

// Span is a run of text rendered in a single style.
type Span struct {
	Style style.TuiStyle
	Text  gc.Text
}

// NewSpan segments s into grapheme clusters and pairs it with a style.
func NewSpan(st style.TuiStyle, s string) Span {
	return Span{Style: st, Text: gc.Segment(s)}
}

// DisplayWidth returns the span's width in terminal cells.
func (s Span) DisplayWidth() geometry.ColWidth { return s.Text.DisplayWidth() }

// Line is an ordered sequence of spans rendered left to right.
type Line []Span

// DisplayWidth returns the sum of the line's spans' widths.
func (l Line) DisplayWidth() geometry.ColWidth {
	var w geometry.ColWidth
	for _, s := range l {
		w += s.DisplayWidth()
	}
	return w
}

// PlainText projects the line to its underlying characters, discarding
// style.
func (l Line) PlainText() string {
	var out []byte
	for _, s := range l {
		out = append(out, s.Text.Raw()...)
	}
	return string(out)
}

// Document is an ordered sequence of styled lines.
type Document []Line
