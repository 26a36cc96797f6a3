// Package buffer implements the offscreen grid of styled cells, the
// render-operation pipeline that mutates it, the style-diffing ANSI
// emitter, and the frame-to-frame diff engine — the core described in
// spec.md §3.4, §3.5, and §4.1.
package buffer

import "github.com/kungfusheep/bezel/style"

// PixelCharKind tags which variant a PixelChar holds.
type PixelCharKind uint8

const (
	// Void is the continuation cell following a wide (display-width-2)
	// grapheme. It carries no character of its own.
	Void PixelCharKind = iota
	// Spacer renders as a single space.
	Spacer
	// PlainText carries one display character and its style.
	PlainText
)

// PixelChar is one cell of the offscreen buffer: Void, Spacer, or
// PlainText{display_char, style}.
type PixelChar struct {
	Kind    PixelCharKind
	Char    rune
	Style   style.TuiStyle
	// Width is the display width of Char when Kind == PlainText (1 or 2).
	// Stored so the renderer and diff engine don't need to re-measure it.
	Width int
}

// NewVoid returns the continuation placeholder for a wide grapheme.
func NewVoid() PixelChar { return PixelChar{Kind: Void} }

// NewSpacer returns an empty, unstyled cell.
func NewSpacer() PixelChar { return PixelChar{Kind: Spacer, Char: ' ', Width: 1} }

// NewPlainText returns a cell carrying a single display character.
func NewPlainText(ch rune, width int, st style.TuiStyle) PixelChar {
	return PixelChar{Kind: PlainText, Char: ch, Style: st, Width: width}
}

// Equal reports value equality between two cells.
func (p PixelChar) Equal(o PixelChar) bool { return p == o }
