package buffer

import (
	"github.com/kungfusheep/bezel/geometry"
	"github.com/kungfusheep/bezel/style"
)

// OffscreenBuffer is a fixed-size 2-D grid of PixelChar, a cursor position,
// and the current fg/bg colors an in-progress render is using. It is
// mutated only by executing RenderOp values (or, in tests, by applying raw
// ANSI bytes — see applyansi.go).
//
// Row-level dirty tracking mirrors the teacher's Buffer.dirtyRows: it lets
// the diff engine and paint pipeline skip whole rows that weren't touched
// since the last Clear, without changing the PixelCharDiffChunks contract.
type OffscreenBuffer struct {
	cells  []PixelChar
	width  geometry.ColWidth
	height geometry.RowHeight

	cursor geometry.Pos
	fg, bg style.Color

	dirtyRows []bool
	allDirty  bool
}

// NewEmpty allocates a buffer of the given size, filled with Spacer cells.
func NewEmpty(size geometry.Size) *OffscreenBuffer {
	w, h := int(size.ColWidth), int(size.RowHeight)
	b := &OffscreenBuffer{
		width:     size.ColWidth,
		height:    size.RowHeight,
		cells:     make([]PixelChar, w*h),
		dirtyRows: make([]bool, h),
		allDirty:  true,
	}
	spacer := NewSpacer()
	for i := range b.cells {
		b.cells[i] = spacer
	}
	return b
}

// Size returns the buffer's dimensions.
func (b *OffscreenBuffer) Size() geometry.Size {
	return geometry.Size{ColWidth: b.width, RowHeight: b.height}
}

// InBounds reports whether (col, row) addresses a cell in the buffer.
func (b *OffscreenBuffer) InBounds(col geometry.ColIndex, row geometry.RowIndex) bool {
	return col.Overflows(b.width) == geometry.Within && row.Overflows(b.height) == geometry.Within
}

func (b *OffscreenBuffer) index(col geometry.ColIndex, row geometry.RowIndex) int {
	return int(row)*int(b.width) + int(col)
}

// Get returns the cell at (col, row), or a Spacer if out of bounds.
func (b *OffscreenBuffer) Get(col geometry.ColIndex, row geometry.RowIndex) PixelChar {
	if !b.InBounds(col, row) {
		return NewSpacer()
	}
	return b.cells[b.index(col, row)]
}

// set writes a cell directly, marking its row dirty. Internal: all mutation
// from outside this package goes through RenderOp execution.
func (b *OffscreenBuffer) set(col geometry.ColIndex, row geometry.RowIndex, c PixelChar) {
	if !b.InBounds(col, row) {
		return
	}
	b.cells[b.index(col, row)] = c
	b.dirtyRows[int(row)] = true
}

// RowDirty reports whether row has been written to since the last Clear.
func (b *OffscreenBuffer) RowDirty(row geometry.RowIndex) bool {
	if int(row) < 0 || int(row) >= len(b.dirtyRows) {
		return false
	}
	return b.allDirty || b.dirtyRows[row]
}

// ClearDirtyFlags resets dirty tracking after a successful paint.
func (b *OffscreenBuffer) ClearDirtyFlags() {
	b.allDirty = false
	for i := range b.dirtyRows {
		b.dirtyRows[i] = false
	}
}

// Cursor returns the buffer's current logical cursor position.
func (b *OffscreenBuffer) Cursor() geometry.Pos { return b.cursor }

// Resize reallocates the grid, discarding prior contents (matching the
// teacher's Buffer.Resize: a resize always implies a full repaint).
func (b *OffscreenBuffer) Resize(size geometry.Size) {
	w, h := int(size.ColWidth), int(size.RowHeight)
	b.width, b.height = size.ColWidth, size.RowHeight
	b.cells = make([]PixelChar, w*h)
	spacer := NewSpacer()
	for i := range b.cells {
		b.cells[i] = spacer
	}
	b.dirtyRows = make([]bool, h)
	b.allDirty = true
	b.cursor = geometry.Pos{}
}

// writeWideGrapheme places a display-width-2 grapheme at (col,row) plus its
// paired Void continuation cell, per spec.md §3.4 invariant 1. A write that
// would need col+1 to be out of bounds is truncated instead (invariant 2):
// nothing is written at all, and the cursor does not advance for it.
func (b *OffscreenBuffer) writeWideGrapheme(col geometry.ColIndex, row geometry.RowIndex, ch rune, st style.TuiStyle) (advanced geometry.ColWidth) {
	if !b.InBounds(col, row) || !b.InBounds(col+1, row) {
		return 0
	}
	b.set(col, row, NewPlainText(ch, 2, st))
	b.set(col+1, row, NewVoid())
	return 2
}

// writeNarrowGrapheme places a display-width-1 grapheme at (col,row).
func (b *OffscreenBuffer) writeNarrowGrapheme(col geometry.ColIndex, row geometry.RowIndex, ch rune, st style.TuiStyle) (advanced geometry.ColWidth) {
	if !b.InBounds(col, row) {
		return 0
	}
	b.set(col, row, NewPlainText(ch, 1, st))
	return 1
}

// ClearScreen fills every cell with Spacer and resets the cursor and
// current colors, per the ClearScreen RenderOp.
func (b *OffscreenBuffer) ClearScreen() {
	spacer := NewSpacer()
	for i := range b.cells {
		b.cells[i] = spacer
	}
	b.allDirty = true
	for i := range b.dirtyRows {
		b.dirtyRows[i] = true
	}
	b.cursor = geometry.Pos{}
	b.fg, b.bg = style.NoColor, style.NoColor
}
