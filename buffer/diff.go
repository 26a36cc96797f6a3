package buffer

import (
	"github.com/kungfusheep/bezel/geometry"
	"github.com/kungfusheep/bezel/style"
)

// DiffChunk is one cell that differs between two buffers of equal size.
type DiffChunk struct {
	Pos  geometry.Pos
	Cell PixelChar
}

// Diff returns, in row-major left-to-right order, every cell where next
// differs from prev (spec.md §4.1.2). prev and next must have equal size.
func Diff(prev, next *OffscreenBuffer) []DiffChunk {
	size := next.Size()
	var chunks []DiffChunk
	for row := geometry.RowIndex(0); row.Overflows(size.RowHeight) == geometry.Within; row++ {
		if !next.RowDirty(row) && !prev.RowDirty(row) {
			continue
		}
		for col := geometry.ColIndex(0); col.Overflows(size.ColWidth) == geometry.Within; col++ {
			nc := next.Get(col, row)
			if nc.Equal(prev.Get(col, row)) {
				continue
			}
			chunks = append(chunks, DiffChunk{Pos: geometry.Pos{Col: col, Row: row}, Cell: nc})
		}
	}
	return chunks
}

// PaintDiff renders diff chunks as: for each changed cell, a cursor-position
// move, a style reset, the cell's style, and its character. This guarantees
// idempotence (painting the same chunks twice yields the same output the
// second time) but does not attempt to coalesce consecutive same-style
// cells into runs — that run-length compression only happens in the
// full-line emitter (PixelCharRenderer), per spec.md §4.1.2.
func PaintDiff(chunks []DiffChunk) []byte {
	r := NewPixelCharRenderer()
	var out []byte
	for _, c := range chunks {
		out = append(out, cursorPositionSeq(c.Pos)...)
		out = append(out, "\x1b[0m"...)
		r.activeStyle = style.TuiStyle{}
		r.hasActiveStyle = false
		r.renderCell(c.Cell)
		out = append(out, r.Bytes()...)
	}
	return out
}

func cursorPositionSeq(p geometry.Pos) []byte {
	row := int(p.Row) + 1
	col := int(p.Col) + 1
	s := "\x1b[" + itoa(row) + ";" + itoa(col) + "H"
	return []byte(s)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
