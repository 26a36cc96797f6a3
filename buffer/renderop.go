package buffer

import (
	"github.com/kungfusheep/bezel/geometry"
	"github.com/kungfusheep/bezel/gc"
	"github.com/kungfusheep/bezel/style"
)

// RenderOpKind tags which RenderOp variant is held.
type RenderOpKind uint8

const (
	OpResetColor RenderOpKind = iota
	OpSetFgColor
	OpSetBgColor
	OpApplyColors
	OpMoveCursorPositionAbs
	OpMoveCursorPositionRelTo
	OpPaintTextWithAttributes
	OpClearScreen
)

// RenderOp is one instruction in a RenderPipeline, per spec.md §3.5.
type RenderOp struct {
	Kind RenderOpKind

	Color      style.Color         // SetFgColor, SetBgColor
	Style      *style.TuiStyle     // ApplyColors; nil means "reset"
	Pos        geometry.Pos        // MoveCursorPositionAbs
	Origin     geometry.Pos        // MoveCursorPositionRelTo: base the caller supplies
	RelOffset  geometry.Pos        // MoveCursorPositionRelTo: pure offset added to Origin
	Text       string              // PaintTextWithAttributes
	TextStyle  style.TuiStyle      // PaintTextWithAttributes
}

func ResetColor() RenderOp { return RenderOp{Kind: OpResetColor} }
func SetFgColor(c style.Color) RenderOp { return RenderOp{Kind: OpSetFgColor, Color: c} }
func SetBgColor(c style.Color) RenderOp { return RenderOp{Kind: OpSetBgColor, Color: c} }

// ApplyColors sets fg+bg+attribs from st, or resets if st is nil.
func ApplyColors(st *style.TuiStyle) RenderOp { return RenderOp{Kind: OpApplyColors, Style: st} }

func MoveCursorPositionAbs(p geometry.Pos) RenderOp {
	return RenderOp{Kind: OpMoveCursorPositionAbs, Pos: p}
}

// MoveCursorPositionRelTo moves relative to a caller-supplied origin; per
// spec.md's Open Questions, the origin/offset relationship to nested boxes
// is treated purely as addition, with layout supplying the origin.
func MoveCursorPositionRelTo(origin, offset geometry.Pos) RenderOp {
	return RenderOp{Kind: OpMoveCursorPositionRelTo, Origin: origin, RelOffset: offset}
}

func PaintTextWithAttributes(text string, st style.TuiStyle) RenderOp {
	return RenderOp{Kind: OpPaintTextWithAttributes, Text: text, TextStyle: st}
}

func ClearScreen() RenderOp { return RenderOp{Kind: OpClearScreen} }

// emitterState tracks the "current color" side effects that ops like
// SetFgColor/SetBgColor/ResetColor accumulate between PaintTextWithAttributes
// calls, mirroring the teacher's Screen.lastStyle bookkeeping but scoped to
// pipeline execution rather than terminal output.
type emitterState struct {
	fg, bg     style.Color
	attr       style.Attr
	hasStyle   bool
}

// Execute applies a single RenderOp to buf, threading emitter state through
// for ops that only set "current" fg/bg without themselves producing text.
func (op RenderOp) execute(buf *OffscreenBuffer, es *emitterState) {
	switch op.Kind {
	case OpResetColor:
		es.fg, es.bg, es.attr, es.hasStyle = style.NoColor, style.NoColor, style.AttrNone, false
		buf.fg, buf.bg = style.NoColor, style.NoColor
	case OpSetFgColor:
		es.fg = op.Color
		es.hasStyle = true
		buf.fg = op.Color
	case OpSetBgColor:
		es.bg = op.Color
		es.hasStyle = true
		buf.bg = op.Color
	case OpApplyColors:
		if op.Style == nil {
			es.fg, es.bg, es.attr, es.hasStyle = style.NoColor, style.NoColor, style.AttrNone, false
			buf.fg, buf.bg = style.NoColor, style.NoColor
			return
		}
		es.fg, es.bg, es.attr, es.hasStyle = op.Style.FG, op.Style.BG, op.Style.Attr, true
		buf.fg, buf.bg = op.Style.FG, op.Style.BG
	case OpMoveCursorPositionAbs:
		buf.cursor = clampToBuffer(buf, op.Pos)
	case OpMoveCursorPositionRelTo:
		target := geometry.Pos{
			Col: op.Origin.Col + op.RelOffset.Col,
			Row: op.Origin.Row + op.RelOffset.Row,
		}
		buf.cursor = clampToBuffer(buf, target)
	case OpPaintTextWithAttributes:
		st := op.TextStyle
		if es.hasStyle {
			st = style.TuiStyle{FG: es.fg, BG: es.bg, Attr: es.attr}.Merge(op.TextStyle)
		}
		paintText(buf, op.Text, st)
	case OpClearScreen:
		buf.ClearScreen()
		*es = emitterState{}
	}
}

// clampToBuffer clips a cursor target to the last valid row/column, per
// spec.md §3.4 invariant 3 ("writes past the last column are clipped, not
// wrapped").
func clampToBuffer(buf *OffscreenBuffer, p geometry.Pos) geometry.Pos {
	return geometry.Pos{
		Col: p.Col.ClampToMaxLength(buf.width).ClampToMinIndex(0),
		Row: p.Row.ClampToMaxLength(buf.height).ClampToMinIndex(0),
	}
}

// paintText writes s at the buffer's current cursor, advancing the cursor
// by each grapheme's display width. A wide grapheme that would need its
// Void continuation cell out of bounds is clipped (not written at all),
// and writing stops at the first clipped grapheme. The cursor is left
// after the last grapheme written, which can be one past the last column.
func paintText(buf *OffscreenBuffer, s string, st style.TuiStyle) {
	text := gc.Segment(s)
	col, row := buf.cursor.Col, buf.cursor.Row
	for i := 0; i < text.Len(); i++ {
		seg := text.Segments()[i]
		ch := []rune(text.Grapheme(geometry.SegIndex(i)))[0]
		var advanced geometry.ColWidth
		if seg.DisplayWidth >= 2 {
			advanced = buf.writeWideGrapheme(col, row, ch, st)
		} else {
			advanced = buf.writeNarrowGrapheme(col, row, ch, st)
		}
		if advanced == 0 {
			// Clipped: nothing more will fit on this row either. The
			// cursor is left where it is (possibly one past the last
			// column, mirroring a real terminal's pending-wrap state)
			// rather than being pulled back in bounds.
			break
		}
		col += geometry.ColIndex(advanced)
	}
	buf.cursor = geometry.Pos{Col: col, Row: row}
}
