package buffer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kungfusheep/bezel/ansiconv"
	"github.com/kungfusheep/bezel/style"
)

// PixelCharRenderer walks PixelChar values and emits the minimal ANSI bytes
// needed to render them, tracking the currently active style so repeated
// identical styles cost nothing (spec.md §4.1.1).
type PixelCharRenderer struct {
	buf            strings.Builder
	activeStyle    style.TuiStyle
	hasActiveStyle bool
}

// NewPixelCharRenderer returns a renderer with no active style.
func NewPixelCharRenderer() *PixelCharRenderer { return &PixelCharRenderer{} }

// Bytes returns the accumulated output and resets the internal buffer (but
// not the tracked active style, which persists across rows/frames the way
// a real terminal's state does).
func (r *PixelCharRenderer) Bytes() []byte {
	b := []byte(r.buf.String())
	r.buf.Reset()
	return b
}

// RenderRow emits the bytes for one row's worth of cells, left to right.
func (r *PixelCharRenderer) RenderRow(row []PixelChar) {
	for _, c := range row {
		r.renderCell(c)
	}
}

// RenderLine emits one line's worth of cells without going through an
// OffscreenBuffer; it is the same as RenderRow.
func (r *PixelCharRenderer) RenderLine(cells []PixelChar) { r.RenderRow(cells) }

func (r *PixelCharRenderer) renderCell(c PixelChar) {
	switch c.Kind {
	case Void:
		return
	case Spacer:
		r.transitionTo(style.TuiStyle{})
		r.buf.WriteByte(' ')
	case PlainText:
		r.transitionTo(c.Style)
		r.buf.WriteRune(c.Char)
	}
}

// transitionTo applies spec.md §4.1.1's style-transition table:
//
//	same                       -> no codes
//	default -> styled          -> emit all codes of the new style
//	styled -> default          -> emit CSI 0 m, clear hasActiveStyle
//	styled -> different styled -> if attribute bitsets differ, reset then
//	                               reapply; otherwise just the color deltas
func (r *PixelCharRenderer) transitionTo(next style.TuiStyle) {
	wasDefault := !r.hasActiveStyle || r.activeStyle.IsDefault()
	nextDefault := next.IsDefault()

	switch {
	case wasDefault && nextDefault:
		// same (both default): no codes.
	case wasDefault && !nextDefault:
		r.emitStyle(next)
	case !wasDefault && nextDefault:
		r.buf.WriteString("\x1b[0m")
		r.hasActiveStyle = false
	default:
		if r.activeStyle == next {
			// same: no codes.
			return
		}
		if r.activeStyle.Attr != next.Attr {
			r.buf.WriteString("\x1b[0m")
			r.emitStyle(next)
		} else {
			r.emitColorDeltas(next)
		}
	}
	r.activeStyle = next
	r.hasActiveStyle = !nextDefault
}

// emitStyle writes every attribute/color code for st.
func (r *PixelCharRenderer) emitStyle(st style.TuiStyle) {
	var codes []string
	if st.Attr.Has(style.AttrBold) {
		codes = append(codes, "1")
	}
	if st.Attr.Has(style.AttrDim) {
		codes = append(codes, "2")
	}
	if st.Attr.Has(style.AttrItalic) {
		codes = append(codes, "3")
	}
	if st.Attr.Has(style.AttrUnderline) {
		codes = append(codes, "4")
	}
	if st.Attr.Has(style.AttrBlinkSlow) {
		codes = append(codes, "5")
	}
	if st.Attr.Has(style.AttrBlinkRapid) {
		codes = append(codes, "6")
	}
	if st.Attr.Has(style.AttrReverse) {
		codes = append(codes, "7")
	}
	if st.Attr.Has(style.AttrHidden) {
		codes = append(codes, "8")
	}
	if st.Attr.Has(style.AttrStrikethrough) {
		codes = append(codes, "9")
	}
	if st.Attr.Has(style.AttrOverline) {
		codes = append(codes, "53")
	}
	if code := colorCode(st.FG, true); code != "" {
		codes = append(codes, code)
	}
	if code := colorCode(st.BG, false); code != "" {
		codes = append(codes, code)
	}
	if len(codes) == 0 {
		return
	}
	r.buf.WriteString("\x1b[")
	r.buf.WriteString(strings.Join(codes, ";"))
	r.buf.WriteByte('m')
}

// emitColorDeltas emits only the color codes, used when attribute bitsets
// are unchanged between two non-default styles.
func (r *PixelCharRenderer) emitColorDeltas(next style.TuiStyle) {
	var codes []string
	if r.activeStyle.FG != next.FG {
		if code := colorCode(next.FG, true); code != "" {
			codes = append(codes, code)
		} else {
			codes = append(codes, "39")
		}
	}
	if r.activeStyle.BG != next.BG {
		if code := colorCode(next.BG, false); code != "" {
			codes = append(codes, code)
		} else {
			codes = append(codes, "49")
		}
	}
	if len(codes) == 0 {
		return
	}
	r.buf.WriteString("\x1b[")
	r.buf.WriteString(strings.Join(codes, ";"))
	r.buf.WriteByte('m')
}

// colorCode renders c per the current process-wide ColorSupport, following
// spec.md §4.1.1's support table: Truecolor emits 38/48;2;r;g;b, Ansi256
// emits 38/48;5;n, Grayscale degrades through a luma index, and NoColor
// emits the basic SGR black code (30 fg / 40 bg) per the table's explicit
// "black" entry for both foreground and background.
func colorCode(c style.Color, fg bool) string {
	if !c.IsSet() {
		return ""
	}
	support := style.Current()
	prefix := "38"
	if !fg {
		prefix = "48"
	}
	switch support {
	case style.Truecolor:
		if c.Kind == style.ColorRgb {
			return fmt.Sprintf("%s;2;%d;%d;%d", prefix, c.R, c.G, c.B)
		}
		return fmt.Sprintf("%s;5;%d", prefix, c.Ansi)
	case style.Ansi256:
		idx := ansiconv.ToAnsi256(c)
		return prefix + ";5;" + strconv.Itoa(int(idx))
	case style.Grayscale:
		idx := ansiconv.ToGrayscaleAnsi256(c)
		return prefix + ";5;" + strconv.Itoa(int(idx))
	default: // NoColor
		if fg {
			return "30"
		}
		return "40"
	}
}
