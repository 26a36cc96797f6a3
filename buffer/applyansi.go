package buffer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/kungfusheep/bezel/geometry"
	"github.com/kungfusheep/bezel/style"
)

// ansiCursorState holds the bits of parser state apply_ansi_bytes needs
// that don't belong on OffscreenBuffer itself (saved cursor, current SGR
// style) — kept separate from the production PixelCharRenderer/RenderOp
// path per spec.md §4.1.3: this interpreter exists purely so tests can
// assert on the exact rendered grid, and is never used for real output.
type ansiCursorState struct {
	saved geometry.Pos
	style style.TuiStyle
}

// ApplyAnsiBytes parses a stream of VT100 bytes and mutates buf to match
// what a real terminal would display after receiving them. Supported:
// CUP/HVP (CSI n;m H|f), CUU/CUD/CUF/CUB, CUP home, save/restore cursor
// (CSI s/u and ESC 7/8), SGR, and plain printable text (grapheme-segmented,
// honoring wide-character placement). Erase sequences are tolerated
// (consumed) but are not required by anything the renderer itself emits.
func ApplyAnsiBytes(buf *OffscreenBuffer, data []byte) {
	st := &ansiCursorState{}
	i := 0
	for i < len(data) {
		b := data[i]
		if b == 0x1b {
			n := applyEscape(buf, st, data[i:])
			if n == 0 {
				i++
				continue
			}
			i += n
			continue
		}
		if b < 0x20 {
			i++
			continue
		}
		// Decode one UTF-8 rune and paint it through the normal text
		// path so wide-grapheme/Void placement matches production
		// behavior exactly.
		r, size := decodeRune(data[i:])
		es := emitterState{}
		op := PaintTextWithAttributes(string(r), st.style)
		op.execute(buf, &es)
		i += size
	}
}

func decodeRune(b []byte) (rune, int) {
	if len(b) == 0 {
		return 0, 1
	}
	r, size := utf8.DecodeRune(b)
	if size == 0 {
		size = 1
	}
	return r, size
}

// applyEscape handles one ESC-introduced sequence starting at data[0] ==
// 0x1b, returning the number of bytes consumed (0 if malformed/unknown,
// in which case the caller skips just the ESC byte and resyncs).
func applyEscape(buf *OffscreenBuffer, st *ansiCursorState, data []byte) int {
	if len(data) < 2 {
		return 0
	}
	switch data[1] {
	case '7': // save cursor (ESC form)
		st.saved = buf.cursor
		return 2
	case '8': // restore cursor (ESC form)
		buf.cursor = st.saved
		return 2
	case '[':
		return applyCSI(buf, st, data)
	}
	return 0
}

func applyCSI(buf *OffscreenBuffer, st *ansiCursorState, data []byte) int {
	// data[0]==ESC, data[1]=='['
	j := 2
	for j < len(data) && !(data[j] >= 0x40 && data[j] <= 0x7e) {
		j++
	}
	if j >= len(data) {
		return 0 // incomplete
	}
	final := data[j]
	params := string(data[2:j])
	args := parseArgs(params)
	switch final {
	case 'H', 'f': // CUP / HVP
		n, m := argOr(args, 0, 1), argOr(args, 1, 1)
		buf.cursor = clampToBuffer(buf, geometry.Pos{Col: geometry.ColIndex(m - 1), Row: geometry.RowIndex(n - 1)})
	case 'A': // CUU
		buf.cursor = clampToBuffer(buf, geometry.Pos{Col: buf.cursor.Col, Row: buf.cursor.Row - geometry.RowIndex(argOr(args, 0, 1))})
	case 'B': // CUD
		buf.cursor = clampToBuffer(buf, geometry.Pos{Col: buf.cursor.Col, Row: buf.cursor.Row + geometry.RowIndex(argOr(args, 0, 1))})
	case 'C': // CUF
		buf.cursor = clampToBuffer(buf, geometry.Pos{Col: buf.cursor.Col + geometry.ColIndex(argOr(args, 0, 1)), Row: buf.cursor.Row})
	case 'D': // CUB
		buf.cursor = clampToBuffer(buf, geometry.Pos{Col: buf.cursor.Col - geometry.ColIndex(argOr(args, 0, 1)), Row: buf.cursor.Row})
	case 's': // save cursor (CSI form)
		st.saved = buf.cursor
	case 'u': // restore cursor (CSI form)
		buf.cursor = st.saved
	case 'J', 'K': // erase in display/line — tolerated, not emitted by the renderer
	case 'm': // SGR
		applySGR(st, args)
	}
	return j + 1
}

func parseArgs(params string) []int {
	if params == "" {
		return nil
	}
	parts := strings.Split(params, ";")
	args := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			n = 0
		}
		args[i] = n
	}
	return args
}

func argOr(args []int, i, def int) int {
	if i >= len(args) || args[i] == 0 {
		return def
	}
	return args[i]
}

func applySGR(st *ansiCursorState, args []int) {
	if len(args) == 0 {
		args = []int{0}
	}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case 0:
			st.style = style.TuiStyle{}
		case 1:
			st.style.Attr |= style.AttrBold
		case 2:
			st.style.Attr |= style.AttrDim
		case 3:
			st.style.Attr |= style.AttrItalic
		case 4:
			st.style.Attr |= style.AttrUnderline
		case 5:
			st.style.Attr |= style.AttrBlinkSlow
		case 6:
			st.style.Attr |= style.AttrBlinkRapid
		case 7:
			st.style.Attr |= style.AttrReverse
		case 8:
			st.style.Attr |= style.AttrHidden
		case 9:
			st.style.Attr |= style.AttrStrikethrough
		case 53:
			st.style.Attr |= style.AttrOverline
		case 38, 48:
			fg := args[i] == 38
			if i+1 < len(args) && args[i+1] == 2 && i+4 < len(args) {
				c := style.Rgb(uint8(args[i+2]), uint8(args[i+3]), uint8(args[i+4]))
				if fg {
					st.style.FG = c
				} else {
					st.style.BG = c
				}
				i += 4
			} else if i+1 < len(args) && args[i+1] == 5 && i+2 < len(args) {
				c := style.Ansi256(uint8(args[i+2]))
				if fg {
					st.style.FG = c
				} else {
					st.style.BG = c
				}
				i += 2
			}
		case 39:
			st.style.FG = style.NoColor
		case 49:
			st.style.BG = style.NoColor
		}
	}
}
