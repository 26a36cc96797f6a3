package readline

import (
	"fmt"
	"io"
	"strings"

	"github.com/kungfusheep/bezel/gc"
	"github.com/kungfusheep/bezel/geometry"
)

// OutputDevice is the single writable target the render/paint pipeline
// owns exclusively (spec.md §5's shared-resource policy): stdout is never
// written from more than one place, so no locking of the device itself is
// required.
type OutputDevice = io.Writer

// wrapRows returns how many rows below the prompt's first row the cursor
// sits once prompt+line wrap at the terminal width, and the column the
// cursor needs to land on within that row. Both are computed from
// CurrentColumn, not from the full prompt+line width.
func (ls *LineState) wrapRows() (rows int, finalCol geometry.ColWidth) {
	width := ls.termSize.ColWidth
	if width <= 0 {
		return 0, ls.CurrentColumn()
	}
	total := ls.CurrentColumn()
	rows = int(total) / int(width)
	finalCol = total - geometry.ColWidth(rows)*width
	return rows, finalCol
}

// Render writes prompt+line to out, then positions the cursor at
// current_column using ESC[<n>G and ESC[<n>A/B based on the computed wrap
// row, per spec.md §4.3.3.
func (ls *LineState) Render(out OutputDevice) error {
	var b strings.Builder
	b.WriteString(ls.prompt)
	b.WriteString(ls.line)

	totalWidth := gc.Segment(ls.prompt).DisplayWidth() + gc.Segment(ls.line).DisplayWidth()
	termWidth := ls.termSize.ColWidth
	endRows := 0
	if termWidth > 0 {
		endRows = int(totalWidth) / int(termWidth)
	}
	_, cursorCol := ls.wrapRows()
	cursorRows, _ := ls.wrapRows()

	if endRows > cursorRows {
		fmt.Fprintf(&b, "\x1b[%dA", endRows-cursorRows)
	}
	fmt.Fprintf(&b, "\x1b[%dG", int(cursorCol)+1)

	_, err := io.WriteString(out, b.String())
	return err
}

// Clear moves to column 1, moves up by the current wrap-row count, then
// erases from cursor to end of screen (spec.md §4.3.3).
func (ls *LineState) Clear(out OutputDevice) error {
	rows, _ := ls.wrapRows()
	var b strings.Builder
	b.WriteString("\x1b[1G")
	if rows > 0 {
		fmt.Fprintf(&b, "\x1b[%dA", rows)
	}
	b.WriteString("\x1b[J")
	_, err := io.WriteString(out, b.String())
	return err
}

// ClearAndRender is Clear followed by Render.
func (ls *LineState) ClearAndRender(out OutputDevice) error {
	if err := ls.Clear(out); err != nil {
		return err
	}
	return ls.Render(out)
}
