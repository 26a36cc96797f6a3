package span

import "github.com/kungfusheep/bezel/geometry"

// Clip returns the portion of l visible in a viewport starting at
// scrollOffset display columns and maxWidth columns wide, preserving each
// surviving grapheme's original style. It walks the line's spans as a
// small state machine over the plain-text column projection, keeping
// spans (or partial spans, re-split at grapheme boundaries) whose column
// falls inside [scrollOffset, scrollOffset+maxWidth).
//
// Clip(l, 0, DisplayWidth(l)) == l, and DisplayWidth(Clip(l, o, w)) <= w
// for any 0 <= o <= DisplayWidth(l), per spec.md §8.1.
func Clip(l Line, scrollOffset geometry.ColWidth, maxWidth geometry.ColWidth) Line {
	if maxWidth <= 0 {
		return nil
	}
	lo := geometry.ColIndex(scrollOffset)
	hi := geometry.ColIndex(scrollOffset) + geometry.ColIndex(maxWidth)

	out := make(Line, 0, len(l))
	var col geometry.ColIndex
	for _, sp := range l {
		segs := sp.Text.Segments()
		var keepStart, keepEnd int = -1, -1
		for i, seg := range segs {
			segCol := col + geometry.ColIndex(seg.StartDisplayCol)
			segEndCol := segCol + geometry.ColIndex(seg.DisplayWidth)
			if segCol >= lo && segEndCol <= hi {
				if keepStart < 0 {
					keepStart = i
				}
				keepEnd = i + 1
			}
		}
		if keepStart >= 0 {
			raw := ""
			for i := keepStart; i < keepEnd; i++ {
				raw += sp.Text.Grapheme(geometry.SegIndex(i))
			}
			out = append(out, NewSpan(sp.Style, raw))
		}
		col += geometry.ColIndex(sp.DisplayWidth())
	}
	return out
}
