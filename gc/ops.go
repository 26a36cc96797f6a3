package gc

import "github.com/kungfusheep/bezel/geometry"

// segAtOrAfterCol returns the index of the first segment whose
// StartDisplayCol is >= col, or len(segments) if none.
func (t Text) segAtOrAfterCol(col geometry.ColIndex) int {
	for i, s := range t.segments {
		if s.StartDisplayCol >= col {
			return i
		}
	}
	return len(t.segments)
}

// byteAtCol returns the byte offset of the segment boundary at or after the
// given display column, along with the segment index.
func (t Text) byteAtCol(col geometry.ColIndex) (geometry.ByteIndex, int) {
	i := t.segAtOrAfterCol(col)
	if i >= len(t.segments) {
		return geometry.ByteIndex(len(t.raw)), i
	}
	return t.segments[i].StartByte, i
}

// TruncateEndToFitWidth keeps only the leading clusters whose total display
// width fits within max, dropping a trailing cluster entirely rather than
// splitting it (grapheme boundaries are always preserved).
func (t Text) TruncateEndToFitWidth(max geometry.ColWidth) Text {
	cut := len(t.segments)
	for i, s := range t.segments {
		end := geometry.ColWidth(s.StartDisplayCol) + s.DisplayWidth
		if end > max {
			cut = i
			break
		}
	}
	if cut == len(t.segments) {
		return t
	}
	end := geometry.ByteIndex(len(t.raw))
	if cut < len(t.segments) {
		end = t.segments[cut].StartByte
	}
	return Segment(t.raw[:end])
}

// TruncateStartByWidth drops clusters from the start until at least `by`
// display columns have been removed.
func (t Text) TruncateStartByWidth(by geometry.ColWidth) Text {
	var dropped geometry.ColWidth
	cut := 0
	for i, s := range t.segments {
		if dropped >= by {
			cut = i
			break
		}
		dropped += s.DisplayWidth
		cut = i + 1
	}
	if cut == 0 {
		return t
	}
	if cut >= len(t.segments) {
		return Segment("")
	}
	return Segment(t.raw[t.segments[cut].StartByte:])
}

// TruncateEndByWidth drops clusters from the end until at least `by`
// display columns have been removed.
func (t Text) TruncateEndByWidth(by geometry.ColWidth) Text {
	var dropped geometry.ColWidth
	cut := len(t.segments)
	for i := len(t.segments) - 1; i >= 0; i-- {
		if dropped >= by {
			cut = i + 1
			break
		}
		dropped += t.segments[i].DisplayWidth
		cut = i
	}
	if cut <= 0 {
		return Segment("")
	}
	if cut >= len(t.segments) {
		return t
	}
	return Segment(t.raw[:t.segments[cut].StartByte])
}

// SplitAtDisplayCol splits the text into (before, after) at the first
// segment boundary at or after col. Never splits a cluster in half.
func (t Text) SplitAtDisplayCol(col geometry.ColIndex) (before, after Text) {
	b, _ := t.byteAtCol(col)
	return Segment(t.raw[:b]), Segment(t.raw[b:])
}

// InsertAtDisplayCol inserts s (itself grapheme-segmented) at the boundary
// at or after col.
func (t Text) InsertAtDisplayCol(col geometry.ColIndex, s string) Text {
	before, after := t.SplitAtDisplayCol(col)
	return Segment(before.raw + s + after.raw)
}

// DeleteAtDisplayCol removes the single grapheme cluster starting at or
// after col, if one exists.
func (t Text) DeleteAtDisplayCol(col geometry.ColIndex) Text {
	i := t.segAtOrAfterCol(col)
	if i >= len(t.segments) {
		return t
	}
	s := t.segments[i]
	return Segment(t.raw[:s.StartByte] + t.raw[s.EndByte:])
}
