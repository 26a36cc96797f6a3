// Package gc segments UTF-8 text into grapheme clusters and measures their
// terminal display width, so the rest of bezel can treat "one user-visible
// character" as the atomic unit of text instead of bytes or runes.
package gc

import (
	"github.com/clipperhouse/displaywidth"
	"github.com/clipperhouse/uax29/v2/graphemes"

	"github.com/kungfusheep/bezel/geometry"
)

// Cluster describes one grapheme cluster within a larger string.
type Cluster struct {
	StartByte       geometry.ByteIndex
	EndByte         geometry.ByteIndex
	LogicalIndex    geometry.SegIndex
	DisplayWidth    geometry.ColWidth
	StartDisplayCol geometry.ColIndex
}

// Text is a grapheme-cluster-segmented string: the source bytes plus the
// segment table and total display width, computed once up front so repeated
// measurement and slicing operations don't re-scan the string.
type Text struct {
	raw      string
	segments []Cluster
	width    geometry.ColWidth
}

// Segment constructs a Text by walking s with a UAX #29 grapheme-cluster
// segmenter and measuring each cluster's terminal display width.
func Segment(s string) Text {
	t := Text{raw: s}
	var byteOff geometry.ByteIndex
	var col geometry.ColIndex
	seg := graphemes.FromString(s)
	idx := geometry.SegIndex(0)
	for cluster := range seg.All() {
		w := geometry.ColWidth(displaywidth.String(cluster))
		end := byteOff + geometry.ByteIndex(len(cluster))
		t.segments = append(t.segments, Cluster{
			StartByte:       byteOff,
			EndByte:         end,
			LogicalIndex:    idx,
			DisplayWidth:    w,
			StartDisplayCol: col,
		})
		byteOff = end
		col += w
		idx++
	}
	t.width = geometry.ColWidth(col)
	return t
}

// Raw returns the underlying bytes.
func (t Text) Raw() string { return t.raw }

// Segments returns the grapheme-cluster segment table.
func (t Text) Segments() []Cluster { return t.segments }

// DisplayWidth returns the total display width in terminal cells.
func (t Text) DisplayWidth() geometry.ColWidth { return t.width }

// Len returns the number of grapheme clusters.
func (t Text) Len() int { return len(t.segments) }

// Grapheme returns the raw bytes of the i'th cluster.
func (t Text) Grapheme(i geometry.SegIndex) string {
	if int(i) < 0 || int(i) >= len(t.segments) {
		return ""
	}
	s := t.segments[i]
	return t.raw[s.StartByte:s.EndByte]
}
