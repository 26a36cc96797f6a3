package gc

import (
	"testing"

	"github.com/kungfusheep/bezel/geometry"
)

func TestSegmentPartitionsBytesAndSumsWidth(t *testing.T) {
	tests := []string{"hello", "a\U0001F600b", "héllo", ""}
	for _, s := range tests {
		text := Segment(s)
		var sum geometry.ColWidth
		var lastEnd geometry.ByteIndex
		for i, seg := range text.Segments() {
			if seg.StartByte != lastEnd {
				t.Errorf("%q: segment %d does not partition bytes: start=%d, previous end=%d", s, i, seg.StartByte, lastEnd)
			}
			lastEnd = seg.EndByte
			sum += seg.DisplayWidth
		}
		if int(lastEnd) != len(s) {
			t.Errorf("%q: segments don't cover whole string: ended at %d, len %d", s, lastEnd, len(s))
		}
		if sum != text.DisplayWidth() {
			t.Errorf("%q: sum of segment widths %d != DisplayWidth() %d", s, sum, text.DisplayWidth())
		}
	}
}

func TestTruncateEndToFitWidthNeverSplitsACluster(t *testing.T) {
	text := Segment("a\U0001F600b") // a(1) + emoji(2) + b(1) = width 4
	got := text.TruncateEndToFitWidth(2)
	if got.DisplayWidth() > 2 {
		t.Errorf("expected width <= 2, got %d", got.DisplayWidth())
	}
	if got.Raw() != "a" {
		t.Errorf("expected emoji to be dropped whole, got %q", got.Raw())
	}
}

func TestInsertThenDeleteAtDisplayColRoundTrips(t *testing.T) {
	text := Segment("abc")
	inserted := text.InsertAtDisplayCol(1, "X")
	if inserted.Raw() != "aXbc" {
		t.Fatalf("expected aXbc, got %q", inserted.Raw())
	}
	deleted := inserted.DeleteAtDisplayCol(1)
	if deleted.Raw() != "abc" {
		t.Errorf("expected abc, got %q", deleted.Raw())
	}
}
