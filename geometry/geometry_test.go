package geometry

import "testing"

func TestLengthConvertToIndexSaturates(t *testing.T) {
	if got := Length(0).ConvertToIndex(); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
	if got := Length(5).ConvertToIndex(); got != 4 {
		t.Errorf("expected 4, got %d", got)
	}
}

func TestRemainingFromAtOrPastEndIsZero(t *testing.T) {
	tests := []struct {
		length Length
		index  Index
		want   Length
	}{
		{length: 5, index: 5, want: 0},
		{length: 5, index: 10, want: 0},
		{length: 5, index: 2, want: 3},
	}
	for _, tt := range tests {
		if got := tt.length.RemainingFrom(tt.index); got != tt.want {
			t.Errorf("RemainingFrom(%d) on length %d = %d, want %d", tt.index, tt.length, got, tt.want)
		}
	}
}

func TestIndexOverflows(t *testing.T) {
	if Index(3).Overflows(Length(3)) != Overflowed {
		t.Error("expected 3 to overflow length 3")
	}
	if Index(2).Overflows(Length(3)) != Within {
		t.Error("expected 2 to be within length 3")
	}
	if Index(-1).Overflows(Length(3)) != Overflowed {
		t.Error("expected negative index to overflow")
	}
}

func TestCaretAddSubRoundTrip(t *testing.T) {
	p := Pos{Col: 2, Row: 3}
	ofs := ScrOfs{Col: 1, Row: 1}
	adjusted := p.Add(ofs)
	if adjusted.IsRaw() {
		t.Fatal("expected ScrollAdjusted caret")
	}
	raw := adjusted.Sub(ofs)
	if !raw.IsRaw() {
		t.Fatal("expected Raw caret after Sub")
	}
	if raw.Pos() != p {
		t.Errorf("round trip mismatch: got %+v, want %+v", raw.Pos(), p)
	}
}
