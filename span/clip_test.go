package span

import (
	"testing"

	"github.com/kungfusheep/bezel/geometry"
	"github.com/kungfusheep/bezel/style"
)

func TestClipIdentityAtFullWidth(t *testing.T) {
	l := Line{NewSpan(style.TuiStyle{}, "hello "), NewSpan(style.TuiStyle{Attr: style.AttrBold}, "world")}
	clipped := Clip(l, 0, l.DisplayWidth())
	if clipped.PlainText() != l.PlainText() {
		t.Errorf("expected identity clip, got %q want %q", clipped.PlainText(), l.PlainText())
	}
}

func TestClipNeverExceedsWidth(t *testing.T) {
	l := Line{NewSpan(style.TuiStyle{}, "the quick brown fox")}
	for w := geometry.ColWidth(0); w <= l.DisplayWidth(); w++ {
		for o := geometry.ColWidth(0); o <= l.DisplayWidth(); o++ {
			clipped := Clip(l, o, w)
			if clipped.DisplayWidth() > w {
				t.Fatalf("offset=%d width=%d: clipped width %d exceeds max", o, w, clipped.DisplayWidth())
			}
		}
	}
}
