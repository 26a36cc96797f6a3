package input

import "testing"

func TestArrowKeys(t *testing.T) {
	cases := map[string]Key{
		"\x1b[A": KeyUp, "\x1b[B": KeyDown, "\x1b[C": KeyRight, "\x1b[D": KeyLeft,
	}
	for seq, want := range cases {
		p := NewVT100Parser()
		events := p.Feed([]byte(seq), false)
		if len(events) != 1 || events[0].Key.Key != want {
			t.Errorf("seq %q: got %+v, want %v", seq, events, want)
		}
	}
}

func TestModifiedArrowKey(t *testing.T) {
	p := NewVT100Parser()
	events := p.Feed([]byte("\x1b[1;5A"), false)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ev := events[0]
	if ev.Kind != EventKeyboard || ev.Key.Key != KeyUp || !ev.Key.Modified || ev.Key.Modifiers != ModCtrl {
		t.Errorf("got %+v, want WithModifiers{Up, ctrl}", ev)
	}
}

func TestHomeEndKeys(t *testing.T) {
	p := NewVT100Parser()
	events := p.Feed([]byte("\x1b[H\x1b[F"), false)
	if len(events) != 2 || events[0].Key.Key != KeyHome || events[1].Key.Key != KeyEnd {
		t.Fatalf("got %+v", events)
	}
}

func TestTildeKeys(t *testing.T) {
	p := NewVT100Parser()
	events := p.Feed([]byte("\x1b[3~\x1b[5~\x1b[6~"), false)
	want := []Key{KeyDelete, KeyPageUp, KeyPageDown}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for i, w := range want {
		if events[i].Key.Key != w {
			t.Errorf("event %d: got %v, want %v", i, events[i].Key.Key, w)
		}
	}
}

func TestSS3FunctionKeys(t *testing.T) {
	p := NewVT100Parser()
	events := p.Feed([]byte("\x1bOP\x1bOQ"), false)
	if len(events) != 2 || events[0].Key.Key != KeyF1 || events[1].Key.Key != KeyF2 {
		t.Fatalf("got %+v", events)
	}
}

func TestControlBytes(t *testing.T) {
	p := NewVT100Parser()
	events := p.Feed([]byte{0x0d, 0x09, 0x7f, 0x03, 0x04}, false)
	want := []Key{KeyEnter, KeyTab, KeyBackspace, KeyCtrlC, KeyCtrlD}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for i, w := range want {
		if events[i].Key.Key != w {
			t.Errorf("event %d: got %v, want %v", i, events[i].Key.Key, w)
		}
	}
}

func TestLoneEscResolvesToEscapeKeyWhenNoMoreData(t *testing.T) {
	p := NewVT100Parser()
	events := p.Feed([]byte{0x1b}, false)
	if len(events) != 1 || events[0].Key.Key != KeyEscape {
		t.Fatalf("got %+v, want Escape key", events)
	}
}

func TestLoneEscWaitsWhenMoreHintTrue(t *testing.T) {
	p := NewVT100Parser()
	events := p.Feed([]byte{0x1b}, true)
	if len(events) != 0 {
		t.Fatalf("expected no events yet, got %+v", events)
	}
	events = p.Feed([]byte("[A"), false)
	if len(events) != 1 || events[0].Key.Key != KeyUp {
		t.Fatalf("expected Up after completing the split sequence, got %+v", events)
	}
}

func TestBracketedPasteProducesSinglePasteEvent(t *testing.T) {
	p := NewVT100Parser()
	events := p.Feed([]byte("\x1b[200~Hello\nWorld\x1b[201~"), false)
	if len(events) != 1 {
		t.Fatalf("expected exactly 1 event, got %d: %+v", len(events), events)
	}
	if events[0].Kind != EventPaste || events[0].Paste != "Hello\nWorld" {
		t.Fatalf("got %+v, want Paste(\"Hello\\nWorld\")", events[0])
	}
}

func TestParserIsMonoidHomomorphismOverSplitFeeds(t *testing.T) {
	whole := "\x1b[1;5A\x1b[3~hi"
	p1 := NewVT100Parser()
	want := p1.Feed([]byte(whole), false)

	for split := 1; split < len(whole); split++ {
		p2 := NewVT100Parser()
		var got []InputEvent
		got = append(got, p2.Feed([]byte(whole[:split]), true)...)
		got = append(got, p2.Feed([]byte(whole[split:]), false)...)
		if len(got) != len(want) {
			t.Fatalf("split at %d: got %d events, want %d (%+v vs %+v)", split, len(got), len(want), got, want)
		}
		for i := range want {
			if got[i].Key.Key != want[i].Key.Key || got[i].Kind != want[i].Kind {
				t.Errorf("split at %d, event %d: got %+v, want %+v", split, i, got[i], want[i])
			}
		}
	}
}

func TestOSCProgressAndHyperlink(t *testing.T) {
	p := NewVT100Parser()
	events := p.Feed([]byte("\x1b]9;4;1;42\x07"), false)
	if len(events) != 1 || events[0].Kind != EventProgress || events[0].Progress.State != ProgressActive || events[0].Progress.Progress != 42 {
		t.Fatalf("got %+v", events)
	}

	p2 := NewVT100Parser()
	events = p2.Feed([]byte("\x1b]8;;https://example.com\x07"), false)
	if len(events) != 1 || events[0].Kind != EventHyperlink || events[0].Hyperlink.URI != "https://example.com" {
		t.Fatalf("got %+v", events)
	}
}
