package readline

import "testing"

func TestSharedWriterBuffersUntilNewline(t *testing.T) {
	w, ch := NewSharedWriter(Minimal)
	w.Write([]byte("partial"))
	select {
	case <-ch:
		t.Fatal("expected no signal before a newline")
	default:
	}
	w.Write([]byte(" line\n"))
	sig := <-ch
	if sig.Kind != SigLine || string(sig.Line) != "partial line\n" {
		t.Fatalf("got %+v", sig)
	}
}

func TestSharedWriterSplitsMultipleLines(t *testing.T) {
	w, ch := NewSharedWriter(Minimal)
	w.Write([]byte("a\nb\n"))
	first := <-ch
	second := <-ch
	if string(first.Line) != "a\n" || string(second.Line) != "b\n" {
		t.Fatalf("got %q, %q", first.Line, second.Line)
	}
}

func TestSharedWriterFullChannelReturnsReceiverClosed(t *testing.T) {
	w, _ := NewSharedWriter(ChannelCapacity(1))
	w.Write([]byte("a\n"))
	_, err := w.Write([]byte("b\n"))
	if err != ErrReceiverClosed {
		t.Fatalf("got err %v, want ErrReceiverClosed", err)
	}
}

func TestPauseBufferDropsNewestOnOverflow(t *testing.T) {
	b := NewPauseBuffer()
	for i := 0; i < pauseBufferCap+5; i++ {
		b.Push("x")
	}
	if b.Dropped() != 5 {
		t.Fatalf("dropped = %d, want 5", b.Dropped())
	}
	if b.Len() != pauseBufferCap {
		t.Fatalf("len = %d, want %d", b.Len(), pauseBufferCap)
	}
}
