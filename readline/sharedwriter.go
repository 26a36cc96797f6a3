package readline

import (
	"bytes"
	"errors"
	"sync"
)

// ChannelCapacity is the required, fixed-set choice of shared-writer
// channel capacity (spec.md §4.3.4). Each buffered message is ~64 bytes,
// so Overkill's worst case is ~30MB.
type ChannelCapacity int

const (
	Minimal   ChannelCapacity = 10_000
	Moderate  ChannelCapacity = 20_000
	Large     ChannelCapacity = 50_000
	VeryLarge ChannelCapacity = 100_000 // default
	Extreme   ChannelCapacity = 200_000
	Overkill  ChannelCapacity = 500_000
)

// ControlSignalKind tags which LineStateControlSignal variant is held.
type ControlSignalKind int

const (
	SigPause ControlSignalKind = iota
	SigResume
	SigSpinnerActive
	SigSpinnerInactive
	SigLine
	SigFlush
)

// ControlSignal is one message on the shared writer's control channel
// (spec.md §4.3.5).
type ControlSignal struct {
	Kind       ControlSignalKind
	Line       []byte
	ShutdownTx chan struct{} // valid when Kind == SigSpinnerActive
}

// ErrReceiverClosed is returned by Write when the channel is full. Per
// spec.md §4.3.4 this is the same apparent error a genuinely closed
// receiver would produce, even though the receiver is alive — the caller
// cannot distinguish backpressure from shutdown, by design of the
// underlying try_send primitive this mirrors.
var ErrReceiverClosed = errors.New("readline: shared writer channel full or closed")

// SharedWriter is an io.Writer adapter that forwards complete,
// newline-terminated segments to the editor loop over a bounded channel
// (spec.md §4.3.3's "crucial correctness property"), so background tasks
// can print without racing the live prompt.
type SharedWriter struct {
	ch      chan ControlSignal
	mu      sync.Mutex
	pending bytes.Buffer
}

// NewSharedWriter creates the control channel at the given capacity and
// returns the writer plus the receiving end the editor loop drains.
func NewSharedWriter(capacity ChannelCapacity) (*SharedWriter, <-chan ControlSignal) {
	ch := make(chan ControlSignal, int(capacity))
	return &SharedWriter{ch: ch}, ch
}

// Clone returns a SharedWriter sharing the same underlying channel, for a
// second background task to write through independently.
func (w *SharedWriter) Clone() *SharedWriter { return &SharedWriter{ch: w.ch} }

// Write buffers p and sends one SigLine message per newline-terminated
// segment; any trailing partial line (not ending in \n) stays buffered so
// the next Write can complete it atomically, per spec.md §4.3.3 step 3.
func (w *SharedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending.Write(p)
	for {
		buf := w.pending.Bytes()
		idx := bytes.IndexByte(buf, '\n')
		if idx < 0 {
			break
		}
		line := append([]byte(nil), buf[:idx+1]...)
		w.pending.Next(idx + 1)
		if err := w.trySend(ControlSignal{Kind: SigLine, Line: line}); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

// Flush forces the current partial line (if any) out as its own message.
func (w *SharedWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending.Len() == 0 {
		return w.trySend(ControlSignal{Kind: SigFlush})
	}
	line := append([]byte(nil), w.pending.Bytes()...)
	w.pending.Reset()
	return w.trySend(ControlSignal{Kind: SigLine, Line: line})
}

// Pause / Resume send the corresponding control signals.
func (w *SharedWriter) Pause() error  { return w.trySend(ControlSignal{Kind: SigPause}) }
func (w *SharedWriter) Resume() error { return w.trySend(ControlSignal{Kind: SigResume}) }

// SpinnerActive tells the editor a spinner now owns the terminal and
// Ctrl+C/Ctrl+D should route to shutdownTx instead of the editor.
func (w *SharedWriter) SpinnerActive(shutdownTx chan struct{}) error {
	return w.trySend(ControlSignal{Kind: SigSpinnerActive, ShutdownTx: shutdownTx})
}

// SpinnerInactive clears the spinner-owns-terminal state.
func (w *SharedWriter) SpinnerInactive() error {
	return w.trySend(ControlSignal{Kind: SigSpinnerInactive})
}

func (w *SharedWriter) trySend(sig ControlSignal) error {
	select {
	case w.ch <- sig:
		return nil
	default:
		return ErrReceiverClosed
	}
}
