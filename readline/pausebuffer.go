package readline

// pauseBufferCap bounds how many lines accumulate while output is paused
// before overflow starts dropping the newest line (spec.md §4.3.5: "a
// bounded vec of inline strings... overflow drops newest").
const pauseBufferCap = 4096

// PauseBuffer accumulates foreign-output lines while the editor is paused,
// to be flushed through the normal foreign-output path on resume.
type PauseBuffer struct {
	lines   []string
	dropped int
}

// NewPauseBuffer returns an empty buffer.
func NewPauseBuffer() *PauseBuffer { return &PauseBuffer{} }

// Push appends line, dropping it (and counting the drop) if the buffer is
// already at capacity.
func (b *PauseBuffer) Push(line string) {
	if len(b.lines) >= pauseBufferCap {
		b.dropped++
		return
	}
	b.lines = append(b.lines, line)
}

// Dropped reports how many lines were discarded due to overflow.
func (b *PauseBuffer) Dropped() int { return b.dropped }

// Drain returns every buffered line and resets the buffer, for the resume
// path to replay through the normal SharedWriter flow.
func (b *PauseBuffer) Drain() []string {
	lines := b.lines
	b.lines = nil
	b.dropped = 0
	return lines
}

// Len reports how many lines are currently buffered.
func (b *PauseBuffer) Len() int { return len(b.lines) }
