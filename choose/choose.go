//go:build linux

package choose

import (
	"os"
	"sort"

	"github.com/kungfusheep/bezel/buffer"
	"github.com/kungfusheep/bezel/geometry"
	"github.com/kungfusheep/bezel/input"
	"github.com/kungfusheep/bezel/style"
	"github.com/kungfusheep/bezel/term"
)

// Options configures a Choose call.
type Options struct {
	Multi   bool // allow selecting more than one item with Tab
	Preview bool // reserved: render a preview pane for the highlighted item — not yet wired
}

// scoredItem pairs an input item with its current match score.
type scoredItem struct {
	item  string
	score int
}

// Choose runs a full-screen fuzzy picker over items, labeled with header,
// and returns the chosen subset. ok is false if the user cancelled
// (Escape/Ctrl+C) or the terminal isn't a TTY — this is the Go rendering
// of spec.md §6.1's `choose(header, items, options) -> Option<Vec<Item>>`.
func Choose(header string, items []string, opts Options) (selected []string, ok bool) {
	if !term.IsTTY() {
		return nil, false
	}
	raw, err := input.EnableRawMode(int(os.Stdin.Fd()))
	if err != nil {
		return nil, false
	}
	defer raw.Disable()

	sub, err := input.Allocate(pollerFactory)
	if err != nil {
		return nil, false
	}
	defer sub.Release()

	size, err := term.Size()
	if err != nil {
		size = geometry.Size{ColWidth: 80, RowHeight: 24}
	}

	p := &picker{
		header: header, items: items, opts: opts,
		size: size, chosen: make(map[int]bool),
		buf:  buffer.NewEmpty(size),
		prev: buffer.NewEmpty(size),
	}
	p.refilter()
	p.paint()

	for ev := range sub.Events {
		if ev.Kind == input.PollerSignalResize {
			p.size = ev.Size
			p.buf = buffer.NewEmpty(p.size)
			p.prev = buffer.NewEmpty(p.size)
			p.paint()
			continue
		}
		if ev.Kind != input.PollerStdinInput {
			continue
		}
		done, accepted := p.handle(ev.Event)
		if done {
			if !accepted {
				return nil, false
			}
			return p.selection(), true
		}
		p.paint()
	}
	return nil, false
}

func pollerFactory(emit func(input.PollerEvent)) (func(func(input.PollerEvent)), *input.Waker, func(), error) {
	poller, waker, err := input.NewPoller(int(os.Stdin.Fd()), term.Size, input.ReceiverCount)
	if err != nil {
		return nil, nil, nil, err
	}
	stopSignal := poller.WatchResizeSignal()
	return func(e func(input.PollerEvent)) { poller.Run(e) },
		waker,
		func() { stopSignal(); poller.Close() },
		nil
}

type picker struct {
	header   string
	items    []string
	opts     Options
	query    []rune
	filtered []scoredItem
	cursor   int
	chosen   map[int]bool // indices into filtered's underlying item, by original items index
	size     geometry.Size
	buf      *buffer.OffscreenBuffer
	prev     *buffer.OffscreenBuffer
}

// handle applies one keystroke; done signals the loop should end, and
// accepted distinguishes Enter (true) from Escape/Ctrl+C (false).
func (p *picker) handle(ev input.InputEvent) (done, accepted bool) {
	if ev.Kind != input.EventKeyboard {
		return false, false
	}
	k := ev.Key
	switch {
	case k.Key == input.KeyEnter:
		return true, true
	case k.Key == input.KeyEscape || k.Key == input.KeyCtrlC:
		return true, false
	case k.Key == input.KeyUp:
		if p.cursor > 0 {
			p.cursor--
		}
	case k.Key == input.KeyDown:
		if p.cursor < len(p.filtered)-1 {
			p.cursor++
		}
	case k.Key == input.KeyBackspace:
		if len(p.query) > 0 {
			p.query = p.query[:len(p.query)-1]
			p.refilter()
		}
	case k.Key == input.KeyTab && p.opts.Multi:
		if p.cursor < len(p.filtered) {
			idx := p.originalIndex(p.cursor)
			p.chosen[idx] = !p.chosen[idx]
		}
	case k.Key == input.KeyRune && !k.Modified:
		p.query = append(p.query, k.Char)
		p.refilter()
	}
	return false, false
}

func (p *picker) originalIndex(filteredIdx int) int {
	target := p.filtered[filteredIdx].item
	for i, it := range p.items {
		if it == target {
			return i
		}
	}
	return -1
}

func (p *picker) refilter() {
	q := ParseQuery(string(p.query))
	p.filtered = p.filtered[:0]
	for _, it := range p.items {
		score, ok := q.Score(it)
		if !ok {
			continue
		}
		p.filtered = append(p.filtered, scoredItem{item: it, score: score})
	}
	sort.SliceStable(p.filtered, func(i, j int) bool { return p.filtered[i].score > p.filtered[j].score })
	if p.cursor >= len(p.filtered) {
		p.cursor = len(p.filtered) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

func (p *picker) selection() []string {
	if len(p.chosen) == 0 {
		if p.cursor < len(p.filtered) {
			return []string{p.filtered[p.cursor].item}
		}
		return nil
	}
	var out []string
	for i, it := range p.items {
		if p.chosen[i] {
			out = append(out, it)
		}
	}
	return out
}

func (p *picker) paint() {
	pipeline := buffer.NewPipeline()
	pipeline.Push(buffer.Normal, buffer.MoveCursorPositionAbs(geometry.Pos{Col: 0, Row: 0}))
	pipeline.Push(buffer.Normal, buffer.PaintTextWithAttributes(p.header, style.TuiStyle{Attr: style.AttrBold}))
	pipeline.Push(buffer.Normal, buffer.MoveCursorPositionAbs(geometry.Pos{Col: 0, Row: 1}))
	pipeline.Push(buffer.Normal, buffer.PaintTextWithAttributes("> "+string(p.query), style.TuiStyle{}))

	maxRows := int(p.size.RowHeight) - 2
	for i := 0; i < len(p.filtered) && i < maxRows; i++ {
		sty := style.TuiStyle{}
		if i == p.cursor {
			sty = style.TuiStyle{Attr: style.AttrReverse}
		}
		row := geometry.RowIndex(i + 2)
		pipeline.Push(buffer.Normal, buffer.MoveCursorPositionAbs(geometry.Pos{Col: 0, Row: row}))
		pipeline.Push(buffer.Normal, buffer.PaintTextWithAttributes(p.filtered[i].item, sty))
	}
	pipeline.Execute(p.buf)

	chunks := buffer.Diff(p.prev, p.buf)
	out := buffer.PaintDiff(chunks)
	os.Stdout.Write(out)
	p.prev = p.buf
	p.buf = buffer.NewEmpty(p.size)
}
