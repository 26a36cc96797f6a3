// Command demo is a minimal dashboard: a full-screen App driven by app.Run
// on the alternate screen, with a ticking panel redrawn on a timer. It
// does not use the async line editor or a SharedWriter, and it does not
// run in inline mode. Styled after the teacher's cmd/box dashboard, rebuilt directly on
// RenderOp/RenderPipeline instead of the declarative box-layout framework.
package main

import (
	"fmt"
	"log"
	"time"

	"github.com/kungfusheep/bezel/app"
	"github.com/kungfusheep/bezel/buffer"
	"github.com/kungfusheep/bezel/geometry"
	"github.com/kungfusheep/bezel/input"
	"github.com/kungfusheep/bezel/style"
)

type dashboard struct {
	tick    int
	cpuLoad []int
	mode    string
}

func newDashboard() *dashboard {
	return &dashboard{cpuLoad: []int{45, 67, 32, 89}, mode: "dashboard"}
}

func (d *dashboard) Init(reg *app.Registry, focus *app.FocusManager) {
	focus.SetOrder([]string{"cpu-panel", "info-panel"})
}

func (d *dashboard) HandleInputEvent(ev input.InputEvent, global app.Global, reg *app.Registry, focus *app.FocusManager) app.EventPropagation {
	if ev.Kind != input.EventKeyboard {
		return app.PropagationContinue
	}
	switch {
	case ev.Key.Key == input.KeyCtrlC:
		return app.PropagationStop
	case ev.Key.Key == input.KeyRune && ev.Key.Char == 'q':
		return app.PropagationStop
	case ev.Key.Key == input.KeyRune && ev.Key.Char == 'd':
		d.mode = "dashboard"
	case ev.Key.Key == input.KeyRune && ev.Key.Char == 'g':
		d.mode = "grid"
	case ev.Key.Key == input.KeyTab:
		focus.FocusNext()
	}
	return app.PropagationContinue
}

func (d *dashboard) HandleSignal(sig app.Signal, global app.Global, reg *app.Registry, focus *app.FocusManager) app.EventPropagation {
	return app.PropagationContinue
}

func (d *dashboard) Render(global app.Global, reg *app.Registry, focus *app.FocusManager) *buffer.RenderPipeline {
	p := buffer.NewPipeline()
	row := geometry.RowIndex(0)

	title := "Bezel Dashboard Demo"
	push(p, 0, row, title, style.TuiStyle{Attr: style.AttrBold})
	push(p, geometry.ColIndex(40), row, time.Now().Format("15:04:05"), style.TuiStyle{})
	row++

	push(p, 0, row, fmt.Sprintf("mode: %-10s focus: %s", d.mode, focus.Current()), style.TuiStyle{Attr: style.AttrDim})
	row += 2

	if d.mode == "grid" {
		for i, load := range d.cpuLoad {
			bar := barString(load)
			push(p, 0, row+geometry.RowIndex(i), fmt.Sprintf("core %d [%-20s] %3d%%", i, bar, load), style.TuiStyle{FG: style.Ansi256(39)})
		}
	} else {
		push(p, 0, row, "CPU Cores", style.TuiStyle{Attr: style.AttrBold, FG: style.Ansi256(51)})
		for i, load := range d.cpuLoad {
			push(p, 0, row+geometry.RowIndex(i+1), fmt.Sprintf("  core %d: %3d%%", i, load), style.TuiStyle{})
		}
	}

	footerRow := row + geometry.RowIndex(len(d.cpuLoad)+2)
	push(p, 0, footerRow, fmt.Sprintf("tick %-6d  d=dashboard g=grid tab=focus q=quit", d.tick), style.TuiStyle{Attr: style.AttrDim})
	return p
}

func push(p *buffer.RenderPipeline, col geometry.ColIndex, row geometry.RowIndex, text string, sty style.TuiStyle) {
	p.Push(buffer.Normal, buffer.MoveCursorPositionAbs(geometry.Pos{Col: col, Row: row}))
	p.Push(buffer.Normal, buffer.PaintTextWithAttributes(text, sty))
}

func barString(load int) string {
	filled := load * 20 / 100
	b := make([]byte, 20)
	for i := range b {
		if i < filled {
			b[i] = '#'
		} else {
			b[i] = '-'
		}
	}
	return string(b)
}

func main() {
	d := newDashboard()

	redraw := make(chan struct{}, 1)
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				d.tick++
				for i := range d.cpuLoad {
					d.cpuLoad[i] = (d.cpuLoad[i] + (d.tick*(i+1))%7 - 3 + 100) % 100
				}
				select {
				case redraw <- struct{}{}:
				default:
				}
			case <-stop:
				return
			}
		}
	}()
	defer close(stop)

	if err := app.Run(d, nil, app.PaintAltScreen, redraw); err != nil {
		log.Fatal(err)
	}
}
