package tui

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/inkwell-tui/inkwell/pkg/resources"
	"github.com/inkwell-tui/inkwell/pkg/tui/theme"
)

// indicator is the transient speed label on a message view. It has three
// states: hidden, visible, and fading. All fields are owned by the surface
// queue goroutine; timers only post transitions onto the queue.
type indicator struct {
	surface  *Surface
	registry *resources.Registry
	styles   *theme.Styles

	label   string
	visible bool
	faded   bool
	seq     int

	timer  *time.Timer
	handle *resources.Handle
}

// show replaces any current label and restarts the visible/fade cycle
func (in *indicator) show(label string, visibleFor, fadeFor time.Duration) {
	in.clearTimer()
	in.seq++
	seq := in.seq

	in.label = label
	in.visible = true
	in.faded = false

	in.armTimer("indicator-visible", visibleFor, func() {
		if in.seq != seq || !in.visible {
			return
		}
		in.faded = true
		in.surface.Invalidate()

		in.armTimer("indicator-fade", fadeFor, func() {
			if in.seq != seq {
				return
			}
			in.clearTimer()
			in.visible = false
			in.surface.Invalidate()
		})
	})
	in.surface.Invalidate()
}

// armTimer schedules a posted transition and tracks it in the registry
func (in *indicator) armTimer(label string, d time.Duration, fn func()) {
	in.clearTimer()
	t := time.AfterFunc(d, func() {
		in.surface.Post(fn)
	})
	in.timer = t
	if in.registry != nil {
		in.handle = in.registry.Register(resources.KindTimer, label, func() { t.Stop() })
	}
}

func (in *indicator) clearTimer() {
	if in.timer != nil {
		in.timer.Stop()
		in.timer = nil
	}
	if in.handle != nil {
		in.handle.Release()
		in.handle = nil
	}
}

// state returns the label to draw, if any
func (in *indicator) state() (string, tcell.Style, bool) {
	if !in.visible {
		return "", tcell.StyleDefault, false
	}
	if in.styles == nil {
		in.styles = theme.DefaultStyles()
	}
	if in.faded {
		return in.label, in.styles.IndicatorFaded, true
	}
	return in.label, in.styles.Indicator, true
}
