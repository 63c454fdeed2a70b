package tui

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/inkwell-tui/inkwell/pkg/markup"
	"github.com/inkwell-tui/inkwell/pkg/playback"
)

// MessageView is one streamed message on the surface. It satisfies
// playback.Target, so the engine reveals a tree directly into it, and it
// reports clicks back as activation so a reader can speed playback up.
type MessageView struct {
	surface  *Surface
	root     *markup.Node
	renderer *Renderer

	attached atomic.Bool

	mu        sync.Mutex
	listeners map[int]func()
	nextID    int
	topY      int
	bottomY   int

	indicator indicator
}

var _ playback.Target = (*MessageView)(nil)
var _ playback.IndicatorTarget = (*MessageView)(nil)

func newMessageView(s *Surface) *MessageView {
	v := &MessageView{
		surface:   s,
		root:      markup.NewElement(markup.TagDiv),
		renderer:  NewRenderer(0, s.opts.CursorGlyph),
		listeners: make(map[int]func()),
	}
	v.attached.Store(true)
	v.indicator.surface = s
	v.indicator.registry = s.opts.Resources
	return v
}

// Root returns the live tree playback appends into
func (v *MessageView) Root() *markup.Node { return v.root }

// Attached reports whether the view is still on its surface
func (v *MessageView) Attached() bool { return v.attached.Load() }

// Post runs fn on the surface's serial queue
func (v *MessageView) Post(fn func()) { v.surface.Post(fn) }

// Invalidate schedules a redraw
func (v *MessageView) Invalidate() { v.surface.Invalidate() }

// OnActivate registers a click listener and returns its removal
func (v *MessageView) OnActivate(fn func()) (remove func()) {
	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.listeners[id] = fn
	v.mu.Unlock()
	return func() {
		v.mu.Lock()
		delete(v.listeners, id)
		v.mu.Unlock()
	}
}

// ShowIndicator flashes a label in the view's corner, visible then fading
func (v *MessageView) ShowIndicator(label string, visible, fade time.Duration) {
	v.indicator.show(label, visible, fade)
}

// postActivation queues every registered listener, in the surface's serial
// order with any in-flight playback steps
func (v *MessageView) postActivation() {
	v.mu.Lock()
	fns := make([]func(), 0, len(v.listeners))
	for _, fn := range v.listeners {
		fns = append(fns, fn)
	}
	v.mu.Unlock()
	for _, fn := range fns {
		v.surface.Post(fn)
	}
}

// renderLines renders the current tree. Queue goroutine only.
func (v *MessageView) renderLines() []Line {
	if v.surface.width > 0 {
		v.renderer.SetWidth(v.surface.width)
	} else if v.renderer.width <= 0 {
		v.renderer.SetWidth(80)
	}
	return v.renderer.Render(v.root)
}

func (v *MessageView) setBounds(top, bottom int) {
	v.mu.Lock()
	v.topY, v.bottomY = top, bottom
	v.mu.Unlock()
}

func (v *MessageView) contains(y int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return y >= v.topY && y < v.bottomY
}

func (v *MessageView) indicatorState() (string, tcell.Style, bool) {
	return v.indicator.state()
}
