package tui

import (
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/inkwell-tui/inkwell/pkg/logger"
	"github.com/inkwell-tui/inkwell/pkg/playback"
	"github.com/inkwell-tui/inkwell/pkg/resources"
	"github.com/inkwell-tui/inkwell/pkg/tui/theme"
)

// SurfaceOptions configures the host surface
type SurfaceOptions struct {
	Mouse       bool
	CursorGlyph string
	Resources   *resources.Registry
}

// Surface owns the terminal screen and the serial work queue every view and
// playback session runs on. All tree mutation, rendering, and listener
// dispatch happens on the queue goroutine; the event loop and timers only
// post work onto it.
type Surface struct {
	screen tcell.Screen
	engine *playback.Engine
	opts   SurfaceOptions
	log    *logger.Logger

	mu    sync.Mutex
	queue []func()
	views []*MessageView

	wake     chan struct{}
	quit     chan struct{}
	quitting atomic.Bool

	width  int
	height int
}

// NewSurface wraps a screen. The screen must not be initialized yet; Run
// does that, and only then does the work queue start draining — anything
// posted earlier (views, playback starts) waits for the screen to be up.
func NewSurface(screen tcell.Screen, engine *playback.Engine, opts SurfaceOptions) *Surface {
	if opts.CursorGlyph == "" {
		opts.CursorGlyph = "▌"
	}
	return &Surface{
		screen: screen,
		engine: engine,
		opts:   opts,
		log:    logger.WithComponent("surface"),
		wake:   make(chan struct{}, 1),
		quit:   make(chan struct{}),
	}
}

// Post enqueues work for the queue goroutine. Safe from any goroutine.
func (s *Surface) Post(fn func()) {
	s.mu.Lock()
	s.queue = append(s.queue, fn)
	s.mu.Unlock()
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Surface) workLoop() {
	for {
		fn := s.nextWork()
		if fn == nil {
			return
		}
		fn()
	}
}

func (s *Surface) nextWork() func() {
	for {
		s.mu.Lock()
		if len(s.queue) > 0 {
			fn := s.queue[0]
			s.queue = s.queue[1:]
			s.mu.Unlock()
			return fn
		}
		s.mu.Unlock()

		select {
		case <-s.wake:
		case <-s.quit:
			return nil
		}
	}
}

// NewMessageView appends an empty view to the surface and returns it. The
// view is a playback target: hand it to Engine.Start together with a tree.
func (s *Surface) NewMessageView() *MessageView {
	v := newMessageView(s)
	s.mu.Lock()
	s.views = append(s.views, v)
	s.mu.Unlock()
	s.Invalidate()
	return v
}

// RemoveView detaches a view from the surface. Any playback still running
// against it notices on its next step and cancels itself.
func (s *Surface) RemoveView(v *MessageView) {
	s.mu.Lock()
	for i, cur := range s.views {
		if cur == v {
			s.views = append(s.views[:i], s.views[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	v.attached.Store(false)
	s.Invalidate()
}

// Invalidate schedules a redraw on the queue
func (s *Surface) Invalidate() {
	s.Post(s.render)
}

// Run initializes the screen and blocks on the terminal event loop until a
// quit key or Stop. Playback against this surface's views ends with it.
func (s *Surface) Run() error {
	if err := s.screen.Init(); err != nil {
		return err
	}
	defer s.screen.Fini()

	if s.opts.Mouse {
		s.screen.EnableMouse()
	}
	s.screen.EnableFocus()

	// The queue must never touch the screen before Init, so it starts here
	go s.workLoop()

	// Size state is owned by the queue goroutine
	w, h := s.screen.Size()
	s.Post(func() { s.resize(w, h) })
	s.log.Info("surface running", "width", w, "height", h, "mouse", s.opts.Mouse)

	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			break
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			if s.isQuitKey(ev) {
				s.quitting.Store(true)
			}

		case *tcell.EventResize:
			w, h := ev.Size()
			s.Post(func() { s.resize(w, h) })

		case *tcell.EventMouse:
			if ev.Buttons()&tcell.Button1 != 0 {
				_, y := ev.Position()
				s.routeClick(y)
			}

		case *tcell.EventFocus:
			// Losing the terminal means losing the reader: stop streaming
			// rather than keep revealing into a hidden screen
			if !ev.Focused {
				s.log.Info("surface hidden, cancelling playback")
				s.engine.CancelAll()
			}

		case *tcell.EventInterrupt:
			// posted by Stop
		}

		if s.quitting.Load() {
			break
		}
	}

	s.engine.CancelAll()
	close(s.quit)
	return nil
}

// Stop ends the event loop from another goroutine
func (s *Surface) Stop() {
	s.quitting.Store(true)
	_ = s.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

func (s *Surface) isQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}

func (s *Surface) resize(w, h int) {
	s.width, s.height = w, h
	s.mu.Lock()
	views := append([]*MessageView(nil), s.views...)
	s.mu.Unlock()
	for _, v := range views {
		v.renderer.SetWidth(w)
	}
	s.render()
}

// routeClick posts the activation listeners of the view under the pointer
func (s *Surface) routeClick(y int) {
	s.mu.Lock()
	var hit *MessageView
	for _, v := range s.views {
		if v.contains(y) {
			hit = v
			break
		}
	}
	s.mu.Unlock()
	if hit != nil {
		hit.postActivation()
	}
}

// render redraws every view, newest content pinned to the bottom of the
// screen. Runs on the queue goroutine only.
func (s *Surface) render() {
	if s.width == 0 {
		s.width, s.height = s.screen.Size()
	}

	s.mu.Lock()
	views := append([]*MessageView(nil), s.views...)
	s.mu.Unlock()

	type block struct {
		view  *MessageView
		lines []Line
	}
	blocks := make([]block, 0, len(views))
	total := 0
	for _, v := range views {
		lines := v.renderLines()
		blocks = append(blocks, block{view: v, lines: lines})
		total += len(lines) + 1
	}

	offset := 0
	if total > s.height {
		offset = total - s.height
	}

	s.screen.Clear()
	y := -offset
	for _, b := range blocks {
		top := y
		for _, line := range b.lines {
			if y >= 0 && y < s.height {
				s.drawLine(y, line)
			}
			y++
		}
		b.view.setBounds(top, y)
		y++ // gap between views

		if label, style, ok := b.view.indicatorState(); ok {
			s.drawIndicator(top, label, style)
		}
	}
	s.screen.Show()
}

func (s *Surface) drawLine(y int, line Line) {
	x := 0
	for _, span := range line.Spans {
		for _, r := range span.Text {
			if x >= s.width {
				return
			}
			s.screen.SetContent(x, y, r, nil, span.Style)
			x++
		}
	}
}

// drawIndicator paints the transient speed label in the view's top-right
// corner
func (s *Surface) drawIndicator(top int, label string, style tcell.Style) {
	text := theme.IndicatorFrame.Render(label)
	y := top
	if y < 0 {
		y = 0
	}
	if y >= s.height {
		return
	}
	x := s.width - len([]rune(text))
	if x < 0 {
		x = 0
	}
	for _, r := range text {
		if x >= s.width {
			break
		}
		s.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
