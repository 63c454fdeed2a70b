package playback

import (
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/inkwell-tui/inkwell/pkg/linearize"
	"github.com/inkwell-tui/inkwell/pkg/logger"
)

// session replays one linearized sequence onto one render target. All state
// mutation happens on the target's serial queue; the only cross-goroutine
// signal is the cancelled flag, which takes effect at the next scheduling
// boundary.
type session struct {
	id     string
	engine *Engine
	opts   Options
	seq    linearize.Sequence
	target Target

	state     State
	lifecycle *lifecycleManager
	interact  *interactionController
	rng       *rand.Rand
	log       *logger.Logger

	cancelled atomic.Bool
}

func newSession(engine *Engine, seq linearize.Sequence, target Target) *session {
	s := &session{
		id:        uuid.NewString(),
		engine:    engine,
		opts:      engine.opts,
		seq:       seq,
		target:    target,
		lifecycle: newLifecycleManager(engine.opts.Resources),
		rng:       rand.New(rand.NewSource(engine.nextSeed())),
		log:       logger.WithComponent("scheduler"),
	}
	s.state = State{Status: StatusIdle, Speed: 1}
	s.interact = newInteractionController(s)
	return s
}

// cancel flags the session and posts finalization. Safe from any goroutine,
// idempotent, and effective even before the first step has run.
func (s *session) cancel() {
	if s.cancelled.Swap(true) {
		return
	}
	s.target.Post(func() {
		s.finalize(StatusCancelled)
	})
}

// begin starts playback: queue thread only
func (s *session) begin() {
	if s.cancelled.Load() {
		s.finalize(StatusCancelled)
		return
	}

	s.state.Status = StatusRunning
	s.state.stack = append(s.state.stack[:0], s.target.Root())

	s.lifecycle.trackListener(s.target.OnActivate(func() {
		s.interact.activate()
	}))
	s.lifecycle.placeCursor(s.target.Root())

	s.log.Debug("session started",
		"session", s.id, "events", len(s.seq))

	// First step runs immediately; only subsequent steps are timer-chained.
	s.step()
}

// step applies one event (or drains all of them under instant mode) and
// arms the timer for the next step. Queue thread only.
func (s *session) step() {
	if s.state.Status != StatusRunning {
		return
	}
	if s.cancelled.Load() {
		s.finalize(StatusCancelled)
		return
	}
	if !s.target.Attached() {
		s.log.Debug("target detached mid-playback", "session", s.id, "index", s.state.Index)
		s.finalize(StatusCancelled)
		return
	}
	if s.state.Index >= len(s.seq) {
		s.finalize(StatusCompleted)
		return
	}

	if s.state.Instant {
		for s.state.Index < len(s.seq) {
			s.apply(s.seq[s.state.Index])
			s.state.Index++
		}
		s.target.Invalidate()
		s.finalize(StatusCompleted)
		return
	}

	ev := s.seq[s.state.Index]
	s.apply(ev)
	s.state.Index++
	s.target.Invalidate()

	if s.state.Index >= len(s.seq) {
		s.finalize(StatusCompleted)
		return
	}

	delay := delayFor(ev, s.opts.BaseDelay, s.rng) / time.Duration(s.state.Speed)
	s.lifecycle.scheduleStep(delay, func() {
		s.target.Post(s.step)
	})
}

// apply mutates the render tree for one event. The mutation is atomic with
// respect to other steps; suspension only happens between steps.
func (s *session) apply(ev linearize.Event) {
	s.lifecycle.liftCursor()
	top := s.state.top()

	switch ev.Kind {
	case linearize.TextRun:
		top.AppendText(ev.Text)

	case linearize.ElementStart:
		shell := ev.Shell.Shell()
		top.AppendChild(shell)
		s.state.push(shell)

	case linearize.ElementEnd:
		if !s.state.pop() {
			// A well-formed sequence never underflows; tolerate rather than
			// corrupt the root scope.
			s.log.Warn("unmatched element end", "session", s.id, "index", s.state.Index)
		}

	case linearize.AtomicBlock:
		// Events stay immutable: the target gets its own copy of the
		// snapshot, never the event's.
		top.AppendChild(ev.Snapshot.Snapshot())
	}

	s.lifecycle.placeCursor(s.state.top())
}

// finalize moves the session to a terminal state and releases everything it
// owns. Idempotent; every path into Completed or Cancelled funnels here.
func (s *session) finalize(reason Status) {
	if s.state.Status.Terminal() {
		return
	}
	s.state.Status = reason
	s.log.Debug("session finalized",
		"session", s.id, "reason", reason, "applied", s.state.Index, "total", len(s.seq))

	s.lifecycle.finalize(reason)
	s.engine.drop(s.target, s)
	s.state.stack = nil
	s.target.Invalidate()

	if s.opts.OnSessionEnd != nil {
		s.safeNotify(reason)
	}
}

func (s *session) safeNotify(reason Status) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("session end hook panicked", "session", s.id, "error", r)
		}
	}()
	s.opts.OnSessionEnd(s.target, reason)
}
