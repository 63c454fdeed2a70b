// Package playback replays a linearized markup sequence onto a live render
// target over time. Playback is cooperative and single-threaded per target:
// each step is a deferred callback posted onto the target's serial queue,
// speed changes only scale inter-step delays, and every timer and listener a
// session creates is released deterministically however the session ends.
package playback

import (
	"sync"

	"github.com/inkwell-tui/inkwell/pkg/linearize"
	"github.com/inkwell-tui/inkwell/pkg/logger"
	"github.com/inkwell-tui/inkwell/pkg/markup"
)

// Engine starts and tracks playback sessions. The session registry maps each
// render target to its one active session; targets never carry session
// back-references themselves.
type Engine struct {
	opts Options
	log  *logger.Logger

	mu       sync.Mutex
	sessions map[Target]*session
}

// NewEngine creates an Engine with the given options
func NewEngine(opts Options) *Engine {
	return &Engine{
		opts:     opts.withDefaults(),
		log:      logger.WithComponent("playback"),
		sessions: make(map[Target]*session),
	}
}

// Start linearizes the tree and begins streaming it onto the target. Any
// session already running on the same target is cancelled synchronously
// before the new one takes over. The returned handle cancels this session;
// calling it more than once is harmless.
func (e *Engine) Start(tree *markup.Node, target Target) CancelFunc {
	seq := linearize.Linearize(tree)
	s := newSession(e, seq, target)
	e.log.Debug("session queued", "session", s.id, "events", len(seq))

	target.Post(func() {
		e.adopt(target, s)
		s.begin()
	})

	return s.cancel
}

// adopt installs the session as the target's active one, finalizing any
// predecessor first. Runs on the target's queue, so the predecessor's
// cleanup completes before the new session touches the tree.
func (e *Engine) adopt(target Target, s *session) {
	e.mu.Lock()
	prior := e.sessions[target]
	e.sessions[target] = s
	e.mu.Unlock()

	if prior != nil {
		e.log.Debug("replacing active session", "old", prior.id, "new", s.id)
		prior.finalize(StatusCancelled)
	}
}

// nextSeed derives a seed for one session's jitter source from the engine's
// configured Rand. Guarded because Start may be called from any goroutine.
func (e *Engine) nextSeed() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opts.Rand.Int63()
}

// drop clears the registry entry if it still points at the session
func (e *Engine) drop(target Target, s *session) {
	e.mu.Lock()
	if e.sessions[target] == s {
		delete(e.sessions, target)
	}
	e.mu.Unlock()
}

// CancelAll cancels every active session. The host calls this on surface
// visibility changes; there is no resume, only restart or freeze-in-place.
func (e *Engine) CancelAll() {
	e.mu.Lock()
	active := make([]*session, 0, len(e.sessions))
	for _, s := range e.sessions {
		active = append(active, s)
	}
	e.mu.Unlock()

	e.log.Info("cancelling all sessions", "count", len(active))
	for _, s := range active {
		s.cancel()
	}
}

// ActiveSessions returns the number of registered sessions
func (e *Engine) ActiveSessions() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.sessions)
}
