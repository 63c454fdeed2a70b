package playback

import (
	"time"

	"github.com/inkwell-tui/inkwell/pkg/markup"
)

// Target is a live container that playback progressively populates. The
// surface that owns the target supplies a single-threaded work queue; every
// mutation the engine makes runs as a discrete step posted through it, so no
// locking is needed around the render tree.
type Target interface {
	// Root is the container node receiving streamed children
	Root() *markup.Node
	// Attached reports whether the target is still part of its surface.
	// Mutating a detached target is pointless; the engine cancels instead.
	Attached() bool
	// Post enqueues work onto the surface's serial queue
	Post(fn func())
	// Invalidate requests a redraw after a mutation
	Invalidate()
	// OnActivate registers a pointer-activation callback, invoked on the
	// serial queue, and returns its remover
	OnActivate(fn func()) (remove func())
}

// IndicatorTarget is an optional capability: surfaces that can flash a
// transient speed indicator ("Faster", "Instant") implement it.
type IndicatorTarget interface {
	ShowIndicator(label string, visible, fade time.Duration)
}

// CancelFunc cancels a playback session. Idempotent; safe from any
// goroutine. Partial render output is left as-is.
type CancelFunc func()
