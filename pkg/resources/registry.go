// Package resources provides app-wide bookkeeping for timers and listeners.
// Components register every deferred callback and input hook they create so
// the host can run periodic health checks and tear everything down in bulk
// when the surface goes away. The streaming engine registers its resources
// here but stays correct without a registry.
package resources

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/inkwell-tui/inkwell/pkg/logger"
)

// Kind classifies a tracked resource
type Kind int

const (
	KindTimer Kind = iota
	KindListener
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindTimer:
		return "timer"
	case KindListener:
		return "listener"
	default:
		return "unknown"
	}
}

// Handle is one tracked resource. Release is idempotent and panic-isolated:
// a failing release never prevents the rest of a bulk teardown.
type Handle struct {
	ID      string
	Kind    Kind
	Label   string
	Created time.Time

	registry *Registry
	release  func()
	once     sync.Once
}

// Release runs the resource's release function once and removes the handle
// from its registry
func (h *Handle) Release() {
	h.once.Do(func() {
		if h.registry != nil {
			h.registry.remove(h.ID)
		}
		if h.release == nil {
			return
		}
		defer func() {
			if r := recover(); r != nil {
				logger.WithComponent("resources").Error("resource release failed",
					"id", h.ID, "kind", h.Kind, "label", h.Label, "error", r)
			}
		}()
		h.release()
	})
}

// Registry tracks live resource handles
type Registry struct {
	mu      sync.Mutex
	handles map[string]*Handle
	log     *logger.Logger

	sweepDone chan struct{}
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		handles: make(map[string]*Handle),
		log:     logger.WithComponent("resources"),
	}
}

// Register tracks a new resource and returns its handle. The release
// function runs exactly once, on Handle.Release or ReleaseAll.
func (r *Registry) Register(kind Kind, label string, release func()) *Handle {
	h := &Handle{
		ID:       uuid.NewString(),
		Kind:     kind,
		Label:    label,
		Created:  time.Now(),
		registry: r,
		release:  release,
	}
	r.mu.Lock()
	r.handles[h.ID] = h
	r.mu.Unlock()
	r.log.Debug("resource registered", "id", h.ID, "kind", kind, "label", label)
	return h
}

func (r *Registry) remove(id string) {
	r.mu.Lock()
	delete(r.handles, id)
	r.mu.Unlock()
}

// Count returns the number of live handles
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handles)
}

// CountByKind returns the number of live handles of the given kind
func (r *Registry) CountByKind(kind Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, h := range r.handles {
		if h.Kind == kind {
			n++
		}
	}
	return n
}

// ReleaseAll tears down every tracked resource. Used on visibility change
// and shutdown.
func (r *Registry) ReleaseAll() {
	r.mu.Lock()
	handles := make([]*Handle, 0, len(r.handles))
	for _, h := range r.handles {
		handles = append(handles, h)
	}
	r.mu.Unlock()

	r.log.Info("bulk resource teardown", "count", len(handles))
	for _, h := range handles {
		h.Release()
	}
}

// HealthCheck logs handles that have outlived maxAge and returns how many
// were found. Streaming resources are short-lived; an old timer or listener
// is a leak.
func (r *Registry) HealthCheck(maxAge time.Duration) int {
	r.mu.Lock()
	var stale []*Handle
	for _, h := range r.handles {
		if time.Since(h.Created) > maxAge {
			stale = append(stale, h)
		}
	}
	total := len(r.handles)
	r.mu.Unlock()

	for _, h := range stale {
		r.log.Warn("long-lived resource",
			"id", h.ID, "kind", h.Kind, "label", h.Label, "age", time.Since(h.Created))
	}
	r.log.Debug("health check", "live", total, "stale", len(stale))
	return len(stale)
}

// StartSweeper runs HealthCheck on the given interval until StopSweeper
func (r *Registry) StartSweeper(interval, maxAge time.Duration) {
	r.mu.Lock()
	if r.sweepDone != nil {
		r.mu.Unlock()
		return
	}
	done := make(chan struct{})
	r.sweepDone = done
	r.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.HealthCheck(maxAge)
			case <-done:
				return
			}
		}
	}()
}

// StopSweeper stops the periodic health check
func (r *Registry) StopSweeper() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sweepDone != nil {
		close(r.sweepDone)
		r.sweepDone = nil
	}
}
