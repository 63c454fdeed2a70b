package resources

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReleaseIsIdempotent(t *testing.T) {
	r := NewRegistry()
	released := 0
	h := r.Register(KindTimer, "step", func() { released++ })

	assert.Equal(t, 1, r.Count())

	h.Release()
	h.Release()
	h.Release()

	assert.Equal(t, 1, released)
	assert.Equal(t, 0, r.Count())
}

func TestReleaseAll(t *testing.T) {
	r := NewRegistry()
	released := 0
	for i := 0; i < 5; i++ {
		r.Register(KindListener, "pointer", func() { released++ })
	}

	r.ReleaseAll()
	assert.Equal(t, 5, released)
	assert.Equal(t, 0, r.Count())

	// Safe to call again on an empty registry
	r.ReleaseAll()
	assert.Equal(t, 5, released)
}

func TestReleasePanicIsIsolated(t *testing.T) {
	r := NewRegistry()
	released := 0
	r.Register(KindTimer, "bad", func() { panic("boom") })
	r.Register(KindTimer, "good", func() { released++ })

	assert.NotPanics(t, func() { r.ReleaseAll() })
	assert.Equal(t, 1, released)
	assert.Equal(t, 0, r.Count())
}

func TestCountByKind(t *testing.T) {
	r := NewRegistry()
	r.Register(KindTimer, "a", nil)
	r.Register(KindTimer, "b", nil)
	r.Register(KindListener, "c", nil)

	assert.Equal(t, 2, r.CountByKind(KindTimer))
	assert.Equal(t, 1, r.CountByKind(KindListener))
}

func TestHealthCheckFindsStaleHandles(t *testing.T) {
	r := NewRegistry()
	h := r.Register(KindTimer, "old", nil)
	h.Created = time.Now().Add(-time.Minute)
	r.Register(KindTimer, "fresh", nil)

	assert.Equal(t, 1, r.HealthCheck(10*time.Second))
	assert.Equal(t, 0, r.HealthCheck(2*time.Minute))
}
