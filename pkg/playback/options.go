package playback

import (
	"math/rand"
	"time"

	"github.com/inkwell-tui/inkwell/pkg/config"
	"github.com/inkwell-tui/inkwell/pkg/resources"
)

// Options tunes an Engine. The zero value is usable; unset fields take the
// defaults below.
type Options struct {
	// BaseDelay is the reference inter-event delay (the "base" every delay
	// rule scales)
	BaseDelay time.Duration
	// SpeedCap bounds the speed multiplier
	SpeedCap int
	// DebounceWindow groups pointer activations into one burst
	DebounceWindow time.Duration
	// IndicatorVisible and IndicatorFade size the transient speed indicator
	IndicatorVisible time.Duration
	IndicatorFade    time.Duration

	// Resources, when set, receives a handle for every timer and listener
	// the engine creates. The engine is correct without it.
	Resources *resources.Registry

	// Rand seeds each session's own jitter source; defaults to a time-seeded
	// one. Sessions never share a rand.Rand: targets on distinct surfaces
	// pump their queues on distinct goroutines.
	Rand *rand.Rand

	// OnSessionEnd, when set, is notified on the target's queue after a
	// session finalizes. Hosts use it to drop spinners and re-enable input.
	OnSessionEnd func(target Target, status Status)
}

const (
	defaultBaseDelay        = 50 * time.Millisecond
	defaultSpeedCap         = 8
	defaultDebounceWindow   = 300 * time.Millisecond
	defaultIndicatorVisible = 1500 * time.Millisecond
	defaultIndicatorFade    = 300 * time.Millisecond
)

func (o Options) withDefaults() Options {
	if o.BaseDelay <= 0 {
		o.BaseDelay = defaultBaseDelay
	}
	if o.SpeedCap <= 0 {
		o.SpeedCap = defaultSpeedCap
	}
	if o.DebounceWindow <= 0 {
		o.DebounceWindow = defaultDebounceWindow
	}
	if o.IndicatorVisible <= 0 {
		o.IndicatorVisible = defaultIndicatorVisible
	}
	if o.IndicatorFade <= 0 {
		o.IndicatorFade = defaultIndicatorFade
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return o
}

// OptionsFromConfig builds Options from the global configuration
func OptionsFromConfig(cfg config.PlaybackConfig, reg *resources.Registry) Options {
	return Options{
		BaseDelay:        time.Duration(cfg.BaseDelayMs) * time.Millisecond,
		SpeedCap:         cfg.SpeedCap,
		DebounceWindow:   time.Duration(cfg.DebounceMs) * time.Millisecond,
		IndicatorVisible: time.Duration(cfg.IndicatorVisibleMs) * time.Millisecond,
		IndicatorFade:    time.Duration(cfg.IndicatorFadeMs) * time.Millisecond,
		Resources:        reg,
	}
}
