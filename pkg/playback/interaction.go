package playback

import "github.com/inkwell-tui/inkwell/pkg/logger"

// interactionController turns pointer activations on the render target into
// speed changes. Activations are grouped into debounce-window bursts: the
// first one doubles the speed multiplier, a second inside the same window
// switches to instant mode. Runs entirely on the target's serial queue.
type interactionController struct {
	session   *session
	lifecycle *lifecycleManager
	log       *logger.Logger

	windowOpen bool
}

func newInteractionController(s *session) *interactionController {
	return &interactionController{
		session:   s,
		lifecycle: s.lifecycle,
		log:       logger.WithComponent("interaction"),
	}
}

// activate handles one pointer activation
func (ic *interactionController) activate() {
	s := ic.session
	if s.state.Status != StatusRunning {
		return
	}

	if ic.windowOpen {
		if !s.state.Instant {
			s.state.Instant = true
			ic.log.Debug("instant mode", "session", s.id)
			ic.showIndicator("Instant")
		}
		return
	}

	ic.windowOpen = true
	ic.lifecycle.scheduleDebounce(s.opts.DebounceWindow, func() {
		s.target.Post(ic.closeWindow)
	})

	speed := s.state.Speed * 2
	if speed > s.opts.SpeedCap {
		speed = s.opts.SpeedCap
	}
	s.state.Speed = speed
	ic.log.Debug("speed increased", "session", s.id, "speed", speed)
	ic.showIndicator("Faster")
}

func (ic *interactionController) closeWindow() {
	ic.windowOpen = false
}

// showIndicator flashes the transient speed label on surfaces that support it
func (ic *interactionController) showIndicator(label string) {
	if it, ok := ic.session.target.(IndicatorTarget); ok {
		it.ShowIndicator(label, ic.session.opts.IndicatorVisible, ic.session.opts.IndicatorFade)
	}
}
