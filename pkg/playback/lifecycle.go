package playback

import (
	"time"

	"github.com/inkwell-tui/inkwell/pkg/logger"
	"github.com/inkwell-tui/inkwell/pkg/markup"
	"github.com/inkwell-tui/inkwell/pkg/resources"
)

// lifecycleManager owns every resource one playback session creates: the
// pending step timer, the pending debounce timer, the pointer listener, and
// the cursor marker node. finalize releases all of them on any exit path and
// is idempotent; releasing one resource can fail without stopping the rest.
type lifecycleManager struct {
	log       *logger.Logger
	resources *resources.Registry // optional

	stepTimer      *time.Timer
	stepHandle     *resources.Handle
	debounceTimer  *time.Timer
	debounceHandle *resources.Handle

	removeListener func()
	listenerHandle *resources.Handle

	cursor *markup.Node

	finalized bool
}

func newLifecycleManager(reg *resources.Registry) *lifecycleManager {
	return &lifecycleManager{
		log:       logger.WithComponent("lifecycle"),
		resources: reg,
		cursor:    markup.NewElement(markup.TagCursor),
	}
}

// scheduleStep arms the step timer. Any previously pending step timer is
// cleared first; a session has at most one.
func (lm *lifecycleManager) scheduleStep(d time.Duration, fire func()) {
	if lm.finalized {
		return
	}
	lm.clearStepTimer()
	lm.stepTimer = time.AfterFunc(d, fire)
	if lm.resources != nil {
		timer := lm.stepTimer
		lm.stepHandle = lm.resources.Register(resources.KindTimer, "playback step", func() {
			timer.Stop()
		})
	}
}

// scheduleDebounce arms the activation debounce timer
func (lm *lifecycleManager) scheduleDebounce(d time.Duration, fire func()) {
	if lm.finalized {
		return
	}
	lm.clearDebounceTimer()
	lm.debounceTimer = time.AfterFunc(d, fire)
	if lm.resources != nil {
		timer := lm.debounceTimer
		lm.debounceHandle = lm.resources.Register(resources.KindTimer, "activation debounce", func() {
			timer.Stop()
		})
	}
}

// trackListener records the pointer listener's remover
func (lm *lifecycleManager) trackListener(remove func()) {
	lm.removeListener = remove
	if lm.resources != nil {
		lm.listenerHandle = lm.resources.Register(resources.KindListener, "pointer activation", remove)
	}
}

// placeCursor moves the cursor marker to the end of the given scope
func (lm *lifecycleManager) placeCursor(scope *markup.Node) {
	if lm.finalized || lm.cursor == nil {
		return
	}
	scope.AppendChild(lm.cursor)
}

// liftCursor detaches the cursor marker so a mutation can land where it sat
func (lm *lifecycleManager) liftCursor() {
	if lm.cursor != nil {
		lm.cursor.Detach()
	}
}

func (lm *lifecycleManager) clearStepTimer() {
	if lm.stepTimer != nil {
		lm.stepTimer.Stop()
		lm.stepTimer = nil
	}
	if lm.stepHandle != nil {
		lm.stepHandle.Release()
		lm.stepHandle = nil
	}
}

func (lm *lifecycleManager) clearDebounceTimer() {
	if lm.debounceTimer != nil {
		lm.debounceTimer.Stop()
		lm.debounceTimer = nil
	}
	if lm.debounceHandle != nil {
		lm.debounceHandle.Release()
		lm.debounceHandle = nil
	}
}

func (lm *lifecycleManager) detachListener() {
	if lm.listenerHandle != nil {
		lm.listenerHandle.Release()
		lm.listenerHandle = nil
		lm.removeListener = nil
		return
	}
	if lm.removeListener != nil {
		lm.removeListener()
		lm.removeListener = nil
	}
}

func (lm *lifecycleManager) removeCursor() {
	if lm.cursor != nil {
		lm.cursor.Detach()
		lm.cursor = nil
	}
}

// finalize releases every tracked resource exactly once. Safe to call
// repeatedly; later calls do nothing.
func (lm *lifecycleManager) finalize(reason Status) {
	if lm.finalized {
		return
	}
	lm.finalized = true
	lm.log.Debug("session resources released", "reason", reason)

	lm.safeRelease("step timer", lm.clearStepTimer)
	lm.safeRelease("debounce timer", lm.clearDebounceTimer)
	lm.safeRelease("pointer listener", lm.detachListener)
	lm.safeRelease("cursor marker", lm.removeCursor)
}

// safeRelease isolates a failing release so the remaining resources are
// still freed
func (lm *lifecycleManager) safeRelease(name string, release func()) {
	defer func() {
		if r := recover(); r != nil {
			lm.log.Error("cleanup failed", "resource", name, "error", r)
		}
	}()
	release()
}
