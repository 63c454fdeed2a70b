package playback

import "github.com/inkwell-tui/inkwell/pkg/markup"

// Status is the playback state machine: Idle → Running → {Completed,
// Cancelled}. Both end states are terminal.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusCompleted
	StatusCancelled
)

// String returns the status name
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status is an end state
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// State is the mutable per-session playback state. It is only ever touched
// on the target's serial queue.
type State struct {
	Index   int
	Status  Status
	Speed   int  // inter-event delay divisor, doubling per activation, capped
	Instant bool // drain all remaining events without delay

	// stack holds the currently open scopes; stack[0] is the target root and
	// is never popped. Depth always equals unmatched ElementStart count + 1.
	stack []*markup.Node
}

// Depth returns the current nesting depth including the root scope
func (st *State) Depth() int {
	return len(st.stack)
}

func (st *State) top() *markup.Node {
	return st.stack[len(st.stack)-1]
}

func (st *State) push(scope *markup.Node) {
	st.stack = append(st.stack, scope)
}

// pop closes the current scope, refusing to drop below the root
func (st *State) pop() bool {
	if len(st.stack) <= 1 {
		return false
	}
	st.stack = st.stack[:len(st.stack)-1]
	return true
}
