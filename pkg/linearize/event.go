package linearize

import "github.com/inkwell-tui/inkwell/pkg/markup"

// Kind identifies what a structural event does to the render target
type Kind int

const (
	// TextRun appends a run of text to the open scope
	TextRun Kind = iota
	// ElementStart appends a fresh element shell and opens it as a scope
	ElementStart
	// ElementEnd closes the current scope
	ElementEnd
	// AtomicBlock appends a pre-built subtree snapshot in one step
	AtomicBlock
)

// String returns the kind name for logs and test failures
func (k Kind) String() string {
	switch k {
	case TextRun:
		return "text"
	case ElementStart:
		return "start"
	case ElementEnd:
		return "end"
	case AtomicBlock:
		return "atomic"
	default:
		return "unknown"
	}
}

// Priority hints how prominently an event should be revealed
type Priority int

const (
	PriorityNormal Priority = iota
	PriorityHigh
)

// Event is one linearization unit. Events are immutable once produced; the
// scheduler only reads them.
type Event struct {
	Kind Kind

	// Text is the run content for TextRun events
	Text string
	// Shell is the shallow element clone for ElementStart events
	Shell *markup.Node
	// Snapshot is the deep subtree clone for AtomicBlock events
	Snapshot *markup.Node

	Block            bool
	Whitespace       bool
	CodeBlock        bool
	Table            bool
	InlineFormatting bool
	InlineCode       bool
	Priority         Priority
}

// Sequence is the ordered, finite event list produced once per source tree.
// A new tree replaces the sequence wholesale; sequences are never regenerated
// mid-playback.
type Sequence []Event
