package playback

import (
	"math/rand"
	"testing"
	"time"

	"github.com/inkwell-tui/inkwell/pkg/linearize"
	"github.com/stretchr/testify/assert"
)

func TestDelayRules(t *testing.T) {
	base := 50 * time.Millisecond
	rng := rand.New(rand.NewSource(7))

	tests := []struct {
		name string
		ev   linearize.Event
		want time.Duration
	}{
		{
			// Scenario B: a heading's atomic block waits twice the base
			name: "high priority",
			ev:   linearize.Event{Kind: linearize.AtomicBlock, Priority: linearize.PriorityHigh, CodeBlock: true},
			want: 2 * base,
		},
		{
			name: "whitespace run",
			ev:   linearize.Event{Kind: linearize.TextRun, Whitespace: true},
			want: 15 * time.Millisecond,
		},
		{
			name: "code block without high priority",
			ev:   linearize.Event{Kind: linearize.AtomicBlock, CodeBlock: true},
			want: 3 * base,
		},
		{
			name: "table without high priority",
			ev:   linearize.Event{Kind: linearize.AtomicBlock, Table: true},
			want: 3 * base,
		},
		{
			name: "inline formatting",
			ev:   linearize.Event{Kind: linearize.ElementStart, InlineFormatting: true},
			want: base / 2,
		},
		{
			name: "inline code",
			ev:   linearize.Event{Kind: linearize.ElementEnd, InlineCode: true},
			want: base / 2,
		},
		{
			name: "plain element start",
			ev:   linearize.Event{Kind: linearize.ElementStart},
			want: base / 5,
		},
		{
			name: "plain element end",
			ev:   linearize.Event{Kind: linearize.ElementEnd},
			want: base / 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, delayFor(tt.ev, base, rng))
		})
	}
}

func TestDelayJitterStaysBounded(t *testing.T) {
	base := 50 * time.Millisecond
	rng := rand.New(rand.NewSource(42))
	ev := linearize.Event{Kind: linearize.TextRun, Text: "word"}

	low, high := base, base
	for i := 0; i < 1000; i++ {
		d := delayFor(ev, base, rng)
		assert.GreaterOrEqual(t, d, 40*time.Millisecond)
		assert.LessOrEqual(t, d, 60*time.Millisecond)
		if d < low {
			low = d
		}
		if d > high {
			high = d
		}
	}
	// The jitter should actually spread
	assert.NotEqual(t, low, high)
}

func TestDelayFloorsAtFifthOfBase(t *testing.T) {
	// With a tiny base the jitter cannot push the delay below base/5
	base := 5 * time.Millisecond
	rng := rand.New(rand.NewSource(3))
	ev := linearize.Event{Kind: linearize.TextRun, Text: "w"}
	for i := 0; i < 200; i++ {
		assert.GreaterOrEqual(t, delayFor(ev, base, rng), base/5)
	}
}
