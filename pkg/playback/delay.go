package playback

import (
	"math/rand"
	"time"

	"github.com/inkwell-tui/inkwell/pkg/linearize"
)

// delayFor computes the pre-speed delay that follows an applied event. Rules
// are checked in order; the first match wins. The final rule jitters the
// base delay by up to a fifth either way, floored at a fifth of base, so
// plain word reveals read as typing rather than a metronome.
func delayFor(ev linearize.Event, base time.Duration, rng *rand.Rand) time.Duration {
	switch {
	case ev.Priority == linearize.PriorityHigh:
		return 2 * base
	case ev.Whitespace:
		return 3 * base / 10
	case ev.CodeBlock || ev.Table:
		return 3 * base
	case ev.InlineFormatting || ev.InlineCode:
		return base / 2
	case ev.Kind == linearize.ElementStart || ev.Kind == linearize.ElementEnd:
		return base / 5
	default:
		jitter := base / 5
		d := base
		if jitter > 0 {
			d += time.Duration(rng.Int63n(int64(2*jitter) + 1))
			d -= jitter
		}
		if floor := base / 5; d < floor {
			d = floor
		}
		return d
	}
}
