package playback

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/inkwell-tui/inkwell/pkg/linearize"
	"github.com/inkwell-tui/inkwell/pkg/markup"
)

// wordText returns the text of a generated n-word paragraph
func wordText(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = "w" + strconv.Itoa(i)
	}
	return strings.Join(words, " ")
}

// sequenceOfWords linearizes a paragraph of n space-separated words
func sequenceOfWords(n int) linearize.Sequence {
	tree := markup.NewElement(markup.TagParagraph, markup.NewText(wordText(n)))
	return linearize.Linearize(tree)
}

// fakeTarget is an in-memory render target with a manually pumped queue.
// Tests drain the queue on their own goroutine, which stands in for the
// surface's serial work loop.
type fakeTarget struct {
	root     *markup.Node
	attached bool

	mu        sync.Mutex
	queue     []func()
	listeners map[int]func()
	nextID    int

	invalidations int
	indicators    []string
}

func newFakeTarget() *fakeTarget {
	return &fakeTarget{
		root:      markup.NewElement("body"),
		attached:  true,
		listeners: make(map[int]func()),
	}
}

func (t *fakeTarget) Root() *markup.Node { return t.root }

func (t *fakeTarget) Attached() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.attached
}

func (t *fakeTarget) detach() {
	t.mu.Lock()
	t.attached = false
	t.mu.Unlock()
}

func (t *fakeTarget) Post(fn func()) {
	t.mu.Lock()
	t.queue = append(t.queue, fn)
	t.mu.Unlock()
}

func (t *fakeTarget) Invalidate() {
	t.invalidations++
}

func (t *fakeTarget) OnActivate(fn func()) (remove func()) {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.listeners[id] = fn
	t.mu.Unlock()
	return func() {
		t.mu.Lock()
		delete(t.listeners, id)
		t.mu.Unlock()
	}
}

func (t *fakeTarget) ShowIndicator(label string, visible, fade time.Duration) {
	t.indicators = append(t.indicators, label)
}

// click posts an activation the way a surface routes pointer events
func (t *fakeTarget) click() {
	t.mu.Lock()
	fns := make([]func(), 0, len(t.listeners))
	for _, fn := range t.listeners {
		fns = append(fns, fn)
	}
	t.mu.Unlock()
	for _, fn := range fns {
		t.Post(fn)
	}
}

func (t *fakeTarget) listenerCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.listeners)
}

// drain runs queued work until the queue is momentarily empty
func (t *fakeTarget) drain() {
	for {
		t.mu.Lock()
		if len(t.queue) == 0 {
			t.mu.Unlock()
			return
		}
		fn := t.queue[0]
		t.queue = t.queue[1:]
		t.mu.Unlock()
		fn()
	}
}

// pumpUntil drains repeatedly until cond holds or the deadline passes.
// Timer callbacks post work from other goroutines, so the queue refills
// between drains.
func (t *fakeTarget) pumpUntil(timeout time.Duration, cond func() bool) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		t.drain()
		if cond() {
			return true
		}
		time.Sleep(200 * time.Microsecond)
	}
	t.drain()
	return cond()
}
