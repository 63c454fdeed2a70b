package playback

import (
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/inkwell-tui/inkwell/pkg/markup"
	"github.com/inkwell-tui/inkwell/pkg/resources"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Streaming integration", func() {
	var (
		engine *Engine
		target *fakeTarget
		reg    *resources.Registry
		done   atomic.Bool
		status atomic.Int32
	)

	BeforeEach(func() {
		target = newFakeTarget()
		reg = resources.NewRegistry()
		done.Store(false)
		status.Store(int32(StatusIdle))

		engine = NewEngine(Options{
			BaseDelay:      time.Millisecond,
			DebounceWindow: 10 * time.Millisecond,
			Resources:      reg,
			Rand:           rand.New(rand.NewSource(99)),
			OnSessionEnd: func(_ Target, st Status) {
				status.Store(int32(st))
				done.Store(true)
			},
		})
	})

	pump := func() bool {
		target.drain()
		return done.Load()
	}

	Describe("full document playback", func() {
		It("should stream an entire tree and release every resource", func() {
			tree := richTree()
			engine.Start(tree, target)

			Eventually(pump, "5s", "1ms").Should(BeTrue())
			Expect(Status(status.Load())).To(Equal(StatusCompleted))

			Expect(target.root.Children).To(HaveLen(1))
			Expect(markup.Equal(tree, target.root.Children[0])).To(BeTrue())

			Expect(reg.Count()).To(BeZero(), "no timer or listener may outlive the session")
			Expect(target.listenerCount()).To(BeZero())
			Expect(engine.ActiveSessions()).To(BeZero())
		})

		It("should leave no cursor marker in the finished tree", func() {
			engine.Start(richTree(), target)
			Eventually(pump, "5s", "1ms").Should(BeTrue())

			found := false
			target.root.Walk(func(n *markup.Node) bool {
				if n.Tag == markup.TagCursor {
					found = true
					return false
				}
				return true
			})
			Expect(found).To(BeFalse())
		})
	})

	Describe("speed changes mid-playback", func() {
		It("should finish faster after an activation without reordering", func() {
			words := sequenceOfWords(120)
			s := newSession(engine, words, target)
			target.Post(func() {
				engine.adopt(target, s)
				s.begin()
			})
			target.drain()

			target.click()
			target.drain()

			Eventually(pump, "10s", "1ms").Should(BeTrue())
			Expect(Status(status.Load())).To(Equal(StatusCompleted))
			Expect(target.root.Children[0].TextContent()).To(Equal(wordText(120)))
		})
	})

	Describe("visibility-driven teardown", func() {
		It("should cancel all sessions and free their resources", func() {
			other := newFakeTarget()
			engine.Start(richTree(), target)
			engine.Start(richTree(), other)
			target.drain()
			other.drain()

			engine.CancelAll()
			Eventually(func() bool {
				target.drain()
				other.drain()
				return engine.ActiveSessions() == 0
			}, "5s", "1ms").Should(BeTrue())

			Expect(reg.Count()).To(BeZero())
			Expect(target.listenerCount()).To(BeZero())
			Expect(other.listenerCount()).To(BeZero())
		})
	})
})
