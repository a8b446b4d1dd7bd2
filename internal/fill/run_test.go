package fill

import (
	"context"
	"sync"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/san-kum/chromafill/internal/palette"
)

// gatedSink blocks inside the emission of step `at` until released, which
// lets a test act on the run while a step is in progress.
type gatedSink struct {
	mu      sync.Mutex
	at      int
	emitted []int
	reached chan struct{}
	release chan struct{}
}

func newGatedSink(at int) *gatedSink {
	return &gatedSink{at: at, reached: make(chan struct{}), release: make(chan struct{})}
}

func (s *gatedSink) SetCellColor(index int, _ palette.Color) {
	s.mu.Lock()
	s.emitted = append(s.emitted, index)
	n := len(s.emitted)
	s.mu.Unlock()

	if n == s.at {
		close(s.reached)
		<-s.release
	}
}

func (s *gatedSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.emitted)
}

func (s *gatedSink) indices() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.emitted...)
}

func mustEngine(cols int, cfg Config) *Engine {
	g, err := NewGrid(cols)
	gomega.Expect(err).To(gomega.Succeed())
	e, err := New(g, cfg)
	gomega.Expect(err).To(gomega.Succeed())
	return e
}

var _ = ginkgo.Describe("Run control", func() {
	var cfg Config

	ginkgo.BeforeEach(func() {
		cfg = Config{Start: 0, Coherence: 0.9, Opacity: 1, Seed: 21}
	})

	ginkgo.It("stops after the step in progress when canceled", func() {
		e := mustEngine(8, cfg)
		sink := newGatedSink(5)

		r, err := e.Start(context.Background(), sink)
		gomega.Expect(err).To(gomega.Succeed())

		<-sink.reached
		r.Cancel()
		close(sink.release)

		res, err := r.Wait()
		gomega.Expect(err).To(gomega.Succeed())
		gomega.Expect(res.Canceled).To(gomega.BeTrue())
		gomega.Expect(res.Assignments).To(gomega.HaveLen(5))
		gomega.Expect(res.Remaining).To(gomega.Equal(64 - 5))
		gomega.Expect(sink.count()).To(gomega.Equal(5))
		gomega.Expect(r.State()).To(gomega.Equal(Idle))
	})

	ginkgo.It("emits nothing while paused and resumes at the next queue item", func() {
		reference, err := mustEngine(6, cfg).Run(context.Background(), nil)
		gomega.Expect(err).To(gomega.Succeed())

		e := mustEngine(6, cfg)
		sink := newGatedSink(7)

		r, err := e.Start(context.Background(), sink)
		gomega.Expect(err).To(gomega.Succeed())

		<-sink.reached
		r.Pause()
		close(sink.release)

		gomega.Expect(r.State()).To(gomega.Equal(Paused))
		gomega.Consistently(sink.count, 80*time.Millisecond, 10*time.Millisecond).Should(gomega.Equal(7))

		r.Resume()
		res, err := r.Wait()
		gomega.Expect(err).To(gomega.Succeed())
		gomega.Expect(res.Covered()).To(gomega.BeTrue())
		gomega.Expect(sink.indices()).To(gomega.Equal(indices(reference.Assignments)))
		gomega.Expect(res.Assignments).To(gomega.Equal(reference.Assignments))
	})

	ginkgo.It("honours a cancel issued while paused", func() {
		e := mustEngine(6, cfg)
		sink := newGatedSink(3)

		r, err := e.Start(context.Background(), sink)
		gomega.Expect(err).To(gomega.Succeed())

		<-sink.reached
		r.Pause()
		close(sink.release)
		r.Cancel()

		gomega.Eventually(r.Done()).Should(gomega.BeClosed())
		res, _ := r.Wait()
		gomega.Expect(res.Canceled).To(gomega.BeTrue())
		gomega.Expect(res.Assignments).To(gomega.HaveLen(3))
	})

	ginkgo.It("toggles between running and paused", func() {
		e := mustEngine(10, Config{Start: 0, StepDelay: 20 * time.Millisecond, Opacity: 1})

		r, err := e.Start(context.Background(), nil)
		gomega.Expect(err).To(gomega.Succeed())
		defer r.Cancel()

		gomega.Expect(r.State()).To(gomega.Equal(Running))
		r.Toggle()
		gomega.Expect(r.State()).To(gomega.Equal(Paused))
		r.Toggle()
		gomega.Expect(r.State()).To(gomega.Equal(Running))
	})

	ginkgo.It("rejects a second start while a run is active", func() {
		e := mustEngine(10, Config{Start: 0, StepDelay: 10 * time.Millisecond, Opacity: 1})

		r, err := e.Start(context.Background(), nil)
		gomega.Expect(err).To(gomega.Succeed())
		gomega.Expect(e.Active()).To(gomega.BeIdenticalTo(r))

		_, err = e.Start(context.Background(), nil)
		gomega.Expect(err).To(gomega.MatchError(ErrAlreadyRunning))

		r.Cancel()
		_, err = r.Wait()
		gomega.Expect(err).To(gomega.Succeed())
		gomega.Expect(e.Active()).To(gomega.BeNil())

		again, err := e.Start(context.Background(), nil)
		gomega.Expect(err).To(gomega.Succeed())
		again.Cancel()
		_, _ = again.Wait()
	})

	ginkgo.It("ignores pause and resume after the run has finished", func() {
		e := mustEngine(2, cfg)

		r, err := e.Start(context.Background(), nil)
		gomega.Expect(err).To(gomega.Succeed())
		_, err = r.Wait()
		gomega.Expect(err).To(gomega.Succeed())

		r.Pause()
		gomega.Expect(r.State()).To(gomega.Equal(Idle))
		r.Resume()
		r.Cancel()
		gomega.Expect(r.State()).To(gomega.Equal(Idle))
	})
})
