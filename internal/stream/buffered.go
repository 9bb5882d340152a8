// ABOUTME: Buffered reordering scheduler
// ABOUTME: Reorders producer frames by sequence number and emits at a fixed rate
package stream

import (
	"errors"
	"sync"
	"time"

	"github.com/framecast/framecast-go/internal/logging"
	"github.com/framecast/framecast-go/internal/metrics"
	"github.com/framecast/framecast-go/internal/sink"
	"github.com/framecast/framecast-go/pkg/video"
)

// Stats is a snapshot of scheduler activity
type Stats struct {
	Submitted int64 // frames accepted from producers
	Emitted   int64 // fresh frames written to the sink
	Repeated  int64 // ticks that re-sent the last frame
	Dropped   int64 // frames discarded because the queue was full
}

// Buffered paces frames to the sink at a fixed rate, reconstructing order
// across concurrently submitting producers.
//
// Frames are keyed by sequence number and emitted minimum-first, one per
// tick. When no frame is pending the last emitted frame is repeated so the
// sink never starves. The tick schedule accumulates against the ideal
// timeline t0 + k/fps, so a slow tick is followed by catch-up rather than
// permanent lag.
//
// SendFrame and SendFrameSeq are safe for concurrent use; everything else
// about the emission schedule is owned by the Run goroutine.
type Buffered struct {
	stream     *Stream
	maxPending int

	mu      sync.Mutex
	queue   *frameQueue
	counter int64
	stats   Stats

	// Owned by the Run goroutine
	last  video.Frame
	sched schedule

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewBuffered creates a buffered scheduler over an immediate stream.
//
// maxPending bounds the reorder queue; when full, the oldest pending frame
// is dropped to make room. Zero means four seconds of frames at the target
// rate. Call Run (usually on its own goroutine) to arm the emission loop.
func NewBuffered(st *Stream, maxPending int) *Buffered {
	format := st.Format()
	if maxPending <= 0 {
		maxPending = int(4 * format.FPS)
		if maxPending < 1 {
			maxPending = 1
		}
	}

	return &Buffered{
		stream:     st,
		maxPending: maxPending,
		queue:      newFrameQueue(),
		last:       video.White(format),
		sched:      schedule{interval: format.FrameInterval()},
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// SendFrame submits a frame under the next auto-assigned sequence number.
//
// The auto-increment path preserves ordering only for a single calling
// goroutine; concurrent producers must coordinate explicit sequence numbers
// through SendFrameSeq. Never blocks on the emission loop.
func (b *Buffered) SendFrame(frame video.Frame) error {
	if !frame.Matches(b.stream.Format()) {
		return video.ErrInvalidShape
	}

	b.mu.Lock()
	seq := b.counter
	b.counter++
	b.enqueueLocked(seq, frame)
	b.mu.Unlock()
	return nil
}

// SendFrameSeq submits a frame under an explicit sequence number.
// Callers own uniqueness; duplicates are emitted in undefined relative order.
func (b *Buffered) SendFrameSeq(frame video.Frame, seq int64) error {
	if !frame.Matches(b.stream.Format()) {
		return video.ErrInvalidShape
	}

	b.mu.Lock()
	b.enqueueLocked(seq, frame)
	b.mu.Unlock()
	return nil
}

func (b *Buffered) enqueueLocked(seq int64, frame video.Frame) {
	for b.queue.Len() >= b.maxPending {
		dropped, _ := b.queue.popMin()
		b.stats.Dropped++
		metrics.FramesDropped.Inc()
		logging.Debugf("buffered: queue full, dropped frame %d", dropped.seq)
	}

	b.queue.add(seq, frame.Clone())
	b.stats.Submitted++
	metrics.FramesSubmitted.Inc()
	metrics.PendingDepth.Set(float64(b.queue.Len()))
}

// Run drives the emission loop until the sink is gone or Stop is called.
// The first tick fires immediately.
func (b *Buffered) Run() {
	defer close(b.done)

	timer := time.NewTimer(0)
	defer timer.Stop()

	failures := 0
	for {
		select {
		case <-b.stop:
			return
		case <-timer.C:
		}

		start := time.Now()

		if err := b.tick(); err != nil {
			// The adapter already reset once inside Send. A second
			// consecutive failure means the reset path itself is broken,
			// so the loop stops self-perpetuating.
			failures++
			logging.Warnf("buffered: sink write failed (%d consecutive): %v", failures, err)
			if failures > 1 {
				return
			}
		} else {
			failures = 0
		}

		delay := b.sched.advance(start, time.Now())
		if delay < 0 {
			// Behind the ideal schedule: run the next tick immediately
			// and let back-to-back iterations absorb the backlog.
			delay = 0
		}
		timer.Reset(delay)
	}
}

// tick emits exactly one frame: the minimum pending one, or a repeat
func (b *Buffered) tick() error {
	b.mu.Lock()
	pending, ok := b.queue.popMin()
	metrics.PendingDepth.Set(float64(b.queue.Len()))
	b.mu.Unlock()

	var frame video.Frame
	if ok {
		frame = pending.frame
		b.last = frame
	} else {
		frame = b.last
	}

	err := b.stream.SendFrame(frame)

	b.mu.Lock()
	if ok {
		b.stats.Emitted++
		metrics.FramesEmitted.Inc()
	} else {
		b.stats.Repeated++
		metrics.FramesRepeated.Inc()
	}
	b.mu.Unlock()

	if err != nil && !errors.Is(err, sink.ErrClosed) {
		logging.Errorf("buffered: unexpected send error: %v", err)
		return nil
	}
	return err
}

// Stats returns a snapshot of scheduler counters
func (b *Buffered) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stats
}

// Pending returns the number of frames waiting in the reorder queue
func (b *Buffered) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.queue.Len()
}

// Stop ends the emission loop. Safe to call more than once.
func (b *Buffered) Stop() {
	b.stopOnce.Do(func() { close(b.stop) })
}

// Done is closed once the emission loop has ended, whether by Stop or by
// the sink going away
func (b *Buffered) Done() <-chan struct{} {
	return b.done
}

// Stopped reports whether the emission loop has ended
func (b *Buffered) Stopped() bool {
	select {
	case <-b.done:
		return true
	default:
		return false
	}
}

// schedule tracks the ideal emission timeline.
//
// next advances by exactly one interval per tick regardless of when the
// tick actually ran, which is what keeps the cadence locked to t0 + k/fps
// instead of drifting by per-tick lateness.
type schedule struct {
	interval time.Duration
	next     time.Time
}

// advance moves the schedule past the tick that began at start and returns
// the delay until the next tick is due, measured from now. A negative
// return means the schedule has fallen behind.
func (s *schedule) advance(start, now time.Time) time.Duration {
	if s.next.IsZero() {
		s.next = start.Add(s.interval)
	} else {
		s.next = s.next.Add(s.interval)
	}
	return s.next.Sub(now)
}
