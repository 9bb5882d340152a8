// ABOUTME: Repeater scheduler
// ABOUTME: Re-sends the most recent frame on a fixed period, last-value-wins
package stream

import (
	"sync"
	"time"

	"github.com/framecast/framecast-go/internal/logging"
	"github.com/framecast/framecast-go/internal/metrics"
	"github.com/framecast/framecast-go/pkg/video"
)

// Repeater keeps the sink fed at the target rate by re-sending whatever
// frame was latched last. It holds no buffer and gives no ordering or
// synchronization guarantees; use Buffered for that.
//
// Each tick's delay is measured from the previous tick's completion, so a
// slow sink slows the cadence. That imprecision is accepted here; the
// Buffered scheduler is the drift-corrected one.
type Repeater struct {
	stream   *Stream
	interval time.Duration

	mu   sync.Mutex
	last video.Frame

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewRepeater creates a repeater seeded with an all-white frame.
// Call Run (usually on its own goroutine) to start the emission loop; the
// first tick fires immediately.
func NewRepeater(st *Stream) *Repeater {
	return &Repeater{
		stream:   st,
		interval: st.Format().FrameInterval(),
		last:     video.White(st.Format()),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// SendFrame latches the frame for the next tick. It never forwards to the
// sink itself and never blocks; producer cadence and sink cadence are fully
// decoupled.
func (r *Repeater) SendFrame(frame video.Frame) error {
	if !frame.Matches(r.stream.Format()) {
		return video.ErrInvalidShape
	}

	clone := frame.Clone()
	r.mu.Lock()
	r.last = clone
	r.mu.Unlock()

	metrics.FramesSubmitted.Inc()
	return nil
}

// Run drives the emission loop. One failed send ends it: a single failure
// is expected when the stream shuts down, and by then the adapter has
// already tried a reset inside Send.
func (r *Repeater) Run() {
	defer close(r.done)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-timer.C:
		}

		r.mu.Lock()
		frame := r.last
		r.mu.Unlock()

		if err := r.stream.SendFrame(frame); err != nil {
			logging.Debugf("repeater: sink gone, stopping: %v", err)
			return
		}
		metrics.FramesRepeated.Inc()

		timer.Reset(r.interval)
	}
}

// Stop ends the emission loop. Safe to call more than once.
func (r *Repeater) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

// Done is closed once the emission loop has ended
func (r *Repeater) Done() <-chan struct{} {
	return r.done
}

// Stopped reports whether the emission loop has ended
func (r *Repeater) Stopped() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}
