// ABOUTME: Immediate frame stream
// ABOUTME: Validates frames, converts to wire form, forwards to the sink
package stream

import (
	"fmt"
	"sync"

	"github.com/framecast/framecast-go/internal/sink"
	"github.com/framecast/framecast-go/pkg/video"
)

// Stream forwards single frames straight to the sink with no pacing.
//
// A shape mismatch is a caller bug and surfaces synchronously as
// video.ErrInvalidShape; sink failures propagate as sink.ErrClosed after the
// adapter has already attempted one recovery.
type Stream struct {
	format video.Format
	sink   sink.Sink

	mu  sync.Mutex
	buf []byte // reused wire buffer, guarded by mu
}

// New creates an immediate stream over the given sink
func New(format video.Format, s sink.Sink) *Stream {
	return &Stream{format: format, sink: s}
}

// Format returns the stream's frame format
func (s *Stream) Format() video.Format {
	return s.format
}

// SendFrame validates, converts, and writes one frame to the sink
func (s *Stream) SendFrame(frame video.Frame) error {
	if !frame.Matches(s.format) {
		return fmt.Errorf("%w: got %dx%d (%d samples), want %dx%d",
			video.ErrInvalidShape,
			frame.Width, frame.Height, len(frame.Pix),
			s.format.Width, s.format.Height)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf = frame.AppendBytes(s.buf)
	return s.sink.Send(s.buf)
}
