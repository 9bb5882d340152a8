// ABOUTME: High-level output stream API
// ABOUTME: Wires the ffmpeg sink, immediate stream, and schedulers together
package framecast

import (
	"errors"
	"fmt"

	"github.com/framecast/framecast-go/internal/sink"
	"github.com/framecast/framecast-go/internal/stream"
	"github.com/framecast/framecast-go/pkg/video"
)

// ErrSinkUnavailable indicates the encoder binary could not be launched at
// all. It is fatal; print InstallHint and exit.
var ErrSinkUnavailable = sink.ErrUnavailable

// Config holds output stream configuration
type Config struct {
	// StreamKey authenticates against the RTMP ingest
	StreamKey string

	// Width and Height of the video stream in pixels (default 640x480)
	Width  int
	Height int

	// FPS is the target frame rate, may be fractional (default 30)
	FPS float64

	// Binary is the encoder executable (default "ffmpeg")
	Binary string

	// IngestURL overrides the RTMP endpoint
	IngestURL string

	// Verbose passes the encoder's diagnostics through instead of
	// discarding them
	Verbose bool

	// MaxPending bounds the buffered scheduler's reorder queue; the oldest
	// pending frame is dropped when full (default: 4 seconds of frames)
	MaxPending int

	// Command overrides the assembled encoder command entirely
	Command []string
}

func (c *Config) defaults() {
	if c.Width == 0 {
		c.Width = 640
	}
	if c.Height == 0 {
		c.Height = 480
	}
	if c.FPS == 0 {
		c.FPS = 30
	}
	if c.Binary == "" {
		c.Binary = "ffmpeg"
	}
}

func (c Config) format() video.Format {
	return video.Format{Width: c.Width, Height: c.Height, FPS: c.FPS}
}

func (c Config) sinkConfig() sink.Config {
	return sink.Config{
		Width:     c.Width,
		Height:    c.Height,
		FPS:       c.FPS,
		StreamKey: c.StreamKey,
		IngestURL: c.IngestURL,
		Binary:    c.Binary,
		Verbose:   c.Verbose,
		Command:   c.Command,
	}
}

// InstallHint returns installation guidance for the configured binary
func (c Config) InstallHint() string {
	binary := c.Binary
	if binary == "" {
		binary = "ffmpeg"
	}
	return sink.InstallHint(binary)
}

// BufferedOutputStream delivers frames at a fixed rate with reordering.
// See stream.Buffered for the scheduling semantics.
type BufferedOutputStream struct {
	config    Config
	sink      *sink.FFmpeg
	scheduler *stream.Buffered
}

// NewBufferedOutputStream launches the sink and arms the emission loop.
// The first tick fires immediately, carrying a white frame until producers
// catch up.
func NewBufferedOutputStream(config Config) (*BufferedOutputStream, error) {
	config.defaults()
	format := config.format()
	if err := format.Validate(); err != nil {
		return nil, err
	}

	fs, err := sink.New(config.sinkConfig())
	if err != nil {
		return nil, describeLaunchFailure(config, err)
	}

	scheduler := stream.NewBuffered(stream.New(format, fs), config.MaxPending)
	go scheduler.Run()

	return &BufferedOutputStream{
		config:    config,
		sink:      fs,
		scheduler: scheduler,
	}, nil
}

// SendFrame submits a frame under the next auto-assigned sequence number.
// Single-producer only; concurrent producers must use SendFrameSeq with
// coordinated sequence numbers.
func (s *BufferedOutputStream) SendFrame(frame video.Frame) error {
	return s.scheduler.SendFrame(frame)
}

// SendFrameSeq submits a frame under an explicit sequence number.
// Safe for concurrent use.
func (s *BufferedOutputStream) SendFrameSeq(frame video.Frame, seq int64) error {
	return s.scheduler.SendFrameSeq(frame, seq)
}

// Stats returns a snapshot of scheduler counters
func (s *BufferedOutputStream) Stats() stream.Stats {
	return s.scheduler.Stats()
}

// Pending returns the number of frames waiting for emission
func (s *BufferedOutputStream) Pending() int {
	return s.scheduler.Pending()
}

// Done is closed once the emission loop has ended
func (s *BufferedOutputStream) Done() <-chan struct{} {
	return s.scheduler.Done()
}

// Stopped reports whether the emission loop has ended
func (s *BufferedOutputStream) Stopped() bool {
	return s.scheduler.Stopped()
}

// Format returns the stream's frame format
func (s *BufferedOutputStream) Format() video.Format {
	return s.config.format()
}

// Close stops the scheduler and interrupts the sink process so it can
// finalize the stream. Safe to call more than once.
func (s *BufferedOutputStream) Close() error {
	s.scheduler.Stop()
	<-s.scheduler.Done()
	return s.sink.Close()
}

// RepeaterOutputStream keeps the sink fed by re-sending the latest frame
type RepeaterOutputStream struct {
	config    Config
	sink      *sink.FFmpeg
	scheduler *stream.Repeater
}

// NewRepeaterOutputStream launches the sink and arms the repeat loop
func NewRepeaterOutputStream(config Config) (*RepeaterOutputStream, error) {
	config.defaults()
	format := config.format()
	if err := format.Validate(); err != nil {
		return nil, err
	}

	fs, err := sink.New(config.sinkConfig())
	if err != nil {
		return nil, describeLaunchFailure(config, err)
	}

	scheduler := stream.NewRepeater(stream.New(format, fs))
	go scheduler.Run()

	return &RepeaterOutputStream{
		config:    config,
		sink:      fs,
		scheduler: scheduler,
	}, nil
}

// SendFrame latches the frame for the next tick; it never blocks and never
// reports sink trouble
func (s *RepeaterOutputStream) SendFrame(frame video.Frame) error {
	return s.scheduler.SendFrame(frame)
}

// Done is closed once the emission loop has ended
func (s *RepeaterOutputStream) Done() <-chan struct{} {
	return s.scheduler.Done()
}

// Stopped reports whether the emission loop has ended
func (s *RepeaterOutputStream) Stopped() bool {
	return s.scheduler.Stopped()
}

// Format returns the stream's frame format
func (s *RepeaterOutputStream) Format() video.Format {
	return s.config.format()
}

// Close stops the scheduler and interrupts the sink process
func (s *RepeaterOutputStream) Close() error {
	s.scheduler.Stop()
	<-s.scheduler.Done()
	return s.sink.Close()
}

func describeLaunchFailure(config Config, err error) error {
	if errors.Is(err, sink.ErrUnavailable) {
		return fmt.Errorf("%w\n%s", err, config.InstallHint())
	}
	return err
}
