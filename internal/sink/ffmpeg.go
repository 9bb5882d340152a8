// ABOUTME: FFmpeg subprocess sink adapter
// ABOUTME: Launches ffmpeg, feeds raw RGB frames on stdin, self-heals on exit
package sink

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/framecast/framecast-go/internal/logging"
	"github.com/framecast/framecast-go/internal/metrics"
)

// Config holds ffmpeg sink configuration
type Config struct {
	Width  int
	Height int
	FPS    float64

	// StreamKey authenticates against the RTMP ingest
	StreamKey string

	// IngestURL is the RTMP endpoint; the stream key is appended.
	// Defaults to the Twitch Amsterdam ingest.
	IngestURL string

	// Binary is the encoder executable, usually "ffmpeg" (avconv on some
	// older platforms)
	Binary string

	// Verbose passes the process's own diagnostics through to stderr
	// instead of discarding them
	Verbose bool

	// Command overrides the assembled argument list entirely. The first
	// element is the executable. Used by tests and non-RTMP sinks.
	Command []string
}

// DefaultIngestURL is used when Config.IngestURL is empty
const DefaultIngestURL = "rtmp://live-ams.twitch.tv/app/"

// FFmpeg feeds raw frames to an external encoder process.
//
// Send performs a liveness check before each write and relaunches the
// process if it has exited, so a transient crash costs one frame but not
// the stream. Resets are serialized; Send and Reset are safe to call from
// both the producer and emission contexts.
type FFmpeg struct {
	config Config

	mu    sync.Mutex
	cmd   *exec.Cmd
	stdin io.WriteCloser
	dead  atomic.Bool

	closeOnce sync.Once
}

// New launches the sink process. A missing binary is ErrUnavailable and
// should terminate the caller with a diagnostic, not be retried.
func New(config Config) (*FFmpeg, error) {
	if config.Binary == "" {
		config.Binary = "ffmpeg"
	}
	if config.IngestURL == "" {
		config.IngestURL = DefaultIngestURL
	}

	f := &FFmpeg{config: config}

	if err := f.Reset(); err != nil {
		return nil, err
	}
	return f, nil
}

// Reset tears down any running process and relaunches it synchronously
func (f *FFmpeg) Reset() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resetLocked()
}

func (f *FFmpeg) resetLocked() error {
	if f.cmd != nil && f.cmd.Process != nil {
		// SIGINT lets the encoder flush the stream before exiting
		if err := f.cmd.Process.Signal(syscall.SIGINT); err != nil {
			logging.Debugf("sink: signal on reset: %v", err)
		}
	}

	argv := f.config.Command
	if len(argv) == 0 {
		argv = buildCommand(f.config)
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	if f.config.Verbose {
		cmd.Stdout = os.Stderr
		cmd.Stderr = os.Stderr
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("sink stdin pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%w: there seems to be no %s available", ErrUnavailable, argv[0])
		}
		return fmt.Errorf("launching %s: %w", argv[0], err)
	}

	logging.Infof("sink: launched %s (pid %d)", argv[0], cmd.Process.Pid)
	metrics.SinkResets.Inc()

	f.cmd = cmd
	f.stdin = stdin
	f.dead.Store(false)

	// Reap the process and record its exit so the next Send can self-heal
	go func() {
		err := cmd.Wait()
		f.dead.Store(true)
		if err != nil {
			logging.Debugf("sink: process exited: %v", err)
		}
	}()

	return nil
}

// Alive reports whether the sink process has exited since the last check
func (f *FFmpeg) Alive() bool {
	return !f.dead.Load()
}

// Send writes one raw frame to the sink's stdin.
//
// If the process has died it is relaunched first; the frame that was in
// flight when it died is not resubmitted. A failed write (or a failed
// relaunch) is reported as ErrClosed.
func (f *FFmpeg) Send(raw []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.dead.Load() {
		logging.Warnf("sink: process died, relaunching")
		if err := f.resetLocked(); err != nil {
			return fmt.Errorf("%w: relaunch failed: %v", ErrClosed, err)
		}
	}

	if _, err := f.stdin.Write(raw); err != nil {
		return fmt.Errorf("%w: %v", ErrClosed, err)
	}
	return nil
}

// Close interrupts the sink process so it can finalize the stream.
// The signal is delivered exactly once no matter how often Close is called.
func (f *FFmpeg) Close() error {
	f.closeOnce.Do(func() {
		f.mu.Lock()
		defer f.mu.Unlock()

		if f.stdin != nil {
			_ = f.stdin.Close()
		}
		if f.cmd != nil && f.cmd.Process != nil {
			if err := f.cmd.Process.Signal(syscall.SIGINT); err != nil {
				logging.Debugf("sink: signal on close: %v", err)
			}
		}
	})
	return nil
}

// InstallHint returns installation guidance for a missing sink binary
func InstallHint(binary string) string {
	if binary == "" || binary == "ffmpeg" {
		return "ffmpeg can be installed with your package manager, e.g.\n" +
			"> sudo apt-get update && sudo apt-get install ffmpeg"
	}
	return fmt.Sprintf("make sure %s is installed and on PATH", binary)
}
