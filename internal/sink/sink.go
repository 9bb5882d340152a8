// ABOUTME: Sink interface for raw frame consumers
// ABOUTME: Defines the contract between schedulers and the ffmpeg process
package sink

import "errors"

// ErrClosed is returned by Send when the sink process is not accepting
// writes. The adapter has already attempted one transparent reset by the
// time the caller sees it.
var ErrClosed = errors.New("sink closed")

// ErrUnavailable is returned at construction when the sink binary cannot be
// launched at all. It is fatal: callers should print a diagnostic and exit.
var ErrUnavailable = errors.New("sink binary unavailable")

// Sink accepts one fixed-size raw frame per Send call
type Sink interface {
	// Send writes one raw frame, resetting the underlying process first if
	// it has died since the last call
	Send(raw []byte) error

	// Alive reports whether the sink process is still running
	Alive() bool

	// Reset tears down and relaunches the sink process synchronously
	Reset() error

	// Close signals the sink process to flush and finalize. Safe to call
	// more than once; the shutdown signal is delivered exactly once.
	Close() error
}
