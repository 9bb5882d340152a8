// ABOUTME: Video frame type definitions
// ABOUTME: Defines frame formats and raw-byte wire conversion
package video

import (
	"errors"
	"fmt"
	"time"
)

const (
	// Channels is the number of samples per pixel (RGB)
	Channels = 3
)

// ErrInvalidShape is returned when a frame does not match the stream format.
// It indicates a caller bug and is never retried.
var ErrInvalidShape = errors.New("frame shape does not match stream format")

// Format describes a video stream format
type Format struct {
	Width  int     // pixels
	Height int     // pixels
	FPS    float64 // target frames per second, may be fractional
}

// Validate checks that the format describes a usable stream
func (f Format) Validate() error {
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("invalid frame size %dx%d", f.Width, f.Height)
	}
	if f.FPS <= 0 {
		return fmt.Errorf("invalid frame rate %g", f.FPS)
	}
	return nil
}

// FrameBytes returns the wire size of one raw frame (8-bit RGB, row-major)
func (f Format) FrameBytes() int {
	return f.Height * f.Width * Channels
}

// FrameInterval returns the duration of one frame slot at the target rate
func (f Format) FrameInterval() time.Duration {
	return time.Duration(float64(time.Second) / f.FPS)
}

// Frame holds one video frame as normalized samples.
//
// Pix is row-major height*width*3 with each sample in [0.0, 1.0].
// Frames are treated as immutable once handed to a scheduler.
type Frame struct {
	Pix    []float32
	Width  int
	Height int
}

// Matches reports whether the frame has the format's exact shape
func (fr Frame) Matches(f Format) bool {
	return fr.Width == f.Width && fr.Height == f.Height &&
		len(fr.Pix) == f.Height*f.Width*Channels
}

// Clone returns a copy that shares no storage with the receiver.
// Schedulers clone on submission so producers keep ownership of their buffers.
func (fr Frame) Clone() Frame {
	pix := make([]float32, len(fr.Pix))
	copy(pix, fr.Pix)
	return Frame{Pix: pix, Width: fr.Width, Height: fr.Height}
}

// Bytes converts the frame to its 8-bit wire form.
//
// Each sample becomes uint8(clip(255*v, 0, 255)), truncated. Out-of-range
// samples clamp to 0 or 255 rather than erroring.
func (fr Frame) Bytes() []byte {
	out := make([]byte, len(fr.Pix))
	for i, v := range fr.Pix {
		out[i] = SampleToByte(v)
	}
	return out
}

// AppendBytes converts into dst, reusing its storage when large enough
func (fr Frame) AppendBytes(dst []byte) []byte {
	dst = dst[:0]
	for _, v := range fr.Pix {
		dst = append(dst, SampleToByte(v))
	}
	return dst
}

// SampleToByte converts one normalized sample to its 8-bit form
func SampleToByte(v float32) byte {
	s := 255 * v
	if s <= 0 {
		return 0
	}
	if s >= 255 {
		return 255
	}
	return byte(s)
}

// White returns an all-ones frame in the given format.
// Schedulers seed their last-frame slot with it before any real frame arrives.
func White(f Format) Frame {
	pix := make([]float32, f.Height*f.Width*Channels)
	for i := range pix {
		pix[i] = 1.0
	}
	return Frame{Pix: pix, Width: f.Width, Height: f.Height}
}
