// ABOUTME: Tests for the immediate stream
// ABOUTME: Covers wire conversion, shape validation, and the fake sink helper
package stream

import (
	"bytes"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/framecast/framecast-go/internal/sink"
	"github.com/framecast/framecast-go/pkg/video"
)

// fakeSink records writes and can be told to fail or stall
type fakeSink struct {
	mu     sync.Mutex
	writes [][]byte
	err    error
	delay  time.Duration // applied to the next Send only
	resets int
}

func (f *fakeSink) Send(raw []byte) error {
	f.mu.Lock()
	d := f.delay
	f.delay = 0
	f.mu.Unlock()

	if d > 0 {
		time.Sleep(d)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	cp := make([]byte, len(raw))
	copy(cp, raw)
	f.writes = append(f.writes, cp)
	return nil
}

func (f *fakeSink) Alive() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err == nil
}

func (f *fakeSink) Reset() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
	return nil
}

func (f *fakeSink) Close() error { return nil }

func (f *fakeSink) fail(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func (f *fakeSink) stallNext(d time.Duration) {
	f.mu.Lock()
	f.delay = d
	f.mu.Unlock()
}

func (f *fakeSink) snapshot() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]byte, len(f.writes))
	copy(out, f.writes)
	return out
}

func (f *fakeSink) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.writes)
}

// solid returns a frame filled with one sample value
func solid(format video.Format, v float32) video.Frame {
	pix := make([]float32, format.Height*format.Width*video.Channels)
	for i := range pix {
		pix[i] = v
	}
	return video.Frame{Pix: pix, Width: format.Width, Height: format.Height}
}

func TestImmediateSendConverts(t *testing.T) {
	format := video.Format{Width: 2, Height: 1, FPS: 30}
	fs := &fakeSink{}
	st := New(format, fs)

	frame := video.Frame{
		Pix:    []float32{0.0, 0.5, 1.0, -0.1, 1.1, 0.2},
		Width:  2,
		Height: 1,
	}

	if err := st.SendFrame(frame); err != nil {
		t.Fatalf("SendFrame: %v", err)
	}

	writes := fs.snapshot()
	if len(writes) != 1 {
		t.Fatalf("expected 1 sink write, got %d", len(writes))
	}

	want := []byte{0, 127, 255, 0, 255, 51}
	if !bytes.Equal(writes[0], want) {
		t.Errorf("wire bytes = %v, want %v", writes[0], want)
	}
}

func TestImmediateInvalidShape(t *testing.T) {
	format := video.Format{Width: 4, Height: 4, FPS: 30}
	fs := &fakeSink{}
	st := New(format, fs)

	bad := video.Frame{Pix: make([]float32, 3), Width: 1, Height: 1}

	err := st.SendFrame(bad)
	if !errors.Is(err, video.ErrInvalidShape) {
		t.Fatalf("expected ErrInvalidShape, got %v", err)
	}
	if fs.count() != 0 {
		t.Error("invalid frame must not reach the sink")
	}
}

func TestImmediatePropagatesSinkClosed(t *testing.T) {
	format := video.Format{Width: 1, Height: 1, FPS: 30}
	fs := &fakeSink{}
	fs.fail(sink.ErrClosed)
	st := New(format, fs)

	err := st.SendFrame(solid(format, 0.5))
	if !errors.Is(err, sink.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}
