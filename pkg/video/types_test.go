// ABOUTME: Tests for video frame types
// ABOUTME: Covers wire conversion boundaries and shape validation
package video

import (
	"testing"
	"time"
)

func TestSampleToByteBoundaries(t *testing.T) {
	cases := []struct {
		in   float32
		want byte
	}{
		{0.0, 0},
		{0.5, 127}, // 127.5 truncates
		{1.0, 255},
		{-0.1, 0},
		{1.1, 255},
	}

	for _, c := range cases {
		if got := SampleToByte(c.in); got != c.want {
			t.Errorf("SampleToByte(%g) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestFrameBytes(t *testing.T) {
	f := Frame{
		Pix:    []float32{0.0, 0.5, 1.0, -0.1, 1.1, 0.25},
		Width:  2,
		Height: 1,
	}

	got := f.Bytes()
	want := []byte{0, 127, 255, 0, 255, 63}

	if len(got) != len(want) {
		t.Fatalf("expected %d bytes, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("byte %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestFrameMatches(t *testing.T) {
	format := Format{Width: 4, Height: 2, FPS: 30}

	good := Frame{Pix: make([]float32, 4*2*3), Width: 4, Height: 2}
	if !good.Matches(format) {
		t.Error("expected matching frame to match")
	}

	wrongDims := Frame{Pix: make([]float32, 2*4*3), Width: 2, Height: 4}
	if wrongDims.Matches(format) {
		t.Error("expected transposed frame not to match")
	}

	wrongLen := Frame{Pix: make([]float32, 7), Width: 4, Height: 2}
	if wrongLen.Matches(format) {
		t.Error("expected short pixel buffer not to match")
	}
}

func TestFormatValidate(t *testing.T) {
	if err := (Format{Width: 640, Height: 480, FPS: 30}).Validate(); err != nil {
		t.Errorf("valid format rejected: %v", err)
	}
	if err := (Format{Width: 0, Height: 480, FPS: 30}).Validate(); err == nil {
		t.Error("expected zero width to be rejected")
	}
	if err := (Format{Width: 640, Height: 480, FPS: 0}).Validate(); err == nil {
		t.Error("expected zero fps to be rejected")
	}
}

func TestFormatFrameInterval(t *testing.T) {
	f := Format{Width: 1, Height: 1, FPS: 25}
	if got := f.FrameInterval(); got != 40*time.Millisecond {
		t.Errorf("expected 40ms interval at 25fps, got %v", got)
	}
}

func TestCloneIndependence(t *testing.T) {
	orig := Frame{Pix: []float32{0.1, 0.2, 0.3}, Width: 1, Height: 1}
	clone := orig.Clone()

	orig.Pix[0] = 0.9
	if clone.Pix[0] != 0.1 {
		t.Error("clone shares storage with original")
	}
}

func TestWhiteFrame(t *testing.T) {
	format := Format{Width: 3, Height: 2, FPS: 30}
	w := White(format)

	if !w.Matches(format) {
		t.Fatal("white frame does not match its format")
	}
	for i, v := range w.Pix {
		if v != 1.0 {
			t.Fatalf("sample %d = %g, want 1.0", i, v)
		}
	}
}
