// ABOUTME: Synthetic test pattern frame source
// ABOUTME: Generates a moving color gradient for demos and tests
package source

import (
	"math"
	"sync"

	"github.com/framecast/framecast-go/pkg/video"
)

// Pattern generates a scrolling color-gradient frame on each call.
// Safe for use from a single producer goroutine at any pace; the frame
// counter is mutexed so tests can share one instance.
type Pattern struct {
	format video.Format

	mu   sync.Mutex
	tick uint64
}

// NewPattern creates a pattern source for the given format
func NewPattern(format video.Format) *Pattern {
	return &Pattern{format: format}
}

// Next returns the next frame of the animation
func (p *Pattern) Next() video.Frame {
	p.mu.Lock()
	t := p.tick
	p.tick++
	p.mu.Unlock()

	w := p.format.Width
	h := p.format.Height
	phase := float64(t) / p.format.FPS

	pix := make([]float32, h*w*video.Channels)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * video.Channels
			pix[i] = float32(x+int(t)%w) / float32(2*w)
			pix[i+1] = float32(y) / float32(h)
			pix[i+2] = float32(0.5 + 0.5*math.Sin(2*math.Pi*phase))
		}
	}

	return video.Frame{Pix: pix, Width: w, Height: h}
}

// Solid returns a single-color frame in the given format
func Solid(format video.Format, r, g, b float32) video.Frame {
	pix := make([]float32, format.Height*format.Width*video.Channels)
	for i := 0; i < len(pix); i += video.Channels {
		pix[i] = r
		pix[i+1] = g
		pix[i+2] = b
	}
	return video.Frame{Pix: pix, Width: format.Width, Height: format.Height}
}
