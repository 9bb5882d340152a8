// ABOUTME: FFmpeg argument list assembly
// ABOUTME: Builds the rawvideo-to-RTMP encoder command line
package sink

import "fmt"

// buildCommand assembles the encoder invocation: raw RGB frames on stdin,
// silence on the second input (RTMP ingests reject video-only streams),
// x264 at zero latency out to the ingest URL.
func buildCommand(c Config) []string {
	size := fmt.Sprintf("%dx%d", c.Width, c.Height)
	rate := fmt.Sprintf("%d", int(c.FPS))

	return []string{
		c.Binary,
		"-loglevel", "verbose",
		"-y",
		"-analyzeduration", "1",

		// Input 0: raw frames from stdin at a fixed rate
		"-f", "rawvideo",
		"-r", rate,
		"-vcodec", "rawvideo",
		"-s", size,
		"-pix_fmt", "rgb24",
		"-i", "-",

		// Input 1: silent audio, runs forever
		"-ar", "8000",
		"-ac", "1",
		"-f", "s16le",
		"-i", "/dev/zero",

		// Video encoding
		"-vcodec", "libx264",
		"-r", rate,
		"-b:v", "3000k",
		"-s", size,
		"-preset", "faster", "-tune", "zerolatency",
		"-crf", "23",
		"-pix_fmt", "yuv420p",
		"-minrate", "3000k", "-maxrate", "3000k",
		"-bufsize", "12000k",
		"-g", "60",
		"-keyint_min", "1",

		// Audio encoding
		"-acodec", "libmp3lame", "-ar", "44100", "-b:a", "160k",
		"-ac", "1",

		// Video from input 0, audio from input 1
		"-map", "0:v", "-map", "1:a",

		"-threads", "2",

		"-f", "flv", c.IngestURL + c.StreamKey,
	}
}
