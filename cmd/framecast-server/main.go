// ABOUTME: Entry point for the Framecast ingest server
// ABOUTME: Accepts frames over websocket and paces them to the sink
package main

import (
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/framecast/framecast-go/internal/ingest"
	"github.com/framecast/framecast-go/internal/version"
	"github.com/framecast/framecast-go/pkg/framecast"
)

var (
	port       = flag.Int("port", 8931, "HTTP port for ingest and metrics")
	streamKey  = flag.String("key", "", "RTMP stream key")
	ingestURL  = flag.String("url", "", "RTMP ingest URL (default: Twitch Amsterdam)")
	width      = flag.Int("width", 640, "Stream width in pixels")
	height     = flag.Int("height", 480, "Stream height in pixels")
	fps        = flag.Float64("fps", 30, "Target frame rate")
	binary     = flag.String("binary", "ffmpeg", "Encoder binary")
	verbose    = flag.Bool("verbose", false, "Pass encoder diagnostics through")
	maxPending = flag.Int("max-pending", 0, "Reorder queue bound (0 = 4 seconds of frames)")
	logFile    = flag.String("log-file", "", "Log file path (default: stdout only)")
)

func main() {
	flag.Parse()

	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Fatalf("error opening log file: %v", err)
		}
		defer func() { _ = f.Close() }()
		log.SetOutput(io.MultiWriter(os.Stdout, f))
	}

	log.Printf("Starting %s ingest server %s", version.Product, version.Version)

	out, err := framecast.NewBufferedOutputStream(framecast.Config{
		StreamKey:  *streamKey,
		IngestURL:  *ingestURL,
		Width:      *width,
		Height:     *height,
		FPS:        *fps,
		Binary:     *binary,
		Verbose:    *verbose,
		MaxPending: *maxPending,
	})
	if err != nil {
		log.Fatalf("Cannot start stream: %v", err)
	}
	defer out.Close()

	srv := ingest.New(ingest.Config{
		Port:   *port,
		Format: out.Format(),
	}, out)

	errChan := make(chan error, 1)
	go func() { errChan <- srv.Start() }()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		log.Printf("Shutdown signal received")
	case <-out.Done():
		log.Printf("Scheduler stopped (sink gone)")
	case err := <-errChan:
		if err != nil {
			log.Printf("Ingest server error: %v", err)
		}
	}

	srv.Stop()
	log.Printf("Server stopped")
}
