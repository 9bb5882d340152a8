// ABOUTME: Entry point for the Framecast streamer
// ABOUTME: Parses CLI flags and streams a test pattern to the sink
package main

import (
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/framecast/framecast-go/internal/source"
	"github.com/framecast/framecast-go/internal/ui"
	"github.com/framecast/framecast-go/internal/version"
	"github.com/framecast/framecast-go/pkg/framecast"
)

var (
	streamKey  = flag.String("key", "", "RTMP stream key")
	ingestURL  = flag.String("url", "", "RTMP ingest URL (default: Twitch Amsterdam)")
	width      = flag.Int("width", 640, "Stream width in pixels")
	height     = flag.Int("height", 480, "Stream height in pixels")
	fps        = flag.Float64("fps", 30, "Target frame rate")
	binary     = flag.String("binary", "ffmpeg", "Encoder binary (avconv on some platforms)")
	verbose    = flag.Bool("verbose", false, "Pass encoder diagnostics through")
	mode       = flag.String("mode", "buffered", "Scheduler: buffered or repeater")
	logFile    = flag.String("log-file", "framecast.log", "Log file path")
	noTUI      = flag.Bool("no-tui", false, "Disable TUI, use streaming logs instead")
	streamLogs = flag.Bool("stream-logs", false, "Alias for -no-tui")
)

func main() {
	flag.Parse()

	useTUI := !(*noTUI || *streamLogs)

	// Set up logging
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if useTUI {
		// TUI mode: log only to file
		log.SetOutput(f)
	} else {
		log.SetOutput(io.MultiWriter(os.Stdout, f))
	}

	log.Printf("Starting %s %s", version.Product, version.Version)

	config := framecast.Config{
		StreamKey: *streamKey,
		IngestURL: *ingestURL,
		Width:     *width,
		Height:    *height,
		FPS:       *fps,
		Binary:    *binary,
		Verbose:   *verbose,
	}

	switch *mode {
	case "buffered":
		runBuffered(config, useTUI)
	case "repeater":
		runRepeater(config)
	default:
		log.Fatalf("unknown mode %q (want buffered or repeater)", *mode)
	}
}

func runBuffered(config framecast.Config, useTUI bool) {
	out, err := framecast.NewBufferedOutputStream(config)
	if err != nil {
		// The one deliberately loud failure path: no usable encoder
		log.Fatalf("Cannot start stream: %v", err)
	}
	defer out.Close()

	var tuiProg *tea.Program
	var control *ui.Control

	if useTUI {
		control = ui.NewControl()
		tuiProg, err = ui.Run(control)
		if err != nil {
			log.Fatalf("Failed to start TUI: %v", err)
		}
		go func() { _, _ = tuiProg.Run() }()

		go statsLoop(out, config, tuiProg)
	}

	// Produce the test pattern at the target rate
	pattern := source.NewPattern(out.Format())
	producerDone := make(chan struct{})
	go func() {
		defer close(producerDone)
		ticker := time.NewTicker(out.Format().FrameInterval())
		defer ticker.Stop()

		for {
			select {
			case <-out.Done():
				return
			case <-ticker.C:
				if err := out.SendFrame(pattern.Next()); err != nil {
					log.Printf("SendFrame: %v", err)
				}
			}
		}
	}()

	waitForShutdown(control, out.Done())

	if tuiProg != nil {
		tuiProg.Quit()
	}
	log.Printf("Streamer stopped")
}

func runRepeater(config framecast.Config) {
	out, err := framecast.NewRepeaterOutputStream(config)
	if err != nil {
		log.Fatalf("Cannot start stream: %v", err)
	}
	defer out.Close()

	// A repeater needs only an occasional frame; latch a new pattern frame
	// once a second and let the scheduler keep the sink fed
	pattern := source.NewPattern(out.Format())
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-out.Done():
				return
			case <-ticker.C:
				if err := out.SendFrame(pattern.Next()); err != nil {
					log.Printf("SendFrame: %v", err)
				}
			}
		}
	}()

	waitForShutdown(nil, out.Done())
	log.Printf("Streamer stopped")
}

// statsLoop pushes scheduler stats into the TUI
func statsLoop(out *framecast.BufferedOutputStream, config framecast.Config, prog *tea.Program) {
	sinkDesc := config.IngestURL
	if sinkDesc == "" {
		sinkDesc = "Twitch"
	}

	streaming := true
	format := out.Format()
	prog.Send(ui.StatusMsg{
		Streaming: &streaming,
		SinkDesc:  sinkDesc,
		Width:     format.Width,
		Height:    format.Height,
		FPS:       format.FPS,
	})

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-out.Done():
			stopped := false
			prog.Send(ui.StatusMsg{Streaming: &stopped})
			return
		case <-ticker.C:
			stats := out.Stats()
			prog.Send(ui.StatusMsg{
				Submitted: stats.Submitted,
				Emitted:   stats.Emitted,
				Repeated:  stats.Repeated,
				Dropped:   stats.Dropped,
				Pending:   out.Pending(),
			})
		}
	}
}

// waitForShutdown blocks until a signal, TUI quit, or scheduler death
func waitForShutdown(control *ui.Control, schedulerDone <-chan struct{}) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var quit <-chan struct{}
	if control != nil {
		quit = control.Quit
	}

	select {
	case <-sigChan:
		log.Printf("Shutdown signal received")
	case <-quit:
		log.Printf("Quit requested from TUI")
	case <-schedulerDone:
		log.Printf("Scheduler stopped (sink gone)")
	}
}
