// ABOUTME: WebSocket ingest server for remote frame producers
// ABOUTME: Decodes binary frame messages and feeds the buffered scheduler
package ingest

import (
	"context"
	"encoding/binary"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/framecast/framecast-go/internal/logging"
	"github.com/framecast/framecast-go/internal/metrics"
	"github.com/framecast/framecast-go/pkg/video"
)

// Scheduler accepts sequence-numbered frames from producers
type Scheduler interface {
	SendFrameSeq(frame video.Frame, seq int64) error
}

// Config holds ingest server configuration
type Config struct {
	Port   int
	Format video.Format
}

// Server accepts frames from remote producers over websocket.
//
// Each producer sends binary messages of the form
// [8-byte big-endian sequence number][height*width*3 bytes 8-bit RGB];
// pixel bytes are normalized back to [0,1] before scheduling. Producers
// own sequence-number coordination, exactly as local producers do.
type Server struct {
	config    Config
	scheduler Scheduler
	upgrader  websocket.Upgrader
	router    *mux.Router

	httpServer *http.Server

	producers   map[string]*websocket.Conn
	producersMu sync.RWMutex

	stopChan chan struct{}
	stopOnce sync.Once
}

// New creates an ingest server in front of the given scheduler
func New(config Config, scheduler Scheduler) *Server {
	s := &Server{
		config:    config,
		scheduler: scheduler,
		upgrader: websocket.Upgrader{
			// Producers are not browsers; no origin restriction
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		producers: make(map[string]*websocket.Conn),
		stopChan:  make(chan struct{}),
	}

	s.router = mux.NewRouter()
	s.router.HandleFunc("/ingest", s.handleIngest)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return s
}

// Handler returns the HTTP handler (exposed for tests)
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the HTTP server until Stop is called
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	logging.Infof("ingest: listening on %s", addr)

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case <-s.stopChan:
		logging.Infof("ingest: shutting down")
	case err := <-errChan:
		serverErr = err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		logging.Warnf("ingest: shutdown: %v", err)
	}

	if serverErr != nil {
		return fmt.Errorf("ingest server failed: %w", serverErr)
	}
	return nil
}

// Stop shuts the server down. Safe to call more than once.
func (s *Server) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
}

// Producers returns the number of connected producers
func (s *Server) Producers() int {
	s.producersMu.RLock()
	defer s.producersMu.RUnlock()
	return len(s.producers)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warnf("ingest: upgrade error: %v", err)
		return
	}
	defer conn.Close()

	id := uuid.New().String()
	logging.Infof("ingest: producer %s connected from %s", id, r.RemoteAddr)

	s.producersMu.Lock()
	s.producers[id] = conn
	s.producersMu.Unlock()
	metrics.IngestProducers.Inc()

	defer func() {
		s.producersMu.Lock()
		delete(s.producers, id)
		s.producersMu.Unlock()
		metrics.IngestProducers.Dec()
		logging.Infof("ingest: producer %s disconnected", id)
	}()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType != websocket.BinaryMessage {
			continue
		}

		seq, frame, err := DecodeFrameMessage(data, s.config.Format)
		if err != nil {
			metrics.IngestDecodeErrors.Inc()
			logging.Warnf("ingest: producer %s sent bad frame: %v", id, err)
			continue
		}

		metrics.IngestFramesReceived.Inc()
		if err := s.scheduler.SendFrameSeq(frame, seq); err != nil {
			logging.Warnf("ingest: frame %d rejected: %v", seq, err)
		}
	}
}

// DecodeFrameMessage parses one producer message: an 8-byte big-endian
// sequence number followed by the 8-bit RGB frame payload
func DecodeFrameMessage(data []byte, format video.Format) (int64, video.Frame, error) {
	want := 8 + format.FrameBytes()
	if len(data) != want {
		return 0, video.Frame{}, fmt.Errorf("frame message is %d bytes, want %d", len(data), want)
	}

	seq := int64(binary.BigEndian.Uint64(data[:8]))
	if seq < 0 {
		return 0, video.Frame{}, fmt.Errorf("negative sequence number %d", seq)
	}

	payload := data[8:]
	pix := make([]float32, len(payload))
	for i, b := range payload {
		pix[i] = float32(b) / 255.0
	}

	return seq, video.Frame{Pix: pix, Width: format.Width, Height: format.Height}, nil
}

// EncodeFrameMessage builds the wire form of one producer message.
// The inverse of DecodeFrameMessage; producers and tests share it.
func EncodeFrameMessage(frame video.Frame, seq int64) []byte {
	raw := frame.Bytes()
	out := make([]byte, 8+len(raw))
	binary.BigEndian.PutUint64(out[:8], uint64(seq))
	copy(out[8:], raw)
	return out
}
