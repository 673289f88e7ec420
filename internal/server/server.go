package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/TommyGymer/mdns-client/internal/logging"
	"github.com/TommyGymer/mdns-client/internal/records"
)

// shutdownTimeout bounds how long in-flight requests may run once a
// shutdown signal arrives.
const shutdownTimeout = 10 * time.Second

// Config holds the record server configuration.
type Config struct {
	// Addr is the listen address, e.g. ":8090".
	Addr string
	// Query labels the served payloads with the query being scanned.
	Query string
	// Store is the live record store the scanner writes into.
	Store *records.Store
}

// Server exposes the record store over HTTP: a JSON table on /records, a
// websocket live feed on /ws, Prometheus metrics on /metrics and a
// health probe on /healthz.
type Server struct {
	config *Config

	// quit is closed when shutdown begins so websocket write loops can
	// say goodbye; http.Server.Shutdown does not wait for hijacked
	// connections.
	quit chan struct{}
}

// New creates a record server. Run starts it.
func New(config *Config) *Server {
	return &Server{
		config: config,
		quit:   make(chan struct{}),
	}
}

// routes wires the handler table.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/records", counted("/records", s.handleRecords))
	mux.HandleFunc("/ws", counted("/ws", s.handleWS))
	mux.HandleFunc("/healthz", counted("/healthz", s.handleHealthz))
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// Run starts the server and blocks until ctx is cancelled, an interrupt
// or SIGTERM arrives, or the listener fails. Shutdown is graceful:
// in-flight requests get shutdownTimeout to finish and websocket
// subscribers receive a close frame.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpServer := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- httpServer.ListenAndServe()
	}()

	logging.Info("record server listening",
		zap.String("addr", s.config.Addr),
		zap.String("query", s.config.Query),
	)

	select {
	case <-ctx.Done():
		logging.Info("shutdown signal received, stopping record server")
		close(s.quit)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown record server: %w", err)
		}
		return nil
	case err := <-errChan:
		return fmt.Errorf("record server failed: %w", err)
	}
}
