package monitoring

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/helium/helium-ops/pkg/solana/logger"
)

const shutdownTimeout = 5 * time.Second

// HTTPServer serves the Prometheus exposition of the monitor.
type HTTPServer struct {
	address string
	server  *http.Server
	log     logger.Logger
}

func NewHTTPServer(address string, gatherer prometheus.Gatherer, log logger.Logger) *HTTPServer {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	}).Methods(http.MethodGet)

	return &HTTPServer{
		address: address,
		server: &http.Server{
			Handler:           r,
			ReadHeaderTimeout: 15 * time.Second,
			WriteTimeout:      15 * time.Second,
		},
		log: log,
	}
}

func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

// Run listens on the configured address and serves until ctx is done.
func (s *HTTPServer) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is done, then shuts down gracefully.
func (s *HTTPServer) Serve(ctx context.Context, listener net.Listener) error {
	errs := make(chan error, 1)
	go func() {
		s.log.Infow("http server listening", "address", listener.Addr().String())
		errs <- s.server.Serve(listener)
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
