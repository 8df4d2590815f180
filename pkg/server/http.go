package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/dasmlab/glosa/pkg/gateway"
	"github.com/dasmlab/glosa/pkg/web"
)

// HTTPServer exposes the gateway, its static assets, health and metrics.
type HTTPServer struct {
	gateway *gateway.Gateway
	logger  *logrus.Logger
	addr    string
	srv     *http.Server
}

// NewHTTPServer creates a new HTTP server bound to host:port.
func NewHTTPServer(gw *gateway.Gateway, logger *logrus.Logger, host string, port int) *HTTPServer {
	s := &HTTPServer{
		gateway: gw,
		logger:  logger,
		addr:    net.JoinHostPort(host, strconv.Itoa(port)),
	}
	s.srv = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routed handler wrapped with request-id, logging and
// metrics middleware.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.gateway.Home)
	mux.HandleFunc("POST /translate", s.gateway.Translate)
	mux.HandleFunc("GET /detect_lang", s.gateway.Detect)
	mux.HandleFunc("GET /languages", s.gateway.Languages)
	mux.Handle("GET /static/", http.StripPrefix("/static/", web.Static()))

	// Health check endpoint
	mux.HandleFunc("GET /health", s.handleHealth)

	// Prometheus metrics endpoint
	mux.Handle("GET /metrics", promhttp.Handler())

	return withRequestID(withAccessLog(s.logger, withMetrics(mux)))
}

// Addr returns the configured listen address.
func (s *HTTPServer) Addr() string {
	return s.addr
}

// Start listens and serves until Shutdown is called.
func (s *HTTPServer) Start() error {
	s.logger.WithFields(logrus.Fields{
		"addr": s.addr,
	}).Info("Starting HTTP server")

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Serve serves on an existing listener until Shutdown is called.
func (s *HTTPServer) Serve(lis net.Listener) error {
	if err := s.srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests until ctx expires.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// handleHealth provides a liveness endpoint.
func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
	})
}
