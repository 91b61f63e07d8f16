// Package server exposes the calculator over HTTP: a form page, a JSON API,
// chart images, a health check and Prometheus metrics.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bft-labs/midpoint/internal/app"
	"github.com/bft-labs/midpoint/internal/plot"
	"github.com/bft-labs/midpoint/internal/ports"
	"github.com/bft-labs/midpoint/pkg/log"
)

// Config holds the server settings.
type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	MaxPoints       int
	MaxBodyBytes    int64
	Precision       int
	Chart           plot.Options

	// Defaults prefilled in the form.
	DefaultX string
	DefaultY string
}

// Server serves the calculator over HTTP.
type Server struct {
	cfg      Config
	logger   ports.Logger
	calc     *app.Calculator
	schema   *requestSchema
	metrics  *metrics
	gatherer prometheus.Gatherer
	server   *http.Server
}

// New creates a Server. A nil registry gets a fresh prometheus.Registry.
func New(cfg Config, logger ports.Logger, reg *prometheus.Registry) (*Server, error) {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1 << 20
	}

	schema, err := compileRequestSchema()
	if err != nil {
		return nil, fmt.Errorf("compile request schema: %w", err)
	}

	m := newMetrics(reg)
	s := &Server{
		cfg:      cfg,
		logger:   logger,
		calc:     app.NewCalculator(app.CalculatorConfig{Precision: cfg.Precision, MaxPoints: cfg.MaxPoints}, logger, m),
		schema:   schema,
		metrics:  m,
		gatherer: reg,
	}
	s.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler returns the HTTP handler with all routes mounted.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /{$}", s.handleIndex)
	mux.HandleFunc("POST /api/compute", s.handleCompute)
	mux.HandleFunc("GET /chart.png", s.handleChart(plot.PNG))
	mux.HandleFunc("GET /chart.svg", s.handleChart(plot.SVG))
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	return s.logRequests(mux)
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", log.String("addr", ln.Addr().String()))
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server", log.Duration("timeout", s.cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("graceful shutdown failed, closing", log.Err(err))
		if cerr := s.server.Close(); cerr != nil {
			s.logger.Error("http server force close failed", log.Err(cerr))
		}
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("http request",
			log.String("method", r.Method),
			log.String("path", r.URL.Path),
			log.Int("status", rec.status),
			log.Duration("elapsed", time.Since(start)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
