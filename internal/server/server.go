package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/semaphore"

	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/logging"
)

// Server timeouts.
const (
	ReadHeaderTimeout      = 10 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)

// Server serves the calculator API.
type Server struct {
	factory         calc.CalculatorFactory
	cfg             config.AppConfig
	security        SecurityConfig
	metrics         *Metrics
	logger          logging.Logger
	validate        *validator.Validate
	shutdownTimeout time.Duration
	maxInFlight     int
	inFlight        *semaphore.Weighted
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithSecurityConfig replaces DefaultSecurityConfig.
func WithSecurityConfig(sc SecurityConfig) Option {
	return func(s *Server) { s.security = sc }
}

// WithMetrics sets the metrics collectors.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithMaxInFlight bounds the number of evaluations running at once.
// Requests beyond the bound are rejected with 503. Zero or less selects
// runtime.NumCPU().
func WithMaxInFlight(n int) Option {
	return func(s *Server) { s.maxInFlight = n }
}

// WithShutdownTimeout bounds the graceful shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) { s.shutdownTimeout = d }
}

// NewServer creates a server evaluating with the engines of factory.
// cfg.Algo is the default engine, cfg.Timeout bounds each evaluation and
// a positive cfg.MaxDigits overrides the security default.
func NewServer(factory calc.CalculatorFactory, cfg config.AppConfig, opts ...Option) *Server {
	s := &Server{
		factory:         factory,
		cfg:             cfg,
		security:        DefaultSecurityConfig(),
		shutdownTimeout: DefaultShutdownTimeout,
	}
	if cfg.MaxDigits > 0 {
		s.security.MaxDigits = cfg.MaxDigits
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewDefaultLogger()
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}
	if s.maxInFlight <= 0 {
		s.maxInFlight = runtime.NumCPU()
	}
	s.inFlight = semaphore.NewWeighted(int64(s.maxInFlight))
	s.validate = newValidator(factory)
	return s
}

// Handler returns the routed handler with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestIDMiddleware)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	api := SecurityMiddleware(s.security, s.metricsMiddleware(s.handleCalc))
	r.Get("/v1/calc", api)
	r.Options("/v1/calc", api)
	r.Get("/health", SecurityMiddleware(s.security, s.handleHealth))
	r.HandleFunc("/metrics", s.handleMetrics)
	return r
}

// Start listens on cfg.Addr and serves until ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	addr := s.cfg.Addr
	if addr == "" {
		addr = config.DefaultAddr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled, then shuts down gracefully,
// letting in-flight requests finish within the shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", logging.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// metricsMiddleware tracks active and total requests.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()
		next(w, r)
	}
}

// logRequests logs one line per request at debug level, and failed
// requests at info level.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		fields := []logging.Field{
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Int("status", ww.Status()),
			logging.Duration("duration", time.Since(start)),
			logging.String("request_id", RequestIDFromContext(r.Context())),
		}
		if ww.Status() >= http.StatusBadRequest {
			s.logger.Info("request failed", fields...)
			return
		}
		s.logger.Debug("request", fields...)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"engines": s.factory.List(),
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.logger.Debug("metrics: method not allowed", logging.String("method", r.Method))
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}
