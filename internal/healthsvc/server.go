// Package healthsvc implements the health-check fixture: a tiny HTTP service
// whose health endpoints answer with fixed or time-dependent statuses.
package healthsvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/draganm/taskfixtures/internal/metrics"
	"github.com/draganm/taskfixtures/internal/signals"
)

// InstanceHeader carries the fixture instance ID on every response.
const InstanceHeader = "X-Fixture-Instance"

const shutdownTimeout = 5 * time.Second

// Config holds server configuration
type Config struct {
	Host         string
	Port         int
	SlowHealthy  bool          // serve /slowhealthy
	HealthyAfter time.Duration // /slowhealthy turns healthy after this long; 0 means at once
	Instance     uuid.UUID
	Now          func() time.Time // defaults to time.Now
}

// Server represents the health-check fixture
type Server struct {
	config    *Config
	instance  uuid.UUID
	now       func() time.Time
	started   time.Time
	server    *http.Server
	ready     chan struct{}
	readyOnce sync.Once
	running   atomic.Bool
	port      int // actual port (for testing with port 0)
}

// New creates a new server instance. The start time used by /slowhealthy is
// taken here.
func New(cfg *Config) (*Server, error) {
	if cfg.Host == "" {
		return nil, errors.New("listen host is required")
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid listen port %d", cfg.Port)
	}
	if cfg.HealthyAfter < 0 {
		return nil, fmt.Errorf("invalid healthy-after duration %v", cfg.HealthyAfter)
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	instance := cfg.Instance
	if instance == uuid.Nil {
		instance = uuid.New()
	}
	c := *cfg

	return &Server{
		config:   &c,
		instance: instance,
		now:      now,
		started:  now(),
		ready:    make(chan struct{}),
	}, nil
}

// Handler returns the fixture's routes wrapped with metrics collection.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.setupRoutes(mux)
	return s.withInstance(metrics.HTTPMiddleware(mux))
}

func (s *Server) setupRoutes(mux *http.ServeMux) {
	mux.Handle("GET /metrics", metrics.PrometheusHandler())

	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /healthy", s.handleHealthy)
	mux.HandleFunc("GET /sick", s.handleSick)
	if s.config.SlowHealthy {
		mux.HandleFunc("GET /slowhealthy", s.handleSlowHealthy)
	}
}

func (s *Server) withInstance(next http.Handler) http.Handler {
	id := s.instance.String()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(InstanceHeader, id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, http.StatusOK, "root")
}

func (s *Server) handleHealthy(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, http.StatusOK, "healthy")
}

func (s *Server) handleSick(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, http.StatusBadRequest, "sick")
}

func (s *Server) handleSlowHealthy(w http.ResponseWriter, r *http.Request) {
	elapsed := s.now().Sub(s.started)
	code, msg := SlowHealth(elapsed, s.config.HealthyAfter)

	metrics.UptimeSeconds.Set(elapsed.Seconds())
	if code == http.StatusOK {
		metrics.SlowHealthReady.Set(1)
	} else {
		metrics.SlowHealthReady.Set(0)
	}

	s.respond(w, r, code, msg)
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, code int, body string) {
	slog.Info("Handling request",
		"route", r.URL.Path,
		"status", code,
		"instance", s.instance,
	)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	fmt.Fprint(w, body)
}

// Run serves until ctx is cancelled, then shuts the listener down gracefully.
// A cancelled context is a clean stop and Run returns nil. Run may only be
// called once per Server.
func (s *Server) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return errors.New("server already started")
	}

	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		s.markReady()
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.port = listener.Addr().(*net.TCPAddr).Port

	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("Starting server",
		"host", s.config.Host,
		"port", s.port,
		"instance", s.instance,
		"slow_healthy", s.config.SlowHealthy,
		"healthy_after", s.config.HealthyAfter,
	)
	s.markReady()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		if sig, ok := signals.Received(ctx); ok {
			slog.Info("Received signal, shutting down", "signal", sig.String())
		} else {
			slog.Info("Shutting down server...")
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func (s *Server) markReady() {
	s.readyOnce.Do(func() { close(s.ready) })
}

// Ready is closed once Run has bound the listener or failed to. Port is 0
// after a failure.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Port returns the port the server is listening on
func (s *Server) Port() int {
	return s.port
}

// Instance returns the fixture instance ID.
func (s *Server) Instance() uuid.UUID {
	return s.instance
}
