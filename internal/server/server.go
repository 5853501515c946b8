package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rickgao/debtwatch/internal/derive"
	"github.com/rickgao/debtwatch/internal/format"
	"github.com/rickgao/debtwatch/internal/model"
	"github.com/rickgao/debtwatch/internal/pipeline"
	"github.com/rickgao/debtwatch/internal/realtime"
)

// Service is the pipeline surface the server needs.
type Service interface {
	Load(ctx context.Context) (pipeline.LoadReport, error)
	CanonicalDataset() (model.CanonicalDataset, bool)
	LastReport() (pipeline.LoadReport, bool)
	FilteredSeries(kind model.SeriesKind, token model.WindowToken) (model.TimeSeries, error)
	DerivedMetrics() (derive.Metrics, error)
	Estimate() (realtime.Estimate, bool)
	SubscribeRealTimeEstimate(h realtime.Handler) realtime.Handle
	Unsubscribe(handle realtime.Handle) bool
	AssumedInterestRate() float64
}

// Config holds server configuration.
type Config struct {
	Addr            string        // Listen address (default: ":8080")
	ReadTimeout     time.Duration // default: 15s
	WriteTimeout    time.Duration // default: 15s
	ShutdownTimeout time.Duration // default: 10s
	MetricsPath     string        // Empty disables /metrics
	AllowedOrigins  []string      // WebSocket origins; empty allows same host only
	Locale          string        // Locale of human-readable exports (default: fr-FR)
	BOMPrefix       bool          // Prefix CSV exports with a UTF-8 BOM
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		MetricsPath:     "/metrics",
		Locale:          format.DefaultLocale,
	}
}

// Server serves the HTTP API.
type Server struct {
	cfg      Config
	svc      Service
	logger   *slog.Logger
	router   *chi.Mux
	human    *format.Formatter
	upgrader websocket.Upgrader

	httpServer *http.Server
	done       chan error
}

// New creates a Server and registers its routes.
func New(cfg Config, svc Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultConfig().Addr
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = DefaultConfig().ShutdownTimeout
	}

	s := &Server{
		cfg:    cfg,
		svc:    svc,
		logger: logger.With("component", "server"),
		human:  format.New(cfg.Locale),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// The websocket route skips the response-wrapping middleware.
	r.Get("/ws/estimate", s.handleEstimateStream)

	r.Group(func(r chi.Router) {
		r.Use(s.requestLogger)
		r.Use(middleware.Recoverer)

		r.Get("/health", s.handleHealth)

		r.Route("/api", func(r chi.Router) {
			r.Use(render.SetContentType(render.ContentTypeJSON))

			r.Get("/dataset", s.handleDataset)
			r.Get("/series/{kind}", s.handleSeries)
			r.Get("/metrics", s.handleMetrics)
			r.Get("/estimate", s.handleEstimate)
			r.Post("/reload", s.handleReload)
			r.Get("/export.csv", s.handleExportCSV)
			r.Get("/export.xlsx", s.handleExportXLSX)
		})
	})

	if s.cfg.MetricsPath != "" {
		r.Handle(s.cfg.MetricsPath, promhttp.Handler())
	}

	return r
}

// Start begins serving in the background.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}

	s.httpServer = &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}
	s.done = make(chan error, 1)

	go func() {
		err := s.httpServer.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		s.done <- err
	}()

	s.logger.Info("http server started", "addr", ln.Addr().String())
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	if err := <-s.done; err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	s.logger.Info("http server stopped")
	return nil
}

// requestLogger logs one line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range s.cfg.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	if len(s.cfg.AllowedOrigins) == 0 {
		return originMatchesHost(origin, r.Host)
	}
	return false
}
