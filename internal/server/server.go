// Package server exposes the engine metrics client over HTTP.
package server

import (
	"context"
	"net"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/discochess/enginemetrics"
)

// Service identification reported by the health endpoint.
const (
	ServiceName    = "Chess Engine Metrics AI"
	ServiceVersion = "1.0.0"
)

// Server is the HTTP front end.
type Server struct {
	app    *fiber.App
	client *enginemetrics.Client
	logger *zap.Logger
}

// Option configures a Server.
type Option func(*options)

type options struct {
	readTimeout  time.Duration
	writeTimeout time.Duration
	bodyLimit    int
	gatherer     prometheus.Gatherer
	logger       *zap.Logger
}

// WithTimeouts sets the read and write timeouts.
func WithTimeouts(read, write time.Duration) Option {
	return func(o *options) {
		o.readTimeout = read
		o.writeTimeout = write
	}
}

// WithBodyLimit sets the maximum request body size in bytes.
func WithBodyLimit(n int) Option {
	return func(o *options) {
		o.bodyLimit = n
	}
}

// WithMetrics serves the gatherer's metrics at /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(o *options) {
		o.gatherer = g
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// New builds a Server answering requests with client.
func New(client *enginemetrics.Client, opts ...Option) *Server {
	o := options{
		readTimeout:  30 * time.Second,
		writeTimeout: 30 * time.Second,
		bodyLimit:    50 << 20,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Server{
		client: client,
		logger: o.logger.Named("server"),
	}

	s.app = fiber.New(fiber.Config{
		ReadTimeout:           o.readTimeout,
		WriteTimeout:          o.writeTimeout,
		BodyLimit:             o.bodyLimit,
		ErrorHandler:          s.handleError,
		DisableStartupMessage: true,
	})

	s.app.Use(recover.New())
	s.app.Use(requestLogger(s.logger))
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	s.app.Get("/", s.health)

	api := s.app.Group("/api")
	api.Post("/query", s.query)
	api.Get("/queries", s.recentQueries)
	api.Post("/ingest", s.ingest)
	api.Get("/performance", s.performance)
	api.Get("/suggestions", s.suggestions)

	storage := api.Group("/storage")
	storage.Get("/list", s.listFiles)
	storage.Post("/ingest", s.ingestFromStorage)
	storage.Post("/load", s.loadFile)
	storage.Post("/upload", s.uploadFile)

	if o.gatherer != nil {
		s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(o.gatherer, promhttp.HandlerOpts{})))
	}

	s.app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Endpoint not found")
	})

	return s
}

// App returns the underlying fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves HTTP on addr until Shutdown is called.
func (s *Server) Listen(addr string) error {
	s.logger.Info("server starting", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Serve serves HTTP on ln until Shutdown is called.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("server starting", zap.String("address", ln.Addr().String()))
	return s.app.Listener(ln)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server shutting down")
	return s.app.ShutdownWithContext(ctx)
}
