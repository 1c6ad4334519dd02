// Package server serves the local upload page and JSON API.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/runnerr0/kickback/internal/config"
	"github.com/runnerr0/kickback/internal/logging"
	"github.com/runnerr0/kickback/internal/pipeline"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/time/rate"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = 3 * time.Minute
	limiterIdle     = 5 * time.Minute
)

// Server is the kickback web front end. Uploaded archives are processed
// in memory and discarded after the response.
type Server struct {
	cfg      *config.Config
	logger   logging.Logger
	runner   *pipeline.Runner
	registry *prometheus.Registry
	limiter  *RateLimiter
	tmpl     *template.Template
	echo     *echo.Echo
}

// New builds a server from cfg. Metrics are kept in a registry owned by
// the server and exposed on /metrics.
func New(cfg *config.Config, logger logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	printer := message.NewPrinter(language.English)
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"number": func(n int) string { return printer.Sprintf("%d", n) },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	s := &Server{
		cfg:      cfg,
		logger:   logger,
		runner:   pipeline.NewRunner(logger, pipeline.NewMetrics(reg)),
		registry: reg,
		limiter:  NewRateLimiter(rate.Limit(cfg.Server.RateLimit), cfg.Server.RateBurst),
		tmpl:     tmpl,
	}
	s.echo = s.routes()
	return s, nil
}

func (s *Server) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []logging.Field{
				logging.String("request_id", v.RequestID),
				logging.String("method", v.Method),
				logging.String("uri", v.URI),
				logging.Int("status", v.Status),
				logging.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				s.logger.Warn("request failed", append(fields, logging.Err(v.Error))...)
				return nil
			}
			s.logger.Info("request completed", fields...)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(SecurityHeaders())

	upload := []echo.MiddlewareFunc{
		middleware.BodyLimit(strconv.Itoa(s.cfg.Server.MaxUploadMB) + "M"),
		s.limiter.Middleware(),
	}

	e.GET("/", s.handleIndex)
	e.POST("/receipt", s.handleReceipt, upload...)
	e.POST("/api/receipt", s.handleAPIReceipt, upload...)
	e.GET("/healthz", s.handleHealth)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	return e
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Addr is the configured listen address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.Server.Host, strconv.Itoa(s.cfg.Server.Port))
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("starting server", logging.String("address", s.Addr()))
		if err := s.echo.Start(s.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.echo.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gCtx.Done():
				return nil
			case <-ticker.C:
				if n := s.limiter.Sweep(limiterIdle); n > 0 {
					s.logger.Debug("rate limiter sweep", logging.Int("removed", n))
				}
			}
		}
	})

	return g.Wait()
}
