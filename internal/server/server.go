// Package server serves the Beams tester page, its service worker and the
// JSON endpoints the page reads.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/ariel-frischer/beamscheck/internal/osinfo"
	"github.com/ariel-frischer/beamscheck/internal/subscribe"
)

// DefaultSDKURL is the Beams web SDK loaded by the page
const DefaultSDKURL = "https://js.pusher.com/beams/2.1.0/push-notifications-cdn.js"

// IconPath serves the page icon, also used as the test notification icon
const IconPath = "/icon.png"

const (
	shutdownTimeout = 5 * time.Second
	pushBodyLimit   = "64K"
)

//go:embed assets/index.html.tmpl assets/app.js assets/service-worker.js assets/icon.png
var assets embed.FS

// Config holds what the page needs to run the subscription workflow
type Config struct {
	InstanceID string
	Interest   string
	WorkerPath string
	SDKURL     string
}

func (c Config) withDefaults() Config {
	if c.Interest == "" {
		c.Interest = subscribe.DefaultInterest
	}
	if c.WorkerPath == "" {
		c.WorkerPath = subscribe.DefaultWorkerPath
	}
	if c.SDKURL == "" {
		c.SDKURL = DefaultSDKURL
	}
	return c
}

// Server is the echo HTTP server for the tester
type Server struct {
	echo   *echo.Echo
	cfg    Config
	os     osinfo.Source
	logger zerolog.Logger
	page   *template.Template
	app    []byte
	worker []byte
	icon   []byte
}

// New builds the server and registers all routes
func New(cfg Config, source osinfo.Source, logger zerolog.Logger) (*Server, error) {
	page, err := template.ParseFS(assets, "assets/index.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	app, err := assets.ReadFile("assets/app.js")
	if err != nil {
		return nil, fmt.Errorf("read page script: %w", err)
	}
	worker, err := assets.ReadFile("assets/service-worker.js")
	if err != nil {
		return nil, fmt.Errorf("read service worker: %w", err)
	}
	icon, err := assets.ReadFile("assets/icon.png")
	if err != nil {
		return nil, fmt.Errorf("read icon: %w", err)
	}

	s := &Server{
		echo:   echo.New(),
		cfg:    cfg.withDefaults(),
		os:     source,
		logger: logger.With().Str("component", "server").Logger(),
		page:   page,
		app:    app,
		worker: worker,
		icon:   icon,
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true

	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			ev := s.logger.Info()
			if v.Error != nil {
				ev = s.logger.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	}))

	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.echo.GET("/", s.handleIndex)
	s.echo.GET("/app.js", s.handleAppScript)
	s.echo.GET(IconPath, s.handleIcon)
	s.echo.GET(s.cfg.WorkerPath, s.handleServiceWorker)
	s.echo.GET("/api/os", s.handleOS)
	s.echo.GET("/api/environment", s.handleEnvironment)
	s.echo.GET("/healthz", s.handleHealth)
	s.echo.POST("/push/:id", s.handlePush, middleware.BodyLimit(pushBodyLimit))
}

// Handler returns the server as an http.Handler
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Addr returns the listening address, or nil before Run has bound it
func (s *Server) Addr() net.Addr {
	return s.echo.ListenerAddr()
}

// Run serves on addr until ctx is canceled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.echo.Start(addr)
	}()

	s.logger.Info().Str("addr", addr).Msg("server starting")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info().Msg("server stopped")
	return nil
}
