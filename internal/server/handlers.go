package server

import (
	"bytes"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ariel-frischer/beamscheck/internal/capability"
	"github.com/ariel-frischer/beamscheck/internal/useragent"
)

const javascriptType = "application/javascript"

type pageData struct {
	InstanceID  string
	Interest    string
	WorkerPath  string
	SDKURL      string
	Environment useragent.Environment
	PushBlocked bool
}

// EnvironmentResponse is the body of GET /api/environment
type EnvironmentResponse struct {
	useragent.Environment
	UserAgent   string `json:"user_agent"`
	PushBlocked bool   `json:"push_blocked"`
}

func (s *Server) handleIndex(c echo.Context) error {
	ua := c.Request().UserAgent()
	data := pageData{
		InstanceID:  s.cfg.InstanceID,
		Interest:    s.cfg.Interest,
		WorkerPath:  s.cfg.WorkerPath,
		SDKURL:      s.cfg.SDKURL,
		Environment: useragent.Detect(ua),
		PushBlocked: capability.MobileRestricted(ua),
	}

	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		return err
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func (s *Server) handleAppScript(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.Blob(http.StatusOK, javascriptType, s.app)
}

func (s *Server) handleIcon(c echo.Context) error {
	return c.Blob(http.StatusOK, "image/png", s.icon)
}

// handleServiceWorker serves the worker from the site root so its scope covers the whole origin
func (s *Server) handleServiceWorker(c echo.Context) error {
	h := c.Response().Header()
	h.Set("Cache-Control", "no-cache")
	h.Set("Service-Worker-Allowed", "/")
	return c.Blob(http.StatusOK, javascriptType, s.worker)
}

func (s *Server) handleOS(c echo.Context) error {
	report, err := s.os.Collect(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

func (s *Server) handleEnvironment(c echo.Context) error {
	ua := c.QueryParam("ua")
	if ua == "" {
		ua = c.Request().UserAgent()
	}
	return c.JSON(http.StatusOK, EnvironmentResponse{
		Environment: useragent.Detect(ua),
		UserAgent:   ua,
		PushBlocked: capability.MobileRestricted(ua),
	})
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// handlePush receives pushes for CLI devices. The payload is encrypted for
// the device, so only its size is recorded.
func (s *Server) handlePush(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "unknown push endpoint")
	}

	n, err := io.Copy(io.Discard, c.Request().Body)
	if err != nil {
		return err
	}

	s.logger.Info().
		Str("endpoint", id.String()).
		Int64("bytes", n).
		Str("ttl", c.Request().Header.Get("TTL")).
		Str("encoding", c.Request().Header.Get(echo.HeaderContentEncoding)).
		Msg("push received")

	return c.NoContent(http.StatusCreated)
}
