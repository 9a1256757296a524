// Package server implements the flowboard HTTP API: AI chat completion,
// user profiles, and project/kanban boards.
package server

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/existflow/flowboard/internal/ai"
	"github.com/existflow/flowboard/internal/config"
	"github.com/existflow/flowboard/internal/logger"
	"github.com/existflow/flowboard/internal/store"
)

// Server is the flowboard API server
type Server struct {
	cfg   *config.Config
	store store.Store
	ai    ai.Completer
	echo  *echo.Echo
}

// New creates a new server with all routes registered. The store and
// completion provider are long-lived handles constructed at startup.
func New(cfg *config.Config, st store.Store, completer ai.Completer) *Server {
	s := &Server{cfg: cfg, store: st, ai: completer}
	s.setupEcho()
	return s
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true
	e.Validator = newValidator()
	e.HTTPErrorHandler = s.errorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(s.requestLogger)
	e.Use(s.cors)

	// Health check
	e.GET("/", s.handleRoot)

	aiGroup := e.Group("/api/ai")
	aiGroup.POST("/chat", s.handleChat, requireJSON)

	fb := e.Group("/api/firebase")
	fb.POST("/users", s.handleUpsertUser, requireJSON)
	fb.GET("/users/:uid", s.handleGetUser)
	fb.POST("/users/active-project", s.handleSetActiveProject, requireJSON)
	fb.POST("/projects", s.handleCreateProject, requireJSON)
	fb.GET("/projects/:uid", s.handleListProjects)

	s.echo = e
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "API is running"})
}

// errorHandler turns routing and uncaught errors into the JSON error shape
// the frontend expects.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	he, ok := err.(*echo.HTTPError)
	if !ok {
		logger.Error("unhandled error",
			logger.F("method", c.Request().Method),
			logger.F("path", c.Request().URL.Path),
			logger.F("error", err))
		_ = writeError(c, http.StatusInternalServerError, "Internal server error", codeInternal)
		return
	}

	switch he.Code {
	case http.StatusNotFound:
		logger.Warn("not found", logger.F("path", c.Request().URL.Path))
		_ = writeError(c, http.StatusNotFound, "Resource not found", codeNotFound)
	case http.StatusMethodNotAllowed:
		logger.Warn("method not allowed",
			logger.F("method", c.Request().Method),
			logger.F("path", c.Request().URL.Path))
		_ = writeError(c, http.StatusMethodNotAllowed, "Method not allowed", codeMethodNotAllowed)
	default:
		logger.Error("http error",
			logger.F("status", he.Code),
			logger.F("path", c.Request().URL.Path),
			logger.F("error", err))
		_ = writeError(c, he.Code, "Internal server error", codeInternal)
	}
}
