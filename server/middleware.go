package server

import (
	"mime"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/existflow/flowboard/internal/logger"
)

// requestLogger logs every request/response pair.
func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		req := c.Request()

		logger.Info("request",
			logger.F("method", req.Method),
			logger.F("uri", req.RequestURI),
			logger.F("remote", req.RemoteAddr))

		err := next(c)

		res := c.Response()
		logger.Info("response",
			logger.F("method", req.Method),
			logger.F("uri", req.RequestURI),
			logger.F("status", res.Status),
			logger.F("duration", time.Since(start).String()))

		return err
	}
}

const preflightMaxAge = "86400"

// cors echoes the configured allowed origin on every response and answers
// preflight requests with an empty 200.
func (s *Server) cors(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		h := c.Response().Header()
		h.Set("Access-Control-Allow-Origin", s.cfg.FrontendURL)
		h.Set("Access-Control-Expose-Headers", echo.HeaderContentType)

		if c.Request().Method == http.MethodOptions {
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Accept, Authorization")
			h.Set("Access-Control-Max-Age", preflightMaxAge)
			return c.NoContent(http.StatusOK)
		}
		return next(c)
	}
}

// requireJSON rejects POST bodies that are not application/json.
func requireJSON(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ct := c.Request().Header.Get(echo.HeaderContentType)
		if mt, _, err := mime.ParseMediaType(ct); err != nil || mt != echo.MIMEApplicationJSON {
			logger.Warn("invalid content type",
				logger.F("contentType", ct),
				logger.F("path", c.Request().URL.Path))
			return writeError(c, http.StatusBadRequest,
				"Content-Type must be application/json", codeInvalidContentType)
		}
		return next(c)
	}
}
