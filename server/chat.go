package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/existflow/flowboard/internal/ai"
	"github.com/existflow/flowboard/internal/logger"
)

// handleChat forwards the request to the completion provider in a single
// blocking call and returns the provider's response body unmodified.
func (s *Server) handleChat(c echo.Context) error {
	var req ai.ChatRequest
	if !s.bindAndValidate(c, &req) {
		return nil
	}

	logger.Info("chat request",
		logger.F("model", req.Model),
		logger.F("messages", len(req.Messages)))

	resp, err := s.ai.Chat(c.Request().Context(), req)
	if err != nil {
		if ai.IsProviderError(err) {
			logger.Error("provider request failed", logger.F("error", err))
			return writeError(c, http.StatusInternalServerError,
				"Failed to process AI request", codeProvider)
		}
		logger.Error("chat failed", logger.F("error", err))
		return writeError(c, http.StatusInternalServerError,
			"Internal server error", codeInternal)
	}
	return c.JSON(http.StatusOK, resp)
}
