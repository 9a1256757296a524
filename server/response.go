package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/existflow/flowboard/internal/logger"
)

// Error codes surfaced to the frontend.
const (
	codeInvalidContentType = "INVALID_CONTENT_TYPE"
	codeValidation         = "VALIDATION_ERROR"
	codeNotFound           = "NOT_FOUND"
	codeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	codeStore              = "FIREBASE_ERROR"
	codeProvider           = "OPENAI_ERROR"
	codeInternal           = "INTERNAL_ERROR"
)

// errorBody is the wire shape for all error responses.
type errorBody struct {
	Error   string        `json:"error"`
	Code    string        `json:"code"`
	Details []fieldDetail `json:"details,omitempty"`
}

func writeError(c echo.Context, status int, msg, code string) error {
	return c.JSON(status, errorBody{Error: msg, Code: code})
}

// storeError logs the document-store failure in full and returns a generic
// response; upstream detail never reaches the client.
func (s *Server) storeError(c echo.Context, msg string, err error) error {
	logger.Error(msg,
		logger.F("path", c.Request().URL.Path),
		logger.F("error", err))
	return writeError(c, http.StatusInternalServerError, "Firebase service error", codeStore)
}
