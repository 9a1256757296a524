package server

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/existflow/flowboard/internal/logger"
)

// fieldDetail is one entry in a VALIDATION_ERROR details list.
type fieldDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type requestValidator struct {
	validate *validator.Validate
}

func newValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields under their wire names, not the Go names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &requestValidator{validate: v}
}

// Validate implements echo.Validator.
func (v *requestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

// bindAndValidate decodes the JSON body into req and checks its constraints.
// On failure it writes the VALIDATION_ERROR response and reports false; the
// handler should return nil.
func (s *Server) bindAndValidate(c echo.Context, req any) bool {
	if err := c.Bind(req); err != nil {
		logger.Warn("invalid request body",
			logger.F("path", c.Request().URL.Path),
			logger.F("error", err))
		_ = c.JSON(http.StatusBadRequest, errorBody{
			Error:   "Invalid request data",
			Code:    codeValidation,
			Details: []fieldDetail{{Field: "body", Message: "malformed JSON body"}},
		})
		return false
	}

	if err := c.Validate(req); err != nil {
		logger.Warn("validation failed",
			logger.F("path", c.Request().URL.Path),
			logger.F("error", err))
		_ = c.JSON(http.StatusBadRequest, errorBody{
			Error:   "Invalid request data",
			Code:    codeValidation,
			Details: validationDetails(err),
		})
		return false
	}
	return true
}

// validationDetails converts validator errors into per-field details,
// one entry per violating field.
func validationDetails(err error) []fieldDetail {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []fieldDetail{{Field: "body", Message: err.Error()}}
	}

	details := make([]fieldDetail, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, fieldDetail{
			Field:   fe.Field(),
			Message: validationMessage(fe),
		})
	}
	return details
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "min":
		return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q constraint", fe.Tag())
	}
}
