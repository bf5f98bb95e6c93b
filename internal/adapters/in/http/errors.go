package http

import (
	"errors"
	"net/http"

	"textile/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// errorStatus maps a use case error to a status code and a short kind used as metric label.
// Order matters: an InvalidTransitionError is also a state conflict.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusConflict, "invalid_transition"
	case errors.Is(err, errs.ErrInsufficientStock):
		return http.StatusConflict, "insufficient_stock"
	case errors.Is(err, errs.ErrNoActiveJob):
		return http.StatusConflict, "no_active_job"
	case errors.Is(err, errs.ErrStateConflict):
		return http.StatusConflict, "state_conflict"
	case errs.IsValidation(err):
		return http.StatusBadRequest, "validation"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func (s *Server) fail(c echo.Context, err error) error {
	status, kind := errorStatus(err)
	s.metrics.rejected(kind)

	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"route", c.Path(),
			"error", err)
		message = http.StatusText(status)
	}
	return c.JSON(status, Error{Code: status, Message: message})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

// httpErrorHandler renders errors raised outside the handlers, e.g. unknown routes or
// rejected request bodies, with the same Error body.
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status := http.StatusInternalServerError
	message := http.StatusText(status)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(status)
		}
	}
	_ = c.JSON(status, Error{Code: status, Message: message})
}
