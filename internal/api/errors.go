package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/existflow/ironboard/internal/board"
	"github.com/existflow/ironboard/internal/db"
	"github.com/existflow/ironboard/internal/logger"
	"github.com/existflow/ironboard/internal/transfer"
)

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he.Code
	case errors.Is(err, transfer.ErrInvalidImportFormat),
		errors.Is(err, board.ErrEmptyTitle),
		errors.Is(err, board.ErrEmptyName),
		errors.Is(err, board.ErrEmptyComment),
		errors.Is(err, board.ErrInvalidStatus),
		errors.Is(err, board.ErrAmbiguousID):
		return http.StatusBadRequest
	case errors.Is(err, board.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, board.ErrLastProject):
		return http.StatusConflict
	case errors.Is(err, db.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := statusFor(err)
	msg := err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("Request failed",
			logger.F("uri", c.Request().RequestURI),
			logger.F("status", code),
			logger.F("error", err))
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, map[string]string{"error": msg})
	}
	if err != nil {
		logger.Error("Failed to write error response", logger.F("error", err))
	}
}
