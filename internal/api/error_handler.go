package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tonipcv/user-provisioner/internal/core/domain"
)

// errorResponse is the canonical failure envelope: success is always false
// so interactive clients can branch on a single field.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps classified provisioning failures and known domain errors to
//     deterministic HTTP status codes, with the error message verbatim.
//   - Logs unexpected errors internally without leaking details.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors.
	switch {
	case errors.Is(err, domain.ErrProvisionInFlight):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrOperatorNotFound):
		return http.StatusNotFound, "operator not found"
	case errors.Is(err, domain.ErrOperatorExists):
		return http.StatusConflict, "operator already exists"
	}

	// Classified provisioning failures: error messages go back verbatim so
	// the operator sees what the store rejected.
	var pe *domain.ProvisionError
	if errors.As(err, &pe) {
		switch pe.Kind {
		case domain.ErrorKindLookup:
			return http.StatusBadGateway, pe.Error()
		case domain.ErrorKindIdentityCreation:
			if errors.Is(pe.Err, domain.ErrIdentityExists) {
				return http.StatusConflict, pe.Error()
			}
			return http.StatusUnprocessableEntity, pe.Error()
		case domain.ErrorKindProfileWrite:
			return http.StatusBadGateway, pe.Error()
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
