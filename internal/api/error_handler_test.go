package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tonipcv/user-provisioner/internal/core/domain"
)

func handleError(t *testing.T, err error) (int, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec.Code, resp
}

func TestErrorHandler_EchoHTTPErrorPassesThrough(t *testing.T) {
	code, resp := handleError(t, echo.NewHTTPError(http.StatusBadRequest, "email is required"))
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if resp.Error != "email is required" {
		t.Errorf("unexpected message: %q", resp.Error)
	}
	if resp.Success {
		t.Error("success must be false in the error envelope")
	}
}

func TestErrorHandler_ProvisionInFlight(t *testing.T) {
	code, _ := handleError(t, domain.ErrProvisionInFlight)
	if code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", code)
	}
}

func TestErrorHandler_InvalidCredentials(t *testing.T) {
	code, _ := handleError(t, domain.ErrInvalidCredentials)
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestErrorHandler_LookupFailure(t *testing.T) {
	err := domain.NewProvisionError(domain.ErrorKindLookup, errors.New("identity store unreachable"))
	code, resp := handleError(t, err)
	if code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", code)
	}
	if resp.Error == "" || resp.Error == "internal server error" {
		t.Errorf("lookup failures must keep their message, got %q", resp.Error)
	}
}

func TestErrorHandler_DuplicateIdentity(t *testing.T) {
	err := domain.NewProvisionError(domain.ErrorKindIdentityCreation, domain.ErrIdentityExists)
	code, _ := handleError(t, err)
	if code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate identity, got %d", code)
	}
}

func TestErrorHandler_IdentityCreationRejected(t *testing.T) {
	err := domain.NewProvisionError(domain.ErrorKindIdentityCreation, errors.New("password too weak"))
	code, _ := handleError(t, err)
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", code)
	}
}

func TestErrorHandler_ProfileWriteFailure(t *testing.T) {
	err := domain.NewProvisionError(domain.ErrorKindProfileWrite, errors.New("write concern failed"))
	code, _ := handleError(t, err)
	if code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", code)
	}
}

func TestErrorHandler_UnknownErrorIsMasked(t *testing.T) {
	code, resp := handleError(t, errors.New("nil pointer somewhere deep"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if resp.Error != "internal server error" {
		t.Errorf("internal details must not leak, got %q", resp.Error)
	}
}
