package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tonipcv/user-provisioner/internal/core/domain"
	"github.com/tonipcv/user-provisioner/internal/core/ports"
)

type stubProvisioningService struct {
	lastInput ports.ProvisionInput
	outcome   *ports.ProvisionOutcome
	err       error
}

func (s *stubProvisioningService) Provision(_ context.Context, in ports.ProvisionInput) (*ports.ProvisionOutcome, error) {
	s.lastInput = in
	if s.err != nil {
		return nil, s.err
	}
	return s.outcome, nil
}

func newProvisionContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/v1/users", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestProvisionHandler_Created(t *testing.T) {
	stub := &stubProvisioningService{outcome: &ports.ProvisionOutcome{
		Action:  domain.ActionCreated,
		Profile: domain.Profile{ID: "id_1", Name: "Ana", Email: "ana@x.com", IsPremium: true},
	}}
	h := NewProvisionHandler(stub)

	c, rec := newProvisionContext(t, `{"name":"Ana","email":"ana@x.com"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true {
		t.Error("expected success=true")
	}
	if resp["action"] != "created" {
		t.Errorf("expected action created, got %v", resp["action"])
	}
	data, _ := resp["data"].(map[string]any)
	if data["email"] != "ana@x.com" {
		t.Errorf("data.email wrong: %v", data["email"])
	}
}

func TestProvisionHandler_Updated(t *testing.T) {
	stub := &stubProvisioningService{outcome: &ports.ProvisionOutcome{
		Action:  domain.ActionUpdated,
		Profile: domain.Profile{ID: "id_1", Email: "ana@x.com"},
	}}
	h := NewProvisionHandler(stub)

	c, rec := newProvisionContext(t, `{"name":"Ana","email":"ana@x.com"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for update, got %d", rec.Code)
	}
}

func TestProvisionHandler_AppliesDefaultPolicy(t *testing.T) {
	stub := &stubProvisioningService{outcome: &ports.ProvisionOutcome{Action: domain.ActionCreated}}
	h := NewProvisionHandler(stub)

	c, _ := newProvisionContext(t, `{"name":"Ana","email":"ana@x.com"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	in := stub.lastInput
	if !in.Premium {
		t.Error("interactive default must be premium")
	}
	if in.ExpirationDate == nil {
		t.Fatal("expiration default missing")
	}
	daysOut := time.Until(*in.ExpirationDate).Hours() / 24
	if daysOut < 364 || daysOut > 366 {
		t.Errorf("expiration should be about a year out, got %.1f days", daysOut)
	}
	if in.PhoneNumber == nil || len(*in.PhoneNumber) != 9 {
		t.Errorf("phone default wrong: %v", in.PhoneNumber)
	}
	if in.PhoneLocalCode == nil || *in.PhoneLocalCode != "11" {
		t.Errorf("local code default wrong: %v", in.PhoneLocalCode)
	}
	if in.ExternalID == nil || !strings.HasPrefix(*in.ExternalID, "SEC_") {
		t.Errorf("external id default wrong: %v", in.ExternalID)
	}
}

func TestProvisionHandler_ExplicitFieldsOverrideDefaults(t *testing.T) {
	stub := &stubProvisioningService{outcome: &ports.ProvisionOutcome{Action: domain.ActionCreated}}
	h := NewProvisionHandler(stub)

	c, _ := newProvisionContext(t, `{"name":"Ana","email":"ana@x.com","is_premium":false,"phone_number":"999888777"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	in := stub.lastInput
	if in.Premium {
		t.Error("explicit is_premium=false must override the default")
	}
	if in.PhoneNumber == nil || *in.PhoneNumber != "999888777" {
		t.Errorf("explicit phone must override the default, got %v", in.PhoneNumber)
	}
}

func TestProvisionHandler_RejectsInvalidEmail(t *testing.T) {
	stub := &stubProvisioningService{}
	h := NewProvisionHandler(stub)

	c, rec := newProvisionContext(t, `{"name":"Ana","email":"not-an-email"}`)
	err := h.Create(c)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	_ = rec
}

func TestProvisionHandler_RejectsMissingName(t *testing.T) {
	h := NewProvisionHandler(&stubProvisioningService{})

	c, _ := newProvisionContext(t, `{"email":"ana@x.com"}`)
	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestProvisionHandler_PropagatesServiceError(t *testing.T) {
	cause := domain.NewProvisionError(domain.ErrorKindLookup, errors.New("identity store down"))
	h := NewProvisionHandler(&stubProvisioningService{err: cause})

	c, _ := newProvisionContext(t, `{"name":"Ana","email":"ana@x.com"}`)
	err := h.Create(c)
	if !errors.Is(err, cause) {
		t.Fatalf("service error must propagate to the central handler, got %v", err)
	}
}
