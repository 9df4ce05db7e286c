package handler

import (
	"time"

	"github.com/tonipcv/user-provisioner/internal/core/domain"
)

// provisionRequest is the interactive enrollment payload. Only name and
// email are mandatory; every omitted optional field falls back to the entry
// point's default policy before reaching the reconciler.
type provisionRequest struct {
	Name           string     `json:"name"             validate:"required"`
	Email          string     `json:"email"            validate:"required,email"`
	IsPremium      *bool      `json:"is_premium"`
	ExpirationDate *time.Time `json:"expiration_date"`
	PhoneNumber    *string    `json:"phone_number"`
	PhoneLocalCode *string    `json:"phone_local_code"`
	ExternalID     *string    `json:"external_id"`
}

// provisionResponse is the success envelope: the action taken and the
// profile as persisted.
type provisionResponse struct {
	Success bool           `json:"success"`
	Action  string         `json:"action"`
	Data    domain.Profile `json:"data"`
}
