package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrIdentityExists is returned by the identity store when it rejects a
	// creation because the email is already taken (e.g. a concurrent
	// provisioning race slipped past the resolver).
	ErrIdentityExists = errors.New("identity already exists")

	// ErrIdentityNotVisible is returned when a freshly created identity did
	// not become queryable within the visibility deadline.
	ErrIdentityNotVisible = errors.New("identity not yet visible")

	// ErrProfileNotFound is returned by the profile store when no profile
	// exists for the given identity id.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrProvisionInFlight is returned when another provisioning attempt for
	// the same email currently holds the advisory lock.
	ErrProvisionInFlight = errors.New("provisioning already in flight for this email")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrOperatorNotFound   = errors.New("operator not found")
	ErrOperatorExists     = errors.New("operator already exists")
)

// ErrorKind classifies where a provisioning attempt failed.
type ErrorKind string

const (
	ErrorKindLookup           ErrorKind = "lookup_failed"
	ErrorKindIdentityCreation ErrorKind = "identity_creation_failed"
	ErrorKindProfileWrite     ErrorKind = "profile_write_failed"
	ErrorKindUnexpected       ErrorKind = "unexpected"
)

// ProvisionError wraps a failure from one reconciliation attempt with the
// kind of operation that produced it.
type ProvisionError struct {
	Kind ErrorKind
	Err  error
}

func (e *ProvisionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *ProvisionError) Unwrap() error { return e.Err }

// NewProvisionError wraps err with the given kind.
func NewProvisionError(kind ErrorKind, err error) *ProvisionError {
	return &ProvisionError{Kind: kind, Err: err}
}

// KindOf extracts the ErrorKind from err. Errors that did not originate from
// a classified reconciliation step report ErrorKindUnexpected.
func KindOf(err error) ErrorKind {
	var pe *ProvisionError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ErrorKindUnexpected
}
