package ports

import (
	"context"
	"time"

	"github.com/tonipcv/user-provisioner/internal/core/domain"
)

// ProvisionInput is the desired end state for one user. Optional pointer
// fields are nil when the caller left them unset; entry points apply their
// own default policy before handing the input to the service.
type ProvisionInput struct {
	Name           string
	Email          string
	Premium        bool
	ExpirationDate *time.Time
	PhoneNumber    *string
	PhoneLocalCode *string
	ExternalID     *string
}

// ProvisionOutcome is returned after a successful reconciliation.
type ProvisionOutcome struct {
	Action  domain.Action
	Profile domain.Profile
}

// ProvisioningService reconciles identity and profile state for one user.
type ProvisioningService interface {
	// Provision ensures exactly one identity and one profile exist for
	// input.Email, with profile fields matching the input. Failures carry a
	// *domain.ProvisionError classifying the failed step.
	Provision(ctx context.Context, input ProvisionInput) (*ProvisionOutcome, error)
}

// BatchItemResult is the per-item outcome of a batch run. Exactly one of
// Outcome and Err is set.
type BatchItemResult struct {
	Email   string
	Outcome *ProvisionOutcome
	Err     error
}

// Succeeded reports whether this item completed without error.
func (r BatchItemResult) Succeeded() bool { return r.Err == nil }

// ProvisionLocker guards against concurrent provisioning attempts for the
// same email across processes. The lock is advisory: a backend failure must
// not block reconciliation.
type ProvisionLocker interface {
	// Acquire takes the lock for email. Returns false when another attempt
	// already holds it.
	Acquire(ctx context.Context, email string) (bool, error)
	Release(ctx context.Context, email string) error
}
