package ports

import (
	"context"

	"github.com/tonipcv/user-provisioner/internal/core/domain"
)

// CreateIdentityInput carries everything the identity store needs to create
// a new account. Credential is a throwaway secret generated per creation; it
// is never persisted by this service and never returned to callers.
type CreateIdentityInput struct {
	Email      string
	Credential string
	Name       string
}

// IdentityStore defines the operations this service consumes from the
// external authentication store.
//
// The store exposes no lookup-by-email primitive, so List is the only way to
// locate an identity: callers page through the full contents until a page
// comes back empty.
type IdentityStore interface {
	// List returns one page of identities. An empty slice means enumeration
	// is complete. Pages are 1-based.
	List(ctx context.Context, page, perPage int) ([]domain.Identity, error)

	// Create registers a new identity. Returns domain.ErrIdentityExists when
	// the store rejects the email as already taken.
	Create(ctx context.Context, in CreateIdentityInput) (*domain.Identity, error)

	// Get fetches a single identity by id. Used to confirm a freshly created
	// identity is durably queryable before dependent writes.
	Get(ctx context.Context, id string) (*domain.Identity, error)
}
