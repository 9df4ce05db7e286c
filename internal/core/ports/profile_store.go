package ports

import (
	"context"

	"github.com/tonipcv/user-provisioner/internal/core/domain"
)

// ProfileStore defines persistence operations for profiles. Profiles share
// their id with the owning identity.
type ProfileStore interface {
	// FindByID retrieves a profile by identity id. Returns
	// domain.ErrProfileNotFound when no profile exists.
	FindByID(ctx context.Context, id string) (*domain.Profile, error)

	// Insert stores a new profile and returns the stored record.
	Insert(ctx context.Context, p *domain.Profile) (*domain.Profile, error)

	// Update overwrites all mutable fields of the profile with the given id
	// and returns the updated record. CreatedAt is never touched.
	Update(ctx context.Context, id string, p *domain.Profile) (*domain.Profile, error)
}
