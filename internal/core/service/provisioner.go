package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tonipcv/user-provisioner/internal/core/domain"
	"github.com/tonipcv/user-provisioner/internal/core/ports"
)

const (
	defaultVisibilityInterval = 250 * time.Millisecond
	defaultVisibilityTimeout  = 5 * time.Second
)

// ProvisioningConfig tunes the reconciliation policy knobs.
type ProvisioningConfig struct {
	// PageSize used when enumerating the identity store.
	PageSize int
	// VisibilityInterval is the pause between readiness probes after an
	// identity is created.
	VisibilityInterval time.Duration
	// VisibilityTimeout bounds how long a created identity may take to
	// become queryable before the attempt fails.
	VisibilityTimeout time.Duration
}

// ProvisioningService brings identity and profile state into agreement with
// a ProvisionInput, idempotently: at most one identity and one profile exist
// per email after a successful call, and repeated calls converge on the
// requested state.
//
// The identity create and the profile write are independent operations with
// no transaction spanning both. A failure between them leaves the identity
// without a profile; that state is reported, not rolled back, and the next
// call for the same email heals it by inserting the missing profile.
type ProvisioningService struct {
	resolver   *IdentityResolver
	identities ports.IdentityStore
	profiles   ports.ProfileStore
	lock       ports.ProvisionLocker
	cfg        ProvisioningConfig
	log        zerolog.Logger
}

// NewProvisioningService wires a reconciler over the two stores. lock may be
// nil to disable cross-process serialization per email.
func NewProvisioningService(
	identities ports.IdentityStore,
	profiles ports.ProfileStore,
	lock ports.ProvisionLocker,
	cfg ProvisioningConfig,
	log zerolog.Logger,
) *ProvisioningService {
	if cfg.VisibilityInterval <= 0 {
		cfg.VisibilityInterval = defaultVisibilityInterval
	}
	if cfg.VisibilityTimeout <= 0 {
		cfg.VisibilityTimeout = defaultVisibilityTimeout
	}
	return &ProvisioningService{
		resolver:   NewIdentityResolver(identities, cfg.PageSize, log),
		identities: identities,
		profiles:   profiles,
		lock:       lock,
		cfg:        cfg,
		log:        log,
	}
}

// Provision reconciles one user. Failures carry a *domain.ProvisionError
// classifying the step that failed.
func (s *ProvisioningService) Provision(ctx context.Context, in ports.ProvisionInput) (*ports.ProvisionOutcome, error) {
	if s.lock != nil {
		ok, err := s.lock.Acquire(ctx, in.Email)
		switch {
		case err != nil:
			// The lock is advisory; a broken lock backend must not stop
			// provisioning.
			s.log.Warn().Err(err).Str("email", in.Email).Msg("provision lock unavailable, continuing unlocked")
		case !ok:
			return nil, domain.ErrProvisionInFlight
		default:
			defer func() {
				if err := s.lock.Release(context.WithoutCancel(ctx), in.Email); err != nil {
					s.log.Warn().Err(err).Str("email", in.Email).Msg("failed to release provision lock")
				}
			}()
		}
	}

	identity, err := s.resolver.Resolve(ctx, in.Email)
	if err != nil {
		return nil, domain.NewProvisionError(domain.ErrorKindLookup, err)
	}

	if identity == nil {
		identity, err = s.identities.Create(ctx, ports.CreateIdentityInput{
			Email:      in.Email,
			Credential: uuid.NewString(),
			Name:       in.Name,
		})
		if err != nil {
			return nil, domain.NewProvisionError(domain.ErrorKindIdentityCreation, fmt.Errorf("create identity: %w", err))
		}
		s.log.Info().Str("identity_id", identity.ID).Str("email", in.Email).Msg("identity created")

		if err := s.awaitVisible(ctx, identity.ID); err != nil {
			// The identity exists but is not queryable yet; surface the
			// failure and let a retry pick it up once the store catches up.
			return nil, domain.NewProvisionError(domain.ErrorKindIdentityCreation, err)
		}
	}

	existing, err := s.profiles.FindByID(ctx, identity.ID)
	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, domain.NewProvisionError(domain.ErrorKindProfileWrite, fmt.Errorf("find profile: %w", err))
	}

	now := time.Now().UTC()
	desired := profileFromInput(identity.ID, in, now)

	if existing == nil {
		desired.CreatedAt = now
		stored, err := s.profiles.Insert(ctx, desired)
		if err != nil {
			return nil, domain.NewProvisionError(domain.ErrorKindProfileWrite, fmt.Errorf("insert profile: %w", err))
		}
		s.log.Info().Str("identity_id", identity.ID).Str("email", in.Email).Msg("profile created")
		return &ports.ProvisionOutcome{Action: domain.ActionCreated, Profile: *stored}, nil
	}

	// Full overwrite of all mutable fields. Last write wins; CreatedAt is
	// preserved from the stored record.
	desired.CreatedAt = existing.CreatedAt
	stored, err := s.profiles.Update(ctx, identity.ID, desired)
	if err != nil {
		return nil, domain.NewProvisionError(domain.ErrorKindProfileWrite, fmt.Errorf("update profile: %w", err))
	}
	s.log.Info().Str("identity_id", identity.ID).Str("email", in.Email).Msg("profile updated")
	return &ports.ProvisionOutcome{Action: domain.ActionUpdated, Profile: *stored}, nil
}

// awaitVisible polls the identity store until the created identity is
// queryable. Creation may provision the account asynchronously relative to
// dependent reads, and the profile write must not run before the identity is
// durably visible.
func (s *ProvisioningService) awaitVisible(ctx context.Context, id string) error {
	deadline := time.Now().Add(s.cfg.VisibilityTimeout)
	for {
		if _, err := s.identities.Get(ctx, id); err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%w after %s", domain.ErrIdentityNotVisible, s.cfg.VisibilityTimeout)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.cfg.VisibilityInterval):
		}
	}
}

// profileFromInput maps the desired state onto a profile record. The
// expiration date only survives for premium profiles.
func profileFromInput(id string, in ports.ProvisionInput, now time.Time) *domain.Profile {
	var expiration *time.Time
	if in.Premium {
		expiration = in.ExpirationDate
	}
	return &domain.Profile{
		ID:             id,
		Name:           in.Name,
		Email:          in.Email,
		IsPremium:      in.Premium,
		ExpirationDate: expiration,
		PhoneNumber:    in.PhoneNumber,
		PhoneLocalCode: in.PhoneLocalCode,
		ExternalID:     in.ExternalID,
		UpdatedAt:      now,
	}
}
