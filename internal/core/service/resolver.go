package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tonipcv/user-provisioner/internal/core/domain"
	"github.com/tonipcv/user-provisioner/internal/core/ports"
)

const defaultPageSize = 1000

// IdentityResolver locates an identity by email. The identity store exposes
// no lookup-by-email primitive, so Resolve enumerates the store's full
// contents page by page; a single-page shortcut would silently miss records
// once the store outgrows one page.
type IdentityResolver struct {
	store    ports.IdentityStore
	pageSize int
	log      zerolog.Logger
}

// NewIdentityResolver returns a resolver enumerating pageSize records per
// request. If pageSize <= 0, defaultPageSize is used.
func NewIdentityResolver(store ports.IdentityStore, pageSize int, log zerolog.Logger) *IdentityResolver {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &IdentityResolver{store: store, pageSize: pageSize, log: log}
}

// Resolve returns the identity whose email matches case-insensitively, or
// (nil, nil) when no such identity exists. Any page failure aborts the whole
// lookup; nothing is cached across calls.
func (r *IdentityResolver) Resolve(ctx context.Context, email string) (*domain.Identity, error) {
	var all []domain.Identity
	for page := 1; ; page++ {
		records, err := r.store.List(ctx, page, r.pageSize)
		if err != nil {
			return nil, fmt.Errorf("list identities page %d: %w", page, err)
		}
		if len(records) == 0 {
			break
		}
		all = append(all, records...)
	}

	r.log.Debug().Int("total", len(all)).Str("email", email).Msg("identity store enumerated")

	for i := range all {
		if strings.EqualFold(all[i].Email, email) {
			return &all[i], nil
		}
	}
	return nil, nil
}
