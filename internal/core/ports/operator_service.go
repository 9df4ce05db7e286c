package ports

import (
	"context"

	"github.com/tonipcv/user-provisioner/internal/core/domain"
)

// OperatorService manages the service-local accounts that authenticate
// against the provisioning API.
type OperatorService interface {
	Register(ctx context.Context, username, password, role string) (*domain.Operator, error)
	Login(ctx context.Context, username, password string) (string, *domain.Operator, error)
}
