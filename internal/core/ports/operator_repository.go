package ports

import (
	"context"

	"github.com/tonipcv/user-provisioner/internal/core/domain"
)

// OperatorRepository defines persistence operations for operator accounts.
type OperatorRepository interface {
	Create(ctx context.Context, op *domain.Operator) (*domain.Operator, error)
	FindByUsername(ctx context.Context, username string) (*domain.Operator, error)
}
