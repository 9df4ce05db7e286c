package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/tonipcv/user-provisioner/internal/core/domain"
	"github.com/tonipcv/user-provisioner/internal/core/ports"
)

// OperatorService implements registration and login for the service-local
// accounts that are allowed to drive provisioning over HTTP.
type OperatorService struct {
	repo      ports.OperatorRepository
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewOperatorService(repo ports.OperatorRepository, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *OperatorService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &OperatorService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

func (s *OperatorService) Register(ctx context.Context, username, password, role string) (*domain.Operator, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if role != domain.RoleAdmin && role != domain.RoleOperator {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Operator{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", username).Str("role", role).Msg("operator registered")
	return created, nil
}

func (s *OperatorService) Login(ctx context.Context, username, password string) (string, *domain.Operator, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	op, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(op)
	if err != nil {
		return "", nil, err
	}
	return token, op, nil
}

func (s *OperatorService) generateToken(op *domain.Operator) (string, error) {
	claims := jwt.MapClaims{
		"sub":      op.ID,
		"username": op.Username,
		"role":     op.Role,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
