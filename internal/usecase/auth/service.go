// Package auth resolves bearer tokens to provisioned users.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-recovery/internal/domain/repositories"
	"github.com/johnquangdev/meeting-recovery/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-recovery/pkg/jwt"
)

const (
	subjectCacheTTL   = 5 * time.Minute
	subjectCacheSweep = 10 * time.Minute
)

// Verifier checks a token and returns the identity it asserts
type Verifier interface {
	Verify(token string) (*jwt.Identity, error)
}

// Service maps verified identities to local user ids
type Service struct {
	verifier       Verifier
	users          repositories.UserRepository
	subjects       *cache.MemoryStore[uuid.UUID]
	initialCredits int
	logger         *zap.Logger
}

// NewService constructs a new auth service. New users start with initialCredits.
func NewService(verifier Verifier, users repositories.UserRepository, initialCredits int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		verifier:       verifier,
		users:          users,
		subjects:       cache.NewMemoryStore[uuid.UUID](subjectCacheSweep),
		initialCredits: initialCredits,
		logger:         logger,
	}
}

// Authenticate verifies token and returns the caller's user id, provisioning
// the user the first time its subject is seen. Token errors are returned as
// the jwt package sentinels.
func (s *Service) Authenticate(ctx context.Context, token string) (uuid.UUID, error) {
	identity, err := s.verifier.Verify(token)
	if err != nil {
		return uuid.Nil, err
	}

	if id, ok := s.subjects.Get(identity.Subject); ok {
		return id, nil
	}

	user, err := s.users.EnsureByExternalID(ctx, identity.Subject, identity.Email, identity.Name, s.initialCredits)
	if err != nil {
		return uuid.Nil, fmt.Errorf("provision user: %w", err)
	}
	s.subjects.Set(identity.Subject, user.ID, subjectCacheTTL)

	s.logger.Debug("user resolved",
		zap.String("user_id", user.ID.String()),
		zap.String("subject", identity.Subject),
	)
	return user.ID, nil
}

// Close releases background resources
func (s *Service) Close() {
	s.subjects.Close()
}
