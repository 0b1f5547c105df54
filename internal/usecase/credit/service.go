// Package credit implements credit accounting on top of the ledger repository.
package credit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-recovery/internal/domain/entities"
	"github.com/johnquangdev/meeting-recovery/internal/domain/repositories"
	"github.com/johnquangdev/meeting-recovery/internal/infrastructure/metrics"
	"github.com/johnquangdev/meeting-recovery/pkg/config"
)

// ReasonAnalysis tags charges taken for an analysis request
const ReasonAnalysis = "analysis"

const (
	analysisCost   = 1
	reconcileBatch = 100
	maxMintBatch   = 1000
)

// RedeemResult is the outcome of a successful license key redemption
type RedeemResult struct {
	Key          string
	CreditsAdded int
	Balance      int
}

// Service is the credit ledger
type Service struct {
	repo   repositories.LedgerRepository
	cfg    *config.CreditsConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewService constructs a new credit service
func NewService(repo repositories.LedgerRepository, cfg *config.CreditsConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repo,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// TryCharge takes one credit for reason. It fails with ErrInsufficientCredits
// when the balance is zero and never drives the balance negative.
func (s *Service) TryCharge(ctx context.Context, userID uuid.UUID, reason string) (*entities.CreditCharge, error) {
	charge := entities.NewCreditCharge(userID, analysisCost, reason)
	if _, err := s.repo.Charge(ctx, charge); err != nil {
		metrics.RecordCredit(metrics.OpCharge, outcome(err))
		return nil, err
	}
	metrics.RecordCredit(metrics.OpCharge, "ok")
	return charge, nil
}

// Settle finalizes a charge after the work it paid for succeeded
func (s *Service) Settle(ctx context.Context, charge *entities.CreditCharge) error {
	if err := s.repo.Settle(ctx, charge.ID); err != nil {
		metrics.RecordCredit(metrics.OpSettle, outcome(err))
		s.logger.Warn("failed to settle credit charge",
			zap.String("user_id", charge.UserID.String()),
			zap.String("charge_id", charge.ID.String()),
			zap.Error(err),
		)
		return err
	}
	metrics.RecordCredit(metrics.OpSettle, "ok")
	return nil
}

// Refund returns the charged credit. A failure is logged at error level with
// enough context to repair the balance by hand; callers do not surface it.
func (s *Service) Refund(ctx context.Context, charge *entities.CreditCharge) error {
	balance, err := s.repo.Refund(ctx, charge.ID)
	if err != nil {
		metrics.RecordCredit(metrics.OpRefund, outcome(err))
		s.logger.Error("failed to refund credit charge",
			zap.String("user_id", charge.UserID.String()),
			zap.String("charge_id", charge.ID.String()),
			zap.Int("amount", charge.Amount),
			zap.Error(err),
		)
		return err
	}
	metrics.RecordCredit(metrics.OpRefund, "ok")
	s.logger.Info("credit refunded",
		zap.String("user_id", charge.UserID.String()),
		zap.String("charge_id", charge.ID.String()),
		zap.Int("balance", balance),
	)
	return nil
}

// Redeem validates rawKey and grants its credits to userID exactly once
func (s *Service) Redeem(ctx context.Context, userID uuid.UUID, rawKey string) (*RedeemResult, error) {
	key := entities.NormalizeLicenseKey(rawKey)
	if !entities.ValidLicenseKeyFormat(key) {
		metrics.RecordCredit(metrics.OpRedeem, outcome(entities.ErrInvalidLicenseKey))
		return nil, entities.ErrInvalidLicenseKey
	}

	license, balance, err := s.repo.RedeemLicenseKey(ctx, key, userID)
	if err != nil {
		metrics.RecordCredit(metrics.OpRedeem, outcome(err))
		return nil, err
	}
	metrics.RecordCredit(metrics.OpRedeem, "ok")
	s.logger.Info("license key redeemed",
		zap.String("user_id", userID.String()),
		zap.String("license_key_id", license.ID.String()),
		zap.Int("credits", license.Credits),
	)
	return &RedeemResult{Key: license.Key, CreditsAdded: license.Credits, Balance: balance}, nil
}

// ReconcileStale refunds pending charges older than olderThan. Such charges
// belong to requests whose process died between charge and settle/refund.
func (s *Service) ReconcileStale(ctx context.Context, olderThan time.Duration) (int, error) {
	if olderThan <= 0 {
		olderThan = s.cfg.StaleChargeAge
	}
	cutoff := s.now().UTC().Add(-olderThan)

	refunded := 0
	for {
		charges, err := s.repo.FindStaleCharges(ctx, cutoff, reconcileBatch)
		if err != nil {
			return refunded, fmt.Errorf("list stale charges: %w", err)
		}

		progressed := false
		for _, c := range charges {
			if err := s.Refund(ctx, c); err != nil {
				// settled by its request since the listing
				if errors.Is(err, entities.ErrChargeFinalized) {
					progressed = true
				}
				continue
			}
			progressed = true
			refunded++
		}

		if len(charges) < reconcileBatch || !progressed {
			break
		}
	}

	metrics.RecordCredit(metrics.OpReconcile, "ok")
	if refunded > 0 {
		s.logger.Warn("refunded stale credit charges", zap.Int("count", refunded), zap.Time("cutoff", cutoff))
	}
	return refunded, nil
}

// GenerateLicenseKeys mints n keys worth credits each (the configured default when zero)
func (s *Service) GenerateLicenseKeys(ctx context.Context, n, credits int) ([]*entities.LicenseKey, error) {
	if n <= 0 || n > maxMintBatch {
		return nil, fmt.Errorf("key count must be between 1 and %d", maxMintBatch)
	}
	if credits <= 0 {
		credits = s.cfg.LicenseKey
	}

	keys := make([]*entities.LicenseKey, 0, n)
	for i := 0; i < n; i++ {
		keys = append(keys, entities.NewLicenseKey(credits))
	}
	if err := s.repo.CreateLicenseKeys(ctx, keys); err != nil {
		return nil, err
	}
	return keys, nil
}

// Balance returns the user's current balance
func (s *Service) Balance(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.Balance(ctx, userID)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, entities.ErrInsufficientCredits):
		return "insufficient"
	case errors.Is(err, entities.ErrUserNotFound):
		return "user_not_found"
	case errors.Is(err, entities.ErrChargeFinalized):
		return "finalized"
	case errors.Is(err, entities.ErrChargeNotFound):
		return "charge_not_found"
	case errors.Is(err, entities.ErrInvalidLicenseKey):
		return "invalid_key"
	case errors.Is(err, entities.ErrLicenseKeyNotFound):
		return "key_not_found"
	case errors.Is(err, entities.ErrLicenseKeyRedeemed):
		return "key_redeemed"
	default:
		return "failed"
	}
}
