package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-recovery/internal/domain/entities"
)

// LedgerRepository implements credit accounting on GORM. Balance changes are
// conditional updates checked through RowsAffected, never read-modify-write.
type LedgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Charge decrements the balance and records the pending charge
func (r *LedgerRepository) Charge(ctx context.Context, charge *entities.CreditCharge) (int, error) {
	if charge == nil || charge.Amount <= 0 {
		return 0, errors.New("charge amount must be positive")
	}

	var balance int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entities.User{}).
			Where("id = ? AND credits >= ?", charge.UserID, charge.Amount).
			Update("credits", gorm.Expr("credits - ?", charge.Amount))
		if res.Error != nil {
			return fmt.Errorf("failed to decrement credits: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			exists, err := userExists(tx, charge.UserID)
			if err != nil {
				return err
			}
			if !exists {
				return entities.ErrUserNotFound
			}
			return entities.ErrInsufficientCredits
		}

		charge.Status = entities.ChargeStatusPending
		if err := tx.Create(charge).Error; err != nil {
			return fmt.Errorf("failed to record charge: %w", err)
		}

		b, err := balanceOf(tx, charge.UserID)
		if err != nil {
			return err
		}
		balance = b
		return nil
	})
	if err != nil {
		return 0, err
	}
	charge.BalanceAfter = balance
	return balance, nil
}

// Settle marks a pending charge as settled
func (r *LedgerRepository) Settle(ctx context.Context, chargeID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entities.CreditCharge{}).
			Where("id = ? AND status = ?", chargeID, entities.ChargeStatusPending).
			Update("status", entities.ChargeStatusSettled)
		if res.Error != nil {
			return fmt.Errorf("failed to settle charge: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return missingOrFinalized(tx, chargeID)
		}
		return nil
	})
}

// Refund restores a pending charge. The status flip and the credit grant share
// one transaction so a charge can be refunded at most once.
func (r *LedgerRepository) Refund(ctx context.Context, chargeID uuid.UUID) (int, error) {
	var balance int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var charge entities.CreditCharge
		if err := tx.Where("id = ?", chargeID).First(&charge).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return entities.ErrChargeNotFound
			}
			return fmt.Errorf("failed to load charge: %w", err)
		}

		res := tx.Model(&entities.CreditCharge{}).
			Where("id = ? AND status = ?", chargeID, entities.ChargeStatusPending).
			Update("status", entities.ChargeStatusRefunded)
		if res.Error != nil {
			return fmt.Errorf("failed to mark charge refunded: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return entities.ErrChargeFinalized
		}

		res = tx.Model(&entities.User{}).
			Where("id = ?", charge.UserID).
			Update("credits", gorm.Expr("credits + ?", charge.Amount))
		if res.Error != nil {
			return fmt.Errorf("failed to restore credits: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return entities.ErrUserNotFound
		}

		b, err := balanceOf(tx, charge.UserID)
		if err != nil {
			return err
		}
		balance = b
		return nil
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// FindStaleCharges lists pending charges created before cutoff, oldest first
func (r *LedgerRepository) FindStaleCharges(ctx context.Context, cutoff time.Time, limit int) ([]*entities.CreditCharge, error) {
	var charges []*entities.CreditCharge
	q := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", entities.ChargeStatusPending, cutoff).
		Order("created_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&charges).Error; err != nil {
		return nil, fmt.Errorf("failed to list stale charges: %w", err)
	}
	return charges, nil
}

// RedeemLicenseKey marks the key redeemed and grants its credits atomically
func (r *LedgerRepository) RedeemLicenseKey(ctx context.Context, key string, userID uuid.UUID) (*entities.LicenseKey, int, error) {
	var (
		license entities.LicenseKey
		balance int
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("license_key = ?", key).First(&license).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return entities.ErrLicenseKeyNotFound
			}
			return fmt.Errorf("failed to load license key: %w", err)
		}
		if license.IsRedeemed {
			return entities.ErrLicenseKeyRedeemed
		}

		now := time.Now().UTC()
		res := tx.Model(&entities.LicenseKey{}).
			Where("id = ? AND is_redeemed = ?", license.ID, false).
			Updates(map[string]interface{}{
				"is_redeemed": true,
				"redeemed_by": userID,
				"redeemed_at": now,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to mark license key redeemed: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return entities.ErrLicenseKeyRedeemed
		}

		res = tx.Model(&entities.User{}).
			Where("id = ?", userID).
			Update("credits", gorm.Expr("credits + ?", license.Credits))
		if res.Error != nil {
			return fmt.Errorf("failed to grant credits: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return entities.ErrUserNotFound
		}

		b, err := balanceOf(tx, userID)
		if err != nil {
			return err
		}
		balance = b
		license.IsRedeemed = true
		license.RedeemedBy = &userID
		license.RedeemedAt = &now
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return &license, balance, nil
}

// CreateLicenseKeys inserts keys in one batch
func (r *LedgerRepository) CreateLicenseKeys(ctx context.Context, keys []*entities.LicenseKey) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&keys).Error; err != nil {
		return fmt.Errorf("failed to create license keys: %w", err)
	}
	return nil
}

// Balance returns the current balance
func (r *LedgerRepository) Balance(ctx context.Context, userID uuid.UUID) (int, error) {
	return balanceOf(r.db.WithContext(ctx), userID)
}

func balanceOf(tx *gorm.DB, userID uuid.UUID) (int, error) {
	var user entities.User
	if err := tx.Select("credits").Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, entities.ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to read balance: %w", err)
	}
	return user.Credits, nil
}

func userExists(tx *gorm.DB, userID uuid.UUID) (bool, error) {
	var n int64
	if err := tx.Model(&entities.User{}).Where("id = ?", userID).Count(&n).Error; err != nil {
		return false, fmt.Errorf("failed to check user: %w", err)
	}
	return n > 0, nil
}

func missingOrFinalized(tx *gorm.DB, chargeID uuid.UUID) error {
	var n int64
	if err := tx.Model(&entities.CreditCharge{}).Where("id = ?", chargeID).Count(&n).Error; err != nil {
		return fmt.Errorf("failed to check charge: %w", err)
	}
	if n == 0 {
		return entities.ErrChargeNotFound
	}
	return entities.ErrChargeFinalized
}
