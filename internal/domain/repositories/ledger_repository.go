package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-recovery/internal/domain/entities"
)

// LedgerRepository owns every mutation of a user's credit balance.
// Each method runs in a single transaction.
type LedgerRepository interface {
	// Charge decrements the balance by charge.Amount only if the balance covers it,
	// and records the pending charge. Returns the balance after the decrement.
	Charge(ctx context.Context, charge *entities.CreditCharge) (int, error)

	// Settle marks a pending charge as settled
	Settle(ctx context.Context, chargeID uuid.UUID) error

	// Refund marks a pending charge as refunded and restores its amount.
	// Returns ErrChargeFinalized when the charge is no longer pending.
	Refund(ctx context.Context, chargeID uuid.UUID) (int, error)

	// FindStaleCharges lists pending charges created before cutoff
	FindStaleCharges(ctx context.Context, cutoff time.Time, limit int) ([]*entities.CreditCharge, error)

	// RedeemLicenseKey marks the key redeemed by userID and grants its credits
	RedeemLicenseKey(ctx context.Context, key string, userID uuid.UUID) (*entities.LicenseKey, int, error)

	// CreateLicenseKeys inserts freshly minted keys
	CreateLicenseKeys(ctx context.Context, keys []*entities.LicenseKey) error

	// Balance returns the current credit balance
	Balance(ctx context.Context, userID uuid.UUID) (int, error)
}
