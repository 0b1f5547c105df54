package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChargeStatus is the lifecycle state of a credit charge
type ChargeStatus string

const (
	ChargeStatusPending  ChargeStatus = "pending"
	ChargeStatusSettled  ChargeStatus = "settled"
	ChargeStatusRefunded ChargeStatus = "refunded"
)

// CreditCharge is the durable record of a pre-charge. It is written in the same
// transaction as the balance decrement, so a pending row left after a crash
// identifies exactly which credits still need refunding.
type CreditCharge struct {
	ID        uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID    `json:"userId" gorm:"type:uuid;not null;index"`
	Amount    int          `json:"amount" gorm:"not null"`
	Reason    string       `json:"reason" gorm:"type:varchar(50);not null"`
	Status    ChargeStatus `json:"status" gorm:"type:varchar(20);not null;index"`
	CreatedAt time.Time    `json:"createdAt" gorm:"autoCreateTime;index"`
	UpdatedAt time.Time    `json:"updatedAt" gorm:"autoUpdateTime"`

	// BalanceAfter is the user's balance right after this charge was applied
	BalanceAfter int `json:"-" gorm:"-"`
}

// NewCreditCharge creates a pending charge
func NewCreditCharge(userID uuid.UUID, amount int, reason string) *CreditCharge {
	return &CreditCharge{
		ID:     uuid.New(),
		UserID: userID,
		Amount: amount,
		Reason: reason,
		Status: ChargeStatusPending,
	}
}

// BeforeCreate assigns an ID when the caller did not
func (c *CreditCharge) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// IsPending reports whether the charge still awaits settle or refund
func (c *CreditCharge) IsPending() bool {
	return c.Status == ChargeStatusPending
}
