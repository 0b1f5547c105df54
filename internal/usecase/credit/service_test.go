package credit

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-recovery/internal/adapter/repository"
	"github.com/johnquangdev/meeting-recovery/internal/domain/entities"
	"github.com/johnquangdev/meeting-recovery/internal/testutil"
	"github.com/johnquangdev/meeting-recovery/pkg/config"
)

func newTestService(t *testing.T) (*Service, *repository.LedgerRepository, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	repo := repository.NewLedgerRepository(db)
	cfg := &config.CreditsConfig{LicenseKey: 10, StaleChargeAge: 10 * time.Minute}
	return NewService(repo, cfg, nil), repo, db
}

func TestTryChargeAndRefund(t *testing.T) {
	svc, _, db := newTestService(t)
	user := testutil.CreateUser(t, db, 1)
	ctx := context.Background()

	charge, err := svc.TryCharge(ctx, user.ID, ReasonAnalysis)
	if err != nil {
		t.Fatalf("TryCharge error: %v", err)
	}
	if charge.BalanceAfter != 0 {
		t.Fatalf("expected balance 0 after charge, got %d", charge.BalanceAfter)
	}

	if _, err := svc.TryCharge(ctx, user.ID, ReasonAnalysis); !errors.Is(err, entities.ErrInsufficientCredits) {
		t.Fatalf("expected ErrInsufficientCredits, got %v", err)
	}

	if err := svc.Refund(ctx, charge); err != nil {
		t.Fatalf("Refund error: %v", err)
	}
	if err := svc.Refund(ctx, charge); !errors.Is(err, entities.ErrChargeFinalized) {
		t.Fatalf("expected ErrChargeFinalized, got %v", err)
	}
	if b, _ := svc.Balance(ctx, user.ID); b != 1 {
		t.Fatalf("expected balance 1, got %d", b)
	}
}

func TestRedeem(t *testing.T) {
	svc, _, db := newTestService(t)
	user := testutil.CreateUser(t, db, 2)
	key := testutil.CreateLicenseKey(t, db, 10)
	ctx := context.Background()

	if _, err := svc.Redeem(ctx, user.ID, "not-a-key"); !errors.Is(err, entities.ErrInvalidLicenseKey) {
		t.Fatalf("expected ErrInvalidLicenseKey, got %v", err)
	}

	res, err := svc.Redeem(ctx, user.ID, "  "+strings.ToLower(key.Key)+" ")
	if err != nil {
		t.Fatalf("Redeem error: %v", err)
	}
	if res.CreditsAdded != 10 || res.Balance != 12 {
		t.Fatalf("unexpected result %+v", res)
	}

	if _, err := svc.Redeem(ctx, user.ID, key.Key); !errors.Is(err, entities.ErrLicenseKeyRedeemed) {
		t.Fatalf("expected ErrLicenseKeyRedeemed, got %v", err)
	}
}

func TestReconcileStale(t *testing.T) {
	svc, repo, db := newTestService(t)
	user := testutil.CreateUser(t, db, 2).ID
	ctx := context.Background()

	charge, err := svc.TryCharge(ctx, user, ReasonAnalysis)
	if err != nil {
		t.Fatalf("TryCharge error: %v", err)
	}
	fresh, err := svc.TryCharge(ctx, user, ReasonAnalysis)
	if err != nil {
		t.Fatalf("TryCharge error: %v", err)
	}

	svc.now = func() time.Time { return time.Now().Add(time.Hour) }
	if err := repo.Settle(ctx, fresh.ID); err != nil {
		t.Fatalf("Settle error: %v", err)
	}

	n, err := svc.ReconcileStale(ctx, 0)
	if err != nil {
		t.Fatalf("ReconcileStale error: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 refunded charge, got %d", n)
	}
	if _, err := repo.Refund(ctx, charge.ID); !errors.Is(err, entities.ErrChargeFinalized) {
		t.Fatalf("stale charge should already be refunded, got %v", err)
	}
	if b, _ := repo.Balance(ctx, user); b != 1 {
		t.Fatalf("expected balance 1, got %d", b)
	}
}

func TestGenerateLicenseKeys(t *testing.T) {
	svc, _, _ := newTestService(t)

	keys, err := svc.GenerateLicenseKeys(context.Background(), 3, 0)
	if err != nil {
		t.Fatalf("GenerateLicenseKeys error: %v", err)
	}
	if len(keys) != 3 {
		t.Fatalf("expected 3 keys, got %d", len(keys))
	}
	for _, k := range keys {
		if !entities.ValidLicenseKeyFormat(k.Key) || k.Credits != 10 {
			t.Fatalf("unexpected key %+v", k)
		}
	}
	if _, err := svc.GenerateLicenseKeys(context.Background(), 0, 5); err == nil {
		t.Fatal("expected error for zero keys")
	}
}
