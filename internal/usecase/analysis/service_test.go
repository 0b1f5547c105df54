package analysis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-recovery/internal/domain/entities"
	usecaseerrors "github.com/johnquangdev/meeting-recovery/internal/usecase/errors"
	"github.com/johnquangdev/meeting-recovery/internal/usecase/prompt"
	pkgai "github.com/johnquangdev/meeting-recovery/pkg/ai"
)

type fakeGateway struct {
	analysis *entities.MeetingAnalysis
	err      error
	calls    int
	lastSpec *prompt.Spec
	ctxErr   error
	block    chan struct{}
}

func (g *fakeGateway) Analyze(ctx context.Context, spec *prompt.Spec) (*entities.MeetingAnalysis, error) {
	g.calls++
	g.lastSpec = spec
	if g.block != nil {
		<-g.block
	}
	g.ctxErr = ctx.Err()
	return g.analysis, g.err
}

type fakeLedger struct {
	mu        sync.Mutex
	balance   int
	chargeErr error
	charges   int
	settled   int
	refunded  int
	refundCtx error
	settleCtx error
}

func (l *fakeLedger) TryCharge(ctx context.Context, userID uuid.UUID, reason string) (*entities.CreditCharge, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.chargeErr != nil {
		return nil, l.chargeErr
	}
	if l.balance <= 0 {
		return nil, entities.ErrInsufficientCredits
	}
	l.balance--
	l.charges++
	c := entities.NewCreditCharge(userID, 1, reason)
	c.BalanceAfter = l.balance
	return c, nil
}

func (l *fakeLedger) Settle(ctx context.Context, charge *entities.CreditCharge) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.settleCtx = ctx.Err()
	l.settled++
	return nil
}

func (l *fakeLedger) Refund(ctx context.Context, charge *entities.CreditCharge) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.refundCtx = ctx.Err()
	l.refunded++
	l.balance += charge.Amount
	return nil
}

func newTestService(g *fakeGateway, l *fakeLedger) *Service {
	return NewService(g, l, Options{MaxTranscriptChars: 100, CallTimeout: time.Second}, nil)
}

func TestAnalyze_Success(t *testing.T) {
	g := &fakeGateway{analysis: entities.EmptyAnalysis()}
	l := &fakeLedger{balance: 3}

	res, err := newTestService(g, l).Analyze(context.Background(), Request{
		UserID: uuid.New(), Transcript: "hello", Mode: "balthasar", ContentMode: "notes",
	})
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if res.CreditsRemaining != 2 || l.settled != 1 || l.refunded != 0 {
		t.Fatalf("unexpected accounting: remaining=%d settled=%d refunded=%d", res.CreditsRemaining, l.settled, l.refunded)
	}
	if res.Mode != entities.ModeVantix || res.ContentKind != entities.ContentNotes {
		t.Fatalf("alias not resolved: %s/%s", res.Mode, res.ContentKind)
	}
}

func TestAnalyze_ValidationCostsNothing(t *testing.T) {
	cases := []Request{
		{Transcript: ""},
		{Transcript: "   ", Mode: "synthrax"},
		{Transcript: "x", Mode: "oracle"},
		{Transcript: "x", ContentMode: "emails"},
		{Transcript: string(make([]byte, 101))},
		{Mode: "emergency"},
	}
	for i, req := range cases {
		g := &fakeGateway{analysis: entities.EmptyAnalysis()}
		l := &fakeLedger{balance: 3}
		req.UserID = uuid.New()
		_, err := newTestService(g, l).Analyze(context.Background(), req)
		var ve *usecaseerrors.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("case %d: expected ValidationError, got %v", i, err)
		}
		if l.charges != 0 || g.calls != 0 {
			t.Fatalf("case %d: validation failure must not charge or call the model", i)
		}
	}
}

func TestAnalyze_EmergencyUsesKnownInfo(t *testing.T) {
	g := &fakeGateway{analysis: entities.EmptyAnalysis()}
	l := &fakeLedger{balance: 1}

	_, err := newTestService(g, l).Analyze(context.Background(), Request{
		UserID: uuid.New(), Mode: "emergency", KnownInfo: "quarterly sync about hiring",
	})
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if g.lastSpec.Content != "quarterly sync about hiring" {
		t.Fatalf("expected known info as content, got %q", g.lastSpec.Content)
	}
}

func TestAnalyze_InsufficientCredits(t *testing.T) {
	g := &fakeGateway{analysis: entities.EmptyAnalysis()}
	l := &fakeLedger{balance: 0}

	_, err := newTestService(g, l).Analyze(context.Background(), Request{UserID: uuid.New(), Transcript: "x"})
	if !errors.Is(err, entities.ErrInsufficientCredits) {
		t.Fatalf("expected ErrInsufficientCredits, got %v", err)
	}
	if g.calls != 0 {
		t.Fatal("model must not be called without credit")
	}
}

func TestAnalyze_GatewayFailureRefunds(t *testing.T) {
	g := &fakeGateway{err: &pkgai.Error{Kind: pkgai.KindTimeout}}
	l := &fakeLedger{balance: 1}

	_, err := newTestService(g, l).Analyze(context.Background(), Request{UserID: uuid.New(), Transcript: "x"})
	if !errors.Is(err, usecaseerrors.ErrAnalysisFailed) {
		t.Fatalf("expected ErrAnalysisFailed, got %v", err)
	}
	if !pkgai.IsKind(err, pkgai.KindTimeout) {
		t.Fatalf("cause should be preserved, got %v", err)
	}
	if l.refunded != 1 || l.balance != 1 || l.settled != 0 {
		t.Fatalf("expected refund to restore balance: refunded=%d balance=%d", l.refunded, l.balance)
	}
}

func TestAnalyze_ClientCancelDoesNotSkipAccounting(t *testing.T) {
	g := &fakeGateway{err: &pkgai.Error{Kind: pkgai.KindNetwork}, block: make(chan struct{})}
	l := &fakeLedger{balance: 1}
	svc := newTestService(g, l)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := svc.Analyze(ctx, Request{UserID: uuid.New(), Transcript: "x"})
		done <- err
	}()

	cancel()
	close(g.block)
	if err := <-done; !errors.Is(err, usecaseerrors.ErrAnalysisFailed) {
		t.Fatalf("expected ErrAnalysisFailed, got %v", err)
	}
	if g.ctxErr != nil {
		t.Fatalf("model call must not see client cancellation, got %v", g.ctxErr)
	}
	if l.refunded != 1 || l.refundCtx != nil {
		t.Fatalf("refund must run on a live context: refunded=%d ctxErr=%v", l.refunded, l.refundCtx)
	}
}

func TestAnalyze_SlowModelStillSettles(t *testing.T) {
	g := &fakeGateway{analysis: entities.EmptyAnalysis(), block: make(chan struct{})}
	l := &fakeLedger{balance: 2}
	svc := NewService(g, l, Options{CallTimeout: 50 * time.Millisecond}, nil)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Analyze(context.Background(), Request{UserID: uuid.New(), Transcript: "x"})
		done <- err
	}()

	// the call budget runs out while the model is still answering
	time.Sleep(100 * time.Millisecond)
	close(g.block)
	if err := <-done; err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if l.settled != 1 || l.settleCtx != nil {
		t.Fatalf("settle must run on a live context: settled=%d ctxErr=%v", l.settled, l.settleCtx)
	}
}
