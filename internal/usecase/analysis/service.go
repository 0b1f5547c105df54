// Package analysis orchestrates one paid analysis request: validate, charge,
// render the prompt, call the model, then settle or refund.
package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-recovery/internal/domain/entities"
	"github.com/johnquangdev/meeting-recovery/internal/infrastructure/metrics"
	"github.com/johnquangdev/meeting-recovery/internal/usecase/credit"
	usecaseerrors "github.com/johnquangdev/meeting-recovery/internal/usecase/errors"
	"github.com/johnquangdev/meeting-recovery/internal/usecase/prompt"
	"github.com/johnquangdev/meeting-recovery/pkg/jobcontext"
)

// State is a step of the request lifecycle
type State string

const (
	StateValidating   State = "validating"
	StateCharging     State = "charging"
	StatePrompting    State = "prompting"
	StateCallingModel State = "calling_model"
	StateSucceeded    State = "succeeded"
	StateRefunding    State = "refunding"
	StateFailed       State = "failed"
)

const (
	jobType       = "analysis"
	settleTimeout = 15 * time.Second
	refundTimeout = 15 * time.Second
)

// Gateway runs a prompt through the model
type Gateway interface {
	Analyze(ctx context.Context, spec *prompt.Spec) (*entities.MeetingAnalysis, error)
}

// Ledger charges and settles credits
type Ledger interface {
	TryCharge(ctx context.Context, userID uuid.UUID, reason string) (*entities.CreditCharge, error)
	Settle(ctx context.Context, charge *entities.CreditCharge) error
	Refund(ctx context.Context, charge *entities.CreditCharge) error
}

// Options bounds request input and model time
type Options struct {
	MaxTranscriptChars int
	// CallTimeout bounds the model call including retries
	CallTimeout time.Duration
}

// Request is one analyze call
type Request struct {
	UserID      uuid.UUID
	Transcript  string
	Topic       string
	Attendees   string
	KnownInfo   string
	Mode        string
	ContentMode string
}

// Result is a successful analysis
type Result struct {
	Analysis         *entities.MeetingAnalysis
	Mode             entities.Mode
	ContentKind      entities.ContentKind
	CreditsRemaining int
}

// Service is the request orchestrator
type Service struct {
	gateway Gateway
	ledger  Ledger
	opts    Options
	logger  *zap.Logger
}

// NewService constructs a new orchestrator
func NewService(gateway Gateway, ledger Ledger, opts Options, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = 2 * time.Minute
	}
	return &Service{
		gateway: gateway,
		ledger:  ledger,
		opts:    opts,
		logger:  logger,
	}
}

// Analyze runs the request. Validation errors are *usecaseerrors.ValidationError
// and cost nothing; a charge failure is returned as is; anything failing after
// the charge is refunded and wrapped in ErrAnalysisFailed.
//
// Once the credit is taken the request runs detached from ctx cancellation so
// that a client disconnect cannot skip the settle or refund.
func (s *Service) Analyze(ctx context.Context, req Request) (*Result, error) {
	jobCtx := jobcontext.JobBegin(ctx, uuid.New(), jobType, req.UserID)
	s.transition(jobCtx, StateValidating)

	in, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	s.transition(jobCtx, StateCharging)
	charge, err := s.ledger.TryCharge(jobCtx, req.UserID, credit.ReasonAnalysis)
	if err != nil {
		s.logger.Info("analysis not charged", append(jobcontext.LogFields(jobCtx), zap.Error(err))...)
		return nil, err
	}

	workCtx, cancel := jobcontext.Detach(jobCtx, s.opts.CallTimeout)
	defer cancel()

	s.transition(workCtx, StatePrompting)
	spec, err := prompt.Build(in)
	if err != nil {
		return nil, s.fail(jobCtx, charge, in.Mode, err)
	}

	s.transition(workCtx, StateCallingModel)
	analysis, err := s.gateway.Analyze(workCtx, spec)
	if err != nil {
		return nil, s.fail(jobCtx, charge, in.Mode, err)
	}

	// The model call may have used most of workCtx, so settle gets its own
	// deadline. A settle failure leaves the charge pending; the credit stays
	// spent until reconciliation refunds it.
	settleCtx, cancelSettle := jobcontext.Detach(jobCtx, settleTimeout)
	_ = s.ledger.Settle(settleCtx, charge)
	cancelSettle()

	s.transition(workCtx, StateSucceeded)
	metrics.RecordAnalysis(string(in.Mode), string(StateSucceeded))
	return &Result{
		Analysis:         analysis,
		Mode:             spec.Mode,
		ContentKind:      spec.Kind,
		CreditsRemaining: charge.BalanceAfter,
	}, nil
}

func (s *Service) validate(req Request) (prompt.Input, error) {
	mode, err := entities.ParseMode(req.Mode)
	if err != nil {
		return prompt.Input{}, usecaseerrors.NewValidationError("mode", fmt.Sprintf("unknown mode %q", req.Mode))
	}
	kind, err := entities.ParseContentKind(req.ContentMode)
	if err != nil {
		return prompt.Input{}, usecaseerrors.NewValidationError("contentMode", fmt.Sprintf("unknown content mode %q", req.ContentMode))
	}

	transcript := strings.TrimSpace(req.Transcript)
	knownInfo := strings.TrimSpace(req.KnownInfo)
	if transcript == "" && !(mode == entities.ModeEmergency && knownInfo != "") {
		return prompt.Input{}, usecaseerrors.NewValidationError("transcript", "transcript is required")
	}
	if s.opts.MaxTranscriptChars > 0 && utf8.RuneCountInString(transcript) > s.opts.MaxTranscriptChars {
		return prompt.Input{}, usecaseerrors.NewValidationError("transcript",
			fmt.Sprintf("transcript exceeds %d characters", s.opts.MaxTranscriptChars))
	}

	return prompt.Input{
		Transcript: transcript,
		Topic:      req.Topic,
		Attendees:  req.Attendees,
		KnownInfo:  knownInfo,
		Mode:       mode,
		Kind:       kind,
	}, nil
}

// fail refunds on a context of its own, since the work context may already
// have expired, and reports the cause wrapped in ErrAnalysisFailed.
func (s *Service) fail(jobCtx context.Context, charge *entities.CreditCharge, mode entities.Mode, cause error) error {
	refundCtx, cancel := jobcontext.Detach(jobCtx, refundTimeout)
	defer cancel()

	s.transition(refundCtx, StateRefunding, zap.Error(cause))
	_ = s.ledger.Refund(refundCtx, charge)

	s.transition(refundCtx, StateFailed)
	metrics.RecordAnalysis(string(mode), string(StateFailed))
	return fmt.Errorf("%w: %w", usecaseerrors.ErrAnalysisFailed, cause)
}

func (s *Service) transition(ctx context.Context, state State, extra ...zap.Field) {
	fields := append(jobcontext.LogFields(ctx), zap.String("state", string(state)))
	s.logger.Debug("analysis state", append(fields, extra...)...)
}
