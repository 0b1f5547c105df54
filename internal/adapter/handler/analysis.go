package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-recovery/errors"
	analysisDTO "github.com/johnquangdev/meeting-recovery/internal/adapter/dto/analysis"
	"github.com/johnquangdev/meeting-recovery/internal/domain/entities"
	"github.com/johnquangdev/meeting-recovery/internal/usecase/analysis"
)

// Analysis handles analyze requests
type Analysis struct {
	svc        *analysis.Service
	paymentURL string
	logger     *zap.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(svc *analysis.Service, paymentURL string, logger *zap.Logger) *Analysis {
	return &Analysis{svc: svc, paymentURL: paymentURL, logger: logger}
}

// Analyze handles POST /api/analyze
func (h *Analysis) Analyze(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req analysisDTO.AnalyzeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.svc.Analyze(c.Request().Context(), analysis.Request{
		UserID:      userID,
		Transcript:  req.Transcript,
		Topic:       req.Topic,
		Attendees:   req.Attendees,
		KnownInfo:   req.KnownInfo,
		Mode:        req.ResolvedMode(),
		ContentMode: req.ContentMode,
	})
	if err != nil {
		if stdErrors.Is(err, entities.ErrInsufficientCredits) {
			err = errors.ErrPaymentRequired(h.paymentURL)
		}
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, &analysisDTO.AnalyzeResponse{
		Success:          true,
		Analysis:         result.Analysis,
		Mode:             result.Mode,
		ContentMode:      result.ContentKind,
		CreditsRemaining: result.CreditsRemaining,
	})
}
