package ai

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-recovery/internal/domain/entities"
	"github.com/johnquangdev/meeting-recovery/internal/infrastructure/metrics"
	"github.com/johnquangdev/meeting-recovery/internal/usecase/prompt"
	pkgai "github.com/johnquangdev/meeting-recovery/pkg/ai"
	"github.com/johnquangdev/meeting-recovery/pkg/jobcontext"
)

// Completer sends one chat completion and returns the reply text
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Gateway runs a rendered prompt through the model and parses the reply
type Gateway struct {
	client Completer
	parser *Parser
	logger *zap.Logger
}

// NewGateway constructs a new analysis gateway
func NewGateway(client Completer, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{
		client: client,
		parser: NewParser(),
		logger: logger,
	}
}

// Analyze sends spec to the model. Every failure is a *pkgai.Error.
func (g *Gateway) Analyze(ctx context.Context, spec *prompt.Spec) (*entities.MeetingAnalysis, error) {
	start := time.Now()
	fields := append(jobcontext.LogFields(ctx),
		zap.String("mode", string(spec.Mode)),
		zap.String("content_mode", string(spec.Kind)),
		zap.Int("content_chars", len(spec.Content)),
	)

	text, err := g.client.Complete(ctx, spec.System, spec.User)
	if err != nil {
		metrics.ObserveGateway(string(pkgai.KindOf(err)), time.Since(start))
		g.logger.Warn("model call failed", append(fields, zap.Error(err))...)
		return nil, err
	}

	analysis, err := g.parser.Parse(text)
	if err != nil {
		metrics.ObserveGateway(string(pkgai.KindParse), time.Since(start))
		g.logger.Warn("model reply did not parse",
			append(fields, zap.Int("reply_chars", len(text)), zap.Error(err))...)
		return nil, err
	}

	metrics.ObserveGateway("ok", time.Since(start))
	g.logger.Info("analysis completed",
		append(fields,
			zap.Duration("model_elapsed", time.Since(start)),
			zap.Int("highlights", len(analysis.Highlights)),
		)...)
	return analysis, nil
}
