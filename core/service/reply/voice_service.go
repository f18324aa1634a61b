package reply

import (
	"context"
	"strings"

	"voice_server/core/agent/llm"
	"voice_server/core/domain"
	"voice_server/pkg/apperr"
	"voice_server/pkg/logger"
)

// Refinement loop bounds.
const (
	MinConfidenceThreshold = 90
	MaxRefinementAttempts  = 2
)

// TextModel is the slice of the generative-text client the reply pipeline
// needs.
type TextModel interface {
	AnalyzeMessage(ctx context.Context, msg *domain.UnifiedMessage) (*domain.MessageAnalysis, error)
	GenerateDraft(ctx context.Context, req *llm.DraftRequest) (string, error)
}

// StyleProvider hands out the active style record for a channel, or nil
// when no voice has been learned yet.
type StyleProvider interface {
	ActiveStyle(ch domain.Channel) *domain.StyleRecord
}

// Service drives the per-message pipeline: analyze, select strategy,
// generate, score, refine.
type Service struct {
	model  TextModel
	styles StyleProvider
}

func NewService(model TextModel, styles StyleProvider) *Service {
	return &Service{model: model, styles: styles}
}

// AnalyzeMessage runs the primary structured-extraction path, degrading to
// the keyword cascade when the external call fails. The failure is logged,
// never surfaced.
func (s *Service) AnalyzeMessage(ctx context.Context, msg *domain.UnifiedMessage) (*domain.MessageAnalysis, error) {
	if err := validateMessage(msg); err != nil {
		return nil, err
	}
	analysis, err := s.model.AnalyzeMessage(ctx, msg)
	if err != nil {
		logger.WithError(err).Warn("message analysis call failed, using heuristic fallback")
		return QuickAnalyze(msg), nil
	}
	return analysis, nil
}

// QuickAnalyze runs the heuristic cascade only - no external call.
func (s *Service) QuickAnalyze(ctx context.Context, msg *domain.UnifiedMessage) (*domain.MessageAnalysis, error) {
	if err := validateMessage(msg); err != nil {
		return nil, err
	}
	return QuickAnalyze(msg), nil
}

// GenerateResponse runs the full closed loop and returns the most recent
// draft and score - even when the score is still below threshold after the
// attempt budget; MetThreshold tells callers which case they got.
func (s *Service) GenerateResponse(ctx context.Context, msg *domain.UnifiedMessage) (*domain.GeneratedResponse, error) {
	return s.generate(ctx, msg, "")
}

// RegenerateWithFeedback reruns the loop with caller feedback folded into
// the generation context.
func (s *Service) RegenerateWithFeedback(ctx context.Context, msg *domain.UnifiedMessage, feedback string) (*domain.GeneratedResponse, error) {
	if strings.TrimSpace(feedback) == "" {
		return nil, apperr.MissingField("feedback")
	}
	return s.generate(ctx, msg, "Reviewer feedback on the previous draft:\n"+feedback)
}

func (s *Service) generate(ctx context.Context, msg *domain.UnifiedMessage, extraContext string) (*domain.GeneratedResponse, error) {
	if err := validateMessage(msg); err != nil {
		return nil, err
	}

	analysis, err := s.AnalyzeMessage(ctx, msg)
	if err != nil {
		return nil, err
	}

	strategy := StrategyFor(msg.Channel, analysis.Intent)
	rec := s.styles.ActiveStyle(msg.Channel)

	ctrl := newRefinement(s.model, msg, analysis, strategy, rec)
	result := ctrl.run(ctx, extraContext)
	result.Analysis = analysis
	return result, nil
}

func validateMessage(msg *domain.UnifiedMessage) error {
	if msg == nil || strings.TrimSpace(msg.FullMessage) == "" {
		return apperr.MissingField("message body")
	}
	return nil
}
