package in

import (
	"context"

	"voice_server/core/domain"
)

// ReplyService is the inbound surface for message analysis and styled
// reply drafting.
type ReplyService interface {
	AnalyzeMessage(ctx context.Context, msg *domain.UnifiedMessage) (*domain.MessageAnalysis, error)
	QuickAnalyze(ctx context.Context, msg *domain.UnifiedMessage) (*domain.MessageAnalysis, error)
	GenerateResponse(ctx context.Context, msg *domain.UnifiedMessage) (*domain.GeneratedResponse, error)
	RegenerateWithFeedback(ctx context.Context, msg *domain.UnifiedMessage, feedback string) (*domain.GeneratedResponse, error)
}
