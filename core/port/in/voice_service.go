package in

import (
	"context"

	"voice_server/core/domain"
)

// VoiceService is the inbound surface for voice learning and profile reads.
type VoiceService interface {
	LearnUserVoice(ctx context.Context, userID, userName, userEmail string, maxPerChannel int) (*domain.UserVoiceProfile, error)
	AnalyzeStyleBatch(ctx context.Context, msgs []*domain.UnifiedMessage) ([]*domain.StyleRecord, *domain.StyleBatchSummary, error)
	GetProfile() *domain.UserVoiceProfile
	GetStylePrompt(ch domain.Channel) (string, bool)
	GetVoiceSummary() *domain.VoiceSummary
	ClearProfile(ctx context.Context)
}
