package out

import (
	"context"

	"voice_server/core/domain"
)

// ProfileRepository is the optional durability layer for learned voice
// profiles. The core works without one; when configured, profiles are saved
// after each learn run and restored at process start.
type ProfileRepository interface {
	// SaveProfile persists a learned profile.
	SaveProfile(ctx context.Context, profile *domain.UserVoiceProfile) error

	// LoadProfile restores a profile, or returns (nil, nil) when absent.
	LoadProfile(ctx context.Context, userID string) (*domain.UserVoiceProfile, error)

	// DeleteProfile removes a persisted profile.
	DeleteProfile(ctx context.Context, userID string) error
}
