package out

import (
	"context"

	"voice_server/core/domain"
)

// ChannelAdapter is the outbound port for one connected messaging channel
// (email, slack, teams). Adapters live outside the core; each call can fail
// independently and callers must treat a failing channel as zero messages,
// not a hard stop.
type ChannelAdapter interface {
	// Channel identifies which surface this adapter serves.
	Channel() domain.Channel

	// FetchSentMessages returns messages the user sent, newest first.
	FetchSentMessages(ctx context.Context, maxCount int) ([]*domain.UnifiedMessage, error)

	// FetchMessages returns received messages, newest first.
	FetchMessages(ctx context.Context, maxCount int) ([]*domain.UnifiedMessage, error)
}
