// Package provider contains channel adapters feeding the voice pipeline.
package provider

import (
	"context"
	"sync"

	"voice_server/core/domain"
)

// MemoryChannelAdapter is a channel source backed by ingested messages.
// Real provider integrations (IMAP, Slack, Teams APIs) plug in behind the
// same port; this adapter covers deployments that push messages in over
// the ingest route instead of pulling from a provider.
type MemoryChannelAdapter struct {
	channel domain.Channel

	mu    sync.RWMutex
	sent  []*domain.UnifiedMessage
	inbox []*domain.UnifiedMessage
}

func NewMemoryChannelAdapter(ch domain.Channel) *MemoryChannelAdapter {
	return &MemoryChannelAdapter{channel: ch}
}

func (a *MemoryChannelAdapter) Channel() domain.Channel {
	return a.channel
}

// IngestSent records messages the user wrote on this channel.
func (a *MemoryChannelAdapter) IngestSent(msgs ...*domain.UnifiedMessage) {
	a.mu.Lock()
	a.sent = append(a.sent, msgs...)
	a.mu.Unlock()
}

// IngestReceived records messages addressed to the user on this channel.
func (a *MemoryChannelAdapter) IngestReceived(msgs ...*domain.UnifiedMessage) {
	a.mu.Lock()
	a.inbox = append(a.inbox, msgs...)
	a.mu.Unlock()
}

// FetchSentMessages returns up to max of the most recently ingested sent
// messages.
func (a *MemoryChannelAdapter) FetchSentMessages(ctx context.Context, max int) ([]*domain.UnifiedMessage, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return tail(a.sent, max), nil
}

// FetchMessages returns up to max of the most recently ingested received
// messages.
func (a *MemoryChannelAdapter) FetchMessages(ctx context.Context, max int) ([]*domain.UnifiedMessage, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return tail(a.inbox, max), nil
}

func tail(msgs []*domain.UnifiedMessage, max int) []*domain.UnifiedMessage {
	if max <= 0 || max >= len(msgs) {
		max = len(msgs)
	}
	out := make([]*domain.UnifiedMessage, max)
	copy(out, msgs[len(msgs)-max:])
	return out
}
