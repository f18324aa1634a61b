package voice

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"voice_server/core/domain"
	"voice_server/core/style"
	"voice_server/pkg/logger"
)

// GetProfile returns the current profile, or nil when none is learned.
func (s *Service) GetProfile() *domain.UserVoiceProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// ActiveStyle returns the style record the reply pipeline should write
// with: the channel override if present, else the master record. Nil until
// a ready profile exists.
func (s *Service) ActiveStyle(ch domain.Channel) *domain.StyleRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil || !s.profile.IsReady {
		return nil
	}
	return s.profile.StyleFor(ch)
}

// GetStylePrompt renders the active record as generation instructions.
// Deterministic: identical calls without an intervening learn return
// identical text. The bool reports whether a profile was available.
func (s *Service) GetStylePrompt(ch domain.Channel) (string, bool) {
	rec := s.ActiveStyle(ch)
	if rec == nil {
		return "", false
	}
	return style.RenderInstructions(rec), true
}

// GetVoiceSummary reports readiness, confidence, and the profile's key
// traits.
func (s *Service) GetVoiceSummary() *domain.VoiceSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary := &domain.VoiceSummary{}
	if s.profile == nil {
		return summary
	}

	summary.IsReady = s.profile.IsReady
	summary.Confidence = s.profile.Confidence
	summary.MessagesAnalyzed = s.profile.MessagesAnalyzed

	for ch := range s.profile.MessagesByChannel {
		summary.ChannelsCovered = append(summary.ChannelsCovered, string(ch))
	}
	sort.Strings(summary.ChannelsCovered)

	if s.profile.IsReady {
		summary.KeyTraits = keyTraits(&s.profile.MasterStyle)
	}
	return summary
}

// ClearProfile drops the learned profile, the per-contact store, and any
// persisted copy.
func (s *Service) ClearProfile(ctx context.Context) {
	s.mu.Lock()
	profile := s.profile
	s.profile = nil
	s.mu.Unlock()

	s.store.Clear()

	if s.repo != nil && profile != nil {
		if err := s.repo.DeleteProfile(ctx, profile.UserID); err != nil {
			logger.WithError(err).Warn("failed to delete persisted voice profile")
		}
	}
}

func keyTraits(rec *domain.StyleRecord) []string {
	traits := []string{
		strings.ReplaceAll(string(rec.Formality), "_", " ") + " tone",
		fmt.Sprintf("%s messages (~%d words)", rec.AverageLength, rec.AvgWordsPerMessage),
		strings.ReplaceAll(string(rec.SentenceStructure), "_", " ") + " sentences",
	}
	if rec.UsesContractions {
		traits = append(traits, "uses contractions")
	}
	if rec.EmojiUsage != domain.EmojiNone {
		traits = append(traits, string(rec.EmojiUsage)+" emoji use")
	}
	if rec.GreetingStyle != "" {
		traits = append(traits, fmt.Sprintf("opens with %q", rec.GreetingStyle))
	}
	if rec.AsksFollowUpQs {
		traits = append(traits, "asks follow-up questions")
	}
	if len(rec.CommonTransitions) > 0 {
		traits = append(traits, "favors transitions: "+strings.Join(rec.CommonTransitions, ", "))
	}
	return traits
}
