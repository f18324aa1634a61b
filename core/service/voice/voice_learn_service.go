// Package voice implements voice learning: fetching a user's sent messages
// across channels, extracting and refining style records, and collapsing
// them into one user-level profile with channel overrides.
package voice

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"voice_server/core/domain"
	"voice_server/core/port/out"
	"voice_server/core/style"
	"voice_server/pkg/logger"
)

// Voice learning thresholds.
const (
	// MinMessages is the floor below which learning yields a low-confidence
	// placeholder profile rather than failing.
	MinMessages = 10

	// IdealMessages is the sample count at which message volume stops
	// raising confidence.
	IdealMessages = 50

	// MinChannelOverride is the per-channel sample floor for building a
	// channel-specific override record.
	MinChannelOverride = 5

	placeholderConfidenceScale = 30
	volumeConfidenceWeight     = 70
	channelConfidenceWeight    = 10
	masterConfidenceWeight     = 0.2
	profileConfidenceMax       = 98
)

// StyleRefiner is the optional external analysis pass. A nil refiner (or a
// failing one) degrades learning to the heuristic record alone.
type StyleRefiner interface {
	RefineStyle(ctx context.Context, samples []string, prior json.RawMessage) (*style.RefinedStyle, error)
}

// Service owns the learned profile and the per-contact style store. All
// state lives behind the mutex; learn and read paths are safe to interleave
// and concurrent learns resolve last-writer-wins.
type Service struct {
	extractor *style.Extractor
	refiner   StyleRefiner
	adapters  []out.ChannelAdapter
	repo      out.ProfileRepository
	store     *style.Store

	mu      sync.RWMutex
	profile *domain.UserVoiceProfile
}

func NewService(refiner StyleRefiner, adapters []out.ChannelAdapter, repo out.ProfileRepository) *Service {
	return &Service{
		extractor: style.NewExtractor(),
		refiner:   refiner,
		adapters:  adapters,
		repo:      repo,
		store:     style.NewStore(),
	}
}

// Restore loads a previously persisted profile at process start. Absence is
// not an error.
func (s *Service) Restore(ctx context.Context, userID string) {
	if s.repo == nil {
		return
	}
	profile, err := s.repo.LoadProfile(ctx, userID)
	if err != nil {
		logger.WithError(err).Warn("failed to restore voice profile")
		return
	}
	if profile == nil {
		return
	}
	s.mu.Lock()
	s.profile = profile
	s.mu.Unlock()
	logger.WithFields(map[string]any{"user_id": userID, "messages": profile.MessagesAnalyzed}).Info("voice profile restored")
}

// LearnUserVoice fetches sent messages across connected channels and builds
// the user-level profile. Below MinMessages it returns a clearly-marked
// placeholder instead of failing.
func (s *Service) LearnUserVoice(ctx context.Context, userID, userName, userEmail string, maxPerChannel int) (*domain.UserVoiceProfile, error) {
	if maxPerChannel <= 0 {
		maxPerChannel = 100
	}

	byChannel := s.fetchSent(ctx, maxPerChannel)

	// A channel only counts as covered when it contributed messages;
	// connected-but-empty channels must not inflate the channel bonus.
	var all []*domain.UnifiedMessage
	counts := map[domain.Channel]int{}
	for ch, msgs := range byChannel {
		if len(msgs) == 0 {
			continue
		}
		counts[ch] = len(msgs)
		all = append(all, msgs...)
	}
	total := len(all)

	now := time.Now().UTC()
	profile := &domain.UserVoiceProfile{
		UserID:            userID,
		UserName:          userName,
		UserEmail:         userEmail,
		MessagesAnalyzed:  total,
		MessagesByChannel: counts,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if total < MinMessages {
		profile.IsReady = false
		profile.Confidence = int(math.Round(float64(total) / float64(MinMessages) * placeholderConfidenceScale))
		s.install(ctx, profile)
		return profile, nil
	}

	master, refinerOK := s.buildMaster(ctx, all, userID, userName, userEmail)
	profile.MasterStyle = *master
	if !refinerOK {
		logger.Warn("style refiner unavailable, profile built from heuristics only")
	}

	profile.ChannelOverrides = map[domain.Channel]*domain.StyleRecord{}
	for ch, msgs := range byChannel {
		if len(msgs) < MinChannelOverride {
			continue
		}
		override := s.extractor.Extract(bodies(msgs))
		override.ContactID = userID
		override.ContactName = userName
		override.ContactEmail = userEmail
		profile.ChannelOverrides[ch] = override
	}

	profile.IsReady = true
	profile.Confidence = profileConfidence(total, len(counts), master.StyleConfidence)
	s.install(ctx, profile)
	return profile, nil
}

// fetchSent collects sent messages per channel. Each channel fetch is
// independently fault-tolerant: a failing channel contributes zero messages
// and a warning, never a hard stop.
func (s *Service) fetchSent(ctx context.Context, maxPerChannel int) map[domain.Channel][]*domain.UnifiedMessage {
	byChannel := make(map[domain.Channel][]*domain.UnifiedMessage, len(s.adapters))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, adapter := range s.adapters {
		adapter := adapter
		g.Go(func() error {
			msgs, err := adapter.FetchSentMessages(gctx, maxPerChannel)
			if err != nil {
				logger.WithError(err).WithField("channel", string(adapter.Channel())).Warn("channel fetch failed, contributing zero messages")
				return nil
			}
			mu.Lock()
			byChannel[adapter.Channel()] = msgs
			mu.Unlock()
			return nil
		})
	}
	g.Wait()
	return byChannel
}

// buildMaster extracts style from the full sample set. Grouping can
// fragment by sender metadata; fragments merge message-count-weighted
// before the refiner pass.
func (s *Service) buildMaster(ctx context.Context, all []*domain.UnifiedMessage, userID, userName, userEmail string) (*domain.StyleRecord, bool) {
	groups := map[string][]string{}
	var order []string
	for _, m := range all {
		key := m.ContactKey()
		if key == "" {
			key = "user"
		}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], m.FullMessage)
	}

	var records []*domain.StyleRecord
	for _, key := range order {
		records = append(records, s.extractor.Extract(groups[key]))
	}
	base := style.MergeWeighted(records)

	base.ContactID = userID
	base.ContactName = userName
	base.ContactEmail = userEmail

	refinerOK := true
	if s.refiner != nil {
		prior, _ := json.Marshal(base)
		refined, err := s.refiner.RefineStyle(ctx, bodies(all), prior)
		if err != nil {
			refinerOK = false
		} else {
			base = style.MergeRefined(base, refined)
		}
	}
	return base, refinerOK
}

// profileConfidence clamps once, on the final value. The volume term is
// left uncapped so it saturates the ceiling on its own for high-volume
// users.
func profileConfidence(analyzed, channels, masterConfidence int) int {
	volume := float64(analyzed) / float64(IdealMessages) * volumeConfidenceWeight
	conf := int(math.Round(volume + float64(channelConfidenceWeight*channels) + float64(masterConfidence)*masterConfidenceWeight))
	if conf > profileConfidenceMax {
		conf = profileConfidenceMax
	}
	return conf
}

func (s *Service) install(ctx context.Context, profile *domain.UserVoiceProfile) {
	s.mu.Lock()
	s.profile = profile
	s.mu.Unlock()

	if s.repo != nil {
		if err := s.repo.SaveProfile(ctx, profile); err != nil {
			logger.WithError(err).Warn("failed to persist voice profile")
		}
	}
}

func bodies(msgs []*domain.UnifiedMessage) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.FullMessage)
	}
	return out
}
