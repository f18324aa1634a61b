package voice

import (
	"context"
	"strings"

	"github.com/goccy/go-json"

	"voice_server/core/domain"
	"voice_server/core/service/reply"
	"voice_server/core/style"
	"voice_server/pkg/apperr"
	"voice_server/pkg/logger"
)

// AnalyzeStyleBatch builds one style record per correspondent from a batch
// of their messages. Records carry provenance (contact identity,
// relationship, topic tags) and land in the per-contact store so later
// batches for the same contact replace earlier ones. Refiner failures
// degrade that contact to the heuristic record and are counted, never
// fatal.
func (s *Service) AnalyzeStyleBatch(ctx context.Context, msgs []*domain.UnifiedMessage) ([]*domain.StyleRecord, *domain.StyleBatchSummary, error) {
	if len(msgs) == 0 {
		return nil, nil, apperr.ValidationFailed("no messages to analyze")
	}

	groups := map[string][]*domain.UnifiedMessage{}
	var order []string
	for _, m := range msgs {
		key := m.ContactKey()
		if key == "" {
			continue
		}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], m)
	}
	if len(order) == 0 {
		return nil, nil, apperr.ValidationFailed("no messages carry a sender identity")
	}

	summary := &domain.StyleBatchSummary{Contacts: len(order)}
	records := make([]*domain.StyleRecord, 0, len(order))
	for _, key := range order {
		group := groups[key]
		rec := s.extractor.Extract(bodies(group))
		stampProvenance(rec, group)

		if s.refiner != nil {
			prior, _ := json.Marshal(rec)
			refined, err := s.refiner.RefineStyle(ctx, bodies(group), prior)
			if err != nil {
				summary.RefinerFailures++
				logger.WithError(err).WithField("contact", key).Warn("style refiner failed, keeping heuristic record")
			} else {
				rec = style.MergeRefined(rec, refined)
			}
		}

		summary.MessagesAnalyzed += len(group)
		s.store.Put(rec)
		records = append(records, rec)
	}
	return records, summary, nil
}

// ContactStyles returns all per-contact records currently held.
func (s *Service) ContactStyles() []*domain.StyleRecord {
	return s.store.All()
}

// stampProvenance fills contact identity, relationship, and topic tags
// from the underlying messages.
func stampProvenance(rec *domain.StyleRecord, group []*domain.UnifiedMessage) {
	first := group[0]
	rec.ContactID = first.ContactKey()
	rec.ContactName = first.From
	rec.ContactEmail = strings.ToLower(strings.TrimSpace(first.FromEmail))
	rec.Relationship = reply.InferRelationship(first)

	seen := map[string]bool{}
	for _, m := range group {
		for _, topic := range reply.Topics(m.Subject + " " + m.FullMessage) {
			if !seen[topic] {
				seen[topic] = true
				rec.TypicalCategories = append(rec.TypicalCategories, topic)
			}
		}
	}
}
