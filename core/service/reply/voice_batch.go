package reply

import (
	"context"
	"sync"

	"github.com/go-pkgz/pool"
	"github.com/rs/zerolog"

	"voice_server/core/domain"
	"voice_server/pkg/apperr"
)

// DefaultDraftBatchSize is how many pending messages are drafted at once.
// Items within one batch run concurrently and fail independently; batches
// themselves run strictly one after another.
const DefaultDraftBatchSize = 5

// BatchDrafter partitions "draft all pending" work into fixed-size batches
// backed by a go-pkgz worker group per batch.
type BatchDrafter struct {
	svc       *Service
	batchSize int
	log       zerolog.Logger
}

func NewBatchDrafter(svc *Service, batchSize int, log zerolog.Logger) *BatchDrafter {
	if batchSize <= 0 {
		batchSize = DefaultDraftBatchSize
	}
	return &BatchDrafter{
		svc:       svc,
		batchSize: batchSize,
		log:       log.With().Str("component", "batch_drafter").Logger(),
	}
}

type draftWorker struct {
	svc     *Service
	mu      sync.Mutex
	results map[string]domain.BatchDraftItem
}

// Do implements pool.Worker.
func (w *draftWorker) Do(ctx context.Context, msg *domain.UnifiedMessage) error {
	item := domain.BatchDraftItem{MessageID: msg.ID}
	resp, err := w.svc.GenerateResponse(ctx, msg)
	if err != nil {
		item.Error = err.Error()
	} else {
		item.Response = resp
	}
	w.mu.Lock()
	w.results[msg.ID] = item
	w.mu.Unlock()
	// Errors are captured in the manifest; one item never aborts siblings.
	return nil
}

// DraftAll drafts replies for every message, returning a per-item manifest.
func (b *BatchDrafter) DraftAll(ctx context.Context, msgs []*domain.UnifiedMessage) (*domain.BatchDraftResult, error) {
	if len(msgs) == 0 {
		return nil, apperr.ValidationFailed("empty message batch")
	}

	worker := &draftWorker{svc: b.svc, results: make(map[string]domain.BatchDraftItem, len(msgs))}

	for start := 0; start < len(msgs); start += b.batchSize {
		end := start + b.batchSize
		if end > len(msgs) {
			end = len(msgs)
		}
		batch := msgs[start:end]

		wg := pool.New[*domain.UnifiedMessage](len(batch), worker).WithContinueOnError()
		if err := wg.Go(ctx); err != nil {
			return nil, apperr.Internal("failed to start draft batch", err)
		}
		for _, m := range batch {
			wg.Submit(m)
		}
		if err := wg.Close(ctx); err != nil {
			b.log.Warn().Err(err).Int("batch_start", start).Msg("draft batch finished with errors")
		}
	}

	result := &domain.BatchDraftResult{}
	for _, m := range msgs {
		item, ok := worker.results[m.ID]
		if !ok {
			item = domain.BatchDraftItem{MessageID: m.ID, Error: "not processed"}
		}
		result.Items = append(result.Items, item)
		if item.Error == "" {
			result.Succeeded++
		} else {
			result.Failed++
		}
	}

	b.log.Info().Int("total", len(msgs)).Int("succeeded", result.Succeeded).Int("failed", result.Failed).Msg("batch drafting complete")
	return result, nil
}
