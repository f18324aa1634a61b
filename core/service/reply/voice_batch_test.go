package reply

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"voice_server/core/domain"
)

func TestDraftAllManifest(t *testing.T) {
	model := &fakeModel{
		analysis: &domain.MessageAnalysis{Intent: domain.IntentQuestion, Urgency: 3},
		draftErr: errors.New("api unavailable"),
	}
	svc := NewService(model, fixedStyles{})
	drafter := NewBatchDrafter(svc, 3, zerolog.Nop())

	msgs := make([]*domain.UnifiedMessage, 0, 7)
	for i := 0; i < 7; i++ {
		msgs = append(msgs, &domain.UnifiedMessage{
			ID:          fmt.Sprintf("m%d", i),
			Channel:     domain.ChannelSlack,
			From:        "Dana",
			FullMessage: "does tomorrow work?",
		})
	}
	// One invalid item must fail alone.
	msgs[4].FullMessage = "   "

	result, err := drafter.DraftAll(context.Background(), msgs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Items) != 7 {
		t.Fatalf("items = %d, want 7", len(result.Items))
	}
	if result.Succeeded != 6 || result.Failed != 1 {
		t.Errorf("succeeded/failed = %d/%d, want 6/1", result.Succeeded, result.Failed)
	}
	for _, item := range result.Items {
		if item.MessageID == "m4" {
			if item.Error == "" {
				t.Error("empty-body item must carry an error")
			}
			continue
		}
		if item.Error != "" || item.Response == nil || item.Response.DraftText == "" {
			t.Errorf("item %s should have drafted via fallback, got %+v", item.MessageID, item)
		}
	}
}

func TestDraftAllRejectsEmptyBatch(t *testing.T) {
	drafter := NewBatchDrafter(NewService(&fakeModel{}, fixedStyles{}), 0, zerolog.Nop())
	if _, err := drafter.DraftAll(context.Background(), nil); err == nil {
		t.Error("empty batch must be rejected")
	}
}

func TestDraftAllPreservesInputOrder(t *testing.T) {
	model := &fakeModel{
		analysis: &domain.MessageAnalysis{Intent: domain.IntentQuestion, Urgency: 3},
		draftErr: errors.New("api unavailable"),
	}
	drafter := NewBatchDrafter(NewService(model, fixedStyles{}), 2, zerolog.Nop())

	msgs := []*domain.UnifiedMessage{
		{ID: "a", Channel: domain.ChannelSlack, FullMessage: "one?"},
		{ID: "b", Channel: domain.ChannelSlack, FullMessage: "two?"},
		{ID: "c", Channel: domain.ChannelSlack, FullMessage: "three?"},
	}
	result, err := drafter.DraftAll(context.Background(), msgs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, want := range []string{"a", "b", "c"} {
		if result.Items[i].MessageID != want {
			t.Errorf("item %d = %s, want %s", i, result.Items[i].MessageID, want)
		}
	}
}
