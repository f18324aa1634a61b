package provider

import (
	"context"
	"fmt"
	"testing"

	"voice_server/core/domain"
)

func TestFetchSentMessagesTail(t *testing.T) {
	a := NewMemoryChannelAdapter(domain.ChannelEmail)
	for i := 0; i < 5; i++ {
		a.IngestSent(&domain.UnifiedMessage{ID: fmt.Sprintf("m%d", i), FullMessage: "hello"})
	}

	got, err := a.FetchSentMessages(context.Background(), 2)
	if err != nil {
		t.Fatalf("FetchSentMessages: %v", err)
	}
	if len(got) != 2 || got[0].ID != "m3" || got[1].ID != "m4" {
		t.Errorf("tail of 2 = %v, want the two most recent", ids(got))
	}

	all, _ := a.FetchSentMessages(context.Background(), 0)
	if len(all) != 5 {
		t.Errorf("max 0 returned %d messages, want all 5", len(all))
	}

	over, _ := a.FetchSentMessages(context.Background(), 50)
	if len(over) != 5 {
		t.Errorf("max beyond size returned %d messages, want 5", len(over))
	}
}

func TestSentAndInboxAreSeparate(t *testing.T) {
	a := NewMemoryChannelAdapter(domain.ChannelSlack)
	a.IngestSent(&domain.UnifiedMessage{ID: "out-1"})
	a.IngestReceived(&domain.UnifiedMessage{ID: "in-1"}, &domain.UnifiedMessage{ID: "in-2"})

	sent, _ := a.FetchSentMessages(context.Background(), 10)
	inbox, _ := a.FetchMessages(context.Background(), 10)
	if len(sent) != 1 || sent[0].ID != "out-1" {
		t.Errorf("sent = %v", ids(sent))
	}
	if len(inbox) != 2 {
		t.Errorf("inbox = %v", ids(inbox))
	}
}

func TestFetchReturnsCopy(t *testing.T) {
	a := NewMemoryChannelAdapter(domain.ChannelTeams)
	a.IngestSent(&domain.UnifiedMessage{ID: "m0"})

	got, _ := a.FetchSentMessages(context.Background(), 10)
	got[0] = &domain.UnifiedMessage{ID: "clobbered"}

	again, _ := a.FetchSentMessages(context.Background(), 10)
	if again[0].ID != "m0" {
		t.Error("caller mutation of the returned slice leaked into the adapter")
	}
}

func ids(msgs []*domain.UnifiedMessage) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.ID)
	}
	return out
}
