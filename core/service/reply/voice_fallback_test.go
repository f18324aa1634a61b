package reply

import (
	"strings"
	"testing"

	"voice_server/core/domain"
)

func TestFallbackCoversEveryIntent(t *testing.T) {
	intents := []domain.Intent{
		domain.IntentApprovalRequest, domain.IntentQuestion, domain.IntentActionRequired,
		domain.IntentFollowUp, domain.IntentSocial, domain.IntentScheduling,
		domain.IntentTechnicalIssue, domain.IntentPartnership, domain.IntentComplaint,
		domain.IntentInformationSharing,
	}
	msg := &domain.UnifiedMessage{Channel: domain.ChannelSlack, From: "Dana", FullMessage: "x"}
	for _, intent := range intents {
		t.Run(string(intent), func(t *testing.T) {
			draft := FallbackDraft(msg, &domain.MessageAnalysis{Intent: intent}, nil)
			if strings.TrimSpace(draft) == "" {
				t.Error("fallback draft must never be empty")
			}
		})
	}
}

func TestFallbackUnknownIntent(t *testing.T) {
	msg := &domain.UnifiedMessage{Channel: domain.ChannelSlack, From: "Dana", FullMessage: "x"}
	draft := FallbackDraft(msg, &domain.MessageAnalysis{Intent: domain.Intent("mystery")}, nil)
	if !strings.Contains(draft, "Thanks for sharing") {
		t.Errorf("unknown intent must use the information-sharing template, got %q", draft)
	}
}

func TestFallbackEmailFraming(t *testing.T) {
	msg := &domain.UnifiedMessage{Channel: domain.ChannelEmail, From: "Dana Reyes <dana@x.com>", FullMessage: "x"}
	rec := &domain.StyleRecord{
		GreetingStyle: "Hey [name],",
		ClosingStyle:  "Cheers,",
		SignOffName:   "Sam",
	}
	draft := FallbackDraft(msg, &domain.MessageAnalysis{Intent: domain.IntentQuestion}, rec)

	if !strings.HasPrefix(draft, "Hey Dana,") {
		t.Errorf("greeting must substitute the sender's first name, got %q", draft)
	}
	if !strings.Contains(draft, "Cheers,\nSam") {
		t.Errorf("closing must carry the sign-off name, got %q", draft)
	}
}

func TestFallbackChatSkipsFraming(t *testing.T) {
	msg := &domain.UnifiedMessage{Channel: domain.ChannelSlack, From: "Dana", FullMessage: "x"}
	rec := &domain.StyleRecord{GreetingStyle: "Hey [name],", ClosingStyle: "Cheers,"}
	draft := FallbackDraft(msg, &domain.MessageAnalysis{Intent: domain.IntentQuestion}, rec)

	if strings.HasPrefix(draft, "Hey") {
		t.Errorf("chat drafts must skip the greeting line, got %q", draft)
	}
	if strings.Contains(draft, "Cheers,") {
		t.Errorf("chat drafts must skip the closing line, got %q", draft)
	}
}

func TestFallbackAppliesContractions(t *testing.T) {
	msg := &domain.UnifiedMessage{Channel: domain.ChannelSlack, From: "Dana", FullMessage: "x"}
	analysis := &domain.MessageAnalysis{Intent: domain.IntentQuestion}

	plain := FallbackDraft(msg, analysis, &domain.StyleRecord{UsesContractions: false})
	contracted := FallbackDraft(msg, analysis, &domain.StyleRecord{UsesContractions: true})

	if !strings.Contains(plain, "I am") {
		t.Errorf("plain template should keep expanded forms, got %q", plain)
	}
	if strings.Contains(contracted, "I am") || !strings.Contains(contracted, "I'm") {
		t.Errorf("contracted template should use short forms, got %q", contracted)
	}
}

func TestFallbackLiftsFirstSentence(t *testing.T) {
	msg := &domain.UnifiedMessage{Channel: domain.ChannelSlack, From: "Dana", FullMessage: "x"}
	rec := &domain.StyleRecord{
		Punctuation: domain.PunctuationProfile{ExclamationFrequency: domain.FreqFrequent},
	}
	draft := FallbackDraft(msg, &domain.MessageAnalysis{Intent: domain.IntentSocial}, rec)
	if !strings.Contains(draft, "!") {
		t.Errorf("exclamation-heavy profiles should lift the first sentence, got %q", draft)
	}
}

func TestFirstName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Dana Reyes <dana@x.com>", "Dana"},
		{"dana@x.com", "dana"},
		{"", "there"},
		{`"Reyes, Dana"`, "Reyes"},
	}
	for _, tt := range tests {
		if got := firstName(tt.in); got != tt.want {
			t.Errorf("firstName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
