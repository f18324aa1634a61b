package reply

import (
	"reflect"
	"testing"

	"voice_server/core/domain"
)

func quickMsg(subject, body string) *domain.UnifiedMessage {
	return &domain.UnifiedMessage{
		Channel:     domain.ChannelEmail,
		From:        "Pat Doyle",
		Subject:     subject,
		FullMessage: body,
	}
}

func TestClassifyIntentCascade(t *testing.T) {
	tests := []struct {
		name string
		text string
		want domain.Intent
	}{
		{"approval beats question", "Can you approve the budget increase?", domain.IntentApprovalRequest},
		{"question", "What time works for you?", domain.IntentQuestion},
		{"urgent beats technical", "URGENT: the server is down", domain.IntentActionRequired},
		{"follow up", "Just circling back on the invoice", domain.IntentFollowUp},
		{"social", "Congratulations on the launch", domain.IntentSocial},
		{"scheduling", "Let's schedule a sync for next week", domain.IntentScheduling},
		{"technical", "The deploy failed with an odd stack trace", domain.IntentTechnicalIssue},
		{"partnership", "Interested in a partnership proposal", domain.IntentPartnership},
		{"default", "Sharing the notes from our session", domain.IntentInformationSharing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyIntent(tt.text); got != tt.want {
				t.Errorf("classifyIntent(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassifySentiment(t *testing.T) {
	tests := []struct {
		name string
		text string
		want domain.Sentiment
	}{
		{"urgent wins", "urgent but thanks", domain.SentimentUrgent},
		{"negative", "this is unacceptable and frustrating", domain.SentimentNegative},
		{"positive", "great work, really appreciate it", domain.SentimentPositive},
		{"neutral", "the report covers last month", domain.SentimentNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifySentiment(tt.text); got != tt.want {
				t.Errorf("classifySentiment(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestScoreUrgency(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		intent domain.Intent
		want   int
	}{
		{"baseline", "plain note", domain.IntentInformationSharing, 5},
		{"urgent with deadline", "urgent: need this by eod", domain.IntentActionRequired, 9},
		{"calm marker", "no rush, whenever you get a chance", domain.IntentInformationSharing, 3},
		{"social floor", "congrats on the launch", domain.IntentSocial, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoreUrgency(tt.text, tt.intent); got != tt.want {
				t.Errorf("scoreUrgency = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestQuickAnalyzeComposite(t *testing.T) {
	msg := quickMsg("Urgent: production outage", "The API server is down since 9am. Customers cannot log in. Need this fixed today.")
	got := QuickAnalyze(msg)

	if got.Intent != domain.IntentActionRequired {
		t.Errorf("intent = %s, want action_required", got.Intent)
	}
	if got.Sentiment != domain.SentimentUrgent {
		t.Errorf("sentiment = %s, want urgent", got.Sentiment)
	}
	if got.Urgency < highUrgency {
		t.Errorf("urgency = %d, want >= %d", got.Urgency, highUrgency)
	}
	if got.SuggestedPriority != domain.MsgPriorityHigh {
		t.Errorf("priority = %s, want high", got.SuggestedPriority)
	}
	if !got.RequiresAction {
		t.Error("outage must require action")
	}
	if len(got.KeyPoints) == 0 {
		t.Error("long sentences must surface as key points")
	}
}

func TestQuickAnalyzeDeterministic(t *testing.T) {
	msg := quickMsg("Budget review", "Can you send the updated budget numbers before Friday? The invoice totals moved.")
	a := QuickAnalyze(msg)
	b := QuickAnalyze(msg)
	if !reflect.DeepEqual(a, b) {
		t.Error("quick analysis must be deterministic")
	}
}

func TestExtractTopics(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"two topics", "the budget for the meeting room", []string{"Budget & Finance", "Scheduling"}},
		{"default", "hello there", []string{"General"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Topics(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Topics(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestInferRelationship(t *testing.T) {
	tests := []struct {
		name string
		msg  *domain.UnifiedMessage
		want domain.Relationship
	}{
		{
			"metadata wins",
			&domain.UnifiedMessage{Metadata: map[string]string{"relationship": "manager"}},
			domain.RelationManager,
		},
		{
			"email hint",
			&domain.UnifiedMessage{FromEmail: "pat@bigclient.com"},
			domain.RelationClient,
		},
		{
			"unknown",
			&domain.UnifiedMessage{FromEmail: "pat@example.com"},
			domain.RelationUnknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferRelationship(tt.msg); got != tt.want {
				t.Errorf("relationship = %s, want %s", got, tt.want)
			}
		})
	}
}
