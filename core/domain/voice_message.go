package domain

import (
	"strings"
	"time"
)

// UnifiedMessage is the channel-neutral message shape handed over by the
// channel adapters (Gmail, Slack, Teams). Only the fields the core needs.
type UnifiedMessage struct {
	ID          string            `json:"id"`
	Channel     Channel           `json:"channel"`
	From        string            `json:"from"`
	FromEmail   string            `json:"from_email,omitempty"`
	Subject     string            `json:"subject,omitempty"`
	FullMessage string            `json:"full_message"`
	ReceivedAt  time.Time         `json:"received_at"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// ContactKey returns the grouping identity for the sender: lowercase email
// when present, otherwise the display name.
func (m *UnifiedMessage) ContactKey() string {
	if m.FromEmail != "" {
		return normalizeContactKey(m.FromEmail)
	}
	return normalizeContactKey(m.From)
}

func normalizeContactKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Intent is the coarse purpose of an incoming message.
type Intent string

const (
	IntentApprovalRequest    Intent = "approval_request"
	IntentQuestion           Intent = "question"
	IntentActionRequired     Intent = "action_required"
	IntentFollowUp           Intent = "follow_up"
	IntentSocial             Intent = "social"
	IntentScheduling         Intent = "scheduling"
	IntentTechnicalIssue     Intent = "technical_issue"
	IntentPartnership        Intent = "partnership"
	IntentComplaint          Intent = "complaint"
	IntentInformationSharing Intent = "information_sharing"
)

// Sentiment is the emotional read on an incoming message.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
	SentimentUrgent   Sentiment = "urgent"
)

// MessagePriority is the suggested handling priority for a message.
type MessagePriority string

const (
	MsgPriorityHigh   MessagePriority = "high"
	MsgPriorityMedium MessagePriority = "medium"
	MsgPriorityLow    MessagePriority = "low"
)

// MessageAnalysis is the structured read on one incoming message.
type MessageAnalysis struct {
	Intent            Intent          `json:"intent"`
	Sentiment         Sentiment       `json:"sentiment"`
	Tone              string          `json:"tone"`
	Urgency           int             `json:"urgency"` // 0-10
	Topics            []string        `json:"topics"`  // 2-4 tags
	Entities          []string        `json:"entities,omitempty"`
	RequiresAction    bool            `json:"requires_action"`
	SuggestedPriority MessagePriority `json:"suggested_priority"`
	KeyPoints         []string        `json:"key_points"` // 2-4 strings
	Relationship      Relationship    `json:"relationship"`
}

// GeneratedResponse is the final output of the reply pipeline.
type GeneratedResponse struct {
	DraftText      string           `json:"draft_text"`
	Confidence     int              `json:"confidence"` // 50-99
	MetThreshold   bool             `json:"met_threshold"`
	Analysis       *MessageAnalysis `json:"analysis,omitempty"`
	ReasoningTrace []string         `json:"reasoning_trace,omitempty"`
}

// BatchDraftItem is the per-item result of a batch drafting run. Failures
// are isolated per item; the batch itself still succeeds with a manifest.
type BatchDraftItem struct {
	MessageID string             `json:"message_id"`
	Response  *GeneratedResponse `json:"response,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// BatchDraftResult is the manifest for one batch drafting run.
type BatchDraftResult struct {
	Items     []BatchDraftItem `json:"items"`
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
}

// StyleBatchSummary summarizes one analyzeStyleBatch run.
type StyleBatchSummary struct {
	Contacts         int `json:"contacts"`
	MessagesAnalyzed int `json:"messages_analyzed"`
	RefinerFailures  int `json:"refiner_failures"`
}
