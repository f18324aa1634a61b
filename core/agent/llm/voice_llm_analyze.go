package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"voice_server/core/domain"
	"voice_server/pkg/apperr"
)

const analyzeSystemPrompt = `You are a message triage AI. Analyze the incoming message and respond with JSON only:
{
  "intent": "approval_request|question|action_required|follow_up|social|scheduling|technical_issue|partnership|complaint|information_sharing",
  "sentiment": "positive|neutral|negative|urgent",
  "tone": "short free-text description of the tone",
  "urgency": 0-10,
  "topics": ["2-4 topic tags"],
  "entities": ["people, companies, products mentioned"],
  "requires_action": true/false,
  "suggested_priority": "high|medium|low",
  "key_points": ["2-4 short statements of what the sender needs"],
  "relationship": "manager|peer|direct_report|external_client|vendor|unknown"
}`

// AnalyzeMessage runs the structured-extraction call returning a
// MessageAnalysis. Failures (timeout, malformed JSON) are returned for the
// caller to resolve with the heuristic fallback.
func (c *Client) AnalyzeMessage(ctx context.Context, msg *domain.UnifiedMessage) (*domain.MessageAnalysis, error) {
	userPrompt := fmt.Sprintf("Channel: %s\nFrom: %s\nSubject: %s\n\n%s",
		msg.Channel, msg.From, msg.Subject, truncateBody(msg.FullMessage, 4000))

	resp, err := c.CompleteJSON(ctx, analyzeSystemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	var analysis domain.MessageAnalysis
	if err := json.Unmarshal([]byte(cleanJSONResponse(resp)), &analysis); err != nil {
		return nil, apperr.ExternalService("openai", fmt.Errorf("malformed analysis payload: %w", err))
	}
	if analysis.Intent == "" {
		return nil, apperr.ExternalService("openai", fmt.Errorf("analysis payload missing intent"))
	}

	clampAnalysis(&analysis)
	return &analysis, nil
}

func clampAnalysis(a *domain.MessageAnalysis) {
	if a.Urgency < 0 {
		a.Urgency = 0
	}
	if a.Urgency > 10 {
		a.Urgency = 10
	}
	if len(a.Topics) == 0 {
		a.Topics = []string{"General"}
	}
	if len(a.Topics) > 4 {
		a.Topics = a.Topics[:4]
	}
	if len(a.KeyPoints) > 4 {
		a.KeyPoints = a.KeyPoints[:4]
	}
	if a.SuggestedPriority == "" {
		a.SuggestedPriority = domain.MsgPriorityMedium
	}
	if a.Sentiment == "" {
		a.Sentiment = domain.SentimentNeutral
	}
	if a.Relationship == "" {
		a.Relationship = domain.RelationUnknown
	}
}

func cleanJSONResponse(resp string) string {
	resp = strings.TrimPrefix(resp, "```json")
	resp = strings.TrimPrefix(resp, "```")
	resp = strings.TrimSuffix(resp, "```")
	return strings.TrimSpace(resp)
}
