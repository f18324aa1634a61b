package llm

import (
	"context"
	"fmt"
	"strings"

	"voice_server/core/domain"
)

// DraftRequest carries everything one generation call needs.
type DraftRequest struct {
	Message           *domain.UnifiedMessage
	Analysis          *domain.MessageAnalysis
	StrategyText      string
	StyleInstructions string
	ExtraContext      string // prior-attempt feedback, thread context
}

// GenerateDraft runs the free-text completion producing a reply draft.
// Output is the plain draft body with no surrounding commentary.
func (c *Client) GenerateDraft(ctx context.Context, req *DraftRequest) (string, error) {
	var sys strings.Builder
	sys.WriteString("You are drafting a reply on behalf of the user. Output only the reply body - no subject line, no headers, no commentary.\n\n")
	if req.StrategyText != "" {
		sys.WriteString(req.StrategyText)
		sys.WriteString("\n")
	}
	if req.StyleInstructions != "" {
		sys.WriteString(req.StyleInstructions)
		sys.WriteString("\n")
	}

	var user strings.Builder
	fmt.Fprintf(&user, "Incoming %s message from %s:\nSubject: %s\n\n%s\n",
		req.Message.Channel, req.Message.From, req.Message.Subject,
		truncateBody(req.Message.FullMessage, 3000))

	if req.Analysis != nil {
		fmt.Fprintf(&user, "\nTriage: intent=%s sentiment=%s urgency=%d priority=%s\n",
			req.Analysis.Intent, req.Analysis.Sentiment, req.Analysis.Urgency, req.Analysis.SuggestedPriority)
		if len(req.Analysis.KeyPoints) > 0 {
			user.WriteString("Points the reply must address:\n")
			for _, kp := range req.Analysis.KeyPoints {
				fmt.Fprintf(&user, "- %s\n", kp)
			}
		}
	}
	if req.ExtraContext != "" {
		fmt.Fprintf(&user, "\n%s\n", req.ExtraContext)
	}
	user.WriteString("\nWrite the reply:")

	draft, err := c.CompleteWithSystem(ctx, sys.String(), user.String())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(draft), nil
}
