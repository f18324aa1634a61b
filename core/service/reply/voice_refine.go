package reply

import (
	"context"
	"fmt"
	"strings"

	"voice_server/core/agent/llm"
	"voice_server/core/domain"
	"voice_server/core/style"
	"voice_server/pkg/logger"
)

// refinement is the closed loop: draft, score, and - while the score is
// short of threshold, a style record is in play, and attempts remain -
// regenerate with feedback naming the concrete mismatches. The generator is
// invoked at most 1+MaxRefinementAttempts times per run.
type refinement struct {
	model    TextModel
	msg      *domain.UnifiedMessage
	analysis *domain.MessageAnalysis
	strategy string
	rec      *domain.StyleRecord
	trace    []string
}

func newRefinement(model TextModel, msg *domain.UnifiedMessage, analysis *domain.MessageAnalysis, strategy string, rec *domain.StyleRecord) *refinement {
	return &refinement{
		model:    model,
		msg:      msg,
		analysis: analysis,
		strategy: strategy,
		rec:      rec,
	}
}

func (r *refinement) run(ctx context.Context, extraContext string) *domain.GeneratedResponse {
	draft, live := r.draft(ctx, extraContext)
	score := Score(draft, r.msg, r.analysis, r.rec)
	r.note("initial draft scored %d", score.Score)

	for attempt := 1; attempt <= MaxRefinementAttempts; attempt++ {
		if score.Score >= MinConfidenceThreshold || r.rec == nil {
			break
		}
		// Cancellation is honored at the loop boundary, between attempts.
		if ctx.Err() != nil {
			r.note("refinement stopped: context canceled")
			break
		}
		if !live {
			// The generator is down; regenerating replays the same
			// deterministic fallback.
			r.note("refinement skipped: generator unavailable")
			break
		}
		if len(score.Mismatches) == 0 {
			r.note("refinement stopped: no specific mismatch to correct")
			break
		}

		feedback := feedbackFrom(score.Mismatches)
		r.note("refining (attempt %d): %s", attempt, strings.Join(score.Mismatches, "; "))

		refined, ok := r.draft(ctx, joinContext(extraContext, feedback))
		if !ok {
			r.note("refinement attempt %d failed: generator unavailable", attempt)
			break
		}
		draft = refined
		score = Score(draft, r.msg, r.analysis, r.rec)
		r.note("refined draft scored %d", score.Score)
	}

	return &domain.GeneratedResponse{
		DraftText:      draft,
		Confidence:     score.Score,
		MetThreshold:   score.Score >= MinConfidenceThreshold,
		ReasoningTrace: append(r.trace, score.Trace...),
	}
}

// draft produces the next candidate; the bool reports whether it came from
// the live generator (false means deterministic fallback).
func (r *refinement) draft(ctx context.Context, extraContext string) (string, bool) {
	req := &llm.DraftRequest{
		Message:           r.msg,
		Analysis:          r.analysis,
		StrategyText:      r.strategy,
		StyleInstructions: style.RenderInstructions(r.rec),
		ExtraContext:      extraContext,
	}
	draft, err := r.model.GenerateDraft(ctx, req)
	if err == nil && strings.TrimSpace(draft) != "" {
		return draft, true
	}
	if err != nil {
		logger.WithError(err).Warn("draft generation call failed, using template fallback")
	}
	return FallbackDraft(r.msg, r.analysis, r.rec), false
}

func (r *refinement) note(format string, args ...any) {
	r.trace = append(r.trace, fmt.Sprintf(format, args...))
}

func feedbackFrom(mismatches []string) string {
	var b strings.Builder
	b.WriteString("The previous draft missed the user's voice. Correct these specifically:\n")
	for _, m := range mismatches {
		fmt.Fprintf(&b, "- %s\n", m)
	}
	return b.String()
}

func joinContext(a, b string) string {
	if a == "" {
		return b
	}
	return a + "\n\n" + b
}
