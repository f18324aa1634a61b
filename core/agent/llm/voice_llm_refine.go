package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"voice_server/core/style"
	"voice_server/pkg/apperr"
)

// maxRefinerSamples caps how many representative message bodies are shown
// to the refiner.
const maxRefinerSamples = 15

const refineSystemPrompt = `You are a writing-style analyst. You receive message samples written by one person plus a heuristic analysis of their style. Correct and refine the analysis.

Respond with JSON only. Include ONLY fields you are confident about; omit the rest:
{
  "formality": "very_formal|formal|neutral|casual|very_casual",
  "vocabulary_level": "simple|moderate|advanced|technical",
  "humor_style": "none|dry|playful|witty",
  "uses_slang": true/false,
  "average_length": "brief|moderate|detailed",
  "sentence_structure": "short_direct|balanced|complex_detailed",
  "paragraph_style": "one_liners|single_block|short_paragraphs|well_structured",
  "capitalization": "standard|all_lower|title_case",
  "emoji_usage": "none|minimal|moderate|frequent",
  "uses_bullet_points": true/false,
  "uses_contractions": true/false,
  "greeting_style": "greeting template, e.g. \"Hi [name],\"",
  "closing_style": "closing template",
  "sign_off_name": "name used to sign off",
  "pronoun_preference": "i_focused|we_focused|mixed|avoids_pronouns",
  "acknowledgment_style": "characteristic acknowledgment phrase",
  "common_transitions": ["phrases"],
  "hedge_words": ["phrases"],
  "confidence": 0-99
}`

// RefineStyle sends up to maxRefinerSamples samples plus the heuristic
// record as a prior and returns the refiner's candidate. Callers merge the
// candidate via style.MergeRefined; on error they pass the heuristic record
// through unchanged.
func (c *Client) RefineStyle(ctx context.Context, samples []string, prior json.RawMessage) (*style.RefinedStyle, error) {
	if len(samples) > maxRefinerSamples {
		samples = samples[:maxRefinerSamples]
	}

	var b strings.Builder
	b.WriteString("Heuristic analysis (prior):\n")
	b.Write(prior)
	b.WriteString("\n\nMessage samples:\n")
	for i, s := range samples {
		fmt.Fprintf(&b, "--- Sample %d ---\n%s\n\n", i+1, truncateBody(s, 1500))
	}

	resp, err := c.CompleteJSON(ctx, refineSystemPrompt, b.String())
	if err != nil {
		return nil, err
	}

	var refined style.RefinedStyle
	if err := json.Unmarshal([]byte(cleanJSONResponse(resp)), &refined); err != nil {
		return nil, apperr.ExternalService("openai", fmt.Errorf("malformed style payload: %w", err))
	}

	return &refined, nil
}
