package style

import (
	"fmt"
	"strings"

	"voice_server/core/domain"
)

// RenderInstructions turns a StyleRecord into explicit generation
// instructions, one concern per line. Output is deterministic for a given
// record: the reply pipeline and the prompt endpoint both rely on that.
func RenderInstructions(rec *domain.StyleRecord) string {
	if rec == nil {
		return genericVoiceInstructions
	}

	var b strings.Builder
	b.WriteString("Write in the user's own voice:\n")

	b.WriteString(fmt.Sprintf("- Formality: %s tone, %s vocabulary.\n",
		strings.ReplaceAll(string(rec.Formality), "_", " "),
		strings.ReplaceAll(string(rec.VocabularyLevel), "_", " ")))

	b.WriteString(fmt.Sprintf("- Length: %s messages, around %d words, %s sentences, %s layout.\n",
		rec.AverageLength, rec.AvgWordsPerMessage,
		strings.ReplaceAll(string(rec.SentenceStructure), "_", " "),
		strings.ReplaceAll(string(rec.ParagraphStyle), "_", " ")))

	if rec.GreetingStyle != "" {
		b.WriteString(fmt.Sprintf("- Open with %q.\n", rec.GreetingStyle))
	}
	if rec.ClosingStyle != "" {
		closing := rec.ClosingStyle
		if rec.SignOffName != "" {
			closing += " " + rec.SignOffName
		}
		b.WriteString(fmt.Sprintf("- Close with %q.\n", closing))
	}

	if rec.UsesContractions {
		b.WriteString("- Use contractions (it's, don't, we'll).\n")
	} else {
		b.WriteString("- Avoid contractions; write forms out in full.\n")
	}

	switch rec.Punctuation.ExclamationFrequency {
	case domain.FreqNever:
		b.WriteString("- Never use exclamation marks.\n")
	case domain.FreqRare:
		b.WriteString("- Use exclamation marks sparingly, at most one.\n")
	default:
		b.WriteString("- Exclamation marks are fine where enthusiasm fits.\n")
	}
	if rec.Punctuation.UsesEllipsis {
		b.WriteString("- An occasional trailing ellipsis is in character.\n")
	}

	switch rec.EmojiUsage {
	case domain.EmojiNone:
		b.WriteString("- No emoji.\n")
	case domain.EmojiMinimal:
		b.WriteString("- At most one emoji, only when clearly fitting.\n")
	default:
		b.WriteString("- Emoji are part of the voice; use them naturally.\n")
	}

	switch rec.PronounPreference {
	case domain.PronounIFocused:
		b.WriteString("- Speak as \"I\", taking individual ownership.\n")
	case domain.PronounWeFocused:
		b.WriteString("- Speak as \"we\", framing things as team efforts.\n")
	case domain.PronounAvoids:
		b.WriteString("- Keep first-person pronouns to a minimum.\n")
	}

	if rec.AsksFollowUpQs {
		b.WriteString("- End with a follow-up question when one is natural.\n")
	}
	if rec.EndsWithActionItems {
		b.WriteString("- Finish with clear next steps or action items.\n")
	}
	if rec.UsesBulletPoints {
		b.WriteString("- Use bullet points for lists of items.\n")
	}
	if rec.Capitalization == domain.CapAllLower {
		b.WriteString("- Lowercase throughout, including sentence starts.\n")
	}
	if len(rec.CommonTransitions) > 0 {
		b.WriteString(fmt.Sprintf("- Characteristic transitions: %s.\n", strings.Join(rec.CommonTransitions, ", ")))
	}
	if len(rec.HedgeWords) > 0 {
		b.WriteString(fmt.Sprintf("- Characteristic hedges: %s.\n", strings.Join(rec.HedgeWords, ", ")))
	}
	if rec.AcknowledgmentStyle != "" {
		b.WriteString(fmt.Sprintf("- Acknowledge with phrases like %q.\n", rec.AcknowledgmentStyle))
	}

	return b.String()
}

const genericVoiceInstructions = `Write in a natural first-person voice:
- Professional but not stiff; match the sender's energy.
- Keep it concise and directly responsive.
- No emoji unless the incoming message used them.
`
