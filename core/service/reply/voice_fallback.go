package reply

import (
	"strings"

	"voice_server/core/domain"
)

// Deterministic fallback drafting, used only when the generation call
// fails. Templates are selected by intent and styled from the StyleRecord
// struct directly - never by re-parsing rendered prompt text.

var fallbackTemplates = map[domain.Intent]string{
	domain.IntentApprovalRequest: `Thanks for sending this over. I want to give it a proper look before signing off - I will review the details and get back to you shortly. If there is any added context on the amounts or timing, send it my way.`,

	domain.IntentQuestion: `Good question - let me make sure I give you an accurate answer rather than a quick guess. I am checking on this now and will follow up shortly with the details.`,

	domain.IntentActionRequired: `Understood - I can see this is time-sensitive. I am on it now and will confirm as soon as it is handled. If anything changes on your end in the meantime, let me know.`,

	domain.IntentFollowUp: `Thanks for the nudge - this has not fallen off my radar. I am picking it back up now and will have an update for you shortly.`,

	domain.IntentSocial: `Thank you - that is really kind of you. It means a lot.`,

	domain.IntentScheduling: `Happy to find a time. Let me check my calendar and send over a couple of options that should work. If you have preferred windows, share them and I will work around those.`,

	domain.IntentTechnicalIssue: `Thanks for flagging this - sorry for the trouble. I am looking into it now and will report back with what I find and a fix or workaround.`,

	domain.IntentPartnership: `Thanks for reaching out about this - it sounds worth exploring. Let me review what you have sent and come back with thoughts on a sensible next step.`,

	domain.IntentComplaint: `I am sorry this has been frustrating - that is not the experience we want you to have. I am looking into what happened and will come back to you with specifics.`,

	domain.IntentInformationSharing: `Thanks for sharing this - noted. I will factor it in and follow up if anything needs clarifying.`,
}

var contractionPairs = []struct{ long, short string }{
	{"I am", "I'm"},
	{"I will", "I'll"},
	{"I have", "I've"},
	{"it is", "it's"},
	{"It is", "It's"},
	{"that is", "that's"},
	{"That is", "That's"},
	{"we are", "we're"},
	{"We are", "We're"},
	{"we will", "we'll"},
	{"We will", "We'll"},
	{"is not", "isn't"},
	{"does not", "doesn't"},
	{"do not", "don't"},
	{"cannot", "can't"},
	{"has not", "hasn't"},
	{"will not", "won't"},
	{"there is", "there's"},
	{"There is", "There's"},
}

// FallbackDraft renders the per-intent template styled to the profile.
// A nil record yields the neutral template as-is.
func FallbackDraft(msg *domain.UnifiedMessage, analysis *domain.MessageAnalysis, rec *domain.StyleRecord) string {
	body, ok := fallbackTemplates[analysis.Intent]
	if !ok {
		body = fallbackTemplates[domain.IntentInformationSharing]
	}

	if rec != nil {
		if rec.UsesContractions {
			body = applyContractions(body)
		}
		if rec.Punctuation.ExclamationFrequency == domain.FreqModerate ||
			rec.Punctuation.ExclamationFrequency == domain.FreqFrequent {
			body = liftFirstSentence(body)
		}
	}

	var parts []string
	if g := renderGreeting(rec, msg); g != "" {
		parts = append(parts, g)
	}
	parts = append(parts, body)
	if c := renderClosing(rec, msg.Channel); c != "" {
		parts = append(parts, c)
	}
	return strings.Join(parts, "\n\n")
}

func renderGreeting(rec *domain.StyleRecord, msg *domain.UnifiedMessage) string {
	// Chat channels skip the greeting line entirely.
	if msg.Channel != domain.ChannelEmail {
		return ""
	}
	name := firstName(msg.From)
	if rec == nil || rec.GreetingStyle == "" {
		return "Hi " + name + ","
	}
	g := rec.GreetingStyle
	g = strings.ReplaceAll(g, "[name]", name)
	g = strings.ReplaceAll(g, "[time of day]", "morning")
	return g
}

func renderClosing(rec *domain.StyleRecord, channel domain.Channel) string {
	if channel != domain.ChannelEmail {
		return ""
	}
	closing := "Best,"
	if rec != nil && rec.ClosingStyle != "" {
		closing = rec.ClosingStyle
	}
	if rec != nil && rec.SignOffName != "" {
		closing += "\n" + rec.SignOffName
	}
	return closing
}

func applyContractions(text string) string {
	for _, p := range contractionPairs {
		text = strings.ReplaceAll(text, p.long, p.short)
	}
	return text
}

// liftFirstSentence swaps the first period for an exclamation mark, for
// profiles that actually write that way.
func liftFirstSentence(text string) string {
	if i := strings.IndexByte(text, '.'); i >= 0 {
		return text[:i] + "!" + text[i+1:]
	}
	return text
}

func firstName(from string) string {
	from = strings.TrimSpace(from)
	if from == "" {
		return "there"
	}
	if i := strings.IndexAny(from, " <@"); i > 0 {
		from = from[:i]
	}
	return strings.Trim(from, `"',`)
}
