package reply

import (
	"strings"

	"voice_server/core/domain"
)

// Response strategy selection: a static channel table concatenated with a
// static intent table. Deterministic and side-effect-free; unknown intents
// contribute no extra instruction text.

var channelGuidelines = map[domain.Channel]string{
	domain.ChannelEmail: `Channel conventions (email):
- Open with a greeting line and close with a sign-off.
- Complete sentences; short paragraphs over walls of text.
- A reply of 3-6 sentences is usually right; match the sender's depth.`,

	domain.ChannelSlack: `Channel conventions (slack):
- No formal greeting or sign-off; jump straight in.
- Keep it tight - a few sentences, not paragraphs.
- Casual register is fine; formatting like bullets only when listing.`,

	domain.ChannelTeams: `Channel conventions (teams):
- Brief greeting is fine, no formal sign-off.
- Concise and conversational, slightly more buttoned-up than chat.`,
}

var intentStrategies = map[domain.Intent]string{
	domain.IntentApprovalRequest: `Strategy (approval request):
- Acknowledge the request and what is being asked for.
- Do NOT grant approval outright for unusual amounts or irreversible actions;
  ask the one clarifying question that would unblock a decision, or state
  what is needed before sign-off.
- If the request is routine and clearly in policy, approve plainly.`,

	domain.IntentQuestion: `Strategy (question):
- Answer the question first, directly, before any context.
- If the answer is unknown, say so and name who or what can resolve it.
- Address every distinct question asked, not just the first.`,

	domain.IntentTechnicalIssue: `Strategy (technical issue):
- Acknowledge the problem and its impact.
- State the immediate next step being taken and a realistic check-in time.
- Ask for reproduction details only if genuinely needed.`,

	domain.IntentScheduling: `Strategy (scheduling):
- Confirm, propose, or decline concretely - name days and times.
- Never promise attendance at a time already described as conflicting.
- Offer two alternatives when declining.`,

	domain.IntentSocial: `Strategy (social):
- Warm and brief; mirror the sender's energy.
- No action items, no business follow-ups unless the sender raised one.`,

	domain.IntentPartnership: `Strategy (partnership):
- Express measured interest without committing to terms.
- Route toward a concrete next step (call, materials, intro) rather than
  agreeing to anything contractual in the reply itself.`,

	domain.IntentActionRequired: `Strategy (action required):
- Acknowledge the urgency explicitly.
- Commit to the specific action and when it will happen, or say exactly why
  it cannot happen and what will instead.`,
}

// StrategyFor assembles generation instructions from (channel, intent).
func StrategyFor(channel domain.Channel, intent domain.Intent) string {
	var parts []string
	if g, ok := channelGuidelines[channel]; ok {
		parts = append(parts, g)
	}
	if s, ok := intentStrategies[intent]; ok {
		parts = append(parts, s)
	}
	return strings.Join(parts, "\n\n")
}
