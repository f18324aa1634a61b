package reply

import (
	"fmt"
	"regexp"
	"strings"

	"voice_server/core/domain"
)

// Scoring weights. Signs and directions are load-bearing; magnitudes are
// tunable.
const (
	scoreBase = 80
	scoreMin  = 50
	scoreMax  = 99

	keyPointMissPenalty = 3
	keyPointHitBonus    = 2

	slackLongWords       = 150
	slackLongPenalty     = 5
	emailShortWords      = 30
	emailShortPenalty    = 5
	emailGreetingBonus   = 3
	emailClosingBonus    = 2
	slackInformalBonus   = 2
	urgencyMissPenalty   = 5
	autoApprovePenalty   = 3
	greetingMatchBonus   = 5
	greetingMissPenalty  = 3
	closingMatchBonus    = 3
	closingMissPenalty   = 2
	contractionWeight    = 3
	exclamationWeight    = 2
	lengthRatioWeight    = 3
	lengthRatioLow       = 0.5
	lengthRatioHigh      = 1.5
	paragraphMatchBonus  = 2
	pronounMatchBonus    = 2
	questionMatchBonus   = 2
	questionBothAbsent   = 1
	emojiMatchBonus      = 1
	emojiMismatchPenalty = 2
	signOffBonus         = 2
	transitionBonus      = 1
	maxTransitionBonuses = 4
)

var urgencyAckRe = regexp.MustCompile(`(?i)\b(right away|immediately|on it|asap|prioritiz\w+|top priority|as soon as|urgent|time[- ]sensitive|today)\b`)

var greetingMarkerRe = regexp.MustCompile(`(?i)^(hi|hey|hello|dear|good (morning|afternoon|evening)|greetings)\b`)

var closingMarkerRe = regexp.MustCompile(`(?i)\b(best regards|kind regards|warm regards|regards|sincerely|best|thanks|thank you|cheers|talk soon|take care)[,.!]?\s*$`)

var scoreStopwords = map[string]bool{
	"this": true, "that": true, "with": true, "from": true, "have": true,
	"will": true, "would": true, "could": true, "should": true, "about": true,
	"there": true, "their": true, "your": true, "please": true, "thanks": true,
	"been": true, "were": true, "when": true, "what": true, "need": true,
}

// ScoreResult carries the score plus the concrete style mismatches the
// refinement loop can act on.
type ScoreResult struct {
	Score      int
	Mismatches []string
	Trace      []string
}

// Score evaluates a draft against content coverage and style alignment.
// Deterministic: same inputs, same result.
func Score(draft string, msg *domain.UnifiedMessage, analysis *domain.MessageAnalysis, rec *domain.StyleRecord) *ScoreResult {
	res := &ScoreResult{Score: scoreBase}
	draftLower := strings.ToLower(draft)
	words := strings.Fields(draft)
	wordCount := len(words)

	// Content coverage
	for _, kp := range analysis.KeyPoints {
		if keyPointAddressed(kp, draftLower) {
			res.add(keyPointHitBonus, "key point addressed")
		} else {
			res.add(-keyPointMissPenalty, fmt.Sprintf("key point unaddressed: %.40s", kp))
		}
	}

	// Channel length conventions
	if msg.Channel == domain.ChannelSlack && wordCount > slackLongWords {
		res.add(-slackLongPenalty, "slack draft too long")
	}
	if msg.Channel == domain.ChannelEmail && wordCount < emailShortWords {
		res.add(-emailShortPenalty, "email draft too short")
	}

	firstLine := strings.TrimSpace(firstDraftLine(draft))
	hasGreeting := greetingMarkerRe.MatchString(firstLine)
	hasClosing := closingMarkerRe.MatchString(lastDraftLine(draft))

	if msg.Channel == domain.ChannelEmail {
		if hasGreeting {
			res.add(emailGreetingBonus, "email greeting present")
		}
		if hasClosing {
			res.add(emailClosingBonus, "email closing present")
		}
	}
	if msg.Channel == domain.ChannelSlack && hasGreeting && !strings.Contains(draftLower, "dear") {
		res.add(slackInformalBonus, "slack greeting kept informal")
	}

	// Urgency acknowledgment
	if analysis.Urgency >= highUrgency && !urgencyAckRe.MatchString(draft) {
		res.add(-urgencyMissPenalty, "high urgency not acknowledged")
	}

	// Approval guardrail
	if analysis.Intent == domain.IntentApprovalRequest && strings.Contains(draftLower, "i approve") {
		res.add(-autoApprovePenalty, "blanket approval language")
	}

	if rec != nil {
		scoreStyleAlignment(res, draft, draftLower, firstLine, msg, rec, wordCount, hasClosing)
	}

	if res.Score > scoreMax {
		res.Score = scoreMax
	}
	if res.Score < scoreMin {
		res.Score = scoreMin
	}
	return res
}

func scoreStyleAlignment(res *ScoreResult, draft, draftLower, firstLine string, msg *domain.UnifiedMessage, rec *domain.StyleRecord, wordCount int, hasClosing bool) {
	isEmail := msg.Channel == domain.ChannelEmail

	// Greeting against the profile template
	if rec.GreetingStyle != "" {
		prefix := greetingPrefix(rec.GreetingStyle)
		if prefix != "" && strings.HasPrefix(strings.ToLower(firstLine), prefix) {
			res.add(greetingMatchBonus, "greeting matches profile")
		} else if isEmail {
			res.add(-greetingMissPenalty, "greeting differs from profile")
			res.mismatch(fmt.Sprintf("open with %q", rec.GreetingStyle))
		}
	}

	// Closing against the profile (email only)
	if isEmail && rec.ClosingStyle != "" {
		if hasClosing && strings.Contains(draftLower, strings.ToLower(strings.TrimSuffix(rec.ClosingStyle, ","))) {
			res.add(closingMatchBonus, "closing matches profile")
		} else {
			res.add(-closingMissPenalty, "closing differs from profile")
			res.mismatch(fmt.Sprintf("close with %q", rec.ClosingStyle))
		}
	}

	// Contraction direction
	draftContracts := contractionCountRe.MatchString(draft)
	if draftContracts == rec.UsesContractions {
		res.add(contractionWeight, "contraction usage matches")
	} else {
		res.add(-contractionWeight, "contraction usage mismatched")
		if rec.UsesContractions {
			res.mismatch("use contractions (it's, don't, we'll)")
		} else {
			res.mismatch("avoid contractions; write forms out in full")
		}
	}

	// Exclamation habit
	draftExclaims := strings.Contains(draft, "!")
	wantExclaims := rec.Punctuation.ExclamationFrequency == domain.FreqModerate ||
		rec.Punctuation.ExclamationFrequency == domain.FreqFrequent
	if draftExclaims == wantExclaims {
		res.add(exclamationWeight, "exclamation habit matches")
	} else {
		res.add(-exclamationWeight, "exclamation habit mismatched")
	}

	// Length ratio against the profile average
	if rec.AvgWordsPerMessage > 0 {
		ratio := float64(wordCount) / float64(rec.AvgWordsPerMessage)
		if ratio >= lengthRatioLow && ratio <= lengthRatioHigh {
			res.add(lengthRatioWeight, "length in profile range")
		} else {
			res.add(-lengthRatioWeight, "length outside profile range")
			if ratio < lengthRatioLow {
				res.mismatch(fmt.Sprintf("draft is too short for this voice; aim for about %d words", rec.AvgWordsPerMessage))
			} else {
				res.mismatch(fmt.Sprintf("draft is too long for this voice; aim for about %d words", rec.AvgWordsPerMessage))
			}
		}
	}

	// Paragraph shape
	if paragraphsMatch(draft, rec.ParagraphStyle) {
		res.add(paragraphMatchBonus, "paragraph shape matches")
	}

	// Pronoun direction
	if pronounsMatch(draft, rec.PronounPreference) {
		res.add(pronounMatchBonus, "pronoun direction matches")
	}

	// Follow-up question habit
	draftAsks := strings.Contains(draft, "?")
	if rec.AsksFollowUpQs && draftAsks {
		res.add(questionMatchBonus, "follow-up question present")
	} else if !rec.AsksFollowUpQs && !draftAsks {
		res.add(questionBothAbsent, "no follow-up question, as usual")
	}

	// Emoji
	draftHasEmoji := containsEmoji(draft)
	if rec.EmojiUsage == domain.EmojiNone {
		if draftHasEmoji {
			res.add(-emojiMismatchPenalty, "emoji against profile")
		} else {
			res.add(emojiMatchBonus, "no emoji, matching profile")
		}
	} else if draftHasEmoji {
		res.add(emojiMatchBonus, "emoji matching profile")
	}

	// Sign-off name (email only)
	if isEmail && rec.SignOffName != "" && strings.Contains(draft, rec.SignOffName) {
		res.add(signOffBonus, "sign-off name present")
	}

	// Characteristic transitions
	found := 0
	for _, tr := range rec.CommonTransitions {
		if strings.Contains(draftLower, strings.ToLower(tr)) {
			res.add(transitionBonus, "transition phrase: "+tr)
			found++
			if found >= maxTransitionBonuses {
				break
			}
		}
	}
}

var contractionCountRe = regexp.MustCompile(`(?i)\b\w+'(s|t|re|ve|ll|d|m)\b`)

func (r *ScoreResult) add(delta int, note string) {
	r.Score += delta
	r.Trace = append(r.Trace, fmt.Sprintf("%+d %s", delta, note))
}

func (r *ScoreResult) mismatch(m string) {
	r.Mismatches = append(r.Mismatches, m)
}

func keyPointAddressed(keyPoint, draftLower string) bool {
	for _, w := range strings.Fields(strings.ToLower(keyPoint)) {
		w = strings.Trim(w, ".,!?;:()\"'")
		if len(w) < 4 || scoreStopwords[w] {
			continue
		}
		if strings.Contains(draftLower, w) {
			return true
		}
	}
	return false
}

func firstDraftLine(draft string) string {
	for _, line := range strings.Split(draft, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			return t
		}
	}
	return ""
}

func lastDraftLine(draft string) string {
	lines := strings.Split(draft, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		t := strings.TrimSpace(lines[i])
		if t == "" {
			continue
		}
		// Skip a bare sign-off name so the closing phrase above it is seen.
		if i > 0 && len(strings.Fields(t)) <= 2 && !strings.ContainsAny(t, ".!?") {
			continue
		}
		return t
	}
	return ""
}

// greetingPrefix extracts the literal part of a greeting template before
// any [name] placeholder.
func greetingPrefix(template string) string {
	if i := strings.Index(template, "["); i > 0 {
		return strings.ToLower(strings.TrimSpace(template[:i]))
	}
	return strings.ToLower(strings.TrimSuffix(template, ","))
}

func paragraphsMatch(draft string, style domain.ParagraphStyle) bool {
	paras := 0
	for _, p := range strings.Split(draft, "\n\n") {
		if strings.TrimSpace(p) != "" {
			paras++
		}
	}
	switch style {
	case domain.ParagraphOneLiners, domain.ParagraphSingleBlock:
		return paras <= 1
	case domain.ParagraphShort:
		return paras >= 2 && paras <= 3
	case domain.ParagraphWellStructured:
		return paras >= 3
	}
	return false
}

func pronounsMatch(draft string, pref domain.PronounPreference) bool {
	singular := len(singularDraftRe.FindAllStringIndex(draft, -1))
	plural := len(pluralDraftRe.FindAllStringIndex(draft, -1))
	switch pref {
	case domain.PronounIFocused:
		return singular > plural
	case domain.PronounWeFocused:
		return plural > singular
	case domain.PronounAvoids:
		return singular+plural <= 1
	}
	return false
}

var singularDraftRe = regexp.MustCompile(`(?i)\b(i|me|my|i'm|i'll|i've)\b`)

var pluralDraftRe = regexp.MustCompile(`(?i)\b(we|us|our|we're|we'll|we've)\b`)

func containsEmoji(s string) bool {
	for _, r := range s {
		if (r >= 0x1F300 && r <= 0x1FAFF) || (r >= 0x2600 && r <= 0x27BF) {
			return true
		}
	}
	return false
}
