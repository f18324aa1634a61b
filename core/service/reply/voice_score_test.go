package reply

import (
	"strings"
	"testing"

	"voice_server/core/domain"
)

func TestScoreSlackLongDraftWithMisses(t *testing.T) {
	// 209 words of filler: over the slack limit, addresses no key point,
	// never acknowledges urgency, no greeting.
	sentence := "The team met earlier and reviewed the open items in detail. "
	draft := strings.Repeat(sentence, 19)

	msg := &domain.UnifiedMessage{Channel: domain.ChannelSlack, FullMessage: "x"}
	analysis := &domain.MessageAnalysis{
		Intent:  domain.IntentQuestion,
		Urgency: 8,
		KeyPoints: []string{
			"send the budget numbers for the quarter",
			"confirm the vendor contract status",
			"share the hiring update",
		},
	}

	res := Score(draft, msg, analysis, nil)
	// 80 - 3*3 key points - 5 slack length - 5 urgency = 61
	if res.Score != 61 {
		t.Errorf("score = %d, want 61\ntrace: %v", res.Score, res.Trace)
	}
}

func TestScoreClampFloor(t *testing.T) {
	kps := make([]string, 10)
	for i := range kps {
		kps[i] = "finalize the quarterly projections document"
	}
	msg := &domain.UnifiedMessage{Channel: domain.ChannelEmail, FullMessage: "x"}
	analysis := &domain.MessageAnalysis{Intent: domain.IntentQuestion, Urgency: 9, KeyPoints: kps}

	res := Score("ok", msg, analysis, nil)
	if res.Score != scoreMin {
		t.Errorf("score = %d, want clamped to %d", res.Score, scoreMin)
	}
}

func TestScoreClampCeiling(t *testing.T) {
	rec := &domain.StyleRecord{
		GreetingStyle:      "Hi [name],",
		ClosingStyle:       "Best,",
		SignOffName:        "Sam",
		UsesContractions:   true,
		AvgWordsPerMessage: 40,
		ParagraphStyle:     domain.ParagraphWellStructured,
		PronounPreference:  domain.PronounIFocused,
		AsksFollowUpQs:     true,
		EmojiUsage:         domain.EmojiNone,
		CommonTransitions:  []string{"also"},
		Punctuation: domain.PunctuationProfile{
			ExclamationFrequency: domain.FreqModerate,
		},
	}
	draft := "Hi Dana,\n\n" +
		"Thanks! I'll send the budget numbers today and I'm also confirming the vendor contract status.\n\n" +
		"I reviewed the hiring plan update and it's ready for you. Do you want the full breakdown?\n\n" +
		"Best,\nSam"
	msg := &domain.UnifiedMessage{Channel: domain.ChannelEmail, FullMessage: "x"}
	analysis := &domain.MessageAnalysis{
		Intent:  domain.IntentQuestion,
		Urgency: 5,
		KeyPoints: []string{
			"send the budget numbers",
			"vendor contract status",
			"hiring plan update",
			"full breakdown requested",
		},
	}

	res := Score(draft, msg, analysis, rec)
	if res.Score != scoreMax {
		t.Errorf("score = %d, want clamped to %d\ntrace: %v", res.Score, scoreMax, res.Trace)
	}
	if len(res.Mismatches) != 0 {
		t.Errorf("aligned draft should yield no mismatches, got %v", res.Mismatches)
	}
}

func TestScoreKeyPointCoverage(t *testing.T) {
	msg := &domain.UnifiedMessage{Channel: domain.ChannelSlack, FullMessage: "x"}
	analysis := &domain.MessageAnalysis{
		Intent:    domain.IntentQuestion,
		Urgency:   3,
		KeyPoints: []string{"confirm the deployment window"},
	}

	hit := Score("I can confirm the deployment is set.", msg, analysis, nil)
	miss := Score("Sounds fine to me.", msg, analysis, nil)
	if hit.Score <= miss.Score {
		t.Errorf("addressed key point (%d) must outscore a miss (%d)", hit.Score, miss.Score)
	}
}

func TestScoreAutoApprovePenalty(t *testing.T) {
	msg := &domain.UnifiedMessage{Channel: domain.ChannelSlack, FullMessage: "x"}
	analysis := &domain.MessageAnalysis{Intent: domain.IntentApprovalRequest, Urgency: 3}

	blanket := Score("I approve, go ahead.", msg, analysis, nil)
	careful := Score("Before sign-off, what drove the increase?", msg, analysis, nil)
	if blanket.Score >= careful.Score {
		t.Errorf("blanket approval (%d) must score below a guarded reply (%d)", blanket.Score, careful.Score)
	}
}

func TestScoreMismatchesFeedRefinement(t *testing.T) {
	rec := &domain.StyleRecord{
		GreetingStyle:      "Hey [name],",
		UsesContractions:   true,
		AvgWordsPerMessage: 50,
	}
	msg := &domain.UnifiedMessage{Channel: domain.ChannelSlack, FullMessage: "x"}
	analysis := &domain.MessageAnalysis{Intent: domain.IntentQuestion, Urgency: 3}

	res := Score("Understood.", msg, analysis, rec)

	wantContraction := "use contractions (it's, don't, we'll)"
	found := false
	for _, m := range res.Mismatches {
		if m == wantContraction {
			found = true
		}
	}
	if !found {
		t.Errorf("mismatches %v missing %q", res.Mismatches, wantContraction)
	}
	lengthFlagged := false
	for _, m := range res.Mismatches {
		if strings.Contains(m, "too short") {
			lengthFlagged = true
		}
	}
	if !lengthFlagged {
		t.Errorf("mismatches %v should flag the short draft", res.Mismatches)
	}
}

func TestScoreDeterministic(t *testing.T) {
	msg := &domain.UnifiedMessage{Channel: domain.ChannelEmail, FullMessage: "x"}
	analysis := &domain.MessageAnalysis{Intent: domain.IntentQuestion, Urgency: 6, KeyPoints: []string{"review the draft contract"}}
	rec := &domain.StyleRecord{UsesContractions: true, AvgWordsPerMessage: 30}

	draft := "Hi,\n\nI'll review the contract today and send notes.\n\nBest,"
	a := Score(draft, msg, analysis, rec)
	b := Score(draft, msg, analysis, rec)
	if a.Score != b.Score || len(a.Trace) != len(b.Trace) {
		t.Error("scoring must be deterministic")
	}
}
