// Package style implements voice fingerprinting: heuristic extraction of a
// multi-dimensional writing-style record from raw message samples, merging
// with an LLM-refined candidate, and rendering records as generation
// instructions.
package style

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"voice_server/core/domain"
)

// Extraction thresholds. Hoisted so each dimension can be tuned and tested
// independently of the algorithm shape.
const (
	formalityStrongRatio = 3.0
	formalityMildRatio   = 1.5

	emojiFrequentPerMsg = 3.0
	emojiModeratePerMsg = 1.0

	detailedWordsPerMsg = 120
	briefWordsPerMsg    = 40

	techVocabRatio    = 0.02
	advancedWordRatio = 0.12
	simpleWordRatio   = 0.04
	complexWordLen    = 10

	shortSentenceWords   = 10
	complexSentenceWords = 20

	allLowerMsgRatio  = 0.6
	titleCaseMsgRatio = 0.3

	exclamFrequentPerMsg = 3.0
	exclamModeratePerMsg = 1.0

	questionAlwaysRatio = 0.8
	questionRarelyRatio = 0.3

	pronounMinRatio    = 0.01
	iFocusedRatio      = 2.0
	weFocusedRatio     = 1.5
	followUpQsPerMsg   = 0.5
	contractionVsLong  = 0.5
	timeAwareHitRatio  = 0.2
	actionEndingRatio  = 0.3
	bulletMsgRatio     = 0.2

	baseConfidence      = 40
	confidencePerSample = 5
	confidencePreClamp  = 95
	confidenceMax       = 98
	longMsgBonusWords   = 50
	diversityBonusRatio = 0.4

	maxPhraseList = 5
)

// patternTemplate pairs a detection regex with the template reported for it.
// Slices of these are ordered: the first matching pattern wins per message,
// and tally ties resolve to the earliest-registered pattern.
type patternTemplate struct {
	re       *regexp.Regexp
	template string
}

var greetingPatterns = []patternTemplate{
	{regexp.MustCompile(`(?i)^hi\s+\w+`), "Hi [name],"},
	{regexp.MustCompile(`(?i)^hey\s+\w+`), "Hey [name],"},
	{regexp.MustCompile(`(?i)^hello\s+\w+`), "Hello [name],"},
	{regexp.MustCompile(`(?i)^dear\s+\w+`), "Dear [name],"},
	{regexp.MustCompile(`(?i)^good\s+(morning|afternoon|evening)`), "Good [time of day] [name],"},
	{regexp.MustCompile(`(?i)^hi[,!.]?\s*$`), "Hi,"},
	{regexp.MustCompile(`(?i)^hey[,!.]?\s*$`), "Hey,"},
	{regexp.MustCompile(`(?i)^hello[,!.]?\s*$`), "Hello,"},
	{regexp.MustCompile(`(?i)^greetings`), "Greetings,"},
	{regexp.MustCompile(`(?i)^hi\s+(all|team|everyone)`), "Hi team,"},
}

var closingPatterns = []patternTemplate{
	{regexp.MustCompile(`(?i)^best\s+regards[,!.]?`), "Best regards,"},
	{regexp.MustCompile(`(?i)^kind\s+regards[,!.]?`), "Kind regards,"},
	{regexp.MustCompile(`(?i)^warm\s+regards[,!.]?`), "Warm regards,"},
	{regexp.MustCompile(`(?i)^regards[,!.]?`), "Regards,"},
	{regexp.MustCompile(`(?i)^best[,!.]?\s*$`), "Best,"},
	{regexp.MustCompile(`(?i)^thanks[,!.]?\s*$`), "Thanks,"},
	{regexp.MustCompile(`(?i)^thank\s+you[,!.]?`), "Thank you,"},
	{regexp.MustCompile(`(?i)^thanks\s+so\s+much`), "Thanks so much,"},
	{regexp.MustCompile(`(?i)^cheers[,!.]?`), "Cheers,"},
	{regexp.MustCompile(`(?i)^sincerely[,!.]?`), "Sincerely,"},
	{regexp.MustCompile(`(?i)^talk\s+soon`), "Talk soon,"},
	{regexp.MustCompile(`(?i)^take\s+care`), "Take care,"},
}

var humorPatterns = []patternTemplate{
	{regexp.MustCompile(`(?i)\b(haha+|hehe+|lol|lmao|rofl)\b`), "playful"},
	{regexp.MustCompile(`[\x{1F600}-\x{1F64F}]`), "playful"},
	{regexp.MustCompile(`(?i)\b(just kidding|jk|only joking)\b`), "playful"},
	{regexp.MustCompile(`(?i)\b(ironically|as usual|of course it broke|classic)\b`), "dry"},
	{regexp.MustCompile(`;\)`), "witty"},
}

var acknowledgmentPatterns = []patternTemplate{
	{regexp.MustCompile(`(?i)\bthanks for\b`), "Thanks for"},
	{regexp.MustCompile(`(?i)\bthank you for\b`), "Thank you for"},
	{regexp.MustCompile(`(?i)\bgot it\b`), "Got it"},
	{regexp.MustCompile(`(?i)\bsounds good\b`), "Sounds good"},
	{regexp.MustCompile(`(?i)\bappreciate\b`), "I appreciate"},
	{regexp.MustCompile(`(?i)\bnoted\b`), "Noted"},
	{regexp.MustCompile(`(?i)\bwill do\b`), "Will do"},
	{regexp.MustCompile(`(?i)\bmakes sense\b`), "Makes sense"},
}

var formalMarkers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bdear\b`),
	regexp.MustCompile(`(?i)\bsincerely\b`),
	regexp.MustCompile(`(?i)\bregards\b`),
	regexp.MustCompile(`(?i)\brespectfully\b`),
	regexp.MustCompile(`(?i)\bkindly\b`),
	regexp.MustCompile(`(?i)\bpursuant\b`),
	regexp.MustCompile(`(?i)\bhereby\b`),
	regexp.MustCompile(`(?i)\bfurthermore\b`),
	regexp.MustCompile(`(?i)\bnevertheless\b`),
	regexp.MustCompile(`(?i)\bI would appreciate\b`),
	regexp.MustCompile(`(?i)\bplease find attached\b`),
	regexp.MustCompile(`(?i)\bper our conversation\b`),
	regexp.MustCompile(`(?i)\bat your earliest convenience\b`),
	regexp.MustCompile(`(?i)\bto whom it may concern\b`),
}

var casualMarkers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bhey\b`),
	regexp.MustCompile(`(?i)\byeah\b`),
	regexp.MustCompile(`(?i)\byep\b`),
	regexp.MustCompile(`(?i)\bnope\b`),
	regexp.MustCompile(`(?i)\bgonna\b`),
	regexp.MustCompile(`(?i)\bwanna\b`),
	regexp.MustCompile(`(?i)\bgotta\b`),
	regexp.MustCompile(`(?i)\bkinda\b`),
	regexp.MustCompile(`(?i)\bcool\b`),
	regexp.MustCompile(`(?i)\bawesome\b`),
	regexp.MustCompile(`(?i)\bstuff\b`),
	regexp.MustCompile(`(?i)\bbtw\b`),
	regexp.MustCompile(`(?i)\bfyi\b`),
	regexp.MustCompile(`(?i)\blol\b`),
	regexp.MustCompile(`(?i)\bhaha+\b`),
	regexp.MustCompile(`(?i)\bno worries\b`),
}

var technicalTerms = map[string]bool{
	"api": true, "endpoint": true, "database": true, "deploy": true,
	"deployment": true, "server": true, "latency": true, "query": true,
	"backend": true, "frontend": true, "repository": true, "pipeline": true,
	"kubernetes": true, "docker": true, "schema": true, "migration": true,
	"regression": true, "throughput": true, "refactor": true, "rollback": true,
	"config": true, "configuration": true, "integration": true, "webhook": true,
	"sdk": true, "oauth": true, "token": true, "cache": true, "runtime": true,
	"algorithm": true, "infrastructure": true, "provisioning": true,
}

var contractionRe = regexp.MustCompile(`(?i)\b\w+'(s|t|re|ve|ll|d|m)\b`)

var expandedFormRe = regexp.MustCompile(`(?i)\b(do not|does not|did not|cannot|can not|will not|would not|should not|could not|is not|are not|was not|were not|have not|has not|had not|I am|I will|I have|we are|we will|we have|it is|that is|there is)\b`)

var slangRe = regexp.MustCompile(`(?i)\b(gonna|wanna|gotta|kinda|sorta|dunno|lemme|gimme|y'all|ain't|lol|lmao|omg|tbh|imo|idk)\b`)

var titleCaseRe = regexp.MustCompile(`^(?:[A-Z][a-z]*\s+){2,}[A-Z][a-z]*`)

var bulletLineRe = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s+`)

var timeAwareRe = regexp.MustCompile(`(?i)\b(by eod|by end of day|by tomorrow|by friday|by monday|by next week|this week|deadline|asap|end of (the )?day|before the meeting|by close of business|eta)\b`)

var actionEndingRe = regexp.MustCompile(`(?i)\b(let me know|can you|could you|please (send|review|confirm|check|update|share)|i'?ll follow up|next steps?|circle back|get back to me|will follow up)\b`)

var interrogativeLeadRe = regexp.MustCompile(`(?i)^(what|when|where|who|why|how|can|could|would|will|shall|should|do|does|did|is|are|was|were|have|has|any chance)\b`)

var singularPronounRe = regexp.MustCompile(`(?i)\b(i|me|my|mine|myself|i'm|i'll|i've|i'd)\b`)

var pluralPronounRe = regexp.MustCompile(`(?i)\b(we|us|our|ours|ourselves|we're|we'll|we've|we'd)\b`)

var knownTransitions = []string{
	"however", "that said", "on the other hand", "in addition", "additionally",
	"also", "meanwhile", "in the meantime", "as a result", "therefore",
	"separately", "on a related note", "moving on", "to follow up",
	"with that in mind", "for context",
}

var knownHedgeWords = []string{
	"maybe", "perhaps", "i think", "probably", "might", "could be",
	"sort of", "kind of", "possibly", "it seems", "i believe", "i guess",
	"not sure but", "roughly", "more or less",
}

var signOffLineRe = regexp.MustCompile(`^[A-Z][a-zA-Z.\-]{1,20}(?:\s+[A-Z][a-zA-Z.\-]{1,20})?$`)

// Extractor produces a StyleRecord from raw message samples with no external
// dependency. Pure and deterministic: the same samples always yield the same
// record.
type Extractor struct{}

// NewExtractor creates a heuristic style extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract analyzes the ordered message bodies of one correspondent and
// returns a StyleRecord with everything but the provenance identity fields
// populated. Callers fill ContactID/Name/Email/Relationship.
func (e *Extractor) Extract(samples []string) *domain.StyleRecord {
	rec := &domain.StyleRecord{
		Formality:         domain.FormalityNeutral,
		VocabularyLevel:   domain.VocabModerate,
		HumorStyle:        "none",
		AverageLength:     domain.LengthModerate,
		SentenceStructure: domain.SentenceBalanced,
		ParagraphStyle:    domain.ParagraphSingleBlock,
		Capitalization:    domain.CapStandard,
		EmojiUsage:        domain.EmojiNone,
		PronounPreference: domain.PronounMixed,
		Punctuation: domain.PunctuationProfile{
			ExclamationFrequency: domain.FreqNever,
			QuestionMarkUsage:    domain.QuestionSometimes,
		},
		AnalyzedAt: time.Now().UTC(),
	}

	cleaned := make([]string, 0, len(samples))
	for _, s := range samples {
		if strings.TrimSpace(s) != "" {
			cleaned = append(cleaned, s)
		}
	}
	if len(cleaned) == 0 {
		return rec
	}

	msgCount := len(cleaned)
	all := strings.Join(cleaned, "\n\n")
	words := strings.Fields(all)
	totalWords := len(words)
	sentences := splitSentences(all)

	rec.MessageCount = msgCount
	rec.SampleCount = msgCount
	rec.AvgWordsPerMessage = totalWords / msgCount
	rec.AvgSentencesPerMsg = float64(len(sentences)) / float64(msgCount)

	rec.Formality = classifyFormality(all)
	rec.EmojiUsage = classifyEmojiUsage(all, msgCount)
	rec.AverageLength = classifyLength(totalWords, msgCount)
	rec.VocabularyLevel = classifyVocabulary(words)
	rec.SentenceStructure = classifySentenceStructure(sentences)
	rec.ParagraphStyle = classifyParagraphStyle(cleaned, rec.AvgWordsPerMessage)
	rec.Capitalization = classifyCapitalization(cleaned)
	rec.Punctuation = classifyPunctuation(all, cleaned, sentences)
	rec.PronounPreference = classifyPronouns(all, totalWords)

	rec.UsesContractions = usesContractions(all)
	rec.UsesSlang = slangRe.MatchString(all)
	rec.UsesBulletPoints = usesBullets(cleaned)
	rec.TimeAwareness = countMatches(timeAwareRe, all) > int(float64(msgCount)*timeAwareHitRatio)
	rec.EndsWithActionItems = endsWithActions(cleaned)
	rec.AsksFollowUpQs = float64(strings.Count(all, "?"))/float64(msgCount) > followUpQsPerMsg

	rec.GreetingStyle = pickTemplate(greetingPatterns, greetingLines(cleaned))
	rec.ClosingStyle = pickTemplate(closingPatterns, closingLines(cleaned))
	rec.SignOffName = pickSignOffName(cleaned)
	rec.HumorStyle = pickHumorStyle(all)
	rec.AcknowledgmentStyle = pickTemplate(acknowledgmentPatterns, cleaned)

	rec.CommonTransitions = collectPhrases(all, knownTransitions)
	rec.HedgeWords = collectPhrases(all, knownHedgeWords)

	rec.StyleConfidence = styleConfidence(msgCount, rec.AvgWordsPerMessage, words)

	return rec
}

func splitSentences(text string) []string {
	parts := regexp.MustCompile(`[.!?]+`).Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func countMatches(re *regexp.Regexp, text string) int {
	return len(re.FindAllStringIndex(text, -1))
}

func classifyFormality(all string) domain.Formality {
	formal, casual := 0, 0
	for _, re := range formalMarkers {
		formal += countMatches(re, all)
	}
	for _, re := range casualMarkers {
		casual += countMatches(re, all)
	}

	switch {
	case formal > 0 && float64(formal) > float64(casual)*formalityStrongRatio:
		return domain.FormalityVeryFormal
	case formal > 0 && float64(formal) > float64(casual)*formalityMildRatio:
		return domain.FormalityFormal
	case casual > 0 && float64(casual) > float64(formal)*formalityStrongRatio:
		return domain.FormalityVeryCasual
	case casual > 0 && float64(casual) > float64(formal)*formalityMildRatio:
		return domain.FormalityCasual
	default:
		return domain.FormalityNeutral
	}
}

func classifyEmojiUsage(all string, msgCount int) domain.EmojiUsage {
	count := 0
	for _, r := range all {
		if isEmojiRune(r) {
			count++
		}
	}
	perMsg := float64(count) / float64(msgCount)
	switch {
	case perMsg > emojiFrequentPerMsg:
		return domain.EmojiFrequent
	case perMsg > emojiModeratePerMsg:
		return domain.EmojiModerate
	case count > 0:
		return domain.EmojiMinimal
	default:
		return domain.EmojiNone
	}
}

func isEmojiRune(r rune) bool {
	return (r >= 0x1F300 && r <= 0x1FAFF) ||
		(r >= 0x2600 && r <= 0x27BF) ||
		(r >= 0x1F1E6 && r <= 0x1F1FF)
}

func classifyLength(totalWords, msgCount int) domain.MessageLength {
	avg := totalWords / msgCount
	switch {
	case avg > detailedWordsPerMsg:
		return domain.LengthDetailed
	case avg < briefWordsPerMsg:
		return domain.LengthBrief
	default:
		return domain.LengthModerate
	}
}

func classifyVocabulary(words []string) domain.VocabularyLevel {
	if len(words) == 0 {
		return domain.VocabModerate
	}
	complexCount, techCount := 0, 0
	for _, w := range words {
		w = strings.ToLower(strings.Trim(w, ".,!?;:()\"'"))
		if len(w) >= complexWordLen {
			complexCount++
		}
		if technicalTerms[w] {
			techCount++
		}
	}
	total := float64(len(words))
	switch {
	case float64(techCount)/total > techVocabRatio:
		return domain.VocabTechnical
	case float64(complexCount)/total > advancedWordRatio:
		return domain.VocabAdvanced
	case float64(complexCount)/total < simpleWordRatio:
		return domain.VocabSimple
	default:
		return domain.VocabModerate
	}
}

func classifySentenceStructure(sentences []string) domain.SentenceStructure {
	if len(sentences) == 0 {
		return domain.SentenceBalanced
	}
	total := 0
	for _, s := range sentences {
		total += len(strings.Fields(s))
	}
	avg := float64(total) / float64(len(sentences))
	switch {
	case avg < shortSentenceWords:
		return domain.SentenceShortDirect
	case avg > complexSentenceWords:
		return domain.SentenceComplexDetailed
	default:
		return domain.SentenceBalanced
	}
}

func classifyParagraphStyle(msgs []string, avgWords int) domain.ParagraphStyle {
	totalParas := 0
	for _, m := range msgs {
		paras := 0
		for _, p := range strings.Split(m, "\n\n") {
			if strings.TrimSpace(p) != "" {
				paras++
			}
		}
		if paras == 0 {
			paras = 1
		}
		totalParas += paras
	}
	avgParas := float64(totalParas) / float64(len(msgs))

	switch {
	case avgWords < 15 && avgParas <= 1.2:
		return domain.ParagraphOneLiners
	case avgParas <= 1.2:
		return domain.ParagraphSingleBlock
	case avgParas < 3:
		return domain.ParagraphShort
	default:
		return domain.ParagraphWellStructured
	}
}

func classifyCapitalization(msgs []string) domain.Capitalization {
	lowerStart, titleCase := 0, 0
	for _, m := range msgs {
		t := strings.TrimSpace(m)
		if t == "" {
			continue
		}
		first := []rune(t)[0]
		if unicode.IsLower(first) {
			lowerStart++
		}
		if titleCaseRe.MatchString(firstLine(t)) {
			titleCase++
		}
	}
	n := float64(len(msgs))
	switch {
	case float64(lowerStart)/n > allLowerMsgRatio:
		return domain.CapAllLower
	case float64(titleCase)/n > titleCaseMsgRatio:
		return domain.CapTitleCase
	default:
		return domain.CapStandard
	}
}

func classifyPunctuation(all string, msgs []string, sentences []string) domain.PunctuationProfile {
	p := domain.PunctuationProfile{
		UsesEllipsis:    strings.Contains(all, "...") || strings.Contains(all, "…"),
		UsesEmDash:      strings.Contains(all, "—") || strings.Contains(all, " -- "),
		UsesSemicolons:  strings.Contains(all, ";"),
		UsesParentheses: strings.Contains(all, "(") && strings.Contains(all, ")"),
	}

	exclaims := strings.Count(all, "!")
	perMsg := float64(exclaims) / float64(len(msgs))
	switch {
	case perMsg > exclamFrequentPerMsg:
		p.ExclamationFrequency = domain.FreqFrequent
	case perMsg > exclamModeratePerMsg:
		p.ExclamationFrequency = domain.FreqModerate
	case exclaims == 0:
		p.ExclamationFrequency = domain.FreqNever
	default:
		p.ExclamationFrequency = domain.FreqRare
	}

	// Question-mark discipline: of sentences that read as questions, how
	// many actually got a question mark.
	interrogatives := 0
	for _, s := range sentences {
		if interrogativeLeadRe.MatchString(s) {
			interrogatives++
		}
	}
	questionMarks := strings.Count(all, "?")
	if interrogatives > 0 {
		ratio := float64(questionMarks) / float64(interrogatives)
		switch {
		case ratio > questionAlwaysRatio:
			p.QuestionMarkUsage = domain.QuestionAlways
		case ratio < questionRarelyRatio:
			p.QuestionMarkUsage = domain.QuestionRarely
		default:
			p.QuestionMarkUsage = domain.QuestionSometimes
		}
	} else if questionMarks > 0 {
		p.QuestionMarkUsage = domain.QuestionAlways
	} else {
		p.QuestionMarkUsage = domain.QuestionSometimes
	}

	return p
}

func classifyPronouns(all string, totalWords int) domain.PronounPreference {
	if totalWords == 0 {
		return domain.PronounMixed
	}
	singular := countMatches(singularPronounRe, all)
	plural := countMatches(pluralPronounRe, all)
	total := singular + plural

	switch {
	case float64(total) < float64(totalWords)*pronounMinRatio:
		return domain.PronounAvoids
	case float64(singular) > float64(plural)*iFocusedRatio:
		return domain.PronounIFocused
	case float64(plural) > float64(singular)*weFocusedRatio:
		return domain.PronounWeFocused
	default:
		return domain.PronounMixed
	}
}

func usesContractions(all string) bool {
	contractions := countMatches(contractionRe, all)
	expanded := countMatches(expandedFormRe, all)
	return float64(contractions) > float64(expanded)*contractionVsLong && contractions > 0
}

func usesBullets(msgs []string) bool {
	withBullets := 0
	for _, m := range msgs {
		for _, line := range strings.Split(m, "\n") {
			if bulletLineRe.MatchString(line) {
				withBullets++
				break
			}
		}
	}
	return float64(withBullets)/float64(len(msgs)) > bulletMsgRatio
}

func endsWithActions(msgs []string) bool {
	hits := 0
	for _, m := range msgs {
		lines := nonEmptyLines(m)
		if len(lines) == 0 {
			continue
		}
		tail := lines[len(lines)-1]
		if len(lines) >= 2 {
			tail = lines[len(lines)-2] + " " + tail
		}
		if actionEndingRe.MatchString(tail) {
			hits++
		}
	}
	return float64(hits)/float64(len(msgs)) > actionEndingRatio
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func nonEmptyLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func greetingLines(msgs []string) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		lines := nonEmptyLines(m)
		if len(lines) > 0 {
			out = append(out, lines[0])
		}
	}
	return out
}

func closingLines(msgs []string) []string {
	var out []string
	for _, m := range msgs {
		lines := nonEmptyLines(m)
		start := len(lines) - 3
		if start < 0 {
			start = 0
		}
		out = append(out, strings.Join(lines[start:], "\n"))
	}
	return out
}

// pickTemplate tallies first-match wins per candidate text, then selects the
// template with the highest tally. Ties resolve to the earliest-registered
// pattern (strict > while scanning in registration order).
func pickTemplate(patterns []patternTemplate, candidates []string) string {
	tallies := make([]int, len(patterns))
	for _, text := range candidates {
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			matched := false
			for i, p := range patterns {
				if p.re.MatchString(line) {
					tallies[i]++
					matched = true
					break
				}
			}
			if matched {
				break
			}
		}
	}

	best, bestCount := "", 0
	for i, count := range tallies {
		if count > bestCount {
			best = patterns[i].template
			bestCount = count
		}
	}
	return best
}

func pickSignOffName(msgs []string) string {
	tallies := map[string]int{}
	var order []string
	for _, m := range msgs {
		lines := nonEmptyLines(m)
		if len(lines) < 2 {
			continue
		}
		last := lines[len(lines)-1]
		if signOffLineRe.MatchString(last) && !looksLikeClosing(last) {
			if tallies[last] == 0 {
				order = append(order, last)
			}
			tallies[last]++
		}
	}

	best, bestCount := "", 0
	for _, name := range order {
		if tallies[name] > bestCount {
			best = name
			bestCount = tallies[name]
		}
	}
	return best
}

func looksLikeClosing(line string) bool {
	for _, p := range closingPatterns {
		if p.re.MatchString(line) {
			return true
		}
	}
	return false
}

func pickHumorStyle(all string) string {
	tallies := make([]int, len(humorPatterns))
	for i, p := range humorPatterns {
		tallies[i] = countMatches(p.re, all)
	}
	best, bestCount := "none", 0
	for i, count := range tallies {
		if count > bestCount {
			best = humorPatterns[i].template
			bestCount = count
		}
	}
	return best
}

// collectPhrases returns the known phrases present in the text, in lexicon
// order, capped at maxPhraseList.
func collectPhrases(all string, lexicon []string) []string {
	lower := strings.ToLower(all)
	var out []string
	for _, phrase := range lexicon {
		if strings.Contains(lower, phrase) {
			out = append(out, phrase)
			if len(out) >= maxPhraseList {
				break
			}
		}
	}
	return out
}

func styleConfidence(msgCount, avgWords int, words []string) int {
	conf := baseConfidence + confidencePerSample*msgCount
	if conf > confidencePreClamp {
		conf = confidencePreClamp
	}
	if avgWords > longMsgBonusWords {
		conf += 5
	}
	if vocabularyDiversity(words) > diversityBonusRatio {
		conf += 5
	}
	if conf > confidenceMax {
		conf = confidenceMax
	}
	if conf < 0 {
		conf = 0
	}
	return conf
}

func vocabularyDiversity(words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	unique := map[string]bool{}
	for _, w := range words {
		unique[strings.ToLower(strings.Trim(w, ".,!?;:()\"'"))] = true
	}
	return float64(len(unique)) / float64(len(words))
}
