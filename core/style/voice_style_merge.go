package style

import (
	"sort"

	"voice_server/core/domain"
)

// Merge tuning. Field agreement between the heuristic and refined analyses
// raises confidence; the formality override is gated on refiner confidence.
const (
	defaultRefinerConfidence  = 70
	formalityOverrideMinConf  = 60
	formalityAgreementBonus   = 5
	sentenceAgreementBonus    = 3
	vocabularyAgreementBonus  = 3
	mergedConfidenceMax       = 99
	mergedListCap             = 10
)

// RefinedStyle is the candidate record proposed by the external refiner.
// Zero values mean "not provided": only provided fields override the
// heuristic record during merge.
type RefinedStyle struct {
	Formality         domain.Formality         `json:"formality,omitempty"`
	VocabularyLevel   domain.VocabularyLevel   `json:"vocabulary_level,omitempty"`
	HumorStyle        string                   `json:"humor_style,omitempty"`
	UsesSlang         *bool                    `json:"uses_slang,omitempty"`
	AverageLength     domain.MessageLength     `json:"average_length,omitempty"`
	SentenceStructure domain.SentenceStructure `json:"sentence_structure,omitempty"`
	ParagraphStyle    domain.ParagraphStyle    `json:"paragraph_style,omitempty"`
	Capitalization    domain.Capitalization    `json:"capitalization,omitempty"`
	EmojiUsage        domain.EmojiUsage        `json:"emoji_usage,omitempty"`
	UsesBulletPoints  *bool                    `json:"uses_bullet_points,omitempty"`
	UsesContractions  *bool                    `json:"uses_contractions,omitempty"`
	GreetingStyle     string                   `json:"greeting_style,omitempty"`
	ClosingStyle      string                   `json:"closing_style,omitempty"`
	SignOffName       string                   `json:"sign_off_name,omitempty"`
	PronounPreference domain.PronounPreference `json:"pronoun_preference,omitempty"`
	AcknowledgmentStyle string                 `json:"acknowledgment_style,omitempty"`
	CommonTransitions []string                 `json:"common_transitions,omitempty"`
	HedgeWords        []string                 `json:"hedge_words,omitempty"`
	Confidence        int                      `json:"confidence,omitempty"` // self-reported, 0-99
}

// MergeRefined combines the heuristic record with a refiner candidate.
// Every provided refiner field overrides the heuristic value, except
// formality which additionally requires refiner confidence above
// formalityOverrideMinConf. A nil candidate degrades to a pass-through of
// the heuristic record.
func MergeRefined(heuristic *domain.StyleRecord, refined *RefinedStyle) *domain.StyleRecord {
	merged := *heuristic
	if refined == nil {
		return &merged
	}

	refConf := refined.Confidence
	if refConf == 0 {
		refConf = defaultRefinerConfidence
	}

	bonus := 0
	if refined.Formality != "" && refined.Formality == heuristic.Formality {
		bonus += formalityAgreementBonus
	}
	if refined.SentenceStructure != "" && refined.SentenceStructure == heuristic.SentenceStructure {
		bonus += sentenceAgreementBonus
	}
	if refined.VocabularyLevel != "" && refined.VocabularyLevel == heuristic.VocabularyLevel {
		bonus += vocabularyAgreementBonus
	}

	if refined.Formality != "" && refConf > formalityOverrideMinConf {
		merged.Formality = refined.Formality
	}
	if refined.VocabularyLevel != "" {
		merged.VocabularyLevel = refined.VocabularyLevel
	}
	if refined.HumorStyle != "" {
		merged.HumorStyle = refined.HumorStyle
	}
	if refined.UsesSlang != nil {
		merged.UsesSlang = *refined.UsesSlang
	}
	if refined.AverageLength != "" {
		merged.AverageLength = refined.AverageLength
	}
	if refined.SentenceStructure != "" {
		merged.SentenceStructure = refined.SentenceStructure
	}
	if refined.ParagraphStyle != "" {
		merged.ParagraphStyle = refined.ParagraphStyle
	}
	if refined.Capitalization != "" {
		merged.Capitalization = refined.Capitalization
	}
	if refined.EmojiUsage != "" {
		merged.EmojiUsage = refined.EmojiUsage
	}
	if refined.UsesBulletPoints != nil {
		merged.UsesBulletPoints = *refined.UsesBulletPoints
	}
	if refined.UsesContractions != nil {
		merged.UsesContractions = *refined.UsesContractions
	}
	if refined.GreetingStyle != "" {
		merged.GreetingStyle = refined.GreetingStyle
	}
	if refined.ClosingStyle != "" {
		merged.ClosingStyle = refined.ClosingStyle
	}
	if refined.SignOffName != "" {
		merged.SignOffName = refined.SignOffName
	}
	if refined.PronounPreference != "" {
		merged.PronounPreference = refined.PronounPreference
	}
	if refined.AcknowledgmentStyle != "" {
		merged.AcknowledgmentStyle = refined.AcknowledgmentStyle
	}
	if len(refined.CommonTransitions) > 0 {
		merged.CommonTransitions = refined.CommonTransitions
	}
	if len(refined.HedgeWords) > 0 {
		merged.HedgeWords = refined.HedgeWords
	}

	conf := heuristic.StyleConfidence
	if refConf > conf {
		conf = refConf
	}
	conf += bonus
	if conf > mergedConfidenceMax {
		conf = mergedConfidenceMax
	}
	merged.StyleConfidence = conf

	return &merged
}

// MergeWeighted collapses several per-contact records into one. Numeric
// fields take the message-count-weighted average, formality takes the value
// carrying the greatest total message-count weight, and list fields take the
// set union capped at mergedListCap. Everything else follows the heaviest
// record so the result stays internally consistent.
func MergeWeighted(records []*domain.StyleRecord) *domain.StyleRecord {
	if len(records) == 0 {
		return nil
	}
	if len(records) == 1 {
		merged := *records[0]
		return &merged
	}

	// Heaviest record anchors the categorical fields.
	heaviest := records[0]
	for _, r := range records[1:] {
		if r.MessageCount > heaviest.MessageCount {
			heaviest = r
		}
	}
	merged := *heaviest

	totalWeight := 0
	wordsSum, sentencesSum, confSum := 0.0, 0.0, 0.0
	formalityWeight := map[domain.Formality]int{}
	for _, r := range records {
		w := r.MessageCount
		if w <= 0 {
			w = 1
		}
		totalWeight += w
		wordsSum += float64(r.AvgWordsPerMessage * w)
		sentencesSum += r.AvgSentencesPerMsg * float64(w)
		confSum += float64(r.StyleConfidence * w)
		formalityWeight[r.Formality] += w
	}

	merged.AvgWordsPerMessage = int(wordsSum / float64(totalWeight))
	merged.AvgSentencesPerMsg = sentencesSum / float64(totalWeight)
	merged.StyleConfidence = int(confSum / float64(totalWeight))

	// Formality follows the greatest total weight; ties resolve by scale
	// order so the outcome is deterministic.
	order := []domain.Formality{
		domain.FormalityVeryFormal, domain.FormalityFormal, domain.FormalityNeutral,
		domain.FormalityCasual, domain.FormalityVeryCasual,
	}
	bestW := -1
	for _, f := range order {
		if w := formalityWeight[f]; w > bestW {
			merged.Formality = f
			bestW = w
		}
	}

	merged.CommonTransitions = unionCapped(records, func(r *domain.StyleRecord) []string { return r.CommonTransitions })
	merged.HedgeWords = unionCapped(records, func(r *domain.StyleRecord) []string { return r.HedgeWords })

	sampleCount, msgCount := 0, 0
	for _, r := range records {
		sampleCount += r.SampleCount
		msgCount += r.MessageCount
	}
	merged.SampleCount = sampleCount
	merged.MessageCount = msgCount

	return &merged
}

func unionCapped(records []*domain.StyleRecord, get func(*domain.StyleRecord) []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range records {
		for _, s := range get(r) {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	sort.Strings(out)
	if len(out) > mergedListCap {
		out = out[:mergedListCap]
	}
	return out
}
