package style

import (
	"reflect"
	"testing"

	"voice_server/core/domain"
)

func TestMergeRefinedNilPassThrough(t *testing.T) {
	h := &domain.StyleRecord{
		Formality:       domain.FormalityCasual,
		StyleConfidence: 75,
	}
	got := MergeRefined(h, nil)
	if !reflect.DeepEqual(got, h) {
		t.Errorf("nil candidate must pass the heuristic record through, got %+v", got)
	}
	if got == h {
		t.Error("merge must return a copy, not alias the input")
	}
}

func TestMergeRefinedConfidence(t *testing.T) {
	h := &domain.StyleRecord{
		Formality:         domain.FormalityCasual,
		SentenceStructure: domain.SentenceBalanced,
		VocabularyLevel:   domain.VocabModerate,
		StyleConfidence:   60,
	}
	r := &RefinedStyle{
		Formality:  domain.FormalityCasual,
		Confidence: 75,
	}
	got := MergeRefined(h, r)
	// max(60,75) + 5 formality agreement = 80
	if got.StyleConfidence != 80 {
		t.Errorf("confidence = %d, want 80", got.StyleConfidence)
	}
}

func TestMergeRefinedConfidenceCap(t *testing.T) {
	h := &domain.StyleRecord{
		Formality:         domain.FormalityCasual,
		SentenceStructure: domain.SentenceBalanced,
		VocabularyLevel:   domain.VocabModerate,
		StyleConfidence:   98,
	}
	r := &RefinedStyle{
		Formality:         domain.FormalityCasual,
		SentenceStructure: domain.SentenceBalanced,
		VocabularyLevel:   domain.VocabModerate,
		Confidence:        95,
	}
	got := MergeRefined(h, r)
	if got.StyleConfidence != mergedConfidenceMax {
		t.Errorf("confidence = %d, want capped at %d", got.StyleConfidence, mergedConfidenceMax)
	}
}

func TestMergeRefinedFormalityGate(t *testing.T) {
	tests := []struct {
		name          string
		refinerConf   int
		wantFormality domain.Formality
	}{
		{"low confidence keeps heuristic", 50, domain.FormalityCasual},
		{"at threshold keeps heuristic", 60, domain.FormalityCasual},
		{"above threshold overrides", 61, domain.FormalityFormal},
		{"zero defaults to 70 and overrides", 0, domain.FormalityFormal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &domain.StyleRecord{Formality: domain.FormalityCasual, StyleConfidence: 70}
			r := &RefinedStyle{Formality: domain.FormalityFormal, Confidence: tt.refinerConf}
			got := MergeRefined(h, r)
			if got.Formality != tt.wantFormality {
				t.Errorf("formality = %s, want %s", got.Formality, tt.wantFormality)
			}
		})
	}
}

func TestMergeRefinedFieldOverrides(t *testing.T) {
	slang := true
	h := &domain.StyleRecord{
		GreetingStyle:    "Hi [name],",
		UsesSlang:        false,
		UsesContractions: true,
		HedgeWords:       []string{"maybe"},
	}
	r := &RefinedStyle{
		GreetingStyle: "Hey [name],",
		UsesSlang:     &slang,
		HedgeWords:    []string{"perhaps", "possibly"},
	}
	got := MergeRefined(h, r)

	if got.GreetingStyle != "Hey [name]," {
		t.Errorf("greeting = %q, want refiner override", got.GreetingStyle)
	}
	if !got.UsesSlang {
		t.Error("provided bool pointer must override")
	}
	if !got.UsesContractions {
		t.Error("unprovided field must keep heuristic value")
	}
	if !reflect.DeepEqual(got.HedgeWords, []string{"perhaps", "possibly"}) {
		t.Errorf("hedge words = %v, want refiner list", got.HedgeWords)
	}
}

func TestMergeWeighted(t *testing.T) {
	a := &domain.StyleRecord{
		Formality:          domain.FormalityCasual,
		AvgWordsPerMessage: 20,
		AvgSentencesPerMsg: 2,
		StyleConfidence:    60,
		CommonTransitions:  []string{"also", "however"},
		MessageCount:       30,
		SampleCount:        30,
	}
	b := &domain.StyleRecord{
		Formality:          domain.FormalityFormal,
		AvgWordsPerMessage: 80,
		AvgSentencesPerMsg: 5,
		StyleConfidence:    90,
		CommonTransitions:  []string{"however", "therefore"},
		MessageCount:       10,
		SampleCount:        10,
	}
	got := MergeWeighted([]*domain.StyleRecord{a, b})

	// (20*30 + 80*10) / 40 = 35
	if got.AvgWordsPerMessage != 35 {
		t.Errorf("avg words = %d, want 35", got.AvgWordsPerMessage)
	}
	// (60*30 + 90*10) / 40 = 67
	if got.StyleConfidence != 67 {
		t.Errorf("confidence = %d, want 67", got.StyleConfidence)
	}
	if got.Formality != domain.FormalityCasual {
		t.Errorf("formality = %s, want the heavier casual", got.Formality)
	}
	if !reflect.DeepEqual(got.CommonTransitions, []string{"also", "however", "therefore"}) {
		t.Errorf("transitions = %v, want sorted union", got.CommonTransitions)
	}
	if got.MessageCount != 40 || got.SampleCount != 40 {
		t.Errorf("counts = %d/%d, want 40/40", got.MessageCount, got.SampleCount)
	}
}

func TestMergeWeightedFormalityTie(t *testing.T) {
	a := &domain.StyleRecord{Formality: domain.FormalityVeryCasual, MessageCount: 10}
	b := &domain.StyleRecord{Formality: domain.FormalityFormal, MessageCount: 10}
	got := MergeWeighted([]*domain.StyleRecord{a, b})
	// Ties resolve by scale order, formal before very_casual.
	if got.Formality != domain.FormalityFormal {
		t.Errorf("formality = %s, want formal on tie", got.Formality)
	}
}

func TestMergeWeightedListCap(t *testing.T) {
	a := &domain.StyleRecord{
		HedgeWords:   []string{"a", "b", "c", "d", "e", "f"},
		MessageCount: 1,
	}
	b := &domain.StyleRecord{
		HedgeWords:   []string{"g", "h", "i", "j", "k", "l"},
		MessageCount: 1,
	}
	got := MergeWeighted([]*domain.StyleRecord{a, b})
	if len(got.HedgeWords) != mergedListCap {
		t.Errorf("union size = %d, want capped at %d", len(got.HedgeWords), mergedListCap)
	}
}

func TestMergeWeightedSingle(t *testing.T) {
	a := &domain.StyleRecord{Formality: domain.FormalityNeutral, MessageCount: 3}
	got := MergeWeighted([]*domain.StyleRecord{a})
	if got == a {
		t.Error("single-record merge must still copy")
	}
	if got.Formality != domain.FormalityNeutral {
		t.Errorf("formality = %s, want unchanged", got.Formality)
	}
	if MergeWeighted(nil) != nil {
		t.Error("empty input must yield nil")
	}
}
