package domain

import (
	"time"
)

// Channel identifies one communication surface with its own tone conventions.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSlack Channel = "slack"
	ChannelTeams Channel = "teams"
)

// Formality is a 5-level ordinal scale of how formal a writer is.
type Formality string

const (
	FormalityVeryFormal Formality = "very_formal"
	FormalityFormal     Formality = "formal"
	FormalityNeutral    Formality = "neutral"
	FormalityCasual     Formality = "casual"
	FormalityVeryCasual Formality = "very_casual"
)

// VocabularyLevel classifies the writer's word choice.
type VocabularyLevel string

const (
	VocabSimple    VocabularyLevel = "simple"
	VocabModerate  VocabularyLevel = "moderate"
	VocabAdvanced  VocabularyLevel = "advanced"
	VocabTechnical VocabularyLevel = "technical"
)

// MessageLength buckets the average message size.
type MessageLength string

const (
	LengthBrief    MessageLength = "brief"
	LengthModerate MessageLength = "moderate"
	LengthDetailed MessageLength = "detailed"
)

// SentenceStructure classifies average sentence complexity.
type SentenceStructure string

const (
	SentenceShortDirect     SentenceStructure = "short_direct"
	SentenceBalanced        SentenceStructure = "balanced"
	SentenceComplexDetailed SentenceStructure = "complex_detailed"
)

// ParagraphStyle classifies how the writer breaks up text.
type ParagraphStyle string

const (
	ParagraphOneLiners      ParagraphStyle = "one_liners"
	ParagraphSingleBlock    ParagraphStyle = "single_block"
	ParagraphShort          ParagraphStyle = "short_paragraphs"
	ParagraphWellStructured ParagraphStyle = "well_structured"
)

// Capitalization classifies the writer's casing habit.
type Capitalization string

const (
	CapStandard  Capitalization = "standard"
	CapAllLower  Capitalization = "all_lower"
	CapTitleCase Capitalization = "title_case"
)

// UsageFrequency is a generic never/rare/moderate/frequent scale.
type UsageFrequency string

const (
	FreqNever    UsageFrequency = "never"
	FreqRare     UsageFrequency = "rare"
	FreqModerate UsageFrequency = "moderate"
	FreqFrequent UsageFrequency = "frequent"
)

// EmojiUsage buckets emoji density per message.
type EmojiUsage string

const (
	EmojiNone     EmojiUsage = "none"
	EmojiMinimal  EmojiUsage = "minimal"
	EmojiModerate EmojiUsage = "moderate"
	EmojiFrequent EmojiUsage = "frequent"
)

// QuestionUsage classifies how often question marks close interrogatives.
type QuestionUsage string

const (
	QuestionAlways    QuestionUsage = "always"
	QuestionSometimes QuestionUsage = "sometimes"
	QuestionRarely    QuestionUsage = "rarely"
)

// PronounPreference classifies first-person voice.
type PronounPreference string

const (
	PronounIFocused  PronounPreference = "i_focused"
	PronounWeFocused PronounPreference = "we_focused"
	PronounMixed     PronounPreference = "mixed"
	PronounAvoids    PronounPreference = "avoids_pronouns"
)

// Relationship classifies the correspondent relative to the user.
type Relationship string

const (
	RelationManager      Relationship = "manager"
	RelationPeer         Relationship = "peer"
	RelationDirectReport Relationship = "direct_report"
	RelationClient       Relationship = "external_client"
	RelationVendor       Relationship = "vendor"
	RelationUnknown      Relationship = "unknown"
)

// PunctuationProfile captures punctuation habits.
type PunctuationProfile struct {
	ExclamationFrequency UsageFrequency `json:"exclamation_frequency"`
	UsesEllipsis         bool           `json:"uses_ellipsis"`
	UsesEmDash           bool           `json:"uses_em_dash"`
	QuestionMarkUsage    QuestionUsage  `json:"question_mark_usage"`
	UsesSemicolons       bool           `json:"uses_semicolons"`
	UsesParentheses      bool           `json:"uses_parentheses"`
}

// StyleRecord is the voice fingerprint for one correspondent or one user.
// Records are produced wholesale by one extraction run and are immutable;
// a later run fully replaces the prior record for the same key.
type StyleRecord struct {
	// Tone
	Formality       Formality       `json:"formality"`
	VocabularyLevel VocabularyLevel `json:"vocabulary_level"`
	HumorStyle      string          `json:"humor_style"`
	UsesSlang       bool            `json:"uses_slang"`

	// Length and structure
	AverageLength       MessageLength     `json:"average_length"`
	AvgWordsPerMessage  int               `json:"avg_words_per_message"`
	AvgSentencesPerMsg  float64           `json:"avg_sentences_per_message"`
	SentenceStructure   SentenceStructure `json:"sentence_structure"`
	ParagraphStyle      ParagraphStyle    `json:"paragraph_style"`

	// Formatting
	Capitalization   Capitalization     `json:"capitalization"`
	Punctuation      PunctuationProfile `json:"punctuation"`
	EmojiUsage       EmojiUsage         `json:"emoji_usage"`
	UsesBulletPoints bool               `json:"uses_bullet_points"`
	UsesContractions bool               `json:"uses_contractions"`

	// Opening / closing
	GreetingStyle string `json:"greeting_style"`
	ClosingStyle  string `json:"closing_style"`
	SignOffName   string `json:"sign_off_name"`

	// Voice
	PronounPreference    PronounPreference `json:"pronoun_preference"`
	AsksFollowUpQs       bool              `json:"asks_follow_up_questions"`
	AcknowledgmentStyle  string            `json:"acknowledgment_style"`
	TimeAwareness        bool              `json:"time_awareness"`
	EndsWithActionItems  bool              `json:"ends_with_action_items"`
	CommonTransitions    []string          `json:"common_transitions"`
	HedgeWords           []string          `json:"hedge_words"`

	// Provenance
	ContactID         string       `json:"contact_id"`
	ContactName       string       `json:"contact_name"`
	ContactEmail      string       `json:"contact_email,omitempty"`
	Relationship      Relationship `json:"relationship"`
	TypicalCategories []string     `json:"typical_categories"`
	SampleCount       int          `json:"sample_count"`
	StyleConfidence   int          `json:"style_confidence"` // 0-99
	AnalyzedAt        time.Time    `json:"analyzed_at"`
	MessageCount      int          `json:"message_count"`
}

// ContactKey returns the grouping identity for this record: the lowercase
// email when present, otherwise the display name.
func (r *StyleRecord) ContactKey() string {
	if r.ContactEmail != "" {
		return normalizeContactKey(r.ContactEmail)
	}
	return normalizeContactKey(r.ContactName)
}

// UserVoiceProfile aggregates learned style over one user, with a master
// record and channel-specific overrides.
type UserVoiceProfile struct {
	UserID            string                   `json:"user_id"`
	UserName          string                   `json:"user_name"`
	UserEmail         string                   `json:"user_email,omitempty"`
	MasterStyle       StyleRecord              `json:"master_style"`
	ChannelOverrides  map[Channel]*StyleRecord `json:"channel_overrides,omitempty"`
	MessagesAnalyzed  int                      `json:"messages_analyzed"`
	MessagesByChannel map[Channel]int          `json:"messages_by_channel"`
	Confidence        int                      `json:"confidence"` // 0-98
	IsReady           bool                     `json:"is_ready"`
	CreatedAt         time.Time                `json:"created_at"`
	UpdatedAt         time.Time                `json:"updated_at"`
}

// StyleFor returns the record to use for a channel: the override when one
// exists, otherwise the master record.
func (p *UserVoiceProfile) StyleFor(ch Channel) *StyleRecord {
	if p == nil {
		return nil
	}
	if o, ok := p.ChannelOverrides[ch]; ok && o != nil {
		return o
	}
	return &p.MasterStyle
}

// VoiceSummary is the operator-facing view of a learned profile.
type VoiceSummary struct {
	IsReady          bool     `json:"is_ready"`
	Confidence       int      `json:"confidence"`
	MessagesAnalyzed int      `json:"messages_analyzed"`
	KeyTraits        []string `json:"key_traits"`
	ChannelsCovered  []string `json:"channels_covered"`
}
