// Package reply implements the reply-drafting pipeline: message analysis,
// strategy selection, draft generation with deterministic fallback, rule
// based scoring, and the bounded refinement loop.
package reply

import (
	"regexp"
	"strings"

	"voice_server/core/domain"
)

// Urgency scale tuning for the heuristic analyzer.
const (
	urgencySeed        = 5
	urgencyPhraseBoost = 2
	urgencyCalmDrop    = 2
	urgencySocialFloor = 1
	highUrgency        = 7
	mediumUrgency      = 4

	maxTopics    = 4
	maxKeyPoints = 4
	maxEntities  = 8
	minKeyPoint  = 20
)

// Intent cascade: priority-ordered keyword groups. The first group that
// fires wins; everything else falls through to information_sharing.
var approvalRe = regexp.MustCompile(`(?i)\b(approve|approval|sign[- ]?off|authoriz\w+|green[- ]?light|permission to)\b`)

var questionRe = regexp.MustCompile(`(?i)(\?|^(what|when|where|who|why|how|can you|could you|do you|would you|is there|are there)\b)`)

var urgentRe = regexp.MustCompile(`(?i)\b(urgent|asap|immediately|critical|emergency|right away|time[- ]sensitive|escalat\w+)\b`)

var followUpRe = regexp.MustCompile(`(?i)\b(follow(ing)? up|circling back|checking in|any update|just a reminder|bumping this|still waiting)\b`)

var socialRe = regexp.MustCompile(`(?i)\b(congrat\w+|happy birthday|welcome aboard|great job|well done|thank you so much|have a (great|good|nice)|cheers to|celebrate)\b`)

var schedulingRe = regexp.MustCompile(`(?i)\b(schedule|reschedule|meeting|calendar|availab\w+|time slot|book a|call (on|at)|invite|sync up)\b`)

var technicalRe = regexp.MustCompile(`(?i)\b(bug|error|crash|broken|not working|fail(s|ed|ing)|issue with|outage|down|exception|stack trace|500|timeout)\b`)

var partnershipRe = regexp.MustCompile(`(?i)\b(partnership|collaborat\w+|proposal|joint|work together|opportunity to|vendor agreement|contract)\b`)

// Sentiment keyword sets, independent of the intent cascade.
var positiveRe = regexp.MustCompile(`(?i)\b(thanks|thank you|great|awesome|excellent|love|perfect|appreciate|glad|happy|congrat\w+)\b`)

var negativeRe = regexp.MustCompile(`(?i)\b(disappointed|unacceptable|frustrat\w+|angry|upset|complaint|terrible|unhappy|wrong|problem|fail\w*)\b`)

var calmRe = regexp.MustCompile(`(?i)\b(no rush|whenever|no hurry|at your convenience|take your time|low priority)\b`)

var deadlineRe = regexp.MustCompile(`(?i)\b(today|by eod|end of day|by tomorrow|this morning|within the hour|before \d)\b`)

var topicKeywords = []struct {
	topic    string
	keywords []string
}{
	{"Budget & Finance", []string{"budget", "invoice", "cost", "expense", "payment", "pricing", "quote"}},
	{"Engineering", []string{"bug", "deploy", "api", "code", "release", "server", "database", "build"}},
	{"Scheduling", []string{"meeting", "calendar", "schedule", "availability", "call", "invite"}},
	{"Hiring", []string{"candidate", "interview", "recruit", "offer", "resume", "hiring"}},
	{"Sales", []string{"deal", "customer", "client", "pipeline", "contract", "renewal", "demo"}},
	{"Marketing", []string{"campaign", "launch", "brand", "content", "social media", "press"}},
	{"Legal", []string{"legal", "compliance", "agreement", "terms", "policy", "nda"}},
	{"Operations", []string{"process", "workflow", "logistics", "vendor", "procurement"}},
}

var mentionRe = regexp.MustCompile(`@[\w.\-]+`)

var capitalizedPhraseRe = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,2}\b`)

var entityStopwords = map[string]bool{
	"The": true, "This": true, "That": true, "These": true, "Those": true,
	"I": true, "We": true, "You": true, "He": true, "She": true, "They": true,
	"Hi": true, "Hey": true, "Hello": true, "Dear": true, "Thanks": true,
	"Thank": true, "Best": true, "Regards": true, "Sincerely": true,
	"Monday": true, "Tuesday": true, "Wednesday": true, "Thursday": true,
	"Friday": true, "Saturday": true, "Sunday": true, "Please": true,
	"Also": true, "However": true, "Just": true, "If": true, "As": true,
}

// QuickAnalyze is the deterministic keyword cascade over subject+body. It
// backs the analyzer when the external call fails and is exposed standalone
// as the fast analysis mode.
func QuickAnalyze(msg *domain.UnifiedMessage) *domain.MessageAnalysis {
	text := msg.Subject + "\n" + msg.FullMessage

	intent := classifyIntent(text)
	sentiment := classifySentiment(text)
	urgency := scoreUrgency(text, intent)

	analysis := &domain.MessageAnalysis{
		Intent:            intent,
		Sentiment:         sentiment,
		Tone:              toneFor(sentiment, urgency),
		Urgency:           urgency,
		Topics:            extractTopics(text),
		Entities:          extractEntities(text),
		RequiresAction:    requiresAction(intent, urgency),
		SuggestedPriority: priorityFor(urgency),
		KeyPoints:         extractKeyPoints(msg.FullMessage),
		Relationship:      InferRelationship(msg),
	}
	return analysis
}

func classifyIntent(text string) domain.Intent {
	switch {
	case approvalRe.MatchString(text):
		return domain.IntentApprovalRequest
	case questionRe.MatchString(text):
		return domain.IntentQuestion
	case urgentRe.MatchString(text):
		return domain.IntentActionRequired
	case followUpRe.MatchString(text):
		return domain.IntentFollowUp
	case socialRe.MatchString(text):
		return domain.IntentSocial
	case schedulingRe.MatchString(text):
		return domain.IntentScheduling
	case technicalRe.MatchString(text):
		return domain.IntentTechnicalIssue
	case partnershipRe.MatchString(text):
		return domain.IntentPartnership
	default:
		return domain.IntentInformationSharing
	}
}

func classifySentiment(text string) domain.Sentiment {
	if urgentRe.MatchString(text) {
		return domain.SentimentUrgent
	}
	pos := len(positiveRe.FindAllStringIndex(text, -1))
	neg := len(negativeRe.FindAllStringIndex(text, -1))
	switch {
	case neg > pos:
		return domain.SentimentNegative
	case pos > neg:
		return domain.SentimentPositive
	default:
		return domain.SentimentNeutral
	}
}

func scoreUrgency(text string, intent domain.Intent) int {
	urgency := urgencySeed
	if urgentRe.MatchString(text) {
		urgency += urgencyPhraseBoost
	}
	if deadlineRe.MatchString(text) {
		urgency += urgencyPhraseBoost
	}
	if calmRe.MatchString(text) {
		urgency -= urgencyCalmDrop
	}
	if intent == domain.IntentSocial {
		urgency = urgencySocialFloor
	}
	if urgency > 10 {
		urgency = 10
	}
	if urgency < 0 {
		urgency = 0
	}
	return urgency
}

func toneFor(sentiment domain.Sentiment, urgency int) string {
	switch {
	case sentiment == domain.SentimentUrgent || urgency >= highUrgency:
		return "pressing"
	case sentiment == domain.SentimentNegative:
		return "frustrated"
	case sentiment == domain.SentimentPositive:
		return "warm"
	default:
		return "businesslike"
	}
}

// Topics reports the topic tags for a block of text using the fixed
// topic/keyword table. Shared with style batch analysis.
func Topics(text string) []string {
	return extractTopics(text)
}

func extractTopics(text string) []string {
	lower := strings.ToLower(text)
	var topics []string
	for _, tk := range topicKeywords {
		for _, kw := range tk.keywords {
			if strings.Contains(lower, kw) {
				topics = append(topics, tk.topic)
				break
			}
		}
		if len(topics) >= maxTopics {
			break
		}
	}
	if len(topics) == 0 {
		topics = []string{"General"}
	}
	return topics
}

func extractEntities(text string) []string {
	seen := map[string]bool{}
	var entities []string

	add := func(e string) {
		if !seen[e] && len(entities) < maxEntities {
			seen[e] = true
			entities = append(entities, e)
		}
	}

	for _, m := range mentionRe.FindAllString(text, -1) {
		add(m)
	}
	for _, m := range capitalizedPhraseRe.FindAllString(text, -1) {
		first := strings.Fields(m)[0]
		if entityStopwords[first] {
			continue
		}
		add(m)
	}
	return entities
}

func extractKeyPoints(body string) []string {
	var points []string
	for _, s := range regexp.MustCompile(`[.!?\n]+`).Split(body, -1) {
		s = strings.TrimSpace(s)
		if len(s) > minKeyPoint {
			points = append(points, s)
		}
		if len(points) >= maxKeyPoints {
			break
		}
	}
	return points
}

func requiresAction(intent domain.Intent, urgency int) bool {
	switch intent {
	case domain.IntentApprovalRequest, domain.IntentActionRequired,
		domain.IntentQuestion, domain.IntentTechnicalIssue, domain.IntentScheduling:
		return true
	}
	return urgency >= highUrgency
}

func priorityFor(urgency int) domain.MessagePriority {
	switch {
	case urgency >= highUrgency:
		return domain.MsgPriorityHigh
	case urgency >= mediumUrgency:
		return domain.MsgPriorityMedium
	default:
		return domain.MsgPriorityLow
	}
}

// InferRelationship classifies the sender relationship from message
// metadata, falling back to email-domain hints. Shared with style batch
// analysis.
func InferRelationship(msg *domain.UnifiedMessage) domain.Relationship {
	if rel, ok := msg.Metadata["relationship"]; ok {
		switch domain.Relationship(rel) {
		case domain.RelationManager, domain.RelationPeer, domain.RelationDirectReport,
			domain.RelationClient, domain.RelationVendor:
			return domain.Relationship(rel)
		}
	}
	email := strings.ToLower(msg.FromEmail)
	switch {
	case strings.Contains(email, "client") || strings.Contains(email, "customer"):
		return domain.RelationClient
	case strings.Contains(email, "vendor") || strings.Contains(email, "supplier"):
		return domain.RelationVendor
	default:
		return domain.RelationUnknown
	}
}
