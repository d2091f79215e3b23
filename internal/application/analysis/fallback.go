package analysis

import (
	"strings"

	domain "github.com/bryanwahyu/guest-pulse/internal/domain/analysis"
	reviews "github.com/bryanwahyu/guest-pulse/internal/domain/reviews"
)

// Fixed word sets for the deterministic path. Matching is case-insensitive
// substring search over the whole text, mirroring the heuristic the remote
// model replaces.
var (
	positiveWords = []string{"great", "excellent", "amazing", "wonderful", "fantastic", "love"}
	negativeWords = []string{"bad", "terrible", "horrible", "awful", "worst", "dirty"}

	criticalKeywords = []string{
		"bed bugs", "bedbugs", "food poisoning", "theft", "stolen",
		"safety", "dangerous", "discrimination", "assault", "violence",
	}
)

// Fallback classifies a review without the model. Same input, same output.
func Fallback(text string) domain.Result {
	lower := strings.ToLower(text)

	pos := 0
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			pos++
		}
	}
	neg := 0
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			neg++
		}
	}

	sentiment := reviews.SentimentNeutral
	if pos > neg {
		sentiment = reviews.SentimentPositive
	} else if neg > pos {
		sentiment = reviews.SentimentNegative
	}

	urgency := reviews.UrgencyStandard
	for _, kw := range criticalKeywords {
		if strings.Contains(lower, kw) {
			urgency = reviews.UrgencyCritical
			break
		}
	}

	topics := []string{reviews.TopicService}
	if strings.Contains(lower, "clean") || strings.Contains(lower, "dirty") {
		topics = append(topics, reviews.TopicCleanliness)
	}
	if strings.Contains(lower, "location") {
		topics = append(topics, reviews.TopicLocation)
	}

	return domain.Result{
		Sentiment: sentiment,
		Topics:    topics,
		Urgency:   urgency,
		Reasoning: "Fallback analysis due to LLM error",
	}
}
