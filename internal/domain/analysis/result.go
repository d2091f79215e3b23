package analysis

import (
	domain "github.com/bryanwahyu/guest-pulse/internal/domain/reviews"
)

// Result is the output of one classification, model-derived or heuristic.
type Result struct {
	Sentiment domain.Sentiment `json:"sentiment"`
	Topics    []string         `json:"topics"`
	Urgency   domain.Urgency   `json:"urgency"`
	Reasoning string           `json:"reasoning,omitempty"`
}

// Normalize coerces arbitrary classifier output into a valid Result: unknown
// sentiment becomes Neutral, unknown urgency becomes Standard, topics outside
// the vocabulary are dropped, and an empty topic list falls back to Service.
func Normalize(sentiment string, topics []string, urgency, reasoning string) Result {
	res := Result{Reasoning: reasoning}

	switch domain.Sentiment(sentiment) {
	case domain.SentimentPositive, domain.SentimentNegative, domain.SentimentNeutral:
		res.Sentiment = domain.Sentiment(sentiment)
	default:
		res.Sentiment = domain.SentimentNeutral
	}

	switch domain.Urgency(urgency) {
	case domain.UrgencyCritical, domain.UrgencyStandard:
		res.Urgency = domain.Urgency(urgency)
	default:
		res.Urgency = domain.UrgencyStandard
	}

	for _, t := range topics {
		if domain.ValidTopic(t) {
			res.Topics = append(res.Topics, t)
		}
	}
	if len(res.Topics) == 0 {
		res.Topics = []string{domain.TopicService}
	}
	return res
}
