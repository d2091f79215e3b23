package insights

import (
	"context"
	"fmt"
	"math"
	"sort"

	domain "github.com/bryanwahyu/guest-pulse/internal/domain/reviews"
)

// SentimentDistribution holds per-sentiment percentages over the whole corpus.
type SentimentDistribution struct {
	PositivePercent float64 `json:"positive_percent"`
	NegativePercent float64 `json:"negative_percent"`
	NeutralPercent  float64 `json:"neutral_percent"`
	TotalReviews    int     `json:"total_reviews"`
}

// TopicBreakdown counts one topic label across all reviews. Percentage uses
// total reviews as the denominator, so the breakdown can sum above 100%.
type TopicBreakdown struct {
	Topic      string  `json:"topic"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// DashboardMetrics is the full aggregation snapshot.
type DashboardMetrics struct {
	SentimentDistribution SentimentDistribution `json:"sentiment_distribution"`
	TopicBreakdown        []TopicBreakdown      `json:"topic_breakdown"`
	EscalationRate        float64               `json:"escalation_rate"`
	TotalReviews          int                   `json:"total_reviews"`
	CriticalReviewsCount  int                   `json:"critical_reviews_count"`
}

// Service computes metrics fresh on every call; no caching, no side effects.
type Service struct {
	Repo domain.Repository
}

func NewService(repo domain.Repository) *Service {
	return &Service{Repo: repo}
}

// Metrics aggregates the persisted review corpus. An empty corpus yields an
// all-zero snapshot without touching any divisor.
func (s *Service) Metrics(ctx context.Context) (DashboardMetrics, error) {
	total, err := s.Repo.CountAll(ctx)
	if err != nil {
		return DashboardMetrics{}, fmt.Errorf("counting reviews: %w", err)
	}
	if total == 0 {
		return DashboardMetrics{
			TopicBreakdown: []TopicBreakdown{},
		}, nil
	}

	bySentiment, err := s.Repo.GroupBySentiment(ctx)
	if err != nil {
		return DashboardMetrics{}, fmt.Errorf("grouping sentiments: %w", err)
	}

	dist := SentimentDistribution{
		PositivePercent: percent(bySentiment[domain.SentimentPositive], total),
		NegativePercent: percent(bySentiment[domain.SentimentNegative], total),
		NeutralPercent:  percent(bySentiment[domain.SentimentNeutral], total),
		TotalReviews:    total,
	}

	topicStrings, err := s.Repo.AllTopicStrings(ctx)
	if err != nil {
		return DashboardMetrics{}, fmt.Errorf("loading topics: %w", err)
	}

	// Tally split topic labels, remembering first-encounter order for ties.
	counts := make(map[string]int)
	order := make([]string, 0, 8)
	for _, joined := range topicStrings {
		for _, topic := range domain.SplitTopics(joined) {
			if _, seen := counts[topic]; !seen {
				order = append(order, topic)
			}
			counts[topic]++
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	breakdown := make([]TopicBreakdown, 0, len(order))
	for _, topic := range order {
		breakdown = append(breakdown, TopicBreakdown{
			Topic:      topic,
			Count:      counts[topic],
			Percentage: percent(counts[topic], total),
		})
	}

	critical, err := s.Repo.CountByUrgency(ctx, domain.UrgencyCritical)
	if err != nil {
		return DashboardMetrics{}, fmt.Errorf("counting critical reviews: %w", err)
	}

	return DashboardMetrics{
		SentimentDistribution: dist,
		TopicBreakdown:        breakdown,
		EscalationRate:        percent(critical, total),
		TotalReviews:          total,
		CriticalReviewsCount:  critical,
	}, nil
}

// percent rounds count/total*100 to two decimals.
func percent(count, total int) float64 {
	return math.Round(float64(count)/float64(total)*100*100) / 100
}
