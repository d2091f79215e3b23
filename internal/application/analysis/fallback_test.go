package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	reviews "github.com/bryanwahyu/guest-pulse/internal/domain/reviews"
)

func TestFallbackIsDeterministic(t *testing.T) {
	text := "The room was dirty but the staff were great and the location was excellent."
	first := Fallback(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Fallback(text))
	}
}

func TestFallbackSentiment(t *testing.T) {
	cases := []struct {
		name string
		text string
		want reviews.Sentiment
	}{
		{"positive majority", "Amazing hotel, excellent service, we love it", reviews.SentimentPositive},
		{"negative majority", "Terrible stay, awful food, the worst", reviews.SentimentNegative},
		{"tie is neutral", "Great view but terrible breakfast", reviews.SentimentNeutral},
		{"no signal is neutral", "We stayed two nights in March", reviews.SentimentNeutral},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Fallback(tc.text).Sentiment)
		})
	}
}

func TestFallbackCriticalKeywords(t *testing.T) {
	texts := []string{
		"We found BED BUGS under the mattress",
		"got food poisoning at the buffet",
		"my wallet was stolen from the safe",
		"I do not feel this place takes safety seriously",
		"the balcony railing is dangerous",
		"we experienced discrimination at check-in",
		"a guest was victim of an assault in the lobby",
		"there was violence outside the bar",
		"reported a theft to the front desk",
	}
	for _, text := range texts {
		assert.Equal(t, reviews.UrgencyCritical, Fallback(text).Urgency, "text: %s", text)
	}

	assert.Equal(t, reviews.UrgencyStandard, Fallback("lovely quiet weekend, nothing to report").Urgency)
}

func TestFallbackTopics(t *testing.T) {
	res := Fallback("the room was not clean and the location was noisy")
	assert.Equal(t, []string{reviews.TopicService, reviews.TopicCleanliness, reviews.TopicLocation}, res.Topics)

	res = Fallback("decent breakfast")
	assert.Equal(t, []string{reviews.TopicService}, res.Topics)
}

func TestFallbackAlwaysTotal(t *testing.T) {
	for _, text := range []string{"", "ok", "!!!", "晚上很安静"} {
		res := Fallback(text)
		assert.NotEmpty(t, res.Sentiment)
		assert.NotEmpty(t, res.Urgency)
		assert.NotEmpty(t, res.Topics)
		for _, topic := range res.Topics {
			assert.True(t, reviews.ValidTopic(topic))
		}
	}
}
