package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	reviews "github.com/bryanwahyu/guest-pulse/internal/domain/reviews"
)

func TestNormalizeCoercesInvalidValues(t *testing.T) {
	res := Normalize("Ecstatic", []string{"Service", "Pool", "Location"}, "Urgent", "why")

	assert.Equal(t, reviews.SentimentNeutral, res.Sentiment)
	assert.Equal(t, reviews.UrgencyStandard, res.Urgency)
	assert.Equal(t, []string{"Service", "Location"}, res.Topics)
	assert.Equal(t, "why", res.Reasoning)
}

func TestNormalizeKeepsValidValues(t *testing.T) {
	res := Normalize("Negative", []string{"Cleanliness", "Value"}, "Critical", "")

	assert.Equal(t, reviews.SentimentNegative, res.Sentiment)
	assert.Equal(t, reviews.UrgencyCritical, res.Urgency)
	assert.Equal(t, []string{"Cleanliness", "Value"}, res.Topics)
}

func TestNormalizeEmptyTopicsFallsBackToService(t *testing.T) {
	res := Normalize("Positive", nil, "Standard", "")
	assert.Equal(t, []string{reviews.TopicService}, res.Topics)

	res = Normalize("Positive", []string{"Pool", "Spa"}, "Standard", "")
	assert.Equal(t, []string{reviews.TopicService}, res.Topics)
}
