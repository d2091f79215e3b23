package reviews

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinSplitTopicsRoundTrip(t *testing.T) {
	topics := []string{TopicService, TopicCleanliness, TopicLocation}
	assert.Equal(t, "Service,Cleanliness,Location", JoinTopics(topics))
	assert.Equal(t, topics, SplitTopics(JoinTopics(topics)))
}

func TestSplitTopicsTrimsAndDropsEmpties(t *testing.T) {
	assert.Equal(t, []string{"Service", "Value"}, SplitTopics(" Service , ,Value,"))
	assert.Nil(t, SplitTopics(""))
	assert.Nil(t, SplitTopics("   "))
}

func TestReviewTopics(t *testing.T) {
	r := &Review{TopicsCSV: "Cleanliness,Amenities"}
	assert.Equal(t, []string{TopicCleanliness, TopicAmenities}, r.Topics())

	empty := &Review{}
	assert.Empty(t, empty.Topics())
}

func TestTopicVocabulary(t *testing.T) {
	vocab := TopicVocabulary()
	assert.Len(t, vocab, 5)
	for _, label := range vocab {
		assert.True(t, ValidTopic(label))
	}
	assert.False(t, ValidTopic("Pool"))
	assert.False(t, ValidTopic("service")) // case sensitive
}
