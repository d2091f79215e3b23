package reviews

import (
	"strings"
	"time"
)

// Sentiment enum
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
)

// Urgency enum
type Urgency string

const (
	UrgencyCritical Urgency = "Critical"
	UrgencyStandard Urgency = "Standard"
)

// Topic vocabulary tetap; classifier output di luar daftar ini dibuang.
const (
	TopicCleanliness = "Cleanliness"
	TopicService     = "Service"
	TopicAmenities   = "Amenities"
	TopicLocation    = "Location"
	TopicValue       = "Value"
)

// TopicVocabulary lists every label a review may carry, in canonical order.
func TopicVocabulary() []string {
	return []string{TopicCleanliness, TopicService, TopicAmenities, TopicLocation, TopicValue}
}

// ValidTopic reports whether label belongs to the fixed vocabulary.
func ValidTopic(label string) bool {
	switch label {
	case TopicCleanliness, TopicService, TopicAmenities, TopicLocation, TopicValue:
		return true
	}
	return false
}

// RawReview is what a review source hands us. Never persisted directly.
type RawReview struct {
	Text   string     `json:"text"`
	Author string     `json:"author,omitempty"`
	Rating float64    `json:"rating,omitempty"`
	Date   *time.Time `json:"date,omitempty"`
}

// Aggregate Root: Review
// Created by the ingestion pipeline only, immutable afterward.
type Review struct {
	ID          int64      `json:"id"`
	HotelID     string     `json:"hotel_id"`
	Text        string     `json:"review_text"`
	Author      string     `json:"author,omitempty"`
	Rating      float64    `json:"rating,omitempty"`
	ReviewDate  *time.Time `json:"review_date,omitempty"`
	Sentiment   Sentiment  `json:"sentiment"`
	TopicsCSV   string     `json:"topics"`
	Urgency     Urgency    `json:"urgency"`
	ProcessedAt time.Time  `json:"processed_at"`
	ProcessedBy string     `json:"processed_by,omitempty"`
}

// Topics splits the stored comma-joined column back into labels.
func (r *Review) Topics() []string {
	return SplitTopics(r.TopicsCSV)
}

// JoinTopics encodes an ordered topic list into the stored column format.
func JoinTopics(topics []string) string {
	return strings.Join(topics, ",")
}

// SplitTopics decodes a comma-joined topic string, trimming whitespace and
// dropping empty fragments.
func SplitTopics(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
