package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	anadomain "github.com/bryanwahyu/guest-pulse/internal/domain/analysis"
	reviews "github.com/bryanwahyu/guest-pulse/internal/domain/reviews"
)

type stubClassifier struct {
	result anadomain.Result
	err    error
	calls  int
}

func (s *stubClassifier) Classify(_ context.Context, _ string) (anadomain.Result, error) {
	s.calls++
	return s.result, s.err
}

func TestAnalyzeUsesModelResult(t *testing.T) {
	want := anadomain.Result{
		Sentiment: reviews.SentimentNegative,
		Topics:    []string{reviews.TopicValue},
		Urgency:   reviews.UrgencyStandard,
		Reasoning: "overpriced",
	}
	stub := &stubClassifier{result: want}
	svc := NewService(stub)

	got := svc.Analyze(context.Background(), "way too expensive for what you get")
	assert.Equal(t, want, got)
	assert.Equal(t, 1, stub.calls)
}

func TestAnalyzeFallsBackOnClassifierError(t *testing.T) {
	stub := &stubClassifier{err: errors.New("connection reset")}
	svc := NewService(stub)

	got := svc.Analyze(context.Background(), "we found bed bugs, truly terrible")
	assert.Equal(t, reviews.SentimentNegative, got.Sentiment)
	assert.Equal(t, reviews.UrgencyCritical, got.Urgency)
	assert.Equal(t, "Fallback analysis due to LLM error", got.Reasoning)
}

func TestAnalyzeWithoutClientIsFallbackOnly(t *testing.T) {
	svc := NewService(nil)
	got := svc.Analyze(context.Background(), "great location, very clean")
	assert.Equal(t, reviews.SentimentPositive, got.Sentiment)
	assert.Contains(t, got.Topics, reviews.TopicCleanliness)
}
