package analysis

import (
	"context"
	"log"
	"time"

	domain "github.com/bryanwahyu/guest-pulse/internal/domain/analysis"
)

const classifyTimeout = 30 * time.Second

// Service implements the review analysis use-case. Analyze is total: it
// returns a model-derived result or the deterministic fallback, never an error.
type Service struct {
	Client domain.Classifier
}

func NewService(client domain.Classifier) *Service {
	return &Service{Client: client}
}

// Analyze classifies one review text. The remote path is attempted first;
// any failure (no client, network, malformed output, timeout) lands on the
// keyword fallback.
func (s *Service) Analyze(ctx context.Context, text string) domain.Result {
	if s.Client == nil {
		return Fallback(text)
	}

	ctx2, cancel := context.WithTimeout(ctx, classifyTimeout)
	defer cancel()

	res, err := s.Client.Classify(ctx2, text)
	if err != nil {
		log.Printf("llm analysis failed, using fallback: %v", err)
		return Fallback(text)
	}
	return res
}
