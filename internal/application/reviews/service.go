package reviews

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/bryanwahyu/guest-pulse/internal/application"
	anadomain "github.com/bryanwahyu/guest-pulse/internal/domain/analysis"
	domain "github.com/bryanwahyu/guest-pulse/internal/domain/reviews"
	"github.com/bryanwahyu/guest-pulse/internal/domain/tasks"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// ErrValidation marks fast boundary rejections (bad limit, missing hotel id).
var ErrValidation = errors.New("validation error")

// Analyzer is the slice of the analysis service the pipeline needs.
type Analyzer interface {
	Analyze(ctx context.Context, text string) anadomain.Result
}

// Jobs accepts detached units of work; the dispatcher implements it.
type Jobs interface {
	Submit(job func(ctx context.Context)) error
}

// Service implements use-cases untuk review ingestion.
// Safe for concurrent use; the task registry is the only shared write path.
type Service struct {
	Repo     domain.Repository
	Source   domain.Source
	Archive  domain.ArchiveStore // optional, best-effort
	Analyzer Analyzer
	Registry tasks.Registry
	Jobs     Jobs
	Clock    application.Clock
}

//
// ==== USE CASES ====
//

// Command untuk trigger ingestion
type IngestCommand struct {
	HotelID     string
	Limit       int
	RequestedBy string
}

type IngestResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	TaskID  string `json:"task_id"`
	HotelID string `json:"hotel_id"`
}

// Ingest validates the command, registers a task and hands the actual work to
// the background dispatcher. Returns immediately; the caller polls the task.
func (s *Service) Ingest(cmd IngestCommand) (IngestResult, error) {
	hotelID := strings.TrimSpace(cmd.HotelID)
	if hotelID == "" {
		return IngestResult{}, fmt.Errorf("%w: hotel_id is required", ErrValidation)
	}
	limit := cmd.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	if limit < 1 || limit > maxLimit {
		return IngestResult{}, fmt.Errorf("%w: limit must be between 1 and %d", ErrValidation, maxLimit)
	}

	taskID := s.Registry.Create()
	if err := s.Registry.Set(context.Background(), taskID, tasks.Task{
		Status:  tasks.StatusProcessing,
		HotelID: hotelID,
		Message: "Fetching and analyzing reviews...",
	}); err != nil {
		return IngestResult{}, fmt.Errorf("register task: %w", err)
	}

	requestedBy := cmd.RequestedBy
	if err := s.Jobs.Submit(func(ctx context.Context) {
		s.runIngestion(ctx, taskID, hotelID, limit, requestedBy)
	}); err != nil {
		s.setStatus(taskID, tasks.Task{
			Status:  tasks.StatusFailed,
			HotelID: hotelID,
			Message: fmt.Sprintf("Error processing reviews: %v", err),
		})
		return IngestResult{}, err
	}

	return IngestResult{
		Status:  string(tasks.StatusProcessing),
		Message: fmt.Sprintf("Review ingestion started for hotel %s", hotelID),
		TaskID:  taskID,
		HotelID: hotelID,
	}, nil
}

// runIngestion is the pipeline body: fetch → analyze each → persist batch.
// Every failure is recorded on the task, never returned; the caller already
// disconnected after Ingest.
func (s *Service) runIngestion(ctx context.Context, taskID, hotelID string, limit int, requestedBy string) {
	raw, err := s.Source.FetchRaw(ctx, hotelID, limit)
	if err != nil {
		s.setStatus(taskID, tasks.Task{
			Status:  tasks.StatusFailed,
			HotelID: hotelID,
			Message: fmt.Sprintf("Error processing reviews: fetching reviews: %v", err),
		})
		return
	}

	if s.Archive != nil {
		if url, aerr := s.Archive.ArchiveBatch(ctx, hotelID, taskID, raw); aerr != nil {
			log.Printf("raw batch archive failed for hotel=%s task=%s: %v", hotelID, taskID, aerr)
		} else {
			log.Printf("raw batch archived: hotel=%s task=%s url=%s", hotelID, taskID, url)
		}
	}

	now := s.Clock.Now()
	batch := make([]*domain.Review, 0, len(raw))
	for _, rr := range raw {
		if strings.TrimSpace(rr.Text) == "" {
			continue
		}
		res := s.Analyzer.Analyze(ctx, rr.Text)
		batch = append(batch, &domain.Review{
			HotelID:     hotelID,
			Text:        rr.Text,
			Author:      rr.Author,
			Rating:      rr.Rating,
			ReviewDate:  rr.Date,
			Sentiment:   res.Sentiment,
			TopicsCSV:   domain.JoinTopics(res.Topics),
			Urgency:     res.Urgency,
			ProcessedAt: now,
			ProcessedBy: requestedBy,
		})
	}

	if err := s.Repo.SaveBatch(ctx, batch); err != nil {
		s.setStatus(taskID, tasks.Task{
			Status:  tasks.StatusFailed,
			HotelID: hotelID,
			Message: fmt.Sprintf("Error processing reviews: saving batch: %v", err),
		})
		return
	}

	s.setStatus(taskID, tasks.Task{
		Status:       tasks.StatusCompleted,
		HotelID:      hotelID,
		Message:      fmt.Sprintf("Successfully processed %d reviews", len(batch)),
		ReviewsCount: len(batch),
	})
}

func (s *Service) setStatus(taskID string, t tasks.Task) {
	if err := s.Registry.Set(context.Background(), taskID, t); err != nil {
		log.Printf("task status update failed for task=%s: %v", taskID, err)
	}
}

// Status returns the current task snapshot (synthetic not_found for unknown ids).
func (s *Service) Status(ctx context.Context, taskID string) tasks.Task {
	return s.Registry.Get(ctx, taskID)
}

// Critical returns the newest reviews flagged Critical.
func (s *Service) Critical(ctx context.Context, limit int) ([]*domain.Review, error) {
	return s.Repo.Critical(ctx, limit)
}

// Paginate lists persisted reviews, optionally scoped to one hotel.
func (s *Service) Paginate(ctx context.Context, hotelID string, page, pageSize int) (domain.PaginatedResult, error) {
	return s.Repo.Paginate(ctx, hotelID, page, pageSize)
}
