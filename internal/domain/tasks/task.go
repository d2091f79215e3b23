package tasks

import "context"

// Status enum
type Status string

const (
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	// StatusNotFound is synthesized for unknown ids, never stored.
	StatusNotFound Status = "not_found"
)

// Task is the transient status record of one ingestion run. The owning
// pipeline writes it exactly twice: once at start, once at the terminal state.
type Task struct {
	Status       Status `json:"status"`
	HotelID      string `json:"hotel_id,omitempty"`
	Message      string `json:"message"`
	ReviewsCount int    `json:"reviews_count,omitempty"`
}

// NotFound is the synthetic record returned for unknown task ids.
func NotFound() Task {
	return Task{Status: StatusNotFound, Message: "Task not found"}
}

// Registry tracks ingestion task lifecycles. Single writer per task, many
// readers; Set replaces the whole record atomically.
type Registry interface {
	Create() string
	Set(ctx context.Context, id string, t Task) error
	Get(ctx context.Context, id string) Task
}
