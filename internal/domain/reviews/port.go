package reviews

import "context"

// Repository port (interface untuk persistence)
type Repository interface {
	// SaveBatch persists the whole slice inside one transaction. Readers must
	// never observe a partially committed batch.
	SaveBatch(ctx context.Context, batch []*Review) error

	// Aggregate queries consumed by the insights engine.
	CountAll(ctx context.Context) (int, error)
	CountByUrgency(ctx context.Context, urgency Urgency) (int, error)
	GroupBySentiment(ctx context.Context) (map[Sentiment]int, error)
	// AllTopicStrings returns the comma-joined topics column of every review;
	// callers re-split. Storage-format contract inherited from the reviews table.
	AllTopicStrings(ctx context.Context) ([]string, error)

	Critical(ctx context.Context, limit int) ([]*Review, error)
	Paginate(ctx context.Context, hotelID string, page, pageSize int) (PaginatedResult, error)
}

// Source port (interface untuk review provider eksternal)
type Source interface {
	FetchRaw(ctx context.Context, hotelID string, limit int) ([]RawReview, error)
}

// ArchiveStore port: raw batches get archived as JSON objects for audit.
// Best-effort; an archive failure never fails an ingestion.
type ArchiveStore interface {
	ArchiveBatch(ctx context.Context, hotelID, taskID string, raw []RawReview) (string, error)
}
