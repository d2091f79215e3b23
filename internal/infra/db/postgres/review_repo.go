package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	domain "github.com/bryanwahyu/guest-pulse/internal/domain/reviews"
)

// ReviewRepository is the Postgres twin of the MySQL repository. Topics live
// in a native text[] column here; the comma-joined port contract is satisfied
// by joining on read.
type ReviewRepository struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// SaveBatch inserts the whole batch in one transaction; all-or-nothing.
func (r *ReviewRepository) SaveBatch(ctx context.Context, batch []*domain.Review) error {
	if len(batch) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch tx: %w", err)
	}

	const q = `
INSERT INTO reviews
(hotel_id, review_text, author, rating, review_date, sentiment, topics, urgency, processed_at, processed_by)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
RETURNING id;`

	for _, rev := range batch {
		processedAt := rev.ProcessedAt
		if processedAt.IsZero() {
			processedAt = time.Now()
		}
		err := tx.QueryRowContext(ctx, q,
			rev.HotelID, rev.Text,
			nullString(rev.Author), nullFloat(rev.Rating), nullTime(rev.ReviewDate),
			string(rev.Sentiment), pq.StringArray(rev.Topics()), string(rev.Urgency),
			processedAt, nullString(rev.ProcessedBy),
		).Scan(&rev.ID)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert review: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

func (r *ReviewRepository) CountAll(ctx context.Context) (int, error) {
	var n int
	err := r.sb.Select("COUNT(*)").From("reviews").
		RunWith(r.db).QueryRowContext(ctx).Scan(&n)
	return n, err
}

func (r *ReviewRepository) CountByUrgency(ctx context.Context, urgency domain.Urgency) (int, error) {
	var n int
	err := r.sb.Select("COUNT(*)").From("reviews").
		Where(sq.Eq{"urgency": string(urgency)}).
		RunWith(r.db).QueryRowContext(ctx).Scan(&n)
	return n, err
}

func (r *ReviewRepository) GroupBySentiment(ctx context.Context) (map[domain.Sentiment]int, error) {
	rows, err := r.sb.Select("sentiment", "COUNT(*)").From("reviews").
		GroupBy("sentiment").
		RunWith(r.db).QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[domain.Sentiment]int)
	for rows.Next() {
		var sentiment string
		var count int
		if err := rows.Scan(&sentiment, &count); err != nil {
			return nil, err
		}
		out[domain.Sentiment(sentiment)] = count
	}
	return out, rows.Err()
}

// AllTopicStrings joins the text[] column back into the comma-joined shape
// the aggregation engine consumes.
func (r *ReviewRepository) AllTopicStrings(ctx context.Context) ([]string, error) {
	rows, err := r.sb.Select("array_to_string(topics, ',')").From("reviews").
		Where("topics IS NOT NULL AND cardinality(topics) > 0").
		RunWith(r.db).QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var topics string
		if err := rows.Scan(&topics); err != nil {
			return nil, err
		}
		out = append(out, topics)
	}
	return out, rows.Err()
}

// Critical lists the newest critical reviews.
func (r *ReviewRepository) Critical(ctx context.Context, limit int) ([]*domain.Review, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.selectReviews().
		Where(sq.Eq{"urgency": string(domain.UrgencyCritical)}).
		OrderBy("processed_at DESC").
		Limit(uint64(limit)).
		RunWith(r.db).QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReviews(rows)
}

// Paginate with offset + limit, optionally filtered to one hotel.
func (r *ReviewRepository) Paginate(ctx context.Context, hotelID string, page, pageSize int) (domain.PaginatedResult, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	q := r.selectReviews()
	count := r.sb.Select("COUNT(*)").From("reviews")
	if strings.TrimSpace(hotelID) != "" {
		q = q.Where(sq.Eq{"hotel_id": hotelID})
		count = count.Where(sq.Eq{"hotel_id": hotelID})
	}

	rows, err := q.OrderBy("processed_at DESC", "id DESC").
		Limit(uint64(pageSize)).Offset(uint64(offset)).
		RunWith(r.db).QueryContext(ctx)
	if err != nil {
		return domain.PaginatedResult{}, fmt.Errorf("querying reviews: %w", err)
	}
	defer rows.Close()

	data, err := collectReviews(rows)
	if err != nil {
		return domain.PaginatedResult{}, err
	}

	var total int64
	if err := count.RunWith(r.db).QueryRowContext(ctx).Scan(&total); err != nil {
		return domain.PaginatedResult{}, fmt.Errorf("counting reviews: %w", err)
	}

	return domain.PaginatedResult{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

func (r *ReviewRepository) selectReviews() sq.SelectBuilder {
	return r.sb.Select(
		"id", "hotel_id", "review_text", "author", "rating", "review_date",
		"sentiment", "topics", "urgency", "processed_at", "processed_by",
	).From("reviews")
}

func collectReviews(rows *sql.Rows) ([]*domain.Review, error) {
	var out []*domain.Review
	for rows.Next() {
		var (
			rev         domain.Review
			author      sql.NullString
			rating      sql.NullFloat64
			date        sql.NullTime
			sentiment   string
			topics      pq.StringArray
			urgency     string
			processedBy sql.NullString
		)
		if err := rows.Scan(
			&rev.ID, &rev.HotelID, &rev.Text, &author, &rating, &date,
			&sentiment, &topics, &urgency, &rev.ProcessedAt, &processedBy,
		); err != nil {
			return nil, err
		}
		rev.Author = author.String
		rev.Rating = rating.Float64
		if date.Valid {
			d := date.Time
			rev.ReviewDate = &d
		}
		rev.Sentiment = domain.Sentiment(sentiment)
		rev.TopicsCSV = domain.JoinTopics(topics)
		rev.Urgency = domain.Urgency(urgency)
		rev.ProcessedBy = processedBy.String
		out = append(out, &rev)
	}
	return out, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: strings.TrimSpace(s) != ""}
}

func nullFloat(f float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: f, Valid: f != 0}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
