package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	domain "github.com/bryanwahyu/guest-pulse/internal/domain/reviews"
)

type ReviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
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
VALUES (?,?,?,?,?,?,?,?,?,?);
`
	for _, rev := range batch {
		processedAt := rev.ProcessedAt
		if processedAt.IsZero() {
			processedAt = time.Now()
		}
		res, err := tx.ExecContext(ctx, q,
			rev.HotelID, rev.Text,
			nullString(rev.Author), nullFloat(rev.Rating), nullTime(rev.ReviewDate),
			string(rev.Sentiment), rev.TopicsCSV, string(rev.Urgency),
			processedAt, nullString(rev.ProcessedBy),
		)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert review: %w", err)
		}
		if id, idErr := res.LastInsertId(); idErr == nil {
			rev.ID = id
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

func (r *ReviewRepository) CountAll(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reviews;`).Scan(&n)
	return n, err
}

func (r *ReviewRepository) CountByUrgency(ctx context.Context, urgency domain.Urgency) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reviews WHERE urgency=?;`, string(urgency)).Scan(&n)
	return n, err
}

func (r *ReviewRepository) GroupBySentiment(ctx context.Context) (map[domain.Sentiment]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT sentiment, COUNT(*) FROM reviews GROUP BY sentiment;`)
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

// AllTopicStrings returns the raw comma-joined topics column for every review.
func (r *ReviewRepository) AllTopicStrings(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT topics FROM reviews WHERE topics IS NOT NULL AND topics <> '';`)
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
	const q = selectColumns + `
WHERE urgency=? ORDER BY processed_at DESC LIMIT ?;`
	rows, err := r.db.QueryContext(ctx, q, string(domain.UrgencyCritical), limit)
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

	query := selectColumns
	countQuery := `SELECT COUNT(*) FROM reviews`
	args := []any{}
	if strings.TrimSpace(hotelID) != "" {
		query += ` WHERE hotel_id=?`
		countQuery += ` WHERE hotel_id=?`
		args = append(args, hotelID)
	}
	query += ` ORDER BY processed_at DESC, id DESC LIMIT ? OFFSET ?;`

	rows, err := r.db.QueryContext(ctx, query, append(args, pageSize, offset)...)
	if err != nil {
		return domain.PaginatedResult{}, fmt.Errorf("querying reviews: %w", err)
	}
	defer rows.Close()

	data, err := collectReviews(rows)
	if err != nil {
		return domain.PaginatedResult{}, err
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
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

const selectColumns = `
SELECT id, hotel_id, review_text, author, rating, review_date, sentiment, topics, urgency, processed_at, processed_by
FROM reviews`

func collectReviews(rows *sql.Rows) ([]*domain.Review, error) {
	var out []*domain.Review
	for rows.Next() {
		rev, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}

func scanReview(rows *sql.Rows) (*domain.Review, error) {
	var (
		rev         domain.Review
		author      sql.NullString
		rating      sql.NullFloat64
		date        sql.NullTime
		sentiment   string
		urgency     string
		processedBy sql.NullString
	)
	if err := rows.Scan(
		&rev.ID, &rev.HotelID, &rev.Text, &author, &rating, &date,
		&sentiment, &rev.TopicsCSV, &urgency, &rev.ProcessedAt, &processedBy,
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
	rev.Urgency = domain.Urgency(urgency)
	rev.ProcessedBy = processedBy.String
	return &rev, nil
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
