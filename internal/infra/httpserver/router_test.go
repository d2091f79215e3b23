package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/guest-pulse/internal/application"
	appanalysis "github.com/bryanwahyu/guest-pulse/internal/application/analysis"
	appinsights "github.com/bryanwahyu/guest-pulse/internal/application/insights"
	appreviews "github.com/bryanwahyu/guest-pulse/internal/application/reviews"
	domain "github.com/bryanwahyu/guest-pulse/internal/domain/reviews"
	"github.com/bryanwahyu/guest-pulse/internal/domain/tasks"
	memtasks "github.com/bryanwahyu/guest-pulse/internal/infra/tasks/memory"
)

type memRepo struct {
	reviews []*domain.Review
}

func (m *memRepo) SaveBatch(_ context.Context, batch []*domain.Review) error {
	m.reviews = append(m.reviews, batch...)
	return nil
}

func (m *memRepo) CountAll(context.Context) (int, error) { return len(m.reviews), nil }

func (m *memRepo) CountByUrgency(_ context.Context, u domain.Urgency) (int, error) {
	n := 0
	for _, r := range m.reviews {
		if r.Urgency == u {
			n++
		}
	}
	return n, nil
}

func (m *memRepo) GroupBySentiment(context.Context) (map[domain.Sentiment]int, error) {
	out := make(map[domain.Sentiment]int)
	for _, r := range m.reviews {
		out[r.Sentiment]++
	}
	return out, nil
}

func (m *memRepo) AllTopicStrings(context.Context) ([]string, error) {
	var out []string
	for _, r := range m.reviews {
		if r.TopicsCSV != "" {
			out = append(out, r.TopicsCSV)
		}
	}
	return out, nil
}

func (m *memRepo) Critical(_ context.Context, limit int) ([]*domain.Review, error) {
	var out []*domain.Review
	for _, r := range m.reviews {
		if r.Urgency == domain.UrgencyCritical {
			out = append(out, r)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memRepo) Paginate(_ context.Context, hotelID string, page, pageSize int) (domain.PaginatedResult, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	var filtered []*domain.Review
	for _, r := range m.reviews {
		if hotelID == "" || r.HotelID == hotelID {
			filtered = append(filtered, r)
		}
	}
	return domain.PaginatedResult{
		Data:     filtered,
		Page:     page,
		PageSize: pageSize,
		Total:    int64(len(filtered)),
	}, nil
}

type memSource struct {
	raw []domain.RawReview
}

func (s memSource) FetchRaw(_ context.Context, _ string, limit int) ([]domain.RawReview, error) {
	if limit < len(s.raw) {
		return s.raw[:limit], nil
	}
	return s.raw, nil
}

type inlineJobs struct{}

func (inlineJobs) Submit(job func(ctx context.Context)) error {
	job(context.Background())
	return nil
}

func newTestHandler(t *testing.T, raw []domain.RawReview) (http.Handler, *memRepo) {
	t.Helper()
	repo := &memRepo{}
	reviewsSvc := &appreviews.Service{
		Repo:     repo,
		Source:   memSource{raw: raw},
		Analyzer: appanalysis.NewService(nil),
		Registry: memtasks.NewRegistry(),
		Jobs:     inlineJobs{},
		Clock:    application.SystemClock{},
	}
	return NewRouter(reviewsSvc, appinsights.NewService(repo)), repo
}

func TestIngestEndpointAccepted(t *testing.T) {
	handler, repo := newTestHandler(t, []domain.RawReview{
		{Text: "Excellent stay, amazing staff", Rating: 5},
		{Text: "We found bed bugs, terrible", Rating: 1},
	})

	body := strings.NewReader(`{"hotel_id": "H001", "limit": 10}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/acme/reviews/ingest", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)

	var res appreviews.IngestResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, "processing", res.Status)
	assert.Equal(t, "H001", res.HotelID)
	require.NotEmpty(t, res.TaskID)
	assert.Len(t, repo.reviews, 2)

	// task reached its terminal state (jobs run inline in tests)
	req = httptest.NewRequest(http.MethodGet, "/v1/acme/reviews/tasks/"+res.TaskID, nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var task tasks.Task
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&task))
	assert.Equal(t, tasks.StatusCompleted, task.Status)
	assert.Equal(t, 2, task.ReviewsCount)
}

func TestIngestEndpointValidation(t *testing.T) {
	handler, _ := newTestHandler(t, nil)

	cases := []struct {
		name string
		url  string
		body string
	}{
		{"missing hotel id", "/v1/acme/reviews/ingest", `{"limit": 5}`},
		{"limit too large", "/v1/acme/reviews/ingest", `{"hotel_id": "H001", "limit": 101}`},
		{"negative limit", "/v1/acme/reviews/ingest", `{"hotel_id": "H001", "limit": -1}`},
		{"bad tenant", "/v1/bad%20tenant/reviews/ingest", `{"hotel_id": "H001"}`},
		{"malformed json", "/v1/acme/reviews/ingest", `{`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tc.url, strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestTaskStatusUnknownID(t *testing.T) {
	handler, _ := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/acme/reviews/tasks/does-not-exist", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var task tasks.Task
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&task))
	assert.Equal(t, tasks.StatusNotFound, task.Status)
}

func TestCriticalEndpoint(t *testing.T) {
	handler, repo := newTestHandler(t, nil)
	repo.reviews = []*domain.Review{
		{HotelID: "H001", Text: "bed bugs", Urgency: domain.UrgencyCritical, Sentiment: domain.SentimentNegative, TopicsCSV: "Cleanliness", ProcessedAt: time.Now()},
		{HotelID: "H001", Text: "fine", Urgency: domain.UrgencyStandard, Sentiment: domain.SentimentNeutral, TopicsCSV: "Service", ProcessedAt: time.Now()},
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/acme/reviews/critical", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var list []*domain.Review
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, domain.UrgencyCritical, list[0].Urgency)
}

func TestDashboardEndpoint(t *testing.T) {
	handler, repo := newTestHandler(t, nil)
	repo.reviews = []*domain.Review{
		{Sentiment: domain.SentimentPositive, Urgency: domain.UrgencyStandard, TopicsCSV: "Service"},
		{Sentiment: domain.SentimentNegative, Urgency: domain.UrgencyCritical, TopicsCSV: "Cleanliness,Service"},
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/acme/metrics/dashboard", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var m appinsights.DashboardMetrics
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&m))
	assert.Equal(t, 2, m.TotalReviews)
	assert.Equal(t, 50.0, m.SentimentDistribution.PositivePercent)
	assert.Equal(t, 1, m.CriticalReviewsCount)
	assert.Equal(t, 50.0, m.EscalationRate)
}

func TestHealthEndpoints(t *testing.T) {
	handler, _ := newTestHandler(t, nil)

	for _, path := range []string{"/health", "/live"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}
