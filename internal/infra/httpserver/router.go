package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appinsights "github.com/bryanwahyu/guest-pulse/internal/application/insights"
	appreviews "github.com/bryanwahyu/guest-pulse/internal/application/reviews"
	anadomain "github.com/bryanwahyu/guest-pulse/internal/domain/analysis"
	"github.com/bryanwahyu/guest-pulse/internal/middleware"
)

type Router struct {
	reviewsSvc  *appreviews.Service
	insightsSvc *appinsights.Service
}

func NewRouter(reviewsSvc *appreviews.Service, insightsSvc *appinsights.Service) http.Handler {
	r := &Router{reviewsSvc: reviewsSvc, insightsSvc: insightsSvc}
	mux := chi.NewRouter()

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	mux.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.Get("/ready", middleware.ReadinessHandler)
	mux.Get("/live", middleware.LivenessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/v1/{tenant}", func(rt chi.Router) {
		rt.Post("/reviews/ingest", r.wrap(r.handleIngest))
		rt.Get("/reviews/tasks/{id}", r.wrap(r.handleTaskStatus))
		rt.Get("/reviews/critical", r.wrap(r.handleCritical))
		rt.Get("/reviews", r.wrap(r.handleList))
		rt.Get("/metrics/dashboard", r.wrap(r.handleDashboard))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			switch {
			case errors.Is(err, appreviews.ErrValidation):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, sql.ErrNoRows):
				http.Error(w, "not found", http.StatusNotFound)
			case errors.Is(err, appreviews.ErrQueueFull):
				http.Error(w, "ingestion queue is full, try again later", http.StatusServiceUnavailable)
			case errors.Is(err, anadomain.ErrQuotaExceeded):
				http.Error(w, "ai quota exceeded", http.StatusTooManyRequests)
			default:
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		}
	}
}

// POST /v1/{tenant}/reviews/ingest
// Body: {"hotel_id": "...", "limit": 10}
// Responds immediately; the pipeline runs on the background dispatcher.
func (r *Router) handleIngest(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	if err := middleware.ValidateTenantID(tenant); err != nil {
		return wrapValidation(err)
	}

	var body struct {
		HotelID string `json:"hotel_id"`
		Limit   int    `json:"limit"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return wrapValidation(err)
	}
	if err := middleware.ValidateHotelID(body.HotelID); err != nil {
		return wrapValidation(err)
	}
	if err := middleware.ValidateIngestLimit(body.Limit); err != nil {
		return wrapValidation(err)
	}

	middleware.IncrementIngestions()
	result, err := r.reviewsSvc.Ingest(appreviews.IngestCommand{
		HotelID:     body.HotelID,
		Limit:       body.Limit,
		RequestedBy: tenant,
	})
	if err != nil {
		middleware.IncrementIngestionsFailed()
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	return json.NewEncoder(w).Encode(result)
}

// GET /v1/{tenant}/reviews/tasks/{id}
func (r *Router) handleTaskStatus(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	task := r.reviewsSvc.Status(req.Context(), id)

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(task)
}

// GET /v1/{tenant}/reviews/critical?limit=50
func (r *Router) handleCritical(w http.ResponseWriter, req *http.Request) error {
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	limit = middleware.ValidateListLimit(limit)

	list, err := r.reviewsSvc.Critical(req.Context(), limit)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(list)
}

// GET /v1/{tenant}/reviews?hotel_id=&page=&page_size=
func (r *Router) handleList(w http.ResponseWriter, req *http.Request) error {
	hotelID := req.URL.Query().Get("hotel_id")
	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	size, _ := strconv.Atoi(req.URL.Query().Get("page_size"))

	list, err := r.reviewsSvc.Paginate(req.Context(), hotelID, page, size)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(list)
}

// GET /v1/{tenant}/metrics/dashboard
func (r *Router) handleDashboard(w http.ResponseWriter, req *http.Request) error {
	metrics, err := r.insightsSvc.Metrics(req.Context())
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(metrics)
}

func wrapValidation(err error) error {
	if errors.Is(err, appreviews.ErrValidation) {
		return err
	}
	return errors.Join(appreviews.ErrValidation, err)
}
