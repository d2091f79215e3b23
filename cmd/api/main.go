package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	goredis "github.com/redis/go-redis/v9"

	"github.com/bryanwahyu/guest-pulse/internal/application"
	appanalysis "github.com/bryanwahyu/guest-pulse/internal/application/analysis"
	appinsights "github.com/bryanwahyu/guest-pulse/internal/application/insights"
	appreviews "github.com/bryanwahyu/guest-pulse/internal/application/reviews"
	"github.com/bryanwahyu/guest-pulse/internal/config"
	anadomain "github.com/bryanwahyu/guest-pulse/internal/domain/analysis"
	"github.com/bryanwahyu/guest-pulse/internal/domain/reviews"
	"github.com/bryanwahyu/guest-pulse/internal/domain/tasks"
	aiopenai "github.com/bryanwahyu/guest-pulse/internal/infra/ai/openai"
	mysqlp "github.com/bryanwahyu/guest-pulse/internal/infra/db/mysql"
	postgresp "github.com/bryanwahyu/guest-pulse/internal/infra/db/postgres"
	"github.com/bryanwahyu/guest-pulse/internal/infra/httpserver"
	samplesource "github.com/bryanwahyu/guest-pulse/internal/infra/source/sample"
	websource "github.com/bryanwahyu/guest-pulse/internal/infra/source/web"
	minioStore "github.com/bryanwahyu/guest-pulse/internal/infra/storage"
	memtasks "github.com/bryanwahyu/guest-pulse/internal/infra/tasks/memory"
	redistasks "github.com/bryanwahyu/guest-pulse/internal/infra/tasks/redis"
	"github.com/bryanwahyu/guest-pulse/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// connect database + init repo
	var repo reviews.Repository
	switch cfg.Database.Driver {
	case "postgres":
		db, err := postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		defer db.Close()
		repo = postgresp.NewReviewRepository(db)
	default:
		db, err := mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		defer db.Close()
		repo = mysqlp.NewReviewRepository(db)
	}

	// init task registry
	var registry tasks.Registry
	if cfg.Redis.Addr != "" {
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		registry = redistasks.NewRegistry(client, 24*time.Hour)
	} else {
		registry = memtasks.NewRegistry()
	}

	// init classifier (nil client = fallback-only)
	var classifier anadomain.Classifier
	if cfg.OpenAI.APIKey != "" {
		classifier = aiopenai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	}
	analyzer := appanalysis.NewService(classifier)

	// init review source
	var source reviews.Source
	if cfg.Source.Kind == "web" && cfg.Source.ReviewsURL != "" {
		source = websource.New(nil, cfg.Source.ReviewsURL)
	} else {
		source = samplesource.New()
	}

	// init raw batch archive (optional)
	var archive reviews.ArchiveStore
	if cfg.Minio.Endpoint != "" {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
		archive = store
	}

	// init background dispatcher
	dispatcher := appreviews.NewDispatcher(cfg.Ingest.Workers, cfg.Ingest.QueueSize)
	dispatcher.Start()

	// init services
	reviewsSvc := &appreviews.Service{
		Repo:     repo,
		Source:   source,
		Archive:  archive,
		Analyzer: analyzer,
		Registry: registry,
		Jobs:     dispatcher,
		Clock:    application.SystemClock{},
	}
	insightsSvc := appinsights.NewService(repo)

	// init router
	mux := chi.NewRouter()
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	if len(cfg.APIKeys) > 0 {
		mux.Use(middleware.APIKeyAuth(cfg.APIKeys))
	}
	mux.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	mux.Mount("/", httpserver.NewRouter(reviewsSvc, insightsSvc))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}

	// drain in-flight ingestions
	dispatcher.Stop()
}
