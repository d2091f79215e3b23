package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	domain "github.com/bryanwahyu/guest-pulse/internal/domain/tasks"
)

const keyPrefix = "ingest:task:"

// Registry stores task records as JSON values in redis so status queries work
// across replicas. Each record carries a TTL; the memory backend has none.
type Registry struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRegistry(client *redis.Client, ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Registry{client: client, ttl: ttl}
}

func (r *Registry) Create() string {
	return uuid.New().String()
}

func (r *Registry) Set(ctx context.Context, id string, t domain.Task) error {
	payload, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}
	if err := r.client.Set(ctx, keyPrefix+id, payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("store task %s: %w", id, err)
	}
	return nil
}

// Get returns the stored snapshot. Missing keys and backend errors both yield
// the synthetic not_found record; status reads never fail.
func (r *Registry) Get(ctx context.Context, id string) domain.Task {
	payload, err := r.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("task lookup failed for %s: %v", id, err)
		}
		return domain.NotFound()
	}
	var t domain.Task
	if err := json.Unmarshal(payload, &t); err != nil {
		log.Printf("task record corrupt for %s: %v", id, err)
		return domain.NotFound()
	}
	return t
}
