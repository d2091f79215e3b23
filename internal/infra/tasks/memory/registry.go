package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	domain "github.com/bryanwahyu/guest-pulse/internal/domain/tasks"
)

// Registry keeps task records in a mutex-guarded map. Records are replaced
// wholesale on Set and retained for the process lifetime.
type Registry struct {
	mu    sync.RWMutex
	tasks map[string]domain.Task
}

func NewRegistry() *Registry {
	return &Registry{tasks: make(map[string]domain.Task)}
}

func (r *Registry) Create() string {
	return uuid.New().String()
}

func (r *Registry) Set(_ context.Context, id string, t domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[id] = t
	return nil
}

func (r *Registry) Get(_ context.Context, id string) domain.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tasks[id]
	if !ok {
		return domain.NotFound()
	}
	return t
}
