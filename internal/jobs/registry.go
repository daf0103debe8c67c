package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// HandlerFunc executes one scheduled job. Args is the JSON payload the
// job was scheduled with.
type HandlerFunc func(ctx context.Context, args json.RawMessage) error

// Registry maps job names to handlers. Handlers are registered at
// startup, before the scheduler accepts work.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
}

// NewRegistry creates an empty job registry
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]HandlerFunc)}
}

// Register adds a handler for the given job name. Registering the same
// name twice is a programming error.
func (r *Registry) Register(job string, fn HandlerFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[job]; exists {
		return fmt.Errorf("job handler '%s' already registered", job)
	}
	r.handlers[job] = fn
	return nil
}

// Handler returns the handler for a job name, or false.
func (r *Registry) Handler(job string) (HandlerFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.handlers[job]
	return fn, ok
}
