package broadcast

import (
	"sync"

	"go.uber.org/zap"
)

// Event is the payload pushed to observers of a project. The live channel
// carries comment content only.
type Event struct {
	Content string `json:"content"`
}

// Observer receives events for one project. Send must be safe to call from
// the broadcasting goroutine; a returned error marks a dead observer.
type Observer interface {
	Send(Event) error
}

// Registry maps project ids to their currently connected observers. It is
// created once at startup and injected into the websocket handler and the
// comment pipeline; it is never a package global. A single coarse mutex
// serializes all map mutations, which is plenty at expected registry churn.
type Registry struct {
	mu        sync.Mutex
	observers map[string][]Observer
	logger    *zap.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		observers: make(map[string][]Observer),
		logger:    logger,
	}
}

// Subscribe registers an observer for a project. The project's entry is
// created on first subscribe.
func (r *Registry) Subscribe(projectID string, o Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers[projectID] = append(r.observers[projectID], o)
}

// Unsubscribe removes an observer from its project's set. The project entry
// is dropped entirely once the set is empty so memory stays bounded by active
// viewership. Unknown observers and projects are no-ops.
func (r *Registry) Unsubscribe(projectID string, o Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.observers[projectID]
	for i, existing := range current {
		if existing == o {
			current = append(current[:i], current[i+1:]...)
			break
		}
	}
	if len(current) == 0 {
		delete(r.observers, projectID)
		return
	}
	r.observers[projectID] = current
}

// Broadcast delivers an event to every observer of the project. The observer
// set is snapshotted under the lock and sends happen outside it, so a slow
// connection never blocks registry mutations. A project with no observers is
// a no-op. Send failures are logged and skipped; delivery is best-effort.
func (r *Registry) Broadcast(projectID string, ev Event) {
	r.mu.Lock()
	snapshot := make([]Observer, len(r.observers[projectID]))
	copy(snapshot, r.observers[projectID])
	r.mu.Unlock()

	for _, o := range snapshot {
		if err := o.Send(ev); err != nil {
			r.logger.Warn("observer delivery failed",
				zap.String("project_id", projectID),
				zap.Error(err),
			)
		}
	}
}

// Count returns the number of observers currently registered for a project.
func (r *Registry) Count(projectID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.observers[projectID])
}
