package screens

import (
	"errors"
	"sync"
	"time"

	platformstore "github.com/dalemusser/arenadash/internal/app/store/platform"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotFound is returned when a screen does not exist or belongs to
// another session.
var ErrNotFound = errors.New("screen not found")

// Registry tracks the open screens of all browser sessions.
type Registry struct {
	mu      sync.Mutex
	screens map[string]*Screen
	log     *zap.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		screens: make(map[string]*Screen),
		log:     logger,
	}
}

// Open starts a new screen for owner whose fetches use gw.
func (r *Registry) Open(owner string, gw platformstore.Gateway) *Screen {
	s := New(uuid.NewString(), owner, gw, r.log)

	r.mu.Lock()
	r.screens[s.ID()] = s
	n := len(r.screens)
	r.mu.Unlock()

	r.log.Debug("screen opened", zap.String("screen", s.ID()), zap.Int("open", n))
	return s
}

// Get returns the screen with id if it belongs to owner.
func (r *Registry) Get(id, owner string) (*Screen, error) {
	r.mu.Lock()
	s, ok := r.screens[id]
	r.mu.Unlock()
	if !ok || s.Owner() != owner {
		return nil, ErrNotFound
	}
	s.touch()
	return s, nil
}

// Close tears down the screen with id if it belongs to owner.
func (r *Registry) Close(id, owner string) error {
	r.mu.Lock()
	s, ok := r.screens[id]
	if !ok || s.Owner() != owner {
		r.mu.Unlock()
		return ErrNotFound
	}
	delete(r.screens, id)
	r.mu.Unlock()

	s.Close()
	return nil
}

// CloseIdle tears down every screen not used since before cutoff and
// returns how many were closed.
func (r *Registry) CloseIdle(cutoff time.Time) int {
	var idle []*Screen
	r.mu.Lock()
	for id, s := range r.screens {
		if s.LastSeen().Before(cutoff) {
			idle = append(idle, s)
			delete(r.screens, id)
		}
	}
	r.mu.Unlock()

	for _, s := range idle {
		s.Close()
	}
	return len(idle)
}

// CloseAll tears down every screen.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	all := make([]*Screen, 0, len(r.screens))
	for id, s := range r.screens {
		all = append(all, s)
		delete(r.screens, id)
	}
	r.mu.Unlock()

	for _, s := range all {
		s.Close()
	}
}

// Len returns the number of open screens.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.screens)
}
