// Package session keeps one storefront component tree per browser session,
// in memory, for as long as the session stays active.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"storefront/internal/logger"
	"storefront/internal/metrics"
	"storefront/internal/store"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

var ErrSessionClosed = errors.New("session closed")

// Session serializes every operation on its App, standing in for the
// browser's single UI task queue.
type Session struct {
	ID string

	mu     sync.Mutex
	app    *store.App
	closed bool
}

// Do runs fn with exclusive access to the session's app.
func (s *Session) Do(fn func(*store.App) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	return fn(s.app)
}

func (s *Session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// close destroys the app and reports whether this call did it.
func (s *Session) close() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	s.closed = true
	s.app.Destroy()
	return true
}

// Registry maps session ids to sessions. Idle sessions expire after ttl and
// the least recently used one is dropped once size is reached.
type Registry struct {
	cache   *expirable.LRU[string, *Session]
	premium bool
	metrics *metrics.Metrics
}

func NewRegistry(size int, ttl time.Duration, premium bool, m *metrics.Metrics) *Registry {
	r := &Registry{premium: premium, metrics: m}
	r.cache = expirable.NewLRU[string, *Session](size, r.onEvict, ttl)
	return r
}

// onEvict runs under the cache lock and must not call back into the cache.
func (r *Registry) onEvict(id string, s *Session) {
	if !s.close() {
		return
	}
	if r.metrics != nil {
		r.metrics.SessionsEvicted.Inc()
		r.metrics.ActiveSessions.Dec()
	}
	logger.L().Debug("session released", zap.String("session_id", id))
}

// Get returns a live session and refreshes its expiry.
func (r *Registry) Get(id string) (*Session, bool) {
	s, ok := r.cache.Get(id)
	if !ok {
		return nil, false
	}
	if !s.isClosed() {
		// expirable entries keep their original deadline; re-adding slides it
		r.cache.Add(id, s)
	}
	// an eviction between Get and Add leaves a closed session cached
	if s.isClosed() {
		r.cache.Remove(id)
		return nil, false
	}
	return s, true
}

// Create starts a new session with a fresh component tree.
func (r *Registry) Create(ctx context.Context) (*Session, error) {
	app, err := store.NewDefault(r.premium)
	if err != nil {
		return nil, err
	}

	s := &Session{ID: uuid.New().String(), app: app}
	if r.metrics != nil {
		r.metrics.ActiveSessions.Inc()
	}
	r.cache.Add(s.ID, s)

	logger.FromCtx(ctx).Info("session created", zap.String("session_id", s.ID))
	return s, nil
}

// GetOrCreate resolves id, creating a new session when it is unknown or expired.
func (r *Registry) GetOrCreate(ctx context.Context, id string) (s *Session, created bool, err error) {
	if id != "" {
		if s, ok := r.Get(id); ok {
			return s, false, nil
		}
	}
	s, err = r.Create(ctx)
	if err != nil {
		return nil, false, err
	}
	return s, true, nil
}

// Remove closes and forgets a session.
func (r *Registry) Remove(id string) {
	r.cache.Remove(id)
}

func (r *Registry) Len() int {
	return r.cache.Len()
}

// Close releases every session.
func (r *Registry) Close() {
	r.cache.Purge()
}
