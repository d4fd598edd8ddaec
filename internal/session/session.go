// Package session owns the per-session mutable state: one catalog snapshot
// and one order list, created on page entry and discarded when the session
// ends or goes idle. Nothing here persists.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ahakim/orderpad/internal/catalog"
	"github.com/ahakim/orderpad/internal/order"
)

// Sentinel errors for session operations.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrProductNotFound = errors.New("product not found")
)

// Session bundles a catalog snapshot with the order list built against it.
// All mutations go through the mutex; the domain operations themselves are
// synchronous and never block.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	catalog  catalog.Snapshot
	orders   *order.List
	lastUsed time.Time
}

// Do runs fn with exclusive access to the session's snapshot and order list
// and refreshes the idle timer.
func (s *Session) Do(fn func(snap catalog.Snapshot, list *order.List) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()
	return fn(s.catalog, s.orders)
}

// AddLine resolves the product in the session snapshot and appends a new
// line built from it. Resolution failure surfaces ErrProductNotFound before
// construction is attempted; factory errors pass through unchanged.
func (s *Session) AddLine(productID string, quantity int) (*order.Line, error) {
	var line *order.Line
	err := s.Do(func(snap catalog.Snapshot, list *order.List) error {
		p, ok := snap.ByID(productID)
		if !ok {
			return ErrProductNotFound
		}
		l, err := order.NewLine(p, quantity)
		if err != nil {
			return err
		}
		list.Append(l)
		line = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return line, nil
}

// Config controls session lifecycle management.
type Config struct {
	// IdleTTL is how long an untouched session survives before eviction.
	// Zero means 30 minutes.
	IdleTTL time.Duration
	// SweepInterval is how often the eviction sweep runs. Zero means IdleTTL / 4.
	SweepInterval time.Duration
}

// Manager creates and tracks sessions. Each Create fetches the catalog once;
// a fetch failure is recovered by logging it and starting the session with
// an empty snapshot, leaving the page usable but inert.
type Manager struct {
	source catalog.Source
	lg     *zap.Logger
	ttl    time.Duration
	sweep  time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager builds a Manager around the given catalog source.
func NewManager(source catalog.Source, lg *zap.Logger, cfg Config) *Manager {
	ttl := cfg.IdleTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	sweep := cfg.SweepInterval
	if sweep <= 0 {
		sweep = ttl / 4
	}
	return &Manager{
		source:   source,
		lg:       lg,
		ttl:      ttl,
		sweep:    sweep,
		sessions: make(map[string]*Session),
	}
}

// Create opens a new session, fetching the catalog synchronously so product
// selection is only enabled once the fetch has settled.
func (m *Manager) Create(ctx context.Context) *Session {
	snap := catalog.EmptySnapshot()
	products, err := m.source.ListProducts(ctx)
	if err != nil {
		// Recovered locally: the session starts with an empty catalog.
		m.lg.Error("catalog fetch failed, starting with empty catalog", zap.Error(err))
	} else {
		snap = catalog.NewSnapshot(products)
	}

	now := time.Now()
	s := &Session{
		ID:        uuid.New().String(),
		CreatedAt: now,
		catalog:   snap,
		orders:    order.NewList(),
		lastUsed:  now,
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.lg.Info("session created",
		zap.String("session_id", s.ID),
		zap.Int("catalog_size", snap.Len()),
	)
	return s
}

// Get returns the session with the given ID.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Close discards a session, reporting whether it existed.
func (m *Manager) Close(id string) bool {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		m.lg.Info("session closed", zap.String("session_id", id))
	}
	return ok
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// StartEviction launches the background idle sweep. It stops when ctx is
// cancelled.
func (m *Manager) StartEviction(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(m.sweep)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				m.evictIdle(now)
			}
		}
	}()
}

// evictIdle drops sessions untouched for longer than the TTL.
func (m *Manager) evictIdle(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		s.mu.Lock()
		idle := now.Sub(s.lastUsed)
		s.mu.Unlock()
		if idle >= m.ttl {
			delete(m.sessions, id)
			m.lg.Info("session evicted",
				zap.String("session_id", id),
				zap.Duration("idle", idle),
			)
		}
	}
}
