// Package tracker keeps the per-user navigation state that feeds the AR overlay:
// a target plus the latest location and heading samples.
package tracker

import (
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"wayfinder.app/internal/geodesy"
	"wayfinder.app/internal/logging"
)

var (
	// ErrSessionNotFound is returned for unknown or expired session IDs.
	ErrSessionNotFound = errors.New("session not found")
	// ErrInvalidPoint is returned for non-finite or out-of-range coordinates.
	ErrInvalidPoint = errors.New("invalid coordinates")
	// ErrInvalidHeading is returned for non-finite headings.
	ErrInvalidHeading = errors.New("invalid heading")
)

// Config controls projection and session expiry.
type Config struct {
	FOV           float64
	Hysteresis    float64
	TTL           time.Duration
	SweepInterval time.Duration
}

// Manager owns all live sessions.
type Manager struct {
	config Config
	logger *slog.Logger
	now    func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session

	shutdownChan chan struct{}
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// NewManager creates a Manager. When both TTL and SweepInterval are positive a
// background goroutine expires idle sessions until Shutdown is called.
func NewManager(config Config, logger *slog.Logger) *Manager {
	if config.FOV <= 0 {
		config.FOV = geodesy.DefaultFOV
	}
	if logger == nil {
		logger = slog.Default()
	}

	m := &Manager{
		config:       config,
		logger:       logger.With(slog.String("component", "tracker")),
		now:          time.Now,
		sessions:     make(map[string]*Session),
		shutdownChan: make(chan struct{}),
	}

	if config.TTL > 0 && config.SweepInterval > 0 {
		m.wg.Add(1)
		go m.sweepPeriodically()
	}

	return m
}

// Create starts a session navigating to target. targetID is optional.
func (m *Manager) Create(target geodesy.GeoPoint, targetID string) (*Session, error) {
	if !target.Valid() {
		return nil, ErrInvalidPoint
	}

	s := newSession(uuid.NewString(), target, targetID, m.config.FOV, m.config.Hysteresis, m.now)

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()

	logging.LogOperation(m.logger, "session_created",
		slog.String("session_id", s.id),
		slog.String("target_id", targetID))

	return s, nil
}

// Get returns a live session.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete ends a session.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// List returns the live sessions, oldest first.
func (m *Manager) List() []*Session {
	m.mu.RLock()
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().Before(out[j].CreatedAt())
	})
	return out
}

// Sweep removes sessions idle for longer than the TTL and returns how many were removed.
func (m *Manager) Sweep(now time.Time) int {
	if m.config.TTL <= 0 {
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if now.Sub(s.LastActive()) > m.config.TTL {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

func (m *Manager) sweepPeriodically() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.config.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.shutdownChan:
			return
		case <-ticker.C:
			if removed := m.Sweep(m.now()); removed > 0 {
				logging.LogOperation(m.logger, "sessions_expired",
					slog.Int("removed", removed),
					slog.Int("remaining", m.Len()))
			}
		}
	}
}

// Shutdown stops the background sweeper. It is safe to call more than once.
func (m *Manager) Shutdown() {
	m.shutdownOnce.Do(func() {
		close(m.shutdownChan)
		m.wg.Wait()
	})
}
