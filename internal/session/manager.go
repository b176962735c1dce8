package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/SAP-F-2025/interview-coach/internal/services"
)

// Config tunes session timing. TimeUnit is the length of one interview
// "second"; tests shrink it.
type Config struct {
	TimeUnit time.Duration
	Clock    Clock
}

// Manager owns the live sessions, keyed by interview id.
type Manager struct {
	mu       sync.Mutex
	sessions map[uint]*Session

	svc    *services.ServiceManager
	logger *services.ServiceLogger
	clock  Clock
	unit   time.Duration
}

func NewManager(svc *services.ServiceManager, logger *slog.Logger, cfg Config) *Manager {
	if cfg.TimeUnit <= 0 {
		cfg.TimeUnit = time.Second
	}
	if cfg.Clock == nil {
		cfg.Clock = RealClock()
	}
	return &Manager{
		sessions: make(map[uint]*Session),
		svc:      svc,
		logger:   services.NewServiceLogger(logger, "sessions"),
		clock:    cfg.Clock,
		unit:     cfg.TimeUnit,
	}
}

// Start opens a session for an in-progress interview. A live session is
// returned as is; a finished one is replaced.
func (m *Manager) Start(ctx context.Context, interviewID uint) (*Snapshot, error) {
	m.mu.Lock()
	if existing, ok := m.sessions[interviewID]; ok {
		snap := existing.Snapshot()
		if !snap.State.IsTerminal() {
			m.mu.Unlock()
			return snap, nil
		}
		existing.Close()
		delete(m.sessions, interviewID)
	}
	m.mu.Unlock()

	s := newSession(interviewID, m.svc, m.logger, m.clock, m.unit)
	if err := s.load(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.sessions[interviewID]; ok {
		// Lost a concurrent Start
		return existing.Snapshot(), nil
	}
	m.sessions[interviewID] = s
	m.logger.Info(ctx, "Interview session started", "interview_id", interviewID)
	return s.Snapshot(), nil
}

// Get returns the live session of an interview.
func (m *Manager) Get(interviewID uint) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[interviewID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Close cancels and forgets a session.
func (m *Manager) Close(interviewID uint) error {
	m.mu.Lock()
	s, ok := m.sessions[interviewID]
	delete(m.sessions, interviewID)
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	s.Close()
	return nil
}

// CloseAll cancels every session, used on shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[uint]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}

// Len reports the number of tracked sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
