package usecase

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultSessionTTL    = 30 * time.Minute
	defaultSweepInterval = 5 * time.Minute
	initialSweepDelay    = 1 * time.Minute
)

// SessionManager owns one ConversationStore per active demo session.
// Sessions are process-local and never persisted; an idle session is
// evicted by the background sweep and simply disappears.
type SessionManager struct {
	mu           sync.RWMutex
	sessions     map[string]*sessionEntry
	orchestrator QueryOrchestrator
	logger       *zap.Logger
	ttl          time.Duration
	stopChan     chan struct{}
}

type sessionEntry struct {
	store      *ConversationStore
	lastActive time.Time
}

// NewSessionManager creates a new session manager
func NewSessionManager(orchestrator QueryOrchestrator, logger *zap.Logger) *SessionManager {
	return &SessionManager{
		sessions:     make(map[string]*sessionEntry),
		orchestrator: orchestrator,
		logger:       logger,
		ttl:          defaultSessionTTL,
		stopChan:     make(chan struct{}),
	}
}

// Create starts a new session and returns its identifier and store
func (m *SessionManager) Create() (string, *ConversationStore) {
	id := uuid.NewString()
	store := NewConversationStore(m.orchestrator, m.logger)

	m.mu.Lock()
	m.sessions[id] = &sessionEntry{store: store, lastActive: time.Now()}
	m.mu.Unlock()

	m.logger.Info("Session created", zap.String("sessionID", id))
	return id, store
}

// Get returns the store for a session, refreshing its activity clock
func (m *SessionManager) Get(id string) (*ConversationStore, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	entry.lastActive = time.Now()
	return entry.store, true
}

// Remove discards a session
func (m *SessionManager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Count returns the number of active sessions
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// StartCleanup begins the background eviction of idle sessions
func (m *SessionManager) StartCleanup() {
	go m.cleanupLoop()
	m.logger.Info("Session cleanup started")
}

// StopCleanup gracefully stops the eviction loop
func (m *SessionManager) StopCleanup() {
	close(m.stopChan)
	m.logger.Info("Session cleanup stopped")
}

func (m *SessionManager) cleanupLoop() {
	ticker := time.NewTicker(defaultSweepInterval)
	defer ticker.Stop()

	initialTimer := time.NewTimer(initialSweepDelay)
	defer initialTimer.Stop()

	for {
		select {
		case <-m.stopChan:
			return
		case <-initialTimer.C:
			m.evictIdle()
		case <-ticker.C:
			m.evictIdle()
		}
	}
}

func (m *SessionManager) evictIdle() {
	cutoff := time.Now().Add(-m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()

	for id, entry := range m.sessions {
		if entry.lastActive.Before(cutoff) && !entry.store.Busy() {
			delete(m.sessions, id)
			m.logger.Info("Idle session evicted", zap.String("sessionID", id))
		}
	}
}
