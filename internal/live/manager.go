package live

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/eventhub/backend/internal/models"
)

// SessionLookup resolves event-session ids. catalog.Source satisfies it.
type SessionLookup interface {
	FindSession(ctx context.Context, sessionID string) (models.Event, models.EventSession, error)
}

// Publisher delivers a panel snapshot to the connections of the viewer who owns it.
type Publisher interface {
	PublishPanel(ctx context.Context, st State) error
}

type panelKey struct {
	sessionID string
	viewerID  string
}

// Manager owns every open panel, one per (event session, viewer) pair.
type Manager struct {
	sessions SessionLookup
	pub      Publisher
	logger   *zap.Logger
	seed     func(now time.Time) Seed

	mu     sync.RWMutex
	panels map[panelKey]*Panel
}

// NewManager creates a panel manager. pub may be nil when nobody listens for snapshots.
func NewManager(sessions SessionLookup, pub Publisher, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		sessions: sessions,
		pub:      pub,
		logger:   logger,
		seed:     DemoSeed,
		panels:   make(map[panelKey]*Panel),
	}
}

// SetPublisher replaces the snapshot publisher. Used when the publisher itself depends on the manager.
func (m *Manager) SetPublisher(pub Publisher) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pub = pub
}

// Open returns the viewer's panel for sessionID, creating it on first use. Unknown sessions
// fail with errs.ErrNotFound.
func (m *Manager) Open(ctx context.Context, sessionID string, viewer models.User) (*Panel, error) {
	key := panelKey{sessionID: sessionID, viewerID: viewer.ID}

	m.mu.RLock()
	p, ok := m.panels[key]
	m.mu.RUnlock()
	if ok {
		return p, nil
	}

	if _, _, err := m.sessions.FindSession(ctx, sessionID); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok = m.panels[key]; !ok {
		p = NewPanel(sessionID, viewer, m.seed(time.Now()))
		m.panels[key] = p
		m.logger.Debug("panel opened", zap.String("session_id", sessionID), zap.String("viewer_id", viewer.ID))
	}
	return p, nil
}

// Apply runs a on the viewer's panel and publishes the new snapshot to the viewer's connections.
// Publishing happens under the panel lock so snapshots arrive in the order they were produced.
func (m *Manager) Apply(ctx context.Context, sessionID string, viewer models.User, a Action) (State, error) {
	p, err := m.Open(ctx, sessionID, viewer)
	if err != nil {
		return State{}, err
	}

	m.mu.RLock()
	pub := m.pub
	m.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.apply(a); err != nil {
		return State{}, err
	}
	st := p.snapshot()
	if pub != nil {
		if err := pub.PublishPanel(ctx, st); err != nil {
			m.logger.Warn("publish panel failed", zap.Error(err),
				zap.String("session_id", sessionID), zap.String("viewer_id", viewer.ID))
		}
	}
	return st, nil
}

// Close discards the viewer's panel. The next Open starts from the seed again.
func (m *Manager) Close(sessionID, viewerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.panels, panelKey{sessionID: sessionID, viewerID: viewerID})
}

// Len reports the number of open panels.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.panels)
}
