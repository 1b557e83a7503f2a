package evolution

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"portfoliotracker/internal/domain"
)

// Manager lazily starts one engine per portfolio and hands out panels.
type Manager struct {
	feed Feed
	log  *zap.SugaredLogger

	mu      sync.Mutex
	engines map[uuid.UUID]*Engine
}

func NewManager(feed Feed, log *zap.SugaredLogger) *Manager {
	return &Manager{
		feed:    feed,
		log:     log,
		engines: map[uuid.UUID]*Engine{},
	}
}

// GetPanel returns the current panel for a portfolio, starting its engine
// on first use. An engine stuck in an unrecoverable error state is
// resubscribed before the panel is read.
func (m *Manager) GetPanel(ctx context.Context, portfolioID uuid.UUID, timeRange domain.TimeRange) (*PanelView, error) {
	engine, err := m.engine(portfolioID)
	if err != nil {
		return nil, err
	}

	view, err := engine.Panel(timeRange)
	if err != nil && errors.Is(err, domain.ErrConnection) {
		// Subscriptions outlive the triggering request. Concurrent retries
		// are serialized inside Resubscribe and collapse to one reopen.
		if rerr := engine.Resubscribe(context.Background()); rerr != nil {
			return nil, rerr
		}
		// The fresh subscription rarely has a snapshot yet, so this re-read
		// usually still reports not-ready; the next request gets data.
		return engine.Panel(timeRange)
	}
	return view, err
}

func (m *Manager) engine(portfolioID uuid.UUID) (*Engine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if engine, ok := m.engines[portfolioID]; ok {
		return engine, nil
	}

	engine := NewEngine(m.feed, portfolioID, m.log)
	// Subscriptions outlive the triggering request, so the engine is not
	// tied to the request context.
	if err := engine.Start(context.Background()); err != nil {
		return nil, err
	}
	m.engines[portfolioID] = engine
	return engine, nil
}

// Shutdown stops every running engine.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, engine := range m.engines {
		engine.Stop()
	}
	m.engines = map[uuid.UUID]*Engine{}
}
