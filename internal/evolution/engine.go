package evolution

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"portfoliotracker/internal/calculator"
	"portfoliotracker/internal/domain"
)

// ErrNotReady is returned while the engine is waiting for its first
// snapshot, or after a failure that left it without data.
var ErrNotReady = errors.New("evolution data not ready")

type State int

const (
	StateLoading State = iota
	StateReady
	StateError
)

// PanelView is the derived statistics panel for one requested time range.
// Empty marks a valid series with no entries in range; Stale marks numbers
// carried over from before a connection failure.
type PanelView struct {
	Panel       *calculator.MetricsPanel
	Entries     []domain.EvolutionEntry
	Currency    string
	Range       domain.TimeRange
	Empty       bool
	Stale       bool
	LastUpdated time.Time
}

// Engine consumes one portfolio's evolution snapshot stream and keeps the
// derived panel current. Each snapshot wholesale-replaces the prior state;
// a stale panel is never patched with a delta.
type Engine struct {
	feed        Feed
	portfolioID uuid.UUID
	log         *zap.SugaredLogger

	// lifecycleMu serializes Start, Stop and Resubscribe so a subscription
	// can never be overwritten while still live.
	lifecycleMu sync.Mutex

	mu          sync.RWMutex
	state       State
	entries     []domain.EvolutionEntry
	currency    string
	stale       bool
	lastErr     error
	lastUpdated time.Time
	sub         *Subscription
	done        chan struct{}
}

func NewEngine(feed Feed, portfolioID uuid.UUID, log *zap.SugaredLogger) *Engine {
	return &Engine{
		feed:        feed,
		portfolioID: portfolioID,
		log:         log,
		state:       StateLoading,
		currency:    DefaultCurrency,
	}
}

// Start opens the snapshot subscription and launches the consumer loop. A
// subscription that is already running is torn down first, so replacing it
// can never orphan a live stream.
func (e *Engine) Start(ctx context.Context) error {
	e.lifecycleMu.Lock()
	defer e.lifecycleMu.Unlock()

	e.stop()
	return e.start(ctx)
}

func (e *Engine) start(ctx context.Context) error {
	sub, err := e.feed.Subscribe(ctx, e.portfolioID)
	if err != nil {
		return err
	}

	done := make(chan struct{})
	e.mu.Lock()
	e.sub = sub
	e.done = done
	e.mu.Unlock()

	go e.run(sub, done)
	return nil
}

func (e *Engine) run(sub *Subscription, done chan struct{}) {
	defer close(done)
	for {
		select {
		case raw, ok := <-sub.Snapshots:
			if !ok {
				return
			}
			e.apply(raw)
		case err := <-sub.Errs:
			e.fail(err)
			return
		}
	}
}

func (e *Engine) apply(raw []byte) {
	doc, err := ParseDocument(raw)

	e.mu.Lock()
	defer e.mu.Unlock()

	if err != nil {
		// A malformed document means the upstream writer is broken;
		// prior numbers are discarded rather than served as current.
		e.log.Errorw("failed to parse evolution document",
			"portfolioID", e.portfolioID, "error", err)
		e.state = StateError
		e.entries = nil
		e.stale = false
		e.lastErr = err
		return
	}

	e.state = StateReady
	e.entries = doc.Entries
	e.currency = doc.Currency
	e.stale = false
	e.lastErr = nil
	e.lastUpdated = time.Now().UTC()
}

func (e *Engine) fail(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.log.Errorw("evolution subscription failed",
		"portfolioID", e.portfolioID, "error", err)
	e.state = StateError
	// Keep the last-known-good numbers through a connection failure; a
	// resubscribe refreshes them.
	e.stale = len(e.entries) > 0
	e.lastErr = err
}

// Resubscribe replaces a failed subscription with a fresh one, clearing the
// error state. Concurrent callers collapse to a single reopen: once the
// first has replaced the stream, the rest find a healthy engine and leave
// it alone.
func (e *Engine) Resubscribe(ctx context.Context) error {
	e.lifecycleMu.Lock()
	defer e.lifecycleMu.Unlock()

	e.mu.Lock()
	failed := e.lastErr != nil
	e.mu.Unlock()
	if !failed {
		return nil
	}

	e.stop()

	e.mu.Lock()
	if e.entries == nil {
		e.state = StateLoading
	}
	e.lastErr = nil
	e.mu.Unlock()

	return e.start(ctx)
}

// Stop cancels the subscription and waits for the consumer loop to drain.
// No state updates happen after Stop returns.
func (e *Engine) Stop() {
	e.lifecycleMu.Lock()
	defer e.lifecycleMu.Unlock()
	e.stop()
}

func (e *Engine) stop() {
	e.mu.Lock()
	sub, done := e.sub, e.done
	e.sub, e.done = nil, nil
	e.mu.Unlock()

	if sub == nil {
		return
	}
	sub.Cancel()
	<-done
}

// Panel derives the statistics panel for the requested range from the
// current series. Pure recomputation per call; no cached panels.
func (e *Engine) Panel(timeRange domain.TimeRange) (*PanelView, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	switch e.state {
	case StateLoading:
		return nil, ErrNotReady
	case StateError:
		if !e.stale {
			if e.lastErr != nil {
				return nil, e.lastErr
			}
			return nil, ErrNotReady
		}
	}

	filtered := calculator.FilterByTimeRange(e.entries, timeRange)
	view := &PanelView{
		Entries:     filtered,
		Currency:    e.currency,
		Range:       timeRange,
		Stale:       e.stale,
		LastUpdated: e.lastUpdated,
	}

	panel, err := calculator.CalculateMetrics(filtered)
	if err != nil {
		if errors.Is(err, domain.ErrEmptySeries) {
			view.Empty = true
			return view, nil
		}
		return nil, fmt.Errorf("failed to compute metrics panel: %w", err)
	}
	view.Panel = panel

	return view, nil
}
