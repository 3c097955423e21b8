package poll

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/devseo/dashboard-gateway/internal/seo"
)

// RefreshFunc re-reads one scan report by ID.
type RefreshFunc func(ctx context.Context, scanID string) (seo.ScanReport, error)

// Tracker owns at most one Watcher per scan. Views call Track after reading
// a report; the tracker starts polling for non-terminal scans and drops the
// watcher once its scan settles, so a finished scan never costs another
// backend call.
type Tracker struct {
	refresh RefreshFunc
	cfg     Config
	logger  *zap.Logger

	mu       sync.Mutex
	watchers map[string]*Watcher
	closed   bool
}

// NewTracker constructs a Tracker.
func NewTracker(refresh RefreshFunc, cfg Config) *Tracker {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{
		refresh:  refresh,
		cfg:      cfg,
		logger:   logger,
		watchers: make(map[string]*Watcher),
	}
}

// Track ensures a watcher exists for the scan when its status is still
// non-terminal. Tracking an already-watched or terminal scan is a no-op.
func (t *Tracker) Track(scanID string, status seo.ScanStatus) {
	if !seo.ShouldContinuePolling(status) {
		return
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	if _, ok := t.watchers[scanID]; ok {
		t.mu.Unlock()
		return
	}

	cfg := t.cfg
	cfg.OnDone = t.remove
	watcher := NewWatcher(scanID, func(ctx context.Context) (seo.ScanReport, error) {
		return t.refresh(ctx, scanID)
	}, cfg)
	t.watchers[scanID] = watcher
	t.mu.Unlock()

	if watcher.Start(status) {
		t.logger.Debug("scan watcher started", zap.String("scan_id", scanID))
	} else {
		t.remove(scanID)
	}
}

// Watching reports whether the scan currently has an active watcher.
func (t *Tracker) Watching(scanID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.watchers[scanID]
	return ok
}

// Close stops every watcher. The tracker accepts no new scans afterwards.
func (t *Tracker) Close() {
	t.mu.Lock()
	t.closed = true
	watchers := make([]*Watcher, 0, len(t.watchers))
	for _, w := range t.watchers {
		watchers = append(watchers, w)
	}
	t.watchers = make(map[string]*Watcher)
	t.mu.Unlock()

	for _, w := range watchers {
		w.Stop()
	}
}

func (t *Tracker) remove(scanID string) {
	t.mu.Lock()
	delete(t.watchers, scanID)
	t.mu.Unlock()
}
