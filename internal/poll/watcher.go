// Package poll keeps non-terminal scans fresh by re-fetching them on a fixed
// cadence until the backend reports a terminal status.
package poll

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/devseo/dashboard-gateway/internal/clock"
	"github.com/devseo/dashboard-gateway/internal/metrics"
	"github.com/devseo/dashboard-gateway/internal/seo"
)

const defaultInterval = 3 * time.Second

// FetchFunc re-reads one scan report from the backend, bypassing any cache.
type FetchFunc func(ctx context.Context) (seo.ScanReport, error)

// Config controls Watcher behavior.
type Config struct {
	// Interval between re-fetches (default 3s).
	Interval time.Duration
	// FetchTimeout bounds each poll fetch (default Interval).
	FetchTimeout time.Duration
	// Scheduler injects timer mechanics so tests never sleep.
	Scheduler clock.Scheduler
	// OnUpdate is invoked with each successfully fetched report.
	OnUpdate func(seo.ScanReport)
	// OnDone is invoked once when polling ends for any reason other than
	// an explicit Stop: terminal status or fetch error.
	OnDone func(scanID string)
	// Logger is optional.
	Logger *zap.Logger
}

// Watcher polls a single scan. It schedules exactly one re-fetch at a time:
// after each response it re-evaluates the fresh status and only continues
// while the scan is still pending or running. A fetch error ends the loop;
// there is no implicit retry. Once stopped, a watcher never polls again.
type Watcher struct {
	scanID string
	fetch  FetchFunc
	cfg    Config
	logger *zap.Logger

	mu      sync.Mutex
	timer   clock.Timer
	stopped bool
	done    sync.Once
}

// NewWatcher constructs a Watcher for one scan.
func NewWatcher(scanID string, fetch FetchFunc, cfg Config) *Watcher {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = cfg.Interval
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{scanID: scanID, fetch: fetch, cfg: cfg, logger: logger}
}

// Start begins polling if the observed status still warrants it. It reports
// whether a re-fetch was scheduled. Callers pass the status they just
// rendered, so the first poll lands one full interval after that read.
func (w *Watcher) Start(status seo.ScanStatus) bool {
	if !seo.ShouldContinuePolling(status) {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped || w.timer != nil {
		return false
	}
	metrics.IncActiveWatchers()
	w.timer = w.cfg.Scheduler.AfterFunc(w.cfg.Interval, w.cycle)
	return true
}

// Stop cancels any pending re-fetch. A timer callback racing Stop becomes a
// no-op. Safe to call multiple times.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	timer := w.timer
	w.timer = nil
	w.mu.Unlock()

	if timer != nil {
		timer.Stop()
		metrics.DecActiveWatchers()
	}
}

func (w *Watcher) cycle() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.timer = nil
	w.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), w.cfg.FetchTimeout)
	defer cancel()

	report, err := w.fetch(ctx)
	if err != nil {
		w.logger.Warn("scan poll failed",
			zap.String("scan_id", w.scanID),
			zap.Error(err),
		)
		metrics.ObservePollCycle("error")
		w.finish()
		return
	}

	metrics.ObservePollCycle(string(report.Status))
	if w.cfg.OnUpdate != nil {
		w.cfg.OnUpdate(report)
	}

	if !seo.ShouldContinuePolling(report.Status) {
		w.logger.Debug("scan reached terminal status",
			zap.String("scan_id", w.scanID),
			zap.String("status", string(report.Status)),
		)
		w.finish()
		return
	}

	w.mu.Lock()
	if !w.stopped && w.timer == nil {
		w.timer = w.cfg.Scheduler.AfterFunc(w.cfg.Interval, w.cycle)
	}
	w.mu.Unlock()
}

// finish marks the watcher permanently done after a terminal status or a
// fetch error.
func (w *Watcher) finish() {
	w.mu.Lock()
	alreadyStopped := w.stopped
	w.stopped = true
	w.timer = nil
	w.mu.Unlock()

	if !alreadyStopped {
		metrics.DecActiveWatchers()
	}
	w.done.Do(func() {
		if w.cfg.OnDone != nil {
			w.cfg.OnDone(w.scanID)
		}
	})
}
