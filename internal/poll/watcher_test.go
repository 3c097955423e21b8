package poll

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/devseo/dashboard-gateway/internal/clock"
	"github.com/devseo/dashboard-gateway/internal/metrics"
	"github.com/devseo/dashboard-gateway/internal/seo"
)

func TestMain(m *testing.M) {
	metrics.Init()
	m.Run()
}

// fakeScheduler records timers and fires them on demand, so poll behavior is
// asserted without real time passing.
type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

type fakeTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) clock.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	timer := &fakeTimer{delay: d, fn: f}
	s.timers = append(s.timers, timer)
	return timer
}

func (t *fakeTimer) Stop() bool {
	t.stopped = true
	return !t.fired
}

// pending returns timers that are neither fired nor stopped.
func (s *fakeScheduler) pending() []*fakeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*fakeTimer
	for _, t := range s.timers {
		if !t.fired && !t.stopped {
			out = append(out, t)
		}
	}
	return out
}

// fire runs the oldest pending timer callback synchronously.
func (s *fakeScheduler) fire(t *testing.T) {
	t.Helper()
	s.mu.Lock()
	var timer *fakeTimer
	for _, candidate := range s.timers {
		if !candidate.fired && !candidate.stopped {
			timer = candidate
			break
		}
	}
	s.mu.Unlock()
	require.NotNil(t, timer, "no pending timer to fire")
	timer.fired = true
	timer.fn()
}

type scriptedFetch struct {
	mu      sync.Mutex
	reports []seo.ScanReport
	err     error
	calls   int
}

func (f *scriptedFetch) fetch(context.Context) (seo.ScanReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return seo.ScanReport{}, f.err
	}
	report := f.reports[0]
	if len(f.reports) > 1 {
		f.reports = f.reports[1:]
	}
	return report, nil
}

func (f *scriptedFetch) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func runningReport(id string) seo.ScanReport {
	return seo.ScanReport{Scan: seo.Scan{ID: id, Status: seo.ScanRunning}}
}

func completedReport(id string, score int) seo.ScanReport {
	return seo.ScanReport{Scan: seo.Scan{ID: id, Status: seo.ScanCompleted, SEOScore: &score}}
}

func TestWatcherSchedulesAtConfiguredInterval(t *testing.T) {
	t.Parallel()

	sched := &fakeScheduler{}
	fetch := &scriptedFetch{reports: []seo.ScanReport{runningReport("s1")}}
	w := NewWatcher("s1", fetch.fetch, Config{Interval: 3 * time.Second, Scheduler: sched})

	require.True(t, w.Start(seo.ScanRunning))
	pending := sched.pending()
	require.Len(t, pending, 1)
	require.Equal(t, 3*time.Second, pending[0].delay,
		"the re-fetch must land exactly one interval after the last read")

	sched.fire(t)
	require.Equal(t, 1, fetch.callCount())

	// Still running, so exactly one new timer is pending at the same cadence.
	pending = sched.pending()
	require.Len(t, pending, 1)
	require.Equal(t, 3*time.Second, pending[0].delay)
}

func TestWatcherStopsPermanentlyOnTerminalStatus(t *testing.T) {
	t.Parallel()

	sched := &fakeScheduler{}
	fetch := &scriptedFetch{reports: []seo.ScanReport{completedReport("s1", 82)}}
	var updates []seo.ScanReport
	doneCh := make(chan string, 1)
	w := NewWatcher("s1", fetch.fetch, Config{
		Interval:  3 * time.Second,
		Scheduler: sched,
		OnUpdate:  func(r seo.ScanReport) { updates = append(updates, r) },
		OnDone:    func(id string) { doneCh <- id },
	})

	require.True(t, w.Start(seo.ScanRunning))
	sched.fire(t)

	require.Empty(t, sched.pending(), "no further re-fetch once the scan completed")
	require.Len(t, updates, 1)
	require.Equal(t, seo.ScanCompleted, updates[0].Status)
	require.Equal(t, "s1", <-doneCh)

	// A stopped watcher never restarts.
	require.False(t, w.Start(seo.ScanRunning))
	require.Empty(t, sched.pending())
}

func TestWatcherDoesNotStartForTerminalStatus(t *testing.T) {
	t.Parallel()

	sched := &fakeScheduler{}
	fetch := &scriptedFetch{reports: []seo.ScanReport{completedReport("s1", 82)}}
	w := NewWatcher("s1", fetch.fetch, Config{Scheduler: sched})

	require.False(t, w.Start(seo.ScanCompleted))
	require.False(t, w.Start(seo.ScanFailed))
	require.Empty(t, sched.pending())
	require.Zero(t, fetch.callCount())
}

func TestWatcherFetchErrorEndsPollingWithoutRetry(t *testing.T) {
	t.Parallel()

	sched := &fakeScheduler{}
	fetch := &scriptedFetch{err: errors.New("backend unreachable")}
	doneCh := make(chan string, 1)
	w := NewWatcher("s1", fetch.fetch, Config{
		Scheduler: sched,
		OnDone:    func(id string) { doneCh <- id },
	})

	require.True(t, w.Start(seo.ScanPending))
	sched.fire(t)

	require.Equal(t, 1, fetch.callCount())
	require.Empty(t, sched.pending(), "a fetch error must not schedule an implicit retry")
	require.Equal(t, "s1", <-doneCh)
}

func TestWatcherStopCancelsPendingTimer(t *testing.T) {
	t.Parallel()

	sched := &fakeScheduler{}
	fetch := &scriptedFetch{reports: []seo.ScanReport{runningReport("s1")}}
	w := NewWatcher("s1", fetch.fetch, Config{Scheduler: sched})

	require.True(t, w.Start(seo.ScanRunning))
	w.Stop()

	require.Empty(t, sched.pending(), "stop must release the pending timer")

	// A callback racing Stop must be a no-op, not a late poll.
	sched.mu.Lock()
	timer := sched.timers[0]
	sched.mu.Unlock()
	timer.fn()
	require.Zero(t, fetch.callCount())
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	t.Parallel()

	sched := &fakeScheduler{}
	fetch := &scriptedFetch{reports: []seo.ScanReport{runningReport("s1")}}
	w := NewWatcher("s1", fetch.fetch, Config{Scheduler: sched})

	require.True(t, w.Start(seo.ScanRunning))
	w.Stop()
	require.NotPanics(t, w.Stop)
}

func TestTrackerTracksUntilTerminal(t *testing.T) {
	t.Parallel()

	sched := &fakeScheduler{}
	fetch := &scriptedFetch{reports: []seo.ScanReport{
		runningReport("s1"),
		completedReport("s1", 82),
	}}
	tracker := NewTracker(func(ctx context.Context, _ string) (seo.ScanReport, error) {
		return fetch.fetch(ctx)
	}, Config{Interval: 3 * time.Second, Scheduler: sched})

	tracker.Track("s1", seo.ScanRunning)
	require.True(t, tracker.Watching("s1"))

	// Tracking the same scan twice must not stack watchers.
	tracker.Track("s1", seo.ScanRunning)
	require.Len(t, sched.pending(), 1)

	sched.fire(t) // still running
	require.True(t, tracker.Watching("s1"))

	sched.fire(t) // completed
	require.False(t, tracker.Watching("s1"))
	require.Empty(t, sched.pending())
}

func TestTrackerIgnoresTerminalScans(t *testing.T) {
	t.Parallel()

	sched := &fakeScheduler{}
	tracker := NewTracker(func(context.Context, string) (seo.ScanReport, error) {
		t.Error("terminal scans must never be fetched")
		return seo.ScanReport{}, nil
	}, Config{Scheduler: sched})

	tracker.Track("s1", seo.ScanCompleted)
	tracker.Track("s2", seo.ScanFailed)
	require.False(t, tracker.Watching("s1"))
	require.False(t, tracker.Watching("s2"))
	require.Empty(t, sched.pending())
}

func TestTrackerCloseStopsWatchers(t *testing.T) {
	t.Parallel()

	sched := &fakeScheduler{}
	fetch := &scriptedFetch{reports: []seo.ScanReport{runningReport("s1")}}
	tracker := NewTracker(func(ctx context.Context, _ string) (seo.ScanReport, error) {
		return fetch.fetch(ctx)
	}, Config{Scheduler: sched})

	tracker.Track("s1", seo.ScanRunning)
	tracker.Close()
	require.Empty(t, sched.pending())

	tracker.Track("s2", seo.ScanRunning)
	require.False(t, tracker.Watching("s2"), "a closed tracker accepts no new scans")
}
