package syncer

import (
	"context"
	"log"
	"os"
	"sync"
	"time"

	"github.com/vitthal2611/goal-tracker/internal/sheet"
)

// DefaultDebounceWindow is the inactivity window after the last local
// mutation before a push fires.
const DefaultDebounceWindow = 800 * time.Millisecond

// Scheduler debounces local mutations into replace-mode pushes and performs
// the one blocking pull at startup.
//
// The debounce is a single resettable timer slot: every mutation cancels any
// pending timer and arms a fresh one, so a burst of edits produces exactly
// one push carrying only the final state (last-write-wins, never a diff of
// intermediates). Push failures are logged and counted but trigger no retry
// and no rollback; local state stays authoritative. Pushes are not mutually
// excluded: a second push may start before an earlier one resolves, and
// responses are accepted whenever they arrive, so delivery order to the
// remote is not guaranteed.
type Scheduler struct {
	transport Transport
	snapshot  func() []sheet.Row
	importFn  func([]sheet.Row) error
	window    time.Duration
	logger    *log.Logger

	mu         sync.Mutex
	timer      *time.Timer
	stopped    bool
	pushCount  int
	errorCount int
	lastPush   time.Time
}

// SchedulerConfig wires a Scheduler. Transport and Snapshot are required.
// Import receives the pulled rows at bootstrap and must replace local state
// wholesale. Endpoint details belong to the Transport; the scheduler holds
// no process-wide configuration.
type SchedulerConfig struct {
	Transport Transport
	Snapshot  func() []sheet.Row
	Import    func([]sheet.Row) error
	Window    time.Duration
	Logger    *log.Logger
}

// NewScheduler creates a sync scheduler.
func NewScheduler(cfg SchedulerConfig) *Scheduler {
	if cfg.Window == 0 {
		cfg.Window = DefaultDebounceWindow
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(os.Stderr, "[sync] ", log.LstdFlags)
	}
	return &Scheduler{
		transport: cfg.Transport,
		snapshot:  cfg.Snapshot,
		importFn:  cfg.Import,
		window:    cfg.Window,
		logger:    cfg.Logger,
	}
}

// Bootstrap performs the single blocking pull done at startup. On success
// the pulled rows replace local state wholesale via the Import hook, and no
// push is scheduled for that import (freshly pulled data must not bounce
// straight back out). On failure local state is left exactly as it was and
// the error is reported as status, never fatally.
func (s *Scheduler) Bootstrap(ctx context.Context) error {
	rows, err := s.transport.Pull(ctx)
	if err != nil {
		s.logger.Printf("Initial pull failed, keeping local state: %v", err)
		s.mu.Lock()
		s.errorCount++
		s.mu.Unlock()
		return err
	}
	if s.importFn != nil {
		if err := s.importFn(rows); err != nil {
			s.logger.Printf("Importing pulled rows failed, keeping local state: %v", err)
			s.mu.Lock()
			s.errorCount++
			s.mu.Unlock()
			return err
		}
	}
	s.logger.Printf("Initial pull imported %d rows", len(rows))
	return nil
}

// Notify records a local mutation: any pending timer is cancelled and a
// fresh one armed for the full window.
func (s *Scheduler) Notify() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.window, s.fire)
}

// fire runs on timer expiry: flatten the full current state and push it in
// replace mode.
func (s *Scheduler) fire() {
	s.mu.Lock()
	s.timer = nil
	s.mu.Unlock()
	// Error already logged and counted inside pushCtx; no retry policy
	// exists for timer-driven pushes.
	_ = s.pushCtx(context.Background(), ModeReplace, s.snapshot())
}

// Flush cancels any pending timer and pushes the current state immediately
// in replace mode.
func (s *Scheduler) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	return s.pushCtx(ctx, ModeReplace, s.snapshot())
}

// PushNow pushes the current state under an explicit mode, bypassing the
// debounce entirely. Used by the manual sync verbs.
func (s *Scheduler) PushNow(ctx context.Context, mode Mode) error {
	return s.pushCtx(ctx, mode, s.snapshot())
}

func (s *Scheduler) pushCtx(ctx context.Context, mode Mode, rows []sheet.Row) error {
	start := time.Now()
	err := s.transport.Push(ctx, mode, rows)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.errorCount++
		s.logger.Printf("Push (%s, %d rows) failed: %v", mode, len(rows), err)
		return err
	}
	s.pushCount++
	s.lastPush = time.Now()
	s.logger.Printf("Push (%s, %d rows) completed in %v (total pushes: %d, errors: %d)",
		mode, len(rows), time.Since(start), s.pushCount, s.errorCount)
	return nil
}

// Stop cancels any pending timer. In-flight pushes are not cancelled; there
// is no cancellation primitive for them, and late responses are accepted.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Stats reports push/error counters and the time of the last successful
// push.
func (s *Scheduler) Stats() (pushes, errors int, lastPush time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pushCount, s.errorCount, s.lastPush
}
