package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/vitthal2611/goal-tracker/internal/model"
	"github.com/vitthal2611/goal-tracker/internal/state"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the debounced sync daemon in the foreground",
	Long: `Run the sync daemon in the foreground.

On start the daemon performs one blocking pull and replaces local state with
the remote rows; if the pull fails, whatever local state exists is kept. It
then watches the state file and debounces every change into a replace-mode
push after 800ms of inactivity, so a burst of edits lands as a single push
carrying only the final state. Push failures are logged and never retried;
local state stays authoritative.`,
	RunE: runDaemon,
}

var daemonForegroundLog bool

func init() {
	daemonCmd.Flags().BoolVar(&daemonForegroundLog, "stderr", false, "log to stderr instead of the rotating log file")
}

func runDaemon(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	t, err := a.transport()
	if err != nil {
		return err
	}

	logger := log.New(os.Stderr, "[daemon] ", log.LstdFlags)
	if !daemonForegroundLog {
		logger = log.New(&lumberjack.Logger{
			Filename:   a.cfg.LogPath,
			MaxSize:    5, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}, "[daemon] ", log.LstdFlags)
	}

	sched := a.scheduler(t, logger)
	defer sched.Stop()

	// One blocking pull before the watcher starts, so the import's own
	// state write cannot bounce straight back out as a push.
	if err := sched.Bootstrap(context.Background()); err != nil {
		logger.Printf("Continuing with local state (%d goals)", a.store.Len())
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()

	stateDir := filepath.Dir(a.cfg.StatePath)
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	if err := watcher.Add(stateDir); err != nil {
		return fmt.Errorf("watching %s: %w", stateDir, err)
	}
	logger.Printf("Watching %s (debounce %v)", a.cfg.StatePath, a.cfg.DebounceWindow())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stateFile := filepath.Base(a.cfg.StatePath)
	for {
		select {
		case <-ctx.Done():
			logger.Println("Shutdown requested, stopping daemon")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != stateFile {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			a.reload(logger)
			sched.Notify()
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Printf("Watcher error: %v", werr)
		}
	}
}

// reload re-reads the persisted goals so the next debounced snapshot
// reflects mutations made by other goaltracker processes. Holds a.mu
// against the scheduler's timer goroutine snapshotting mid-rewrite.
func (a *app) reload(logger *log.Logger) {
	var goals []model.Goal
	if !a.states.Get(state.KeyGoals, &goals) {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.store.Load(goals); err != nil {
		logger.Printf("Warning: reloading state failed, keeping previous snapshot: %v", err)
	}
}
