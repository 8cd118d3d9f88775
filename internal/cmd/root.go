// Package cmd implements the goaltracker CLI.
package cmd

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/spf13/cobra"

	"github.com/vitthal2611/goal-tracker/internal/config"
	"github.com/vitthal2611/goal-tracker/internal/model"
	"github.com/vitthal2611/goal-tracker/internal/sheet"
	"github.com/vitthal2611/goal-tracker/internal/state"
	"github.com/vitthal2611/goal-tracker/internal/syncer"
)

var rootCmd = &cobra.Command{
	Use:   "goaltracker",
	Short: "Track goals and recurring tasks, synced to a spreadsheet backend",
	Long: `goaltracker keeps a hierarchical collection of goals and one-off or
recurring tasks in local state, and keeps a remote spreadsheet-backed row
store eventually consistent with it.

Local state is always authoritative. Mutations persist immediately; the
daemon (or the manual sync verbs) pushes flattened snapshots to the remote
endpoint configured in ~/.goal-tracker/config.toml.`,
	SilenceUsage: true,
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.goal-tracker/config.toml)")

	rootCmd.AddCommand(goalCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(daemonCmd)
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func requireSubcommand(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

// app bundles the pieces every command needs: configuration, the persisted
// state store, and the loaded goal collection.
//
// model.Store is not safe for concurrent use, and in daemon mode the
// scheduler's timer goroutine snapshots the store while the watcher loop
// reloads it, so every store access from this struct goes through mu.
type app struct {
	cfg      config.Config
	states   *state.Store
	mu       sync.Mutex
	store    *model.Store
	sortMode model.SortMode
}

// loadApp loads configuration and persisted state. Corrupt or missing state
// yields an empty collection and the default sort mode, never an error.
func loadApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	states := state.New(cfg.StatePath)

	store := model.NewStore()
	var goals []model.Goal
	if states.Get(state.KeyGoals, &goals) {
		if err := store.Load(goals); err != nil {
			// Persisted data predating a validation rule should not brick
			// the CLI; start empty and let the next save repair the file.
			fmt.Fprintf(os.Stderr, "warning: discarding unreadable persisted goals: %v\n", err)
			store = model.NewStore()
		}
	}

	var rawMode string
	states.Get(state.KeySortMode, &rawMode)

	return &app{
		cfg:      cfg,
		states:   states,
		store:    store,
		sortMode: model.SanitizeSortMode(rawMode),
	}, nil
}

// save persists the full goal collection. Callers racing the scheduler
// hold a.mu; one-shot commands have no other goroutine to race.
func (a *app) save() error {
	if err := a.states.Set(state.KeyGoals, a.store.Goals()); err != nil {
		return fmt.Errorf("saving goals: %w", err)
	}
	return nil
}

// transport builds the configured remote transport.
func (a *app) transport() (syncer.Transport, error) {
	if a.cfg.Endpoint == "" {
		return nil, fmt.Errorf("no sync endpoint configured; set endpoint in %s", config.DefaultPath())
	}
	return syncer.NewHTTPTransport(syncer.HTTPConfig{
		Endpoint: a.cfg.Endpoint,
		Token:    a.cfg.Token,
	})
}

// scheduler wires a sync scheduler over this app's state.
func (a *app) scheduler(t syncer.Transport, logger *log.Logger) *syncer.Scheduler {
	return syncer.NewScheduler(syncer.SchedulerConfig{
		Transport: t,
		Window:    a.cfg.DebounceWindow(),
		Logger:    logger,
		Snapshot: func() []sheet.Row {
			a.mu.Lock()
			defer a.mu.Unlock()
			return sheet.Flatten(a.store.Goals())
		},
		Import: func(rows []sheet.Row) error {
			a.mu.Lock()
			defer a.mu.Unlock()
			if err := a.store.Load(sheet.Inflate(rows)); err != nil {
				return err
			}
			return a.save()
		},
	})
}

// parseDateArg accepts either an ISO date or a natural-language expression
// ("tomorrow", "next friday", "end of march").
func parseDateArg(s string) (string, error) {
	if _, err := model.ParseDate(s); err == nil {
		return s, nil
	}
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	r, err := w.Parse(s, time.Now())
	if err != nil || r == nil {
		return "", fmt.Errorf("cannot understand date %q (use YYYY-MM-DD or e.g. \"next friday\")", s)
	}
	return model.FormatDate(r.Time), nil
}
