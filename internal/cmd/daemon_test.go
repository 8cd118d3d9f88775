package cmd

import (
	"context"
	"io"
	"log"
	"path/filepath"
	"testing"
	"time"

	"github.com/vitthal2611/goal-tracker/internal/config"
	"github.com/vitthal2611/goal-tracker/internal/model"
	"github.com/vitthal2611/goal-tracker/internal/state"
	"github.com/vitthal2611/goal-tracker/internal/syncer"
)

// TestReloadDoesNotRaceSnapshot hammers the daemon's reload path while a
// short-window scheduler fires timer-driven snapshots, exercising the same
// two goroutines the daemon runs. model.Store is not safe for concurrent
// use, so both sides must serialize through the app mutex; under the race
// detector this fails if either one skips it.
func TestReloadDoesNotRaceSnapshot(t *testing.T) {
	dir := t.TempDir()
	states := state.New(filepath.Join(dir, "state.json"))

	goals := []model.Goal{{
		ID: "g1", Title: "Busy goal", Impact: model.ImpactHigh,
		Tasks: []model.Task{
			{ID: "t1", Title: "Churn", DueDate: "2025-04-01", Impact: model.ImpactLow, Frequency: model.FreqOnce},
			{ID: "t2", Title: "More churn", DueDate: "2025-04-02", Impact: model.ImpactMedium, Frequency: model.FreqWeekly},
		},
	}}
	if err := states.Set(state.KeyGoals, goals); err != nil {
		t.Fatalf("seeding state failed: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.StatePath = states.Path()
	cfg.DebounceMS = 1
	a := &app{cfg: cfg, states: states, store: model.NewStore()}

	logger := log.New(io.Discard, "", 0)
	remote := syncer.NewMemoryTransport()
	sched := a.scheduler(remote, logger)
	defer sched.Stop()

	// Rewrite the store from the event-loop side while the 1ms timer
	// snapshots it from the scheduler's goroutine.
	deadline := time.Now().Add(300 * time.Millisecond)
	for time.Now().Before(deadline) {
		a.reload(logger)
		sched.Notify()
	}

	// The store is intact and a final flush carries the full snapshot.
	if err := sched.Flush(context.Background()); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if got := remote.Rows(); len(got) != 2 {
		t.Fatalf("remote has %d rows after flush, want 2", len(got))
	}
}
