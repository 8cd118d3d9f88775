package model

import "testing"

func testGoal(id string) Goal {
	return Goal{ID: id, Title: "Goal " + id, Impact: ImpactMedium}
}

func testTask(id, due string) Task {
	return Task{ID: id, Title: "Task " + id, DueDate: due, Impact: ImpactLow, Frequency: FreqOnce}
}

func TestStoreGoalCRUD(t *testing.T) {
	s := NewStore()

	if err := s.AddGoal(testGoal("g1")); err != nil {
		t.Fatalf("AddGoal failed: %v", err)
	}
	if err := s.AddGoal(testGoal("g1")); err == nil {
		t.Fatal("expected duplicate goal id to be rejected")
	}
	if err := s.AddGoal(testGoal("g2")); err != nil {
		t.Fatalf("AddGoal failed: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}

	title := "Renamed"
	impact := ImpactHigh
	if err := s.PatchGoal("g1", GoalPatch{Title: &title, Impact: &impact}); err != nil {
		t.Fatalf("PatchGoal failed: %v", err)
	}
	g, ok := s.Goal("g1")
	if !ok || g.Title != "Renamed" || g.Impact != ImpactHigh {
		t.Fatalf("patched goal = %+v", g)
	}

	if err := s.RemoveGoal("g1"); err != nil {
		t.Fatalf("RemoveGoal failed: %v", err)
	}
	if _, ok := s.Goal("g1"); ok {
		t.Fatal("goal g1 still present after removal")
	}
	if got := s.Goals(); len(got) != 1 || got[0].ID != "g2" {
		t.Fatalf("Goals() = %+v", got)
	}
}

func TestStoreTaskOwnership(t *testing.T) {
	s := NewStore()
	if err := s.AddGoal(testGoal("g1")); err != nil {
		t.Fatalf("AddGoal failed: %v", err)
	}
	if err := s.AddGoal(testGoal("g2")); err != nil {
		t.Fatalf("AddGoal failed: %v", err)
	}

	if err := s.AddTask("g1", testTask("t1", "2025-03-01")); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if err := s.AddTask("g1", testTask("t1", "2025-03-02")); err == nil {
		t.Fatal("expected duplicate task id within a goal to be rejected")
	}
	// Same task id under a different goal is fine: ids are only unique per
	// owning goal.
	if err := s.AddTask("g2", testTask("t1", "2025-03-01")); err != nil {
		t.Fatalf("AddTask under second goal failed: %v", err)
	}
	if err := s.AddTask("missing", testTask("t9", "2025-03-01")); err == nil {
		t.Fatal("expected add to unknown goal to fail")
	}

	if err := s.RemoveGoal("g1"); err != nil {
		t.Fatalf("RemoveGoal failed: %v", err)
	}
	if s.TaskCount() != 1 {
		t.Fatalf("TaskCount = %d after owner removal, want 1", s.TaskCount())
	}
}

func TestStoreLoadReplacesWholesale(t *testing.T) {
	s := NewStore()
	if err := s.AddGoal(testGoal("old")); err != nil {
		t.Fatalf("AddGoal failed: %v", err)
	}

	fresh := testGoal("new")
	fresh.Tasks = []Task{testTask("t1", "2025-05-01")}
	if err := s.Load([]Goal{fresh}); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, ok := s.Goal("old"); ok {
		t.Fatal("old goal survived a wholesale load")
	}
	g, ok := s.Goal("new")
	if !ok || len(g.Tasks) != 1 {
		t.Fatalf("loaded goal = %+v", g)
	}
}

func TestStoreLoadRejectsBatchOnBadGoal(t *testing.T) {
	s := NewStore()
	if err := s.AddGoal(testGoal("keep")); err != nil {
		t.Fatalf("AddGoal failed: %v", err)
	}

	bad := []Goal{testGoal("a"), {ID: "b", Title: "x", Impact: ImpactLow}} // title too short
	if err := s.Load(bad); err == nil {
		t.Fatal("expected Load to reject invalid batch")
	}
	if _, ok := s.Goal("keep"); !ok {
		t.Fatal("failed Load clobbered existing state")
	}
}

// TestSetTaskCompletedOnce checks the reversible one-off transition.
func TestSetTaskCompletedOnce(t *testing.T) {
	s := NewStore()
	if err := s.AddGoal(testGoal("g1")); err != nil {
		t.Fatalf("AddGoal failed: %v", err)
	}
	if err := s.AddTask("g1", testTask("t1", "2025-03-01")); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	if err := s.SetTaskCompleted("g1", "t1", true); err != nil {
		t.Fatalf("SetTaskCompleted failed: %v", err)
	}
	tk, _ := s.Task("g1", "t1")
	if !tk.Completed {
		t.Fatal("once task not completed after check")
	}
	if tk.DueDate != "2025-03-01" {
		t.Fatalf("once task due date moved to %s", tk.DueDate)
	}

	if err := s.SetTaskCompleted("g1", "t1", false); err != nil {
		t.Fatalf("SetTaskCompleted(false) failed: %v", err)
	}
	tk, _ = s.Task("g1", "t1")
	if tk.Completed {
		t.Fatal("once task still completed after uncheck")
	}
}

// TestSetTaskCompletedRecurring checks the advance-not-complete asymmetry:
// checking a recurring task moves its due date exactly one step and never
// sets the flag; unchecking does nothing.
func TestSetTaskCompletedRecurring(t *testing.T) {
	s := NewStore()
	if err := s.AddGoal(testGoal("g1")); err != nil {
		t.Fatalf("AddGoal failed: %v", err)
	}
	weekly := Task{ID: "w1", Title: "Weekly review", DueDate: "2025-01-01", Impact: ImpactHigh, Frequency: FreqWeekly}
	if err := s.AddTask("g1", weekly); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	if err := s.SetTaskCompleted("g1", "w1", true); err != nil {
		t.Fatalf("SetTaskCompleted failed: %v", err)
	}
	tk, _ := s.Task("g1", "w1")
	if tk.Completed {
		t.Fatal("recurring task must never be completed")
	}
	if tk.DueDate != "2025-01-08" {
		t.Fatalf("due date = %s, want 2025-01-08", tk.DueDate)
	}

	// Unchecking is a no-op; the advance is not rolled back.
	if err := s.SetTaskCompleted("g1", "w1", false); err != nil {
		t.Fatalf("SetTaskCompleted(false) failed: %v", err)
	}
	tk, _ = s.Task("g1", "w1")
	if tk.Completed || tk.DueDate != "2025-01-08" {
		t.Fatalf("uncheck changed recurring task: %+v", tk)
	}

	// A second check advances exactly one more step.
	if err := s.SetTaskCompleted("g1", "w1", true); err != nil {
		t.Fatalf("SetTaskCompleted failed: %v", err)
	}
	tk, _ = s.Task("g1", "w1")
	if tk.DueDate != "2025-01-15" {
		t.Fatalf("due date = %s after second check, want 2025-01-15", tk.DueDate)
	}
}

func TestGoalProgressWeighting(t *testing.T) {
	g := Goal{
		ID: "g", Title: "Weighted", Impact: ImpactMedium,
		Tasks: []Task{
			{ID: "a", Title: "high done", DueDate: "2025-01-01", Impact: ImpactHigh, Frequency: FreqOnce, Completed: true},
			{ID: "b", Title: "low open", DueDate: "2025-01-02", Impact: ImpactLow, Frequency: FreqOnce},
			// Recurring tasks never count toward progress.
			{ID: "c", Title: "weekly", DueDate: "2025-01-03", Impact: ImpactHigh, Frequency: FreqWeekly},
		},
	}
	// done weight 3 over total once weight 4.
	if got := g.Progress(); got != 0.75 {
		t.Fatalf("Progress = %v, want 0.75", got)
	}

	empty := Goal{ID: "e", Title: "Empty", Impact: ImpactLow}
	if got := empty.Progress(); got != 0 {
		t.Fatalf("Progress of empty goal = %v, want 0", got)
	}
}
