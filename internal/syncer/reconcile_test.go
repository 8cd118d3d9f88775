package syncer

import (
	"testing"

	"github.com/vitthal2611/goal-tracker/internal/sheet"
)

func row(goalID, taskID, title string) sheet.Row {
	return sheet.Row{
		GoalID:    goalID,
		GoalTitle: "Goal " + goalID,
		TaskID:    taskID,
		TaskTitle: title,
		Frequency: "once",
		Completed: "FALSE",
	}
}

// TestMergeInsertUpdateDelete is the canonical merge scenario: existing
// [A, B], desired [A, C] — A untouched, B deleted, C appended; final order
// [A, C].
func TestMergeInsertUpdateDelete(t *testing.T) {
	existing := []sheet.Row{row("g", "A", "a"), row("g", "B", "b")}
	desired := []sheet.Row{row("g", "A", "a"), row("g", "C", "c")}

	out, plan, err := Reconcile(existing, desired, ModeMerge)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if len(out) != 2 || out[0].TaskID != "A" || out[1].TaskID != "C" {
		t.Fatalf("merge result order = %+v, want [A, C]", taskIDs(out))
	}
	if plan.Inserted != 1 || plan.Deleted != 1 || plan.Updated != 0 {
		t.Fatalf("plan = %+v, want 1 insert, 1 delete, 0 updates", plan)
	}
}

// TestMergeUpdatesChangedRowInPlace checks that a field-level difference
// overwrites the existing row at its position instead of appending.
func TestMergeUpdatesChangedRowInPlace(t *testing.T) {
	existing := []sheet.Row{row("g", "A", "old title"), row("g", "B", "b")}
	desired := []sheet.Row{row("g", "A", "new title"), row("g", "B", "b")}

	out, plan, err := Reconcile(existing, desired, ModeMerge)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d rows, want 2", len(out))
	}
	if out[0].TaskTitle != "new title" {
		t.Errorf("row A title = %q, want updated in place", out[0].TaskTitle)
	}
	if plan.Updated != 1 || plan.Inserted != 0 || plan.Deleted != 0 {
		t.Fatalf("plan = %+v, want exactly 1 update", plan)
	}
}

func TestMergeDeletesManyWithoutIndexSkew(t *testing.T) {
	existing := []sheet.Row{
		row("g", "A", "a"), row("g", "B", "b"), row("g", "C", "c"),
		row("g", "D", "d"), row("g", "E", "e"),
	}
	desired := []sheet.Row{row("g", "B", "b"), row("g", "D", "d")}

	out, plan, err := Reconcile(existing, desired, ModeMerge)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if got := taskIDs(out); len(got) != 2 || got[0] != "B" || got[1] != "D" {
		t.Fatalf("result = %v, want [B, D]", got)
	}
	if plan.Deleted != 3 {
		t.Fatalf("deleted %d, want 3", plan.Deleted)
	}
}

// TestAppendNeverDeduplicates pins the deliberate append-mode behavior:
// pushing a row whose key already exists remotely produces a duplicate.
func TestAppendNeverDeduplicates(t *testing.T) {
	existing := []sheet.Row{row("g", "A", "a")}
	desired := []sheet.Row{row("g", "A", "a"), row("g", "B", "b")}

	out, _, err := Reconcile(existing, desired, ModeAppend)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if got := taskIDs(out); len(got) != 3 || got[0] != "A" || got[1] != "A" || got[2] != "B" {
		t.Fatalf("append result = %v, want [A, A, B] with duplicate intact", got)
	}

	// The same payload under merge updates in place instead.
	out, _, err = Reconcile(existing, desired, ModeMerge)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if got := taskIDs(out); len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Fatalf("merge result = %v, want [A, B]", got)
	}
}

func TestReplaceDiscardsExisting(t *testing.T) {
	existing := []sheet.Row{row("g", "A", "a"), row("g", "B", "b")}
	desired := []sheet.Row{row("g", "C", "c")}

	out, plan, err := Reconcile(existing, desired, ModeReplace)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if got := taskIDs(out); len(got) != 1 || got[0] != "C" {
		t.Fatalf("replace result = %v, want [C]", got)
	}
	if plan.Deleted != 2 || plan.Inserted != 1 {
		t.Fatalf("plan = %+v", plan)
	}
}

func TestReconcileDoesNotMutateInputs(t *testing.T) {
	existing := []sheet.Row{row("g", "A", "a"), row("g", "B", "b")}
	desired := []sheet.Row{row("g", "A", "changed")}

	if _, _, err := Reconcile(existing, desired, ModeMerge); err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if existing[0].TaskTitle != "a" || len(existing) != 2 {
		t.Fatalf("existing mutated: %+v", existing)
	}
}

func TestParseMode(t *testing.T) {
	for _, ok := range []string{"replace", "merge", "append"} {
		if _, err := ParseMode(ok); err != nil {
			t.Errorf("ParseMode(%s) failed: %v", ok, err)
		}
	}
	if _, err := ParseMode("upsert"); err == nil {
		t.Error("ParseMode accepted unknown mode")
	}
	if _, _, err := Reconcile(nil, nil, Mode("")); err == nil {
		t.Error("Reconcile accepted empty mode")
	}
}

func taskIDs(rows []sheet.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.TaskID
	}
	return out
}
