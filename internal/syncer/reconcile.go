// Package syncer keeps the remote flat row store eventually consistent with
// the local goal collection: one reconciliation function over three closed
// sync policies, a transport boundary, and a debounced push scheduler.
package syncer

import (
	"fmt"

	"github.com/vitthal2611/goal-tracker/internal/sheet"
)

// Mode selects the reconciliation policy for a single push. The set is
// closed; the zero value is not valid.
type Mode string

const (
	// ModeReplace discards every existing remote row and writes the desired
	// snapshot verbatim. Used by the debounced auto-sync and manual export.
	ModeReplace Mode = "replace"
	// ModeMerge performs full set reconciliation keyed by (goalId, taskId).
	ModeMerge Mode = "merge"
	// ModeAppend inserts every payload row unconditionally, with no key
	// matching. Duplicates are possible and accepted; this minimal mode
	// deliberately does not deduplicate.
	ModeAppend Mode = "append"
)

// ParseMode parses a sync mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeReplace, ModeMerge, ModeAppend:
		return Mode(s), nil
	}
	return "", fmt.Errorf("invalid sync mode %q (must be: replace, merge, or append)", s)
}

// Plan records what a merge decided, mostly for logging and tests.
type Plan struct {
	Inserted int
	Updated  int
	Deleted  int
}

// Reconcile applies one push of desired rows onto the existing row set under
// the given mode and returns the resulting rows. The input slices are not
// mutated.
func Reconcile(existing, desired []sheet.Row, mode Mode) ([]sheet.Row, Plan, error) {
	switch mode {
	case ModeReplace:
		out := make([]sheet.Row, len(desired))
		copy(out, desired)
		return out, Plan{Inserted: len(desired), Deleted: len(existing)}, nil
	case ModeAppend:
		out := make([]sheet.Row, 0, len(existing)+len(desired))
		out = append(out, existing...)
		out = append(out, desired...)
		return out, Plan{Inserted: len(desired)}, nil
	case ModeMerge:
		out, plan := merge(existing, desired)
		return out, plan, nil
	}
	return nil, Plan{}, fmt.Errorf("invalid sync mode %q", mode)
}

// merge reconciles by composite key: existing rows absent from the desired
// snapshot are deleted, rows present in both are overwritten in place when
// any field differs, and desired rows with no existing counterpart are
// appended. Deletions are applied last, in descending index order, so
// earlier deletions never shift the indices of later ones.
func merge(existing, desired []sheet.Row) ([]sheet.Row, Plan) {
	var plan Plan

	desiredByKey := make(map[string]sheet.Row, len(desired))
	for _, r := range desired {
		desiredByKey[r.Key()] = r
	}
	existingByKey := make(map[string]int, len(existing))
	for i, r := range existing {
		existingByKey[r.Key()] = i
	}

	out := make([]sheet.Row, len(existing))
	copy(out, existing)

	var toDelete []int
	for i, r := range out {
		want, ok := desiredByKey[r.Key()]
		if !ok {
			toDelete = append(toDelete, i)
			continue
		}
		if r != want {
			out[i] = want
			plan.Updated++
		}
	}

	for _, r := range desired {
		if _, ok := existingByKey[r.Key()]; !ok {
			out = append(out, r)
			plan.Inserted++
		}
	}

	for i := len(toDelete) - 1; i >= 0; i-- {
		idx := toDelete[i]
		out = append(out[:idx], out[idx+1:]...)
		plan.Deleted++
	}

	return out, plan
}
