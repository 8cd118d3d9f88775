package model

import (
	"sort"
	"strings"
)

// SortMode selects the goal ordering used by the list views. The selected
// mode is persisted between sessions; unrecognized persisted values sanitize
// to SortDueDate.
type SortMode string

const (
	SortDueDate  SortMode = "dueDate"
	SortImpact   SortMode = "impact"
	SortTitle    SortMode = "title"
	SortProgress SortMode = "progress"
)

// DefaultSortMode is the documented fallback for unknown persisted values.
const DefaultSortMode = SortDueDate

// SanitizeSortMode maps a persisted sort-mode string onto the closed set,
// falling back to the default for anything unrecognized.
func SanitizeSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortDueDate, SortImpact, SortTitle, SortProgress:
		return SortMode(s)
	}
	return DefaultSortMode
}

// SortGoals orders goals in place according to the mode. Sorting is stable,
// so goals that compare equal keep their insertion order.
func SortGoals(goals []Goal, mode SortMode) {
	switch mode {
	case SortImpact:
		sort.SliceStable(goals, func(i, j int) bool {
			return goals[i].Impact.Weight() > goals[j].Impact.Weight()
		})
	case SortTitle:
		sort.SliceStable(goals, func(i, j int) bool {
			return strings.ToLower(goals[i].Title) < strings.ToLower(goals[j].Title)
		})
	case SortProgress:
		sort.SliceStable(goals, func(i, j int) bool {
			return goals[i].Progress() > goals[j].Progress()
		})
	default: // SortDueDate
		sort.SliceStable(goals, func(i, j int) bool {
			return sortDateKey(goals[i]) < sortDateKey(goals[j])
		})
	}
}

// sortDateKey is the earliest task due date, falling back to the goal's
// target date. Goals with no dates at all sort last; ISO dates compare
// correctly as strings.
func sortDateKey(g Goal) string {
	key := ""
	for _, t := range g.Tasks {
		if key == "" || t.DueDate < key {
			key = t.DueDate
		}
	}
	if key == "" {
		key = g.TargetDate
	}
	if key == "" {
		return "9999-12-31"
	}
	return key
}
