// Package model holds the in-memory goal/task collection and its invariants.
package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Impact is the priority weight of a goal or task.
type Impact string

const (
	ImpactLow    Impact = "Low"
	ImpactMedium Impact = "Medium"
	ImpactHigh   Impact = "High"
)

// Weight returns the numeric multiplier used when aggregating progress.
func (i Impact) Weight() int {
	switch i {
	case ImpactHigh:
		return 3
	case ImpactMedium:
		return 2
	default:
		return 1
	}
}

// ParseImpact parses a case-insensitive impact name.
func ParseImpact(s string) (Impact, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return ImpactLow, nil
	case "medium", "med":
		return ImpactMedium, nil
	case "high":
		return ImpactHigh, nil
	}
	return "", fmt.Errorf("invalid impact %q (must be: low, medium, or high)", s)
}

// Frequency describes how often a task recurs.
type Frequency string

const (
	FreqOnce      Frequency = "once"
	FreqDaily     Frequency = "daily"
	FreqWeekly    Frequency = "weekly"
	FreqMonthly   Frequency = "monthly"
	FreqQuarterly Frequency = "quarterly"
	FreqYearly    Frequency = "yearly"
)

// ParseFrequency parses a case-insensitive frequency name.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "once", "":
		return FreqOnce, nil
	case "daily":
		return FreqDaily, nil
	case "weekly":
		return FreqWeekly, nil
	case "monthly":
		return FreqMonthly, nil
	case "quarterly":
		return FreqQuarterly, nil
	case "yearly":
		return FreqYearly, nil
	}
	return "", fmt.Errorf("invalid frequency %q (must be: once, daily, weekly, monthly, quarterly, or yearly)", s)
}

// Recurring reports whether tasks of this frequency repeat. Recurring tasks
// are never marked completed; their progress is expressed by due-date
// advancement only.
func (f Frequency) Recurring() bool {
	return f != FreqOnce && f != ""
}

// Task is an actionable item owned by exactly one goal. ID is unique within
// the owning goal.
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	DueDate   string    `json:"dueDate"` // ISO-8601 date (YYYY-MM-DD)
	Impact    Impact    `json:"impact"`
	Frequency Frequency `json:"frequency"`
	Completed bool      `json:"completed"` // meaningful only when Frequency is once
}

// Goal is a top-level tracked objective with an ordered list of tasks.
type Goal struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Impact     Impact `json:"impact"`
	TargetDate string `json:"targetDate,omitempty"` // optional ISO-8601 date
	Collapsed  bool   `json:"collapsed,omitempty"`
	Tasks      []Task `json:"tasks"`
}

// Progress returns the weighted completion fraction over the goal's one-off
// tasks: sum of completed task weights divided by the sum of all one-off
// task weights. Recurring tasks carry no terminal state and are excluded.
// Returns 0 when the goal has no one-off tasks.
func (g Goal) Progress() float64 {
	total := 0
	done := 0
	for _, t := range g.Tasks {
		if t.Frequency.Recurring() {
			continue
		}
		w := t.Impact.Weight()
		total += w
		if t.Completed {
			done += w
		}
	}
	if total == 0 {
		return 0
	}
	return float64(done) / float64(total)
}

// NewID returns a fresh opaque identifier for a goal or task.
func NewID() string {
	return uuid.New().String()[:8]
}
