// Package recur generates dated task series from calendar arithmetic.
package recur

import (
	"fmt"

	"github.com/vitthal2611/goal-tracker/internal/model"
)

// Duration bounds for explicit daily series.
const (
	MinDays = 1
	MaxDays = 365
)

// DefaultDays is the daily-series window used when the owning goal has no
// target date and the caller gave no explicit duration.
const DefaultDays = 7

// Advance returns the date one frequency step after the given date. Month
// and year steps clamp to the last day of the target month; see
// model.NextDueDate for the rollover contract.
func Advance(date string, f model.Frequency) (string, error) {
	return model.NextDueDate(date, f)
}

// Series materializes one one-off task per occurrence of freq between start
// and end, both inclusive. The cursor begins at start and steps by the
// frequency unit until it passes end. Returns an empty series when
// start > end.
func Series(title string, impact model.Impact, start, end string, freq model.Frequency) ([]model.Task, error) {
	if !freq.Recurring() {
		return nil, fmt.Errorf("series requires a recurring frequency, got %q", freq)
	}
	if _, err := model.ParseDate(start); err != nil {
		return nil, fmt.Errorf("series start: %w", err)
	}
	if _, err := model.ParseDate(end); err != nil {
		return nil, fmt.Errorf("series end: %w", err)
	}

	var tasks []model.Task
	cursor := start
	for cursor <= end {
		tasks = append(tasks, model.Task{
			ID:        model.NewID(),
			Title:     title,
			DueDate:   cursor,
			Impact:    impact,
			Frequency: model.FreqOnce,
		})
		next, err := Advance(cursor, freq)
		if err != nil {
			return nil, err
		}
		cursor = next
	}
	return tasks, nil
}

// Request describes a task being added to a goal.
type Request struct {
	Title     string
	Impact    model.Impact
	Frequency model.Frequency
	Days      int    // daily only: explicit window; 0 derives it from the goal
	Today     string // injection point for tests; empty means time.Now
}

// Plan turns a request into the concrete task records to append to the goal.
//
// Policy:
//   - once: exactly one one-off task due today.
//   - daily: the full series from today over an explicit window (clamped to
//     [1, 365] days), or a window derived from the goal's target date, or 7
//     days when the goal has no target. The series never runs past the
//     goal's target date.
//   - weekly/monthly/quarterly/yearly: the full series from today to the
//     goal's target date when one exists; otherwise a single mutable
//     recurring task due today, advanced step by step as it is checked off.
func Plan(goal model.Goal, req Request) ([]model.Task, error) {
	if err := model.ValidateTitle(req.Title); err != nil {
		return nil, err
	}
	today := req.Today
	if today == "" {
		today = model.Today()
	}

	switch {
	case req.Frequency == model.FreqOnce:
		return []model.Task{{
			ID:        model.NewID(),
			Title:     req.Title,
			DueDate:   today,
			Impact:    req.Impact,
			Frequency: model.FreqOnce,
		}}, nil

	case req.Frequency == model.FreqDaily:
		days := req.Days
		if days == 0 {
			days = DefaultDays
			if goal.TargetDate != "" {
				span, err := daysBetweenInclusive(today, goal.TargetDate)
				if err != nil {
					return nil, err
				}
				days = span
			}
		}
		days = clampDays(days)
		start, err := model.ParseDate(today)
		if err != nil {
			return nil, err
		}
		end := model.FormatDate(start.AddDate(0, 0, days-1))
		if goal.TargetDate != "" && end > goal.TargetDate {
			end = goal.TargetDate
		}
		// The window is at least one day even when the target has already
		// passed; a daily plan always yields today's task.
		if end < today {
			end = today
		}
		return Series(req.Title, req.Impact, today, end, model.FreqDaily)

	default:
		if goal.TargetDate != "" {
			return Series(req.Title, req.Impact, today, goal.TargetDate, req.Frequency)
		}
		// No horizon to materialize against: a single recurring shell task
		// whose due date advances on completion.
		return []model.Task{{
			ID:        model.NewID(),
			Title:     req.Title,
			DueDate:   today,
			Impact:    req.Impact,
			Frequency: req.Frequency,
		}}, nil
	}
}

func clampDays(days int) int {
	if days < MinDays {
		return MinDays
	}
	if days > MaxDays {
		return MaxDays
	}
	return days
}

// daysBetweenInclusive counts the calendar days from a through b, both ends
// included. Negative spans clamp to the minimum window.
func daysBetweenInclusive(a, b string) (int, error) {
	ta, err := model.ParseDate(a)
	if err != nil {
		return 0, err
	}
	tb, err := model.ParseDate(b)
	if err != nil {
		return 0, err
	}
	span := int(tb.Sub(ta).Hours()/24) + 1
	if span < MinDays {
		span = MinDays
	}
	return span, nil
}
