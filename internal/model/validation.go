package model

import (
	"fmt"
	"strings"
)

// Title length bounds shared by goals and tasks.
const (
	minTitleLen = 2
	maxTitleLen = 200
)

// ValidateTitle validates a goal or task title.
// Titles must be between 2 and 200 characters after trimming whitespace.
func ValidateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if len(trimmed) < minTitleLen {
		return fmt.Errorf("title %q is too short (minimum: %d characters)", title, minTitleLen)
	}
	if len(trimmed) > maxTitleLen {
		return fmt.Errorf("title is too long (%d characters, maximum: %d)", len(trimmed), maxTitleLen)
	}
	return nil
}

// ValidateImpact validates that an impact value is one of the known levels.
func ValidateImpact(i Impact) error {
	switch i {
	case ImpactLow, ImpactMedium, ImpactHigh:
		return nil
	}
	return fmt.Errorf("invalid impact %q (must be: Low, Medium, or High)", string(i))
}

// ValidateFrequency validates that a frequency value is one of the known
// cadences.
func ValidateFrequency(f Frequency) error {
	switch f {
	case FreqOnce, FreqDaily, FreqWeekly, FreqMonthly, FreqQuarterly, FreqYearly:
		return nil
	}
	return fmt.Errorf("invalid frequency %q (must be: once, daily, weekly, monthly, quarterly, or yearly)", string(f))
}

// ValidateGoal validates a goal's own fields. The target date is optional;
// when present it must be a well-formed calendar date.
func ValidateGoal(g Goal) error {
	if err := ValidateTitle(g.Title); err != nil {
		return err
	}
	if err := ValidateImpact(g.Impact); err != nil {
		return err
	}
	if g.TargetDate != "" {
		if _, err := ParseDate(g.TargetDate); err != nil {
			return fmt.Errorf("target date: %w", err)
		}
	}
	return nil
}

// ValidateTask validates a task's fields. Recurring tasks must not carry a
// completed flag; their progress lives in the due date alone.
func ValidateTask(t Task) error {
	if err := ValidateTitle(t.Title); err != nil {
		return err
	}
	if err := ValidateImpact(t.Impact); err != nil {
		return err
	}
	if err := ValidateFrequency(t.Frequency); err != nil {
		return err
	}
	if _, err := ParseDate(t.DueDate); err != nil {
		return fmt.Errorf("due date: %w", err)
	}
	if t.Frequency.Recurring() && t.Completed {
		return fmt.Errorf("recurring task %q cannot be marked completed", t.Title)
	}
	return nil
}
