// Package style centralizes terminal styling for goal-tracker output.
package style

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vitthal2611/goal-tracker/internal/model"
)

var (
	// GoalTitle renders goal headings.
	GoalTitle = lipgloss.NewStyle().Bold(true)
	// Dim renders secondary detail (ids, dates).
	Dim = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	// Done renders completed tasks.
	Done = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("240"))

	impactHigh   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	impactMedium = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	impactLow    = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
)

// ImpactBadge renders an impact level in its color.
func ImpactBadge(i model.Impact) string {
	switch i {
	case model.ImpactHigh:
		return impactHigh.Render("high")
	case model.ImpactMedium:
		return impactMedium.Render("med")
	default:
		return impactLow.Render("low")
	}
}

// ProgressBar renders a weighted progress fraction as a fixed-width bar.
func ProgressBar(fraction float64, width int) string {
	if width < 4 {
		width = 4
	}
	filled := int(fraction*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %3.0f%%", bar, fraction*100)
}

// Checkbox renders a task's completion control.
func Checkbox(t model.Task) string {
	if t.Frequency.Recurring() {
		return "[↻]"
	}
	if t.Completed {
		return "[x]"
	}
	return "[ ]"
}
