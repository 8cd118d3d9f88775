// Package sheet maps the hierarchical goal/task model to and from the flat
// row representation spoken by the spreadsheet transport.
package sheet

import "strings"

// Placeholder sentinel values. A goal with no tasks still needs a presence
// in the flat representation, so it is carried by a single row whose
// frequency field holds "goal" and whose task id derives from the goal id.
const (
	PlaceholderFrequency = "goal"
	placeholderSuffix    = "-goal"
)

// Row is one transport record. All ten fields are strings on the wire;
// Completed uses the literal values "TRUE" and "FALSE".
type Row struct {
	GoalID         string `json:"goalId"`
	GoalTitle      string `json:"goalTitle"`
	GoalImpact     string `json:"goalImpact"`
	GoalTargetDate string `json:"goalTargetDate"`
	TaskID         string `json:"taskId"`
	TaskTitle      string `json:"taskTitle"`
	TaskDueDate    string `json:"taskDueDate"`
	TaskImpact     string `json:"taskImpact"`
	Frequency      string `json:"frequency"`
	Completed      string `json:"completed"`
}

// Key returns the composite (goalId, taskId) identity used by
// reconciliation.
func (r Row) Key() string {
	return r.GoalID + "\x00" + r.TaskID
}

// IsPlaceholder reports whether the row is a goal placeholder rather than a
// task record.
func (r Row) IsPlaceholder() bool {
	return r.Frequency == PlaceholderFrequency
}

// PlaceholderTaskID derives the sentinel task id for a goal placeholder row.
func PlaceholderTaskID(goalID string) string {
	return goalID + placeholderSuffix
}

// FormatBool renders a boolean in the transport's literal form.
func FormatBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

// ParseBool parses the transport's boolean literals, tolerating case
// variation. Anything unrecognized is false.
func ParseBool(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "TRUE")
}
