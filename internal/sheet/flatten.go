package sheet

import (
	"sort"

	"github.com/vitthal2611/goal-tracker/internal/model"
)

// Flatten converts the goal collection into transport rows. A goal with one
// or more tasks emits one row per task, each carrying the denormalized goal
// fields; a goal with no tasks emits exactly one placeholder row so the goal
// survives the round trip.
func Flatten(goals []model.Goal) []Row {
	var rows []Row
	for _, g := range goals {
		if len(g.Tasks) == 0 {
			rows = append(rows, Row{
				GoalID:         g.ID,
				GoalTitle:      g.Title,
				GoalImpact:     string(g.Impact),
				GoalTargetDate: g.TargetDate,
				TaskID:         PlaceholderTaskID(g.ID),
				Frequency:      PlaceholderFrequency,
			})
			continue
		}
		for _, t := range g.Tasks {
			rows = append(rows, Row{
				GoalID:         g.ID,
				GoalTitle:      g.Title,
				GoalImpact:     string(g.Impact),
				GoalTargetDate: g.TargetDate,
				TaskID:         t.ID,
				TaskTitle:      t.Title,
				TaskDueDate:    t.DueDate,
				TaskImpact:     string(t.Impact),
				Frequency:      string(t.Frequency),
				Completed:      FormatBool(t.Completed),
			})
		}
	}
	return rows
}

// Inflate rebuilds the goal collection from transport rows. Rows are grouped
// by goal id, with the first occurrence supplying the goal-level fields.
// Placeholder rows and rows missing a task id or title contribute the goal
// but no task. Inflate is deliberately defensive: malformed or missing
// optional fields become empty strings, and no row shape causes an error.
// Each goal's tasks come back sorted ascending by due date.
func Inflate(rows []Row) []model.Goal {
	var order []string
	byID := make(map[string]*model.Goal)

	for _, r := range rows {
		if r.GoalID == "" {
			continue
		}
		g, seen := byID[r.GoalID]
		if !seen {
			g = &model.Goal{
				ID:         r.GoalID,
				Title:      r.GoalTitle,
				Impact:     model.Impact(r.GoalImpact),
				TargetDate: r.GoalTargetDate,
			}
			byID[r.GoalID] = g
			order = append(order, r.GoalID)
		}
		if r.IsPlaceholder() || r.TaskID == "" || r.TaskTitle == "" {
			continue
		}
		freq := model.Frequency(r.Frequency)
		completed := ParseBool(r.Completed)
		if freq.Recurring() {
			// Recurring tasks are never completed; a remote row claiming
			// otherwise is normalized here rather than failing the import.
			completed = false
		}
		g.Tasks = append(g.Tasks, model.Task{
			ID:        r.TaskID,
			Title:     r.TaskTitle,
			DueDate:   r.TaskDueDate,
			Impact:    model.Impact(r.TaskImpact),
			Frequency: freq,
			Completed: completed,
		})
	}

	goals := make([]model.Goal, 0, len(order))
	for _, id := range order {
		g := byID[id]
		sort.SliceStable(g.Tasks, func(i, j int) bool {
			return g.Tasks[i].DueDate < g.Tasks[j].DueDate
		})
		goals = append(goals, *g)
	}
	return goals
}
