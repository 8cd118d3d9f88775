package model

import (
	"fmt"
)

// taskKey is the composite identity of a task across representations.
type taskKey struct {
	GoalID string
	TaskID string
}

// Store is the index-addressable collection of goals and tasks. Goals are
// kept in insertion order; each goal owns an ordered list of task IDs, with
// the task records themselves held in a flat arena keyed by (goalID, taskID)
// so that flatten/inflate never has to copy nested containers.
//
// Store is not safe for concurrent use; callers serialize access.
type Store struct {
	order     []string
	goals     map[string]*Goal
	taskOrder map[string][]string
	tasks     map[taskKey]*Task
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		goals:     make(map[string]*Goal),
		taskOrder: make(map[string][]string),
		tasks:     make(map[taskKey]*Task),
	}
}

// Load replaces the store's contents wholesale with the given goals.
// Invalid records are rejected as a batch: either every goal loads or none.
func (s *Store) Load(goals []Goal) error {
	fresh := NewStore()
	for _, g := range goals {
		if err := fresh.AddGoal(g); err != nil {
			return fmt.Errorf("loading goal %s: %w", g.ID, err)
		}
	}
	s.order = fresh.order
	s.goals = fresh.goals
	s.taskOrder = fresh.taskOrder
	s.tasks = fresh.tasks
	return nil
}

// Len returns the number of goals.
func (s *Store) Len() int {
	return len(s.order)
}

// TaskCount returns the total number of tasks across all goals.
func (s *Store) TaskCount() int {
	return len(s.tasks)
}

// Goals materializes every goal with its tasks, in insertion order.
// The returned values are copies; mutating them does not touch the store.
func (s *Store) Goals() []Goal {
	out := make([]Goal, 0, len(s.order))
	for _, id := range s.order {
		g, ok := s.Goal(id)
		if !ok {
			continue
		}
		out = append(out, g)
	}
	return out
}

// Goal materializes a single goal with its tasks.
func (s *Store) Goal(id string) (Goal, bool) {
	rec, ok := s.goals[id]
	if !ok {
		return Goal{}, false
	}
	g := *rec
	ids := s.taskOrder[id]
	g.Tasks = make([]Task, 0, len(ids))
	for _, tid := range ids {
		if t, ok := s.tasks[taskKey{id, tid}]; ok {
			g.Tasks = append(g.Tasks, *t)
		}
	}
	return g, true
}

// Task returns a copy of a single task.
func (s *Store) Task(goalID, taskID string) (Task, bool) {
	t, ok := s.tasks[taskKey{goalID, taskID}]
	if !ok {
		return Task{}, false
	}
	return *t, true
}

// AddGoal adds a goal (and any tasks it carries) to the store.
func (s *Store) AddGoal(g Goal) error {
	if g.ID == "" {
		return fmt.Errorf("goal has no id")
	}
	if _, exists := s.goals[g.ID]; exists {
		return fmt.Errorf("goal %s already exists", g.ID)
	}
	if err := ValidateGoal(g); err != nil {
		return err
	}
	tasks := g.Tasks
	rec := g
	rec.Tasks = nil
	s.goals[g.ID] = &rec
	s.order = append(s.order, g.ID)
	for _, t := range tasks {
		if err := s.AddTask(g.ID, t); err != nil {
			return err
		}
	}
	return nil
}

// RemoveGoal deletes a goal and every task it owns.
func (s *Store) RemoveGoal(id string) error {
	if _, ok := s.goals[id]; !ok {
		return fmt.Errorf("goal %s not found", id)
	}
	for _, tid := range s.taskOrder[id] {
		delete(s.tasks, taskKey{id, tid})
	}
	delete(s.taskOrder, id)
	delete(s.goals, id)
	for i, gid := range s.order {
		if gid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// GoalPatch carries optional field updates for a goal. Nil fields are left
// unchanged.
type GoalPatch struct {
	Title      *string
	Impact     *Impact
	TargetDate *string
	Collapsed  *bool
}

// PatchGoal applies a partial update to a goal in place.
func (s *Store) PatchGoal(id string, p GoalPatch) error {
	rec, ok := s.goals[id]
	if !ok {
		return fmt.Errorf("goal %s not found", id)
	}
	next := *rec
	if p.Title != nil {
		next.Title = *p.Title
	}
	if p.Impact != nil {
		next.Impact = *p.Impact
	}
	if p.TargetDate != nil {
		next.TargetDate = *p.TargetDate
	}
	if p.Collapsed != nil {
		next.Collapsed = *p.Collapsed
	}
	if err := ValidateGoal(next); err != nil {
		return err
	}
	*rec = next
	return nil
}

// ToggleCollapsed flips a goal's collapsed flag.
func (s *Store) ToggleCollapsed(id string) error {
	rec, ok := s.goals[id]
	if !ok {
		return fmt.Errorf("goal %s not found", id)
	}
	rec.Collapsed = !rec.Collapsed
	return nil
}

// AddTask appends a task to a goal. The task ID must be unique within the
// goal.
func (s *Store) AddTask(goalID string, t Task) error {
	if _, ok := s.goals[goalID]; !ok {
		return fmt.Errorf("goal %s not found", goalID)
	}
	if t.ID == "" {
		return fmt.Errorf("task has no id")
	}
	key := taskKey{goalID, t.ID}
	if _, exists := s.tasks[key]; exists {
		return fmt.Errorf("task %s already exists in goal %s", t.ID, goalID)
	}
	if err := ValidateTask(t); err != nil {
		return err
	}
	rec := t
	s.tasks[key] = &rec
	s.taskOrder[goalID] = append(s.taskOrder[goalID], t.ID)
	return nil
}

// AddTasks appends a series of tasks to a goal, stopping at the first error.
func (s *Store) AddTasks(goalID string, tasks []Task) error {
	for _, t := range tasks {
		if err := s.AddTask(goalID, t); err != nil {
			return err
		}
	}
	return nil
}

// RemoveTask deletes a single task from a goal.
func (s *Store) RemoveTask(goalID, taskID string) error {
	key := taskKey{goalID, taskID}
	if _, ok := s.tasks[key]; !ok {
		return fmt.Errorf("task %s not found in goal %s", taskID, goalID)
	}
	delete(s.tasks, key)
	ids := s.taskOrder[goalID]
	for i, tid := range ids {
		if tid == taskID {
			s.taskOrder[goalID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

// TaskPatch carries optional field updates for a task.
type TaskPatch struct {
	Title   *string
	Impact  *Impact
	DueDate *string
}

// PatchTask applies a partial update to a task in place.
func (s *Store) PatchTask(goalID, taskID string, p TaskPatch) error {
	rec, ok := s.tasks[taskKey{goalID, taskID}]
	if !ok {
		return fmt.Errorf("task %s not found in goal %s", taskID, goalID)
	}
	next := *rec
	if p.Title != nil {
		next.Title = *p.Title
	}
	if p.Impact != nil {
		next.Impact = *p.Impact
	}
	if p.DueDate != nil {
		next.DueDate = *p.DueDate
	}
	if err := ValidateTask(next); err != nil {
		return err
	}
	*rec = next
	return nil
}

// SetTaskCompleted drives the per-task completion machine.
//
// One-off tasks: the completed flag is assigned directly and the transition
// is reversible. Recurring tasks: checking does NOT complete the task — it
// advances the due date by exactly one frequency step and leaves the flag
// false; unchecking is a no-op. This asymmetry is deliberate and load-bearing.
func (s *Store) SetTaskCompleted(goalID, taskID string, checked bool) error {
	rec, ok := s.tasks[taskKey{goalID, taskID}]
	if !ok {
		return fmt.Errorf("task %s not found in goal %s", taskID, goalID)
	}
	if !rec.Frequency.Recurring() {
		rec.Completed = checked
		return nil
	}
	if !checked {
		return nil
	}
	next, err := NextDueDate(rec.DueDate, rec.Frequency)
	if err != nil {
		return fmt.Errorf("advancing task %s: %w", taskID, err)
	}
	rec.DueDate = next
	return nil
}
