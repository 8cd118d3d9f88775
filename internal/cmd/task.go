package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vitthal2611/goal-tracker/internal/model"
	"github.com/vitthal2611/goal-tracker/internal/recur"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks within a goal",
	RunE:  requireSubcommand,
}

var taskAddCmd = &cobra.Command{
	Use:   "add <goal-id> <title>",
	Short: "Add a task (or a recurring series) to a goal",
	Long: `Add a task to a goal.

One-off tasks are due today. Daily tasks materialize a full series over a
window: --days when given (1-365), otherwise the span to the goal's target
date, otherwise 7 days. Weekly, monthly, quarterly, and yearly tasks
materialize a series up to the goal's target date, or a single recurring
task when the goal has none.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runTaskAdd,
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <goal-id> <task-id>",
	Short: "Check a task off",
	Long: `Check a task off.

A one-off task is marked completed. A recurring task is never marked
completed: checking it advances its due date by one frequency step.`,
	Args: cobra.ExactArgs(2),
	RunE: runTaskDone,
}

var taskUndoneCmd = &cobra.Command{
	Use:   "undone <goal-id> <task-id>",
	Short: "Uncheck a task",
	Long: `Uncheck a task.

Reverses completion of a one-off task. For a recurring task this is a
no-op; an advanced due date is not rolled back.`,
	Args: cobra.ExactArgs(2),
	RunE: runTaskUndone,
}

var taskRemoveCmd = &cobra.Command{
	Use:   "rm <goal-id> <task-id>",
	Short: "Remove a task",
	Args:  cobra.ExactArgs(2),
	RunE:  runTaskRemove,
}

var (
	taskImpactFlag string
	taskFreqFlag   string
	taskDaysFlag   int
)

func init() {
	taskAddCmd.Flags().StringVar(&taskImpactFlag, "impact", "medium", "impact level (low, medium, high)")
	taskAddCmd.Flags().StringVar(&taskFreqFlag, "freq", "once", "frequency (once, daily, weekly, monthly, quarterly, yearly)")
	taskAddCmd.Flags().IntVar(&taskDaysFlag, "days", 0, "daily series length in days (1-365; 0 derives it from the goal)")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskUndoneCmd)
	taskCmd.AddCommand(taskRemoveCmd)
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	goalID := args[0]
	goal, ok := a.store.Goal(goalID)
	if !ok {
		return fmt.Errorf("goal %s not found", goalID)
	}

	impact, err := model.ParseImpact(taskImpactFlag)
	if err != nil {
		return err
	}
	freq, err := model.ParseFrequency(taskFreqFlag)
	if err != nil {
		return err
	}

	tasks, err := recur.Plan(goal, recur.Request{
		Title:     strings.Join(args[1:], " "),
		Impact:    impact,
		Frequency: freq,
		Days:      taskDaysFlag,
	})
	if err != nil {
		return err
	}
	if err := a.store.AddTasks(goalID, tasks); err != nil {
		return err
	}
	if err := a.save(); err != nil {
		return err
	}

	if len(tasks) == 1 {
		fmt.Printf("Added task %s to goal %s (due %s)\n", tasks[0].ID, goalID, tasks[0].DueDate)
	} else {
		fmt.Printf("Added %d-task %s series to goal %s (%s .. %s)\n",
			len(tasks), freq, goalID, tasks[0].DueDate, tasks[len(tasks)-1].DueDate)
	}
	return nil
}

func runTaskDone(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	if err := a.store.SetTaskCompleted(args[0], args[1], true); err != nil {
		return err
	}
	if err := a.save(); err != nil {
		return err
	}

	t, _ := a.store.Task(args[0], args[1])
	if t.Frequency.Recurring() {
		fmt.Printf("Advanced %s to next %s occurrence: due %s\n", args[1], t.Frequency, t.DueDate)
	} else {
		fmt.Printf("Completed %s\n", args[1])
	}
	return nil
}

func runTaskUndone(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	if err := a.store.SetTaskCompleted(args[0], args[1], false); err != nil {
		return err
	}
	return a.save()
}

func runTaskRemove(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	if err := a.store.RemoveTask(args[0], args[1]); err != nil {
		return err
	}
	if err := a.save(); err != nil {
		return err
	}
	fmt.Printf("Removed task %s from goal %s\n", args[1], args[0])
	return nil
}
