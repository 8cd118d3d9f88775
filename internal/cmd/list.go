package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vitthal2611/goal-tracker/internal/model"
	"github.com/vitthal2611/goal-tracker/internal/state"
	"github.com/vitthal2611/goal-tracker/internal/style"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals and their tasks",
	Long: `List goals and their tasks.

The sort mode persists between runs. Valid modes: dueDate, impact, title,
progress. An unrecognized persisted mode falls back to dueDate.`,
	RunE: runList,
}

var listSortFlag string

func init() {
	listCmd.Flags().StringVar(&listSortFlag, "sort", "", "sort mode (dueDate, impact, title, progress); persists as the new default")
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	mode := a.sortMode
	if listSortFlag != "" {
		mode = model.SanitizeSortMode(listSortFlag)
		if err := a.states.Set(state.KeySortMode, string(mode)); err != nil {
			return err
		}
	}

	goals := a.store.Goals()
	if len(goals) == 0 {
		fmt.Println("No goals yet. Add one with: goaltracker goal add <title>")
		return nil
	}
	model.SortGoals(goals, mode)

	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}
	barWidth := 10
	if width < 60 {
		barWidth = 6
	}

	for _, g := range goals {
		header := fmt.Sprintf("%s %s", style.GoalTitle.Render(g.Title), style.ImpactBadge(g.Impact))
		if g.TargetDate != "" {
			header += " " + style.Dim.Render("→ "+g.TargetDate)
		}
		fmt.Printf("%s  %s  %s\n", header, style.ProgressBar(g.Progress(), barWidth), style.Dim.Render(g.ID))

		if g.Collapsed {
			fmt.Printf("  %s\n", style.Dim.Render(fmt.Sprintf("(%d tasks collapsed)", len(g.Tasks))))
			continue
		}
		for _, t := range g.Tasks {
			line := fmt.Sprintf("  %s %s %s %s %s",
				style.Checkbox(t), t.Title, style.ImpactBadge(t.Impact),
				style.Dim.Render("due "+t.DueDate), style.Dim.Render(t.ID))
			if t.Completed && !t.Frequency.Recurring() {
				line = "  " + style.Done.Render(fmt.Sprintf("[x] %s due %s %s", t.Title, t.DueDate, t.ID))
			}
			fmt.Println(line)
		}
	}
	return nil
}
