package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vitthal2611/goal-tracker/internal/model"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage goals",
	RunE:  requireSubcommand,
}

var goalAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a goal",
	Long: `Add a goal.

The target date accepts ISO dates or natural language:

  goaltracker goal add "Ship v2" --impact high --target "end of march"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGoalAdd,
}

var goalRemoveCmd = &cobra.Command{
	Use:   "rm <goal-id>",
	Short: "Remove a goal and all its tasks",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalRemove,
}

var goalSetCmd = &cobra.Command{
	Use:   "set <goal-id>",
	Short: "Update a goal's title, impact, or target date",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalSet,
}

var goalCollapseCmd = &cobra.Command{
	Use:   "collapse <goal-id>",
	Short: "Toggle a goal's collapsed state in list views",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalCollapse,
}

var (
	goalAddImpactFlag string
	goalAddTargetFlag string
	goalSetTitleFlag  string
	goalSetImpactFlag string
	goalSetTargetFlag string
)

func init() {
	goalAddCmd.Flags().StringVar(&goalAddImpactFlag, "impact", "medium", "impact level (low, medium, high)")
	goalAddCmd.Flags().StringVar(&goalAddTargetFlag, "target", "", "target date (YYYY-MM-DD or natural language)")

	goalSetCmd.Flags().StringVar(&goalSetTitleFlag, "title", "", "new title")
	goalSetCmd.Flags().StringVar(&goalSetImpactFlag, "impact", "", "new impact level")
	goalSetCmd.Flags().StringVar(&goalSetTargetFlag, "target", "", "new target date (\"none\" clears it)")

	goalCmd.AddCommand(goalAddCmd)
	goalCmd.AddCommand(goalRemoveCmd)
	goalCmd.AddCommand(goalSetCmd)
	goalCmd.AddCommand(goalCollapseCmd)
}

func runGoalAdd(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	impact, err := model.ParseImpact(goalAddImpactFlag)
	if err != nil {
		return err
	}
	target := ""
	if goalAddTargetFlag != "" {
		target, err = parseDateArg(goalAddTargetFlag)
		if err != nil {
			return err
		}
	}

	g := model.Goal{
		ID:         model.NewID(),
		Title:      strings.Join(args, " "),
		Impact:     impact,
		TargetDate: target,
	}
	if err := a.store.AddGoal(g); err != nil {
		return err
	}
	if err := a.save(); err != nil {
		return err
	}
	fmt.Printf("Added goal %s: %s\n", g.ID, g.Title)
	return nil
}

func runGoalRemove(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	if err := a.store.RemoveGoal(args[0]); err != nil {
		return err
	}
	if err := a.save(); err != nil {
		return err
	}
	fmt.Printf("Removed goal %s\n", args[0])
	return nil
}

func runGoalSet(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	var patch model.GoalPatch
	if goalSetTitleFlag != "" {
		patch.Title = &goalSetTitleFlag
	}
	if goalSetImpactFlag != "" {
		impact, err := model.ParseImpact(goalSetImpactFlag)
		if err != nil {
			return err
		}
		patch.Impact = &impact
	}
	if goalSetTargetFlag != "" {
		target := ""
		if goalSetTargetFlag != "none" {
			target, err = parseDateArg(goalSetTargetFlag)
			if err != nil {
				return err
			}
		}
		patch.TargetDate = &target
	}
	if patch == (model.GoalPatch{}) {
		return fmt.Errorf("nothing to update (use --title, --impact, or --target)")
	}

	if err := a.store.PatchGoal(args[0], patch); err != nil {
		return err
	}
	if err := a.save(); err != nil {
		return err
	}
	fmt.Printf("Updated goal %s\n", args[0])
	return nil
}

func runGoalCollapse(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	if err := a.store.ToggleCollapsed(args[0]); err != nil {
		return err
	}
	return a.save()
}
