package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vitthal2611/goal-tracker/internal/syncer"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync with the remote row store",
	RunE:  requireSubcommand,
}

var syncNowCmd = &cobra.Command{
	Use:   "now",
	Short: "Push the current local state immediately",
	Long: `Push the current local state immediately.

The default replace mode overwrites the remote rows with the local
snapshot. Merge reconciles by (goalId, taskId): remote rows missing locally
are deleted, changed rows are updated in place, new rows are appended.
Append inserts every row unconditionally — it performs no key matching, so
pushing rows that already exist remotely produces duplicates.`,
	RunE: runSyncNow,
}

var syncExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Replace the remote rows with the local snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		syncModeFlag = string(syncer.ModeReplace)
		return runSyncNow(cmd, args)
	},
}

var syncPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Import the remote rows, replacing local state wholesale",
	RunE:  runSyncPull,
}

var syncModeFlag string

func init() {
	syncNowCmd.Flags().StringVar(&syncModeFlag, "mode", string(syncer.ModeReplace), "sync mode (replace, merge, append)")

	syncCmd.AddCommand(syncNowCmd)
	syncCmd.AddCommand(syncExportCmd)
	syncCmd.AddCommand(syncPullCmd)
}

func runSyncNow(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	mode, err := syncer.ParseMode(syncModeFlag)
	if err != nil {
		return err
	}
	t, err := a.transport()
	if err != nil {
		return err
	}

	s := a.scheduler(t, nil)
	if err := s.PushNow(context.Background(), mode); err != nil {
		return fmt.Errorf("push failed: %w", err)
	}
	fmt.Printf("Pushed %d goals (%d tasks) in %s mode\n", a.store.Len(), a.store.TaskCount(), mode)
	return nil
}

func runSyncPull(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	t, err := a.transport()
	if err != nil {
		return err
	}

	s := a.scheduler(t, nil)
	if err := s.Bootstrap(context.Background()); err != nil {
		return fmt.Errorf("pull failed, local state unchanged: %w", err)
	}
	fmt.Printf("Imported %d goals (%d tasks)\n", a.store.Len(), a.store.TaskCount())
	return nil
}
