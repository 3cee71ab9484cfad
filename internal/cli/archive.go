package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var archiveCmd = &cobra.Command{
	Use:   "archive [task-id]",
	Short: "Archive a task",
	Long: `Hide a task from the board. Archived tasks are listed with
'ironboard list --filter archive'.`,
	Args: cobra.ExactArgs(1),
	RunE: runArchive,
}

var unarchiveCmd = &cobra.Command{
	Use:   "unarchive [task-id]",
	Short: "Restore an archived task",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnarchive,
}

func runArchive(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store, svc, err := openBoard(ctx)
	if err != nil {
		return err
	}
	defer closeStore(store)

	task, err := svc.ArchiveTask(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("🗄  Archived: \"%s\"\n", task.Title)
	return nil
}

func runUnarchive(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store, svc, err := openBoard(ctx)
	if err != nil {
		return err
	}
	defer closeStore(store)

	task, err := svc.UnarchiveTask(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("↩ Restored to %s: \"%s\"\n", task.Status.Title(), task.Title)
	return nil
}
