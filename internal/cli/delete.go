package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [task-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long: `Delete a task by its ID or a unique ID prefix.

Examples:
  ironboard delete abc123
  ironboard rm abc123 --force`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

var deleteForce bool

func init() {
	deleteCmd.Flags().BoolVar(&deleteForce, "force", false, "Do not ask for confirmation")
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store, svc, err := openBoard(ctx)
	if err != nil {
		return err
	}
	defer closeStore(store)

	task, err := svc.FindTask(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("About to delete: \"%s\" (ID: %s)\n", task.Title, task.ID)
	ok, err := confirm("Are you sure?", deleteForce)
	if err != nil || !ok {
		return err
	}

	if _, err := svc.DeleteTask(ctx, task.ID); err != nil {
		return err
	}

	fmt.Printf("🗑️  Deleted: \"%s\"\n", task.Title)
	return nil
}
