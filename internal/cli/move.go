package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/existflow/ironboard/internal/board"
)

var moveCmd = &cobra.Command{
	Use:     "move [task-id] [status]",
	Aliases: []string{"mv"},
	Short:   "Move a task to another column",
	Long: `Move a task to another column. Status is one of todo, inprogress,
pending or done. Task ids may be shortened to any unique prefix.

Examples:
  ironboard move abc123 inprogress
  ironboard mv abc123 done`,
	Args: cobra.ExactArgs(2),
	RunE: runMove,
}

func runMove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	status, err := board.ParseStatus(args[1])
	if err != nil {
		return err
	}

	store, svc, err := openBoard(ctx)
	if err != nil {
		return err
	}
	defer closeStore(store)

	task, moved, err := svc.MoveTask(ctx, args[0], status)
	if err != nil {
		return err
	}

	if !moved {
		fmt.Printf("○ Already in %s: \"%s\"\n", status.Title(), task.Title)
		return nil
	}
	fmt.Printf("→ Moved to %s: \"%s\"\n", status.Title(), task.Title)
	return nil
}
