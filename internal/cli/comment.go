package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var commentCmd = &cobra.Command{
	Use:   "comment [task-id] [text]",
	Short: "Comment on a task",
	Long: `Append a comment to a task, or list its comments when no text is given.

Examples:
  ironboard comment abc123 "Waiting on review"
  ironboard comment abc123`,
	Args: cobra.MinimumNArgs(1),
	RunE: runComment,
}

func runComment(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store, svc, err := openBoard(ctx)
	if err != nil {
		return err
	}
	defer closeStore(store)

	if len(args) == 1 {
		task, err := svc.FindTask(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("\n💬 %s\n", task.Title)
		fmt.Println(strings.Repeat("─", 60))
		if len(task.Comments) == 0 {
			fmt.Println("  No comments yet.")
		}
		for _, c := range task.Comments {
			fmt.Printf("  %s  %s\n", c.Timestamp.Local().Format("2006-01-02 15:04"), c.Text)
		}
		fmt.Println()
		return nil
	}

	task, err := svc.AddComment(ctx, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	fmt.Printf("💬 Commented on \"%s\" (%d comments)\n", task.Title, len(task.Comments))
	return nil
}
