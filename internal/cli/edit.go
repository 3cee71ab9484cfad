package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/existflow/ironboard/internal/board"
)

var editCmd = &cobra.Command{
	Use:   "edit [task-id]",
	Short: "Edit a task's title or description",
	Long: `Edit a task's title or description.

Examples:
  ironboard edit abc123 --title "New title"
  ironboard edit abc123 -d ""`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringP("title", "t", "", "New title")
	editCmd.Flags().StringP("description", "d", "", "New description")
}

func runEdit(cmd *cobra.Command, args []string) error {
	var edit board.TaskEdit
	if cmd.Flags().Changed("title") {
		title, _ := cmd.Flags().GetString("title")
		edit.Title = &title
	}
	if cmd.Flags().Changed("description") {
		description, _ := cmd.Flags().GetString("description")
		edit.Description = &description
	}
	if edit.Title == nil && edit.Description == nil {
		return errors.New("nothing to change: pass --title or --description")
	}

	ctx := cmd.Context()
	store, svc, err := openBoard(ctx)
	if err != nil {
		return err
	}
	defer closeStore(store)

	task, err := svc.EditTask(ctx, args[0], edit)
	if err != nil {
		return err
	}

	fmt.Printf("✎ Updated: \"%s\"\n", task.Title)
	return nil
}
