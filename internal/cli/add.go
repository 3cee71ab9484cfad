package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new task",
	Long: `Add a task to the To Do column of a project.

Examples:
  ironboard add "Buy groceries"
  ironboard add "Write report" -d "Q3 numbers" --project work`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addProject     string
	addDescription string
)

func init() {
	addCmd.Flags().StringVarP(&addProject, "project", "P", "", "Project to add task to (default: current context)")
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Task description")
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store, svc, err := openBoard(ctx)
	if err != nil {
		return err
	}
	defer closeStore(store)

	projectID, projectName, err := resolveProject(ctx, svc, addProject)
	if err != nil {
		return err
	}

	task, err := svc.AddTask(ctx, projectID, strings.Join(args, " "), addDescription)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Added to [%s]: \"%s\" (%s)\n", projectName, task.Title, shortID(task.ID))
	return nil
}
