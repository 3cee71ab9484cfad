package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/existflow/ironboard/internal/db"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every task of a project",
	Long: `Delete every task of a project, or of all projects with --all.
Projects themselves are kept. Either everything goes or nothing does.

Examples:
  ironboard clear                 # current project
  ironboard clear --project work
  ironboard clear --all --force`,
	RunE: runClear,
}

func init() {
	clearCmd.Flags().StringP("project", "P", "", "Project to clear (default: current context)")
	clearCmd.Flags().Bool("all", false, "Clear the tasks of every project")
	clearCmd.Flags().Bool("force", false, "Do not ask for confirmation")
	clearCmd.MarkFlagsMutuallyExclusive("project", "all")
}

func runClear(cmd *cobra.Command, args []string) error {
	ref, _ := cmd.Flags().GetString("project")
	all, _ := cmd.Flags().GetBool("all")
	force, _ := cmd.Flags().GetBool("force")

	ctx := cmd.Context()
	store, svc, err := openBoard(ctx)
	if err != nil {
		return err
	}
	defer closeStore(store)

	projectID, scope := db.AllProjects, "all projects"
	if !all {
		id, name, err := resolveProject(ctx, svc, ref)
		if err != nil {
			return err
		}
		projectID, scope = id, name
	}

	ok, err := confirm(fmt.Sprintf("Delete every task in %s?", scope), force)
	if err != nil || !ok {
		return err
	}

	if err := svc.ClearTasks(ctx, projectID); err != nil {
		return err
	}
	fmt.Printf("🧹 Cleared tasks in %s\n", scope)
	return nil
}
