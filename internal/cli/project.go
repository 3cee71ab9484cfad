package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
	Long:  `Create, list, rename and delete projects.`,
}

var projectNewCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a new project",
	Long: `Create a new project.

Examples:
  ironboard project new "Work"
  ironboard project new "Side Project" --switch`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProjectNew,
}

var projectListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all projects",
	RunE:    runProjectList,
}

var projectRenameCmd = &cobra.Command{
	Use:   "rename [project] [name]",
	Short: "Rename a project",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runProjectRename,
}

var projectDeleteCmd = &cobra.Command{
	Use:     "delete [project]",
	Aliases: []string{"rm"},
	Short:   "Delete a project and all of its tasks",
	Args:    cobra.ExactArgs(1),
	RunE:    runProjectDelete,
}

var (
	projectSwitch bool
	projectForce  bool
)

func init() {
	projectNewCmd.Flags().BoolVarP(&projectSwitch, "switch", "s", false, "Make the new project the current context")
	projectDeleteCmd.Flags().BoolVar(&projectForce, "force", false, "Do not ask for confirmation")

	projectCmd.AddCommand(projectNewCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectRenameCmd)
	projectCmd.AddCommand(projectDeleteCmd)
}

func runProjectNew(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store, svc, err := openBoard(ctx)
	if err != nil {
		return err
	}
	defer closeStore(store)

	project, err := svc.AddProject(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if projectSwitch {
		if err := SetContext(project.ID); err != nil {
			return fmt.Errorf("failed to set context: %w", err)
		}
	}

	fmt.Printf("✓ Created project: %s (id: %s)\n", project.Name, shortID(project.ID))
	return nil
}

func runProjectList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store, svc, err := openBoard(ctx)
	if err != nil {
		return err
	}
	defer closeStore(store)

	projects, err := svc.Projects(ctx)
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}
	current, err := svc.CurrentProject(ctx, GetCurrentContext())
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("    %-10s  %-24s  %s\n", "ID", "Name", "Active/Done/Archived")
	fmt.Println(strings.Repeat("─", 60))

	totalActive := 0
	for _, p := range projects {
		counts, err := svc.Counts(ctx, p.ID)
		if err != nil {
			return err
		}
		totalActive += counts.Active
		marker := "  "
		if p.ID == current.ID {
			marker = "❯ "
		}
		fmt.Printf("  %s%-10s  %-24s  %d/%d/%d\n", marker, shortID(p.ID), p.Name, counts.Active, counts.Done, counts.Archived)
	}

	fmt.Println(strings.Repeat("─", 60))
	fmt.Printf("  %d projects, %d active tasks\n\n", len(projects), totalActive)
	return nil
}

func runProjectRename(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store, svc, err := openBoard(ctx)
	if err != nil {
		return err
	}
	defer closeStore(store)

	project, err := svc.RenameProject(ctx, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	fmt.Printf("✎ Renamed project to: %s\n", project.Name)
	return nil
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store, svc, err := openBoard(ctx)
	if err != nil {
		return err
	}
	defer closeStore(store)

	project, err := svc.FindProject(ctx, args[0])
	if err != nil {
		return err
	}
	counts, err := svc.Counts(ctx, project.ID)
	if err != nil {
		return err
	}

	total := counts.Active + counts.Done + counts.Archived
	ok, err := confirm(fmt.Sprintf("Delete project %s and its %d tasks?", project.Name, total), projectForce)
	if err != nil || !ok {
		return err
	}

	if _, err := svc.DeleteProject(ctx, project.ID); err != nil {
		return err
	}
	if GetCurrentContext() == project.ID {
		if err := ClearContext(); err != nil {
			return fmt.Errorf("failed to clear context: %w", err)
		}
	}

	fmt.Printf("🗑️  Deleted project: %s\n", project.Name)
	return nil
}
