package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/existflow/ironboard/internal/board"
	"github.com/existflow/ironboard/internal/model"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List the board of a project, column by column.

Examples:
  ironboard list
  ironboard list --project work
  ironboard list --filter done
  ironboard list --filter archive
  ironboard list --all`,
	RunE: runList,
}

var (
	listProject string
	listAll     bool
	listFilter  string
)

func init() {
	listCmd.Flags().StringVarP(&listProject, "project", "P", "", "Project to list (default: current context)")
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "Show all projects")
	listCmd.Flags().StringVarP(&listFilter, "filter", "f", "all", "Columns to show: all, todo, inprogress, pending, done, archive")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	filter, err := board.ParseFilter(listFilter)
	if err != nil {
		return err
	}

	store, svc, err := openBoard(ctx)
	if err != nil {
		return err
	}
	defer closeStore(store)

	var projectIDs []string
	if listAll {
		projects, err := svc.Projects(ctx)
		if err != nil {
			return err
		}
		for _, p := range projects {
			projectIDs = append(projectIDs, p.ID)
		}
	} else {
		id, _, err := resolveProject(ctx, svc, listProject)
		if err != nil {
			return err
		}
		projectIDs = []string{id}
	}

	for _, id := range projectIDs {
		view, err := svc.Load(ctx, id)
		if err != nil {
			return err
		}
		printView(view, filter)
	}
	return nil
}

func printView(view board.View, filter board.Filter) {
	fmt.Printf("\n📁 %s (%d active, %d archived)\n", view.Project.Name, view.Len(), len(view.Archived))
	fmt.Println(strings.Repeat("─", 60))

	for _, lane := range view.Lanes(filter) {
		fmt.Printf("  %s (%d)\n", lane.Title, len(lane.Tasks))
		if len(lane.Tasks) == 0 {
			fmt.Println("    -")
		}
		for _, t := range lane.Tasks {
			printTask(t)
		}
	}
	fmt.Println()
}

func printTask(t model.Task) {
	title := t.Title
	if len(title) > 44 {
		title = title[:41] + "..."
	}

	extra := ""
	if n := len(t.Comments); n > 0 {
		extra = fmt.Sprintf("  💬 %d", n)
	}
	if t.IsArchived && t.ArchivedDate != nil {
		extra += "  archived " + *t.ArchivedDate
	}

	fmt.Printf("    %-8s  %-44s%s\n", shortID(t.ID), title, extra)
}
