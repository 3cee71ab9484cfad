package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/existflow/ironboard/internal/config"
)

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Manage project context",
	Long: `Set or view the current project context.

The current project is used by commands that take --project when the flag is
omitted, and is where the board opens.

Examples:
  ironboard context              # Show current context
  ironboard context ls           # List all projects
  ironboard context set work     # Switch to the 'Work' project
  ironboard context clear        # Forget the context (first project)`,
	RunE: runContextShow,
}

var contextLsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List all projects",
	RunE:    runProjectList,
}

var contextSetCmd = &cobra.Command{
	Use:   "set [project]",
	Short: "Set the current project context",
	Args:  cobra.ExactArgs(1),
	RunE:  runContextSet,
}

var contextClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the current context",
	RunE:  runContextClear,
}

func init() {
	contextCmd.AddCommand(contextLsCmd)
	contextCmd.AddCommand(contextSetCmd)
	contextCmd.AddCommand(contextClearCmd)
}

// Context file path
func contextFilePath() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "context"), nil
}

// GetCurrentContext returns the saved project id (empty means first project)
func GetCurrentContext() string {
	path, err := contextFilePath()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// SetContext saves the current context
func SetContext(projectID string) error {
	path, err := contextFilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(projectID), 0644)
}

// ClearContext removes the context file
func ClearContext() error {
	path, err := contextFilePath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func runContextShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store, svc, err := openBoard(ctx)
	if err != nil {
		return err
	}
	defer closeStore(store)

	saved := GetCurrentContext()
	project, err := svc.CurrentProject(ctx, saved)
	if err != nil {
		return err
	}
	if saved != "" && saved != project.ID {
		fmt.Printf("⚠️  Context set to '%s' but project not found\n", saved)
	}

	counts, err := svc.Counts(ctx, project.ID)
	if err != nil {
		return err
	}
	fmt.Printf("📁 Current context: %s (%d active, %d done)\n", project.Name, counts.Active, counts.Done)
	return nil
}

func runContextSet(cmd *cobra.Command, args []string) error {
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
	if err := SetContext(project.ID); err != nil {
		return fmt.Errorf("failed to set context: %w", err)
	}

	fmt.Printf("📁 Switched to: %s\n", project.Name)
	return nil
}

func runContextClear(cmd *cobra.Command, args []string) error {
	if err := ClearContext(); err != nil {
		return fmt.Errorf("failed to clear context: %w", err)
	}
	fmt.Println("📥 Context cleared, using the first project")
	return nil
}
