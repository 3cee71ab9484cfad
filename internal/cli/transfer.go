package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/existflow/ironboard/internal/transfer"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Back up a project's tasks to JSON",
	Long: `Write a project's tasks to a JSON file named <project>-backup-<date>.json
in the current directory, or to --output ('-' for stdout).

Examples:
  ironboard export
  ironboard export --project work -o work.json
  ironboard export -o - | jq length`,
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Replace a project's tasks from a JSON backup",
	Long: `Replace every task of a project with the tasks in a JSON backup.
The file is checked before anything changes, and the replacement happens in a
single transaction. Use '-' to read from stdin.

Examples:
  ironboard import Work-backup-2024-03-09.json --project work`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var (
	exportProject string
	exportOutput  string
	importProject string
	importForce   bool
)

func init() {
	exportCmd.Flags().StringVarP(&exportProject, "project", "P", "", "Project to export (default: current context)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file ('-' for stdout)")
	importCmd.Flags().StringVarP(&importProject, "project", "P", "", "Project to import into (default: current context)")
	importCmd.Flags().BoolVar(&importForce, "force", false, "Do not ask for confirmation")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store, svc, err := openBoard(ctx)
	if err != nil {
		return err
	}
	defer closeStore(store)

	projectID, projectName, err := resolveProject(ctx, svc, exportProject)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	n, err := transfer.Export(ctx, store, projectID, &buf)
	if err != nil {
		return err
	}

	if exportOutput == "-" {
		_, err := os.Stdout.Write(buf.Bytes())
		return err
	}

	path := exportOutput
	if path == "" {
		path = transfer.ExportFileName(projectName, time.Now())
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}

	fmt.Printf("📦 Exported %d tasks from [%s] to %s\n", n, projectName, path)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if args[0] == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}

	// Reject bad files before asking anything
	if _, err := transfer.Parse(data); err != nil {
		return err
	}

	ctx := cmd.Context()
	store, svc, err := openBoard(ctx)
	if err != nil {
		return err
	}
	defer closeStore(store)

	projectID, projectName, err := resolveProject(ctx, svc, importProject)
	if err != nil {
		return err
	}

	// Stdin is the backup itself, so there is nobody to ask
	ok, err := confirm(fmt.Sprintf("Replace every task in %s?", projectName), importForce || args[0] == "-")
	if err != nil || !ok {
		return err
	}

	tasks, err := transfer.Import(ctx, store, projectID, data)
	if err != nil {
		return err
	}

	fmt.Printf("📥 Imported %d tasks into [%s]\n", len(tasks), projectName)
	return nil
}
