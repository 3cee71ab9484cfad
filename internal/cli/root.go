package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/existflow/ironboard/internal/board"
	"github.com/existflow/ironboard/internal/config"
	"github.com/existflow/ironboard/internal/db"
	"github.com/existflow/ironboard/internal/logger"
	"github.com/existflow/ironboard/internal/tui"
)

var (
	logLevel   string
	logFile    string
	logConsole bool
	dbPath     string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "ironboard",
	Short: "IronBoard - Terminal kanban board",
	Long: `IronBoard is a kanban board for the terminal. Tasks live in projects and
move through To Do, In Progress, Pending and Done. Everything is stored in a
local SQLite database.

Run 'ironboard' without arguments to launch the interactive board.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load config from file (or defaults if not exists)
		loaded, err := config.Load()
		if err != nil {
			logger.Warn("Failed to load config, using defaults", logger.F("error", err))
			loaded = config.DefaultConfig()
		}
		cfg = loaded

		// Override with CLI flags if provided
		configChanged := false
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
			configChanged = true
		}
		if cmd.Flags().Changed("log-file") {
			cfg.LogFile = logFile
			configChanged = true
		}
		if cmd.Flags().Changed("log-console") {
			cfg.LogConsole = logConsole
			configChanged = true
		}

		// Save config if changed via CLI flags
		if configChanged {
			if err := cfg.Save(); err != nil {
				logger.Warn("Failed to save config", logger.F("error", err))
			}
		}

		// --db is per invocation and never persisted
		if cmd.Flags().Changed("db") {
			cfg.DBPath = dbPath
		}

		logConfig := logger.DefaultConfig()
		logConfig.Level = logger.ParseLevel(cfg.LogLevel)
		logConfig.FilePath = cfg.LogFile
		logConfig.Console = cfg.LogConsole

		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		logger.Info("IronBoard started", logger.F("command", cmd.Name()))
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, svc, err := openBoard(ctx)
		if err != nil {
			return err
		}
		defer closeStore(store)

		project, err := svc.CurrentProject(ctx, GetCurrentContext())
		if err != nil {
			return err
		}

		logger.Info("Launching TUI", logger.F("project", project.ID))
		m := tui.NewModel(ctx, svc, project.ID)
		p := tea.NewProgram(m, tea.WithAltScreen())

		final, err := p.Run()
		if err != nil {
			logger.Error("TUI error", logger.F("error", err))
			return fmt.Errorf("failed to run TUI: %w", err)
		}

		// Remember the project the user was looking at
		if fm, ok := final.(tui.Model); ok && fm.ProjectID() != "" && fm.ProjectID() != project.ID {
			if err := SetContext(fm.ProjectID()); err != nil {
				logger.Warn("Failed to save context", logger.F("error", err))
			}
		}

		logger.Info("TUI exited normally")
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Info("IronBoard exiting", logger.F("command", cmd.Name()))
		logger.Close()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	// Add logging flags
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file (default from config)")

	// Add subcommands
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(unarchiveCmd)
	rootCmd.AddCommand(commentCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(contextCmd)
	rootCmd.AddCommand(serveCmd)
}

// openBoard opens the configured database and returns the board service over it
func openBoard(ctx context.Context) (*db.Store, *board.Service, error) {
	path := cfg.DBPath
	if path == "" {
		p, err := db.DefaultDBPath()
		if err != nil {
			return nil, nil, err
		}
		path = p
	}

	store := db.NewStore(path)
	if err := store.Open(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	return store, board.New(store), nil
}

func closeStore(store *db.Store) {
	if err := store.Close(); err != nil {
		logger.Warn("Failed to close database", logger.F("error", err))
	}
}

// resolveProject returns the project named by ref, or the current context when ref is empty
func resolveProject(ctx context.Context, svc *board.Service, ref string) (string, string, error) {
	if ref != "" {
		p, err := svc.FindProject(ctx, ref)
		if err != nil {
			return "", "", err
		}
		return p.ID, p.Name, nil
	}
	p, err := svc.CurrentProject(ctx, GetCurrentContext())
	if err != nil {
		return "", "", err
	}
	return p.ID, p.Name, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
