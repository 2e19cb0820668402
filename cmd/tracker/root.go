package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jwebster45206/investigator-tracker/internal/app"
	"github.com/jwebster45206/investigator-tracker/internal/config"
	"github.com/jwebster45206/investigator-tracker/internal/console"
	"github.com/jwebster45206/investigator-tracker/internal/logger"
)

// overrides are the command line flags that take precedence over the environment.
type overrides struct {
	backend    string
	dataFile   string
	sqlitePath string
	redisURL   string
	logFile    string
}

func newRootCmd() *cobra.Command {
	var o overrides

	rootCmd := &cobra.Command{
		Use:           "tracker",
		Short:         "Track Call of Cthulhu investigators at the table",
		Long:          "tracker keeps the investigator sheets of a Call of Cthulhu game: stats, conditions, sanity and the keeper's pending checks. Sheets are saved on quit.",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConsole(cmd, o)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&o.backend, "backend", "", "storage backend: "+strings.Join(config.Backends, ", "))
	flags.StringVar(&o.dataFile, "data-file", "", "JSON data file for the file backend")
	flags.StringVar(&o.sqlitePath, "sqlite-path", "", "database path for the sqlite backend")
	flags.StringVar(&o.redisURL, "redis-url", "", "address or redis:// URL for the redis backend")
	flags.StringVar(&o.logFile, "log-file", "", "log file (empty LOG_FILE discards logs)")

	rootCmd.AddCommand(
		newValidateCmd(&o),
		newExportCmd(&o),
	)
	return rootCmd
}

// loadConfig reads the environment and applies the flags the user set.
func loadConfig(cmd *cobra.Command, o overrides) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.StorageBackend = strings.ToLower(strings.TrimSpace(o.backend))
	}
	if flags.Changed("data-file") {
		cfg.DataFile = o.dataFile
	}
	if flags.Changed("sqlite-path") {
		cfg.SQLitePath = o.sqlitePath
	}
	if flags.Changed("redis-url") {
		cfg.RedisURL = o.redisURL
	}
	if flags.Changed("log-file") {
		cfg.LogFile = o.logFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup loads the configuration and opens the log. The returned closer
// releases the log file.
func setup(cmd *cobra.Command, o overrides) (*config.Config, *slog.Logger, io.Closer, error) {
	cfg, err := loadConfig(cmd, o)
	if err != nil {
		return nil, nil, nil, err
	}
	out, err := logger.OpenFile(cfg.LogFile)
	if err != nil {
		return nil, nil, nil, err
	}
	log := logger.Setup(cfg, out)
	return cfg, log, out, nil
}

func runConsole(cmd *cobra.Command, o overrides) error {
	cfg, log, logOut, err := setup(cmd, o)
	if err != nil {
		return err
	}
	defer logOut.Close()

	log.Info("Starting Investigator Tracker",
		"environment", cfg.Environment,
		"backend", cfg.StorageBackend,
		"recompute_derived", cfg.RecomputeDerived)

	ctx := cmd.Context()
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to open storage", "error", err)
		return err
	}

	// The console installs its hooks first so load errors reach the screen.
	ui := console.NewConsoleUI(a)
	_ = a.Load(ctx)

	p := tea.NewProgram(ui,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx))
	_, runErr := p.Run()
	if errors.Is(runErr, tea.ErrProgramKilled) {
		runErr = nil
	}
	if runErr != nil {
		log.Error("Console stopped", "error", runErr)
	}

	// Save even when the context was cancelled by a signal.
	if err := a.Shutdown(context.WithoutCancel(ctx)); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Failed to save investigators: %v\n", err)
		return errors.Join(runErr, err)
	}
	log.Info("Tracker exited")
	return runErr
}
