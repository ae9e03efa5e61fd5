// Package root contains the root command for the application
package root

import (
	"fmt"
	"io"

	"fjacquet/txsearch/internal/config"
	"fjacquet/txsearch/internal/container"
	"fjacquet/txsearch/internal/fileutils"
	"fjacquet/txsearch/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	ConfigFile string
	LogLevel   string
	LogFormat  string
	Input      string
	Output     string
}

var (
	// Log is the shared logger instance for commands
	Log = logging.Discard()

	// AppConfig is the configuration loaded before any subcommand runs
	AppConfig *config.Config

	// AppContainer holds the wired dependencies of the running command
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "txsearch",
		Short: "A CLI tool to parse transaction search queries and run them against transactions.",
		Long: `txsearch parses search queries such as

  dinner amount_min:20 category:Groceries from:Checking

into a structured filter. Operator values naming accounts, categories,
budgets, tags or bills are resolved against an entity catalog (YAML or
SQLite). The filter can be applied to a CSV export of transactions.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer != nil {
				if err := AppContainer.Close(); err != nil {
					Log.WithError(err).Warn("Failed to close container")
				}
				AppContainer = nil
			}
		},
	}

	// SharedFlags holds the values of the persistent flags
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default: config.yaml in $HOME/.txsearch, .txsearch or .)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level override (trace, debug, info, warn, error)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogFormat, "log-format", "", "Log format override (text, json)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (default: stdout)")
}

// setup loads .env and the configuration, applies flag overrides and wires
// the container for the subcommand.
func setup(cmd *cobra.Command, args []string) error {
	config.LoadEnv(nil)

	cfg, err := config.LoadConfig(SharedFlags.ConfigFile)
	if err != nil {
		return err
	}
	if err := ApplyLogOverrides(cfg, SharedFlags.LogLevel, SharedFlags.LogFormat); err != nil {
		return err
	}
	AppConfig = cfg
	Log = config.NewLogger(cfg)

	c, err := container.NewContainerWithLogger(cfg, Log)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	AppContainer = c
	return nil
}

// ApplyLogOverrides replaces the configured log level and format with
// non-empty flag values.
func ApplyLogOverrides(cfg *config.Config, level, format string) error {
	if level != "" {
		cfg.Log.Level = level
	}
	if format != "" {
		if format != "text" && format != "json" {
			return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", format)
		}
		cfg.Log.Format = format
	}
	return nil
}

// GetConfig returns the loaded configuration, nil before setup ran.
func GetConfig() *config.Config {
	return AppConfig
}

// GetContainer returns the wired container, nil before setup ran.
func GetContainer() *container.Container {
	return AppContainer
}

// OpenOutput returns the file at path, or fallback when path is empty. The
// returned func closes the file.
func OpenOutput(fallback io.Writer, path string) (io.Writer, func(), error) {
	if path == "" {
		return fallback, func() {}, nil
	}
	f, err := fileutils.CreateFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
