package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/bitpy2023/netfix/internal/config"
	"github.com/bitpy2023/netfix/internal/engine"
	"github.com/bitpy2023/netfix/internal/store"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgPath   string
	logLevel  string
	logFormat string
	quiet     bool

	// Root-level mode flags, kept for script compatibility with the
	// original shell tool
	flagNormal     bool
	flagAggressive bool
	flagTest       bool

	globalCfg *config.Config
	logger    *slog.Logger
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "netfix",
		Short: "Repair APT mirrors and DNS on hosts cut off from default mirrors",
		Long: `netfix repairs broken package-repository and DNS configuration on a
Debian-derivative host whose default mirrors are unreachable. It backs up
the affected files, rewrites the resolver and sources list with a working
mirror set, bootstraps the repository keyrings, and applies kernel network
tuning. A test mode probes mirror and DNS reachability without changing
anything.`,
		Example: `  netfix --normal
  netfix --aggressive
  netfix --test
  netfix fix --mode aggressive
  netfix status
  netfix history --limit 5
  netfix restore
  netfix            (interactive menu)`,
		Version: "1.0.0",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Initialize logging
			setupLogging()

			// Skip config loading for commands that don't need it
			if shouldSkipConfig(cmd.Name()) {
				return nil
			}

			// Load config
			if cfgPath == "" {
				var err error
				cfgPath, err = config.FindConfigFile()
				if err != nil {
					logger.Debug("config file not found, using defaults", "error", err)
				}
			}

			if cfgPath != "" {
				var err error
				globalCfg, err = config.Load(cfgPath)
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}
			} else {
				globalCfg = config.DefaultConfig()
			}

			if !quiet {
				logger.Debug("config loaded", "path", cfgPath)
			}

			return nil
		},
		RunE: rootRun,
	}

	// Add persistent flags
	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (auto-discovered if not specified)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text or json)")
	cmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress non-error output")

	// Mode flags on the root command
	cmd.Flags().BoolVarP(&flagNormal, "normal", "n", false, "apply the normal mirror set and DNS list")
	cmd.Flags().BoolVarP(&flagAggressive, "aggressive", "a", false, "apply the aggressive mirror set and DNS list")
	cmd.Flags().BoolVarP(&flagTest, "test", "t", false, "probe connectivity only, change nothing")

	// Add subcommands
	cmd.AddCommand(
		newFixCmd(),
		newTestCmd(),
		newStatusCmd(),
		newHistoryCmd(),
		newRestoreCmd(),
	)

	return cmd
}

// rootRun dispatches the root-level mode flags, falling back to the
// interactive menu when none is given
func rootRun(cmd *cobra.Command, args []string) error {
	switch {
	case flagNormal && flagAggressive:
		return fmt.Errorf("--normal and --aggressive are mutually exclusive")
	case flagNormal:
		return runFix(cmd, engine.ModeNormal)
	case flagAggressive:
		return runFix(cmd, engine.ModeAggressive)
	case flagTest:
		return runProbe(cmd)
	default:
		return runMenu(cmd)
	}
}

// openStore opens the run-history store, returning nil when it is
// unavailable. History is advisory; a fix proceeds without it.
func openStore() *store.Store {
	st, err := store.New(globalCfg.History.DBPath, logger)
	if err != nil {
		logger.Warn("run history unavailable", "path", globalCfg.History.DBPath, "error", err)
		return nil
	}
	return st
}

// setupLogging initializes the slog logger based on flags
func setupLogging() {
	var level slog.Level
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}

	var handler slog.Handler
	if strings.ToLower(logFormat) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}

	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// shouldSkipConfig checks if a command should skip config loading
func shouldSkipConfig(cmdName string) bool {
	skipConfigCmds := map[string]bool{
		"help":    true,
		"version": true,
	}
	return skipConfigCmds[cmdName]
}
