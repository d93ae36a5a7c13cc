// Package cli provides the command-line interface for famexplorer.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/phanxgames/famexplorer/internal/config"
	"github.com/phanxgames/famexplorer/internal/logging"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// configKey is used to store config in context.
type configKey struct{}

// loggerKey is used to store the logger in context.
type loggerKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "famexplorer",
		Short: "famexplorer - sprite explorer for profile avatars",
		Long: `famexplorer shows a large collection of profile avatars as a zoomable
grid cut from one sprite sheet, with search, match navigation and a detail
panel per profile.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "version" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			logger, err := logging.NewLogger(cfg.Log.Level, cfg.Log.File)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			if used := config.GetConfigFileUsed(); used != "" {
				logger.Debug("using config file", zap.String("path", used))
			}

			ctx := context.WithValue(cmd.Context(), configKey{}, cfg)
			ctx = context.WithValue(ctx, loggerKey{}, logger)
			cmd.SetContext(ctx)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			_ = GetLogger(cmd.Context()).Sync()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./famexplorer.yaml)")
	pf.String("profiles", "", "JSON profile file")
	pf.String("profiles-db", "", "SQLite profile store (see `famexplorer import`)")
	pf.String("atlas", "", "atlas manifest JSON")
	pf.String("atlas-image", "", "atlas page PNG")
	pf.Float64("size-factor", 0, "atlas down-scale from source to drawn tiles")
	pf.String("log-level", "", "log level (debug|info|warn|error)")
	pf.String("log-file", "", "append logs to this file instead of stdout")
	pf.Bool("debug", false, "log per-frame draw stats")

	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(NewVersionCommand(Version))
	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewSearchCommand())
	rootCmd.AddCommand(NewResolveCommand())
	rootCmd.AddCommand(NewImportCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *config.Config {
	if ctx != nil {
		if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
			return c
		}
	}
	return &config.Config{
		Atlas:        config.DefaultAtlas,
		AtlasImage:   config.DefaultAtlasImage,
		SizeFactor:   config.DefaultSizeFactor,
		InitialScale: config.DefaultInitialScale,
		OpenDelay:    config.DefaultOpenDelay,
		CloseGrace:   config.DefaultCloseGrace,
		Window: config.WindowConfig{
			Width:  config.DefaultWindowWidth,
			Height: config.DefaultWindowHeight,
			Title:  config.DefaultWindowTitle,
		},
		Log: config.LogConfig{Level: config.DefaultLogLevel},
	}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
			return l
		}
	}
	return zap.NewNop()
}

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "famexplorer v%s (%s)\n", version, GitCommit)
		},
	}
}
