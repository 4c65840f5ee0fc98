// Package cli contains the cobra commands. Every command that touches missions
// opens its own session through wire.App and closes it before returning.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/fleet/internal/config"
	"github.com/example/fleet/internal/wire"
)

// AddGlobalFlags registers the persistent flags shared by every command and
// the pre-run hook that applies them.
func AddGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().Bool("no-color", false, "Disable coloured output")
	root.PersistentFlags().String("dir", "", "Directory holding .fleet/config.json (default: current directory)")
	root.PersistentFlags().String("fixtures", "", "YAML fixture file to seed the session from (overrides config)")
	root.PersistentFlags().String("id-strategy", "", "Mission id strategy: sequence or uuid (overrides config)")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
			color.NoColor = true
		}
		return nil
	}
}

// newLogger configures logging based on the verbose flag.
func newLogger(cmd *cobra.Command) *slog.Logger {
	logLevel := slog.LevelInfo
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	})
	return slog.New(handler)
}

// configDir resolves --dir, falling back to the working directory.
func configDir(cmd *cobra.Command) (string, error) {
	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		return dir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return cwd, nil
}

// loadConfig reads the config file (if any) and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	dir, err := configDir(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadOrDefault(dir)
	if err != nil {
		return nil, err
	}

	if fixtures, _ := cmd.Flags().GetString("fixtures"); fixtures != "" {
		cfg.FixturesPath = fixtures
	}
	if strategy, _ := cmd.Flags().GetString("id-strategy"); strategy != "" {
		cfg.IDStrategy = strategy
	}
	return cfg, cfg.Validate()
}

// withApp opens a session for the duration of fn.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *wire.App) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := wire.NewApp(ctx, wire.Options{Config: cfg, Logger: logger})
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil {
			logger.Error("error closing session", "error", closeErr)
		}
	}()

	return fn(a.Context(ctx), a)
}
