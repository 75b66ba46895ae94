// Package cli implements the choreo command-line interface.
//
// # Commands
//
//   - bake: run a scene script headless and print sampled property values
//   - watch: animate a scene script in the terminal
//   - play: animate a scene script in a window
//   - easings: print every easing curve at a few sample points
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// turns on the engine's per-frame stats. Loggers and the loaded choreo.toml
// are passed through context.Context.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version. The main
// package calls it with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// NewRootCommand builds the command tree. Log output goes to logOut.
func NewRootCommand(logOut io.Writer) *cobra.Command {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "choreo",
		Short:        "choreo bakes, watches and plays animation scene scripts",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			level, err := cfg.LogLevel()
			if err != nil {
				return err
			}
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(logOut, level))
			ctx = withConfig(ctx, cfg)
			cmd.SetContext(ctx)
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("choreo %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to choreo.toml")

	root.AddCommand(newBakeCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newPlayCmd())
	root.AddCommand(newEasingsCmd())
	return root
}

// Execute runs the choreo CLI.
func Execute(ctx context.Context) error {
	return NewRootCommand(os.Stderr).ExecuteContext(ctx)
}
