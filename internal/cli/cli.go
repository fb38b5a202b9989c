// Package cli implements the strata command-line interface.
//
// The CLI builds seeded scene graphs from the scene library, compiles
// them, and either samples signed distance blocks or exports meshed
// surfaces. All commands support --verbose (-v) for debug-level
// logging via the charmbracelet/log library.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// appName is the application name used for display.
const appName = "strata"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance writing logs to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands
// registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Strata generates voxel-ready signed distance fields",
		Long:         `Strata compiles graphs of distance field nodes into block evaluators for voxel carving, and meshes the resulting surfaces for inspection.`,
		SilenceUsage: true,
	}

	root.AddCommand(c.scenesCommand())
	root.AddCommand(c.sampleCommand())
	root.AddCommand(c.exportCommand())

	return root
}
