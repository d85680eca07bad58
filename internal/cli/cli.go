// Package cli implements the spritter command-line interface.
//
// This package turns folders of rendered frames into engine-ready sprite
// sheets, icons with mipmaps and animated previews. It is a thin layer over
// [pipeline.Runner]: every command binds its flags onto a
// [pipeline.Options] value, optionally overlays a config file, and runs one
// pipeline method.
//
// # Commands
//
// The main commands are:
//   - spritesheet: Pack frame folders into sheets with Lua/JSON metadata
//   - icon: Combine mip levels into one icon strip
//   - gif: Render an animated preview
//   - optimize: Recompress existing PNGs
//   - split: Cut a sheet back into frames
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// lives on the [CLI] value and is handed to the pipeline runner.
//
// # Config files
//
// Every command accepts --config FILE (TOML or YAML). File values replace
// defaults; flags given on the command line win over the file.
package cli

import (
	"context"
	stderrors "errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/spritter/pkg/buildinfo"
	"github.com/matzehuels/spritter/pkg/errors"
	"github.com/matzehuels/spritter/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "spritter"

	// defaultOutput is where sheets go when -o is not given.
	defaultOutput = "."
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is bound to the persistent --config flag.
	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Spritter packs rendered frames into sprite sheets",
		Long:         `Spritter is a CLI tool that turns folders of rendered animation frames into cropped, tightly packed sprite sheets with Lua or JSON metadata for game engines.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		// main prints the error once and picks the exit code.
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "load options from a TOML or YAML file")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log layout decisions and per-sheet progress")

	// Register all subcommands
	root.AddCommand(c.spritesheetCommand())
	root.AddCommand(c.iconCommand())
	root.AddCommand(c.gifCommand())
	root.AddCommand(c.optimizeCommand())
	root.AddCommand(c.splitCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// ExitCode maps a command error to the process exit status: 0 on success,
// 130 after an interrupt, 2 for bad input or options and 1 for everything
// else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if stderrors.Is(err, context.Canceled) {
		return 130
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidOption, errors.ErrCodeInvalidPath,
		errors.ErrCodeInvalidInput, errors.ErrCodeFileNotFound:
		return 2
	}
	return 1
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// =============================================================================
// Options Helpers
// =============================================================================

// cliDefaults returns pipeline defaults with CLI-specific preferences applied.
func cliDefaults() pipeline.Options {
	opts := pipeline.DefaultOptions()
	opts.Output = defaultOutput
	// The CLI logger is attached in prepare.
	opts.Logger = nil
	return opts
}

// prepare overlays the config file, if any, and attaches the CLI logger.
func (c *CLI) prepare(cmd *cobra.Command, opts *pipeline.Options) error {
	if err := loadConfig(cmd, c.configPath, opts); err != nil {
		return err
	}
	opts.Logger = c.Logger
	return nil
}
