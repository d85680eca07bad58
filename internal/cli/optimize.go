package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spritter/pkg/errors"
	"github.com/matzehuels/spritter/pkg/pipeline"
)

// optimizeCommand creates the optimize command for recompressing PNGs.
func (c *CLI) optimizeCommand() *cobra.Command {
	opts := cliDefaults()

	cmd := &cobra.Command{
		Use:   "optimize [file-or-folder]",
		Short: "Recompress existing PNG files",
		Long: `Recompress existing PNG files in place.

A file is only replaced when the new encoding is smaller. With --lossy the
images are quantized to a palette; adding --group makes every file share one
palette built from all of them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.prepare(cmd, &opts); err != nil {
				return err
			}
			return c.runOptimize(cmd.Context(), args[0], opts)
		},
	}

	addEncodingFlags(cmd, &opts)
	cmd.Flags().BoolVarP(&opts.Recursive, "recursive", "r", opts.Recursive, "include PNGs in nested folders")
	cmd.Flags().BoolVarP(&opts.Group, "group", "g", opts.Group, "share one palette across all files (with --lossy)")

	return cmd
}

func (c *CLI) runOptimize(ctx context.Context, target string, opts pipeline.Options) error {
	report, err := c.newRunner().Optimize(ctx, target, opts)
	if err != nil {
		return fmt.Errorf("optimize %s: %w", target, err)
	}

	failed := 0
	for _, f := range report.Files {
		if f.Err != nil {
			failed++
			printError("%s: %s", f.Path, errors.UserMessage(f.Err))
		}
	}
	if len(report.Files) == 0 {
		return nil
	}

	saved := pipeline.HumanBytes(uint64(max(report.Saved(), 0)))
	if failed > 0 {
		printWarning("Optimized %d of %d files, saved %s", len(report.Files)-failed, len(report.Files), saved)
		return nil
	}
	printSuccess("Optimized %s, saved %s", plural(len(report.Files), "file"), saved)
	printStats([]string{
		pipeline.HumanBytes(uint64(report.BytesIn)) + " " + iconArrow + " " + pipeline.HumanBytes(uint64(report.BytesOut)),
		fmt.Sprintf("%.2f%%", report.Percent()),
	})
	return nil
}
