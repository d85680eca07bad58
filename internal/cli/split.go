package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spritter/pkg/errors"
	"github.com/matzehuels/spritter/pkg/pipeline"
)

// splitCommand creates the split command for cutting sheets into frames.
func (c *CLI) splitCommand() *cobra.Command {
	opts := cliDefaults()

	cmd := &cobra.Command{
		Use:   "split [sheet] [columns] [rows]",
		Short: "Cut a sprite sheet back into individual frames",
		Long: `Cut a sprite sheet back into individual frames.

The sheet is divided into a grid of columns x rows equally sized frames,
written as 0.png, 1.png, ... in row-major order.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cols, err := parseCount("columns", args[1])
			if err != nil {
				return err
			}
			rows, err := parseCount("rows", args[2])
			if err != nil {
				return err
			}
			if err := c.prepare(cmd, &opts); err != nil {
				return err
			}
			return c.runSplit(cmd.Context(), args[0], cols, rows, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", opts.Output, "output directory")

	return cmd
}

// parseCount parses a positive integer argument.
func parseCount(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidOption, err, "%s must be an integer, got %q", name, s)
	}
	return n, errors.ValidateRange(name, n, 1, 1<<20)
}

func (c *CLI) runSplit(ctx context.Context, sheet string, cols, rows int, opts pipeline.Options) error {
	out, err := c.newRunner().Split(ctx, sheet, cols, rows, opts)
	if err != nil {
		return fmt.Errorf("split %s: %w", sheet, err)
	}
	printSuccess("Split %s into %s", sheet, plural(len(out.Files), "frame"))
	printInfo("%s", opts.Output)
	printStats(outcomeStats(out))
	return nil
}
