package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spritter/pkg/pipeline"
)

// gifCommand creates the gif command for animated previews.
func (c *CLI) gifCommand() *cobra.Command {
	opts := cliDefaults()

	cmd := &cobra.Command{
		Use:   "gif [source]",
		Short: "Render frames as an animated GIF preview",
		Long: `Render frames as an animated GIF preview.

GIFs only support one-bit transparency and 256 colours, so the result is
meant for documentation, not for use in game. The animation speed uses the
engine's convention: frames advanced per tick at 60 ticks per second.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.prepare(cmd, &opts); err != nil {
				return err
			}
			return c.runGIF(cmd.Context(), args[0], opts)
		},
	}

	addOutputFlags(cmd, &opts)
	addPaletteFlags(cmd, &opts)
	cmd.Flags().Float64Var(&opts.AnimationSpeed, "animation-speed", opts.AnimationSpeed, "frames per engine tick")
	cmd.Flags().IntVar(&opts.AlphaThreshold, "alpha-threshold", opts.AlphaThreshold, "pixels with alpha at or below this value become transparent")

	return cmd
}

func (c *CLI) runGIF(ctx context.Context, source string, opts pipeline.Options) error {
	out, err := c.newRunner().GIF(ctx, source, opts)
	if err != nil {
		return fmt.Errorf("gif %s: %w", source, err)
	}
	if out.Skipped {
		return nil
	}

	printSuccess("Preview %s%s", opts.Prefix, out.Name)
	printOutcome(out)
	return nil
}
