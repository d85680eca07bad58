package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spritter/pkg/pipeline"
)

// iconCommand creates the icon command for assembling mipmapped icons.
func (c *CLI) iconCommand() *cobra.Command {
	opts := cliDefaults()

	cmd := &cobra.Command{
		Use:   "icon [source]",
		Short: "Combine mip levels into one icon strip",
		Long: `Combine mip levels into one icon strip.

The source folder holds one square image per mip level. The largest image is
the base; every further level must be exactly half the size of the previous
one. Levels are placed left to right in a single image.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.prepare(cmd, &opts); err != nil {
				return err
			}
			return c.runIcon(cmd.Context(), args[0], opts)
		},
	}

	addOutputFlags(cmd, &opts)
	addEncodingFlags(cmd, &opts)

	return cmd
}

func (c *CLI) runIcon(ctx context.Context, source string, opts pipeline.Options) error {
	out, err := c.newRunner().Icon(ctx, source, opts)
	if err != nil {
		return fmt.Errorf("icon %s: %w", source, err)
	}
	if out.Skipped {
		printWarning("no source images found in %s", source)
		return nil
	}

	printSuccess("Icon %s%s", opts.Prefix, out.Name)
	printOutcome(out)
	return nil
}
