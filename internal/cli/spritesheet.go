package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spritter/pkg/frames"
	"github.com/matzehuels/spritter/pkg/pipeline"
)

// spritesheetCommand creates the spritesheet command.
func (c *CLI) spritesheetCommand() *cobra.Command {
	opts := cliDefaults()

	cmd := &cobra.Command{
		Use:   "spritesheet [source]",
		Short: "Pack a folder of frames into sprite sheets",
		Long: `Pack a folder of frames into sprite sheets.

All frames are cropped to the union of their visible pixels and laid out
on as few sheets as the engine's size limit allows. The shift needed to keep
the sprite centred on its original pivot is written to the metadata.

With --recursive every immediate subfolder of the source becomes its own
sheet. A folder that fails is reported and the others are still generated.

With --single-sheet-split, frames that do not fit on one sheet are cut into
tiles and each tile position is written as a separate layer.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.prepare(cmd, &opts); err != nil {
				return err
			}
			return c.runSpritesheet(cmd.Context(), args[0], opts)
		},
	}

	addOutputFlags(cmd, &opts)
	addEncodingFlags(cmd, &opts)

	cmd.Flags().BoolVarP(&opts.Recursive, "recursive", "r", opts.Recursive, "treat every subfolder of the source as one sheet")
	cmd.Flags().IntVar(&opts.TileResolution, "tile-resolution", opts.TileResolution, "sprite pixels per engine tile")
	cmd.Flags().BoolVar(&opts.NoCrop, "no-crop", opts.NoCrop, "keep frames at their full size")
	cmd.Flags().IntVar(&opts.CropAlpha, "crop-alpha", opts.CropAlpha, "pixels with alpha at or below this value count as empty when cropping")
	cmd.Flags().Var(optionalInt{&opts.TransparentBlack}, "transparent-black",
		"make pixels with every colour channel at or below this value transparent")
	cmd.Flags().BoolVar(&opts.Dedup, "deduplicate-empty-frames", opts.Dedup, "store fully transparent frames only once")
	cmd.Flags().Float64VarP(&opts.Scale, "scale", "s", opts.Scale, "resize frames by this factor before packing")
	cmd.Flags().StringVar(&opts.ScaleFilter, "scale-filter", opts.ScaleFilter,
		"resampling filter: "+strings.Join(frames.FilterNames, ", "))
	cmd.Flags().BoolVar(&opts.SplitMode, "single-sheet-split", opts.SplitMode, "split frames into layers that each fit on one sheet")
	cmd.Flags().IntVar(&opts.MaxSheetSize, "max-sheet-size", opts.MaxSheetSize, "maximum frames per sheet axis (0 = unlimited)")
	cmd.Flags().IntVar(&opts.MaxSheetWidth, "max-sheet-width", opts.MaxSheetWidth, "maximum frames per sheet row (0 = unlimited)")
	cmd.Flags().IntVar(&opts.MaxSize, "max-size", opts.MaxSize, "maximum sheet side length in pixels")

	return cmd
}

// runSpritesheet generates sheets and prints a per-unit report. In recursive
// mode failed units are summarized without failing the command; a single
// source returns its error.
func (c *CLI) runSpritesheet(ctx context.Context, source string, opts pipeline.Options) error {
	prog := newProgress(c.Logger)

	results, err := c.newRunner().Spritesheet(ctx, source, opts)
	if err != nil {
		return fmt.Errorf("spritesheet %s: %w", source, err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	for _, r := range pipeline.Succeeded(results) {
		printSuccess("%s%s", opts.Prefix, r.Outcome.Name)
		printOutcome(r.Outcome)
	}

	if !opts.Recursive && len(results) == 1 && results[0].Err != nil {
		return results[0].Err
	}
	if opts.Recursive {
		printNewline()
		printSummary(results)
	}
	prog.done(fmt.Sprintf("Processed %d source(s)", len(results)))
	return nil
}
