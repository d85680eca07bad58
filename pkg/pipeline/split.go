package pipeline

import (
	"context"
	"image"
	"path/filepath"
	"strconv"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/spritter/pkg/errors"
	"github.com/matzehuels/spritter/pkg/frames"
	"github.com/matzehuels/spritter/pkg/observability"
	"github.com/matzehuels/spritter/pkg/sink"
)

// Split cuts the sheet at source into cols x rows frames and writes them to
// opts.Output as <x + cols*y>.png. Frame size is the sheet size divided by
// the grid; remainder pixels on the right and bottom edges are dropped.
func (r *Runner) Split(ctx context.Context, source string, cols, rows int, opts Options) (Outcome, error) {
	r.applyLogger(&opts)
	if err := errors.ValidateRange("columns", cols, 1, 1<<20); err != nil {
		return Outcome{}, err
	}
	if err := errors.ValidateRange("rows", rows, 1, 1<<20); err != nil {
		return Outcome{}, err
	}
	if err := errors.ValidateSourcePath(source); err != nil {
		return Outcome{}, err
	}
	if err := errors.EnsureOutputDir(opts.Output); err != nil {
		return Outcome{}, err
	}

	sheet, err := frames.LoadFile(source)
	if err != nil {
		return Outcome{}, err
	}
	b := sheet.Bounds()
	fw, fh := b.Dx()/cols, b.Dy()/rows
	if fw == 0 || fh == 0 {
		return Outcome{}, errors.New(errors.ErrCodeInvalidInput,
			"sheet of %dx%d cannot be split into %dx%d frames", b.Dx(), b.Dy(), cols, rows)
	}

	out := Outcome{SpriteWidth: fw, SpriteHeight: fh}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			frame := imaging.Crop(sheet, image.Rect(x*fw, y*fh, (x+1)*fw, (y+1)*fh))
			p := filepath.Join(opts.Output, strconv.Itoa(x+cols*y)+".png")
			n, err := sink.SavePNG(p, frame)
			if err != nil {
				return out, err
			}
			out.Files = append(out.Files, p)
			out.Bytes += n
		}
	}
	observability.Output().OnSheetsSaved(ctx, len(out.Files), out.Bytes)
	r.Logger.Info("split sheet", "source", source, "frames", len(out.Files), "size", sizeString(fw, fh))
	return out, nil
}
