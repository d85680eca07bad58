package sink

import (
	"context"
	"image"
	"image/color"
	"io"
	"runtime"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/spritter/pkg/errors"
	"github.com/matzehuels/spritter/pkg/quantize"
)

// progressEvery is the logging interval for long save runs.
const progressEvery = 10

// Options controls how sheets are encoded.
type Options struct {
	// Lossy enables palette quantization.
	Lossy bool
	// Group makes all sheets of one call share a single palette.
	// Ignored unless Lossy is set.
	Group bool
	// Quantizer defaults to median cut.
	Quantizer quantize.Quantizer
	// Colors is the palette size including the transparent entry.
	Colors int
	// Workers bounds parallel encoding. Zero means runtime.NumCPU().
	Workers int
	Logger  *log.Logger
}

func (o Options) withDefaults() Options {
	if o.Quantizer == nil {
		o.Quantizer = quantize.MedianCut{}
	}
	if o.Colors <= 0 {
		o.Colors = quantize.MaxColors
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return o
}

// SharedPalette computes one palette for imgs in two phases: histograms are
// built per image in parallel, then merged once every image is done.
func SharedPalette(ctx context.Context, imgs []*image.NRGBA, q quantize.Quantizer, colors, workers int) (color.Palette, error) {
	o := Options{Quantizer: q, Colors: colors, Workers: workers}.withDefaults()

	hists := make([]quantize.Histogram, len(imgs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.Workers)
	for i, img := range imgs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			hists[i] = quantize.HistogramOf(img)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := quantize.NewHistogram()
	for _, h := range hists {
		merged.Merge(h)
	}
	return quantize.Palette(o.Quantizer, merged, o.Colors), nil
}

// SaveSheets encodes sheets[i] to paths[i] and returns the size of each
// written file. Files written before a failure are left in place.
func SaveSheets(ctx context.Context, sheets []*image.NRGBA, paths []string, opts Options) ([]int64, error) {
	if len(sheets) != len(paths) {
		return nil, errors.New(errors.ErrCodeInternal, "%d sheets but %d paths", len(sheets), len(paths))
	}
	opts = opts.withDefaults()

	var shared color.Palette
	if opts.Lossy && opts.Group && len(sheets) > 1 {
		pal, err := SharedPalette(ctx, sheets, opts.Quantizer, opts.Colors, opts.Workers)
		if err != nil {
			return nil, err
		}
		shared = pal
		opts.Logger.Debug("computed shared palette", "sheets", len(sheets), "colors", len(pal))
	}

	sizes := make([]int64, len(sheets))
	var done atomic.Int32
	total := len(sheets)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, sheet := range sheets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			pal := shared
			if opts.Lossy && pal == nil {
				pal = quantize.Palette(opts.Quantizer, quantize.HistogramOf(sheet), opts.Colors)
			}
			data, err := EncodePNG(sheet, pal)
			if err != nil {
				return err
			}
			n, err := WriteFile(paths[i], data)
			if err != nil {
				return err
			}
			sizes[i] = n

			if d := int(done.Add(1)); progressDue(d, total) {
				opts.Logger.Info("saved sheets", "done", d, "total", total)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sizes, nil
}

// progressDue reports whether the d-th finished sheet out of total gets a
// progress line: every progressEvery sheets and once at the end, for runs
// longer than progressEvery.
func progressDue(d, total int) bool {
	return total > progressEvery && (d%progressEvery == 0 || d == total)
}
