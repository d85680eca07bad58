package pipeline

import (
	"context"
	"image"
	"image/color"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/spritter/pkg/errors"
	"github.com/matzehuels/spritter/pkg/frames"
	"github.com/matzehuels/spritter/pkg/observability"
	"github.com/matzehuels/spritter/pkg/quantize"
	"github.com/matzehuels/spritter/pkg/sink"
)

// FileResult is the outcome of optimizing one file.
type FileResult struct {
	Path     string
	BytesIn  int64
	BytesOut int64
	Err      error
}

// OptimizeReport summarizes an optimize run.
type OptimizeReport struct {
	Files    []FileResult
	BytesIn  int64
	BytesOut int64
}

// Saved returns the number of bytes saved across all files.
func (r OptimizeReport) Saved() int64 {
	return r.BytesIn - r.BytesOut
}

// Percent returns the relative size change, e.g. -12.5 for 12.5% smaller.
func (r OptimizeReport) Percent() float64 {
	if r.BytesIn == 0 {
		return 0
	}
	return (float64(r.BytesOut)/float64(r.BytesIn) - 1) * 100
}

// Optimize re-encodes the PNG at target, or every PNG inside the target
// directory, replacing a file only when the new encoding is smaller.
//
// With Lossy and Group set all files share one palette: every file is
// loaded and counted into a single histogram before any file is rewritten.
// Group without Lossy has no effect.
func (r *Runner) Optimize(ctx context.Context, target string, opts Options) (OptimizeReport, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return OptimizeReport{}, err
	}

	paths, err := r.collectPNGs(target, opts.Recursive)
	if err != nil {
		return OptimizeReport{}, err
	}
	if len(paths) == 0 {
		r.Logger.Warn("no source images found", "target", target)
		return OptimizeReport{}, nil
	}

	hooks := observability.Pipeline()
	hooks.OnUnitStart(ctx, "optimize", target)
	start := time.Now()

	var report OptimizeReport
	if opts.Group && !opts.Lossy {
		r.Logger.Warn("group optimization only has an effect with lossy compression, ignoring group flag")
	}
	if opts.Group && opts.Lossy {
		report, err = r.optimizeGrouped(ctx, paths, opts)
	} else {
		report = r.optimizeEach(ctx, paths, opts, nil)
	}

	hooks.OnUnitComplete(ctx, "optimize", target, len(report.Files), time.Since(start), err)
	if err != nil {
		return report, err
	}

	r.Logger.Info("optimized images", "files", len(report.Files),
		"total", formatPercent(report.Percent()), "saved", HumanBytes(uint64(max(report.Saved(), 0))))
	return report, nil
}

// collectPNGs lists the PNG files to optimize.
func (r *Runner) collectPNGs(target string, recursive bool) ([]string, error) {
	if err := errors.ValidateSourcePath(target); err != nil {
		return nil, err
	}
	fi, err := os.Stat(target)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "stat %s", target)
	}

	if !fi.IsDir() {
		if recursive {
			r.Logger.Warn("target is not a directory, recursive search disabled")
		}
		if frames.IsPNG(target) {
			return []string{target}, nil
		}
		return nil, nil
	}

	paths, err := frames.ListPNGs(target)
	if err != nil {
		return nil, err
	}
	if !recursive {
		return paths, nil
	}

	dirs, err := frames.WalkDirs(target)
	if err != nil {
		return nil, err
	}
	for _, d := range dirs {
		more, err := frames.ListPNGs(d)
		if err != nil {
			return nil, err
		}
		paths = append(paths, more...)
	}
	r.Logger.Info("found images", "images", len(paths), "folders", len(dirs))
	return paths, nil
}

// optimizeGrouped builds one palette over every readable file, then
// rewrites the files against it. Unreadable files are skipped with a
// warning.
func (r *Runner) optimizeGrouped(ctx context.Context, paths []string, opts Options) (OptimizeReport, error) {
	r.Logger.Info("generating histogram of all images")

	var good []string
	var imgs []*image.NRGBA
	for _, p := range paths {
		img, err := frames.LoadFile(p)
		if err != nil {
			r.Logger.Warn("skipping unreadable image", "path", p, "err", err)
			continue
		}
		good = append(good, p)
		imgs = append(imgs, img)
	}
	if len(good) == 0 {
		r.Logger.Warn("no source images found")
		return OptimizeReport{}, nil
	}

	enc := opts.SinkOptions(true)
	pal, err := sink.SharedPalette(ctx, imgs, enc.Quantizer, enc.Colors, enc.Workers)
	if err != nil {
		return OptimizeReport{}, err
	}

	r.Logger.Info("optimizing images", "colors", len(pal))
	return r.optimizeEach(ctx, good, opts, pal), nil
}

// optimizeEach rewrites every file independently. A nil shared palette
// means each file gets its own palette in lossy mode. Failures are logged
// and recorded per file.
func (r *Runner) optimizeEach(ctx context.Context, paths []string, opts Options, shared color.Palette) OptimizeReport {
	results := make([]FileResult, len(paths))

	var g errgroup.Group
	g.SetLimit(opts.Workers)
	for i, p := range paths {
		g.Go(func() error {
			res := r.optimizeFile(p, opts, shared)
			if res.Err != nil {
				r.Logger.Error("optimize failed", "path", p, "err", res.Err)
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	report := OptimizeReport{Files: results}
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		report.BytesIn += res.BytesIn
		report.BytesOut += res.BytesOut
	}
	observability.Output().OnSheetsSaved(ctx, len(results), report.BytesOut)
	return report
}

// optimizeFile re-encodes one PNG and keeps the smaller of the two versions.
func (r *Runner) optimizeFile(path string, opts Options, shared color.Palette) FileResult {
	res := FileResult{Path: path}

	orig, err := os.ReadFile(path)
	if err != nil {
		res.Err = errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		return res
	}
	res.BytesIn = int64(len(orig))

	img, err := frames.LoadFile(path)
	if err != nil {
		res.Err = err
		return res
	}

	pal := shared
	if opts.Lossy && pal == nil {
		pal = quantize.Palette(opts.SinkOptions(false).Quantizer, quantize.HistogramOf(img), opts.Colors)
	}
	data, err := sink.EncodePNG(img, pal)
	if err != nil {
		res.Err = err
		return res
	}

	if len(data) >= len(orig) {
		r.Logger.Info("could not optimize further", "path", path)
		res.BytesOut = res.BytesIn
		return res
	}
	if _, err := sink.WriteFile(path, data); err != nil {
		res.Err = err
		return res
	}
	res.BytesOut = int64(len(data))
	r.Logger.Info("optimized", "path", path,
		"change", formatPercent((float64(res.BytesOut)/float64(res.BytesIn)-1)*100),
		"saved", HumanBytes(uint64(res.BytesIn-res.BytesOut)))
	return res
}
