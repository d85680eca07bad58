package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/matzehuels/spritter/pkg/errors"
	"github.com/matzehuels/spritter/pkg/frames"
	"github.com/matzehuels/spritter/pkg/observability"
	"github.com/matzehuels/spritter/pkg/sink"
)

// GIF renders the frames in source as a looping animated preview.
//
// GIFs are for documentation only; they carry one-bit transparency and a
// single 256 colour palette. A non-positive animation speed is reported as a
// warning and nothing is written.
func (r *Runner) GIF(ctx context.Context, source string, opts Options) (Outcome, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return Outcome{}, err
	}
	if err := errors.ValidateSourcePath(source); err != nil {
		return Outcome{}, err
	}
	if err := errors.EnsureOutputDir(opts.Output); err != nil {
		return Outcome{}, err
	}

	if opts.Lua || opts.JSON {
		r.Logger.Warn("metadata output is not supported for gifs")
	}
	if opts.AnimationSpeed <= 0 {
		r.Logger.Warn("animation speed must be greater than 0", "speed", opts.AnimationSpeed)
		return Outcome{Skipped: true}, nil
	}

	hooks := observability.Pipeline()
	hooks.OnUnitStart(ctx, "gif", source)
	start := time.Now()
	out, err := r.generateGIF(ctx, source, opts)
	hooks.OnUnitComplete(ctx, "gif", source, len(out.Files), time.Since(start), err)
	return out, err
}

func (r *Runner) generateGIF(ctx context.Context, source string, opts Options) (Outcome, error) {
	name, err := SourceName(source)
	if err != nil {
		return Outcome{}, err
	}
	out := Outcome{Name: name}

	set, err := frames.Load(source)
	if err != nil {
		return out, err
	}
	if len(set) == 0 {
		r.Logger.Warn("no source images found", "source", source)
		out.Skipped = true
		return out, nil
	}
	out.SpriteWidth, out.SpriteHeight = set.Size()

	enc := opts.SinkOptions(true)
	path := OutputName(opts.Output, name, NoIndex, opts.Prefix, "gif")
	f, err := os.Create(path)
	if err != nil {
		return out, errors.Wrap(errors.ErrCodeEncodeFailed, err, "create %s", path)
	}
	err = sink.EncodeGIF(ctx, f, set, sink.GIFOptions{
		Delay:          sink.DelayFromSpeed(opts.AnimationSpeed),
		AlphaThreshold: uint8(opts.AlphaThreshold),
		Quantizer:      enc.Quantizer,
		Colors:         opts.Colors,
		Workers:        opts.Workers,
	})
	if cerr := f.Close(); err == nil && cerr != nil {
		err = errors.Wrap(errors.ErrCodeEncodeFailed, cerr, "close %s", path)
	}
	if err != nil {
		return out, err
	}

	if fi, err := os.Stat(path); err == nil {
		out.Bytes = fi.Size()
	}
	out.Files = []string{path}
	observability.Output().OnSheetsSaved(ctx, 1, out.Bytes)
	r.Logger.Info("completed "+opts.Prefix+name, "frames", len(set), "delay", sink.DelayFromSpeed(opts.AnimationSpeed))
	return out, nil
}
