package pipeline

import (
	"context"
	"image"
	"time"

	"github.com/matzehuels/spritter/pkg/errors"
	"github.com/matzehuels/spritter/pkg/frames"
	"github.com/matzehuels/spritter/pkg/metadata"
	"github.com/matzehuels/spritter/pkg/observability"
	"github.com/matzehuels/spritter/pkg/sprite"
)

// Icon combines the images in source into one mipmap strip. Images may be
// in any order; they are sorted by decreasing width first.
func (r *Runner) Icon(ctx context.Context, source string, opts Options) (Outcome, error) {
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

	hooks := observability.Pipeline()
	hooks.OnUnitStart(ctx, "icon", source)
	start := time.Now()
	out, err := r.generateIcon(ctx, source, opts)
	hooks.OnUnitComplete(ctx, "icon", source, len(out.Files), time.Since(start), err)
	return out, err
}

func (r *Runner) generateIcon(ctx context.Context, source string, opts Options) (Outcome, error) {
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

	icon, err := sprite.AssembleIcon(sprite.SortByWidthDesc(set))
	if err != nil {
		return out, err
	}
	out.SpriteWidth, out.SpriteHeight = icon.Size, icon.Size

	path := OutputName(opts.Output, name, NoIndex, opts.Prefix, "png")
	if err := r.save(ctx, []*image.NRGBA{icon.Image}, []string{path}, opts, &out); err != nil {
		return out, err
	}
	r.Logger.Info("completed "+opts.Prefix+name, "size", icon.Size, "mipmaps", icon.Levels)

	tbl := metadata.Table{}.
		Set("icon_size", icon.Size).
		Set("icon_mipmaps", icon.Levels)
	out.Metadata, err = writeMetadata(opts, name, tbl, opts.MetadataFormats())
	return out, err
}
