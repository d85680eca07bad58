package pipeline

import (
	"context"
	"fmt"
	"image"

	"github.com/matzehuels/spritter/pkg/errors"
	"github.com/matzehuels/spritter/pkg/frames"
	"github.com/matzehuels/spritter/pkg/metadata"
	"github.com/matzehuels/spritter/pkg/observability"
	"github.com/matzehuels/spritter/pkg/sink"
	"github.com/matzehuels/spritter/pkg/sprite"
)

// Spritesheet generates sheets for source. In recursive mode every immediate
// subdirectory of source is its own unit; otherwise source itself is the
// only unit.
//
// The returned error covers setup only (bad options, unusable output
// directory). Per-unit failures are in the results.
func (r *Runner) Spritesheet(ctx context.Context, source string, opts Options) ([]UnitResult, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := errors.ValidateSourcePath(source); err != nil {
		return nil, err
	}
	if err := errors.EnsureOutputDir(opts.Output); err != nil {
		return nil, err
	}

	sources := []string{source}
	if opts.Recursive {
		dirs, err := frames.SubDirs(source)
		if err != nil {
			return nil, err
		}
		sources = dirs
	}
	if len(sources) == 0 {
		r.Logger.Warn("no source directories found", "source", source)
		return nil, nil
	}

	return r.runUnits(ctx, "spritesheet", sources, opts.Workers, func(ctx context.Context, src string) (Outcome, error) {
		return r.generateSpritesheet(ctx, src, opts)
	}), nil
}

// generateSpritesheet runs the whole sheet pipeline for one source.
func (r *Runner) generateSpritesheet(ctx context.Context, source string, opts Options) (Outcome, error) {
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

	filter, _ := frames.ParseFilter(opts.ScaleFilter)
	frames.Rescale(set, opts.Scale, filter)

	if opts.TransparentBlack != nil {
		frames.TransparentBlack(set, uint8(*opts.TransparentBlack))
	}

	if !opts.NoCrop {
		res, err := sprite.Crop(set, uint8(opts.CropAlpha))
		if err != nil {
			return out, err
		}
		out.ShiftX, out.ShiftY = res.ShiftX, res.ShiftY
		r.Logger.Debug("cropped frames", "source", name,
			"box", res.Rect(), "shift_x", res.ShiftX, "shift_y", res.ShiftY)
	}

	var sequence []int
	if opts.Dedup {
		before := len(set)
		set, sequence = sprite.Dedup(set)
		r.Logger.Debug("deduplicated empty frames", "source", name, "before", before, "after", len(set))
	}

	out.SpriteWidth, out.SpriteHeight = set.Size()

	layout, err := sprite.PlanFrames(set, opts.Limits())
	needsSplit := (err == nil && layout.Sheets > 1) || errors.Is(err, errors.ErrCodeFrameTooLarge)
	if opts.SplitMode && needsSplit {
		r.Logger.Debug("sprites don't fit on a single sheet, splitting into multiple layers", "source", name)
		return r.saveSplit(ctx, set, sequence, out, opts)
	}
	if err != nil {
		return out, err
	}

	if layout.Maximized {
		r.Logger.Debug("using maximized sheet", "source", name, "cols", layout.Cols, "rows", layout.Rows)
	} else {
		r.Logger.Debug("singular custom sheet", "source", name, "cols", layout.Cols, "rows", layout.Rows)
	}

	sheets, err := sprite.Compose(set, layout)
	if err != nil {
		return out, err
	}
	paths := make([]string, len(sheets))
	for i := range sheets {
		idx := i
		if len(sheets) == 1 {
			idx = NoIndex
		}
		paths[i] = OutputName(opts.Output, name, idx, opts.Prefix, "png")
	}
	if err := r.save(ctx, sheets, paths, opts, &out); err != nil {
		return out, err
	}

	if opts.NoCrop {
		r.Logger.Info("completed "+opts.Prefix+name, "size", sizeString(out.SpriteWidth, out.SpriteHeight))
	} else {
		r.Logger.Info("completed "+opts.Prefix+name, "size", sizeString(out.SpriteWidth, out.SpriteHeight),
			"shift_x", out.ShiftX, "shift_y", out.ShiftY)
	}

	tbl := metadata.Table{}.
		Set("width", out.SpriteWidth).
		Set("height", out.SpriteHeight).
		Set("shift", metadata.Shift{X: out.ShiftX, Y: out.ShiftY, Res: opts.TileRes()}).
		Set("scale", opts.EngineScale()).
		Set("sprite_count", layout.Count).
		Set("line_length", layout.Cols).
		Set("lines_per_file", layout.Rows).
		Set("file_count", layout.Sheets)
	if sequence != nil {
		tbl.Set("frame_sequence", sequence)
	}
	out.Metadata, err = writeMetadata(opts, name, tbl, opts.MetadataFormats())
	return out, err
}

// saveSplit cuts set into subframe layers, writes one sheet per layer and a
// metadata table listing the layers.
func (r *Runner) saveSplit(ctx context.Context, set frames.FrameSet, sequence []int, out Outcome, opts Options) (Outcome, error) {
	layers, err := sprite.Split(set, out.ShiftX, out.ShiftY, opts.MaxSize)
	if err != nil {
		return out, err
	}

	var sheets []*image.NRGBA
	var paths []string
	tables := make([]metadata.Table, 0, len(layers))
	for idx, l := range layers {
		composed, err := sprite.Compose(l.Frames, l.Layout)
		if err != nil {
			return out, err
		}
		if len(composed) != 1 {
			return out, errors.New(errors.ErrCodeInternal, "layer %d needs %d sheets, want 1", idx, len(composed))
		}
		sheets = append(sheets, composed[0])
		paths = append(paths, OutputName(opts.Output, out.Name, idx, opts.Prefix, "png"))

		tbl := metadata.Table{}.
			Set("width", l.Rect.Dx()).
			Set("height", l.Rect.Dy()).
			Set("shift", metadata.Shift{X: l.ShiftX, Y: l.ShiftY, Res: opts.TileRes()}).
			Set("scale", opts.EngineScale()).
			Set("sprite_count", l.Layout.Count).
			Set("line_length", l.Layout.Cols).
			Set("lines_per_file", l.Layout.Rows)
		if sequence != nil {
			tbl.Set("frame_sequence", sequence)
		}
		tables = append(tables, tbl)
	}

	if err := r.save(ctx, sheets, paths, opts, &out); err != nil {
		return out, err
	}
	out.Layers = len(layers)
	r.Logger.Info("completed "+opts.Prefix+out.Name, "layers", len(layers))

	tbl := metadata.Table{}.Set("single_sheet_split_layers", tables)
	out.Metadata, err = writeMetadata(opts, out.Name, tbl, opts.MetadataFormats())
	return out, err
}

// save encodes sheets and records the written files on out. Sheets of one
// source always share a palette in lossy mode.
func (r *Runner) save(ctx context.Context, sheets []*image.NRGBA, paths []string, opts Options, out *Outcome) error {
	sizes, err := sink.SaveSheets(ctx, sheets, paths, opts.SinkOptions(true))
	if err != nil {
		return err
	}
	var total int64
	for _, n := range sizes {
		total += n
	}
	out.Files = append(out.Files, paths...)
	out.Bytes += total
	observability.Output().OnSheetsSaved(ctx, len(paths), total)
	return nil
}

// writeMetadata saves tbl once per requested format next to the sheets.
func writeMetadata(opts Options, name string, tbl metadata.Table, formats []metadata.Format) ([]string, error) {
	var written []string
	for _, f := range formats {
		p := OutputName(opts.Output, name, NoIndex, opts.Prefix, string(f))
		if err := metadata.Save(p, tbl, f); err != nil {
			return written, err
		}
		written = append(written, p)
	}
	return written, nil
}

func sizeString(w, h int) string {
	return fmt.Sprintf("%dx%dpx", w, h)
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
