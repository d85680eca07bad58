// Package pipeline runs spritter's commands end to end.
//
// This package connects the frame source, the geometry core in pkg/sprite,
// the encoders in pkg/sink and the metadata writers in pkg/metadata. The CLI
// is a thin layer over it: every command is one [Runner] method taking a
// source path and an [Options] value.
//
// # Commands
//
//   - [Runner.Spritesheet]: frames → rescale → transparent black → crop →
//     dedup → sheet plan (or subframe split) → sheets + metadata
//   - [Runner.Icon]: mip levels → one strip image + metadata
//   - [Runner.GIF]: frames → animated preview
//   - [Runner.Optimize]: re-encode existing PNGs, keeping whichever is smaller
//   - [Runner.Split]: cut a sheet back into individual frames
//
// # Batches
//
// In recursive mode every immediate subdirectory of the source is one unit of
// work. Units run on a bounded worker pool and share nothing; a failing unit
// is reported in its [UnitResult] and never stops the others:
//
//	runner := pipeline.NewRunner(logger)
//	results, err := runner.Spritesheet(ctx, "assets/", opts)
//	if err != nil {
//	    return err // setup failed, nothing ran
//	}
//	for _, r := range pipeline.Failed(results) {
//	    fmt.Println(r.Source, r.Err)
//	}
package pipeline

import (
	"io"
	"math"
	"runtime"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/spritter/pkg/errors"
	"github.com/matzehuels/spritter/pkg/frames"
	"github.com/matzehuels/spritter/pkg/metadata"
	"github.com/matzehuels/spritter/pkg/quantize"
	"github.com/matzehuels/spritter/pkg/sink"
	"github.com/matzehuels/spritter/pkg/sprite"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and config files
// =============================================================================

const (
	// DefaultTileResolution is the resolution of source sprites in pixels
	// per engine tile.
	DefaultTileResolution = 64

	// DefaultScale leaves frames at their rendered size.
	DefaultScale = 1.0

	// DefaultAnimationSpeed plays one frame per tick (60 frames per second).
	DefaultAnimationSpeed = 1.0

	// engineScale is the tile resolution the engine's scale factor refers to.
	engineScale = 32.0
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures every command. Fields a command does not use are
// ignored by it. The struct is decoded from TOML or YAML config files.
type Options struct {
	// Output options
	Output string `toml:"output" yaml:"output" json:"output"`
	Prefix string `toml:"prefix" yaml:"prefix" json:"prefix,omitempty"`
	Lua    bool   `toml:"lua" yaml:"lua" json:"lua,omitempty"`
	JSON   bool   `toml:"json" yaml:"json" json:"json,omitempty"`

	// Encoding options
	Lossy     bool   `toml:"lossy" yaml:"lossy" json:"lossy,omitempty"`
	Group     bool   `toml:"group" yaml:"group" json:"group,omitempty"`
	Quantizer string `toml:"quantizer" yaml:"quantizer" json:"quantizer,omitempty"`
	Colors    int    `toml:"colors" yaml:"colors" json:"colors,omitempty"`

	// Spritesheet options
	Recursive        bool    `toml:"recursive" yaml:"recursive" json:"recursive,omitempty"`
	TileResolution   int     `toml:"tile_resolution" yaml:"tile_resolution" json:"tile_resolution,omitempty"`
	NoCrop           bool    `toml:"no_crop" yaml:"no_crop" json:"no_crop,omitempty"`
	CropAlpha        int     `toml:"crop_alpha" yaml:"crop_alpha" json:"crop_alpha,omitempty"`
	// TransparentBlack, when set, makes every pixel whose colour channels are
	// all at or below the limit fully transparent. Nil leaves black alone.
	TransparentBlack *int `toml:"transparent_black" yaml:"transparent_black" json:"transparent_black,omitempty"`
	Dedup            bool    `toml:"deduplicate_empty_frames" yaml:"deduplicate_empty_frames" json:"deduplicate_empty_frames,omitempty"`
	Scale            float64 `toml:"scale" yaml:"scale" json:"scale,omitempty"`
	ScaleFilter      string  `toml:"scale_filter" yaml:"scale_filter" json:"scale_filter,omitempty"`
	SplitMode        bool    `toml:"single_sheet_split_mode" yaml:"single_sheet_split_mode" json:"single_sheet_split_mode,omitempty"`
	MaxSheetSize     int     `toml:"max_sheet_size" yaml:"max_sheet_size" json:"max_sheet_size,omitempty"`
	MaxSheetWidth    int     `toml:"max_sheet_width" yaml:"max_sheet_width" json:"max_sheet_width,omitempty"`
	MaxSize          int     `toml:"max_size" yaml:"max_size" json:"max_size,omitempty"`

	// GIF options
	AnimationSpeed float64 `toml:"animation_speed" yaml:"animation_speed" json:"animation_speed,omitempty"`
	AlphaThreshold int     `toml:"alpha_threshold" yaml:"alpha_threshold" json:"alpha_threshold,omitempty"`

	// Runtime options (not serialized)
	Workers int         `toml:"workers" yaml:"workers" json:"-"`
	Logger  *log.Logger `toml:"-" yaml:"-" json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// DefaultOptions returns options with every default applied.
func DefaultOptions() Options {
	var o Options
	o.SetDefaults()
	return o
}

// SetDefaults fills zero-valued fields whose zero value is invalid.
func (o *Options) SetDefaults() {
	if o.TileResolution == 0 {
		o.TileResolution = DefaultTileResolution
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.ScaleFilter == "" {
		o.ScaleFilter = string(frames.DefaultFilter)
	}
	if o.MaxSize == 0 {
		o.MaxSize = sprite.DefaultMaxSize
	}
	if o.Quantizer == "" {
		o.Quantizer = quantize.MethodMedianCut
	}
	if o.Colors == 0 {
		o.Colors = quantize.MaxColors
	}
	if o.AnimationSpeed == 0 {
		o.AnimationSpeed = DefaultAnimationSpeed
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks option ranges. It does not touch the filesystem.
func (o *Options) Validate() error {
	if err := errors.ValidatePrefix(o.Prefix); err != nil {
		return err
	}
	if err := errors.ValidateRange("tile resolution", o.TileResolution, 1, math.MaxInt32); err != nil {
		return err
	}
	if err := errors.ValidateRange("crop alpha", o.CropAlpha, 0, 255); err != nil {
		return err
	}
	if o.TransparentBlack != nil {
		if err := errors.ValidateRange("transparent black", *o.TransparentBlack, 0, 255); err != nil {
			return err
		}
	}
	if err := errors.ValidateRange("alpha threshold", o.AlphaThreshold, 0, 255); err != nil {
		return err
	}
	if err := errors.ValidatePositive("scale", o.Scale); err != nil {
		return err
	}
	if _, err := frames.ParseFilter(o.ScaleFilter); err != nil {
		return err
	}
	if err := errors.ValidateRange("max sheet size", o.MaxSheetSize, 0, math.MaxInt32); err != nil {
		return err
	}
	if err := errors.ValidateRange("max sheet width", o.MaxSheetWidth, 0, math.MaxInt32); err != nil {
		return err
	}
	if err := errors.ValidateRange("max size", o.MaxSize, 1, math.MaxInt32); err != nil {
		return err
	}
	if _, err := quantize.Parse(o.Quantizer); err != nil {
		return err
	}
	return errors.ValidateRange("colors", o.Colors, 2, quantize.MaxColors)
}

// ValidateAndSetDefaults applies defaults and validates. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// TileRes returns the tile resolution after scaling, never below 1.
func (o *Options) TileRes() int {
	return max(1, int(math.Round(float64(o.TileResolution)*o.Scale)))
}

// EngineScale returns the scale factor the engine applies to sprites.
func (o *Options) EngineScale() float64 {
	return engineScale / float64(o.TileRes())
}

// Limits returns the sheet grid limits.
func (o *Options) Limits() sprite.Limits {
	return sprite.Limits{
		MaxSize:       o.MaxSize,
		MaxSheetSize:  o.MaxSheetSize,
		MaxSheetWidth: o.MaxSheetWidth,
	}
}

// MetadataFormats returns the metadata formats to write.
func (o *Options) MetadataFormats() []metadata.Format {
	var out []metadata.Format
	if o.Lua {
		out = append(out, metadata.FormatLua)
	}
	if o.JSON {
		out = append(out, metadata.FormatJSON)
	}
	return out
}

// SinkOptions returns encoder options. group overrides o.Group.
func (o *Options) SinkOptions(group bool) sink.Options {
	q, _ := quantize.Parse(o.Quantizer)
	return sink.Options{
		Lossy:     o.Lossy,
		Group:     group,
		Quantizer: q,
		Colors:    o.Colors,
		Workers:   o.Workers,
		Logger:    o.Logger,
	}
}
