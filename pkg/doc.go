// Package pkg provides the core libraries for spritter, a sprite sheet
// generator for games.
//
// # Overview
//
// Spritter turns folders of rendered animation frames into cropped, tightly
// packed sprite sheets plus the metadata an engine needs to draw them at the
// right place. The pkg directory is organized into these areas:
//
//  1. [frames] - Frame discovery, decoding, rescaling
//  2. [sprite] - Geometry: crop, dedup, sheet layout, subframe split, mip icons
//  3. [quantize] - Histograms and palette quantizers for lossy output
//  4. [sink] - PNG and GIF encoding, grouped palette saving
//  5. [metadata] - Lua and JSON metadata tables
//  6. [pipeline] - Orchestration (load → crop → plan → compose → save)
//
// Supporting packages: [errors] (coded errors and option validation),
// [observability] (pipeline hooks) and [buildinfo] (version stamping).
//
// # Architecture
//
// The typical data flow through spritter:
//
//	Folder of frames
//	       ↓
//	  [frames] package (natural order, decode, rescale)
//	       ↓
//	  [sprite] package (crop, dedup, layout or split)
//	       ↓
//	  [sink] package (lossless or palette PNG)
//	       ↓
//	Sheets + [metadata] (Lua/JSON)
//
// # Quick Start
//
// Generate a sheet for one folder:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/spritter/pkg/pipeline"
//	)
//
//	opts := pipeline.DefaultOptions()
//	opts.Output = "out"
//	opts.Lua = true
//
//	runner := pipeline.NewRunner(nil)
//	results, err := runner.Spritesheet(context.Background(), "frames/walk", opts)
//	if err != nil {
//	    return err
//	}
//	for _, r := range pipeline.Failed(results) {
//	    fmt.Println(r.Source, r.Err)
//	}
//
// Or use the geometry core directly:
//
//	set, _ := frames.Load("frames/walk")
//	crop, _ := sprite.Crop(set, 0)
//	layout, _ := sprite.PlanFrames(set, sprite.Limits{})
//	sheets, _ := sprite.Compose(set, layout)
//
// # Error Handling
//
// All packages return *errors.Error values carrying a machine-readable code.
// Branch on the code rather than the message:
//
//	if errors.Is(err, errors.ErrCodeFrameTooLarge) {
//	    // retry with split mode
//	}
package pkg
