package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/spritter/pkg/observability"
)

// Runner executes commands. It holds no per-run state, so one Runner can be
// shared by concurrent callers with different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger falls back to log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Outcome describes what one unit of work produced.
type Outcome struct {
	// Name is the source name used in output file names.
	Name string

	// Skipped is set when the source held no images.
	Skipped bool

	// Files lists every written image, in sheet order.
	Files []string

	// Metadata lists written metadata files.
	Metadata []string

	// Bytes is the total size of Files.
	Bytes int64

	// SpriteWidth and SpriteHeight are the frame size after cropping.
	SpriteWidth, SpriteHeight int

	// ShiftX and ShiftY are the crop shift in pixels.
	ShiftX, ShiftY float64

	// Layers is the number of subframe layers in split mode, else zero.
	Layers int
}

// UnitResult pairs a source with its outcome or error.
type UnitResult struct {
	Source   string
	Outcome  Outcome
	Err      error
	Duration time.Duration
}

// Failed returns the results that carry an error.
func Failed(results []UnitResult) []UnitResult {
	var out []UnitResult
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

// Succeeded returns the results that produced output.
func Succeeded(results []UnitResult) []UnitResult {
	var out []UnitResult
	for _, r := range results {
		if r.Err == nil && !r.Outcome.Skipped {
			out = append(out, r)
		}
	}
	return out
}

// unitFunc processes one source.
type unitFunc func(ctx context.Context, source string) (Outcome, error)

// runUnits runs fn for every source on at most workers goroutines and
// returns one result per source in input order. Errors are logged and
// recorded, never propagated: one failing unit does not cancel the rest.
func (r *Runner) runUnits(ctx context.Context, command string, sources []string, workers int, fn unitFunc) []UnitResult {
	results := make([]UnitResult, len(sources))

	var g errgroup.Group
	g.SetLimit(max(workers, 1))
	for i, src := range sources {
		g.Go(func() error {
			hooks := observability.Pipeline()
			hooks.OnUnitStart(ctx, command, src)

			start := time.Now()
			out, err := fn(ctx, src)
			elapsed := time.Since(start)

			hooks.OnUnitComplete(ctx, command, src, len(out.Files), elapsed, err)
			if err != nil {
				r.Logger.Error("unit failed", "source", src, "err", err)
			}
			results[i] = UnitResult{Source: src, Outcome: out, Err: err, Duration: elapsed}
			return nil
		})
	}
	_ = g.Wait()
	return results
}
