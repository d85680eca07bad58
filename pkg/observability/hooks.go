// Package observability provides hooks for metrics and tracing.
//
// Hooks let a host program observe sheet generation without the pipeline
// depending on any metrics backend. Everything is a no-op until a program
// registers its own implementation at startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetOutputHooks(&myOutputHooks{})
//	    // ... run commands
//	}
//
// The pipeline emits events around each unit of work, where a unit is one
// source directory (or file) processed by one command:
//
//	observability.Pipeline().OnUnitStart(ctx, "spritesheet", source)
//	// ... crop, layout, save ...
//	observability.Pipeline().OnUnitComplete(ctx, "spritesheet", source, sheets, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives per-unit events from the pipeline runner.
type PipelineHooks interface {
	OnUnitStart(ctx context.Context, command, source string)
	OnUnitComplete(ctx context.Context, command, source string, sheets int, duration time.Duration, err error)
}

// =============================================================================
// Output Hooks
// =============================================================================

// OutputHooks receives events when files are written.
type OutputHooks interface {
	// OnSheetsSaved records a batch of encoded images and their total size.
	OnSheetsSaved(ctx context.Context, count int, bytes int64)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnUnitStart(context.Context, string, string) {}
func (NoopPipelineHooks) OnUnitComplete(context.Context, string, string, int, time.Duration, error) {
}

// NoopOutputHooks is a no-op implementation of OutputHooks.
type NoopOutputHooks struct{}

func (NoopOutputHooks) OnSheetsSaved(context.Context, int, int64) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	outputHooks   OutputHooks   = NoopOutputHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks. Nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetOutputHooks registers custom output hooks. Nil is ignored.
func SetOutputHooks(h OutputHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		outputHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Output returns the registered output hooks.
func Output() OutputHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return outputHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	outputHooks = NoopOutputHooks{}
}
