package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnUnitStart(ctx, "spritesheet", "assets/explosion")
	p.OnUnitComplete(ctx, "spritesheet", "assets/explosion", 3, time.Second, nil)

	o := NoopOutputHooks{}
	o.OnSheetsSaved(ctx, 3, 4096)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Output().(NoopOutputHooks); !ok {
		t.Error("Output() should return NoopOutputHooks by default")
	}

	customPipeline := &recordingHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customOutput := &recordingHooks{}
	SetOutputHooks(customOutput)
	if Output() != customOutput {
		t.Error("SetOutputHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
	if _, ok := Output().(NoopOutputHooks); !ok {
		t.Error("Reset() should restore NoopOutputHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &recordingHooks{}
	SetPipelineHooks(custom)
	SetOutputHooks(custom)

	SetPipelineHooks(nil)
	SetOutputHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}
	if Output() != custom {
		t.Error("SetOutputHooks(nil) should be ignored")
	}
}

func TestRegisteredHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	rec := &recordingHooks{}
	SetPipelineHooks(rec)
	SetOutputHooks(rec)

	ctx := context.Background()
	failure := errors.New("boom")
	Pipeline().OnUnitStart(ctx, "icon", "icons")
	Pipeline().OnUnitComplete(ctx, "icon", "icons", 1, time.Millisecond, failure)
	Output().OnSheetsSaved(ctx, 2, 100)

	if rec.started != 1 || rec.completed != 1 {
		t.Errorf("started/completed = %d/%d, want 1/1", rec.started, rec.completed)
	}
	if rec.lastErr != failure {
		t.Errorf("lastErr = %v, want %v", rec.lastErr, failure)
	}
	if rec.bytes != 100 {
		t.Errorf("bytes = %d, want 100", rec.bytes)
	}
}

type recordingHooks struct {
	started, completed int
	lastErr            error
	bytes              int64
}

func (r *recordingHooks) OnUnitStart(context.Context, string, string) { r.started++ }
func (r *recordingHooks) OnUnitComplete(_ context.Context, _, _ string, _ int, _ time.Duration, err error) {
	r.completed++
	r.lastErr = err
}
func (r *recordingHooks) OnSheetsSaved(_ context.Context, _ int, bytes int64) { r.bytes += bytes }
