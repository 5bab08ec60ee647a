package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnGenerateStart(ctx, "pattern-viz")
	p.OnScanComplete(ctx, "pattern-viz", 12, time.Millisecond, nil)
	p.OnBuildComplete(ctx, "pattern-viz", 12, 30, 78, time.Millisecond, nil)
	p.OnRenderComplete(ctx, "pattern-viz", 4096, time.Millisecond, nil)
	p.OnWriteComplete(ctx, "pattern-viz", "/data/index.html", 4096, time.Millisecond, nil)

	v := NoopVerifyHooks{}
	v.OnVerifyComplete(ctx, "/data/index.html", 40, 0, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Verify().(NoopVerifyHooks); !ok {
		t.Error("Verify() should return NoopVerifyHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customVerify := &testVerifyHooks{}
	SetVerifyHooks(customVerify)
	if Verify() != customVerify {
		t.Error("SetVerifyHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
	if _, ok := Verify().(NoopVerifyHooks); !ok {
		t.Error("Reset() should restore NoopVerifyHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)

	// Setting nil should be ignored
	SetPipelineHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testPipelineHooks struct{ NoopPipelineHooks }
type testVerifyHooks struct{ NoopVerifyHooks }
