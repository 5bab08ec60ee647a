// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks at
// startup to receive events about gallery generation and verification.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnGenerateStart(ctx, gallery)
//	// ... scan, build, render, write ...
//	observability.Pipeline().OnWriteComplete(ctx, gallery, path, size, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from gallery generation.
type PipelineHooks interface {
	OnGenerateStart(ctx context.Context, gallery string)

	// OnScanComplete fires after source images were enumerated.
	OnScanComplete(ctx context.Context, gallery string, sources int, duration time.Duration, err error)

	// OnBuildComplete fires after variants were resolved for every row.
	OnBuildComplete(ctx context.Context, gallery string, rows, resolved, absent int, duration time.Duration, err error)

	// OnRenderComplete fires after the document was rendered in memory.
	OnRenderComplete(ctx context.Context, gallery string, size int, duration time.Duration, err error)

	// OnWriteComplete fires after the document was written (or failed to be).
	OnWriteComplete(ctx context.Context, gallery, path string, size int, duration time.Duration, err error)
}

// =============================================================================
// Verify Hooks
// =============================================================================

// VerifyHooks receives events from gallery verification.
type VerifyHooks interface {
	OnVerifyComplete(ctx context.Context, path string, images, missing int, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnGenerateStart(context.Context, string)                            {}
func (NoopPipelineHooks) OnScanComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, string, int, int, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnWriteComplete(context.Context, string, string, int, time.Duration, error) {
}

// NoopVerifyHooks is a no-op implementation of VerifyHooks.
type NoopVerifyHooks struct{}

func (NoopVerifyHooks) OnVerifyComplete(context.Context, string, int, int, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	verifyHooks   VerifyHooks   = NoopVerifyHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any generation.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetVerifyHooks registers custom verify hooks.
func SetVerifyHooks(h VerifyHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		verifyHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Verify returns the registered verify hooks.
func Verify() VerifyHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return verifyHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	verifyHooks = NoopVerifyHooks{}
}
