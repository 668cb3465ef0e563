// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries emit events through the registered hooks; the binaries decide
// what to do with them. Defaults are no-ops, so library code never depends
// on an observability backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPluginHooks(&myPluginHooks{})
//	    observability.SetGraphHooks(&myGraphHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Plugin().OnApplyStart(ctx, "Export image")
//	// ... run the plugin ...
//	observability.Plugin().OnApplyComplete(ctx, "Export image", duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Plugin Hooks
// =============================================================================

// PluginHooks receives events from plugin execution.
type PluginHooks interface {
	// OnApplyStart records the start of a plugin run.
	OnApplyStart(ctx context.Context, plugin string)

	// OnApplyComplete records the end of a plugin run; err is nil on success.
	OnApplyComplete(ctx context.Context, plugin string, duration time.Duration, err error)
}

// =============================================================================
// Graph Hooks
// =============================================================================

// GraphHooks receives events from graph file operations.
type GraphHooks interface {
	// OnGraphLoad records a graph file being read.
	OnGraphLoad(ctx context.Context, path string, nodeCount, edgeCount int, duration time.Duration, err error)

	// OnGraphSave records a graph file being written.
	OnGraphSave(ctx context.Context, path string, nodeCount, edgeCount int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPluginHooks is a no-op implementation of PluginHooks.
type NoopPluginHooks struct{}

func (NoopPluginHooks) OnApplyStart(context.Context, string)                         {}
func (NoopPluginHooks) OnApplyComplete(context.Context, string, time.Duration, error) {}

// NoopGraphHooks is a no-op implementation of GraphHooks.
type NoopGraphHooks struct{}

func (NoopGraphHooks) OnGraphLoad(context.Context, string, int, int, time.Duration, error) {}
func (NoopGraphHooks) OnGraphSave(context.Context, string, int, int, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pluginHooks PluginHooks = NoopPluginHooks{}
	graphHooks  GraphHooks  = NoopGraphHooks{}
	hooksMu     sync.RWMutex
)

// SetPluginHooks registers custom plugin hooks.
// This should be called once at application startup before any plugin runs.
func SetPluginHooks(h PluginHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pluginHooks = h
	}
}

// SetGraphHooks registers custom graph hooks.
// This should be called once at application startup before any graph is loaded.
func SetGraphHooks(h GraphHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		graphHooks = h
	}
}

// Plugin returns the registered plugin hooks.
func Plugin() PluginHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pluginHooks
}

// Graph returns the registered graph hooks.
func Graph() GraphHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return graphHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pluginHooks = NoopPluginHooks{}
	graphHooks = NoopGraphHooks{}
}
