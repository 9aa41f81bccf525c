// Package wazero runs the SymEngine wasm build inside the wazero runtime and
// exposes it as a symengine.Engine.
//
// The module is instantiated with two host-side imports: WASI preview1 for
// the wasi-libc pieces of the guest, and the "env" allocator bridge that
// satisfies every malloc/free/calloc/realloc the engine performs (the guest
// ships without an allocator of its own; see the internal/alloc package).
package wazero

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"github.com/symwasm/symwasm/internal/alloc"
	"github.com/symwasm/symwasm/symengine"
)

// EngineConfig holds configuration for the wasm-backed engine.
type EngineConfig struct {
	// ModuleName names the guest instance (default: "symengine").
	ModuleName string

	// StartFunction is the reactor initializer to run after instantiation
	// (default: "_initialize"). Empty disables it.
	StartFunction string

	// MaxHeapBytes caps the allocator bridge's managed region. Zero means
	// unbounded up to the runtime's memory limit.
	MaxHeapBytes uint32

	// MemoryLimitPages caps the guest's linear memory in 64KiB pages.
	// Zero keeps wazero's default limit.
	MemoryLimitPages uint32

	// Logger receives instantiation and lifecycle events. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// EngineOption configures the engine.
type EngineOption func(*EngineConfig)

// WithModuleName sets the guest instance name.
func WithModuleName(name string) EngineOption {
	return func(c *EngineConfig) { c.ModuleName = name }
}

// WithStartFunction overrides the reactor initializer. Pass "" for modules
// without one.
func WithStartFunction(name string) EngineOption {
	return func(c *EngineConfig) { c.StartFunction = name }
}

// WithMaxHeapBytes caps the allocator bridge's managed region.
func WithMaxHeapBytes(n uint32) EngineOption {
	return func(c *EngineConfig) { c.MaxHeapBytes = n }
}

// WithMemoryLimitPages caps the guest's linear memory.
func WithMemoryLimitPages(pages uint32) EngineOption {
	return func(c *EngineConfig) { c.MemoryLimitPages = pages }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(c *EngineConfig) { c.Logger = l }
}

func defaultEngineConfig() EngineConfig {
	return EngineConfig{
		ModuleName:    "symengine",
		StartFunction: "_initialize",
	}
}

// Engine is a symengine.Engine dispatching into a wasm module instance.
//
// All calls are synchronous and run on the caller's goroutine with the
// context captured at construction; native calls are not interruptible, so
// there is no per-call context. Engine is not safe for concurrent use.
type Engine struct {
	runtime wazero.Runtime
	module  api.Module
	bridge  *alloc.Bridge
	ctx     context.Context
	log     *slog.Logger
}

var _ symengine.Engine = (*Engine)(nil)

// NewEngine compiles and instantiates the SymEngine wasm binary.
func NewEngine(ctx context.Context, wasm []byte, opts ...EngineOption) (*Engine, error) {
	cfg := defaultEngineConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	rcfg := wazero.NewRuntimeConfig()
	if cfg.MemoryLimitPages > 0 {
		rcfg = rcfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}
	r := wazero.NewRuntimeWithConfig(ctx, rcfg)

	if _, err := wasi_snapshot_preview1.Instantiate(ctx, r); err != nil {
		r.Close(ctx)
		return nil, fmt.Errorf("wazero: instantiating WASI: %w", err)
	}

	var heapOpts []alloc.HeapOption
	if cfg.MaxHeapBytes > 0 {
		heapOpts = append(heapOpts, alloc.WithMaxBytes(cfg.MaxHeapBytes))
	}
	bridge := alloc.NewBridge(alloc.NewHeap(heapOpts...))
	if _, err := alloc.Instantiate(ctx, r, bridge); err != nil {
		r.Close(ctx)
		return nil, fmt.Errorf("wazero: instantiating allocator bridge: %w", err)
	}

	mcfg := wazero.NewModuleConfig().WithName(cfg.ModuleName)
	if cfg.StartFunction != "" {
		mcfg = mcfg.WithStartFunctions(cfg.StartFunction)
	} else {
		mcfg = mcfg.WithStartFunctions()
	}
	mod, err := r.InstantiateWithConfig(ctx, wasm, mcfg)
	if err != nil {
		r.Close(ctx)
		return nil, fmt.Errorf("wazero: instantiating %s: %w", cfg.ModuleName, err)
	}

	// Host-initiated allocations (argument strings) must work even if the
	// guest has not called into the bridge yet. No-op if already bound.
	bridge.Bind(mod.Memory())

	cfg.Logger.InfoContext(ctx, "wazero: engine module instantiated",
		"module", cfg.ModuleName, "memory_bytes", mod.Memory().Size())

	return &Engine{
		runtime: r,
		module:  mod,
		bridge:  bridge,
		ctx:     ctx,
		log:     cfg.Logger,
	}, nil
}

// Call implements symengine.Engine.
func (e *Engine) Call(symbol string, args ...uint64) (uint64, error) {
	fn := e.module.ExportedFunction(symbol)
	if fn == nil {
		return 0, fmt.Errorf("wazero: module %s does not export %q", e.module.Name(), symbol)
	}
	results, err := fn.Call(e.ctx, args...)
	if err != nil {
		// A trap here means the failure crossed the boundary as a crash
		// instead of a status code; record it before converting.
		e.log.ErrorContext(e.ctx, "wazero: native call trapped", "symbol", symbol, "error", err)
		return 0, fmt.Errorf("wazero: calling %s: %w", symbol, err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0], nil
}

// NewString implements symengine.Engine: it copies s into guest memory as a
// NUL-terminated C string allocated through the bridge, so the engine's own
// free can release it if ownership is handed over.
func (e *Engine) NewString(s string) (symengine.Ptr, error) {
	n := uint32(len(s)) + 1
	ptr := e.bridge.Malloc(n)
	if ptr == 0 {
		return 0, fmt.Errorf("wazero: allocating %d bytes for string", n)
	}
	buf := append([]byte(s), 0)
	if !e.module.Memory().Write(ptr, buf) {
		e.bridge.Free(ptr)
		return 0, fmt.Errorf("wazero: writing string at %#x", ptr)
	}
	return ptr, nil
}

// FreeString implements symengine.Engine.
func (e *Engine) FreeString(ptr symengine.Ptr) {
	e.bridge.Free(ptr)
}

// readChunk is the step size when scanning for a C string's terminator.
const readChunk = 256

// ReadString implements symengine.Engine.
func (e *Engine) ReadString(ptr symengine.Ptr) (string, error) {
	mem := e.module.Memory()
	var out []byte
	off := ptr
	for {
		size := mem.Size()
		if off >= size {
			return "", fmt.Errorf("wazero: unterminated string at %#x", ptr)
		}
		n := uint32(readChunk)
		if size-off < n {
			n = size - off
		}
		chunk, ok := mem.Read(off, n)
		if !ok {
			return "", fmt.Errorf("wazero: reading string at %#x", ptr)
		}
		for i, b := range chunk {
			if b == 0 {
				return string(append(out, chunk[:i]...)), nil
			}
		}
		out = append(out, chunk...)
		off += n
	}
}

// Bridge exposes the allocator bridge for accounting.
func (e *Engine) Bridge() *alloc.Bridge {
	return e.bridge
}

// Close shuts the runtime down, releasing the guest instance and all host
// modules.
func (e *Engine) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}
