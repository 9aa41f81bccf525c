package alloc

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

// ModuleName is the import module under which the SymEngine wasm build
// expects its allocator. The build strips dlmalloc from libc.a, leaving
// malloc and friends as unresolved imports for the host to provide.
const ModuleName = "env"

// Instantiate builds and instantiates the "env" host module exporting malloc,
// free, calloc and realloc, plus the __libc_* aliases wasi-libc internals call
// directly. The bridge binds to the calling module's linear memory on first
// use, so one Bridge must serve exactly one guest instance.
//
// Replacing the guest's allocator is a one-time, process-lifetime side
// effect: there is no teardown beyond closing the returned module.
func Instantiate(ctx context.Context, r wazero.Runtime, b *Bridge) (api.Closer, error) {
	i32 := api.ValueTypeI32

	malloc := api.GoModuleFunc(func(_ context.Context, mod api.Module, stack []uint64) {
		b.Bind(mod.Memory())
		stack[0] = uint64(b.Malloc(uint32(stack[0])))
	})
	free := api.GoModuleFunc(func(_ context.Context, mod api.Module, stack []uint64) {
		b.Bind(mod.Memory())
		b.Free(uint32(stack[0]))
	})
	calloc := api.GoModuleFunc(func(_ context.Context, mod api.Module, stack []uint64) {
		b.Bind(mod.Memory())
		stack[0] = uint64(b.Calloc(uint32(stack[0]), uint32(stack[1])))
	})
	realloc := api.GoModuleFunc(func(_ context.Context, mod api.Module, stack []uint64) {
		b.Bind(mod.Memory())
		stack[0] = uint64(b.Realloc(uint32(stack[0]), uint32(stack[1])))
	})

	builder := r.NewHostModuleBuilder(ModuleName)
	for _, fn := range []struct {
		name    string
		fn      api.GoModuleFunc
		params  []api.ValueType
		results []api.ValueType
	}{
		{"malloc", malloc, []api.ValueType{i32}, []api.ValueType{i32}},
		{"free", free, []api.ValueType{i32}, nil},
		{"calloc", calloc, []api.ValueType{i32, i32}, []api.ValueType{i32}},
		{"realloc", realloc, []api.ValueType{i32, i32}, []api.ValueType{i32}},
		{"__libc_malloc", malloc, []api.ValueType{i32}, []api.ValueType{i32}},
		{"__libc_free", free, []api.ValueType{i32}, nil},
		{"__libc_calloc", calloc, []api.ValueType{i32, i32}, []api.ValueType{i32}},
	} {
		builder.NewFunctionBuilder().
			WithGoModuleFunction(fn.fn, fn.params, fn.results).
			Export(fn.name)
	}
	return builder.Instantiate(ctx)
}
