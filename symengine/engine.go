// Package symengine wraps the SymEngine symbolic-mathematics engine behind
// owning Go handles.
//
// The engine itself is opaque: parsing, simplification, differentiation and
// every other algorithm run inside the native library, reached through an
// Engine. This package only guarantees the boundary: each native object is
// owned by exactly one handle, released exactly once on Close, and never used
// after release. Transient native collections (vectors, sets, maps of
// expressions) are created, unpacked and released inside a single call and
// never escape to the caller.
//
// Execution is single-threaded and synchronous; no handle may be shared
// across concurrent callers.
package symengine

// Ptr is an opaque reference to a native object in the guest's linear memory.
type Ptr = uint32

// Engine is the capability set the wrapper needs from a SymEngine instance.
// The production implementation dispatches into a wasm module (see the
// wazero infrastructure package); tests substitute an accounting fake.
type Engine interface {
	// Call invokes a native function by its cwrapper symbol. Arguments and
	// the single result travel as raw 64-bit stack words in wazero's
	// encoding (pointers and integers zero-extended, float64 via its bit
	// pattern). Functions without a result yield 0. A native trap is
	// returned as an error.
	Call(symbol string, args ...uint64) (uint64, error)

	// NewString copies s into guest memory as a NUL-terminated C string
	// allocated through the allocator bridge. The caller must release it
	// with FreeString.
	NewString(s string) (Ptr, error)

	// FreeString releases a string created by NewString.
	FreeString(ptr Ptr)

	// ReadString reads the NUL-terminated C string at ptr.
	ReadString(ptr Ptr) (string, error)
}

// Version returns the native engine's version string.
func Version(eng Engine) (string, error) {
	ptr, err := eng.Call("symengine_version")
	if err != nil {
		return "", err
	}
	// The version string is a static, engine-owned buffer; it is not freed.
	return eng.ReadString(Ptr(ptr))
}
