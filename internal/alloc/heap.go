// Package alloc implements the C allocator the SymEngine wasm build imports.
//
// The guest is linked without an allocator of its own: wasi-libc's dlmalloc is
// stripped from the shipped libc.a so that two allocators never fight over the
// same linear memory. Every malloc/free/calloc/realloc the engine or its
// runtime dependencies perform is therefore satisfied by the host, carving
// blocks out of the guest's linear memory through this package.
package alloc

import "math"

const (
	// pageSize is the WebAssembly linear memory page size.
	pageSize = 64 * 1024

	// blockAlign is the minimum alignment of every block handed to the
	// native engine. SymEngine's runtime assumes malloc results are
	// 16-byte aligned.
	blockAlign = 16
)

// Memory is the subset of wazero's api.Memory the allocator needs.
// wazero module memories satisfy it directly; tests substitute an in-process
// fake.
type Memory interface {
	Size() uint32
	Grow(deltaPages uint32) (previousPages uint32, ok bool)
	ReadUint64Le(offset uint32) (uint64, bool)
	WriteUint64Le(offset uint32, v uint64) bool
	Read(offset, byteCount uint32) ([]byte, bool)
	Write(offset uint32, v []byte) bool
}

// span is a free region of the managed heap, in guest-memory offsets.
type span struct {
	off  uint32
	size uint32
}

// Heap is a first-fit free-list allocator over a region of guest linear
// memory. The managed region begins at the end of memory as it was when the
// heap was bound, so guest data segments and stack below it are never touched,
// and grows by whole pages on demand. All bookkeeping lives host-side in Go;
// only the blocks themselves occupy guest memory.
//
// Heap is not safe for concurrent use. The execution model here is a single
// synchronous context; a multi-threaded port must add locking around every
// method before sharing one Heap.
type Heap struct {
	mem  Memory
	base uint32 // start of the managed region
	next uint32 // high-water mark: first never-allocated offset
	max  uint32 // region cap in bytes, 0 = unbounded
	free []span // sorted by offset, adjacent spans coalesced
}

// HeapOption configures a Heap.
type HeapOption func(*Heap)

// WithMaxBytes caps the managed region at n bytes. Requests beyond the cap
// fail with a null offset instead of growing memory further.
func WithMaxBytes(n uint32) HeapOption {
	return func(h *Heap) {
		h.max = n
	}
}

// NewHeap creates an unbound Heap. It must be bound to a linear memory with
// Bind before the first allocation.
func NewHeap(opts ...HeapOption) *Heap {
	h := &Heap{}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Bind attaches the heap to a linear memory and fixes the managed region's
// base at the current end of that memory. Calls after the first are no-ops,
// which lets host functions bind lazily on every invocation.
func (h *Heap) Bind(mem Memory) {
	if h.mem != nil {
		return
	}
	h.mem = mem
	h.base = alignUp(mem.Size(), blockAlign)
	h.next = h.base
}

// Bound reports whether Bind has been called.
func (h *Heap) Bound() bool {
	return h.mem != nil
}

// Memory returns the bound linear memory, or nil before Bind.
func (h *Heap) Memory() Memory {
	return h.mem
}

// Alloc returns a blockAlign-aligned offset of at least size usable bytes, or
// 0 when the request cannot be satisfied. Size 0 is never requested by the
// bridge; it returns 0 defensively here as well.
func (h *Heap) Alloc(size uint32) uint32 {
	if h.mem == nil || size == 0 {
		return 0
	}
	if size > math.MaxUint32-blockAlign+1 {
		return 0
	}
	need := alignUp(size, blockAlign)

	// First fit from the free list, splitting off the remainder.
	for i := range h.free {
		if h.free[i].size < need {
			continue
		}
		off := h.free[i].off
		if rest := h.free[i].size - need; rest > 0 {
			h.free[i] = span{off: off + need, size: rest}
		} else {
			h.free = append(h.free[:i], h.free[i+1:]...)
		}
		return off
	}

	// Extend the region, growing linear memory if the new end is past it.
	if need > math.MaxUint32-h.next {
		return 0
	}
	end := h.next + need
	if h.max > 0 && end-h.base > h.max {
		return 0
	}
	if cur := h.mem.Size(); end > cur {
		pages := (end - cur + pageSize - 1) / pageSize
		if _, ok := h.mem.Grow(pages); !ok {
			return 0
		}
	}
	off := h.next
	h.next = end
	return off
}

// Free returns the block at off with the given usable size to the free list,
// coalescing with adjacent free spans. The caller must pass the exact size the
// block was allocated with; the bridge reconstructs it from the block header.
func (h *Heap) Free(off, size uint32) {
	if h.mem == nil || off == 0 || size == 0 {
		return
	}
	need := alignUp(size, blockAlign)

	// Insert sorted by offset.
	i := 0
	for i < len(h.free) && h.free[i].off < off {
		i++
	}
	h.free = append(h.free, span{})
	copy(h.free[i+1:], h.free[i:])
	h.free[i] = span{off: off, size: need}

	// Coalesce with the following span, then the preceding one.
	if i+1 < len(h.free) && h.free[i].off+h.free[i].size == h.free[i+1].off {
		h.free[i].size += h.free[i+1].size
		h.free = append(h.free[:i+1], h.free[i+2:]...)
	}
	if i > 0 && h.free[i-1].off+h.free[i-1].size == h.free[i].off {
		h.free[i-1].size += h.free[i].size
		h.free = append(h.free[:i], h.free[i+1:]...)
	}

	// Give the top of the region back to the high-water mark so the heap
	// does not creep upward under alloc/free churn.
	if n := len(h.free); n > 0 && h.free[n-1].off+h.free[n-1].size == h.next {
		h.next = h.free[n-1].off
		h.free = h.free[:n-1]
	}
}

// InUse returns the number of managed bytes currently allocated.
func (h *Heap) InUse() uint32 {
	total := h.next - h.base
	for _, s := range h.free {
		total -= s.size
	}
	return total
}

func alignUp(v, align uint32) uint32 {
	return (v + align - 1) &^ (align - 1)
}
