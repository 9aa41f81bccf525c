package alloc

import "math"

// HeaderSize is the bookkeeping prefix of every allocated block. The usable
// size is stamped into the first 8 bytes; the full 16 keep the pointer after
// the header on the engine's required alignment. Free and Realloc read the
// stamp back to reconstruct the original allocation without any host-side
// size table.
const HeaderSize = 16

// Bridge implements the four C allocation primitives on top of a Heap, with
// standard libc edge semantics: malloc(0) and exhausted memory return the
// null pointer, free(NULL) is a no-op, calloc rejects multiplication
// overflow, and realloc degenerates to malloc or free at its null/zero edges.
//
// Allocation failure is always reported as null, matching the failure signal
// the native engine expects from its libc. The bridge never panics on
// exhaustion.
//
// A double free is undefined behavior propagated from the native side; the
// bridge does not defend against it.
type Bridge struct {
	heap *Heap
}

// NewBridge creates a Bridge over the given heap.
func NewBridge(heap *Heap) *Bridge {
	return &Bridge{heap: heap}
}

// Bind attaches the underlying heap to a linear memory. See Heap.Bind.
func (b *Bridge) Bind(mem Memory) {
	b.heap.Bind(mem)
}

// Heap exposes the underlying heap, primarily for accounting in tests and
// for the engine adapter to allocate argument strings through the same books.
func (b *Bridge) Heap() *Heap {
	return b.heap
}

// Malloc allocates size usable bytes and returns the guest offset just past
// the block header, or 0 on size 0 or exhaustion.
func (b *Bridge) Malloc(size uint32) uint32 {
	if size == 0 || size > math.MaxUint32-HeaderSize {
		return 0
	}
	raw := b.heap.Alloc(size + HeaderSize)
	if raw == 0 {
		return 0
	}
	if !b.heap.Memory().WriteUint64Le(raw, uint64(size)) {
		b.heap.Free(raw, size+HeaderSize)
		return 0
	}
	return raw + HeaderSize
}

// Free releases a block previously returned by Malloc, Calloc or Realloc.
// Free(0) is a no-op.
func (b *Bridge) Free(ptr uint32) {
	if ptr == 0 {
		return
	}
	raw := ptr - HeaderSize
	size, ok := b.heap.Memory().ReadUint64Le(raw)
	if !ok {
		return
	}
	b.heap.Free(raw, uint32(size)+HeaderSize)
}

// Calloc allocates a zero-filled block of nmemb*size bytes. A product of zero
// or one that overflows the 32-bit size type yields null.
func (b *Bridge) Calloc(nmemb, size uint32) uint32 {
	total := uint64(nmemb) * uint64(size)
	if total == 0 || total > math.MaxUint32-HeaderSize {
		return 0
	}
	ptr := b.Malloc(uint32(total))
	if ptr == 0 {
		return 0
	}
	if !b.heap.Memory().Write(ptr, make([]byte, total)) {
		b.Free(ptr)
		return 0
	}
	return ptr
}

// Realloc resizes the block at ptr to newSize usable bytes. Realloc(0, n)
// behaves as Malloc(n); Realloc(p, 0) frees p and returns null. The returned
// block carries the old contents up to the smaller of the two sizes and has
// newSize stamped in its header.
func (b *Bridge) Realloc(ptr, newSize uint32) uint32 {
	if ptr == 0 {
		return b.Malloc(newSize)
	}
	if newSize == 0 {
		b.Free(ptr)
		return 0
	}
	mem := b.heap.Memory()
	oldSize64, ok := mem.ReadUint64Le(ptr - HeaderSize)
	if !ok {
		return 0
	}
	oldSize := uint32(oldSize64)

	newPtr := b.Malloc(newSize)
	if newPtr == 0 {
		return 0
	}
	n := oldSize
	if newSize < n {
		n = newSize
	}
	data, ok := mem.Read(ptr, n)
	if !ok || !mem.Write(newPtr, data) {
		b.Free(newPtr)
		return 0
	}
	b.Free(ptr)
	return newPtr
}

// UsableSize reports the size stamped in the header of an allocated block.
func (b *Bridge) UsableSize(ptr uint32) (uint32, bool) {
	if ptr == 0 {
		return 0, false
	}
	size, ok := b.heap.Memory().ReadUint64Le(ptr - HeaderSize)
	return uint32(size), ok
}
