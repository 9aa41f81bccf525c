package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boundBridge(t *testing.T, opts ...HeapOption) *Bridge {
	t.Helper()
	h, _ := boundHeap(t, opts...)
	return NewBridge(h)
}

func TestBridge_MallocStampsHeader(t *testing.T) {
	b := boundBridge(t)

	for _, size := range []uint32{1, 15, 16, 17, 1000} {
		ptr := b.Malloc(size)
		require.NotZero(t, ptr, "malloc(%d)", size)
		assert.Zero(t, ptr%blockAlign, "malloc(%d) returned unaligned %d", size, ptr)

		got, ok := b.UsableSize(ptr)
		require.True(t, ok)
		assert.Equal(t, size, got, "header must report the requested size")
	}
}

func TestBridge_MallocZero(t *testing.T) {
	b := boundBridge(t)
	assert.Zero(t, b.Malloc(0), "malloc(0) returns null per libc convention")
}

func TestBridge_FreeNullNoop(t *testing.T) {
	b := boundBridge(t)
	b.Free(0) // must not panic or disturb the heap
	assert.Zero(t, b.Heap().InUse())
}

func TestBridge_MallocFreeRoundTrip(t *testing.T) {
	b := boundBridge(t)

	for _, size := range []uint32{1, 16, 255, 4096} {
		ptr := b.Malloc(size)
		require.NotZero(t, ptr)
		b.Free(ptr)
	}
	assert.Zero(t, b.Heap().InUse(), "every malloc must be matched by its free")
}

func TestBridge_CallocZeroFills(t *testing.T) {
	b := boundBridge(t)

	// Dirty the heap first so calloc has something to scrub.
	p := b.Malloc(64)
	require.NotZero(t, p)
	require.True(t, b.Heap().Memory().Write(p, []byte{0xff, 0xff, 0xff, 0xff}))
	b.Free(p)

	ptr := b.Calloc(8, 8)
	require.NotZero(t, ptr)
	data, ok := b.Heap().Memory().Read(ptr, 64)
	require.True(t, ok)
	for i, v := range data {
		require.Zerof(t, v, "byte %d not zeroed", i)
	}

	got, ok := b.UsableSize(ptr)
	require.True(t, ok)
	assert.Equal(t, uint32(64), got)
}

func TestBridge_CallocOverflow(t *testing.T) {
	b := boundBridge(t)
	assert.Zero(t, b.Calloc(1<<31, 4), "nmemb*size overflow must yield null, not wrap")
}

func TestBridge_CallocZeroTotal(t *testing.T) {
	b := boundBridge(t)
	assert.Zero(t, b.Calloc(0, 8))
	assert.Zero(t, b.Calloc(8, 0))
}

func TestBridge_ReallocNullIsMalloc(t *testing.T) {
	b := boundBridge(t)

	ptr := b.Realloc(0, 32)
	require.NotZero(t, ptr)
	got, ok := b.UsableSize(ptr)
	require.True(t, ok)
	assert.Equal(t, uint32(32), got)
}

func TestBridge_ReallocZeroIsFree(t *testing.T) {
	b := boundBridge(t)

	ptr := b.Malloc(32)
	require.NotZero(t, ptr)
	assert.Zero(t, b.Realloc(ptr, 0))
	assert.Zero(t, b.Heap().InUse())
}

func TestBridge_ReallocPreservesContentsAndRestamps(t *testing.T) {
	b := boundBridge(t)
	mem := b.Heap().Memory()

	ptr := b.Malloc(8)
	require.NotZero(t, ptr)
	require.True(t, mem.Write(ptr, []byte("abcdefgh")))

	grown := b.Realloc(ptr, 64)
	require.NotZero(t, grown)
	got, ok := b.UsableSize(grown)
	require.True(t, ok)
	assert.Equal(t, uint32(64), got, "header must report the new size")

	data, ok := mem.Read(grown, 8)
	require.True(t, ok)
	assert.Equal(t, []byte("abcdefgh"), data)

	shrunk := b.Realloc(grown, 4)
	require.NotZero(t, shrunk)
	data, ok = mem.Read(shrunk, 4)
	require.True(t, ok)
	assert.Equal(t, []byte("abcd"), data)

	b.Free(shrunk)
	assert.Zero(t, b.Heap().InUse())
}

func TestBridge_ExhaustionReturnsNull(t *testing.T) {
	b := boundBridge(t, WithMaxBytes(256))

	require.NotZero(t, b.Malloc(64))
	assert.Zero(t, b.Malloc(1<<20), "exhaustion must surface as null, never a panic")
}
