package pool

import (
	"math"
	"unsafe"

	"github.com/ajitpratap0/arena/pkg/arenaerrors"
)

// maxBlockBytes bounds a single reservation at 1 TiB, or math.MaxInt on
// 32-bit platforms. Requests above it are reported as ErrReserveFailed
// instead of reaching make, which panics on lengths it cannot represent.
// Running out of heap below the limit is fatal to the process and is not
// reported.
const maxBlockBytes uint64 = min(1<<40, math.MaxInt)

// block is the backing storage of one allocator generation. It is acquired
// for a fixed number of elements and released as a whole; there is no other
// way to obtain or free its memory.
type block[T any] struct {
	elems []T
}

// acquireBlock reserves storage for exactly capacity elements of T.
func acquireBlock[T any](capacity uint) (*block[T], error) {
	size := elemSize[T]()
	if size > 0 && uint64(capacity) > maxBlockBytes/uint64(size) {
		return nil, reserveError(capacity, size, "block exceeds reservation limit")
	}
	return &block[T]{elems: make([]T, capacity)}, nil
}

func reserveError(capacity uint, size uintptr, reason string) error {
	return arenaerrors.Wrap(ErrReserveFailed, arenaerrors.ErrorTypeResource, reason).
		WithDetail("capacity", capacity).
		WithDetail("elem_size", size)
}

// release drops the storage. A block is released exactly once.
func (b *block[T]) release() {
	if b.elems == nil {
		panic("pool: block released twice")
	}
	b.elems = nil
}

// slice returns elements [off, off+n) with the capacity clipped to n so
// that appends on the result cannot spill into neighbouring allocations.
func (b *block[T]) slice(off, n uint) []T {
	return b.elems[off : off+n : off+n]
}

// offset reports where p starts inside the block, in elements, and whether
// p lies entirely within the first limit elements.
func (b *block[T]) offset(p []T, limit uint) (uint, bool) {
	if len(b.elems) == 0 || len(p) == 0 {
		return 0, false
	}

	size := unsafe.Sizeof(b.elems[0])
	if size == 0 {
		// zero-size elements share a single address
		return 0, uint(len(p)) <= limit
	}

	base := uintptr(unsafe.Pointer(unsafe.SliceData(b.elems)))
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(p)))
	if addr < base || (addr-base)%size != 0 {
		return 0, false
	}

	off := uint((addr - base) / size)
	if off >= limit || uint(len(p)) > limit-off {
		return 0, false
	}
	return off, true
}

func elemSize[T any]() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}
