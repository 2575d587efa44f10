package pool

import (
	"fmt"
	"reflect"
	"sync/atomic"
	"unsafe"

	"go.uber.org/zap"

	"github.com/ajitpratap0/arena/pkg/arenaerrors"
)

// storageIDs hands out storage identities. It is the only shared state in
// the package.
var storageIDs atomic.Uint64

// Storage identifies the block set an allocator draws from. Two allocators
// are interchangeable only when their StorageIDs match.
type Storage interface {
	StorageID() uint64
}

// Allocator is a fixed-capacity bump arena for elements of type T.
//
// The first allocation of a generation reserves a block for the full
// capacity. Allocations advance a cursor through that block and are never
// recycled individually: returning elements only lowers the outstanding
// count, and the block is dropped once that count reaches zero. The next
// allocation after that starts a new generation at offset 0.
//
// An Allocator is not safe for concurrent use.
type Allocator[T any] struct {
	id       uint64
	capacity uint
	opts     options

	block *block[T]
	used  uint // outstanding elements
	next  uint // bump cursor, never below used

	generation    uint64
	allocations   uint64
	deallocations uint64
	exhaustions   uint64
	highWater     uint
}

// New creates an allocator for up to capacity elements of T. No memory is
// reserved until the first allocation.
//
// Example:
//
//	alloc := pool.New[int32](10, pool.WithName("ints"))
//	s, err := alloc.Allocate(1)
//	if pool.IsExhausted(err) {
//	    // capacity reached
//	}
//	defer alloc.Deallocate(s)
func New[T any](capacity uint, opts ...Option) *Allocator[T] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return newAllocator[T](capacity, o)
}

func newAllocator[T any](capacity uint, o options) *Allocator[T] {
	return &Allocator[T]{
		id:       storageIDs.Add(1),
		capacity: capacity,
		opts:     o,
	}
}

// Rebind returns a new, independent allocator for elements of type U with
// the same capacity as a. The result has its own block and its own count,
// so a container that rebinds to its node type gets a full budget of
// capacity nodes regardless of what a has handed out. Name, logger and
// observer are inherited. Rebind panics if a is nil.
func Rebind[U, T any](a *Allocator[T]) *Allocator[U] {
	if a == nil {
		panic("pool: rebind of nil allocator")
	}
	o := a.opts
	o.name = a.opts.name + "/" + reflect.TypeFor[U]().String()
	return newAllocator[U](a.capacity, o)
}

// Allocate returns storage for n contiguous elements. The returned slice has
// length and capacity n and stays valid until it is deallocated or the
// generation ends.
//
// A request that does not fit between the cursor and the capacity fails with
// an error wrapping ErrAllocationExhausted and leaves the allocator untouched.
// Allocate(0) returns nil without reserving anything.
func (a *Allocator[T]) Allocate(n uint) ([]T, error) {
	if n == 0 {
		return nil, nil
	}

	if n > a.capacity-a.next {
		a.exhaustions++
		a.opts.observer.OnExhausted(a.opts.name, n, a.used)
		a.opts.logger.Debug("allocation exhausted",
			zap.String("pool", a.opts.name),
			zap.Uint("requested", n),
			zap.Uint("used", a.used),
			zap.Uint("cursor", a.next),
			zap.Uint("capacity", a.capacity))
		return nil, arenaerrors.Wrap(ErrAllocationExhausted, arenaerrors.ErrorTypeExhausted, "allocate").
			WithDetail("pool", a.opts.name).
			WithDetail("requested", n).
			WithDetail("used", a.used).
			WithDetail("capacity", a.capacity)
	}

	if a.block == nil {
		b, err := acquireBlock[T](a.capacity)
		if err != nil {
			return nil, err
		}
		a.block = b
		a.generation++
		a.opts.observer.OnReserve(a.opts.name, a.capacity, elemSize[T]())
		a.opts.logger.Debug("generation started",
			zap.String("pool", a.opts.name),
			zap.Uint64("generation", a.generation),
			zap.Uint("capacity", a.capacity))
	}

	s := a.block.slice(a.next, n)
	a.next += n
	a.used += n
	a.allocations++
	if a.used > a.highWater {
		a.highWater = a.used
	}
	a.opts.observer.OnAllocate(a.opts.name, n, a.used)
	return s, nil
}

// AllocateOne allocates a single element and returns its address.
func (a *Allocator[T]) AllocateOne() (*T, error) {
	s, err := a.Allocate(1)
	if err != nil {
		return nil, err
	}
	return &s[0], nil
}

// Deallocate returns the elements of p to the allocator. A nil or empty p is
// a no-op. The space is not reused: only the outstanding count drops, and
// when it reaches zero the block is released and the allocator is back in
// its initial state.
//
// Deallocate panics if p was not handed out by the current generation or if
// more elements are returned than are outstanding.
func (a *Allocator[T]) Deallocate(p []T) {
	if len(p) == 0 {
		return
	}

	n := uint(len(p))
	if a.block == nil {
		panic(fmt.Sprintf("pool %s: deallocate of %d elements with no live generation", a.opts.name, n))
	}
	if _, ok := a.block.offset(p, a.next); !ok {
		panic(fmt.Sprintf("pool %s: deallocate of storage not owned by generation %d", a.opts.name, a.generation))
	}
	if n > a.used {
		panic(fmt.Sprintf("pool %s: deallocate of %d elements exceeds %d outstanding", a.opts.name, n, a.used))
	}

	a.used -= n
	a.deallocations++
	a.opts.observer.OnDeallocate(a.opts.name, n, a.used)
	if a.used != 0 {
		return
	}

	a.block.release()
	a.block = nil
	a.next = 0
	a.opts.observer.OnRelease(a.opts.name, a.generation)
	a.opts.logger.Debug("generation released",
		zap.String("pool", a.opts.name),
		zap.Uint64("generation", a.generation))
}

// DeallocateOne returns a single element obtained from AllocateOne.
func (a *Allocator[T]) DeallocateOne(p *T) {
	if p == nil {
		return
	}
	a.Deallocate(unsafe.Slice(p, 1))
}

// Construct initialises the element at p in place.
func (a *Allocator[T]) Construct(p *T, v T) {
	*p = v
}

// Destroy resets the element at p to its zero value so that anything it
// references can be collected. The storage itself stays allocated.
func (a *Allocator[T]) Destroy(p *T) {
	var zero T
	*p = zero
}

// Offset reports the element offset of p within the current block and
// whether p belongs to the live part of it.
func (a *Allocator[T]) Offset(p []T) (uint, bool) {
	if a.block == nil {
		return 0, false
	}
	return a.block.offset(p, a.next)
}

// StorageID implements Storage.
func (a *Allocator[T]) StorageID() uint64 {
	return a.id
}

// Equal reports whether other refers to the same storage as a.
func (a *Allocator[T]) Equal(other Storage) bool {
	return other != nil && a.id == other.StorageID()
}

// Name returns the allocator name used in logs and metrics.
func (a *Allocator[T]) Name() string {
	return a.opts.name
}

// Capacity returns the configured element capacity.
func (a *Allocator[T]) Capacity() uint {
	return a.capacity
}

// Used returns the number of outstanding elements.
func (a *Allocator[T]) Used() uint {
	return a.used
}

// Available returns how many elements can still be allocated in the current
// generation. Released elements do not count until the generation ends.
func (a *Allocator[T]) Available() uint {
	return a.capacity - a.next
}

// Reserved reports whether a block is currently held.
func (a *Allocator[T]) Reserved() bool {
	return a.block != nil
}

// Generation returns the number of generations started so far.
func (a *Allocator[T]) Generation() uint64 {
	return a.generation
}
