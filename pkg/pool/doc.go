// Package pool implements a fixed-capacity, monotonic pool allocator used as
// the node store of the arena containers.
//
// # Architecture
//
// An Allocator[T] is a bump arena bounded to a capacity of N elements of T.
// It reserves one block for all N elements on the first allocation of a
// generation, hands out consecutive sub-slices of that block, and counts
// outstanding elements. Returned elements are never recycled on their own;
// when the outstanding count drops back to zero the block is released and
// the allocator starts over at offset 0 on the next request.
//
// Offsets and exhaustion follow the bump cursor, not the outstanding count.
// After a partial release the next element is placed after the last one
// handed out, and a request fails once the cursor cannot fit it, even if
// the outstanding count plus the request is within capacity. With N = 3,
// allocating 3 and releasing 1 leaves Available at 0 until the other two
// are returned. Live elements are never aliased by a later allocation.
//
// Core types:
//
//   - Allocator[T]: the arena, with Allocate/Deallocate and Construct/Destroy
//   - Rebind: derives an independent Allocator[U] with the same capacity
//   - Observer: lifecycle hooks used by the metrics package
//   - Stats: counters for monitoring and leak detection
//
// # Rebinding
//
// Containers accept an allocator for their element type and rebind it to
// their internal node type:
//
//	ints := pool.New[int](5)
//	nodes := pool.Rebind[node[int]](ints)
//
// The rebound allocator does not share capacity with its source. Both can
// hold N elements of their own type, so the exhaustion point of a container
// is N nodes no matter how the source allocator is used.
//
// # Usage Patterns
//
//	alloc := pool.New[int32](10, pool.WithLogger(logger.Get()))
//	s, err := alloc.Allocate(4)
//	if err != nil {
//		if pool.IsExhausted(err) {
//			// pick a larger capacity
//		}
//		return err
//	}
//	defer alloc.Deallocate(s)
//
// # Failure Modes
//
// Allocate is the only operation that returns errors. A request that does
// not fit in the rest of the generation fails with ErrAllocationExhausted;
// a block that cannot be reserved fails with ErrReserveFailed. Misuse of
// Deallocate (foreign storage, returning more than is outstanding) panics.
//
// # Concurrency
//
// Allocators are single-owner objects and perform no locking.
package pool
