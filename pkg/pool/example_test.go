// Package pool provides example usage of the fixed-capacity allocator.
package pool_test

import (
	"fmt"

	"github.com/ajitpratap0/arena/pkg/pool"
)

// Example demonstrates a full generation: allocate, release, start over.
func Example() {
	alloc := pool.New[int32](3)

	a, _ := alloc.Allocate(2)
	b, _ := alloc.Allocate(1)

	off, _ := alloc.Offset(b)
	fmt.Printf("offset of b: %d\n", off)

	if _, err := alloc.Allocate(1); pool.IsExhausted(err) {
		fmt.Println("exhausted")
	}

	alloc.Deallocate(a)
	alloc.Deallocate(b)
	fmt.Printf("reserved after release: %v\n", alloc.Reserved())

	c, _ := alloc.Allocate(1)
	off, _ = alloc.Offset(c)
	fmt.Printf("generation %d starts at offset %d\n", alloc.Generation(), off)

	// Output:
	// offset of b: 2
	// exhausted
	// reserved after release: false
	// generation 2 starts at offset 0
}

// ExampleRebind shows that a rebound allocator has its own budget.
func ExampleRebind() {
	type entry struct {
		key, value int
	}

	ints := pool.New[int](2, pool.WithName("ints"))
	entries := pool.Rebind[entry](ints)

	_, _ = ints.Allocate(2)
	_, err := entries.Allocate(2)

	fmt.Println(entries.Name())
	fmt.Println(err == nil, entries.Equal(ints))

	// Output:
	// ints/pool_test.entry
	// true false
}
