// Package list implements an append-only singly-linked list whose nodes live
// in a fixed-capacity pool allocator.
//
// The list owns every node it creates. Nodes are allocated one at a time
// from an allocator rebound to the node type, so a list built from a
// pool.Allocator[T] of capacity N holds at most N values. Close destroys and
// returns every node, which ends the allocator's generation.
//
// Example:
//
//	l := list.New(pool.New[int](5))
//	defer l.Close()
//	for i := range 5 {
//	    if err := l.PushBack(i); err != nil {
//	        return err
//	    }
//	}
package list

import (
	"fmt"
	"io"
	"iter"

	"github.com/ajitpratap0/arena/pkg/pool"
	stringpool "github.com/ajitpratap0/arena/pkg/strings"
)

type node[T any] struct {
	next  *node[T]
	value T
}

// List is a singly-linked list with pooled nodes. The zero value is not
// usable; create lists with New.
type List[T any] struct {
	first  *node[T]
	last   *node[T]
	length int
	nodes  *pool.Allocator[node[T]]
}

// New creates an empty list drawing its nodes from alloc rebound to the
// list's node type. alloc itself is not used for node storage and must not
// be nil.
func New[T any](alloc *pool.Allocator[T]) *List[T] {
	return &List[T]{
		nodes: pool.Rebind[node[T]](alloc),
	}
}

// IsEmpty reports whether the list has no nodes.
func (l *List[T]) IsEmpty() bool {
	return l.first == nil
}

// Len returns the number of values in the list.
func (l *List[T]) Len() int {
	return l.length
}

// PushBack appends v as the new tail. When the node allocator is exhausted
// the allocator's error is returned and the list is unchanged.
func (l *List[T]) PushBack(v T) error {
	n, err := l.nodes.AllocateOne()
	if err != nil {
		return err
	}
	l.nodes.Construct(n, node[T]{value: v})

	if l.last == nil {
		l.first = n
	} else {
		l.last.next = n
	}
	l.last = n
	l.length++
	return nil
}

// All iterates over the list from head to tail, yielding the position and
// value of each node.
func (l *List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		i := 0
		for n := l.first; n != nil; n = n.next {
			if !yield(i, n.value) {
				return
			}
			i++
		}
	}
}

// Values returns the values in insertion order.
func (l *List[T]) Values() []T {
	out := make([]T, 0, l.length)
	for _, v := range l.All() {
		out = append(out, v)
	}
	return out
}

// Print writes one "<n>. Value: <v>" line per node, numbered from 1.
func (l *List[T]) Print(w io.Writer) error {
	b := stringpool.GetBuilder(stringpool.Small)
	defer stringpool.PutBuilder(b, stringpool.Small)

	for i, v := range l.All() {
		b.Reset()
		fmt.Fprintf(b, "%d. Value: %v\n", i+1, v)
		if _, err := w.Write(b.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

// Close destroys every node in order and returns it to the node allocator.
// The list is empty afterwards and may be reused.
func (l *List[T]) Close() {
	n := l.first
	for n != nil {
		next := n.next
		l.nodes.Destroy(n)
		l.nodes.DeallocateOne(n)
		n = next
	}
	l.first, l.last = nil, nil
	l.length = 0
}

// Stats returns the node allocator statistics.
func (l *List[T]) Stats() pool.Stats {
	return l.nodes.Stats()
}
