// Package ordered provides a sorted map whose tree nodes are drawn from a
// fixed-capacity pool allocator.
//
// Map is an AVL tree. It is constructed from a pool.Allocator for its
// key/value pair type and rebinds that allocator to its internal node type,
// so a map built on an allocator of capacity N holds at most N entries.
// Inserting an existing key keeps the stored value and allocates nothing.
package ordered

import (
	"cmp"
	"fmt"
	"io"
	"iter"

	"github.com/ajitpratap0/arena/pkg/pool"
	stringpool "github.com/ajitpratap0/arena/pkg/strings"
)

// Pair is the element type a Map is parameterized with.
type Pair[K cmp.Ordered, V any] struct {
	Key   K
	Value V
}

type node[K cmp.Ordered, V any] struct {
	left, right *node[K, V]
	height      int
	pair        Pair[K, V]
}

// Map is an ordered map with pooled nodes. It is not safe for concurrent use.
type Map[K cmp.Ordered, V any] struct {
	root   *node[K, V]
	length int
	nodes  *pool.Allocator[node[K, V]]
}

// New creates an empty map whose nodes come from alloc rebound to the
// map's node type. alloc must not be nil.
func New[K cmp.Ordered, V any](alloc *pool.Allocator[Pair[K, V]]) *Map[K, V] {
	return &Map[K, V]{
		nodes: pool.Rebind[node[K, V]](alloc),
	}
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return m.length
}

// Insert adds k with value v if k is absent and reports whether it did.
// An existing key keeps its value. When the node allocator is exhausted the
// allocator's error is returned and the map is unchanged.
func (m *Map[K, V]) Insert(k K, v V) (bool, error) {
	if m.find(k) != nil {
		return false, nil
	}

	n, err := m.nodes.AllocateOne()
	if err != nil {
		return false, err
	}
	m.nodes.Construct(n, node[K, V]{height: 1, pair: Pair[K, V]{Key: k, Value: v}})

	m.root = insert(m.root, n)
	m.length++
	return true, nil
}

// Get returns the value stored for k.
func (m *Map[K, V]) Get(k K) (V, bool) {
	if n := m.find(k); n != nil {
		return n.pair.Value, true
	}
	var zero V
	return zero, false
}

// Contains reports whether k is present.
func (m *Map[K, V]) Contains(k K) bool {
	return m.find(k) != nil
}

// Min returns the entry with the smallest key.
func (m *Map[K, V]) Min() (Pair[K, V], bool) {
	if m.root == nil {
		return Pair[K, V]{}, false
	}
	n := m.root
	for n.left != nil {
		n = n.left
	}
	return n.pair, true
}

// All iterates over the entries in ascending key order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		var stack []*node[K, V]
		n := m.root
		for n != nil || len(stack) > 0 {
			for n != nil {
				stack = append(stack, n)
				n = n.left
			}
			n = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(n.pair.Key, n.pair.Value) {
				return
			}
			n = n.right
		}
	}
}

// Print writes one "Key: <k> Value: <v>" line per entry in key order.
func (m *Map[K, V]) Print(w io.Writer) error {
	b := stringpool.GetBuilder(stringpool.Small)
	defer stringpool.PutBuilder(b, stringpool.Small)

	for k, v := range m.All() {
		b.Reset()
		fmt.Fprintf(b, "Key: %v Value: %v\n", k, v)
		if _, err := w.Write(b.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

// Close destroys every node and returns it to the node allocator. The map
// is empty afterwards and may be reused.
func (m *Map[K, V]) Close() {
	m.release(m.root)
	m.root = nil
	m.length = 0
}

// Stats returns the node allocator statistics.
func (m *Map[K, V]) Stats() pool.Stats {
	return m.nodes.Stats()
}

func (m *Map[K, V]) release(n *node[K, V]) {
	if n == nil {
		return
	}
	left, right := n.left, n.right
	m.release(left)
	m.release(right)
	m.nodes.Destroy(n)
	m.nodes.DeallocateOne(n)
}

func (m *Map[K, V]) find(k K) *node[K, V] {
	n := m.root
	for n != nil {
		switch c := cmp.Compare(k, n.pair.Key); {
		case c < 0:
			n = n.left
		case c > 0:
			n = n.right
		default:
			return n
		}
	}
	return nil
}

func insert[K cmp.Ordered, V any](t, n *node[K, V]) *node[K, V] {
	if t == nil {
		return n
	}
	if cmp.Less(n.pair.Key, t.pair.Key) {
		t.left = insert(t.left, n)
	} else {
		t.right = insert(t.right, n)
	}
	return rebalance(t)
}

func height[K cmp.Ordered, V any](n *node[K, V]) int {
	if n == nil {
		return 0
	}
	return n.height
}

func fix[K cmp.Ordered, V any](n *node[K, V]) {
	n.height = 1 + max(height(n.left), height(n.right))
}

func rotateRight[K cmp.Ordered, V any](y *node[K, V]) *node[K, V] {
	x := y.left
	y.left = x.right
	x.right = y
	fix(y)
	fix(x)
	return x
}

func rotateLeft[K cmp.Ordered, V any](x *node[K, V]) *node[K, V] {
	y := x.right
	x.right = y.left
	y.left = x
	fix(x)
	fix(y)
	return y
}

func rebalance[K cmp.Ordered, V any](n *node[K, V]) *node[K, V] {
	fix(n)
	switch balance := height(n.left) - height(n.right); {
	case balance > 1:
		if height(n.left.left) < height(n.left.right) {
			n.left = rotateLeft(n.left)
		}
		return rotateRight(n)
	case balance < -1:
		if height(n.right.right) < height(n.right.left) {
			n.right = rotateRight(n.right)
		}
		return rotateLeft(n)
	}
	return n
}
