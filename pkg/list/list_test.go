package list

import (
	"bytes"
	"errors"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/arena/pkg/pool"
)

func factorial(i int) int {
	if i == 0 {
		return 1
	}
	return i * factorial(i-1)
}

// TestList_FactorialsToCapacity fills a five-node list and checks that the
// sixth push is rejected without touching the list.
func TestList_FactorialsToCapacity(t *testing.T) {
	l := New(pool.New[int](5))
	defer l.Close()

	for i := range 5 {
		require.NoError(t, l.PushBack(factorial(i)), "PushBack %d should succeed", i)
	}
	assert.Equal(t, []int{1, 1, 2, 6, 24}, l.Values())

	err := l.PushBack(factorial(5))
	require.Error(t, err, "sixth PushBack should fail")
	assert.True(t, pool.IsExhausted(err))

	assert.Equal(t, []int{1, 1, 2, 6, 24}, l.Values(), "failed push must leave the list unchanged")
	assert.Equal(t, 5, l.Len())
}

func TestList_PreservesInsertionOrder(t *testing.T) {
	words := []string{"delta", "alpha", "charlie", "bravo"}

	l := New(pool.New[string](uint(len(words))))
	defer l.Close()
	assert.True(t, l.IsEmpty())

	for _, w := range words {
		require.NoError(t, l.PushBack(w))
	}
	assert.False(t, l.IsEmpty())

	var got []string
	for i, v := range l.All() {
		assert.Equal(t, len(got), i)
		got = append(got, v)
	}
	assert.Equal(t, words, got)
}

func TestList_AllStopsEarly(t *testing.T) {
	l := New(pool.New[int](4))
	defer l.Close()
	for i := range 4 {
		require.NoError(t, l.PushBack(i))
	}

	var seen []int
	for _, v := range l.All() {
		seen = append(seen, v)
		if v == 1 {
			break
		}
	}
	assert.Equal(t, []int{0, 1}, seen)
}

func TestList_CloseReleasesNodePool(t *testing.T) {
	const capacity = 6
	l := New(pool.New[int](capacity))

	for i := range capacity {
		require.NoError(t, l.PushBack(i))
	}
	st := l.Stats()
	assert.Equal(t, uint(capacity), st.Used)
	assert.True(t, st.Reserved)

	l.Close()

	st = l.Stats()
	assert.Equal(t, uint(0), st.Used, "close must return every node")
	assert.False(t, st.Reserved, "close must end the generation")
	assert.True(t, l.IsEmpty())
	assert.Equal(t, 0, l.Len())

	// a fresh allocation lands at offset 0 of a new block
	require.NoError(t, l.PushBack(42))
	off, ok := l.nodes.Offset(unsafe.Slice(l.first, 1))
	require.True(t, ok)
	assert.Equal(t, uint(0), off)
	assert.Equal(t, uint64(2), l.Stats().Generation)
	l.Close()
}

func TestList_ChainInvariants(t *testing.T) {
	l := New(pool.New[int](3))
	defer l.Close()

	assert.Nil(t, l.first)
	assert.Nil(t, l.last)

	for i := range 3 {
		require.NoError(t, l.PushBack(i))
		assert.NotNil(t, l.first)
		assert.Nil(t, l.last.next, "tail has no successor")
	}

	steps := 0
	n := l.first
	for ; n.next != nil; n = n.next {
		steps++
	}
	assert.Same(t, l.last, n, "chain from first ends at last")
	assert.Equal(t, 2, steps)
}

func TestList_SourceAllocatorUntouched(t *testing.T) {
	src := pool.New[int](2)
	l := New(src)
	defer l.Close()

	require.NoError(t, l.PushBack(1))
	assert.Equal(t, uint(0), src.Used(), "nodes come from the rebound allocator")
	assert.False(t, src.Reserved())

	// the source keeps its own budget
	_, err := src.Allocate(2)
	require.NoError(t, err)
	require.NoError(t, l.PushBack(2))
}

func TestList_Print(t *testing.T) {
	l := New(pool.New[int](3))
	defer l.Close()

	var empty bytes.Buffer
	require.NoError(t, l.Print(&empty))
	assert.Empty(t, empty.String())

	for _, v := range []int{1, 2, 6} {
		require.NoError(t, l.PushBack(v))
	}

	var buf bytes.Buffer
	require.NoError(t, l.Print(&buf))
	assert.Equal(t, "1. Value: 1\n2. Value: 2\n3. Value: 6\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestList_PrintPropagatesWriteErrors(t *testing.T) {
	l := New(pool.New[int](1))
	defer l.Close()
	require.NoError(t, l.PushBack(1))

	assert.EqualError(t, l.Print(failingWriter{}), "closed")
}

func TestList_CloseEmpty(t *testing.T) {
	l := New(pool.New[int](1))
	assert.NotPanics(t, l.Close)
	assert.NotPanics(t, l.Close)
}

func TestList_NewRequiresAllocator(t *testing.T) {
	assert.PanicsWithValue(t, "pool: rebind of nil allocator", func() {
		New[int](nil)
	})
}
