// Package workload drives the pooled containers with factorial data and
// prints them, mirroring the reference demo run.
//
// A run has up to three sections, always in this order:
//   - builtin: a plain Go map, the unpooled reference
//   - map: an ordered.Map on a pool allocator
//   - list: a list.List on a pool allocator
//
// Each section inserts Factorial(i) for i in [0, size) and prints the
// container one entry per line followed by a blank line.
package workload

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/ajitpratap0/arena/pkg/list"
	"github.com/ajitpratap0/arena/pkg/ordered"
)

// Factorial returns i!. Results for i > 20 wrap modulo 2^64.
func Factorial(i uint) uint64 {
	f := uint64(1)
	for k := uint64(2); k <= uint64(i); k++ {
		f *= k
	}
	return f
}

// FillBuiltin stores Factorial(i) under key i for i in [0, size).
func FillBuiltin(m map[uint]uint64, size uint) {
	for i := range size {
		m[i] = Factorial(i)
	}
}

// FillMap inserts Factorial(i) under key i for i in [0, size). It stops at
// the first allocator error and returns the number of entries inserted.
func FillMap(m *ordered.Map[uint, uint64], size uint) (int, error) {
	inserted := 0
	for i := range size {
		ok, err := m.Insert(i, Factorial(i))
		if err != nil {
			return inserted, err
		}
		if ok {
			inserted++
		}
	}
	return inserted, nil
}

// FillList appends Factorial(i) for i in [0, size). It stops at the first
// allocator error and returns the number of values appended.
func FillList(l *list.List[uint64], size uint) (int, error) {
	pushed := 0
	for i := range size {
		if err := l.PushBack(Factorial(i)); err != nil {
			return pushed, err
		}
		pushed++
	}
	return pushed, nil
}

// PrintBuiltin writes the map in ascending key order in the same shape as
// PrintMap.
func PrintBuiltin(w io.Writer, m map[uint]uint64) error {
	for _, k := range slices.Sorted(maps.Keys(m)) {
		if _, err := fmt.Fprintf(w, "Key: %d Value: %d\n", k, m[k]); err != nil {
			return err
		}
	}
	return blankLine(w)
}

// PrintMap writes one "Key: <k> Value: <v>" line per entry and a blank line.
func PrintMap(w io.Writer, m *ordered.Map[uint, uint64]) error {
	if err := m.Print(w); err != nil {
		return err
	}
	return blankLine(w)
}

// PrintList writes one "<i>. Value: <v>" line per value and a blank line.
func PrintList(w io.Writer, l *list.List[uint64]) error {
	if err := l.Print(w); err != nil {
		return err
	}
	return blankLine(w)
}

func blankLine(w io.Writer) error {
	_, err := io.WriteString(w, "\n")
	return err
}
