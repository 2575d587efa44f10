package pool

// Stats represents allocator statistics for monitoring and leak detection.
type Stats struct {
	// Name is the allocator name
	Name string `json:"name"`
	// Capacity is the configured element capacity
	Capacity uint `json:"capacity"`
	// ElemSize is the size of one element in bytes
	ElemSize uintptr `json:"elem_size"`
	// Used is the number of outstanding elements
	Used uint `json:"used"`
	// Cursor is the bump offset of the current generation
	Cursor uint `json:"cursor"`
	// Reserved reports whether a block is currently held
	Reserved bool `json:"reserved"`
	// Generation is the number of blocks reserved so far
	Generation uint64 `json:"generation"`
	// Allocations is the number of successful Allocate calls
	Allocations uint64 `json:"allocations"`
	// Deallocations is the number of non-empty Deallocate calls
	Deallocations uint64 `json:"deallocations"`
	// Exhaustions is the number of rejected requests
	Exhaustions uint64 `json:"exhaustions"`
	// HighWater is the largest outstanding count ever observed
	HighWater uint `json:"high_water"`
}

// Stats returns a snapshot of the allocator's counters.
func (a *Allocator[T]) Stats() Stats {
	return Stats{
		Name:          a.opts.name,
		Capacity:      a.capacity,
		ElemSize:      elemSize[T](),
		Used:          a.used,
		Cursor:        a.next,
		Reserved:      a.block != nil,
		Generation:    a.generation,
		Allocations:   a.allocations,
		Deallocations: a.deallocations,
		Exhaustions:   a.exhaustions,
		HighWater:     a.highWater,
	}
}

// Leaked reports whether elements are still outstanding.
func (s Stats) Leaked() bool {
	return s.Used > 0
}
