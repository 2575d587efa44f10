// Package arena provides fixed-capacity bump allocation for Go values and
// containers that draw their nodes from it.
//
// An arena allocator reserves one block of N elements the first time it is
// asked for storage and hands out consecutive slices of that block. Freed
// elements are only counted, never reused; when the outstanding count drops
// back to zero the block is released and the next request starts a new
// generation at offset zero. A request that does not fit in what is left of
// the block fails with an exhaustion error instead of growing the pool.
//
// # Quick Start
//
// Build a list whose nodes live in a pool of five elements:
//
//	import (
//	    "github.com/ajitpratap0/arena/pkg/list"
//	    "github.com/ajitpratap0/arena/pkg/pool"
//	)
//
//	l := list.New(pool.New[uint64](5, pool.WithName("factorials")))
//	defer l.Close()
//
//	for i := range 6 {
//	    if err := l.PushBack(uint64(i)); err != nil {
//	        // the sixth push fails and the list keeps its five values
//	        fmt.Println(pool.IsExhausted(err))
//	    }
//	}
//
// # Key Packages
//
//	pkg/pool          - Generic bump allocator with generations and rebind
//	pkg/list          - Append-only singly-linked list on a pool
//	pkg/ordered       - AVL ordered map on a pool
//	pkg/arenaerrors   - Structured error handling
//	pkg/config        - YAML workload configuration
//	pkg/logger        - Structured logging
//	pkg/metrics       - Prometheus pool observer
//	pkg/observability - OpenTelemetry tracing
//	internal/workload - Factorial workload driver and run report
//	cmd/arena         - Command line interface
//
// # Rebinding
//
// Containers are constructed from an allocator for their element type and
// rebind it to their internal node type. A rebound allocator has the same
// capacity, name and observers but its own storage, so a list built on a
// pool of capacity N holds N values regardless of what the original pool
// has handed out.
//
// # Command Line
//
//	arena run                                  # builtin, map and list, N = 10
//	arena run --container list --capacity 5 --size 6
//	arena run --config arena.yaml --metrics --trace --report -
//	arena config --output arena.yaml
//
// Environment variables are supported in configuration files with
// ${VAR_NAME} syntax, and a .env file in the working directory is loaded
// on start.
package arena
