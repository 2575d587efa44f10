package pool

import "go.uber.org/zap"

// Observer receives allocator lifecycle events. Implementations must be
// cheap; they run inline on every Allocate and Deallocate.
type Observer interface {
	// OnReserve is called when a generation starts and a block is reserved.
	OnReserve(pool string, capacity uint, elemSize uintptr)
	// OnRelease is called when the last outstanding element is released.
	OnRelease(pool string, generation uint64)
	// OnAllocate is called after a successful allocation of n elements.
	OnAllocate(pool string, n, used uint)
	// OnDeallocate is called after n elements have been returned.
	OnDeallocate(pool string, n, used uint)
	// OnExhausted is called when a request is rejected.
	OnExhausted(pool string, requested, used uint)
}

type nopObserver struct{}

func (nopObserver) OnReserve(string, uint, uintptr) {}
func (nopObserver) OnRelease(string, uint64)        {}
func (nopObserver) OnAllocate(string, uint, uint)   {}
func (nopObserver) OnDeallocate(string, uint, uint) {}
func (nopObserver) OnExhausted(string, uint, uint)  {}

// Option configures an Allocator.
type Option func(*options)

type options struct {
	name     string
	logger   *zap.Logger
	observer Observer
}

func defaultOptions() options {
	return options{
		name:     "pool",
		logger:   zap.NewNop(),
		observer: nopObserver{},
	}
}

// WithName sets the name used in logs and metrics labels.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithLogger sets the logger used for generation and exhaustion events.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithObserver attaches an Observer, typically a metrics collector.
func WithObserver(observer Observer) Option {
	return func(o *options) {
		if observer != nil {
			o.observer = observer
		}
	}
}
