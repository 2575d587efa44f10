package workload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/ajitpratap0/arena/pkg/config"
	"github.com/ajitpratap0/arena/pkg/list"
	"github.com/ajitpratap0/arena/pkg/logger"
	"github.com/ajitpratap0/arena/pkg/metrics"
	"github.com/ajitpratap0/arena/pkg/observability"
	"github.com/ajitpratap0/arena/pkg/ordered"
	"github.com/ajitpratap0/arena/pkg/pool"
)

var headers = map[string]string{
	config.ContainerBuiltin: "Builtin map data printed:",
	config.ContainerMap:     "Pooled map data printed:",
	config.ContainerList:    "Pooled list data printed:",
}

// Runner executes workload sections and prints their containers to out.
type Runner struct {
	out       io.Writer
	logger    *zap.Logger
	tracer    trace.Tracer
	collector *metrics.ArenaCollector
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the base logger. The global logger is used otherwise.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithTracer sets the tracer used for run and section spans.
func WithTracer(t trace.Tracer) Option {
	return func(r *Runner) { r.tracer = t }
}

// WithCollector attaches a metrics collector to every pool the run creates.
func WithCollector(c *metrics.ArenaCollector) Option {
	return func(r *Runner) { r.collector = c }
}

// NewRunner creates a Runner printing to out.
func NewRunner(out io.Writer, opts ...Option) *Runner {
	r := &Runner{out: out}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logger.Get()
	}
	if r.tracer == nil {
		r.tracer = noop.NewTracerProvider().Tracer("arena")
	}
	return r
}

// Run executes the sections selected by cfg in order. A section whose
// container runs out of capacity is still printed with the entries that fit
// and the run moves on; the exhaustion errors are joined into the returned
// error alongside a complete report. Write failures and cancellation stop
// the run immediately.
func (r *Runner) Run(ctx context.Context, cfg *config.Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	ctx = context.WithValue(ctx, logger.RunIDKey, runID)
	ctx = context.WithValue(ctx, logger.WorkloadKey, "factorial")
	log := logger.FromContext(ctx, r.logger)

	ctx, span := observability.StartSpan(ctx, r.tracer, "workload.run")
	span.SetAttribute("run.id", runID)
	span.SetAttribute("workload.capacity", cfg.Workload.Capacity)
	span.SetAttribute("workload.size", cfg.Workload.Size)

	monitor, err := newResourceMonitor()
	if err != nil {
		log.Warn("process stats unavailable", zap.Error(err))
	}

	report := &Report{
		RunID:     runID,
		Capacity:  cfg.Workload.Capacity,
		Size:      cfg.Workload.Size,
		StartedAt: time.Now(),
	}
	log.Info("workload started",
		zap.Strings("containers", cfg.Workload.Containers()),
		zap.Uint("capacity", cfg.Workload.Capacity),
		zap.Uint("size", cfg.Workload.Size))

	var sectionErrs []error
	for _, name := range cfg.Workload.Containers() {
		if err := ctx.Err(); err != nil {
			span.Finish(err)
			return report, err
		}

		section, err := r.runSection(ctx, name, cfg.Workload)
		report.Sections = append(report.Sections, section)
		if err != nil && !pool.IsExhausted(err) {
			span.Finish(err)
			return report, err
		}
		if err != nil {
			sectionErrs = append(sectionErrs, fmt.Errorf("%s: %w", name, err))
		}
	}

	report.Duration = time.Since(report.StartedAt)
	if monitor != nil {
		if report.Resources, err = monitor.usage(); err != nil {
			log.Warn("failed to read process stats", zap.Error(err))
		}
	}

	err = errors.Join(sectionErrs...)
	span.Finish(err)
	log.Info("workload finished",
		zap.Duration("duration", report.Duration),
		zap.Int("failed_sections", len(sectionErrs)))
	return report, err
}

func (r *Runner) runSection(ctx context.Context, name string, w config.WorkloadConfig) (Section, error) {
	ctx = context.WithValue(ctx, logger.ContainerKey, name)
	log := logger.FromContext(ctx, r.logger)
	_, span := observability.StartSpan(ctx, r.tracer, "workload."+name)
	span.SetAttribute("container", name)
	timer := metrics.NewTimer(name)

	section := Section{Container: name}
	if _, err := fmt.Fprintln(r.out, headers[name]); err != nil {
		span.Finish(err)
		return section, err
	}

	fillErr, printErr := r.fill(&section, name, w, log)
	section.Duration = timer.Stop()
	if r.collector != nil {
		r.collector.ObserveRun(name, section.Duration)
	}

	if printErr != nil {
		span.Finish(printErr)
		return section, printErr
	}
	if fillErr != nil {
		section.Error = fillErr.Error()
		span.AddEvent("exhausted", attribute.Int("entries", section.Entries))
		log.Warn("container exhausted", zap.Int("entries", section.Entries), zap.Error(fillErr))
	}

	span.SetAttribute("entries", section.Entries)
	span.Finish(fillErr)
	log.Debug("section finished",
		zap.Int("entries", section.Entries),
		zap.Duration("duration", section.Duration))
	return section, fillErr
}

// fill builds, fills, prints and closes the named container.
func (r *Runner) fill(section *Section, name string, w config.WorkloadConfig, log *zap.Logger) (fillErr, printErr error) {
	opts := []pool.Option{pool.WithName(name), pool.WithLogger(log)}
	if r.collector != nil {
		opts = append(opts, pool.WithObserver(r.collector))
	}

	switch name {
	case config.ContainerBuiltin:
		m := make(map[uint]uint64, w.Size)
		FillBuiltin(m, w.Size)
		section.Entries = len(m)
		return nil, PrintBuiltin(r.out, m)

	case config.ContainerMap:
		m := ordered.New(pool.New[ordered.Pair[uint, uint64]](w.Capacity, opts...))
		defer r.closeAndCheck(m.Close, m.Stats, log)
		section.Entries, fillErr = FillMap(m, w.Size)
		section.setPool(m.Stats())
		return fillErr, PrintMap(r.out, m)

	case config.ContainerList:
		l := list.New(pool.New[uint64](w.Capacity, opts...))
		defer r.closeAndCheck(l.Close, l.Stats, log)
		section.Entries, fillErr = FillList(l, w.Size)
		section.setPool(l.Stats())
		return fillErr, PrintList(r.out, l)
	}
	return nil, fmt.Errorf("unknown container %q", name)
}

func (r *Runner) closeAndCheck(closeFn func(), stats func() pool.Stats, log *zap.Logger) {
	closeFn()
	if st := stats(); st.Leaked() {
		log.Error("pool still has outstanding elements after close", zap.Uint("used", st.Used))
	}
}
