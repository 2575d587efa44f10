package observability

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestInitDisabledIsNoop(t *testing.T) {
	p, err := Init(DefaultTracingConfig())
	require.NoError(t, err)

	_, span := StartSpan(context.Background(), p.Tracer(), "workload.list")
	span.SetAttribute("size", uint(5))
	span.Finish(nil)

	assert.False(t, span.span.SpanContext().IsValid())
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestInitExportsSpansOnShutdown(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultTracingConfig()
	cfg.Enabled = true
	cfg.Writer = &buf

	p, err := Init(cfg)
	require.NoError(t, err)

	ctx, parent := StartSpan(context.Background(), p.Tracer(), "workload.run")
	_, child := StartSpan(ctx, p.Tracer(), "workload.map")
	child.SetAttribute("container", "map")
	child.SetAttribute("capacity", uint(10))
	child.AddEvent("exhausted", attribute.Int("requested", 1))
	child.Finish(errors.New("pool: allocation exhausted"))
	parent.Finish(nil)

	require.NoError(t, p.Shutdown(context.Background()))

	out := buf.String()
	assert.Contains(t, out, `"Name":"workload.run"`)
	assert.Contains(t, out, `"Name":"workload.map"`)
	assert.Contains(t, out, "pool: allocation exhausted")
	assert.Contains(t, out, `"service.name"`)
}

func TestSamplingRateZeroDropsSpans(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultTracingConfig()
	cfg.Enabled = true
	cfg.Writer = &buf
	cfg.SamplingRate = 0

	p, err := Init(cfg)
	require.NoError(t, err)

	_, span := StartSpan(context.Background(), p.Tracer(), "dropped")
	span.End()
	require.NoError(t, p.Shutdown(context.Background()))
	assert.Empty(t, buf.String())
}
