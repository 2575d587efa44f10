// Package config provides the configuration for arena workload runs.
//
// The configuration is organized into logical sections:
//   - Workload: which containers to exercise, pool capacity and entry count
//   - Logging: zap logger settings
//   - Observability: metrics and tracing switches
//
// Example usage:
//
//	cfg := config.NewDefault()
//	cfg.Workload.Container = config.ContainerList
//	cfg.Workload.Size = 5
//
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config

import (
	"slices"

	"github.com/ajitpratap0/arena/pkg/arenaerrors"
	"github.com/ajitpratap0/arena/pkg/logger"
)

// Container selectors accepted by WorkloadConfig.Container.
const (
	ContainerBuiltin = "builtin"
	ContainerMap     = "map"
	ContainerList    = "list"
	ContainerAll     = "all"
)

// MaxSize is the largest workload size whose factorials fit in a uint64.
const MaxSize = 21

// Config is the top-level configuration of a workload run.
type Config struct {
	Workload      WorkloadConfig      `yaml:"workload" json:"workload"`
	Logging       logger.Config       `yaml:"logging" json:"logging"`
	Observability ObservabilityConfig `yaml:"observability" json:"observability"`
}

// WorkloadConfig selects what the runner exercises.
type WorkloadConfig struct {
	// Container is one of builtin, map, list or all
	Container string `yaml:"container" json:"container"`
	// Capacity is the element capacity of each pool allocator
	Capacity uint `yaml:"capacity" json:"capacity"`
	// Size is the number of factorial entries inserted into each container
	Size uint `yaml:"size" json:"size"`
}

// ObservabilityConfig contains monitoring settings.
type ObservabilityConfig struct {
	// EnableMetrics collects pool metrics and prints them after the run
	EnableMetrics bool `yaml:"enable_metrics" json:"enable_metrics"`
	// EnableTracing exports workload spans to stderr
	EnableTracing bool `yaml:"enable_tracing" json:"enable_tracing"`
	// TracingSampleRate controls trace sampling (0.0-1.0)
	TracingSampleRate float64 `yaml:"tracing_sample_rate" json:"tracing_sample_rate"`
}

// NewDefault creates a Config matching the reference demo: a capacity of 10
// and ten factorials pushed through every container.
func NewDefault() *Config {
	return &Config{
		Workload: WorkloadConfig{
			Container: ContainerAll,
			Capacity:  10,
			Size:      10,
		},
		Logging: logger.DefaultConfig(),
		Observability: ObservabilityConfig{
			EnableMetrics:     false,
			EnableTracing:     false,
			TracingSampleRate: 1.0,
		},
	}
}

// Containers expands the Container selector into the ordered list of
// containers to run.
func (w WorkloadConfig) Containers() []string {
	if w.Container == ContainerAll {
		return []string{ContainerBuiltin, ContainerMap, ContainerList}
	}
	return []string{w.Container}
}

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	valid := []string{ContainerBuiltin, ContainerMap, ContainerList, ContainerAll}
	if !slices.Contains(valid, c.Workload.Container) {
		return arenaerrors.New(arenaerrors.ErrorTypeConfig, "unknown container").
			WithDetail("container", c.Workload.Container)
	}
	if c.Workload.Capacity == 0 {
		return arenaerrors.New(arenaerrors.ErrorTypeConfig, "capacity must be positive")
	}
	if c.Workload.Size > MaxSize {
		return arenaerrors.New(arenaerrors.ErrorTypeConfig, "size overflows uint64 factorials").
			WithDetail("size", c.Workload.Size).
			WithDetail("max", MaxSize)
	}
	if r := c.Observability.TracingSampleRate; r < 0 || r > 1 {
		return arenaerrors.New(arenaerrors.ErrorTypeConfig, "tracing_sample_rate must be within [0, 1]").
			WithDetail("tracing_sample_rate", r)
	}
	return nil
}
