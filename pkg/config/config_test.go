package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/arena/pkg/arenaerrors"
)

func TestNewDefaultIsValid(t *testing.T) {
	cfg := NewDefault()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []string{ContainerBuiltin, ContainerMap, ContainerList}, cfg.Workload.Containers())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		detail string
	}{
		{"unknown container", func(c *Config) { c.Workload.Container = "vector" }, "container"},
		{"zero capacity", func(c *Config) { c.Workload.Capacity = 0 }, ""},
		{"size overflows", func(c *Config) { c.Workload.Size = MaxSize + 1 }, "size"},
		{"sample rate", func(c *Config) { c.Observability.TracingSampleRate = 1.5 }, "tracing_sample_rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, arenaerrors.IsType(err, arenaerrors.ErrorTypeConfig))
			if tt.detail != "" {
				var e *arenaerrors.Error
				require.ErrorAs(t, err, &e)
				_, ok := e.Detail(tt.detail)
				assert.True(t, ok)
			}
		})
	}
}

func TestValidateAcceptsMaxSize(t *testing.T) {
	cfg := NewDefault()
	cfg.Workload.Size = MaxSize
	assert.NoError(t, cfg.Validate())
}

func TestContainersSingle(t *testing.T) {
	w := WorkloadConfig{Container: ContainerList}
	assert.Equal(t, []string{ContainerList}, w.Containers())
}

func TestParseOverlaysDefaults(t *testing.T) {
	t.Setenv("ARENA_CAPACITY", "5")

	cfg, err := Parse([]byte(`
workload:
  container: list
  capacity: ${ARENA_CAPACITY}
logging:
  level: debug
`))
	require.NoError(t, err)
	assert.Equal(t, ContainerList, cfg.Workload.Container)
	assert.Equal(t, uint(5), cfg.Workload.Capacity)
	assert.Equal(t, uint(10), cfg.Workload.Size, "size keeps its default")
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Encoding)
}

func TestParseRejectsInvalid(t *testing.T) {
	_, err := Parse([]byte("workload:\n  container: deque\n"))
	assert.True(t, arenaerrors.IsType(err, arenaerrors.ErrorTypeConfig))

	_, err = Parse([]byte("workload: [\n"))
	assert.True(t, arenaerrors.IsType(err, arenaerrors.ErrorTypeConfig))
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.yaml")
	want := NewDefault()
	want.Workload.Container = ContainerMap
	want.Workload.Size = 20
	want.Observability.EnableMetrics = true

	require.NoError(t, Save(path, want))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, arenaerrors.IsType(err, arenaerrors.ErrorTypeConfig))
}

func TestSubstituteEnvVars(t *testing.T) {
	t.Setenv("ARENA_A", "x")
	t.Setenv("ARENA_LOOP", "${ARENA_A}")

	assert.Equal(t, "a=x b= c", substituteEnvVars("a=${ARENA_A} b=${ARENA_UNSET} c"))
	assert.Equal(t, "${ARENA_A}", substituteEnvVars("${ARENA_LOOP}"))
	assert.Equal(t, "open ${ARENA_A", substituteEnvVars("open ${ARENA_A"))
}
