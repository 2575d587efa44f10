package workload

import (
	"io"
	"os"
	"runtime"
	"time"

	"github.com/goccy/go-json"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/ajitpratap0/arena/pkg/pool"
)

// Report summarizes a workload run.
type Report struct {
	RunID     string         `json:"run_id"`
	Capacity  uint           `json:"capacity"`
	Size      uint           `json:"size"`
	StartedAt time.Time      `json:"started_at"`
	Duration  time.Duration  `json:"duration_ns"`
	Sections  []Section      `json:"sections"`
	Resources *ResourceUsage `json:"resources,omitempty"`
}

// Section is the outcome of one container.
type Section struct {
	Container string        `json:"container"`
	Entries   int           `json:"entries"`
	Duration  time.Duration `json:"duration_ns"`
	// Pool is the node allocator snapshot taken after filling, before close
	Pool  *pool.Stats `json:"pool,omitempty"`
	Error string      `json:"error,omitempty"`
}

func (s *Section) setPool(st pool.Stats) {
	s.Pool = &st
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// ResourceUsage contains process resource usage at the end of a run
type ResourceUsage struct {
	CPUPercent     float64 `json:"cpu_percent"`
	MemoryRSS      uint64  `json:"memory_rss_bytes"`
	MemoryVMS      uint64  `json:"memory_vms_bytes"`
	ThreadCount    int32   `json:"thread_count"`
	GoroutineCount int     `json:"goroutine_count"`
}

// resourceMonitor samples the current process
type resourceMonitor struct {
	process      *process.Process
	startCPUTime float64
	startTime    time.Time
}

func newResourceMonitor() (*resourceMonitor, error) {
	proc, err := process.NewProcess(int32(os.Getpid())) //nolint:gosec // pid fits in int32
	if err != nil {
		return nil, err
	}
	rm := &resourceMonitor{process: proc, startTime: time.Now()}
	if times, err := proc.Times(); err == nil {
		rm.startCPUTime = times.Total()
	}
	return rm, nil
}

// usage returns resource usage since the monitor was created. Fields the
// platform cannot report stay zero; only a missing memory reading is an
// error.
func (rm *resourceMonitor) usage() (*ResourceUsage, error) {
	memInfo, err := rm.process.MemoryInfo()
	if err != nil {
		return nil, err
	}

	usage := &ResourceUsage{
		MemoryRSS:      memInfo.RSS,
		MemoryVMS:      memInfo.VMS,
		GoroutineCount: runtime.NumGoroutine(),
	}
	if times, err := rm.process.Times(); err == nil {
		if elapsed := time.Since(rm.startTime).Seconds(); elapsed > 0 {
			usage.CPUPercent = ((times.Total() - rm.startCPUTime) / elapsed) * 100
		}
	}
	usage.ThreadCount, _ = rm.process.NumThreads()
	return usage, nil
}
