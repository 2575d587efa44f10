package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ajitpratap0/arena/pkg/config"
)

var version = "0.1.0"

// runFlags holds the run command flags. Flags the user set explicitly
// override the config file.
type runFlags struct {
	configFile string
	container  string
	capacity   uint
	size       uint
	logLevel   string
	trace      bool
	metrics    bool
	report     string
	cpuProfile string
	memProfile string
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "arena",
		Short: "Arena - fixed-capacity pool allocator workloads",
		Long: `Arena fills pooled containers with factorials and prints them.
Each container draws its nodes from a bump allocator with a fixed capacity;
requests past that capacity fail instead of growing the pool.`,
		SilenceUsage: true,
	}

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Arena v%s\n", version)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	root.AddCommand(newRunCmd())
	root.AddCommand(newConfigCmd())
	return root
}

func newRunCmd() *cobra.Command {
	flags := &runFlags{}
	defaults := config.NewDefault()

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the factorial workload",
		Long: `Run fills the selected containers with factorial(i) for i in [0, size)
and prints each one, in the order builtin, map, list.

Example:
  arena run --container list --capacity 5 --size 5
  arena run --config arena.yaml --metrics --report report.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, flags)
			if err != nil {
				return err
			}
			prof, err := startProfiling(flags.cpuProfile, flags.memProfile)
			if err != nil {
				return err
			}
			runErr := runWorkload(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, flags.report)
			if err := prof.stop(); err != nil && runErr == nil {
				return err
			}
			return runErr
		},
	}

	runCmd.Flags().StringVarP(&flags.configFile, "config", "c", "", "Path to a YAML configuration file (optional)")
	runCmd.Flags().StringVar(&flags.container, "container", defaults.Workload.Container, "Container to exercise (builtin, map, list, all)")
	runCmd.Flags().UintVar(&flags.capacity, "capacity", defaults.Workload.Capacity, "Element capacity of each pool allocator")
	runCmd.Flags().UintVar(&flags.size, "size", defaults.Workload.Size, "Number of factorial entries per container (at most 21)")
	runCmd.Flags().StringVar(&flags.logLevel, "log-level", "error", "Log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&flags.trace, "trace", false, "Export workload spans to stderr")
	runCmd.Flags().BoolVar(&flags.metrics, "metrics", false, "Print pool metrics to stderr after the run")
	runCmd.Flags().StringVar(&flags.report, "report", "", "Write a JSON run report to this path (- for stdout)")
	runCmd.Flags().StringVar(&flags.cpuProfile, "cpuprofile", "", "Write CPU profile to file")
	runCmd.Flags().StringVar(&flags.memProfile, "memprofile", "", "Write memory profile to file")

	return runCmd
}

func newConfigCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Write the default configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(output, config.NewDefault()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "arena.yaml", "Destination file")
	return cmd
}

// resolveConfig loads the config file when given and applies explicitly set
// flags on top.
func resolveConfig(cmd *cobra.Command, flags *runFlags) (*config.Config, error) {
	cfg := config.NewDefault()
	cfg.Logging.Level = flags.logLevel
	if flags.configFile != "" {
		loaded, err := config.Load(flags.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	changed := cmd.Flags().Changed
	if changed("container") {
		cfg.Workload.Container = flags.container
	}
	if changed("capacity") {
		cfg.Workload.Capacity = flags.capacity
	}
	if changed("size") {
		cfg.Workload.Size = flags.size
	}
	if changed("log-level") {
		cfg.Logging.Level = flags.logLevel
	}
	if changed("trace") {
		cfg.Observability.EnableTracing = flags.trace
	}
	if changed("metrics") {
		cfg.Observability.EnableMetrics = flags.metrics
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
