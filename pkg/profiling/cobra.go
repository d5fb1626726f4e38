package profiling

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/spf13/cobra"
)

// CobraProfiler adds --cpu-profile, --mem-profile and --timing to a command
// tree. Everything it prints goes to stderr: stdout of `prompt` is the prompt.
type CobraProfiler struct {
	cpuProfileFile *os.File
	cpuProfilePath string
	memProfilePath string
	timing         bool
}

// NewCobraProfiler creates a new profiler for Cobra integration.
func NewCobraProfiler() *CobraProfiler {
	return &CobraProfiler{}
}

// Attach registers the flags on cmd and chains the profiler into its
// persistent hooks, keeping any hooks already set.
func (p *CobraProfiler) Attach(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&p.cpuProfilePath, "cpu-profile", "", "Write CPU profile to file")
	cmd.PersistentFlags().StringVar(&p.memProfilePath, "mem-profile", "", "Write memory profile to file")
	cmd.PersistentFlags().BoolVar(&p.timing, "timing", false, "Print a timing summary to stderr on exit")

	preRun := cmd.PersistentPreRun
	cmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		if preRun != nil {
			preRun(c, args)
		}
		return p.PreRun(c, args)
	}
	cmd.PersistentPreRun = nil

	postRun := cmd.PersistentPostRun
	cmd.PersistentPostRun = func(c *cobra.Command, args []string) {
		if postRun != nil {
			postRun(c, args)
		}
		p.PostRun(c, args)
	}
}

// PreRun starts CPU profiling and span timing as requested by the flags.
func (p *CobraProfiler) PreRun(cmd *cobra.Command, args []string) error {
	if p.timing {
		Enable()
	}

	if p.cpuProfilePath != "" {
		f, err := os.Create(p.cpuProfilePath)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		p.cpuProfileFile = f
		if err := pprof.StartCPUProfile(p.cpuProfileFile); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
	}
	return nil
}

// PostRun writes the profiles and prints the timing summary.
func (p *CobraProfiler) PostRun(cmd *cobra.Command, args []string) {
	stderr := cmd.ErrOrStderr()

	if p.cpuProfileFile != nil {
		pprof.StopCPUProfile()
		p.cpuProfileFile.Close()
		p.cpuProfileFile = nil
		fmt.Fprintf(stderr, "CPU profile written to %s\n", p.cpuProfilePath)
	}

	if p.memProfilePath != "" {
		if err := writeHeapProfile(p.memProfilePath); err != nil {
			fmt.Fprintf(stderr, "could not write memory profile: %v\n", err)
		} else {
			fmt.Fprintf(stderr, "Memory profile written to %s\n", p.memProfilePath)
		}
	}

	if p.timing {
		Summarize(stderr)
	}
}

func writeHeapProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	runtime.GC() // get up-to-date statistics
	return pprof.WriteHeapProfile(f)
}
