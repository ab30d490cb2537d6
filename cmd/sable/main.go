package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"sable/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "sable",
	Short:         "Sable front-end toolkit",
	Long:          `Sable lexes source files, checks type coercions and renders diagnostics`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadSettings(cmd); err != nil {
			return err
		}
		stopProfiling, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		cleanup, err := setupTracing(cmd)
		if err != nil {
			stopProfiling()
			return err
		}
		traceCleanup = func() {
			cleanup()
			stopProfiling()
			traceCleanup = func() {}
		}
		return nil
	},
}

// traceCleanup flushes the tracer and stops the profilers. Called from main
// so that it also runs when a command fails.
var traceCleanup = func() {}

// exitCode is returned by commands that already printed their diagnostics
// and only need a non-zero status.
type exitCode int

func (c exitCode) Error() string { return fmt.Sprintf("exit status %d", int(c)) }

func init() {
	rootCmd.Version = version.Current().Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(diagCmd)
	rootCmd.AddCommand(coerceCmd)
	rootCmd.AddCommand(typefmtCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	pf.Bool("cache", false, "reuse lexing results from the disk cache")
	pf.Bool("cache-clear", false, "drop all disk cache entries before running")
	pf.String("cache-dir", "", "disk cache directory (default $XDG_CACHE_HOME/sable)")
	pf.String("trace", "", "trace output file ('-' for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	pf.Int("trace-ring-size", 4096, "ring buffer capacity for ring trace mode")
	pf.Duration("trace-heartbeat", 0, "emit a heartbeat trace event at this interval (0 disables)")
	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to this file")
}

func main() {
	err := rootCmd.Execute()
	traceCleanup()
	if err != nil {
		var code exitCode
		if errors.As(err, &code) {
			os.Exit(int(code))
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
