package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sable/internal/trace"
)

// setupTracing initializes the tracer from the resolved settings and the
// ring/heartbeat flags. It returns a cleanup function that flushes and
// closes the tracer; ring-only tracers are dumped there.
func setupTracing(cmd *cobra.Command) (func(), error) {
	root := cmd.Root()

	ringSize, err := root.PersistentFlags().GetInt("trace-ring-size")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}
	heartbeatInterval, err := root.PersistentFlags().GetDuration("trace-heartbeat")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
	}

	level, err := trace.ParseLevel(settings.traceLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid trace level: %w", err)
	}
	// --trace без уровня включает phase
	if level == trace.LevelOff && settings.traceOutput != "" {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}

	mode, err := trace.ParseMode(settings.traceMode)
	if err != nil {
		return nil, fmt.Errorf("invalid trace mode: %w", err)
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		OutputPath: settings.traceOutput,
		RingSize:   ringSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)
	root.SetContext(ctx)

	stopHeartbeat := trace.StartHeartbeat(tracer, heartbeatInterval)

	return func() {
		stopHeartbeat()
		if ring, ok := tracer.(*trace.RingTracer); ok {
			if err := dumpRing(ring, settings.traceOutput); err != nil {
				fmt.Fprintf(os.Stderr, "trace: dump error: %v\n", err)
			}
		}
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(os.Stderr, "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "trace: close error: %v\n", err)
		}
	}, nil
}

func dumpRing(ring *trace.RingTracer, output string) error {
	if output == "" || output == "-" {
		return ring.Dump(os.Stderr, trace.FormatText)
	}
	// #nosec G304 -- path comes from the command line
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := ring.Dump(f, trace.FormatForPath(output)); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
