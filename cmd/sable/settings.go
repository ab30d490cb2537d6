package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sable/internal/config"
	"sable/internal/diagfmt"
	"sable/internal/driver"
)

// cliSettings is the manifest merged with explicitly set flags.
type cliSettings struct {
	manifest       *config.Manifest
	cfg            config.Config
	maxDiagnostics int
	color          string
	colorMode      switchMode
	timings        bool
	quiet          bool
	cache          bool
	cacheClear     bool
	cacheDir       string
	traceOutput    string
	traceLevel     string
	traceMode      string
}

var settings = cliSettings{cfg: config.Default()}

// loadSettings discovers sable.toml from the working directory and applies
// flags the user set on top of it.
func loadSettings(cmd *cobra.Command) error {
	s := cliSettings{cfg: config.Default()}
	m, found, err := config.Discover(".")
	if err != nil {
		return err
	}
	if found {
		s.manifest = m
		s.cfg = m.Config
	}
	s.maxDiagnostics = s.cfg.Diagnostics.Max
	s.color = s.cfg.Diagnostics.Color
	s.cache = s.cfg.Cache.Enabled
	s.cacheDir = m.CacheDir()
	s.traceOutput = s.cfg.Trace.Output
	s.traceLevel = s.cfg.Trace.Level
	s.traceMode = s.cfg.Trace.Mode

	pf := cmd.Root().PersistentFlags()
	override := func(name string, apply func() error) error {
		if !pf.Changed(name) {
			return nil
		}
		if err := apply(); err != nil {
			return fmt.Errorf("failed to get %s flag: %w", name, err)
		}
		return nil
	}
	for name, apply := range map[string]func() error{
		"max-diagnostics": func() (err error) { s.maxDiagnostics, err = pf.GetInt("max-diagnostics"); return },
		"color":           func() (err error) { s.color, err = pf.GetString("color"); return },
		"cache":           func() (err error) { s.cache, err = pf.GetBool("cache"); return },
		"cache-dir":       func() (err error) { s.cacheDir, err = pf.GetString("cache-dir"); return },
		"trace":           func() (err error) { s.traceOutput, err = pf.GetString("trace"); return },
		"trace-level":     func() (err error) { s.traceLevel, err = pf.GetString("trace-level"); return },
		"trace-mode":      func() (err error) { s.traceMode, err = pf.GetString("trace-mode"); return },
	} {
		if err := override(name, apply); err != nil {
			return err
		}
	}
	if s.timings, err = pf.GetBool("timings"); err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	if s.quiet, err = pf.GetBool("quiet"); err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.cacheClear, err = pf.GetBool("cache-clear"); err != nil {
		return fmt.Errorf("failed to get cache-clear flag: %w", err)
	}

	if s.colorMode, err = parseSwitch("color", s.color); err != nil {
		return err
	}
	color.NoColor = !s.useColor(os.Stdout)

	settings = s
	return nil
}

func (s *cliSettings) useColor(f *os.File) bool {
	return s.colorMode.enabled(f, false)
}

// driverOptions builds driver options, opening the disk cache when enabled.
// --cache-clear drops stored entries before the run.
func (s *cliSettings) driverOptions() (*driver.Options, error) {
	opts := &driver.Options{
		MaxDiagnostics: s.maxDiagnostics,
		Ext:            s.cfg.Package.SourceExt,
		Timings:        s.timings,
	}
	if !s.cache && !s.cacheClear {
		return opts, nil
	}
	var (
		cache *driver.DiskCache
		err   error
	)
	if s.cacheDir != "" {
		cache, err = driver.NewDiskCache(s.cacheDir)
	} else {
		cache, err = driver.OpenDiskCache("sable")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open disk cache: %w", err)
	}
	if s.cacheClear {
		if err := cache.DropAll(); err != nil {
			return nil, fmt.Errorf("failed to clear disk cache: %w", err)
		}
		if !s.cache {
			return opts, nil
		}
	}
	opts.Cache = cache
	return opts, nil
}

func (s *cliSettings) pathMode(fullPath bool) diagfmt.PathMode {
	if fullPath {
		return diagfmt.PathModeAbsolute
	}
	mode, _ := diagfmt.ParsePathMode(s.cfg.Diagnostics.PathMode)
	return mode
}
