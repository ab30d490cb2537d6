// Package config loads the sable.toml project manifest.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the manifest looked up from the working directory upwards.
const FileName = "sable.toml"

// Manifest is a decoded sable.toml together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Package     PackageConfig     `toml:"package"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Cache       CacheConfig       `toml:"cache"`
	Trace       TraceConfig       `toml:"trace"`
}

type PackageConfig struct {
	Name      string `toml:"name"`
	SourceExt string `toml:"source_ext"`
}

type DiagnosticsConfig struct {
	Max       int    `toml:"max"`
	Format    string `toml:"format"`
	Color     string `toml:"color"`
	PathMode  string `toml:"path_mode"`
	WithNotes bool   `toml:"with_notes"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"` // пусто: $XDG_CACHE_HOME/sable
}

type TraceConfig struct {
	Level  string `toml:"level"`
	Mode   string `toml:"mode"`
	Output string `toml:"output"`
}

// Default returns the configuration used when no manifest is present.
func Default() Config {
	return Config{
		Package: PackageConfig{SourceExt: ".sb"},
		Diagnostics: DiagnosticsConfig{
			Max:      100,
			Format:   "pretty",
			Color:    "auto",
			PathMode: "auto",
		},
		Trace: TraceConfig{Level: "off", Mode: "stream"},
	}
}

var (
	validFormats   = []string{"pretty", "short", "json", "plain"}
	validColors    = []string{"auto", "on", "off"}
	validPathModes = []string{"auto", "absolute", "relative", "basename"}
)

// Validate checks enumerated values and limits.
func (c Config) Validate() error {
	var errs []error
	if c.Diagnostics.Max < 0 {
		errs = append(errs, fmt.Errorf("[diagnostics].max must not be negative, got %d", c.Diagnostics.Max))
	}
	check := func(key, value string, allowed []string) {
		for _, a := range allowed {
			if value == a {
				return
			}
		}
		errs = append(errs, fmt.Errorf("%s: unsupported value %q (expected %s)", key, value, strings.Join(allowed, "|")))
	}
	check("[diagnostics].format", c.Diagnostics.Format, validFormats)
	check("[diagnostics].color", c.Diagnostics.Color, validColors)
	check("[diagnostics].path_mode", c.Diagnostics.PathMode, validPathModes)
	if !strings.HasPrefix(c.Package.SourceExt, ".") {
		errs = append(errs, fmt.Errorf("[package].source_ext must start with '.', got %q", c.Package.SourceExt))
	}
	return errors.Join(errs...)
}

// Find walks up from startDir looking for sable.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes the manifest at path on top of Default. Unknown keys are
// rejected so typos do not silently fall back to defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover finds and loads the nearest manifest. The boolean is false when
// there is none; the caller then uses Default.
func Discover(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

// CacheDir resolves the cache directory relative to the manifest root.
func (m *Manifest) CacheDir() string {
	if m == nil || m.Config.Cache.Dir == "" {
		return ""
	}
	if filepath.IsAbs(m.Config.Cache.Dir) {
		return m.Config.Cache.Dir
	}
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Cache.Dir))
}
