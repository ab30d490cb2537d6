package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Tracer receives events. Implementations must be goroutine-safe.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
}

// Level controls verbosity. Each level admits scopes up to a bound.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // ring dumps only; nothing is admitted on the fly
	LevelPhase        // commands and passes
	LevelDetail       // plus per-file work
	LevelDebug        // plus single tokens and coercion lines
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

// deepest admitted scope per level; 0 admits nothing
var levelBound = [...]Scope{0, 0, ScopePass, ScopeFile, ScopeItem}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts the names printed by String, case-insensitively.
// The empty string means off.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(s)
	if s == "" {
		return LevelOff, nil
	}
	for i, name := range levelNames {
		if name == s {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether events of scope pass this level.
func (l Level) ShouldEmit(scope Scope) bool {
	return int(l) < len(levelBound) && scope != 0 && scope <= levelBound[l]
}

// Scope is the granularity of an event; smaller is coarser.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // a whole command: tokenize, tokenize_dir
	ScopePass                    // lex or coerce over one unit
	ScopeFile                    // one source file
	ScopeItem                    // tokens, cache hits, batch lines
)

func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopePass:
		return "pass"
	case ScopeFile:
		return "file"
	case ScopeItem:
		return "item"
	}
	return "unknown"
}

// StorageMode selects where events go.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // written as they happen
	ModeRing                          // last N kept in memory, dumped at exit
	ModeBoth
)

var modeNames = map[string]StorageMode{"stream": ModeStream, "ring": ModeRing, "both": ModeBoth}

func (m StorageMode) String() string {
	for name, mode := range modeNames {
		if mode == m {
			return name
		}
	}
	return "unknown"
}

// ParseMode parses stream, ring or both.
func ParseMode(s string) (StorageMode, error) {
	if m, ok := modeNames[strings.ToLower(s)]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
}

// Config describes a tracer built by New.
type Config struct {
	Level      Level
	Mode       StorageMode
	Format     Format    // FormatAuto picks by OutputPath extension
	Output     io.Writer // overrides OutputPath
	OutputPath string    // "" or "-" is stderr
	RingSize   int       // default 4096
}

const defaultRingSize = 4096

// New builds the tracer for cfg. LevelOff yields Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if cfg.RingSize <= 0 {
		cfg.RingSize = defaultRingSize
	}
	if cfg.Format == FormatAuto {
		cfg.Format = FormatForPath(cfg.OutputPath)
	}

	switch cfg.Mode {
	case ModeRing:
		return NewRingTracer(cfg.RingSize, cfg.Level), nil
	case ModeStream, ModeBoth:
		w, err := openOutput(cfg)
		if err != nil {
			return nil, err
		}
		stream := NewStreamTracer(w, cfg.Level, cfg.Format)
		if cfg.Mode == ModeStream {
			return stream, nil
		}
		return NewMultiTracer(cfg.Level, stream, NewRingTracer(cfg.RingSize, cfg.Level)), nil
	}
	return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
}

// bufferedFile flushes before closing the file.
type bufferedFile struct {
	*bufio.Writer
	f *os.File
}

func (b bufferedFile) Close() error {
	if err := b.Writer.Flush(); err != nil {
		_ = b.f.Close()
		return err
	}
	return b.f.Close()
}

func openOutput(cfg Config) (io.Writer, error) {
	if cfg.Output != nil {
		return cfg.Output, nil
	}
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		// stderr не закрываем вместе с трейсером
		return struct{ io.Writer }{os.Stderr}, nil
	}
	// #nosec G304 -- path comes from the command line
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return bufferedFile{Writer: bufio.NewWriter(f), f: f}, nil
}

type nopTracer struct{}

func (nopTracer) Emit(*Event)  {}
func (nopTracer) Flush() error { return nil }
func (nopTracer) Close() error { return nil }
func (nopTracer) Level() Level { return LevelOff }

// Nop discards everything.
var Nop Tracer = nopTracer{}

// Enabled reports whether t admits events of scope.
func Enabled(t Tracer, scope Scope) bool {
	return t != nil && t.Level().ShouldEmit(scope)
}
