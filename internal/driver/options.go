package driver

// DefaultExt is the source file extension picked up in directory mode.
const DefaultExt = ".sb"

// Options configure Tokenize, TokenizeDir and CheckCoercions.
type Options struct {
	MaxDiagnostics int
	// Jobs ограничивает число воркеров; <= 0: GOMAXPROCS.
	Jobs int
	// Ext overrides DefaultExt.
	Ext string
	// Cache is consulted before lexing a file. nil disables caching.
	Cache *DiskCache
	// Progress receives per-file events. nil drops them.
	Progress ProgressSink
	// Timings appends an info diagnostic with per-phase durations.
	Timings bool
}

func (o *Options) ext() string {
	if o == nil || o.Ext == "" {
		return DefaultExt
	}
	return o.Ext
}

func (o *Options) progress() ProgressSink {
	if o == nil {
		return nil
	}
	return o.Progress
}

func (o *Options) maxDiagnostics() int {
	if o == nil || o.MaxDiagnostics <= 0 {
		return 100
	}
	return o.MaxDiagnostics
}
