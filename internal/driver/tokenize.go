package driver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sable/internal/diag"
	"sable/internal/lexer"
	"sable/internal/observ"
	"sable/internal/source"
	"sable/internal/token"
	"sable/internal/trace"
)

// TokenizeResult is the token stream of one file and the diagnostics it
// produced.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Errors  []*diag.Error
	Bag     *diag.Bag
	Cached  bool
}

// Tokenize loads path into a fresh FileSet and lexes it to the end.
// Lexical errors do not fail the call; they are returned in Errors and Bag.
func Tokenize(ctx context.Context, path string, opts *Options) (*TokenizeResult, error) {
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "tokenize", trace.A("path", path))
	defer span.End("")

	var timer *observ.Timer
	if opts != nil && opts.Timings {
		timer = observ.NewTimer()
	}

	endLoad := timer.Phase("load_file")
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	endLoad("")
	if err != nil {
		return nil, fmt.Errorf("tokenize %s: %w", path, err)
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(opts.maxDiagnostics())
	endLex := timer.Phase("lex")
	out := lexFile(ctx, file, opts, bag)
	note := ""
	if out.cached {
		note = "cache hit"
	}
	endLex(note)

	bag.Sort()
	bag.Dedup()
	if timer != nil {
		appendTimingDiagnostic(bag, file, timer.Report())
	}
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  out.tokens,
		Errors:  out.errs,
		Bag:     bag,
		Cached:  out.cached,
	}, nil
}

type lexOutcome struct {
	tokens  []token.Token
	errs    []*diag.Error
	cached  bool
	elapsed time.Duration
}

// lexFile lexes one registered file, going through the cache when one is
// configured. Lexical errors are added to bag in stream order.
func lexFile(ctx context.Context, file *source.File, opts *Options, bag *diag.Bag) lexOutcome {
	ctx, span := trace.Start(ctx, trace.ScopeFile, "lex:"+source.BaseName(file.Path), trace.A("bytes", len(file.Content)))
	started := time.Now()

	var cache *DiskCache
	if opts != nil {
		cache = opts.Cache
	}

	var out lexOutcome
	if cache != nil {
		tokens, errs, ok, err := cache.LoadLex(file)
		switch {
		case err != nil:
			// битый файл кэша: лексируем заново и перезаписываем
			trace.Point(ctx, trace.ScopeItem, "cache_corrupt", err.Error())
			diag.ReportWarning(diag.BagReporter{Bag: bag}, diag.InternalCacheCorrupt,
				source.Span{File: file.ID}, "ignoring corrupt lexer cache entry: "+err.Error()).Emit()
		case ok:
			out = lexOutcome{tokens: tokens, errs: errs, cached: true}
		}
	}

	if !out.cached {
		out.tokens, out.errs = lexer.Collect(lexer.New(file, lexer.Options{}))
		if cache != nil {
			if err := cache.StoreLex(file, out.tokens, out.errs); err != nil {
				trace.Point(ctx, trace.ScopeItem, "cache_store_failed", err.Error())
			}
		}
	}

	for _, e := range out.errs {
		bag.AddError(e)
	}

	if out.cached {
		span.Set("cache", "hit")
	}
	span.Set("tokens", len(out.tokens)).Set("errors", len(out.errs)).End("")
	out.elapsed = time.Since(started)
	return out
}

func appendTimingDiagnostic(bag *diag.Bag, file *source.File, report observ.Report) {
	data, err := json.Marshal(report)
	if err != nil {
		return
	}
	msg := fmt.Sprintf("timings: total %.2f ms", report.TotalMS)
	d := diag.New(diag.SevInfo, diag.InternalInfo, source.Span{File: file.ID}, msg).
		WithNote(source.Span{File: file.ID}, string(data))
	bag.Add(d)
}
