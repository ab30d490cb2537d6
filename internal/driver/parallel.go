package driver

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"sable/internal/diag"
	"sable/internal/source"
	"sable/internal/token"
	"sable/internal/trace"
)

// TokenizeDirResult содержит результат токенизации одного файла
type TokenizeDirResult struct {
	Path   string        // путь к файлу
	FileID source.FileID // у незагруженного файла: пустая запись с FileLoadFailed
	Loaded bool
	Tokens []token.Token
	Errors []*diag.Error
	Bag    *diag.Bag
	Cached bool
}

// TokenizeDir lexes every source file under dir in parallel. All files are
// registered in the FileSet before workers start; each worker owns its own
// lexer and bag and writes only its own result slot. Unreadable files get an
// I/O diagnostic instead of failing the run.
func TokenizeDir(ctx context.Context, dir string, opts *Options) (*source.FileSet, []TokenizeDirResult, error) {
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "tokenize_dir", trace.A("dir", dir))

	files, err := ListSourceFiles(dir, opts.ext())
	if err != nil {
		span.End("list failed")
		return nil, nil, fmt.Errorf("list %s: %w", dir, err)
	}

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		span.End("files=0")
		return fileSet, nil, nil
	}

	sink := opts.progress()

	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		emit(sink, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			fileID = registerUnreadable(fileSet, path)
		}
		fileIDs[path] = fileID
	}

	jobs := 0
	if opts != nil {
		jobs = opts.Jobs
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]TokenizeDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			bag := diag.NewBag(opts.maxDiagnostics())
			fileID := fileIDs[path]
			if loadErr, failed := loadErrors[path]; failed {
				results[i] = TokenizeDirResult{Path: path, FileID: fileID, Bag: bag}
				bag.Add(diag.New(diag.SevError, diag.IOLoadFileError, source.Span{File: fileID},
					"failed to load file: "+loadErr.Error()))
				emit(sink, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr})
				return nil
			}

			emit(sink, Event{File: path, Stage: StageLex, Status: StatusWorking})
			out := lexFile(gctx, fileSet.Get(fileID), opts, bag)
			bag.Sort()
			bag.Dedup()

			results[i] = TokenizeDirResult{
				Path:   path,
				FileID: fileID,
				Loaded: true,
				Tokens: out.tokens,
				Errors: out.errs,
				Bag:    bag,
				Cached: out.cached,
			}
			emit(sink, Event{File: path, Stage: StageLex, Status: lexStatus(out), Elapsed: out.elapsed})
			return nil
		})
	}

	started := time.Now()
	err = g.Wait()
	emit(sink, Event{Stage: StageLex, Status: StatusDone, Elapsed: time.Since(started)})
	span.End(fmt.Sprintf("files=%d", len(files)))
	if err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// registerUnreadable gives a file that failed to load its own empty entry,
// so its diagnostics point at its own path.
func registerUnreadable(fileSet *source.FileSet, path string) source.FileID {
	if abs, err := source.AbsolutePath(path); err == nil {
		if id, err := fileSet.Add(abs, nil, source.FileLoadFailed); err == nil {
			return id
		}
	}
	id, _ := fileSet.AddVirtual(path, nil)
	return id
}

func lexStatus(out lexOutcome) Status {
	switch {
	case len(out.errs) > 0:
		return StatusError
	case out.cached:
		return StatusCached
	default:
		return StatusDone
	}
}
