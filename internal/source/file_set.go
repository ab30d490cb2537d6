package source

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// ErrDuplicateSource is returned when a path is registered twice in one FileSet.
var ErrDuplicateSource = errors.New("source already registered")

// FileSet owns every source buffer of a session. Spans and diagnostics refer
// to files by FileID; paths are unique within one set.
type FileSet struct {
	files   []File
	byPath  map[string]FileID
	baseDir string // пусто: берём cwd
}

func NewFileSet() *FileSet {
	return &FileSet{byPath: make(map[string]FileID)}
}

// NewFileSetWithBase задаёт базовую директорию для относительных путей.
func NewFileSetWithBase(baseDir string) *FileSet {
	fs := NewFileSet()
	fs.baseDir = baseDir
	return fs
}

func (fs *FileSet) SetBaseDir(dir string) { fs.baseDir = dir }

// BaseDir returns the configured base directory, falling back to the
// working directory.
func (fs *FileSet) BaseDir() string {
	if fs.baseDir != "" {
		return fs.baseDir
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return ""
}

func (fs *FileSet) Len() int { return len(fs.files) }

// Add registers content under path and indexes its lines. Content must not
// be modified afterwards.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) (FileID, error) {
	path = normalizePath(path)
	if _, dup := fs.byPath[path]; dup {
		return 0, fmt.Errorf("%s: %w", path, ErrDuplicateSource)
	}
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		return 0, fmt.Errorf("%s: file too large: %w", path, err)
	}
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		return 0, fmt.Errorf("%s: too many files: %w", path, err)
	}
	id := FileID(n)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    path,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fs.byPath[path] = id
	return id, nil
}

// Load reads path from disk, strips a BOM, folds CRLF, normalizes to NFC
// and registers the result under the absolute path.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	abs, err := AbsolutePath(path)
	if err != nil {
		return 0, err
	}

	var flags FileFlags
	steps := []struct {
		apply func([]byte) ([]byte, bool)
		flag  FileFlags
	}{
		{removeBOM, FileHadBOM},
		{normalizeCRLF, FileNormalizedCRLF},
		{normalizeNFC, FileNormalizedNFC},
	}
	for _, st := range steps {
		var changed bool
		if raw, changed = st.apply(raw); changed {
			flags |= st.flag
		}
	}
	return fs.Add(abs, raw, flags)
}

// AddVirtual registers in-memory text (stdin, tests) with FileVirtual set.
func (fs *FileSet) AddVirtual(name string, content []byte) (FileID, error) {
	return fs.Add(name, content, FileVirtual)
}

// Get returns nil for an unknown ID.
func (fs *FileSet) Get(id FileID) *File {
	if int(id) >= len(fs.files) {
		return nil
	}
	return &fs.files[id]
}

func (fs *FileSet) Lookup(path string) (FileID, bool) {
	id, ok := fs.byPath[normalizePath(path)]
	return id, ok
}

func (fs *FileSet) GetByPath(path string) (*File, bool) {
	id, ok := fs.Lookup(path)
	if !ok {
		return nil, false
	}
	return &fs.files[id], true
}

// Resolve converts a span into line and column positions.
// Unknown files resolve to the zero LineCol.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fs.Get(span.File)
	if f == nil {
		return LineCol{}, LineCol{}
	}
	return f.LineCol(span.Start), f.LineCol(span.End)
}

func (fs *FileSet) Locate(span Span) Location {
	return Location{File: fs.Get(span.File), Span: span}
}

// LineBounds returns the byte range of line n (1-based) without its
// trailing newline.
func (f *File) LineBounds(n uint32) (start, end uint32, ok bool) {
	lines := uint32(len(f.LineIdx)) + 1 // #nosec G115 -- bounded by Add
	if n == 0 || n > lines {
		return 0, 0, false
	}
	if n > 1 {
		start = f.LineIdx[n-2] + 1
	}
	end = uint32(len(f.Content)) // #nosec G115 -- bounded by Add
	if n <= uint32(len(f.LineIdx)) {
		end = f.LineIdx[n-1]
	}
	return start, end, true
}

// GetLine возвращает строку с заданным номером (1-based) без перевода строки.
// Для несуществующей строки возвращает "".
func (f *File) GetLine(n uint32) string {
	start, end, ok := f.LineBounds(n)
	if !ok {
		return ""
	}
	return string(f.Content[start:end])
}

// FormatPath renders f.Path for display. mode is one of "absolute",
// "relative", "basename" or "auto"; anything else yields the stored path.
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := AbsolutePath(f.Path); err == nil {
			return abs
		}
	case "relative":
		if baseDir == "" {
			baseDir, _ = os.Getwd()
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
	case "basename":
		return BaseName(f.Path)
	case "auto":
		// длинный абсолютный путь сворачиваем до имени файла
		if filepath.IsAbs(f.Path) && len(f.Path) >= 40 {
			return BaseName(f.Path)
		}
	}
	return f.Path
}
