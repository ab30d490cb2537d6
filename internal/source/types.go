package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a source file.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHadBOM
	FileNormalizedCRLF
	FileNormalizedNFC
	FileLoadFailed // чтение не удалось, Content пуст
)

// File is a named, immutable buffer of program text registered in a FileSet.
// Identity is the normalized Path alone; Content is never mutated after Add.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// SameSource reports whether two files denote the same source.
// Content is deliberately not compared: the FileSet guarantees path uniqueness.
func (f *File) SameSource(other *File) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.Path == other.Path
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
