package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"sable/internal/diag"
	"sable/internal/source"
	"sable/internal/token"
	"sable/internal/types"
)

// Current schema version - increment when LexPayload format or the lexer's
// output for the same input changes.
const diskCacheSchemaVersion uint16 = 1

// ErrCacheCorrupt reports a cache entry that decoded but does not describe
// the file it is keyed by.
var ErrCacheCorrupt = errors.New("corrupt cache entry")

// DiskCache хранит результаты лексирования по хэшу содержимого файла.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// LexPayload is the on-disk form of one file's token stream. Only offsets are
// stored; text and types are rebuilt from the file content on load.
type LexPayload struct {
	Schema uint16
	Hash   [32]byte
	Tokens []CachedToken
	Errors []CachedError
}

type CachedToken struct {
	Kind    uint8
	Start   uint32
	End     uint32
	Leading []CachedTrivia
}

type CachedTrivia struct {
	Kind  uint8
	Start uint32
	End   uint32
}

type CachedError struct {
	Code    uint16
	Start   uint32
	End     uint32
	Message string
	Notes   []CachedNote
}

type CachedNote struct {
	Start uint32
	End   uint32
	Msg   string
}

// OpenDiskCache initializes a disk cache at $XDG_CACHE_HOME/<app>
// (~/.cache/<app> when unset).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache opens a cache rooted at dir, creating it when needed.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key [32]byte) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог по первым двум символам, чтобы не раздувать одну директорию
	return filepath.Join(c.dir, "lex", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key [32]byte, payload *LexPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
func (c *DiskCache) Get(key [32]byte, out *LexPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	// #nosec G304 -- path is derived from a hex digest inside the cache dir
	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("%w: %w", ErrCacheCorrupt, err)
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o750)
}

// StoreLex caches the lexer output for file under its content hash.
func (c *DiskCache) StoreLex(file *source.File, tokens []token.Token, errs []*diag.Error) error {
	if c == nil || file == nil {
		return nil
	}
	return c.Put(file.Hash, encodeLex(file, tokens, errs))
}

// LoadLex returns the cached lexer output for file. A payload from another
// schema version is a miss; one that does not fit the file is ErrCacheCorrupt.
func (c *DiskCache) LoadLex(file *source.File) ([]token.Token, []*diag.Error, bool, error) {
	if c == nil || file == nil {
		return nil, nil, false, nil
	}
	var payload LexPayload
	ok, err := c.Get(file.Hash, &payload)
	if err != nil || !ok {
		return nil, nil, false, err
	}
	if payload.Schema != diskCacheSchemaVersion || payload.Hash != file.Hash {
		return nil, nil, false, nil
	}
	tokens, errs, err := decodeLex(file, &payload)
	if err != nil {
		return nil, nil, false, err
	}
	return tokens, errs, true, nil
}

func encodeLex(file *source.File, tokens []token.Token, errs []*diag.Error) *LexPayload {
	payload := &LexPayload{
		Schema: diskCacheSchemaVersion,
		Hash:   file.Hash,
		Tokens: make([]CachedToken, len(tokens)),
		Errors: make([]CachedError, len(errs)),
	}
	for i, tok := range tokens {
		ct := CachedToken{Kind: uint8(tok.Kind), Start: tok.Span.Start, End: tok.Span.End}
		if len(tok.Leading) > 0 {
			ct.Leading = make([]CachedTrivia, len(tok.Leading))
			for j, tr := range tok.Leading {
				ct.Leading[j] = CachedTrivia{Kind: uint8(tr.Kind), Start: tr.Span.Start, End: tr.Span.End}
			}
		}
		payload.Tokens[i] = ct
	}
	for i, e := range errs {
		ce := CachedError{
			Code:    uint16(e.Code),
			Start:   e.Loc.Span.Start,
			End:     e.Loc.Span.End,
			Message: e.Message,
		}
		for _, n := range e.Notes {
			ce.Notes = append(ce.Notes, CachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		payload.Errors[i] = ce
	}
	return payload
}

func decodeLex(file *source.File, payload *LexPayload) ([]token.Token, []*diag.Error, error) {
	span := func(start, end uint32) (source.Span, error) {
		// только границы: лексер может отдавать ошибку на невалидном UTF-8
		if start > end || int(end) > len(file.Content) {
			return source.Span{}, fmt.Errorf("%w: span %d..%d outside %d bytes", ErrCacheCorrupt, start, end, len(file.Content))
		}
		return source.Span{File: file.ID, Start: start, End: end}, nil
	}

	tokens := make([]token.Token, len(payload.Tokens))
	for i, ct := range payload.Tokens {
		sp, err := span(ct.Start, ct.End)
		if err != nil {
			return nil, nil, err
		}
		tok := token.Token{Kind: token.Kind(ct.Kind), Span: sp, Text: string(file.Content[sp.Start:sp.End])}
		if tok.Kind == token.TypeIdent {
			st, ok := types.LookupPrimitive(tok.Text)
			if !ok {
				return nil, nil, fmt.Errorf("%w: %q is not a type name", ErrCacheCorrupt, tok.Text)
			}
			tok.Type = st
		}
		if len(ct.Leading) > 0 {
			tok.Leading = make([]token.Trivia, len(ct.Leading))
			for j, tr := range ct.Leading {
				tsp, err := span(tr.Start, tr.End)
				if err != nil {
					return nil, nil, err
				}
				tok.Leading[j] = token.Trivia{
					Kind: token.TriviaKind(tr.Kind),
					Span: tsp,
					Text: string(file.Content[tsp.Start:tsp.End]),
				}
			}
		}
		tokens[i] = tok
	}

	errs := make([]*diag.Error, len(payload.Errors))
	for i, ce := range payload.Errors {
		sp, err := span(ce.Start, ce.End)
		if err != nil {
			return nil, nil, err
		}
		e := diag.Errorf(source.LocationOf(file, sp), diag.Code(ce.Code), "%s", ce.Message)
		for _, n := range ce.Notes {
			nsp, err := span(n.Start, n.End)
			if err != nil {
				return nil, nil, err
			}
			e.Notes = append(e.Notes, diag.Note{Span: nsp, Msg: n.Msg})
		}
		errs[i] = e
	}
	return tokens, errs, nil
}
