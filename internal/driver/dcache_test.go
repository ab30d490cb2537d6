package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"sable/internal/diag"
)

const cachedSource = "// header\nlet s: string = \"hi\"; /* c */ let $ = 'a';\n"

func TestDiskCache_RoundTrip(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "c.sb")
	writeFile(t, path, cachedSource)
	opts := &Options{Cache: cache}

	first, err := Tokenize(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached {
		t.Fatal("first run cannot be a cache hit")
	}
	second, err := Tokenize(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached {
		t.Fatal("second run must hit the cache")
	}

	if len(first.Tokens) != len(second.Tokens) {
		t.Fatalf("token count %d != %d", len(first.Tokens), len(second.Tokens))
	}
	for i := range first.Tokens {
		a, b := first.Tokens[i], second.Tokens[i]
		// FileID одинаковый: оба FileSet содержат один файл
		if !reflect.DeepEqual(a, b) {
			t.Errorf("token %d: %+v != %+v", i, a, b)
		}
	}
	if len(first.Errors) == 0 || len(first.Errors) != len(second.Errors) {
		t.Fatalf("errors %d vs %d", len(first.Errors), len(second.Errors))
	}
	for i := range first.Errors {
		if first.Errors[i].Error() != second.Errors[i].Error() || first.Errors[i].Code != second.Errors[i].Code {
			t.Errorf("error %d: %v != %v", i, first.Errors[i], second.Errors[i])
		}
	}
	if first.Bag.Len() != second.Bag.Len() {
		t.Errorf("bag sizes differ: %d vs %d", first.Bag.Len(), second.Bag.Len())
	}
}

func TestDiskCache_ChangedContentMisses(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "c.sb")
	writeFile(t, path, "let a = 1;")
	if _, err := Tokenize(context.Background(), path, &Options{Cache: cache}); err != nil {
		t.Fatal(err)
	}
	writeFile(t, path, "let a = 2;")
	res, err := Tokenize(context.Background(), path, &Options{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if res.Cached {
		t.Error("edited file must not hit the cache")
	}
}

func TestDiskCache_SchemaMismatch(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "c.sb")
	writeFile(t, path, "let a = 1;")
	res, err := Tokenize(context.Background(), path, nil)
	if err != nil {
		t.Fatal(err)
	}
	payload := encodeLex(res.File, res.Tokens, res.Errors)
	payload.Schema = diskCacheSchemaVersion + 1
	if err := cache.Put(res.File.Hash, payload); err != nil {
		t.Fatal(err)
	}
	_, _, ok, err := cache.LoadLex(res.File)
	if err != nil || ok {
		t.Fatalf("ok=%v err=%v, want silent miss", ok, err)
	}
}

func TestDiskCache_Corrupt(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "c.sb")
	writeFile(t, path, "let a = 1;")
	res, err := Tokenize(context.Background(), path, nil)
	if err != nil {
		t.Fatal(err)
	}

	entry := cache.pathFor(res.File.Hash)
	writeFile(t, entry, "\xc1not msgpack")
	if _, _, _, err := cache.LoadLex(res.File); !errors.Is(err, ErrCacheCorrupt) {
		t.Fatalf("err = %v, want ErrCacheCorrupt", err)
	}

	again, err := Tokenize(context.Background(), path, &Options{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if again.Cached || len(again.Tokens) != 5 {
		t.Errorf("cached=%v tokens=%d", again.Cached, len(again.Tokens))
	}
	items := again.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.InternalCacheCorrupt || items[0].Severity != diag.SevWarning {
		t.Errorf("want one cache warning, got %+v", items)
	}
	// запись перезаписана валидной
	if _, _, ok, err := cache.LoadLex(res.File); err != nil || !ok {
		t.Errorf("rewritten entry: ok=%v err=%v", ok, err)
	}
}

func TestDiskCache_OutOfBoundsPayload(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "c.sb")
	writeFile(t, path, "let a = 1;")
	res, err := Tokenize(context.Background(), path, nil)
	if err != nil {
		t.Fatal(err)
	}
	payload := encodeLex(res.File, res.Tokens, res.Errors)
	payload.Tokens[0].End = 1000
	if err := cache.Put(res.File.Hash, payload); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := cache.LoadLex(res.File); !errors.Is(err, ErrCacheCorrupt) {
		t.Fatalf("err = %v, want ErrCacheCorrupt", err)
	}
}

func TestDiskCache_DropAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	cache, err := NewDiskCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	var key [32]byte
	key[0] = 0xab
	if err := cache.Put(key, &LexPayload{Schema: diskCacheSchemaVersion}); err != nil {
		t.Fatal(err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	var out LexPayload
	ok, err := cache.Get(key, &out)
	if err != nil || ok {
		t.Fatalf("after DropAll: ok=%v err=%v", ok, err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("cache dir must be recreated: %v", err)
	}
}

func TestDiskCache_Nil(t *testing.T) {
	var c *DiskCache
	if err := c.Put([32]byte{}, &LexPayload{}); err != nil {
		t.Error(err)
	}
	if ok, err := c.Get([32]byte{}, &LexPayload{}); ok || err != nil {
		t.Errorf("nil Get = %v, %v", ok, err)
	}
	if c.Dir() != "" || c.DropAll() != nil {
		t.Error("nil cache must be inert")
	}
}

func TestOpenDiskCache_XDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)
	c, err := OpenDiskCache("sable")
	if err != nil {
		t.Fatal(err)
	}
	if c.Dir() != filepath.Join(base, "sable") {
		t.Errorf("dir = %q", c.Dir())
	}
}
