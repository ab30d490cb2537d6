package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"sable/internal/diag"
	"sable/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := addFile(t, fs, "/home/user/project/src/test.sb", "let x = \"unterminated string\n")
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 8, End: 28}, "unterminated string literal"))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"absolute", PathModeAbsolute, "/home/user/project/src/test.sb:1:9"},
		{"relative", PathModeRelative, "src/test.sb:1:9"},
		{"basename", PathModeBasename, "test.sb:1:9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode})
			output := buf.String()
			for _, want := range []string{tt.contains, "ERROR", "LEX1002", "unterminated string literal"} {
				if !strings.Contains(output, want) {
					t.Errorf("expected %q in output:\n%s", want, output)
				}
			}
		})
	}
}

// TestPathModeAuto проверяет авто-режим выбора пути
func TestPathModeAuto(t *testing.T) {
	fs := source.NewFileSet()
	tests := []struct {
		path     string
		expected string
	}{
		{"test.sb", "test.sb:1:9"},
		{"/very/long/absolute/path/to/some/nested/directory/file.sb", "file.sb:1:9"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			fileID := addFile(t, fs, tt.path, "let x = 42\n")
			bag := diag.NewBag(10)
			bag.Add(diag.New(diag.SevWarning, diag.LexUnknownChar,
				source.Span{File: fileID, Start: 8, End: 10}, "test warning"))

			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeAuto})
			if !strings.HasPrefix(buf.String(), tt.expected) {
				t.Errorf("expected output to start with %q, got:\n%s", tt.expected, buf.String())
			}
		})
	}
}

func TestPrettySnippetCaret(t *testing.T) {
	fs := source.NewFileSet()
	fileID := addFile(t, fs, "x.sb", "let a = 1;\nlet b: u8 = a;\n")
	bag := diag.NewBag(2)
	bag.Add(diag.New(diag.SevError, diag.TypeSignChange,
		source.Span{File: fileID, Start: 23, End: 24}, "cannot coerce type `i32` to `u8`!"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: PathModeBasename})

	want := "x.sb:2:13: ERROR TYP3006: cannot coerce type `i32` to `u8`!\n" +
		"1 | let a = 1;\n" +
		"2 | let b: u8 = a;\n" +
		"  |             ^\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestPrettyCaretWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	// два широких символа перед ошибкой занимают 4 колонки терминала
	fileID := addFile(t, fs, "w.sb", "名前 $$")
	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevError, diag.LexUnknownChar,
		source.Span{File: fileID, Start: 7, End: 9}, "unknown character '$'"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	last := lines[len(lines)-1]
	if last != "  |      ^~" {
		t.Fatalf("caret line = %q", last)
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	content := "import core.util\n"
	fileID := addFile(t, fs, "test.sb", content)

	primary := source.Span{File: fileID, Start: 6, End: 10}
	d := diag.New(diag.SevWarning, diag.SynUnexpectedToken, primary, "unexpected token").
		WithNote(source.Span{File: fileID, Start: 11, End: 15}, "remove trailing identifier").
		WithFix("insert semicolon", diag.FixEdit{Span: source.Span{File: fileID, Start: 10, End: 10}, NewText: ";"})
	bag := diag.NewBag(4)
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true, ShowFixes: true})
	output := buf.String()

	for _, want := range []string{"note: test.sb:1:12", "fix #1: insert semicolon", `apply=";"`} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in output:\n%s", want, output)
		}
	}
	if strings.Contains(output, "preview:") {
		t.Fatalf("preview must be off by default:\n%s", output)
	}
}

func TestPrettyFixPreview(t *testing.T) {
	fs := source.NewFileSet()
	fileID := addFile(t, fs, "example.sb", "let a = 42 // missing semicolon")

	insertSpan := source.Span{File: fileID, Start: 10, End: 10}
	bag := diag.NewBag(2)
	bag.Add(diag.New(diag.SevWarning, diag.SynUnexpectedToken, insertSpan, "missing semicolon").
		WithFix("insert semicolon", diag.FixEdit{Span: insertSpan, NewText: ";"}))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowFixes: true, ShowPreview: true})
	output := buf.String()
	for _, want := range []string{"preview:", "- let a = 42 // missing semicolon", "+ let a = 42; // missing semicolon"} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestPrettyWidthClip(t *testing.T) {
	fs := source.NewFileSet()
	fileID := addFile(t, fs, "c.sb", "let value = "+strings.Repeat("x", 100))
	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevInfo, diag.LexInfo, source.Span{File: fileID, Start: 0, End: 3}, "info"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, Width: 20})
	if !strings.Contains(buf.String(), "let value = xxxxx...") {
		t.Fatalf("line not clipped:\n%s", buf.String())
	}
}

func TestPlain(t *testing.T) {
	fs := source.NewFileSet()
	fileID := addFile(t, fs, "p.sb", "let $")
	f := fs.Get(fileID)
	errs := []*diag.Error{
		diag.NewError(source.LocationOf(f, source.Span{File: fileID, Start: 4, End: 5}), diag.LexError, "unknown character '$'"),
		nil,
		diag.NewError(source.Location{}, diag.InternalError, "array cannot have type 'void'"),
	}
	var buf bytes.Buffer
	if err := Plain(&buf, errs); err != nil {
		t.Fatal(err)
	}
	want := "[LexError] at 1:5 : unknown character '$'\n[InternalError] at ? : array cannot have type 'void'\n"
	if buf.String() != want {
		t.Fatalf("got %q", buf.String())
	}
}
