package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"sable/internal/driver"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--color=off"}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	traceCleanup()
	resetFlags(rootCmd)
	return out.String(), err
}

// resetFlags возвращает флаги к значениям по умолчанию: cobra хранит их
// между вызовами Execute.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func TestParseSwitch(t *testing.T) {
	for in, want := range map[string]switchMode{"": switchAuto, "AUTO": switchAuto, " on ": switchOn, "off": switchOff} {
		got, err := parseSwitch("ui", in)
		if err != nil || got != want {
			t.Errorf("parseSwitch(%q) = %s, %v", in, got, err)
		}
	}
	if _, err := parseSwitch("ui", "sometimes"); err == nil || !strings.Contains(err.Error(), "--ui") {
		t.Errorf("expected --ui error, got %v", err)
	}
	if !switchOn.enabled(nil, true) || switchOff.enabled(os.Stdout, false) {
		t.Error("explicit modes must win")
	}
}

func TestColorFlag_Invalid(t *testing.T) {
	_, err := execute(t, "--color=sometimes", "version")
	if err == nil || !strings.Contains(err.Error(), "invalid --color value") {
		t.Errorf("err = %v", err)
	}
}

func TestDescribeType(t *testing.T) {
	p := describeType("**char")
	if p.Error != "" || p.Canonical != "**char" || p.Kind != "pointer" || p.References == nil || *p.References != 2 {
		t.Errorf("pointer info = %+v", p)
	}
	a := describeType("[?]u8")
	if a.Size == nil || *a.Size != 0 || !a.Runtime || a.Base != "u8" {
		t.Errorf("array info = %+v", a)
	}
	bad := describeType("[4]void")
	if bad.Error == "" {
		t.Error("array of void must fail")
	}
}

func TestCoerceCommand_Pair(t *testing.T) {
	out, err := execute(t, "coerce", "u8", "u32")
	if err != nil {
		t.Fatalf("err = %v\n%s", err, out)
	}
	if !strings.Contains(out, "u8 -> u32") || !strings.Contains(out, "widening") {
		t.Errorf("output:\n%s", out)
	}

	out, err = execute(t, "coerce", "u32", "i32")
	var code exitCode
	if !errors.As(err, &code) || code != 1 {
		t.Fatalf("err = %v, want exit code 1", err)
	}
	if !strings.Contains(out, "FAIL") || !strings.Contains(out, "cannot coerce type `u32` to `i32`!") {
		t.Errorf("output:\n%s", out)
	}
}

func TestCoerceCommand_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.coerce")
	if err := os.WriteFile(path, []byte("[4]u8 -> string\n300: i32 -> u8\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "coerce", "--format=json", path)
	var code exitCode
	if !errors.As(err, &code) {
		t.Fatalf("err = %v, want exit code", err)
	}
	var payload coerceOutputJSON
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("bad json: %v\n%s", err, out)
	}
	if len(payload.Checks) != 2 || payload.Failed != 1 || payload.Conversions != 1 {
		t.Fatalf("payload = %+v", payload)
	}
	if payload.Checks[0].Conversion != "byte-array-to-string" {
		t.Errorf("conversion = %q", payload.Checks[0].Conversion)
	}
	if e := payload.Checks[1].Error; e == nil || e.Code != "TYP3008" || e.Kind != "TypeError" {
		t.Errorf("error = %+v", e)
	}
}

func TestDiagCommand_Dir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "ok.sb"), []byte("let a = 1;\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bad.sb"), []byte("let b = $;\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "diag", "--ui=off", "--format=json", dir)
	var code exitCode
	if !errors.As(err, &code) || code != 1 {
		t.Fatalf("err = %v\n%s", err, out)
	}
	var payload map[string]struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("bad json: %v\n%s", err, out)
	}
	counts := map[string]int{}
	for path, d := range payload {
		counts[filepath.Base(path)] = d.Count
	}
	if counts["ok.sb"] != 0 || counts["bad.sb"] != 1 {
		t.Errorf("counts = %v", counts)
	}
}

func brokenDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.sb"), []byte("let a = 1;\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(dir, "gone.sb"), filepath.Join(dir, "b.sb")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	return dir
}

func TestDiagCommand_DirPlainUnreadable(t *testing.T) {
	out, err := execute(t, "diag", "--ui=off", "--format=plain", brokenDir(t))
	var code exitCode
	if !errors.As(err, &code) || code != 1 {
		t.Fatalf("err = %v\n%s", err, out)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 1 || !strings.Contains(lines[0], "at 1:1 : failed to load file") || !strings.Contains(lines[0], "b.sb") {
		t.Errorf("plain output:\n%s", out)
	}
}

func TestDiagCommand_DirShortUnreadable(t *testing.T) {
	out, err := execute(t, "diag", "--ui=off", "--format=short", brokenDir(t))
	var code exitCode
	if !errors.As(err, &code) || code != 1 {
		t.Fatalf("err = %v\n%s", err, out)
	}
	if !strings.HasPrefix(out, "error IO4001 ") || !strings.Contains(out, "b.sb:1:1 failed to load file") || strings.Count(out, "\n") != 1 {
		t.Errorf("short output:\n%s", out)
	}
}

func TestTokenizeCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.sb")
	if err := os.WriteFile(path, []byte("fn main() {}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "tokenize", path)
	if err != nil {
		t.Fatalf("err = %v\n%s", err, out)
	}
	if !strings.Contains(out, "KwFn") || !strings.Contains(out, `"main"`) {
		t.Errorf("output:\n%s", out)
	}
}

func TestTokenizeCommand_CacheClear(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.sb")
	if err := os.WriteFile(path, []byte("let x = 1;\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cacheDir := filepath.Join(dir, "cache")
	stale := filepath.Join(cacheDir, "stale.mp")
	if err := os.MkdirAll(cacheDir, 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(stale, []byte("junk"), 0o600); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "--cache-clear", "--cache-dir", cacheDir, "tokenize", path)
	if err != nil {
		t.Fatalf("err = %v\n%s", err, out)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Errorf("stale entry survived --cache-clear: %v", err)
	}
	if fi, err := os.Stat(cacheDir); err != nil || !fi.IsDir() {
		t.Errorf("cache dir must be recreated: %v", err)
	}
}

func TestRenderCoercePretty_Quiet(t *testing.T) {
	res, err := driver.CheckCoercionsSource(context.Background(), "q", []byte("u8 -> u16\nu16 -> u8\n"), nil)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	renderCoercePretty(&buf, res, true)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], "FAIL") || !strings.Contains(lines[1], "note:") {
		t.Errorf("quiet output:\n%s", buf.String())
	}
}

func TestVersionCommand_JSON(t *testing.T) {
	out, err := execute(t, "version", "--format=json", "--hash")
	if err != nil {
		t.Fatal(err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("bad json: %v\n%s", err, out)
	}
	if payload.Tool != "sable" || payload.GitCommit == "" || payload.Version == "" {
		t.Errorf("payload = %+v", payload)
	}
}

func TestProfilingFlags(t *testing.T) {
	dir := t.TempDir()
	cpu := filepath.Join(dir, "cpu.out")
	mem := filepath.Join(dir, "mem.out")
	out, err := execute(t, "--cpu-profile", cpu, "--mem-profile", mem, "typefmt", "[4]u8")
	if err != nil {
		t.Fatalf("err = %v\n%s", err, out)
	}
	for _, p := range []string{cpu, mem} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("profile not written: %v", err)
		}
	}
}

func TestTypefmtCommand_Error(t *testing.T) {
	out, err := execute(t, "typefmt", "u8", "[x]u8")
	var code exitCode
	if !errors.As(err, &code) {
		t.Fatalf("err = %v, want exit code", err)
	}
	if !strings.Contains(out, "error") {
		t.Errorf("output:\n%s", out)
	}
}
