package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "debug"} {
		l, err := ParseLevel(s)
		if err != nil || l.String() != s {
			t.Errorf("ParseLevel(%q) = %v, %v", s, l, err)
		}
	}
	if l, err := ParseLevel("DEBUG"); err != nil || l != LevelDebug {
		t.Errorf("upper case level not accepted")
	}
	if l, err := ParseLevel(""); err != nil || l != LevelOff {
		t.Errorf("empty level = %v, %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeItem, false},
		{LevelDebug, ScopeItem, true},
		{Level(42), ScopeDriver, false},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v", tt.level, tt.scope, got)
		}
	}
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"stream", "ring", "both"} {
		m, err := ParseMode(s)
		if err != nil || m.String() != s {
			t.Errorf("ParseMode(%q) = %v, %v", s, m, err)
		}
	}
	if _, err := ParseMode("disk"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestSpansNestThroughContext(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithTracer(context.Background(), NewStreamTracer(&buf, LevelDetail, FormatText))

	ctx, pass := Start(ctx, ScopePass, "lex")
	fileCtx, file := Start(ctx, ScopeFile, "lex:main.sb", A("bytes", 120))
	if CurrentSpan(fileCtx) != file.ID() || file.ID() == pass.ID() {
		t.Fatalf("span ids: pass=%d file=%d current=%d", pass.ID(), file.ID(), CurrentSpan(fileCtx))
	}
	itemCtx, item := Start(fileCtx, ScopeItem, "token")
	if item != nil || itemCtx != fileCtx {
		t.Fatal("item scope must be filtered at detail level")
	}
	item.Set("ignored", true).End("")
	file.Set("tokens", 12).End("")
	pass.End("done")
	if pass.End("again") != 0 {
		t.Error("second End must be a no-op")
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 events, got:\n%s", buf.String())
	}
	if !strings.Contains(lines[0], "+ pass lex") {
		t.Errorf("begin line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "  + file lex:main.sb bytes=120") {
		t.Errorf("nested begin line = %q", lines[1])
	}
	if !strings.Contains(lines[2], "- file lex:main.sb [") || !strings.HasSuffix(lines[2], "bytes=120 tokens=12") {
		t.Errorf("end line = %q", lines[2])
	}
	if !strings.Contains(lines[3], "(done)") {
		t.Errorf("detail missing: %q", lines[3])
	}
}

func TestPointNDJSON(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithTracer(context.Background(), NewStreamTracer(&buf, LevelDebug, FormatNDJSON))
	ctx, span := Start(ctx, ScopePass, "coerce")
	buf.Reset()
	Point(ctx, ScopeItem, "coerce_line", "i8 -> i64", A("line", 3))
	span.End("")

	first, _, _ := strings.Cut(buf.String(), "\n")
	var ev map[string]any
	if err := json.Unmarshal([]byte(first), &ev); err != nil {
		t.Fatalf("invalid ndjson %q: %v", first, err)
	}
	if ev["kind"] != "point" || ev["scope"] != "item" || ev["detail"] != "i8 -> i64" {
		t.Fatalf("event = %v", ev)
	}
	if ev["parent_id"] != float64(span.ID()) {
		t.Fatalf("parent_id = %v, want %d", ev["parent_id"], span.ID())
	}
	attrs, _ := ev["attrs"].([]any)
	if len(attrs) != 1 {
		t.Fatalf("attrs = %v", ev["attrs"])
	}
}

func TestRingTracerWraps(t *testing.T) {
	tr := NewRingTracer(3, LevelDebug)
	ctx := WithTracer(context.Background(), tr)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(ctx, ScopePass, name, "")
	}
	if tr.Len() != 3 {
		t.Fatalf("len = %d", tr.Len())
	}
	snap := tr.Snapshot()
	for i, want := range []string{"c", "d", "e"} {
		if snap[i].Name != want {
			t.Errorf("snap[%d] = %s, want %s", i, snap[i].Name, want)
		}
	}

	var buf bytes.Buffer
	if err := tr.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Fatalf("dump:\n%s", buf.String())
	}
}

func TestMultiTracerFansOut(t *testing.T) {
	var buf bytes.Buffer
	ring := NewRingTracer(8, LevelPhase)
	multi := NewMultiTracer(LevelPhase, NewStreamTracer(&buf, LevelPhase, FormatText), ring)
	if r, ok := multi.Ring(); !ok || r != ring {
		t.Fatal("Ring() must find the ring target")
	}

	_, span := Start(WithTracer(context.Background(), multi), ScopeDriver, "tokenize")
	span.End("")

	if ring.Len() != 2 || strings.Count(buf.String(), "\n") != 2 {
		t.Fatalf("ring=%d stream=%q", ring.Len(), buf.String())
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr != Nop {
		t.Fatalf("New(off) = %v, %v", tr, err)
	}
	_, span := Start(WithTracer(context.Background(), tr), ScopeDriver, "x")
	if span != nil || span.End("") != 0 {
		t.Fatal("disabled tracer must not open spans")
	}
}

func TestNewStreamToWriter(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeStream, Output: &buf, Format: FormatNDJSON})
	if err != nil {
		t.Fatal(err)
	}
	Point(WithTracer(context.Background(), tr), ScopeDriver, "start", "")
	if !strings.HasPrefix(buf.String(), "{") {
		t.Fatalf("expected ndjson, got %q", buf.String())
	}
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestNewBufferedFile(t *testing.T) {
	path := t.TempDir() + "/trace.ndjson"
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, OutputPath: path})
	if err != nil {
		t.Fatal(err)
	}
	Point(WithTracer(context.Background(), tr), ScopePass, "lex", "")
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
	multi, ok := tr.(*MultiTracer)
	if !ok {
		t.Fatalf("both mode built %T", tr)
	}
	if r, _ := multi.Ring(); r.Len() != 1 {
		t.Fatal("ring target missed the event")
	}
}

func TestContextDefaults(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatal("empty context must yield Nop")
	}
	if CurrentSpan(context.Background()) != 0 {
		t.Fatal("no span expected on a bare context")
	}
	ring := NewRingTracer(4, LevelDebug)
	if FromContext(WithTracer(context.Background(), ring)) != Tracer(ring) {
		t.Fatal("tracer not propagated")
	}
}

func TestHeartbeat(t *testing.T) {
	ring := NewRingTracer(64, LevelError)
	_, span := Start(WithTracer(context.Background(), NewRingTracer(4, LevelPhase)), ScopePass, "stuck")
	stop := StartHeartbeat(ring, 5*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	stop()
	stop()
	span.End("")

	beats := ring.Snapshot()
	if len(beats) == 0 {
		t.Fatal("no heartbeat recorded at error level")
	}
	if beats[0].Kind != KindHeartbeat || beats[0].Attrs[0].Key != "active" || beats[0].Attrs[0].Value == "0" {
		t.Fatalf("heartbeat = %+v", beats[0])
	}
	StartHeartbeat(Nop, time.Millisecond)()
}

func TestConcurrentEmit(t *testing.T) {
	ring := NewRingTracer(1024, LevelDebug)
	ctx := WithTracer(context.Background(), ring)
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				Point(ctx, ScopeItem, "tok", "")
			}
		}()
	}
	wg.Wait()
	if ring.Len() != 400 {
		t.Fatalf("got %d events", ring.Len())
	}
}

func TestFormatForPath(t *testing.T) {
	cases := map[string]Format{
		"trace.ndjson":    FormatNDJSON,
		"out/trace.jsonl": FormatNDJSON,
		"trace.log":       FormatText,
		"-":               FormatText,
	}
	for path, want := range cases {
		if got := FormatForPath(path); got != want {
			t.Errorf("FormatForPath(%q) = %v, want %v", path, got, want)
		}
	}
}
