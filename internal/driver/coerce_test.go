package driver

import (
	"context"
	"path/filepath"
	"testing"

	"sable/internal/diag"
	"sable/internal/typeck"
)

const coerceBatch = `# widening and friends
u8 -> u16
[4]u8 -> string   # byte array view
u32 -> i32
300: i32 -> u8
7: i32 -> u8
bogus
*void -> void
u8 -> nope
`

func TestCheckCoercionsSource(t *testing.T) {
	res, err := CheckCoercionsSource(context.Background(), "batch.coerce", []byte(coerceBatch), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Checks) != 8 {
		t.Fatalf("checks = %d, want 8", len(res.Checks))
	}

	want := []struct {
		conv typeck.Conversion
		code diag.Code // 0: успех
	}{
		{typeck.ConvWidening, 0},
		{typeck.ConvByteArrayToString, 0},
		{typeck.ConvNone, diag.TypeSignChange},
		{typeck.ConvNone, diag.TypeLiteralOutOfRange},
		{typeck.ConvLiteral, 0},
		{typeck.ConvNone, diag.SynUnexpectedToken},
		{typeck.ConvNone, diag.TypeVoidCoercion},
		{typeck.ConvNone, diag.SynBadTypeText},
	}
	for i, w := range want {
		c := res.Checks[i]
		if w.code == 0 {
			if c.Err != nil {
				t.Errorf("line %d: unexpected error %v", i, c.Err)
			}
			if c.Conversion != w.conv {
				t.Errorf("line %d: conversion %v, want %v", i, c.Conversion, w.conv)
			}
			continue
		}
		de, ok := diag.AsError(c.Err)
		if !ok {
			t.Errorf("line %d: error %v is not a diag.Error", i, c.Err)
			continue
		}
		if de.Code != w.code {
			t.Errorf("line %d: code %v, want %v", i, de.Code, w.code)
		}
	}

	if got := res.Checks[2].Err.Error(); got != "[TypeError] at 4:1 : cannot coerce type `u32` to `i32`!" {
		t.Errorf("display = %q", got)
	}
	if got := res.Checks[5].Err.Error(); got != "[ParseError] at 7:1 : expected `src -> dst`, got \"bogus\"" {
		t.Errorf("display = %q", got)
	}
	// span без хвостового комментария
	if s := res.Checks[1].Span; s.End-s.Start != uint32(len("[4]u8 -> string")) {
		t.Errorf("comment not stripped from span: %v", s)
	}

	if len(res.Conversions) != 3 {
		t.Errorf("conversions = %d, want 3", len(res.Conversions))
	}
	if !res.Failed() || res.Bag.Len() != 5 {
		t.Errorf("failed=%v bag=%d", res.Failed(), res.Bag.Len())
	}
	if res.Checks[4].Literal == nil || res.Checks[4].Literal.Int != 7 {
		t.Errorf("literal not recorded: %+v", res.Checks[4].Literal)
	}
}

func TestCheckCoercions_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ok.coerce")
	writeFile(t, path, "i8 -> i64\nf32 -> f64\nchar -> char\n")
	res, err := CheckCoercions(context.Background(), path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Failed() || res.Bag.Len() != 0 {
		t.Fatalf("unexpected failures: %v", res.Bag.Items())
	}
	if res.Checks[2].Conversion != typeck.ConvIdentity {
		t.Errorf("identity = %v", res.Checks[2].Conversion)
	}
	if len(res.Conversions) != 2 {
		t.Errorf("identity must not be recorded, got %d conversions", len(res.Conversions))
	}
}

func TestCheckCoercions_EmptyBatch(t *testing.T) {
	res, err := CheckCoercionsSource(context.Background(), "empty", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Checks) != 0 || res.Failed() {
		t.Errorf("empty batch: %+v", res.Checks)
	}
}

func TestCheckCoercions_Progress(t *testing.T) {
	for src, want := range map[string]Status{"u8 -> u16\n": StatusDone, "u8 -> u16\nu16 -> u8\n": StatusError} {
		var events []Event
		sink := SinkFunc(func(e Event) { events = append(events, e) })
		res, err := CheckCoercionsSource(context.Background(), "batch", []byte(src), &Options{Progress: sink})
		if err != nil {
			t.Fatal(err)
		}
		if len(events) != 2 {
			t.Fatalf("%q: events = %+v", src, events)
		}
		if events[0].Stage != StageCoerce || events[0].Status != StatusWorking || events[0].File != res.File.Path {
			t.Errorf("%q: first event = %+v", src, events[0])
		}
		last := events[1]
		if last.Stage != StageCoerce || last.Status != want || (last.Err != nil) != (want == StatusError) {
			t.Errorf("%q: last event = %+v, want status %s", src, last, want)
		}
	}
}

func TestCheckCoercions_Testdata(t *testing.T) {
	res, err := CheckCoercions(context.Background(), filepath.Join("..", "..", "testdata", "coerce", "basic.coerce"), nil)
	if err != nil {
		t.Fatal(err)
	}
	failed := 0
	for _, c := range res.Checks {
		if c.Err != nil {
			failed++
		}
	}
	if len(res.Checks) != 13 || failed != 7 {
		t.Fatalf("checks = %d, failed = %d; want 13 and 7", len(res.Checks), failed)
	}
	if len(res.Conversions) != 6 {
		t.Errorf("conversions = %d, want 6", len(res.Conversions))
	}
}
