package typeck

import (
	"strings"
	"testing"

	"sable/internal/diag"
	"sable/internal/types"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		src, dst string
		want     Conversion
		code     diag.Code
	}{
		{"i32", "i32", ConvIdentity, 0},
		{"i8", "i64", ConvWidening, 0},
		{"u16", "u32", ConvWidening, 0},
		{"f16", "f64", ConvWidening, 0},
		{"i64", "i32", ConvNone, diag.TypeNarrowing},
		{"f64", "f32", ConvNone, diag.TypeNarrowing},
		{"i32", "u32", ConvNone, diag.TypeSignChange},
		{"u8", "i64", ConvNone, diag.TypeSignChange},
		{"i32", "f64", ConvNone, diag.TypeIntFloat},
		{"f32", "u64", ConvNone, diag.TypeIntFloat},
		{"char", "char", ConvIdentity, 0},
		{"bool", "bool", ConvIdentity, 0},
		{"string", "string", ConvIdentity, 0},
		{"char", "string", ConvNone, diag.TypeCannotCoerce},
		{"bool", "i32", ConvNone, diag.TypeCannotCoerce},
		{"u8", "char", ConvNone, diag.TypeCannotCoerce},
		{"main.Point", "main.Point", ConvNominal, 0},
		{"main.Point", "geo.Point", ConvNone, diag.TypeUserMismatch},
		{"main.Point", "i32", ConvNone, diag.TypeUserMismatch},
		{"[?]u8", "string", ConvByteArrayToString, 0},
		{"[16]u8", "string", ConvByteArrayToString, 0},
		{"[0]u8", "string", ConvByteArrayToString, 0},
		{"[?]i8", "string", ConvNone, diag.TypeUnsupportedCoercion},
		{"[?]u8", "[?]u8", ConvNone, diag.TypeUnsupportedCoercion},
		{"*char", "*char", ConvNone, diag.TypeUnsupportedCoercion},
		{"*char", "string", ConvNone, diag.TypeUnsupportedCoercion},
		{"string", "*char", ConvNone, diag.TypeUnsupportedCoercion},
		{"i32", "void", ConvNone, diag.TypeVoidCoercion},
		{"void", "void", ConvNone, diag.TypeVoidCoercion},
		{"void", "i32", ConvNone, diag.TypeVoidCoercion},
		{"...", "i32", ConvNone, diag.TypeVoidCoercion},
		{"i32", "...", ConvNone, diag.TypeVoidCoercion},
		{"[?]u8", "void", ConvNone, diag.TypeVoidCoercion},
	}
	for _, tt := range tests {
		t.Run(tt.src+"->"+tt.dst, func(t *testing.T) {
			src, dst := types.MustParse(tt.src), types.MustParse(tt.dst)
			got, err := Classify(src, dst)
			if got != tt.want {
				t.Fatalf("conversion = %s, want %s", got, tt.want)
			}
			if tt.code == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if Coerce(src, dst) != nil {
					t.Fatal("Coerce disagrees with Classify")
				}
				return
			}
			if err == nil {
				t.Fatal("expected an error")
			}
			if err.Code != tt.code || err.Kind != diag.TypeError {
				t.Fatalf("error %s/%s, want %s", err.Kind, err.Code.ID(), tt.code.ID())
			}
			msg := "cannot coerce type `" + src.String() + "` to `" + dst.String() + "`!"
			if err.Message != msg {
				t.Fatalf("message = %q, want %q", err.Message, msg)
			}
		})
	}
}

func TestCoerce_ErrorDisplay(t *testing.T) {
	err := Coerce(types.MustParse("[?]u8"), types.MustParse("*void"))
	if err == nil {
		t.Fatal("expected failure")
	}
	want := "[TypeError] at ? : cannot coerce type `[?]u8` to `*void`!"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
	if diag.KindOf(err) != diag.TypeError {
		t.Fatalf("KindOf = %s", diag.KindOf(err))
	}
}

func TestCoerce_InvalidType(t *testing.T) {
	_, err := Classify(types.Type{}, types.MustParse("i32"))
	if err == nil || err.Kind != diag.InternalError {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestCoerce_NotesExplain(t *testing.T) {
	_, err := Classify(types.MustParse("i64"), types.MustParse("i8"))
	if err == nil || len(err.Notes) != 1 {
		t.Fatalf("expected one note, got %+v", err)
	}
	if !strings.Contains(err.Notes[0].Msg, "explicit cast") {
		t.Fatalf("note = %q", err.Notes[0].Msg)
	}
}

func TestCoerceLiteral(t *testing.T) {
	mustInt := func(w types.Width, v int64) types.Literal {
		lit, err := types.IntLiteral(w, v)
		if err != nil {
			t.Fatal(err)
		}
		return lit
	}
	mustUint := func(w types.Width, v uint64) types.Literal {
		lit, err := types.UintLiteral(w, v)
		if err != nil {
			t.Fatal(err)
		}
		return lit
	}
	mustFloat := func(w types.Width, v float64) types.Literal {
		lit, err := types.FloatLiteral(w, v)
		if err != nil {
			t.Fatal(err)
		}
		return lit
	}

	tests := []struct {
		name string
		lit  types.Literal
		dst  string
		want Conversion
		code diag.Code
	}{
		{"same type", mustInt(types.Width32, 7), "i32", ConvIdentity, 0},
		{"narrow fits", mustInt(types.Width32, 100), "i8", ConvLiteral, 0},
		{"narrow overflow", mustInt(types.Width32, 300), "i8", ConvNone, diag.TypeLiteralOutOfRange},
		{"signed to unsigned", mustInt(types.Width32, 255), "u8", ConvLiteral, 0},
		{"negative to unsigned", mustInt(types.Width32, -1), "u64", ConvNone, diag.TypeLiteralOutOfRange},
		{"unsigned to signed", mustUint(types.Width64, 127), "i8", ConvLiteral, 0},
		{"unsigned too large", mustUint(types.Width64, 1<<63), "i64", ConvNone, diag.TypeLiteralOutOfRange},
		{"float narrow", mustFloat(types.Width64, 1.5), "f16", ConvLiteral, 0},
		{"float overflow half", mustFloat(types.Width64, 1e6), "f16", ConvNone, diag.TypeLiteralOutOfRange},
		{"int to float", mustInt(types.Width32, 1), "f64", ConvNone, diag.TypeIntFloat},
		{"int to string", mustInt(types.Width32, 1), "string", ConvNone, diag.TypeCannotCoerce},
		{"int to void", mustInt(types.Width32, 1), "void", ConvNone, diag.TypeVoidCoercion},
		{"int to pointer", mustInt(types.Width64, 0), "*u8", ConvNone, diag.TypeUnsupportedCoercion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CoerceLiteral(tt.lit, types.MustParse(tt.dst))
			if got != tt.want {
				t.Fatalf("conversion = %s, want %s", got, tt.want)
			}
			switch {
			case tt.code == 0 && err != nil:
				t.Fatalf("unexpected error: %v", err)
			case tt.code != 0 && (err == nil || err.Code != tt.code):
				t.Fatalf("error = %v, want code %s", err, tt.code.ID())
			}
		})
	}
}

func TestConversionString(t *testing.T) {
	for conv, want := range map[Conversion]string{
		ConvNone:              "none",
		ConvIdentity:          "identity",
		ConvWidening:          "widening",
		ConvByteArrayToString: "byte-array-to-string",
		ConvNominal:           "nominal",
		ConvLiteral:           "literal",
	} {
		if conv.String() != want {
			t.Errorf("%d.String() = %q, want %q", conv, conv.String(), want)
		}
	}
}
