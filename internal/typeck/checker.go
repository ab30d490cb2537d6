package typeck

import (
	"cmp"
	"slices"

	"sable/internal/diag"
	"sable/internal/source"
	"sable/internal/types"
)

// Checker runs coercions for one translation unit. Accepted non-identity
// coercions are recorded per span; failures are placed at their span and
// forwarded to the reporter, so they accumulate instead of stopping the unit.
type Checker struct {
	types       *types.Interner
	file        *source.File
	reporter    diag.Reporter
	conversions map[source.Span]ImplicitConversion
	failures    int
}

// NewChecker creates a checker for file. A nil reporter drops diagnostics;
// failures are still returned and counted.
func NewChecker(in *types.Interner, file *source.File, r diag.Reporter) *Checker {
	if in == nil {
		in = types.NewInterner()
	}
	return &Checker{
		types:       in,
		file:        file,
		reporter:    r,
		conversions: make(map[source.Span]ImplicitConversion),
	}
}

// Types returns the interner shared by the checker.
func (c *Checker) Types() *types.Interner { return c.types }

// Coerce checks that the value at sp of type src may be used as dst.
func (c *Checker) Coerce(sp source.Span, src, dst types.TypeID) error {
	srcT, ok1 := c.types.Lookup(src)
	dstT, ok2 := c.types.Lookup(dst)
	if !ok1 || !ok2 {
		return c.fail(sp, diag.Errorf(source.Location{}, diag.InternalUnknown,
			"unknown type id in coercion `%s -> %s`", types.Label(c.types, src), types.Label(c.types, dst)))
	}
	conv, err := Classify(srcT, dstT)
	if err != nil {
		return c.fail(sp, err)
	}
	c.record(sp, src, dst, conv)
	return nil
}

// CoerceLiteral checks a typed literal at sp against dst.
func (c *Checker) CoerceLiteral(sp source.Span, lit types.Literal, dst types.TypeID) error {
	dstT, ok := c.types.Lookup(dst)
	if !ok {
		return c.fail(sp, diag.Errorf(source.Location{}, diag.InternalUnknown,
			"unknown target type `%s` in literal coercion", types.Label(c.types, dst)))
	}
	conv, err := CoerceLiteral(lit, dstT)
	if err != nil {
		return c.fail(sp, err)
	}
	c.record(sp, c.types.Intern(types.FromSimple(lit.Type)), dst, conv)
	return nil
}

// Conversion returns the conversion recorded at sp.
func (c *Checker) Conversion(sp source.Span) (ImplicitConversion, bool) {
	conv, ok := c.conversions[sp]
	return conv, ok
}

// Conversions returns the recorded conversions ordered by position.
func (c *Checker) Conversions() []ImplicitConversion {
	out := make([]ImplicitConversion, 0, len(c.conversions))
	for _, conv := range c.conversions {
		out = append(out, conv)
	}
	slices.SortFunc(out, func(a, b ImplicitConversion) int {
		return cmp.Or(
			cmp.Compare(a.Span.File, b.Span.File),
			cmp.Compare(a.Span.Start, b.Span.Start),
			cmp.Compare(a.Span.End, b.Span.End),
		)
	})
	return out
}

// Failures returns the number of rejected coercions.
func (c *Checker) Failures() int { return c.failures }

func (c *Checker) record(sp source.Span, src, dst types.TypeID, conv Conversion) {
	if conv == ConvIdentity {
		return
	}
	c.conversions[sp] = ImplicitConversion{Source: src, Target: dst, Kind: conv, Span: sp}
}

func (c *Checker) fail(sp source.Span, err *diag.Error) *diag.Error {
	c.failures++
	placed := err.At(source.LocationOf(c.file, sp))
	placed.Report(c.reporter)
	return placed
}
