package driver

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"sable/internal/diag"
	"sable/internal/source"
	"sable/internal/trace"
	"sable/internal/typeck"
	"sable/internal/types"
)

// CoerceCheck is one line of a coercion batch:
//
//	src -> dst
//	value: type -> dst
//
// The second form coerces a typed numeric literal. '#' starts a comment.
type CoerceCheck struct {
	Span       source.Span // весь "src -> dst" без комментария
	Source     types.Type
	Target     types.Type
	Literal    *types.Literal
	Conversion typeck.Conversion
	Err        error
}

// CoerceResult holds the outcome of CheckCoercions.
type CoerceResult struct {
	FileSet     *source.FileSet
	File        *source.File
	Types       *types.Interner
	Checks      []CoerceCheck
	Conversions []typeck.ImplicitConversion
	Bag         *diag.Bag
}

// Failed reports whether any line was rejected.
func (r *CoerceResult) Failed() bool {
	for _, c := range r.Checks {
		if c.Err != nil {
			return true
		}
	}
	return false
}

// CheckCoercions runs every line of the batch file at path through one
// typeck.Checker. Malformed lines and rejected coercions become diagnostics
// at their span; the call itself fails only when the file cannot be read.
func CheckCoercions(ctx context.Context, path string, opts *Options) (*CoerceResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("coerce %s: %w", path, err)
	}
	return checkFile(ctx, fs, fs.Get(id), opts), nil
}

// CheckCoercionsSource is CheckCoercions over an in-memory batch.
func CheckCoercionsSource(ctx context.Context, name string, content []byte, opts *Options) (*CoerceResult, error) {
	fs := source.NewFileSet()
	id, err := fs.AddVirtual(name, content)
	if err != nil {
		return nil, err
	}
	return checkFile(ctx, fs, fs.Get(id), opts), nil
}

func checkFile(ctx context.Context, fs *source.FileSet, file *source.File, opts *Options) *CoerceResult {
	ctx, span := trace.Start(ctx, trace.ScopePass, "coerce", trace.A("file", source.BaseName(file.Path)))
	sink := opts.progress()
	started := time.Now()
	emit(sink, Event{File: file.Path, Stage: StageCoerce, Status: StatusWorking})

	bag := diag.NewBag(opts.maxDiagnostics())
	checker := typeck.NewChecker(types.NewInterner(), file, diag.BagReporter{Bag: bag})
	res := &CoerceResult{FileSet: fs, File: file, Types: checker.Types(), Bag: bag}

	for _, line := range splitLines(file) {
		check := checkLine(checker, bag, file, line)
		trace.Point(ctx, trace.ScopeItem, "coerce_line", describe(check))
		res.Checks = append(res.Checks, check)
	}

	res.Conversions = checker.Conversions()
	bag.Sort()
	bag.Dedup()
	span.Set("lines", len(res.Checks)).Set("failures", checker.Failures()).End("")

	done := Event{File: file.Path, Stage: StageCoerce, Status: StatusDone, Elapsed: time.Since(started)}
	for _, c := range res.Checks {
		if c.Err != nil {
			done.Status, done.Err = StatusError, c.Err
			break
		}
	}
	emit(sink, done)
	return res
}

func describe(c CoerceCheck) string {
	if c.Err != nil {
		return c.Err.Error()
	}
	return fmt.Sprintf("%s -> %s: %s", c.Source, c.Target, c.Conversion)
}

// segment is a trimmed piece of a line with its absolute offsets.
type segment struct {
	text       string
	start, end uint32
}

func (s segment) span(file *source.File) source.Span {
	return source.Span{File: file.ID, Start: s.start, End: s.end}
}

func trimSegment(content []byte, start, end uint32) segment {
	for start < end && isBlank(content[start]) {
		start++
	}
	for end > start && isBlank(content[end-1]) {
		end--
	}
	return segment{text: string(content[start:end]), start: start, end: end}
}

func isBlank(b byte) bool { return b == ' ' || b == '\t' || b == '\r' }

// splitLines returns the non-empty, comment-stripped lines of file.
func splitLines(file *source.File) []segment {
	var out []segment
	content := file.Content
	var start uint32
	n := uint32(len(content)) // bounded by FileSet.Add
	for start <= n {
		end := start
		for end < n && content[end] != '\n' {
			end++
		}
		stop := end
		if i := bytes.IndexByte(content[start:end], '#'); i >= 0 {
			stop = start + uint32(i) // #nosec G115 -- i < end-start
		}
		if seg := trimSegment(content, start, stop); seg.text != "" {
			out = append(out, seg)
		}
		start = end + 1
	}
	return out
}

func checkLine(c *typeck.Checker, bag *diag.Bag, file *source.File, line segment) CoerceCheck {
	check := CoerceCheck{Span: line.span(file)}

	arrow := strings.Index(line.text, "->")
	if arrow < 0 {
		check.Err = reject(bag, file, line.span(file),
			diag.Errorf(source.Location{}, diag.SynUnexpectedToken, "expected `src -> dst`, got %q", line.text))
		return check
	}
	arrowAt := line.start + uint32(arrow) // #nosec G115 -- arrow < len(line)
	left := trimSegment(file.Content, line.start, arrowAt)
	right := trimSegment(file.Content, arrowAt+2, line.end)

	dst, err := parseTypeAt(right)
	if err != nil {
		check.Err = reject(bag, file, right.span(file), err)
		return check
	}
	check.Target = dst
	dstID := c.Types().Intern(dst)

	if colon := strings.IndexByte(left.text, ':'); colon >= 0 {
		colonAt := left.start + uint32(colon) // #nosec G115 -- colon < len(left)
		value := trimSegment(file.Content, left.start, colonAt)
		typ := trimSegment(file.Content, colonAt+1, left.end)
		lit, err := parseLiteral(value, typ)
		if err != nil {
			check.Err = reject(bag, file, left.span(file), err)
			return check
		}
		check.Literal = &lit
		check.Source = types.FromSimple(lit.Type)
		if err := c.CoerceLiteral(left.span(file), lit, dstID); err != nil {
			check.Err = err
			return check
		}
	} else {
		src, err := parseTypeAt(left)
		if err != nil {
			check.Err = reject(bag, file, left.span(file), err)
			return check
		}
		check.Source = src
		if err := c.Coerce(left.span(file), c.Types().Intern(src), dstID); err != nil {
			check.Err = err
			return check
		}
	}

	check.Conversion = typeck.ConvIdentity
	if conv, ok := c.Conversion(left.span(file)); ok {
		check.Conversion = conv.Kind
	}
	return check
}

// reject places err at sp and adds it to bag.
func reject(bag *diag.Bag, file *source.File, sp source.Span, err error) error {
	de, ok := diag.AsError(err)
	if !ok {
		de = diag.Wrap(source.Location{}, diag.InternalUnknown, err)
	}
	placed := de.At(source.LocationOf(file, sp))
	bag.AddError(placed)
	return placed
}

func parseTypeAt(seg segment) (types.Type, error) {
	if seg.text == "" {
		return types.Type{}, diag.Errorf(source.Location{}, diag.SynBadTypeText, "missing type")
	}
	return types.Parse(seg.text)
}

func parseLiteral(value, typ segment) (types.Literal, error) {
	t, err := parseTypeAt(typ)
	if err != nil {
		return types.Literal{}, err
	}
	st, ok := t.Simple()
	if !ok || !st.Kind.IsNumeric() {
		return types.Literal{}, diag.Errorf(source.Location{}, diag.SynBadTypeText,
			"literal type must be numeric, got `%s`", t)
	}
	bad := func(err error) error {
		return diag.Errorf(source.Location{}, diag.LexBadNumber, "bad %s literal %q: %v", st, value.text, err)
	}
	switch st.Kind {
	case types.KindInt:
		v, err := strconv.ParseInt(value.text, 0, 64)
		if err != nil {
			return types.Literal{}, bad(err)
		}
		return types.IntLiteral(st.Width, v)
	case types.KindUint:
		v, err := strconv.ParseUint(value.text, 0, 64)
		if err != nil {
			return types.Literal{}, bad(err)
		}
		return types.UintLiteral(st.Width, v)
	default:
		v, err := strconv.ParseFloat(value.text, 64)
		if err != nil {
			return types.Literal{}, bad(err)
		}
		return types.FloatLiteral(st.Width, v)
	}
}
