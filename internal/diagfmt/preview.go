package diagfmt

import (
	"errors"
	"fmt"
	"strings"

	"sable/internal/diag"
	"sable/internal/source"
)

// fixEditPreview holds the lines an edit touches, before and after applying it.
type fixEditPreview struct {
	before []string
	after  []string
}

func buildFixEditPreview(fs *source.FileSet, edit diag.FixEdit) (fixEditPreview, error) {
	if fs == nil {
		return fixEditPreview{}, errors.New("no file set")
	}
	file := fs.Get(edit.Span.File)
	if file == nil {
		return fixEditPreview{}, fmt.Errorf("file %d not found", edit.Span.File)
	}
	if err := file.Validate(edit.Span); err != nil {
		return fixEditPreview{}, err
	}

	blockStart, _, _ := file.LineBounds(file.LineCol(edit.Span.Start).Line)
	_, blockEnd, _ := file.LineBounds(file.LineCol(edit.Span.End).Line)
	block := string(file.Content[blockStart:blockEnd])

	from, to := edit.Span.Start-blockStart, edit.Span.End-blockStart
	after := block[:from] + edit.NewText + block[to:]
	return fixEditPreview{
		before: previewLines(block),
		after:  previewLines(after),
	}, nil
}

// previewLines splits on newlines; a trailing newline adds no empty line.
func previewLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
