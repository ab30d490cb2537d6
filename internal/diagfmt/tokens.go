package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"sable/internal/source"
	"sable/internal/token"
)

// TokenOutput is one element of `sable tokenize --format json`.
type TokenOutput struct {
	Kind    string      `json:"kind"`
	Text    string      `json:"text,omitempty"`
	Type    string      `json:"type,omitempty"`
	Span    source.Span `json:"span"`
	Leading []string    `json:"leading,omitempty"`
}

func tokenOutput(tok token.Token) TokenOutput {
	out := TokenOutput{Kind: tok.Kind.Name(), Text: tok.Text, Span: tok.Span}
	if tok.Kind == token.TypeIdent {
		out.Type = tok.Type.String()
	}
	for _, tr := range tok.Leading {
		out.Leading = append(out.Leading, tr.Kind.String())
	}
	return out
}

// FormatTokensPretty пишет по строке на токен:
// номер, вид, текст, позиция и виды leading trivia.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	var b strings.Builder
	for i, tok := range tokens {
		o := tokenOutput(tok)
		from, to := fs.Resolve(tok.Span)
		fmt.Fprintf(&b, "%3d: %-12s %q", i+1, o.Kind, o.Text)
		if o.Type != "" {
			b.WriteString(" type=" + o.Type)
		}
		fmt.Fprintf(&b, " at %d:%d-%d:%d", from.Line, from.Col, to.Line, to.Col)
		if len(o.Leading) > 0 {
			b.WriteString(" (leading: " + strings.Join(o.Leading, ", ") + ")")
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	out := make([]TokenOutput, len(tokens))
	for i, tok := range tokens {
		out[i] = tokenOutput(tok)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
