package diagfmt

import (
	"fmt"
	"io"

	"sable/internal/diag"
)

// Plain writes each error on its own line in the "<kind> at <line>:<col> :
// <message>" form.
func Plain(w io.Writer, errs []*diag.Error) error {
	for _, e := range errs {
		if e == nil {
			continue
		}
		if _, err := fmt.Fprintln(w, e.Error()); err != nil {
			return err
		}
	}
	return nil
}
