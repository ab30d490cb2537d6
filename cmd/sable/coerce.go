package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sable/internal/diag"
	"sable/internal/driver"
)

var coerceCmd = &cobra.Command{
	Use:   "coerce [flags] <batch-file | SRC DST>",
	Short: "Check implicit type coercions",
	Long: `Check implicit coercions between types. Either pass a batch file with one
"src -> dst" (or "value: type -> dst") per line, or two type texts.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCoerce,
}

func init() {
	coerceCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runCoerce(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	opts, err := settings.driverOptions()
	if err != nil {
		return err
	}

	var res *driver.CoerceResult
	if len(args) == 2 {
		line := args[0] + " -> " + args[1]
		res, err = driver.CheckCoercionsSource(cmd.Context(), "<args>", []byte(line), opts)
	} else {
		res, err = driver.CheckCoercions(cmd.Context(), args[0], opts)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		err = renderCoerceJSON(out, res)
	} else {
		renderCoercePretty(out, res, settings.quiet)
	}
	if err != nil {
		return err
	}
	if res.Failed() {
		return exitCode(1)
	}
	return nil
}

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
	dimColor  = color.New(color.Faint)
)

func renderCoercePretty(out io.Writer, res *driver.CoerceResult, quiet bool) {
	failures := 0
	for _, c := range res.Checks {
		line := res.File.LineCol(c.Span.Start).Line
		text := strings.TrimSpace(string(res.File.Content[c.Span.Start:c.Span.End]))
		if c.Err == nil {
			if !quiet {
				fmt.Fprintf(out, "%s %4d  %-32s %s\n", okColor.Sprint("ok  "), line, text, dimColor.Sprint(c.Conversion))
			}
			continue
		}
		failures++
		fmt.Fprintf(out, "%s %4d  %-32s %s\n", failColor.Sprint("FAIL"), line, text, c.Err)
		if de, ok := diag.AsError(c.Err); ok {
			for _, n := range de.Notes {
				fmt.Fprintf(out, "            note: %s\n", n.Msg)
			}
		}
	}
	if !quiet {
		fmt.Fprintf(out, "%d checked, %d failed, %d conversions recorded\n", len(res.Checks), failures, len(res.Conversions))
	}
}

type coerceCheckJSON struct {
	Line       uint32           `json:"line"`
	Source     string           `json:"source,omitempty"`
	Target     string           `json:"target,omitempty"`
	Literal    string           `json:"literal,omitempty"`
	Conversion string           `json:"conversion,omitempty"`
	Error      *coerceErrorJSON `json:"error,omitempty"`
}

type coerceErrorJSON struct {
	Code    string   `json:"code"`
	Kind    string   `json:"kind"`
	Message string   `json:"message"`
	Notes   []string `json:"notes,omitempty"`
}

type coerceOutputJSON struct {
	File        string            `json:"file"`
	Checks      []coerceCheckJSON `json:"checks"`
	Failed      int               `json:"failed"`
	Conversions int               `json:"conversions"`
}

func renderCoerceJSON(out io.Writer, res *driver.CoerceResult) error {
	payload := coerceOutputJSON{
		File:        res.File.Path,
		Checks:      make([]coerceCheckJSON, 0, len(res.Checks)),
		Conversions: len(res.Conversions),
	}
	for _, c := range res.Checks {
		item := coerceCheckJSON{Line: res.File.LineCol(c.Span.Start).Line}
		if c.Source.IsValid() {
			item.Source = c.Source.String()
		}
		if c.Target.IsValid() {
			item.Target = c.Target.String()
		}
		if c.Literal != nil {
			item.Literal = c.Literal.String()
		}
		if c.Err != nil {
			payload.Failed++
			item.Error = &coerceErrorJSON{Kind: diag.KindOf(c.Err).Name(), Message: c.Err.Error()}
			if de, ok := diag.AsError(c.Err); ok {
				item.Error.Code = de.Code.ID()
				item.Error.Message = de.Message
				for _, n := range de.Notes {
					item.Error.Notes = append(item.Error.Notes, n.Msg)
				}
			}
		} else {
			item.Conversion = c.Conversion.String()
		}
		payload.Checks = append(payload.Checks, item)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
