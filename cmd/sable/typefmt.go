package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"sable/internal/types"
)

var typefmtCmd = &cobra.Command{
	Use:   "typefmt [flags] TYPE...",
	Short: "Parse type texts and print their canonical form",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTypefmt,
}

func init() {
	typefmtCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type typeInfoJSON struct {
	Input      string  `json:"input"`
	Canonical  string  `json:"canonical,omitempty"`
	Kind       string  `json:"kind,omitempty"`
	Base       string  `json:"base,omitempty"`
	References *uint32 `json:"references,omitempty"`
	Alignment  *uint32 `json:"alignment,omitempty"`
	Offset     *uint32 `json:"offset,omitempty"`
	Size       *uint32 `json:"size,omitempty"`
	Runtime    bool    `json:"runtime_sized,omitempty"`
	Error      string  `json:"error,omitempty"`
}

func describeType(input string) typeInfoJSON {
	info := typeInfoJSON{Input: input}
	t, err := types.Parse(input)
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.Canonical = t.String()
	info.Kind = t.Kind().String()
	if t.IsComplex() {
		info.Base = t.Base().String()
	}
	if p, ok := t.Pointer(); ok {
		refs, align, off := p.References(), p.Alignment(), p.Offset()
		info.References, info.Alignment, info.Offset = &refs, &align, &off
	}
	if a, ok := t.Array(); ok {
		size := a.Size()
		info.Size = &size
		info.Runtime = a.RuntimeSized()
	}
	return info
}

func runTypefmt(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	infos := make([]typeInfoJSON, len(args))
	failed := false
	for i, arg := range args {
		infos[i] = describeType(arg)
		failed = failed || infos[i].Error != ""
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		renderTypesPretty(out, infos)
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(infos); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if failed {
		return exitCode(1)
	}
	return nil
}

func renderTypesPretty(out io.Writer, infos []typeInfoJSON) {
	for _, info := range infos {
		if info.Error != "" {
			fmt.Fprintf(out, "%-16q %s %s\n", info.Input, failColor.Sprint("error"), info.Error)
			continue
		}
		fmt.Fprintf(out, "%-16q %s  kind=%s", info.Input, info.Canonical, info.Kind)
		if info.References != nil {
			fmt.Fprintf(out, " refs=%d align=%d offset=%d", *info.References, *info.Alignment, *info.Offset)
		}
		if info.Size != nil {
			if info.Runtime {
				fmt.Fprint(out, " size=?")
			} else {
				fmt.Fprintf(out, " size=%d", *info.Size)
			}
		}
		if info.Base != "" {
			fmt.Fprintf(out, " base=%s", info.Base)
		}
		fmt.Fprintln(out)
	}
}
