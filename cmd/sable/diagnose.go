package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"sable/internal/diag"
	"sable/internal/diagfmt"
	"sable/internal/driver"
	"sable/internal/source"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] <file.sb|directory>",
	Short: "Report lexical diagnostics for a file or directory",
	Long:  `Lex a sable source file, or every source file within a directory, and render the diagnostics`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDiagnose,
}

func init() {
	diagCmd.Flags().String("format", "", "output format (pretty|short|plain|json); defaults to [diagnostics].format")
	diagCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	diagCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	diagCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	diagCmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
}

type diagOptions struct {
	format    string
	withNotes bool
	fullPath  bool
	jobs      int
	ui        switchMode
}

func readDiagOptions(cmd *cobra.Command) (diagOptions, error) {
	var (
		o   diagOptions
		err error
	)
	flags := cmd.Flags()
	if o.format, err = flags.GetString("format"); err != nil {
		return o, fmt.Errorf("failed to get format flag: %w", err)
	}
	if o.format == "" {
		o.format = settings.cfg.Diagnostics.Format
	}
	switch o.format {
	case "pretty", "short", "plain", "json":
	default:
		return o, fmt.Errorf("unknown format: %s", o.format)
	}
	if o.withNotes, err = flags.GetBool("with-notes"); err != nil {
		return o, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	o.withNotes = o.withNotes || settings.cfg.Diagnostics.WithNotes
	if o.fullPath, err = flags.GetBool("fullpath"); err != nil {
		return o, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	if o.jobs, err = flags.GetInt("jobs"); err != nil {
		return o, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiFlag, err := flags.GetString("ui")
	if err != nil {
		return o, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if o.ui, err = parseSwitch("ui", uiFlag); err != nil {
		return o, err
	}
	return o, nil
}

// runDiagnose lexes the path and renders its diagnostics. It exits with
// status 1 when any file has errors.
func runDiagnose(cmd *cobra.Command, args []string) error {
	path := args[0]
	o, err := readDiagOptions(cmd)
	if err != nil {
		return err
	}
	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	opts, err := settings.driverOptions()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var failed bool
	if st.IsDir() {
		failed, err = diagnoseDir(cmd, out, path, o, opts)
	} else {
		failed, err = diagnoseFile(cmd, out, path, o, opts)
	}
	if err != nil {
		return err
	}
	if failed {
		return exitCode(1)
	}
	return nil
}

func diagnoseFile(cmd *cobra.Command, out io.Writer, path string, o diagOptions, opts *driver.Options) (bool, error) {
	result, err := driver.Tokenize(cmd.Context(), path, opts)
	if err != nil {
		return false, fmt.Errorf("diagnosis failed: %w", err)
	}
	pathMode := settings.pathMode(o.fullPath)

	switch o.format {
	case "pretty":
		diagfmt.Pretty(out, result.Bag, result.FileSet, prettyOpts(o, pathMode))
	case "short":
		if s := diag.FormatShortDiagnostics(result.Bag.Items(), result.FileSet, o.withNotes, pathMode.String()); s != "" {
			fmt.Fprintln(out, s)
		}
	case "plain":
		if err := diagfmt.Plain(out, result.Errors); err != nil {
			return false, err
		}
	case "json":
		if err := diagfmt.JSON(out, result.Bag, result.FileSet, jsonOpts(o, pathMode)); err != nil {
			return false, fmt.Errorf("failed to format diagnostics: %w", err)
		}
	}
	return result.Bag.HasErrors(), nil
}

func diagnoseDir(cmd *cobra.Command, out io.Writer, dir string, o diagOptions, opts *driver.Options) (bool, error) {
	opts.Jobs = o.jobs

	var (
		fs      *source.FileSet
		results []driver.TokenizeDirResult
		err     error
	)
	if o.ui.enabled(os.Stdout, settings.quiet) && o.format != "json" {
		files, lerr := driver.ListSourceFiles(dir, opts.Ext)
		if lerr != nil {
			return false, fmt.Errorf("diagnosis failed: %w", lerr)
		}
		fs, results, err = runTokenizeDirWithUI(cmd.Context(), "sable diag "+dir, files, dir, opts)
	} else {
		fs, results, err = driver.TokenizeDir(cmd.Context(), dir, opts)
	}
	if err != nil {
		return false, fmt.Errorf("diagnosis failed: %w", err)
	}

	failed := false
	for _, r := range results {
		if r.Bag.HasErrors() {
			failed = true
			break
		}
	}
	pathMode := settings.pathMode(o.fullPath)

	switch o.format {
	case "pretty":
		first := true
		for _, r := range results {
			if r.Bag.Len() == 0 && settings.quiet {
				continue
			}
			if !first {
				fmt.Fprintln(out)
			}
			first = false
			fmt.Fprintf(out, "== %s ==\n", dirDisplayPath(fs, r, pathMode))
			diagfmt.Pretty(out, r.Bag, fs, prettyOpts(o, pathMode))
		}
	case "plain":
		for _, r := range results {
			errs := r.Errors
			if !r.Loaded {
				errs = bagErrors(fs, r.Bag)
			}
			if err := diagfmt.Plain(out, errs); err != nil {
				return false, err
			}
		}
	case "short":
		merged := diag.NewBag(0)
		for _, r := range results {
			merged.Merge(r.Bag)
		}
		merged.Dedup()
		if s := diag.FormatShortDiagnostics(merged.Items(), fs, o.withNotes, pathMode.String()); s != "" {
			fmt.Fprintln(out, s)
		}
	case "json":
		output := make(map[string]diagfmt.DiagnosticsOutput, len(results))
		for _, r := range results {
			output[dirDisplayPath(fs, r, pathMode)] = diagfmt.BuildDiagnosticsOutput(r.Bag, fs, jsonOpts(o, pathMode))
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(output); err != nil {
			return false, fmt.Errorf("failed to encode diagnostics output: %w", err)
		}
	}
	return failed, nil
}

// bagErrors поднимает диагностики обратно в *diag.Error для plain-вывода
// файлов, которые не дошли до лексера.
func bagErrors(fs *source.FileSet, bag *diag.Bag) []*diag.Error {
	items := bag.Items()
	errs := make([]*diag.Error, 0, len(items))
	for _, d := range items {
		errs = append(errs, diag.Errorf(fs.Locate(d.Primary), d.Code, "%s", d.Message))
	}
	return errs
}

func dirDisplayPath(fs *source.FileSet, r driver.TokenizeDirResult, mode diagfmt.PathMode) string {
	if f := fs.Get(r.FileID); f != nil {
		return f.FormatPath(mode.String(), fs.BaseDir())
	}
	return r.Path
}

func prettyOpts(o diagOptions, mode diagfmt.PathMode) diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     settings.useColor(os.Stdout),
		Context:   2,
		PathMode:  mode,
		ShowNotes: o.withNotes,
	}
}

func jsonOpts(o diagOptions, mode diagfmt.PathMode) diagfmt.JSONOpts {
	return diagfmt.JSONOpts{
		IncludePositions: true,
		PathMode:         mode,
		IncludeNotes:     o.withNotes,
	}
}
