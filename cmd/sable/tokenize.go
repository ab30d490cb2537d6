package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sable/internal/diagfmt"
	"sable/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.sb",
	Short: "Tokenize a sable source file",
	Long:  `Tokenize breaks down a sable source file into its constituent tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

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
	result, err := driver.Tokenize(cmd.Context(), filePath, opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// диагностика: в stderr, токены: в stdout
	if result.Bag.Len() > 0 && !settings.quiet {
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:     settings.useColor(os.Stderr),
			Context:   2,
			PathMode:  settings.pathMode(false),
			ShowNotes: settings.cfg.Diagnostics.WithNotes,
		})
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		err = diagfmt.FormatTokensJSON(out, result.Tokens)
	} else {
		err = diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return exitCode(1)
	}
	return nil
}
