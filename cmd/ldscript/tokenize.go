package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ldscript/internal/diagfmt"
	"ldscript/internal/driver"
	"ldscript/internal/source"
	"ldscript/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <script>...",
	Short: "Split linker scripts into tokens",
	Long:  `Tokenize lexes one or more linker scripts without interpreting them; several files are lexed in parallel`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Int("jobs", 0, "max parallel workers for several files (0=auto)")
	tokenizeCmd.Flags().Bool("progress", false, "show per-file progress on a terminal")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	color, err := useColor(cmd, os.Stderr)
	if err != nil {
		return err
	}
	prettyOpts := diagfmt.PrettyOpts{Color: color, Context: 2}

	if len(args) == 1 {
		result, tokErr := driver.Tokenize(args[0], maxDiagnostics)
		if tokErr != nil {
			return fmt.Errorf("tokenization failed: %w", tokErr)
		}
		if result.Bag.Len() > 0 {
			diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, prettyOpts)
		}
		if err := printTokens(cmd, format, result.Tokens, result.FileSet); err != nil {
			return err
		}
		if result.Bag.HasErrors() {
			return errReported
		}
		return nil
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	showProgress, err := cmd.Flags().GetBool("progress")
	if err != nil {
		return fmt.Errorf("failed to get progress flag: %w", err)
	}
	var (
		fs      *source.FileSet
		results []driver.TokenizeFileResult
	)
	// прогресс рисуем только в терминал
	if showProgress && isTerminal(os.Stderr) {
		fs, results, err = runTokenizeWithUI(cmd.Context(), "tokenize", args, maxDiagnostics, jobs)
	} else {
		fs, results, err = driver.TokenizeFiles(cmd.Context(), args, maxDiagnostics, jobs)
	}
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	failed := false
	for _, r := range results {
		if r.Bag.Len() > 0 {
			diagfmt.Pretty(cmd.ErrOrStderr(), r.Bag, fs, prettyOpts)
		}
		failed = failed || r.Bag.HasErrors()
		if format == "pretty" {
			fmt.Fprintf(cmd.OutOrStdout(), "== %s ==\n", r.Path)
		}
		if err := printTokens(cmd, format, r.Tokens, fs); err != nil {
			return err
		}
	}
	if failed {
		return errReported
	}
	return nil
}

func printTokens(cmd *cobra.Command, format string, toks []token.Token, fs *source.FileSet) error {
	if format == "json" {
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), toks)
	}
	return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), toks, fs)
}

