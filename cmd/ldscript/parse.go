package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"ldscript/internal/diagfmt"
	"ldscript/internal/driver"
	"ldscript/internal/project"
	"ldscript/internal/session"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <script|->",
	Short: "Interpret a linker script and print the resulting link configuration",
	Long: `Parse reads a linker script, follows its INCLUDEs, resolves every input file
it names and prints the link configuration the script produces. Command-line
options and the ldscript.toml preset are applied first and win over ENTRY and OUTPUT.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	addParseFlags(parseCmd)
}

func addParseFlags(c *cobra.Command) {
	c.Flags().String("sysroot", "", "system root for =path and absolute file specifiers")
	c.Flags().StringP("entry", "e", "", "entry symbol (takes precedence over ENTRY)")
	c.Flags().StringP("output", "o", "", "output file (takes precedence over OUTPUT)")
	c.Flags().StringArrayP("search-dir", "L", nil, "add a library search directory (repeatable)")
	c.Flags().String("config", "", "path to ldscript.toml (default: search upwards from the working directory)")
	c.Flags().String("format", "pretty", "output format (pretty|json)")
	c.Flags().String("emit-session", "", "write the interpreted session as a msgpack snapshot")
	c.Flags().Int("max-include-depth", 0, "limit of nested INCLUDEs (0 = default)")
}

// seedSession builds the session the script starts from: preset first,
// then flags.
func seedSession(cmd *cobra.Command) (*session.Session, error) {
	sess := session.New()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	if configPath == "" {
		var ok bool
		configPath, ok, err = project.FindPreset(".")
		if err != nil {
			return nil, err
		}
		if !ok {
			configPath = ""
		}
	}
	if configPath != "" {
		preset, loadErr := project.LoadPreset(configPath)
		if loadErr != nil {
			return nil, loadErr
		}
		preset.Apply(sess)
	}

	flags := cmd.Flags()
	if flags.Changed("sysroot") {
		sess.Config.Sysroot, _ = flags.GetString("sysroot")
	}
	if flags.Changed("entry") {
		sess.Config.Entry, _ = flags.GetString("entry")
	}
	if flags.Changed("output") {
		sess.Config.OutputFile, _ = flags.GetString("output")
	}
	dirs, err := flags.GetStringArray("search-dir")
	if err != nil {
		return nil, fmt.Errorf("failed to get search-dir flag: %w", err)
	}
	for _, dir := range dirs {
		sess.Config.AddSearchPath(dir)
	}
	return sess, nil
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	emitPath, err := cmd.Flags().GetString("emit-session")
	if err != nil {
		return fmt.Errorf("failed to get emit-session flag: %w", err)
	}
	maxDepth, err := cmd.Flags().GetInt("max-include-depth")
	if err != nil {
		return fmt.Errorf("failed to get max-include-depth flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	sess, err := seedSession(cmd)
	if err != nil {
		return err
	}
	opts := driver.ParseOptions{
		MaxDiagnostics:  maxDiagnostics,
		Session:         sess,
		MaxIncludeDepth: maxDepth,
	}

	var result *driver.ParseResult
	if path == "-" {
		data, readErr := io.ReadAll(cmd.InOrStdin())
		if readErr != nil {
			return fmt.Errorf("failed to read stdin: %w", readErr)
		}
		result = driver.ParseSource(cmd.Context(), "<stdin>", data, opts)
	} else {
		result, err = driver.Parse(cmd.Context(), path, opts)
		if err != nil {
			return err
		}
	}

	if result.Bag.Len() > 0 {
		if format == "json" {
			jsonOpts := diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true, Max: maxDiagnostics}
			if err := diagfmt.JSON(cmd.ErrOrStderr(), result.Bag, result.FileSet, jsonOpts); err != nil {
				return err
			}
		} else {
			color, colorErr := useColor(cmd, os.Stderr)
			if colorErr != nil {
				return colorErr
			}
			result.Bag.Sort()
			diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, diagfmt.PrettyOpts{
				Color:     color,
				Context:   2,
				ShowNotes: true,
			})
		}
	}
	if timings {
		fmt.Fprint(cmd.ErrOrStderr(), result.Timer.Summary())
	}
	if result.Err != nil {
		return errReported
	}

	snap := result.Snapshot()
	if emitPath != "" {
		if err := session.WriteSnapshot(emitPath, snap); err != nil {
			return fmt.Errorf("failed to write session snapshot: %w", err)
		}
	}
	if quiet {
		return nil
	}
	return printSession(cmd, snap, format)
}

func printSession(cmd *cobra.Command, snap *session.Snapshot, format string) error {
	if format == "json" {
		return diagfmt.FormatSessionJSON(cmd.OutOrStdout(), snap)
	}
	color, err := useColor(cmd, os.Stdout)
	if err != nil {
		return err
	}
	return diagfmt.FormatSessionPretty(cmd.OutOrStdout(), snap, color)
}
