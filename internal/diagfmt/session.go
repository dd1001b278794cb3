package diagfmt

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"ldscript/internal/session"
)

type SessionJSON struct {
	Script      string                   `json:"script"`
	ScriptHash  string                   `json:"script_hash,omitempty"`
	Entry       string                   `json:"entry,omitempty"`
	OutputFile  string                   `json:"output,omitempty"`
	Sysroot     string                   `json:"sysroot,omitempty"`
	SearchPaths []string                 `json:"search_dirs"`
	Undefined   []string                 `json:"undefined"`
	Sections    []session.SectionPayload `json:"sections"`
	Files       []session.InputFile      `json:"files"`
	Libraries   []session.Library        `json:"libraries"`
}

func sessionJSON(snap *session.Snapshot) SessionJSON {
	out := SessionJSON{
		Script:      snap.Script,
		Entry:       snap.Entry,
		OutputFile:  snap.OutputFile,
		Sysroot:     snap.Sysroot,
		SearchPaths: orEmpty(snap.SearchPaths),
		Undefined:   orEmpty(snap.Undefined),
		Sections:    orEmpty(snap.Sections),
		Files:       orEmpty(snap.Files),
		Libraries:   orEmpty(snap.Libraries),
	}
	if snap.ScriptHash != [32]byte{} {
		out.ScriptHash = hex.EncodeToString(snap.ScriptHash[:])
	}
	return out
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// FormatSessionJSON выводит итог интерпретации скрипта в JSON.
func FormatSessionJSON(w io.Writer, snap *session.Snapshot) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(sessionJSON(snap))
}

// FormatSessionPretty выводит итог интерпретации скрипта по разделам.
func FormatSessionPretty(w io.Writer, snap *session.Snapshot, useColor bool) error {
	head := color.New(color.Bold)
	flag := color.New(color.FgYellow)
	if useColor {
		head.EnableColor()
		flag.EnableColor()
	} else {
		head.DisableColor()
		flag.DisableColor()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", head.Sprint("script:"), snap.Script)
	field := func(name, value string) {
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(&b, "%s %s\n", head.Sprintf("%-8s", name+":"), value)
	}
	field("entry", snap.Entry)
	field("output", snap.OutputFile)
	field("sysroot", snap.Sysroot)

	list := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintln(&b, head.Sprint(title+":"))
		for _, it := range items {
			fmt.Fprintf(&b, "  %s\n", it)
		}
	}
	list("search dirs", snap.SearchPaths)
	list("undefined", snap.Undefined)

	if len(snap.Sections) > 0 {
		fmt.Fprintln(&b, head.Sprint("sections:"))
		for _, sec := range snap.Sections {
			fmt.Fprintf(&b, "  %s: %s\n", sec.Name, strings.Join(sec.Patterns, " "))
		}
	}
	if len(snap.Files) > 0 {
		fmt.Fprintln(&b, head.Sprint("files:"))
		for _, f := range snap.Files {
			fmt.Fprintf(&b, "  %s%s\n", f.Path, asNeededMark(f.AsNeeded, flag))
		}
	}
	if len(snap.Libraries) > 0 {
		fmt.Fprintln(&b, head.Sprint("libraries:"))
		for _, l := range snap.Libraries {
			fmt.Fprintf(&b, "  -l%s%s\n", l.Name, asNeededMark(l.AsNeeded, flag))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func asNeededMark(on bool, c *color.Color) string {
	if !on {
		return ""
	}
	return " " + c.Sprint("[as-needed]")
}
