package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"ldscript/internal/diag"
	"ldscript/internal/session"
)

var showCmd = &cobra.Command{
	Use:   "show [flags] <snapshot>",
	Short: "Print a session snapshot written by parse --emit-session",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runShow(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	snap, err := session.ReadSnapshot(args[0])
	if err != nil {
		if errors.Is(err, session.ErrSnapshotSchema) {
			return err
		}
		return fmt.Errorf("%s %s: %w", diag.IOSnapshotMalformed.ID(), diag.IOSnapshotMalformed.Title(), err)
	}
	return printSession(cmd, snap, format)
}
