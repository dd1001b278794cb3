package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"ldscript/internal/driver"
	"ldscript/internal/source"
	"ldscript/internal/ui"
)

type tokenizeOutcome struct {
	fs      *source.FileSet
	results []driver.TokenizeFileResult
	err     error
}

func runTokenizeWithUI(ctx context.Context, title string, files []string, maxDiagnostics, jobs int) (*source.FileSet, []driver.TokenizeFileResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan tokenizeOutcome, 1)

	go func() {
		fs, results, err := driver.TokenizeFilesWithProgress(ctx, files, maxDiagnostics, jobs, driver.ChannelSink{Ch: events})
		outcomeCh <- tokenizeOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// если UI упал раньше времени, воркеры не должны застрять на send
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
