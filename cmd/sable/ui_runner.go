package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"sable/internal/driver"
	"sable/internal/source"
	"sable/internal/ui"
)

type tokenizeDirOutcome struct {
	fs      *source.FileSet
	results []driver.TokenizeDirResult
	err     error
}

// runTokenizeDirWithUI runs TokenizeDir in the background and renders its
// progress events until it finishes.
func runTokenizeDirWithUI(ctx context.Context, title string, files []string, dir string, opts *driver.Options) (*source.FileSet, []driver.TokenizeDirResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan tokenizeDirOutcome, 1)

	go func() {
		optsCopy := *opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		fs, results, err := driver.TokenizeDir(ctx, dir, &optsCopy)
		outcomeCh <- tokenizeDirOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// после выхода из UI (в т.ч. по ctrl+c) дочитываем события, чтобы воркеры не заблокировались
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
