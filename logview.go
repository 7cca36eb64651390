package main

import (
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// logView is a zap sink that keeps the most recent log lines in a binding.
type logView struct {
	mu    sync.Mutex
	lines []string
	limit int
	text  binding.String
}

func newLogView(text binding.String, limit int) *logView {
	return &logView{text: text, limit: limit}
}

func (l *logView) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range strings.Split(strings.ReplaceAll(string(p), "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		// Console encoder separates columns with tabs, which labels render poorly.
		l.lines = append(l.lines, strings.ReplaceAll(line, "\t", "  "))
	}
	if over := len(l.lines) - l.limit; l.limit > 0 && over > 0 {
		l.lines = append(l.lines[:0], l.lines[over:]...)
	}
	return len(p), l.text.Set(strings.Join(l.lines, "\n"))
}

func showFatalError(win fyne.Window, err error) {
	win.SetContent(widget.NewLabel(err.Error()))
	dialog.ShowError(err, win)
	win.ShowAndRun()
}

func showError(win fyne.Window, err error) {
	if err == nil {
		return
	}
	dialog.ShowError(err, win)
}

func storageFilter(exts []string) storage.FileFilter {
	return storage.NewExtensionFileFilter(exts)
}
