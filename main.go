package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"stackchem/nuclidetable/internal/logging"
	"stackchem/nuclidetable/nuclide"
)

func main() {
	fyneApp := app.NewWithID(fyneAppID)
	win := fyneApp.NewWindow("Nuclide table → Maxima")
	win.Resize(fyne.NewSize(1024, 768))

	cfg, err := nuclide.LoadConfig(configFile)
	if err != nil {
		showFatalError(win, fmt.Errorf("failed to load settings: %w", err))
		return
	}

	logText := binding.NewString()
	logger, err := logging.New(cfg.Logging, os.Stdout, newLogView(logText, logLines))
	if err != nil {
		showFatalError(win, err)
		return
	}
	defer logger.Sync()

	ctx := context.Background()
	cfgMu := sync.Mutex{}

	saveConfig := func() {
		cfgMu.Lock()
		defer cfgMu.Unlock()
		if err := nuclide.SaveConfig(configFile, cfg); err != nil {
			logger.Warn("Failed to save settings", zap.Error(err))
		}
	}
	defer saveConfig()

	currentConfig := func() nuclide.Config {
		cfgMu.Lock()
		defer cfgMu.Unlock()
		return cfg.Clone()
	}

	// Paths
	inputEntry := widget.NewEntry()
	inputEntry.SetPlaceHolder("NuDat export (.csv, .tsv, .xlsx)")
	inputEntry.SetText(cfg.Input.Path)
	outputEntry := widget.NewEntry()
	outputEntry.SetPlaceHolder(defaultOutputFile)
	outputEntry.SetText(cfg.Output.Path)
	listNameEntry := widget.NewEntry()
	listNameEntry.SetText(cfg.Output.ListName)

	inputEntry.OnChanged = func(v string) {
		cfgMu.Lock()
		cfg.Input.Path = strings.TrimSpace(v)
		cfgMu.Unlock()
	}
	outputEntry.OnChanged = func(v string) {
		cfgMu.Lock()
		cfg.Output.Path = strings.TrimSpace(v)
		cfgMu.Unlock()
	}
	listNameEntry.OnChanged = func(v string) {
		cfgMu.Lock()
		cfg.Output.ListName = strings.TrimSpace(v)
		cfgMu.Unlock()
	}

	columnsLabel := widget.NewLabel("No input selected")
	columnsLabel.Wrapping = fyne.TextWrapWord
	statusLabel := widget.NewLabel("Ready")

	var tableData [][]string
	var tableMu sync.Mutex
	previewTable := widget.NewTable(
		func() (int, int) {
			tableMu.Lock()
			defer tableMu.Unlock()
			if len(tableData) == 0 {
				return 0, 0
			}
			return len(tableData), len(tableData[0])
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("")
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			tableMu.Lock()
			defer tableMu.Unlock()
			if len(tableData) == 0 || id.Row >= len(tableData) || id.Col >= len(tableData[id.Row]) {
				return
			}
			label := obj.(*widget.Label)
			label.SetText(tableData[id.Row][id.Col])
			if id.Row == 0 {
				label.TextStyle = fyne.TextStyle{Bold: true}
			} else {
				label.TextStyle = fyne.TextStyle{}
			}
		},
	)

	updateTable := func(entries []nuclide.Entry) {
		data := buildTableData(entries, previewRows)
		tableMu.Lock()
		tableData = data
		tableMu.Unlock()
		fyne.Do(func() {
			for col, width := range previewColumnWidths {
				previewTable.SetColumnWidth(col, width)
			}
			previewTable.Refresh()
		})
	}

	detectColumns := func(path string) {
		runCfg := currentConfig()
		opts, err := runCfg.InputOptions()
		if err != nil {
			showError(win, err)
			return
		}
		nuclide.SetColumnCandidates(runCfg.Columns)
		meta, err := nuclide.ReadHeader(path, opts)
		if err != nil {
			columnsLabel.SetText(fmt.Sprintf("Column detection failed: %v", err))
			return
		}
		columnsLabel.SetText(describeColumns(meta))
	}

	var previewBtn, convertBtn *widget.Button

	setBusy := func(busy bool, status string) {
		fyne.Do(func() {
			if busy {
				previewBtn.Disable()
				convertBtn.Disable()
			} else {
				previewBtn.Enable()
				convertBtn.Enable()
			}
			statusLabel.SetText(status)
		})
	}

	previewBtn = widget.NewButton("Preview", func() {
		runCfg := currentConfig()
		if runCfg.Input.Path == "" {
			showError(win, fmt.Errorf("no input file selected"))
			return
		}
		setBusy(true, "Reading...")
		go func() {
			converter := nuclide.NewConverter(runCfg, logger)
			rows, err := converter.Read(runCfg.Input.Path)
			if err != nil {
				setBusy(false, "Error")
				fyne.Do(func() { showError(win, err) })
				return
			}
			entries, stats := converter.Build(rows)
			updateTable(entries)
			setBusy(false, formatStats(stats))
		}()
	})

	convertBtn = widget.NewButton("Convert", func() {
		runCfg := currentConfig()
		if runCfg.Input.Path == "" {
			showError(win, fmt.Errorf("no input file selected"))
			return
		}
		output := resolveOutputPath(runCfg.Output.Path, runCfg.Input.Path)
		saveConfig()
		setBusy(true, "Converting...")
		go func() {
			start := time.Now()
			stats, err := nuclide.NewConverter(runCfg, logger).ConvertFile(ctx, runCfg.Input.Path, output)
			if err != nil {
				setBusy(false, "Error")
				fyne.Do(func() { showError(win, err) })
				return
			}
			setBusy(false, fmt.Sprintf("%s, %.2fs → %s", formatStats(stats), time.Since(start).Seconds(), output))
		}()
	})

	browseInputBtn := widget.NewButton("Browse…", func() {
		fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
			if err != nil {
				showError(win, err)
				return
			}
			if rc == nil {
				return
			}
			defer rc.Close()
			path := rc.URI().Path()
			inputEntry.SetText(path)
			detectColumns(path)
			saveConfig()
		}, win)
		fd.SetFilter(storageFilter(inputExtensions))
		fd.Show()
	})

	browseOutputBtn := widget.NewButton("Browse…", func() {
		fd := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
			if err != nil {
				showError(win, err)
				return
			}
			if uc == nil {
				return
			}
			path := uc.URI().Path()
			_ = uc.Close()
			outputEntry.SetText(path)
			saveConfig()
		}, win)
		fd.SetFileName(defaultOutputFile)
		fd.Show()
	})

	if cfg.Input.Path != "" {
		detectColumns(cfg.Input.Path)
	}

	logLabel := widget.NewLabelWithData(logText)
	logLabel.Wrapping = fyne.TextWrapWord
	logContainer := container.NewVScroll(logLabel)
	logContainer.SetMinSize(fyne.NewSize(200, 160))

	form := widget.NewForm(
		widget.NewFormItem("Input", container.NewBorder(nil, nil, nil, browseInputBtn, inputEntry)),
		widget.NewFormItem("Output", container.NewBorder(nil, nil, nil, browseOutputBtn, outputEntry)),
		widget.NewFormItem("List name", listNameEntry),
	)

	controls := container.NewVBox(
		form,
		container.NewHBox(previewBtn, convertBtn, statusLabel),
		widget.NewSeparator(),
		widget.NewLabel("Columns"),
		columnsLabel,
		widget.NewSeparator(),
		widget.NewLabel("Log"),
		logContainer,
	)

	root := container.NewHSplit(controls, previewTable)
	root.Offset = 0.4
	win.SetContent(root)

	win.ShowAndRun()
}
