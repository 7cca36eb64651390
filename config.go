package main

import (
	"path/filepath"
	"strings"
)

const (
	fyneAppID         = "ch.stackchem.nuclidetable"
	configFile        = "config.json"
	defaultOutputFile = "nuclidetable.dat"

	logLines    = 500
	previewRows = 2000
)

var inputExtensions = []string{".csv", ".tsv", ".txt", ".xlsx"}

var previewHeader = []string{"ID", "Z", "N", "Levels", "Half-life", "Decay modes (ground state)"}

var previewColumnWidths = []float32{110, 50, 50, 60, 140, 280}

// resolveOutputPath falls back to nuclidetable.dat next to the input.
func resolveOutputPath(output, input string) string {
	output = strings.TrimSpace(output)
	if output == "" {
		return filepath.Join(filepath.Dir(input), defaultOutputFile)
	}
	return output
}
