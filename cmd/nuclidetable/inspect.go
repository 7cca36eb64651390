package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"stackchem/nuclidetable/nuclide"
)

var inspectInput string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show detected columns and isotope counts per element",
	Args:  cobra.NoArgs,
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectInput, "input", "i", "", "CSV/TSV/XLSX nuclide table")
}

func runInspect(cmd *cobra.Command, args []string) error {
	runCfg := applyConvertFlags(cfg, convertOptions{inputPath: inspectInput})
	if runCfg.Input.Path == "" {
		return errors.New("missing required --input file")
	}
	converter := nuclide.NewConverter(runCfg, logger)
	opts, err := runCfg.InputOptions()
	if err != nil {
		return err
	}
	meta, err := nuclide.ReadHeader(runCfg.Input.Path, opts)
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	rows, err := converter.Read(runCfg.Input.Path)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	entries, stats := converter.Build(rows)

	out := cmd.OutOrStdout()
	printColumns(out, meta)
	fmt.Fprintln(out)
	printElementCounts(out, entries)
	fmt.Fprintln(out)
	printSummary(out, stats)
	return nil
}

func printColumns(w io.Writer, meta nuclide.InputFileMetadata) {
	fmt.Fprintf(w, "Columns: %s\n", strings.Join(meta.Columns, ", "))
	for _, f := range nuclide.Fields() {
		column, ok := meta.Suggested[f.String()]
		if !ok {
			column = "(not found)"
		}
		fmt.Fprintf(w, "  %-15s <- %s\n", f, column)
	}
}

func printElementCounts(w io.Writer, entries []nuclide.Entry) {
	for i := 0; i < len(entries); {
		z := entries[i].Record.Z
		j := i
		for j < len(entries) && entries[j].Record.Z == z {
			j++
		}
		fmt.Fprintf(w, "%s (Z=%d): %d isotopes\n", nuclide.ElementLabel(z), z, j-i)
		i = j
	}
}
