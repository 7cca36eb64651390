package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"stackchem/nuclidetable/nuclide"
)

const defaultOutputFile = "nuclidetable.dat"

type convertOptions struct {
	inputPath  string
	outputPath string
	listName   string
	sheet      string
	encoding   string
	delimiter  string
	columns    map[string]string
	stdout     bool
}

var convertOpts convertOptions

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a nuclide table into a Maxima list",
	Long: `Reads the input table, combines all rows of an isotope into one entry and
writes the Maxima list. Flags override the config file, which overrides the
built-in defaults.

Example:
  nuclidetable convert --input nndc_nudat_data_export.csv --output nuclidetable.dat
  nuclidetable convert -i levels.tsv --column levelEnergy="E(level)" --stdout`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

func init() {
	f := convertCmd.Flags()
	f.StringVarP(&convertOpts.inputPath, "input", "i", "", "CSV/TSV/XLSX nuclide table")
	f.StringVarP(&convertOpts.outputPath, "output", "o", "", "Output file (default: nuclidetable.dat next to the input)")
	f.StringVar(&convertOpts.listName, "list-name", "", "Maxima variable name (default: %_NUCLIDE_DATA)")
	f.StringVar(&convertOpts.sheet, "sheet", "", "Worksheet to read from an XLSX file")
	f.StringVar(&convertOpts.encoding, "encoding", "", "Text encoding of the input (default: utf-8)")
	f.StringVar(&convertOpts.delimiter, "delimiter", "", "Field delimiter: a single character, tab, comma or semicolon")
	f.StringToStringVar(&convertOpts.columns, "column", nil, "Column override as field=header or field=#index (repeatable)")
	f.BoolVar(&convertOpts.stdout, "stdout", false, "Write the list to STDOUT instead of a file")
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	runCfg := applyConvertFlags(cfg, convertOpts)
	if runCfg.Input.Path == "" {
		return errors.New("missing required --input file")
	}
	converter := nuclide.NewConverter(runCfg, logger)

	if convertOpts.stdout {
		rows, err := converter.Read(runCfg.Input.Path)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		stats, err := converter.Convert(ctx, rows, cmd.OutOrStdout())
		if err != nil {
			return fmt.Errorf("convert: %w", err)
		}
		printSummary(cmd.ErrOrStderr(), stats)
		return nil
	}

	outputPath, err := resolveOutputPath(runCfg.Output.Path, runCfg.Input.Path)
	if err != nil {
		return err
	}
	stats, err := converter.ConvertFile(ctx, runCfg.Input.Path, outputPath)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Successfully converted %d nuclides to %s\n", stats.Isotopes, outputPath)
	printSummary(cmd.OutOrStdout(), stats)
	return nil
}

// applyConvertFlags layers explicitly set flags over the loaded config.
func applyConvertFlags(base nuclide.Config, opts convertOptions) nuclide.Config {
	out := base.Clone()
	if v := strings.TrimSpace(opts.inputPath); v != "" {
		out.Input.Path = v
	}
	if v := strings.TrimSpace(opts.outputPath); v != "" {
		out.Output.Path = v
	}
	if v := strings.TrimSpace(opts.listName); v != "" {
		out.Output.ListName = v
	}
	if v := strings.TrimSpace(opts.sheet); v != "" {
		out.Input.Sheet = v
	}
	if v := strings.TrimSpace(opts.encoding); v != "" {
		out.Input.Encoding = v
	}
	if opts.delimiter != "" {
		out.Input.Delimiter = opts.delimiter
	}
	if len(opts.columns) > 0 {
		if out.Input.Columns == nil {
			out.Input.Columns = make(map[string]string, len(opts.columns))
		}
		for field, column := range opts.columns {
			out.Input.Columns[field] = column
		}
	}
	return out
}

func resolveOutputPath(path, input string) (string, error) {
	if path == "" {
		path = filepath.Join(filepath.Dir(input), defaultOutputFile)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve output path: %w", err)
	}
	return absPath, nil
}

func printSummary(w io.Writer, stats nuclide.Stats) {
	fmt.Fprintf(w, "Found %d rows\n", stats.Rows)
	fmt.Fprintf(w, "Grouped into %d unique isotopes\n", stats.IsotopeGroups)
	fmt.Fprintf(w, "Covers %d elements\n", stats.Elements)
	fmt.Fprintf(w, "Isotopes with excited states: %d\n", stats.ExcitedStates)
}
