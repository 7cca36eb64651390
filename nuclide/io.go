package nuclide

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// InputOptions controls how a nuclide table is read.
type InputOptions struct {
	// Delimiter overrides the separator chosen from the file extension.
	Delimiter rune
	// Sheet selects the worksheet of an .xlsx file; empty means the first one.
	Sheet string
	// Encoding names the text encoding (WHATWG label); empty means UTF-8.
	Encoding string
	// Columns maps logical field names to a header name or 1-based "#index".
	Columns map[string]string
}

// InputFileMetadata provides header information and the detected column mapping.
type InputFileMetadata struct {
	Columns   []string
	Suggested map[string]string
}

// ReadRecords reads a .csv, .tsv or .xlsx nuclide table. Other extensions
// are read as comma-separated text.
func ReadRecords(path string, opts InputOptions) ([]FlatRecord, error) {
	rows, err := readRows(path, opts)
	if err != nil {
		return nil, err
	}
	return recordsFromRows(rows, opts)
}

// DecodeRecords reads a delimited table from r. The delimiter defaults to a comma.
func DecodeRecords(r io.Reader, opts InputOptions) ([]FlatRecord, error) {
	comma := opts.Delimiter
	if comma == 0 {
		comma = ','
	}
	rows, err := readDelimitedRows(r, comma, opts.Encoding)
	if err != nil {
		return nil, err
	}
	return recordsFromRows(rows, opts)
}

// ReadHeader returns the header row of a table and the column each logical
// field would be read from.
func ReadHeader(path string, opts InputOptions) (InputFileMetadata, error) {
	meta := InputFileMetadata{Suggested: map[string]string{}}
	rows, err := readRows(path, opts)
	if err != nil {
		return meta, err
	}
	if len(rows) == 0 {
		return meta, nil
	}
	header := cleanHeader(rows[0])
	meta.Columns = header
	resolved, err := resolveColumns(header, opts.Columns)
	if err != nil {
		return meta, err
	}
	for _, f := range Fields() {
		if name := headerNameForIndex(header, resolved[f]); name != "" {
			meta.Suggested[f.String()] = name
		}
	}
	return meta, nil
}

func readRows(path string, opts InputOptions) ([][]string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".xlsx" {
		return readSpreadsheetRows(path, opts.Sheet)
	}
	comma := opts.Delimiter
	if comma == 0 {
		comma = ','
		if ext == ".tsv" {
			comma = '\t'
		}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	rows, err := readDelimitedRows(f, comma, opts.Encoding)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return rows, nil
}

func readDelimitedRows(r io.Reader, comma rune, encoding string) ([][]string, error) {
	decoded, err := decodeText(r, encoding)
	if err != nil {
		return nil, err
	}
	reader := csv.NewReader(decoded)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// decodeText converts r to UTF-8, dropping a leading byte order mark.
func decodeText(r io.Reader, encoding string) (io.Reader, error) {
	if strings.TrimSpace(encoding) == "" {
		return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())), nil
	}
	enc, err := htmlindex.Get(encoding)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding %q", ErrUnsupportedInput, encoding)
	}
	return transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder())), nil
}

func readSpreadsheetRows(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q of %s: %w", sheet, filepath.Base(path), err)
	}
	return rows, nil
}

func recordsFromRows(rows [][]string, opts InputOptions) ([]FlatRecord, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	header := cleanHeader(rows[0])
	resolved, err := resolveColumns(header, opts.Columns)
	if err != nil {
		return nil, err
	}
	records := make([]FlatRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		line := i + 2
		cell := func(f Field) string {
			idx := resolved[f]
			if idx < 0 || idx >= len(row) {
				return ""
			}
			return cleanCell(row[idx])
		}
		z, err := parseCount(cell(FieldZ))
		if err != nil {
			return nil, &RowError{Line: line, Field: FieldZ, Err: err}
		}
		n, err := parseCount(cell(FieldN))
		if err != nil {
			return nil, &RowError{Line: line, Field: FieldN, Err: err}
		}
		records = append(records, FlatRecord{
			Z:              z,
			N:              n,
			Name:           cell(FieldName),
			LevelEnergy:    cell(FieldLevelEnergy),
			Halflife:       cell(FieldHalflife),
			HalflifeUnit:   cell(FieldHalflifeUnit),
			DecayMode:      cell(FieldDecayMode),
			BranchingRatio: cell(FieldBranchingRatio),
		})
	}
	return records, nil
}

func parseCount(v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidIdentity, v)
	}
	return n, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func cleanHeader(row []string) []string {
	header := make([]string, len(row))
	for i, cell := range row {
		header[i] = cleanCell(cell)
	}
	return header
}

type resolvedColumns [fieldCount]int

func resolveColumns(header []string, explicit map[string]string) (resolvedColumns, error) {
	var res resolvedColumns
	overrides := make(map[Field]string, len(explicit))
	for name, column := range explicit {
		f, ok := ParseField(name)
		if !ok {
			return res, fmt.Errorf("%w: unknown field %q", ErrUnsupportedInput, name)
		}
		overrides[f] = column
	}
	candidates := getColumnCandidates()
	for _, f := range Fields() {
		idx := -1
		if column := strings.TrimSpace(overrides[f]); column != "" {
			var err error
			if idx, err = matchExplicitColumn(header, column); err != nil {
				return res, fmt.Errorf("%s: %w", f, err)
			}
		} else {
			idx = findColumn(header, candidates.For(f))
		}
		if idx < 0 && f.Required() {
			return res, fmt.Errorf("%w: %s", ErrMissingColumn, f)
		}
		res[f] = idx
	}
	return res, nil
}

func findColumn(header []string, candidates []string) int {
	for _, cand := range candidates {
		want := NormalizeHeader(cand)
		for i, col := range header {
			if NormalizeHeader(col) == want {
				return i
			}
		}
	}
	return -1
}

func matchExplicitColumn(header []string, explicit string) (int, error) {
	trimmed := strings.TrimSpace(explicit)
	want := NormalizeHeader(trimmed)
	for i, col := range header {
		if NormalizeHeader(col) == want {
			return i, nil
		}
	}
	if strings.HasPrefix(trimmed, "#") {
		idx, err := parseColumnIndex(trimmed)
		if err != nil {
			return -1, err
		}
		if idx >= len(header) {
			return -1, fmt.Errorf("column index %s is out of range", trimmed)
		}
		return idx, nil
	}
	return -1, fmt.Errorf("%w: %q", ErrMissingColumn, explicit)
}

func parseColumnIndex(token string) (int, error) {
	trimmed := strings.TrimSpace(strings.TrimPrefix(token, "#"))
	idx, err := strconv.Atoi(trimmed)
	if err != nil {
		return -1, fmt.Errorf("invalid column index %q", token)
	}
	if idx <= 0 {
		return -1, fmt.Errorf("column indices are 1-based: %q", token)
	}
	return idx - 1, nil
}

func headerNameForIndex(header []string, idx int) string {
	if idx < 0 {
		return ""
	}
	if idx < len(header) && header[idx] != "" {
		return header[idx]
	}
	return fmt.Sprintf("#%d", idx+1)
}

// ParseDelimiter accepts a single character or one of "tab", "comma",
// "semicolon". Empty input returns 0.
func ParseDelimiter(v string) (rune, error) {
	switch strings.ToLower(v) {
	case "":
		return 0, nil
	case "tab", `\t`, "\t":
		return '\t', nil
	case "comma":
		return ',', nil
	case "semicolon":
		return ';', nil
	}
	runes := []rune(v)
	if len(runes) != 1 {
		return 0, fmt.Errorf("%w: delimiter %q", ErrUnsupportedInput, v)
	}
	return runes[0], nil
}
