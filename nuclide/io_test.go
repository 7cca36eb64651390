package nuclide

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const nudatHeader = "z,n,name,levelEnergy(MeV),halflife,halflifeUnit,decayMode,branchingRatio"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func resetColumnCandidates(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { SetColumnCandidates(ColumnCandidates{}) })
}

func TestReadRecordsCSV(t *testing.T) {
	path := writeFile(t, "nudat.csv", "\ufeff"+nudatHeader+"\n"+
		"81,104,185Tl,,19.5,S,A,\n"+
		"\n"+
		"81,104,185Tl,0.4538,1.93,S,IT,100\n"+
		"1,0,1H\n")

	rows, err := ReadRecords(path, InputOptions{})
	require.NoError(t, err)

	assert.Equal(t, []FlatRecord{
		{Z: 81, N: 104, Name: "185Tl", Halflife: "19.5", HalflifeUnit: "S", DecayMode: "A"},
		{Z: 81, N: 104, Name: "185Tl", LevelEnergy: "0.4538", Halflife: "1.93", HalflifeUnit: "S", DecayMode: "IT", BranchingRatio: "100"},
		{Z: 1, N: 0, Name: "1H"},
	}, rows)
}

func TestReadRecordsTSV(t *testing.T) {
	header := strings.ReplaceAll(nudatHeader, ",", "\t")
	path := writeFile(t, "nudat.tsv", header+"\n2\t2\t4He\t\t\t\t\t\n")

	rows, err := ReadRecords(path, InputOptions{})
	require.NoError(t, err)
	assert.Equal(t, []FlatRecord{{Z: 2, N: 2, Name: "4He"}}, rows)
}

func TestReadRecordsExplicitDelimiter(t *testing.T) {
	header := strings.ReplaceAll(nudatHeader, ",", ";")
	path := writeFile(t, "nudat.txt", header+"\n2;1;3He;;;;;\n")

	delim, err := ParseDelimiter("semicolon")
	require.NoError(t, err)
	rows, err := ReadRecords(path, InputOptions{Delimiter: delim})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "3He", rows[0].Name)
}

func TestReadRecordsXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := "Levels"
	_, err := f.NewSheet(sheet)
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{
		"z", "n", "name", "levelEnergy(MeV)", "halflife", "halflifeUnit", "decayMode", "branchingRatio",
	}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{81, 104, "185Tl", 0.4538, 1.93, "S", "IT", 100}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{1, 2, "3H", "", 12.32, "Y", "B-", 100}))
	path := filepath.Join(t.TempDir(), "nudat.xlsx")
	require.NoError(t, f.SaveAs(path))

	rows, err := ReadRecords(path, InputOptions{Sheet: sheet})
	require.NoError(t, err)
	assert.Equal(t, []FlatRecord{
		{Z: 81, N: 104, Name: "185Tl", LevelEnergy: "0.4538", Halflife: "1.93", HalflifeUnit: "S", DecayMode: "IT", BranchingRatio: "100"},
		{Z: 1, N: 2, Name: "3H", Halflife: "12.32", HalflifeUnit: "Y", DecayMode: "B-", BranchingRatio: "100"},
	}, rows)

	_, err = ReadRecords(path, InputOptions{Sheet: "missing"})
	assert.Error(t, err)
}

func TestReadRecordsMissingRequiredColumn(t *testing.T) {
	path := writeFile(t, "nudat.csv", "z,name\n1,1H\n")

	_, err := ReadRecords(path, InputOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))
	assert.Contains(t, err.Error(), "n")
}

func TestReadRecordsOptionalColumnsMayBeAbsent(t *testing.T) {
	rows, err := DecodeRecords(strings.NewReader("Z,N,Nuclide\n8,8,16O\n"), InputOptions{})
	require.NoError(t, err)
	assert.Equal(t, []FlatRecord{{Z: 8, N: 8, Name: "16O"}}, rows)
}

func TestReadRecordsColumnOverrides(t *testing.T) {
	data := "protons,neutrons,label,E(level),T\n26,30,56Fe,0.8468,6.1\n"

	rows, err := DecodeRecords(strings.NewReader(data), InputOptions{Columns: map[string]string{
		"name":        "label",
		"levelEnergy": "E(level)",
		"halflife":    "#5",
	}})
	require.NoError(t, err)
	assert.Equal(t, []FlatRecord{{Z: 26, N: 30, Name: "56Fe", LevelEnergy: "0.8468", Halflife: "6.1"}}, rows)
}

func TestReadRecordsCustomCandidates(t *testing.T) {
	resetColumnCandidates(t)
	SetColumnCandidates(ColumnCandidates{Name: []string{"symbol"}})

	rows, err := DecodeRecords(strings.NewReader("z,n,symbol\n6,6,12C\n"), InputOptions{})
	require.NoError(t, err)
	assert.Equal(t, "12C", rows[0].Name)
}

func TestReadRecordsOverrideErrors(t *testing.T) {
	data := strings.NewReader(nudatHeader + "\n")

	_, err := DecodeRecords(data, InputOptions{Columns: map[string]string{"spin": "J"}})
	assert.True(t, errors.Is(err, ErrUnsupportedInput))

	_, err = DecodeRecords(strings.NewReader(nudatHeader+"\n"), InputOptions{Columns: map[string]string{"name": "missing"}})
	assert.True(t, errors.Is(err, ErrMissingColumn))

	_, err = DecodeRecords(strings.NewReader(nudatHeader+"\n"), InputOptions{Columns: map[string]string{"name": "#99"}})
	assert.Error(t, err)

	_, err = DecodeRecords(strings.NewReader(nudatHeader+"\n"), InputOptions{Columns: map[string]string{"name": "#0"}})
	assert.Error(t, err)
}

func TestReadRecordsRowError(t *testing.T) {
	data := nudatHeader + "\n1,0,1H\nabc,1,?\n"

	_, err := DecodeRecords(strings.NewReader(data), InputOptions{})
	require.Error(t, err)

	var rowErr *RowError
	require.True(t, errors.As(err, &rowErr))
	assert.Equal(t, 3, rowErr.Line)
	assert.Equal(t, FieldZ, rowErr.Field)
	assert.True(t, errors.Is(err, ErrInvalidIdentity))
	assert.Equal(t, `line 3: z: invalid isotope identity: "abc" is not an integer`, err.Error())
}

func TestDecodeRecordsEncoding(t *testing.T) {
	data := "z,n,name,halflifeUnit\n1,2,3H,\xb5S\n"

	rows, err := DecodeRecords(strings.NewReader(data), InputOptions{Encoding: "windows-1252"})
	require.NoError(t, err)
	assert.Equal(t, "µS", rows[0].HalflifeUnit)

	_, err = DecodeRecords(strings.NewReader(data), InputOptions{Encoding: "klingon"})
	assert.True(t, errors.Is(err, ErrUnsupportedInput))
}

func TestDecodeRecordsEmpty(t *testing.T) {
	rows, err := DecodeRecords(strings.NewReader(""), InputOptions{})
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = DecodeRecords(strings.NewReader(nudatHeader+"\n"), InputOptions{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadHeader(t *testing.T) {
	path := writeFile(t, "nudat.csv", "Protons, Neutrons ,Isotope,Decay Mode\n1,0,1H,\n")

	meta, err := ReadHeader(path, InputOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Protons", "Neutrons", "Isotope", "Decay Mode"}, meta.Columns)
	assert.Equal(t, map[string]string{
		"z":         "Protons",
		"n":         "Neutrons",
		"name":      "Isotope",
		"decayMode": "Decay Mode",
	}, meta.Suggested)
}

func TestReadRecordsMissingFile(t *testing.T) {
	_, err := ReadRecords(filepath.Join(t.TempDir(), "absent.csv"), InputOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestParseDelimiter(t *testing.T) {
	tests := map[string]rune{
		"":          0,
		"tab":       '\t',
		`\t`:        '\t',
		"\t":        '\t',
		"comma":     ',',
		"Semicolon": ';',
		"|":         '|',
	}
	for in, want := range tests {
		got, err := ParseDelimiter(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseDelimiter("::")
	assert.True(t, errors.Is(err, ErrUnsupportedInput))
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "level energy", NormalizeHeader("  Level\tENERGY "))
	assert.Equal(t, "levelenergy(mev)", NormalizeHeader("levelEnergy（MeV）"))
}
