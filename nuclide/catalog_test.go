package nuclide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogSortsByZThenN(t *testing.T) {
	entries := Catalog([]IsotopeRecord{
		{Z: 2, N: 2, Name: "4He"},
		{Z: 1, N: 0, Name: "1H"},
		{Z: 1, N: 2, Name: "3H"},
	})
	require.Len(t, entries, 3)
	assert.Equal(t, "1H", entries[0].ID)
	assert.Equal(t, "3H", entries[1].ID)
	assert.Equal(t, "4He", entries[2].ID)
}

func TestCatalogLaterNameReplacesEarlier(t *testing.T) {
	entries := Catalog([]IsotopeRecord{
		{Z: 1, N: 0, Name: "1H"},
		{Z: 2, N: 2, Name: "X"},
		{Z: 3, N: 4, Name: "7Li"},
		{Z: 9, N: 9, Name: "X"},
	})
	require.Len(t, entries, 3)
	assert.Equal(t, []string{"1H", "7Li", "X"}, []string{entries[0].ID, entries[1].ID, entries[2].ID})
	assert.Equal(t, 9, entries[2].Record.Z)
}

func TestSummarize(t *testing.T) {
	rows := []FlatRecord{
		{Z: 1, N: 0, Name: "1H"},
		{Z: 1, N: 2, Name: "3H"},
		{Z: 81, N: 104, Name: "185Tl"},
		{Z: 81, N: 104, Name: "185Tl", LevelEnergy: "0.4538"},
	}
	records := Aggregate(rows)
	entries := Catalog(records)
	stats := Summarize(len(rows), len(records), entries)

	assert.Equal(t, Stats{Rows: 4, IsotopeGroups: 3, Isotopes: 3, Elements: 2, ExcitedStates: 1}, stats)
}

func TestElementLabel(t *testing.T) {
	assert.Equal(t, "Neutron", ElementLabel(0))
	assert.Equal(t, "H", ElementLabel(1))
	assert.Equal(t, "Tl", ElementLabel(81))
	assert.Equal(t, "Og", ElementLabel(118))
	assert.Equal(t, "Z=119", ElementLabel(119))
	assert.Equal(t, "Z=-1", ElementLabel(-1))

	_, ok := ElementSymbol(200)
	assert.False(t, ok)
}
