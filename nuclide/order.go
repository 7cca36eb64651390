package nuclide

import "sort"

// LevelSortKey places ground-state-like values first: Absent, zero and
// non-numeric text all sort as 0.0, any other number as itself.
func LevelSortKey(v Value) float64 {
	n, ok := v.Number()
	if !ok {
		return 0
	}
	return n
}

// IsotopeSortKey orders isotopes by proton count, then neutron count.
func IsotopeSortKey(r IsotopeRecord) (int, int) {
	return r.Z, r.N
}

// SortEntries orders entries by (z, n). Equal keys keep their relative order.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		zi, ni := IsotopeSortKey(entries[i].Record)
		zj, nj := IsotopeSortKey(entries[j].Record)
		if zi != zj {
			return zi < zj
		}
		return ni < nj
	})
}
