package nuclide

import "sort"

// IsotopeGroup holds the rows sharing one IsotopeKey.
type IsotopeGroup struct {
	Key  IsotopeKey
	Rows []FlatRecord
}

// LevelGroup holds the rows of one isotope sharing a coerced level energy.
type LevelGroup struct {
	Energy Value
	Rows   []FlatRecord
}

// PartitionByIsotope groups rows by exact (z, n, name) equality. Groups keep
// the order in which their key first appears, rows keep input order.
func PartitionByIsotope(rows []FlatRecord) []IsotopeGroup {
	groups := make([]IsotopeGroup, 0)
	index := make(map[IsotopeKey]int)
	for _, row := range rows {
		key := row.Key()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, IsotopeGroup{Key: key})
		}
		groups[i].Rows = append(groups[i].Rows, row)
	}
	return groups
}

// PartitionByLevel groups the rows of one isotope by tagged equality of the
// coerced level energy, in order of first appearance.
func PartitionByLevel(rows []FlatRecord) []LevelGroup {
	groups := make([]LevelGroup, 0)
	index := make(map[Value]int)
	for _, row := range rows {
		energy := Coerce(row.LevelEnergy)
		i, ok := index[energy]
		if !ok {
			i = len(groups)
			index[energy] = i
			groups = append(groups, LevelGroup{Energy: energy})
		}
		groups[i].Rows = append(groups[i].Rows, row)
	}
	return groups
}

// BuildRecord combines the rows of one isotope into a single record. The
// identity comes from the first row. Levels are ordered by LevelSortKey with
// ties kept in order of first appearance. Half-life and unit of a level are
// taken from its first row; later rows only contribute decay modes and
// branching ratios.
func BuildRecord(rows []FlatRecord) IsotopeRecord {
	if len(rows) == 0 {
		return IsotopeRecord{}
	}
	base := rows[0]
	levels := PartitionByLevel(rows)
	sort.SliceStable(levels, func(i, j int) bool {
		return LevelSortKey(levels[i].Energy) < LevelSortKey(levels[j].Energy)
	})

	rec := IsotopeRecord{
		Z:               base.Z,
		N:               base.N,
		Name:            base.Name,
		LevelEnergies:   make([]Value, 0, len(levels)),
		Halflives:       make([]Value, 0, len(levels)),
		HalflifeUnits:   make([]Value, 0, len(levels)),
		DecayModes:      make([][]Value, 0, len(levels)),
		BranchingRatios: make([][]Value, 0, len(levels)),
	}
	for _, level := range levels {
		first := level.Rows[0]
		modes := make([]Value, len(level.Rows))
		ratios := make([]Value, len(level.Rows))
		for i, row := range level.Rows {
			modes[i] = Coerce(row.DecayMode)
			ratios[i] = Coerce(row.BranchingRatio)
		}
		rec.LevelEnergies = append(rec.LevelEnergies, level.Energy)
		rec.Halflives = append(rec.Halflives, Coerce(first.Halflife))
		rec.HalflifeUnits = append(rec.HalflifeUnits, Coerce(first.HalflifeUnit))
		rec.DecayModes = append(rec.DecayModes, modes)
		rec.BranchingRatios = append(rec.BranchingRatios, ratios)
	}
	return rec
}

// Aggregate builds one record per isotope, in order of first appearance.
func Aggregate(rows []FlatRecord) []IsotopeRecord {
	groups := PartitionByIsotope(rows)
	out := make([]IsotopeRecord, len(groups))
	for i, g := range groups {
		out[i] = BuildRecord(g.Rows)
	}
	return out
}
