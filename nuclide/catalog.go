package nuclide

// Catalog keys records by their display name and returns them in output
// order. A record whose name is already taken replaces the earlier record in
// place, so the name keeps its first position before sorting.
func Catalog(records []IsotopeRecord) []Entry {
	entries := make([]Entry, 0, len(records))
	index := make(map[string]int, len(records))
	for _, rec := range records {
		if i, ok := index[rec.Name]; ok {
			entries[i].Record = rec
			continue
		}
		index[rec.Name] = len(entries)
		entries = append(entries, Entry{ID: rec.Name, Record: rec})
	}
	SortEntries(entries)
	return entries
}

// Summarize counts rows, groups and the shape of the final entries.
func Summarize(rows, groups int, entries []Entry) Stats {
	stats := Stats{Rows: rows, IsotopeGroups: groups, Isotopes: len(entries)}
	elements := make(map[int]struct{})
	for _, e := range entries {
		elements[e.Record.Z] = struct{}{}
		if e.Record.HasExcitedStates() {
			stats.ExcitedStates++
		}
	}
	stats.Elements = len(elements)
	return stats
}
