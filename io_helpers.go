package main

import (
	"fmt"
	"strconv"
	"strings"

	"stackchem/nuclidetable/nuclide"
)

// describeColumns lists the detected header and which column feeds each field.
func describeColumns(meta nuclide.InputFileMetadata) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d columns: %s\n", len(meta.Columns), strings.Join(meta.Columns, ", "))
	for _, f := range nuclide.Fields() {
		column, ok := meta.Suggested[f.String()]
		switch {
		case ok:
			fmt.Fprintf(&b, "%s ← %s\n", f, column)
		case f.Required():
			fmt.Fprintf(&b, "%s ← (missing, required)\n", f)
		default:
			fmt.Fprintf(&b, "%s ← (not found)\n", f)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// buildTableData flattens entries into preview rows, header first. At most
// limit entries are included when limit is positive.
func buildTableData(entries []nuclide.Entry, limit int) [][]string {
	n := len(entries)
	if limit > 0 && n > limit {
		n = limit
	}
	data := make([][]string, 0, n+1)
	data = append(data, append([]string(nil), previewHeader...))
	for _, e := range entries[:n] {
		rec := e.Record
		data = append(data, []string{
			e.ID,
			strconv.Itoa(rec.Z),
			strconv.Itoa(rec.N),
			strconv.Itoa(rec.LevelCount()),
			groundHalflife(rec),
			truncateText(groundDecayModes(rec), 40),
		})
	}
	return data
}

func groundHalflife(rec nuclide.IsotopeRecord) string {
	if len(rec.Halflives) == 0 {
		return ""
	}
	hl := displayValue(rec.Halflives[0])
	if len(rec.HalflifeUnits) > 0 {
		if unit := displayValue(rec.HalflifeUnits[0]); unit != "" {
			hl = strings.TrimSpace(hl + " " + unit)
		}
	}
	return hl
}

func groundDecayModes(rec nuclide.IsotopeRecord) string {
	if len(rec.DecayModes) == 0 {
		return ""
	}
	modes := make([]string, 0, len(rec.DecayModes[0]))
	for i, m := range rec.DecayModes[0] {
		label := displayValue(m)
		if label == "" {
			continue
		}
		if len(rec.BranchingRatios) > 0 && i < len(rec.BranchingRatios[0]) {
			if br := displayValue(rec.BranchingRatios[0][i]); br != "" {
				label = fmt.Sprintf("%s %s%%", label, br)
			}
		}
		modes = append(modes, label)
	}
	return strings.Join(modes, ", ")
}

// displayValue renders a cell without Maxima quoting; absent values are blank.
func displayValue(v nuclide.Value) string {
	if v.IsAbsent() {
		return ""
	}
	if s, ok := v.Text(); ok {
		return s
	}
	return v.Literal()
}

func formatStats(stats nuclide.Stats) string {
	return fmt.Sprintf("%d rows, %d isotopes, %d elements, %d with excited states",
		stats.Rows, stats.Isotopes, stats.Elements, stats.ExcitedStates)
}
