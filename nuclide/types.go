package nuclide

// Field names a logical column of the nuclide table.
type Field int

const (
	FieldZ Field = iota
	FieldN
	FieldName
	FieldLevelEnergy
	FieldHalflife
	FieldHalflifeUnit
	FieldDecayMode
	FieldBranchingRatio

	fieldCount
)

var fieldNames = [fieldCount]string{
	FieldZ:              "z",
	FieldN:              "n",
	FieldName:           "name",
	FieldLevelEnergy:    "levelEnergy",
	FieldHalflife:       "halflife",
	FieldHalflifeUnit:   "halflifeUnit",
	FieldDecayMode:      "decayMode",
	FieldBranchingRatio: "branchingRatio",
}

// Fields lists every logical column in table order.
func Fields() []Field {
	out := make([]Field, fieldCount)
	for i := range out {
		out[i] = Field(i)
	}
	return out
}

func (f Field) String() string {
	if f >= 0 && f < fieldCount {
		return fieldNames[f]
	}
	return "unknown"
}

// Required reports whether rows cannot be read without this column.
func (f Field) Required() bool {
	return f == FieldZ || f == FieldN || f == FieldName
}

// ParseField maps a logical column name (case-insensitive) to its Field.
func ParseField(name string) (Field, bool) {
	key := NormalizeHeader(name)
	for i, candidate := range fieldNames {
		if NormalizeHeader(candidate) == key {
			return Field(i), true
		}
	}
	return 0, false
}

// FlatRecord is one input row: an isotope, one of its levels and one decay
// mode of that level. Optional fields hold the raw cell text; "" means the
// cell was empty or the column absent.
type FlatRecord struct {
	Z              int
	N              int
	Name           string
	LevelEnergy    string
	Halflife       string
	HalflifeUnit   string
	DecayMode      string
	BranchingRatio string
}

// Key returns the isotope identity of the row.
func (r FlatRecord) Key() IsotopeKey {
	return IsotopeKey{Z: r.Z, N: r.N, Name: r.Name}
}

// IsotopeKey identifies one isotope grouping.
type IsotopeKey struct {
	Z    int
	N    int
	Name string
}

// IsotopeRecord is the combined entry for one isotope. The five slices are
// parallel and indexed by level; DecayModes[i] and BranchingRatios[i] hold
// one entry per input row of level i.
type IsotopeRecord struct {
	Z               int
	N               int
	Name            string
	LevelEnergies   []Value
	Halflives       []Value
	HalflifeUnits   []Value
	DecayModes      [][]Value
	BranchingRatios [][]Value
}

// Key returns the isotope identity of the record.
func (r IsotopeRecord) Key() IsotopeKey {
	return IsotopeKey{Z: r.Z, N: r.N, Name: r.Name}
}

// LevelCount returns the number of distinct levels.
func (r IsotopeRecord) LevelCount() int {
	return len(r.LevelEnergies)
}

// HasExcitedStates reports whether the isotope has more than one level.
func (r IsotopeRecord) HasExcitedStates() bool {
	return len(r.LevelEnergies) > 1
}

// Entry pairs the output identifier of an isotope with its record.
type Entry struct {
	ID     string
	Record IsotopeRecord
}

// Stats summarises one conversion run.
type Stats struct {
	Rows          int `json:"rows"`
	IsotopeGroups int `json:"isotopeGroups"`
	Isotopes      int `json:"isotopes"`
	Elements      int `json:"elements"`
	ExcitedStates int `json:"excitedStates"`
}
