package nuclide

import "sync"

// ColumnCandidates defines possible header names for auto-detecting columns.
type ColumnCandidates struct {
	Z              []string `json:"z,omitempty" yaml:"z,omitempty"`
	N              []string `json:"n,omitempty" yaml:"n,omitempty"`
	Name           []string `json:"name,omitempty" yaml:"name,omitempty"`
	LevelEnergy    []string `json:"levelEnergy,omitempty" yaml:"levelEnergy,omitempty"`
	Halflife       []string `json:"halflife,omitempty" yaml:"halflife,omitempty"`
	HalflifeUnit   []string `json:"halflifeUnit,omitempty" yaml:"halflifeUnit,omitempty"`
	DecayMode      []string `json:"decayMode,omitempty" yaml:"decayMode,omitempty"`
	BranchingRatio []string `json:"branchingRatio,omitempty" yaml:"branchingRatio,omitempty"`
}

var (
	columnCandidatesMu  sync.RWMutex
	activeColumnOptions = defaultColumnCandidates()
)

func defaultColumnCandidates() ColumnCandidates {
	return ColumnCandidates{
		Z:              []string{"z", "protons"},
		N:              []string{"n", "neutrons"},
		Name:           []string{"name", "nuclide", "isotope"},
		LevelEnergy:    []string{"levelEnergy(MeV)", "levelEnergy", "level energy", "energy(MeV)"},
		Halflife:       []string{"halflife", "half-life", "half life", "t1/2"},
		HalflifeUnit:   []string{"halflifeUnit", "half-life unit", "halflife unit", "unit"},
		DecayMode:      []string{"decayMode", "decay mode", "decay"},
		BranchingRatio: []string{"branchingRatio", "branching ratio", "branching", "br"},
	}
}

// DefaultColumnCandidates returns the built-in column detection candidates.
func DefaultColumnCandidates() ColumnCandidates {
	return defaultColumnCandidates().clone()
}

// SetColumnCandidates updates the column detection candidates used during auto-detection.
// Fields left nil fall back to the built-in defaults, allowing callers to override only
// the parts they need.
func SetColumnCandidates(candidates ColumnCandidates) {
	columnCandidatesMu.Lock()
	defer columnCandidatesMu.Unlock()
	activeColumnOptions = candidates.withDefaults()
}

func getColumnCandidates() ColumnCandidates {
	columnCandidatesMu.RLock()
	defer columnCandidatesMu.RUnlock()
	return activeColumnOptions.clone()
}

// For returns the candidates of one logical field.
func (c ColumnCandidates) For(f Field) []string {
	switch f {
	case FieldZ:
		return c.Z
	case FieldN:
		return c.N
	case FieldName:
		return c.Name
	case FieldLevelEnergy:
		return c.LevelEnergy
	case FieldHalflife:
		return c.Halflife
	case FieldHalflifeUnit:
		return c.HalflifeUnit
	case FieldDecayMode:
		return c.DecayMode
	case FieldBranchingRatio:
		return c.BranchingRatio
	}
	return nil
}

func (c ColumnCandidates) withDefaults() ColumnCandidates {
	defaults := defaultColumnCandidates()
	return ColumnCandidates{
		Z:              pickStrings(c.Z, defaults.Z),
		N:              pickStrings(c.N, defaults.N),
		Name:           pickStrings(c.Name, defaults.Name),
		LevelEnergy:    pickStrings(c.LevelEnergy, defaults.LevelEnergy),
		Halflife:       pickStrings(c.Halflife, defaults.Halflife),
		HalflifeUnit:   pickStrings(c.HalflifeUnit, defaults.HalflifeUnit),
		DecayMode:      pickStrings(c.DecayMode, defaults.DecayMode),
		BranchingRatio: pickStrings(c.BranchingRatio, defaults.BranchingRatio),
	}
}

func (c ColumnCandidates) clone() ColumnCandidates {
	return ColumnCandidates{
		Z:              cloneStrings(c.Z),
		N:              cloneStrings(c.N),
		Name:           cloneStrings(c.Name),
		LevelEnergy:    cloneStrings(c.LevelEnergy),
		Halflife:       cloneStrings(c.Halflife),
		HalflifeUnit:   cloneStrings(c.HalflifeUnit),
		DecayMode:      cloneStrings(c.DecayMode),
		BranchingRatio: cloneStrings(c.BranchingRatio),
	}
}

func pickStrings(custom, fallback []string) []string {
	if custom == nil {
		return cloneStrings(fallback)
	}
	return cloneStrings(custom)
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
