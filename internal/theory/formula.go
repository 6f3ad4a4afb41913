package theory

import (
	"encoding/json"
	"sort"
)

// Base is the triad (or dyad) a chord formula is built on
type Base string

const (
	BaseMajor      Base = "major"
	BaseMinor      Base = "minor"
	BaseDiminished Base = "diminished"
	BaseAugmented  Base = "augmented"
	BaseSus2       Base = "sus2"
	BaseSus4       Base = "sus4"
	BasePower      Base = "power"
)

var baseIntervals = map[Base][]int{
	BaseMajor:      {Unison, MajorThird, PerfectFifth},
	BaseMinor:      {Unison, MinorThird, PerfectFifth},
	BaseDiminished: {Unison, MinorThird, DiminishedFifth},
	BaseAugmented:  {Unison, MajorThird, AugmentedFifth},
	BaseSus2:       {Unison, MajorSecond, PerfectFifth},
	BaseSus4:       {Unison, PerfectFourth, PerfectFifth},
	BasePower:      {Unison, PerfectFifth},
}

// Seventh is the optional seventh stacked on the base
type Seventh string

const (
	NoSeventh         Seventh = ""
	SeventhDominant   Seventh = "dominant"
	SeventhMajor      Seventh = "major"
	SeventhDiminished Seventh = "diminished"
)

var seventhIntervals = map[Seventh]int{
	SeventhDominant:   MinorSeventh,
	SeventhMajor:      MajorSeventh,
	SeventhDiminished: MajorSixth, // bb7
}

// Extension is a tension added above the octave
type Extension string

const (
	ExtFlatNine     Extension = "b9"
	ExtNine         Extension = "9"
	ExtSharpNine    Extension = "#9"
	ExtEleven       Extension = "11"
	ExtSharpEleven  Extension = "#11"
	ExtFlatThirteen Extension = "b13"
	ExtThirteen     Extension = "13"
)

var extensionIntervals = map[Extension]int{
	ExtFlatNine:     FlatNinth,
	ExtNine:         Ninth,
	ExtSharpNine:    SharpNinth,
	ExtEleven:       Eleventh,
	ExtSharpEleven:  SharpEleventh,
	ExtFlatThirteen: FlatThirteenth,
	ExtThirteen:     Thirteenth,
}

// Alteration modifies the perfect fifth of the base
type Alteration string

const (
	FlatFifth  Alteration = "b5"
	SharpFifth Alteration = "#5"
)

// ChordFormula declares how a chord quality is built. It is an immutable
// value: every With* method returns a new formula and every slice accessor
// returns a copy, so formulas shared between registry entries cannot be
// corrupted by callers.
type ChordFormula struct {
	base        Base
	seventh     Seventh
	sixth       bool
	extensions  []Extension
	alterations []Alteration
	custom      []int
}

// Formula starts a formula from its base
func Formula(base Base) ChordFormula {
	return ChordFormula{base: base}
}

// CustomFormula builds a formula whose intervals are given explicitly.
// Used for the few non-tertian chords the stacking rules cannot express; base
// is the nominal family the chord is filed under and does not affect the
// intervals.
func CustomFormula(base Base, intervals ...int) ChordFormula {
	return ChordFormula{base: base, custom: append([]int{}, intervals...)}
}

func (f ChordFormula) clone() ChordFormula {
	out := f
	out.extensions = append([]Extension(nil), f.extensions...)
	out.alterations = append([]Alteration(nil), f.alterations...)
	if f.custom != nil {
		out.custom = append([]int{}, f.custom...)
	}
	return out
}

// WithSeventh returns a copy with the given seventh
func (f ChordFormula) WithSeventh(s Seventh) ChordFormula {
	out := f.clone()
	out.seventh = s
	return out
}

// WithSixth returns a copy carrying the major sixth
func (f ChordFormula) WithSixth() ChordFormula {
	out := f.clone()
	out.sixth = true
	return out
}

// WithExtensions returns a copy with exts appended in order
func (f ChordFormula) WithExtensions(exts ...Extension) ChordFormula {
	out := f.clone()
	out.extensions = append(out.extensions, exts...)
	return out
}

// WithAlterations returns a copy with alts appended in order
func (f ChordFormula) WithAlterations(alts ...Alteration) ChordFormula {
	out := f.clone()
	out.alterations = append(out.alterations, alts...)
	return out
}

func (f ChordFormula) Base() Base {
	return f.base
}

func (f ChordFormula) Seventh() Seventh {
	return f.seventh
}

func (f ChordFormula) HasSixth() bool {
	return f.sixth
}

func (f ChordFormula) IsCustom() bool {
	return f.custom != nil
}

func (f ChordFormula) Extensions() []Extension {
	return append([]Extension(nil), f.extensions...)
}

func (f ChordFormula) Alterations() []Alteration {
	return append([]Alteration(nil), f.alterations...)
}

// CustomIntervals returns the explicit override, or nil when the formula is
// derived from its parts.
func (f ChordFormula) CustomIntervals() []int {
	if f.custom == nil {
		return nil
	}
	return append([]int{}, f.custom...)
}

// Intervals is shorthand for FormulaToIntervals(f)
func (f ChordFormula) Intervals() []int {
	return FormulaToIntervals(f)
}

// FormulaToIntervals turns a formula into raw semitone intervals, sorted
// ascending. Extensions are not reduced mod 12 and the result is not
// deduplicated, so a sixth (9) and a thirteenth (21) both survive.
func FormulaToIntervals(f ChordFormula) []int {
	if f.custom != nil {
		return append([]int{}, f.custom...)
	}

	base, ok := baseIntervals[f.base]
	if !ok {
		base = baseIntervals[BaseMajor]
	}
	intervals := append(make([]int, 0, len(base)+2+len(f.extensions)), base...)

	for _, alt := range f.alterations {
		replacement := DiminishedFifth
		if alt == SharpFifth {
			replacement = AugmentedFifth
		}
		for i, iv := range intervals {
			if iv == PerfectFifth {
				intervals[i] = replacement
				break
			}
		}
	}

	if f.sixth {
		intervals = append(intervals, MajorSixth)
	}
	if iv, ok := seventhIntervals[f.seventh]; ok {
		intervals = append(intervals, iv)
	}
	for _, ext := range f.extensions {
		if iv, ok := extensionIntervals[ext]; ok {
			intervals = append(intervals, iv)
		}
	}

	sort.Ints(intervals)
	return intervals
}

type formulaJSON struct {
	Base            Base         `json:"base"`
	Custom          bool         `json:"custom,omitempty"`
	Seventh         Seventh      `json:"seventh,omitempty"`
	HasSixth        bool         `json:"has_sixth,omitempty"`
	Extensions      []Extension  `json:"extensions,omitempty"`
	Alterations     []Alteration `json:"alterations,omitempty"`
	CustomIntervals []int        `json:"custom_intervals,omitempty"`
}

// MarshalJSON exposes the formula parts for API responses
func (f ChordFormula) MarshalJSON() ([]byte, error) {
	return json.Marshal(formulaJSON{
		Base:            f.base,
		Custom:          f.IsCustom(),
		Seventh:         f.seventh,
		HasSixth:        f.sixth,
		Extensions:      f.extensions,
		Alterations:     f.alterations,
		CustomIntervals: f.custom,
	})
}
