// Package theory resolves chord labels to intervals and pitch classes.
//
// Everything in this package is a pure function of its arguments and the
// read-only tables declared here. Nothing is mutated after init, so all
// exported functions are safe for concurrent use.
package theory

import (
	"errors"
	"fmt"
	"sort"
)

// Interval semitone constants (from the chord root)
const (
	Unison          = 0
	MinorSecond     = 1
	MajorSecond     = 2
	MinorThird      = 3
	MajorThird      = 4
	PerfectFourth   = 5
	DiminishedFifth = 6
	PerfectFifth    = 7
	AugmentedFifth  = 8
	MajorSixth      = 9
	MinorSeventh    = 10
	MajorSeventh    = 11
	Octave          = 12

	// Extended tensions stay above the octave until normalized
	FlatNinth      = 13
	Ninth          = 14
	SharpNinth     = 15
	Eleventh       = 17
	SharpEleventh  = 18
	FlatThirteenth = 20
	Thirteenth     = 21
)

// ErrUnknownInterval is returned when an interval name is in neither table
var ErrUnknownInterval = errors.New("unknown interval")

var basicIntervals = map[string]int{
	"root":               Unison,
	"unison":             Unison,
	"minor second":       MinorSecond,
	"major second":       MajorSecond,
	"minor third":        MinorThird,
	"major third":        MajorThird,
	"perfect fourth":     PerfectFourth,
	"tritone":            DiminishedFifth,
	"diminished fifth":   DiminishedFifth,
	"perfect fifth":      PerfectFifth,
	"augmented fifth":    AugmentedFifth,
	"minor sixth":        AugmentedFifth,
	"major sixth":        MajorSixth,
	"diminished seventh": MajorSixth,
	"minor seventh":      MinorSeventh,
	"major seventh":      MajorSeventh,
}

var extendedIntervals = map[string]int{
	"flat ninth":      FlatNinth,
	"ninth":           Ninth,
	"sharp ninth":     SharpNinth,
	"eleventh":        Eleventh,
	"sharp eleventh":  SharpEleventh,
	"flat thirteenth": FlatThirteenth,
	"thirteenth":      Thirteenth,
}

// IntervalSemitones returns the semitone count for a named interval.
// Extended tensions are returned raw (ninth = 14, not 2).
func IntervalSemitones(name string) (int, error) {
	if v, ok := basicIntervals[name]; ok {
		return v, nil
	}
	if v, ok := extendedIntervals[name]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownInterval, name)
}

// IntervalNames returns every known interval name, sorted
func IntervalNames() []string {
	names := make([]string, 0, len(basicIntervals)+len(extendedIntervals))
	for n := range basicIntervals {
		names = append(names, n)
	}
	for n := range extendedIntervals {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// NormalizeToPitchClass folds any integer into [0,11]. Negative inputs wrap
// upwards, so -1 becomes 11.
func NormalizeToPitchClass(x int) int {
	return (x%12 + 12) % 12
}

// NormalizeIntervalSet reduces xs to sorted, deduplicated pitch classes
func NormalizeIntervalSet(xs []int) []int {
	var seen [12]bool
	for _, x := range xs {
		seen[NormalizeToPitchClass(x)] = true
	}
	out := make([]int, 0, len(xs))
	for pc, ok := range seen {
		if ok {
			out = append(out, pc)
		}
	}
	return out
}
