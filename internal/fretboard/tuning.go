// Package fretboard searches a six-string neck for playable fingerings of a
// chord target produced by the theory package.
package fretboard

import "github.com/Conceptual-Machines/fretboard-api/internal/theory"

const (
	NumStrings = 6
	MaxFret    = 15
	MaxStretch = 4
	MaxResults = 3

	// Muted marks a string that is not played
	Muted = -1
)

// Tuning holds the MIDI pitch of each open string, lowest string first
type Tuning struct {
	Name      string
	OpenPitch [NumStrings]int
}

// StandardTuning is E2 A2 D3 G3 B3 E4
var StandardTuning = Tuning{
	Name:      "standard",
	OpenPitch: [NumStrings]int{40, 45, 50, 55, 59, 64},
}

// OpenPitchClass returns the pitch class of an open string
func (t Tuning) OpenPitchClass(s int) int {
	return theory.NormalizeToPitchClass(t.OpenPitch[s])
}

// PitchClassAt returns the pitch class sounded at fret on string s
func (t Tuning) PitchClassAt(s, fret int) int {
	return theory.NormalizeToPitchClass(t.OpenPitch[s] + fret)
}

// IsHigher reports whether string a is tuned above string b
func (t Tuning) IsHigher(a, b int) bool {
	return t.OpenPitch[a] > t.OpenPitch[b]
}

// stringsByPitchDesc returns string indexes ordered from the highest open
// pitch to the lowest.
func (t Tuning) stringsByPitchDesc() []int {
	order := make([]int, NumStrings)
	for i := range order {
		order[i] = i
	}
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && t.OpenPitch[order[j]] > t.OpenPitch[order[j-1]]; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}
	return order
}

// lowestStrings returns the n lowest-pitched string indexes, lowest first
func (t Tuning) lowestStrings(n int) []int {
	desc := t.stringsByPitchDesc()
	out := make([]int, 0, n)
	for i := len(desc) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, desc[i])
	}
	return out
}
