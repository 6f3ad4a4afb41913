package fretboard

import (
	"sort"

	"github.com/Conceptual-Machines/fretboard-api/internal/theory"
)

// Strategy searches for one fingering with the bass on a given string.
// Implementations must be pure: same inputs, same result.
type Strategy interface {
	Name() string
	Attempt(target theory.ChordTarget, tuning Tuning, bassString int) (GeneratedFingering, bool)
}

// bassFretFor places the bass pitch class on bassString. An open-string
// match is moved up to the twelfth fret so the bass is always fretted.
func bassFretFor(target theory.ChordTarget, tuning Tuning, bassString int) (int, bool) {
	fret := theory.NormalizeToPitchClass(target.BassPC - tuning.OpenPitchClass(bassString))
	if fret == 0 {
		fret = 12
	}
	if fret > MaxFret {
		return 0, false
	}
	return fret, true
}

// searchWindow returns the inclusive fret range scanned around the bass
func searchWindow(bassFret int) (lo, hi int) {
	lo = bassFret - 2
	if lo < 1 {
		lo = 1
	}
	hi = bassFret + MaxStretch - 1
	if hi > MaxFret {
		hi = MaxFret
	}
	return lo, hi
}

// RealizedIntervals recomputes the sounded intervals from frets, relative to
// rootPC, sorted and unique.
func RealizedIntervals(frets [NumStrings]int, tuning Tuning, rootPC int) []int {
	var seen [12]bool
	out := make([]int, 0, NumStrings)
	for s, f := range frets {
		if f == Muted {
			continue
		}
		iv := theory.NormalizeToPitchClass(tuning.PitchClassAt(s, f) - rootPC)
		if !seen[iv] {
			seen[iv] = true
			out = append(out, iv)
		}
	}
	sort.Ints(out)
	return out
}

// scoreDifficulty applies the additive position, stretch and string-count
// heuristics and buckets the total.
func scoreDifficulty(g GeneratedFingering) Difficulty {
	score := 0
	if g.BassFret > 7 {
		score++
	}
	switch stretch := g.Stretch(); {
	case stretch > 3:
		score += 2
	case stretch > 2:
		score++
	}
	if g.SoundedStrings() > 4 {
		score++
	}
	return difficultyFromScore(score)
}
