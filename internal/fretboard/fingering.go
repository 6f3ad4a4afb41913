package fretboard

import (
	"fmt"
	"strconv"
	"strings"
)

// Difficulty is a coarse playability bucket
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Rank orders difficulties from easiest (0) to hardest
func (d Difficulty) Rank() int {
	switch d {
	case DifficultyEasy:
		return 0
	case DifficultyMedium:
		return 1
	default:
		return 2
	}
}

// difficultyFromScore buckets an additive difficulty score
func difficultyFromScore(score int) Difficulty {
	switch {
	case score <= 0:
		return DifficultyEasy
	case score <= 2:
		return DifficultyMedium
	default:
		return DifficultyHard
	}
}

// GeneratedFingering is one raw search result before finger estimation
type GeneratedFingering struct {
	// Frets per string, lowest string first: Muted, 0 for open, or a fret
	Frets      [NumStrings]int `json:"frets"`
	BassString int             `json:"bass_string"`
	BassFret   int             `json:"bass_fret"`
	// RealizedIntervals are recomputed from Frets relative to the chord root,
	// sorted and deduplicated
	RealizedIntervals []int      `json:"realized_intervals"`
	Difficulty        Difficulty `json:"difficulty"`
}

// SoundedStrings counts strings that are not muted
func (g GeneratedFingering) SoundedStrings() int {
	n := 0
	for _, f := range g.Frets {
		if f != Muted {
			n++
		}
	}
	return n
}

// Stretch is the span between the lowest and highest fretted (non-open)
// positions, zero when fewer than two strings are fretted.
func (g GeneratedFingering) Stretch() int {
	lo, hi := -1, -1
	for _, f := range g.Frets {
		if f <= 0 {
			continue
		}
		if lo == -1 || f < lo {
			lo = f
		}
		if f > hi {
			hi = f
		}
	}
	if lo == -1 {
		return 0
	}
	return hi - lo
}

// Shape renders the frets in chord-chart notation, lowest string first.
// Single-digit shapes are compact ("x32010"); anything above fret 9 is
// dash separated ("x-10-12-12-11-x").
func (g GeneratedFingering) Shape() string {
	parts := make([]string, NumStrings)
	wide := false
	for i, f := range g.Frets {
		if f == Muted {
			parts[i] = "x"
			continue
		}
		parts[i] = strconv.Itoa(f)
		if f > 9 {
			wide = true
		}
	}
	if wide {
		return strings.Join(parts, "-")
	}
	return strings.Join(parts, "")
}

// ParseShape reads chart notation produced by Shape
func ParseShape(shape string) ([NumStrings]int, error) {
	var frets [NumStrings]int

	var parts []string
	if strings.Contains(shape, "-") {
		parts = strings.Split(shape, "-")
	} else {
		parts = strings.Split(shape, "")
	}
	if len(parts) != NumStrings {
		return frets, fmt.Errorf("shape %q: expected %d strings, got %d", shape, NumStrings, len(parts))
	}

	for i, p := range parts {
		if p == "x" || p == "X" {
			frets[i] = Muted
			continue
		}
		f, err := strconv.Atoi(p)
		if err != nil || f < 0 || f > MaxFret+MaxStretch {
			return frets, fmt.Errorf("shape %q: invalid fret %q on string %d", shape, p, i)
		}
		frets[i] = f
	}
	return frets, nil
}

const (
	// FingerNone is reported for open and muted strings
	FingerNone = 0
	// FingerUnassigned is reported for fretted strings past the fourth
	// distinct fret, which four fingers cannot cover
	FingerUnassigned = -1
)

// Barre is one finger stopping several strings at the same fret
type Barre struct {
	Fret       int `json:"fret"`
	LowString  int `json:"low_string"`
	HighString int `json:"high_string"`
}

// Fingering is a ranked, post-processed result ready for rendering
type Fingering struct {
	GeneratedFingering
	Fingers [NumStrings]int `json:"fingers"`
	Barre   *Barre          `json:"barre,omitempty"`
	// MultipleBarres is set when more than one barre group was found; only
	// the first is reported in Barre
	MultipleBarres bool   `json:"multiple_barres"`
	BaseFret       int    `json:"base_fret"`
	Strategy       string `json:"strategy"`
}

// HasUnassignedFingers reports whether any fretted string lacks a finger
func (f Fingering) HasUnassignedFingers() bool {
	for _, n := range f.Fingers {
		if n == FingerUnassigned {
			return true
		}
	}
	return false
}
