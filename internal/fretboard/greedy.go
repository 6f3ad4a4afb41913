package fretboard

import "github.com/Conceptual-Machines/fretboard-api/internal/theory"

// GreedyStrategy fills strings first-fit from the highest string down to the
// bass, without backtracking. It finds a playable shape quickly but makes no
// claim of finding the best one.
type GreedyStrategy struct{}

func (GreedyStrategy) Name() string {
	return "greedy"
}

func (GreedyStrategy) Attempt(target theory.ChordTarget, tuning Tuning, bassString int) (GeneratedFingering, bool) {
	bassFret, ok := bassFretFor(target, tuning, bassString)
	if !ok {
		return GeneratedFingering{}, false
	}
	lo, hi := searchWindow(bassFret)

	var required, covered [12]bool
	for _, pc := range target.Required {
		required[pc] = true
	}
	covered[target.BassPC] = true

	var frets [NumStrings]int
	for i := range frets {
		frets[i] = Muted
	}
	frets[bassString] = bassFret

	for _, s := range tuning.stringsByPitchDesc() {
		if !tuning.IsHigher(s, bassString) {
			continue
		}

		open := tuning.OpenPitchClass(s)
		if required[open] && !covered[open] {
			frets[s] = 0
			covered[open] = true
			continue
		}

		fret := Muted
		for f := lo; f <= hi; f++ {
			pc := tuning.PitchClassAt(s, f)
			if required[pc] && !covered[pc] {
				fret = f
				break
			}
		}
		if fret == Muted {
			for f := lo; f <= hi; f++ {
				if required[tuning.PitchClassAt(s, f)] {
					fret = f
					break
				}
			}
		}
		if fret != Muted {
			frets[s] = fret
			covered[tuning.PitchClassAt(s, fret)] = true
		}
	}

	if !covered[target.RootPC] && !target.BassIsChordTone {
		return GeneratedFingering{}, false
	}

	g := GeneratedFingering{
		Frets:             frets,
		BassString:        bassString,
		BassFret:          bassFret,
		RealizedIntervals: RealizedIntervals(frets, tuning, target.RootPC),
	}
	g.Difficulty = scoreDifficulty(g)
	return g, true
}
