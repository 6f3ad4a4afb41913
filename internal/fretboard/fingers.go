package fretboard

import "sort"

// EstimateFingers numbers fretted strings 1-4 in increasing fret order,
// reusing a finger when the fret repeats. Strings past the fourth distinct
// fret get FingerUnassigned; open and muted strings get FingerNone.
func EstimateFingers(frets [NumStrings]int) [NumStrings]int {
	var fingers [NumStrings]int

	fretted := make([]int, 0, NumStrings)
	for s, f := range frets {
		if f > 0 {
			fretted = append(fretted, s)
		}
	}
	sort.SliceStable(fretted, func(i, j int) bool {
		return frets[fretted[i]] < frets[fretted[j]]
	})

	finger, prevFret := 0, -1
	for _, s := range fretted {
		if frets[s] != prevFret {
			finger++
			prevFret = frets[s]
		}
		if finger > 4 {
			fingers[s] = FingerUnassigned
			continue
		}
		fingers[s] = finger
	}
	return fingers
}

// DetectBarre groups strings by (finger, fret) and returns the first group in
// finger order that spans two or more strings. multiple reports whether
// further groups were found and left out.
func DetectBarre(frets, fingers [NumStrings]int) (barre *Barre, multiple bool) {
	for finger := 1; finger <= 4; finger++ {
		groups := map[int][]int{}
		var order []int
		for s := 0; s < NumStrings; s++ {
			if fingers[s] != finger {
				continue
			}
			if _, ok := groups[frets[s]]; !ok {
				order = append(order, frets[s])
			}
			groups[frets[s]] = append(groups[frets[s]], s)
		}
		for _, fret := range order {
			strings := groups[fret]
			if len(strings) < 2 {
				continue
			}
			if barre != nil {
				return barre, true
			}
			barre = &Barre{Fret: fret, LowString: strings[0], HighString: strings[len(strings)-1]}
		}
	}
	return barre, false
}

// BaseFret is the fret a chord diagram starts from: 1 when every fretted
// note fits in the first four frets, otherwise the lowest fretted position.
func BaseFret(frets [NumStrings]int) int {
	lo, hi := 0, 0
	for _, f := range frets {
		if f <= 0 {
			continue
		}
		if lo == 0 || f < lo {
			lo = f
		}
		if f > hi {
			hi = f
		}
	}
	if hi <= 4 {
		return 1
	}
	return lo
}

// finish attaches finger numbers, barre and base fret to a raw result
func finish(g GeneratedFingering, strategy string) Fingering {
	fingers := EstimateFingers(g.Frets)
	barre, multiple := DetectBarre(g.Frets, fingers)
	return Fingering{
		GeneratedFingering: g,
		Fingers:            fingers,
		Barre:              barre,
		MultipleBarres:     multiple,
		BaseFret:           BaseFret(g.Frets),
		Strategy:           strategy,
	}
}

// FromFrets builds a Fingering for an existing shape, such as a catalogue
// entry. The bass is the lowest-pitched sounded string. An all-muted shape
// yields a zero BassFret and no realized intervals.
func FromFrets(frets [NumStrings]int, rootPC int, tuning Tuning, source string) Fingering {
	g := GeneratedFingering{
		Frets:             frets,
		BassString:        Muted,
		RealizedIntervals: RealizedIntervals(frets, tuning, rootPC),
	}
	for _, s := range tuning.lowestStrings(NumStrings) {
		if frets[s] != Muted {
			g.BassString = s
			g.BassFret = frets[s]
			break
		}
	}
	g.Difficulty = scoreDifficulty(g)
	return finish(g, source)
}
