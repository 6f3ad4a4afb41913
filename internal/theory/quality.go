package theory

import (
	"encoding/json"
	"fmt"
)

// Quality is the closed set of chord qualities the resolver understands.
// Every textual spelling goes through ParseQuality to land on one of these.
type Quality int

const (
	QualityMajor Quality = iota
	QualityMinor
	QualityDiminished
	QualityAugmented
	QualitySus2
	QualitySus4
	QualityPower
	QualitySixth
	QualityMinorSixth
	QualitySixNine
	QualityMinorSixNine
	QualityDominantSeventh
	QualityMajorSeventh
	QualityMinorSeventh
	QualityMinorMajorSeventh
	QualityDiminishedSeventh
	QualityHalfDiminished
	QualitySeventhSus4
	QualitySeventhSus2
	QualitySeventhSharpFive
	QualitySeventhFlatFive
	QualityMajorSeventhSharpFive
	QualityAddNine
	QualityMinorAddNine
	QualityAddEleven
	QualityNinth
	QualityMajorNinth
	QualityMinorNinth
	QualitySeventhFlatNine
	QualitySeventhSharpNine
	QualityNinthSus4
	QualityEleventh
	QualityMinorEleventh
	QualitySeventhSharpEleven
	QualityMajorSeventhSharpEleven
	QualityThirteenth
	QualityMajorThirteenth
	QualityMinorThirteenth
	QualitySeventhFlatThirteen
	QualityAltered
	QualityQuartal
	QualityMu
	QualitySoWhat
	QualitySus2Sus4

	qualityCount
)

type qualityEntry struct {
	token   string
	name    string
	formula ChordFormula
}

var (
	majorTriad = Formula(BaseMajor)
	minorTriad = Formula(BaseMinor)
	dom7       = majorTriad.WithSeventh(SeventhDominant)
	min7       = minorTriad.WithSeventh(SeventhDominant)
	maj7       = majorTriad.WithSeventh(SeventhMajor)
)

// qualityTable is indexed by Quality. Registry formulas are values, so the
// shared bases above are copied into each entry.
var qualityTable = [qualityCount]qualityEntry{
	QualityMajor:                   {"", "major", majorTriad},
	QualityMinor:                   {"m", "minor", minorTriad},
	QualityDiminished:              {"dim", "diminished", Formula(BaseDiminished)},
	QualityAugmented:               {"aug", "augmented", Formula(BaseAugmented)},
	QualitySus2:                    {"sus2", "suspended second", Formula(BaseSus2)},
	QualitySus4:                    {"sus4", "suspended fourth", Formula(BaseSus4)},
	QualityPower:                   {"5", "power chord", Formula(BasePower)},
	QualitySixth:                   {"6", "major sixth", majorTriad.WithSixth()},
	QualityMinorSixth:              {"m6", "minor sixth", minorTriad.WithSixth()},
	QualitySixNine:                 {"69", "six nine", majorTriad.WithSixth().WithExtensions(ExtNine)},
	QualityMinorSixNine:            {"m69", "minor six nine", minorTriad.WithSixth().WithExtensions(ExtNine)},
	QualityDominantSeventh:         {"7", "dominant seventh", dom7},
	QualityMajorSeventh:            {"maj7", "major seventh", maj7},
	QualityMinorSeventh:            {"m7", "minor seventh", min7},
	QualityMinorMajorSeventh:       {"mMaj7", "minor major seventh", minorTriad.WithSeventh(SeventhMajor)},
	QualityDiminishedSeventh:       {"dim7", "diminished seventh", Formula(BaseDiminished).WithSeventh(SeventhDiminished)},
	QualityHalfDiminished:          {"m7b5", "half diminished", Formula(BaseDiminished).WithSeventh(SeventhDominant)},
	QualitySeventhSus4:             {"7sus4", "dominant seventh suspended fourth", Formula(BaseSus4).WithSeventh(SeventhDominant)},
	QualitySeventhSus2:             {"7sus2", "dominant seventh suspended second", Formula(BaseSus2).WithSeventh(SeventhDominant)},
	QualitySeventhSharpFive:        {"7#5", "augmented seventh", dom7.WithAlterations(SharpFifth)},
	QualitySeventhFlatFive:         {"7b5", "dominant seventh flat five", dom7.WithAlterations(FlatFifth)},
	QualityMajorSeventhSharpFive:   {"maj7#5", "augmented major seventh", maj7.WithAlterations(SharpFifth)},
	QualityAddNine:                 {"add9", "added ninth", majorTriad.WithExtensions(ExtNine)},
	QualityMinorAddNine:            {"madd9", "minor added ninth", minorTriad.WithExtensions(ExtNine)},
	QualityAddEleven:               {"add11", "added eleventh", majorTriad.WithExtensions(ExtEleven)},
	QualityNinth:                   {"9", "dominant ninth", dom7.WithExtensions(ExtNine)},
	QualityMajorNinth:              {"maj9", "major ninth", maj7.WithExtensions(ExtNine)},
	QualityMinorNinth:              {"m9", "minor ninth", min7.WithExtensions(ExtNine)},
	QualitySeventhFlatNine:         {"7b9", "dominant seventh flat nine", dom7.WithExtensions(ExtFlatNine)},
	QualitySeventhSharpNine:        {"7#9", "dominant seventh sharp nine", dom7.WithExtensions(ExtSharpNine)},
	QualityNinthSus4:               {"9sus4", "ninth suspended fourth", Formula(BaseSus4).WithSeventh(SeventhDominant).WithExtensions(ExtNine)},
	QualityEleventh:                {"11", "dominant eleventh", dom7.WithExtensions(ExtNine, ExtEleven)},
	QualityMinorEleventh:           {"m11", "minor eleventh", min7.WithExtensions(ExtNine, ExtEleven)},
	QualitySeventhSharpEleven:      {"7#11", "dominant seventh sharp eleven", dom7.WithExtensions(ExtSharpEleven)},
	QualityMajorSeventhSharpEleven: {"maj7#11", "lydian major seventh", maj7.WithExtensions(ExtSharpEleven)},
	QualityThirteenth:              {"13", "dominant thirteenth", dom7.WithExtensions(ExtNine, ExtThirteen)},
	QualityMajorThirteenth:         {"maj13", "major thirteenth", maj7.WithExtensions(ExtNine, ExtThirteen)},
	QualityMinorThirteenth:         {"m13", "minor thirteenth", min7.WithExtensions(ExtNine, ExtThirteen)},
	QualitySeventhFlatThirteen:     {"7b13", "dominant seventh flat thirteen", dom7.WithExtensions(ExtFlatThirteen)},
	QualityAltered:                 {"7alt", "altered dominant", dom7.WithAlterations(SharpFifth).WithExtensions(ExtFlatNine, ExtSharpNine)},
	QualityQuartal:                 {"quartal", "quartal", CustomFormula(BaseSus4, Unison, PerfectFourth, MinorSeventh)},
	QualityMu:                      {"mu", "mu major", CustomFormula(BaseMajor, Unison, MajorSecond, MajorThird, PerfectFifth)},
	QualitySoWhat:                  {"sowhat", "so what voicing", CustomFormula(BaseSus4, Unison, PerfectFourth, MinorSeventh, Octave+MinorThird, Octave+PerfectFifth)},
	QualitySus2Sus4:                {"sus24", "suspended second and fourth", CustomFormula(BaseSus2, Unison, MajorSecond, PerfectFourth, PerfectFifth)},
}

// qualityByToken maps canonical tokens back to their Quality
var qualityByToken = func() map[string]Quality {
	m := make(map[string]Quality, qualityCount)
	for q := Quality(0); q < qualityCount; q++ {
		m[qualityTable[q].token] = q
	}
	return m
}()

// Valid reports whether q is one of the declared qualities
func (q Quality) Valid() bool {
	return q >= 0 && q < qualityCount
}

// Token returns the canonical token ("" for the major triad)
func (q Quality) Token() string {
	if !q.Valid() {
		return ""
	}
	return qualityTable[q].token
}

// Name returns a human readable quality name
func (q Quality) Name() string {
	if !q.Valid() {
		return "unknown"
	}
	return qualityTable[q].name
}

func (q Quality) String() string {
	if !q.Valid() {
		return fmt.Sprintf("Quality(%d)", int(q))
	}
	return q.Name()
}

// Formula returns the registry formula for q. Invalid values fall back to the
// major triad.
func (q Quality) Formula() ChordFormula {
	if !q.Valid() {
		return qualityTable[QualityMajor].formula
	}
	return qualityTable[q].formula
}

// Intervals returns the raw intervals of q's formula
func (q Quality) Intervals() []int {
	return q.Formula().Intervals()
}

// MarshalJSON encodes a quality as its canonical token
func (q Quality) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.Token())
}

// UnmarshalJSON accepts any spelling ParseQuality understands
func (q *Quality) UnmarshalJSON(data []byte) error {
	var token string
	if err := json.Unmarshal(data, &token); err != nil {
		return err
	}
	parsed, ok := ParseQuality(token)
	if !ok {
		return fmt.Errorf("unknown chord quality %q", token)
	}
	*q = parsed
	return nil
}

// Qualities returns every declared quality in declaration order
func Qualities() []Quality {
	out := make([]Quality, 0, qualityCount)
	for q := Quality(0); q < qualityCount; q++ {
		out = append(out, q)
	}
	return out
}

// ResolveQualityToIntervals resolves a quality token to raw intervals. It
// never fails: unknown tokens resolve to the major triad [0,4,7]. Use
// IsRegistered to tell a real match from the fallback.
func ResolveQualityToIntervals(token string) []int {
	q, ok := ParseQuality(token)
	if !ok {
		return QualityMajor.Intervals()
	}
	return q.Intervals()
}

// IsRegistered reports whether token resolves without falling back
func IsRegistered(token string) bool {
	_, ok := ParseQuality(token)
	return ok
}
