package theory

import (
	"fmt"
	"regexp"
)

// SlashChordDefinition is a curated (quality, bass interval) pair with the
// name guitarists usually give it. Used for labels only; pitch classes never
// depend on it.
type SlashChordDefinition struct {
	Quality      Quality `json:"quality"`
	BassInterval int     `json:"bass_interval"`
	DisplayName  string  `json:"display_name"`
}

var slashDefinitions = []SlashChordDefinition{
	{QualityMajor, MajorThird, "major, first inversion"},
	{QualityMajor, PerfectFifth, "major, second inversion"},
	{QualityMajor, MajorSecond, "major over the ninth (sus9 sound)"},
	{QualityMajor, PerfectFourth, "major over the fourth (lydian sound)"},
	{QualityMajor, MinorSeventh, "major over the flat seventh"},
	{QualityMajor, MajorSeventh, "major over the major seventh"},
	{QualityMajor, MajorSixth, "major over the sixth (relative minor seventh)"},
	{QualityMinor, MinorThird, "minor, first inversion"},
	{QualityMinor, PerfectFifth, "minor, second inversion"},
	{QualityMinor, MinorSeventh, "minor over the flat seventh"},
	{QualityMinor, MajorSixth, "minor over the sixth (half-diminished sound)"},
	{QualityMinor, AugmentedFifth, "minor over the flat sixth (major seventh sound)"},
	{QualityDominantSeventh, MajorThird, "dominant seventh, first inversion"},
	{QualityDominantSeventh, PerfectFifth, "dominant seventh, second inversion"},
	{QualityDominantSeventh, MinorSeventh, "dominant seventh, third inversion"},
	{QualityMajorSeventh, MajorThird, "major seventh, first inversion"},
	{QualityMajorSeventh, PerfectFifth, "major seventh, second inversion"},
	{QualityMajorSeventh, MajorSeventh, "major seventh, third inversion"},
	{QualityMinorSeventh, MinorThird, "minor seventh, first inversion"},
	{QualityMinorSeventh, PerfectFifth, "minor seventh, second inversion"},
	{QualityMinorSeventh, MinorSeventh, "minor seventh, third inversion"},
	{QualitySus4, MinorSeventh, "suspended over the flat seventh (eleventh sound)"},
	{QualitySus2, PerfectFifth, "suspended second, second inversion"},
	{QualityAddNine, MajorThird, "added ninth, first inversion"},
	{QualityDiminished, MinorThird, "diminished, first inversion"},
	{QualityAugmented, MajorThird, "augmented, first inversion"},
}

type slashKey struct {
	quality      Quality
	bassInterval int
}

var slashDefinitionIndex = func() map[slashKey]SlashChordDefinition {
	m := make(map[slashKey]SlashChordDefinition, len(slashDefinitions))
	for _, d := range slashDefinitions {
		m[slashKey{d.Quality, d.BassInterval}] = d
	}
	return m
}()

// SlashDefinitions returns a copy of the curated catalogue
func SlashDefinitions() []SlashChordDefinition {
	return append([]SlashChordDefinition(nil), slashDefinitions...)
}

// LookupSlashDefinition finds the curated entry for q over bassInterval
func LookupSlashDefinition(q Quality, bassInterval int) (SlashChordDefinition, bool) {
	d, ok := slashDefinitionIndex[slashKey{q, NormalizeToPitchClass(bassInterval)}]
	return d, ok
}

// SlashChordPitchClasses returns the pitch classes a slash chord must sound,
// bass first. When the bass is already a chord tone it is moved to the front;
// otherwise it is prepended as an added tone. The remaining tones keep the
// ascending interval order of the formula and appear once each.
//
// Unknown quality tokens resolve to the major triad.
func SlashChordPitchClasses(rootPC int, quality string, bassInterval int) []int {
	return slashPitchClasses(rootPC, ResolveQualityToIntervals(quality), bassInterval)
}

func slashPitchClasses(rootPC int, intervals []int, bassInterval int) []int {
	bassPC := NormalizeToPitchClass(rootPC + bassInterval)

	out := make([]int, 1, len(intervals)+1)
	out[0] = bassPC
	var seen [12]bool
	seen[bassPC] = true
	for _, iv := range intervals {
		pc := NormalizeToPitchClass(rootPC + iv)
		if seen[pc] {
			continue
		}
		seen[pc] = true
		out = append(out, pc)
	}
	return out
}

// chordPitchClasses returns the normalized tones of a chord, deduplicated, in
// formula order.
func chordPitchClasses(rootPC int, intervals []int) []int {
	out := make([]int, 0, len(intervals))
	var seen [12]bool
	for _, iv := range intervals {
		pc := NormalizeToPitchClass(rootPC + iv)
		if !seen[pc] {
			seen[pc] = true
			out = append(out, pc)
		}
	}
	return out
}

// ChordTarget is everything the fingering search needs to know about a chord
type ChordTarget struct {
	RootPC       int
	BassPC       int
	BassInterval int
	// Required lists the pitch classes to sound, bass first
	Required []int
	// BassIsChordTone is true when the bass belongs to the unslashed chord
	BassIsChordTone bool
}

// NewChordTarget resolves quality and builds the search target for a slash
// chord. Unknown quality tokens resolve to the major triad.
func NewChordTarget(rootPC int, quality string, bassInterval int) ChordTarget {
	rootPC = NormalizeToPitchClass(rootPC)
	bassInterval = NormalizeToPitchClass(bassInterval)
	intervals := ResolveQualityToIntervals(quality)
	bassPC := NormalizeToPitchClass(rootPC + bassInterval)

	isChordTone := false
	for _, pc := range chordPitchClasses(rootPC, intervals) {
		if pc == bassPC {
			isChordTone = true
			break
		}
	}

	return ChordTarget{
		RootPC:          rootPC,
		BassPC:          bassPC,
		BassInterval:    bassInterval,
		Required:        slashPitchClasses(rootPC, intervals, bassInterval),
		BassIsChordTone: isChordTone,
	}
}

// SlashLabel is a parsed "Root[Quality]/Bass" chord label
type SlashLabel struct {
	Root    string `json:"root"`
	Quality string `json:"quality"`
	Bass    string `json:"bass"`
	RootPC  int    `json:"root_pc"`
	BassPC  int    `json:"bass_pc"`
}

// BassInterval returns the interval from the label's root to its bass
func (l SlashLabel) BassInterval() int {
	return BassInterval(l.RootPC, l.BassPC)
}

// IsSlash reports whether the bass differs from the root
func (l SlashLabel) IsSlash() bool {
	return l.RootPC != l.BassPC
}

func (l SlashLabel) String() string {
	if l.Bass == "" || l.Bass == l.Root {
		return l.Root + l.Quality
	}
	return l.Root + l.Quality + "/" + l.Bass
}

var (
	slashLabelRe = regexp.MustCompile(`^([A-G][#b]?)(.*?)/([A-G][#b]?)$`)
	chordLabelRe = regexp.MustCompile(`^([A-G][#b]?)(.*?)(?:/([A-G][#b]?))?$`)
)

// ParseSlashLabel decomposes "Root[Quality]/Bass" text such as "Am7/E". The
// bass is required; plain chord labels are rejected. The quality is returned
// as written and is not validated.
func ParseSlashLabel(text string) (SlashLabel, bool) {
	return parseLabel(slashLabelRe, text)
}

// ParseChordLabel is ParseSlashLabel with the bass optional. A label without
// a bass gets the root as its bass.
func ParseChordLabel(text string) (SlashLabel, bool) {
	return parseLabel(chordLabelRe, text)
}

func parseLabel(re *regexp.Regexp, text string) (SlashLabel, bool) {
	m := re.FindStringSubmatch(foldToken(text))
	if m == nil {
		return SlashLabel{}, false
	}

	rootPC, err := NoteNameToPitchClass(m[1])
	if err != nil {
		return SlashLabel{}, false
	}
	label := SlashLabel{Root: m[1], Quality: m[2], Bass: m[1], RootPC: rootPC, BassPC: rootPC}

	if m[3] != "" {
		bassPC, err := NoteNameToPitchClass(m[3])
		if err != nil {
			return SlashLabel{}, false
		}
		label.Bass = m[3]
		label.BassPC = bassPC
	}
	return label, true
}

// BassInterval returns the interval from root to bass, both pitch classes
func BassInterval(rootPC, bassPC int) int {
	return NormalizeToPitchClass(bassPC - rootPC)
}

// BassIntervalFromNames is BassInterval for note names ("A", "E" -> 7)
func BassIntervalFromNames(root, bass string) (int, error) {
	rootPC, err := NoteNameToPitchClass(root)
	if err != nil {
		return 0, fmt.Errorf("root: %w", err)
	}
	bassPC, err := NoteNameToPitchClass(bass)
	if err != nil {
		return 0, fmt.Errorf("bass: %w", err)
	}
	return BassInterval(rootPC, bassPC), nil
}

// DisplayInfo describes a slash chord label for rendering
type DisplayInfo struct {
	Root         string `json:"root"`
	Quality      string `json:"quality"`
	Bass         string `json:"bass"`
	BassInterval int    `json:"bass_interval"`
	// Intervals are the resolved raw intervals of the quality
	Intervals []int `json:"intervals"`
	// PitchClasses are the tones to sound, bass first
	PitchClasses []int  `json:"pitch_classes"`
	Registered   bool   `json:"registered"`
	DisplayName  string `json:"display_name,omitempty"`
}

// HasDisplayName reports whether a curated name was found
func (d DisplayInfo) HasDisplayName() bool {
	return d.DisplayName != ""
}

// SlashChordDisplayInfo parses label and attaches the curated display name
// when one exists for its (quality, bass interval) pair.
func SlashChordDisplayInfo(label string) (DisplayInfo, bool) {
	parsed, ok := ParseSlashLabel(label)
	if !ok {
		return DisplayInfo{}, false
	}

	q, registered := ParseQuality(parsed.Quality)
	token := parsed.Quality
	if registered {
		token = q.Token()
	}
	bassInterval := parsed.BassInterval()

	info := DisplayInfo{
		Root:         parsed.Root,
		Quality:      token,
		Bass:         parsed.Bass,
		BassInterval: bassInterval,
		Intervals:    ResolveQualityToIntervals(parsed.Quality),
		PitchClasses: SlashChordPitchClasses(parsed.RootPC, parsed.Quality, bassInterval),
		Registered:   registered,
	}
	if registered {
		if def, ok := LookupSlashDefinition(q, bassInterval); ok {
			info.DisplayName = def.DisplayName
		}
	}
	return info, true
}
