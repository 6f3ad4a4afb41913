package fretboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/fretboard-api/internal/theory"
)

func TestGenerateSlashChordFingerings_COverE(t *testing.T) {
	results := GenerateSlashChordFingerings(0, "", 4)
	require.Len(t, results, 2)

	first := results[0]
	assert.Equal(t, [NumStrings]int{Muted, 7, 5, 5, 8, 8}, first.Frets)
	assert.Equal(t, 1, first.BassString)
	assert.Equal(t, 7, first.BassFret)
	assert.Equal(t, DifficultyMedium, first.Difficulty)
	assert.Equal(t, []int{0, 4, 7}, first.RealizedIntervals)
	assert.Equal(t, [NumStrings]int{0, 2, 1, 1, 3, 3}, first.Fingers)
	require.NotNil(t, first.Barre)
	assert.Equal(t, Barre{Fret: 5, LowString: 2, HighString: 3}, *first.Barre)
	assert.True(t, first.MultipleBarres)
	assert.Equal(t, 5, first.BaseFret)
	assert.Equal(t, "greedy", first.Strategy)

	// the open low E is pushed up to the twelfth fret
	second := results[1]
	assert.Equal(t, [NumStrings]int{12, 10, 10, 12, 13, 15}, second.Frets)
	assert.Equal(t, 0, second.BassString)
	assert.Equal(t, 12, second.BassFret)
	assert.Equal(t, DifficultyHard, second.Difficulty)
	assert.Equal(t, [NumStrings]int{2, 1, 1, 2, 3, 4}, second.Fingers)
	assert.Equal(t, 10, second.BaseFret)
}

func TestGenerateFromSlashLabel_AmSeventhOverE(t *testing.T) {
	results := GenerateFromSlashLabel("Am7/E")
	require.NotEmpty(t, results)

	first := results[0]
	assert.Equal(t, [NumStrings]int{Muted, 7, 5, 5, 8, 5}, first.Frets)
	assert.Equal(t, DifficultyMedium, first.Difficulty)
	assert.Equal(t, []int{0, 3, 7, 10}, first.RealizedIntervals)
	assert.Equal(t, [NumStrings]int{0, 2, 1, 1, 3, 1}, first.Fingers)
	require.NotNil(t, first.Barre)
	assert.Equal(t, Barre{Fret: 5, LowString: 2, HighString: 5}, *first.Barre)
	assert.False(t, first.MultipleBarres)

	assert.Equal(t, results, GenerateSlashChordFingerings(9, "m7", 7))
}

func TestGenerateFromSlashLabel_Unparseable(t *testing.T) {
	for _, label := range []string{"", "Am7", "nope/E"} {
		results := GenerateFromSlashLabel(label)
		assert.NotNil(t, results)
		assert.Empty(t, results, "label %q", label)
	}
}

func TestGenerateSlashChordFingerings_Properties(t *testing.T) {
	for root := 0; root < 12; root++ {
		for _, token := range qualitySpellings() {
			for bi := 0; bi < 12; bi++ {
				results := GenerateSlashChordFingerings(root, token, bi)
				require.LessOrEqual(t, len(results), MaxResults)

				for i, r := range results {
					require.Len(t, r.Frets, NumStrings)
					require.NotZero(t, r.BassFret, "bass must be fretted")
					require.Equal(t, r.BassFret, r.Frets[r.BassString])
					require.True(t,
						containsInt(r.RealizedIntervals, 0) || containsInt(r.RealizedIntervals, bi),
						"root=%d quality=%q bass=%d realized=%v", root, token, bi, r.RealizedIntervals)
					require.Contains(t, []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}, r.Difficulty)
					if i > 0 {
						require.LessOrEqual(t, results[i-1].Difficulty.Rank(), r.Difficulty.Rank())
					}

					for s := 0; s < r.BassString; s++ {
						require.Equal(t, Muted, r.Frets[s], "strings below the bass must be muted")
					}
				}
			}
		}
	}
}

func TestGreedyStrategy_DiscardsRootlessAddedBass(t *testing.T) {
	target := theory.ChordTarget{
		RootPC:          1,
		BassPC:          4,
		BassInterval:    3,
		Required:        []int{4},
		BassIsChordTone: false,
	}
	_, ok := GreedyStrategy{}.Attempt(target, StandardTuning, 0)
	assert.False(t, ok)
}

func TestGreedyStrategy_PrefersUncoveredOpenString(t *testing.T) {
	// Em/G: open E and B are uncovered chord tones, the open G is already
	// covered by the bass and gets fretted instead
	target := theory.NewChordTarget(4, "m", 3)
	g, ok := GreedyStrategy{}.Attempt(target, StandardTuning, 0)
	require.True(t, ok)
	assert.Equal(t, [NumStrings]int{3, 2, 2, 4, 0, 0}, g.Frets)
	assert.Equal(t, 3, g.BassFret)
	assert.Equal(t, DifficultyMedium, g.Difficulty)
	assert.Equal(t, "322400", g.Shape())
}

func TestGreedyStrategy_MutesStringsBelowTheBass(t *testing.T) {
	target := theory.NewChordTarget(7, "", 4)
	g, ok := GreedyStrategy{}.Attempt(target, StandardTuning, 1)
	require.True(t, ok)
	assert.Equal(t, [NumStrings]int{Muted, 2, 5, 4, 3, 3}, g.Frets)
	assert.Equal(t, []int{0, 4, 7}, g.RealizedIntervals)
}

type fixedStrategy struct {
	difficulties map[int]Difficulty
}

func (fixedStrategy) Name() string {
	return "fixed"
}

func (f fixedStrategy) Attempt(_ theory.ChordTarget, _ Tuning, bassString int) (GeneratedFingering, bool) {
	d, ok := f.difficulties[bassString]
	if !ok {
		return GeneratedFingering{}, false
	}
	var frets [NumStrings]int
	for i := range frets {
		frets[i] = Muted
	}
	frets[bassString] = 3
	return GeneratedFingering{Frets: frets, BassString: bassString, BassFret: 3, Difficulty: d}, true
}

func TestGenerator_RanksStablyAndTruncates(t *testing.T) {
	gen := NewGenerator(Options{
		Strategy: fixedStrategy{difficulties: map[int]Difficulty{
			0: DifficultyHard,
			1: DifficultyEasy,
			2: DifficultyHard,
			3: DifficultyMedium,
			4: DifficultyEasy,
		}},
		BassStrings: []int{0, 1, 2, 3, 4},
	})

	results := gen.SlashChordFingerings(0, "", 4)
	require.Len(t, results, MaxResults)
	assert.Equal(t, 1, results[0].BassString)
	assert.Equal(t, 4, results[1].BassString)
	assert.Equal(t, 3, results[2].BassString)
	assert.Equal(t, "fixed", results[0].Strategy)
	assert.Equal(t, "fixed", gen.StrategyName())
}

func TestGenerator_SkipsMissingAndOutOfRangeBassStrings(t *testing.T) {
	gen := NewGenerator(Options{
		Strategy:    fixedStrategy{difficulties: map[int]Difficulty{1: DifficultyEasy}},
		BassStrings: []int{-1, 0, 1, 9},
		MaxResults:  1,
	})
	results := gen.SlashChordFingerings(0, "", 4)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].BassString)
}

func TestNewGenerator_Defaults(t *testing.T) {
	gen := NewGenerator(Options{})
	assert.Equal(t, StandardTuning, gen.Tuning())
	assert.Equal(t, "greedy", gen.StrategyName())
	assert.Equal(t, []int{0, 1}, gen.bassStrings)
	assert.Equal(t, MaxResults, gen.maxResults)
}

func TestSearchWindow(t *testing.T) {
	tests := []struct {
		bassFret int
		lo, hi   int
	}{
		{1, 1, 4},
		{2, 1, 5},
		{7, 5, 10},
		{12, 10, 15},
		{14, 12, 15},
	}
	for _, tt := range tests {
		lo, hi := searchWindow(tt.bassFret)
		assert.Equal(t, tt.lo, lo, "bassFret=%d", tt.bassFret)
		assert.Equal(t, tt.hi, hi, "bassFret=%d", tt.bassFret)
	}
}

func TestScoreDifficulty(t *testing.T) {
	tests := []struct {
		name     string
		frets    [NumStrings]int
		bassFret int
		expected Difficulty
	}{
		{"compact low shape", [NumStrings]int{Muted, 3, 2, 0, 1, Muted}, 3, DifficultyEasy},
		{"five strings", [NumStrings]int{Muted, 3, 2, 0, 1, 0}, 3, DifficultyMedium},
		{"stretch of three", [NumStrings]int{Muted, 5, Muted, 5, 8, Muted}, 5, DifficultyMedium},
		{"high and wide", [NumStrings]int{12, 10, 10, 12, 13, 15}, 12, DifficultyHard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := GeneratedFingering{Frets: tt.frets, BassFret: tt.bassFret}
			assert.Equal(t, tt.expected, scoreDifficulty(g))
		})
	}
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func qualitySpellings() []string {
	var tokens []string
	for _, q := range theory.Qualities() {
		tokens = append(tokens, q.Token())
	}
	return append(tokens, theory.AliasTokens()...)
}
