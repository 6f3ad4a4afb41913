package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlashChordPitchClasses(t *testing.T) {
	tests := []struct {
		name         string
		root         int
		quality      string
		bassInterval int
		expected     []int
	}{
		{
			name:         "Am7/E moves the chord-tone bass to the front",
			root:         9,
			quality:      "m7",
			bassInterval: 7,
			expected:     []int{4, 9, 0, 7},
		},
		{
			name:         "C/E first inversion",
			root:         0,
			quality:      "",
			bassInterval: 4,
			expected:     []int{4, 0, 7},
		},
		{
			name:         "C/Bb prepends an added tone",
			root:         0,
			quality:      "",
			bassInterval: 10,
			expected:     []int{10, 0, 4, 7},
		},
		{
			name:         "C9/D collapses the ninth onto the bass",
			root:         0,
			quality:      "9",
			bassInterval: 2,
			expected:     []int{2, 0, 4, 7, 10},
		},
		{
			name:         "unknown quality falls back to major",
			root:         7,
			quality:      "nonsense",
			bassInterval: 4,
			expected:     []int{11, 7, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SlashChordPitchClasses(tt.root, tt.quality, tt.bassInterval))
		})
	}
}

func TestSlashChordPitchClasses_BassFirstForAllInputs(t *testing.T) {
	for root := 0; root < 12; root++ {
		for _, token := range allQualitySpellings() {
			for bi := 0; bi < 12; bi++ {
				pcs := SlashChordPitchClasses(root, token, bi)
				require.NotEmpty(t, pcs)
				require.Equal(t, NormalizeToPitchClass(root+bi), pcs[0], "root=%d quality=%q bass=%d", root, token, bi)

				seen := map[int]bool{}
				for _, pc := range pcs {
					require.False(t, seen[pc], "duplicate pitch class %d in %v", pc, pcs)
					seen[pc] = true
				}
			}
		}
	}
}

func TestBassIntervalRoundTrip(t *testing.T) {
	for root := 0; root < 12; root++ {
		for bass := 0; bass < 12; bass++ {
			bi := BassInterval(root, bass)
			require.GreaterOrEqual(t, bi, 0)
			require.Less(t, bi, 12)
			assert.Equal(t, bass, (root+bi)%12, "root=%d bass=%d", root, bass)
		}
	}
}

func TestParseSlashLabel(t *testing.T) {
	tests := []struct {
		label        string
		root         string
		quality      string
		bass         string
		rootPC       int
		bassPC       int
		bassInterval int
	}{
		{"Am7/E", "A", "m7", "E", 9, 4, 7},
		{"C/E", "C", "", "E", 0, 4, 4},
		{"F#m7b5/C", "F#", "m7b5", "C", 6, 0, 6},
		{"Bbmaj7/A", "Bb", "maj7", "A", 10, 9, 11},
		{"C6/9/E", "C", "6/9", "E", 0, 4, 4},
		{"Db/Fb", "Db", "", "Fb", 1, 4, 3},
		{"B♭7/A♭", "Bb", "7", "Ab", 10, 8, 10},
		{"Cm(maj7)/G", "C", "mmaj7", "G", 0, 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := ParseSlashLabel(tt.label)
			require.True(t, ok)
			assert.Equal(t, tt.root, got.Root)
			assert.Equal(t, tt.quality, got.Quality)
			assert.Equal(t, tt.bass, got.Bass)
			assert.Equal(t, tt.rootPC, got.RootPC)
			assert.Equal(t, tt.bassPC, got.BassPC)
			assert.Equal(t, tt.bassInterval, got.BassInterval())
		})
	}
}

func TestParseSlashLabel_Rejects(t *testing.T) {
	for _, label := range []string{"", "Am7", "am7/E", "Am7/", "Am7/H", "H/E", "/E", "C6/9"} {
		_, ok := ParseSlashLabel(label)
		assert.False(t, ok, "label %q should not parse", label)
	}
}

func TestParseChordLabel(t *testing.T) {
	plain, ok := ParseChordLabel("Am7")
	require.True(t, ok)
	assert.Equal(t, "m7", plain.Quality)
	assert.Equal(t, plain.RootPC, plain.BassPC)
	assert.False(t, plain.IsSlash())
	assert.Equal(t, "Am7", plain.String())

	sixNine, ok := ParseChordLabel("C6/9")
	require.True(t, ok)
	assert.Equal(t, "6/9", sixNine.Quality)
	assert.False(t, sixNine.IsSlash())

	slash, ok := ParseChordLabel("G/B")
	require.True(t, ok)
	assert.True(t, slash.IsSlash())
	assert.Equal(t, "G/B", slash.String())
}

func TestBassIntervalFromNames(t *testing.T) {
	bi, err := BassIntervalFromNames("A", "E")
	require.NoError(t, err)
	assert.Equal(t, 7, bi)

	bi, err = BassIntervalFromNames("E", "B#")
	require.NoError(t, err)
	assert.Equal(t, 8, bi)

	_, err = BassIntervalFromNames("X", "E")
	assert.Error(t, err)
}

func TestSlashChordDisplayInfo(t *testing.T) {
	info, ok := SlashChordDisplayInfo("Amin7/E")
	require.True(t, ok)
	assert.Equal(t, "A", info.Root)
	assert.Equal(t, "m7", info.Quality)
	assert.Equal(t, "E", info.Bass)
	assert.Equal(t, 7, info.BassInterval)
	assert.Equal(t, []int{0, 3, 7, 10}, info.Intervals)
	assert.Equal(t, []int{4, 9, 0, 7}, info.PitchClasses)
	assert.True(t, info.Registered)
	assert.Equal(t, "minor seventh, second inversion", info.DisplayName)
	assert.True(t, info.HasDisplayName())

	uncurated, ok := SlashChordDisplayInfo("C7#9/F#")
	require.True(t, ok)
	assert.False(t, uncurated.HasDisplayName())
	assert.Equal(t, []int{6, 0, 4, 7, 10, 3}, uncurated.PitchClasses)

	unknown, ok := SlashChordDisplayInfo("Cfoo/E")
	require.True(t, ok)
	assert.False(t, unknown.Registered)
	assert.Equal(t, "foo", unknown.Quality)
	assert.Equal(t, []int{0, 4, 7}, unknown.Intervals)

	_, ok = SlashChordDisplayInfo("not a chord")
	assert.False(t, ok)
}

func TestNewChordTarget(t *testing.T) {
	target := NewChordTarget(0, "", 4)
	assert.Equal(t, 4, target.BassPC)
	assert.Equal(t, []int{4, 0, 7}, target.Required)
	assert.True(t, target.BassIsChordTone)

	added := NewChordTarget(0, "", 10)
	assert.False(t, added.BassIsChordTone)
	assert.Equal(t, []int{10, 0, 4, 7}, added.Required)

	wrapped := NewChordTarget(-3, "m", 19)
	assert.Equal(t, 9, wrapped.RootPC)
	assert.Equal(t, 7, wrapped.BassInterval)
	assert.Equal(t, 4, wrapped.BassPC)
}

// allQualitySpellings is every canonical token followed by every alias
func allQualitySpellings() []string {
	var tokens []string
	for _, q := range Qualities() {
		tokens = append(tokens, q.Token())
	}
	return append(tokens, AliasTokens()...)
}
