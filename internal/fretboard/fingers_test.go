package fretboard

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func TestEstimateFingers(t *testing.T) {
	tests := []struct {
		name     string
		frets    [NumStrings]int
		expected [NumStrings]int
	}{
		{
			name:     "open C",
			frets:    [NumStrings]int{Muted, 3, 2, 0, 1, 0},
			expected: [NumStrings]int{0, 3, 2, 0, 1, 0},
		},
		{
			name:     "repeated fret reuses the finger",
			frets:    [NumStrings]int{Muted, 7, 5, 5, 8, 8},
			expected: [NumStrings]int{0, 2, 1, 1, 3, 3},
		},
		{
			name:     "fifth distinct fret is unassigned",
			frets:    [NumStrings]int{1, 2, 3, 4, 5, Muted},
			expected: [NumStrings]int{1, 2, 3, 4, FingerUnassigned, 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EstimateFingers(tt.frets))
		})
	}
}

func TestDetectBarre(t *testing.T) {
	single := [NumStrings]int{Muted, 0, 2, 2, 2, 0}
	barre, multiple := DetectBarre(single, EstimateFingers(single))
	require.NotNil(t, barre)
	assert.Equal(t, Barre{Fret: 2, LowString: 2, HighString: 4}, *barre)
	assert.False(t, multiple)

	// E-shape: the index barre is reported, the pair on fret 3 is flagged
	eShape := [NumStrings]int{1, 3, 3, 2, 1, 1}
	barre, multiple = DetectBarre(eShape, EstimateFingers(eShape))
	require.NotNil(t, barre)
	assert.Equal(t, Barre{Fret: 1, LowString: 0, HighString: 5}, *barre)
	assert.True(t, multiple)

	open := [NumStrings]int{Muted, 3, 2, 0, 1, 0}
	barre, multiple = DetectBarre(open, EstimateFingers(open))
	assert.Nil(t, barre)
	assert.False(t, multiple)

	two := [NumStrings]int{Muted, 7, 5, 5, 8, 8}
	barre, multiple = DetectBarre(two, EstimateFingers(two))
	require.NotNil(t, barre)
	assert.Equal(t, 5, barre.Fret)
	assert.True(t, multiple)
}

func TestBaseFret(t *testing.T) {
	assert.Equal(t, 1, BaseFret([NumStrings]int{Muted, 3, 2, 0, 1, 0}))
	assert.Equal(t, 1, BaseFret([NumStrings]int{0, 0, 0, 0, 0, 0}))
	assert.Equal(t, 1, BaseFret([NumStrings]int{Muted, Muted, 4, 4, 4, Muted}))
	assert.Equal(t, 5, BaseFret([NumStrings]int{Muted, 7, 5, 5, 8, 8}))
	assert.Equal(t, 2, BaseFret([NumStrings]int{Muted, 2, 4, 4, 5, 0}))
}

func TestFingering_HasUnassignedFingers(t *testing.T) {
	f := finish(GeneratedFingering{Frets: [NumStrings]int{1, 2, 3, 4, 5, Muted}}, "greedy")
	assert.True(t, f.HasUnassignedFingers())

	f = finish(GeneratedFingering{Frets: [NumStrings]int{Muted, 3, 2, 0, 1, 0}}, "greedy")
	assert.False(t, f.HasUnassignedFingers())
	assert.Equal(t, 1, f.BaseFret)
}

func TestShapeRoundTrip(t *testing.T) {
	for _, shape := range []string{"x32010", "320003", "xx0232", "x-10-12-12-11-x", "12-10-10-12-13-15"} {
		frets, err := ParseShape(shape)
		require.NoError(t, err, shape)
		assert.Equal(t, shape, GeneratedFingering{Frets: frets}.Shape())
	}

	for _, bad := range []string{"", "x3201", "x3201a", "x-3-2-0-1", "x-30-2-0-1-0"} {
		_, err := ParseShape(bad)
		assert.Error(t, err, bad)
	}
}

func TestMIDINotes(t *testing.T) {
	frets := [NumStrings]int{Muted, 7, 5, 5, 8, 8}
	assert.Equal(t, []uint8{52, 55, 60, 67, 72}, MIDINotes(frets, StandardTuning))
	assert.Len(t, NoteNames(frets, StandardTuning), 5)
}

func TestWriteStrumSMF(t *testing.T) {
	results := GenerateFromSlashLabel("C/E")
	require.NotEmpty(t, results)

	var buf bytes.Buffer
	require.NoError(t, WriteStrumSMF(&buf, results[0], StandardTuning, "C/E"))

	s, err := smf.ReadFrom(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, s.Tracks, 1)

	var keys []uint8
	for _, ev := range s.Tracks[0] {
		var ch, key, vel uint8
		if midi.Message(ev.Message).GetNoteStart(&ch, &key, &vel) {
			keys = append(keys, key)
		}
	}
	assert.Equal(t, MIDINotes(results[0].Frets, StandardTuning), keys)
}

func TestWriteStrumSMF_AllMuted(t *testing.T) {
	var frets [NumStrings]int
	for i := range frets {
		frets[i] = Muted
	}
	var buf bytes.Buffer
	err := WriteStrumSMF(&buf, Fingering{GeneratedFingering: GeneratedFingering{Frets: frets}}, StandardTuning, "silence")
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}
