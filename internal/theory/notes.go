package theory

import (
	"fmt"
	"strings"
)

// pitchClassNames is the display spelling of each pitch class
var pitchClassNames = [12]string{"C", "C#", "D", "Eb", "E", "F", "F#", "G", "Ab", "A", "Bb", "B"}

// Note letter offsets from C
var letterOffsets = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// PitchClassName returns the display name for a pitch class (normalized first)
func PitchClassName(pc int) string {
	return pitchClassNames[NormalizeToPitchClass(pc)]
}

// NoteNameToPitchClass resolves a note name with an optional single sharp or
// flat. Enharmonic spellings fold onto one pitch class: "Fb" is E, "B#" is C.
func NoteNameToPitchClass(name string) (int, error) {
	name = symbolFolder.Replace(strings.TrimSpace(name))
	if name == "" {
		return 0, fmt.Errorf("empty note name")
	}

	offset, ok := letterOffsets[name[0]]
	if !ok {
		return 0, fmt.Errorf("invalid note letter: %q", name[:1])
	}

	switch name[1:] {
	case "":
	case "#":
		offset++
	case "b":
		offset--
	default:
		return 0, fmt.Errorf("invalid accidental in note name: %q", name)
	}

	return NormalizeToPitchClass(offset), nil
}
