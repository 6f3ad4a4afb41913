package catalogue

import (
	"fmt"

	"github.com/Conceptual-Machines/fretboard-api/internal/fretboard"
	"github.com/Conceptual-Machines/fretboard-api/internal/theory"
)

type seedEntry struct {
	root    string
	quality string
	chart   string
}

// open-position and first-position shapes, lowest string first
var seedEntries = []seedEntry{
	{"C", "", "x32010"},
	{"A", "", "x02220"},
	{"G", "", "320003"},
	{"E", "", "022100"},
	{"D", "", "xx0232"},
	{"F", "", "133211"},
	{"A", "m", "x02210"},
	{"E", "m", "022000"},
	{"D", "m", "xx0231"},
	{"B", "m", "x24432"},
	{"F#", "m", "244222"},
	{"A", "7", "x02020"},
	{"E", "7", "020100"},
	{"D", "7", "xx0212"},
	{"G", "7", "320001"},
	{"C", "7", "x32310"},
	{"B", "7", "x21202"},
	{"C", "maj7", "x32000"},
	{"F", "maj7", "xx3210"},
	{"A", "maj7", "x02120"},
	{"D", "maj7", "xx0222"},
	{"A", "m7", "x02010"},
	{"E", "m7", "020000"},
	{"D", "m7", "xx0211"},
	{"A", "sus2", "x02200"},
	{"D", "sus2", "xx0230"},
	{"A", "sus4", "x02230"},
	{"D", "sus4", "xx0233"},
	{"E", "sus4", "022200"},
	{"C", "add9", "x32030"},
	{"G", "6", "320000"},
	{"E", "5", "022xxx"},
	{"A", "5", "x022xx"},
	{"D", "dim7", "xx0101"},
}

// Seed returns the built-in catalogue shapes
func Seed() []Shape {
	shapes := make([]Shape, 0, len(seedEntries))
	positions := map[shapeKey]int{}
	for _, e := range seedEntries {
		shape, err := e.shape()
		if err != nil {
			panic(err)
		}
		key := shapeKey{shape.RootPC, shape.Quality}
		shape.Position = positions[key]
		positions[key]++
		shapes = append(shapes, shape)
	}
	return shapes
}

func (e seedEntry) shape() (Shape, error) {
	rootPC, err := theory.NoteNameToPitchClass(e.root)
	if err != nil {
		return Shape{}, fmt.Errorf("seed %s%s: %w", e.root, e.quality, err)
	}
	frets, err := fretboard.ParseShape(e.chart)
	if err != nil {
		return Shape{}, fmt.Errorf("seed %s%s: %w", e.root, e.quality, err)
	}
	return Shape{
		RootPC:  rootPC,
		Quality: e.quality,
		Frets:   frets,
		Source:  "seed",
	}, nil
}
