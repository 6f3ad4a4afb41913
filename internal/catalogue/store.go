// Package catalogue holds hand-authored chord shapes. The fingering generator
// is the fallback when a chord has no catalogue entry, and the oracle Audit
// uses to check that entries sound what they claim.
package catalogue

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Conceptual-Machines/fretboard-api/internal/fretboard"
	"github.com/Conceptual-Machines/fretboard-api/internal/theory"
)

var ErrInvalidShape = errors.New("invalid chord shape")

// Shape is one catalogue entry
type Shape struct {
	RootPC   int                       `json:"root_pc"`
	Quality  string                    `json:"quality"`
	Position int                       `json:"position"`
	Frets    [fretboard.NumStrings]int `json:"frets"`
	Source   string                    `json:"source"`
}

// Label renders the shape's chord name ("Am7")
func (s Shape) Label() string {
	return theory.PitchClassName(s.RootPC) + s.Quality
}

// Chart renders the frets in chart notation
func (s Shape) Chart() string {
	return fretboard.GeneratedFingering{Frets: s.Frets}.Shape()
}

// Fingering converts the entry into a generator-compatible result with
// realized intervals, difficulty, fingers and barre filled in
func (s Shape) Fingering(tuning fretboard.Tuning) fretboard.Fingering {
	return fretboard.FromFrets(s.Frets, s.RootPC, tuning, "catalogue")
}

// Validate checks the root, quality and fret ranges
func (s Shape) Validate() error {
	if s.RootPC < 0 || s.RootPC > 11 {
		return fmt.Errorf("%w: root pitch class %d out of range", ErrInvalidShape, s.RootPC)
	}
	if !theory.IsRegistered(s.Quality) {
		return fmt.Errorf("%w: unknown quality %q", ErrInvalidShape, s.Quality)
	}
	sounded := 0
	for i, f := range s.Frets {
		if f < fretboard.Muted || f > fretboard.MaxFret {
			return fmt.Errorf("%w: fret %d on string %d", ErrInvalidShape, f, i)
		}
		if f != fretboard.Muted {
			sounded++
		}
	}
	if sounded == 0 {
		return fmt.Errorf("%w: every string is muted", ErrInvalidShape)
	}
	return nil
}

// Store looks up catalogue shapes. Quality tokens are normalized by the
// store, so "min7" and "m7" find the same entries.
type Store interface {
	Lookup(ctx context.Context, rootPC int, quality string) ([]Shape, error)
	All(ctx context.Context) ([]Shape, error)
	Save(ctx context.Context, shape Shape) error
}

type shapeKey struct {
	rootPC  int
	quality string
}

// MemoryStore is an in-process Store
type MemoryStore struct {
	mu     sync.RWMutex
	shapes map[shapeKey][]Shape
}

// NewMemoryStore creates a store holding shapes. Invalid shapes are rejected.
func NewMemoryStore(shapes ...Shape) (*MemoryStore, error) {
	s := &MemoryStore{shapes: make(map[shapeKey][]Shape)}
	for _, shape := range shapes {
		if err := s.Save(context.Background(), shape); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// NewSeededStore creates a MemoryStore holding the built-in open shapes
func NewSeededStore() *MemoryStore {
	s, err := NewMemoryStore(Seed()...)
	if err != nil {
		panic(fmt.Sprintf("catalogue: invalid seed: %v", err))
	}
	return s
}

func (s *MemoryStore) Lookup(_ context.Context, rootPC int, quality string) ([]Shape, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := shapeKey{theory.NormalizeToPitchClass(rootPC), theory.NormalizeQualityToken(quality)}
	return append([]Shape(nil), s.shapes[key]...), nil
}

func (s *MemoryStore) All(_ context.Context) ([]Shape, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Shape, 0, len(s.shapes))
	for _, shapes := range s.shapes {
		out = append(out, shapes...)
	}
	sortShapes(out)
	return out, nil
}

// Save adds shape, replacing any entry at the same root, quality and position
func (s *MemoryStore) Save(_ context.Context, shape Shape) error {
	shape.Quality = theory.NormalizeQualityToken(shape.Quality)
	if err := shape.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := shapeKey{shape.RootPC, shape.Quality}
	existing := s.shapes[key]
	for i := range existing {
		if existing[i].Position == shape.Position {
			existing[i] = shape
			return nil
		}
	}
	existing = append(existing, shape)
	sort.SliceStable(existing, func(i, j int) bool { return existing[i].Position < existing[j].Position })
	s.shapes[key] = existing
	return nil
}

func sortShapes(shapes []Shape) {
	sort.SliceStable(shapes, func(i, j int) bool {
		a, b := shapes[i], shapes[j]
		if a.RootPC != b.RootPC {
			return a.RootPC < b.RootPC
		}
		if a.Quality != b.Quality {
			return a.Quality < b.Quality
		}
		return a.Position < b.Position
	})
}
