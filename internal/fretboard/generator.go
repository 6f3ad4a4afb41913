package fretboard

import (
	"sort"

	"github.com/Conceptual-Machines/fretboard-api/internal/theory"
)

// Options configures a Generator. Zero values select the defaults.
type Options struct {
	Tuning   Tuning
	Strategy Strategy
	// BassStrings is the bass-string preference order, defaulting to the two
	// lowest strings of the tuning
	BassStrings []int
	MaxResults  int
}

// Generator ranks fingerings produced by a Strategy
type Generator struct {
	tuning      Tuning
	strategy    Strategy
	bassStrings []int
	maxResults  int
}

// NewGenerator creates a generator, filling unset options with defaults
func NewGenerator(opts Options) *Generator {
	if opts.Tuning.Name == "" {
		opts.Tuning = StandardTuning
	}
	if opts.Strategy == nil {
		opts.Strategy = GreedyStrategy{}
	}
	if len(opts.BassStrings) == 0 {
		opts.BassStrings = opts.Tuning.lowestStrings(2)
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = MaxResults
	}
	return &Generator{
		tuning:      opts.Tuning,
		strategy:    opts.Strategy,
		bassStrings: append([]int(nil), opts.BassStrings...),
		maxResults:  opts.MaxResults,
	}
}

// Tuning returns the tuning the generator searches
func (g *Generator) Tuning() Tuning {
	return g.tuning
}

// StrategyName returns the name of the configured search strategy
func (g *Generator) StrategyName() string {
	return g.strategy.Name()
}

// SlashChordFingerings returns up to MaxResults fingerings for quality on
// rootPC with the bass bassInterval semitones above the root, easiest first.
// An empty result is a normal outcome.
func (g *Generator) SlashChordFingerings(rootPC int, quality string, bassInterval int) []Fingering {
	target := theory.NewChordTarget(rootPC, quality, bassInterval)

	candidates := make([]GeneratedFingering, 0, len(g.bassStrings))
	for _, s := range g.bassStrings {
		if s < 0 || s >= NumStrings {
			continue
		}
		if c, ok := g.strategy.Attempt(target, g.tuning, s); ok {
			candidates = append(candidates, c)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Difficulty.Rank() < candidates[j].Difficulty.Rank()
	})
	if len(candidates) > g.maxResults {
		candidates = candidates[:g.maxResults]
	}

	out := make([]Fingering, len(candidates))
	for i, c := range candidates {
		out[i] = finish(c, g.strategy.Name())
	}
	return out
}

// FromSlashLabel parses a "Root[Quality]/Bass" label and generates its
// fingerings. Labels that do not parse yield no fingerings.
func (g *Generator) FromSlashLabel(label string) []Fingering {
	parsed, ok := theory.ParseSlashLabel(label)
	if !ok {
		return []Fingering{}
	}
	return g.SlashChordFingerings(parsed.RootPC, parsed.Quality, parsed.BassInterval())
}

var defaultGenerator = NewGenerator(Options{})

// GenerateSlashChordFingerings runs the default greedy generator in standard
// tuning.
func GenerateSlashChordFingerings(rootPC int, quality string, bassInterval int) []Fingering {
	return defaultGenerator.SlashChordFingerings(rootPC, quality, bassInterval)
}

// GenerateFromSlashLabel is FromSlashLabel on the default generator
func GenerateFromSlashLabel(label string) []Fingering {
	return defaultGenerator.FromSlashLabel(label)
}
