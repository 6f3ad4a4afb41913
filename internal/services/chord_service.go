package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Conceptual-Machines/fretboard-api/internal/cache"
	"github.com/Conceptual-Machines/fretboard-api/internal/catalogue"
	"github.com/Conceptual-Machines/fretboard-api/internal/fretboard"
	"github.com/Conceptual-Machines/fretboard-api/internal/logger"
	"github.com/Conceptual-Machines/fretboard-api/internal/metrics"
	"github.com/Conceptual-Machines/fretboard-api/internal/theory"
)

// ErrInvalidLabel is returned for chord labels that do not parse
var ErrInvalidLabel = errors.New("invalid chord label")

// Where a fingering answer came from
const (
	SourceCatalogue = "catalogue"
	SourceCache     = "cache"
	SourceGenerator = "generator"
)

// FingeringResult is the answer to a chord lookup
type FingeringResult struct {
	Label        string                `json:"label"`
	Root         string                `json:"root"`
	Quality      string                `json:"quality"`
	Bass         string                `json:"bass"`
	BassInterval int                   `json:"bass_interval"`
	Registered   bool                  `json:"registered"`
	PitchClasses []int                 `json:"pitch_classes"`
	Source       string                `json:"source"`
	Fingerings   []fretboard.Fingering `json:"fingerings"`
}

// Resolution describes how a quality token resolved
type Resolution struct {
	Token      string `json:"token"`
	Canonical  string `json:"canonical"`
	Name       string `json:"name,omitempty"`
	Registered bool   `json:"registered"`
	// Intervals are raw, with extensions above the octave
	Intervals []int `json:"intervals"`
	// PitchClassIntervals are Intervals reduced to 0-11, sorted and unique
	PitchClassIntervals []int `json:"pitch_class_intervals"`
}

// ChordService answers chord lookups from the catalogue, the memo cache and
// the generator, in that order
type ChordService struct {
	store      catalogue.Store
	cache      *cache.FingeringCache
	generator  *fretboard.Generator
	cloudwatch *metrics.Client
	sentry     *metrics.SentryMetrics
}

// NewChordService wires the lookup chain. fc and cw may be nil.
func NewChordService(store catalogue.Store, fc *cache.FingeringCache, cw *metrics.Client) *ChordService {
	return &ChordService{
		store:      store,
		cache:      fc,
		generator:  fretboard.NewGenerator(fretboard.Options{}),
		cloudwatch: cw,
		sentry:     metrics.NewSentryMetrics(),
	}
}

// Tuning returns the tuning fingerings are generated for
func (s *ChordService) Tuning() fretboard.Tuning {
	return s.generator.Tuning()
}

// StrategyName names the fingering search strategy in use
func (s *ChordService) StrategyName() string {
	return s.generator.StrategyName()
}

// Shapes lists every catalogue entry
func (s *ChordService) Shapes(ctx context.Context) ([]catalogue.Shape, error) {
	return s.store.All(ctx)
}

// ResolveQuality resolves a quality token, falling back to the major triad
func (s *ChordService) ResolveQuality(ctx context.Context, token string) Resolution {
	q, registered := theory.ParseQuality(token)
	intervals := theory.ResolveQualityToIntervals(token)

	r := Resolution{
		Token:               token,
		Canonical:           theory.NormalizeQualityToken(token),
		Registered:          registered,
		Intervals:           intervals,
		PitchClassIntervals: theory.NormalizeIntervalSet(intervals),
	}
	if registered {
		r.Name = q.Name()
	} else {
		s.cloudwatch.RecordQualityFallback()
	}
	s.sentry.RecordResolution(ctx, token, r.Canonical, registered)
	return r
}

// Fingerings looks up a chord label such as "Am7" or "Am7/E". Plain chords
// use the catalogue when it has an entry; slash chords and catalogue misses
// are generated. An empty Fingerings list is a normal outcome.
func (s *ChordService) Fingerings(ctx context.Context, label string) (*FingeringResult, error) {
	start := time.Now()

	parsed, ok := theory.ParseChordLabel(label)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}
	res := s.newResult(ctx, parsed)

	fallback := false
	if !parsed.IsSlash() {
		shapes, err := s.store.Lookup(ctx, parsed.RootPC, parsed.Quality)
		if err != nil {
			return nil, fmt.Errorf("catalogue lookup for %s: %w", label, err)
		}
		if len(shapes) > 0 {
			res.Source = SourceCatalogue
			res.Fingerings = make([]fretboard.Fingering, len(shapes))
			for i, shape := range shapes {
				res.Fingerings[i] = shape.Fingering(s.Tuning())
			}
			s.record(ctx, res, false, start)
			return res, nil
		}
		fallback = true
	}

	res.Fingerings, res.Source = s.generate(ctx, parsed.RootPC, parsed.Quality, res.BassInterval)
	s.record(ctx, res, fallback, start)
	return res, nil
}

// SlashChordFingerings generates fingerings for explicit inputs, bypassing
// the catalogue
func (s *ChordService) SlashChordFingerings(ctx context.Context, rootPC int, quality string, bassInterval int) *FingeringResult {
	start := time.Now()

	rootPC = theory.NormalizeToPitchClass(rootPC)
	bassInterval = theory.NormalizeToPitchClass(bassInterval)
	bassPC := theory.NormalizeToPitchClass(rootPC + bassInterval)
	res := s.newResult(ctx, theory.SlashLabel{
		Root:    theory.PitchClassName(rootPC),
		Quality: quality,
		Bass:    theory.PitchClassName(bassPC),
		RootPC:  rootPC,
		BassPC:  bassPC,
	})

	res.Fingerings, res.Source = s.generate(ctx, rootPC, quality, bassInterval)
	s.record(ctx, res, false, start)
	return res
}

// Audit checks every catalogue shape against the chord engine
func (s *ChordService) Audit(ctx context.Context) ([]catalogue.AuditResult, int, error) {
	results, failures, err := catalogue.AuditStore(ctx, s.store, s.Tuning())
	if err != nil {
		return nil, 0, err
	}
	if failures > 0 {
		logger.Warn("Catalogue audit found failing shapes", logger.Fields{
			"shapes":   len(results),
			"failures": failures,
		})
	}
	return results, failures, nil
}

func (s *ChordService) newResult(ctx context.Context, parsed theory.SlashLabel) *FingeringResult {
	resolution := s.ResolveQuality(ctx, parsed.Quality)
	quality := parsed.Quality
	if resolution.Registered {
		quality = resolution.Canonical
	}
	normalized := parsed
	normalized.Quality = quality

	return &FingeringResult{
		Label:        normalized.String(),
		Root:         parsed.Root,
		Quality:      quality,
		Bass:         parsed.Bass,
		BassInterval: parsed.BassInterval(),
		Registered:   resolution.Registered,
		PitchClasses: theory.SlashChordPitchClasses(parsed.RootPC, parsed.Quality, parsed.BassInterval()),
	}
}

// generate runs the generator through the memo cache. Cache failures are
// logged and otherwise ignored.
func (s *ChordService) generate(ctx context.Context, rootPC int, quality string, bassInterval int) ([]fretboard.Fingering, string) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(rootPC, quality, bassInterval)
		if err != nil {
			logger.Warn("Fingering cache read failed", logger.Fields{"error": err.Error()})
		} else if ok {
			return cached, SourceCache
		}
	}

	fingerings := s.generator.SlashChordFingerings(rootPC, quality, bassInterval)

	if s.cache != nil {
		if err := s.cache.Put(rootPC, quality, bassInterval, fingerings); err != nil {
			logger.Warn("Fingering cache write failed", logger.Fields{"error": err.Error()})
		}
	}
	return fingerings, SourceGenerator
}

func (s *ChordService) record(ctx context.Context, res *FingeringResult, fallback bool, start time.Time) {
	duration := time.Since(start)
	s.cloudwatch.RecordFingerings(res.Source, len(res.Fingerings), fallback)
	s.sentry.RecordFingeringGeneration(ctx, res.Label, res.Source, len(res.Fingerings), duration)
	logger.LogFingeringRequest(ctx, res.Label, res.Source, len(res.Fingerings), duration, logger.Fields{
		"fallback":   fallback,
		"registered": res.Registered,
	})
}
