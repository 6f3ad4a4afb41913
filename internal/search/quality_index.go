// Package search provides fuzzy lookup over the chord-quality vocabulary,
// for clients that want "half dim" or "dominant sevnth" to find a quality.
package search

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/Conceptual-Machines/fretboard-api/internal/theory"
)

const (
	DefaultLimit = 10
	MaxLimit     = 50
)

// Hit is one matching quality
type Hit struct {
	Token     string   `json:"token"`
	Name      string   `json:"name"`
	Aliases   []string `json:"aliases"`
	Intervals []int    `json:"intervals"`
	Score     float64  `json:"score"`
}

// QualityIndex is an in-memory bleve index of every registered quality
type QualityIndex struct {
	mu    sync.RWMutex
	index bleve.Index
}

// buildIndexMapping indexes quality names as simple lowercase words and
// tokens and aliases as exact, case-sensitive keywords ("M7" is not "m7").
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()

	nameFieldMapping := bleve.NewTextFieldMapping()
	nameFieldMapping.Analyzer = simple.Name
	nameFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("name", nameFieldMapping)

	tokenFieldMapping := bleve.NewTextFieldMapping()
	tokenFieldMapping.Analyzer = keyword.Name
	tokenFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("token", tokenFieldMapping)

	aliasFieldMapping := bleve.NewTextFieldMapping()
	aliasFieldMapping.Analyzer = keyword.Name
	aliasFieldMapping.Store = false
	docMapping.AddFieldMappingsAt("aliases", aliasFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)
	return indexMapping
}

// NewQualityIndex builds the index from the registry
func NewQualityIndex() (*QualityIndex, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}

	batch := index.NewBatch()
	for _, q := range theory.Qualities() {
		doc := map[string]interface{}{
			"token":   q.Token(),
			"name":    q.Name(),
			"aliases": theory.AliasesOf(q),
		}
		if err := batch.Index(docID(q), doc); err != nil {
			return nil, fmt.Errorf("index quality %s: %w", q, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		return nil, fmt.Errorf("index qualities: %w", err)
	}

	return &QualityIndex{index: index}, nil
}

// Close releases the index
func (s *QualityIndex) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// Count returns the number of indexed qualities
func (s *QualityIndex) Count() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.DocCount()
}

// Search finds qualities by token, alias or name. Exact token and alias
// matches rank above name matches; misspelled names are tolerated.
func (s *QualityIndex) Search(ctx context.Context, text string, limit int) ([]Hit, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []Hit{}, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	req := bleve.NewSearchRequestOptions(buildSearchQuery(text), limit, 0, false)
	res, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		q, ok := qualityFromDocID(h.ID)
		if !ok {
			continue
		}
		hits = append(hits, Hit{
			Token:     q.Token(),
			Name:      q.Name(),
			Aliases:   theory.AliasesOf(q),
			Intervals: q.Intervals(),
			Score:     h.Score,
		})
	}
	return hits, nil
}

func buildSearchQuery(text string) query.Query {
	textQueries := []query.Query{}

	// Exact token, as typed and after symbol folding
	for _, t := range uniqueStrings(text, theory.NormalizeQualityToken(text)) {
		tokenTerm := bleve.NewTermQuery(t)
		tokenTerm.SetField("token")
		tokenTerm.SetBoost(6.0)
		textQueries = append(textQueries, tokenTerm)

		aliasTerm := bleve.NewTermQuery(t)
		aliasTerm.SetField("aliases")
		aliasTerm.SetBoost(5.0)
		textQueries = append(textQueries, aliasTerm)
	}

	nameMatch := bleve.NewMatchQuery(text)
	nameMatch.SetField("name")
	nameMatch.SetBoost(3.0)
	textQueries = append(textQueries, nameMatch)

	lower := strings.ToLower(text)
	for _, word := range strings.Fields(lower) {
		fuzzyQuery := bleve.NewFuzzyQuery(word)
		fuzzyQuery.SetFuzziness(1)
		fuzzyQuery.SetField("name")
		fuzzyQuery.SetBoost(0.8)
		textQueries = append(textQueries, fuzzyQuery)
	}

	// Prefix query for autocomplete (minimum 2 chars)
	if len(lower) >= 2 && !strings.Contains(lower, " ") {
		prefixQuery := bleve.NewPrefixQuery(lower)
		prefixQuery.SetField("name")
		prefixQuery.SetBoost(0.5)
		textQueries = append(textQueries, prefixQuery)
	}

	return bleve.NewDisjunctionQuery(textQueries...)
}

func docID(q theory.Quality) string {
	return "q" + strconv.Itoa(int(q))
}

func qualityFromDocID(id string) (theory.Quality, bool) {
	n, err := strconv.Atoi(strings.TrimPrefix(id, "q"))
	if err != nil {
		return 0, false
	}
	q := theory.Quality(n)
	return q, q.Valid()
}

func uniqueStrings(values ...string) []string {
	out := make([]string, 0, len(values))
	seen := map[string]bool{}
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
