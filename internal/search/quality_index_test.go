package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/fretboard-api/internal/theory"
)

func newTestIndex(t *testing.T) *QualityIndex {
	t.Helper()
	idx, err := NewQualityIndex()
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })
	return idx
}

func TestNewQualityIndex_IndexesEveryQuality(t *testing.T) {
	idx := newTestIndex(t)
	n, err := idx.Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(len(theory.Qualities())), n)
}

func TestQualityIndex_Search(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	tests := []struct {
		query    string
		expected string
	}{
		{"m7b5", "m7b5"},
		{"min7", "m7"},
		{"half diminished", "m7b5"},
		{"diminished seventh", "dim7"},
		{"dominant sevnth", "7"},
		{"lydian", "maj7#11"},
		{"ø7", "m7b5"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			hits, err := idx.Search(ctx, tt.query, 5)
			require.NoError(t, err)
			require.NotEmpty(t, hits)
			assert.Equal(t, tt.expected, hits[0].Token)
		})
	}
}

func TestQualityIndex_SearchEdgeCases(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	hits, err := idx.Search(ctx, "   ", 5)
	require.NoError(t, err)
	assert.Empty(t, hits)

	hits, err = idx.Search(ctx, "zzzzzzzz", 5)
	require.NoError(t, err)
	assert.Empty(t, hits)

	hits, err = idx.Search(ctx, "minor", 0)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(hits), DefaultLimit)
	for _, h := range hits {
		assert.NotEmpty(t, h.Intervals)
	}
}

func TestDocIDRoundTrip(t *testing.T) {
	for _, q := range theory.Qualities() {
		back, ok := qualityFromDocID(docID(q))
		require.True(t, ok)
		assert.Equal(t, q, back)
	}
	_, ok := qualityFromDocID("q999")
	assert.False(t, ok)
	_, ok = qualityFromDocID("nope")
	assert.False(t, ok)
}
