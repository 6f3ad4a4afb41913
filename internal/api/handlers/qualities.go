package handlers

import (
	"net/http"
	"strconv"

	"github.com/Conceptual-Machines/fretboard-api/internal/logger"
	"github.com/Conceptual-Machines/fretboard-api/internal/search"
	"github.com/Conceptual-Machines/fretboard-api/internal/services"
	"github.com/Conceptual-Machines/fretboard-api/internal/theory"
	"github.com/gin-gonic/gin"
)

// QualityHandler serves the chord quality registry
type QualityHandler struct {
	chords *services.ChordService
	index  *search.QualityIndex
}

// NewQualityHandler creates a quality handler. index may be nil, which
// disables search.
func NewQualityHandler(chords *services.ChordService, index *search.QualityIndex) *QualityHandler {
	return &QualityHandler{chords: chords, index: index}
}

// QualityInfo describes one registered quality
type QualityInfo struct {
	Token               string              `json:"token"`
	Name                string              `json:"name"`
	Formula             theory.ChordFormula `json:"formula"`
	Intervals           []int               `json:"intervals"`
	PitchClassIntervals []int               `json:"pitch_class_intervals"`
	Aliases             []string            `json:"aliases"`
}

// ResolveRequest is the request body for quality resolution
type ResolveRequest struct {
	Token string `json:"token"` // Empty is the major triad
}

// ListQualities returns every registered quality in declaration order
func (h *QualityHandler) ListQualities(c *gin.Context) {
	qualities := theory.Qualities()
	out := make([]QualityInfo, 0, len(qualities))
	for _, q := range qualities {
		intervals := q.Intervals()
		aliases := theory.AliasesOf(q)
		if aliases == nil {
			aliases = []string{}
		}
		out = append(out, QualityInfo{
			Token:               q.Token(),
			Name:                q.Name(),
			Formula:             q.Formula(),
			Intervals:           intervals,
			PitchClassIntervals: theory.NormalizeIntervalSet(intervals),
			Aliases:             aliases,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"qualities": out,
		"count":     len(out),
	})
}

// ListAliases returns the alias table, spelling to canonical token
func (h *QualityHandler) ListAliases(c *gin.Context) {
	aliases := theory.Aliases()
	c.JSON(http.StatusOK, gin.H{
		"aliases": aliases,
		"count":   len(aliases),
	})
}

// ListIntervals returns every named interval with its semitone offset from
// the root
func (h *QualityHandler) ListIntervals(c *gin.Context) {
	names := theory.IntervalNames()
	intervals := make(map[string]int, len(names))
	for _, name := range names {
		semitones, err := theory.IntervalSemitones(name)
		if err != nil {
			logger.Error("Interval table lookup failed", err, logger.Fields{"interval": name})
			continue
		}
		intervals[name] = semitones
	}

	c.JSON(http.StatusOK, gin.H{
		"intervals": intervals,
		"count":     len(intervals),
	})
}

// SearchQualities finds qualities by token, alias or (misspelled) name
func (h *QualityHandler) SearchQualities(c *gin.Context) {
	if h.index == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Quality search is not available"})
		return
	}

	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'q' is required"})
		return
	}

	limit := search.DefaultLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxSearchLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'limit' must be between 1 and 50"})
			return
		}
		limit = n
	}

	hits, err := h.index.Search(c.Request.Context(), q, limit)
	if err != nil {
		logger.Error("Quality search failed", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query": q,
		"hits":  hits,
		"count": len(hits),
	})
}

// ResolveQuality resolves a token the way the chord engine does, falling back
// to the major triad for unknown spellings
func (h *QualityHandler) ResolveQuality(c *gin.Context) {
	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.chords.ResolveQuality(c.Request.Context(), req.Token))
}
