package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Conceptual-Machines/fretboard-api/internal/fretboard"
	"github.com/Conceptual-Machines/fretboard-api/internal/logger"
	"github.com/Conceptual-Machines/fretboard-api/internal/services"
	"github.com/Conceptual-Machines/fretboard-api/internal/theory"
	"github.com/gin-gonic/gin"
)

// FingeringHandler serves guitar fingerings
type FingeringHandler struct {
	chords *services.ChordService
}

func NewFingeringHandler(chords *services.ChordService) *FingeringHandler {
	return &FingeringHandler{chords: chords}
}

// FingeringRequest is the request body for explicit slash chord generation.
// The bass is given either as a note name or as an interval above the root;
// when both are missing the chord is in root position.
type FingeringRequest struct {
	Root         string `json:"root" binding:"required"` // Note name ("A") or pitch class ("9")
	Quality      string `json:"quality"`                 // Any registered spelling, empty for major
	Bass         string `json:"bass,omitempty"`          // Note name
	BassInterval *int   `json:"bass_interval,omitempty"` // Semitones above the root
}

// Generate runs the fingering generator for explicit inputs
func (h *FingeringHandler) Generate(c *gin.Context) {
	var req FingeringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rootPC, err := parseRoot(req.Root)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bassInterval := 0
	switch {
	case req.Bass != "" && req.BassInterval != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Specify either bass or bass_interval, not both"})
		return
	case req.Bass != "":
		bassPC, err := theory.NoteNameToPitchClass(req.Bass)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("bass: %v", err)})
			return
		}
		bassInterval = theory.BassInterval(rootPC, bassPC)
	case req.BassInterval != nil:
		bassInterval = *req.BassInterval
	}

	c.JSON(http.StatusOK, h.chords.SlashChordFingerings(c.Request.Context(), rootPC, req.Quality, bassInterval))
}

// Lookup answers a chord label, consulting the catalogue before generating
func (h *FingeringHandler) Lookup(c *gin.Context) {
	label, ok := labelQuery(c)
	if !ok {
		return
	}

	res, err := h.chords.Fingerings(c.Request.Context(), label)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// MIDI renders one fingering of a chord label as a strummed Standard MIDI File
func (h *FingeringHandler) MIDI(c *gin.Context) {
	label, ok := labelQuery(c)
	if !ok {
		return
	}

	index := 0
	if raw := c.Query("index"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'index' must be a non-negative integer"})
			return
		}
		index = n
	}

	res, err := h.chords.Fingerings(c.Request.Context(), label)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if index >= len(res.Fingerings) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":      "No fingering at that index",
			"label":      res.Label,
			"fingerings": len(res.Fingerings),
		})
		return
	}

	var buf bytes.Buffer
	if err := fretboard.WriteStrumSMF(&buf, res.Fingerings[index], h.chords.Tuning(), res.Label); err != nil {
		logger.Error("MIDI rendering failed", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "MIDI rendering failed"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.mid"`, midiFilename(res.Label, index)))
	c.Data(http.StatusOK, midiContentType, buf.Bytes())
}

func (h *FingeringHandler) writeError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrInvalidLabel) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   err.Error(),
			"message": "Expected Root[Quality][/Bass], e.g. Am7 or Am7/E",
		})
		return
	}
	logger.Error("Fingering lookup failed", err, logger.WithContext(c))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Fingering lookup failed"})
}

// parseRoot accepts a note name or a pitch class number
func parseRoot(root string) (int, error) {
	if n, err := strconv.Atoi(strings.TrimSpace(root)); err == nil {
		return theory.NormalizeToPitchClass(n), nil
	}
	pc, err := theory.NoteNameToPitchClass(root)
	if err != nil {
		return 0, fmt.Errorf("root: %w", err)
	}
	return pc, nil
}

var filenameReplacer = strings.NewReplacer("/", "_over_", "#", "sharp", " ", "")

func midiFilename(label string, index int) string {
	return fmt.Sprintf("%s-%d", filenameReplacer.Replace(label), index+1)
}
