package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/fretboard-api/internal/catalogue"
	"github.com/Conceptual-Machines/fretboard-api/internal/logger"
	"github.com/Conceptual-Machines/fretboard-api/internal/services"
	"github.com/gin-gonic/gin"
)

// CatalogueHandler exposes the hand-authored shape catalogue
type CatalogueHandler struct {
	chords *services.ChordService
}

func NewCatalogueHandler(chords *services.ChordService) *CatalogueHandler {
	return &CatalogueHandler{chords: chords}
}

// ShapeResponse is a catalogue entry with its rendered chart
type ShapeResponse struct {
	catalogue.Shape
	Label string `json:"label"`
	Chart string `json:"chart"`
}

// ListShapes returns every catalogue entry
func (h *CatalogueHandler) ListShapes(c *gin.Context) {
	shapes, err := h.chords.Shapes(c.Request.Context())
	if err != nil {
		logger.Error("Catalogue listing failed", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load catalogue"})
		return
	}

	out := make([]ShapeResponse, len(shapes))
	for i, s := range shapes {
		out[i] = ShapeResponse{Shape: s, Label: s.Label(), Chart: s.Chart()}
	}
	c.JSON(http.StatusOK, gin.H{
		"shapes": out,
		"count":  len(out),
	})
}

// Audit checks every catalogue shape against the chord engine. With
// failures_only=true only failing shapes are returned.
func (h *CatalogueHandler) Audit(c *gin.Context) {
	results, failures, err := h.chords.Audit(c.Request.Context())
	if err != nil {
		logger.Error("Catalogue audit failed", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to audit catalogue"})
		return
	}

	if c.Query("failures_only") == "true" {
		failing := make([]catalogue.AuditResult, 0, failures)
		for _, r := range results {
			if !r.OK {
				failing = append(failing, r)
			}
		}
		results = failing
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":       failures == 0,
		"failures": failures,
		"results":  results,
	})
}
