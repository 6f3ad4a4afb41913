package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/fretboard-api/internal/theory"
	"github.com/gin-gonic/gin"
)

// ChordHandler serves slash chord analysis
type ChordHandler struct{}

func NewChordHandler() *ChordHandler {
	return &ChordHandler{}
}

// SlashInfo parses a "Root[Quality]/Bass" label and returns its pitch
// classes and curated display name
func (h *ChordHandler) SlashInfo(c *gin.Context) {
	label, ok := labelQuery(c)
	if !ok {
		return
	}

	info, ok := theory.SlashChordDisplayInfo(label)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid slash chord label",
			"message": "Expected Root[Quality]/Bass, e.g. Am7/E",
		})
		return
	}

	c.JSON(http.StatusOK, info)
}

// SlashDefinitions lists the curated slash chord display names
func (h *ChordHandler) SlashDefinitions(c *gin.Context) {
	defs := theory.SlashDefinitions()
	c.JSON(http.StatusOK, gin.H{
		"definitions": defs,
		"count":       len(defs),
	})
}

// labelQuery reads the label query parameter, writing a 400 when it is
// missing or too long
func labelQuery(c *gin.Context) (string, bool) {
	label := c.Query("label")
	if label == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'label' is required"})
		return "", false
	}
	if len(label) > maxLabelLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'label' is too long"})
		return "", false
	}
	return label, true
}
