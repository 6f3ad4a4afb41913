package handlers

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/Conceptual-Machines/fretboard-api/internal/fretboard"
	"github.com/Conceptual-Machines/fretboard-api/internal/theory"
	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
)

type MetricsHandler struct {
	startTime time.Time
	version   string
	tuning    fretboard.Tuning
	strategy  string
}

func NewMetricsHandler(version string, tuning fretboard.Tuning, strategy string) *MetricsHandler {
	return &MetricsHandler{
		startTime: time.Now(),
		version:   version,
		tuning:    tuning,
		strategy:  strategy,
	}
}

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
)

// formatUptime formats the uptime duration with seconds rounded to 2 decimal places
func formatUptime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % secondsPerMinute
	seconds := d.Seconds() - float64(hours*secondsPerHour) - float64(minutes*secondsPerMinute)

	if hours > 0 {
		return fmt.Sprintf("%dh%dm%.2fs", hours, minutes, seconds)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm%.2fs", minutes, seconds)
	}
	return fmt.Sprintf("%.2fs", seconds)
}

type MetricsResponse struct {
	Status    string        `json:"status"`
	Uptime    string        `json:"uptime"`
	Timestamp string        `json:"timestamp"`
	Version   string        `json:"version"`
	StartTime string        `json:"start_time"`
	System    SystemMetrics `json:"system"`
	Engine    EngineMetrics `json:"engine"`
}

// EngineMetrics describes the chord vocabulary and fingering search limits
type EngineMetrics struct {
	Qualities        int                       `json:"qualities"`
	Aliases          int                       `json:"aliases"`
	SlashDefinitions int                       `json:"slash_definitions"`
	Tuning           string                    `json:"tuning"`
	OpenPitches      [fretboard.NumStrings]int `json:"open_pitches"`
	Strategy         string                    `json:"strategy"`
	MaxFret          int                       `json:"max_fret"`
	MaxResults       int                       `json:"max_results"`
}

type SystemMetrics struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	MemAllocMB   uint64 `json:"mem_alloc_mb"`
	MemTotalMB   uint64 `json:"mem_total_mb"`
	MemAlloc     string `json:"mem_alloc"` // Human readable, e.g. "12 MiB"
	NumGC        uint32 `json:"num_gc"`
}

const (
	bytesToMB = 1024 * 1024
)

func (h *MetricsHandler) GetMetrics(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	uptime := time.Since(h.startTime)

	metrics := MetricsResponse{
		Status:    "healthy",
		Uptime:    formatUptime(uptime),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.version,
		StartTime: h.startTime.UTC().Format(time.RFC3339),
		System: SystemMetrics{
			GoVersion:    runtime.Version(),
			NumGoroutine: runtime.NumGoroutine(),
			MemAllocMB:   m.Alloc / bytesToMB,
			MemTotalMB:   m.TotalAlloc / bytesToMB,
			MemAlloc:     humanize.IBytes(m.Alloc),
			NumGC:        m.NumGC,
		},
		Engine: EngineMetrics{
			Qualities:        len(theory.Qualities()),
			Aliases:          len(theory.AliasTokens()),
			SlashDefinitions: len(theory.SlashDefinitions()),
			Tuning:           h.tuning.Name,
			OpenPitches:      h.tuning.OpenPitch,
			Strategy:         h.strategy,
			MaxFret:          fretboard.MaxFret,
			MaxResults:       fretboard.MaxResults,
		},
	}

	c.JSON(http.StatusOK, metrics)
}
