package api

import (
	"github.com/Conceptual-Machines/fretboard-api/internal/api/handlers"
	apimiddleware "github.com/Conceptual-Machines/fretboard-api/internal/api/middleware"
	"github.com/Conceptual-Machines/fretboard-api/internal/cache"
	"github.com/Conceptual-Machines/fretboard-api/internal/config"
	"github.com/Conceptual-Machines/fretboard-api/internal/metrics"
	"github.com/Conceptual-Machines/fretboard-api/internal/ratelimit"
	"github.com/Conceptual-Machines/fretboard-api/internal/search"
	"github.com/Conceptual-Machines/fretboard-api/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Dependencies are the long-lived components the handlers share. Only Chords
// is required.
type Dependencies struct {
	DB         *gorm.DB
	Chords     *services.ChordService
	Qualities  *search.QualityIndex
	Cache      *cache.FingeringCache
	Limiter    *ratelimit.KeyedRateLimiter
	CloudWatch *metrics.Client
}

func SetupRouter(cfg *config.Config, deps Dependencies, version string) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(deps.CloudWatch))

	// Health check
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Cache)
	router.GET("/health", healthHandler.HealthCheck)

	// Metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(version, deps.Chords.Tuning(), deps.Chords.StrategyName())
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	qualityHandler := handlers.NewQualityHandler(deps.Chords, deps.Qualities)
	chordHandler := handlers.NewChordHandler()
	fingeringHandler := handlers.NewFingeringHandler(deps.Chords)
	catalogueHandler := handlers.NewCatalogueHandler(deps.Chords)

	v1 := router.Group("/api/v1")
	v1.Use(apimiddleware.Auth(cfg.IsGatewayMode()))
	v1.Use(apimiddleware.RateLimit(deps.Limiter))
	{
		qualities := v1.Group("/qualities")
		{
			qualities.GET("", qualityHandler.ListQualities)
			qualities.GET("/aliases", qualityHandler.ListAliases)
			qualities.GET("/intervals", qualityHandler.ListIntervals)
			qualities.GET("/search", qualityHandler.SearchQualities)
			qualities.POST("/resolve", qualityHandler.ResolveQuality)
		}

		chords := v1.Group("/chords")
		{
			chords.GET("/slash", chordHandler.SlashInfo)
			chords.GET("/slash/definitions", chordHandler.SlashDefinitions)
		}

		fingerings := v1.Group("/fingerings")
		{
			fingerings.GET("", fingeringHandler.Lookup)
			fingerings.POST("", fingeringHandler.Generate)
			fingerings.GET("/midi", fingeringHandler.MIDI)
		}

		catalogue := v1.Group("/catalogue")
		{
			catalogue.GET("", catalogueHandler.ListShapes)
			catalogue.POST("/audit", catalogueHandler.Audit)
		}
	}

	return router
}
