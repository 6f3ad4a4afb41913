package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/Conceptual-Machines/fretboard-api/internal/api"
	"github.com/Conceptual-Machines/fretboard-api/internal/cache"
	"github.com/Conceptual-Machines/fretboard-api/internal/catalogue"
	"github.com/Conceptual-Machines/fretboard-api/internal/config"
	"github.com/Conceptual-Machines/fretboard-api/internal/database"
	"github.com/Conceptual-Machines/fretboard-api/internal/metrics"
	"github.com/Conceptual-Machines/fretboard-api/internal/ratelimit"
	"github.com/Conceptual-Machines/fretboard-api/internal/search"
	"github.com/Conceptual-Machines/fretboard-api/internal/services"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const (
	sentryFlushTimeout = 2 * time.Second
	startupTimeout     = 30 * time.Second
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

// GetVersion returns the current release version
func GetVersion() string {
	return releaseVersion
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize Sentry
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			Release:          "fretboard-api@" + releaseVersion,
			EnableTracing:    true,
			TracesSampleRate: 1.0,
			Debug:            !cfg.IsProduction(),
			BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
				// Filter out sensitive data
				if event.Request != nil {
					event.Request.Headers = filterSensitiveHeaders(event.Request.Headers)
				}
				return event
			},
		}); err != nil {
			log.Printf("Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s, release: %s)", cfg.Environment, releaseVersion)
			// Flush on shutdown
			defer sentry.Flush(sentryFlushTimeout)
		}
	} else {
		log.Println("⚠️  Sentry not configured (SENTRY_DSN not set)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	// Shape catalogue (Postgres when DATABASE_URL is set)
	store, db, err := catalogue.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to open shape catalogue:", err)
	}
	if db != nil {
		defer func() { _ = database.Close(db) }()
	}

	// Fingering memo
	fingeringCache, err := cache.Open(cfg.CacheDir, cfg.CacheTTL)
	if err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to open fingering cache:", err)
	}
	defer func() { _ = fingeringCache.Close() }()

	// Quality search index
	qualityIndex, err := search.NewQualityIndex()
	if err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to build quality index:", err)
	}
	defer func() { _ = qualityIndex.Close() }()

	cloudwatch, err := metrics.NewClient(ctx, cfg.Environment)
	if err != nil {
		log.Printf("⚠️  CloudWatch metrics unavailable: %v", err)
	}

	limiter := ratelimit.New(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer limiter.Stop()

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := api.SetupRouter(cfg, api.Dependencies{
		DB:         db,
		Chords:     services.NewChordService(store, fingeringCache, cloudwatch),
		Qualities:  qualityIndex,
		Cache:      fingeringCache,
		Limiter:    limiter,
		CloudWatch: cloudwatch,
	}, GetVersion())

	// Start server
	log.Printf("🚀 Starting server on port %s (auth: %s)", cfg.Port, cfg.AuthMode)
	if err := router.Run(":" + cfg.Port); err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to start server:", err)
	}
}

func filterSensitiveHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string)
	sensitiveKeys := map[string]bool{
		"authorization": true,
		"cookie":        true,
		"x-api-key":     true,
		"x-user-email":  true,
	}

	for k, v := range headers {
		if sensitiveKeys[strings.ToLower(k)] {
			filtered[k] = "[REDACTED]"
		} else {
			filtered[k] = v
		}
	}
	return filtered
}
