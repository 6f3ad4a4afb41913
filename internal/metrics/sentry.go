package metrics

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
)

const (
	// HTTP status code threshold for considering a request successful
	successStatusCodeThreshold = http.StatusBadRequest
)

// SentryMetrics handles custom metrics for Sentry
type SentryMetrics struct {
	enabled bool
}

// NewSentryMetrics creates a new Sentry metrics client
func NewSentryMetrics() *SentryMetrics {
	return &SentryMetrics{
		enabled: true, // Always enabled if Sentry is configured
	}
}

// RecordAPIRequest records one request as an "api.request" span, keyed by
// route template
func (m *SentryMetrics) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "api.request")
	defer span.Finish()

	span.Description = "API Request: " + endpoint
	span.Status = spanStatusForHTTP(statusCode)
	span.SetTag("endpoint", endpoint)
	span.SetTag("status_code", strconv.Itoa(statusCode))
	span.SetTag("success", strconv.FormatBool(statusCode < successStatusCodeThreshold))
	span.SetData("duration_ms", duration.Milliseconds())
}

func spanStatusForHTTP(statusCode int) sentry.SpanStatus {
	switch {
	case statusCode < successStatusCodeThreshold:
		return sentry.SpanStatusOK
	case statusCode == http.StatusTooManyRequests:
		return sentry.SpanStatusResourceExhausted
	case statusCode == http.StatusUnauthorized:
		return sentry.SpanStatusUnauthenticated
	case statusCode == http.StatusNotFound:
		return sentry.SpanStatusNotFound
	case statusCode < http.StatusInternalServerError:
		return sentry.SpanStatusInvalidArgument
	default:
		return sentry.SpanStatusInternalError
	}
}

// RecordResolution records a quality token lookup. Unregistered tokens are
// tagged so fallbacks to the major triad can be found in Sentry.
func (m *SentryMetrics) RecordResolution(ctx context.Context, token, canonical string, registered bool) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "quality.resolve")
	defer span.Finish()

	span.SetTag("registered", fmt.Sprintf("%t", registered))
	span.SetData("token", token)
	span.SetData("canonical", canonical)

	if registered {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusNotFound
	}
	span.Description = fmt.Sprintf("Resolve quality: %q", token)
}

// RecordFingeringGeneration records where a fingering answer came from
// (catalogue, cache or generator) and how many shapes it held.
func (m *SentryMetrics) RecordFingeringGeneration(ctx context.Context, label, source string, results int, duration time.Duration) {
	if !m.enabled {
		return
	}

	if transaction := sentry.TransactionFromContext(ctx); transaction != nil {
		transaction.SetTag("fingering.source", source)
		transaction.SetData("fingering.results", results)
	}

	span := sentry.StartSpan(ctx, "fingering.generate")
	defer span.Finish()

	span.SetTag("source", source)
	span.SetTag("found", fmt.Sprintf("%t", results > 0))
	span.SetData("label", label)
	span.SetData("results", results)
	span.SetData("duration_ms", duration.Milliseconds())

	if results > 0 {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusNotFound
	}
	span.Description = fmt.Sprintf("Fingerings: %s", label)
}
