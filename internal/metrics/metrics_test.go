package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_DisabledOutsideProduction(t *testing.T) {
	client, err := NewClient(context.Background(), "development")
	require.NoError(t, err)
	assert.False(t, client.Enabled())

	assert.NotPanics(t, func() {
		client.RecordAPIRequest("/api/v1/fingerings", 200, time.Millisecond)
		client.RecordFingerings("generator", 2, true)
		client.RecordQualityFallback()
	})
}

func TestClient_NilIsDisabled(t *testing.T) {
	var client *Client
	assert.False(t, client.Enabled())
	assert.NotPanics(t, func() { client.RecordQualityFallback() })
}

func TestClient_Dimensions(t *testing.T) {
	client := &Client{environment: "staging"}

	dims := client.dimensions("Source", "catalogue")
	require.Len(t, dims, 2)
	assert.Equal(t, "Source", *dims[0].Name)
	assert.Equal(t, "catalogue", *dims[0].Value)
	assert.Equal(t, "Environment", *dims[1].Name)
	assert.Equal(t, "staging", *dims[1].Value)

	assert.Len(t, client.dimensions("", ""), 1)
}

func TestSentryMetrics_NoClient(t *testing.T) {
	m := NewSentryMetrics()
	ctx := context.Background()
	assert.NotPanics(t, func() {
		m.RecordAPIRequest(ctx, "/health", 200, time.Millisecond)
		m.RecordResolution(ctx, "min7", "m7", true)
		m.RecordFingeringGeneration(ctx, "C/E", "generator", 2, time.Millisecond)
	})
}

func TestSpanStatusForHTTP(t *testing.T) {
	tests := []struct {
		code int
		want sentry.SpanStatus
	}{
		{200, sentry.SpanStatusOK},
		{302, sentry.SpanStatusOK},
		{400, sentry.SpanStatusInvalidArgument},
		{401, sentry.SpanStatusUnauthenticated},
		{404, sentry.SpanStatusNotFound},
		{429, sentry.SpanStatusResourceExhausted},
		{500, sentry.SpanStatusInternalError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, spanStatusForHTTP(tt.code), "status %d", tt.code)
	}
}
