package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{1500 * time.Millisecond, "1.50s"},
		{2*time.Minute + 3*time.Second, "2m3.00s"},
		{time.Hour + 5*time.Minute, "1h5m0.00s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatUptime(tt.d))
	}
}

func TestParseRoot(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"C", 0, false},
		{"F#", 6, false},
		{"Bb", 10, false},
		{"9", 9, false},
		{"14", 2, false},
		{"-1", 11, false},
		{"H", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseRoot(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMidiFilename(t *testing.T) {
	assert.Equal(t, "C_over_E-1", midiFilename("C/E", 0))
	assert.Equal(t, "Fsharpm7-3", midiFilename("F#m7", 2))
}
