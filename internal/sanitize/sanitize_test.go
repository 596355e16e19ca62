package sanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation_SizeLimit(t *testing.T) {
	limit := 4096

	tests := []struct {
		name      string
		inputSize int
		wantErr   bool
	}{
		{"Under Limit", limit - 1, false},
		{"Exact Limit", limit, false},
		{"Over Limit", limit + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Location(strings.Repeat("a", tt.inputSize), 0)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInputTooLarge)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLocation_ExplicitLimit(t *testing.T) {
	_, err := Location("Lisbon", 3)
	assert.ErrorIs(t, err, ErrInputTooLarge)
}

func TestLocation_EnvOverride(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "5")
	assert.Equal(t, 5, MaxInputSize())

	_, err := Location("Lisbon", 0)
	assert.ErrorIs(t, err, ErrInputTooLarge)

	t.Setenv(EnvMaxInputSize, "not-a-number")
	assert.Equal(t, DefaultMaxInputSize, MaxInputSize())
}

func TestLocation_ControlChars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Normal Text", "New York", "New York"},
		{"Unicode", "São Paulo", "São Paulo"},
		{"Trimmed", "  Kyoto \n", "Kyoto"},
		{"Line Breaks", "Rio\nde\tJaneiro", "Rio de Janeiro"},
		{"ANSI Code", "\x1b[31mParis\x1b[0m", "[31mParis[0m"},
		{"Null Byte", "Ro\x00me", "Rome"},
		{"Bell", "Oslo\x07", "Oslo"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Location(tt.input, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLocation_InvalidUTF8(t *testing.T) {
	_, err := Location("Par\xffis", 0)
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}
