package utils

import (
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
)

func TestParseInt(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    int64
		wantErr bool
	}{
		{"Int", 90, 90, false},
		{"Int64", int64(30), 30, false},
		{"IntegralFloat", float64(7), 7, false},
		{"FractionalFloat", 7.5, 0, true},
		{"NumericString", " 12 ", 12, false},
		{"Word", "twelve", 0, true},
		{"Bool", true, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInt(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseInt32_Overflow(t *testing.T) {
	_, err := ParseInt32(int64(1) << 40)
	assert.Error(t, err)
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool(true))
	assert.True(t, ToBool("TRUE"))
	assert.True(t, ToBool(1))
	assert.False(t, ToBool("no"))
	assert.False(t, ToBool(nil))
}

func TestParseDate(t *testing.T) {
	want := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
	}{
		{"String", "2025-03-01"},
		{"RFC3339", "2025-03-01T00:00:00Z"},
		{"Time", time.Date(2025, time.March, 1, 15, 4, 5, 0, time.UTC)},
		{"LocalDate", toml.LocalDate{Year: 2025, Month: 3, Day: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			assert.NoError(t, err)
			assert.True(t, want.Equal(got), "got %s", got)
		})
	}

	_, err := ParseDate("next tuesday")
	assert.Error(t, err)
}
