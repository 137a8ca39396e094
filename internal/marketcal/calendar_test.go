package marketcal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsTradingDay(t *testing.T) {
	tests := []struct {
		name       string
		date       string
		want       bool
		wantReason string
	}{
		{"monday", "2025-06-02", true, ""},
		{"friday", "2025-06-06", true, ""},
		{"saturday", "2025-06-07", false, "saturday"},
		{"sunday", "2025-06-08", false, "sunday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, err := time.ParseInLocation("2006-01-02", tt.date, jst)
			assert.NoError(t, err)

			ok, reason := IsTradingDay(day)
			assert.Equal(t, tt.want, ok)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestIsTradingDayCrossTimezone(t *testing.T) {
	// Friday 23:00 UTC is already Saturday morning in Tokyo.
	utc := time.Date(2025, 6, 6, 23, 0, 0, 0, time.UTC)
	ok, reason := IsTradingDay(utc)
	assert.False(t, ok)
	assert.Equal(t, "saturday", reason)
}
