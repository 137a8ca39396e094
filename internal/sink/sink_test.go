package sink

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRowRange(t *testing.T) {
	tests := []struct {
		name     string
		startRow int
		rowCount int
		want     string
	}{
		{"first batch", 2, 50, "screen!B2:AB51"},
		{"second batch", 52, 50, "screen!B52:AB101"},
		{"third batch", 102, 20, "screen!B102:AB121"},
		{"single row", 7, 1, "screen!B7:AB7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rowRange("screen", tt.startRow, tt.rowCount))
		})
	}
}

func TestHeaderRange(t *testing.T) {
	assert.Equal(t, "screen!B1:AB1", headerRange("screen"))
}

func TestTickerRange(t *testing.T) {
	assert.Equal(t, "screen!A2:A", tickerRange("screen"))
}
