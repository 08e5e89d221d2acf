package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChangePct(t *testing.T) {
	tests := []struct {
		name          string
		close, change float64
		want          float64
	}{
		{"round trip: prev close 100", 105.0, 5.0, 5.0},
		{"decline", 95.0, -5.0, -5.0},
		{"flat", 100.0, 0.0, 0.0},
		{"newly listed: prev close zero", 10.0, 10.0, 0.0},
		{"halted: prev close negative", 5.0, 10.0, 0.0},
		{"rounding to 2 decimals", 45.5, 0.55, 1.22},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, changePct(tt.close, tt.change))
		})
	}
}

func TestBookValuePerShare(t *testing.T) {
	assert.Equal(t, 134.62, bookValuePerShare(1050, 7.8))
	assert.Equal(t, 0.0, bookValuePerShare(1050, 0), "PB 0 means unavailable")
	assert.Equal(t, 0.0, bookValuePerShare(1050, -1))
}
