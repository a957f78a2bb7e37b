package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fptr(v float64) *float64 { return &v }

func TestRangesOverlap(t *testing.T) {
	// Existing rule covers [10, 50].
	exMin, exMax := 10.0, fptr(50)

	tests := []struct {
		name    string
		newMin  float64
		newMax  *float64
		overlap bool
	}{
		{"contained", 20, fptr(30), true},
		{"min inside", 5, fptr(20), true},
		{"max inside", 40, fptr(60), true},
		{"contains existing", 5, fptr(60), true},
		{"above", 60, fptr(100), false},
		{"below", 1, fptr(9), false},
		{"unbounded new overlaps", 40, nil, true},
		{"unbounded new above", 60, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlap, rangesOverlap(tt.newMin, tt.newMax, exMin, exMax))
		})
	}
}

func TestRangesOverlapUnboundedExisting(t *testing.T) {
	// Existing rule covers [100, inf).
	assert.True(t, rangesOverlap(150, fptr(200), 100, nil))
	assert.True(t, rangesOverlap(50, nil, 100, nil))
	assert.False(t, rangesOverlap(10, fptr(99), 100, nil))
}
