package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyWaiver(t *testing.T) {
	tests := []struct {
		name        string
		total       int64
		isWaivedOff bool
		waived      int64
		expected    int64
	}{
		{name: "no waiver", total: 5000, isWaivedOff: false, waived: 3000, expected: 5000},
		{name: "partial waiver", total: 5000, isWaivedOff: true, waived: 3000, expected: 2000},
		{name: "full waiver", total: 5000, isWaivedOff: true, waived: 5000, expected: 0},
		{name: "waiver exceeds total clamps at zero", total: 5000, isWaivedOff: true, waived: 9000, expected: 0},
		{name: "zero total", total: 0, isWaivedOff: true, waived: 100, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ApplyWaiver(tt.total, tt.isWaivedOff, tt.waived))
		})
	}
}
