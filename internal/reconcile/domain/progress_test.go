package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentOf(t *testing.T) {
	tests := []struct {
		name      string
		processed int
		total     int
		want      int
	}{
		{"empty batch is complete", 0, 0, 100},
		{"negative total is complete", 0, -1, 100},
		{"start of batch", 0, 7, 0},
		{"one of three rounds down", 1, 3, 33},
		{"two of three rounds up", 2, 3, 67},
		{"half rounds up", 1, 2, 50},
		{"one of seven", 1, 7, 14},
		{"finished", 7, 7, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PercentOf(tt.processed, tt.total))
		})
	}
}
