package stock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsLow(t *testing.T) {
	tests := []struct {
		name  string
		stock int
		min   int
		want  bool
	}{
		{"below threshold", 5, 10, true},
		{"at threshold", 10, 10, true},
		{"above threshold", 11, 10, false},
		{"empty with zero threshold", 0, 0, true},
		{"one with zero threshold", 1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLow(tt.stock, tt.min))
		})
	}
}

func TestIsLowMatchesComparisonExhaustively(t *testing.T) {
	for s := 0; s <= 50; s++ {
		for m := 0; m <= 50; m++ {
			assert.Equal(t, s <= m, IsLow(s, m), "stock=%d min=%d", s, m)
		}
	}
}
