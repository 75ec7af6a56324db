package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFactors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n        int
		expected []int
	}{
		{-4, []int{}},
		{0, []int{}},
		{1, []int{1}},
		{6, []int{1, 2, 3, 6}},
		{7, []int{1, 7}},
		{16, []int{1, 2, 4, 8, 16}},
		{36, []int{1, 2, 3, 4, 6, 9, 12, 18, 36}},
		{97, []int{1, 97}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Factors(tt.n), "Factors(%d)", tt.n)
	}
}

func TestFactorsProperties(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 2000; n++ {
		factors := Factors(n)
		assert.Contains(t, factors, 1)
		assert.Contains(t, factors, n)

		seen := make(map[int]bool, len(factors))
		for _, d := range factors {
			assert.Zero(t, n%d, "%d should divide %d", d, n)
			assert.False(t, seen[d], "duplicate factor %d of %d", d, n)
			seen[d] = true
		}
	}
}
