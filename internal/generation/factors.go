package generation

import "slices"

// Factors returns every positive divisor of n in ascending order.
// It returns an empty slice for n <= 0; zero has no finite divisor set.
func Factors(n int) []int {
	if n <= 0 {
		return []int{}
	}

	small := make([]int, 0, 8)
	large := make([]int, 0, 8)
	for i := 1; i*i <= n; i++ {
		if n%i != 0 {
			continue
		}
		small = append(small, i)
		if j := n / i; j != i {
			large = append(large, j)
		}
	}

	slices.Reverse(large)
	return append(small, large...)
}
