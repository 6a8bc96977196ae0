package main

import "iter"

// Combinations yields every k-subset of the indices 0..n-1, each as an
// ascending index slice, in lexicographic order. Generation is lazy and stops
// as soon as the consumer breaks out of the loop.
//
// The yielded slice is reused between iterations; copy it to keep it.
func Combinations(n, k int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		if k < 0 || k > n {
			return
		}
		idx := make([]int, k)
		for i := range idx {
			idx[i] = i
		}
		for {
			if !yield(idx) {
				return
			}
			// rightmost position that can still advance
			i := k - 1
			for i >= 0 && idx[i] == n-k+i {
				i--
			}
			if i < 0 {
				return
			}
			idx[i]++
			for j := i + 1; j < k; j++ {
				idx[j] = idx[j-1] + 1
			}
		}
	}
}

// Binomial returns C(n, k), saturating at the maximum int.
func Binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	const maxInt = int(^uint(0) >> 1)
	r := 1
	for i := 1; i <= k; i++ {
		if r > maxInt/(n-k+i) {
			return maxInt
		}
		r = r * (n - k + i) / i
	}
	return r
}
