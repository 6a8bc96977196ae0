package main

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(n, k int) [][]int {
	var out [][]int
	for idx := range Combinations(n, k) {
		out = append(out, slices.Clone(idx))
	}
	return out
}

func TestCombinations(t *testing.T) {
	got := collect(5, 3)
	require.Len(t, got, 10)
	assert.Equal(t, []int{0, 1, 2}, got[0])
	assert.Equal(t, []int{0, 1, 3}, got[1])
	assert.Equal(t, []int{2, 3, 4}, got[len(got)-1])

	seen := make(map[[3]int]bool)
	for _, c := range got {
		assert.True(t, slices.IsSorted(c), "subset %v not ascending", c)
		assert.Len(t, slices.Compact(slices.Clone(c)), 3, "subset %v repeats an index", c)
		key := [3]int{c[0], c[1], c[2]}
		assert.False(t, seen[key], "subset %v yielded twice", c)
		seen[key] = true
	}
}

func TestCombinationsEdges(t *testing.T) {
	t.Run("k=0 yields one empty subset", func(t *testing.T) {
		got := collect(4, 0)
		require.Len(t, got, 1)
		assert.Empty(t, got[0])
	})
	t.Run("empty list k=0", func(t *testing.T) {
		assert.Len(t, collect(0, 0), 1)
	})
	t.Run("k>n yields nothing", func(t *testing.T) {
		assert.Empty(t, collect(3, 4))
	})
	t.Run("negative k yields nothing", func(t *testing.T) {
		assert.Empty(t, collect(3, -1))
	})
	t.Run("k=n yields the full list", func(t *testing.T) {
		assert.Equal(t, [][]int{{0, 1, 2, 3}}, collect(4, 4))
	})
}

func TestCombinationsCounts(t *testing.T) {
	for n := 0; n <= 9; n++ {
		for k := 0; k <= n+1; k++ {
			assert.Len(t, collect(n, k), Binomial(n, k), "C(%d,%d)", n, k)
		}
	}
}

func TestCombinationsEarlyStop(t *testing.T) {
	// C(60,6) is about fifty million; breaking must not generate the rest.
	n := 0
	for range Combinations(60, 6) {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestCombinationsRestartable(t *testing.T) {
	seq := Combinations(6, 2)
	var first, second [][]int
	for idx := range seq {
		first = append(first, slices.Clone(idx))
	}
	for idx := range seq {
		second = append(second, slices.Clone(idx))
	}
	assert.Equal(t, first, second)
	assert.Len(t, first, 15)
}

func TestBinomial(t *testing.T) {
	tests := []struct {
		n, k, want int
	}{
		{5, 0, 1},
		{5, 5, 1},
		{5, 2, 10},
		{26, 3, 2600},
		{30, 4, 27405},
		{3, 4, 0},
		{3, -1, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Binomial(tt.n, tt.k), "C(%d,%d)", tt.n, tt.k)
	}
}
