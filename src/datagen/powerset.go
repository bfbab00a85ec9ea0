package datagen

import (
	"iter"

	"gonum.org/v1/gonum/stat/combin"
)

// Powerset lazily yields every subset of items, the empty one first, ordered
// by size and then by combination order of positions.
func Powerset[T any](items []T) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		n := len(items)
		for k := 0; k <= n; k++ {
			gen := combin.NewCombinationGenerator(n, k)
			idx := make([]int, k)
			for gen.Next() {
				gen.Combination(idx)
				subset := make([]T, k)
				for i, j := range idx {
					subset[i] = items[j]
				}
				if !yield(subset) {
					return
				}
			}
		}
	}
}

// NonEmptySubsets materializes Powerset(items) without its leading empty set.
func NonEmptySubsets[T any](items []T) [][]T {
	subsets := make([][]T, 0, (1<<len(items))-1)
	first := true
	for subset := range Powerset(items) {
		if first {
			first = false
			continue
		}
		subsets = append(subsets, subset)
	}
	return subsets
}
